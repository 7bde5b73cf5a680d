package source

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/RahilKothari9/supplier-analysis/pkg/models"
)

// metaSheet optionally carries key/value rows such as "currency | INR".
const metaSheet = "meta"

// XLSXSource reads analyst workbooks, one per entity: <dir>/<ID>.xlsx with
// one sheet per statement. Sheet names are matched through KindOf.
type XLSXSource struct {
	dir string
}

// NewXLSXSource creates a workbook-backed source rooted at dir.
func NewXLSXSource(dir string) *XLSXSource {
	return &XLSXSource{dir: dir}
}

func (s *XLSXSource) path(id string) (string, bool) {
	name, ok := localID(id)
	if !ok {
		return "", false
	}
	return filepath.Join(s.dir, name+".xlsx"), true
}

func (s *XLSXSource) FetchStatements(ctx context.Context, id string) (*models.Statements, error) {
	path, ok := s.path(id)
	if !ok {
		return nil, fmt.Errorf("%w: invalid identifier %q", ErrNoData, id)
	}
	f, err := excelize.OpenFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNoData, NormalizeID(id))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	return ReadWorkbook(f)
}

func (s *XLSXSource) Exists(ctx context.Context, id string) (bool, error) {
	path, ok := s.path(id)
	if !ok {
		return false, nil
	}
	_, err := os.Stat(path)
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return err == nil, err
}

// ReadWorkbook converts every recognised statement sheet of f.
func ReadWorkbook(f *excelize.File) (*models.Statements, error) {
	st := &models.Statements{}
	for _, sheet := range f.GetSheetList() {
		if strings.EqualFold(sheet, metaSheet) {
			rows, err := f.GetRows(sheet)
			if err != nil {
				return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
			}
			for _, row := range rows {
				if len(row) >= 2 && strings.EqualFold(strings.TrimSpace(row[0]), "currency") {
					st.Currency = strings.TrimSpace(row[1])
				}
			}
			continue
		}

		kind, ok := KindOf(sheet)
		if !ok {
			continue
		}
		rows, err := f.GetRows(sheet)
		if err != nil {
			return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
		}
		assign(st, kind, FromGrid(rows))
	}
	return st, nil
}
