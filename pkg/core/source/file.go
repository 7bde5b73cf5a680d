package source

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/RahilKothari9/supplier-analysis/pkg/core/utils"
	"github.com/RahilKothari9/supplier-analysis/pkg/models"
)

// FileSource reads one Hjson (or plain JSON) document per entity from a
// directory: <dir>/<ID>.hjson or <dir>/<ID>.json.
type FileSource struct {
	dir string
}

// NewFileSource creates a file-backed source rooted at dir.
func NewFileSource(dir string) *FileSource {
	return &FileSource{dir: dir}
}

func (s *FileSource) FetchStatements(ctx context.Context, id string) (*models.Statements, error) {
	doc, err := s.load(id)
	if err != nil {
		return nil, err
	}
	return doc.statements(), nil
}

func (s *FileSource) Exists(ctx context.Context, id string) (bool, error) {
	doc, err := s.load(id)
	if errors.Is(err, ErrNoData) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if doc.Exists != nil {
		return *doc.Exists, nil
	}
	return true, nil
}

func (s *FileSource) load(id string) (*statementsDoc, error) {
	name, ok := localID(id)
	if !ok {
		return nil, fmt.Errorf("%w: invalid identifier %q", ErrNoData, id)
	}

	for _, ext := range []string{".hjson", ".json"} {
		path := filepath.Join(s.dir, name+ext)
		raw, err := os.ReadFile(path)
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}

		jsonText, err := utils.HjsonToJSON(string(raw))
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
		var doc statementsDoc
		if err := json.Unmarshal([]byte(jsonText), &doc); err != nil {
			return nil, fmt.Errorf("failed to decode %s: %w", path, err)
		}
		return &doc, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrNoData, name)
}
