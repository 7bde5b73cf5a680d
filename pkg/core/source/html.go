package source

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/RahilKothari9/supplier-analysis/pkg/models"
)

// ParseHTMLTable reads the first <table> of an HTML statement page.
func ParseHTMLTable(r io.Reader) (*models.StatementTable, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}
	table := doc.Find("table").First()
	if table.Length() == 0 {
		return &models.StatementTable{Rows: map[string][]models.Value{}}, nil
	}
	return FromGrid(tableGrid(table)), nil
}

// statementTableFor picks the table titled as kind from a statement page.
// Pages with no titled tables fall back to their first table; pages that
// title other statements but not kind yield an empty table.
func statementTableFor(body []byte, kind string) (*models.StatementTable, error) {
	st, err := ParseHTMLStatements(bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	if table := tableOf(st, kind); table != nil {
		return table, nil
	}
	if st.Income != nil || st.Balance != nil || st.CashFlow != nil {
		return &models.StatementTable{Rows: map[string][]models.Value{}}, nil
	}
	return ParseHTMLTable(bytes.NewReader(body))
}

// ParseHTMLStatements reads every table on a page whose title resolves to a
// statement kind. The title is taken from a data-statement attribute, the
// caption, the enclosing section's heading or id, or the nearest preceding
// heading, in that order.
func ParseHTMLStatements(r io.Reader) (*models.Statements, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	st := &models.Statements{}
	doc.Find("table").Each(func(i int, table *goquery.Selection) {
		kind, ok := tableKind(table)
		if !ok {
			return
		}
		assign(st, kind, FromGrid(tableGrid(table)))
	})
	return st, nil
}

func tableKind(table *goquery.Selection) (string, bool) {
	candidates := []string{
		table.AttrOr("data-statement", ""),
		table.Find("caption").First().Text(),
	}

	section := table.Closest("section")
	if section.Length() > 0 {
		candidates = append(candidates,
			section.Find("h1, h2, h3, h4").First().Text(),
			strings.ReplaceAll(section.AttrOr("id", ""), "-", " "),
		)
	}
	candidates = append(candidates, table.PrevAllFiltered("h1, h2, h3, h4").First().Text())

	for _, c := range candidates {
		if kind, ok := KindOf(c); ok {
			return kind, true
		}
	}
	return "", false
}

// tableGrid flattens header and body rows into text cells.
func tableGrid(table *goquery.Selection) [][]string {
	var grid [][]string
	table.Find("tr").Each(func(i int, tr *goquery.Selection) {
		var row []string
		tr.Find("th, td").Each(func(j int, cell *goquery.Selection) {
			row = append(row, strings.TrimSpace(cell.Text()))
		})
		if len(row) > 0 {
			grid = append(grid, row)
		}
	})
	return grid
}
