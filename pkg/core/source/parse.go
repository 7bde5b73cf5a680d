package source

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/RahilKothari9/supplier-analysis/pkg/models"
)

var unknownCells = map[string]bool{
	"": true, "-": true, "--": true, "—": true, "–": true,
	"nan": true, "none": true, "null": true, "n/a": true, "na": true, "nat": true,
}

var cellStripper = strings.NewReplacer(",", "", "₹", "", "$", "", "%", "", " ", "", " ", "")

// ParseCell reads one textual statement cell. Accounting negatives in
// parentheses are honoured; placeholders and garbage become unknown.
func ParseCell(raw string) models.Value {
	s := strings.TrimSpace(raw)
	if unknownCells[strings.ToLower(s)] {
		return models.Unknown()
	}

	negative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		negative = true
		s = strings.TrimSuffix(strings.TrimPrefix(s, "("), ")")
	}
	s = cellStripper.Replace(s)

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return models.Unknown()
	}
	if negative {
		f = -f
	}
	return models.NewValue(f)
}

// ParseAny reads a decoded JSON cell: number, numeric string or null.
func ParseAny(v interface{}) models.Value {
	switch x := v.(type) {
	case nil:
		return models.Unknown()
	case float64:
		return models.NewValue(x)
	case float32:
		return models.NewValue(float64(x))
	case int:
		return models.NewValue(float64(x))
	case int64:
		return models.NewValue(float64(x))
	case json.Number:
		f, err := x.Float64()
		if err != nil {
			return models.Unknown()
		}
		return models.NewValue(f)
	case string:
		return ParseCell(x)
	default:
		return models.Unknown()
	}
}

// FromGrid converts a rendered table (header row of periods, then one row
// per line item with the name in the first column) into a StatementTable.
func FromGrid(grid [][]string) *models.StatementTable {
	if len(grid) == 0 || len(grid[0]) < 2 {
		return &models.StatementTable{Rows: map[string][]models.Value{}}
	}
	table := models.NewStatementTable(grid[0][1:]...)
	for _, row := range grid[1:] {
		if len(row) == 0 {
			continue
		}
		name := normalizeItem(row[0])
		if name == "" {
			continue
		}
		values := make([]models.Value, 0, len(row)-1)
		for _, cell := range row[1:] {
			values = append(values, ParseCell(cell))
		}
		table.Set(name, values...)
	}
	return table
}

// normalizeItem strips the expand markers and footnote symbols that
// rendered statements attach to line-item names.
func normalizeItem(name string) string {
	name = strings.TrimSpace(name)
	name = strings.TrimRight(name, " +*")
	return strings.Join(strings.Fields(name), " ")
}

// tableDoc is the JSON/Hjson wire form of one statement.
type tableDoc struct {
	Periods  []string                 `json:"periods"`
	Rows     map[string][]interface{} `json:"rows"`
	Currency string                   `json:"currency,omitempty"`
}

func (d *tableDoc) table() *models.StatementTable {
	if d == nil {
		return &models.StatementTable{Rows: map[string][]models.Value{}}
	}
	table := models.NewStatementTable(d.Periods...)
	for name, cells := range d.Rows {
		values := make([]models.Value, 0, len(cells))
		for _, c := range cells {
			values = append(values, ParseAny(c))
		}
		table.Set(normalizeItem(name), values...)
	}
	return table
}

// statementsDoc is the JSON/Hjson wire form of a whole entity.
type statementsDoc struct {
	Ticker   string    `json:"ticker"`
	Currency string    `json:"currency"`
	Exists   *bool     `json:"exists"`
	Income   *tableDoc `json:"income_statement"`
	Balance  *tableDoc `json:"balance_sheet"`
	CashFlow *tableDoc `json:"cash_flow"`
}

func (d *statementsDoc) statements() *models.Statements {
	return &models.Statements{
		Income:   d.Income.table(),
		Balance:  d.Balance.table(),
		CashFlow: d.CashFlow.table(),
		Currency: d.Currency,
	}
}

// tableBuilder assembles a table from (period, item, value) triples that
// arrive period by period, most recent first.
type tableBuilder struct {
	table  *models.StatementTable
	column map[string]int
}

func newTableBuilder() *tableBuilder {
	return &tableBuilder{
		table:  &models.StatementTable{Rows: map[string][]models.Value{}},
		column: map[string]int{},
	}
}

func (b *tableBuilder) add(period, item string, v models.Value) {
	col, ok := b.column[period]
	if !ok {
		col = len(b.table.Periods)
		b.column[period] = col
		b.table.Periods = append(b.table.Periods, models.ParsePeriod(period))
	}
	row := b.table.Rows[item]
	for len(row) <= col {
		row = append(row, models.Unknown())
	}
	row[col] = v
	b.table.Rows[item] = row
}

// build pads every row to the full period count.
func (b *tableBuilder) build() *models.StatementTable {
	n := len(b.table.Periods)
	for item, row := range b.table.Rows {
		for len(row) < n {
			row = append(row, models.Unknown())
		}
		b.table.Rows[item] = row
	}
	return b.table
}
