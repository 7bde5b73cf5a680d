package models

import (
	"encoding/json"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Value is a single line-item amount. Known is false when the source cell was
// missing, NaN or unparseable; Amount is meaningless in that case.
type Value struct {
	Amount float64
	Known  bool
}

// NewValue wraps a float, treating NaN and infinities as unknown.
func NewValue(f float64) Value {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Value{}
	}
	return Value{Amount: f, Known: true}
}

// Unknown returns the explicit unknown marker.
func Unknown() Value {
	return Value{}
}

// Or returns the amount, or def when the value is unknown.
func (v Value) Or(def float64) float64 {
	if !v.Known {
		return def
	}
	return v.Amount
}

func (v Value) MarshalJSON() ([]byte, error) {
	if !v.Known {
		return []byte("null"), nil
	}
	return json.Marshal(v.Amount)
}

func (v *Value) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*v = Value{}
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*v = NewValue(f)
	return nil
}

// Period labels one statement column. Year is set when the raw header was
// date-like; otherwise only Raw carries meaning.
type Period struct {
	Year int    `json:"year,omitempty"`
	Raw  string `json:"raw"`
}

// Label is the year for date-like headers, else the literal header text.
func (p Period) Label() string {
	if p.Year > 0 {
		return strconv.Itoa(p.Year)
	}
	return p.Raw
}

var periodLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006-01",
	"01/02/2006",
	"1/2/2006",
	"Jan 2006",
	"January 2006",
	"Jan-06",
	"Jan 06",
	"2 Jan 2006",
}

var leadingDate = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}`)

// ParsePeriod resolves a column header into a Period once, at ingestion.
func ParsePeriod(raw string) Period {
	s := strings.TrimSpace(raw)
	for _, layout := range periodLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return Period{Year: t.Year(), Raw: s}
		}
	}
	// Timestamps with zones or fractional seconds still carry a usable date prefix.
	if m := leadingDate.FindString(s); m != "" {
		if t, err := time.Parse("2006-01-02", m); err == nil {
			return Period{Year: t.Year(), Raw: s}
		}
	}
	return Period{Raw: s}
}

// StatementTable maps line-item names to one value per period. Periods are
// ordered most-recent-first and shared by every row of the table.
type StatementTable struct {
	Periods []Period           `json:"periods"`
	Rows    map[string][]Value `json:"rows"`
}

// NewStatementTable builds an empty table over the given period headers.
func NewStatementTable(headers ...string) *StatementTable {
	t := &StatementTable{Rows: make(map[string][]Value)}
	for _, h := range headers {
		t.Periods = append(t.Periods, ParsePeriod(h))
	}
	return t
}

// Set stores a row. Values beyond the period count are dropped.
func (t *StatementTable) Set(name string, values ...Value) *StatementTable {
	if t.Rows == nil {
		t.Rows = make(map[string][]Value)
	}
	if len(values) > len(t.Periods) {
		values = values[:len(t.Periods)]
	}
	t.Rows[name] = values
	return t
}

// SetFloats is Set for plain numbers; NaN entries become unknown.
func (t *StatementTable) SetFloats(name string, values ...float64) *StatementTable {
	vals := make([]Value, len(values))
	for i, f := range values {
		vals[i] = NewValue(f)
	}
	return t.Set(name, vals...)
}

// Row returns the row for name and whether it exists.
func (t *StatementTable) Row(name string) ([]Value, bool) {
	if t == nil || t.Rows == nil {
		return nil, false
	}
	row, ok := t.Rows[name]
	return row, ok
}

// Empty reports whether the table carries no periods or no rows.
func (t *StatementTable) Empty() bool {
	return t == nil || len(t.Periods) == 0 || len(t.Rows) == 0
}

// Statements is what a data source returns for one entity.
type Statements struct {
	Income   *StatementTable `json:"income_statement"`
	Balance  *StatementTable `json:"balance_sheet"`
	CashFlow *StatementTable `json:"cash_flow"`
	Currency string          `json:"currency,omitempty"`
}

// PeriodPoint is one labelled value of a series.
type PeriodPoint struct {
	Period string `json:"period"`
	Value  Value  `json:"value"`
}
