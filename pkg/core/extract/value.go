// Package extract pulls named line items out of statement tables. Missing
// rows, missing columns and NaN cells never fail; they resolve to a default
// (scalar lookups) or to an explicit unknown (series lookups).
package extract

import "github.com/RahilKothari9/supplier-analysis/pkg/models"

// Value returns the most recent period's amount for name, or def when the
// table, the row or the cell is missing or unknown.
func Value(table *models.StatementTable, name string, def float64) float64 {
	row, ok := table.Row(name)
	if !ok || len(row) == 0 {
		return def
	}
	return row[0].Or(def)
}

// FirstNonZero returns the first of names whose latest value is non-zero.
// Used for line items that providers publish under alternate keys.
func FirstNonZero(table *models.StatementTable, names ...string) float64 {
	for _, name := range names {
		if v := Value(table, name, 0); v != 0 {
			return v
		}
	}
	return 0
}
