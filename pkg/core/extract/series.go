package extract

import "github.com/RahilKothari9/supplier-analysis/pkg/models"

// MaxPeriods is the number of periods every report series is capped at.
const MaxPeriods = 5

// Series returns up to limit points for name, most recent first. Cells past
// the end of a short row come back unknown instead of truncating the series.
func Series(table *models.StatementTable, name string, limit int) []models.PeriodPoint {
	points := []models.PeriodPoint{}
	if limit <= 0 || table.Empty() {
		return points
	}
	row, ok := table.Row(name)
	if !ok {
		return points
	}

	for i, period := range table.Periods {
		if i >= limit {
			break
		}
		value := models.Unknown()
		if i < len(row) {
			value = row[i]
		}
		points = append(points, models.PeriodPoint{Period: period.Label(), Value: value})
	}
	return points
}
