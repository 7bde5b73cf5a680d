package extract

import "github.com/RahilKothari9/supplier-analysis/pkg/models"

// CombineFunc merges two known amounts into a derived amount.
type CombineFunc func(a, b float64) float64

// Sum adds the two amounts.
func Sum(a, b float64) float64 { return a + b }

// Combine builds a point-wise derived series over the shorter of a and b.
// Labels come from a; a point is unknown when either input point is.
func Combine(a, b []models.PeriodPoint, fn CombineFunc) []models.PeriodPoint {
	n := min(len(a), len(b))
	out := make([]models.PeriodPoint, 0, n)
	for i := 0; i < n; i++ {
		point := models.PeriodPoint{Period: a[i].Period}
		if a[i].Value.Known && b[i].Value.Known {
			point.Value = models.NewValue(fn(a[i].Value.Amount, b[i].Value.Amount))
		}
		out = append(out, point)
	}
	return out
}

// FreeCashFlow is operating cash flow plus capital expenditure, which
// providers report as a negative outflow.
func FreeCashFlow(ocf, capex []models.PeriodPoint) []models.PeriodPoint {
	return Combine(ocf, capex, Sum)
}
