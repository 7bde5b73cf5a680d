package calc

import (
	"math"

	"github.com/shopspring/decimal"
)

// Round rounds half away from zero on the shortest decimal form of v, so
// 2.675 becomes 2.68 rather than the binary-float 2.67.
func Round(v float64, places int32) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return decimal.NewFromFloat(v).Round(places).InexactFloat64()
}

// RoundInt rounds to the nearest whole number, half away from zero.
func RoundInt(v float64) int {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return int(decimal.NewFromFloat(v).Round(0).IntPart())
}

// guardedDiv divides when the denominator is strictly positive and returns
// def otherwise.
func guardedDiv(numerator, denominator, def float64) (float64, bool) {
	if denominator <= 0 {
		return def, false
	}
	return numerator / denominator, true
}
