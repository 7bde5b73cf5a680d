// Package insight turns computed metrics into short qualitative flags.
package insight

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/RahilKothari9/supplier-analysis/pkg/core/calc"
)

const (
	// DebtTrapCoverage is the interest coverage below which debt service is flagged.
	DebtTrapCoverage = 1.5
	// SupplierStressDays is the payable-days level above which supplier stress is flagged.
	SupplierStressDays = 120
)

const (
	MsgDebtTrap       = "WARNING: Operating profit barely covers interest payments (Debt Trap Risk)."
	MsgProfitNoCash   = "RED FLAG: Company reports profit but is bleeding cash (Negative OCF)."
	MsgSupplierStress = "STRESS: Taking over 4 months to pay their own suppliers."
	MsgStable         = "Stable: Financial metrics are within healthy manufacturing ranges."
)

// Facts are the metric values the rules read.
type Facts struct {
	Score             calc.RiskScore
	InterestCoverage  float64
	OperatingCashFlow float64
	NetIncome         float64
	PayableDays       int
}

// FactsFrom collects rule inputs from the computed ratios and score.
func FactsFrom(r calc.Ratios, score calc.RiskScore) Facts {
	return Facts{
		Score:             score,
		InterestCoverage:  r.Solvency.InterestCoverage,
		OperatingCashFlow: r.Quality.OCF,
		NetIncome:         r.Quality.NetIncome,
		PayableDays:       r.Liquidity.PayDays,
	}
}

// Generate evaluates the rules top to bottom and never returns an empty
// slice. Distress and debt-trap form a priority chain; the remaining rules
// fire independently.
func Generate(f Facts) []string {
	var out []string

	switch {
	case f.Score.Value < calc.DistressThreshold:
		out = append(out, criticalMessage(f.Score.Value))
	case f.InterestCoverage < DebtTrapCoverage:
		out = append(out, MsgDebtTrap)
	}

	if f.OperatingCashFlow < 0 && f.NetIncome > 0 {
		out = append(out, MsgProfitNoCash)
	}

	if f.PayableDays > SupplierStressDays {
		out = append(out, MsgSupplierStress)
	}

	if len(out) == 0 {
		out = append(out, MsgStable)
	}
	return out
}

// Summary joins insights into one sentence block, in rule order.
func Summary(insights []string) string {
	return strings.Join(insights, " ")
}

func criticalMessage(score float64) string {
	return fmt.Sprintf("CRITICAL: Altman Z-Score of %s indicates high distress probability.",
		formatScore(score))
}

// formatScore prints whole numbers with one decimal ("1.0") and everything
// else in its shortest form ("1.23").
func formatScore(score float64) string {
	if score == math.Trunc(score) {
		return strconv.FormatFloat(score, 'f', 1, 64)
	}
	return strconv.FormatFloat(score, 'f', -1, 64)
}
