// Package validate checks statement data for internal consistency before
// the numbers are trusted. Findings are advisory: they never block an
// analysis.
package validate

import (
	"fmt"
	"math"

	"github.com/RahilKothari9/supplier-analysis/pkg/core/calc"
	"github.com/RahilKothari9/supplier-analysis/pkg/core/extract"
	"github.com/RahilKothari9/supplier-analysis/pkg/models"
)

const (
	// BalanceTolerancePct is the allowed gap between assets and L+E, as a
	// percentage of assets.
	BalanceTolerancePct = 1.0
	// OutlierThresholdPct flags year-over-year swings larger than this.
	OutlierThresholdPct = 100.0
)

// Finding is one data-quality observation.
type Finding struct {
	Check   string `json:"check"`
	Item    string `json:"item"`
	Message string `json:"message"`
}

// Statements runs every check against the latest periods of st.
func Statements(st *models.Statements) []Finding {
	findings := []Finding{}
	if st == nil {
		return findings
	}

	bs := st.Balance
	assets := extract.Value(bs, calc.KeyTotalAssets, math.NaN())
	liabilities := extract.Value(bs, calc.KeyTotalLiabilities, math.NaN())
	equity := extract.Value(bs, calc.KeyEquity, math.NaN())
	if !math.IsNaN(assets) && !math.IsNaN(liabilities) && !math.IsNaN(equity) && assets > 0 {
		check := CheckBalanceEquation(assets, liabilities, equity, assets*BalanceTolerancePct/100)
		if !check.IsBalanced {
			findings = append(findings, Finding{
				Check: "balance_equation",
				Item:  calc.KeyTotalAssets,
				Message: fmt.Sprintf("Assets %s differ from liabilities plus equity %s by %s",
					num(check.TotalAssets), num(check.ComputedAssets), num(check.Difference)),
			})
		}
	}

	for _, item := range []struct {
		table *models.StatementTable
		name  string
	}{
		{st.Income, calc.KeyRevenue},
		{st.Income, calc.KeyNetIncome},
		{st.Balance, calc.KeyTotalAssets},
	} {
		series := extract.Series(item.table, item.name, 2)
		if len(series) < 2 || !series[0].Value.Known || !series[1].Value.Known {
			continue
		}
		// Net income legitimately swings through zero.
		if item.name == calc.KeyNetIncome && series[1].Value.Amount <= 0 {
			continue
		}
		check := CheckForOutlier(item.name, series[0].Value.Amount, series[1].Value.Amount, OutlierThresholdPct)
		if check.IsOutlier {
			findings = append(findings, Finding{Check: "outlier", Item: item.name, Message: check.Reason})
		}
	}
	return findings
}

// =============================================================================
// YEAR-OVER-YEAR
// =============================================================================

// CalculateYoY returns (current - prior) / |prior| * 100.
func CalculateYoY(current, prior float64) float64 {
	if prior == 0 {
		if current == 0 {
			return 0
		}
		return math.Inf(1)
	}
	return (current - prior) / math.Abs(prior) * 100
}

// =============================================================================
// BALANCE SHEET IDENTITY
// =============================================================================

// BalanceCheck verifies Assets = Liabilities + Equity.
type BalanceCheck struct {
	TotalAssets      float64
	TotalLiabilities float64
	TotalEquity      float64
	ComputedAssets   float64 // L + E
	Difference       float64
	IsBalanced       bool
	Tolerance        float64
}

// CheckBalanceEquation validates A = L + E within tolerance.
func CheckBalanceEquation(assets, liabilities, equity, tolerance float64) *BalanceCheck {
	computed := liabilities + equity
	diff := assets - computed

	return &BalanceCheck{
		TotalAssets:      assets,
		TotalLiabilities: liabilities,
		TotalEquity:      equity,
		ComputedAssets:   computed,
		Difference:       diff,
		IsBalanced:       math.Abs(diff) <= tolerance,
		Tolerance:        tolerance,
	}
}

// =============================================================================
// OUTLIER DETECTION
// =============================================================================

// OutlierCheck identifies suspicious period-over-period moves.
type OutlierCheck struct {
	Item       string
	Value      float64
	PriorValue float64
	ChangePct  float64
	IsOutlier  bool
	Reason     string
	Threshold  float64
}

func CheckForOutlier(item string, current, prior, thresholdPct float64) *OutlierCheck {
	changePct := CalculateYoY(current, prior)

	check := &OutlierCheck{
		Item:       item,
		Value:      current,
		PriorValue: prior,
		ChangePct:  changePct,
		Threshold:  thresholdPct,
	}

	// A positive line dropping to exactly zero usually means a missing cell.
	if current == 0 && prior > 0 {
		check.IsOutlier = true
		check.Reason = fmt.Sprintf("%s dropped to zero", item)
		return check
	}

	if math.Abs(changePct) > thresholdPct {
		check.IsOutlier = true
		check.Reason = fmt.Sprintf("%s changed %.1f%% year over year (threshold %.0f%%)", item, changePct, thresholdPct)
	}
	return check
}

func num(f float64) string {
	return fmt.Sprintf("%.2f", f)
}
