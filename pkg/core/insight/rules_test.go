package insight

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RahilKothari9/supplier-analysis/pkg/core/calc"
)

func healthy() Facts {
	return Facts{
		Score:             calc.RiskScore{Value: 3.4, Tier: calc.TierSafe, Computable: true},
		InterestCoverage:  8,
		OperatingCashFlow: 120,
		NetIncome:         100,
		PayableDays:       60,
	}
}

func TestGenerateStable(t *testing.T) {
	assert.Equal(t, []string{MsgStable}, Generate(healthy()))

	// Boundaries are inclusive on the healthy side.
	f := healthy()
	f.Score.Value = 1.8
	f.InterestCoverage = 1.5
	f.PayableDays = 120
	f.OperatingCashFlow = -10
	f.NetIncome = 0
	assert.Equal(t, []string{MsgStable}, Generate(f))
}

func TestGenerateDistressTakesPriority(t *testing.T) {
	f := healthy()
	f.Score = calc.RiskScore{Value: 1.2, Tier: calc.TierHigh, Computable: true}
	f.InterestCoverage = 0.4

	out := Generate(f)
	require.Len(t, out, 1)
	assert.Equal(t, "CRITICAL: Altman Z-Score of 1.2 indicates high distress probability.", out[0])
}

func TestGenerateDebtTrap(t *testing.T) {
	f := healthy()
	f.InterestCoverage = 1.2
	assert.Equal(t, []string{MsgDebtTrap}, Generate(f))
}

func TestGenerateNonComputableScoreIsDistress(t *testing.T) {
	f := healthy()
	f.Score = calc.RiskScore{Tier: calc.TierHigh}
	f.InterestCoverage = calc.InterestCoverageUncovered
	assert.Equal(t, []string{"CRITICAL: Altman Z-Score of 0.0 indicates high distress probability."}, Generate(f))
}

func TestCriticalMessageScoreFormat(t *testing.T) {
	assert.Contains(t, criticalMessage(1), "Z-Score of 1.0 indicates")
	assert.Contains(t, criticalMessage(1.2), "Z-Score of 1.2 indicates")
	assert.Contains(t, criticalMessage(1.23), "Z-Score of 1.23 indicates")
	assert.Contains(t, criticalMessage(-0.5), "Z-Score of -0.5 indicates")
}

func TestGenerateIndependentFlagsInOrder(t *testing.T) {
	f := healthy()
	f.Score = calc.RiskScore{Value: 0.5, Tier: calc.TierHigh, Computable: true}
	f.OperatingCashFlow = -50
	f.NetIncome = 100
	f.PayableDays = 152

	out := Generate(f)
	require.Len(t, out, 3)
	assert.Contains(t, out[0], "CRITICAL")
	assert.Equal(t, MsgProfitNoCash, out[1])
	assert.Equal(t, MsgSupplierStress, out[2])

	assert.Equal(t, out[0]+" "+MsgProfitNoCash+" "+MsgSupplierStress, Summary(out))
}

func TestFactsFrom(t *testing.T) {
	r := calc.Ratios{
		Liquidity: calc.Liquidity{PayDays: 130},
		Solvency:  calc.Solvency{InterestCoverage: 2},
		Quality:   calc.Quality{OCF: -1, NetIncome: 5},
	}
	f := FactsFrom(r, calc.RiskScore{Value: 2, Computable: true})
	assert.Equal(t, 130, f.PayableDays)
	assert.Equal(t, -1.0, f.OperatingCashFlow)
	assert.Equal(t, []string{MsgProfitNoCash, MsgSupplierStress}, Generate(f))
}
