package main

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RahilKothari9/supplier-analysis/pkg/core/calc"
	"github.com/RahilKothari9/supplier-analysis/pkg/core/insight"
)

const payload = `{
  "revenue": 1000, "cost_of_revenue": 600, "gross_profit": 400,
  "ebitda": 150, "interest_expense": 50, "net_income": 100,
  "total_assets": 2000, "current_assets": 900, "current_liabilities": 400,
  "inventory": 300, "receivables": 200, "payables": 250,
  "total_debt": 500, "equity": 1000, "retained_earnings": 600,
  "operating_cash_flow": -50, "capital_expenditure": -30,
}`

func TestRunRatios(t *testing.T) {
	out, err := run("ratios", payload)
	require.NoError(t, err)

	var r calc.Ratios
	require.NoError(t, json.Unmarshal(out, &r))
	assert.Equal(t, 40.0, r.Quality.GrossMargin)
	assert.Equal(t, 152, r.Liquidity.PayDays)
}

func TestRunInsights(t *testing.T) {
	out, err := run("insights", payload)
	require.NoError(t, err)

	var got []string
	require.NoError(t, json.Unmarshal(out, &got))
	assert.Equal(t, []string{insight.MsgProfitNoCash, insight.MsgSupplierStress}, got)
}

func TestRunScoreNotComputable(t *testing.T) {
	out, err := run("score", `{"total_assets": 100}`)
	require.NoError(t, err)

	var s calc.RiskScore
	require.NoError(t, json.Unmarshal(out, &s))
	assert.False(t, s.Computable)
	assert.Equal(t, calc.TierHigh, s.Tier)
}

func TestRunErrors(t *testing.T) {
	_, err := run("forecast", payload)
	assert.Error(t, err)
}
