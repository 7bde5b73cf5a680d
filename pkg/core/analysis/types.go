package analysis

import (
	"github.com/RahilKothari9/supplier-analysis/pkg/core/calc"
	"github.com/RahilKothari9/supplier-analysis/pkg/core/validate"
	"github.com/RahilKothari9/supplier-analysis/pkg/models"
)

// Report is the complete financial-health snapshot for one entity. It is
// built fresh per request and never mutated afterwards.
type Report struct {
	Statements SeriesSet      `json:"statements"`
	Meta       Meta           `json:"meta"`
	Score      calc.RiskScore `json:"score"`
	Liquidity  calc.Liquidity `json:"liquidity"`
	Solvency   calc.Solvency  `json:"solvency"`
	Quality    calc.Quality   `json:"quality"`
	Insights   []string       `json:"insights"`
	Summary    string         `json:"ai_summary"`

	// DataChecks lists consistency problems found in the source data.
	DataChecks []validate.Finding `json:"data_checks"`
}

// Meta identifies what the report describes.
type Meta struct {
	Ticker   string `json:"ticker"`
	Currency string `json:"currency"`
	Period   string `json:"period"`
}

// SeriesSet holds the multi-period series, capped at extract.MaxPeriods.
type SeriesSet struct {
	Income   IncomeSeries   `json:"income_statement"`
	Balance  BalanceSeries  `json:"balance_sheet"`
	CashFlow CashFlowSeries `json:"cash_flow"`
}

type IncomeSeries struct {
	Revenue     []models.PeriodPoint `json:"revenue"`
	GrossProfit []models.PeriodPoint `json:"gross_profit"`
	EBITDA      []models.PeriodPoint `json:"ebitda"`
	NetIncome   []models.PeriodPoint `json:"net_income"`
}

type BalanceSeries struct {
	TotalAssets      []models.PeriodPoint `json:"total_assets"`
	TotalLiabilities []models.PeriodPoint `json:"total_liabilities"`
	Equity           []models.PeriodPoint `json:"equity"`
	TotalDebt        []models.PeriodPoint `json:"total_debt"`
}

type CashFlowSeries struct {
	OperatingCashFlow  []models.PeriodPoint `json:"operating_cash_flow"`
	CapitalExpenditure []models.PeriodPoint `json:"capital_expenditure"`
	FreeCashFlow       []models.PeriodPoint `json:"free_cash_flow"`
}
