// Package calc provides deterministic financial calculations over the latest
// reporting period: liquidity, working-capital efficiency, solvency,
// profitability quality and the Altman-style distress score.
package calc

import (
	"github.com/RahilKothari9/supplier-analysis/pkg/core/extract"
	"github.com/RahilKothari9/supplier-analysis/pkg/models"
)

// Line-item keys as published by statement providers.
const (
	KeyRevenue          = "Total Revenue"
	KeyCostOfRevenue    = "Cost Of Revenue"
	KeyGrossProfit      = "Gross Profit"
	KeyEBITDA           = "EBITDA"
	KeyNormalizedEBITDA = "Normalized EBITDA"
	KeyInterestExpense  = "Interest Expense"
	KeyNetIncome        = "Net Income"

	KeyTotalAssets        = "Total Assets"
	KeyCurrentAssets      = "Current Assets"
	KeyCurrentLiabilities = "Current Liabilities"
	KeyTotalLiabilities   = "Total Liabilities"
	KeyInventory          = "Inventory"
	KeyReceivables        = "Accounts Receivable"
	KeyPayables           = "Accounts Payable"
	KeyTotalDebt          = "Total Debt"
	KeyEquity             = "Stockholders Equity"
	KeyRetainedEarnings   = "Retained Earnings"

	KeyOperatingCashFlow  = "Operating Cash Flow"
	KeyCapitalExpenditure = "Capital Expenditure"
)

// Inputs holds the latest-period scalars every metric is computed from.
type Inputs struct {
	Revenue         float64 `json:"revenue"`
	CostOfRevenue   float64 `json:"cost_of_revenue"`
	GrossProfit     float64 `json:"gross_profit"`
	EBITDA          float64 `json:"ebitda"`
	InterestExpense float64 `json:"interest_expense"`
	NetIncome       float64 `json:"net_income"`

	TotalAssets        float64 `json:"total_assets"`
	CurrentAssets      float64 `json:"current_assets"`
	CurrentLiabilities float64 `json:"current_liabilities"`
	Inventory          float64 `json:"inventory"`
	Receivables        float64 `json:"receivables"`
	Payables           float64 `json:"payables"`
	TotalDebt          float64 `json:"total_debt"`
	Equity             float64 `json:"equity"`
	RetainedEarnings   float64 `json:"retained_earnings"`

	OperatingCashFlow  float64 `json:"operating_cash_flow"`
	CapitalExpenditure float64 `json:"capital_expenditure"`
}

// ExtractInputs reads every scalar from the three statements, defaulting
// missing or unknown items to zero. EBITDA falls back to the normalized
// figure when the primary key resolves to zero.
func ExtractInputs(inc, bs, cf *models.StatementTable) Inputs {
	return Inputs{
		Revenue:         extract.Value(inc, KeyRevenue, 0),
		CostOfRevenue:   extract.Value(inc, KeyCostOfRevenue, 0),
		GrossProfit:     extract.Value(inc, KeyGrossProfit, 0),
		EBITDA:          extract.FirstNonZero(inc, KeyEBITDA, KeyNormalizedEBITDA),
		InterestExpense: extract.Value(inc, KeyInterestExpense, 0),
		NetIncome:       extract.Value(inc, KeyNetIncome, 0),

		TotalAssets:        extract.Value(bs, KeyTotalAssets, 0),
		CurrentAssets:      extract.Value(bs, KeyCurrentAssets, 0),
		CurrentLiabilities: extract.Value(bs, KeyCurrentLiabilities, 0),
		Inventory:          extract.Value(bs, KeyInventory, 0),
		Receivables:        extract.Value(bs, KeyReceivables, 0),
		Payables:           extract.Value(bs, KeyPayables, 0),
		TotalDebt:          extract.Value(bs, KeyTotalDebt, 0),
		Equity:             extract.Value(bs, KeyEquity, 0),
		RetainedEarnings:   extract.Value(bs, KeyRetainedEarnings, 0),

		OperatingCashFlow:  extract.Value(cf, KeyOperatingCashFlow, 0),
		CapitalExpenditure: extract.Value(cf, KeyCapitalExpenditure, 0),
	}
}
