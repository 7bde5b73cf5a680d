package calc

// InterestCoverageUncovered is reported when there is no interest expense.
// No debt-service burden is not the same as infinite safety, so the value is
// high enough to clear the debt-trap threshold without looking unbounded.
const InterestCoverageUncovered = 100.0

const daysPerYear = 365

// Ratios is the full latest-period metric set.
type Ratios struct {
	Liquidity Liquidity `json:"liquidity"`
	Solvency  Solvency  `json:"solvency"`
	Quality   Quality   `json:"quality"`
}

type Liquidity struct {
	CurrentRatio float64 `json:"current_ratio"`
	CCCDays      int     `json:"ccc_days"`
	InvDays      int     `json:"inv_days"`
	RecDays      int     `json:"rec_days"`
	PayDays      int     `json:"pay_days"`
}

type Solvency struct {
	DebtToEquity     float64 `json:"debt_to_equity"`
	InterestCoverage float64 `json:"interest_coverage"`
	TotalDebt        float64 `json:"total_debt"`
}

type Quality struct {
	GrossMargin  float64 `json:"gross_margin"`
	OCF          float64 `json:"ocf"`
	NetIncome    float64 `json:"net_income"`
	QualityGap   float64 `json:"quality_gap"`
	FreeCashFlow float64 `json:"free_cash_flow"`
}

// ComputeRatios derives every ratio from in. A non-positive denominator
// yields that ratio's documented default rather than an error.
func ComputeRatios(in Inputs) Ratios {
	inv := DaysOutstanding(in.Inventory, in.CostOfRevenue)
	rec := DaysOutstanding(in.Receivables, in.Revenue)
	pay := DaysOutstanding(in.Payables, in.CostOfRevenue)

	return Ratios{
		Liquidity: Liquidity{
			CurrentRatio: CurrentRatio(in.CurrentAssets, in.CurrentLiabilities),
			CCCDays:      CashConversionCycle(inv, rec, pay),
			InvDays:      inv,
			RecDays:      rec,
			PayDays:      pay,
		},
		Solvency: Solvency{
			DebtToEquity:     DebtToEquity(in.TotalDebt, in.Equity),
			InterestCoverage: InterestCoverage(in.EBITDA, in.InterestExpense),
			TotalDebt:        in.TotalDebt,
		},
		Quality: Quality{
			GrossMargin:  GrossMargin(in.GrossProfit, in.Revenue),
			OCF:          in.OperatingCashFlow,
			NetIncome:    in.NetIncome,
			QualityGap:   CashQualityGap(in.OperatingCashFlow, in.NetIncome),
			FreeCashFlow: in.OperatingCashFlow + in.CapitalExpenditure,
		},
	}
}

// =============================================================================
// LIQUIDITY & EFFICIENCY
// =============================================================================

func CurrentRatio(currentAssets, currentLiabilities float64) float64 {
	r, _ := guardedDiv(currentAssets, currentLiabilities, 0)
	return Round(r, 2)
}

// DaysOutstanding converts a balance into days of its annual flow
// (inventory or payables against cost of revenue, receivables against revenue).
func DaysOutstanding(balance, annualFlow float64) int {
	r, ok := guardedDiv(balance, annualFlow, 0)
	if !ok {
		return 0
	}
	return RoundInt(r * daysPerYear)
}

func CashConversionCycle(invDays, recDays, payDays int) int {
	return invDays + recDays - payDays
}

// =============================================================================
// SOLVENCY
// =============================================================================

func DebtToEquity(totalDebt, equity float64) float64 {
	r, _ := guardedDiv(totalDebt, equity, 0)
	return Round(r, 2)
}

func InterestCoverage(ebitda, interestExpense float64) float64 {
	r, ok := guardedDiv(ebitda, interestExpense, InterestCoverageUncovered)
	if !ok {
		return InterestCoverageUncovered
	}
	return Round(r, 2)
}

// =============================================================================
// PROFITABILITY QUALITY
// =============================================================================

// GrossMargin is gross profit as a percentage of revenue.
func GrossMargin(grossProfit, revenue float64) float64 {
	r, _ := guardedDiv(grossProfit, revenue, 0)
	return Round(r*100, 2)
}

// CashQualityGap is how far operating cash flow trails (negative) or leads
// reported net income.
func CashQualityGap(ocf, netIncome float64) float64 {
	return ocf - netIncome
}
