package calc

import "math"

// Risk tiers.
const (
	TierHigh     = "High"
	TierModerate = "Moderate"
	TierSafe     = "Safe"
)

// Tier thresholds on the composite score.
const (
	DistressThreshold = 1.8
	SafeThreshold     = 3.0
)

// RiskScore is the composite distress score. Computable is false when the
// score could not be formed; Value is then 0 and tiers as High.
type RiskScore struct {
	Value      float64 `json:"altman_z"`
	Tier       string  `json:"risk_level"`
	Computable bool    `json:"computable"`
}

// Altman Z-Score (manufacturing weights, book-value variant)
// Z = 1.2A + 1.4B + 3.3C + 0.6D + 1.0E
// A = Working Capital / Total Assets
// B = Retained Earnings / Total Assets
// C = (EBITDA - Interest) / Total Assets, a proxy for EBIT
// D = Book Equity / Total Debt
// E = Revenue / Total Assets
func AltmanScore(in Inputs) RiskScore {
	z, ok := AltmanZScoreManufacturing(
		in.CurrentAssets-in.CurrentLiabilities,
		in.RetainedEarnings,
		in.EBITDA-in.InterestExpense,
		in.Equity,
		in.Revenue,
		in.TotalAssets,
		in.TotalDebt,
	)
	if !ok {
		return RiskScore{Value: 0, Tier: RiskTier(0)}
	}
	z = Round(z, 2)
	return RiskScore{Value: z, Tier: RiskTier(z), Computable: true}
}

// AltmanZScoreManufacturing returns false when total assets or total debt
// is not positive, or when the inputs produce a non-finite score.
func AltmanZScoreManufacturing(wc, re, ebit, equity, sales, ta, debt float64) (float64, bool) {
	if ta <= 0 || debt <= 0 {
		return 0, false
	}
	A := wc / ta
	B := re / ta
	C := ebit / ta
	D := equity / debt
	E := sales / ta

	z := 1.2*A + 1.4*B + 3.3*C + 0.6*D + 1.0*E
	if math.IsNaN(z) || math.IsInf(z, 0) {
		return 0, false
	}
	return z, true
}

// RiskTier maps a computed score onto its tier.
func RiskTier(z float64) string {
	switch {
	case z < DistressThreshold:
		return TierHigh
	case z < SafeThreshold:
		return TierModerate
	default:
		return TierSafe
	}
}
