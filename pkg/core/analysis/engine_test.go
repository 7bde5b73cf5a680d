package analysis

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RahilKothari9/supplier-analysis/pkg/core/calc"
	"github.com/RahilKothari9/supplier-analysis/pkg/core/insight"
	"github.com/RahilKothari9/supplier-analysis/pkg/core/source"
	"github.com/RahilKothari9/supplier-analysis/pkg/models"
)

// stubSource serves canned statements from memory.
type stubSource struct {
	statements map[string]*models.Statements
	known      map[string]bool
	fetchErr   error
	existsErr  error
	panicOn    string
}

func (s *stubSource) FetchStatements(ctx context.Context, id string) (*models.Statements, error) {
	if id == s.panicOn {
		var table *models.StatementTable
		_ = table.Periods[0]
	}
	if s.fetchErr != nil {
		return nil, s.fetchErr
	}
	st, ok := s.statements[id]
	if !ok {
		return nil, source.ErrNoData
	}
	return st, nil
}

func (s *stubSource) Exists(ctx context.Context, id string) (bool, error) {
	if s.existsErr != nil {
		return false, s.existsErr
	}
	return s.known[id], nil
}

func fixtureEngine(opts ...Option) *Engine {
	return NewEngine(source.NewFileSource("../source/testdata"), opts...)
}

func TestAnalyzeFixture(t *testing.T) {
	report, err := fixtureEngine().Analyze(context.Background(), " acme.ns ")
	require.NoError(t, err)

	assert.Equal(t, Meta{Ticker: "ACME.NS", Currency: "INR", Period: DefaultPeriodLabel}, report.Meta)

	assert.Equal(t, 2.25, report.Liquidity.CurrentRatio)
	assert.Equal(t, 183, report.Liquidity.InvDays)
	assert.Equal(t, 73, report.Liquidity.RecDays)
	assert.Equal(t, 152, report.Liquidity.PayDays)
	assert.Equal(t, 183+73-152, report.Liquidity.CCCDays)

	assert.Equal(t, 0.5, report.Solvency.DebtToEquity)
	assert.Equal(t, 3.0, report.Solvency.InterestCoverage)
	assert.Equal(t, 500.0, report.Solvency.TotalDebt)

	assert.Equal(t, 40.0, report.Quality.GrossMargin)
	assert.Equal(t, -50.0, report.Quality.OCF)
	assert.Equal(t, 100.0, report.Quality.NetIncome)
	assert.Equal(t, -150.0, report.Quality.QualityGap)
	assert.Equal(t, -80.0, report.Quality.FreeCashFlow)

	assert.True(t, report.Score.Computable)
	assert.InDelta(t, 2.59, report.Score.Value, 0.011)
	assert.Equal(t, calc.TierModerate, report.Score.Tier)

	assert.Equal(t, []string{insight.MsgProfitNoCash, insight.MsgSupplierStress}, report.Insights)
	assert.Equal(t, insight.MsgProfitNoCash+" "+insight.MsgSupplierStress, report.Summary)
	assert.Empty(t, report.DataChecks, "fixture balances")
	assert.NotNil(t, report.DataChecks)
}

func TestAnalyzeSeries(t *testing.T) {
	report, err := fixtureEngine().Analyze(context.Background(), "ACME.NS")
	require.NoError(t, err)

	revenue := report.Statements.Income.Revenue
	require.Len(t, revenue, 3)
	assert.Equal(t, "2024", revenue[0].Period)
	assert.Equal(t, models.NewValue(1000), revenue[0].Value)

	ebitda := report.Statements.Income.EBITDA
	require.Len(t, ebitda, 3)
	assert.False(t, ebitda[2].Value.Known)

	fcf := report.Statements.CashFlow.FreeCashFlow
	require.Len(t, fcf, 3)
	assert.Equal(t, models.NewValue(-80), fcf[0].Value)
	assert.Equal(t, models.NewValue(70), fcf[1].Value)
	assert.False(t, fcf[2].Value.Known, "missing OCF makes FCF unknown")

	raw, err := json.Marshal(report)
	require.NoError(t, err)
	var decoded map[string]map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Contains(t, decoded["statements"], "income_statement")
	assert.Contains(t, decoded["statements"], "cash_flow")
	assert.Contains(t, decoded["score"], "altman_z")
	assert.Contains(t, decoded["liquidity"], "ccc_days")
}

func TestAnalyzeNotFound(t *testing.T) {
	_, err := fixtureEngine().Analyze(context.Background(), "NOPE.NS")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))

	var ae *AnalysisError
	require.True(t, errors.As(err, &ae))
	assert.Equal(t, "NOPE.NS", ae.Ticker)
	assert.Equal(t, "Ticker not found or no data available.", ae.Detail())

	_, err = fixtureEngine().Analyze(context.Background(), "   ")
	assert.True(t, errors.Is(err, ErrNotFound), "blank identifier is not found")
}

func TestAnalyzeDataUnavailable(t *testing.T) {
	_, err := fixtureEngine().Analyze(context.Background(), "GHOST.NS")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDataUnavailable))
	assert.False(t, errors.Is(err, ErrNotFound))

	var ae *AnalysisError
	require.True(t, errors.As(err, &ae))
	assert.Equal(t, "Financial statements unavailable via API for this ticker.", ae.Detail())
}

func TestAnalyzeExistsFailureIsNotFound(t *testing.T) {
	src := &stubSource{existsErr: errors.New("lookup timed out")}
	_, err := NewEngine(src).Analyze(context.Background(), "X")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestAnalyzeSourceFailure(t *testing.T) {
	src := &stubSource{fetchErr: errors.New("connection refused")}
	_, err := NewEngine(src).Analyze(context.Background(), "X")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrComputation))

	var ae *AnalysisError
	require.True(t, errors.As(err, &ae))
	assert.Equal(t, "connection refused", ae.Detail())
}

func TestAnalyzeRecoversPanic(t *testing.T) {
	src := &stubSource{panicOn: "BOOM"}
	report, err := NewEngine(src).Analyze(context.Background(), "boom")
	assert.Nil(t, report)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrComputation))
}

func TestAnalyzeSparseStatements(t *testing.T) {
	inc := models.NewStatementTable("2024-03-31")
	inc.SetFloats(calc.KeyRevenue, 1000)
	inc.SetFloats(calc.KeyEBITDA, 0)
	inc.SetFloats(calc.KeyNormalizedEBITDA, 90)
	inc.SetFloats(calc.KeyNetIncome, 50)
	bs := models.NewStatementTable("2024-03-31")
	bs.SetFloats(calc.KeyTotalAssets, 800)

	src := &stubSource{statements: map[string]*models.Statements{
		"SPARSE": {Income: inc, Balance: bs, Currency: "USD"},
	}}
	report, err := NewEngine(src, WithCurrency("EUR"), WithPeriodLabel("FY24")).Analyze(context.Background(), "sparse")
	require.NoError(t, err)

	assert.Equal(t, "USD", report.Meta.Currency, "source currency wins over the default")
	assert.Equal(t, "FY24", report.Meta.Period)

	assert.Equal(t, 0.0, report.Liquidity.CurrentRatio)
	assert.Equal(t, 0, report.Liquidity.CCCDays)
	assert.Equal(t, 0.0, report.Quality.GrossMargin)
	assert.Equal(t, calc.InterestCoverageUncovered, report.Solvency.InterestCoverage)

	assert.False(t, report.Score.Computable, "no debt means no score")
	assert.Equal(t, 0.0, report.Score.Value)
	assert.Equal(t, calc.TierHigh, report.Score.Tier)

	require.Len(t, report.Insights, 1)
	assert.Equal(t, "CRITICAL: Altman Z-Score of 0.0 indicates high distress probability.", report.Insights[0])

	ebitda := report.Statements.Income.EBITDA
	require.Len(t, ebitda, 1)
	assert.Equal(t, models.NewValue(0), ebitda[0].Value, "series keeps the primary EBITDA row")

	assert.NotNil(t, report.Statements.CashFlow.OperatingCashFlow)
	assert.Empty(t, report.Statements.CashFlow.FreeCashFlow)
}

func TestAnalyzeDistressedSupplier(t *testing.T) {
	inc := models.NewStatementTable("2024")
	inc.SetFloats(calc.KeyRevenue, 500)
	inc.SetFloats(calc.KeyEBITDA, 20)
	inc.SetFloats(calc.KeyInterestExpense, 40)
	inc.SetFloats(calc.KeyNetIncome, -30)
	bs := models.NewStatementTable("2024")
	bs.SetFloats(calc.KeyTotalAssets, 2000)
	bs.SetFloats(calc.KeyCurrentAssets, 300)
	bs.SetFloats(calc.KeyCurrentLiabilities, 600)
	bs.SetFloats(calc.KeyTotalDebt, 1500)
	bs.SetFloats(calc.KeyEquity, 100)

	src := &stubSource{statements: map[string]*models.Statements{
		"WEAK": {Income: inc, Balance: bs},
	}}
	report, err := NewEngine(src).Analyze(context.Background(), "WEAK")
	require.NoError(t, err)

	assert.Equal(t, calc.TierHigh, report.Score.Tier)
	require.Len(t, report.Insights, 1, "distress outranks the debt-trap rule")
	assert.Contains(t, report.Insights[0], "CRITICAL")
	assert.Equal(t, DefaultCurrency, report.Meta.Currency)
}
