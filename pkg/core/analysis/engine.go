// Package analysis orchestrates one supplier health check: fetch statements,
// extract series and scalars, compute ratios and the risk score, then attach
// rule-based insights.
package analysis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/phuslu/log"

	"github.com/RahilKothari9/supplier-analysis/pkg/core/calc"
	"github.com/RahilKothari9/supplier-analysis/pkg/core/extract"
	"github.com/RahilKothari9/supplier-analysis/pkg/core/insight"
	"github.com/RahilKothari9/supplier-analysis/pkg/core/source"
	"github.com/RahilKothari9/supplier-analysis/pkg/core/validate"
	"github.com/RahilKothari9/supplier-analysis/pkg/models"
)

const (
	DefaultCurrency    = "INR"
	DefaultPeriodLabel = "TTM / Last Fiscal Year"
)

// Engine is stateless apart from its configuration and is safe for
// concurrent use.
type Engine struct {
	source      source.Source
	currency    string
	periodLabel string
}

type Option func(*Engine)

// WithCurrency sets the currency reported when the source does not carry one.
func WithCurrency(c string) Option {
	return func(e *Engine) {
		if c != "" {
			e.currency = c
		}
	}
}

// WithPeriodLabel overrides the meta.period text.
func WithPeriodLabel(p string) Option {
	return func(e *Engine) {
		if p != "" {
			e.periodLabel = p
		}
	}
}

func NewEngine(src source.Source, opts ...Option) *Engine {
	e := &Engine{
		source:      src,
		currency:    DefaultCurrency,
		periodLabel: DefaultPeriodLabel,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Analyze builds the report for one identifier. Failures are returned as
// *AnalysisError; classify them with errors.Is against ErrNotFound,
// ErrDataUnavailable and ErrComputation.
func (e *Engine) Analyze(ctx context.Context, id string) (report *Report, err error) {
	ticker := source.NormalizeID(id)
	start := time.Now()

	defer func() {
		if r := recover(); r != nil {
			report = nil
			err = newError(ErrComputation, ticker, fmt.Errorf("%v", r))
		}
		if err != nil {
			log.Error().Str("ticker", ticker).Err(err).Msg("analysis failed")
			return
		}
		log.Info().Str("ticker", ticker).Str("risk_level", report.Score.Tier).
			Dur("elapsed", time.Since(start)).Msg("analysis complete")
	}()

	log.Info().Str("ticker", ticker).Msg("analyzing")
	if ticker == "" {
		return nil, newError(ErrNotFound, ticker, errors.New("empty identifier"))
	}

	st, err := e.source.FetchStatements(ctx, ticker)
	if err != nil && !errors.Is(err, source.ErrNoData) {
		return nil, newError(ErrComputation, ticker, err)
	}
	if st == nil {
		st = &models.Statements{}
	}

	if st.Income.Empty() || st.Balance.Empty() {
		return nil, e.missingData(ctx, ticker)
	}

	return e.build(ticker, st), nil
}

// missingData decides between "unknown entity" and "known entity without
// statements".
func (e *Engine) missingData(ctx context.Context, ticker string) error {
	exists, err := e.source.Exists(ctx, ticker)
	if err != nil {
		log.Warn().Str("ticker", ticker).Err(err).Msg("existence check failed")
		return newError(ErrNotFound, ticker, err)
	}
	if !exists {
		return newError(ErrNotFound, ticker, nil)
	}
	return newError(ErrDataUnavailable, ticker, nil)
}

func (e *Engine) build(ticker string, st *models.Statements) *Report {
	inc, bs, cf := st.Income, st.Balance, st.CashFlow

	in := calc.ExtractInputs(inc, bs, cf)
	ratios := calc.ComputeRatios(in)
	score := calc.AltmanScore(in)
	insights := insight.Generate(insight.FactsFrom(ratios, score))

	checks := validate.Statements(st)
	for _, f := range checks {
		log.Warn().Str("ticker", ticker).Str("check", f.Check).Str("item", f.Item).Msg(f.Message)
	}

	currency := st.Currency
	if currency == "" {
		currency = e.currency
	}

	return &Report{
		Statements: buildSeries(inc, bs, cf),
		Meta: Meta{
			Ticker:   ticker,
			Currency: currency,
			Period:   e.periodLabel,
		},
		Score:      score,
		Liquidity:  ratios.Liquidity,
		Solvency:   ratios.Solvency,
		Quality:    ratios.Quality,
		Insights:   insights,
		Summary:    insight.Summary(insights),
		DataChecks: checks,
	}
}

// buildSeries reads the charted series. EBITDA always comes from the primary
// row here, even when the scalar metric fell back to Normalized EBITDA.
func buildSeries(inc, bs, cf *models.StatementTable) SeriesSet {
	n := extract.MaxPeriods
	ocf := extract.Series(cf, calc.KeyOperatingCashFlow, n)
	capex := extract.Series(cf, calc.KeyCapitalExpenditure, n)

	return SeriesSet{
		Income: IncomeSeries{
			Revenue:     extract.Series(inc, calc.KeyRevenue, n),
			GrossProfit: extract.Series(inc, calc.KeyGrossProfit, n),
			EBITDA:      extract.Series(inc, calc.KeyEBITDA, n),
			NetIncome:   extract.Series(inc, calc.KeyNetIncome, n),
		},
		Balance: BalanceSeries{
			TotalAssets:      extract.Series(bs, calc.KeyTotalAssets, n),
			TotalLiabilities: extract.Series(bs, calc.KeyTotalLiabilities, n),
			Equity:           extract.Series(bs, calc.KeyEquity, n),
			TotalDebt:        extract.Series(bs, calc.KeyTotalDebt, n),
		},
		CashFlow: CashFlowSeries{
			OperatingCashFlow:  ocf,
			CapitalExpenditure: capex,
			FreeCashFlow:       extract.FreeCashFlow(ocf, capex),
		},
	}
}
