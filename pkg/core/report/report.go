// Package report renders an analysis.Report for people: Markdown for
// terminals and files, HTML (via goldmark) for the browser endpoint.
package report

import (
	"bytes"
	"fmt"
	"html"
	"strconv"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/RahilKothari9/supplier-analysis/pkg/core/analysis"
	"github.com/RahilKothari9/supplier-analysis/pkg/models"
)

var md = goldmark.New(goldmark.WithExtensions(extension.Table))

// Markdown lays out the report as headed sections and pipe tables.
func Markdown(r *analysis.Report) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Supplier Health: %s\n\n", r.Meta.Ticker)
	fmt.Fprintf(&b, "_Currency: %s | Period: %s_\n\n", r.Meta.Currency, r.Meta.Period)

	b.WriteString("## Risk Score\n\n")
	if r.Score.Computable {
		fmt.Fprintf(&b, "Altman Z-Score **%s** (%s risk)\n\n", num(r.Score.Value), r.Score.Tier)
	} else {
		b.WriteString("Altman Z-Score not computable (no total assets or debt reported)\n\n")
	}

	b.WriteString("## Insights\n\n")
	for _, line := range r.Insights {
		fmt.Fprintf(&b, "- %s\n", line)
	}
	b.WriteString("\n")

	b.WriteString("## Key Metrics\n\n")
	b.WriteString("| Metric | Value |\n|---|---:|\n")
	rows := [][2]string{
		{"Current ratio", num(r.Liquidity.CurrentRatio)},
		{"Inventory days", strconv.Itoa(r.Liquidity.InvDays)},
		{"Receivable days", strconv.Itoa(r.Liquidity.RecDays)},
		{"Payable days", strconv.Itoa(r.Liquidity.PayDays)},
		{"Cash conversion cycle", strconv.Itoa(r.Liquidity.CCCDays)},
		{"Debt to equity", num(r.Solvency.DebtToEquity)},
		{"Interest coverage", num(r.Solvency.InterestCoverage)},
		{"Total debt", num(r.Solvency.TotalDebt)},
		{"Gross margin %", num(r.Quality.GrossMargin)},
		{"Operating cash flow", num(r.Quality.OCF)},
		{"Net income", num(r.Quality.NetIncome)},
		{"Cash quality gap", num(r.Quality.QualityGap)},
		{"Free cash flow", num(r.Quality.FreeCashFlow)},
	}
	for _, row := range rows {
		fmt.Fprintf(&b, "| %s | %s |\n", row[0], row[1])
	}
	b.WriteString("\n")

	s := r.Statements
	writeSeries(&b, "Income Statement", []namedSeries{
		{"Revenue", s.Income.Revenue},
		{"Gross profit", s.Income.GrossProfit},
		{"EBITDA", s.Income.EBITDA},
		{"Net income", s.Income.NetIncome},
	})
	writeSeries(&b, "Balance Sheet", []namedSeries{
		{"Total assets", s.Balance.TotalAssets},
		{"Total liabilities", s.Balance.TotalLiabilities},
		{"Equity", s.Balance.Equity},
		{"Total debt", s.Balance.TotalDebt},
	})
	writeSeries(&b, "Cash Flow", []namedSeries{
		{"Operating cash flow", s.CashFlow.OperatingCashFlow},
		{"Capital expenditure", s.CashFlow.CapitalExpenditure},
		{"Free cash flow", s.CashFlow.FreeCashFlow},
	})

	return b.String()
}

// HTML renders Markdown(r) into a standalone page.
func HTML(r *analysis.Report) ([]byte, error) {
	var body bytes.Buffer
	if err := md.Convert([]byte(Markdown(r)), &body); err != nil {
		return nil, fmt.Errorf("failed to render report: %w", err)
	}

	var page bytes.Buffer
	fmt.Fprintf(&page, "<!DOCTYPE html>\n<html><head><meta charset=\"utf-8\"><title>%s</title></head><body>\n",
		html.EscapeString(r.Meta.Ticker))
	page.Write(body.Bytes())
	page.WriteString("</body></html>\n")
	return page.Bytes(), nil
}

type namedSeries struct {
	name   string
	points []models.PeriodPoint
}

// writeSeries emits one table per statement with the longest series'
// periods as columns. Statements with no data at all are skipped.
func writeSeries(b *strings.Builder, title string, series []namedSeries) {
	var header []models.PeriodPoint
	for _, s := range series {
		if len(s.points) > len(header) {
			header = s.points
		}
	}
	if len(header) == 0 {
		return
	}

	fmt.Fprintf(b, "## %s\n\n| Line item |", title)
	for _, p := range header {
		fmt.Fprintf(b, " %s |", p.Period)
	}
	b.WriteString("\n|---|")
	b.WriteString(strings.Repeat("---:|", len(header)))
	b.WriteString("\n")

	for _, s := range series {
		fmt.Fprintf(b, "| %s |", s.name)
		for i := range header {
			cell := "-"
			if i < len(s.points) && s.points[i].Value.Known {
				cell = num(s.points[i].Value.Amount)
			}
			fmt.Fprintf(b, " %s |", cell)
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
}

func num(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
