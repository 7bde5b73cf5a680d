package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/spf13/cobra"

	"github.com/RahilKothari9/supplier-analysis/pkg/core/analysis"
	"github.com/RahilKothari9/supplier-analysis/pkg/core/calc"
	"github.com/RahilKothari9/supplier-analysis/pkg/core/report"
)

var (
	outputFormat string
	noColor      bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <ticker>...",
	Short: "Print the health report for one or more suppliers.",
	Long: `Fetch statements for each ticker and print liquidity, solvency,
cash-quality metrics, the Altman Z-Score and risk flags.

Examples:
  ledger analyze TATASTEEL.NS
  ledger analyze ACME.NS --source file --data-dir ./data --output json`,
	Args:    cobra.MinimumNArgs(1),
	PreRunE: setup,
	RunE: func(cmd *cobra.Command, args []string) error {
		failed := 0
		for _, ticker := range args {
			rep, err := engine.Analyze(rootCtx, ticker)
			if err != nil {
				failed++
				fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", ticker, err)
				continue
			}
			if err := writeReport(cmd.OutOrStdout(), rep, outputFormat, !noColor); err != nil {
				return err
			}
		}
		if failed > 0 {
			return fmt.Errorf("%d of %d analyses failed", failed, len(args))
		}
		return nil
	},
}

func init() {
	analyzeCmd.Flags().StringVarP(&outputFormat, "output", "o", "table", "Output format: table, json or markdown")
	analyzeCmd.Flags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	rootCmd.AddCommand(analyzeCmd)
}

func writeReport(w io.Writer, rep *analysis.Report, format string, useColors bool) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(rep)
	case "markdown":
		_, err := io.WriteString(w, report.Markdown(rep))
		return err
	case "table":
		return writeTable(w, rep, useColors)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

func writeTable(w io.Writer, rep *analysis.Report, useColors bool) error {
	red, yellow, green := fmt.Sprint, fmt.Sprint, fmt.Sprint
	if useColors && w == os.Stdout {
		red = color.New(color.FgRed).SprintFunc()
		yellow = color.New(color.FgYellow).SprintFunc()
		green = color.New(color.FgGreen).SprintFunc()
	}

	tier := rep.Score.Tier
	switch tier {
	case calc.TierHigh:
		tier = red(tier)
	case calc.TierModerate:
		tier = yellow(tier)
	case calc.TierSafe:
		tier = green(tier)
	}

	if _, err := fmt.Fprintf(w, "%s (%s, %s)\n", rep.Meta.Ticker, rep.Meta.Currency, rep.Meta.Period); err != nil {
		return err
	}

	table := tablewriter.NewWriter(w)
	defer func() { _ = table.Close() }()

	table.Header([]string{"Metric", "Value"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	score := "n/a"
	if rep.Score.Computable {
		score = num(rep.Score.Value)
	}
	data := [][]string{
		{"Altman Z-Score", score},
		{"Risk level", tier},
		{"Current ratio", num(rep.Liquidity.CurrentRatio)},
		{"Inventory days", strconv.Itoa(rep.Liquidity.InvDays)},
		{"Receivable days", strconv.Itoa(rep.Liquidity.RecDays)},
		{"Payable days", strconv.Itoa(rep.Liquidity.PayDays)},
		{"Cash conversion cycle", strconv.Itoa(rep.Liquidity.CCCDays)},
		{"Debt to equity", num(rep.Solvency.DebtToEquity)},
		{"Interest coverage", num(rep.Solvency.InterestCoverage)},
		{"Gross margin %", num(rep.Quality.GrossMargin)},
		{"Cash quality gap", num(rep.Quality.QualityGap)},
		{"Free cash flow", num(rep.Quality.FreeCashFlow)},
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	for _, line := range rep.Insights {
		if _, err := fmt.Fprintf(w, "  * %s\n", line); err != nil {
			return err
		}
	}
	return nil
}

func num(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
