package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/RahilKothari9/supplier-analysis/pkg/core/analysis"
	"github.com/RahilKothari9/supplier-analysis/pkg/core/config"
	"github.com/RahilKothari9/supplier-analysis/pkg/core/source"
)

// Set by the linker at release time.
var version = "dev"

var rootCtx = context.Background()

var (
	configPath string
	sourceKind string
	dataDir    string
)

// engine and closeSource are populated by setup.
var (
	engine      *analysis.Engine
	closeSource = func() {}
)

var rootCmd = &cobra.Command{
	Use:           "ledger",
	Short:         "Assess supplier financial health from published statements.",
	Version:       version,
	SilenceErrors: true,
	SilenceUsage:  true,
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
}

func init() {
	// Finalizers run even when RunE fails, unlike PersistentPostRun.
	cobra.OnFinalize(func() { closeSource() })

	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultPath, "YAML config file")
	rootCmd.PersistentFlags().StringVar(&sourceKind, "source", "", "Override source kind (file, xlsx, http, postgres)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "Override the file/xlsx data directory")
}

// setup loads config, applies flag overrides and opens the data source.
func setup(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if sourceKind != "" {
		cfg.Source.Kind = sourceKind
	}
	if dataDir != "" {
		cfg.Source.Dir = dataDir
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	config.SetupLogging(cfg.Logging)

	src, closeFn, err := source.Open(rootCtx, cfg)
	if err != nil {
		return fmt.Errorf("failed to open %s source: %w", cfg.Source.Kind, err)
	}
	closeSource = closeFn
	engine = analysis.NewEngine(src,
		analysis.WithCurrency(cfg.Report.Currency),
		analysis.WithPeriodLabel(cfg.Report.PeriodLabel),
	)
	return nil
}
