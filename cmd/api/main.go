package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/RahilKothari9/supplier-analysis/pkg/api/analyze"
	apiconfig "github.com/RahilKothari9/supplier-analysis/pkg/api/config"
	"github.com/RahilKothari9/supplier-analysis/pkg/api/metrics"
	"github.com/RahilKothari9/supplier-analysis/pkg/core/analysis"
	"github.com/RahilKothari9/supplier-analysis/pkg/core/config"
	"github.com/RahilKothari9/supplier-analysis/pkg/core/source"
	"github.com/RahilKothari9/supplier-analysis/pkg/core/store"
)

func main() {
	configPath := flag.String("config", config.DefaultPath, "Path to the YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Printf("[FATAL] %v\n", err)
		os.Exit(1)
	}
	config.SetupLogging(cfg.Logging)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	src, closeSource, err := source.Open(ctx, cfg)
	if err != nil {
		fmt.Printf("[FATAL] Failed to open %s source: %v\n", cfg.Source.Kind, err)
		os.Exit(1)
	}
	defer closeSource()
	fmt.Printf("[SOURCE] Using %s source\n", cfg.Source.Kind)

	metrics.Init(store.GetPool())

	engine := analysis.NewEngine(src,
		analysis.WithCurrency(cfg.Report.Currency),
		analysis.WithPeriodLabel(cfg.Report.PeriodLabel),
	)

	mux := http.NewServeMux()
	analyze.NewHandler(engine, cfg.Server.RequestTimeout, cfg.Server.AllowedOrigins).Register(mux)
	mux.HandleFunc("/api/config", apiconfig.NewHandler(cfg).HandleConfig)
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	fmt.Printf("API server starting on %s...\n", cfg.Server.Addr)
	fmt.Println("  - GET  /api/health")
	fmt.Println("  - GET  /api/analyze/{ticker}")
	fmt.Println("  - GET  /api/report/{ticker}  (HTML)")
	fmt.Println("  - GET  /api/config")
	fmt.Println("  - GET  /metrics")

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		fmt.Printf("[FATAL] Server failed to start: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("[API] Server stopped")
}
