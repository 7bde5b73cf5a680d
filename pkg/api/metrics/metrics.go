package metrics

import (
	"strings"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	metricPrefix = "ledger_"

	ResultSuccess     = "success"
	ResultNotFound    = "not_found"
	ResultUnavailable = "unavailable"
	ResultError       = "error"
)

var (
	registerOnce sync.Once

	analysisTotal   *prometheus.CounterVec
	analysisLatency *prometheus.HistogramVec
	riskTierTotal   *prometheus.CounterVec
	insightTotal    *prometheus.CounterVec
)

// Init registers analysis metrics, plus connection gauges when a pool is
// given. Safe to call more than once.
func Init(pool *pgxpool.Pool) {
	registerOnce.Do(func() {
		analysisTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "analysis_total",
				Help: "Total supplier analyses by result",
			},
			[]string{"result"},
		)
		analysisLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "analysis_latency_seconds",
				Help:    "Supplier analysis latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"result"},
		)
		riskTierTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "risk_tier_total",
				Help: "Completed analyses by Altman risk tier",
			},
			[]string{"tier"},
		)
		insightTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "insight_total",
				Help: "Insight flags raised by severity",
			},
			[]string{"severity"},
		)

		prometheus.MustRegister(analysisTotal, analysisLatency, riskTierTotal, insightTotal)

		if pool != nil {
			registerPoolMetrics(pool)
		}
	})
}

func registerPoolMetrics(pool *pgxpool.Pool) {
	prometheus.MustRegister(
		prometheus.NewGaugeFunc(
			prometheus.GaugeOpts{
				Name: metricPrefix + "db_acquired_conns",
				Help: "Database connections currently in use",
			},
			func() float64 { return float64(pool.Stat().AcquiredConns()) },
		),
		prometheus.NewGaugeFunc(
			prometheus.GaugeOpts{
				Name: metricPrefix + "db_idle_conns",
				Help: "Idle database connections",
			},
			func() float64 { return float64(pool.Stat().IdleConns()) },
		),
	)
}

// ObserveAnalysis records one analysis outcome and its duration.
func ObserveAnalysis(result string, duration time.Duration) {
	if result == "" {
		result = ResultSuccess
	}
	if analysisTotal != nil {
		analysisTotal.WithLabelValues(result).Inc()
	}
	if analysisLatency != nil {
		analysisLatency.WithLabelValues(result).Observe(duration.Seconds())
	}
}

// ObserveReport counts the tier and insight severities of a finished report.
func ObserveReport(tier string, insights []string) {
	if riskTierTotal != nil {
		riskTierTotal.WithLabelValues(tier).Inc()
	}
	if insightTotal == nil {
		return
	}
	for _, line := range insights {
		insightTotal.WithLabelValues(Severity(line)).Inc()
	}
}

// Severity is the tag before the first colon of an insight line, as a
// label value ("critical", "red_flag", "stable").
func Severity(line string) string {
	tag, _, _ := strings.Cut(line, ":")
	tag = strings.ReplaceAll(strings.ToLower(strings.TrimSpace(tag)), " ", "_")
	if tag == "" || len(tag) > 16 {
		return "other"
	}
	return tag
}
