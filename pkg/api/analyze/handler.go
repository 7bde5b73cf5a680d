package analyze

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/phuslu/log"

	"github.com/RahilKothari9/supplier-analysis/pkg/api/metrics"
	"github.com/RahilKothari9/supplier-analysis/pkg/core/analysis"
	"github.com/RahilKothari9/supplier-analysis/pkg/core/report"
)

const (
	ServiceStatus = "operational"
	ServiceTheme  = "Bombay Ledger"

	RequestIDHeader = "X-Request-ID"
)

// Analyzer is satisfied by *analysis.Engine.
type Analyzer interface {
	Analyze(ctx context.Context, id string) (*analysis.Report, error)
}

type HealthResponse struct {
	Status string `json:"status"`
	Theme  string `json:"theme"`
}

type ErrorResponse struct {
	Detail string `json:"detail"`
}

// Handler serves the health, analysis and report endpoints.
type Handler struct {
	Engine         Analyzer
	Timeout        time.Duration
	AllowedOrigins []string
}

func NewHandler(engine Analyzer, timeout time.Duration, origins []string) *Handler {
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return &Handler{
		Engine:         engine,
		Timeout:        timeout,
		AllowedOrigins: origins,
	}
}

// Register mounts the endpoints on mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/api/health", h.HandleHealth)
	mux.HandleFunc("/api/analyze/{ticker}", h.HandleAnalyze)
	mux.HandleFunc("/api/report/{ticker}", h.HandleReport)
}

func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	if h.preflight(w, r) {
		return
	}
	writeJSON(w, http.StatusOK, HealthResponse{Status: ServiceStatus, Theme: ServiceTheme})
}

// HandleAnalyze returns the JSON report for the ticker in the path.
func (h *Handler) HandleAnalyze(w http.ResponseWriter, r *http.Request) {
	if h.preflight(w, r) {
		return
	}
	rep, ok := h.run(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, rep)
}

// HandleReport returns the same analysis rendered as an HTML page.
func (h *Handler) HandleReport(w http.ResponseWriter, r *http.Request) {
	if h.preflight(w, r) {
		return
	}
	rep, ok := h.run(w, r)
	if !ok {
		return
	}
	page, err := report.HTML(rep)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Detail: err.Error()})
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(page)
}

// run executes one analysis and writes the error response itself on failure.
func (h *Handler) run(w http.ResponseWriter, r *http.Request) (*analysis.Report, bool) {
	requestID := r.Header.Get(RequestIDHeader)
	if requestID == "" {
		requestID = uuid.NewString()
	}
	w.Header().Set(RequestIDHeader, requestID)

	ticker := r.PathValue("ticker")
	log.Info().Str("request_id", requestID).Str("ticker", ticker).Str("path", r.URL.Path).Msg("analysis requested")

	ctx := r.Context()
	if h.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.Timeout)
		defer cancel()
	}

	start := time.Now()
	rep, err := h.Engine.Analyze(ctx, ticker)
	if err != nil {
		status, result := classify(err)
		metrics.ObserveAnalysis(result, time.Since(start))
		log.Error().Str("request_id", requestID).Str("ticker", ticker).Int("status", status).Err(err).Msg("analysis request failed")
		writeJSON(w, status, ErrorResponse{Detail: detail(err)})
		return nil, false
	}

	metrics.ObserveAnalysis(metrics.ResultSuccess, time.Since(start))
	metrics.ObserveReport(rep.Score.Tier, rep.Insights)
	return rep, true
}

func classify(err error) (int, string) {
	switch {
	case errors.Is(err, analysis.ErrNotFound):
		return http.StatusNotFound, metrics.ResultNotFound
	case errors.Is(err, analysis.ErrDataUnavailable):
		return http.StatusNotFound, metrics.ResultUnavailable
	default:
		return http.StatusInternalServerError, metrics.ResultError
	}
}

func detail(err error) string {
	var ae *analysis.AnalysisError
	if errors.As(err, &ae) {
		return ae.Detail()
	}
	return err.Error()
}

// preflight sets CORS headers and answers OPTIONS and non-GET requests.
// It reports whether the response has been written.
func (h *Handler) preflight(w http.ResponseWriter, r *http.Request) bool {
	origin := r.Header.Get("Origin")
	switch {
	case slices.Contains(h.AllowedOrigins, "*"):
		w.Header().Set("Access-Control-Allow-Origin", "*")
	case origin != "" && slices.Contains(h.AllowedOrigins, origin):
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Add("Vary", "Origin")
	}
	w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", strings.Join([]string{"Content-Type", RequestIDHeader}, ", "))

	switch r.Method {
	case http.MethodOptions:
		w.WriteHeader(http.StatusNoContent)
		return true
	case http.MethodGet, http.MethodHead:
		return false
	default:
		writeJSON(w, http.StatusMethodNotAllowed, ErrorResponse{Detail: "Method not allowed"})
		return true
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warn().Err(err).Msg("failed to write response")
	}
}
