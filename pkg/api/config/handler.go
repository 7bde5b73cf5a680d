package config

import (
	"encoding/json"
	"net/http"

	coreconfig "github.com/RahilKothari9/supplier-analysis/pkg/core/config"
)

// Handler exposes the effective service configuration.
type Handler struct {
	Config *coreconfig.Config
}

func NewHandler(cfg *coreconfig.Config) *Handler {
	return &Handler{Config: cfg}
}

// HandleConfig returns the configuration with credentials masked.
func (h *Handler) HandleConfig(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return
	}
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(h.Config.Redacted())
}
