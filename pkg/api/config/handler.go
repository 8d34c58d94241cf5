package config

import (
	"encoding/json"
	"net/http"

	"financials_automation/pkg/core/compliance"
)

// Handler exposes the rule configuration the engine is running with.
type Handler struct {
	Cfg compliance.Config
}

// NewHandler creates a new config handler.
func NewHandler(cfg compliance.Config) *Handler {
	return &Handler{Cfg: cfg}
}

func (h *Handler) HandleConfig(w http.ResponseWriter, r *http.Request) {
	// Add CORS headers for local dev
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(h.Cfg)
}
