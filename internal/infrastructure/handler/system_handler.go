package handler

import (
	"encoding/json"
	"net/http"

	"github.com/damon-houk/exchange-quote-relay/internal/infrastructure/logger"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// SystemHandler serves the unauthenticated health and metrics endpoints
type SystemHandler struct {
	gatherer prometheus.Gatherer
	logger   logger.Logger
}

// NewSystemHandler creates a system handler exposing gatherer on /metrics.
// A nil gatherer uses prometheus.DefaultGatherer.
func NewSystemHandler(gatherer prometheus.Gatherer, log logger.Logger) *SystemHandler {
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}

	if log == nil {
		log = logger.GetDefaultLogger()
	}

	return &SystemHandler{
		gatherer: gatherer,
		logger:   log,
	}
}

// Health reports liveness
func (h *SystemHandler) Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(HealthResponse{Status: "ok"})
}

// RegisterRoutes registers the system routes
func (h *SystemHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/health", h.Health).Methods("GET")
	router.Handle("/metrics", promhttp.HandlerFor(h.gatherer, promhttp.HandlerOpts{})).Methods("GET")

	h.logger.Info("System routes registered", map[string]interface{}{
		"routes": []string{
			"GET /health",
			"GET /metrics",
		},
	})
}
