package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/birthdaysvc/birthdayd/pkg/serializers"
)

// HealthResponse represents the health check response body.
type HealthResponse struct {
	Status string `json:"status"`
}

// handleHealth handles GET /health.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	serializers.RespondJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
}

// metricsHandler serves the Prometheus exposition endpoint.
func metricsHandler() http.Handler {
	return promhttp.Handler()
}
