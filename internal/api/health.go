package api

import (
	"net/http"
	"time"

	"github.com/tinto-app/backend/internal/api/respond"
)

// HealthHandler reports aggregate service health.
type HealthHandler struct {
	isHealthy func() bool
}

// NewHealthHandler creates a health handler backed by the given probe.
func NewHealthHandler(isHealthy func() bool) *HealthHandler {
	return &HealthHandler{isHealthy: isHealthy}
}

// CheckHealth handles GET /health.
// Always returns 200; the body reports healthy/unhealthy.
func (h *HealthHandler) CheckHealth(w http.ResponseWriter, r *http.Request) {
	status := "unhealthy"
	if h.isHealthy() {
		status = "healthy"
	}
	respond.WriteData(w, http.StatusOK, map[string]interface{}{
		"status":    status,
		"timestamp": time.Now().Format(time.RFC3339),
	})
}
