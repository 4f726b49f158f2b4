package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// HealthHandler reports whether the client can currently reach its backend
type HealthHandler struct {
	backendAvailable func() bool
}

// NewHealthHandler creates a new HealthHandler
func NewHealthHandler(backendAvailable func() bool) *HealthHandler {
	return &HealthHandler{backendAvailable: backendAvailable}
}

// Healthcheck handles GET /api/healthcheck
func (h *HealthHandler) Healthcheck(c *gin.Context) {
	c.Header("Cache-Control", "no-cache, no-store, max-age=0, must-revalidate")

	if !h.backendAvailable() {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "unavailable",
			"reason": "backend circuit open",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
