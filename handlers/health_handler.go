package handlers

import (
	"net/http"
	"time"

	"github.com/SaorsaGrowth/saorsa-site-backend/types"
	"github.com/gin-gonic/gin"
)

type HealthHandler struct {
	version   string
	startedAt time.Time
}

func NewHealthHandler(version string) *HealthHandler {
	return &HealthHandler{
		version:   version,
		startedAt: time.Now(),
	}
}

// LivenessCheck handles kubernetes liveness probe
func (h *HealthHandler) LivenessCheck(c *gin.Context) {
	c.Status(http.StatusOK)
}

// ReadinessCheck handles kubernetes readiness probe. The service has no
// hard dependencies of its own (redis is optional, upstreams are checked
// per request), so ready means the process is serving.
func (h *HealthHandler) ReadinessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, types.HealthResponse{Status: types.HealthStatusUp})
}

// DetailedHealth provides detailed health information
func (h *HealthHandler) DetailedHealth(c *gin.Context) {
	c.JSON(http.StatusOK, types.HealthResponse{
		Status:  types.HealthStatusUp,
		Version: h.version,
		Uptime:  time.Since(h.startedAt).Round(time.Second).String(),
	})
}
