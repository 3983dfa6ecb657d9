package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/SaorsaGrowth/saorsa-site-backend/types"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthEndpoints(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewHealthHandler("1.2.3")

	r := gin.New()
	r.GET("/health", h.DetailedHealth)
	r.GET("/health/liveness", h.LivenessCheck)
	r.GET("/health/readiness", h.ReadinessCheck)

	t.Run("liveness", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health/liveness", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("readiness", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health/readiness", nil))
		assert.Equal(t, http.StatusOK, w.Code)

		var resp types.HealthResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, types.HealthStatusUp, resp.Status)
	})

	t.Run("detailed", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
		assert.Equal(t, http.StatusOK, w.Code)

		var resp types.HealthResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "1.2.3", resp.Version)
		assert.NotEmpty(t, resp.Uptime)
	})
}
