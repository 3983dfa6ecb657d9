package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/SaorsaGrowth/saorsa-site-backend/config"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func performWithConfig(cfg *config.Config) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(SecurityHeadersMiddleware(cfg))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestSecurityHeaders_Development(t *testing.T) {
	cfg := &config.Config{Server: config.ServerConfig{Environment: config.EnvDevelopment}}
	w := performWithConfig(cfg)

	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "strict-origin-when-cross-origin", w.Header().Get("Referrer-Policy"))
	assert.Empty(t, w.Header().Get("Strict-Transport-Security"), "HSTS must be off outside production")
}

func TestSecurityHeaders_Production(t *testing.T) {
	cfg := &config.Config{Server: config.ServerConfig{Environment: config.EnvProduction}}
	w := performWithConfig(cfg)

	assert.Equal(t, "max-age=31536000; includeSubDomains", w.Header().Get("Strict-Transport-Security"))
}
