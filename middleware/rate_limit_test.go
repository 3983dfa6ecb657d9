package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// httptest requests carry RemoteAddr 192.0.2.1:1234
const testRateKey = "ratelimit:relay:192.0.2.1"

func buildRateLimitRouter(limiter gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(ErrorHandler())
	r.POST("/relay", RelayEnvelope(), limiter, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r
}

func postRelay(r *gin.Engine) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/relay", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRelayRateLimiter_UnderLimit(t *testing.T) {
	db, mock := redismock.NewClientMock()
	window := time.Minute

	mock.ExpectTxPipeline()
	mock.ExpectIncr(testRateKey).SetVal(1)
	mock.ExpectExpire(testRateKey, window).SetVal(true)
	mock.ExpectTxPipelineExec()

	r := buildRateLimitRouter(RelayRateLimiter(db, 10, window))
	w := postRelay(r)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "10", w.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "9", w.Header().Get("X-RateLimit-Remaining"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRelayRateLimiter_OverLimit(t *testing.T) {
	db, mock := redismock.NewClientMock()
	window := time.Minute

	mock.ExpectTxPipeline()
	mock.ExpectIncr(testRateKey).SetVal(11)
	mock.ExpectExpire(testRateKey, window).SetVal(true)
	mock.ExpectTxPipelineExec()
	mock.ExpectTTL(testRateKey).SetVal(30 * time.Second)

	r := buildRateLimitRouter(RelayRateLimiter(db, 10, window))
	w := postRelay(r)

	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "30", w.Header().Get("Retry-After"))

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, false, body["ok"])
	assert.Equal(t, "Too many requests. Please try again later.", body["message"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRelayRateLimiter_NilClientDisablesLimiting(t *testing.T) {
	r := buildRateLimitRouter(RelayRateLimiter(nil, 1, time.Minute))

	for i := 0; i < 5; i++ {
		w := postRelay(r)
		assert.Equal(t, http.StatusOK, w.Code)
	}
}

func TestRelayRateLimiter_RedisFailureLetsRequestThrough(t *testing.T) {
	db, mock := redismock.NewClientMock()
	window := time.Minute

	mock.ExpectTxPipeline()
	mock.ExpectIncr(testRateKey).SetErr(assert.AnError)

	r := buildRateLimitRouter(RelayRateLimiter(db, 10, window))
	w := postRelay(r)

	assert.Equal(t, http.StatusOK, w.Code, "forms must stay available when redis is down")
}
