package middleware

import (
	"fmt"
	"time"

	apperrors "github.com/SaorsaGrowth/saorsa-site-backend/errors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// RelayRateLimiter limits form submissions per client IP using Redis INCR
// and EXPIRE over a fixed window. The relay endpoints are unauthenticated
// and attract bots, so the limit is deliberately low.
//
// A nil Redis client disables limiting; Redis failures also let the request
// through so the forms stay available when the cache is down.
func RelayRateLimiter(redisClient *redis.Client, limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if redisClient == nil {
			c.Next()
			return
		}

		key := fmt.Sprintf("ratelimit:relay:%s", c.ClientIP())

		pipe := redisClient.TxPipeline()
		incr := pipe.Incr(c.Request.Context(), key)
		pipe.Expire(c.Request.Context(), key, window)

		if _, err := pipe.Exec(c.Request.Context()); err != nil {
			c.Next()
			return
		}

		count := incr.Val()
		if count > int64(limit) {
			ttl, err := redisClient.TTL(c.Request.Context(), key).Result()
			if err != nil || ttl < 0 {
				ttl = window
			}

			c.Header("X-RateLimit-Limit", fmt.Sprintf("%d", limit))
			c.Header("X-RateLimit-Remaining", "0")
			c.Header("Retry-After", fmt.Sprintf("%d", int(ttl.Seconds())))

			_ = c.Error(apperrors.RateLimited("Too many requests. Please try again later."))
			c.Abort()
			return
		}

		remaining := limit - int(count)
		if remaining < 0 {
			remaining = 0
		}
		c.Header("X-RateLimit-Limit", fmt.Sprintf("%d", limit))
		c.Header("X-RateLimit-Remaining", fmt.Sprintf("%d", remaining))

		c.Next()
	}
}
