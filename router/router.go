package router

import (
	"time"

	"github.com/SaorsaGrowth/saorsa-site-backend/config"
	"github.com/SaorsaGrowth/saorsa-site-backend/handlers"
	"github.com/SaorsaGrowth/saorsa-site-backend/middleware"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Dependencies struct holds all dependencies required for setting up routes.
type Dependencies struct {
	Config        *config.Config
	RelayHandler  *handlers.RelayHandler
	PostHandler   *handlers.PostHandler
	HealthHandler *handlers.HealthHandler
	// RedisClient backs relay rate limiting; nil disables it.
	RedisClient *redis.Client
	Logger      *zap.SugaredLogger
}

// SetupRouter configures and returns the main Gin engine with all routes defined.
func SetupRouter(deps Dependencies) *gin.Engine {
	r := gin.Default()

	// Global Middleware
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.SecurityHeadersMiddleware(deps.Config))
	r.Use(middleware.CORSMiddleware(&deps.Config.Server))

	// Non-POST verbs on the relay endpoints must answer 405, not 404.
	r.HandleMethodNotAllowed = true
	r.NoMethod(handlers.MethodNotAllowed)

	if err := r.SetTrustedProxies(deps.Config.Server.TrustedProxies); err != nil && deps.Logger != nil {
		deps.Logger.Warnw("Failed to set trusted proxies", "error", err)
	}

	// Health Routes (typically don't require auth)
	r.GET("/health", deps.HealthHandler.DetailedHealth)
	r.GET("/health/liveness", deps.HealthHandler.LivenessCheck)
	r.GET("/health/readiness", deps.HealthHandler.ReadinessCheck)

	// Versioned API Group (v1)
	v1 := r.Group("/v1")
	{
		// Relay Routes: unauthenticated form forwarders, rate limited per IP
		relayRoutes := v1.Group("/relay")
		relayRoutes.Use(middleware.RelayEnvelope())
		relayRoutes.Use(middleware.RelayRateLimiter(
			deps.RedisClient,
			deps.Config.RateLimit.RelayRequestsPerWindow,
			time.Duration(deps.Config.RateLimit.WindowSeconds)*time.Second,
		))
		{
			relayRoutes.POST("/contact", deps.RelayHandler.SubmitContact)
			relayRoutes.POST("/insights-signup", deps.RelayHandler.SubmitInsights)
		}

		// Post Routes: normalized feed content for the site frontend
		postRoutes := v1.Group("/posts")
		{
			postRoutes.GET("", deps.PostHandler.ListPosts)
			postRoutes.GET("/:slug", deps.PostHandler.GetPost)
		}
	}

	return r
}
