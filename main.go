package main

import (
	"crypto/tls"
	"time"

	"github.com/SaorsaGrowth/saorsa-site-backend/config"
	"github.com/SaorsaGrowth/saorsa-site-backend/handlers"
	"github.com/SaorsaGrowth/saorsa-site-backend/logger"
	"github.com/SaorsaGrowth/saorsa-site-backend/pkg/hubspot"
	"github.com/SaorsaGrowth/saorsa-site-backend/pkg/substack"
	"github.com/SaorsaGrowth/saorsa-site-backend/router"
	"github.com/SaorsaGrowth/saorsa-site-backend/services"
	"github.com/redis/go-redis/v9"
)

func main() {
	// Initialize logger
	logger.InitLogger()
	log := logger.GetLogger()
	defer func() {
		_ = logger.Close()
	}()

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize Redis client with TLS in production. Redis is optional:
	// without it the post cache is per-process and rate limiting is off.
	var redisClient *redis.Client
	if cfg.Redis.Enabled {
		redisOptions := &redis.Options{
			Addr:     cfg.Redis.Address,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		}

		if cfg.Redis.UseTLS || cfg.IsProduction() {
			redisOptions.TLSConfig = &tls.Config{
				MinVersion: tls.VersionTLS12,
			}
		}

		redisClient = redis.NewClient(redisOptions)
	}

	// External clients
	hubspotClient := hubspot.NewClient(
		cfg.HubSpot.PortalID,
		cfg.HubSpot.Region,
		time.Duration(cfg.HubSpot.TimeoutSeconds)*time.Second,
	)
	feedClient := substack.NewClient(
		cfg.Feed.URL,
		cfg.Feed.DefaultAuthor,
		time.Duration(cfg.Feed.TimeoutSeconds)*time.Second,
	)

	// Services
	postService := services.NewPostService(feedClient, redisClient, cfg.Feed.RevalidateWindow())

	// Handlers
	relayHandler := handlers.NewRelayHandler(hubspotClient, &cfg.HubSpot)
	postHandler := handlers.NewPostHandler(postService)
	healthHandler := handlers.NewHealthHandler(cfg.Server.Version)

	// Router setup
	r := router.SetupRouter(router.Dependencies{
		Config:        cfg,
		RelayHandler:  relayHandler,
		PostHandler:   postHandler,
		HealthHandler: healthHandler,
		RedisClient:   redisClient,
		Logger:        log,
	})

	log.Infof("Starting server on port %s", cfg.Server.Port)
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
