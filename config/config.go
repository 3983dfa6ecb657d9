// Package config handles loading and validation of application configuration
// from environment variables and potentially configuration files.
package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/SaorsaGrowth/saorsa-site-backend/logger"
	"github.com/spf13/viper"
)

// Environment represents the application's running environment (development or production).
type Environment string

const (
	EnvDevelopment Environment = "development"
	EnvProduction  Environment = "production"

	// Built-in HubSpot defaults. Overridable via HUBSPOT_* environment
	// variables; kept here so the service works out of the box.
	defaultPortalID         = "48890556"
	defaultContactFormGUID  = "92102b78-8a05-4729-bc08-8bf40a6b9bdd"
	defaultInsightsFormGUID = "b2fdbefa-fa98-4e2b-af8b-d9e07bb102a9"
	defaultRegion           = "na2"

	// Substack feed defaults.
	defaultFeedURL       = "https://conduitofvalue.substack.com/feed"
	defaultFeedAuthor    = "Saorsa Growth Partners"
	defaultRevalidateSec = 3600
)

// ServerConfig holds server-specific configuration.
type ServerConfig struct {
	Environment    Environment `mapstructure:"ENVIRONMENT" yaml:"environment"`
	Port           string      `mapstructure:"PORT" yaml:"port"`
	AllowedOrigins []string    `mapstructure:"ALLOWED_ORIGINS" yaml:"allowed_origins"`
	Version        string      `mapstructure:"VERSION" yaml:"version"`
	// TrustedProxies is a list of CIDR ranges or IPs of trusted reverse proxies.
	// If empty, X-Forwarded-For headers are ignored entirely (safe default).
	TrustedProxies []string `mapstructure:"TRUSTED_PROXIES" yaml:"trusted_proxies"`
}

// HubSpotConfig holds the HubSpot Forms submission API settings for the relay.
type HubSpotConfig struct {
	PortalID         string `mapstructure:"PORTAL_ID" yaml:"portal_id"`
	ContactFormGUID  string `mapstructure:"CONTACT_FORM_GUID" yaml:"contact_form_guid"`
	InsightsFormGUID string `mapstructure:"INSIGHTS_FORM_GUID" yaml:"insights_form_guid"`
	// Region selects the HubSpot data center. "na1" and "na2" are served by
	// the global api.hsforms.com host; any other region gets its own subdomain.
	Region         string `mapstructure:"REGION" yaml:"region"`
	TimeoutSeconds int    `mapstructure:"TIMEOUT_SECONDS" yaml:"timeout_seconds"`
}

// FeedConfig holds the Substack feed source settings for the post normalizer.
type FeedConfig struct {
	URL string `mapstructure:"URL" yaml:"url"`
	// RevalidateSeconds is how long a fetched post list may be served from
	// cache before a fresh fetch is required.
	RevalidateSeconds int    `mapstructure:"REVALIDATE_SECONDS" yaml:"revalidate_seconds"`
	TimeoutSeconds    int    `mapstructure:"TIMEOUT_SECONDS" yaml:"timeout_seconds"`
	DefaultAuthor     string `mapstructure:"DEFAULT_AUTHOR" yaml:"default_author"`
}

// RevalidateWindow returns the cache TTL as a duration.
func (c *FeedConfig) RevalidateWindow() time.Duration {
	return time.Duration(c.RevalidateSeconds) * time.Second
}

// RedisConfig holds Redis connection details. Redis is optional: when
// Enabled is false the post cache falls back to an in-process copy and
// relay rate limiting is skipped.
type RedisConfig struct {
	Enabled  bool   `mapstructure:"ENABLED" yaml:"enabled"`
	Address  string `mapstructure:"ADDRESS" yaml:"address"`
	Password string `mapstructure:"PASSWORD" yaml:"password"`
	DB       int    `mapstructure:"DB" yaml:"db"`
	UseTLS   bool   `mapstructure:"USE_TLS" yaml:"use_tls"`
}

// RateLimitConfig holds configuration for rate limiting the relay endpoints.
type RateLimitConfig struct {
	// Maximum relay submissions per window per client IP
	RelayRequestsPerWindow int `mapstructure:"RELAY_REQUESTS_PER_WINDOW" yaml:"relay_requests_per_window"`
	// Window duration in seconds for rate limiting
	WindowSeconds int `mapstructure:"WINDOW_SECONDS" yaml:"window_seconds"`
}

// Config aggregates all application configuration sections.
type Config struct {
	Server    ServerConfig    `mapstructure:"SERVER" yaml:"server"`
	HubSpot   HubSpotConfig   `mapstructure:"HUBSPOT" yaml:"hubspot"`
	Feed      FeedConfig      `mapstructure:"FEED" yaml:"feed"`
	Redis     RedisConfig     `mapstructure:"REDIS" yaml:"redis"`
	RateLimit RateLimitConfig `mapstructure:"RATE_LIMIT" yaml:"rate_limit"`
}

// IsDevelopment returns true if the application is running in development environment.
func (c *Config) IsDevelopment() bool {
	return c.Server.Environment == EnvDevelopment
}

// IsProduction returns true if the application is running in production environment.
func (c *Config) IsProduction() bool {
	return c.Server.Environment == EnvProduction
}

// bindEnvVars binds multiple environment variables to config keys.
// Format: []{configKey, envVar}
func bindEnvVars(v *viper.Viper, bindings [][2]string) error {
	for _, b := range bindings {
		if err := v.BindEnv(b[0], b[1]); err != nil {
			return fmt.Errorf("failed to bind %s: %w", b[0], err)
		}
	}
	return nil
}

// LoadConfig loads configuration from environment variables using Viper,
// sets default values, binds environment variables to config struct fields,
// unmarshals the configuration, and validates it.
func LoadConfig() (*Config, error) {
	v := viper.New()
	log := logger.GetLogger()

	v.SetDefault("SERVER.ENVIRONMENT", EnvDevelopment)
	v.SetDefault("SERVER.PORT", "8080")
	v.SetDefault("SERVER.ALLOWED_ORIGINS", []string{"*"})
	v.SetDefault("SERVER.TRUSTED_PROXIES", []string{}) // Empty = trust no one (safe default)
	v.SetDefault("HUBSPOT.PORTAL_ID", defaultPortalID)
	v.SetDefault("HUBSPOT.CONTACT_FORM_GUID", defaultContactFormGUID)
	v.SetDefault("HUBSPOT.INSIGHTS_FORM_GUID", defaultInsightsFormGUID)
	v.SetDefault("HUBSPOT.REGION", defaultRegion)
	v.SetDefault("HUBSPOT.TIMEOUT_SECONDS", 10)
	v.SetDefault("FEED.URL", defaultFeedURL)
	v.SetDefault("FEED.REVALIDATE_SECONDS", defaultRevalidateSec)
	v.SetDefault("FEED.TIMEOUT_SECONDS", 10)
	v.SetDefault("FEED.DEFAULT_AUTHOR", defaultFeedAuthor)
	v.SetDefault("REDIS.ENABLED", false)
	v.SetDefault("REDIS.ADDRESS", "localhost:6379")
	v.SetDefault("REDIS.DB", 0)
	v.SetDefault("RATE_LIMIT.RELAY_REQUESTS_PER_WINDOW", 10)
	v.SetDefault("RATE_LIMIT.WINDOW_SECONDS", 60)

	envBindings := [][2]string{
		// Server config
		{"SERVER.ENVIRONMENT", "ENVIRONMENT"},
		{"SERVER.PORT", "PORT"},
		{"SERVER.ALLOWED_ORIGINS", "ALLOWED_ORIGINS"},
		{"SERVER.TRUSTED_PROXIES", "TRUSTED_PROXIES"},
		// HubSpot config
		{"HUBSPOT.PORTAL_ID", "HUBSPOT_PORTAL_ID"},
		{"HUBSPOT.CONTACT_FORM_GUID", "HUBSPOT_FORM_GUID"},
		{"HUBSPOT.INSIGHTS_FORM_GUID", "HUBSPOT_INSIGHTS_FORM_GUID"},
		{"HUBSPOT.REGION", "HUBSPOT_REGION"},
		{"HUBSPOT.TIMEOUT_SECONDS", "HUBSPOT_TIMEOUT_SECONDS"},
		// Feed config
		{"FEED.URL", "FEED_URL"},
		{"FEED.REVALIDATE_SECONDS", "FEED_REVALIDATE_SECONDS"},
		{"FEED.TIMEOUT_SECONDS", "FEED_TIMEOUT_SECONDS"},
		{"FEED.DEFAULT_AUTHOR", "FEED_DEFAULT_AUTHOR"},
		// Redis config
		{"REDIS.ENABLED", "REDIS_ENABLED"},
		{"REDIS.ADDRESS", "REDIS_ADDRESS"},
		{"REDIS.PASSWORD", "REDIS_PASSWORD"},
		{"REDIS.DB", "REDIS_DB"},
		{"REDIS.USE_TLS", "REDIS_USE_TLS"},
		// Rate limit config
		{"RATE_LIMIT.RELAY_REQUESTS_PER_WINDOW", "RATE_LIMIT_RELAY_REQUESTS_PER_WINDOW"},
		{"RATE_LIMIT.WINDOW_SECONDS", "RATE_LIMIT_WINDOW_SECONDS"},
	}

	if err := bindEnvVars(v, envBindings); err != nil {
		return nil, err
	}

	log.Infow("Configuration loaded",
		"environment", v.GetString("SERVER.ENVIRONMENT"),
		"server_port", v.GetString("SERVER.PORT"),
		"allowed_origins", v.GetString("SERVER.ALLOWED_ORIGINS"),
		"hubspot_region", v.GetString("HUBSPOT.REGION"),
		"feed_url", v.GetString("FEED.URL"),
		"feed_revalidate_seconds", v.GetInt("FEED.REVALIDATE_SECONDS"),
		"redis_enabled", v.GetBool("REDIS.ENABLED"),
	)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config unmarshal failed: %w", err)
	}

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	log.Info("Configuration validated successfully")
	return &cfg, nil
}

// validateConfig checks if the loaded configuration values are valid.
func validateConfig(cfg *Config) error {
	log := logger.GetLogger()

	// Validate Server Config
	if cfg.Server.Port == "" {
		return fmt.Errorf("server port is required")
	}
	// Validate AllowedOrigins format if not wildcard
	if !containsWildcard(cfg.Server.AllowedOrigins) {
		for _, origin := range cfg.Server.AllowedOrigins {
			if _, err := url.ParseRequestURI(origin); err != nil {
				return fmt.Errorf("invalid allowed origin '%s': %w", origin, err)
			}
		}
	}

	// Validate HubSpot Config
	if cfg.HubSpot.PortalID == "" {
		return fmt.Errorf("hubspot portal ID is required")
	}
	if cfg.HubSpot.ContactFormGUID == "" {
		return fmt.Errorf("hubspot contact form GUID is required")
	}
	if cfg.HubSpot.InsightsFormGUID == "" {
		return fmt.Errorf("hubspot insights form GUID is required")
	}
	if cfg.HubSpot.Region == "" {
		return fmt.Errorf("hubspot region is required")
	}
	if cfg.HubSpot.TimeoutSeconds <= 0 {
		return fmt.Errorf("hubspot timeout must be positive")
	}

	// Validate Feed Config
	if _, err := url.ParseRequestURI(cfg.Feed.URL); err != nil {
		return fmt.Errorf("invalid feed URL '%s': %w", cfg.Feed.URL, err)
	}
	if cfg.Feed.RevalidateSeconds <= 0 {
		return fmt.Errorf("feed revalidate seconds must be positive")
	}
	if cfg.Feed.RevalidateSeconds < 900 || cfg.Feed.RevalidateSeconds > 3600 {
		log.Warnw("Feed revalidate window outside the recommended 900-3600s range",
			"revalidate_seconds", cfg.Feed.RevalidateSeconds)
	}
	if cfg.Feed.TimeoutSeconds <= 0 {
		return fmt.Errorf("feed timeout must be positive")
	}

	// Validate Redis Config
	if cfg.Redis.Enabled {
		if cfg.Redis.Address == "" {
			return fmt.Errorf("redis address is required when redis is enabled")
		}
		if cfg.Redis.Password == "" && cfg.Redis.UseTLS {
			log.Warn("Redis password is not set, but TLS is enabled. Ensure this is correct for your Redis provider.")
		}
	}

	// Validate RateLimit config
	if cfg.RateLimit.RelayRequestsPerWindow <= 0 {
		return fmt.Errorf("rate limit relay requests per window must be positive")
	}
	if cfg.RateLimit.WindowSeconds <= 0 {
		return fmt.Errorf("rate limit window seconds must be positive")
	}

	return nil
}

// containsWildcard checks if the list of allowed origins contains the wildcard "*".
func containsWildcard(origins []string) bool {
	for _, origin := range origins {
		if origin == "*" {
			return true
		}
	}
	return false
}
