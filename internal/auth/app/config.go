package app

import (
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/fernwood/authd/pkg/jwtx"
)

type Config struct {
	AccessSecret  string        // Required: HMAC secret for access tokens
	AccessTTL     time.Duration // Optional: access token lifetime (default: 15m)
	RefreshSecret string        // Required: HMAC secret for refresh tokens, distinct from AccessSecret
	RefreshTTL    time.Duration // Optional: refresh token lifetime (default: 7 days)

	DatabaseFile        string        // Optional: path to SQLite database file (default: ./auth.db)
	Env                 string        // Environment (dev, staging, prod) (default: dev)
	LogLevel            string        // Log level (debug, info, warn, error) (default: info)
	LogFormat           string        // Log format (json, text) (default: json)
	Port                int           // HTTP server port (default: 8080)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)
}

func LoadConfig() Config {
	return Config{
		AccessSecret:  os.Getenv("AUTH_ACCESS_SECRET"),
		AccessTTL:     getEnvDurationOrDefault("AUTH_ACCESS_TTL", jwtx.DefaultAccessTokenTTL),
		RefreshSecret: os.Getenv("AUTH_REFRESH_SECRET"),
		RefreshTTL:    getEnvDurationOrDefault("AUTH_REFRESH_TTL", jwtx.DefaultRefreshTokenTTL),
		DatabaseFile:  getEnvOrDefault("AUTH_DATABASE_FILE", "auth.db"),
		Env:           getEnvOrDefault("ENV", "dev"),
		LogLevel:      getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:     getEnvOrDefault("LOG_FORMAT", "json"),
		Port:          getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod: getEnvDurationOrDefault(
			"SHUTDOWN_GRACE_PERIOD",
			10*time.Second,
		),
	}
}

// Validate rejects configurations the service cannot safely start with.
// Shared secrets would let a refresh token pass as an access token, so
// the two must differ.
func (cfg Config) Validate() error {
	if cfg.AccessSecret == "" {
		return errors.New("AUTH_ACCESS_SECRET is required")
	}
	if cfg.RefreshSecret == "" {
		return errors.New("AUTH_REFRESH_SECRET is required")
	}
	if cfg.AccessSecret == cfg.RefreshSecret {
		return errors.New("AUTH_ACCESS_SECRET and AUTH_REFRESH_SECRET must differ")
	}
	if cfg.AccessTTL <= 0 || cfg.RefreshTTL <= 0 {
		return errors.New("token lifetimes must be positive")
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// Try parsing as duration (e.g., "1h", "30m", "90s")
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Try parsing as integer minutes (for backwards compatibility)
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}
