package app

import (
	"errors"
	"os"
	"strconv"
	"time"
)

type Config struct {
	JWTSecret string // Required: HS256 signing secret for session tokens
	Issuer    string // Optional: issuer claim for tokens (default: lang-track)

	// AllowRegistration is the raw flag value; registration is open only
	// when it is exactly the string "true".
	AllowRegistration string

	DatabaseFile        string        // Optional: path to SQLite database file (default: ./lang-track.db)
	Env                 string        // Environment (dev, staging, prod) (default: dev)
	LogLevel            string        // Log level (debug, info, warn, error) (default: info)
	LogFormat           string        // Log format (json, text) (default: json)
	Port                int           // HTTP server port (default: 8080)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)
}

var ErrMissingJWTSecret = errors.New("JWT_SECRET is required")

func LoadConfig() (Config, error) {
	cfg := Config{
		JWTSecret:           os.Getenv("JWT_SECRET"),
		Issuer:              getEnvOrDefault("ISSUER", "lang-track"),
		AllowRegistration:   os.Getenv("ALLOW_REGISTRATION"),
		DatabaseFile:        getEnvOrDefault("DATABASE_FILE", "lang-track.db"),
		Env:                 getEnvOrDefault("ENV", "dev"),
		LogLevel:            getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:           getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod: getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
	}

	if cfg.JWTSecret == "" {
		return Config{}, ErrMissingJWTSecret
	}

	return cfg, nil
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

	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	return defaultValue
}
