package app

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	DatabaseDriver string // Optional: storage driver (sqlite, postgres) (default: sqlite)
	DatabaseFile   string // Optional: path to SQLite database file (default: ./sessiond.db)
	DatabaseURL    string // Required for postgres: connection string

	AccessTTL  time.Duration // Optional: access token lifetime (default: 6h)
	RefreshTTL time.Duration // Optional: refresh token lifetime (default: 240h)

	Env                 string        // Environment (dev, staging, prod) (default: dev)
	LogLevel            string        // Log level (debug, info, warn, error) (default: info)
	LogFormat           string        // Log format (json, text) (default: json)
	Port                int           // HTTP server port (default: 8080)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)
}

func LoadConfig() Config {
	// Optional .env file for local development; real deployments set the
	// environment directly.
	_ = godotenv.Load()

	cfg := Config{
		DatabaseDriver: getEnvOrDefault("SESSIOND_DATABASE_DRIVER", "sqlite"),
		DatabaseFile:   getEnvOrDefault("SESSIOND_DATABASE_FILE", "sessiond.db"),
		DatabaseURL:    os.Getenv("SESSIOND_DATABASE_URL"),

		AccessTTL:  getEnvDurationOrDefault("SESSIOND_ACCESS_TTL", 6*time.Hour),
		RefreshTTL: getEnvDurationOrDefault("SESSIOND_REFRESH_TTL", 10*24*time.Hour),

		Env:                 getEnvOrDefault("ENV", "dev"),
		LogLevel:            getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:           getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod: getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
	}

	return cfg
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

	// Try parsing as duration (e.g., "6h", "30m", "90s")
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Try parsing as integer hours
	if hours, err := strconv.Atoi(value); err == nil {
		return time.Duration(hours) * time.Hour
	}

	return defaultValue
}
