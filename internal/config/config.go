// Package config loads identity server configuration from the environment.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// Storage backends accepted in STORAGE_TYPE
const (
	StorageMemory = "memory"
	StorageRedis  = "redis"
)

// Config holds identity server configuration
type Config struct {
	Host            string
	Port            int
	StorageType     string
	RedisURL        string
	SessionTTL      time.Duration
	SecureCookie    bool
	LogLevel        slog.Level
	ShutdownTimeout time.Duration
}

// Load reads configuration from environment variables and validates it.
// Unset and empty variables take their defaults.
func Load() (*Config, error) {
	cfg := &Config{
		Host:            getEnv("HOST", ""),
		Port:            getEnvInt("PORT", 8080),
		StorageType:     strings.ToLower(getEnv("STORAGE_TYPE", StorageMemory)),
		RedisURL:        getEnv("REDIS_URL", ""),
		SessionTTL:      getEnvDuration("SESSION_TTL", 24*time.Hour),
		SecureCookie:    getEnvBool("SECURE_COOKIE", false),
		LogLevel:        getEnvLevel("LOG_LEVEL", slog.LevelInfo),
		ShutdownTimeout: getEnvDuration("SHUTDOWN_TIMEOUT", 30*time.Second),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks that the configuration is usable
func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("PORT must be between 1 and 65535")
	}
	switch c.StorageType {
	case StorageMemory:
	case StorageRedis:
		if c.RedisURL == "" {
			return fmt.Errorf("REDIS_URL required when STORAGE_TYPE=redis")
		}
	default:
		return fmt.Errorf("STORAGE_TYPE must be %q or %q", StorageMemory, StorageRedis)
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be > 0")
	}
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("SHUTDOWN_TIMEOUT must be > 0")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	value := getEnv(key, "")
	if value == "" {
		return fallback
	}
	switch strings.ToLower(value) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	default:
		return fallback
	}
}

// getEnvInt returns -1 for an unparseable value so Validate rejects it
func getEnvInt(key string, fallback int) int {
	value := getEnv(key, "")
	if value == "" {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return -1
	}
	return n
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := getEnv(key, "")
	if value == "" {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0
	}
	return d
}

func getEnvLevel(key string, fallback slog.Level) slog.Level {
	value := getEnv(key, "")
	if value == "" {
		return fallback
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(value)); err != nil {
		return fallback
	}
	return level
}
