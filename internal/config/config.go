package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

// Config holds process-wide settings read from the environment
type Config struct {
	// Logging
	LogLevel string

	// Rewrite behaviour
	InPlace      bool
	RequireClean bool

	// Lexer
	TokenCacheSize int
}

// Load loads configuration from environment variables. A .env file in the
// working directory is read first; variables already set win.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read .env: %w", err)
	}

	cfg := &Config{
		LogLevel:       getEnv("CLIENTGEN_LOG_LEVEL", "info"),
		InPlace:        getEnvBool("CLIENTGEN_INPLACE", false),
		RequireClean:   getEnvBool("CLIENTGEN_REQUIRE_CLEAN", false),
		TokenCacheSize: getEnvInt("CLIENTGEN_TOKEN_CACHE_SIZE", 4096),
	}

	return cfg, nil
}

// Validate checks the configuration values
func (c *Config) Validate() error {
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid CLIENTGEN_LOG_LEVEL %q: %w", c.LogLevel, err)
	}
	if c.TokenCacheSize <= 0 {
		return fmt.Errorf("CLIENTGEN_TOKEN_CACHE_SIZE must be positive, got %d", c.TokenCacheSize)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}
