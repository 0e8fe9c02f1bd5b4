// Package config provides runtime configuration loading for the server.
package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds the runtime configuration read from the environment.
type Config struct {
	// Port is the HTTP listen port (PORT, default 8080).
	Port int
	// APIKey is the Gemini API key (GEMINI_API_KEY). May be empty; provider
	// calls then fail with a configuration error instead of blocking startup.
	APIKey string
	// DatabaseURL is the PostgreSQL connection URL for the history store
	// (DATABASE_URL). Optional; when empty the history endpoints report the
	// store as unconfigured.
	DatabaseURL string
}

// Load reads configuration from environment variables.
func Load() (Config, error) {
	cfg := Config{
		Port:        8080,
		APIKey:      os.Getenv("GEMINI_API_KEY"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
	}

	if portStr := os.Getenv("PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return Config{}, fmt.Errorf("invalid PORT value %q: %w", portStr, err)
		}
		cfg.Port = port
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks that the configuration has valid values.
// The API key and database URL are intentionally not required here; their
// absence is surfaced per request as a configuration error so the server can
// still boot in partial setups.
func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("config error: port %d out of range", c.Port)
	}
	return nil
}
