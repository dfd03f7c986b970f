// Package config loads the relay settings from the environment and an optional .env file
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// ErrMissingToken is returned when API_TOKEN is unset or empty
var ErrMissingToken = errors.New("API_TOKEN must be set")

// Config holds process-wide settings, read once at startup
type Config struct {
	APIToken        string        `envconfig:"API_TOKEN"`
	Port            int           `envconfig:"PORT" default:"8080"`
	UpstreamBaseURL string        `envconfig:"UPSTREAM_BASE_URL" default:"https://economia.awesomeapi.com.br"`
	UpstreamTimeout time.Duration `envconfig:"UPSTREAM_TIMEOUT" default:"10s"`
	LogLevel        string        `envconfig:"LOG_LEVEL" default:"INFO"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"15s"`
}

// Load reads envFile (if it exists) into the environment and then builds a Config.
// Variables already set in the environment win over the file.
// The returned bool reports whether envFile was loaded.
func Load(envFile string) (*Config, bool, error) {
	if envFile == "" {
		envFile = ".env"
	}
	loaded := godotenv.Load(envFile) == nil

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, loaded, fmt.Errorf("failed to process environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, loaded, err
	}

	return &cfg, loaded, nil
}

// Validate checks the settings the relay cannot start without
func (c *Config) Validate() error {
	if c.APIToken == "" {
		return ErrMissingToken
	}

	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid PORT %d", c.Port)
	}

	if !strings.HasPrefix(c.UpstreamBaseURL, "http://") && !strings.HasPrefix(c.UpstreamBaseURL, "https://") {
		return fmt.Errorf("invalid UPSTREAM_BASE_URL %q", c.UpstreamBaseURL)
	}

	if c.UpstreamTimeout <= 0 {
		return fmt.Errorf("UPSTREAM_TIMEOUT must be positive, got %s", c.UpstreamTimeout)
	}

	return nil
}

// Addr returns the listen address for the HTTP server
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}
