package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"
)

// Environment represents different deployment environments
type Environment string

const (
	EnvDevelopment Environment = "development"
	EnvTesting     Environment = "testing"
	EnvProduction  Environment = "production"
)

// Config holds the configuration for the group service.
// Environment variables are parsed from the TINTO_BACKEND_ prefix.
type Config struct {
	Environment Environment `envconfig:"ENVIRONMENT" default:"development"`

	// HTTP Configuration
	HTTPPort int `envconfig:"HTTP_PORT" default:"8080"`

	// SPARQL endpoint of the triplestore. Both named graphs (application
	// data and sessions) live behind this single endpoint.
	TriplestoreURL string `envconfig:"TRIPLESTORE_URL" default:"http://triplestore:8890/sparql"`

	// Request rate limiting
	RateLimitRPS   float64 `envconfig:"RATE_LIMIT_RPS" default:"50"`
	RateLimitBurst int     `envconfig:"RATE_LIMIT_BURST" default:"100"`

	// Health checking
	HealthIntervalSeconds     int `envconfig:"HEALTH_INTERVAL_SECONDS" default:"30"`
	HealthProbeTimeoutSeconds int `envconfig:"HEALTH_PROBE_TIMEOUT_SECONDS" default:"5"`
}

// ResolveDefaults validates derived settings.
func (c *Config) ResolveDefaults() error {
	if c.TriplestoreURL == "" {
		return fmt.Errorf("TRIPLESTORE_URL must not be empty")
	}
	if c.RateLimitRPS <= 0 {
		return fmt.Errorf("RATE_LIMIT_RPS must be positive")
	}
	if c.RateLimitBurst <= 0 {
		return fmt.Errorf("RATE_LIMIT_BURST must be positive")
	}
	switch c.Environment {
	case EnvDevelopment, EnvTesting, EnvProduction:
	default:
		return fmt.Errorf("unsupported ENVIRONMENT: %s", c.Environment)
	}
	return nil
}

// New creates a new Config by parsing environment variables.
// Example: TINTO_BACKEND_HTTP_PORT, TINTO_BACKEND_TRIPLESTORE_URL.
func New() (*Config, error) {
	var cfg Config

	if err := envconfig.Process("TINTO_BACKEND", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment variables: %w", err)
	}

	if err := cfg.ResolveDefaults(); err != nil {
		return nil, err
	}

	log.Info().
		Str("environment", string(cfg.Environment)).
		Int("port", cfg.HTTPPort).
		Str("triplestore_url", cfg.TriplestoreURL).
		Msg("Configuration loaded")

	return &cfg, nil
}

// NewForTesting creates a config specifically for testing.
func NewForTesting() *Config {
	return &Config{
		Environment:               EnvTesting,
		HTTPPort:                  8080,
		TriplestoreURL:            "http://localhost:8890/sparql",
		RateLimitRPS:              1000,
		RateLimitBurst:            1000,
		HealthIntervalSeconds:     1,
		HealthProbeTimeoutSeconds: 1,
	}
}

// IsTesting returns true if the environment is set to testing
func (c *Config) IsTesting() bool {
	return c.Environment == EnvTesting
}

// IsProduction returns true if the environment is set to production
func (c *Config) IsProduction() bool {
	return c.Environment == EnvProduction
}

// GetHTTPAddr returns the HTTP server address
func (c *Config) GetHTTPAddr() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}
