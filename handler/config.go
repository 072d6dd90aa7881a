package handler

import (
	"recontracker/config"
)

// Config holds handler configuration.
type Config struct {
	// MaxRequestSize in bytes (default: 1MB)
	MaxRequestSize int64

	// EnableMetrics enables the metrics middleware
	EnableMetrics bool

	// EnableTracing enables the tracing middleware
	EnableTracing bool

	// Environment (local, staging, production)
	Environment string

	// Platform identifier (http, lambda)
	Platform string
}

// DefaultConfig returns the handler configuration used when none is given.
func DefaultConfig() *Config {
	return &Config{
		MaxRequestSize: 1 << 20,
		EnableMetrics:  true,
		EnableTracing:  true,
		Environment:    "local",
		Platform:       "http",
	}
}

// ConfigFrom derives the handler configuration from the service configuration.
func ConfigFrom(cfg *config.Config) *Config {
	hc := DefaultConfig()
	if cfg == nil {
		return hc
	}

	if cfg.Handler.MaxRequestSize > 0 {
		hc.MaxRequestSize = cfg.Handler.MaxRequestSize
	}
	hc.EnableMetrics = cfg.Handler.EnableMetrics
	hc.EnableTracing = cfg.Handler.EnableTracing
	hc.Environment = cfg.Environment
	if cfg.Adapters.Runtime != "" {
		hc.Platform = cfg.Adapters.Runtime
	}
	return hc
}
