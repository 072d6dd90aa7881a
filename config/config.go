// Package config loads the service configuration from .env files and the
// process environment.
package config

import (
	"fmt"
	"sync"
)

// Singleton instance management
var (
	mu       sync.Mutex
	instance *Config
	loaded   bool
)

// Load loads configuration from environment variables and .env files.
// This should be called once at application startup; later calls return the
// same instance.
func Load() (*Config, error) {
	mu.Lock()
	defer mu.Unlock()

	if loaded {
		return instance, nil
	}

	// Load .env files in order of precedence
	if err := loadEnvFiles(); err != nil {
		return nil, fmt.Errorf("failed to load env files: %w", err)
	}

	cfg, err := build()
	if err != nil {
		return nil, err
	}

	instance = cfg
	loaded = true
	return cfg, nil
}

// FromEnv parses, defaults and validates configuration from the current
// environment only. .env files are not read and the singleton is untouched.
func FromEnv() (*Config, error) {
	return build()
}

func build() (*Config, error) {
	cfg, err := parse()
	if err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	// Apply defaults based on environment
	applyDefaults(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// IsLoaded returns whether configuration has been loaded
func IsLoaded() bool {
	mu.Lock()
	defer mu.Unlock()
	return loaded
}

// Reset clears the loaded configuration (useful for testing)
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	instance = nil
	loaded = false
}
