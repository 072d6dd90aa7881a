package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// parse reads configuration from environment variables
func parse() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
