package config

import (
	"os"
	"strings"
)

const defaultHTTPAddr = ":8000"

// applyDefaults fills adapter selections and addresses the environment
// leaves open
func applyDefaults(cfg *Config) {
	if cfg.Adapters.Runtime == "" {
		if IsLambda() {
			cfg.Adapters.Runtime = "lambda"
		} else {
			cfg.Adapters.Runtime = "http"
		}
	}

	if cfg.Adapters.Database == "" {
		cfg.Adapters.Database = "sqlite"
	}

	if cfg.HTTP.Addr == "" {
		if port := os.Getenv("PORT"); port != "" {
			cfg.HTTP.Addr = ":" + port
		} else {
			cfg.HTTP.Addr = defaultHTTPAddr
		}
	}

	cfg.LogLevel = strings.ToLower(cfg.LogLevel)

	if cfg.IsProduction() {
		cfg.Handler.EnableMetrics = true
		cfg.Handler.EnableTracing = true
	}
}

// IsLocal reports a local or development environment
func (c *Config) IsLocal() bool {
	env := strings.ToLower(c.Environment)
	return env == "local" || env == "development" || env == "dev"
}

// IsProduction reports a production environment
func (c *Config) IsProduction() bool {
	env := strings.ToLower(c.Environment)
	return env == "production" || env == "prod"
}

// IsTest reports a test environment
func (c *Config) IsTest() bool {
	env := strings.ToLower(c.Environment)
	return env == "test" || env == "testing"
}

// IsLambda detects if running in AWS Lambda
func IsLambda() bool {
	return os.Getenv("AWS_LAMBDA_FUNCTION_NAME") != "" ||
		os.Getenv("LAMBDA_TASK_ROOT") != "" ||
		os.Getenv("AWS_EXECUTION_ENV") != ""
}
