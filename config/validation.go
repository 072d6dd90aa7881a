package config

import (
	"fmt"
	"strings"
)

// Validate validates the entire configuration
func (c *Config) Validate() error {
	var errors []string

	// Core validations
	if c.ServiceName == "" {
		errors = append(errors, "SERVICE_NAME is required")
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.LogLevel] {
		errors = append(errors, fmt.Sprintf("invalid LOG_LEVEL: %s (must be debug, info, warn, or error)", c.LogLevel))
	}

	// Validate adapters
	if err := c.Adapters.Validate(); err != nil {
		errors = append(errors, err.Error())
	}

	// Validate component configs based on selected adapters
	if c.Adapters.Runtime == "http" {
		if err := c.HTTP.Validate(); err != nil {
			errors = append(errors, err.Error())
		}
	}

	if err := c.Handler.Validate(); err != nil {
		errors = append(errors, err.Error())
	}

	if err := c.Database.Validate(c.Adapters.Database); err != nil {
		errors = append(errors, err.Error())
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration errors: %s", strings.Join(errors, "; "))
	}

	return nil
}

// Validate validates adapter configuration
func (a *AdapterConfig) Validate() error {
	validRuntimes := map[string]bool{"http": true, "lambda": true}
	if !validRuntimes[a.Runtime] {
		return fmt.Errorf("invalid runtime adapter: %s (must be http or lambda)", a.Runtime)
	}

	validDatabases := map[string]bool{"sqlite": true, "postgres": true}
	if !validDatabases[a.Database] {
		return fmt.Errorf("invalid database adapter: %s (must be sqlite or postgres)", a.Database)
	}

	return nil
}

// Validate validates HTTP configuration
func (h *HTTPConfig) Validate() error {
	if h.Addr == "" {
		return fmt.Errorf("HTTP_ADDR is required for HTTP adapter")
	}
	if h.ReadTimeout <= 0 {
		return fmt.Errorf("HTTP_READ_TIMEOUT must be positive")
	}
	if h.WriteTimeout <= 0 {
		return fmt.Errorf("HTTP_WRITE_TIMEOUT must be positive")
	}
	if h.ShutdownTimeout <= 0 {
		return fmt.Errorf("HTTP_SHUTDOWN_TIMEOUT must be positive")
	}
	return nil
}

// Validate validates handler configuration
func (h *HandlerConfig) Validate() error {
	if h.MaxRequestSize <= 0 {
		return fmt.Errorf("HANDLER_MAX_REQUEST_SIZE must be positive")
	}
	return nil
}

// Validate validates database configuration for the selected driver
func (d *DatabaseConfig) Validate(driver string) error {
	var errors []string

	switch driver {
	case "sqlite":
		if d.Path == "" {
			errors = append(errors, "DB_PATH is required for sqlite")
		}
		if d.BusyTimeout < 0 {
			errors = append(errors, "DB_BUSY_TIMEOUT cannot be negative")
		}
	case "postgres":
		if d.Host == "" {
			errors = append(errors, "DB_HOST is required")
		}
		if d.Port <= 0 || d.Port > 65535 {
			errors = append(errors, "DB_PORT must be between 1 and 65535")
		}
		if d.Database == "" {
			errors = append(errors, "DB_NAME is required")
		}
		if d.Username == "" {
			errors = append(errors, "DB_USER is required")
		}
	}

	if d.MaxOpenConns < 0 {
		errors = append(errors, "DB_MAX_OPEN_CONNS cannot be negative")
	}

	if d.MaxIdleConns < 0 {
		errors = append(errors, "DB_MAX_IDLE_CONNS cannot be negative")
	}

	if d.MaxOpenConns > 0 && d.MaxIdleConns > d.MaxOpenConns {
		errors = append(errors, "DB_MAX_IDLE_CONNS cannot be greater than DB_MAX_OPEN_CONNS")
	}

	if len(errors) > 0 {
		return fmt.Errorf("database configuration errors: %s", strings.Join(errors, "; "))
	}

	return nil
}
