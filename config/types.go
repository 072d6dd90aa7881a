package config

import (
	"time"
)

// Config holds all application configuration
type Config struct {
	// Core settings
	Environment string `env:"ENVIRONMENT" envDefault:"local"`
	ServiceName string `env:"SERVICE_NAME" envDefault:"recon-tracker"`
	Version     string `env:"SERVICE_VERSION" envDefault:"1.0.0"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// Adapter selection
	Adapters AdapterConfig

	// Component configurations
	Database DatabaseConfig
	HTTP     HTTPConfig
	Handler  HandlerConfig
}

// AdapterConfig specifies which implementations to use
type AdapterConfig struct {
	Runtime  string `env:"ADAPTER_RUNTIME"`  // "http", "lambda"
	Database string `env:"ADAPTER_DATABASE"` // "sqlite", "postgres"
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	// SQLite
	Path        string        `env:"DB_PATH" envDefault:"recon.db"`
	BusyTimeout time.Duration `env:"DB_BUSY_TIMEOUT" envDefault:"5s"`

	// PostgreSQL
	Host     string `env:"DB_HOST" envDefault:"localhost"`
	Port     int    `env:"DB_PORT" envDefault:"5432"`
	Database string `env:"DB_NAME" envDefault:"recon_tracker"`
	Username string `env:"DB_USER" envDefault:"postgres"`
	Password string `env:"DB_PASSWORD"`
	SSLMode  string `env:"DB_SSL_MODE" envDefault:"disable"`

	// Connection pool
	MaxOpenConns int `env:"DB_MAX_OPEN_CONNS" envDefault:"10"`
	MaxIdleConns int `env:"DB_MAX_IDLE_CONNS" envDefault:"5"`
}

// HTTPConfig holds the HTTP runtime configuration
type HTTPConfig struct {
	Addr            string        `env:"HTTP_ADDR"`
	ReadTimeout     time.Duration `env:"HTTP_READ_TIMEOUT" envDefault:"15s"`
	WriteTimeout    time.Duration `env:"HTTP_WRITE_TIMEOUT" envDefault:"15s"`
	ShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// HandlerConfig holds request handling configuration shared by every runtime
type HandlerConfig struct {
	MaxRequestSize int64 `env:"HANDLER_MAX_REQUEST_SIZE" envDefault:"1048576"`
	EnableMetrics  bool  `env:"HANDLER_ENABLE_METRICS" envDefault:"true"`
	EnableTracing  bool  `env:"HANDLER_ENABLE_TRACING" envDefault:"true"`
}
