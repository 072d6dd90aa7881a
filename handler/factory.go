package handler

import (
	"os"

	"recontracker/observability"
)

// Factory creates handlers with the standard middleware stack.
type Factory struct {
	worker   Worker
	provider observability.Provider
	config   *Config
}

// NewFactory creates a new handler factory with default configuration.
func NewFactory(worker Worker, provider observability.Provider) *Factory {
	return &Factory{
		worker:   worker,
		provider: provider,
		config:   DefaultConfig(),
	}
}

// WithConfig sets custom handler configuration.
func (f *Factory) WithConfig(cfg *Config) *Factory {
	if cfg != nil {
		f.config = cfg
	}
	return f
}

// Create creates a handler for the configured platform, detecting it when
// unset.
func (f *Factory) Create() *Handler {
	if f.config.Platform == "" || f.config.Platform == "auto" {
		f.config.Platform = DetectPlatform()
	}

	handler := NewHandler(f.worker, f.provider, f.config)
	f.applyDefaultMiddleware(handler)

	return handler
}

// CreateHTTP creates a handler specifically for net/http.
func (f *Factory) CreateHTTP() *Handler {
	f.config.Platform = "http"
	return f.Create()
}

// CreateLambda creates a handler specifically for AWS Lambda.
func (f *Factory) CreateLambda() *Handler {
	f.config.Platform = "lambda"
	return f.Create()
}

// applyDefaultMiddleware installs Recovery, Tracing, Metrics, Logging and
// Validation, outermost first.
func (f *Factory) applyDefaultMiddleware(handler *Handler) {
	handler.Use(RecoveryMiddleware(f.provider))

	if f.config.EnableTracing {
		handler.Use(TracingMiddleware())
	}

	if f.config.EnableMetrics {
		handler.Use(MetricsMiddleware(f.provider))
	}

	handler.Use(LoggingMiddleware(f.provider))
	handler.Use(ValidationMiddleware())
}

// DetectPlatform detects the runtime platform from the environment.
func DetectPlatform() string {
	if _, exists := os.LookupEnv("AWS_LAMBDA_FUNCTION_NAME"); exists {
		return "lambda"
	}

	if _, exists := os.LookupEnv("AWS_LAMBDA_RUNTIME_API"); exists {
		return "lambda"
	}

	return "http"
}
