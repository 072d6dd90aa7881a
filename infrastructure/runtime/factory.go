// Package runtime hosts the handler on a concrete platform: a net/http server
// or the AWS Lambda runtime.
package runtime

import (
	"context"
	"fmt"

	"recontracker/config"
	"recontracker/handler"
	"recontracker/observability"
)

// Runtime runs the handler until stopped.
type Runtime interface {
	// Start blocks serving requests. It returns nil after a clean Stop.
	Start() error

	// Stop shuts the runtime down, waiting for in-flight requests until ctx expires.
	Stop(ctx context.Context) error
}

// Create creates the runtime selected by ADAPTER_RUNTIME
func Create(cfg *config.Config, h *handler.Handler, obs observability.Provider) (Runtime, error) {
	if h == nil {
		return nil, fmt.Errorf("create runtime: handler is required")
	}

	switch cfg.Adapters.Runtime {
	case "lambda":
		return NewLambdaRuntime(h, obs), nil
	case "http":
		return NewHTTPRuntime(&cfg.HTTP, cfg.Handler.EnableMetrics, h, obs), nil
	default:
		return nil, fmt.Errorf("unsupported runtime adapter: %s", cfg.Adapters.Runtime)
	}
}
