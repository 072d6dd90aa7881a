package runtime

import (
	"context"

	"recontracker/handler"
	"recontracker/handler/platforms"
	"recontracker/observability"
	"recontracker/observability/types"
)

// LambdaRuntime serves API Gateway proxy events.
type LambdaRuntime struct {
	adapter *platforms.LambdaAdapter
	logger  types.Logger
	metrics types.Metrics
}

// NewLambdaRuntime creates the Lambda runtime
func NewLambdaRuntime(h *handler.Handler, obs observability.Provider) *LambdaRuntime {
	return &LambdaRuntime{
		adapter: platforms.NewLambdaAdapter(h),
		logger:  obs.Logger("runtime.lambda"),
		metrics: obs.Metrics("runtime.lambda"),
	}
}

// Start hands control to the Lambda runtime, which does not return.
func (r *LambdaRuntime) Start() error {
	r.logger.Info(context.Background(), "Starting Lambda runtime", nil)
	r.metrics.RecordSuccess("start")
	r.adapter.Start()
	return nil
}

// Stop is a no-op: the Lambda service owns the process lifecycle.
func (r *LambdaRuntime) Stop(ctx context.Context) error {
	return nil
}
