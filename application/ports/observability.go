package ports

import (
	"recontracker/observability/types"
)

// Logger is the structured logger every component receives
type Logger = types.Logger

// Metrics is the metrics recorder every component receives
type Metrics = types.Metrics

// Observability hands out loggers and metrics scoped to a component
type Observability interface {
	Logger(component string) Logger
	Metrics(component string) Metrics
}
