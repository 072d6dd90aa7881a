package database

import (
	"context"
	"fmt"

	"recontracker/application/ports"
	"recontracker/config"
)

// New opens the database selected by cfg.Adapters.Database
func New(ctx context.Context, cfg *config.Config, obs ports.Observability) (*DB, error) {
	switch cfg.Adapters.Database {
	case DriverSQLite:
		return NewSQLite(ctx, &cfg.Database, obs)
	case DriverPostgres:
		return NewPostgres(ctx, &cfg.Database, obs)
	default:
		return nil, fmt.Errorf("unsupported database adapter: %s", cfg.Adapters.Database)
	}
}
