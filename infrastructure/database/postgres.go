package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"recontracker/application/ports"
	"recontracker/config"
	"recontracker/observability/types"
)

// PostgresDSN builds a lib/pq keyword/value DSN
func PostgresDSN(cfg *config.DatabaseConfig) string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host,
		cfg.Port,
		cfg.Username,
		cfg.Password,
		cfg.Database,
		cfg.SSLMode,
	)
}

// NewPostgres connects to PostgreSQL and applies migrations
func NewPostgres(ctx context.Context, cfg *config.DatabaseConfig, obs ports.Observability) (*DB, error) {
	logger := obs.Logger("database")

	logger.Info(ctx, "Connecting to PostgreSQL database", types.Fields{
		"host":     cfg.Host,
		"port":     cfg.Port,
		"database": cfg.Database,
	})

	conn, err := sqlx.Open(DriverPostgres, PostgresDSN(cfg))
	if err != nil {
		logger.Error(ctx, "Failed to open database connection", err, nil)
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Configure connection pool
	conn.SetMaxOpenConns(cfg.MaxOpenConns)
	conn.SetMaxIdleConns(cfg.MaxIdleConns)

	// Test connection
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := conn.PingContext(pingCtx); err != nil {
		logger.Error(ctx, "Failed to ping database", err, nil)
		_ = conn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if err := Migrate(ctx, conn, DriverPostgres); err != nil {
		logger.Error(ctx, "Failed to apply migrations", err, nil)
		_ = conn.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	logger.Info(ctx, "Successfully connected to PostgreSQL database", nil)

	return Wrap(conn, DriverPostgres, obs), nil
}
