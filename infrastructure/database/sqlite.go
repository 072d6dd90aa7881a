package database

import (
	"context"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"recontracker/application/ports"
	"recontracker/config"
	"recontracker/observability/types"
)

func init() {
	sqlx.BindDriver(DriverSQLite, sqlx.QUESTION)
}

// SQLiteDSN builds the modernc.org/sqlite DSN for a store file: foreign
// keys on, WAL journal, a busy timeout and immediate write transactions.
func SQLiteDSN(path string, busyTimeout time.Duration) string {
	params := url.Values{}
	params.Add("_pragma", "foreign_keys(1)")
	params.Add("_pragma", "journal_mode(WAL)")
	params.Add("_pragma", fmt.Sprintf("busy_timeout(%d)", busyTimeout.Milliseconds()))
	params.Add("_pragma", "synchronous(NORMAL)")
	params.Set("_txlock", "immediate")
	return "file:" + filepath.ToSlash(filepath.Clean(path)) + "?" + params.Encode()
}

// NewSQLite opens the store file at cfg.Path and applies migrations
func NewSQLite(ctx context.Context, cfg *config.DatabaseConfig, obs ports.Observability) (*DB, error) {
	logger := obs.Logger("database")

	if strings.TrimSpace(cfg.Path) == "" {
		return nil, fmt.Errorf("sqlite path is required")
	}

	logger.Info(ctx, "Opening SQLite database", types.Fields{"path": cfg.Path})

	conn, err := sqlx.Open(DriverSQLite, SQLiteDSN(cfg.Path, cfg.BusyTimeout))
	if err != nil {
		logger.Error(ctx, "Failed to open database", err, nil)
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	// Configure connection pool
	conn.SetMaxOpenConns(cfg.MaxOpenConns)
	conn.SetMaxIdleConns(cfg.MaxIdleConns)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := conn.PingContext(pingCtx); err != nil {
		logger.Error(ctx, "Failed to ping database", err, nil)
		_ = conn.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	if err := Migrate(ctx, conn, DriverSQLite); err != nil {
		logger.Error(ctx, "Failed to apply migrations", err, nil)
		_ = conn.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	logger.Info(ctx, "SQLite database ready", types.Fields{"path": cfg.Path})

	return Wrap(conn, DriverSQLite, obs), nil
}
