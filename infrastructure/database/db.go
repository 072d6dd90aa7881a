// Package database adapts sqlx connection pools for SQLite and PostgreSQL to
// the application's Database port.
package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"recontracker/application/ports"
	"recontracker/observability/types"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// DB implements ports.Database on top of a sqlx pool
type DB struct {
	conn    *sqlx.DB
	driver  string
	logger  ports.Logger
	metrics ports.Metrics
}

// Wrap adapts an open pool. driver must be DriverSQLite or DriverPostgres.
func Wrap(conn *sqlx.DB, driver string, obs ports.Observability) *DB {
	return &DB{
		conn:    conn,
		driver:  driver,
		logger:  obs.Logger("database"),
		metrics: obs.Metrics("database"),
	}
}

// Driver returns the SQL dialect of the pool
func (d *DB) Driver() string {
	return d.driver
}

// Acquire reserves one connection from the pool
func (d *DB) Acquire(ctx context.Context) (ports.Conn, error) {
	startTime := time.Now()

	c, err := d.conn.Connx(ctx)
	d.recordMetrics("acquire", time.Since(startTime), err)
	if err != nil {
		d.logger.Error(ctx, "Failed to acquire connection", err, nil)
		return nil, fmt.Errorf("acquire connection: %w", err)
	}

	return &conn{querier: querier{ext: c, db: d}, c: c}, nil
}

// Ping verifies the connection
func (d *DB) Ping(ctx context.Context) error {
	return d.conn.PingContext(ctx)
}

// Close closes the database connection
func (d *DB) Close() error {
	d.logger.Info(context.Background(), "Closing database connection", types.Fields{"driver": d.driver})
	return d.conn.Close()
}

// Stats exposes the pool statistics
func (d *DB) Stats() sql.DBStats {
	return d.conn.Stats()
}

// recordMetrics records operation metrics
func (d *DB) recordMetrics(operation string, duration time.Duration, err error) {
	d.metrics.RecordDuration(operation, duration.Seconds())

	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		d.metrics.RecordError(operation, errorType(err))
	} else {
		d.metrics.RecordSuccess(operation)
	}
}

// extContext is what *sqlx.Conn and *sqlx.Tx share
type extContext interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
}

type querier struct {
	ext extContext
	db  *DB
}

func (q querier) Driver() string {
	return q.db.driver
}

// Execute runs a query that doesn't return rows
func (q querier) Execute(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	startTime := time.Now()

	result, err := q.ext.ExecContext(ctx, query, args...)
	err = classify(err)

	q.db.recordMetrics("execute", time.Since(startTime), err)

	if err != nil {
		q.db.logger.Debug(ctx, "Execute failed", types.Fields{"error": err.Error(), "query": query})
		return nil, err
	}

	return result, nil
}

// Get executes a query and scans the result into dest (single row)
func (q querier) Get(ctx context.Context, dest interface{}, query string, args ...interface{}) error {
	startTime := time.Now()

	err := classify(q.ext.GetContext(ctx, dest, query, args...))

	q.db.recordMetrics("get", time.Since(startTime), err)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			q.db.logger.Debug(ctx, "No rows found", types.Fields{"query": query})
		} else {
			q.db.logger.Debug(ctx, "Get failed", types.Fields{"error": err.Error(), "query": query})
		}
		return err
	}

	return nil
}

// Select executes a query and scans the result into dest (multiple rows)
func (q querier) Select(ctx context.Context, dest interface{}, query string, args ...interface{}) error {
	startTime := time.Now()

	err := classify(q.ext.SelectContext(ctx, dest, query, args...))

	q.db.recordMetrics("select", time.Since(startTime), err)

	if err != nil {
		q.db.logger.Debug(ctx, "Select failed", types.Fields{"error": err.Error(), "query": query})
		return err
	}

	return nil
}

type conn struct {
	querier
	c *sqlx.Conn
}

// Transaction executes a function within a transaction
func (c *conn) Transaction(ctx context.Context, fn func(tx ports.Querier) error) (err error) {
	startTime := time.Now()
	defer func() {
		c.db.recordMetrics("transaction", time.Since(startTime), err)
	}()

	tx, err := c.c.BeginTxx(ctx, nil)
	if err != nil {
		c.db.logger.Error(ctx, "Failed to begin transaction", err, nil)
		return fmt.Errorf("begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err = fn(txQuerier{querier{ext: tx, db: c.db}}); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			c.db.logger.Error(ctx, "Failed to rollback", rbErr, nil)
		}
		return err
	}

	if err = tx.Commit(); err != nil {
		c.db.logger.Error(ctx, "Failed to commit", err, nil)
		return fmt.Errorf("commit transaction: %w", classify(err))
	}

	return nil
}

// Close returns the connection to the pool
func (c *conn) Close() error {
	return c.c.Close()
}

type txQuerier struct {
	querier
}

// Transaction runs fn inside the enclosing transaction
func (t txQuerier) Transaction(_ context.Context, fn func(tx ports.Querier) error) error {
	return fn(t)
}
