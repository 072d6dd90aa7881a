package ports

import (
	"context"
	"database/sql"
)

// Querier runs statements against one storage connection or transaction
type Querier interface {
	// Driver names the SQL dialect behind the querier: "sqlite" or "postgres"
	Driver() string

	// Execute runs a query that doesn't return rows
	Execute(ctx context.Context, query string, args ...interface{}) (sql.Result, error)

	// Get executes a query and scans the single resulting row into dest
	Get(ctx context.Context, dest interface{}, query string, args ...interface{}) error

	// Select executes a query and scans every resulting row into dest
	Select(ctx context.Context, dest interface{}, query string, args ...interface{}) error

	// Transaction executes fn within a transaction. It commits when fn
	// returns nil and rolls back otherwise. Calling Transaction on a querier
	// that is already a transaction runs fn in that transaction.
	Transaction(ctx context.Context, fn func(tx Querier) error) error
}

// Conn is a storage connection held by a single caller until Close
type Conn interface {
	Querier

	// Close returns the connection to the pool
	Close() error
}

// Database represents a pool of storage connections
type Database interface {
	// Driver names the SQL dialect: "sqlite" or "postgres"
	Driver() string

	// Acquire reserves one connection for the caller. The caller must Close it.
	Acquire(ctx context.Context) (Conn, error)

	// Ping verifies the store is reachable
	Ping(ctx context.Context) error

	// Close closes every connection
	Close() error
}
