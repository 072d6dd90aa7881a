package database

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"
	sqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"recontracker/domain/repository"
)

// PostgreSQL SQLSTATE for foreign_key_violation
const pgForeignKeyViolation = "23503"

// classify marks driver errors the domain cares about. Foreign key
// violations wrap repository.ErrConflict; the driver error stays in the chain.
func classify(err error) error {
	if err == nil {
		return nil
	}
	if IsForeignKeyViolation(err) {
		return fmt.Errorf("%w: %w", repository.ErrConflict, err)
	}
	return err
}

// IsForeignKeyViolation reports whether err is a foreign key violation from
// either driver.
func IsForeignKeyViolation(err error) bool {
	if err == nil {
		return false
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == pgForeignKeyViolation
	}

	var sqliteErr *sqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY:
			return true
		case sqlite3.SQLITE_CONSTRAINT:
			return strings.Contains(strings.ToLower(err.Error()), "foreign key constraint failed")
		}
	}

	return false
}

// IsBusy reports whether err is SQLite lock contention.
func IsBusy(err error) bool {
	var sqliteErr *sqlite.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}
	code := sqliteErr.Code()
	return code == sqlite3.SQLITE_BUSY || code == sqlite3.SQLITE_LOCKED
}

// errorType buckets err for the errors_total metric
func errorType(err error) string {
	switch {
	case errors.Is(err, repository.ErrConflict):
		return "conflict"
	case errors.Is(err, sql.ErrConnDone), errors.Is(err, sql.ErrTxDone):
		return "connection"
	case IsBusy(err):
		return "busy"
	default:
		return "query"
	}
}
