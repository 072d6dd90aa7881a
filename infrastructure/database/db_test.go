package database

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recontracker/application/ports"
	"recontracker/config"
	"recontracker/domain/repository"
	"recontracker/observability/mocks"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()

	cfg := &config.DatabaseConfig{
		Path:         filepath.Join(t.TempDir(), "recon.db"),
		BusyTimeout:  5 * time.Second,
		MaxOpenConns: 4,
		MaxIdleConns: 2,
	}

	db, err := NewSQLite(context.Background(), cfg, mocks.NewNopProvider())
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestSQLiteDSN(t *testing.T) {
	dsn := SQLiteDSN("/tmp/recon.db", 2500*time.Millisecond)

	assert.Contains(t, dsn, "file:/tmp/recon.db?")
	assert.Contains(t, dsn, "foreign_keys%281%29")
	assert.Contains(t, dsn, "busy_timeout%282500%29")
	assert.Contains(t, dsn, "journal_mode%28WAL%29")
	assert.Contains(t, dsn, "_txlock=immediate")
}

func TestPostgresDSN(t *testing.T) {
	dsn := PostgresDSN(&config.DatabaseConfig{
		Host:     "db",
		Port:     5432,
		Username: "recon",
		Password: "secret",
		Database: "recon",
		SSLMode:  "disable",
	})

	assert.Equal(t, "host=db port=5432 user=recon password=secret dbname=recon sslmode=disable", dsn)
}

func TestNew_UnsupportedDriver(t *testing.T) {
	cfg := &config.Config{Adapters: config.AdapterConfig{Database: "mysql"}}

	_, err := New(context.Background(), cfg, mocks.NewNopProvider())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported database adapter: mysql")
}

func TestMigrate_AppliesOnce(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	require.NoError(t, Migrate(ctx, db.conn, DriverSQLite))
	require.NoError(t, Migrate(ctx, db.conn, DriverSQLite))

	names, err := AppliedMigrations(ctx, db.conn)
	require.NoError(t, err)
	assert.Equal(t, []string{"001_init.sql"}, names)

	var tables []string
	require.NoError(t, db.conn.SelectContext(ctx, &tables,
		"SELECT name FROM sqlite_master WHERE type = 'table' AND name IN ('programs', 'targets', 'vulnerabilities') ORDER BY name"))
	assert.Equal(t, []string{"programs", "targets", "vulnerabilities"}, tables)
}

func TestExtractUpMigration(t *testing.T) {
	content := "-- +migrate Up\nCREATE TABLE a (id INTEGER);\n-- +migrate Down\nDROP TABLE a;\n"
	assert.Equal(t, "\nCREATE TABLE a (id INTEGER);\n", ExtractUpMigration(content))
	assert.Equal(t, "SELECT 1;", ExtractUpMigration("SELECT 1;"))
}

func TestSplitStatements(t *testing.T) {
	stmts := splitStatements("-- comment\nCREATE TABLE a (id INTEGER);\n\nCREATE INDEX i ON a (id);\n")
	assert.Equal(t, []string{"CREATE TABLE a (id INTEGER)", "CREATE INDEX i ON a (id)"}, stmts)
}

func TestConn_ForeignKeyViolationIsConflict(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	c, err := db.Acquire(ctx)
	require.NoError(t, err)
	defer c.Close()

	_, err = c.Execute(ctx,
		"INSERT INTO targets (program_id, domain, created_at) VALUES (?, ?, ?)",
		999, "example.com", "2024-01-01T00:00:00.000000000Z")
	require.Error(t, err)
	assert.True(t, errors.Is(err, repository.ErrConflict))
	assert.True(t, IsForeignKeyViolation(err))
}

func TestConn_TransactionRollsBack(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	c, err := db.Acquire(ctx)
	require.NoError(t, err)
	defer c.Close()

	boom := errors.New("boom")
	err = c.Transaction(ctx, func(tx ports.Querier) error {
		_, err := tx.Execute(ctx,
			"INSERT INTO programs (name, platform, status, created_at) VALUES (?, ?, ?, ?)",
			"Acme", "HackerOne", "active", "2024-01-01T00:00:00.000000000Z")
		require.NoError(t, err)
		return boom
	})
	assert.ErrorIs(t, err, boom)

	var count int64
	require.NoError(t, c.Get(ctx, &count, "SELECT COUNT(*) FROM programs"))
	assert.Zero(t, count)
}

func TestConn_TransactionCommitsAndNests(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	c, err := db.Acquire(ctx)
	require.NoError(t, err)
	defer c.Close()

	var id int64
	err = c.Transaction(ctx, func(tx ports.Querier) error {
		return tx.Transaction(ctx, func(inner ports.Querier) error {
			return inner.Get(ctx, &id,
				"INSERT INTO programs (name, platform, status, created_at) VALUES (?, ?, ?, ?) RETURNING id",
				"Acme", "HackerOne", "active", "2024-01-01T00:00:00.000000000Z")
		})
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)

	var names []string
	require.NoError(t, c.Select(ctx, &names, "SELECT name FROM programs"))
	assert.Equal(t, []string{"Acme"}, names)
}

func TestConn_ReleasedOnClose(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	for i := 0; i < 10; i++ {
		c, err := db.Acquire(ctx)
		require.NoError(t, err)
		require.NoError(t, c.Close())
	}

	assert.Zero(t, db.Stats().InUse)
	assert.Equal(t, DriverSQLite, db.Driver())
	assert.NoError(t, db.Ping(ctx))
}

func TestIsForeignKeyViolation(t *testing.T) {
	assert.False(t, IsForeignKeyViolation(nil))
	assert.False(t, IsForeignKeyViolation(errors.New("other")))
	assert.True(t, IsForeignKeyViolation(&pq.Error{Code: "23503"}))
	assert.False(t, IsForeignKeyViolation(&pq.Error{Code: "23505"}))

	err := classify(&pq.Error{Code: "23503"})
	assert.ErrorIs(t, err, repository.ErrConflict)
	assert.Equal(t, "conflict", errorType(err))
	assert.Nil(t, classify(nil))
}
