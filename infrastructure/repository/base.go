package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"recontracker/application/ports"
	"recontracker/domain/repository"
	"recontracker/observability/types"
)

type baseRepository[T any] struct {
	q       ports.Querier
	logger  ports.Logger
	metrics ports.Metrics
	table   string
	columns []string
	qb      squirrel.StatementBuilderType
}

func newBaseRepository[T any](q ports.Querier, logger ports.Logger, metrics ports.Metrics, table string, columns []string) *baseRepository[T] {
	return &baseRepository[T]{
		q:       q,
		logger:  logger,
		metrics: metrics,
		table:   table,
		columns: columns,
		qb:      statementBuilder(q.Driver()),
	}
}

// statementBuilder picks the placeholder format of the driver's dialect
func statementBuilder(driver string) squirrel.StatementBuilderType {
	if driver == "postgres" {
		return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	}
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)
}

// observe starts the metrics for operation and returns the function that
// finishes them
func (r *baseRepository[T]) observe(operation string) func(err error) {
	op := fmt.Sprintf("%s.%s", r.table, operation)
	start := time.Now()
	r.metrics.StartOperation(op)

	return func(err error) {
		r.metrics.EndOperation(op)
		r.metrics.RecordDuration(op, time.Since(start).Seconds())
		if err != nil {
			r.metrics.RecordError(op, errorType(err))
			return
		}
		r.metrics.RecordSuccess(op)
	}
}

// Get retrieves an entity by ID - using sqlx for auto-scanning
func (r *baseRepository[T]) Get(ctx context.Context, id int64) (_ *T, err error) {
	done := r.observe("get")
	defer func() { done(err) }()

	return r.get(ctx, r.q, id)
}

func (r *baseRepository[T]) get(ctx context.Context, q ports.Querier, id int64) (*T, error) {
	query := r.qb.
		Select(r.columns...).
		From(r.table).
		Where(squirrel.Eq{"id": id})

	sqlQuery, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var entity T
	err = q.Get(ctx, &entity, sqlQuery, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get %s %d: %w", r.table, id, repository.ErrNotFound)
	}
	if err != nil {
		r.logger.Error(ctx, "Failed to get entity", err, types.Fields{"table": r.table, "id": id})
		return nil, fmt.Errorf("get %s %d: %w", r.table, id, err)
	}

	return &entity, nil
}

// list returns every row matching where, most recent first
func (r *baseRepository[T]) list(ctx context.Context, where squirrel.Sqlizer) (_ []T, err error) {
	done := r.observe("list")
	defer func() { done(err) }()

	query := r.qb.
		Select(r.columns...).
		From(r.table).
		OrderBy("created_at DESC", "id DESC")
	if where != nil {
		query = query.Where(where)
	}

	sqlQuery, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	entities := make([]T, 0)
	if err := r.q.Select(ctx, &entities, sqlQuery, args...); err != nil {
		r.logger.Error(ctx, "Failed to list entities", err, types.Fields{"table": r.table})
		return nil, fmt.Errorf("list %s: %w", r.table, err)
	}

	r.metrics.RecordRows(r.table+".list", len(entities))
	r.logger.Debug(ctx, "Listed entities", types.Fields{"table": r.table, "count": len(entities)})

	return entities, nil
}

// insert writes one row and reads it back in the same transaction
func (r *baseRepository[T]) insert(ctx context.Context, insert squirrel.InsertBuilder) (_ *T, err error) {
	done := r.observe("create")
	defer func() { done(err) }()

	sqlQuery, args, err := insert.Suffix("RETURNING id").ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var created *T
	err = r.q.Transaction(ctx, func(tx ports.Querier) error {
		var id int64
		if err := tx.Get(ctx, &id, sqlQuery, args...); err != nil {
			return err
		}
		entity, err := r.get(ctx, tx, id)
		if err != nil {
			return err
		}
		created = entity
		return nil
	})
	if err != nil {
		if !errors.Is(err, repository.ErrConflict) {
			r.logger.Error(ctx, "Failed to create entity", err, types.Fields{"table": r.table})
		}
		return nil, fmt.Errorf("create %s: %w", r.table, err)
	}

	r.logger.Info(ctx, "Created entity", types.Fields{"table": r.table})
	return created, nil
}

// Delete removes an entity by ID
func (r *baseRepository[T]) Delete(ctx context.Context, id int64) (err error) {
	done := r.observe("delete")
	defer func() { done(err) }()

	query := r.qb.
		Delete(r.table).
		Where(squirrel.Eq{"id": id})

	sqlQuery, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	result, err := r.q.Execute(ctx, sqlQuery, args...)
	if err != nil {
		if !errors.Is(err, repository.ErrConflict) {
			r.logger.Error(ctx, "Failed to delete entity", err, types.Fields{"table": r.table, "id": id})
		}
		return fmt.Errorf("delete %s %d: %w", r.table, id, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete %s %d: %w", r.table, id, err)
	}
	if rows == 0 {
		return fmt.Errorf("delete %s %d: %w", r.table, id, repository.ErrNotFound)
	}

	r.logger.Info(ctx, "Deleted entity", types.Fields{"table": r.table, "id": id})
	return nil
}

// Count returns the number of rows in the table
func (r *baseRepository[T]) Count(ctx context.Context) (_ int64, err error) {
	done := r.observe("count")
	defer func() { done(err) }()

	sqlQuery, args, err := r.qb.Select("COUNT(*)").From(r.table).ToSql()
	if err != nil {
		return 0, fmt.Errorf("build query: %w", err)
	}

	var count int64
	if err := r.q.Get(ctx, &count, sqlQuery, args...); err != nil {
		r.logger.Error(ctx, "Failed to count entities", err, types.Fields{"table": r.table})
		return 0, fmt.Errorf("count %s: %w", r.table, err)
	}

	return count, nil
}

// errorType buckets err for the errors_total metric
func errorType(err error) string {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return "not_found"
	case errors.Is(err, repository.ErrConflict):
		return "conflict"
	default:
		return "storage"
	}
}
