package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"recontracker/application/ports"
	"recontracker/domain/entity"
	"recontracker/domain/repository"
)

type statsRepository struct {
	q       ports.Querier
	logger  ports.Logger
	metrics ports.Metrics
	qb      squirrel.StatementBuilderType
}

var _ repository.StatsRepository = (*statsRepository)(nil)

// Stats computes every aggregate in a single statement so the four values
// come from one snapshot.
func (r *statsRepository) Stats(ctx context.Context) (*entity.Stats, error) {
	const op = "stats"
	start := time.Now()
	r.metrics.StartOperation(op)
	defer func() {
		r.metrics.EndOperation(op)
		r.metrics.RecordDuration(op, time.Since(start).Seconds())
	}()

	count := func(table string) squirrel.SelectBuilder {
		return r.qb.Select("COUNT(*)").From(table)
	}

	sqlQuery, args, err := r.qb.Select().
		Column(squirrel.Alias(count("programs"), "total_programs")).
		Column(squirrel.Alias(count("targets"), "total_targets")).
		Column(squirrel.Alias(count("vulnerabilities"), "total_vulnerabilities")).
		Column(squirrel.Alias(
			r.qb.Select("COALESCE(SUM(bounty_amount), 0)").From("vulnerabilities"),
			"total_bounties",
		)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var stats entity.Stats
	if err := r.q.Get(ctx, &stats, sqlQuery, args...); err != nil {
		r.logger.Error(ctx, "Failed to compute stats", err, nil)
		r.metrics.RecordError(op, errorType(err))
		return nil, fmt.Errorf("compute stats: %w", err)
	}

	r.metrics.RecordSuccess(op)
	return &stats, nil
}
