package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"recontracker/application/ports"
	"recontracker/domain/entity"
	"recontracker/domain/repository"
	"recontracker/observability/types"
)

var vulnerabilityColumns = []string{
	"id", "target_id", "title", "severity", "vulnerability_type", "description",
	"status", "bounty_amount", "reported_at", "created_at",
}

type vulnerabilityRepository struct {
	*baseRepository[entity.Vulnerability]
}

var _ repository.VulnerabilityRepository = (*vulnerabilityRepository)(nil)

func (r *vulnerabilityRepository) List(ctx context.Context, filter repository.VulnerabilityFilter) ([]entity.Vulnerability, error) {
	var where squirrel.Sqlizer
	if filter.TargetID != nil {
		where = squirrel.Eq{"target_id": *filter.TargetID}
	}
	return r.list(ctx, where)
}

func (r *vulnerabilityRepository) Create(ctx context.Context, v *entity.Vulnerability) (*entity.Vulnerability, error) {
	query := r.qb.Insert(r.table).
		Columns(
			"target_id", "title", "severity", "vulnerability_type", "description",
			"status", "bounty_amount", "reported_at", "created_at",
		).
		Values(
			v.TargetID, v.Title, v.Severity, v.VulnerabilityType, v.Description,
			v.Status, v.BountyAmount, v.ReportedAt, entity.Now(),
		)

	return r.insert(ctx, query)
}

// Update replaces every mutable column. created_at is never part of the SET list.
func (r *vulnerabilityRepository) Update(ctx context.Context, id int64, v *entity.Vulnerability) (_ *entity.Vulnerability, err error) {
	done := r.observe("update")
	defer func() { done(err) }()

	sqlQuery, args, err := r.qb.Update(r.table).
		Set("target_id", v.TargetID).
		Set("title", v.Title).
		Set("severity", v.Severity).
		Set("vulnerability_type", v.VulnerabilityType).
		Set("description", v.Description).
		Set("status", v.Status).
		Set("bounty_amount", v.BountyAmount).
		Set("reported_at", v.ReportedAt).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var updated *entity.Vulnerability
	err = r.q.Transaction(ctx, func(tx ports.Querier) error {
		result, err := tx.Execute(ctx, sqlQuery, args...)
		if err != nil {
			return err
		}
		rows, err := result.RowsAffected()
		if err != nil {
			return err
		}
		if rows == 0 {
			return repository.ErrNotFound
		}
		updated, err = r.get(ctx, tx, id)
		return err
	})
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) && !errors.Is(err, repository.ErrConflict) {
			r.logger.Error(ctx, "Failed to update entity", err, types.Fields{"table": r.table, "id": id})
		}
		return nil, fmt.Errorf("update %s %d: %w", r.table, id, err)
	}

	r.logger.Info(ctx, "Updated entity", types.Fields{"table": r.table, "id": id})
	return updated, nil
}
