package repository

import (
	"context"

	"github.com/Masterminds/squirrel"

	"recontracker/domain/entity"
	"recontracker/domain/repository"
)

var targetColumns = []string{
	"id", "program_id", "domain", "ip_address", "tech_stack", "notes", "created_at",
}

type targetRepository struct {
	*baseRepository[entity.Target]
}

var _ repository.TargetRepository = (*targetRepository)(nil)

func (r *targetRepository) List(ctx context.Context, filter repository.TargetFilter) ([]entity.Target, error) {
	var where squirrel.Sqlizer
	if filter.ProgramID != nil {
		where = squirrel.Eq{"program_id": *filter.ProgramID}
	}
	return r.list(ctx, where)
}

func (r *targetRepository) Create(ctx context.Context, target *entity.Target) (*entity.Target, error) {
	query := r.qb.Insert(r.table).
		Columns("program_id", "domain", "ip_address", "tech_stack", "notes", "created_at").
		Values(
			target.ProgramID, target.Domain, target.IPAddress, target.TechStack,
			target.Notes, entity.Now(),
		)

	return r.insert(ctx, query)
}
