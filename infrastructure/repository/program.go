package repository

import (
	"context"

	"recontracker/domain/entity"
	"recontracker/domain/repository"
)

var programColumns = []string{
	"id", "name", "platform", "scope", "max_bounty", "status", "created_at",
}

type programRepository struct {
	*baseRepository[entity.Program]
}

var _ repository.ProgramRepository = (*programRepository)(nil)

func (r *programRepository) List(ctx context.Context) ([]entity.Program, error) {
	return r.list(ctx, nil)
}

func (r *programRepository) Create(ctx context.Context, program *entity.Program) (*entity.Program, error) {
	query := r.qb.Insert(r.table).
		Columns("name", "platform", "scope", "max_bounty", "status", "created_at").
		Values(
			program.Name, program.Platform, program.Scope, program.MaxBounty,
			program.Status, entity.Now(),
		)

	return r.insert(ctx, query)
}
