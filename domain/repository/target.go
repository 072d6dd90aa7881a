package repository

import (
	"context"

	"recontracker/domain/entity"
)

// TargetFilter restricts a target listing. A nil ProgramID lists every target.
type TargetFilter struct {
	ProgramID *int64
}

// TargetRepository defines the interface for target persistence
type TargetRepository interface {
	List(ctx context.Context, filter TargetFilter) ([]entity.Target, error)
	Create(ctx context.Context, target *entity.Target) (*entity.Target, error)
	Get(ctx context.Context, id int64) (*entity.Target, error)
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int64, error)
}
