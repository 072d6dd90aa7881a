package repository

import (
	"context"

	"recontracker/domain/entity"
)

// ProgramRepository defines the interface for program persistence
type ProgramRepository interface {
	List(ctx context.Context) ([]entity.Program, error)
	Create(ctx context.Context, program *entity.Program) (*entity.Program, error)
	Get(ctx context.Context, id int64) (*entity.Program, error)
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int64, error)
}
