package repository

import (
	"context"

	"recontracker/domain/entity"
)

// StatsRepository computes aggregates across all resources
type StatsRepository interface {
	Stats(ctx context.Context) (*entity.Stats, error)
}
