package repository

import (
	"context"

	"recontracker/domain/entity"
)

// VulnerabilityFilter restricts a vulnerability listing. A nil TargetID lists
// every vulnerability.
type VulnerabilityFilter struct {
	TargetID *int64
}

// VulnerabilityRepository defines the interface for vulnerability persistence
type VulnerabilityRepository interface {
	List(ctx context.Context, filter VulnerabilityFilter) ([]entity.Vulnerability, error)
	Create(ctx context.Context, vulnerability *entity.Vulnerability) (*entity.Vulnerability, error)
	Get(ctx context.Context, id int64) (*entity.Vulnerability, error)
	// Update replaces every mutable field of the record with id. ID and
	// CreatedAt are never written.
	Update(ctx context.Context, id int64, vulnerability *entity.Vulnerability) (*entity.Vulnerability, error)
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int64, error)
}
