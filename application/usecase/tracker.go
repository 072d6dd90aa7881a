// Package usecase implements the tracker operations on top of the storage
// ports.
package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"recontracker/application/dto"
	"recontracker/application/ports"
	"recontracker/domain/entity"
	"recontracker/domain/repository"
	"recontracker/observability/types"
)

// TrackerService runs every tracker operation against one storage connection
// acquired for the call and released before it returns.
type TrackerService struct {
	db           ports.Database
	repositories ports.RepositoryFactory
	logger       ports.Logger
	metrics      ports.Metrics
}

// NewTrackerService creates the service
func NewTrackerService(db ports.Database, repositories ports.RepositoryFactory, obs ports.Observability) *TrackerService {
	return &TrackerService{
		db:           db,
		repositories: repositories,
		logger:       obs.Logger("usecase.tracker"),
		metrics:      obs.Metrics("usecase.tracker"),
	}
}

// withRepositories acquires a connection, binds repositories to it and runs
// fn. The connection is released on every path.
func withRepositories[T any](ctx context.Context, s *TrackerService, operation string, fn func(ports.Repositories) (T, error)) (result T, err error) {
	startTime := time.Now()
	s.metrics.StartOperation(operation)
	defer func() {
		s.metrics.EndOperation(operation)
		s.metrics.RecordDuration(operation, time.Since(startTime).Seconds())
		if err != nil {
			s.metrics.RecordError(operation, ErrorType(err))
			return
		}
		s.metrics.RecordSuccess(operation)
	}()

	conn, err := s.db.Acquire(ctx)
	if err != nil {
		return result, fmt.Errorf("%s: %w", operation, err)
	}
	defer func() {
		if closeErr := conn.Close(); closeErr != nil {
			s.logger.Error(ctx, "Failed to release connection", closeErr, types.Fields{"operation": operation})
		}
	}()

	return fn(s.repositories(conn))
}

func validID(field string, id int64) error {
	if id <= 0 {
		return dto.NewValidationError(field, "must be a positive integer")
	}
	return nil
}

// ListPrograms returns every program, most recent first
func (s *TrackerService) ListPrograms(ctx context.Context) ([]entity.Program, error) {
	return withRepositories(ctx, s, "programs.list", func(r ports.Repositories) ([]entity.Program, error) {
		return r.Programs().List(ctx)
	})
}

// CreateProgram validates and stores a program
func (s *TrackerService) CreateProgram(ctx context.Context, req *dto.ProgramCreate) (*entity.Program, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return withRepositories(ctx, s, "programs.create", func(r ports.Repositories) (*entity.Program, error) {
		return r.Programs().Create(ctx, req.ToEntity())
	})
}

// DeleteProgram removes a program. Programs that still have targets are refused.
func (s *TrackerService) DeleteProgram(ctx context.Context, id int64) error {
	if err := validID("id", id); err != nil {
		return err
	}
	_, err := withRepositories(ctx, s, "programs.delete", func(r ports.Repositories) (struct{}, error) {
		return struct{}{}, r.Programs().Delete(ctx, id)
	})
	return err
}

// ListTargets returns targets, optionally restricted to one program
func (s *TrackerService) ListTargets(ctx context.Context, filter repository.TargetFilter) ([]entity.Target, error) {
	return withRepositories(ctx, s, "targets.list", func(r ports.Repositories) ([]entity.Target, error) {
		return r.Targets().List(ctx, filter)
	})
}

// CreateTarget validates and stores a target
func (s *TrackerService) CreateTarget(ctx context.Context, req *dto.TargetCreate) (*entity.Target, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return withRepositories(ctx, s, "targets.create", func(r ports.Repositories) (*entity.Target, error) {
		return r.Targets().Create(ctx, req.ToEntity())
	})
}

// DeleteTarget removes a target. Targets that still have vulnerabilities are refused.
func (s *TrackerService) DeleteTarget(ctx context.Context, id int64) error {
	if err := validID("id", id); err != nil {
		return err
	}
	_, err := withRepositories(ctx, s, "targets.delete", func(r ports.Repositories) (struct{}, error) {
		return struct{}{}, r.Targets().Delete(ctx, id)
	})
	return err
}

// ListVulnerabilities returns vulnerabilities, optionally restricted to one target
func (s *TrackerService) ListVulnerabilities(ctx context.Context, filter repository.VulnerabilityFilter) ([]entity.Vulnerability, error) {
	return withRepositories(ctx, s, "vulnerabilities.list", func(r ports.Repositories) ([]entity.Vulnerability, error) {
		return r.Vulnerabilities().List(ctx, filter)
	})
}

// CreateVulnerability validates and stores a vulnerability
func (s *TrackerService) CreateVulnerability(ctx context.Context, req *dto.VulnerabilityCreate) (*entity.Vulnerability, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return withRepositories(ctx, s, "vulnerabilities.create", func(r ports.Repositories) (*entity.Vulnerability, error) {
		return r.Vulnerabilities().Create(ctx, req.ToEntity())
	})
}

// UpdateVulnerability replaces every mutable field of a vulnerability
func (s *TrackerService) UpdateVulnerability(ctx context.Context, id int64, req *dto.VulnerabilityCreate) (*entity.Vulnerability, error) {
	if err := validID("id", id); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return withRepositories(ctx, s, "vulnerabilities.update", func(r ports.Repositories) (*entity.Vulnerability, error) {
		return r.Vulnerabilities().Update(ctx, id, req.ToEntity())
	})
}

// DeleteVulnerability removes a vulnerability
func (s *TrackerService) DeleteVulnerability(ctx context.Context, id int64) error {
	if err := validID("id", id); err != nil {
		return err
	}
	_, err := withRepositories(ctx, s, "vulnerabilities.delete", func(r ports.Repositories) (struct{}, error) {
		return struct{}{}, r.Vulnerabilities().Delete(ctx, id)
	})
	return err
}

// GetStats returns the store-wide aggregates
func (s *TrackerService) GetStats(ctx context.Context) (*entity.Stats, error) {
	return withRepositories(ctx, s, "stats", func(r ports.Repositories) (*entity.Stats, error) {
		return r.Stats().Stats(ctx)
	})
}

// Health pings the store
func (s *TrackerService) Health(ctx context.Context) error {
	if err := s.db.Ping(ctx); err != nil {
		s.logger.Error(ctx, "Health check failed", err, nil)
		return fmt.Errorf("database unreachable: %w", err)
	}
	return nil
}

// ErrorType buckets an operation error for metrics and logs
func ErrorType(err error) string {
	var vErr *dto.ValidationError
	switch {
	case errors.As(err, &vErr):
		return "validation"
	case errors.Is(err, repository.ErrNotFound):
		return "not_found"
	case errors.Is(err, repository.ErrConflict):
		return "conflict"
	default:
		return "internal"
	}
}
