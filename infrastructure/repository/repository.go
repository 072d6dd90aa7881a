// Package repository implements the domain repositories with squirrel-built
// SQL executed through a ports.Querier.
package repository

import (
	"recontracker/application/ports"
	"recontracker/domain/entity"
	"recontracker/domain/repository"
)

// Repositories holds every repository bound to one querier
type Repositories struct {
	programs        repository.ProgramRepository
	targets         repository.TargetRepository
	vulnerabilities repository.VulnerabilityRepository
	stats           repository.StatsRepository
}

var _ ports.Repositories = (*Repositories)(nil)

// NewRepositories creates all repository instances on q
func NewRepositories(q ports.Querier, obs ports.Observability) *Repositories {
	logger := obs.Logger("repository")
	metrics := obs.Metrics("repository")

	return &Repositories{
		programs: &programRepository{
			newBaseRepository[entity.Program](q, logger, metrics, "programs", programColumns),
		},
		targets: &targetRepository{
			newBaseRepository[entity.Target](q, logger, metrics, "targets", targetColumns),
		},
		vulnerabilities: &vulnerabilityRepository{
			newBaseRepository[entity.Vulnerability](q, logger, metrics, "vulnerabilities", vulnerabilityColumns),
		},
		stats: &statsRepository{
			q:       q,
			logger:  logger,
			metrics: metrics,
			qb:      statementBuilder(q.Driver()),
		},
	}
}

// Factory returns a ports.RepositoryFactory that binds repositories to a querier
func Factory(obs ports.Observability) ports.RepositoryFactory {
	return func(q ports.Querier) ports.Repositories {
		return NewRepositories(q, obs)
	}
}

func (r *Repositories) Programs() repository.ProgramRepository {
	return r.programs
}

func (r *Repositories) Targets() repository.TargetRepository {
	return r.targets
}

func (r *Repositories) Vulnerabilities() repository.VulnerabilityRepository {
	return r.vulnerabilities
}

func (r *Repositories) Stats() repository.StatsRepository {
	return r.stats
}
