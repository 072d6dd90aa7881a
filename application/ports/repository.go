package ports

import (
	"recontracker/domain/repository"
)

// Repositories gives access to every repository bound to one querier
type Repositories interface {
	Programs() repository.ProgramRepository
	Targets() repository.TargetRepository
	Vulnerabilities() repository.VulnerabilityRepository
	Stats() repository.StatsRepository
}

// RepositoryFactory binds a fresh set of repositories to q
type RepositoryFactory func(q Querier) Repositories
