// Package dto holds the request payloads the tracker accepts and their
// validation.
package dto

import (
	"recontracker/domain/entity"
)

// ProgramCreate is the payload for creating a program
type ProgramCreate struct {
	Name      *string  `json:"name"`
	Platform  *string  `json:"platform"`
	Scope     *string  `json:"scope"`
	MaxBounty *float64 `json:"max_bounty"`
	Status    *string  `json:"status"`
}

// Validate checks required fields
func (r *ProgramCreate) Validate() error {
	errs := &ValidationError{}
	requireString(errs, "name", r.Name)
	requireString(errs, "platform", r.Platform)
	return errs.OrNil()
}

// ToEntity converts the payload, applying the default status
func (r *ProgramCreate) ToEntity() *entity.Program {
	status := entity.ProgramStatusActive
	if r.Status != nil {
		status = *r.Status
	}
	return &entity.Program{
		Name:      deref(r.Name),
		Platform:  deref(r.Platform),
		Scope:     r.Scope,
		MaxBounty: r.MaxBounty,
		Status:    status,
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
