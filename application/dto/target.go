package dto

import (
	"recontracker/domain/entity"
)

// TargetCreate is the payload for creating a target
type TargetCreate struct {
	ProgramID *int64  `json:"program_id"`
	Domain    *string `json:"domain"`
	IPAddress *string `json:"ip_address"`
	TechStack *string `json:"tech_stack"`
	Notes     *string `json:"notes"`
}

// Validate checks required fields
func (r *TargetCreate) Validate() error {
	errs := &ValidationError{}
	if r.ProgramID == nil {
		errs.Add("program_id", "is required")
	}
	requireString(errs, "domain", r.Domain)
	return errs.OrNil()
}

// ToEntity converts the payload
func (r *TargetCreate) ToEntity() *entity.Target {
	var programID int64
	if r.ProgramID != nil {
		programID = *r.ProgramID
	}
	return &entity.Target{
		ProgramID: programID,
		Domain:    deref(r.Domain),
		IPAddress: r.IPAddress,
		TechStack: r.TechStack,
		Notes:     r.Notes,
	}
}
