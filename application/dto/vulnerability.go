package dto

import (
	"strings"

	"recontracker/domain/entity"
)

// VulnerabilityCreate is the payload for creating or replacing a vulnerability
type VulnerabilityCreate struct {
	TargetID          *int64   `json:"target_id"`
	Title             *string  `json:"title"`
	Severity          *string  `json:"severity"`
	VulnerabilityType *string  `json:"vulnerability_type"`
	Description       *string  `json:"description"`
	Status            *string  `json:"status"`
	BountyAmount      *float64 `json:"bounty_amount"`
	ReportedAt        *string  `json:"reported_at"`

	reportedAt *entity.Timestamp
}

// Validate checks required fields and that reported_at parses as a timestamp.
// A blank reported_at is treated as unset.
func (r *VulnerabilityCreate) Validate() error {
	errs := &ValidationError{}
	if r.TargetID == nil {
		errs.Add("target_id", "is required")
	}
	requireString(errs, "title", r.Title)
	requireString(errs, "severity", r.Severity)
	requireString(errs, "vulnerability_type", r.VulnerabilityType)

	r.reportedAt = nil
	if r.ReportedAt != nil && strings.TrimSpace(*r.ReportedAt) != "" {
		ts, err := entity.ParseTimestamp(*r.ReportedAt)
		if err != nil {
			errs.Add("reported_at", "must be an ISO 8601 timestamp")
		} else {
			r.reportedAt = &ts
		}
	}

	return errs.OrNil()
}

// ToEntity converts a validated payload, applying the default status
func (r *VulnerabilityCreate) ToEntity() *entity.Vulnerability {
	var targetID int64
	if r.TargetID != nil {
		targetID = *r.TargetID
	}
	status := entity.VulnerabilityStatusDraft
	if r.Status != nil {
		status = *r.Status
	}
	return &entity.Vulnerability{
		TargetID:          targetID,
		Title:             deref(r.Title),
		Severity:          deref(r.Severity),
		VulnerabilityType: deref(r.VulnerabilityType),
		Description:       r.Description,
		Status:            status,
		BountyAmount:      r.BountyAmount,
		ReportedAt:        r.reportedAt,
	}
}
