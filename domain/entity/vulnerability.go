package entity

// VulnerabilityStatusDraft is the status a vulnerability gets when none is supplied.
const VulnerabilityStatusDraft = "draft"

// Severity values the dashboard expects. Storage does not enforce them.
const (
	SeverityLow      = "low"
	SeverityMedium   = "medium"
	SeverityHigh     = "high"
	SeverityCritical = "critical"
)

// Vulnerability is a finding recorded against a target.
type Vulnerability struct {
	ID                int64      `db:"id" json:"id"`
	TargetID          int64      `db:"target_id" json:"target_id"`
	Title             string     `db:"title" json:"title"`
	Severity          string     `db:"severity" json:"severity"`
	VulnerabilityType string     `db:"vulnerability_type" json:"vulnerability_type"`
	Description       *string    `db:"description" json:"description"`
	Status            string     `db:"status" json:"status"`
	BountyAmount      *float64   `db:"bounty_amount" json:"bounty_amount"`
	ReportedAt        *Timestamp `db:"reported_at" json:"reported_at"`
	CreatedAt         Timestamp  `db:"created_at" json:"created_at"`
}
