package entity

// Stats aggregates the whole store.
type Stats struct {
	TotalPrograms        int64   `db:"total_programs" json:"total_programs"`
	TotalTargets         int64   `db:"total_targets" json:"total_targets"`
	TotalVulnerabilities int64   `db:"total_vulnerabilities" json:"total_vulnerabilities"`
	TotalBounties        float64 `db:"total_bounties" json:"total_bounties"`
}
