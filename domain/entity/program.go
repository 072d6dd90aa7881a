package entity

// ProgramStatusActive is the status a program gets when none is supplied.
const ProgramStatusActive = "active"

// Program is a bug bounty program tracked by the service.
type Program struct {
	ID        int64     `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Platform  string    `db:"platform" json:"platform"`
	Scope     *string   `db:"scope" json:"scope"`
	MaxBounty *float64  `db:"max_bounty" json:"max_bounty"`
	Status    string    `db:"status" json:"status"`
	CreatedAt Timestamp `db:"created_at" json:"created_at"`
}
