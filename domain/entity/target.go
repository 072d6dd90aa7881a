package entity

// Target is a domain or host that belongs to a program.
type Target struct {
	ID        int64     `db:"id" json:"id"`
	ProgramID int64     `db:"program_id" json:"program_id"`
	Domain    string    `db:"domain" json:"domain"`
	IPAddress *string   `db:"ip_address" json:"ip_address"`
	TechStack *string   `db:"tech_stack" json:"tech_stack"`
	Notes     *string   `db:"notes" json:"notes"`
	CreatedAt Timestamp `db:"created_at" json:"created_at"`
}
