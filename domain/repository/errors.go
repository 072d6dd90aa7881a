package repository

import "errors"

var (
	// ErrNotFound is returned when no record has the requested id.
	ErrNotFound = errors.New("entity not found")

	// ErrConflict is returned when a write would break a reference between
	// records: a child pointing at a missing parent, or a parent deleted
	// while children still point at it.
	ErrConflict = errors.New("referential integrity violation")
)
