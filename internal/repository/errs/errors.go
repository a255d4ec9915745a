// Package errs holds the repository sentinel errors in a leaf package so
// that domain packages can match on them without importing the repository
// interfaces (which import the domain packages).
package errs

import "errors"

var (
	// ErrNotFound is returned when a requested entity doesn't exist
	ErrNotFound = errors.New("not found")

	// ErrDuplicate is returned when an insert collides with an existing row
	ErrDuplicate = errors.New("duplicate entity")

	// ErrForeignKeyViolation is returned when a foreign key constraint fails
	ErrForeignKeyViolation = errors.New("foreign key violation")
)
