package repository

import "github.com/casaflow/casaflow/internal/repository/errs"

var (
	// ErrNotFound is returned when a requested entity doesn't exist
	ErrNotFound = errs.ErrNotFound

	// ErrDuplicate is returned when an insert collides with an existing row
	ErrDuplicate = errs.ErrDuplicate

	// ErrForeignKeyViolation is returned when a foreign key constraint fails
	ErrForeignKeyViolation = errs.ErrForeignKeyViolation
)
