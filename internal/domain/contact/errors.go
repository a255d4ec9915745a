package contact

import "errors"

var (
	// ErrNotAuthorized indicates the caller lacks the elevated role.
	ErrNotAuthorized = errors.New("elevated role required")
	// ErrInvalidTransition indicates a manual status write while the contact is in auto mode.
	ErrInvalidTransition = errors.New("contact status is not in manual mode")
	// ErrContactNotFound indicates the contact doesn't exist.
	ErrContactNotFound = errors.New("contact not found")
	// ErrInvalidStatus indicates an unknown status value.
	ErrInvalidStatus = errors.New("invalid status value")
	// ErrInvalidMode indicates an unknown status mode.
	ErrInvalidMode = errors.New("invalid status mode")
	// ErrInvalidInput indicates invalid input for contact operations.
	ErrInvalidInput = errors.New("invalid contact input")
)
