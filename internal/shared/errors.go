package shared

import "errors"

var (
	// ErrNotFound indicates the requested row does not exist.
	ErrNotFound = errors.New("not found")
	// ErrDuplicate indicates a unique or primary key collision.
	ErrDuplicate = errors.New("duplicate entry")
	// ErrValidation indicates the input was rejected by validation or a schema constraint.
	ErrValidation = errors.New("validation failed")
	// ErrUnauthorized indicates a missing or wrong API token.
	ErrUnauthorized = errors.New("unauthorized")
)
