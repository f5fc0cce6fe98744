package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrInvalidInput indicates malformed or invalid input.
	// Configuration errors raised before any network call wrap it.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedType indicates an unknown loader type.
	ErrUnsupportedType = errors.New("unsupported type")

	// ErrAuthRequired indicates the loader requires authentication but none is configured.
	ErrAuthRequired = errors.New("authentication required")
)
