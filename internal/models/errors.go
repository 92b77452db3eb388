package models

import "errors"

// Error categories shared by repositories, services and handlers.
//
// Repositories and services wrap these with fmt.Errorf("...: %w", ErrX) so that
// handlers can map them to HTTP status codes with errors.Is.
var (
	// ErrNotFound means the requested entity does not exist.
	ErrNotFound = errors.New("not found")
	// ErrAccessDenied means the caller's role or enrollment does not allow the operation.
	ErrAccessDenied = errors.New("access denied")
	// ErrInvalidState means the entity exists but is not in a state that allows the operation.
	ErrInvalidState = errors.New("invalid state")
	// ErrConflict means the operation would duplicate an existing record.
	ErrConflict = errors.New("conflict")
	// ErrValidation means the request itself is malformed.
	ErrValidation = errors.New("validation failed")
)
