package domain

import "errors"

// Common domain errors shared by the stores and the HTTP layer.
var (
	// ErrNotFound is returned when a requested resource is not found
	ErrNotFound = errors.New("resource not found")
	// ErrAlreadyExists is returned when trying to create a resource that already exists
	ErrAlreadyExists = errors.New("resource already exists")
	// ErrValidation is returned when input validation fails
	ErrValidation = errors.New("validation error")
	// ErrUnauthorized is returned when a caller presents no valid credentials
	ErrUnauthorized = errors.New("unauthorized")
	// ErrForbidden is returned when a caller lacks the scope for an action
	ErrForbidden = errors.New("forbidden")
	// ErrConflict is returned when a request collides with one still in flight
	ErrConflict = errors.New("conflict")
)
