package domain

import "errors"

var (
	// ErrValidation is returned when a required field is missing or empty.
	ErrValidation = errors.New("validation failed")
	// ErrNotFound is returned when no task matches the given id.
	ErrNotFound = errors.New("task not found")
)
