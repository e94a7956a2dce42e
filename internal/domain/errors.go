package domain

import "errors"

var (
	// ErrValidation is returned when a value breaks a domain rule
	// (empty title, empty comment, unknown category).
	ErrValidation = errors.New("validation failed")

	// ErrNotFound is returned by lookups that require an existing entity.
	ErrNotFound = errors.New("not found")
)
