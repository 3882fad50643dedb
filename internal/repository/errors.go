package repository

import "errors"

var (
	// ErrNotFound is returned when a requested entity or slot does not exist.
	ErrNotFound = errors.New("entity not found")
)
