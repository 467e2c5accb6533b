package repository

import "errors"

var (
	// ErrNotFound is returned when an id (or email) does not resolve, including malformed ids.
	ErrNotFound = errors.New("not found")
	// ErrDuplicate is returned when a unique constraint rejects a write.
	ErrDuplicate = errors.New("duplicate key")
)
