package repo

import "errors"

var (
	// ErrNotFound is returned when no row matches, including rows owned by a
	// different user. Handlers present both cases identically as 404.
	ErrNotFound = errors.New("not found")
	// ErrConflict is returned on a unique constraint violation (username or email taken).
	ErrConflict = errors.New("already exists")
)
