package storage

import "errors"

var (
	// ErrNotFound indicates the requested row does not exist.
	ErrNotFound = errors.New("storage: not found")

	// ErrDuplicateKey indicates an insert violated a uniqueness constraint.
	ErrDuplicateKey = errors.New("storage: duplicate key")
)
