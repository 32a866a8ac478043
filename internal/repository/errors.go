package repository

import "errors"

var (
	// ErrNotFound indicates the requested record does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrConflict indicates an insert violated a uniqueness constraint.
	ErrConflict = errors.New("record already exists")
)
