package store

import "errors"

var (
	// ErrNotFound is returned when an update targets an id that is not
	// present in the stored sequence. Removal of a missing id is a
	// no-op, not an error.
	ErrNotFound = errors.New("record not found")

	// ErrEmailExists is returned when a user with the same email is
	// already registered.
	ErrEmailExists = errors.New("email already registered")
)
