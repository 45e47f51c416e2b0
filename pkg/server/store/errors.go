package store

import "errors"

var (
	// ErrNotFound indicates the requested record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicateName indicates a unique-name constraint rejected a
	// write. During catalog sync this means another instance already
	// inserted the record and is recoverable.
	ErrDuplicateName = errors.New("name already exists")

	// ErrDuplicateEmail indicates a user email is already registered.
	ErrDuplicateEmail = errors.New("email already in use")
)
