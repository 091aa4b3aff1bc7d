package stores

import "errors"

var (
	// ErrNotFound is returned when a post, comment or user id is absent.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicateEmail is returned when an email is already registered.
	// Concurrent registrations race at the database; the unique index
	// rejects the second insert and it surfaces as this error.
	ErrDuplicateEmail = errors.New("email already registered")
	// ErrDuplicateTitle is returned when a post title is already taken.
	ErrDuplicateTitle = errors.New("title already taken")
)
