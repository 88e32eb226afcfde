package store

import "errors"

var (
	// ErrEventNotFound is returned when no event carries the given ID.
	ErrEventNotFound = errors.New("event not found")
)
