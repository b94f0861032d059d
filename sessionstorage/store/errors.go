package store

import "errors"

var (
	// ErrInvalidArgument is returned when an operation receives an argument of the
	// wrong shape (for example a merge patch that is not an object).
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrCyclicValue is returned when a value to be stored references itself.
	ErrCyclicValue = errors.New("cyclic value")
)
