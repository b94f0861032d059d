package sessionstorage

import (
	"errors"

	"github.com/grafana/sobek"
	"go.k6.io/k6/js/common"

	"github.com/oshokin/xk6-session-storage/sessionstorage/store"
)

var _ error = (*Error)(nil)

// ErrStorageOptionsInvalid is returned when openStorage() options cannot be parsed.
var ErrStorageOptionsInvalid = errors.New("invalid storage options")

// ErrorName represents the name of an error.
type ErrorName string

const (
	// InvalidArgumentError is emitted when an operation receives an argument of
	// the wrong type: a non-string key, a non-array key list, a malformed pair,
	// a merge patch that is not a plain object or a cyclic value.
	InvalidArgumentError ErrorName = "InvalidArgumentError"

	// OptionsError is emitted when openStorage() receives invalid options.
	OptionsError ErrorName = "OptionsError"
)

// Error represents a custom error emitted by the sessionstorage module.
type Error struct {
	// Name contains one of the strings associated with an error name.
	Name ErrorName `json:"name"`

	// Message represents message or description associated with the given error name.
	Message string `json:"message"`
}

// NewError returns a new Error instance.
func NewError(name ErrorName, message string) *Error {
	return &Error{
		Name:    name,
		Message: message,
	}
}

// Error implements the error interface.
func (e *Error) Error() string {
	return string(e.Name) + ": " + e.Message
}

// ToSobekValue builds the JS exception for e. Both kinds describe a bad
// argument, so they are TypeError instances carrying e.Name as their name.
func (e *Error) ToSobekValue(rt *sobek.Runtime) sobek.Value {
	jsErr := rt.NewTypeError(e.Message)
	if err := jsErr.Set("name", string(e.Name)); err != nil {
		return rt.NewGoError(err)
	}

	return jsErr
}

// classifyError downgrades internal Go errors to structured errors for JS.
func classifyError(err error) error {
	if err == nil {
		return nil
	}

	var ssErr *Error
	if errors.As(err, &ssErr) {
		return ssErr
	}

	switch {
	case errors.Is(err, store.ErrInvalidArgument),
		errors.Is(err, store.ErrCyclicValue):
		return NewError(InvalidArgumentError, err.Error())
	case errors.Is(err, ErrStorageOptionsInvalid):
		return NewError(OptionsError, err.Error())
	}

	return err
}

// throwError raises err as a JS exception in rt. It never returns.
func throwError(rt *sobek.Runtime, err error) {
	classified := classifyError(err)

	var ssErr *Error
	if errors.As(classified, &ssErr) {
		panic(ssErr.ToSobekValue(rt))
	}

	common.Throw(rt, classified)
}
