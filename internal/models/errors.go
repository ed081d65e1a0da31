package models

import (
	"errors"
	"fmt"
)

// NotFoundError reports a lookup against a key that does not exist or is
// inactive. The key is caller-supplied, so retrying the same call cannot
// succeed.
type NotFoundError struct {
	Entity string
	Key    string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Entity, e.Key)
}

// ValidationError reports structurally invalid input
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// InvalidStateError reports an order lifecycle transition attempted from a
// terminal state.
type InvalidStateError struct {
	Current   OrderStatus
	Attempted OrderStatus
}

func (e InvalidStateError) Error() string {
	return fmt.Sprintf("cannot transition order from %s to %s", e.Current, e.Attempted)
}

// IsNotFound reports whether err is a NotFoundError.
func IsNotFound(err error) bool {
	var nf NotFoundError
	return errors.As(err, &nf)
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve ValidationError
	return errors.As(err, &ve)
}

// IsInvalidState reports whether err is an InvalidStateError.
func IsInvalidState(err error) bool {
	var se InvalidStateError
	return errors.As(err, &se)
}
