package container

import (
	"errors"
	"fmt"
)

// ErrInvalidArgument is wrapped by all errors caused by a missing or nil
// input to a Builder operation. Match with errors.Is.
var ErrInvalidArgument = errors.New("container: invalid argument")

// ErrAlreadyBuilt is returned when Build or Update is called on a Builder
// whose callback sequence has already been executed. A Builder is single-use;
// this is a programmer error, never retried.
var ErrAlreadyBuilt = errors.New("container: builder has already been built")

// ResolutionError is returned when a registration's factory fails or when no
// registration exists for a requested key.
type ResolutionError struct {
	Key     string
	Context string
	Cause   error
}

func (e *ResolutionError) Error() string {
	msg := fmt.Sprintf("container: failed to resolve [%s]", e.Key)
	if e.Context != "" {
		msg += ": " + e.Context
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause error.
func (e *ResolutionError) Unwrap() error { return e.Cause }

// ActivationError identifies an auto-activated registration that could not be
// constructed during the eager-activation sweep. It preserves the resolution
// failure as its cause so callers can distinguish "this auto-activated
// component could not be built" from a raw lower-level failure.
type ActivationError struct {
	Key   string
	Cause error
}

func (e *ActivationError) Error() string {
	return fmt.Sprintf("container: auto-activation of [%s] failed: %v", e.Key, e.Cause)
}

// Unwrap returns the underlying resolution failure.
func (e *ActivationError) Unwrap() error { return e.Cause }
