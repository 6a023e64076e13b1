package rop

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownFailure replaces a nil fault on a failed result.
	ErrUnknownFailure = errors.New("unknown failure")

	// ErrNoOutcome is reported when a job or async stage produced no result.
	ErrNoOutcome = errors.New("no outcome produced")

	// ErrPreviousFailure marks steps skipped because an earlier one failed.
	ErrPreviousFailure = errors.New("skipped due to previous failure")
)

// PanicError is the fault recorded when a job or bound function panics.
type PanicError struct {
	Value any
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.Value)
}

// Unwrap exposes the panic value when it was itself an error.
func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}

// Recovered converts a recover() value into an error, nil stays nil.
func Recovered(v any) error {
	if v == nil {
		return nil
	}
	return &PanicError{Value: v}
}
