package pipeline

import (
	"errors"
	"fmt"
)

var (
	// ErrTerminalMismatch is matched by a failure that could not be reported
	// as the pipeline's terminal state type.
	ErrTerminalMismatch = errors.New("failure cannot be reported as the terminal state type")
	// ErrStepInput is matched when a step receives a state it was not built for.
	ErrStepInput = errors.New("step received a state of unexpected type")
)

// TerminalMismatchError is returned by Execute when a step failed with a state
// that is not the terminal type and no placeholder was available.
type TerminalMismatchError struct {
	Pipeline string
	Step     string
	Index    int
	From     string
	To       string
	Cause    error
}

func (e *TerminalMismatchError) Error() string {
	return fmt.Sprintf("pipeline %s: step %d (%s) failed with state %s which cannot be reported as %s and no placeholder for %s is available: %v",
		e.Pipeline, e.Index, e.Step, e.From, e.To, e.To, e.Cause)
}

func (e *TerminalMismatchError) Unwrap() error {
	return e.Cause
}

func (e *TerminalMismatchError) Is(target error) bool {
	return target == ErrTerminalMismatch
}

// StepInputError signals a broken chain: the state handed to a step does not
// have the step's declared input type.
type StepInputError struct {
	Step string
	Want string
	Got  string
}

func (e *StepInputError) Error() string {
	return fmt.Sprintf("step %s expects %s, got %s", e.Step, e.Want, e.Got)
}

func (e *StepInputError) Is(target error) bool {
	return target == ErrStepInput
}
