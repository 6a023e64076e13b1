package rop

import (
	"time"

	"github.com/google/uuid"

	"github.com/ib-77/ropchain/pkg/rop/diag"
)

// Result is the outcome of one job or one whole chain: the produced state,
// a success flag, the fault on failure, timestamps and the diagnostics trail.
// A failed Result always carries a non-nil error.
type Result[T any] struct {
	id          uuid.UUID
	state       T
	err         error
	isSuccess   bool
	startedAt   time.Time
	completedAt time.Time
	diagnostics *diag.Log
	failure     *Failure
}

// Failure records the snapshot a failure really happened in. State keeps its
// own dynamic type, which may differ from the Result's T; callers type-switch
// on it or use FailedAs.
type Failure struct {
	Step  string
	Index int
	State any
}

func FromSuccess[T any](state T, diagnostics *diag.Log) Result[T] {
	now := time.Now().UTC()
	return Result[T]{
		id:          uuid.New(),
		state:       state,
		isSuccess:   true,
		startedAt:   now,
		completedAt: now,
		diagnostics: diagnostics,
	}
}

// FromError builds a failed result. The fault message is always appended to
// a copy of diagnostics (a new log when nil), so the newest entry of every
// failed result names its fault.
func FromError[T any](state T, err error, diagnostics *diag.Log) Result[T] {
	if IsNil(err) {
		err = ErrUnknownFailure
	}
	log := diagnostics.Clone()
	if log == nil {
		log = diag.New()
	}
	log.Error(err.Error())

	now := time.Now().UTC()
	return Result[T]{
		id:          uuid.New(),
		state:       state,
		err:         err,
		startedAt:   now,
		completedAt: now,
		diagnostics: log,
	}
}

func (r Result[T]) State() T {
	return r.state
}

func (r Result[T]) Err() error {
	return r.err
}

func (r Result[T]) IsSuccess() bool {
	return r.isSuccess
}

func (r Result[T]) IsFailure() bool {
	return !r.isSuccess
}

func (r Result[T]) StartedAt() time.Time {
	return r.startedAt
}

func (r Result[T]) CompletedAt() time.Time {
	return r.completedAt
}

func (r Result[T]) Duration() time.Duration {
	return r.completedAt.Sub(r.startedAt)
}

// Diagnostics returns the result's log, nil when none was attached.
func (r Result[T]) Diagnostics() *diag.Log {
	return r.diagnostics
}

func (r Result[T]) Failure() (Failure, bool) {
	if r.failure == nil {
		return Failure{}, false
	}
	return *r.failure, true
}

func (r Result[T]) Id() uuid.UUID {
	return r.id
}

// IsEmpty reports whether r was never built through a constructor.
func (r Result[T]) IsEmpty() bool {
	return r.id == uuid.Nil && !r.isSuccess && r.err == nil
}

// WithState replaces the state and leaves every other field as is.
func (r Result[T]) WithState(state T) Result[T] {
	r.state = state
	return r
}

// WithErr replaces the fault and leaves the success flag as is.
func (r Result[T]) WithErr(err error) Result[T] {
	r.err = err
	return r
}

func (r Result[T]) WithStartedAt(t time.Time) Result[T] {
	r.startedAt = t
	return r
}

func (r Result[T]) WithCompletedAt(t time.Time) Result[T] {
	r.completedAt = t
	return r
}

func (r Result[T]) WithDiagnostics(log *diag.Log) Result[T] {
	r.diagnostics = log
	return r
}

func (r Result[T]) WithFailure(f Failure) Result[T] {
	r.failure = &f
	return r
}

func (r Result[T]) WithID(id uuid.UUID) Result[T] {
	r.id = id
	return r
}

// FailedAs returns the failure snapshot of r as S.
func FailedAs[S, T any](r Result[T]) (S, bool) {
	var zero S
	f, ok := r.Failure()
	if !ok {
		return zero, false
	}
	s, ok := f.State.(S)
	return s, ok
}

// Erase converts r into its type-erased form, keeping every field.
func Erase[T any](r Result[T]) Result[any] {
	return Result[any]{
		id:          r.id,
		state:       r.state,
		err:         r.err,
		isSuccess:   r.isSuccess,
		startedAt:   r.startedAt,
		completedAt: r.completedAt,
		diagnostics: r.diagnostics,
		failure:     r.failure,
	}
}

// Reshape moves r onto a new state type. The state is kept when it already
// is an Out; otherwise it becomes the zero Out and the original snapshot is
// recorded as the failure origin (an earlier origin wins).
func Reshape[In, Out any](r Result[In]) Result[Out] {
	out := Result[Out]{
		id:          r.id,
		err:         r.err,
		isSuccess:   r.isSuccess,
		startedAt:   r.startedAt,
		completedAt: r.completedAt,
		diagnostics: r.diagnostics,
		failure:     r.failure,
	}
	if s, ok := any(r.state).(Out); ok {
		out.state = s
	} else if out.failure == nil {
		out.failure = &Failure{Index: -1, State: r.state}
	}
	return out
}
