package pipeline

import (
	"context"
	"reflect"

	"github.com/ib-77/ropchain/pkg/rop"
	"github.com/ib-77/ropchain/pkg/rop/diag"
	"github.com/ib-77/ropchain/pkg/rop/job"
)

// step is one frozen entry of a pipeline. Every step shares the erased
// signature so the engine can walk a heterogeneous list.
type step interface {
	label() string
	invoke(ctx context.Context, in any) (rop.Result[any], error)
}

// directStep runs a job that already works on the erased shape.
type directStep struct {
	name string
	job  job.Job[any, any]
}

func (s directStep) label() string {
	return s.name
}

func (s directStep) invoke(ctx context.Context, in any) (rop.Result[any], error) {
	return job.Invoke(ctx, s.job, in), nil
}

// jobStep adapts a typed job: the erased input is asserted to In and the
// typed result is erased again.
type jobStep[In, Out any] struct {
	name string
	job  job.Job[In, Out]
}

func (s jobStep[In, Out]) label() string {
	return s.name
}

func (s jobStep[In, Out]) invoke(ctx context.Context, in any) (rop.Result[any], error) {
	typed, err := castInput[In](s.name, in)
	if err != nil {
		return rop.Result[any]{}, err
	}
	return rop.Erase(job.Invoke(ctx, s.job, typed)), nil
}

func newJobStep[In, Out any](j job.Job[In, Out]) step {
	name := job.Name(j)
	if direct, ok := any(j).(job.Job[any, any]); ok {
		return directStep{name: name, job: direct}
	}
	return jobStep[In, Out]{name: name, job: j}
}

// nestedStep runs two independently built runners back to back as a single
// step. A failure of the first short-circuits the second and is reported to
// the enclosing pipeline unreconciled.
type nestedStep[In, Mid, Out any] struct {
	name   string
	first  Runner[In, Mid]
	second Runner[Mid, Out]
}

func (s nestedStep[In, Mid, Out]) label() string {
	return s.name
}

func (s nestedStep[In, Mid, Out]) invoke(ctx context.Context, in any) (rop.Result[any], error) {
	typed, err := castInput[In](s.name, in)
	if err != nil {
		return rop.Result[any]{}, err
	}

	first, err := runErased(ctx, s.first, typed)
	if err != nil || first.IsFailure() || s.second == nil {
		return first, err
	}

	mid, err := castInput[Mid](s.name, first.State())
	if err != nil {
		return rop.Result[any]{}, err
	}
	second, err := runErased(ctx, s.second, mid)
	if err != nil {
		return rop.Result[any]{}, err
	}

	return second.
		WithDiagnostics(diag.Merge(first.Diagnostics(), second.Diagnostics())).
		WithStartedAt(first.StartedAt()), nil
}

// erasedRunner is implemented by *Pipeline: it runs without reconciling a
// failure to its own terminal type.
type erasedRunner interface {
	runErased(ctx context.Context, in any) (rop.Result[any], error)
}

func runErased[In, Out any](ctx context.Context, r Runner[In, Out], in In) (rop.Result[any], error) {
	if e, ok := r.(erasedRunner); ok {
		return e.runErased(ctx, in)
	}
	res, err := r.Execute(ctx, in)
	if err != nil {
		return rop.Result[any]{}, err
	}
	return rop.Erase(res), nil
}

func castInput[T any](stepName string, v any) (T, error) {
	if t, ok := asState[T](v); ok {
		return t, nil
	}
	var zero T
	return zero, &StepInputError{Step: stepName, Want: rop.TypeNameOf[T](), Got: rop.TypeName(v)}
}

// asState asserts an erased state to T. A nil interface counts as the zero T
// when T can hold nil, since erasing a nil interface value loses its type.
func asState[T any](v any) (T, bool) {
	if t, ok := v.(T); ok {
		return t, true
	}
	var zero T
	return zero, v == nil && nilable(reflect.TypeOf((*T)(nil)).Elem())
}

func nilable(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Interface, reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return true
	default:
		return false
	}
}
