package job

import (
	"context"
	"fmt"

	"github.com/ib-77/ropchain/pkg/rop"
	"github.com/ib-77/ropchain/pkg/rop/diag"
)

// Job turns an In snapshot into an Out snapshot. Implementations should
// return a best-effort Out even when failing.
type Job[In, Out any] interface {
	Run(ctx context.Context, in In) rop.Result[Out]
}

// Action is a side effect that keeps the state unchanged.
type Action interface {
	Run(ctx context.Context) error
}

// Named is implemented by jobs and actions that report their own name.
type Named interface {
	Name() string
}

type Func[In, Out any] func(ctx context.Context, in In) rop.Result[Out]

func (f Func[In, Out]) Run(ctx context.Context, in In) rop.Result[Out] {
	return f(ctx, in)
}

type ActionFunc func(ctx context.Context) error

func (f ActionFunc) Run(ctx context.Context) error {
	return f(ctx)
}

type namedJob[In, Out any] struct {
	name string
	fn   Func[In, Out]
}

func (j namedJob[In, Out]) Name() string {
	return j.name
}

func (j namedJob[In, Out]) Run(ctx context.Context, in In) rop.Result[Out] {
	return j.fn(ctx, in)
}

// New wraps fn into a named job.
func New[In, Out any](name string, fn func(ctx context.Context, in In) rop.Result[Out]) Job[In, Out] {
	return namedJob[In, Out]{name: name, fn: fn}
}

// Name returns the job's own name when it has one, its Go type otherwise.
func Name(j any) string {
	if n, ok := j.(Named); ok && n.Name() != "" {
		return n.Name()
	}
	return fmt.Sprintf("%T", j)
}

type actionJob[T any] struct {
	name   string
	action Action
}

// FromAction adapts a side-effecting action into a same-shape job. The job
// logs "running job X" before and "job X succeeded" after the action, and
// turns a returned error or a panic into a failed result carrying it.
func FromAction[T any](name string, a Action) Job[T, T] {
	if name == "" {
		name = Name(a)
	}
	return actionJob[T]{name: name, action: a}
}

func (j actionJob[T]) Name() string {
	return j.name
}

func (j actionJob[T]) Run(ctx context.Context, in T) rop.Result[T] {
	log := diag.New()
	log.Infof("running job %s", j.name)

	if err := runAction(ctx, j.action); err != nil {
		log.Errorf("job %s failed", j.name)
		return rop.FromError(in, err, log)
	}

	log.Infof("job %s succeeded", j.name)
	return rop.FromSuccess(in, log)
}

func runAction(ctx context.Context, a Action) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = rop.Recovered(p)
		}
	}()
	return a.Run(ctx)
}
