package pipeline

import (
	"context"
	"fmt"

	"github.com/ib-77/ropchain/pkg/rop"
	"github.com/ib-77/ropchain/pkg/rop/job"
)

// Builder accumulates steps of a chain that starts with In and currently
// produces Cur. A Builder is a value: every append copies the step list, so
// a partial chain can be branched without the branches seeing each other.
type Builder[In, Cur any] struct {
	steps []step
	opts  []Option
}

// Start begins an empty chain whose input and current state are both T.
func Start[T any](opts ...Option) Builder[T, T] {
	return Builder[T, T]{opts: opts}
}

func (b Builder[In, Cur]) with(s step) []step {
	steps := make([]step, len(b.steps), len(b.steps)+1)
	copy(steps, b.steps)
	return append(steps, s)
}

// Then appends j, whose input must be the chain's current state. Next comes
// first so callers can name only the produced type: Then[*Report](b, j).
func Then[Next, In, Cur any](b Builder[In, Cur], j job.Job[Cur, Next]) Builder[In, Next] {
	return Builder[In, Next]{steps: b.with(newJobStep(j)), opts: b.opts}
}

// ThenFunc appends fn as an anonymous job.
func ThenFunc[Next, In, Cur any](b Builder[In, Cur], name string, fn func(ctx context.Context, in Cur) rop.Result[Next]) Builder[In, Next] {
	return Then[Next](b, job.New(name, fn))
}

// Then appends a job that keeps the state type.
func (b Builder[In, Cur]) Then(j job.Job[Cur, Cur]) Builder[In, Cur] {
	return Builder[In, Cur]{steps: b.with(newJobStep(j)), opts: b.opts}
}

// Do appends a side-effecting action; the state passes through unchanged.
func (b Builder[In, Cur]) Do(name string, a job.Action) Builder[In, Cur] {
	return b.Then(job.FromAction[Cur](name, a))
}

// Splice appends a single step that runs first and then second. Both keep
// their own steps; a failure inside either is reconciled against the
// terminal type of the pipeline being built, not theirs.
func Splice[Mid, Out, In, Cur any](b Builder[In, Cur], first Runner[Cur, Mid], second Runner[Mid, Out]) Builder[In, Out] {
	s := nestedStep[Cur, Mid, Out]{
		name:   fmt.Sprintf("%s+%s", job.Name(first), job.Name(second)),
		first:  first,
		second: second,
	}
	return Builder[In, Out]{steps: b.with(s), opts: b.opts}
}

// Nest appends sub as a single step.
func Nest[Out, In, Cur any](b Builder[In, Cur], sub Runner[Cur, Out]) Builder[In, Out] {
	s := nestedStep[Cur, Out, Out]{name: job.Name(sub), first: sub}
	return Builder[In, Out]{steps: b.with(s), opts: b.opts}
}

// Build freezes the chain. A failure whose state is not a Cur can only be
// reported when Cur implements Terminal; use BuildWithPlaceholder otherwise.
func (b Builder[In, Cur]) Build(opts ...Option) *Pipeline[In, Cur] {
	return b.freeze(nil, opts)
}

// BuildWithPlaceholder freezes the chain and registers the factory used to
// report failures whose state is not a Cur.
func (b Builder[In, Cur]) BuildWithPlaceholder(placeholder func() Cur, opts ...Option) *Pipeline[In, Cur] {
	return b.freeze(placeholder, opts)
}

func (b Builder[In, Cur]) freeze(placeholder func() Cur, opts []Option) *Pipeline[In, Cur] {
	steps := make([]step, len(b.steps))
	copy(steps, b.steps)
	return &Pipeline[In, Cur]{
		steps:       steps,
		opts:        newOptions(b.opts, opts),
		placeholder: placeholder,
	}
}
