package rop

import (
	"context"
	"time"

	"github.com/ib-77/ropchain/pkg/rop/diag"
)

// Bind moves from Result[In] to Result[Out].
//
// A failed input short-circuits: f is never called and the failure is carried
// over with a fresh log that starts with a "skipped" entry followed by the
// input's entries. A panic in f is recovered into a failed result. Otherwise
// the returned log is the input's entries followed by f's entries.
func Bind[In, Out any](ctx context.Context, input Result[In],
	f func(ctx context.Context, in In) Result[Out]) Result[Out] {

	if input.IsFailure() {
		return skip[In, Out](input, "bind")
	}

	next, err := protect(func() Result[Out] {
		return f(ctx, input.State())
	})
	if err != nil {
		return fault[In, Out](input, "bind", err)
	}
	if next.IsEmpty() {
		return fault[In, Out](input, "bind", ErrNoOutcome)
	}

	return next.WithDiagnostics(diag.Merge(input.Diagnostics(), next.Diagnostics()))
}

// BindAsync is Bind for functions whose outcome arrives on a channel, the
// shape produced by Go. The channel is awaited under ctx; cancellation while
// waiting is an ordinary fault.
func BindAsync[In, Out any](ctx context.Context, input Result[In],
	f func(ctx context.Context, in In) <-chan Result[Out]) Result[Out] {

	if input.IsFailure() {
		return skip[In, Out](input, "bind async")
	}

	var ch <-chan Result[Out]
	_, err := protect(func() Result[struct{}] {
		ch = f(ctx, input.State())
		return Result[struct{}]{}
	})
	if err != nil {
		return fault[In, Out](input, "bind async", err)
	}

	next, err := Await(ctx, ch)
	if err != nil {
		return fault[In, Out](input, "bind async", err)
	}

	return next.WithDiagnostics(diag.Merge(input.Diagnostics(), next.Diagnostics()))
}

func Then[In, Out any](ctx context.Context, input Result[In],
	f func(ctx context.Context, in In) Result[Out]) Result[Out] {
	return Bind(ctx, input, f)
}

func ThenAsync[In, Out any](ctx context.Context, input Result[In],
	f func(ctx context.Context, in In) <-chan Result[Out]) Result[Out] {
	return BindAsync(ctx, input, f)
}

func skip[In, Out any](input Result[In], op string) Result[Out] {
	log := diag.New()
	log.Errorf("%s %s", op, ErrPreviousFailure)
	log.Append(input.Diagnostics())

	out := Reshape[In, Out](input).
		WithDiagnostics(log).
		WithCompletedAt(time.Now().UTC())
	if out.Err() == nil {
		out.err = ErrUnknownFailure
	}
	return out
}

func fault[In, Out any](input Result[In], op string, err error) Result[Out] {
	log := input.Diagnostics().Clone()
	if log == nil {
		log = diag.New()
	}
	log.Errorf("%s: fault in bound function: %v", op, err)
	return Reshape[In, Out](FromError(input.State(), err, log))
}

// Guard calls f behind the same fault boundary as Bind. A panic in f is
// returned as a *PanicError.
func Guard(f func()) error {
	_, err := protect(func() Result[struct{}] {
		f()
		return Result[struct{}]{}
	})
	return err
}

func protect[T any](f func() Result[T]) (res Result[T], err error) {
	defer func() {
		if p := recover(); p != nil {
			err = Recovered(p)
		}
	}()
	return f(), nil
}
