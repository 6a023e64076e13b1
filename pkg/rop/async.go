package rop

import (
	"context"
)

// Go runs fn on its own goroutine and returns a channel that yields exactly
// one result before closing. The channel is buffered, so the goroutine never
// blocks when nobody waits for it anymore. A panic in fn becomes a failed
// result with the zero state.
func Go[T any](ctx context.Context, fn func(ctx context.Context) Result[T]) <-chan Result[T] {
	out := make(chan Result[T], 1)

	go func() {
		defer close(out)

		res, err := protect(func() Result[T] {
			return fn(ctx)
		})
		if err != nil {
			var zero T
			res = FromError(zero, err, nil)
		}
		out <- res
	}()

	return out
}

// Await waits for the first result on ch. It returns ctx.Err() when ctx is
// done first and ErrNoOutcome for a nil channel or one closed without a value.
func Await[T any](ctx context.Context, ch <-chan Result[T]) (Result[T], error) {
	if ch == nil {
		return Result[T]{}, ErrNoOutcome
	}
	if err := ctx.Err(); err != nil {
		return Result[T]{}, err
	}

	select {
	case res, ok := <-ch:
		if !ok || res.IsEmpty() {
			return Result[T]{}, ErrNoOutcome
		}
		return res, nil
	case <-ctx.Done():
		return Result[T]{}, ctx.Err()
	}
}
