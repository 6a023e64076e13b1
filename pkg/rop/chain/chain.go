package chain

import (
	"context"

	"github.com/ib-77/ropchain/pkg/rop"
	"github.com/ib-77/ropchain/pkg/rop/job"
	"github.com/ib-77/ropchain/pkg/rop/solo"
)

// Chain wraps a rop.Result with context to enable fluent chaining
type Chain[T any] struct {
	ctx    context.Context
	result rop.Result[T]
}

// Start creates a new chain from a rop.Result
func Start[T any](ctx context.Context, result rop.Result[T]) *Chain[T] {
	return &Chain[T]{
		ctx:    ctx,
		result: result,
	}
}

// FromValue creates a new chain from a successful value
func FromValue[T any](ctx context.Context, value T) *Chain[T] {
	return &Chain[T]{
		ctx:    ctx,
		result: rop.FromSuccess(value, nil),
	}
}

// Result returns the underlying rop.Result
func (c *Chain[T]) Result() rop.Result[T] {
	return c.result
}

// Run invokes j on the current state. Diagnostics of the chain so far come
// first, followed by the job's own.
func Run[T, U any](c *Chain[T], j job.Job[T, U]) *Chain[U] {
	return Then(c, func(ctx context.Context, in T) rop.Result[U] {
		return job.Invoke(ctx, j, in)
	})
}

// RunWith builds the job from the current state before invoking it. The
// factory is not called once the chain has failed.
func RunWith[T, U any](c *Chain[T], factory func(T) job.Job[T, U]) *Chain[U] {
	return Then(c, func(ctx context.Context, in T) rop.Result[U] {
		return job.Invoke(ctx, factory(in), in)
	})
}

// Do runs a side-effecting action and keeps the state.
func (c *Chain[T]) Do(name string, a job.Action) *Chain[T] {
	return Run(c, job.FromAction[T](name, a))
}

// Then chains a function that returns rop.Result[U]
func Then[T, U any](c *Chain[T], onSuccess func(context.Context, T) rop.Result[U]) *Chain[U] {
	return &Chain[U]{
		ctx:    c.ctx,
		result: solo.Switch(c.ctx, c.result, onSuccess),
	}
}

// ThenAsync chains a function that delivers its result on a channel
func ThenAsync[T, U any](c *Chain[T], onSuccess func(context.Context, T) <-chan rop.Result[U]) *Chain[U] {
	return &Chain[U]{
		ctx:    c.ctx,
		result: rop.BindAsync(c.ctx, c.result, onSuccess),
	}
}

// ThenTry chains a function that returns (U, error)
func ThenTry[T, U any](c *Chain[T], tryOnSuccess func(context.Context, T) (U, error)) *Chain[U] {
	return &Chain[U]{
		ctx:    c.ctx,
		result: solo.Try(c.ctx, c.result, tryOnSuccess),
	}
}

// Map chains a pure transformation function
func Map[T, U any](c *Chain[T], onSuccess func(context.Context, T) U) *Chain[U] {
	return &Chain[U]{
		ctx:    c.ctx,
		result: solo.Map(c.ctx, c.result, onSuccess),
	}
}

// Ensure performs a side effect without changing the result. A panic in
// onSuccess fails the chain and keeps the state.
func (c *Chain[T]) Ensure(onSuccess func(context.Context, T)) *Chain[T] {
	return &Chain[T]{
		ctx: c.ctx,
		result: solo.Tee(c.ctx, c.result,
			func(ctx context.Context, result rop.Result[T]) {
				onSuccess(ctx, result.State())
			}),
	}
}

// Finally collapses the chain into a final result using solo.Finally
func Finally[T, U any](c *Chain[T], onSuccess func(context.Context, T) U, onFailure func(context.Context, error) U, onCancel func(context.Context, error) U) U {
	return solo.Finally(c.ctx, c.result, onSuccess, onFailure, onCancel)
}
