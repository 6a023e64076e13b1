package solo

import (
	"context"
	"errors"

	"github.com/ib-77/ropchain/pkg/rop"
)

var errValidation = errors.New("validation failed")

func Succeed[T any](input T) rop.Result[T] {
	return rop.FromSuccess(input, nil)
}

func Fail[T any](state T, err error) rop.Result[T] {
	return rop.FromError(state, err, nil)
}

func Validate[T any](ctx context.Context, input T,
	validate func(ctx context.Context, in T) (isValid bool, errMsg string)) rop.Result[T] {
	return AndValidate(ctx, Succeed(input), validate)
}

// AndValidate fails a successful input that does not pass validate. The state
// is kept so the caller can still report what was rejected.
func AndValidate[T any](ctx context.Context, input rop.Result[T],
	validate func(ctx context.Context, in T) (valid bool, errMsg string)) rop.Result[T] {

	return rop.Bind(ctx, input, func(ctx context.Context, in T) rop.Result[T] {
		if isValid, errMsg := validate(ctx, in); !isValid {
			if errMsg == "" {
				return rop.FromError(in, errValidation, nil)
			}
			return rop.FromError(in, errors.New(errMsg), nil)
		}
		return rop.FromSuccess(in, nil)
	})
}

// ValidateAll runs every check and joins their errors. With breakOnError the
// first failing check ends the run.
func ValidateAll[T any](
	ctx context.Context,
	input rop.Result[T],
	breakOnError bool, // exit on first error
	inputsF ...func(ctx context.Context, in rop.Result[T]) rop.Result[T]) rop.Result[T] {

	var err error
	return Join(
		ctx,
		input,
		breakOnError,
		func(ctx context.Context, current rop.Result[T]) rop.Result[T] {

			if current.IsFailure() && !errors.Is(err, current.Err()) {
				err = errors.Join(append(rop.GetErrors(err), current.Err())...)
				return rop.FromError(current.State(), err, current.Diagnostics())
			}

			if rop.IsNil(err) || current.IsFailure() {
				return current
			}

			return rop.FromError(current.State(), err, current.Diagnostics())
		},
		inputsF...,
	)
}

// Switch moves from Result[In] to Result[Out] through onSuccess, which runs
// behind the same fault boundary as rop.Bind.
func Switch[In any, Out any](ctx context.Context,
	input rop.Result[In],
	onSuccess func(ctx context.Context, r In) rop.Result[Out]) rop.Result[Out] {
	return rop.Bind(ctx, input, onSuccess)
}

func Map[In any, Out any](ctx context.Context,
	input rop.Result[In],
	onSuccess func(ctx context.Context, r In) Out) rop.Result[Out] {

	return rop.Bind(ctx, input, func(ctx context.Context, in In) rop.Result[Out] {
		return rop.FromSuccess(onSuccess(ctx, in), nil)
	})
}

// Tee runs onSuccess for a successful input and returns the input. A panic in
// onSuccess turns the result into a failure that keeps the state.
func Tee[T any](ctx context.Context,
	input rop.Result[T],
	onSuccess func(ctx context.Context, r rop.Result[T])) rop.Result[T] {

	if input.IsFailure() {
		return input
	}

	return guarded(input, func() {
		onSuccess(ctx, input)
	})
}

func TeeIf[T any](ctx context.Context,
	input rop.Result[T],
	condition func(ctx context.Context, r rop.Result[T]) bool,
	onSuccessAndCondition func(ctx context.Context, r rop.Result[T])) rop.Result[T] {

	if input.IsFailure() {
		return input
	}

	return guarded(input, func() {
		if condition(ctx, input) {
			onSuccessAndCondition(ctx, input)
		}
	})
}

// DoubleTee calls exactly one handler: onCancel for a failure caused by
// context cancellation, onError for any other failure. A panicking handler
// fails the result.
func DoubleTee[T any](ctx context.Context, input rop.Result[T],
	onSuccess func(ctx context.Context, r T),
	onError func(ctx context.Context, err error),
	onCancel func(ctx context.Context, err error)) rop.Result[T] {

	return guarded(input, func() {
		if input.IsSuccess() {
			onSuccess(ctx, input.State())
		} else if rop.IsCancellationError(input.Err()) {
			onCancel(ctx, input.Err())
		} else {
			onError(ctx, input.Err())
		}
	})
}

// guarded runs a side effect of input. When it panics, the fault is joined to
// the input's own and the state and failure origin are kept.
func guarded[T any](input rop.Result[T], effect func()) rop.Result[T] {
	err := rop.Guard(effect)
	if err == nil {
		return input
	}
	if input.IsFailure() {
		err = errors.Join(input.Err(), err)
	}

	out := rop.FromError(input.State(), err, input.Diagnostics())
	if f, ok := input.Failure(); ok {
		out = out.WithFailure(f)
	}
	return out
}

func DoubleMap[In any, Out any](ctx context.Context, input rop.Result[In],
	onSuccess func(ctx context.Context, r In) Out,
	onError func(ctx context.Context, err error) Out,
	onCancel func(ctx context.Context, err error) Out) rop.Result[Out] {

	if input.IsSuccess() {
		return Map(ctx, input, onSuccess)
	}

	var fallback Out
	out := guarded(rop.Reshape[In, Out](input), func() {
		if rop.IsCancellationError(input.Err()) {
			fallback = onCancel(ctx, input.Err())
		} else {
			fallback = onError(ctx, input.Err())
		}
	})

	return out.WithState(fallback)
}

// Try calls onTryExecute and turns its error into a failure. The value
// returned next to the error is kept as best-effort state.
func Try[In any, Out any](ctx context.Context, input rop.Result[In],
	onTryExecute func(ctx context.Context, r In) (Out, error)) rop.Result[Out] {

	return rop.Bind(ctx, input, func(ctx context.Context, in In) rop.Result[Out] {
		out, err := onTryExecute(ctx, in)
		if err != nil {
			return rop.FromError(out, err, nil)
		}
		return rop.FromSuccess(out, nil)
	})
}

func FailOnError[T any](ctx context.Context, input rop.Result[T],
	maybeErr func(ctx context.Context, in T) error) rop.Result[T] {

	return rop.Bind(ctx, input, func(ctx context.Context, in T) rop.Result[T] {
		if err := maybeErr(ctx, in); err != nil {
			return rop.FromError(in, err, nil)
		}
		return rop.FromSuccess(in, nil)
	})
}

// Finally collapses input into a plain value. Its handlers run outside the
// fault boundary since there is no result left to carry a panic.
func Finally[In, Out any](ctx context.Context, input rop.Result[In],
	onSuccess func(ctx context.Context, r In) Out,
	onError func(ctx context.Context, err error) Out,
	onCancel func(ctx context.Context, err error) Out) Out {

	if input.IsSuccess() {
		return onSuccess(ctx, input.State())
	} else if rop.IsCancellationError(input.Err()) {
		return onCancel(ctx, input.Err())
	} else {
		return onError(ctx, input.Err())
	}
}

func Join[T any](ctx context.Context,
	input rop.Result[T],
	breakOnError bool, // exit on first error
	concat func(ctx context.Context, current rop.Result[T]) rop.Result[T],
	inputsF ...func(ctx context.Context, in rop.Result[T]) rop.Result[T]) rop.Result[T] {

	if len(inputsF) == 0 || concat == nil || !rop.IsNil(ctx.Err()) {
		return input
	}

	finalResult := concat(ctx, inputsF[0](ctx, input))

	if !rop.IsNil(ctx.Err()) {
		return finalResult
	}

	if finalResult.IsSuccess() || !breakOnError {
		for _, in := range inputsF[1:] {
			if !rop.IsNil(ctx.Err()) {
				return finalResult
			}

			nextRes := concat(ctx, in(ctx, finalResult))
			if nextRes.IsFailure() && breakOnError {
				return nextRes
			} else {
				finalResult = nextRes
			}
		}
	}
	return finalResult
}
