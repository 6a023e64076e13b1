package pipeline

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ib-77/ropchain/pkg/rop"
	"github.com/ib-77/ropchain/pkg/rop/diag"
)

// Runner executes a chain from In to Out. The error is reserved for faults
// that cannot be expressed as a failed result of Out.
type Runner[In, Out any] interface {
	Execute(ctx context.Context, in In) (rop.Result[Out], error)
}

// Terminal is implemented by terminal state types that can stand in for a
// failure whose own state has a different type. Placeholder is called on the
// zero value.
type Terminal[T any] interface {
	Placeholder() T
}

// Pipeline is a frozen chain of steps from In to Out. It holds no per-run
// state and can be executed concurrently.
type Pipeline[In, Out any] struct {
	steps       []step
	opts        options
	placeholder func() Out
}

var _ Runner[int, int] = (*Pipeline[int, int])(nil)

func (p *Pipeline[In, Out]) Name() string {
	return p.opts.name
}

func (p *Pipeline[In, Out]) Len() int {
	return len(p.steps)
}

// Execute runs every step in order, feeding each the state produced by the
// previous one, and stops at the first failure. Diagnostics of all executed
// steps are merged in step order. A failure is returned as a failed result of
// Out; the returned error is non-nil only for a *TerminalMismatchError or a
// *StepInputError.
func (p *Pipeline[In, Out]) Execute(ctx context.Context, in In) (rop.Result[Out], error) {
	runID := uuid.New()
	logger := zerolog.Ctx(ctx).With().
		Str("pipeline", p.opts.name).
		Str("run_id", runID.String()).
		Logger()
	ctx = logger.WithContext(ctx)

	tracker, err := newRunTracker(len(p.steps), p.opts.observer)
	if err != nil {
		return rop.Result[Out]{}, fmt.Errorf("pipeline %s: build run state machine: %w", p.opts.name, err)
	}
	defer tracker.stop()

	started := p.opts.clock.Now().UTC()
	logger.Debug().Int("steps", len(p.steps)).Msg("run started")

	res, at, err := p.walk(ctx, in, tracker)
	if err != nil {
		name := p.steps[at].label()
		tracker.settle(OutcomeFatal, at, name)
		logger.Error().Err(err).Int("index", at).Str("step", name).Msg("run aborted")
		return rop.Result[Out]{}, err
	}

	var (
		out     rop.Result[Out]
		outcome Outcome
	)
	if res.IsSuccess() {
		out, outcome, err = p.complete(res)
	} else {
		out, outcome, err = p.reconcile(res)
	}

	f, _ := res.Failure()
	if err != nil {
		tracker.settle(OutcomeFatal, f.Index, f.Step)
		logger.Error().Err(err).Msg("run aborted")
		return rop.Result[Out]{}, err
	}

	if res.IsSuccess() {
		tracker.settle(outcome, len(p.steps), "")
		logger.Debug().Msg("run succeeded")
	} else {
		tracker.settle(outcome, f.Index, f.Step)
		logger.Warn().Err(out.Err()).Str("step", f.Step).Int("index", f.Index).
			Str("outcome", string(outcome)).Msg("run failed")
	}

	return out.
		WithID(runID).
		WithStartedAt(started).
		WithCompletedAt(p.opts.clock.Now().UTC()), nil
}

func (p *Pipeline[In, Out]) runErased(ctx context.Context, in any) (rop.Result[any], error) {
	res, _, err := p.walk(ctx, in, nil)
	return res, err
}

// walk runs the steps in order. On a fatal error it also returns the index of
// the step that raised it.
func (p *Pipeline[In, Out]) walk(ctx context.Context, in any, tracker *runTracker) (rop.Result[any], int, error) {
	logger := zerolog.Ctx(ctx)
	current := in
	var aggregate *diag.Log

	for i, s := range p.steps {
		name := s.label()

		var res rop.Result[any]
		if err := ctx.Err(); err != nil {
			res = cancelled(current, name, err)
		} else {
			logger.Debug().Int("index", i).Str("step", name).Msg("step started")
			var err error
			if res, err = s.invoke(ctx, current); err != nil {
				return rop.Result[any]{}, i, err
			}
		}

		if res.Diagnostics() != nil {
			if aggregate == nil {
				aggregate = diag.New()
			}
			aggregate.Append(res.Diagnostics())
		}

		if res.IsFailure() {
			logger.Debug().Int("index", i).Str("step", name).Err(res.Err()).Msg("step failed")
			return failedAt(res, aggregate, i, name), i, nil
		}

		tracker.advance(i, name)
		current = res.State()
	}

	return rop.FromSuccess(current, aggregate), len(p.steps), nil
}

func (p *Pipeline[In, Out]) complete(res rop.Result[any]) (rop.Result[Out], Outcome, error) {
	out, err := castInput[Out](p.opts.name, res.State())
	if err != nil {
		return rop.Result[Out]{}, OutcomeFatal, err
	}
	return rop.FromSuccess(out, res.Diagnostics()), OutcomeSucceeded, nil
}

// reconcile reports a failed run as a result of Out: the state the failing
// step returned when it is an Out, a placeholder otherwise. The failure origin
// is left untouched for FailedAs.
func (p *Pipeline[In, Out]) reconcile(res rop.Result[any]) (rop.Result[Out], Outcome, error) {
	reshaped := rop.Reshape[any, Out](res)

	if state, ok := asState[Out](res.State()); ok {
		return reshaped.WithState(state), OutcomeFailedDirect, nil
	}
	if state, ok := p.placeholderState(); ok {
		return reshaped.WithState(state), OutcomeFailedPlaceholder, nil
	}

	f, _ := res.Failure()
	return rop.Result[Out]{}, OutcomeFatal, &TerminalMismatchError{
		Pipeline: p.opts.name,
		Step:     f.Step,
		Index:    f.Index,
		From:     rop.TypeName(res.State()),
		To:       rop.TypeNameOf[Out](),
		Cause:    res.Err(),
	}
}

func (p *Pipeline[In, Out]) placeholderState() (Out, bool) {
	if p.placeholder != nil {
		return p.placeholder(), true
	}
	var zero Out
	if t, ok := any(zero).(Terminal[Out]); ok {
		return t.Placeholder(), true
	}
	return zero, false
}

// failedAt stamps the step position on a failed step result. The failing
// state is the step's own failure origin when it recorded one, so a nested
// sub-pipeline reports the snapshot of its inner step.
func failedAt(res rop.Result[any], aggregate *diag.Log, index int, name string) rop.Result[any] {
	state := res.State()
	stepName := name
	if inner, ok := res.Failure(); ok {
		state = inner.State
		if inner.Step != "" && inner.Step != name {
			stepName = name + "/" + inner.Step
		}
	}
	return res.
		WithDiagnostics(aggregate).
		WithFailure(rop.Failure{Step: stepName, Index: index, State: state})
}

func cancelled(state any, name string, cause error) rop.Result[any] {
	log := diag.New()
	log.Errorf("step %s not started: run cancelled", name)
	return rop.FromError(state, fmt.Errorf("step %s: %w", name, cause), log)
}
