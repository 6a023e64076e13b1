package chain

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ib-77/ropchain/pkg/rop"
	"github.com/ib-77/ropchain/pkg/rop/diag"
	"github.com/ib-77/ropchain/pkg/rop/job"
)

type startState struct {
	Seed string
}

type midState struct {
	Combined string
}

type finalState struct {
	Upper  string
	Length int
}

type midJob struct{}

func (midJob) Run(_ context.Context, in *startState) rop.Result[*midState] {
	log := diag.New()
	log.Info("ToMid executed")
	return rop.FromSuccess(&midState{Combined: in.Seed + ":mid"}, log)
}

type finalJob struct{}

func (finalJob) Run(_ context.Context, in *midState) rop.Result[*finalState] {
	log := diag.New()
	log.Info("ToFinal executed")
	return rop.FromSuccess(&finalState{Upper: strings.ToUpper(in.Combined), Length: len(in.Combined)}, log)
}

type flags struct {
	AExecuted bool
	BExecuted bool
}

func messages(l *diag.Log) []string {
	out := make([]string, 0, l.Len())
	for _, e := range l.Entries() {
		out = append(out, e.Message)
	}
	return out
}

func TestRun_MultiStateChain(t *testing.T) {
	t.Parallel()

	start := FromValue(context.Background(), &startState{Seed: "alpha"})
	res := Run[*midState, *finalState](Run[*startState, *midState](start, midJob{}), finalJob{}).Result()

	require.True(t, res.IsSuccess())
	assert.Equal(t, "ALPHA:MID", res.State().Upper)
	assert.Equal(t, len("alpha:mid"), res.State().Length)
	assert.Equal(t, []string{"ToMid executed", "ToFinal executed"}, messages(res.Diagnostics()))
}

func TestRun_FailureShortCircuitsSecondJob(t *testing.T) {
	t.Parallel()

	state := &flags{}
	failing := job.New("a", func(_ context.Context, f *flags) rop.Result[*flags] {
		f.AExecuted = true
		return rop.FromError(f, errors.New("boom"), nil)
	})

	factoryCalled := false
	res := RunWith(Run(FromValue(context.Background(), state), failing),
		func(*flags) job.Job[*flags, *flags] {
			factoryCalled = true
			return job.New("b", func(_ context.Context, f *flags) rop.Result[*flags] {
				f.BExecuted = true
				return rop.FromSuccess(f, nil)
			})
		}).Result()

	assert.False(t, res.IsSuccess())
	assert.EqualError(t, res.Err(), "boom")
	assert.True(t, state.AExecuted)
	assert.False(t, state.BExecuted)
	assert.False(t, factoryCalled)
	assert.Same(t, state, res.State())
}

func TestRunWith_FactorySeesState(t *testing.T) {
	t.Parallel()

	res := RunWith(FromValue(context.Background(), 3), func(n int) job.Job[int, string] {
		return job.New("repeat", func(_ context.Context, in int) rop.Result[string] {
			return rop.FromSuccess(strings.Repeat("x", n), nil)
		})
	}).Result()

	assert.Equal(t, "xxx", res.State())
}

func TestRun_PanicCaptured(t *testing.T) {
	t.Parallel()

	exploding := job.New("explode", func(context.Context, *startState) rop.Result[*midState] {
		panic("kaboom")
	})

	res := Run(FromValue(context.Background(), &startState{}), exploding).Result()

	assert.False(t, res.IsSuccess())
	assert.Contains(t, res.Err().Error(), "kaboom")
	assert.True(t, res.Diagnostics().Contains("job explode panicked"))
}

func TestDo_ActionDiagnostics(t *testing.T) {
	t.Parallel()

	notified := false
	res := Run[*startState, *midState](
		FromValue(context.Background(), &startState{Seed: "n"}).
			Do("notify", job.ActionFunc(func(context.Context) error {
				notified = true
				return nil
			})),
		midJob{},
	).Result()

	require.True(t, res.IsSuccess())
	assert.True(t, notified)
	assert.Equal(t, []string{"running job notify", "job notify succeeded", "ToMid executed"}, messages(res.Diagnostics()))
}

func TestDo_FailureKeepsState(t *testing.T) {
	t.Parallel()

	s := &startState{Seed: "keep"}
	res := FromValue(context.Background(), s).
		Do("deny", job.ActionFunc(func(context.Context) error { return errors.New("denied") })).
		Result()

	assert.False(t, res.IsSuccess())
	assert.Same(t, s, res.State())
	assert.Equal(t, []string{"running job deny", "job deny failed", "denied"}, messages(res.Diagnostics()))
}

func TestEnsure_PanicFailsChain(t *testing.T) {
	t.Parallel()

	s := &startState{Seed: "e"}
	midRan := false
	res := Run(
		FromValue(context.Background(), s).Ensure(func(context.Context, *startState) { panic("ensure exploded") }),
		job.New("mid", func(_ context.Context, in *startState) rop.Result[*midState] {
			midRan = true
			return rop.FromSuccess(&midState{}, nil)
		}),
	).Result()

	assert.False(t, res.IsSuccess())
	assert.False(t, midRan)
	var pe *rop.PanicError
	require.ErrorAs(t, res.Err(), &pe)
	origin, ok := rop.FailedAs[*startState](res)
	require.True(t, ok)
	assert.Same(t, s, origin)
}
