package job

import (
	"context"
	"time"

	"github.com/ib-77/ropchain/pkg/rop"
	"github.com/ib-77/ropchain/pkg/rop/diag"
)

// Invoke runs j on in behind a fault boundary. A panic becomes a failed
// result with the zero Out state and the input recorded as failure origin.
// A job that returns an uninitialized result is reported as ErrNoOutcome.
// Started and completed timestamps cover the whole call.
func Invoke[In, Out any](ctx context.Context, j Job[In, Out], in In) (res rop.Result[Out]) {
	started := time.Now().UTC()
	name := Name(j)

	defer func() {
		if p := recover(); p != nil {
			log := diag.New()
			log.Errorf("job %s panicked", name)
			var zero Out
			res = rop.FromError(zero, rop.Recovered(p), log).
				WithFailure(rop.Failure{Step: name, Index: -1, State: in})
		}
		res = res.WithStartedAt(started)
	}()

	res = j.Run(ctx, in)
	if res.IsEmpty() {
		log := diag.New()
		log.Errorf("job %s returned no result", name)
		res = rop.FromError(res.State(), rop.ErrNoOutcome, log)
	} else if res.IsFailure() && res.Err() == nil {
		log := res.Diagnostics().Clone()
		if log == nil {
			log = diag.New()
		}
		log.Error(rop.ErrUnknownFailure.Error())
		res = res.WithErr(rop.ErrUnknownFailure).WithDiagnostics(log)
	}
	return res
}
