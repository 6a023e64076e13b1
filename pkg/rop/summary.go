package rop

import (
	"time"

	"github.com/ib-77/ropchain/pkg/rop/diag"
)

// Summary is a presentation-friendly snapshot of a Result: outcome, timing
// and the full diagnostics trail in append order.
type Summary struct {
	ID          string        `yaml:"id"`
	Success     bool          `yaml:"success"`
	Error       string        `yaml:"error,omitempty"`
	FailedStep  string        `yaml:"failed_step,omitempty"`
	StartedAt   time.Time     `yaml:"started_at"`
	CompletedAt time.Time     `yaml:"completed_at"`
	Duration    time.Duration `yaml:"duration"`
	Diagnostics []diag.Entry  `yaml:"diagnostics"`
}

func Summarize[T any](r Result[T]) Summary {
	s := Summary{
		ID:          r.Id().String(),
		Success:     r.IsSuccess(),
		StartedAt:   r.StartedAt(),
		CompletedAt: r.CompletedAt(),
		Duration:    r.Duration(),
		Diagnostics: r.Diagnostics().Entries(),
	}
	if r.Err() != nil {
		s.Error = r.Err().Error()
	}
	if f, ok := r.Failure(); ok {
		s.FailedStep = f.Step
	}
	return s
}
