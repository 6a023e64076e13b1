package pipeline

import "time"

// Clock abstracts time.Now so run timestamps can be pinned in tests.
type Clock interface {
	Now() time.Time
}

// RealClock reads the system clock.
type RealClock struct{}

func (RealClock) Now() time.Time {
	return time.Now()
}

var _ Clock = RealClock{}

type options struct {
	name     string
	clock    Clock
	observer Observer
}

type Option func(*options)

// WithName labels the pipeline in engine logs and in fatal errors.
func WithName(name string) Option {
	return func(o *options) {
		o.name = name
	}
}

func WithClock(c Clock) Option {
	return func(o *options) {
		if c != nil {
			o.clock = c
		}
	}
}

// WithObserver registers fn to receive every run state transition.
// Observers are called synchronously on the executing goroutine.
func WithObserver(fn Observer) Option {
	return func(o *options) {
		o.observer = fn
	}
}

func newOptions(opts ...[]Option) options {
	o := options{name: "pipeline", clock: RealClock{}}
	for _, group := range opts {
		for _, opt := range group {
			if opt != nil {
				opt(&o)
			}
		}
	}
	return o
}
