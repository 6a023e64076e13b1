package rop

import (
	"time"

	"github.com/ib-77/ropchain/pkg/rop/diag"
)

type StateProvider[T any] interface {
	// State returns the produced state snapshot
	State() T
	// CompletedAt time the outcome was completed (UTC)
	CompletedAt() time.Time
}

// WithError defines an interface for outcomes that can carry a fault
type WithError[T any] interface {
	StateProvider[T]
	// Err returns the error if operation failed
	Err() error
	// IsSuccess returns true if the operation was successful
	IsSuccess() bool
}

// WithDiagnostics extends WithError with the diagnostics trail
type WithDiagnostics[T any] interface {
	WithError[T]
	Diagnostics() *diag.Log
}

var _ WithDiagnostics[int] = Result[int]{}
