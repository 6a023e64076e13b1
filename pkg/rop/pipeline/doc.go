// Package pipeline compiles typed job chains into frozen, reusable pipelines.
//
// A chain is built with Start and grown one job at a time; every append is
// checked at compile time against the state type the chain currently produces:
//   - Start[T] begins a chain of T
//   - Then / ThenFunc append a job that may change the state type
//   - (Builder).Then and (Builder).Do append same-shape jobs and actions
//   - Splice and Nest embed independently built pipelines as a single step
//   - Build / BuildWithPlaceholder freeze the chain
//
// Execute walks the steps in order and stops at the first failure. A failure
// is always reported as a result of the terminal type: the state returned by
// the failing step is used when it already has that type, a placeholder
// otherwise (see Terminal and BuildWithPlaceholder). When neither is possible
// Execute returns a *TerminalMismatchError. The snapshot the failure started
// from stays available through rop.FailedAs.
//
// Engine tracing goes to the zerolog logger stored in the context; each run
// also drives a small state machine whose transitions can be observed with
// WithObserver.
package pipeline
