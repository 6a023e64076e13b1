// Package chain provides a fluent wrapper around rop.Result for running jobs
// one after another without building a pipeline first.
//
// Each call returns a new Chain; once a step fails the remaining ones are
// skipped and the failure, with its diagnostics, travels to the end.
//
// Key operations:
// - Start/FromValue: begin a chain from a Result[T] or value
// - Run/RunWith/Do: invoke a job (or a job built from the state, or an action)
// - Then/ThenAsync: switch to a new Result[U] via a function
// - ThenTry: call a function (U, error) and convert error to failure
// - Map: transform the successful value (T -> U)
// - Ensure: run side effects on success without changing the result
// - Finally: collapse the chain into a final value via handlers
package chain
