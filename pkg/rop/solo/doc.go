// Package solo contains single-value, synchronous ROP primitives that operate
// on rop.Result. Every helper that calls user code goes through rop.Bind, so
// panics are captured and diagnostics accumulate along the way.
//
// Highlights:
// - Succeed/Fail: construct Result[T]
// - Validate/AndValidate/ValidateAll: turn invalid input into a failure
// - Switch: move from Result[In] to Result[Out]
// - Map/DoubleMap: transform successful values (with optional error/cancel maps)
// - Try/FailOnError: call a function returning an error and convert it to a failure
// - Tee/TeeIf/DoubleTee: side-effect helpers
// - Finally: reduce to a concrete value via success/error/cancel handlers
package solo
