// Package job defines the two job contracts consumed by pipelines and chains.
//
// A Job transforms one state snapshot into another and reports the outcome as
// a rop.Result. An Action performs a side effect, keeps the state shape and
// signals failure by returning an error. FromAction adapts the latter into the
// former.
//
// Invoke is the invocation boundary: whatever a job does (panic, return an
// uninitialized result) comes back as a well-formed rop.Result, so faults
// never escape a single job.
package job
