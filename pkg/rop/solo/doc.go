// Package solo contains single-value, synchronous railway steps over
// rop.Outcome[T, E]. Every step receives a context so the same functions can
// be lifted into channel stages by package flow.
//
// Highlights:
// - Succeed/Fail: construct Outcome[T, E]
// - Validate/AndValidate/ValidateAll: apply validation producing failure on invalid input
// - Switch: move from Outcome[In, E] to Outcome[Out, E]
// - Map/DoubleMap: transform successful values (DoubleMap also maps the failure)
// - Try/FailOnError: call a Go (Out, error) function and classify the error
// - Tee/TeeIf/DoubleTee: side-effect helpers
// - Recover: turn a failure back onto the success track
// - Finally: reduce to a concrete value via success/failure handlers
package solo
