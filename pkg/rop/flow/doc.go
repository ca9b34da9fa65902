// Package flow lifts solo steps over channels of rop.Outcome values and runs
// them on a fixed number of worker lines.
//
// Common usage:
// - Run/Turnout: execute an engine over an input channel with N lines
// - TurnoutWith: same, with cancellation handlers and a per-item callback
// - Validate/Switch/Map/Try/Tee: build engines from solo steps
// - Guard: turn a panicking engine into a per-item failure
// - CancelRemaining: drain and fail unprocessed items on cancellation
// - Finally/Collect: fold outcomes into values at the end of the line
//
// Output order is not preserved when more than one line runs.
package flow
