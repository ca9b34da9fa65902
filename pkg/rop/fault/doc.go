// Package fault defines the closed set of recoverable failure kinds used as
// the failure side of rop.Outcome, and the Fault error that carries a kind
// together with the step that produced it.
//
// Absence is not a fault: a lookup that legitimately yields nothing returns
// rop.Option. Programmer errors are not faults either: they panic.
package fault
