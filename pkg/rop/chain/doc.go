// Package chain provides a fluent wrapper around rop.Outcome[T, E] for
// building synchronous railway chains on top of solo primitives.
//
// Key operations:
// - Start/FromValue/FromFailure: begin a chain
// - Then/ThenTry/Map: same-type steps as methods, type-changing steps as functions
// - Convert: move the chain into another failure domain through a rop.Converter
// - Ensure: run side effects without changing the outcome
// - Or/And: pick among alternative or required chains
// - RepeatUntil/While: loop a step while the chain stays on the success track
// - Finally: collapse the chain into a final value
package chain
