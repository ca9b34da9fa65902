package rop

import (
	"errors"
	"fmt"
)

// Outcome holds a successful T or a failure reason E. Exactly one side is
// meaningful; the other holds its zero value.
type Outcome[T, E any] struct {
	value T
	err   E
	ok    bool
}

func Success[T, E any](v T) Outcome[T, E] {
	return Outcome[T, E]{value: v, ok: true}
}

func Failure[T, E any](e E) Outcome[T, E] {
	return Outcome[T, E]{err: e}
}

// FromErr bridges the (T, error) return convention. A nil error is Success.
func FromErr[T any](v T, err error) Outcome[T, error] {
	if err != nil {
		return Failure[T](err)
	}
	return Success[T, error](v)
}

func (o Outcome[T, E]) IsSuccess() bool {
	return o.ok
}

func (o Outcome[T, E]) IsFailure() bool {
	return !o.ok
}

// Value returns the success payload, or T's zero value on Failure.
func (o Outcome[T, E]) Value() T {
	return o.value
}

// Reason returns the failure payload, or E's zero value on Success.
func (o Outcome[T, E]) Reason() E {
	return o.err
}

// Get returns the success value and whether the outcome succeeded.
func (o Outcome[T, E]) Get() (T, bool) {
	return o.value, o.ok
}

func (o Outcome[T, E]) Unpack() (T, E, bool) {
	return o.value, o.err, o.ok
}

// Unwrap returns the success value or panics with *UnwrapError carrying the
// failure. Reserved for invariants proven by preceding control flow.
func (o Outcome[T, E]) Unwrap() T {
	if !o.ok {
		panic(&UnwrapError{Op: "Outcome.Unwrap", Reason: "outcome is a failure", Failure: o.err})
	}
	return o.value
}

func (o Outcome[T, E]) Expect(msg string) T {
	if !o.ok {
		panic(&UnwrapError{Op: "Outcome.Expect", Reason: msg, Failure: o.err})
	}
	return o.value
}

// UnwrapErr returns the failure or panics on Success.
func (o Outcome[T, E]) UnwrapErr() E {
	if o.ok {
		panic(&UnwrapError{Op: "Outcome.UnwrapErr", Reason: "outcome is a success"})
	}
	return o.err
}

func (o Outcome[T, E]) UnwrapOr(def T) T {
	if o.ok {
		return o.value
	}
	return def
}

func (o Outcome[T, E]) UnwrapOrElse(def func(E) T) T {
	if o.ok {
		return o.value
	}
	return def(o.err)
}

// ToOption discards the failure detail.
func (o Outcome[T, E]) ToOption() Option[T] {
	if o.ok {
		return Present(o.value)
	}
	return Option[T]{}
}

// ErrOption is the failure side as an Option.
func (o Outcome[T, E]) ErrOption() Option[E] {
	if o.ok {
		return Option[E]{}
	}
	return Present(o.err)
}

// Or returns the receiver when it succeeded, otherwise other.
func (o Outcome[T, E]) Or(other Outcome[T, E]) Outcome[T, E] {
	if o.ok {
		return o
	}
	return other
}

func (o Outcome[T, E]) OrElse(other func(E) Outcome[T, E]) Outcome[T, E] {
	if o.ok {
		return o
	}
	return other(o.err)
}

// And returns next when the receiver succeeded, otherwise the receiver's failure.
func (o Outcome[T, E]) And(next Outcome[T, E]) Outcome[T, E] {
	if !o.ok {
		return o
	}
	return next
}

// Err converts the failure side back into a Go error. E must be an error
// type or a fmt.Stringer; anything else is formatted with %v.
func (o Outcome[T, E]) Err() error {
	if o.ok {
		return nil
	}
	if IsNil(o.err) {
		return errors.New("rop: nil failure")
	}
	switch e := any(o.err).(type) {
	case error:
		return e
	case fmt.Stringer:
		return errors.New(e.String())
	default:
		return fmt.Errorf("%v", e)
	}
}

func (o Outcome[T, E]) String() string {
	if o.ok {
		return fmt.Sprintf("Success(%v)", o.value)
	}
	return fmt.Sprintf("Failure(%v)", o.err)
}

func Map[T, U, E any](o Outcome[T, E], f func(T) U) Outcome[U, E] {
	if !o.ok {
		return Outcome[U, E]{err: o.err}
	}
	return Success[U, E](f(o.value))
}

func MapError[T, E, F any](o Outcome[T, E], f func(E) F) Outcome[T, F] {
	if o.ok {
		return Success[T, F](o.value)
	}
	return Failure[T](f(o.err))
}

func MapOr[T, U, E any](o Outcome[T, E], def U, f func(T) U) U {
	if !o.ok {
		return def
	}
	return f(o.value)
}

// AndThen chains fallible steps and stops at the first Failure.
func AndThen[T, U, E any](o Outcome[T, E], f func(T) Outcome[U, E]) Outcome[U, E] {
	if !o.ok {
		return Outcome[U, E]{err: o.err}
	}
	return f(o.value)
}

// MatchOutcome dispatches on both variants.
func MatchOutcome[T, E, U any](o Outcome[T, E], onSuccess func(T) U, onFailure func(E) U) U {
	if o.ok {
		return onSuccess(o.value)
	}
	return onFailure(o.err)
}

// Fold is MatchOutcome for side effects only.
func Fold[T, E any](o Outcome[T, E], onSuccess func(T), onFailure func(E)) {
	if o.ok {
		onSuccess(o.value)
		return
	}
	onFailure(o.err)
}

// Collect returns every value, or the first Failure in input order.
func Collect[T, E any](outcomes []Outcome[T, E]) Outcome[[]T, E] {
	values := make([]T, 0, len(outcomes))
	for _, o := range outcomes {
		if !o.ok {
			return Failure[[]T](o.err)
		}
		values = append(values, o.value)
	}
	return Success[[]T, E](values)
}

// Partition splits outcomes into values and failures, preserving order.
func Partition[T, E any](outcomes []Outcome[T, E]) ([]T, []E) {
	var values []T
	var failures []E
	for _, o := range outcomes {
		if o.ok {
			values = append(values, o.value)
		} else {
			failures = append(failures, o.err)
		}
	}
	return values, failures
}

// UnwrapError is the panic payload of Unwrap/Expect misuse.
type UnwrapError struct {
	Op      string
	Reason  string
	Failure any
}

func (e *UnwrapError) Error() string {
	if e.Failure != nil {
		return fmt.Sprintf("rop: %s: %s: %v", e.Op, e.Reason, e.Failure)
	}
	return fmt.Sprintf("rop: %s: %s", e.Op, e.Reason)
}
