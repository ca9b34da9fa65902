package rop

import "fmt"

// Option holds a value of type T or nothing. The zero value is Absent.
// Present(nil) is a legal Present for nil-capable T.
type Option[T any] struct {
	value T
	ok    bool
}

func Present[T any](v T) Option[T] {
	return Option[T]{value: v, ok: true}
}

func Absent[T any]() Option[T] {
	return Option[T]{}
}

// Some is an alias of Present.
func Some[T any](v T) Option[T] {
	return Present(v)
}

// None is an alias of Absent.
func None[T any]() Option[T] {
	return Absent[T]()
}

// FromOk builds an Option from the comma-ok idiom (map lookups, type asserts).
func FromOk[T any](v T, ok bool) Option[T] {
	if !ok {
		return Absent[T]()
	}
	return Present(v)
}

// FromPtr treats nil as Absent and copies the pointee otherwise.
func FromPtr[T any](p *T) Option[T] {
	if p == nil {
		return Absent[T]()
	}
	return Present(*p)
}

func (o Option[T]) IsPresent() bool {
	return o.ok
}

func (o Option[T]) IsAbsent() bool {
	return !o.ok
}

func (o Option[T]) Get() (T, bool) {
	return o.value, o.ok
}

// Unwrap returns the value or panics with *UnwrapError. Only for call sites
// that already proved presence.
func (o Option[T]) Unwrap() T {
	if !o.ok {
		panic(&UnwrapError{Op: "Option.Unwrap", Reason: "value is absent"})
	}
	return o.value
}

// Expect is Unwrap with a caller supplied panic message.
func (o Option[T]) Expect(msg string) T {
	if !o.ok {
		panic(&UnwrapError{Op: "Option.Expect", Reason: msg})
	}
	return o.value
}

func (o Option[T]) UnwrapOr(def T) T {
	if o.ok {
		return o.value
	}
	return def
}

func (o Option[T]) UnwrapOrElse(def func() T) T {
	if o.ok {
		return o.value
	}
	return def()
}

// UnwrapOrZero returns the value or T's zero value.
func (o Option[T]) UnwrapOrZero() T {
	return o.value
}

func (o Option[T]) OrElse(fallback Option[T]) Option[T] {
	if o.ok {
		return o
	}
	return fallback
}

func (o Option[T]) OrElseFunc(fallback func() Option[T]) Option[T] {
	if o.ok {
		return o
	}
	return fallback()
}

func (o Option[T]) Filter(predicate func(T) bool) Option[T] {
	if o.ok && predicate(o.value) {
		return o
	}
	return Absent[T]()
}

// ToPtr returns a pointer to a copy of the value, nil when Absent.
func (o Option[T]) ToPtr() *T {
	if !o.ok {
		return nil
	}
	v := o.value
	return &v
}

func (o Option[T]) String() string {
	if o.ok {
		return fmt.Sprintf("Present(%v)", o.value)
	}
	return "Absent"
}

func MapOption[T, U any](o Option[T], f func(T) U) Option[U] {
	if !o.ok {
		return Option[U]{}
	}
	return Present(f(o.value))
}

func MapOptionOr[T, U any](o Option[T], def U, f func(T) U) U {
	if !o.ok {
		return def
	}
	return f(o.value)
}

func MapOptionOrElse[T, U any](o Option[T], def func() U, f func(T) U) U {
	if !o.ok {
		return def()
	}
	return f(o.value)
}

// AndThenOption chains a lookup that may itself produce nothing.
func AndThenOption[T, U any](o Option[T], f func(T) Option[U]) Option[U] {
	if !o.ok {
		return Option[U]{}
	}
	return f(o.value)
}

func Flatten[T any](o Option[Option[T]]) Option[T] {
	if !o.ok {
		return Option[T]{}
	}
	return o.value
}

// MatchOption dispatches on both variants; neither handler may be nil.
func MatchOption[T, U any](o Option[T], onPresent func(T) U, onAbsent func() U) U {
	if o.ok {
		return onPresent(o.value)
	}
	return onAbsent()
}

// ToOutcome maps Absent to Failure(errIfAbsent).
func ToOutcome[T, E any](o Option[T], errIfAbsent E) Outcome[T, E] {
	if o.ok {
		return Success[T, E](o.value)
	}
	return Failure[T](errIfAbsent)
}

// ToOutcomeElse is ToOutcome with a lazily built failure.
func ToOutcomeElse[T, E any](o Option[T], errIfAbsent func() E) Outcome[T, E] {
	if o.ok {
		return Success[T, E](o.value)
	}
	return Failure[T](errIfAbsent())
}

// TransposeOption turns an optional outcome inside out: Absent becomes
// Success(Absent) and Present(Failure(e)) becomes Failure(e).
func TransposeOption[T, E any](o Option[Outcome[T, E]]) Outcome[Option[T], E] {
	if !o.ok {
		return Success[Option[T], E](Option[T]{})
	}
	if !o.value.ok {
		return Failure[Option[T]](o.value.err)
	}
	return Success[Option[T], E](Present(o.value.value))
}

// TransposeOutcome is the inverse of TransposeOption.
func TransposeOutcome[T, E any](o Outcome[Option[T], E]) Option[Outcome[T, E]] {
	if !o.ok {
		return Present(Failure[T](o.err))
	}
	if !o.value.ok {
		return Option[Outcome[T, E]]{}
	}
	return Present(Success[T, E](o.value.value))
}
