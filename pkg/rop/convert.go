package rop

import (
	"fmt"
	"reflect"
	"sync"
)

// Converter maps one failure domain into another.
type Converter[E1, E2 any] func(E1) E2

// Convert moves an Outcome into another failure domain.
func Convert[T, E1, E2 any](o Outcome[T, E1], conv Converter[E1, E2]) Outcome[T, E2] {
	return MapError(o, conv)
}

// AndThenConv chains a step whose failures live in a different domain,
// converting them with conv.
func AndThenConv[T, U, E1, E2 any](o Outcome[T, E2], f func(T) Outcome[U, E1],
	conv Converter[E1, E2]) Outcome[U, E2] {

	if !o.ok {
		return Outcome[U, E2]{err: o.err}
	}
	next := f(o.value)
	if next.ok {
		return Success[U, E2](next.value)
	}
	return Failure[U](conv(next.err))
}

// Lift wraps a step so it reports failures in the E2 domain.
func Lift[T, U, E1, E2 any](f func(T) Outcome[U, E1], conv Converter[E1, E2]) func(T) Outcome[U, E2] {
	return func(in T) Outcome[U, E2] {
		return Convert(f(in), conv)
	}
}

// Domain is a unified failure domain E with one declared converter per
// subsystem failure type. Once registered, Bind applies the right converter
// at every step without per-call boilerplate.
type Domain[E any] struct {
	mu    sync.RWMutex
	convs map[reflect.Type]func(any) E
}

func NewDomain[E any]() *Domain[E] {
	return &Domain[E]{convs: make(map[reflect.Type]func(any) E)}
}

// Register declares how failures of type E1 become E. Registering the same
// source type twice replaces the converter.
func Register[E1, E any](d *Domain[E], conv Converter[E1, E]) *Domain[E] {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.convs[reflect.TypeFor[E1]()] = func(v any) E {
		return conv(v.(E1))
	}
	return d
}

// Has reports whether failures of type E1 can be converted.
func Has[E1, E any](d *Domain[E]) bool {
	if reflect.TypeFor[E1]() == reflect.TypeFor[E]() {
		return true
	}
	d.mu.RLock()
	defer d.mu.RUnlock()
	_, ok := d.convs[reflect.TypeFor[E1]()]
	return ok
}

// Bind is AndThen across failure domains using the converter registered for
// E1. A missing converter is a programming error and panics.
func Bind[T, U, E1, E any](d *Domain[E], o Outcome[T, E], f func(T) Outcome[U, E1]) Outcome[U, E] {
	if !o.ok {
		return Outcome[U, E]{err: o.err}
	}
	next := f(o.value)
	if next.ok {
		return Success[U, E](next.value)
	}
	return Failure[U](into(d, next.err))
}

// Into converts a single failure value into the domain.
func Into[E1, E any](d *Domain[E], failure E1) E {
	return into(d, failure)
}

func into[E1, E any](d *Domain[E], failure E1) E {
	if reflect.TypeFor[E1]() == reflect.TypeFor[E]() {
		same, _ := any(failure).(E)
		return same
	}
	d.mu.RLock()
	conv, ok := d.convs[reflect.TypeFor[E1]()]
	d.mu.RUnlock()
	if !ok {
		panic(fmt.Sprintf("rop: no converter registered from %v to %v",
			reflect.TypeFor[E1](), reflect.TypeFor[E]()))
	}
	return conv(failure)
}
