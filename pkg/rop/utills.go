package rop

import (
	"context"
	"errors"
	"reflect"
)

// IsNil reports true for untyped nil and for typed nil pointers, maps,
// slices, channels and funcs stored in an interface.
func IsNil(i any) bool {
	if i == nil {
		return true
	}
	v := reflect.ValueOf(i)
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func, reflect.Interface:
		return v.IsNil()
	}
	return false
}

// GetErrors flattens one level of errors.Join.
func GetErrors(err error) []error {
	if IsNil(err) {
		return []error{}
	}

	e, ok := err.(interface{ Unwrap() []error })
	if ok {
		return e.Unwrap()
	}

	return []error{err}
}

// AppendError joins next onto err, keeping the joined list flat.
func AppendError(err, next error) error {
	if IsNil(next) {
		return err
	}
	e := GetErrors(err)
	e = append(e, next)
	return errors.Join(e...)
}

func IsCancellationError(err error) bool {
	return errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled)
}
