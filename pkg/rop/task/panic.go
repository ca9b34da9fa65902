package task

import (
	"errors"
	"fmt"
	"runtime/debug"

	"github.com/google/uuid"

	"github.com/ib-77/outcome/pkg/rop"
	"github.com/ib-77/outcome/pkg/rop/fault"
)

// PanicInfo is a captured panic payload.
type PanicInfo struct {
	Unit  string
	ID    uuid.UUID
	Value any
	Stack []byte
}

func (p *PanicInfo) Error() string {
	if p.Unit != "" {
		return fmt.Sprintf("unit %q panicked: %v", p.Unit, p.Value)
	}
	return fmt.Sprintf("panicked: %v", p.Value)
}

// Unwrap exposes a panic value that was itself an error.
func (p *PanicInfo) Unwrap() error {
	if err, ok := p.Value.(error); ok {
		return err
	}
	return nil
}

// Fault converts the panic into the fault domain.
func (p *PanicInfo) Fault() *fault.Fault {
	f := fault.Wrap(fault.Panicked, p, "")
	f.Step = p.Unit
	return f
}

// AsFault is a rop.Converter from panics to faults.
func AsFault(p *PanicInfo) *fault.Fault {
	return p.Fault()
}

// AsError is a rop.Converter from panics to plain errors.
func AsError(p *PanicInfo) error {
	return p
}

// ErrExited is the panic value recorded for a unit whose function neither
// returned nor panicked, e.g. one that called runtime.Goexit.
var ErrExited = errors.New("task: goroutine exited before returning")

// Catch runs fn on the calling goroutine. Deferred calls inside fn run
// during unwinding as usual; a panic is returned as the failure.
func Catch[T any](fn func() T) (out rop.Outcome[T, *PanicInfo]) {
	catch("", uuid.Nil, fn, &out)
	return out
}

// catch stores fn's result in out. The store happens in a deferred call so
// out is set even when fn ends its goroutine with runtime.Goexit.
func catch[T any](unit string, id uuid.UUID, fn func() T, out *rop.Outcome[T, *PanicInfo]) {
	returned := false
	defer func() {
		r := recover()
		if returned {
			return
		}
		if r == nil {
			r = ErrExited
		}
		*out = rop.Failure[T](&PanicInfo{
			Unit:  unit,
			ID:    id,
			Value: r,
			Stack: debug.Stack(),
		})
	}()
	*out = rop.Success[T, *PanicInfo](fn())
	returned = true
}
