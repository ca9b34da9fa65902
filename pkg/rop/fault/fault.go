package fault

import (
	"errors"
	"fmt"
	"io/fs"
	"strconv"
	"strings"

	"github.com/ib-77/outcome/pkg/rop"
)

type Kind uint8

const (
	Unknown Kind = iota
	InvalidFormat
	DivisionByZero
	NegativeRoot
	Overflow
	InvalidInput
	Validation
	NotFound
	PermissionDenied
	AlreadyExists
	IO
	AliasConflict
	Panicked
	Cancelled
)

var kindNames = [...]string{
	Unknown:          "unknown",
	InvalidFormat:    "invalid format",
	DivisionByZero:   "division by zero",
	NegativeRoot:     "negative root",
	Overflow:         "overflow",
	InvalidInput:     "invalid input",
	Validation:       "validation",
	NotFound:         "not found",
	PermissionDenied: "permission denied",
	AlreadyExists:    "already exists",
	IO:               "io",
	AliasConflict:    "alias conflict",
	Panicked:         "panicked",
	Cancelled:        "cancelled",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "kind(" + strconv.Itoa(int(k)) + ")"
}

// Fault is a recoverable domain failure.
type Fault struct {
	Kind Kind
	// Step names the operation that failed, if known
	Step  string
	Msg   string
	Cause error
}

func New(kind Kind, msg string) *Fault {
	return &Fault{Kind: kind, Msg: msg}
}

func Newf(kind Kind, format string, args ...any) *Fault {
	return &Fault{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// Wrap attaches a cause. A nil cause yields a plain fault.
func Wrap(kind Kind, cause error, msg string) *Fault {
	return &Fault{Kind: kind, Msg: msg, Cause: cause}
}

func (f *Fault) Error() string {
	var b strings.Builder
	if f.Step != "" {
		b.WriteString(f.Step)
		b.WriteString(": ")
	}
	b.WriteString(f.Kind.String())
	if f.Msg != "" {
		b.WriteString(": ")
		b.WriteString(f.Msg)
	}
	if f.Cause != nil {
		b.WriteString(": ")
		b.WriteString(f.Cause.Error())
	}
	return b.String()
}

func (f *Fault) Unwrap() error {
	return f.Cause
}

// Is matches another *Fault of the same Kind. A target with a Step set must
// match the step as well.
func (f *Fault) Is(target error) bool {
	t, ok := target.(*Fault)
	if !ok {
		return false
	}
	if t.Kind != f.Kind {
		return false
	}
	return t.Step == "" || t.Step == f.Step
}

// WithStep returns a copy of f stamped with step. An existing step is kept
// as a prefix so nested compositions read outer/inner.
func (f *Fault) WithStep(step string) *Fault {
	c := *f
	if c.Step == "" {
		c.Step = step
	} else {
		c.Step = step + "/" + c.Step
	}
	return &c
}

// Sentinels for errors.Is checks.
var (
	ErrInvalidFormat    = &Fault{Kind: InvalidFormat}
	ErrDivisionByZero   = &Fault{Kind: DivisionByZero}
	ErrNegativeRoot     = &Fault{Kind: NegativeRoot}
	ErrOverflow         = &Fault{Kind: Overflow}
	ErrInvalidInput     = &Fault{Kind: InvalidInput}
	ErrValidation       = &Fault{Kind: Validation}
	ErrNotFound         = &Fault{Kind: NotFound}
	ErrPermissionDenied = &Fault{Kind: PermissionDenied}
	ErrAlreadyExists    = &Fault{Kind: AlreadyExists}
	ErrIO               = &Fault{Kind: IO}
	ErrAliasConflict    = &Fault{Kind: AliasConflict}
	ErrPanicked         = &Fault{Kind: Panicked}
	ErrCancelled        = &Fault{Kind: Cancelled}
)

// KindOf reports the Kind of the first *Fault in err's chain.
func KindOf(err error) Kind {
	var f *Fault
	if errors.As(err, &f) {
		return f.Kind
	}
	return Unknown
}

// Classify turns an arbitrary error into a Fault, picking the kind from
// well-known standard library errors.
func Classify(err error) *Fault {
	if rop.IsNil(err) {
		return nil
	}
	var f *Fault
	if errors.As(err, &f) {
		return f
	}

	var numErr *strconv.NumError
	switch {
	case rop.IsCancellationError(err):
		return Wrap(Cancelled, err, "")
	case errors.Is(err, fs.ErrNotExist):
		return Wrap(NotFound, err, "")
	case errors.Is(err, fs.ErrPermission):
		return Wrap(PermissionDenied, err, "")
	case errors.Is(err, fs.ErrExist):
		return Wrap(AlreadyExists, err, "")
	case errors.As(err, &numErr) && errors.Is(numErr.Err, strconv.ErrRange):
		return Wrap(Overflow, err, "")
	case errors.As(err, &numErr):
		return Wrap(InvalidFormat, err, "")
	}
	return Wrap(Unknown, err, "")
}

// At returns a converter that stamps failures with the step name, so an
// aggregated failure still tells which step produced it.
func At(step string) rop.Converter[*Fault, *Fault] {
	return func(f *Fault) *Fault {
		if f == nil {
			return New(Unknown, "nil fault").WithStep(step)
		}
		return f.WithStep(step)
	}
}

// FromError is a converter from plain errors.
func FromError(err error) *Fault {
	if f := Classify(err); f != nil {
		return f
	}
	return New(Unknown, "nil error")
}

// Of is a shorthand for a failed Outcome carrying a new Fault.
func Of[T any](kind Kind, msg string) rop.Outcome[T, *Fault] {
	return rop.Failure[T](New(kind, msg))
}

// Ok is a shorthand for a successful Outcome in the Fault domain.
func Ok[T any](v T) rop.Outcome[T, *Fault] {
	return rop.Success[T, *Fault](v)
}
