// Package numfile reads numbers stored one per file. It composes steps from
// three failure domains (filesystem faults, parse errors and range checks)
// into a single FileError domain.
package numfile

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/ib-77/outcome/pkg/rop"
	"github.com/ib-77/outcome/pkg/rop/fault"
	"github.com/ib-77/outcome/pkg/rop/scratch"
)

type Kind uint8

const (
	IO Kind = iota
	Parse
	Validation
)

func (k Kind) String() string {
	switch k {
	case IO:
		return "io"
	case Parse:
		return "parse"
	case Validation:
		return "validation"
	}
	return "kind(" + strconv.Itoa(int(k)) + ")"
}

// FileError is the failure domain of this package.
type FileError struct {
	Kind  Kind
	Path  string
	Step  string
	Cause error
}

func (e *FileError) Error() string {
	msg := fmt.Sprintf("%s %s: %s", e.Step, e.Path, e.Kind)
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *FileError) Unwrap() error {
	return e.Cause
}

// ParseError is reported by ParseNumber.
type ParseError struct {
	Input string
	Cause error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %q: %v", e.Input, e.Cause)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}

// RangeError is reported by CheckRange.
type RangeError struct {
	Value    int
	Min, Max int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("%d outside [%d, %d]", e.Value, e.Min, e.Max)
}

var ErrEmpty = errors.New("empty file")

// Bounds accepted by ReadAndParse.
const (
	MinValue = 0
	MaxValue = 1_000_000
)

func ParseNumber(s string) rop.Outcome[int, *ParseError] {
	n, err := strconv.Atoi(s)
	if err != nil {
		return rop.Failure[int](&ParseError{Input: s, Cause: err})
	}
	return rop.Success[int, *ParseError](n)
}

func CheckRange(n int) rop.Outcome[int, *RangeError] {
	if n < MinValue || n > MaxValue {
		return rop.Failure[int](&RangeError{Value: n, Min: MinValue, Max: MaxValue})
	}
	return rop.Success[int, *RangeError](n)
}

// domain declares how every step's failure becomes a FileError for path.
func domain(path string) *rop.Domain[*FileError] {
	d := rop.NewDomain[*FileError]()
	rop.Register(d, func(f *fault.Fault) *FileError {
		return &FileError{Kind: IO, Path: path, Step: "read", Cause: f}
	})
	rop.Register(d, func(p *ParseError) *FileError {
		return &FileError{Kind: Parse, Path: path, Step: "parse", Cause: p}
	})
	rop.Register(d, func(r *RangeError) *FileError {
		return &FileError{Kind: Validation, Path: path, Step: "validate", Cause: r}
	})
	return d
}

// ReadAndParse reads name from fs, trims it and parses it as an int within
// [MinValue, MaxValue].
func ReadAndParse(fs *scratch.FS, name string) rop.Outcome[int, *FileError] {
	d := domain(name)

	start := rop.Success[string, *FileError](name)
	content := rop.Bind(d, start, fs.Read)
	trimmed := rop.AndThen(content, func(s string) rop.Outcome[string, *FileError] {
		s = strings.TrimSpace(s)
		if s == "" {
			return rop.Failure[string](&FileError{Kind: Validation, Path: name, Step: "trim", Cause: ErrEmpty})
		}
		return rop.Success[string, *FileError](s)
	})
	n := rop.Bind(d, trimmed, ParseNumber)
	return rop.Bind(d, n, CheckRange)
}

// ReadAll reads every file in order and stops at the first failure.
func ReadAll(fs *scratch.FS, names ...string) rop.Outcome[[]int, *FileError] {
	out := make([]int, 0, len(names))
	for _, name := range names {
		n := ReadAndParse(fs, name)
		if n.IsFailure() {
			return rop.Failure[[]int](n.Reason())
		}
		out = append(out, n.Value())
	}
	return rop.Success[[]int, *FileError](out)
}

// Sum reads names and adds them.
func Sum(fs *scratch.FS, names ...string) rop.Outcome[int, *FileError] {
	return rop.Map(ReadAll(fs, names...), func(ns []int) int {
		total := 0
		for _, n := range ns {
			total += n
		}
		return total
	})
}
