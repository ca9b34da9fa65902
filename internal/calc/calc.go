// Package calc holds the arithmetic and parsing steps used by the demo
// scenarios. Every fallible step reports a *fault.Fault naming the step.
package calc

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"

	"github.com/ib-77/outcome/pkg/rop"
	"github.com/ib-77/outcome/pkg/rop/fault"
)

type Result[T any] = rop.Outcome[T, *fault.Fault]

// ParseInt parses a base 10 integer without trimming.
func ParseInt(s string) Result[int] {
	n, err := strconv.Atoi(s)
	if err != nil {
		return rop.Failure[int](fault.Classify(err).WithStep("parse"))
	}
	return fault.Ok(n)
}

func SafeDivide(a, b int) Result[int] {
	if b == 0 {
		return rop.Failure[int](fault.Newf(fault.DivisionByZero, "%d / 0", a).WithStep("divide"))
	}
	return fault.Ok(a / b)
}

func SafeDivideFloat(a, b float64) Result[float64] {
	if b == 0 {
		return rop.Failure[float64](fault.Newf(fault.DivisionByZero, "%g / 0", a).WithStep("divide"))
	}
	return fault.Ok(a / b)
}

func SafeSqrt(x float64) Result[float64] {
	if x < 0 {
		return rop.Failure[float64](fault.Newf(fault.NegativeRoot, "sqrt(%g)", x).WithStep("sqrt"))
	}
	return fault.Ok(math.Sqrt(x))
}

func ParsePositiveFloat(s string) Result[float64] {
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return rop.Failure[float64](fault.Wrap(fault.InvalidInput, err,
			fmt.Sprintf("%q is not a valid number", s)).WithStep("parse"))
	}
	if n <= 0 {
		return rop.Failure[float64](fault.New(fault.InvalidInput, "number must be positive").WithStep("parse"))
	}
	return fault.Ok(n)
}

// Calculate returns sqrt((a+b)/2) for two positive numbers.
func Calculate(aStr, bStr string) Result[float64] {
	a := rop.Convert(ParsePositiveFloat(aStr), fault.At("a"))
	sum := rop.AndThen(a, func(a float64) Result[float64] {
		return rop.Map(rop.Convert(ParsePositiveFloat(bStr), fault.At("b")), func(b float64) float64 {
			return a + b
		})
	})
	half := rop.AndThen(sum, func(s float64) Result[float64] { return SafeDivideFloat(s, 2) })
	return rop.AndThen(half, SafeSqrt)
}

// ComplexCalculation folds inputs as acc = sqrt(acc / next) starting from
// the first number.
func ComplexCalculation(inputs []string) Result[float64] {
	if len(inputs) < 2 {
		return rop.Failure[float64](fault.New(fault.InvalidInput, "need at least 2 numbers").WithStep("complex"))
	}

	acc := rop.Convert(ParsePositiveFloat(inputs[0]), fault.At("input 0"))
	for i, in := range inputs[1:] {
		step := fault.At(fmt.Sprintf("input %d", i+1))
		acc = rop.AndThen(acc, func(prev float64) Result[float64] {
			q := rop.AndThen(ParsePositiveFloat(in), func(n float64) Result[float64] { return SafeDivideFloat(prev, n) })
			return rop.Convert(rop.AndThen(q, SafeSqrt), step)
		})
	}
	return acc
}

// Factorial is computed recursively and fails with Overflow past int64.
func Factorial(n int) Result[int64] {
	if n < 0 {
		return rop.Failure[int64](fault.Newf(fault.InvalidInput, "factorial of %d", n).WithStep("factorial"))
	}
	if n <= 1 {
		return fault.Ok[int64](1)
	}
	return rop.AndThen(Factorial(n-1), func(prev int64) Result[int64] {
		return rop.ToOutcomeElse(rop.CheckedMul(prev, int64(n)), func() *fault.Fault {
			return fault.Newf(fault.Overflow, "%d! exceeds int64", n).WithStep("factorial")
		})
	})
}

// ProcessUserInput accepts 1..100 and doubles it.
func ProcessUserInput(input string) Result[int] {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return fault.Of[int](fault.InvalidInput, "input is empty")
	}
	n := ParseInt(trimmed)
	checked := rop.AndThen(n, func(n int) Result[int] {
		switch {
		case n == 0:
			return fault.Of[int](fault.InvalidInput, "number cannot be zero")
		case n < 0:
			return fault.Of[int](fault.InvalidInput, "number cannot be negative")
		case n > 100:
			return fault.Of[int](fault.InvalidInput, "number too large (max 100)")
		}
		return fault.Ok(n)
	})
	return rop.Map(checked, func(n int) int { return n * 2 })
}

// FirstWordLength is Absent for a missing or blank text.
func FirstWordLength(text rop.Option[string]) rop.Option[int] {
	word := rop.AndThenOption(text, func(t string) rop.Option[string] {
		return rop.First(strings.Fields(t))
	})
	return rop.MapOption(word, func(w string) int { return len(w) })
}

// ExtractNumber reads the integer after '=' in a key=value string.
func ExtractNumber(config rop.Option[string]) rop.Option[int] {
	value := rop.AndThenOption(config, func(c string) rop.Option[string] {
		_, v, ok := strings.Cut(c, "=")
		return rop.FromOk(strings.TrimSpace(v), ok)
	})
	return rop.AndThenOption(value, func(v string) rop.Option[int] {
		return ParseInt(v).ToOption()
	})
}

// ParseOptionalInt parses s when it is present. A missing value is not a
// failure; a malformed one is.
func ParseOptionalInt(s rop.Option[string]) Result[rop.Option[int]] {
	return rop.TransposeOption(rop.MapOption(s, ParseInt))
}

// LetterCounts counts the letters of s, ignoring case and everything that
// is not a letter.
func LetterCounts(s string) map[rune]int {
	counts := make(map[rune]int)
	for _, r := range strings.ToLower(s) {
		if !unicode.IsLetter(r) {
			continue
		}
		if rop.AndModify(counts, r, func(n int) int { return n + 1 }).IsAbsent() {
			rop.OrInsert(counts, r, 1)
		}
	}
	return counts
}
