package rop

// Valued is implemented by both Option and Outcome.
type Valued[T any] interface {
	// Get returns the held value and whether it is meaningful
	Get() (T, bool)
}

// Verdict is the inspection surface shared by Outcome.
type Verdict interface {
	IsSuccess() bool
	IsFailure() bool
}

// Somes keeps the present values of opts in order.
func Somes[T any](opts ...Option[T]) []T {
	out := make([]T, 0, len(opts))
	for _, o := range opts {
		if o.ok {
			out = append(out, o.value)
		}
	}
	return out
}

// Values keeps every meaningful value of a mixed collection.
func Values[T any](items ...Valued[T]) []T {
	out := make([]T, 0, len(items))
	for _, it := range items {
		if v, ok := it.Get(); ok {
			out = append(out, v)
		}
	}
	return out
}

// Count returns how many verdicts succeeded and failed.
func Count[V Verdict](verdicts ...V) (succeeded, failed int) {
	for _, v := range verdicts {
		if v.IsSuccess() {
			succeeded++
		} else {
			failed++
		}
	}
	return succeeded, failed
}
