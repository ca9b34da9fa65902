package rop

// Integer is any signed or unsigned integer type.
type Integer interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr
}

// CheckedAdd returns a+b, or Absent when the sum overflows N.
func CheckedAdd[N Integer](a, b N) Option[N] {
	s := a + b
	if (b > 0 && s < a) || (b < 0 && s > a) {
		return Option[N]{}
	}
	return Present(s)
}

// CheckedSub returns a-b, or Absent when the difference overflows N.
func CheckedSub[N Integer](a, b N) Option[N] {
	d := a - b
	if (b > 0 && d > a) || (b < 0 && d < a) {
		return Option[N]{}
	}
	return Present(d)
}

// CheckedMul returns a*b, or Absent when the product overflows N.
func CheckedMul[N Integer](a, b N) Option[N] {
	if a == 0 || b == 0 {
		return Present(N(0))
	}
	p := a * b
	// the sign test catches MinInt * -1, which survives the division test
	if ((a < 0) == (b < 0)) != (p > 0) || p/b != a {
		return Option[N]{}
	}
	return Present(p)
}

// CheckedDiv returns a/b, or Absent for a zero divisor or MinInt / -1.
func CheckedDiv[N Integer](a, b N) Option[N] {
	if b == 0 {
		return Option[N]{}
	}
	q := a / b
	if a < 0 && b < 0 && q < 0 {
		return Option[N]{}
	}
	return Present(q)
}
