package rop

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapOption_CallsOnlyWhenPresent(t *testing.T) {
	t.Parallel()

	calls := 0
	double := func(n int) int {
		calls++
		return n * 2
	}

	assert.Equal(t, Present(6), MapOption(Present(3), double))
	assert.Equal(t, 1, calls)

	assert.Equal(t, Absent[int](), MapOption(Absent[int](), double))
	assert.Equal(t, 1, calls, "f must not run on Absent")
}

func TestOption_ZeroValueIsAbsent(t *testing.T) {
	t.Parallel()

	var o Option[string]
	assert.True(t, o.IsAbsent())
	assert.Equal(t, Absent[string](), o)
	assert.Equal(t, None[string](), o)
}

func TestOption_PresentNil(t *testing.T) {
	t.Parallel()

	o := Present[*int](nil)
	require.True(t, o.IsPresent())
	v, ok := o.Get()
	assert.True(t, ok)
	assert.Nil(t, v)
}

func TestOption_Unwrap(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 7, Some(7).Unwrap())
	assert.Equal(t, 7, Some(7).Expect("seven"))

	defer func() {
		r := recover()
		ue, ok := r.(*UnwrapError)
		require.True(t, ok, "expected *UnwrapError, got %T", r)
		assert.Equal(t, "Option.Unwrap", ue.Op)
		assert.Contains(t, ue.Error(), "absent")
	}()
	Absent[int]().Unwrap()
}

func TestOption_Expect(t *testing.T) {
	t.Parallel()

	assert.PanicsWithError(t, "rop: Option.Expect: config must be loaded", func() {
		Absent[int]().Expect("config must be loaded")
	})
}

func TestOption_Defaults(t *testing.T) {
	t.Parallel()

	called := false
	lazy := func() int {
		called = true
		return 9
	}

	assert.Equal(t, 1, Present(1).UnwrapOr(5))
	assert.Equal(t, 5, Absent[int]().UnwrapOr(5))
	assert.Equal(t, 1, Present(1).UnwrapOrElse(lazy))
	assert.False(t, called)
	assert.Equal(t, 9, Absent[int]().UnwrapOrElse(lazy))
	assert.True(t, called)
	assert.Equal(t, 0, Absent[int]().UnwrapOrZero())
}

func TestOption_OrElseAndFilter(t *testing.T) {
	t.Parallel()

	assert.Equal(t, Present(1), Present(1).OrElse(Present(2)))
	assert.Equal(t, Present(2), Absent[int]().OrElse(Present(2)))
	assert.Equal(t, Present(3), Absent[int]().OrElseFunc(func() Option[int] { return Present(3) }))

	even := func(n int) bool { return n%2 == 0 }
	assert.Equal(t, Present(4), Present(4).Filter(even))
	assert.Equal(t, Absent[int](), Present(3).Filter(even))
	assert.Equal(t, Absent[int](), Absent[int]().Filter(even))
}

func TestOption_Pointers(t *testing.T) {
	t.Parallel()

	n := 5
	o := FromPtr(&n)
	assert.Equal(t, Present(5), o)
	assert.Equal(t, Absent[int](), FromPtr[int](nil))

	p := o.ToPtr()
	require.NotNil(t, p)
	*p = 6
	assert.Equal(t, 5, n, "ToPtr must copy")
	assert.Nil(t, Absent[int]().ToPtr())
}

func TestOption_Combinators(t *testing.T) {
	t.Parallel()

	parse := func(s string) Option[int] {
		n, err := strconv.Atoi(s)
		return FromOk(n, err == nil)
	}

	assert.Equal(t, Present(12), AndThenOption(Present("12"), parse))
	assert.Equal(t, Absent[int](), AndThenOption(Present("x"), parse))
	assert.Equal(t, Absent[int](), AndThenOption(Absent[string](), parse))

	assert.Equal(t, "3", MapOptionOr(Present(3), "none", strconv.Itoa))
	assert.Equal(t, "none", MapOptionOr(Absent[int](), "none", strconv.Itoa))
	assert.Equal(t, "lazy", MapOptionOrElse(Absent[int](), func() string { return "lazy" }, strconv.Itoa))

	assert.Equal(t, Present(1), Flatten(Present(Present(1))))
	assert.Equal(t, Absent[int](), Flatten(Present(Absent[int]())))
	assert.Equal(t, Absent[int](), Flatten(Absent[Option[int]]()))

	label := func(o Option[int]) string {
		return MatchOption(o, strconv.Itoa, func() string { return "-" })
	}
	assert.Equal(t, "8", label(Present(8)))
	assert.Equal(t, "-", label(Absent[int]()))
}

func TestOption_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Present(3)", Present(3).String())
	assert.Equal(t, "Absent", Absent[int]().String())
}

func TestToOutcome_RoundTrip(t *testing.T) {
	t.Parallel()

	for _, o := range []Option[int]{Present(1), Present(0), Absent[int]()} {
		assert.Equal(t, o, ToOutcome(o, "missing").ToOption())
	}

	failed := ToOutcome(Absent[int](), "missing")
	require.True(t, failed.IsFailure())
	assert.Equal(t, "missing", failed.Reason())

	built := 0
	ToOutcomeElse(Present(1), func() string { built++; return "x" })
	assert.Zero(t, built, "failure must be built lazily")
}

func TestTranspose(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		opt     Option[Outcome[int, string]]
		outcome Outcome[Option[int], string]
	}{
		{"absent", Absent[Outcome[int, string]](), Success[Option[int], string](Absent[int]())},
		{"present success", Present(Success[int, string](42)), Success[Option[int], string](Present(42))},
		{"present failure", Present(Failure[int]("bad")), Failure[Option[int]]("bad")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.outcome, TransposeOption(tt.opt))
			assert.Equal(t, tt.opt, TransposeOutcome(tt.outcome))
		})
	}
}
