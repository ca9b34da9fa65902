package chain

import (
	"context"
	"errors"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ib-77/outcome/pkg/rop"
	"github.com/ib-77/outcome/pkg/rop/fault"
)

func double(_ context.Context, n int) int { return n * 2 }

func half(_ context.Context, n int) rop.Outcome[int, *fault.Fault] {
	if n%2 != 0 {
		return fault.Of[int](fault.Validation, "odd")
	}
	return fault.Ok(n / 2)
}

func TestChain_HappyPath(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	res := FromValue[int, *fault.Fault](ctx, 10).
		Map(double).
		Then(half).
		Validate(func(_ context.Context, n int) (bool, *fault.Fault) {
			return n == 10, fault.New(fault.Validation, "not 10")
		}).
		Result()

	assert.Equal(t, fault.Ok(10), res)
}

func TestChain_StopsAtFirstFailure(t *testing.T) {
	t.Parallel()

	calls := 0
	count := func(_ context.Context, n int) int {
		calls++
		return n
	}

	res := FromValue[int, *fault.Fault](context.Background(), 3).
		Then(half).
		Map(count).
		Then(half).
		Result()

	require.True(t, res.IsFailure())
	assert.Equal(t, "odd", res.Reason().Msg)
	assert.Zero(t, calls)
}

type markerKey struct{}

func TestChain_Starts(t *testing.T) {
	t.Parallel()

	ctx := context.WithValue(context.Background(), markerKey{}, "marker")
	notFound := fault.New(fault.NotFound, "nothing")

	c := FromOption(ctx, rop.Absent[int](), notFound)
	assert.Same(t, notFound, c.Result().Reason())
	assert.Equal(t, "marker", c.Context().Value(markerKey{}))

	assert.Equal(t, fault.Ok(1), FromOption(ctx, rop.Present(1), notFound).Result())
	assert.Same(t, notFound, FromFailure[int](ctx, notFound).Result().Reason())
	assert.Equal(t, fault.Ok(2), Start(ctx, fault.Ok(2)).Result())
}

func TestChain_TypeChanging(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	atoi := func(_ context.Context, s string) (int, error) { return strconv.Atoi(s) }

	n := ThenTry(FromValue[string, *fault.Fault](ctx, "21"), atoi, fault.FromError)
	s := Map(n.Map(double), func(_ context.Context, n int) string { return "n=" + strconv.Itoa(n) })
	assert.Equal(t, fault.Ok("n=42"), s.Result())

	bad := ThenTry(FromValue[string, *fault.Fault](ctx, "x"), atoi, fault.FromError)
	assert.Equal(t, fault.InvalidFormat, bad.Result().Reason().Kind)

	lengths := Then(FromValue[string, *fault.Fault](ctx, "abc"), func(_ context.Context, s string) rop.Outcome[int, *fault.Fault] {
		return fault.Ok(len(s))
	})
	assert.Equal(t, fault.Ok(3), lengths.Result())
}

func TestChain_ThenTryMethod(t *testing.T) {
	t.Parallel()

	failing := errors.New("store down")
	save := func(_ context.Context, n int) (int, error) {
		if n > 5 {
			return 0, failing
		}
		return n, nil
	}

	ok := FromValue[int, *fault.Fault](context.Background(), 2).ThenTry(save, fault.FromError)
	assert.Equal(t, fault.Ok(2), ok.Result())

	bad := FromValue[int, *fault.Fault](context.Background(), 9).ThenTry(save, fault.FromError)
	assert.ErrorIs(t, bad.Result().Reason(), failing)
}

func TestChain_Conversion(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	parse := func(_ context.Context, s string) rop.Outcome[int, string] {
		n, err := strconv.Atoi(s)
		if err != nil {
			return rop.Failure[int]("cannot parse " + s)
		}
		return rop.Success[int, string](n)
	}
	toFault := func(msg string) *fault.Fault { return fault.New(fault.InvalidFormat, msg).WithStep("parse") }

	ok := ThenIn(FromValue[string, *fault.Fault](ctx, "4"), parse, toFault)
	assert.Equal(t, fault.Ok(4), ok.Result())

	bad := ThenIn(FromValue[string, *fault.Fault](ctx, "four"), parse, toFault)
	require.True(t, bad.Result().IsFailure())
	assert.Equal(t, "parse", bad.Result().Reason().Step)
	assert.Equal(t, "cannot parse four", bad.Result().Reason().Msg)

	asErr := Convert(FromFailure[int](ctx, "plain"), func(s string) error { return errors.New(s) })
	assert.EqualError(t, asErr.Result().Reason(), "plain")
}

func TestChain_Loops(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	inc := func(_ context.Context, n int) rop.Outcome[int, *fault.Fault] { return fault.Ok(n + 1) }

	until := FromValue[int, *fault.Fault](ctx, 0).
		RepeatUntil(inc, func(_ context.Context, n int) bool { return n >= 3 })
	assert.Equal(t, fault.Ok(3), until.Result())

	// RepeatUntil runs the step at least once
	once := FromValue[int, *fault.Fault](ctx, 10).
		RepeatUntil(inc, func(_ context.Context, n int) bool { return true })
	assert.Equal(t, fault.Ok(11), once.Result())

	// While may run zero times
	none := FromValue[int, *fault.Fault](ctx, 10).
		While(inc, func(_ context.Context, n int) bool { return n < 3 })
	assert.Equal(t, fault.Ok(10), none.Result())

	stopped := FromValue[int, *fault.Fault](ctx, 1).
		While(func(ctx context.Context, n int) rop.Outcome[int, *fault.Fault] {
			if n == 4 {
				return fault.Of[int](fault.Overflow, "limit")
			}
			return inc(ctx, n)
		}, func(_ context.Context, n int) bool { return n < 10 })
	assert.Equal(t, fault.Overflow, stopped.Result().Reason().Kind)
}

func TestChain_OrAnd(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	ok1 := FromValue[int, *fault.Fault](ctx, 1)
	ok2 := FromValue[int, *fault.Fault](ctx, 2)
	bad1 := FromFailure[int](ctx, fault.New(fault.NotFound, "first"))
	bad2 := FromFailure[int](ctx, fault.New(fault.NotFound, "second"))

	assert.Equal(t, ok1.Result(), ok1.Or(ok2).Result())
	assert.Equal(t, ok2.Result(), bad1.Or(bad2, ok2).Result())
	assert.Equal(t, "first", bad1.Or(bad2).Result().Reason().Msg)

	assert.Equal(t, ok2.Result(), ok1.And(ok2).Result())
	assert.Equal(t, "first", ok1.And(bad1, bad2).Result().Reason().Msg)
	assert.Equal(t, ok1.Result(), ok1.And().Result())
}

func TestChain_EnsureAndFinally(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	var log []string
	ensure := func(c Chain[int, *fault.Fault]) Chain[int, *fault.Fault] {
		return c.Ensure(
			func(_ context.Context, n int) { log = append(log, "ok "+strconv.Itoa(n)) },
			func(_ context.Context, f *fault.Fault) { log = append(log, "fail "+f.Msg) })
	}

	ensure(FromValue[int, *fault.Fault](ctx, 1))
	ensure(FromFailure[int](ctx, fault.New(fault.IO, "disk")))
	assert.Equal(t, []string{"ok 1", "fail disk"}, log)

	zeroOnFailure := func(context.Context, *fault.Fault) int { return 0 }
	assert.Equal(t, 5, FromValue[int, *fault.Fault](ctx, 5).Finally(func(_ context.Context, n int) int { return n }, zeroOnFailure))

	text := Finally(FromFailure[int](ctx, fault.New(fault.IO, "disk")),
		func(_ context.Context, n int) string { return strconv.Itoa(n) },
		func(_ context.Context, f *fault.Fault) string { return f.Error() })
	assert.Equal(t, "io: disk", text)
}
