package task

import (
	"context"
	"errors"
	"runtime"
	"strconv"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/ib-77/outcome/pkg/rop"
	"github.com/ib-77/outcome/pkg/rop/core"
	"github.com/ib-77/outcome/pkg/rop/fault"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestGroup_PanicStaysInItsUnit(t *testing.T) {
	t.Parallel()

	g := NewGroup(context.Background())
	handles := make([]*Handle[int], 3)
	for i := range handles {
		handles[i] = Spawn(g, "unit-"+strconv.Itoa(i), func(context.Context) int {
			if i == 1 {
				panic("unit 1 failed")
			}
			return i
		})
	}

	assert.Equal(t, rop.Success[int, *PanicInfo](0), handles[0].Join())
	assert.Equal(t, rop.Success[int, *PanicInfo](2), handles[2].Join())

	failed := handles[1].Join()
	require.True(t, failed.IsFailure())
	p := failed.Reason()
	assert.Equal(t, "unit-1", p.Unit)
	assert.Equal(t, "unit 1 failed", p.Value)
	assert.Equal(t, handles[1].ID(), p.ID)
	assert.NotEmpty(t, p.Stack)

	err := g.Wait()
	require.Error(t, err)
	assert.Len(t, multierr.Errors(err), 1)
}

func TestGroup_WaitWithoutPanics(t *testing.T) {
	t.Parallel()

	g := NewGroup(context.Background())
	h := Spawn(g, "ok", func(context.Context) string { return "done" })
	assert.NoError(t, g.Wait())
	assert.Equal(t, "done", h.Join().Unwrap())
	assert.Equal(t, "ok", h.Name())
	assert.NotEqual(t, uuid.Nil, h.ID())

	select {
	case <-h.Done():
	default:
		t.Fatal("Done must be closed after Wait")
	}
}

func TestGroup_Limit(t *testing.T) {
	t.Parallel()

	var running, peak atomic.Int32
	g := NewGroup(core.WithWorkerOptions(context.Background(), 2))
	for i := range 6 {
		Spawn(g, "unit-"+strconv.Itoa(i), func(context.Context) int {
			n := running.Add(1)
			for {
				old := peak.Load()
				if n <= old || peak.CompareAndSwap(old, n) {
					break
				}
			}
			time.Sleep(10 * time.Millisecond)
			running.Add(-1)
			return i
		})
	}
	require.NoError(t, g.Wait())
	assert.LessOrEqual(t, peak.Load(), int32(2))
}

func TestGroup_LogsPanics(t *testing.T) {
	t.Parallel()

	observed, logs := observer.New(zap.WarnLevel)
	g := NewGroup(context.Background(), WithLogger(zap.New(observed)))
	Spawn(g, "noisy", func(context.Context) int { panic(errors.New("boom")) })
	_ = g.Wait()

	entries := logs.FilterMessage("unit panicked").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "noisy", entries[0].ContextMap()["unit"])
}

func TestHandle_JoinContext(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	g := NewGroup(context.Background())
	h := Spawn(g, "slow", func(context.Context) int {
		<-release
		return 1
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res := h.JoinContext(ctx)
	assert.ErrorIs(t, res.Reason(), context.Canceled)

	close(release)
	assert.Equal(t, 1, h.JoinContext(context.Background()).Unwrap())
	require.NoError(t, g.Wait())
}

func TestSpawnOutcome_Settle(t *testing.T) {
	t.Parallel()

	g := NewGroup(context.Background())
	ok := SpawnOutcome(g, "ok", func(context.Context) rop.Outcome[int, *fault.Fault] { return fault.Ok(4) })
	bad := SpawnOutcome(g, "bad", func(context.Context) rop.Outcome[int, *fault.Fault] {
		return fault.Of[int](fault.DivisionByZero, "1 / 0")
	})
	boom := SpawnOutcome(g, "boom", func(context.Context) rop.Outcome[int, *fault.Fault] {
		var items []int
		return fault.Ok(items[3])
	})

	assert.Equal(t, fault.Ok(4), Settle(ok.Join(), AsFault))
	assert.Equal(t, fault.DivisionByZero, Settle(bad.Join(), AsFault).Reason().Kind)

	panicked := Settle(boom.Join(), AsFault)
	require.True(t, panicked.IsFailure())
	assert.Equal(t, fault.Panicked, panicked.Reason().Kind)
	assert.Equal(t, "boom", panicked.Reason().Step)
	assert.ErrorIs(t, panicked.Reason(), fault.ErrPanicked)

	assert.Error(t, g.Wait())
}

func TestSpawnErr(t *testing.T) {
	t.Parallel()

	failing := errors.New("nope")
	g := NewGroup(context.Background())
	h := SpawnErr(g, "err", func(context.Context) (int, error) { return 0, failing })
	res := Settle(h.Join(), AsError)
	assert.ErrorIs(t, res.Reason(), failing)
	require.NoError(t, g.Wait())
}

func TestCatch(t *testing.T) {
	t.Parallel()

	assert.Equal(t, rop.Success[int, *PanicInfo](3), Catch(func() int { return 3 }))

	sentinel := errors.New("sentinel")
	res := Catch(func() int { panic(sentinel) })
	require.True(t, res.IsFailure())
	assert.ErrorIs(t, res.Reason(), sentinel)
	assert.Equal(t, uuid.Nil, res.Reason().ID)
	assert.Equal(t, "panicked: sentinel", res.Reason().Error())

	cleaned := false
	Catch(func() int {
		defer func() { cleaned = true }()
		panic("x")
	})
	assert.True(t, cleaned, "deferred calls run during unwinding")
}

func TestMap(t *testing.T) {
	t.Parallel()

	res := Map(context.Background(), []int{2, 0, 5}, func(_ context.Context, n int) int { return 10 / n })
	require.Len(t, res, 3)
	assert.Equal(t, 5, res[0].Unwrap())
	assert.Equal(t, "item-1", res[1].Reason().Unit)
	assert.Equal(t, 2, res[2].Unwrap())
}

func TestGroup_GoexitIsRecorded(t *testing.T) {
	t.Parallel()

	g := NewGroup(context.Background())
	quit := Spawn(g, "quit", func(context.Context) int {
		runtime.Goexit()
		return 1
	})
	fine := Spawn(g, "fine", func(context.Context) int { return 2 })

	res := quit.Join()
	require.True(t, res.IsFailure())
	p := res.Reason()
	require.NotNil(t, p)
	assert.Equal(t, "quit", p.Unit)
	assert.ErrorIs(t, p, ErrExited)
	assert.Equal(t, fault.Panicked, p.Fault().Kind)

	assert.Equal(t, 2, fine.Join().Unwrap())
	assert.ErrorIs(t, g.Wait(), ErrExited)
}
