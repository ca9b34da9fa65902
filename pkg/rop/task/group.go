package task

import (
	"context"
	"strconv"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ib-77/outcome/pkg/rop"
	"github.com/ib-77/outcome/pkg/rop/core"
)

type Option func(*Group)

// WithLimit caps how many units run at once. Spawn blocks while the group
// is at its limit. Zero or negative means unlimited.
func WithLimit(n int) Option {
	return func(g *Group) {
		g.limit = n
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(g *Group) {
		if l != nil {
			g.log = l
		}
	}
}

// Group spawns units and waits for them. Units never cancel each other.
type Group struct {
	ctx   context.Context
	eg    errgroup.Group
	log   *zap.Logger
	limit int

	mu     sync.Mutex
	panics []error
}

// NewGroup creates a group whose units receive ctx. The default limit comes
// from core.WithWorkerOptions on ctx.
func NewGroup(ctx context.Context, opts ...Option) *Group {
	g := &Group{
		ctx:   ctx,
		log:   zap.NewNop(),
		limit: core.GetWorkerMaxCount(ctx, 0),
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.limit > 0 {
		g.eg.SetLimit(g.limit)
	}
	return g
}

// Handle is the join point of one unit.
type Handle[T any] struct {
	name string
	id   uuid.UUID
	done chan struct{}
	res  rop.Outcome[T, *PanicInfo]
}

func (h *Handle[T]) Name() string {
	return h.name
}

func (h *Handle[T]) ID() uuid.UUID {
	return h.id
}

// Done is closed when the unit has finished.
func (h *Handle[T]) Done() <-chan struct{} {
	return h.done
}

// Join blocks until the unit finishes and returns its value or its panic.
func (h *Handle[T]) Join() rop.Outcome[T, *PanicInfo] {
	<-h.done
	return h.res
}

// JoinContext is Join bounded by ctx. A done ctx yields its error as the
// failure; the unit keeps running.
func (h *Handle[T]) JoinContext(ctx context.Context) rop.Outcome[T, error] {
	select {
	case <-h.done:
		return rop.MapError(h.res, AsError)
	case <-ctx.Done():
		return rop.Failure[T](ctx.Err())
	}
}

// Spawn starts fn as a new unit.
func Spawn[T any](g *Group, name string, fn func(ctx context.Context) T) *Handle[T] {
	h := &Handle[T]{
		name: name,
		id:   uuid.New(),
		done: make(chan struct{}),
	}

	g.eg.Go(func() error {
		defer close(h.done)
		defer func() {
			if h.res.IsSuccess() {
				g.log.Debug("unit finished", zap.String("unit", name), zap.Stringer("id", h.id))
				return
			}
			p := h.res.Reason()
			g.log.Warn("unit panicked",
				zap.String("unit", name),
				zap.Stringer("id", h.id),
				zap.Any("value", p.Value))
			g.mu.Lock()
			g.panics = append(g.panics, p)
			g.mu.Unlock()
		}()

		catch(name, h.id, func() T { return fn(g.ctx) }, &h.res)
		// siblings are never cancelled
		return nil
	})

	return h
}

// SpawnOutcome starts a unit that reports its own failures. Join it with
// Settle to fold a panic into the unit's failure domain.
func SpawnOutcome[T, E any](g *Group, name string, fn func(ctx context.Context) rop.Outcome[T, E]) *Handle[rop.Outcome[T, E]] {
	return Spawn(g, name, fn)
}

// SpawnErr starts a unit following the (T, error) convention.
func SpawnErr[T any](g *Group, name string, fn func(ctx context.Context) (T, error)) *Handle[rop.Outcome[T, error]] {
	return Spawn(g, name, func(ctx context.Context) rop.Outcome[T, error] {
		return rop.FromErr(fn(ctx))
	})
}

// Settle flattens a joined outcome-returning unit, converting a panic with conv.
func Settle[T, E any](joined rop.Outcome[rop.Outcome[T, E], *PanicInfo], conv rop.Converter[*PanicInfo, E]) rop.Outcome[T, E] {
	if joined.IsFailure() {
		return rop.Failure[T](conv(joined.Reason()))
	}
	return joined.Value()
}

// Wait blocks until every unit has finished. It returns every captured
// panic combined, or nil. Handles still report their own outcome.
func (g *Group) Wait() error {
	_ = g.eg.Wait()

	g.mu.Lock()
	defer g.mu.Unlock()
	return multierr.Combine(g.panics...)
}

// Map runs fn over items as separate units and joins them in input order.
func Map[T, U any](ctx context.Context, items []T, fn func(ctx context.Context, item T) U,
	opts ...Option) []rop.Outcome[U, *PanicInfo] {

	g := NewGroup(ctx, opts...)
	handles := make([]*Handle[U], len(items))
	for i, it := range items {
		handles[i] = Spawn(g, "item-"+strconv.Itoa(i), func(ctx context.Context) U {
			return fn(ctx, it)
		})
	}

	out := make([]rop.Outcome[U, *PanicInfo], len(items))
	for i, h := range handles {
		out[i] = h.Join()
	}
	_ = g.Wait()
	return out
}
