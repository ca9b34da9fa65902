package own

import (
	"slices"

	"github.com/ib-77/outcome/pkg/rop"
	"github.com/ib-77/outcome/pkg/rop/fault"
)

// View is a shared read borrow of v.items[lo:hi]. It observes the owner's
// current contents until the owner is mutated, moved or the view released.
type View[T any] struct {
	owner  *Vec[T]
	lo, hi int
	gen    uint64
	b      *borrow
}

// borrow is shared by a view and the sub-views cut from it.
type borrow struct {
	released bool
}

// View borrows items [lo, hi) for reading.
func (v *Vec[T]) View(lo, hi int) rop.Outcome[*View[T], *fault.Fault] {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.viewLocked(lo, hi)
}

// ViewAll borrows the whole contents for reading.
func (v *Vec[T]) ViewAll() rop.Outcome[*View[T], *fault.Fault] {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.viewLocked(0, len(v.items))
}

func (v *Vec[T]) viewLocked(lo, hi int) rop.Outcome[*View[T], *fault.Fault] {
	if v.moved {
		panic(ErrMoved)
	}
	if v.writer {
		return rop.Failure[*View[T]](fault.New(fault.AliasConflict, "owner is exclusively borrowed").WithStep("view"))
	}
	if lo < 0 || hi > len(v.items) || lo > hi {
		return rop.Failure[*View[T]](fault.Newf(fault.InvalidInput,
			"range [%d:%d] for length %d", lo, hi, len(v.items)).WithStep("view"))
	}

	v.readers++
	return rop.Success[*View[T], *fault.Fault](&View[T]{owner: v, lo: lo, hi: hi, gen: v.gen, b: &borrow{}})
}

// Readers reports how many views are live.
func (v *Vec[T]) Readers() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.readers
}

func (w *View[T]) access(fn func(items []T)) {
	o := w.owner
	o.mu.Lock()
	defer o.mu.Unlock()
	if w.b.released || w.gen != o.gen {
		panic(ErrStaleView)
	}
	fn(o.items[w.lo:w.hi])
}

// Valid reports whether the view may still be read.
func (w *View[T]) Valid() bool {
	o := w.owner
	o.mu.Lock()
	defer o.mu.Unlock()
	return !w.b.released && w.gen == o.gen
}

func (w *View[T]) Len() int {
	return w.hi - w.lo
}

func (w *View[T]) Get(i int) (o rop.Option[T]) {
	w.access(func(items []T) { o = rop.At(items, i) })
	return o
}

func (w *View[T]) At(i int) (item T) {
	w.access(func(items []T) {
		if i < 0 || i >= len(items) {
			panic(outOfRange(i, len(items)))
		}
		item = items[i]
	})
	return item
}

// Items copies the viewed range.
func (w *View[T]) Items() (out []T) {
	w.access(func(items []T) { out = slices.Clone(items) })
	return out
}

// Sub narrows the view to [lo, hi) relative to it. The sub-view shares the
// parent's borrow and goes stale with it.
func (w *View[T]) Sub(lo, hi int) rop.Outcome[*View[T], *fault.Fault] {
	var res rop.Outcome[*View[T], *fault.Fault]
	w.access(func(items []T) {
		if lo < 0 || hi > len(items) || lo > hi {
			res = rop.Failure[*View[T]](fault.Newf(fault.InvalidInput,
				"range [%d:%d] for length %d", lo, hi, len(items)).WithStep("view"))
			return
		}
		res = rop.Success[*View[T], *fault.Fault](&View[T]{owner: w.owner, lo: w.lo + lo, hi: w.lo + hi, gen: w.gen, b: w.b})
	})
	return res
}

// Release ends the borrow, for sub-views too. Releasing twice or releasing
// a stale view is a no-op.
func (w *View[T]) Release() {
	o := w.owner
	o.mu.Lock()
	defer o.mu.Unlock()
	if w.b.released {
		return
	}
	w.b.released = true
	if w.gen == o.gen && o.readers > 0 {
		o.readers--
	}
}

// Mut is an exclusive write borrow of the whole Vec.
type Mut[T any] struct {
	owner    *Vec[T]
	released bool
}

// BorrowMut grants exclusive access. It fails with AliasConflict while any
// view or another Mut is live.
func (v *Vec[T]) BorrowMut() rop.Outcome[*Mut[T], *fault.Fault] {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.moved {
		panic(ErrMoved)
	}
	if v.writer {
		return rop.Failure[*Mut[T]](fault.New(fault.AliasConflict, "already exclusively borrowed").WithStep("borrow_mut"))
	}
	if v.readers > 0 {
		return rop.Failure[*Mut[T]](fault.Newf(fault.AliasConflict, "%d shared views are live", v.readers).WithStep("borrow_mut"))
	}

	v.writer = true
	return rop.Success[*Mut[T], *fault.Fault](&Mut[T]{owner: v})
}

func (m *Mut[T]) access(fn func(o *Vec[T])) {
	o := m.owner
	o.mu.Lock()
	defer o.mu.Unlock()
	if m.released {
		panic(ErrReleased)
	}
	fn(o)
}

func (m *Mut[T]) Len() (n int) {
	m.access(func(o *Vec[T]) { n = len(o.items) })
	return n
}

func (m *Mut[T]) Get(i int) (res rop.Option[T]) {
	m.access(func(o *Vec[T]) { res = rop.At(o.items, i) })
	return res
}

func (m *Mut[T]) Set(i int, item T) {
	m.access(func(o *Vec[T]) {
		if i < 0 || i >= len(o.items) {
			panic(outOfRange(i, len(o.items)))
		}
		o.items[i] = item
	})
}

func (m *Mut[T]) Push(items ...T) {
	m.access(func(o *Vec[T]) { o.items = append(o.items, items...) })
}

// Update hands the backing slice to fn. The slice must not escape fn.
func (m *Mut[T]) Update(fn func(items []T)) {
	m.access(func(o *Vec[T]) { fn(o.items) })
}

// Release ends the exclusive borrow. Releasing twice is a no-op.
func (m *Mut[T]) Release() {
	o := m.owner
	o.mu.Lock()
	defer o.mu.Unlock()
	if m.released {
		return
	}
	m.released = true
	o.writer = false
	o.gen++
}
