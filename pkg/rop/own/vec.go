package own

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/ib-77/outcome/pkg/rop"
)

var (
	ErrMoved           = errors.New("own: use of moved value")
	ErrStaleView       = errors.New("own: view used after its owner changed")
	ErrBorrowed        = errors.New("own: owner accessed while exclusively borrowed")
	ErrReleased        = errors.New("own: borrow used after release")
	ErrIndexOutOfRange = errors.New("own: index out of range")
)

// Vec owns a growable sequence. The zero value is an empty, usable Vec.
type Vec[T any] struct {
	mu      sync.Mutex
	items   []T
	gen     uint64
	readers int
	writer  bool
	moved   bool
}

func New[T any](capacity int) *Vec[T] {
	return &Vec[T]{items: make([]T, 0, capacity)}
}

// From copies items into a new Vec, so the caller's slice is not aliased.
func From[T any](items ...T) *Vec[T] {
	return &Vec[T]{items: slices.Clone(items)}
}

func outOfRange(i, n int) error {
	return fmt.Errorf("%w: index %d for length %d", ErrIndexOutOfRange, i, n)
}

// read and write run fn under the lock after checking the access rules.
func (v *Vec[T]) read(fn func()) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.moved {
		panic(ErrMoved)
	}
	if v.writer {
		panic(ErrBorrowed)
	}
	fn()
}

func (v *Vec[T]) write(fn func()) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.moved {
		panic(ErrMoved)
	}
	if v.writer {
		panic(ErrBorrowed)
	}
	fn()
	// outstanding views are now stale
	v.gen++
	v.readers = 0
}

func (v *Vec[T]) Len() (n int) {
	v.read(func() { n = len(v.items) })
	return n
}

func (v *Vec[T]) IsEmpty() bool {
	return v.Len() == 0
}

// Get is bounds checked access.
func (v *Vec[T]) Get(i int) (o rop.Option[T]) {
	v.read(func() { o = rop.At(v.items, i) })
	return o
}

// At is direct access and panics when i is out of range.
func (v *Vec[T]) At(i int) (item T) {
	v.read(func() {
		if i < 0 || i >= len(v.items) {
			panic(outOfRange(i, len(v.items)))
		}
		item = v.items[i]
	})
	return item
}

func (v *Vec[T]) First() (o rop.Option[T]) {
	v.read(func() { o = rop.First(v.items) })
	return o
}

func (v *Vec[T]) Last() (o rop.Option[T]) {
	v.read(func() { o = rop.Last(v.items) })
	return o
}

func (v *Vec[T]) Find(pred func(T) bool) (o rop.Option[T]) {
	v.read(func() { o = rop.Find(v.items, pred) })
	return o
}

func (v *Vec[T]) Position(pred func(T) bool) (o rop.Option[int]) {
	v.read(func() { o = rop.Position(v.items, pred) })
	return o
}

// Items returns a copy of the contents.
func (v *Vec[T]) Items() (out []T) {
	v.read(func() { out = slices.Clone(v.items) })
	return out
}

// Each calls fn for every item in order. fn must not touch v.
func (v *Vec[T]) Each(fn func(i int, item T)) {
	v.read(func() {
		for i, it := range v.items {
			fn(i, it)
		}
	})
}

func (v *Vec[T]) IsSorted(cmp func(a, b T) int) (sorted bool) {
	v.read(func() { sorted = slices.IsSortedFunc(v.items, cmp) })
	return sorted
}

// BinarySearch looks x up under cmp. The Vec must already be sorted by the
// same cmp; on unsorted input the result is unspecified.
func (v *Vec[T]) BinarySearch(x T, cmp func(a, b T) int) (o rop.Option[int]) {
	v.read(func() {
		i, found := slices.BinarySearchFunc(v.items, x, cmp)
		o = rop.FromOk(i, found)
	})
	return o
}

// Clone returns an independent owner of a copy of the contents.
func (v *Vec[T]) Clone() (c *Vec[T]) {
	v.read(func() { c = From(v.items...) })
	return c
}

func (v *Vec[T]) Push(items ...T) {
	v.write(func() { v.items = append(v.items, items...) })
}

// Insert places item at i, shifting the rest. i may equal Len.
func (v *Vec[T]) Insert(i int, item T) {
	v.write(func() {
		if i < 0 || i > len(v.items) {
			panic(outOfRange(i, len(v.items)))
		}
		v.items = slices.Insert(v.items, i, item)
	})
}

// Set replaces the item at i.
func (v *Vec[T]) Set(i int, item T) {
	v.write(func() {
		if i < 0 || i >= len(v.items) {
			panic(outOfRange(i, len(v.items)))
		}
		v.items[i] = item
	})
}

// Remove deletes and returns the item at i, Absent when out of range.
func (v *Vec[T]) Remove(i int) (o rop.Option[T]) {
	v.write(func() {
		o = rop.At(v.items, i)
		if o.IsPresent() {
			v.items = slices.Delete(v.items, i, i+1)
		}
	})
	return o
}

func (v *Vec[T]) Pop() (o rop.Option[T]) {
	v.write(func() {
		o = rop.Last(v.items)
		if o.IsPresent() {
			var zero T
			v.items[len(v.items)-1] = zero
			v.items = v.items[:len(v.items)-1]
		}
	})
	return o
}

func (v *Vec[T]) Swap(i, j int) {
	v.write(func() {
		n := len(v.items)
		if i < 0 || i >= n {
			panic(outOfRange(i, n))
		}
		if j < 0 || j >= n {
			panic(outOfRange(j, n))
		}
		v.items[i], v.items[j] = v.items[j], v.items[i]
	})
}

// Truncate keeps the first n items. n past Len is a no-op.
func (v *Vec[T]) Truncate(n int) {
	v.write(func() {
		if n < 0 {
			n = 0
		}
		if n < len(v.items) {
			clear(v.items[n:])
			v.items = v.items[:n]
		}
	})
}

func (v *Vec[T]) Clear() {
	v.Truncate(0)
}

func (v *Vec[T]) Retain(keep func(T) bool) {
	v.write(func() {
		v.items = slices.DeleteFunc(v.items, func(it T) bool { return !keep(it) })
	})
}

func (v *Vec[T]) Sort(cmp func(a, b T) int) {
	v.write(func() { slices.SortStableFunc(v.items, cmp) })
}

func (v *Vec[T]) Reverse() {
	v.write(func() { slices.Reverse(v.items) })
}

// Dedup removes consecutive duplicates under eq.
func (v *Vec[T]) Dedup(eq func(a, b T) bool) {
	v.write(func() { v.items = slices.CompactFunc(v.items, eq) })
}

// Append moves every item of other onto the end of v, leaving other empty
// but still owned. Both owners are checked before anything moves, so a
// panic leaves both unchanged. v is locked before other.
func (v *Vec[T]) Append(other *Vec[T]) {
	if other == v {
		panic(ErrBorrowed)
	}
	v.write(func() {
		other.write(func() {
			v.items = append(v.items, other.items...)
			other.items = nil
		})
	})
}

// Move transfers ownership to a new Vec. Any later use of v panics with
// ErrMoved, and every view of v becomes stale.
func (v *Vec[T]) Move() (to *Vec[T]) {
	v.write(func() {
		to = &Vec[T]{items: v.items}
		v.items = nil
		v.moved = true
	})
	return to
}

// IsMoved reports whether ownership has been moved out of v.
func (v *Vec[T]) IsMoved() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.moved
}
