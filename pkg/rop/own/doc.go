// Package own provides Vec, a slice owner that enforces the single owner /
// shared readers XOR one writer discipline at run time.
//
// A Vec has one owner at a time. Move hands the contents to a new Vec and
// poisons the source. View grants shared read access to a range; any number
// of views may be live. BorrowMut grants exclusive write access and is
// refused while a view or another borrow is live. Mutating the owner
// directly invalidates every outstanding view, and reading a stale view
// panics with ErrStaleView.
//
// Panics are reserved for misuse (moved values, stale views, direct index
// out of range). Conditions a caller can react to come back as rop.Option
// or rop.Outcome.
package own
