package rop

// Lookup is a map read that returns Absent for a missing key.
func Lookup[K comparable, V any](m map[K]V, key K) Option[V] {
	v, ok := m[key]
	return FromOk(v, ok)
}

// At is bounds checked indexing.
func At[T any](items []T, i int) Option[T] {
	if i < 0 || i >= len(items) {
		return Option[T]{}
	}
	return Present(items[i])
}

func First[T any](items []T) Option[T] {
	return At(items, 0)
}

func Last[T any](items []T) Option[T] {
	return At(items, len(items)-1)
}

// Find returns the first element satisfying pred.
func Find[T any](items []T, pred func(T) bool) Option[T] {
	for _, it := range items {
		if pred(it) {
			return Present(it)
		}
	}
	return Option[T]{}
}

// Position returns the index of the first element satisfying pred.
func Position[T any](items []T, pred func(T) bool) Option[int] {
	for i, it := range items {
		if pred(it) {
			return Present(i)
		}
	}
	return Option[int]{}
}

// OrInsert returns the value stored under key, first storing v when the key
// is missing.
func OrInsert[K comparable, V any](m map[K]V, key K, v V) V {
	if cur, ok := m[key]; ok {
		return cur
	}
	m[key] = v
	return v
}

// OrInsertWith is OrInsert with a value built only when the key is missing.
func OrInsertWith[K comparable, V any](m map[K]V, key K, build func() V) V {
	if cur, ok := m[key]; ok {
		return cur
	}
	v := build()
	m[key] = v
	return v
}

// AndModify replaces the value under key with f of it. It returns the new
// value, or Absent when the key is missing.
func AndModify[K comparable, V any](m map[K]V, key K, f func(V) V) Option[V] {
	cur, ok := m[key]
	if !ok {
		return Option[V]{}
	}
	cur = f(cur)
	m[key] = cur
	return Present(cur)
}
