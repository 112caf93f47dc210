package practice

import "math/rand/v2"

// Source is a uniform random source. *rand.Rand from math/rand/v2 satisfies it,
// which lets tests substitute a seeded generator.
type Source interface {
	IntN(n int) int
}

type globalSource struct{}

func (globalSource) IntN(n int) int { return rand.IntN(n) }

// DefaultSource draws from the goroutine-safe top-level math/rand/v2 generator.
func DefaultSource() Source { return globalSource{} }

// shuffle permutes items in place (Fisher–Yates).
func shuffle[T any](src Source, items []T) {
	for i := len(items) - 1; i > 0; i-- {
		j := src.IntN(i + 1)
		items[i], items[j] = items[j], items[i]
	}
}

// sample returns up to n distinct elements of items in random order without
// modifying items.
func sample[T any](src Source, items []T, n int) []T {
	if n > len(items) {
		n = len(items)
	}
	if n <= 0 {
		return []T{}
	}
	pool := make([]T, len(items))
	copy(pool, items)
	for i := 0; i < n; i++ {
		j := i + src.IntN(len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]
	}
	return pool[:n]
}

// pick returns one uniformly chosen element; items must be non-empty.
func pick[T any](src Source, items []T) T {
	return items[src.IntN(len(items))]
}
