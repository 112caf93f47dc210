package practice

import "github.com/samber/lo"

// Partition splits items into consecutive groups of size; the last group may
// be shorter.
func Partition[T any](items []T, size int) ([][]T, error) {
	if size < 1 {
		return nil, &ValidationError{Field: "groupSize", Message: "must be at least 1"}
	}
	if len(items) == 0 {
		return [][]T{}, nil
	}
	return lo.Chunk(items, size), nil
}

// SelectGroup returns the 1-indexed group n.
func SelectGroup[T any](groups [][]T, n int) ([]T, error) {
	if n < 1 || n > len(groups) {
		return nil, &OutOfRangeError{GroupNumber: n, GroupCount: len(groups)}
	}
	return groups[n-1], nil
}
