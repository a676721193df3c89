// Package valueindex implements ValueIndex: given a sequence
// of values drawn from a sparse universe, find the first index at which
// each value occurs in O(log distinct-values) time.
package valueindex

import "sort"

// Getter extracts the indexed value from an input record.
type Getter[T any] func(T) uint64

// ValueIndex records, for each distinct value encountered while scanning
// input in order, the position of its first occurrence. It assumes input
// is sorted by value in ascending order (so every occurrence of a value
// forms one contiguous run and Find can binary-search the runs), which
// holds for the rank- and node-ordered sequences the construction
// pipeline builds this index over.
type ValueIndex[T any] struct {
	values   []uint64 // distinct values, in the order their first run began
	firstOcc []int    // firstOcc[i] is the input index where values[i]'s run starts
	length   int
}

// Build scans input once, recording a new entry every time get(input[i])
// differs from the previous element's value.
func Build[T any](input []T, get Getter[T]) *ValueIndex[T] {
	vi := &ValueIndex[T]{length: len(input)}
	var prev uint64
	seen := false
	for i, v := range input {
		cur := get(v)
		if !seen || cur != prev {
			vi.values = append(vi.values, cur)
			vi.firstOcc = append(vi.firstOcc, i)
			prev, seen = cur, true
		}
	}
	return vi
}

// Find returns the first index i with get(input[i]) == value, or the
// input length if value never occurs.
func (vi *ValueIndex[T]) Find(value uint64) int {
	i := sort.Search(len(vi.values), func(i int) bool { return vi.values[i] >= value })
	if i == len(vi.values) || vi.values[i] != value {
		return vi.length
	}
	return vi.firstOcc[i]
}
