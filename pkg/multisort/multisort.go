// Package multisort sorts parallel arrays by a shared key column. The
// sort is stable, so rows with equal keys keep their input order. Used by
// the network spec encoder to emit nodes in declaration order and by
// table parsers that carry several columns per row.
package multisort

import (
	"cmp"
	"sort"
)

// Permutation returns the stable ascending sort order of keys as a slice
// of source indices: result[i] is the index in keys of the i-th smallest
// key. Pass the result to [Apply] to reorder any parallel column.
func Permutation[K cmp.Ordered](keys []K) []int {
	perm := make([]int, len(keys))
	for i := range perm {
		perm[i] = i
	}
	sort.SliceStable(perm, func(a, b int) bool {
		return keys[perm[a]] < keys[perm[b]]
	})
	return perm
}

// PermutationDesc is [Permutation] with descending key order. Stability
// is preserved: equal keys keep their input order.
func PermutationDesc[K cmp.Ordered](keys []K) []int {
	perm := make([]int, len(keys))
	for i := range perm {
		perm[i] = i
	}
	sort.SliceStable(perm, func(a, b int) bool {
		return keys[perm[b]] < keys[perm[a]]
	})
	return perm
}

// Apply reorders col by the given permutation, returning a new slice with
// result[i] = col[perm[i]]. Panics if the lengths differ.
func Apply[T any](perm []int, col []T) []T {
	if len(perm) != len(col) {
		panic("multisort: permutation and column length mismatch")
	}
	out := make([]T, len(col))
	for i, src := range perm {
		out[i] = col[src]
	}
	return out
}

// Sort sorts keys ascending and reorders col by the same permutation.
// Both results are new slices; the inputs are untouched.
func Sort[K cmp.Ordered, T any](keys []K, col []T) ([]K, []T) {
	perm := Permutation(keys)
	return Apply(perm, keys), Apply(perm, col)
}
