package order

import (
	"slices"
	"strconv"
	"strings"
)

// Antichain is a canonical, immutable set of pairwise-incomparable poset
// elements. Elements are stored sorted and deduplicated, so two antichains
// with the same members compare equal and produce the same Key. This
// identity is load-bearing for the pattern builder's deduplication and
// termination argument - never use a mutable collection in its place.
//
// The zero value is the empty antichain.
type Antichain struct {
	elems []int
}

// NewAntichain builds the canonical antichain over the given elements.
// Duplicates are dropped; order is irrelevant.
func NewAntichain(elems ...int) Antichain {
	sorted := slices.Clone(elems)
	slices.Sort(sorted)
	return Antichain{elems: slices.Compact(sorted)}
}

// Elements returns the members in ascending order. The returned slice is
// a copy; mutation does not affect the antichain.
func (a Antichain) Elements() []int { return slices.Clone(a.elems) }

// Len returns the number of members.
func (a Antichain) Len() int { return len(a.elems) }

// Contains reports whether v is a member.
func (a Antichain) Contains(v int) bool {
	_, ok := slices.BinarySearch(a.elems, v)
	return ok
}

// Equal reports structural equality of the two antichains.
func (a Antichain) Equal(b Antichain) bool { return slices.Equal(a.elems, b.elems) }

// Key returns a canonical string suitable for use as a map key. Equal
// antichains produce identical keys.
func (a Antichain) Key() string {
	parts := make([]string, len(a.elems))
	for i, v := range a.elems {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ",")
}

// String renders the antichain as a set, e.g. "{1,3,7}".
func (a Antichain) String() string { return "{" + a.Key() + "}" }
