// Package order derives a strict partial order from an acyclic labeled
// digraph: x < y iff a directed path runs from x to y.
//
// A [Poset] is an immutable snapshot taken at construction time. It holds
// four derived graphs - descendants (transitive closure), ancestors (its
// transpose), children (transitive reduction), and parents (its
// transpose) - so later mutation of the source graph never affects an
// already-constructed poset.
package order

import (
	"errors"

	"github.com/dynsig/dynsig/pkg/digraph"
)

// ErrCyclicGraph is returned by [New] when the input digraph contains a
// directed cycle. A cyclic graph induces no strict partial order; the
// closure/reduction primitives would silently produce a degenerate
// relation, so the cycle is rejected up front.
var ErrCyclicGraph = errors.New("input digraph contains a cycle")

// Poset is a strict partial order over integer elements. Construct with
// [New]; the zero value is not usable. A Poset is immutable and safe for
// concurrent reads.
type Poset struct {
	vertices    []int
	descendants *digraph.Graph
	ancestors   *digraph.Graph
	children    *digraph.Graph
	parents     *digraph.Graph
}

// New derives a poset from g, where u < v iff a directed path u -> ... -> v
// exists. The input is checked for acyclicity and ErrCyclicGraph is
// returned if a cycle is found. The poset takes independent derived
// copies; g may be mutated freely afterwards.
func New(g *digraph.Graph) (*Poset, error) {
	if err := detectCycles(g); err != nil {
		return nil, err
	}
	descendants := g.TransitiveClosure()
	children := g.TransitiveReduction()
	return &Poset{
		vertices:    g.Vertices(),
		descendants: descendants,
		ancestors:   descendants.Transpose(),
		children:    children,
		parents:     children.Transpose(),
	}, nil
}

// detectCycles runs a three-color depth-first search over g and reports
// ErrCyclicGraph on the first back edge.
func detectCycles(g *digraph.Graph) error {
	const (
		white = iota
		gray
		black
	)

	color := make(map[int]int, g.VertexCount())
	var hasCycle bool

	var dfs func(v int)
	dfs = func(v int) {
		color[v] = gray
		for _, w := range g.Successors(v) {
			switch color[w] {
			case white:
				dfs(w)
			case gray:
				hasCycle = true
				return
			}
		}
		color[v] = black
	}

	for _, v := range g.Vertices() {
		if color[v] == white {
			dfs(v)
			if hasCycle {
				return ErrCyclicGraph
			}
		}
	}
	return nil
}

// Vertices returns all poset elements in ascending order.
func (p *Poset) Vertices() []int { return p.vertices }

// Parents returns the immediate predecessors of v (covering elements
// below v in the Hasse diagram).
func (p *Poset) Parents(v int) []int { return p.parents.Successors(v) }

// Children returns the immediate successors of v.
func (p *Poset) Children(v int) []int { return p.children.Successors(v) }

// Ancestors returns { u : u < v }.
func (p *Poset) Ancestors(v int) []int { return p.ancestors.Successors(v) }

// Descendants returns { u : v < u }.
func (p *Poset) Descendants(v int) []int { return p.descendants.Successors(v) }

// Less reports whether u < v, i.e. u is an ancestor of v.
func (p *Poset) Less(u, v int) bool { return p.ancestors.HasEdge(v, u) }

// Maximal returns the canonical antichain of elements of subset that are
// not below any other element of subset. Runs in O(k²) over the queried
// subset using the precomputed ancestor relation.
func (p *Poset) Maximal(subset []int) Antichain {
	var max []int
	for _, u := range subset {
		dominated := false
		for _, v := range subset {
			if p.Less(u, v) {
				dominated = true
				break
			}
		}
		if !dominated {
			max = append(max, u)
		}
	}
	return NewAntichain(max...)
}

// Hasse returns an independent copy of the poset's covering relation
// (the transitive reduction of the source graph), with labels intact.
func (p *Poset) Hasse() *digraph.Graph { return p.children.Clone() }
