// Package pattern expands a poset into its pattern graph: the Hasse
// diagram of the poset of down-sets, realized as an automaton over
// reachable antichains.
//
// Starting from the antichain of globally maximal elements, each step
// replaces one element of the current antichain by its parents and
// re-maximizes. Every antichain reachable this way becomes a vertex; the
// edge into it records which element was consumed on that transition. The
// result is acyclic with the top antichain as unique source and the empty
// antichain as sink.
package pattern

import (
	"strconv"

	"github.com/dynsig/dynsig/pkg/digraph"
	"github.com/dynsig/dynsig/pkg/order"
)

// Graph is a pattern graph: a labeled digraph whose vertices stand for
// antichains of the source poset. Vertex ids are dense indices in
// discovery order; edge labels are the decimal id of the poset element
// consumed on the transition.
//
// Construct with [Build]; a Graph is immutable afterwards.
type Graph struct {
	digraph *digraph.Graph
	chains  []order.Antichain
	root    int
}

// Build enumerates every antichain of p reachable from the top antichain
// by single-element substitution.
//
// The traversal uses an explicit work stack rather than recursion so call
// depth stays bounded on large posets. Each candidate antichain is
// deduplicated by its canonical key, so every distinct reachable antichain
// is popped exactly once and the procedure terminates: the reachable set
// is a subset of the finitely many antichains of a finite poset.
func Build(p *order.Poset) *Graph {
	g := &Graph{digraph: digraph.New()}
	index := make(map[string]int)

	intern := func(a order.Antichain) (id int, seen bool) {
		if id, ok := index[a.Key()]; ok {
			return id, true
		}
		id = len(g.chains)
		index[a.Key()] = id
		g.chains = append(g.chains, a)
		g.digraph.AddVertex(id, a.String())
		return id, false
	}

	top := p.Maximal(p.Vertices())
	g.root, _ = intern(top)

	stack := []order.Antichain{top}
	for len(stack) > 0 {
		clique := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		cliqueID, _ := intern(clique)

		for _, v := range clique.Elements() {
			// Promote v to its parents and re-maximize.
			candidate := make([]int, 0, clique.Len()+2)
			for _, u := range clique.Elements() {
				if u != v {
					candidate = append(candidate, u)
				}
			}
			candidate = append(candidate, p.Parents(v)...)

			parent := p.Maximal(candidate)
			parentID, seen := intern(parent)
			g.digraph.AddEdge(parentID, cliqueID, strconv.Itoa(v))
			if !seen {
				stack = append(stack, parent)
			}
		}
	}
	return g
}

// Digraph returns the underlying labeled digraph. Callers must treat it
// as read-only; clone before mutating.
func (g *Graph) Digraph() *digraph.Graph { return g.digraph }

// Root returns the vertex id of the top antichain, the unique source of
// the pattern graph.
func (g *Graph) Root() int { return g.root }

// Size returns the number of distinct antichains in the graph.
func (g *Graph) Size() int { return len(g.chains) }

// Antichain returns the antichain behind vertex id. The second return is
// false for out-of-range ids.
func (g *Graph) Antichain(id int) (order.Antichain, bool) {
	if id < 0 || id >= len(g.chains) {
		return order.Antichain{}, false
	}
	return g.chains[id], true
}

// Antichains returns all antichains indexed by vertex id, in discovery
// order. The slice is a copy.
func (g *Graph) Antichains() []order.Antichain {
	out := make([]order.Antichain, len(g.chains))
	copy(out, g.chains)
	return out
}
