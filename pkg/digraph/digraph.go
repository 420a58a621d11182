// Package digraph implements a labeled directed graph with the closure,
// reduction, and transpose primitives used by the poset and pattern layers.
//
// Vertices are integer identifiers carrying an optional string label.
// Each ordered vertex pair carries at most one edge label; adding a second
// edge between the same pair overwrites the label (last write wins).
//
// Graphs here are small (gene networks, extremum event lists), so the
// closure runs the O(V³) fixed point over vertex triples rather than
// anything sparse-aware.
package digraph

import (
	"errors"
	"maps"
	"slices"
)

var (
	// ErrAmbiguousLabel is returned by [Graph.VertexByLabel] when more than
	// one vertex carries the requested label. Label lookup is only defined
	// for unique labels.
	ErrAmbiguousLabel = errors.New("ambiguous vertex label")
)

// Edge is a directed labeled connection between two vertices.
type Edge struct {
	From  int
	To    int
	Label string
}

// Graph is a mutable labeled digraph. The zero value is not usable - use
// New. Graph is not safe for concurrent mutation.
//
// Invariant: every vertex appearing in the adjacency or label structures
// is a member of the vertex set. All mutation goes through AddVertex,
// AddEdge, and RemoveEdge, which preserve this.
type Graph struct {
	vertices     map[int]struct{}
	adjacency    map[int]map[int]struct{}
	vertexLabels map[int]string
	edgeLabels   map[int]map[int]string
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{
		vertices:     make(map[int]struct{}),
		adjacency:    make(map[int]map[int]struct{}),
		vertexLabels: make(map[int]string),
		edgeLabels:   make(map[int]map[int]string),
	}
}

// AddVertex adds vertex v with the given label. Re-adding an existing
// vertex is a no-op: the stored label is not updated.
func (g *Graph) AddVertex(v int, label string) {
	if _, ok := g.vertices[v]; ok {
		return
	}
	g.vertices[v] = struct{}{}
	g.adjacency[v] = make(map[int]struct{})
	g.vertexLabels[v] = label
	g.edgeLabels[v] = make(map[int]string)
}

// AddEdge adds the edge u -> v with the given label, implicitly adding
// either endpoint that is absent (with an empty vertex label). If the edge
// already exists its label is overwritten.
func (g *Graph) AddEdge(u, v int, label string) {
	g.AddVertex(u, "")
	g.AddVertex(v, "")
	g.adjacency[u][v] = struct{}{}
	g.edgeLabels[u][v] = label
}

// RemoveEdge removes the edge u -> v. Removing an absent edge is a no-op.
func (g *Graph) RemoveEdge(u, v int) {
	if adj, ok := g.adjacency[u]; ok {
		delete(adj, v)
	}
	if lbl, ok := g.edgeLabels[u]; ok {
		delete(lbl, v)
	}
}

// HasVertex reports whether v is a member of the vertex set.
func (g *Graph) HasVertex(v int) bool {
	_, ok := g.vertices[v]
	return ok
}

// HasEdge reports whether the edge u -> v exists.
func (g *Graph) HasEdge(u, v int) bool {
	adj, ok := g.adjacency[u]
	if !ok {
		return false
	}
	_, ok = adj[v]
	return ok
}

// VertexLabel returns the label on vertex v, or "" if v is absent.
func (g *Graph) VertexLabel(v int) string { return g.vertexLabels[v] }

// VertexByLabel returns the unique vertex carrying the given label.
// The second return is false when no vertex has the label. When two or
// more vertices share it, ErrAmbiguousLabel is returned.
func (g *Graph) VertexByLabel(label string) (int, bool, error) {
	found := 0
	count := 0
	for v := range g.vertices {
		if g.vertexLabels[v] == label {
			found = v
			count++
		}
	}
	switch {
	case count == 0:
		return 0, false, nil
	case count > 1:
		return 0, false, ErrAmbiguousLabel
	}
	return found, true, nil
}

// EdgeLabel returns the label on the edge u -> v. The second return is
// false when the edge does not exist.
func (g *Graph) EdgeLabel(u, v int) (string, bool) {
	if !g.HasEdge(u, v) {
		return "", false
	}
	return g.edgeLabels[u][v], true
}

// VertexCount returns the number of vertices.
func (g *Graph) VertexCount() int { return len(g.vertices) }

// EdgeCount returns the number of edges.
func (g *Graph) EdgeCount() int {
	n := 0
	for _, adj := range g.adjacency {
		n += len(adj)
	}
	return n
}

// Vertices returns all vertex ids in ascending order.
func (g *Graph) Vertices() []int {
	return slices.Sorted(maps.Keys(g.vertices))
}

// Edges returns all edges ordered by (From, To). Labels are included.
func (g *Graph) Edges() []Edge {
	edges := make([]Edge, 0, g.EdgeCount())
	for _, u := range g.Vertices() {
		for _, v := range g.Successors(u) {
			edges = append(edges, Edge{From: u, To: v, Label: g.edgeLabels[u][v]})
		}
	}
	return edges
}

// Successors returns the targets of all edges leaving v, in ascending
// order. Returns an empty slice when v is absent.
func (g *Graph) Successors(v int) []int {
	return slices.Sorted(maps.Keys(g.adjacency[v]))
}

// Clone returns a deep, independent copy of the graph. Later mutation of
// either graph does not affect the other.
func (g *Graph) Clone() *Graph {
	c := New()
	for v := range g.vertices {
		c.AddVertex(v, g.vertexLabels[v])
	}
	for u, adj := range g.adjacency {
		for v := range adj {
			c.AddEdge(u, v, g.edgeLabels[u][v])
		}
	}
	return c
}

// Transpose returns a new graph with every edge reversed. Vertex and edge
// labels are preserved.
func (g *Graph) Transpose() *Graph {
	t := New()
	for v := range g.vertices {
		t.AddVertex(v, g.vertexLabels[v])
	}
	for u, adj := range g.adjacency {
		for v := range adj {
			t.AddEdge(v, u, g.edgeLabels[u][v])
		}
	}
	return t
}

// TransitiveClosure returns a new graph containing the edge (u, w)
// whenever a directed path u -> ... -> w of length >= 1 exists in the
// receiver. Implied edges carry an empty label; labels on pre-existing
// edges are preserved.
//
// The fixed point runs over all vertex triples with the intermediate
// vertex outermost, so a single pass suffices (Warshall ordering).
//
// On cyclic input the result is degenerate: the cycle's vertices become a
// fully connected block including self-loop-like shortcuts. This mirrors
// the behavior inherited from the reference implementation and is not a
// guarantee.
func (g *Graph) TransitiveClosure() *Graph {
	c := g.Clone()
	order := g.Vertices()
	for _, w := range order {
		for _, u := range order {
			if !c.HasEdge(u, w) {
				continue
			}
			for _, v := range order {
				if c.HasEdge(w, v) && !c.HasEdge(u, v) {
					c.AddEdge(u, v, "")
				}
			}
		}
	}
	return c
}

// TransitiveReduction returns the minimal graph with the same transitive
// closure as the receiver, assuming the receiver is acyclic. It computes
// the closure first, then removes from a working copy every shortcut edge
// (u, w) implied by some edge (u, v) of the closure with w a successor of
// v and w != v.
//
// Like TransitiveClosure, the result on cyclic input is degenerate rather
// than an error.
func (g *Graph) TransitiveReduction() *Graph {
	tc := g.TransitiveClosure()
	r := g.Clone()
	for _, e := range tc.Edges() {
		for _, w := range tc.Successors(e.To) {
			if w != e.To {
				r.RemoveEdge(e.From, w)
			}
		}
	}
	return r
}
