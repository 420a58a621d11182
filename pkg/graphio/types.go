// Package graphio provides the canonical serialization format for
// labeled digraphs.
//
// This is the wire format used for JSON files, HTTP responses, and cache
// entries. It is human-readable and designed for round-trip fidelity:
// decode → transform → encode → re-decode produces identical results.
//
//	{
//	  "nodes": [{"id": 0, "label": "X", "essential": true}],
//	  "edges": [{"from": 1, "to": 0, "label": "a"}]
//	}
package graphio

import (
	"github.com/dynsig/dynsig/pkg/digraph"
)

// Node is the serialized form of a graph vertex. Essential carries the
// per-node flag from network specs; it is false for graphs that have no
// essential notion (precedence graphs, pattern graphs).
type Node struct {
	ID        int    `json:"id" bson:"id"`
	Label     string `json:"label,omitempty" bson:"label,omitempty"`
	Essential bool   `json:"essential,omitempty" bson:"essential,omitempty"`
}

// Edge is the serialized form of a directed labeled edge.
type Edge struct {
	From  int    `json:"from" bson:"from"`
	To    int    `json:"to" bson:"to"`
	Label string `json:"label,omitempty" bson:"label,omitempty"`
}

// Graph is the canonical serialization of a labeled digraph. Nodes and
// edges are ordered by id for deterministic output, which keeps content
// hashes stable across encodes.
type Graph struct {
	Nodes []Node `json:"nodes" bson:"nodes"`
	Edges []Edge `json:"edges" bson:"edges"`
}

// FromDigraph converts a digraph (and optional essential flags indexed by
// vertex id) to its serialization format. A nil essential slice marks
// every node non-essential.
func FromDigraph(g *digraph.Graph, essential []bool) Graph {
	ids := g.Vertices()
	out := Graph{
		Nodes: make([]Node, len(ids)),
		Edges: make([]Edge, 0, g.EdgeCount()),
	}
	for i, v := range ids {
		out.Nodes[i] = Node{
			ID:        v,
			Label:     g.VertexLabel(v),
			Essential: v >= 0 && v < len(essential) && essential[v],
		}
	}
	for _, e := range g.Edges() {
		out.Edges = append(out.Edges, Edge{From: e.From, To: e.To, Label: e.Label})
	}
	return out
}

// ToDigraph converts the serialized form back to a digraph plus essential
// flags. The flags slice is indexed by vertex id and sized to the largest
// id; it is nil when the graph has no nodes.
func (g Graph) ToDigraph() (*digraph.Graph, []bool) {
	d := digraph.New()
	maxID := -1
	for _, n := range g.Nodes {
		d.AddVertex(n.ID, n.Label)
		if n.ID > maxID {
			maxID = n.ID
		}
	}
	var essential []bool
	if maxID >= 0 {
		essential = make([]bool, maxID+1)
		for _, n := range g.Nodes {
			if n.Essential {
				essential[n.ID] = true
			}
		}
	}
	for _, e := range g.Edges {
		d.AddEdge(e.From, e.To, e.Label)
	}
	return d, essential
}
