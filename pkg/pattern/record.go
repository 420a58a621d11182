package pattern

import (
	"encoding/json"

	"github.com/dynsig/dynsig/pkg/digraph"
	apperr "github.com/dynsig/dynsig/pkg/errors"
)

// Record is the structured pattern handed to the external matcher. Poset
// holds the Hasse diagram as adjacency lists over dense vertex positions,
// Events maps each position to the index of its variable in the ordered
// name list, Label is the bit-encoded final-state descriptor, and
// Dimension is the number of variables.
//
// For a dimension D, bit i of Label marks variable i as decreasing in the
// final state and bit i+D marks it as increasing. The downstream
// bit-encoding of matched states is owned by the matcher; this record
// only carries enough structure to construct it.
type Record struct {
	Poset     [][]int `json:"poset" bson:"poset"`
	Events    []int   `json:"events" bson:"events"`
	Label     uint64  `json:"label" bson:"label"`
	Dimension int     `json:"dimension" bson:"dimension"`
}

// NewRecord assembles a Record from a Hasse diagram whose vertex labels
// are variable names, resolved against the ordered name list. Vertices
// are renumbered to dense positions in ascending id order so adjacency
// lists index into Events directly.
//
// Returns an UNKNOWN_NODE error when a vertex label does not appear in
// names.
func NewRecord(hasse *digraph.Graph, names []string, label uint64) (Record, error) {
	nameIndex := make(map[string]int, len(names))
	for i, n := range names {
		nameIndex[n] = i
	}

	vertices := hasse.Vertices()
	position := make(map[int]int, len(vertices))
	for pos, v := range vertices {
		position[v] = pos
	}

	rec := Record{
		Poset:     make([][]int, len(vertices)),
		Events:    make([]int, len(vertices)),
		Label:     label,
		Dimension: len(names),
	}
	for pos, v := range vertices {
		adj := []int{}
		for _, w := range hasse.Successors(v) {
			adj = append(adj, position[w])
		}
		rec.Poset[pos] = adj

		name := hasse.VertexLabel(v)
		idx, ok := nameIndex[name]
		if !ok {
			return Record{}, apperr.New(apperr.ErrCodeUnknownNode, "event label %q not in variable names", name)
		}
		rec.Events[pos] = idx
	}
	return rec, nil
}

// Marshal renders the record as indented JSON.
func (r Record) Marshal() ([]byte, error) {
	return json.MarshalIndent(r, "", "  ")
}

// FinalState encodes a final-state descriptor for dim variables: each
// index in decreasing sets bit i, each index in increasing sets bit
// i+dim.
func FinalState(dim int, decreasing, increasing []int) uint64 {
	var label uint64
	for _, i := range decreasing {
		label |= 1 << uint(i)
	}
	for _, i := range increasing {
		label |= 1 << uint(i+dim)
	}
	return label
}
