package graphio

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/dynsig/dynsig/pkg/digraph"
)

// MarshalGraph converts a digraph to JSON bytes. Nodes and edges are
// sorted by id for deterministic output.
func MarshalGraph(g *digraph.Graph, essential []bool) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeGraphTo(g, essential, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UnmarshalGraph deserializes JSON bytes to a Graph.
func UnmarshalGraph(data []byte) (Graph, error) {
	var g Graph
	if err := json.Unmarshal(data, &g); err != nil {
		return Graph{}, err
	}
	return g, nil
}

// WriteGraph writes a digraph as JSON to an io.Writer.
func WriteGraph(g *digraph.Graph, essential []bool, w io.Writer) error {
	return writeGraphTo(g, essential, w)
}

// WriteGraphFile writes a digraph to a JSON file with 0644 permissions.
func WriteGraphFile(g *digraph.Graph, essential []bool, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return writeGraphTo(g, essential, f)
}

// ReadGraph decodes a JSON graph from an io.Reader.
func ReadGraph(r io.Reader) (*digraph.Graph, []bool, error) {
	var data Graph
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, nil, fmt.Errorf("decode: %w", err)
	}
	g, essential := data.ToDigraph()
	return g, essential, nil
}

// ReadGraphFile reads a JSON file and returns the decoded digraph and
// essential flags.
func ReadGraphFile(path string) (*digraph.Graph, []bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadGraph(f)
}

func writeGraphTo(g *digraph.Graph, essential []bool, w io.Writer) error {
	out := FromDigraph(g, essential)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}
