package netspec

import (
	"strings"
	"testing"

	"github.com/dynsig/dynsig/pkg/digraph"
	apperr "github.com/dynsig/dynsig/pkg/errors"
)

const sampleSpec = "X : (A + B)(~C) : E\nA : : \nB : :\nC : :\n"

func TestDecode(t *testing.T) {
	n, err := Decode(sampleSpec)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	// Declaration order fixes vertex ids: X=0, A=1, B=2, C=3.
	wantNames := []string{"X", "A", "B", "C"}
	for i, name := range wantNames {
		if got := n.Graph.VertexLabel(i); got != name {
			t.Errorf("VertexLabel(%d) = %q, want %q", i, got, name)
		}
	}

	tests := []struct {
		from, to int
		label    string
	}{
		{1, 0, LabelActivation}, // A -> X
		{2, 0, LabelActivation}, // B -> X
		{3, 0, LabelRepression}, // C -> X
	}
	for _, tt := range tests {
		if lbl, ok := n.Graph.EdgeLabel(tt.from, tt.to); !ok || lbl != tt.label {
			t.Errorf("edge %d->%d = %q,%v, want %q,true", tt.from, tt.to, lbl, ok, tt.label)
		}
	}
	if got := n.Graph.EdgeCount(); got != 3 {
		t.Errorf("EdgeCount() = %d, want 3", got)
	}

	if !n.Essential[0] || n.Essential[1] || n.Essential[2] || n.Essential[3] {
		t.Errorf("Essential = %v, want only X", n.Essential)
	}
}

func TestDecodeForwardReference(t *testing.T) {
	// X references A before A is declared.
	n, err := Decode("X : (A)\nA : :\n")
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if lbl, ok := n.Graph.EdgeLabel(1, 0); !ok || lbl != LabelActivation {
		t.Errorf("forward reference edge = %q,%v", lbl, ok)
	}
}

func TestDecodeErrors(t *testing.T) {
	if _, err := Decode(""); !apperr.Is(err, apperr.ErrCodeEmptyInput) {
		t.Errorf("Decode(empty) error = %v, want EMPTY_INPUT", err)
	}
	if _, err := Decode("\n \n"); !apperr.Is(err, apperr.ErrCodeEmptyInput) {
		t.Errorf("Decode(blank lines) error = %v, want EMPTY_INPUT", err)
	}

	if _, err := Decode("X : (~Y)\n"); !apperr.Is(err, apperr.ErrCodeUnknownNode) {
		t.Errorf("Decode(undeclared ref) error = %v, want UNKNOWN_NODE", err)
	}

	_, err := Decode("JUSTANAME\n")
	if !apperr.Is(err, apperr.ErrCodeMalformedSpec) {
		t.Errorf("Decode(no separator) error = %v, want MALFORMED_SPEC", err)
	}
	if err != nil && !strings.Contains(err.Error(), "JUSTANAME") {
		t.Errorf("malformed error %q does not carry the offending line", err)
	}
}

func TestEncode(t *testing.T) {
	n, err := Decode(sampleSpec)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	text, err := Encode(n)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	lines := strings.Split(strings.TrimRight(text, "\n"), "\n")
	if got := lines[0]; got != "X : (A + B)(~C) : E" {
		t.Errorf("encoded X line = %q, want %q", got, "X : (A + B)(~C) : E")
	}
	if len(lines) != 4 {
		t.Fatalf("encoded %d lines, want 4", len(lines))
	}
}

// decode -> encode -> decode must reproduce the same network: vertices by
// label, edges, regulation labels, essential flags.
func TestRoundTrip(t *testing.T) {
	first, err := Decode(sampleSpec)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	text, err := Encode(first)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	second, err := Decode(text)
	if err != nil {
		t.Fatalf("Decode(encoded) error = %v", err)
	}

	if got, want := second.Names(), first.Names(); strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("names = %v, want %v", got, want)
	}
	firstEdges := first.Graph.Edges()
	secondEdges := second.Graph.Edges()
	if len(firstEdges) != len(secondEdges) {
		t.Fatalf("edge count = %d, want %d", len(secondEdges), len(firstEdges))
	}
	for i, e := range firstEdges {
		if secondEdges[i] != e {
			t.Errorf("edge %d = %+v, want %+v", i, secondEdges[i], e)
		}
	}
	for i := range first.Essential {
		if first.Essential[i] != second.Essential[i] {
			t.Errorf("essential[%d] = %v, want %v", i, second.Essential[i], first.Essential[i])
		}
	}
}

func TestEncodeRejectsBadNames(t *testing.T) {
	g := digraph.New()
	g.AddVertex(0, "A(")
	n := &Network{Graph: g, Essential: []bool{false}}

	if _, err := Encode(n); !apperr.Is(err, apperr.ErrCodeInvalidInput) {
		t.Errorf("Encode(bad name) error = %v, want INVALID_INPUT", err)
	}
}

func TestEncodeRejectsBadEdgeLabel(t *testing.T) {
	g := digraph.New()
	g.AddVertex(0, "A")
	g.AddVertex(1, "B")
	g.AddEdge(0, 1, "x")
	n := &Network{Graph: g, Essential: []bool{false, false}}

	if _, err := Encode(n); !apperr.Is(err, apperr.ErrCodeInvalidInput) {
		t.Errorf("Encode(bad edge label) error = %v, want INVALID_INPUT", err)
	}
}
