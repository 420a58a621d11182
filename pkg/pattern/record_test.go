package pattern

import (
	"encoding/json"
	"slices"
	"testing"

	"github.com/dynsig/dynsig/pkg/digraph"
	apperr "github.com/dynsig/dynsig/pkg/errors"
)

func TestNewRecord(t *testing.T) {
	// Hasse diagram over three extremum events of two genes.
	g := digraph.New()
	g.AddVertex(0, "SWI4")
	g.AddVertex(1, "HCM1")
	g.AddVertex(2, "SWI4")
	g.AddEdge(0, 1, "")
	g.AddEdge(1, 2, "")

	names := []string{"SWI4", "HCM1"}
	label := FinalState(2, []int{0}, []int{1})

	rec, err := NewRecord(g, names, label)
	if err != nil {
		t.Fatalf("NewRecord() error = %v", err)
	}

	if rec.Dimension != 2 {
		t.Errorf("Dimension = %d, want 2", rec.Dimension)
	}
	if want := []int{0, 1, 0}; !slices.Equal(rec.Events, want) {
		t.Errorf("Events = %v, want %v", rec.Events, want)
	}
	if !slices.Equal(rec.Poset[0], []int{1}) || !slices.Equal(rec.Poset[1], []int{2}) || len(rec.Poset[2]) != 0 {
		t.Errorf("Poset = %v, want [[1] [2] []]", rec.Poset)
	}
	if rec.Label != 0b101 {
		t.Errorf("Label = %b, want 101", rec.Label)
	}
}

func TestNewRecordUnknownName(t *testing.T) {
	g := digraph.New()
	g.AddVertex(0, "NDD1")

	_, err := NewRecord(g, []string{"SWI4"}, 0)
	if !apperr.Is(err, apperr.ErrCodeUnknownNode) {
		t.Errorf("NewRecord() error = %v, want UNKNOWN_NODE", err)
	}
}

func TestRecordMarshal(t *testing.T) {
	g := digraph.New()
	g.AddVertex(0, "A")
	rec, err := NewRecord(g, []string{"A"}, 1)
	if err != nil {
		t.Fatalf("NewRecord() error = %v", err)
	}

	data, err := rec.Marshal()
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	var decoded Record
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if decoded.Dimension != 1 || decoded.Label != 1 {
		t.Errorf("round trip = %+v", decoded)
	}
}

func TestFinalState(t *testing.T) {
	// Seven variables, 0,1,2,3,5 decreasing and 4,6 increasing: the 7D
	// example descriptor from the time-series workflow.
	got := FinalState(7, []int{0, 1, 2, 3, 5}, []int{4, 6})
	if want := uint64(0b10100000101111); got != want {
		t.Errorf("FinalState = %b, want %b", got, want)
	}
}
