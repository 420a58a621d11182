package events

import (
	"encoding/json"
	"slices"
	"testing"

	apperr "github.com/dynsig/dynsig/pkg/errors"
)

func TestBuildPrecedence(t *testing.T) {
	evts := []Event{
		{Label: "A", Start: 0, End: 1},
		{Label: "B", Start: 1, End: 2},
		{Label: "C", Start: 3, End: 4},
	}

	g, err := Build(evts)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	// Comparison is pairwise and non-strict: touching intervals count and
	// the transitive A->C is present directly.
	for _, e := range [][2]int{{0, 1}, {1, 2}, {0, 2}} {
		if !g.HasEdge(e[0], e[1]) {
			t.Errorf("missing edge %d->%d", e[0], e[1])
		}
	}
	if got := g.EdgeCount(); got != 3 {
		t.Errorf("EdgeCount() = %d, want 3", got)
	}
	if got := g.VertexLabel(2); got != "C" {
		t.Errorf("VertexLabel(2) = %q, want C", got)
	}
}

func TestBuildNoEdgeWhenUnordered(t *testing.T) {
	evts := []Event{
		{Label: "A", Start: 0, End: 2},
		{Label: "B", Start: 1, End: 3}, // overlaps A
	}

	g, err := Build(evts)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if g.EdgeCount() != 0 {
		t.Errorf("EdgeCount() = %d, want 0 for overlapping intervals", g.EdgeCount())
	}
}

func TestBuildErrors(t *testing.T) {
	if _, err := Build(nil); !apperr.Is(err, apperr.ErrCodeEmptyInput) {
		t.Errorf("Build(nil) error = %v, want EMPTY_INPUT", err)
	}

	bad := []Event{{Label: "A", Start: 2, End: 1}}
	if _, err := Build(bad); !apperr.Is(err, apperr.ErrCodeInvalidInterval) {
		t.Errorf("Build(inverted) error = %v, want INVALID_INTERVAL", err)
	}
}

func TestEventJSONRoundTrip(t *testing.T) {
	raw := `[["FKH1", [10.0, 20.0]], ["SPT2", [10.0, 90.0]]]`

	var evts []Event
	if err := json.Unmarshal([]byte(raw), &evts); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if len(evts) != 2 || evts[0].Label != "FKH1" || evts[1].End != 90 {
		t.Fatalf("decoded = %+v", evts)
	}

	data, err := json.Marshal(evts)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	var again []Event
	if err := json.Unmarshal(data, &again); err != nil {
		t.Fatalf("re-Unmarshal() error = %v", err)
	}
	if !slices.Equal(evts, again) {
		t.Errorf("round trip mismatch: %+v vs %+v", evts, again)
	}
}

func TestEventJSONMalformed(t *testing.T) {
	var e Event
	if err := json.Unmarshal([]byte(`["A"]`), &e); !apperr.Is(err, apperr.ErrCodeInvalidInput) {
		t.Errorf("Unmarshal short pair error = %v, want INVALID_INPUT", err)
	}
	if err := json.Unmarshal([]byte(`["A", "oops"]`), &e); !apperr.Is(err, apperr.ErrCodeInvalidInput) {
		t.Errorf("Unmarshal bad interval error = %v, want INVALID_INPUT", err)
	}
}

func TestLabels(t *testing.T) {
	evts := []Event{
		{Label: "B"}, {Label: "A"}, {Label: "B"}, {Label: "C"},
	}
	if got := Labels(evts); !slices.Equal(got, []string{"B", "A", "C"}) {
		t.Errorf("Labels() = %v, want [B A C]", got)
	}
}
