// Package events builds a precedence digraph from time-stamped extremum
// events. Each event is a labeled closed interval; event i precedes event
// j when i's interval ends no later than j's begins. This is a precedence
// relation, not an interval-intersection graph: overlapping or unordered
// disjoint intervals get no edge in either direction.
package events

import (
	"encoding/json"

	"github.com/dynsig/dynsig/pkg/digraph"
	apperr "github.com/dynsig/dynsig/pkg/errors"
)

// Event is a labeled closed interval [Start, End], Start <= End.
// Labels name the observed variable (gene); intervals bound where an
// extremum occurred.
type Event struct {
	Label string
	Start float64
	End   float64
}

// MarshalJSON renders the event in the compact list form
// ["LABEL", [start, end]] used by the time-series tooling.
func (e Event) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{e.Label, [2]float64{e.Start, e.End}})
}

// UnmarshalJSON accepts the compact list form ["LABEL", [start, end]].
func (e *Event) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if len(raw) != 2 {
		return apperr.New(apperr.ErrCodeInvalidInput, "event must be a [label, interval] pair, got %d elements", len(raw))
	}
	if err := json.Unmarshal(raw[0], &e.Label); err != nil {
		return apperr.Wrap(apperr.ErrCodeInvalidInput, err, "event label")
	}
	var interval [2]float64
	if err := json.Unmarshal(raw[1], &interval); err != nil {
		return apperr.Wrap(apperr.ErrCodeInvalidInput, err, "event interval")
	}
	e.Start, e.End = interval[0], interval[1]
	return nil
}

// Build constructs the precedence digraph over the given events. Vertex
// ids are event indices in input order; vertex labels are event labels.
// An edge i -> j is added whenever End(i) <= Start(j) and i != j - the
// comparison is non-strict, so touching intervals count, and pairwise, so
// transitively implied edges are present too (no reduction is computed
// here).
//
// Returns EMPTY_INPUT for an empty event list and INVALID_INTERVAL for
// any event with Start > End.
func Build(evts []Event) (*digraph.Graph, error) {
	if len(evts) == 0 {
		return nil, apperr.New(apperr.ErrCodeEmptyInput, "no events")
	}
	for i, e := range evts {
		if e.Start > e.End {
			return nil, apperr.New(apperr.ErrCodeInvalidInterval,
				"event %d (%s): start %g after end %g", i, e.Label, e.Start, e.End)
		}
	}

	g := digraph.New()
	for i, e := range evts {
		g.AddVertex(i, e.Label)
	}
	for i, ei := range evts {
		for j, ej := range evts {
			if i != j && ei.End <= ej.Start {
				g.AddEdge(i, j, "")
			}
		}
	}
	return g, nil
}

// Labels returns the distinct event labels in first-appearance order.
// This is the natural ordered name list for a pattern record built from
// these events.
func Labels(evts []Event) []string {
	seen := make(map[string]bool, len(evts))
	var names []string
	for _, e := range evts {
		if !seen[e.Label] {
			seen[e.Label] = true
			names = append(names, e.Label)
		}
	}
	return names
}
