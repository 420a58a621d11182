package pattern

import (
	"testing"

	"github.com/dynsig/dynsig/pkg/digraph"
	"github.com/dynsig/dynsig/pkg/order"
)

func mustPoset(t *testing.T, g *digraph.Graph) *order.Poset {
	t.Helper()
	p, err := order.New(g)
	if err != nil {
		t.Fatalf("order.New() error = %v", err)
	}
	return p
}

func TestBuildChain(t *testing.T) {
	// 0 < 1 < 2: reachable antichains are {2}, {1}, {0}, {}.
	g := digraph.New()
	g.AddEdge(0, 1, "")
	g.AddEdge(1, 2, "")
	pg := Build(mustPoset(t, g))

	if got := pg.Size(); got != 4 {
		t.Fatalf("Size() = %d, want 4", got)
	}

	root, ok := pg.Antichain(pg.Root())
	if !ok || !root.Equal(order.NewAntichain(2)) {
		t.Errorf("root antichain = %v, want {2}", root)
	}

	// The chain's pattern graph is a path {} -> {0} -> {1} -> {2}.
	d := pg.Digraph()
	if got := d.EdgeCount(); got != 3 {
		t.Errorf("EdgeCount() = %d, want 3", got)
	}
	for id := 0; id < pg.Size(); id++ {
		if got := len(d.Successors(id)); got > 1 {
			t.Errorf("vertex %d has %d successors, want <= 1", id, got)
		}
	}
}

func TestBuildIncomparablePair(t *testing.T) {
	// Two incomparable elements: the full antichain lattice
	// {} -> {0}, {} -> {1}, {0} -> {0,1}, {1} -> {0,1}.
	g := digraph.New()
	g.AddVertex(0, "")
	g.AddVertex(1, "")
	pg := Build(mustPoset(t, g))

	if got := pg.Size(); got != 4 {
		t.Fatalf("Size() = %d, want 4", got)
	}
	if got := pg.Digraph().EdgeCount(); got != 4 {
		t.Errorf("EdgeCount() = %d, want 4", got)
	}

	root, _ := pg.Antichain(pg.Root())
	if !root.Equal(order.NewAntichain(0, 1)) {
		t.Errorf("root = %v, want {0,1}", root)
	}

	// Transition consuming element 0 out of {0,1} leads from {1}.
	d := pg.Digraph()
	var found bool
	for _, e := range d.Edges() {
		to, _ := pg.Antichain(e.To)
		from, _ := pg.Antichain(e.From)
		if to.Equal(order.NewAntichain(0, 1)) && e.Label == "0" {
			if !from.Equal(order.NewAntichain(1)) {
				t.Errorf("edge labeled 0 into {0,1} comes from %v, want {1}", from)
			}
			found = true
		}
	}
	if !found {
		t.Error("no edge labeled 0 into the top antichain")
	}
}

// The produced graph must be acyclic, have the top antichain as its only
// source, the empty antichain as sink, and one vertex per distinct
// reachable antichain.
func TestBuildInvariants(t *testing.T) {
	// Diamond plus a detached element for irregularity.
	g := digraph.New()
	g.AddEdge(0, 1, "")
	g.AddEdge(0, 2, "")
	g.AddEdge(1, 3, "")
	g.AddEdge(2, 3, "")
	g.AddVertex(4, "")
	pg := Build(mustPoset(t, g))
	d := pg.Digraph()

	// No duplicate antichains under canonical equality.
	seen := make(map[string]bool)
	for _, a := range pg.Antichains() {
		if seen[a.Key()] {
			t.Errorf("duplicate antichain %v", a)
		}
		seen[a.Key()] = true
	}

	// Unique source = root.
	incoming := make(map[int]int)
	for _, e := range d.Edges() {
		incoming[e.To]++
	}
	var sources []int
	for _, v := range d.Vertices() {
		if incoming[v] == 0 {
			sources = append(sources, v)
		}
	}
	if len(sources) != 1 || sources[0] != pg.Root() {
		t.Errorf("sources = %v, want exactly [%d]", sources, pg.Root())
	}

	// The empty antichain is present and is a sink.
	emptyID := -1
	for id, a := range pg.Antichains() {
		if a.Len() == 0 {
			emptyID = id
		}
	}
	if emptyID < 0 {
		t.Fatal("empty antichain not reached")
	}
	if got := len(d.Successors(emptyID)); got != 0 {
		t.Errorf("empty antichain has %d successors, want 0", got)
	}

	// Acyclic: deriving a poset from the pattern graph must succeed.
	if _, err := order.New(d); err != nil {
		t.Errorf("pattern graph is not acyclic: %v", err)
	}
}

func TestBuildEmptyPoset(t *testing.T) {
	pg := Build(mustPoset(t, digraph.New()))

	if got := pg.Size(); got != 1 {
		t.Fatalf("Size() = %d, want 1 (just the empty antichain)", got)
	}
	root, _ := pg.Antichain(pg.Root())
	if root.Len() != 0 {
		t.Errorf("root = %v, want empty antichain", root)
	}
	if _, ok := pg.Antichain(5); ok {
		t.Error("Antichain(5) ok for out-of-range id")
	}
}
