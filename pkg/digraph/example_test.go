package digraph_test

import (
	"fmt"

	"github.com/dynsig/dynsig/pkg/digraph"
)

func ExampleGraph() {
	// Three genes: A and B activate X.
	g := digraph.New()
	g.AddVertex(0, "A")
	g.AddVertex(1, "B")
	g.AddVertex(2, "X")
	g.AddEdge(0, 2, "a")
	g.AddEdge(1, 2, "a")

	fmt.Println("vertices:", g.Vertices())
	fmt.Println("successors of A:", g.Successors(0))
	// Output:
	// vertices: [0 1 2]
	// successors of A: [2]
}

func ExampleGraph_TransitiveReduction() {
	// Chain with a redundant shortcut.
	g := digraph.New()
	g.AddEdge(0, 1, "")
	g.AddEdge(1, 2, "")
	g.AddEdge(0, 2, "")

	r := g.TransitiveReduction()
	for _, e := range r.Edges() {
		fmt.Printf("%d -> %d\n", e.From, e.To)
	}
	// Output:
	// 0 -> 1
	// 1 -> 2
}
