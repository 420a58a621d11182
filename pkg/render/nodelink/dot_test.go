package nodelink

import (
	"strings"
	"testing"

	"github.com/dynsig/dynsig/pkg/digraph"
)

func buildNetwork() *digraph.Graph {
	g := digraph.New()
	g.AddVertex(0, "X")
	g.AddVertex(1, "A")
	g.AddVertex(2, "C")
	g.AddEdge(1, 0, "a")
	g.AddEdge(2, 0, "r")
	return g
}

func TestToDOT(t *testing.T) {
	dot := ToDOT(buildNetwork(), Options{})

	for _, want := range []string{
		"digraph G {",
		"rankdir=TB",
		`"0" [label="X"];`,
		`"1" [label="A"];`,
		`"1" -> "0";`,
		`"2" -> "0";`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT output missing %q:\n%s", want, dot)
		}
	}
}

func TestToDOTEdgeLabels(t *testing.T) {
	dot := ToDOT(buildNetwork(), Options{EdgeLabels: true})

	if !strings.Contains(dot, `"1" -> "0" [label="a"];`) {
		t.Errorf("DOT output missing labeled edge:\n%s", dot)
	}
}

func TestToDOTRegulation(t *testing.T) {
	dot := ToDOT(buildNetwork(), Options{EdgeLabels: true, Regulation: true})

	if !strings.Contains(dot, `"2" -> "0" [label="r", arrowhead=tee];`) {
		t.Errorf("repression edge not styled with tee arrowhead:\n%s", dot)
	}
	if strings.Contains(dot, `"1" -> "0" [label="a", arrowhead=tee];`) {
		t.Error("activation edge should not get tee arrowhead")
	}
}

func TestToDOTUnlabeledVertex(t *testing.T) {
	g := digraph.New()
	g.AddVertex(7, "")
	dot := ToDOT(g, Options{})

	if !strings.Contains(dot, `"7" [label="7"];`) {
		t.Errorf("unlabeled vertex should fall back to id:\n%s", dot)
	}
}

func TestNormalizeViewBox(t *testing.T) {
	svg := []byte(`<?xml version="1.0"?><svg width="100pt" height="50pt" viewBox="0.00 0.00 100.00 50.00" xmlns="http://www.w3.org/2000/svg"><g></g></svg>`)
	out := normalizeViewBox(svg)

	if !strings.Contains(string(out), `viewBox="0 0 100.00 50.00"`) {
		t.Errorf("viewBox not normalized: %s", out)
	}
	if !strings.Contains(string(out), `width="100" height="50"`) {
		t.Errorf("pixel dimensions missing: %s", out)
	}
}

func TestNormalizeViewBoxNoMatch(t *testing.T) {
	svg := []byte(`<svg></svg>`)
	if got := normalizeViewBox(svg); string(got) != string(svg) {
		t.Errorf("svg without viewBox should pass through unchanged, got %s", got)
	}
}
