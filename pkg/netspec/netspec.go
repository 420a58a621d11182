// Package netspec translates between the textual gene-regulatory-network
// specification format and labeled digraphs.
//
// The format is line-oriented, one record per gene:
//
//	NAME : (ACT1 + ACT2)(~REP1)(~REP2) [: E]
//
// Activators appear grouped in a parenthesized sum, each repressor in its
// own (~NAME) group, and the optional trailing ": E" marks the node
// essential. Blank lines are ignored.
//
// Decoding resolves node names to vertex ids by original declaration
// order, so perturbed copies of the same network keep stable vertex
// identity. Edges are labeled "a" (activation) or "r" (repression) and
// point from regulator to target.
package netspec

import (
	"strings"

	"github.com/dynsig/dynsig/pkg/digraph"
	apperr "github.com/dynsig/dynsig/pkg/errors"
	"github.com/dynsig/dynsig/pkg/multisort"
)

// Edge labels used on decoded regulation edges.
const (
	LabelActivation = "a"
	LabelRepression = "r"
)

// Network is a decoded regulatory network: the regulation digraph plus
// the essential flag per vertex. Vertex ids follow declaration order, so
// Essential is indexed by vertex id.
type Network struct {
	Graph     *digraph.Graph
	Essential []bool
}

// Names returns the node names in declaration (vertex id) order.
func (n *Network) Names() []string {
	ids := n.Graph.Vertices()
	names := make([]string, len(ids))
	for i, v := range ids {
		names[i] = n.Graph.VertexLabel(v)
	}
	return names
}

// separatorReplacer maps the format's structural characters to spaces so
// a line splits into name, colon separators, and regulator tokens.
var separatorReplacer = strings.NewReplacer("(", " ", ")", " ", "+", " ", "*", " ")

// Decode parses a network spec into a Network.
//
// Errors: EMPTY_INPUT when no non-blank lines exist, MALFORMED_SPEC when
// a line does not split into NAME : BODY (the offending line is included
// for diagnostics), and UNKNOWN_NODE when a regulator references a name
// never declared. No partial network is returned on error.
func Decode(text string) (*Network, error) {
	var names []string
	var essential []bool
	var bodies [][]string

	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		words := strings.Fields(separatorReplacer.Replace(line))
		isEssential := false
		if len(words) >= 2 && words[len(words)-2] == ":" && words[len(words)-1] == "E" {
			isEssential = true
			words = words[:len(words)-2]
		}
		if len(words) < 2 || words[1] != ":" {
			return nil, apperr.New(apperr.ErrCodeMalformedSpec, "cannot parse line %q", line)
		}

		// Stray colon separators in the body (e.g. "A : :") are noise.
		body := make([]string, 0, len(words)-2)
		for _, w := range words[2:] {
			if w != ":" {
				body = append(body, w)
			}
		}

		names = append(names, words[0])
		essential = append(essential, isEssential)
		bodies = append(bodies, body)
	}

	if len(names) == 0 {
		return nil, apperr.New(apperr.ErrCodeEmptyInput, "empty network spec")
	}

	// Vertices first so forward references resolve.
	index := make(map[string]int, len(names))
	g := digraph.New()
	for k, name := range names {
		g.AddVertex(k, name)
		if _, ok := index[name]; !ok {
			index[name] = k
		}
	}

	for target, body := range bodies {
		for _, tok := range body {
			label := LabelActivation
			if strings.HasPrefix(tok, "~") {
				tok = tok[1:]
				label = LabelRepression
			}
			source, ok := index[tok]
			if !ok {
				return nil, apperr.New(apperr.ErrCodeUnknownNode, "undeclared node: %s", tok)
			}
			g.AddEdge(source, target, label)
		}
	}

	return &Network{Graph: g, Essential: essential}, nil
}

// Encode serializes a network back into spec text: activators grouped in
// one parenthesized sum, repressors each in their own (~NAME) group, and
// ": E" appended for essential nodes. Nodes are emitted in vertex id
// order, which for decoded networks is declaration order.
//
// Node names must survive the format's tokenization; names containing
// separators or whitespace fail with INVALID_INPUT. Edge labels other
// than "a"/"r" fail likewise.
func Encode(n *Network) (string, error) {
	ids := n.Graph.Vertices()
	names := make([]string, len(ids))
	for i, v := range ids {
		names[i] = n.Graph.VertexLabel(v)
	}
	ids, names = multisort.Sort(ids, names)

	nameOf := make(map[int]string, len(ids))
	for i, v := range ids {
		if err := apperr.ValidateNodeName(names[i]); err != nil {
			return "", err
		}
		nameOf[v] = names[i]
	}

	inedges := make(map[int][]digraph.Edge)
	for _, e := range n.Graph.Edges() {
		if e.Label != LabelActivation && e.Label != LabelRepression {
			return "", apperr.New(apperr.ErrCodeInvalidInput,
				"edge %d->%d has regulation label %q, want %q or %q",
				e.From, e.To, e.Label, LabelActivation, LabelRepression)
		}
		inedges[e.To] = append(inedges[e.To], e)
	}

	var b strings.Builder
	for i, v := range ids {
		var act []string
		var rep strings.Builder
		for _, e := range inedges[v] {
			if e.Label == LabelActivation {
				act = append(act, nameOf[e.From])
			} else {
				rep.WriteString("(~" + nameOf[e.From] + ")")
			}
		}

		b.WriteString(names[i])
		b.WriteString(" : ")
		if len(act) > 0 {
			b.WriteString("(" + strings.Join(act, " + ") + ")")
		}
		b.WriteString(rep.String())
		if v < len(n.Essential) && n.Essential[v] {
			b.WriteString(" : E")
		}
		b.WriteString("\n")
	}
	return b.String(), nil
}
