package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/goccy/go-graphviz"

	"github.com/dynsig/dynsig/pkg/digraph"
	"github.com/dynsig/dynsig/pkg/netspec"
)

// Options configures node-link diagram rendering.
type Options struct {
	// EdgeLabels draws edge labels (regulation type, transition events)
	// along the arrows. When false, edges are plain arrows.
	EdgeLabels bool

	// Regulation styles edges by their regulation label: activation as a
	// normal arrowhead, repression as a tee. Used for network diagrams.
	Regulation bool
}

// ToDOT converts a labeled digraph to Graphviz DOT format.
// The resulting DOT string can be rendered using [RenderSVG] or [RenderPNG].
//
// Vertices with labels show the label; unlabeled vertices show their id.
func ToDOT(g *digraph.Graph, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=24, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	for _, v := range g.Vertices() {
		label := g.VertexLabel(v)
		if label == "" {
			label = strconv.Itoa(v)
		}
		fmt.Fprintf(&buf, "  %q [label=%q];\n", strconv.Itoa(v), label)
	}

	buf.WriteString("\n")
	for _, e := range g.Edges() {
		attrs := edgeAttrs(e, opts)
		if attrs == "" {
			fmt.Fprintf(&buf, "  %q -> %q;\n", strconv.Itoa(e.From), strconv.Itoa(e.To))
		} else {
			fmt.Fprintf(&buf, "  %q -> %q [%s];\n", strconv.Itoa(e.From), strconv.Itoa(e.To), attrs)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func edgeAttrs(e digraph.Edge, opts Options) string {
	var attrs []byte
	if opts.EdgeLabels && e.Label != "" {
		attrs = fmt.Appendf(attrs, "label=%q", e.Label)
	}
	if opts.Regulation && e.Label == netspec.LabelRepression {
		if len(attrs) > 0 {
			attrs = append(attrs, ", "...)
		}
		attrs = append(attrs, "arrowhead=tee"...)
	}
	return string(attrs)
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	var buf bytes.Buffer
	if err := renderFormat(ctx, dot, graphviz.SVG, &buf); err != nil {
		return nil, err
	}
	return normalizeViewBox(buf.Bytes()), nil
}

// RenderPNG renders a DOT graph to PNG using Graphviz.
func RenderPNG(ctx context.Context, dot string) ([]byte, error) {
	var buf bytes.Buffer
	if err := renderFormat(ctx, dot, graphviz.PNG, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func renderFormat(ctx context.Context, dot string, format graphviz.Format, buf *bytes.Buffer) error {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	if err := gv.Render(ctx, g, format, buf); err != nil {
		return fmt.Errorf("render: %w", err)
	}
	return nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the svg element so the image origin is (0,0)
// and explicit pixel dimensions are present, which keeps embedding in
// HTML predictable across Graphviz versions.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
