// Package nodelink renders labeled digraphs as node-link diagrams.
//
// # Overview
//
// This package produces directed graph visualizations using Graphviz:
// regulatory networks with activation/repression edge styling, and
// pattern graphs where each node is a set of extremal events.
//
// # Usage
//
// Convert a digraph to DOT format, then render to SVG or PNG:
//
//	dot := nodelink.ToDOT(g, nodelink.Options{EdgeLabels: true})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//	png, err := nodelink.RenderPNG(ctx, dot)
//
// # DOT Format
//
// The [ToDOT] function produces Graphviz DOT source that can be:
//
//   - Rendered directly via [RenderSVG] or [RenderPNG]
//   - Saved and processed with external Graphviz tools
//   - Customized before rendering
//
// The generated DOT uses top-to-bottom layout (rankdir=TB) with rounded
// box nodes, so pattern graphs read root-first like Hasse diagrams.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process
// rendering, so no external Graphviz installation is required.
package nodelink
