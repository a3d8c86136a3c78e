// Package nodelink renders visualization graphs as Graphviz diagrams.
//
// # Overview
//
// Every node of the graph becomes a DOT node identified by its path. Group
// nodes additionally open a cluster that frames their descendants, so a
// choice and its branches, or a route and its steps, read as one block.
//
// Edges follow the flow of a route rather than the containment tree:
//
//   - a group points at the first of its sequential children (the ones in
//     its steps list), and each sequential child points at the next
//   - a group points at every child held in a named slot such as when,
//     otherwise or doCatch, which are alternatives and run in parallel
//
// # Usage
//
//	dot := nodelink.ToDOT(g, nodelink.Options{Direction: "LR"})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// For PDF or PNG output:
//
//	pdf, err := nodelink.RenderPDF(ctx, dot)
//	png, err := nodelink.RenderPNG(ctx, dot, 2.0)
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering. PDF and PNG conversion requires librsvg (rsvg-convert).
package nodelink
