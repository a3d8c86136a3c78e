// Package render turns visualization graphs into diagrams.
//
// # Overview
//
// Rendering is a two-step affair. The [nodelink] subpackage converts a
// visualization graph into Graphviz DOT source and lays it out in-process
// with go-graphviz to produce SVG. This package converts that SVG to other
// formats:
//
//	dot := nodelink.ToDOT(g, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//	pdf, err := render.ToPDF(ctx, svg)
//	png, err := render.ToPNG(ctx, svg, 2.0)  // 2x scale
//
// [ToPDF] and [ToPNG] shell out to rsvg-convert (from librsvg).
//
// [nodelink]: github.com/Ortofta/kaoto/pkg/render/nodelink
package render
