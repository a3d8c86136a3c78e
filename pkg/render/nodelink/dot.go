package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"maps"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/Ortofta/kaoto/pkg/render"
	"github.com/Ortofta/kaoto/pkg/viz"
)

// Directions accepted by [Options].
const (
	DirectionTB = "TB"
	DirectionLR = "LR"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Direction is the Graphviz rankdir, "TB" (default) or "LR".
	Direction string

	// Detailed adds the node path and metadata below each label.
	Detailed bool
}

func (o Options) rankdir() string {
	if o.Direction == DirectionLR {
		return DirectionLR
	}
	return DirectionTB
}

// ToDOT converts a visualization graph to Graphviz DOT source.
// The resulting DOT string can be rendered using [RenderSVG], [RenderPDF], or [RenderPNG].
func ToDOT(g *viz.Graph, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	fmt.Fprintf(&buf, "  rankdir=%s;\n", opts.rankdir())
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  compound=true;\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.4;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	var edges []string
	cluster := 0
	var emit func(n *viz.Node, indent string)
	emit = func(n *viz.Node, indent string) {
		if n.IsLeaf() {
			fmt.Fprintf(&buf, "%s%q [%s];\n", indent, n.Path, strings.Join(fmtAttrs(n, opts.Detailed), ", "))
			return
		}
		fmt.Fprintf(&buf, "%ssubgraph \"cluster_%d\" {\n", indent, cluster)
		cluster++
		fmt.Fprintf(&buf, "%s  style=\"rounded,dashed\";\n", indent)
		fmt.Fprintf(&buf, "%s  color=grey;\n", indent)
		fmt.Fprintf(&buf, "%s  %q [%s];\n", indent, n.Path, strings.Join(fmtAttrs(n, opts.Detailed), ", "))
		for _, c := range n.Children() {
			emit(c, indent+"  ")
		}
		fmt.Fprintf(&buf, "%s}\n", indent)
		edges = append(edges, flowEdges(n)...)
	}
	emit(g.Root(), "  ")

	buf.WriteString("\n")
	for _, e := range edges {
		buf.WriteString("  " + e + "\n")
	}

	buf.WriteString("}\n")
	return buf.String()
}

// flowEdges returns the edges leaving group n in DOT syntax.
func flowEdges(n *viz.Node) []string {
	var out []string
	prev := n.Path
	for _, c := range n.Children() {
		if sequential(n.Path, c.Path) {
			out = append(out, fmt.Sprintf("%q -> %q;", prev, c.Path))
			prev = c.Path
			continue
		}
		out = append(out, fmt.Sprintf("%q -> %q [style=dashed];", n.Path, c.Path))
	}
	return out
}

// sequential reports whether child sits in the steps list of parent.
func sequential(parent, child string) bool {
	rel, ok := strings.CutPrefix(child, parent+"/")
	return ok && strings.HasPrefix(rel, "steps/")
}

func fmtLabel(n *viz.Node, detailed bool) string {
	label := n.Data.DisplayLabel()
	if n.Data.ComponentName != "" && n.Data.ComponentName != label {
		label += "\n" + n.Data.ComponentName
	}
	if !detailed {
		return label
	}

	parts := []string{n.Path}
	for _, k := range slices.Sorted(maps.Keys(n.Data.Meta)) {
		parts = append(parts, fmt.Sprintf("%s: %v", k, n.Data.Meta[k]))
	}
	return label + "\n" + strings.Join(parts, "\n")
}

func fmtAttrs(n *viz.Node, detailed bool) []string {
	attrs := []string{fmt.Sprintf("label=%q", fmtLabel(n, detailed))}
	if n.IsGroup {
		attrs = append(attrs, "fillcolor=\"#e8eef7\"")
	}
	if icon := string(n.Data.Icon); icon != "" {
		attrs = append(attrs, fmt.Sprintf("tooltip=%q", icon))
	}
	return attrs
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
// Returns the SVG bytes ready for display or further conversion with [render.ToPDF] or [render.ToPNG].
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the root svg tag so the drawing starts at the
// origin and carries explicit pixel dimensions.
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

	tag := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(tag))
}

// RenderPDF renders a DOT graph as PDF via SVG conversion.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(ctx context.Context, dot string) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(ctx, svg)
}

// RenderPNG renders a DOT graph as PNG via SVG conversion.
// A scale of 2.0 produces a 2x resolution image suitable for high-DPI displays.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPNG(ctx context.Context, dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(ctx, svg, scale)
}
