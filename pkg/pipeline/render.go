package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/Ortofta/kaoto/pkg/graph"
	"github.com/Ortofta/kaoto/pkg/observability"
	"github.com/Ortofta/kaoto/pkg/render"
	"github.com/Ortofta/kaoto/pkg/render/nodelink"
	"github.com/Ortofta/kaoto/pkg/viz"
)

// Render generates output artifacts in the requested formats. SVG is laid
// out at most once and reused for PNG and PDF conversion.
func Render(ctx context.Context, g *viz.Graph, opts Options) (map[string][]byte, error) {
	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Formats)
	start := time.Now()

	artifacts, err := renderFormats(ctx, g, opts)
	hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	return artifacts, err
}

func renderFormats(ctx context.Context, g *viz.Graph, opts Options) (map[string][]byte, error) {
	dot := nodelink.ToDOT(g, opts.NodelinkOptions())

	var svg []byte
	svgOnce := func() ([]byte, error) {
		if svg != nil {
			return svg, nil
		}
		var err error
		svg, err = nodelink.RenderSVG(ctx, dot)
		return svg, err
	}

	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		var (
			data []byte
			err  error
		)
		switch format {
		case FormatDOT:
			data = []byte(dot)
		case FormatSVG:
			data, err = svgOnce()
		case FormatPNG:
			if data, err = svgOnce(); err == nil {
				data, err = render.ToPNG(ctx, data, opts.Scale)
			}
		case FormatPDF:
			if data, err = svgOnce(); err == nil {
				data, err = render.ToPDF(ctx, data)
			}
		case FormatJSON:
			data, err = graph.MarshalGraph(g)
		default:
			err = ValidateFormat(format)
		}
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}
