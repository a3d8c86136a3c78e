// Package pkg provides the core libraries for kaoto route visualization.
//
// # Overview
//
// kaoto turns integration route definitions into visualization graphs and
// draws the links between the fields of a data mapping. The pkg directory
// is organized into four main areas:
//
//  1. Domain logic ([route], [mapper], [viz], [nodepath], [links], [mapping])
//  2. Rendering ([render], [render/nodelink])
//  3. Orchestration ([pipeline], [graph])
//  4. Infrastructure ([cache], [errors], [observability], [metrics])
//
// # Architecture
//
// The data flow for a route:
//
//	route.yaml
//	     ↓
//	[route] package (parse definitions, resolve paths)
//	     ↓
//	[mapper] package (one mapper per step kind)
//	     ↓
//	[viz] package (indexed node tree)
//	     ↓
//	[render/nodelink] package (DOT, SVG, PNG, PDF) or [graph] (JSON)
//
// And for a data mapping:
//
//	documents + mapping tree
//	     ↓
//	[mapping] package (document graphs, correlations)
//	     ↓
//	[links] package (fold to visible anchors, connect)
//
// # Quick Start
//
// Build and render a route:
//
//	defs, _ := route.ReadFile("route.yaml")
//	g, _ := mapper.BuildGraph(defs[0])
//	dot := nodelink.ToDOT(g, nodelink.Options{Direction: "LR"})
//	svg, _ := nodelink.RenderSVG(ctx, dot)
//
// Most callers go through [pipeline] instead, which adds validation and
// caching:
//
//	r := pipeline.NewRunner(cache.NewNullCache(), nil, logger)
//	res, _ := r.Execute(ctx, pipeline.Options{Source: "route.yaml", Formats: []string{"svg"}})
//	svg := res.Artifacts["svg"]
//
// # Testing
//
//	go test ./pkg/...                    # All tests
//	go test ./pkg/links/...              # Specific package
//	go test -run Example ./pkg/...       # Examples only
//
// [route]: https://pkg.go.dev/github.com/Ortofta/kaoto/pkg/route
// [mapper]: https://pkg.go.dev/github.com/Ortofta/kaoto/pkg/mapper
// [viz]: https://pkg.go.dev/github.com/Ortofta/kaoto/pkg/viz
// [nodepath]: https://pkg.go.dev/github.com/Ortofta/kaoto/pkg/nodepath
// [links]: https://pkg.go.dev/github.com/Ortofta/kaoto/pkg/links
// [mapping]: https://pkg.go.dev/github.com/Ortofta/kaoto/pkg/mapping
// [render]: https://pkg.go.dev/github.com/Ortofta/kaoto/pkg/render
// [render/nodelink]: https://pkg.go.dev/github.com/Ortofta/kaoto/pkg/render/nodelink
// [pipeline]: https://pkg.go.dev/github.com/Ortofta/kaoto/pkg/pipeline
// [graph]: https://pkg.go.dev/github.com/Ortofta/kaoto/pkg/graph
// [cache]: https://pkg.go.dev/github.com/Ortofta/kaoto/pkg/cache
// [errors]: https://pkg.go.dev/github.com/Ortofta/kaoto/pkg/errors
// [observability]: https://pkg.go.dev/github.com/Ortofta/kaoto/pkg/observability
// [metrics]: https://pkg.go.dev/github.com/Ortofta/kaoto/pkg/metrics
package pkg
