package pipeline

import (
	"context"
	"time"

	"github.com/Ortofta/kaoto/pkg/mapper"
	"github.com/Ortofta/kaoto/pkg/observability"
	"github.com/Ortofta/kaoto/pkg/route"
	"github.com/Ortofta/kaoto/pkg/viz"
)

// inlineSource names inline definitions in logs and hooks.
const inlineSource = "<inline>"

// Load reads the route source and selects the entity to build.
func Load(ctx context.Context, opts Options) ([]route.Definition, route.Definition, error) {
	source := opts.Source
	if opts.Definition != "" {
		source = inlineSource
	}

	hooks := observability.Pipeline()
	hooks.OnLoadStart(ctx, source)
	start := time.Now()

	var (
		defs []route.Definition
		err  error
	)
	if opts.Definition != "" {
		defs, err = route.Parse([]byte(opts.Definition))
	} else {
		defs, err = route.ReadFile(opts.Source)
	}
	hooks.OnLoadComplete(ctx, source, len(defs), time.Since(start), err)
	if err != nil {
		return nil, route.Definition{}, err
	}

	def, err := route.Find(defs, opts.Entity)
	if err != nil {
		return defs, route.Definition{}, err
	}
	return defs, def, nil
}

// Build converts one definition into a visualization graph.
func Build(ctx context.Context, def route.Definition, opts Options) (*viz.Graph, error) {
	root := opts.Root
	if root == "" {
		root = def.Kind()
	}

	hooks := observability.Pipeline()
	hooks.OnBuildStart(ctx, root)
	start := time.Now()

	buildOpts := []mapper.Option{mapper.WithIcons(opts.Icons)}
	if opts.Root != "" {
		buildOpts = append(buildOpts, mapper.WithRootPath(opts.Root))
	}
	g, err := mapper.BuildGraph(def, buildOpts...)

	nodes := 0
	if g != nil {
		nodes = g.Len()
	}
	hooks.OnBuildComplete(ctx, root, nodes, time.Since(start), err)
	return g, err
}
