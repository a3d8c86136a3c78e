package mapper

import (
	"errors"
	"fmt"

	kerrors "github.com/Ortofta/kaoto/pkg/errors"
	"github.com/Ortofta/kaoto/pkg/icons"
	"github.com/Ortofta/kaoto/pkg/route"
	"github.com/Ortofta/kaoto/pkg/viz"
)

// Option configures [BuildGraph].
type Option func(*options)

type options struct {
	rootPath string
	registry *Registry
	icons    icons.Resolver
}

// WithRootPath mounts the root step at path instead of at its kind.
func WithRootPath(path string) Option {
	return func(o *options) { o.rootPath = path }
}

// WithRegistry converts with r instead of a fresh default registry.
func WithRegistry(r *Registry) Option {
	return func(o *options) { o.registry = r }
}

// WithIcons resolves icons with res. It is ignored when WithRegistry is
// also given.
func WithIcons(res icons.Resolver) Option {
	return func(o *options) { o.icons = res }
}

// BuildGraph converts a root definition into an indexed visualization graph.
// The root is mounted at its kind unless WithRootPath says otherwise.
func BuildGraph(def route.Definition, opts ...Option) (*viz.Graph, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.registry == nil {
		o.registry = NewRegistry(o.icons)
	}
	path := o.rootPath
	if path == "" {
		path = def.Kind()
	}
	if path == "" {
		return nil, kerrors.New(kerrors.ErrCodeInvalidDefinition, "root definition has no kind")
	}
	if err := kerrors.ValidateNodePath(path); err != nil {
		return nil, err
	}

	root := o.registry.Convert(path, def)
	g, err := viz.NewGraph(root)
	if errors.Is(err, viz.ErrDuplicatePath) {
		return nil, kerrors.Wrap(kerrors.ErrCodeDuplicatePath, err, "index %s", path)
	}
	if err != nil {
		return nil, kerrors.Wrap(kerrors.ErrCodeInvalidDefinition, err, "index %s", path)
	}
	return g, nil
}

// BuildAll builds one graph per entity, mounting each at its kind. Entities
// sharing a kind are numbered from the second on ("route", "route-1", ...).
func BuildAll(defs []route.Definition, opts ...Option) ([]*viz.Graph, error) {
	seen := make(map[string]int)
	out := make([]*viz.Graph, 0, len(defs))
	for i, def := range defs {
		base := def.Kind()
		if base == "" {
			base = "entity"
		}
		root := base
		if n := seen[base]; n > 0 {
			root = fmt.Sprintf("%s-%d", base, n)
		}
		seen[base]++
		g, err := BuildGraph(def, append(opts, WithRootPath(root))...)
		if err != nil {
			return nil, fmt.Errorf("entity %d: %w", i, err)
		}
		out = append(out, g)
	}
	return out, nil
}
