package mapper

import (
	"maps"
	"slices"

	"github.com/Ortofta/kaoto/pkg/icons"
	"github.com/Ortofta/kaoto/pkg/route"
	"github.com/Ortofta/kaoto/pkg/viz"
)

// Registry dispatches steps to the mapper registered for their kind.
//
// A Registry is not safe for concurrent registration, but once populated it
// may be used for conversion from several goroutines.
type Registry struct {
	base     *Base
	mappers  map[string]Mapper
	fallback Mapper
}

// NewRegistry returns a registry with every built-in variant registered.
// A nil resolver uses icons.Default.
func NewRegistry(resolver icons.Resolver) *Registry {
	if resolver == nil {
		resolver = icons.Default
	}
	r := &Registry{mappers: make(map[string]Mapper)}
	r.base = &Base{reg: r, icons: resolver}
	r.fallback = &Default{r.base}
	for _, m := range builtins(r.base) {
		r.Register(m)
	}
	return r
}

// Base returns the shared helpers, for callers writing their own variants.
func (r *Registry) Base() *Base { return r.base }

// Register adds m under its kind, replacing any mapper registered before.
func (r *Registry) Register(m Mapper) {
	r.mappers[m.Kind()] = m
}

// Lookup returns the mapper for kind, falling back to the default mapper.
func (r *Registry) Lookup(kind string) Mapper {
	if m, ok := r.mappers[kind]; ok {
		return m
	}
	return r.fallback
}

// Kinds returns the registered kinds, sorted.
func (r *Registry) Kinds() []string {
	return slices.Sorted(maps.Keys(r.mappers))
}

// Convert dispatches def to its mapper and returns the subtree mounted at
// path.
func (r *Registry) Convert(path string, def route.Definition) *viz.Node {
	return r.Lookup(def.Kind()).Convert(path, def.Lookup(), def)
}
