package pipeline

import (
	"context"
	"fmt"
	"time"

	kerrors "github.com/Ortofta/kaoto/pkg/errors"
	"github.com/Ortofta/kaoto/pkg/links"
	"github.com/Ortofta/kaoto/pkg/mapping"
	"github.com/Ortofta/kaoto/pkg/observability"
	"github.com/Ortofta/kaoto/pkg/viz"
)

// =============================================================================
// Mapping Session - Documents, Tree View and Links
// =============================================================================

// MappingOptions configures a mapping session.
type MappingOptions struct {
	// DocumentFiles and MappingFile are read from disk. Documents and Tree,
	// when set, are used as-is; files are loaded in addition to Documents
	// and MappingFile is ignored when Tree is set.
	DocumentFiles []string `json:"-"`
	MappingFile   string   `json:"-"`

	Documents []*mapping.Document `json:"documents,omitempty"`
	Tree      *mapping.Tree       `json:"mapping,omitempty"`

	// Collapsed lists container paths to start collapsed.
	Collapsed []string `json:"collapsed,omitempty"`

	View links.ViewConfig `json:"-"`
}

// MappingView is an open mapping session: the source panel (body first,
// then parameters in mapping order), the target panel, and the linker that
// resolves connections between them.
type MappingView struct {
	Tree         *mapping.Tree
	Sources      []*mapping.Document
	Target       *mapping.Document
	SourceGraphs []*viz.Graph
	TargetGraph  *viz.Graph
	View         *links.TreeView
	Linker       *links.Linker
}

// OpenMapping loads documents and the mapping tree, builds their graphs and
// lays them out side by side.
func (r *Runner) OpenMapping(ctx context.Context, opts MappingOptions) (*MappingView, error) {
	docs := append([]*mapping.Document(nil), opts.Documents...)
	for _, path := range opts.DocumentFiles {
		d, err := loadTimed(ctx, path, mapping.LoadDocument)
		if err != nil {
			return nil, err
		}
		docs = append(docs, d)
	}

	tree := opts.Tree
	if tree == nil {
		if opts.MappingFile == "" {
			return nil, kerrors.MissingContext("mapping")
		}
		t, err := loadTimed(ctx, opts.MappingFile, mapping.LoadTree)
		if err != nil {
			return nil, err
		}
		tree = t
	}

	m, err := assemble(tree, docs)
	if err != nil {
		return nil, err
	}

	m.View = links.NewTreeView(opts.View)
	m.View.AddPanel(m.SourceGraphs...)
	m.View.AddPanel(m.TargetGraph)
	for _, p := range opts.Collapsed {
		m.View.Collapse(p)
	}
	m.Linker = &links.Linker{Walker: tree, Oracle: m.View, Graph: m.TargetGraph}

	r.Logger.Debug("opened mapping",
		"target", tree.Target,
		"sources", len(m.Sources),
		"nodes", m.TargetGraph.Len())
	return m, nil
}

// Refresh recomputes the connections for the current view state and
// reports the pass to the link hooks.
func (m *MappingView) Refresh(ctx context.Context) (links.Result, error) {
	correlations, err := m.Tree.Correlations()
	if err != nil {
		return links.Result{}, err
	}
	start := time.Now()
	if _, err := m.Linker.Refresh(); err != nil {
		return links.Result{}, err
	}
	res := m.Linker.Last()
	observability.Links().OnExtract(ctx, len(correlations), len(res.Connections),
		len(res.Dropped), res.Duplicates, time.Since(start))
	return res, nil
}

// assemble picks the documents the tree names and builds their graphs.
func assemble(tree *mapping.Tree, docs []*mapping.Document) (*MappingView, error) {
	find := func(kind mapping.DocumentKind, id string) (*mapping.Document, error) {
		for _, d := range docs {
			if d.Kind == kind && d.ID == id {
				return d, nil
			}
		}
		return nil, kerrors.MissingContext(fmt.Sprintf("%s document %q", kind, id))
	}

	m := &MappingView{Tree: tree}

	target, err := find(mapping.TargetBody, tree.Target)
	if err != nil {
		return nil, err
	}
	m.Target = target

	if tree.Sources.Body != "" {
		d, err := find(mapping.SourceBody, tree.Sources.Body)
		if err != nil {
			return nil, err
		}
		m.Sources = append(m.Sources, d)
	}
	for _, id := range tree.Sources.Params {
		d, err := find(mapping.Param, id)
		if err != nil {
			return nil, err
		}
		m.Sources = append(m.Sources, d)
	}

	for _, d := range m.Sources {
		g, err := d.Graph()
		if err != nil {
			return nil, err
		}
		m.SourceGraphs = append(m.SourceGraphs, g)
	}
	tg, err := tree.TargetGraph(target)
	if err != nil {
		return nil, err
	}
	m.TargetGraph = tg
	return m, nil
}

func loadTimed[T any](ctx context.Context, path string, load func(string) (T, error)) (T, error) {
	hooks := observability.Pipeline()
	hooks.OnLoadStart(ctx, path)
	start := time.Now()
	v, err := load(path)
	hooks.OnLoadComplete(ctx, path, 1, time.Since(start), err)
	return v, err
}
