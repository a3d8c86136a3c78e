package links

import "github.com/Ortofta/kaoto/pkg/viz"

// ViewConfig sizes the rows of a [TreeView].
type ViewConfig struct {
	RowHeight  float64
	Indent     float64
	PanelWidth float64
	PanelGap   float64
}

// DefaultViewConfig returns the sizes used when none are configured.
func DefaultViewConfig() ViewConfig {
	return ViewConfig{RowHeight: 24, Indent: 16, PanelWidth: 320, PanelGap: 160}
}

// Row is one laid out node of a [TreeView].
type Row struct {
	Panel     int
	Depth     int
	Node      *viz.Node
	Bounds    Rect
	Collapsed bool
}

// TreeView is an Oracle that lays graphs out as indented rows. Graphs are
// arranged in panels side by side; graphs within a panel are stacked. Every
// node is realized. A node is visible unless one of its ancestors is
// collapsed.
//
// The layout is recomputed lazily after any change. A TreeView is not safe
// for concurrent use.
type TreeView struct {
	cfg       ViewConfig
	panels    [][]*viz.Graph
	collapsed map[string]bool
	scroll    float64

	rows  []Row
	refs  map[string]*viewRef
	dirty bool
}

// NewTreeView returns an empty view. Zero sizes in cfg take their defaults.
func NewTreeView(cfg ViewConfig) *TreeView {
	def := DefaultViewConfig()
	if cfg.RowHeight <= 0 {
		cfg.RowHeight = def.RowHeight
	}
	if cfg.Indent <= 0 {
		cfg.Indent = def.Indent
	}
	if cfg.PanelWidth <= 0 {
		cfg.PanelWidth = def.PanelWidth
	}
	if cfg.PanelGap <= 0 {
		cfg.PanelGap = def.PanelGap
	}
	return &TreeView{cfg: cfg, collapsed: make(map[string]bool), dirty: true}
}

// AddPanel appends a panel holding graphs, stacked top to bottom, and
// returns its index.
func (v *TreeView) AddPanel(graphs ...*viz.Graph) int {
	v.panels = append(v.panels, graphs)
	v.dirty = true
	return len(v.panels) - 1
}

// Collapse hides the descendants of path.
func (v *TreeView) Collapse(path string) {
	if !v.collapsed[path] {
		v.collapsed[path] = true
		v.dirty = true
	}
}

// Expand shows the descendants of path again.
func (v *TreeView) Expand(path string) {
	if v.collapsed[path] {
		delete(v.collapsed, path)
		v.dirty = true
	}
}

// Toggle flips the collapsed state of path and reports the new state.
func (v *TreeView) Toggle(path string) bool {
	if v.collapsed[path] {
		v.Expand(path)
		return false
	}
	v.Collapse(path)
	return true
}

// IsCollapsed reports whether path is collapsed.
func (v *TreeView) IsCollapsed(path string) bool { return v.collapsed[path] }

// Collapsed returns the collapsed paths.
func (v *TreeView) Collapsed() []string {
	out := make([]string, 0, len(v.collapsed))
	for p := range v.collapsed {
		out = append(out, p)
	}
	return out
}

// ScrollTo shifts every row up by offset.
func (v *TreeView) ScrollTo(offset float64) {
	if v.scroll != offset {
		v.scroll = offset
		v.dirty = true
	}
}

// Rows returns the visible rows, panel by panel, in tree order.
func (v *TreeView) Rows() []Row {
	v.layout()
	return v.rows
}

// Canvas returns the area between the first two panels, where links cross.
func (v *TreeView) Canvas() Rect {
	v.layout()
	height := 0.0
	for _, r := range v.rows {
		if b := r.Bounds.Bottom() + v.scroll; b > height {
			height = b
		}
	}
	return Rect{X: v.cfg.PanelWidth, Y: 0, W: v.cfg.PanelGap, H: height}
}

// Get implements Oracle.
func (v *TreeView) Get(path string) NodeReference {
	v.layout()
	if ref, ok := v.refs[path]; ok {
		return ref
	}
	return nil
}

func (v *TreeView) layout() {
	if !v.dirty {
		return
	}
	v.rows = nil
	v.refs = make(map[string]*viewRef)
	for p, graphs := range v.panels {
		x := float64(p) * (v.cfg.PanelWidth + v.cfg.PanelGap)
		line := 0
		for _, g := range graphs {
			if g == nil {
				continue
			}
			v.place(p, x, &line, g.Root(), 0, false)
		}
	}
	v.dirty = false
}

func (v *TreeView) place(panel int, x float64, line *int, n *viz.Node, depth int, hidden bool) {
	ref := &viewRef{}
	if !hidden {
		indent := float64(depth) * v.cfg.Indent
		ref.visible = true
		ref.bounds = Rect{
			X: x + indent,
			Y: float64(*line)*v.cfg.RowHeight - v.scroll,
			W: max(v.cfg.PanelWidth-indent, 1),
			H: v.cfg.RowHeight,
		}
		v.rows = append(v.rows, Row{
			Panel:     panel,
			Depth:     depth,
			Node:      n,
			Bounds:    ref.bounds,
			Collapsed: v.collapsed[n.Path],
		})
		*line++
	}
	v.refs[n.Path] = ref
	hideChildren := hidden || v.collapsed[n.Path]
	for _, c := range n.Children() {
		v.place(panel, x, line, c, depth+1, hideChildren)
	}
}

// viewRef is a realized row. Hidden rows keep no bounds.
type viewRef struct {
	visible bool
	bounds  Rect
}

func (r *viewRef) Realized() bool { return true }

func (r *viewRef) BoundsIfVisible() (Rect, bool) {
	if !r.visible || r.bounds.Empty() {
		return Rect{}, false
	}
	return r.bounds, true
}
