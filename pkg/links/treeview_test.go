package links

import (
	"errors"
	"reflect"
	"testing"

	kerrors "github.com/Ortofta/kaoto/pkg/errors"
	"github.com/Ortofta/kaoto/pkg/viz"
)

// docGraph builds
//
//	src:Doc://
//	└── src:Doc://order
//	    ├── src:Doc://order/id
//	    └── src:Doc://order/item
//	        └── src:Doc://order/item/sku
func docGraph(t *testing.T, ns string) *viz.Graph {
	t.Helper()
	root := viz.NewGroup(ns+"://", viz.NodeData{})
	order := viz.NewGroup(ns+"://order", viz.NodeData{})
	item := viz.NewGroup(ns+"://order/item", viz.NodeData{})
	item.AddChild(viz.NewNode(ns+"://order/item/sku", viz.NodeData{}))
	order.AddChild(viz.NewNode(ns+"://order/id", viz.NodeData{}))
	order.AddChild(item)
	root.AddChild(order)
	g, err := viz.NewGraph(root)
	if err != nil {
		t.Fatal(err)
	}
	return g
}

func rowPaths(rows []Row) []string {
	var out []string
	for _, r := range rows {
		out = append(out, r.Node.Path)
	}
	return out
}

func TestTreeViewLayout(t *testing.T) {
	v := NewTreeView(ViewConfig{RowHeight: 10, Indent: 5, PanelWidth: 100, PanelGap: 50})
	v.AddPanel(docGraph(t, "src:Doc"))
	v.AddPanel(docGraph(t, "tgt:Doc"))

	rows := v.Rows()
	if len(rows) != 10 {
		t.Fatalf("len(rows) = %d, want 10", len(rows))
	}
	sku := rows[4]
	if sku.Node.Path != "src:Doc://order/item/sku" || sku.Depth != 3 {
		t.Errorf("rows[4] = %s depth %d", sku.Node.Path, sku.Depth)
	}
	if want := (Rect{X: 15, Y: 40, W: 85, H: 10}); sku.Bounds != want {
		t.Errorf("sku bounds = %+v, want %+v", sku.Bounds, want)
	}
	tgt := rows[5]
	if tgt.Panel != 1 || tgt.Bounds.X != 150 || tgt.Bounds.Y != 0 {
		t.Errorf("target root row = %+v", tgt)
	}
	if c := v.Canvas(); c != (Rect{X: 100, Y: 0, W: 50, H: 50}) {
		t.Errorf("Canvas() = %+v", c)
	}
}

func TestTreeViewCollapse(t *testing.T) {
	v := NewTreeView(ViewConfig{})
	v.AddPanel(docGraph(t, "src:Doc"))

	v.Collapse("src:Doc://order/item")
	want := []string{"src:Doc://", "src:Doc://order", "src:Doc://order/id", "src:Doc://order/item"}
	if got := rowPaths(v.Rows()); !reflect.DeepEqual(got, want) {
		t.Errorf("rows = %v, want %v", got, want)
	}

	ref := v.Get("src:Doc://order/item/sku")
	if ref == nil || !ref.Realized() {
		t.Fatal("hidden row should still be realized")
	}
	if _, ok := ref.BoundsIfVisible(); ok {
		t.Error("hidden row reported bounds")
	}
	if _, ok := v.Get("src:Doc://order/item").BoundsIfVisible(); !ok {
		t.Error("collapsed container itself should stay visible")
	}
	if v.Get("src:Doc://nope") != nil {
		t.Error("unknown path returned a reference")
	}

	if v.Toggle("src:Doc://order/item") {
		t.Error("Toggle on collapsed path reported collapsed")
	}
	if len(v.Rows()) != 5 {
		t.Errorf("after expand: %d rows, want 5", len(v.Rows()))
	}
	if !v.Toggle("src:Doc://") || !v.IsCollapsed("src:Doc://") {
		t.Error("Toggle did not collapse")
	}
	if len(v.Rows()) != 1 {
		t.Errorf("root collapsed: %d rows, want 1", len(v.Rows()))
	}
}

func TestTreeViewScroll(t *testing.T) {
	v := NewTreeView(ViewConfig{RowHeight: 10})
	v.AddPanel(docGraph(t, "src:Doc"))
	v.ScrollTo(15)
	b, ok := v.Get("src:Doc://order").BoundsIfVisible()
	if !ok || b.Y != -5 {
		t.Errorf("scrolled bounds = %+v, %v", b, ok)
	}
}

func TestTreeViewFoldsLinks(t *testing.T) {
	src := docGraph(t, "src:Doc")
	tgt := docGraph(t, "tgt:Doc")
	v := NewTreeView(ViewConfig{})
	v.AddPanel(src)
	v.AddPanel(tgt)

	l := &Linker{
		Walker: Static{
			{"src:Doc://order/item/sku", "tgt:Doc://order/id"},
			{"src:Doc://order/id", "tgt:Doc://order/item/sku"},
		},
		Oracle: v,
		Graph:  src,
	}

	first, err := l.Refresh()
	if err != nil {
		t.Fatal(err)
	}
	if len(first) != 2 || first[0].Folded() || first[1].Folded() {
		t.Fatalf("expanded: %+v", first)
	}

	v.Collapse("src:Doc://order/item")
	v.Collapse("tgt:Doc://order")
	folded, err := l.Refresh()
	if err != nil {
		t.Fatal(err)
	}
	if len(folded) != 2 {
		t.Fatalf("folded: %d connections, want 2", len(folded))
	}
	if folded[0].SourcePath != "src:Doc://order/item/sku" || folded[0].SourceAnchor != "src:Doc://order/item" {
		t.Errorf("source fold = %s -> %s", folded[0].SourcePath, folded[0].SourceAnchor)
	}
	if folded[0].TargetAnchor != "tgt:Doc://order" || folded[1].TargetAnchor != "tgt:Doc://order" {
		t.Errorf("target folds = %s, %s", folded[0].TargetAnchor, folded[1].TargetAnchor)
	}
	if folded[0].SourceNode != src.Lookup("src:Doc://order/item") {
		t.Error("SourceNode not annotated from the graph")
	}

	again, err := l.Refresh()
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(folded, again) {
		t.Error("Refresh is not idempotent")
	}
	if !reflect.DeepEqual(l.Links(), again) {
		t.Error("Links() does not return the last result")
	}
}

func TestLinkerMissingContext(t *testing.T) {
	tests := []struct {
		name   string
		linker Linker
	}{
		{"no walker", Linker{Oracle: fakeOracle{}}},
		{"no oracle", Linker{Walker: Static{}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.linker.Refresh()
			if !kerrors.Is(err, kerrors.ErrCodeMissingContext) {
				t.Errorf("err = %v, want MISSING_CONTEXT", err)
			}
		})
	}
}

func TestLinkerWalkerError(t *testing.T) {
	boom := errors.New("boom")
	l := &Linker{
		Walker: WalkerFunc(func() ([]Correlation, error) { return nil, boom }),
		Oracle: fakeOracle{},
	}
	if _, err := l.Refresh(); !errors.Is(err, boom) {
		t.Errorf("err = %v, want boom", err)
	}
}
