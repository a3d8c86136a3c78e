package graph

import (
	"bytes"
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Ortofta/kaoto/pkg/links"
	"github.com/Ortofta/kaoto/pkg/viz"
)

func sampleGraph(t *testing.T) *viz.Graph {
	t.Helper()
	root := viz.NewGroup("route", viz.NodeData{ProcessorName: "route", Icon: "entity/route"})
	from := viz.NewGroup("route/from", viz.NodeData{
		ProcessorName: "from",
		ComponentName: "timer",
		Icon:          "component/timer",
		Label:         "tick",
		Meta:          viz.Metadata{"id": "from-1"},
	})
	choice := viz.NewGroup("route/from/steps/0/choice", viz.NodeData{ProcessorName: "choice"})
	choice.AddChild(viz.NewNode("route/from/steps/0/choice/when/0", viz.NodeData{ProcessorName: "when"}))
	from.AddChild(choice)
	from.AddChild(viz.NewNode("route/from/steps/1/log", viz.NodeData{ProcessorName: "log"}))
	root.AddChild(from)

	g, err := viz.NewGraph(root)
	if err != nil {
		t.Fatalf("NewGraph: %v", err)
	}
	return g
}

func TestFromViz(t *testing.T) {
	out := FromViz(sampleGraph(t))

	if out.Root != "route" {
		t.Errorf("Root = %q, want route", out.Root)
	}
	wantOrder := []string{
		"route",
		"route/from",
		"route/from/steps/0/choice",
		"route/from/steps/0/choice/when/0",
		"route/from/steps/1/log",
	}
	if len(out.Nodes) != len(wantOrder) {
		t.Fatalf("nodes = %d, want %d", len(out.Nodes), len(wantOrder))
	}
	for i, want := range wantOrder {
		if out.Nodes[i].Path != want {
			t.Errorf("Nodes[%d] = %q, want %q", i, out.Nodes[i].Path, want)
		}
	}
	if len(out.Edges) != len(wantOrder)-1 {
		t.Errorf("edges = %d, want %d", len(out.Edges), len(wantOrder)-1)
	}

	from := out.Nodes[1]
	if from.Parent != "route" || from.Component != "timer" || from.Icon != "component/timer" || !from.Group {
		t.Errorf("from node = %+v", from)
	}
	if from.Meta["id"] != "from-1" {
		t.Errorf("from meta = %v", from.Meta)
	}
	if out.Nodes[4].Meta != nil {
		t.Errorf("empty metadata should be omitted, got %v", out.Nodes[4].Meta)
	}
}

func TestRoundTrip(t *testing.T) {
	g := sampleGraph(t)

	data, err := MarshalGraph(g)
	if err != nil {
		t.Fatalf("MarshalGraph: %v", err)
	}
	back, err := ReadGraph(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("ReadGraph: %v", err)
	}

	if back.Len() != g.Len() {
		t.Fatalf("Len = %d, want %d", back.Len(), g.Len())
	}
	for _, p := range g.Paths() {
		want, got := g.Lookup(p), back.Lookup(p)
		if got == nil {
			t.Errorf("missing %s", p)
			continue
		}
		if got.IsGroup != want.IsGroup || got.Data.DisplayLabel() != want.Data.DisplayLabel() || got.Data.Icon != want.Data.Icon {
			t.Errorf("%s: got %+v, want %+v", p, got.Data, want.Data)
		}
		if len(got.Children()) != len(want.Children()) {
			t.Errorf("%s: children = %d, want %d", p, len(got.Children()), len(want.Children()))
		}
	}
}

func TestWriteReadGraphFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "route.json")
	if err := WriteGraphFile(sampleGraph(t), path); err != nil {
		t.Fatalf("WriteGraphFile: %v", err)
	}
	g, err := ReadGraphFile(path)
	if err != nil {
		t.Fatalf("ReadGraphFile: %v", err)
	}
	if g.Root().Path != "route" {
		t.Errorf("root = %q", g.Root().Path)
	}
	if _, err := ReadGraphFile(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestReadGraphErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"Malformed", `{"nodes": [`, "decode"},
		{"Empty", `{"nodes": []}`, "no nodes"},
		{"UnknownParent", `{"nodes":[{"path":"a"}],"edges":[{"from":"x","to":"a"}]}`, "unknown parent"},
		{"UnknownChild", `{"nodes":[{"path":"a"}],"edges":[{"from":"a","to":"x"}]}`, "unknown child"},
		{"TwoParents", `{"nodes":[{"path":"a"},{"path":"b"},{"path":"c"}],"edges":[{"from":"a","to":"c"},{"from":"b","to":"c"}]}`, "already has a parent"},
		{"Unreachable", `{"root":"a","nodes":[{"path":"a"},{"path":"b"}],"edges":[]}`, "not reachable"},
		{"RootNotNode", `{"root":"z","nodes":[{"path":"a"}],"edges":[]}`, "not a node"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadGraph(strings.NewReader(tt.input))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %v, want it to mention %q", err, tt.want)
			}
		})
	}
}

func TestReadGraphDuplicatePath(t *testing.T) {
	_, err := ReadGraph(strings.NewReader(`{"nodes":[{"path":"a"},{"path":"a"}],"edges":[]}`))
	if !errors.Is(err, viz.ErrDuplicatePath) {
		t.Errorf("error = %v, want ErrDuplicatePath", err)
	}
}

func TestFromResult(t *testing.T) {
	res := links.Result{
		Connections: []links.Connection{{
			SourcePath:   "sourceBody:Order://order/item/qty",
			TargetPath:   "targetBody:Invoice://amount",
			SourceAnchor: "sourceBody:Order://order",
			TargetAnchor: "targetBody:Invoice://amount",
			SourceBounds: links.Rect{X: 0, Y: 24, W: 320, H: 24},
			TargetBounds: links.Rect{X: 496, Y: 48, W: 304, H: 24},
		}},
		Dropped:    []links.Correlation{{SourcePath: "a", TargetPath: "b"}},
		Duplicates: 2,
	}
	canvas := links.Rect{X: 320, Y: 0, W: 160, H: 96}

	out := FromResult(res, canvas)
	if len(out.Connections) != 1 {
		t.Fatalf("connections = %d, want 1", len(out.Connections))
	}
	c := out.Connections[0]
	if !c.Folded {
		t.Error("connection should be folded")
	}
	want := []Point{{0, 36}, {0, 36}, {160, 60}, {176, 60}}
	if len(c.Points) != len(want) {
		t.Fatalf("points = %v, want %v", c.Points, want)
	}
	for i := range want {
		if c.Points[i] != want[i] {
			t.Errorf("Points[%d] = %v, want %v", i, c.Points[i], want[i])
		}
	}
	if len(out.Dropped) != 1 || out.Dropped[0].Source != "a" || out.Duplicates != 2 {
		t.Errorf("dropped = %v, duplicates = %d", out.Dropped, out.Duplicates)
	}

	data, err := MarshalLinks(res, canvas)
	if err != nil {
		t.Fatalf("MarshalLinks: %v", err)
	}
	var decoded Links
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded.Connections[0].SourceAnchor != "sourceBody:Order://order" {
		t.Errorf("decoded anchor = %q", decoded.Connections[0].SourceAnchor)
	}
}

func TestFromResultEmptyCanvas(t *testing.T) {
	res := links.Result{Connections: []links.Connection{{
		SourcePath: "a", TargetPath: "b", SourceAnchor: "a", TargetAnchor: "b",
		SourceBounds: links.Rect{W: 10, H: 10},
		TargetBounds: links.Rect{X: 20, W: 10, H: 10},
	}}}
	out := FromResult(res, links.Rect{})
	if got := len(out.Connections[0].Points); got != 2 {
		t.Errorf("points = %d, want 2 for an empty canvas", got)
	}
	if out.Connections[0].Folded {
		t.Error("connection should not be folded")
	}
}
