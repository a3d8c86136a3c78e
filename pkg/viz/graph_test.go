package viz

import (
	"errors"
	"slices"
	"testing"
)

// sample builds
//
//	route
//	└── route/from
//	    ├── route/from/steps/0/choice
//	    │   └── route/from/steps/0/choice/when/0
//	    └── route/from/steps/1/log
func sample() *Node {
	root := NewGroup("route", NodeData{ProcessorName: "route"})
	from := NewGroup("route/from", NodeData{ProcessorName: "from"})
	choice := NewGroup("route/from/steps/0/choice", NodeData{ProcessorName: "choice"})
	choice.AddChild(NewGroup("route/from/steps/0/choice/when/0", NodeData{ProcessorName: "when"}))
	from.AddChild(choice)
	from.AddChild(NewNode("route/from/steps/1/log", NodeData{ProcessorName: "log", Label: "hello"}))
	root.AddChild(from)
	return root
}

func TestNewNode(t *testing.T) {
	n := NewNode("a/b", NodeData{Path: "ignored", ProcessorName: "log"})
	if n.Data.Path != "a/b" {
		t.Errorf("Data.Path = %q, want a/b", n.Data.Path)
	}
	if n.Data.Meta == nil {
		t.Error("Data.Meta is nil")
	}
	if n.IsGroup {
		t.Error("leaf reported as group")
	}
	g := NewGroup("a", NodeData{})
	if !g.IsGroup || !g.Data.IsGroup {
		t.Error("NewGroup did not mark the node as group")
	}
}

func TestAddChildKeepsOrder(t *testing.T) {
	root := NewGroup("r", NodeData{})
	for _, p := range []string{"r/c", "r/a", "r/b"} {
		root.AddChild(NewNode(p, NodeData{}))
	}
	var got []string
	for _, c := range root.Children() {
		got = append(got, c.Path)
	}
	if want := []string{"r/c", "r/a", "r/b"}; !slices.Equal(got, want) {
		t.Errorf("children = %v, want %v", got, want)
	}
}

func TestWalkPreOrder(t *testing.T) {
	var got []string
	sample().Walk(func(n *Node) bool {
		got = append(got, n.Path)
		return true
	})
	want := []string{
		"route",
		"route/from",
		"route/from/steps/0/choice",
		"route/from/steps/0/choice/when/0",
		"route/from/steps/1/log",
	}
	if !slices.Equal(got, want) {
		t.Errorf("Walk order = %v, want %v", got, want)
	}
}

func TestWalkSkip(t *testing.T) {
	var got []string
	sample().Walk(func(n *Node) bool {
		got = append(got, n.Path)
		return n.Data.ProcessorName != "choice"
	})
	if slices.Contains(got, "route/from/steps/0/choice/when/0") {
		t.Errorf("descendants of skipped node visited: %v", got)
	}
	if len(got) != 4 {
		t.Errorf("visited %d nodes, want 4", len(got))
	}
}

func TestNewGraph(t *testing.T) {
	g, err := NewGraph(sample())
	if err != nil {
		t.Fatalf("NewGraph: %v", err)
	}
	if g.Len() != 5 {
		t.Errorf("Len() = %d, want 5", g.Len())
	}
	if n := g.Lookup("route/from/steps/1/log"); n == nil || n.Data.DisplayLabel() != "hello" {
		t.Errorf("Lookup(log) = %+v", n)
	}
	if g.Lookup("route/from/steps/2") != nil {
		t.Error("Lookup of missing path returned a node")
	}
	if got := g.Paths()[0]; got != "route" {
		t.Errorf("Paths()[0] = %q", got)
	}
	if got := g.Groups(); len(got) != 4 {
		t.Errorf("Groups() = %v, want 4 groups", got)
	}
}

func TestNewGraphErrors(t *testing.T) {
	if _, err := NewGraph(nil); !errors.Is(err, ErrNilRoot) {
		t.Errorf("nil root: err = %v", err)
	}

	dup := NewGroup("r", NodeData{})
	dup.AddChild(NewNode("r/a", NodeData{}))
	dup.AddChild(NewNode("r/a", NodeData{}))
	if _, err := NewGraph(dup); !errors.Is(err, ErrDuplicatePath) {
		t.Errorf("duplicate: err = %v, want ErrDuplicatePath", err)
	}

	empty := NewGroup("r", NodeData{})
	empty.AddChild(NewNode("", NodeData{}))
	if _, err := NewGraph(empty); !errors.Is(err, ErrEmptyPath) {
		t.Errorf("empty: err = %v, want ErrEmptyPath", err)
	}
}

func TestParentOf(t *testing.T) {
	g, err := NewGraph(sample())
	if err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		path   string
		parent string
		ok     bool
	}{
		{"route", "", false},
		{"route/from", "route", true},
		// "route/from/steps/0" is not a node, so the choice hangs off "route/from".
		{"route/from/steps/0/choice", "route/from", true},
		{"route/from/steps/0/choice/when/0", "route/from/steps/0/choice", true},
		{"route/from/steps/1/log", "route/from", true},
		{"elsewhere/x", "", false},
		{"route//", "", false},
	}
	for _, tt := range tests {
		n, ok := g.ParentOf(tt.path)
		if ok != tt.ok {
			t.Errorf("ParentOf(%q) ok = %v, want %v", tt.path, ok, tt.ok)
			continue
		}
		if ok && n.Path != tt.parent {
			t.Errorf("ParentOf(%q) = %q, want %q", tt.path, n.Path, tt.parent)
		}
	}
}

func TestDepth(t *testing.T) {
	g, err := NewGraph(sample())
	if err != nil {
		t.Fatal(err)
	}
	tests := map[string]int{
		"route":                            0,
		"route/from":                       1,
		"route/from/steps/0/choice":        2,
		"route/from/steps/0/choice/when/0": 3,
		"missing":                          -1,
	}
	for path, want := range tests {
		if got := g.Depth(path); got != want {
			t.Errorf("Depth(%q) = %d, want %d", path, got, want)
		}
	}
}

func TestCount(t *testing.T) {
	if got := sample().Count(); got != 5 {
		t.Errorf("Count() = %d, want 5", got)
	}
}
