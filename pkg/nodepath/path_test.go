package nodepath

import (
	"slices"
	"testing"
)

func TestParent(t *testing.T) {
	tests := []struct {
		path   string
		want   string
		wantOK bool
	}{
		{"a/b/c", "a/b", true},
		{"a/b", "a", true},
		{"a", "", false},
		{"", "", false},
		{"scheme://", "scheme", true},
		{"sourceBody:ShipOrder://", "sourceBody", true},
		{"sourceBody:ShipOrder://order", "sourceBody:ShipOrder://", true},
		{"sourceBody:ShipOrder://order/id", "sourceBody:ShipOrder://order", true},
		{"route/from/steps/0", "route/from/steps", true},
		{"/a", "", false},
		{"://", "", false},
		{"a//", "a//", true}, // malformed: parent is itself
	}

	for _, tt := range tests {
		got, ok := Parent(tt.path)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("Parent(%q) = (%q, %v), want (%q, %v)", tt.path, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestClosestResolvable(t *testing.T) {
	visible := map[string]bool{
		"doc://":          true,
		"doc://a":         true,
		"route/from":      true,
		"route/from/x/y":  true,
		"malformed//":     false,
		"standalone-name": true,
	}
	isVisible := func(p string) bool { return visible[p] }

	tests := []struct {
		name   string
		path   string
		want   string
		wantOK bool
	}{
		{"self visible", "route/from/x/y", "route/from/x/y", true},
		{"folds to parent", "doc://a/b", "doc://a", true},
		{"folds across levels", "doc://a/b/c/d", "doc://a", true},
		{"folds to namespace root", "doc://z/q", "doc://", true},
		{"folds to route node", "route/from/steps/3", "route/from", true},
		{"no separator, visible", "standalone-name", "standalone-name", true},
		{"no separator, invisible", "other", "", false},
		{"nothing visible", "x/y/z", "", false},
		{"empty path", "", "", false},
		{"stalls on malformed", "malformed//", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ClosestResolvable(tt.path, isVisible)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("ClosestResolvable(%q) = (%q, %v), want (%q, %v)", tt.path, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestClosestResolvableSelfWins(t *testing.T) {
	// Every ancestor also qualifies; the path itself must be returned.
	got, ok := ClosestResolvable("a/b/c", func(string) bool { return true })
	if !ok || got != "a/b/c" {
		t.Errorf("ClosestResolvable() = (%q, %v), want (%q, true)", got, ok, "a/b/c")
	}
}

func TestAncestors(t *testing.T) {
	got := Ancestors("src:Doc://a/b")
	want := []string{"src:Doc://a", "src:Doc://", "src"}
	if !slices.Equal(got, want) {
		t.Errorf("Ancestors() = %v, want %v", got, want)
	}

	if got := Ancestors("a"); len(got) != 0 {
		t.Errorf("Ancestors(root) = %v, want empty", got)
	}
	if got := Ancestors("x//"); len(got) != 0 {
		t.Errorf("Ancestors(malformed) = %v, want empty", got)
	}
}

func TestDepthAndIsAncestor(t *testing.T) {
	if d := Depth("a/b/c"); d != 2 {
		t.Errorf("Depth(a/b/c) = %d, want 2", d)
	}
	if d := Depth("a"); d != 0 {
		t.Errorf("Depth(a) = %d, want 0", d)
	}
	if !IsAncestor("a", "a/b/c") {
		t.Error("IsAncestor(a, a/b/c) = false, want true")
	}
	if IsAncestor("a/b/c", "a/b/c") {
		t.Error("a path is not its own ancestor")
	}
	if IsAncestor("a/b", "a/bc") {
		t.Error("IsAncestor must compare segments, not prefixes")
	}
}

func TestJoin(t *testing.T) {
	tests := []struct {
		parent string
		segs   []string
		want   string
	}{
		{"route", []string{"from"}, "route/from"},
		{"route/from", []string{"steps", "0"}, "route/from/steps/0"},
		{"doc://", []string{"order", "id"}, "doc://order/id"},
		{"", []string{"choice"}, "choice"},
		{"p", nil, "p"},
	}

	for _, tt := range tests {
		if got := Join(tt.parent, tt.segs...); got != tt.want {
			t.Errorf("Join(%q, %v) = %q, want %q", tt.parent, tt.segs, got, tt.want)
		}
	}
}

func TestJoinRoundTrip(t *testing.T) {
	p := Join("doc://", "a", "b")
	parent, ok := Parent(p)
	if !ok || parent != "doc://a" {
		t.Errorf("Parent(Join()) = %q, want %q", parent, "doc://a")
	}
	if Base(p) != "b" {
		t.Errorf("Base(%q) = %q, want %q", p, Base(p), "b")
	}
}

func TestBase(t *testing.T) {
	tests := map[string]string{
		"a/b/c":   "c",
		"a":       "a",
		"doc://x": "x",
		"doc://":  "doc://",
	}
	for in, want := range tests {
		if got := Base(in); got != want {
			t.Errorf("Base(%q) = %q, want %q", in, got, want)
		}
	}
}
