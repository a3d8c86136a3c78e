package mapping

import (
	"reflect"
	"slices"
	"testing"

	kerrors "github.com/Ortofta/kaoto/pkg/errors"
	"github.com/Ortofta/kaoto/pkg/links"
)

func loadFixtures(t *testing.T) (src, param, target *Document, tree *Tree) {
	t.Helper()
	var err error
	if src, err = LoadDocument("testdata/order.yaml"); err != nil {
		t.Fatal(err)
	}
	if param, err = LoadDocument("testdata/priority.yaml"); err != nil {
		t.Fatal(err)
	}
	if target, err = LoadDocument("testdata/invoice.yaml"); err != nil {
		t.Fatal(err)
	}
	if tree, err = LoadTree("testdata/mapping.yaml"); err != nil {
		t.Fatal(err)
	}
	return src, param, target, tree
}

func TestDocumentGraph(t *testing.T) {
	src, _, _, _ := loadFixtures(t)
	g, err := src.Graph()
	if err != nil {
		t.Fatal(err)
	}
	want := []string{
		"sourceBody:Order://",
		"sourceBody:Order://order",
		"sourceBody:Order://order/id",
		"sourceBody:Order://order/total",
		"sourceBody:Order://order/item",
		"sourceBody:Order://order/item/sku",
		"sourceBody:Order://order/item/qty",
	}
	if got := g.Paths(); !slices.Equal(got, want) {
		t.Errorf("Paths() = %v, want %v", got, want)
	}
	item := g.Lookup("sourceBody:Order://order/item")
	if !item.IsGroup || item.Data.Meta["repeated"] != true {
		t.Errorf("item = %+v", item.Data)
	}
	if g.Lookup("sourceBody:Order://order/id").Data.Meta["type"] != "string" {
		t.Error("field type not carried")
	}
	parent, ok := g.ParentOf("sourceBody:Order://order")
	if !ok || parent.Path != "sourceBody:Order://" {
		t.Errorf("ParentOf(order) = %v, %v", parent, ok)
	}

	f, ok := src.Lookup("order/item/sku")
	if !ok || f.Type != "string" {
		t.Errorf("Lookup(order/item/sku) = %+v, %v", f, ok)
	}
	if _, ok := src.Lookup("order/nope"); ok {
		t.Error("Lookup of a missing field succeeded")
	}
}

func TestSourcePath(t *testing.T) {
	tree := &Tree{Target: "Invoice", Sources: Sources{Body: "Order"}}
	tests := map[string]string{
		"order/id":               "sourceBody:Order://order/id",
		"/order/id":              "sourceBody:Order://order/id",
		"$Priority/level":        "param:Priority://level",
		"$Priority":              "param:Priority://",
		"sourceBody:Other://a/b": "sourceBody:Other://a/b",
	}
	for ref, want := range tests {
		if got := tree.SourcePath(ref); got != want {
			t.Errorf("SourcePath(%q) = %q, want %q", ref, got, want)
		}
	}
}

func TestCorrelations(t *testing.T) {
	_, _, _, tree := loadFixtures(t)
	got, err := tree.Correlations()
	if err != nil {
		t.Fatal(err)
	}
	want := []links.Correlation{
		{SourcePath: "sourceBody:Order://order/id", TargetPath: "targetBody:Invoice://invoice/ref"},
		{SourcePath: "sourceBody:Order://order/total", TargetPath: "targetBody:Invoice://invoice/if-1"},
		{SourcePath: "param:Priority://level", TargetPath: "targetBody:Invoice://invoice/if-1/priority"},
		{SourcePath: "sourceBody:Order://order/item", TargetPath: "targetBody:Invoice://invoice/for-each-2"},
		{SourcePath: "sourceBody:Order://order/item/sku", TargetPath: "targetBody:Invoice://invoice/for-each-2/line/code"},
		{SourcePath: "sourceBody:Order://order/item/qty", TargetPath: "targetBody:Invoice://invoice/for-each-2/line/choose-1/when-0/amount"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Correlations() =\n%v\nwant\n%v", got, want)
	}
}

func TestTargetGraph(t *testing.T) {
	_, _, target, tree := loadFixtures(t)
	g, err := tree.TargetGraph(target)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{
		"targetBody:Invoice://",
		"targetBody:Invoice://invoice",
		"targetBody:Invoice://invoice/ref",
		"targetBody:Invoice://invoice/if-1",
		"targetBody:Invoice://invoice/if-1/priority",
		"targetBody:Invoice://invoice/for-each-2",
		"targetBody:Invoice://invoice/for-each-2/line",
		"targetBody:Invoice://invoice/for-each-2/line/code",
		"targetBody:Invoice://invoice/for-each-2/line/choose-1",
		"targetBody:Invoice://invoice/for-each-2/line/choose-1/when-0",
		"targetBody:Invoice://invoice/for-each-2/line/choose-1/when-0/amount",
		"targetBody:Invoice://invoice/for-each-2/line/choose-1/otherwise-1",
		"targetBody:Invoice://invoice/note",
	}
	if got := g.Paths(); !slices.Equal(got, want) {
		t.Errorf("Paths() =\n%v\nwant\n%v", got, want)
	}
	cond := g.Lookup("targetBody:Invoice://invoice/if-1")
	if !cond.IsGroup || cond.Data.ProcessorName != KindIf || cond.Data.Meta["expression"] != "order/total > 100" {
		t.Errorf("if node = %+v", cond.Data)
	}
	if n := g.Lookup("targetBody:Invoice://invoice/for-each-2/line/choose-1/otherwise-1"); !n.IsGroup || !n.IsLeaf() {
		t.Error("empty otherwise should be a childless group")
	}
	// amount is mapped under the when clause, so it is not repeated as an
	// unmapped field of line.
	if g.Lookup("targetBody:Invoice://invoice/for-each-2/line/amount") != nil {
		t.Error("mapped field repeated at its schema position")
	}
}

func TestTargetGraphUnknownField(t *testing.T) {
	target := &Document{ID: "T", Kind: TargetBody, Fields: []Field{{Name: "a"}}}
	tree := &Tree{Target: "T", Items: []Item{{Field: "b", From: []string{"x"}}}}
	g, err := tree.TargetGraph(target)
	if err != nil {
		t.Fatal(err)
	}
	n := g.Lookup("targetBody:T://b")
	if n == nil || n.Data.Meta["unknown"] != true {
		t.Errorf("unknown field node = %+v", n)
	}
	if g.Lookup("targetBody:T://a") == nil {
		t.Error("unmapped field missing")
	}

	if _, err := tree.TargetGraph(nil); !kerrors.Is(err, kerrors.ErrCodeMissingContext) {
		t.Errorf("nil target: err = %v", err)
	}
}

func TestTargetGraphDuplicateField(t *testing.T) {
	tree := &Tree{Target: "T", Items: []Item{{Field: "a"}, {Field: "a"}}}
	_, err := tree.TargetGraph(&Document{ID: "T", Kind: TargetBody})
	if !kerrors.Is(err, kerrors.ErrCodeInvalidMapping) {
		t.Errorf("err = %v, want INVALID_MAPPING", err)
	}
}

func TestItemKind(t *testing.T) {
	tests := []struct {
		item Item
		want string
	}{
		{Item{Field: "a"}, KindField},
		{Item{If: "x"}, KindIf},
		{Item{Choose: []Item{}}, KindChoose},
		{Item{When: "x"}, KindWhen},
		{Item{Otherwise: true}, KindOtherwise},
		{Item{ForEach: "x"}, KindForEach},
		{Item{}, ""},
		{Item{Field: "a", If: "x"}, ""},
	}
	for _, tt := range tests {
		if got := tt.item.Kind(); got != tt.want {
			t.Errorf("%+v.Kind() = %q, want %q", tt.item, got, tt.want)
		}
	}
}
