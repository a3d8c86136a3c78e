package mapping

import (
	"strconv"
	"strings"

	kerrors "github.com/Ortofta/kaoto/pkg/errors"
	"github.com/Ortofta/kaoto/pkg/links"
	"github.com/Ortofta/kaoto/pkg/nodepath"
	"github.com/Ortofta/kaoto/pkg/viz"
)

// Item kinds.
const (
	KindField     = "field"
	KindIf        = "if"
	KindChoose    = "choose"
	KindWhen      = "when"
	KindOtherwise = "otherwise"
	KindForEach   = "for-each"
)

// Sources names the source documents a tree reads from.
type Sources struct {
	Body   string   `yaml:"body,omitempty" json:"body,omitempty"`
	Params []string `yaml:"params,omitempty" json:"params,omitempty"`
}

// Item is one entry of a mapping tree. Exactly one of Field, If, Choose,
// When, Otherwise and ForEach is set.
type Item struct {
	Field     string `yaml:"field,omitempty" json:"field,omitempty" validate:"excludesall=/:"`
	If        string `yaml:"if,omitempty" json:"if,omitempty"`
	Choose    []Item `yaml:"choose,omitempty" json:"choose,omitempty" validate:"dive"`
	When      string `yaml:"when,omitempty" json:"when,omitempty"`
	Otherwise bool   `yaml:"otherwise,omitempty" json:"otherwise,omitempty"`
	ForEach   string `yaml:"forEach,omitempty" json:"forEach,omitempty"`

	// From lists the source fields the item reads: a field's value, or the
	// condition of a conditional.
	From  []string `yaml:"from,omitempty" json:"from,omitempty"`
	Items []Item   `yaml:"items,omitempty" json:"items,omitempty" validate:"dive"`
}

// Kind returns the item kind, or "" when none or several are set.
func (it *Item) Kind() string {
	kind, n := "", 0
	set := func(ok bool, k string) {
		if ok {
			kind = k
			n++
		}
	}
	set(it.Field != "", KindField)
	set(it.If != "", KindIf)
	set(it.Choose != nil, KindChoose)
	set(it.When != "", KindWhen)
	set(it.Otherwise, KindOtherwise)
	set(it.ForEach != "", KindForEach)
	if n != 1 {
		return ""
	}
	return kind
}

// Expression returns the condition or iteration expression of a
// conditional item.
func (it *Item) Expression() string {
	switch it.Kind() {
	case KindIf:
		return it.If
	case KindWhen:
		return it.When
	case KindForEach:
		return it.ForEach
	default:
		return ""
	}
}

// children returns the items nested under it. A choose holds its clauses.
func (it *Item) children() []Item {
	if it.Kind() == KindChoose {
		return it.Choose
	}
	return it.Items
}

// segment returns the path segment of the i-th sibling item.
func (it *Item) segment(i int) string {
	if k := it.Kind(); k != KindField {
		return k + "-" + strconv.Itoa(i)
	}
	return it.Field
}

// Tree is a mapping tree for one target document.
type Tree struct {
	Version string  `yaml:"version" json:"version"`
	Target  string  `yaml:"target" json:"target" validate:"required,excludesall=/:"`
	Sources Sources `yaml:"sources" json:"sources"`
	Items   []Item  `yaml:"items" json:"items" validate:"dive"`
}

// RootPath returns the namespace path of the target document.
func (t *Tree) RootPath() string { return RootPath(TargetBody, t.Target) }

// SourcePath resolves a source reference to a node path.
//
//	order/id                     sourceBody:<body>://order/id
//	$Priority/level              param:Priority://level
//	sourceBody:Other://a/b       unchanged
func (t *Tree) SourcePath(ref string) string {
	switch {
	case strings.Contains(ref, nodepath.SchemeTerminator):
		return ref
	case strings.HasPrefix(ref, "$"):
		name, rest, _ := strings.Cut(ref[1:], "/")
		return nodepath.Join(RootPath(Param, name), splitRel(rest)...)
	default:
		return nodepath.Join(RootPath(SourceBody, t.Sources.Body), splitRel(ref)...)
	}
}

// Walk calls fn for every item in pre-order with its target path. Items of
// unknown kind are skipped along with their children.
func (t *Tree) Walk(fn func(path string, it *Item)) {
	walkItems(t.RootPath(), t.Items, fn)
}

func walkItems(parent string, items []Item, fn func(string, *Item)) {
	for i := range items {
		it := &items[i]
		if it.Kind() == "" {
			continue
		}
		path := nodepath.Join(parent, it.segment(i))
		fn(path, it)
		walkItems(path, it.children(), fn)
	}
}

// Correlations implements links.Walker. Pairs come in tree order, and in
// From order within an item.
func (t *Tree) Correlations() ([]links.Correlation, error) {
	var out []links.Correlation
	t.Walk(func(path string, it *Item) {
		for _, ref := range it.From {
			out = append(out, links.Correlation{SourcePath: t.SourcePath(ref), TargetPath: path})
		}
	})
	return out, nil
}

// TargetGraph merges the target document with the mapping items. Mapped
// fields and conditionals come first, in item order; unmapped document
// fields follow in schema order. Items naming fields missing from the schema
// still get a node, marked with Meta["unknown"].
func (t *Tree) TargetGraph(target *Document) (*viz.Graph, error) {
	if target == nil {
		return nil, kerrors.MissingContext("target document")
	}
	root := viz.NewGroup(t.RootPath(), viz.NodeData{
		ProcessorName: string(TargetBody),
		Label:         t.Target,
	})
	merge(root, target.Fields, t.Items)
	g, err := viz.NewGraph(root)
	if err != nil {
		return nil, kerrors.Wrap(kerrors.ErrCodeInvalidMapping, err, "mapping for %s", t.Target)
	}
	return g, nil
}

// merge adds the nodes of one field level to parent: the items first, then
// the fields they left unmapped.
func merge(parent *viz.Node, fields []Field, items []Item) {
	used := mergeItems(parent, fields, items)
	for _, f := range fields {
		if !used[f.Name] {
			parent.AddChild(fieldNode(parent.Path, f))
		}
	}
}

// mergeItems adds one node per item and returns the field names consumed.
// Conditionals address fields of the level they sit on, so their items are
// merged against the same fields.
func mergeItems(parent *viz.Node, fields []Field, items []Item) map[string]bool {
	used := make(map[string]bool)
	for i := range items {
		it := &items[i]
		kind := it.Kind()
		if kind == "" {
			continue
		}
		path := nodepath.Join(parent.Path, it.segment(i))

		if kind != KindField {
			n := viz.NewGroup(path, viz.NodeData{
				ProcessorName: kind,
				Label:         conditionalLabel(it),
				Meta:          viz.Metadata{"expression": it.Expression()},
			})
			for name := range mergeItems(n, fields, it.children()) {
				used[name] = true
			}
			parent.AddChild(n)
			continue
		}

		data := viz.NodeData{ProcessorName: KindField, Label: it.Field}
		var sub []Field
		if f, ok := findField(fields, it.Field); ok {
			data.Meta = fieldMeta(*f)
			sub = f.Fields
		} else {
			data.Meta = viz.Metadata{"unknown": true}
		}
		data.IsGroup = len(sub) > 0 || len(it.Items) > 0
		n := viz.NewNode(path, data)
		merge(n, sub, it.Items)
		parent.AddChild(n)
		used[it.Field] = true
	}
	return used
}

func conditionalLabel(it *Item) string {
	if e := it.Expression(); e != "" {
		return it.Kind() + " " + e
	}
	return it.Kind()
}

func findField(fields []Field, name string) (*Field, bool) {
	for i := range fields {
		if fields[i].Name == name {
			return &fields[i], true
		}
	}
	return nil, false
}

func splitRel(rel string) []string {
	var out []string
	for _, s := range strings.Split(rel, "/") {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
