package mapper

import (
	"strconv"

	"github.com/Ortofta/kaoto/pkg/icons"
	"github.com/Ortofta/kaoto/pkg/nodepath"
	"github.com/Ortofta/kaoto/pkg/route"
	"github.com/Ortofta/kaoto/pkg/viz"
)

// Mapper converts one step, and its structural descendants, into a node
// subtree mounted at path.
type Mapper interface {
	// Kind is the step kind the mapper handles. The default mapper
	// reports "".
	Kind() string
	Convert(path string, lookup route.LookupResult, def route.Definition) *viz.Node
}

// entityKinds are top-level entities rather than processors; they take
// entity icons.
var entityKinds = map[string]bool{
	"route":                   true,
	"routeConfiguration":      true,
	"routeTemplate":           true,
	"intercept":               true,
	"interceptFrom":           true,
	"interceptSendToEndpoint": true,
	"onCompletion":            true,
	"onException":             true,
	"errorHandler":            true,
	"rest":                    true,
	"restConfiguration":       true,
	"beans":                   true,
}

// Base carries what every variant shares: recursive dispatch back into the
// registry and icon resolution.
type Base struct {
	reg   *Registry
	icons icons.Resolver
}

// Data builds the node payload for a step.
func (b *Base) Data(lookup route.LookupResult, def route.Definition, group bool) viz.NodeData {
	data := viz.NodeData{
		ProcessorName: lookup.ProcessorName,
		ComponentName: lookup.ComponentName,
		IsGroup:       group,
		Label:         def.Description(),
		Definition:    def,
	}
	if data.Label == "" && lookup.IsEndpoint() {
		data.Label = lookup.ComponentName
	}
	if id := def.ID(); id != "" {
		data.Meta = viz.Metadata{"id": id}
	}
	data.Icon = b.icon(lookup)
	return data
}

func (b *Base) icon(lookup route.LookupResult) icons.Ref {
	switch {
	case lookup.IsEndpoint() && route.IsKamelet(lookup.ComponentName):
		return b.icons.Resolve(lookup.ComponentName, icons.Kamelet)
	case lookup.IsEndpoint():
		return b.icons.Resolve(lookup.ComponentName, icons.Component)
	case entityKinds[lookup.ProcessorName]:
		return b.icons.Resolve(lookup.ProcessorName, icons.Entity)
	default:
		return b.icons.Resolve(lookup.ProcessorName, icons.EIP)
	}
}

// Leaf builds a node without children.
func (b *Base) Leaf(path string, lookup route.LookupResult, def route.Definition) *viz.Node {
	return viz.NewNode(path, b.Data(lookup, def, false))
}

// Group builds a group node without children.
func (b *Base) Group(path string, lookup route.LookupResult, def route.Definition) *viz.Node {
	return viz.NewGroup(path, b.Data(lookup, def, true))
}

// childPath is where a child read from slotPath is mounted.
func childPath(slotPath string, child route.Definition) string {
	if child.Wrapped() {
		return nodepath.Join(slotPath, child.Kind())
	}
	return slotPath
}

// ChildrenFromBranch converts the steps of def in order, mounting the i-th
// at path/steps/i.
func (b *Base) ChildrenFromBranch(path string, def route.Definition) []*viz.Node {
	return b.ChildrenFromList(path, def, route.StepsSlot, "")
}

// ChildrenFromList converts the entries of a list slot, mounting the i-th at
// path/slot/i. Entries without a kind of their own are read as impliedKind.
func (b *Base) ChildrenFromList(path string, def route.Definition, slot, impliedKind string) []*viz.Node {
	items := def.List(slot, impliedKind)
	if len(items) == 0 {
		return nil
	}
	out := make([]*viz.Node, len(items))
	for i, item := range items {
		out[i] = b.reg.Convert(childPath(nodepath.Join(path, slot, strconv.Itoa(i)), item), item)
	}
	return out
}

// ChildFromSlot converts the single definition in a named slot, mounted at
// path/slot. It returns nil when the slot is absent or null.
func (b *Base) ChildFromSlot(path string, def route.Definition, slot, impliedKind string) *viz.Node {
	child, ok := def.Slot(slot, impliedKind)
	if !ok {
		return nil
	}
	return b.reg.Convert(childPath(nodepath.Join(path, slot), child), child)
}

func addAll(parent *viz.Node, children []*viz.Node) {
	for _, c := range children {
		parent.AddChild(c)
	}
}
