package viz

import (
	"github.com/Ortofta/kaoto/pkg/icons"
	"github.com/Ortofta/kaoto/pkg/route"
)

// Metadata stores arbitrary key-value pairs attached to a node, such as a
// document field type or a mapping expression. It is never nil on nodes
// created by [NewNode].
type Metadata map[string]any

// NodeData is the descriptive payload of a node. It is set once at
// construction and not modified afterwards.
type NodeData struct {
	Path          string // Same as the owning node's path
	ProcessorName string // Step kind, e.g. "choice" or "to"
	ComponentName string // Component addressed by an endpoint step, "" otherwise
	Icon          icons.Ref
	IsGroup       bool
	Label         string // Display text; falls back to ProcessorName

	// Definition is the step the node was built from. It is opaque to this
	// package and may be the zero value for synthetic nodes.
	Definition route.Definition

	Meta Metadata
}

// DisplayLabel returns Label, or the processor name when no label is set.
func (d NodeData) DisplayLabel() string {
	if d.Label != "" {
		return d.Label
	}
	if d.ProcessorName != "" {
		return d.ProcessorName
	}
	return d.Path
}

// Node is a vertex of the visualization tree.
//
// The zero value is not usable; create nodes with [NewNode].
type Node struct {
	Path    string
	Data    NodeData
	IsGroup bool

	children []*Node
}

// NewNode creates a node with the given path and data. The data path is
// aligned with the node path and a nil Meta is replaced by an empty map.
// A group flag on the data marks the node as a group.
func NewNode(path string, data NodeData) *Node {
	data.Path = path
	if data.Meta == nil {
		data.Meta = Metadata{}
	}
	return &Node{Path: path, Data: data, IsGroup: data.IsGroup}
}

// NewGroup creates a group node.
func NewGroup(path string, data NodeData) *Node {
	data.IsGroup = true
	return NewNode(path, data)
}

// AddChild appends child to n. Children keep insertion order. No uniqueness
// check is made; duplicate paths are reported when the tree is indexed by
// [NewGraph].
func (n *Node) AddChild(child *Node) {
	n.children = append(n.children, child)
}

// Children returns the children of n in insertion order. The returned slice
// must not be modified.
func (n *Node) Children() []*Node { return n.children }

// IsLeaf reports whether n has no children.
func (n *Node) IsLeaf() bool { return len(n.children) == 0 }

// Walk calls fn for n and every descendant, depth-first in pre-order.
// Returning false from fn skips the descendants of that node.
func (n *Node) Walk(fn func(*Node) bool) {
	if !fn(n) {
		return
	}
	for _, c := range n.children {
		c.Walk(fn)
	}
}

// Count returns the number of nodes in the subtree rooted at n.
func (n *Node) Count() int {
	total := 0
	n.Walk(func(*Node) bool {
		total++
		return true
	})
	return total
}
