package viz

import (
	"errors"
	"fmt"

	"github.com/Ortofta/kaoto/pkg/nodepath"
)

var (
	// ErrEmptyPath is returned by [NewGraph] when a node has an empty path.
	ErrEmptyPath = errors.New("node path must not be empty")

	// ErrDuplicatePath is returned by [NewGraph] when two nodes share a path.
	// The path index cannot address either of them reliably.
	ErrDuplicatePath = errors.New("duplicate node path")

	// ErrNilRoot is returned by [NewGraph] when no root is given.
	ErrNilRoot = errors.New("graph root must not be nil")
)

// Graph is an indexed, immutable visualization tree.
type Graph struct {
	root  *Node
	index map[string]*Node
	order []string
}

// NewGraph indexes the tree rooted at root. The tree must not be modified
// afterwards.
func NewGraph(root *Node) (*Graph, error) {
	if root == nil {
		return nil, ErrNilRoot
	}
	g := &Graph{root: root, index: make(map[string]*Node)}
	var err error
	root.Walk(func(n *Node) bool {
		if err != nil {
			return false
		}
		switch {
		case n.Path == "":
			err = ErrEmptyPath
		case g.index[n.Path] != nil:
			err = fmt.Errorf("%w: %s", ErrDuplicatePath, n.Path)
		default:
			g.index[n.Path] = n
			g.order = append(g.order, n.Path)
		}
		return err == nil
	})
	if err != nil {
		return nil, err
	}
	return g, nil
}

// Root returns the root node.
func (g *Graph) Root() *Node { return g.root }

// Len returns the number of nodes.
func (g *Graph) Len() int { return len(g.order) }

// Lookup returns the node with the given path, or nil.
func (g *Graph) Lookup(path string) *Node { return g.index[path] }

// Has reports whether a node with the given path exists.
func (g *Graph) Has(path string) bool {
	_, ok := g.index[path]
	return ok
}

// Paths returns every node path in depth-first pre-order.
func (g *Graph) Paths() []string {
	out := make([]string, len(g.order))
	copy(out, g.order)
	return out
}

// Walk visits the graph depth-first in pre-order. See [Node.Walk].
func (g *Graph) Walk(fn func(*Node) bool) { g.root.Walk(fn) }

// ParentOf returns the closest ancestor of path that is a node of g. It
// reports false for the root, for paths outside the tree, and for malformed
// paths whose ancestry cannot be resolved.
func (g *Graph) ParentOf(path string) (*Node, bool) {
	parent, ok := nodepath.Parent(path)
	if !ok || parent == path {
		return nil, false
	}
	p, ok := nodepath.ClosestResolvable(parent, g.Has)
	if !ok {
		return nil, false
	}
	return g.index[p], true
}

// Depth returns the number of indexed ancestors of path, 0 for the root.
// It returns -1 when path is not a node of g.
func (g *Graph) Depth(path string) int {
	if !g.Has(path) {
		return -1
	}
	d := 0
	for cur := path; ; d++ {
		n, ok := g.ParentOf(cur)
		if !ok {
			return d
		}
		cur = n.Path
	}
}

// Groups returns the paths of all group nodes in pre-order.
func (g *Graph) Groups() []string {
	var out []string
	for _, p := range g.order {
		if g.index[p].IsGroup {
			out = append(out, p)
		}
	}
	return out
}
