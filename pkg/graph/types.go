package graph

import (
	"encoding/json"
	"fmt"
	"maps"

	"github.com/Ortofta/kaoto/pkg/icons"
	"github.com/Ortofta/kaoto/pkg/links"
	"github.com/Ortofta/kaoto/pkg/viz"
)

// =============================================================================
// Graph - Visualization Tree Serialization
// =============================================================================

// Graph is the canonical serialization format for visualization graphs.
type Graph struct {
	Root  string `json:"root"`
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// Node is one vertex of a serialized graph.
type Node struct {
	Path      string         `json:"path"`
	Parent    string         `json:"parent,omitempty"` // Empty for the root
	Kind      string         `json:"kind,omitempty"`   // Processor name, e.g. "choice"
	Component string         `json:"component,omitempty"`
	Label     string         `json:"label,omitempty"`
	Icon      string         `json:"icon,omitempty"`
	Group     bool           `json:"group,omitempty"`
	Meta      map[string]any `json:"meta,omitempty"`
}

// DisplayLabel returns the label if set, otherwise the kind, otherwise the
// path.
func (n *Node) DisplayLabel() string {
	switch {
	case n.Label != "":
		return n.Label
	case n.Kind != "":
		return n.Kind
	}
	return n.Path
}

// Edge is a containment edge from a parent to one of its children.
type Edge struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// =============================================================================
// viz.Graph ↔ Graph Conversion
// =============================================================================

// FromViz converts a visualization graph to its serialization format.
// Nodes appear in pre-order so that the output is deterministic.
func FromViz(g *viz.Graph) Graph {
	out := Graph{Root: g.Root().Path, Nodes: make([]Node, 0, g.Len())}

	var visit func(parent string, n *viz.Node)
	visit = func(parent string, n *viz.Node) {
		out.Nodes = append(out.Nodes, nodeFromViz(parent, n))
		if parent != "" {
			out.Edges = append(out.Edges, Edge{From: parent, To: n.Path})
		}
		for _, c := range n.Children() {
			visit(n.Path, c)
		}
	}
	visit("", g.Root())

	if out.Edges == nil {
		out.Edges = []Edge{}
	}
	return out
}

// ToViz rebuilds a visualization graph. Children are attached in edge order.
// Exactly one node must have no incoming edge and it must match Root.
func ToViz(gj Graph) (*viz.Graph, error) {
	if len(gj.Nodes) == 0 {
		return nil, fmt.Errorf("graph has no nodes")
	}

	nodes := make(map[string]*viz.Node, len(gj.Nodes))
	for _, nj := range gj.Nodes {
		if _, dup := nodes[nj.Path]; dup {
			return nil, fmt.Errorf("%w: %s", viz.ErrDuplicatePath, nj.Path)
		}
		nodes[nj.Path] = viz.NewNode(nj.Path, nodeDataFromJSON(nj))
	}

	hasParent := make(map[string]bool, len(gj.Edges))
	for _, e := range gj.Edges {
		from, ok := nodes[e.From]
		if !ok {
			return nil, fmt.Errorf("edge %s→%s: unknown parent", e.From, e.To)
		}
		to, ok := nodes[e.To]
		if !ok {
			return nil, fmt.Errorf("edge %s→%s: unknown child", e.From, e.To)
		}
		if hasParent[e.To] {
			return nil, fmt.Errorf("edge %s→%s: node already has a parent", e.From, e.To)
		}
		hasParent[e.To] = true
		from.AddChild(to)
	}

	root := gj.Root
	if root == "" {
		root = gj.Nodes[0].Path
	}
	if hasParent[root] {
		return nil, fmt.Errorf("root %s has a parent", root)
	}
	r, ok := nodes[root]
	if !ok {
		return nil, fmt.Errorf("root %s is not a node", root)
	}

	g, err := viz.NewGraph(r)
	if err != nil {
		return nil, err
	}
	if g.Len() != len(nodes) {
		return nil, fmt.Errorf("%d nodes are not reachable from root %s", len(nodes)-g.Len(), root)
	}
	return g, nil
}

// UnmarshalGraph deserializes JSON bytes to a Graph.
func UnmarshalGraph(data []byte) (Graph, error) {
	var g Graph
	if err := json.Unmarshal(data, &g); err != nil {
		return Graph{}, err
	}
	return g, nil
}

func nodeFromViz(parent string, n *viz.Node) Node {
	d := n.Data
	node := Node{
		Path:      n.Path,
		Parent:    parent,
		Kind:      d.ProcessorName,
		Component: d.ComponentName,
		Label:     d.Label,
		Icon:      string(d.Icon),
		Group:     n.IsGroup,
	}
	if len(d.Meta) > 0 {
		node.Meta = maps.Clone(map[string]any(d.Meta))
	}
	return node
}

func nodeDataFromJSON(nj Node) viz.NodeData {
	return viz.NodeData{
		ProcessorName: nj.Kind,
		ComponentName: nj.Component,
		Icon:          icons.Ref(nj.Icon),
		IsGroup:       nj.Group,
		Label:         nj.Label,
		Meta:          viz.Metadata(maps.Clone(nj.Meta)),
	}
}

// =============================================================================
// Links - Extraction Result Serialization
// =============================================================================

// Links is the serialization format of one link extraction pass.
type Links struct {
	Canvas      Rect          `json:"canvas"`
	Connections []Link        `json:"connections"`
	Dropped     []Correlation `json:"dropped,omitempty"`
	Duplicates  int           `json:"duplicates,omitempty"`
}

// Link is one drawn connection.
type Link struct {
	Source       string  `json:"source"`
	Target       string  `json:"target"`
	SourceAnchor string  `json:"sourceAnchor"`
	TargetAnchor string  `json:"targetAnchor"`
	Folded       bool    `json:"folded,omitempty"`
	Points       []Point `json:"points"`
}

// Correlation is a declared source/target pair.
type Correlation struct {
	Source string `json:"source"`
	Target string `json:"target"`
}

// Point is a canvas-relative position.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Rect is an axis-aligned rectangle.
type Rect struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// FromResult converts an extraction result. Points are relative to the
// canvas origin and routed around it as [links.Line.Polyline] does.
func FromResult(res links.Result, canvas links.Rect) Links {
	origin := links.Point{X: canvas.X, Y: canvas.Y}
	local := links.Rect{W: canvas.W, H: canvas.H}

	out := Links{
		Canvas:      Rect{X: canvas.X, Y: canvas.Y, W: canvas.W, H: canvas.H},
		Connections: make([]Link, len(res.Connections)),
		Duplicates:  res.Duplicates,
	}
	for i, c := range res.Connections {
		pts := c.Line(origin).Polyline(local)
		link := Link{
			Source:       c.SourcePath,
			Target:       c.TargetPath,
			SourceAnchor: c.SourceAnchor,
			TargetAnchor: c.TargetAnchor,
			Folded:       c.Folded(),
			Points:       make([]Point, len(pts)),
		}
		for j, p := range pts {
			link.Points[j] = Point{X: p.X, Y: p.Y}
		}
		out.Connections[i] = link
	}
	for _, d := range res.Dropped {
		out.Dropped = append(out.Dropped, Correlation{Source: d.SourcePath, Target: d.TargetPath})
	}
	return out
}
