package links

import (
	kerrors "github.com/Ortofta/kaoto/pkg/errors"
	"github.com/Ortofta/kaoto/pkg/nodepath"
	"github.com/Ortofta/kaoto/pkg/viz"
)

// Correlation declares that the value at TargetPath is computed from the
// field at SourcePath.
type Correlation struct {
	SourcePath string `json:"source"`
	TargetPath string `json:"target"`
}

// NodeReference is a live handle on the rendered representation of a path.
type NodeReference interface {
	// Realized reports whether the path has a geometry handle at all.
	Realized() bool
	// BoundsIfVisible returns the current bounds, or false when the path is
	// not rendered, for example under a collapsed container.
	BoundsIfVisible() (Rect, bool)
}

// Oracle answers visibility and geometry queries by path. Get returns nil
// for unknown paths.
type Oracle interface {
	Get(path string) NodeReference
}

// OracleFunc adapts a function to the Oracle interface.
type OracleFunc func(path string) NodeReference

// Get calls f.
func (f OracleFunc) Get(path string) NodeReference { return f(path) }

// Connection is a link between two visible anchors.
type Connection struct {
	// SourcePath and TargetPath are the correlated paths as declared. They
	// identify the connection even when its ends are folded.
	SourcePath string `json:"sourcePath"`
	TargetPath string `json:"targetPath"`

	// SourceAnchor and TargetAnchor are the visible paths the ends folded to.
	SourceAnchor string `json:"sourceAnchor"`
	TargetAnchor string `json:"targetAnchor"`

	SourceBounds Rect `json:"sourceBounds"`
	TargetBounds Rect `json:"targetBounds"`

	// SourceNode and TargetNode are the anchor nodes, when a graph holding
	// them was passed to Extract.
	SourceNode *viz.Node `json:"-"`
	TargetNode *viz.Node `json:"-"`
}

// Folded reports whether either end is drawn at an ancestor.
func (c Connection) Folded() bool {
	return c.SourceAnchor != c.SourcePath || c.TargetAnchor != c.TargetPath
}

// Line returns the drawn segment relative to origin: from the middle of the
// source's right edge to the middle of the target's left edge.
func (c Connection) Line(origin Point) Line {
	return Line{
		From: Point{X: c.SourceBounds.Right(), Y: c.SourceBounds.MidY()}.Sub(origin),
		To:   Point{X: c.TargetBounds.Left(), Y: c.TargetBounds.MidY()}.Sub(origin),
	}
}

// Result is the outcome of one extraction pass.
type Result struct {
	Connections []Connection
	// Dropped lists correlations with an end that has no visible ancestor.
	Dropped []Correlation
	// Duplicates counts correlations repeating an earlier pair.
	Duplicates int
}

// Extract folds every correlation to visible anchors and returns one
// connection per distinct (SourcePath, TargetPath) pair, in first-seen
// order. Correlations with an end that has no visible ancestor are dropped.
//
// g may be nil. When given, each connection carries the anchor nodes found
// in it. A nil oracle is a wiring error.
func Extract(g *viz.Graph, correlations []Correlation, oracle Oracle) ([]Connection, error) {
	res, err := Resolve(g, correlations, oracle)
	if err != nil {
		return nil, err
	}
	return res.Connections, nil
}

// Resolve is [Extract] with the dropped and duplicate correlations reported.
func Resolve(g *viz.Graph, correlations []Correlation, oracle Oracle) (Result, error) {
	if oracle == nil {
		return Result{}, kerrors.MissingContext("visibility oracle")
	}
	visible := func(path string) bool {
		ref := oracle.Get(path)
		if ref == nil || !ref.Realized() {
			return false
		}
		_, ok := ref.BoundsIfVisible()
		return ok
	}

	var res Result
	seen := make(map[Correlation]bool, len(correlations))
	for _, c := range correlations {
		if seen[c] {
			res.Duplicates++
			continue
		}
		seen[c] = true
		src, ok := nodepath.ClosestResolvable(c.SourcePath, visible)
		if !ok {
			res.Dropped = append(res.Dropped, c)
			continue
		}
		dst, ok := nodepath.ClosestResolvable(c.TargetPath, visible)
		if !ok {
			res.Dropped = append(res.Dropped, c)
			continue
		}
		srcBounds, _ := oracle.Get(src).BoundsIfVisible()
		dstBounds, _ := oracle.Get(dst).BoundsIfVisible()

		conn := Connection{
			SourcePath:   c.SourcePath,
			TargetPath:   c.TargetPath,
			SourceAnchor: src,
			TargetAnchor: dst,
			SourceBounds: srcBounds,
			TargetBounds: dstBounds,
		}
		if g != nil {
			conn.SourceNode = g.Lookup(src)
			conn.TargetNode = g.Lookup(dst)
		}
		res.Connections = append(res.Connections, conn)
	}
	return res, nil
}
