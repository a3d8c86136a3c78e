package links

// Point is a position in canvas coordinates.
type Point struct {
	X, Y float64
}

// Sub returns p translated so that origin becomes (0, 0).
func (p Point) Sub(origin Point) Point {
	return Point{X: p.X - origin.X, Y: p.Y - origin.Y}
}

// Rect is an axis-aligned rectangle. Y grows downward.
type Rect struct {
	X, Y, W, H float64
}

func (r Rect) Left() float64   { return r.X }
func (r Rect) Right() float64  { return r.X + r.W }
func (r Rect) Top() float64    { return r.Y }
func (r Rect) Bottom() float64 { return r.Y + r.H }

// MidY returns the vertical centre.
func (r Rect) MidY() float64 { return r.Y + r.H/2 }

// Empty reports whether r has no area.
func (r Rect) Empty() bool { return r.W <= 0 || r.H <= 0 }

// Contains reports whether p lies inside r.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Left() && p.X <= r.Right() && p.Y >= r.Top() && p.Y <= r.Bottom()
}

// Line is a connection drawn from a source anchor to a target anchor.
type Line struct {
	From, To Point
}

// Polyline returns the points a link is drawn through. When canvas is not
// empty the link runs flat to the canvas left edge, crosses the canvas and
// runs flat again from its right edge, so links between panels do not cut
// across panel content.
func (l Line) Polyline(canvas Rect) []Point {
	if canvas.Empty() {
		return []Point{l.From, l.To}
	}
	return []Point{
		l.From,
		{X: canvas.Left(), Y: l.From.Y},
		{X: canvas.Right(), Y: l.To.Y},
		l.To,
	}
}
