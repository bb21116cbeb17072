package overlay

// Point is a position in global (screen) coordinates, measured in cells.
type Point struct {
	X, Y int
}

// Add returns p translated by q.
func (p Point) Add(q Point) Point { return Point{X: p.X + q.X, Y: p.Y + q.Y} }

// Sub returns the delta from q to p.
func (p Point) Sub(q Point) Point { return Point{X: p.X - q.X, Y: p.Y - q.Y} }

// Size is a width/height pair in cells.
type Size struct {
	W, H int
}

// Rect is an axis-aligned rectangle anchored at its top-left corner.
type Rect struct {
	Min  Point
	Size Size
}

// Contains reports whether p lies inside r.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Min.X && p.X < r.Min.X+r.Size.W &&
		p.Y >= r.Min.Y && p.Y < r.Min.Y+r.Size.H
}
