package core

// Point is a position in world units, X in columns and Y in rows
type Point struct {
	X, Y float64
}

// Add returns p translated by (dx, dy)
func (p Point) Add(dx, dy float64) Point {
	return Point{X: p.X + dx, Y: p.Y + dy}
}

// Rect is an axis-aligned box with top-left corner (X, Y)
type Rect struct {
	X, Y          float64
	Width, Height float64
}

// NewRect creates a rect from top-left corner and size
func NewRect(x, y, w, h float64) Rect {
	return Rect{X: x, Y: y, Width: w, Height: h}
}

// RectAround returns a w x h rect centered on p
func RectAround(p Point, w, h float64) Rect {
	return Rect{X: p.X - w/2, Y: p.Y - h/2, Width: w, Height: h}
}

func (r Rect) Right() float64  { return r.X + r.Width }
func (r Rect) Bottom() float64 { return r.Y + r.Height }

// Center returns the center point of the rect
func (r Rect) Center() Point {
	return Point{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

// TopLeft returns the anchor corner
func (r Rect) TopLeft() Point {
	return Point{X: r.X, Y: r.Y}
}

// Offset returns r translated by (dx, dy)
func (r Rect) Offset(dx, dy float64) Rect {
	r.X += dx
	r.Y += dy
	return r
}

// CenteredOn returns r moved so that its center is p
func (r Rect) CenteredOn(p Point) Rect {
	return RectAround(p, r.Width, r.Height)
}

// Grow expands every edge by d, negative d shrinks
func (r Rect) Grow(d float64) Rect {
	return Rect{X: r.X - d, Y: r.Y - d, Width: r.Width + 2*d, Height: r.Height + 2*d}
}

// Intersects reports positive-area overlap, touching edges do not intersect
func (r Rect) Intersects(o Rect) bool {
	return r.X < o.Right() && o.X < r.Right() && r.Y < o.Bottom() && o.Y < r.Bottom()
}

// Touches reports overlap or shared edges
func (r Rect) Touches(o Rect) bool {
	return r.X <= o.Right() && o.X <= r.Right() && r.Y <= o.Bottom() && o.Y <= r.Bottom()
}

// ContainsPoint checks if p lies inside r (right/bottom edges exclusive)
func (r Rect) ContainsPoint(p Point) bool {
	return p.X >= r.X && p.X < r.Right() && p.Y >= r.Y && p.Y < r.Bottom()
}

// Inside reports whether r lies fully within a w x h world
func (r Rect) Inside(w, h float64) bool {
	return r.X >= 0 && r.Y >= 0 && r.Right() <= w && r.Bottom() <= h
}

// ClampInto moves r the minimum amount needed to fit inside a w x h world
// Size is preserved unless r is larger than the world
func (r Rect) ClampInto(w, h float64) Rect {
	if r.Width > w {
		r.Width = w
	}
	if r.Height > h {
		r.Height = h
	}
	r.X = min(max(r.X, 0), w-r.Width)
	r.Y = min(max(r.Y, 0), h-r.Height)
	return r
}
