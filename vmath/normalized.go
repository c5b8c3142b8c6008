package vmath

import (
	"math"

	"github.com/lixenwraith/termnav/core"
)

// CellAspect is the height/width ratio of a terminal cell
// One row covers as much screen distance as CellAspect columns
const CellAspect = 2.0

// NormalizedDistance returns the screen-isotropic distance between a and b,
// vertical deltas are scaled by CellAspect
func NormalizedDistance(a, b core.Point) float64 {
	dx := b.X - a.X
	dy := (b.Y - a.Y) * CellAspect
	return math.Hypot(dx, dy)
}

// RectDistance returns the normalized distance between rect centers
func RectDistance(a, b core.Rect) float64 {
	return NormalizedDistance(a.Center(), b.Center())
}

// RectGap returns the normalized edge-to-edge distance between a and b, 0 when they touch or overlap
func RectGap(a, b core.Rect) float64 {
	dx := math.Max(0, math.Max(b.X-a.Right(), a.X-b.Right()))
	dy := math.Max(0, math.Max(b.Y-a.Bottom(), a.Y-b.Bottom())) * CellAspect
	return math.Hypot(dx, dy)
}

// Bearing returns the screen-isotropic heading from one point to another
func Bearing(from, to core.Point) core.Angle {
	dx := to.X - from.X
	dy := (to.Y - from.Y) * CellAspect
	if dx == 0 && dy == 0 {
		return 0
	}
	return core.NewAngle(math.Atan2(dy, dx) * 180 / math.Pi)
}

// RadialOffset returns the delta covering a normalized distance along angle
func RadialOffset(a core.Angle, dist float64) (dx, dy float64) {
	rad := a.Radians()
	return math.Cos(rad) * dist, math.Sin(rad) * dist / CellAspect
}

// Project returns p moved by a normalized distance along angle
func Project(p core.Point, a core.Angle, dist float64) core.Point {
	dx, dy := RadialOffset(a, dist)
	return p.Add(dx, dy)
}

// Clamp limits v to [lo, hi]
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ApproxEqual compares floats within eps
func ApproxEqual(a, b, eps float64) bool {
	return math.Abs(a-b) <= eps
}
