package core

import "math"

// Area represents a rectangular block of grid cells
type Area struct {
	X, Y          int // Top-left cell
	Width, Height int // Dimensions in cells
}

// Contains checks if cell (x, y) is within area
func (a Area) Contains(x, y int) bool {
	return x >= a.X && x < a.X+a.Width && y >= a.Y && y < a.Y+a.Height
}

// Empty reports whether the area covers no cells
func (a Area) Empty() bool {
	return a.Width <= 0 || a.Height <= 0
}

// CellsOf returns the cells overlapped by r, clipped to a width x height grid
// A cell [x, x+1) is overlapped only when r covers part of its interior
func CellsOf(r Rect, width, height int) Area {
	x0 := int(math.Floor(r.X))
	y0 := int(math.Floor(r.Y))
	x1 := int(math.Ceil(r.Right())) // exclusive
	y1 := int(math.Ceil(r.Bottom()))

	x0 = max(x0, 0)
	y0 = max(y0, 0)
	x1 = min(x1, width)
	y1 = min(y1, height)

	if x1 <= x0 || y1 <= y0 {
		return Area{X: x0, Y: y0}
	}
	return Area{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}

// CellOf returns the cell containing point p
func CellOf(p Point) (x, y int) {
	return int(math.Floor(p.X)), int(math.Floor(p.Y))
}

// CellCenter returns the center point of cell (x, y)
func CellCenter(x, y int) Point {
	return Point{X: float64(x) + 0.5, Y: float64(y) + 0.5}
}
