package render

import "github.com/lixenwraith/termnav/navigation"

type cellKey struct{ x, y int }

// Overlay records planner debug marks per cell, the strongest mark wins
// Ordering: path over visited over blocked
type Overlay struct {
	marks map[cellKey]navigation.CellMark
}

var (
	_ navigation.Highlighter = (*Overlay)(nil)
	_ navigation.Clearer     = (*Overlay)(nil)
)

// NewOverlay creates an empty overlay
func NewOverlay() *Overlay {
	return &Overlay{marks: make(map[cellKey]navigation.CellMark)}
}

// Highlight implements navigation.Highlighter
func (o *Overlay) Highlight(x, y int, mark navigation.CellMark) {
	k := cellKey{x, y}
	if prev, ok := o.marks[k]; ok && prev >= mark {
		return
	}
	o.marks[k] = mark
}

// Mark returns the mark at (x, y)
func (o *Overlay) Mark(x, y int) (navigation.CellMark, bool) {
	m, ok := o.marks[cellKey{x, y}]
	return m, ok
}

// Len returns the number of marked cells
func (o *Overlay) Len() int {
	return len(o.marks)
}

// Clear drops every mark, the planner calls it before each new search
func (o *Overlay) Clear() {
	clear(o.marks)
}
