package navigation

import (
	"math"

	"github.com/zyedidia/generic/mapset"

	"github.com/lixenwraith/termnav/core"
)

// Step costs, diagonal ≈ 10·√2
const (
	costCardinal = 10
	costDiagonal = 14
)

// dirVectors lists the 8 neighbours, cardinals on even indices
var dirVectors = [8][2]int{
	{1, 0}, {1, 1}, {0, 1}, {-1, 1},
	{-1, 0}, {-1, -1}, {0, -1}, {1, -1},
}

type cell struct{ x, y int }

// octile is the 8-way distance estimate in step cost units
func octile(ax, ay, bx, by int) int {
	dx, dy := ax-bx, ay-by
	if dx < 0 {
		dx = -dx
	}
	if dy < 0 {
		dy = -dy
	}
	lo, hi := dx, dy
	if lo > hi {
		lo, hi = hi, lo
	}
	return costDiagonal*lo + costCardinal*(hi-lo)
}

// footprint is the cell block a body covers when its top-left sits on a cell
type footprint struct{ w, h int }

func footprintOf(r core.Rect) footprint {
	const eps = 1e-9
	return footprint{
		w: max(1, int(math.Ceil(r.Width-eps))),
		h: max(1, int(math.Ceil(r.Height-eps))),
	}
}

// anchor returns the top-left cell placing the footprint's center nearest p, kept inside the grid
func (f footprint) anchor(p core.Point, worldW, worldH int) (int, int) {
	x := int(math.Floor(p.X - float64(f.w)/2 + 0.5))
	y := int(math.Floor(p.Y - float64(f.h)/2 + 0.5))
	return clampSpan(x, f.w, worldW), clampSpan(y, f.h, worldH)
}

// center returns the body center when the footprint's top-left is on (x, y)
func (f footprint) center(x, y int) core.Point {
	return core.Point{X: float64(x) + float64(f.w)/2, Y: float64(y) + float64(f.h)/2}
}

// FindPath plans a route for a body shaped like start through a worldW×worldH unit-cell raster
// Search positions are the body's top-left cell, a position is open only when every cell
// under the body is, so gaps narrower than the body are never used
// Returns body centers in travel order excluding the start, nil when unreachable
// Cells under the body at start and at target are walkable even when covered by an obstacle
func FindPath(worldW, worldH int, start, target core.Rect, obstacles []core.Rect, debug Highlighter) []core.Point {
	if worldW <= 0 || worldH <= 0 {
		return nil
	}

	fp := footprintOf(start)
	sx, sy := fp.anchor(start.Center(), worldW, worldH)
	tx, ty := fp.anchor(target.Center(), worldW, worldH)

	if sx == tx && sy == ty {
		return []core.Point{fp.center(tx, ty)}
	}

	blocked := make([]bool, worldW*worldH)
	for _, o := range obstacles {
		a := core.CellsOf(o, worldW, worldH)
		for y := a.Y; y < a.Y+a.Height; y++ {
			for x := a.X; x < a.X+a.Width; x++ {
				blocked[y*worldW+x] = true
			}
		}
	}
	for _, c := range [2]cell{{sx, sy}, {tx, ty}} {
		for y := c.y; y < min(c.y+fp.h, worldH); y++ {
			for x := c.x; x < min(c.x+fp.w, worldW); x++ {
				blocked[y*worldW+x] = false
			}
		}
	}

	if debug != nil {
		for i, b := range blocked {
			if b {
				debug.Highlight(i%worldW, i/worldW, MarkBlocked)
			}
		}
	}

	// Body-sized dilation of the raster, summed per cell so each lookup is O(1)
	sum := make([]int, (worldW+1)*(worldH+1))
	for y := 0; y < worldH; y++ {
		for x := 0; x < worldW; x++ {
			v := 0
			if blocked[y*worldW+x] {
				v = 1
			}
			sum[(y+1)*(worldW+1)+x+1] = v + sum[y*(worldW+1)+x+1] + sum[(y+1)*(worldW+1)+x] - sum[y*(worldW+1)+x]
		}
	}
	walkable := func(x, y int) bool {
		if x < 0 || y < 0 || x+fp.w > worldW || y+fp.h > worldH {
			return false
		}
		x1, y1 := x+fp.w, y+fp.h
		stride := worldW + 1
		return sum[y1*stride+x1]-sum[y*stride+x1]-sum[y1*stride+x]+sum[y*stride+x] == 0
	}

	nodes := make(map[cell]*node)
	closed := mapset.New[cell]()
	open := make(openHeap, 0, 64)

	first := &node{x: sx, y: sy, h: octile(sx, sy, tx, ty)}
	nodes[cell{sx, sy}] = first
	open.push(first)

	for len(open) > 0 {
		cur := open.pop()
		if cur.x == tx && cur.y == ty {
			return retrace(cur, fp, debug)
		}
		closed.Put(cell{cur.x, cur.y})
		if debug != nil {
			debug.Highlight(cur.x, cur.y, MarkVisited)
		}

		for dir, d := range dirVectors {
			nx, ny := cur.x+d[0], cur.y+d[1]
			if !walkable(nx, ny) || closed.Has(cell{nx, ny}) {
				continue
			}
			cost := costCardinal
			if dir%2 == 1 {
				// No corner cutting: both orthogonal neighbours must be open
				if !walkable(cur.x+d[0], cur.y) || !walkable(cur.x, cur.y+d[1]) {
					continue
				}
				cost = costDiagonal
			}

			g := cur.g + cost
			key := cell{nx, ny}
			n, seen := nodes[key]
			if !seen {
				n = &node{x: nx, y: ny, g: g, h: octile(nx, ny, tx, ty), parent: cur, heapIndex: -1}
				nodes[key] = n
				open.push(n)
				continue
			}
			if g < n.g {
				n.g = g
				n.parent = cur
				if n.heapIndex >= 0 {
					open.decrease(n)
				} else {
					open.push(n)
				}
			}
		}
	}
	return nil
}

func retrace(end *node, fp footprint, debug Highlighter) []core.Point {
	var rev []core.Point
	for n := end; n.parent != nil; n = n.parent {
		rev = append(rev, fp.center(n.x, n.y))
		if debug != nil {
			debug.Highlight(n.x, n.y, MarkPath)
		}
	}
	path := make([]core.Point, len(rev))
	for i, p := range rev {
		path[len(rev)-1-i] = p
	}
	return path
}

// clampSpan keeps a span of size n starting at v inside [0, limit)
func clampSpan(v, n, limit int) int {
	if v+n > limit {
		v = limit - n
	}
	return max(v, 0)
}
