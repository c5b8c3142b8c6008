package navigation

import (
	"time"

	"github.com/lixenwraith/termnav/core"
	"github.com/lixenwraith/termnav/vmath"
)

// NavigationPath is the unconsumed remainder of a plan as unit probe rects
// The tail only ever shrinks
type NavigationPath struct {
	tail         []core.Rect
	lastProgress time.Duration
}

// NewNavigationPath wraps planner waypoints, progress is stamped at now
func NewNavigationPath(points []core.Point, now time.Duration) *NavigationPath {
	tail := make([]core.Rect, len(points))
	for i, p := range points {
		tail[i] = core.RectAround(p, 1, 1)
	}
	return &NavigationPath{tail: tail, lastProgress: now}
}

// PruneTail drops, in one batch, the farthest waypoint within closeEnough of agent
// and every waypoint before it, returns how many were removed
func (p *NavigationPath) PruneTail(agent core.Point, closeEnough float64, now time.Duration) int {
	for i := len(p.tail) - 1; i >= 0; i-- {
		if vmath.NormalizedDistance(agent, p.tail[i].Center()) <= closeEnough {
			n := i + 1
			p.tail = p.tail[n:]
			p.lastProgress = now
			return n
		}
	}
	return 0
}

// Head returns the next unconsumed waypoint
func (p *NavigationPath) Head() (core.Rect, bool) {
	if len(p.tail) == 0 {
		return core.Rect{}, false
	}
	return p.tail[0], true
}

// Len returns the number of remaining waypoints
func (p *NavigationPath) Len() int {
	return len(p.tail)
}

// Waypoints returns the centers of the remaining waypoints
func (p *NavigationPath) Waypoints() []core.Point {
	out := make([]core.Point, len(p.tail))
	for i, r := range p.tail {
		out[i] = r.Center()
	}
	return out
}

// LastProgress returns the simulation time of the last successful prune
func (p *NavigationPath) LastProgress() time.Duration {
	return p.lastProgress
}

// IsReallyStuck reports no progress for longer than threshold
func (p *NavigationPath) IsReallyStuck(now, threshold time.Duration) bool {
	return now-p.lastProgress > threshold
}
