package physics

import (
	"time"

	"github.com/lixenwraith/termnav/core"
	"github.com/lixenwraith/termnav/vmath"
)

// Integrator applies each element's velocity to its bounds once per tick
type Integrator struct {
	space *Space
}

// NewIntegrator creates an integrator over space
func NewIntegrator(space *Space) *Integrator {
	return &Integrator{space: space}
}

// Apply advances every moving element by speed*dt along its heading
// Signature matches engine.Scheduler.AfterStep
func (in *Integrator) Apply(dt time.Duration) {
	secs := dt.Seconds()
	for _, el := range in.space.Elements() {
		v := el.Velocity()
		if v.Speed <= 0 {
			continue
		}
		dx, dy := vmath.RadialOffset(v.Angle(), v.Speed*secs)
		in.move(el, dx, dy)
	}
}

// move displaces el honoring its collision behavior, returns true if it moved at all
func (in *Integrator) move(el *core.Element, dx, dy float64) bool {
	from := el.Bounds()
	if in.free(el, from, from.Offset(dx, dy)) {
		el.MoveBy(dx, dy)
		return true
	}

	v := el.Velocity()
	switch v.Collision {
	case core.CollisionSlide:
		if dx != 0 && in.free(el, from, from.Offset(dx, 0)) {
			el.MoveBy(dx, 0)
			return true
		}
		if dy != 0 && in.free(el, from, from.Offset(0, dy)) {
			el.MoveBy(0, dy)
			return true
		}
	case core.CollisionBounce:
		v.SetAngle(v.Angle().Opposite())
	}
	return false
}

// free checks to against world bounds and colliders
// Colliders already overlapping from are ignored so an embedded body can work itself loose
func (in *Integrator) free(el *core.Element, from, to core.Rect) bool {
	w, h := in.space.Size()
	if !to.Inside(float64(w), float64(h)) {
		return false
	}
	for _, other := range in.space.elements {
		if other == el || !other.IsAlive() || !blocks(el, other) {
			continue
		}
		ob := other.Bounds()
		if to.Intersects(ob) && !from.Intersects(ob) {
			return false
		}
	}
	return true
}
