package navigation

import (
	"fmt"
	"math"
	"time"

	"github.com/lixenwraith/termnav/core"
	"github.com/lixenwraith/termnav/engine"
)

// Puppet replays one precomputed path on a fixed schedule, ignoring obstacles that appear later
// Speed is waypoints per simulated second, the velocity itself is never given a speed
type Puppet struct {
	movement
	points   []core.Point
	consumed int

	started bool
	start   time.Duration
}

// NewPuppet plans a path to dest and returns ErrNoPath when there is none
func NewPuppet(sim *Sim, v *core.Velocity, speed SpeedEval, dest core.Rect) (*Puppet, error) {
	m, err := newMovement(sim, v, speed, "puppet")
	if err != nil {
		return nil, err
	}

	el := v.Element()
	width, height := sim.Space.Size()
	points := FindPath(width, height, el.MassBounds(), dest, sim.Space.Obstacles(el), sim.Debug)
	if points == nil {
		return nil, fmt.Errorf("%w: element %d from %v to %v", ErrNoPath, el.ID, el.Center(), dest.Center())
	}

	p := &Puppet{movement: m, points: points}
	p.watch()
	return p, nil
}

// Step implements engine.Task
func (p *Puppet) Step(now time.Duration) engine.Yield {
	if !p.begin() {
		return engine.Done()
	}
	if !p.started {
		p.started = true
		p.start = now
	}

	expected := int(math.Floor((now - p.start).Seconds() * p.speed()))
	if p.consumed >= expected {
		return engine.Next()
	}

	p.element.MoveCenterTo(p.points[p.consumed])
	p.consumed++
	if p.consumed >= len(p.points) {
		p.finish(OutcomeExhausted)
		return engine.Done()
	}
	return engine.Next()
}

// Remaining returns waypoints not yet visited
func (p *Puppet) Remaining() int {
	return len(p.points) - p.consumed
}

// IsMoving reports whether waypoints remain to be replayed
func (p *Puppet) IsMoving() bool {
	return p.outcome == OutcomeRunning && p.consumed < len(p.points)
}
