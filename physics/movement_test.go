package physics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/termnav/core"
)

const dt = 100 * time.Millisecond

func mover(s *Space, id int, r core.Rect, angle core.Angle, speed float64) *core.Element {
	el := core.NewElement(id, r)
	el.Velocity().SetAngle(angle)
	el.Velocity().Speed = speed
	s.Add(el)
	return el
}

func TestIntegratorMovesAlongHeading(t *testing.T) {
	s := NewSpace(20, 10)
	right := mover(s, 1, core.NewRect(0, 0, 1, 1), 0, 10)
	down := mover(s, 2, core.NewRect(5, 0, 1, 1), core.NewAngle(90), 10)

	NewIntegrator(s).Apply(dt)

	assert.InDelta(t, 1.0, right.Bounds().X, 1e-9)
	assert.InDelta(t, 0.5, down.Bounds().Y, 1e-9, "vertical motion scaled by cell aspect")
}

func TestIntegratorStopsAtObstacle(t *testing.T) {
	s := NewSpace(20, 10)
	el := mover(s, 1, core.NewRect(0, 0, 1, 1), 0, 10)
	s.Add(core.NewElement(2, core.NewRect(1.5, 0, 1, 1)))

	NewIntegrator(s).Apply(dt)
	assert.Equal(t, 0.0, el.Bounds().X)
}

func TestIntegratorWorldBounds(t *testing.T) {
	s := NewSpace(2, 2)
	el := mover(s, 1, core.NewRect(0.5, 0, 1, 1), 0, 10)

	NewIntegrator(s).Apply(dt)
	assert.Equal(t, 0.5, el.Bounds().X)
}

func TestIntegratorSlide(t *testing.T) {
	s := NewSpace(20, 10)
	el := mover(s, 1, core.NewRect(0, 2, 1, 1), core.NewAngle(45), 10)
	el.Velocity().Collision = core.CollisionSlide
	s.Add(core.NewElement(2, core.NewRect(1.2, 0, 1, 5)))

	NewIntegrator(s).Apply(dt)
	assert.Equal(t, 0.0, el.Bounds().X)
	assert.Greater(t, el.Bounds().Y, 2.0)
}

func TestIntegratorBounce(t *testing.T) {
	s := NewSpace(20, 10)
	el := mover(s, 1, core.NewRect(0, 0, 1, 1), 0, 10)
	el.Velocity().Collision = core.CollisionBounce
	s.Add(core.NewElement(2, core.NewRect(1.5, 0, 1, 1)))

	NewIntegrator(s).Apply(dt)
	assert.Equal(t, core.Angle(180), el.Velocity().Angle())
}

func TestIntegratorGroupsPassThrough(t *testing.T) {
	s := NewSpace(20, 10)
	el := mover(s, 1, core.NewRect(0, 0, 1, 1), 0, 10)
	el.Velocity().Group = 3
	other := core.NewElement(2, core.NewRect(1.5, 0, 1, 1))
	other.Velocity().Group = 3
	s.Add(other)

	NewIntegrator(s).Apply(dt)
	assert.InDelta(t, 1.0, el.Bounds().X, 1e-9)
	assert.Empty(t, s.Obstacles(el))
}

func TestSpaceDropsDisposed(t *testing.T) {
	s := NewSpace(10, 10)
	a := core.NewElement(1, core.NewRect(0, 0, 1, 1))
	a.Name = "a"
	b := core.NewElement(2, core.NewRect(3, 3, 1, 1))
	b.Name = "b"
	s.Add(a)
	s.Add(b)

	require.Len(t, s.Obstacles(a), 1)
	b.Dispose()
	assert.Empty(t, s.Obstacles(a))
	assert.Nil(t, s.Find("b"))
	assert.Same(t, a, s.Find("a"))
	assert.Len(t, s.Elements(), 1)
}
