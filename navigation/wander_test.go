package navigation

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/termnav/core"
)

func TestWanderAvoidsObstacleAhead(t *testing.T) {
	w := newTestWorld(t, 40, 20)
	agent := w.add(core.NewRect(10, 10, 1, 1))
	w.wall(13, 8, 2, 5)

	opts := DefaultWanderOptions()
	opts.Weights = map[SenseID]float64{SenseVisibility: 1}
	s, err := NewWander(w.sim, agent.Velocity(), ConstantSpeed(5), opts)
	require.NoError(t, err)

	w.sched.Spawn(s)
	w.ticks(1)

	scores := s.LastScores()
	require.NotEmpty(t, scores)
	require.Equal(t, core.Angle(0), scores[0].Angle, "optimal angle is scored first")

	ahead := scores[0].Component(SenseVisibility).Value
	chosen := agent.Velocity().Angle()
	var chosenVis float64
	for _, sc := range scores {
		if sc.Angle == chosen {
			chosenVis = sc.Component(SenseVisibility).Value
		}
	}
	assert.NotEqual(t, core.Angle(0), chosen)
	assert.Greater(t, chosenVis, ahead)
}

func TestWanderStuckBookkeeping(t *testing.T) {
	w := newTestWorld(t, 10, 10)
	agent := w.add(core.NewRect(4, 4, 1, 1))
	// Walls touch the agent on every side without overlapping it
	w.wall(3, 3, 3, 1)
	w.wall(3, 5, 3, 1)
	w.wall(3, 4, 1, 1)
	w.wall(5, 4, 1, 1)

	s, err := NewWander(w.sim, agent.Velocity(), ConstantSpeed(5), DefaultWanderOptions())
	require.NoError(t, err)
	w.sched.Spawn(s)

	w.ticks(1)
	assert.False(t, s.IsStuck())
	assert.Equal(t, core.Point{X: 4, Y: 4}, agent.Bounds().TopLeft())

	w.ticks(1)
	assert.True(t, s.IsStuck())
	assert.Equal(t, w.sched.Now(), s.LastStuckTime())
	assert.Equal(t, core.Point{X: 4, Y: 4}, agent.Bounds().TopLeft())
	assert.True(t, s.IsMoving(), "still commanding speed while stuck")
}

func TestWanderStuckSinceHoldsStallStart(t *testing.T) {
	w := newTestWorld(t, 10, 10)
	agent := w.add(core.NewRect(4, 4, 1, 1))
	w.wall(3, 3, 3, 1)
	w.wall(3, 5, 3, 1)
	w.wall(3, 4, 1, 1)
	w.wall(5, 4, 1, 1)

	s, err := NewWander(w.sim, agent.Velocity(), ConstantSpeed(5), DefaultWanderOptions())
	require.NoError(t, err)
	w.sched.Spawn(s)

	w.ticks(1)
	assert.Zero(t, s.StuckSince())

	w.ticks(1)
	require.True(t, s.IsStuck())
	began := w.sched.Now()
	assert.Equal(t, began, s.StuckSince())

	w.ticks(3)
	require.True(t, s.IsStuck())
	assert.Equal(t, began, s.StuckSince())
	assert.Equal(t, w.sched.Now(), s.LastStuckTime())
	assert.Greater(t, s.LastStuckTime(), s.StuckSince())
}

func TestWanderNudgesOutOfOverlap(t *testing.T) {
	w := newTestWorld(t, 10, 10)
	agent := w.add(core.NewRect(4, 4, 1, 1))
	w.wall(4.5, 4, 1, 1)

	s, err := NewWander(w.sim, agent.Velocity(), ConstantSpeed(1), DefaultWanderOptions())
	require.NoError(t, err)

	agent.Velocity().SetAngle(0)
	s.committed = 1
	s.before = agent.Bounds().TopLeft()
	s.observe(time.Second)

	assert.False(t, s.IsStuck())
	assert.InDelta(t, 3.5, agent.Bounds().X, 1e-9)
	assert.InDelta(t, 4.0, agent.Bounds().Y, 1e-9)
}

func TestWanderNotStuckWhenIdle(t *testing.T) {
	w := newTestWorld(t, 10, 10)
	agent := w.add(core.NewRect(4, 4, 1, 1))

	s, err := NewWander(w.sim, agent.Velocity(), ConstantSpeed(0), DefaultWanderOptions())
	require.NoError(t, err)
	w.sched.Spawn(s)
	w.ticks(5)

	assert.False(t, s.IsStuck())
	assert.False(t, s.IsMoving())
}

func TestWanderArrivalSnapsOntoCuriosity(t *testing.T) {
	w := newTestWorld(t, 20, 10)
	agent := w.add(core.NewRect(4, 4, 1, 1))
	target := core.NewRect(4.6, 4, 1, 1)

	opts := DefaultWanderOptions()
	opts.CuriosityPoint = func() (core.Rect, bool) { return target, true }
	s, err := NewWander(w.sim, agent.Velocity(), ConstantSpeed(5), opts)
	require.NoError(t, err)
	w.sched.Spawn(s)
	w.ticks(1)

	requireNear(t, target.Center(), agent.Center(), 1e-9)
	assert.Zero(t, agent.Velocity().Speed)
	assert.Nil(t, s.LastScores())
}

func TestWanderDirectLine(t *testing.T) {
	w := newTestWorld(t, 40, 20)
	agent := w.add(core.NewRect(2, 5, 1, 1))

	opts := DefaultWanderOptions()
	opts.CuriosityPoint = func() (core.Rect, bool) { return core.NewRect(20, 5, 1, 1), true }
	s, err := NewWander(w.sim, agent.Velocity(), ConstantSpeed(5), opts)
	require.NoError(t, err)
	w.sched.Spawn(s)
	w.ticks(1)

	assert.Nil(t, s.LastScores(), "straight line bypasses scoring")
	assert.Equal(t, core.Angle(0), agent.Velocity().Angle())
	assert.Equal(t, 5.0, agent.Velocity().Speed)
	assert.InDelta(t, 2.25, agent.Bounds().X, 1e-9)
	assert.Equal(t, []core.Angle{0}, s.History())
}

func TestWanderScoresWhenLineBlocked(t *testing.T) {
	w := newTestWorld(t, 40, 20)
	agent := w.add(core.NewRect(2, 5, 1, 1))
	w.wall(10, 0, 1, 15)

	opts := DefaultWanderOptions()
	opts.CuriosityPoint = func() (core.Rect, bool) { return core.NewRect(20, 5, 1, 1), true }
	s, err := NewWander(w.sim, agent.Velocity(), ConstantSpeed(5), opts)
	require.NoError(t, err)
	w.sched.Spawn(s)
	w.ticks(1)

	require.NotEmpty(t, s.LastScores())
	assert.Equal(t, core.Angle(0), s.LastScores()[0].Angle)
}

func TestWanderHistoryIsBounded(t *testing.T) {
	w := newTestWorld(t, 40, 20)
	agent := w.add(core.NewRect(2, 5, 1, 1))

	s, err := NewWander(w.sim, agent.Velocity(), ConstantSpeed(1), DefaultWanderOptions())
	require.NoError(t, err)
	w.sched.Spawn(s)
	w.ticks(20)

	assert.Len(t, s.History(), 6)
}

func TestWanderPacing(t *testing.T) {
	assert.Equal(t, time.Duration(0), pacing(0, testFrame))
	assert.Equal(t, testFrame, pacing(testFrame, testFrame))
	assert.Equal(t, 3*testFrame, pacing(120*time.Millisecond, testFrame))

	w := newTestWorld(t, 40, 20)
	agent := w.add(core.NewRect(2, 5, 1, 1))
	opts := DefaultWanderOptions()
	opts.ReactionTime = 2 * testFrame
	s, err := NewWander(w.sim, agent.Velocity(), ConstantSpeed(1), opts)
	require.NoError(t, err)
	w.sched.Spawn(s)

	// decide, observe+delay, sleep, decide
	w.ticks(4)
	assert.Equal(t, uint64(3), w.sched.Stepped())
	assert.Len(t, s.History(), 2)
}

func TestWanderStopsWhenElementDisposed(t *testing.T) {
	w := newTestWorld(t, 40, 20)
	agent := w.add(core.NewRect(2, 5, 1, 1))

	s, err := NewWander(w.sim, agent.Velocity(), ConstantSpeed(3), DefaultWanderOptions())
	require.NoError(t, err)
	w.sched.Spawn(s)
	w.ticks(2)
	require.True(t, s.IsMoving())

	agent.Dispose()
	w.ticks(1)

	assert.Equal(t, 0, w.sched.Len())
	assert.Equal(t, OutcomeCancelled, s.Outcome())
	assert.Zero(t, agent.Velocity().Speed)
	assert.True(t, s.Lifetime().IsExpired())
}

func TestWanderStopsWhenLifetimeDisposed(t *testing.T) {
	w := newTestWorld(t, 40, 20)
	agent := w.add(core.NewRect(2, 5, 1, 1))

	s, err := NewWander(w.sim, agent.Velocity(), ConstantSpeed(3), DefaultWanderOptions())
	require.NoError(t, err)
	w.sched.Spawn(s)
	w.ticks(1)

	s.Lifetime().Dispose()
	assert.Zero(t, agent.Velocity().Speed, "speed cleared on disposal")
	assert.Equal(t, OutcomeCancelled, s.Outcome())

	w.ticks(1)
	assert.Equal(t, 0, w.sched.Len())
}

func TestNewWanderRejectsInvalidOptions(t *testing.T) {
	w := newTestWorld(t, 10, 10)
	agent := w.add(core.NewRect(1, 1, 1, 1))

	tests := []struct {
		name string
		mut  func(*WanderOptions)
	}{
		{"precision too large", func(o *WanderOptions) { o.AnglePrecision = 200 }},
		{"negative precision", func(o *WanderOptions) { o.AnglePrecision = -1 }},
		{"negative visibility", func(o *WanderOptions) { o.Visibility = -1 }},
		{"negative reaction", func(o *WanderOptions) { o.ReactionTime = -time.Second }},
		{"nil sense", func(o *WanderOptions) { o.Senses = []Sense{nil} }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultWanderOptions()
			tt.mut(&opts)
			_, err := NewWander(w.sim, agent.Velocity(), ConstantSpeed(1), opts)
			assert.True(t, errors.Is(err, ErrInvalidOptions), "got %v", err)
		})
	}

	_, err := NewWander(w.sim, &core.Velocity{}, ConstantSpeed(1), DefaultWanderOptions())
	assert.ErrorIs(t, err, ErrInvalidOptions)

	_, err = NewWander(nil, agent.Velocity(), ConstantSpeed(1), DefaultWanderOptions())
	assert.ErrorIs(t, err, ErrInvalidOptions)

	_, err = NewWander(w.sim, agent.Velocity(), nil, DefaultWanderOptions())
	assert.ErrorIs(t, err, ErrInvalidOptions)
}

func TestWanderZeroOptionsTakeDefaults(t *testing.T) {
	w := newTestWorld(t, 10, 10)
	agent := w.add(core.NewRect(1, 1, 1, 1))

	s, err := NewWander(w.sim, agent.Velocity(), ConstantSpeed(1), WanderOptions{})
	require.NoError(t, err)
	assert.Equal(t, 45.0, s.Options().AnglePrecision)
	assert.Equal(t, 8.0, s.Options().Visibility)
	assert.Len(t, s.Options().Senses, 3)
}
