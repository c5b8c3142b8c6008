package navigation

import (
	"fmt"
	"time"

	"github.com/lixenwraith/termnav/core"
	"github.com/lixenwraith/termnav/engine"
	"github.com/lixenwraith/termnav/parameter"
	"github.com/lixenwraith/termnav/vmath"
)

// WanderOptions configures reactive steering
// Zero values take the package defaults
type WanderOptions struct {
	AnglePrecision float64 // Degrees between candidates, in (0, 180]
	Visibility     float64 // Sensor horizon, normalized units
	CloseEnough    float64 // Arrival radius for the curiosity point
	ReactionTime   time.Duration

	// CuriosityPoint supplies the point of interest, ok=false when there is none
	CuriosityPoint func() (core.Rect, bool)

	// Weights per sensor, nil takes DefaultWeights, a missing entry weighs 0
	Weights map[SenseID]float64
	Senses  []Sense
}

// DefaultWanderOptions returns options with every default filled in
func DefaultWanderOptions() WanderOptions {
	return WanderOptions{
		AnglePrecision: parameter.WanderAnglePrecision,
		Visibility:     parameter.WanderVisibility,
		CloseEnough:    parameter.WanderCloseEnough,
		ReactionTime:   parameter.WanderReactionTime,
		Weights:        DefaultWeights(),
		Senses:         DefaultSenses(),
	}
}

// resolve fills defaults and validates
func (o WanderOptions) resolve() (WanderOptions, error) {
	switch {
	case o.AnglePrecision < 0 || o.AnglePrecision > 180:
		return o, fmt.Errorf("%w: angle precision %v outside (0, 180]", ErrInvalidOptions, o.AnglePrecision)
	case o.Visibility < 0:
		return o, fmt.Errorf("%w: negative visibility %v", ErrInvalidOptions, o.Visibility)
	case o.CloseEnough < 0:
		return o, fmt.Errorf("%w: negative close enough %v", ErrInvalidOptions, o.CloseEnough)
	case o.ReactionTime < 0:
		return o, fmt.Errorf("%w: negative reaction time %v", ErrInvalidOptions, o.ReactionTime)
	}

	if o.AnglePrecision == 0 {
		o.AnglePrecision = parameter.WanderAnglePrecision
	}
	if o.Visibility == 0 {
		o.Visibility = parameter.WanderVisibility
	}
	if o.CloseEnough == 0 {
		o.CloseEnough = parameter.WanderCloseEnough
	}
	if o.Weights == nil {
		o.Weights = DefaultWeights()
	}
	if o.Senses == nil {
		o.Senses = DefaultSenses()
	}
	for i, s := range o.Senses {
		if s == nil {
			return o, fmt.Errorf("%w: nil sense at %d", ErrInvalidOptions, i)
		}
	}
	return o, nil
}

// Wander steers an element toward an optional curiosity point using local sensing only
type Wander struct {
	movement
	opts WanderOptions
	pace time.Duration

	lastGood core.Angle
	history  []core.Angle

	// Set after a commit, the next step observes the integrated result first
	observing bool
	before    core.Point
	committed float64

	lastScores []WanderScore
}

// NewWander creates a steering strategy driving v
func NewWander(sim *Sim, v *core.Velocity, speed SpeedEval, opts WanderOptions) (*Wander, error) {
	w, err := newWander(sim, v, speed, opts, "wander")
	if err != nil {
		return nil, err
	}
	w.watch()
	return w, nil
}

func newWander(sim *Sim, v *core.Velocity, speed SpeedEval, opts WanderOptions, kind string) (*Wander, error) {
	m, err := newMovement(sim, v, speed, kind)
	if err != nil {
		return nil, err
	}
	opts, err = opts.resolve()
	if err != nil {
		return nil, err
	}
	return &Wander{
		movement: m,
		opts:     opts,
		pace:     pacing(opts.ReactionTime, sim.frame()),
		lastGood: v.Angle(),
	}, nil
}

// pacing rounds the reaction time up to whole integrator frames
func pacing(reaction, frame time.Duration) time.Duration {
	if reaction <= 0 {
		return 0
	}
	frames := (reaction + frame - 1) / frame
	return frames * frame
}

// Step implements engine.Task
func (w *Wander) Step(now time.Duration) engine.Yield {
	if !w.begin() {
		return engine.Done()
	}
	if y, paused := w.settle(now); paused {
		return y
	}
	return w.decide(now)
}

// settle observes the last commit, paused=true means the caller must yield y
func (w *Wander) settle(now time.Duration) (engine.Yield, bool) {
	if !w.observing {
		return engine.Yield{}, false
	}
	w.observing = false
	w.observe(now)
	if w.pace > 0 {
		return engine.Delay(w.pace), true
	}
	return engine.Yield{}, false
}

// decide picks and commits a heading, always suspends for one tick
func (w *Wander) decide(now time.Duration) engine.Yield {
	el := w.element
	bounds := el.MassBounds()
	center := bounds.Center()

	var target core.Rect
	hasTarget := false
	if w.opts.CuriosityPoint != nil {
		target, hasTarget = w.opts.CuriosityPoint()
	}

	if hasTarget && vmath.NormalizedDistance(center, target.Center()) <= w.opts.CloseEnough {
		el.MoveCenterTo(target.Center())
		w.velocity.Stop()
		w.lastScores = nil
		return engine.Next()
	}

	speed := w.speed()
	if speed < 0 {
		speed = 0
	}
	obstacles := w.sim.Space.Obstacles(el)

	if hasTarget {
		if a, ok := w.directLine(bounds, target, obstacles); ok {
			w.lastScores = nil
			w.commit(a, speed)
			return engine.Next()
		}
	}

	optimal := w.lastGood
	if hasTarget && !bounds.Touches(target) {
		optimal = vmath.Bearing(center, target.Center())
	}

	ctx := &SenseContext{
		Sim:       w.sim,
		Element:   el,
		Bounds:    bounds,
		Obstacles: obstacles,
		Target:    target,
		HasTarget: hasTarget,
		LastGood:  w.lastGood,
		History:   w.history,
		Speed:     speed,
		Options:   &w.opts,
	}
	scores := scoreCandidates(ctx, w.opts.Senses, w.opts.Weights, candidateAngles(optimal, w.opts.AnglePrecision))
	w.lastScores = scores
	w.commit(scores[best(scores)].Angle, speed)
	return engine.Next()
}

// directLine returns the bearing to target when the straight sweep reaches it
func (w *Wander) directLine(bounds, target core.Rect, obstacles []core.Rect) (core.Angle, bool) {
	from := bounds.Center()
	goal := target.Center()
	bearing := vmath.Bearing(from, goal)
	dist := vmath.NormalizedDistance(from, goal)

	pred := w.sim.Space.PredictHit(bounds, bearing, obstacles, dist, parameter.WanderProbePrecision)
	if pred.Type == core.HitNone || vmath.NormalizedDistance(pred.LastGood, goal) <= w.opts.CloseEnough {
		return bearing, true
	}
	return 0, false
}

func (w *Wander) commit(a core.Angle, speed float64) {
	w.velocity.SetAngle(a)
	w.velocity.Speed = speed
	w.lastGood = w.velocity.Angle()

	w.history = append(w.history, w.lastGood)
	if len(w.history) > parameter.WanderHistory {
		w.history = w.history[len(w.history)-parameter.WanderHistory:]
	}

	w.before = w.element.Bounds().TopLeft()
	w.committed = speed
	w.observing = true
}

// observe runs stuck detection on the position produced by the last commit
func (w *Wander) observe(now time.Duration) {
	el := w.element
	if w.committed <= 0 || el.Bounds().TopLeft() != w.before {
		w.stuck = false
		return
	}

	if w.nudge() {
		w.stuck = false
		return
	}
	if !w.stuck {
		w.log.Debug("stuck", "at", el.Center(), "heading", w.velocity.Angle().Value(), "t", now)
		w.stuckSince = now
	}
	w.stuck = true
	w.lastStuck = now
}

// nudge pushes the element back along its heading out of an overlapping obstacle
func (w *Wander) nudge() bool {
	el := w.element
	bounds := el.Bounds()
	for _, o := range w.sim.Space.Obstacles(el) {
		if !bounds.Intersects(o) {
			continue
		}
		dx, dy := vmath.RadialOffset(w.velocity.Angle().Opposite(), parameter.WanderNudgeDistance)
		next := bounds.Offset(dx, dy)
		if width, height := w.sim.Space.Size(); width > 0 && height > 0 {
			next = next.ClampInto(float64(width), float64(height))
		}
		if next.TopLeft() == bounds.TopLeft() {
			return false
		}
		el.MoveTo(next.X, next.Y)
		return true
	}
	return false
}

// LastScores returns the candidate evaluation of the last scored decision
// Empty when the last decision took a fast path
func (w *Wander) LastScores() []WanderScore {
	return w.lastScores
}

// LastGoodAngle returns the last committed heading
func (w *Wander) LastGoodAngle() core.Angle {
	return w.lastGood
}

// History returns a copy of recent committed headings, oldest first
func (w *Wander) History() []core.Angle {
	out := make([]core.Angle, len(w.history))
	copy(out, w.history)
	return out
}

// Options returns the resolved options
func (w *Wander) Options() WanderOptions {
	return w.opts
}
