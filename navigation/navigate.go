package navigation

import (
	"fmt"
	"time"

	"github.com/lixenwraith/termnav/core"
	"github.com/lixenwraith/termnav/engine"
	"github.com/lixenwraith/termnav/parameter"
	"github.com/lixenwraith/termnav/vmath"
)

// NavState is the path follower's position in its state machine
type NavState uint8

const (
	NavPlanning NavState = iota
	NavFollowing
	NavReplanning
	NavUnreachable
	NavArrived
	NavLost
)

func (s NavState) String() string {
	switch s {
	case NavPlanning:
		return "planning"
	case NavFollowing:
		return "following"
	case NavReplanning:
		return "replanning"
	case NavUnreachable:
		return "unreachable"
	case NavArrived:
		return "arrived"
	case NavLost:
		return "lost"
	default:
		return "unknown"
	}
}

// DestinationFunc supplies the current destination, ok=false once it no longer exists
type DestinationFunc func() (core.Rect, bool)

// StaticDestination always returns r
func StaticDestination(r core.Rect) DestinationFunc {
	return func() (core.Rect, bool) { return r, true }
}

// FollowElement tracks el's bounds for as long as it is alive
func FollowElement(el *core.Element) DestinationFunc {
	lease := el.Lifetime().Lease()
	return func() (core.Rect, bool) {
		if !el.Lifetime().IsStillValid(lease) {
			return core.Rect{}, false
		}
		return el.Bounds(), true
	}
}

// NavigateOptions configures path following
type NavigateOptions struct {
	CloseEnough      float64
	ForceDestination bool // Snap onto the destination on arrival
	Show             bool // Route planner marks to Sim.Debug

	OnDelay   func() // Called when a plan finds no route
	OnSuccess func()

	StuckThreshold  time.Duration
	RefreshInterval time.Duration

	// Wander configures the inner steering, its CuriosityPoint is replaced
	Wander WanderOptions
}

// DefaultNavigateOptions returns options with every default filled in
func DefaultNavigateOptions() NavigateOptions {
	return NavigateOptions{
		CloseEnough:     parameter.NavCloseEnough,
		StuckThreshold:  parameter.NavStuckThreshold,
		RefreshInterval: parameter.NavRefreshInterval,
		Wander:          DefaultWanderOptions(),
	}
}

func (o NavigateOptions) resolve() (NavigateOptions, error) {
	switch {
	case o.CloseEnough < 0:
		return o, fmt.Errorf("%w: negative close enough %v", ErrInvalidOptions, o.CloseEnough)
	case o.StuckThreshold < 0:
		return o, fmt.Errorf("%w: negative stuck threshold %v", ErrInvalidOptions, o.StuckThreshold)
	case o.RefreshInterval < 0:
		return o, fmt.Errorf("%w: negative refresh interval %v", ErrInvalidOptions, o.RefreshInterval)
	}
	if o.CloseEnough == 0 {
		o.CloseEnough = parameter.NavCloseEnough
	}
	if o.StuckThreshold == 0 {
		o.StuckThreshold = parameter.NavStuckThreshold
	}
	if o.RefreshInterval == 0 {
		o.RefreshInterval = parameter.NavRefreshInterval
	}
	return o, nil
}

// Navigate pursues a possibly moving destination along planned paths,
// steering each tick through an inner Wander aimed at the local waypoint
type Navigate struct {
	movement
	opts   NavigateOptions
	dest   DestinationFunc
	wander *Wander

	state    NavState
	path     *NavigationPath
	planned  bool
	lastDest core.Rect
	replans  int

	local    core.Rect
	hasLocal bool

	refresh *RateGovernor // Local waypoint refresh
	replan  *RateGovernor
}

// NewNavigate creates a path follower driving v toward dest
func NewNavigate(sim *Sim, v *core.Velocity, speed SpeedEval, dest DestinationFunc, opts NavigateOptions) (*Navigate, error) {
	if dest == nil {
		return nil, fmt.Errorf("%w: destination provider required", ErrInvalidOptions)
	}
	opts, err := opts.resolve()
	if err != nil {
		return nil, err
	}
	m, err := newMovement(sim, v, speed, "navigate")
	if err != nil {
		return nil, err
	}

	n := &Navigate{
		movement: m,
		opts:     opts,
		dest:     dest,
		state:    NavPlanning,
		refresh:  NewRateGovernor(opts.RefreshInterval),
		replan:   NewRateGovernor(opts.RefreshInterval),
	}

	wopts := opts.Wander
	wopts.CuriosityPoint = n.localTarget
	n.wander, err = newWander(sim, v, speed, wopts, "navigate.wander")
	if err != nil {
		return nil, err
	}

	n.watch()
	n.lifetime.OnDisposed(n.wander.lifetime.Dispose)
	return n, nil
}

func (n *Navigate) localTarget() (core.Rect, bool) {
	return n.local, n.hasLocal
}

// Step implements engine.Task
func (n *Navigate) Step(now time.Duration) engine.Yield {
	if !n.begin() {
		return engine.Done()
	}
	if y, paused := n.wander.settle(now); paused {
		return y
	}

	dest, ok := n.dest()
	if !ok {
		n.state = NavLost
		n.log.Debug("destination lost", "t", now)
		n.finish(OutcomeDestinationLost)
		return engine.Done()
	}

	if reached, occupied := n.reached(dest); reached {
		n.arrive(dest, occupied, now)
		return engine.Done()
	}

	n.follow(dest, now)
	return n.wander.decide(now)
}

// reached reports arrival at dest
// A destination covered by a collider is reached edge to edge, its center is out of reach
func (n *Navigate) reached(dest core.Rect) (reached, occupied bool) {
	body := n.element.MassBounds()
	if vmath.RectDistance(body, dest) <= n.opts.CloseEnough {
		return true, n.opts.ForceDestination && n.occupied(dest)
	}
	if vmath.RectGap(body, dest) > n.opts.CloseEnough {
		return false, false
	}
	occupied = n.occupied(dest)
	return occupied, occupied
}

func (n *Navigate) occupied(dest core.Rect) bool {
	for _, o := range n.sim.Space.Obstacles(n.element) {
		if o.Intersects(dest) {
			return true
		}
	}
	return false
}

// arrive ends the pursuit, an occupied destination is never snapped onto
func (n *Navigate) arrive(dest core.Rect, occupied bool, now time.Duration) {
	if n.opts.ForceDestination && !occupied {
		n.element.MoveTo(dest.X, dest.Y)
	}
	n.state = NavArrived
	n.log.Debug("arrived", "at", n.element.Center(), "t", now, "replans", n.replans)
	if n.opts.OnSuccess != nil {
		n.opts.OnSuccess()
	}
	n.finish(OutcomeArrived)
}

// follow replans when needed, prunes progress and refreshes the local waypoint
func (n *Navigate) follow(dest core.Rect, now time.Duration) {
	if n.needsReplan(dest, now) {
		if n.replan.ShouldFire(now) {
			n.Replan(dest)
		} else if n.state == NavFollowing {
			n.state = NavReplanning
		}
	}

	if n.path == nil {
		// No route this cycle, keep steering straight at the destination
		n.local, n.hasLocal = dest, true
		return
	}

	consumed := n.path.PruneTail(n.element.MassBounds().Center(), n.opts.CloseEnough, now) > 0
	if consumed || n.refresh.ShouldFire(now) {
		if consumed {
			n.refresh.ShouldFire(now)
		}
		if head, ok := n.path.Head(); ok {
			n.local = head
		} else {
			n.local = dest
		}
		n.hasLocal = true
	}
}

func (n *Navigate) needsReplan(dest core.Rect, now time.Duration) bool {
	switch {
	case !n.planned, n.path == nil:
		return true
	case dest != n.lastDest:
		return true
	case n.path.IsReallyStuck(now, n.opts.StuckThreshold):
		n.log.Debug("no progress, replanning", "since", n.path.LastProgress(), "t", now)
		return true
	}
	return false
}

// Replan computes a fresh path to dest from the element's current mass bounds
// An unreachable destination leaves no path and is retried on a later step
func (n *Navigate) Replan(dest core.Rect) {
	now := n.sim.Clock.Now()
	el := n.element
	width, height := n.sim.Space.Size()
	target := dest.ClampInto(float64(width), float64(height))

	var debug Highlighter
	if n.opts.Show && n.sim.Debug != nil {
		debug = n.sim.Debug
		if c, ok := debug.(Clearer); ok {
			c.Clear()
		}
	}
	points := FindPath(width, height, el.MassBounds(), target, n.sim.Space.Obstacles(el), debug)

	n.planned = true
	n.lastDest = dest
	n.replans++
	n.refresh.Reset()

	if points == nil {
		n.path = nil
		n.state = NavUnreachable
		n.log.Debug("unreachable", "from", el.Center(), "to", dest.Center(), "t", now)
		if n.opts.OnDelay != nil {
			n.opts.OnDelay()
		}
		return
	}

	n.path = NewNavigationPath(points, now)
	n.state = NavFollowing
	n.log.Debug("planned", "waypoints", len(points), "to", dest.Center(), "t", now)
}

// State returns the current state machine position
func (n *Navigate) State() NavState { return n.state }

// Path returns the current plan, nil when none
func (n *Navigate) Path() *NavigationPath { return n.path }

// LocalTarget returns the waypoint the inner steering is aimed at
func (n *Navigate) LocalTarget() (core.Rect, bool) { return n.local, n.hasLocal }

// Replans returns how many plans have been computed
func (n *Navigate) Replans() int { return n.replans }

// Wander returns the inner steering strategy
func (n *Navigate) Wander() *Wander { return n.wander }

func (n *Navigate) IsStuck() bool                { return n.wander.IsStuck() }
func (n *Navigate) LastStuckTime() time.Duration { return n.wander.LastStuckTime() }
func (n *Navigate) StuckSince() time.Duration    { return n.wander.StuckSince() }
