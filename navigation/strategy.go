package navigation

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/lixenwraith/termnav/core"
	"github.com/lixenwraith/termnav/engine"
)

var (
	// ErrInvalidOptions reports a configuration mistake in strategy options
	ErrInvalidOptions = errors.New("invalid movement options")
	// ErrNoPath reports that a scripted path could not be planned
	ErrNoPath = errors.New("no path")

	errMissingSim = fmt.Errorf("%w: sim with clock and space required", ErrInvalidOptions)
)

// SpeedEval returns the desired speed, re-evaluated every tick
type SpeedEval func() float64

// ConstantSpeed returns a SpeedEval always yielding v
func ConstantSpeed(v float64) SpeedEval {
	return func() float64 { return v }
}

// Outcome is how a strategy ended
type Outcome uint8

const (
	OutcomeRunning Outcome = iota
	OutcomeArrived
	OutcomeExhausted
	OutcomeCancelled
	OutcomeShortCircuited
	OutcomeDestinationLost
)

func (o Outcome) String() string {
	switch o {
	case OutcomeRunning:
		return "running"
	case OutcomeArrived:
		return "arrived"
	case OutcomeExhausted:
		return "exhausted"
	case OutcomeCancelled:
		return "cancelled"
	case OutcomeShortCircuited:
		return "short-circuited"
	case OutcomeDestinationLost:
		return "destination-lost"
	default:
		return "unknown"
	}
}

// Clean reports a finish that callers running to exhaustion treat as success
func (o Outcome) Clean() bool {
	return o == OutcomeArrived || o == OutcomeExhausted || o == OutcomeShortCircuited
}

// Strategy is a cooperative movement task driving one velocity
type Strategy interface {
	engine.Task

	Lifetime() *core.Lifetime
	Velocity() *core.Velocity
	Outcome() Outcome
	IsStuck() bool
	IsMoving() bool
	LastStuckTime() time.Duration
	StuckSince() time.Duration

	// ShortCircuit ends the strategy cleanly before its next step
	ShortCircuit()
}

// movement is the shared base of all strategies
type movement struct {
	sim      *Sim
	velocity *core.Velocity
	element  *core.Element
	speed    SpeedEval
	log      *log.Logger

	lifetime     *core.Lifetime
	lease        uint64
	elementLease uint64

	outcome    Outcome
	stuck      bool
	lastStuck  time.Duration
	stuckSince time.Duration
}

func newMovement(sim *Sim, v *core.Velocity, speed SpeedEval, kind string) (movement, error) {
	if err := sim.validate(); err != nil {
		return movement{}, err
	}
	if v == nil || v.Element() == nil {
		return movement{}, fmt.Errorf("%w: velocity must belong to an element", ErrInvalidOptions)
	}
	if speed == nil {
		return movement{}, fmt.Errorf("%w: speed function required", ErrInvalidOptions)
	}

	el := v.Element()
	lt := core.NewLifetime()
	return movement{
		sim:          sim,
		velocity:     v,
		element:      el,
		speed:        speed,
		log:          sim.logger().With("strategy", kind, "element", el.ID),
		lifetime:     lt,
		lease:        lt.Lease(),
		elementLease: el.Lifetime().Lease(),
	}, nil
}

// watch stops the velocity as soon as the strategy lifetime is disposed from outside
func (m *movement) watch() {
	m.lifetime.OnDisposed(func() {
		if m.outcome == OutcomeRunning {
			m.outcome = OutcomeCancelled
			m.halt()
		}
	})
}

func (m *movement) Lifetime() *core.Lifetime     { return m.lifetime }
func (m *movement) Velocity() *core.Velocity     { return m.velocity }
func (m *movement) Outcome() Outcome             { return m.outcome }
func (m *movement) IsStuck() bool                { return m.stuck }
func (m *movement) LastStuckTime() time.Duration { return m.lastStuck }

// StuckSince returns when the current stall began, zero while moving freely
func (m *movement) StuckSince() time.Duration {
	if !m.stuck {
		return 0
	}
	return m.stuckSince
}

func (m *movement) IsMoving() bool {
	return m.outcome == OutcomeRunning && m.velocity.Speed > 0
}

func (m *movement) ShortCircuit() {
	m.finish(OutcomeShortCircuited)
}

// alive checks both owning lifetimes against the leases captured at creation
func (m *movement) alive() bool {
	return m.lifetime.IsStillValid(m.lease) && m.element.Lifetime().IsStillValid(m.elementLease)
}

// begin runs at the top of every step, false means the step must return Done
func (m *movement) begin() bool {
	if m.outcome != OutcomeRunning {
		return false
	}
	if !m.alive() {
		m.finish(OutcomeCancelled)
		return false
	}
	return true
}

// finish records the outcome, zeroes speed and disposes the strategy lifetime
// Later calls are ignored
func (m *movement) finish(o Outcome) {
	if m.outcome != OutcomeRunning {
		return
	}
	m.outcome = o
	m.halt()
	m.lifetime.Dispose()
}

func (m *movement) halt() {
	m.velocity.Stop()
}
