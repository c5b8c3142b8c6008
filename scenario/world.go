package scenario

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/lixenwraith/termnav/core"
	"github.com/lixenwraith/termnav/engine"
	"github.com/lixenwraith/termnav/navigation"
	"github.com/lixenwraith/termnav/parameter"
	"github.com/lixenwraith/termnav/physics"
)

// Options tune every strategy built from a scenario
type Options struct {
	TickInterval time.Duration
	Wander       navigation.WanderOptions
	Navigate     navigation.NavigateOptions
	Log          *log.Logger
	Debug        navigation.Highlighter
}

// DefaultOptions returns package defaults
func DefaultOptions() Options {
	return Options{
		TickInterval: parameter.TickInterval,
		Wander:       navigation.DefaultWanderOptions(),
		Navigate:     navigation.DefaultNavigateOptions(),
	}
}

// Actor is a built agent
type Actor struct {
	Name     string
	Kind     string
	Element  *core.Element
	Strategy navigation.Strategy // Nil for static agents
}

// World is a running simulation built from a scenario
type World struct {
	Name      string
	Space     *physics.Space
	Scheduler *engine.Scheduler
	Sim       *navigation.Sim
	Actors    []*Actor
	Obstacles []*core.Element
}

// Build places obstacles and agents and spawns their strategies
// A puppet without a route fails the build, other strategies tolerate unreachable goals
func Build(sc *Scenario, opts Options) (*World, error) {
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	if opts.TickInterval <= 0 {
		opts.TickInterval = parameter.TickInterval
	}
	logger := opts.Log
	if logger == nil {
		logger = log.New(io.Discard)
	}

	space := physics.NewSpace(sc.Width, sc.Height)
	sched := engine.NewScheduler(engine.NewSimClock(), opts.TickInterval)
	sched.AfterStep(physics.NewIntegrator(space).Apply)

	sim := navigation.NewSim(sched.Clock(), space, opts.TickInterval)
	sim.Log = logger
	sim.Debug = opts.Debug

	w := &World{Name: sc.Name, Space: space, Scheduler: sched, Sim: sim}

	id := 0
	for _, o := range sc.Obstacles {
		id++
		el := core.NewElement(id, core.NewRect(o.X, o.Y, o.Width, o.Height))
		el.Name = fmt.Sprintf("obstacle-%d", id)
		space.Add(el)
		w.Obstacles = append(w.Obstacles, el)
	}

	byName := make(map[string]*core.Element, len(sc.Agents))
	for _, a := range sc.Agents {
		id++
		el := placeAgent(id, a)
		space.Add(el)
		byName[a.Name] = el
		w.Actors = append(w.Actors, &Actor{Name: a.Name, Kind: a.Strategy, Element: el})
	}

	for i, a := range sc.Agents {
		actor := w.Actors[i]
		s, err := strategyFor(sim, a, actor.Element, byName, opts)
		if err != nil {
			return nil, fmt.Errorf("agent %q: %w", a.Name, err)
		}
		if s == nil {
			continue
		}
		actor.Strategy = s
		sched.Spawn(s)
	}

	logger.Info("scenario built", "name", sc.Name, "size", fmt.Sprintf("%dx%d", sc.Width, sc.Height),
		"agents", len(w.Actors), "obstacles", len(w.Obstacles))
	return w, nil
}

func placeAgent(id int, a Agent) *core.Element {
	size := Size{Width: 1, Height: 1}
	if a.Size != nil {
		size = *a.Size
	}
	el := core.NewElement(id, core.NewRect(a.At.X, a.At.Y, size.Width, size.Height))
	el.Name = a.Name
	el.MassPad = a.MassPad

	v := el.Velocity()
	v.SetAngle(core.NewAngle(a.Heading))
	v.Group = a.Group
	switch a.Collision {
	case CollisionSlide:
		v.Collision = core.CollisionSlide
	case CollisionBounce:
		v.Collision = core.CollisionBounce
	default:
		v.Collision = core.CollisionStop
	}
	return el
}

func strategyFor(sim *navigation.Sim, a Agent, el *core.Element, byName map[string]*core.Element, opts Options) (navigation.Strategy, error) {
	speed := navigation.ConstantSpeed(a.Speed)

	switch a.Strategy {
	case KindWander:
		wopts := opts.Wander
		if a.Curious != nil {
			curious := unitAt(*a.Curious)
			wopts.CuriosityPoint = func() (core.Rect, bool) { return curious, true }
		}
		w, err := navigation.NewWander(sim, el.Velocity(), speed, wopts)
		if err != nil {
			return nil, err
		}
		return w, nil

	case KindNavigate:
		var dest navigation.DestinationFunc
		if a.Follow != "" {
			dest = navigation.FollowElement(byName[a.Follow])
		} else {
			dest = navigation.StaticDestination(unitAt(*a.Target))
		}
		n, err := navigation.NewNavigate(sim, el.Velocity(), speed, dest, opts.Navigate)
		if err != nil {
			return nil, err
		}
		return n, nil

	case KindPuppet:
		p, err := navigation.NewPuppet(sim, el.Velocity(), speed, unitAt(*a.Target))
		if err != nil {
			return nil, err
		}
		return p, nil
	}
	return nil, nil
}

func unitAt(p Point) core.Rect {
	return core.NewRect(p.X, p.Y, 1, 1)
}

// Tick advances the simulation one step
func (w *World) Tick() bool {
	return w.Scheduler.Tick()
}

// Actor returns the named actor, nil if unknown
func (w *World) Actor(name string) *Actor {
	for _, a := range w.Actors {
		if a.Name == name {
			return a
		}
	}
	return nil
}

// Settled reports whether no strategy is still running
func (w *World) Settled() bool {
	for _, a := range w.Actors {
		if a.Strategy != nil && a.Strategy.Outcome() == navigation.OutcomeRunning {
			return false
		}
	}
	return true
}

// Report renders a plain-text status line per actor
func (w *World) Report() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s t=%v\n", w.Name, w.Scheduler.Now())
	for _, a := range w.Actors {
		c := a.Element.Center()
		fmt.Fprintf(&b, "%-12s %-8s at=(%.2f,%.2f)", a.Name, a.Kind, c.X, c.Y)
		if s := a.Strategy; s != nil {
			fmt.Fprintf(&b, " outcome=%s moving=%t stuck=%t", s.Outcome(), s.IsMoving(), s.IsStuck())
			if s.IsStuck() {
				fmt.Fprintf(&b, " since=%v last=%v", s.StuckSince(), s.LastStuckTime())
			}
			if n, ok := s.(*navigation.Navigate); ok {
				fmt.Fprintf(&b, " state=%s replans=%d", n.State(), n.Replans())
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}
