package navigation

import (
	"time"

	"github.com/lixenwraith/termnav/core"
	"github.com/lixenwraith/termnav/engine"
)

// RunToExhaustion schedules s until it completes on its own
// A short circuit counts as a clean finish, check Outcome().Clean()
// The returned lifetime is disposed when s ends for any reason
func RunToExhaustion(sched *engine.Scheduler, s Strategy) *core.Lifetime {
	sched.Spawn(s)
	return s.Lifetime()
}

// RunUntil races s against cancel, whichever ends first disposes the other
func RunUntil(sched *engine.Scheduler, s Strategy, cancel *core.Lifetime) *core.Lifetime {
	core.Race(s.Lifetime(), cancel)
	sched.Spawn(s)
	return s.Lifetime()
}

// RunFor runs s with a timeout measured in simulation time
func RunFor(sched *engine.Scheduler, s Strategy, timeout time.Duration) *core.Lifetime {
	return RunUntil(sched, s, sched.After(timeout))
}
