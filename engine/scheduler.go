package engine

import (
	"time"

	"github.com/lixenwraith/termnav/core"
)

// Task is a cooperative step function multiplexed onto the scheduler
// Step runs one unit of work and returns where it suspends next
type Task interface {
	Step(now time.Duration) Yield
}

// TaskFunc adapts a function to Task
type TaskFunc func(now time.Duration) Yield

func (f TaskFunc) Step(now time.Duration) Yield { return f(now) }

type taskSlot struct {
	task Task
	wake time.Duration
}

type simTimer struct {
	deadline time.Duration
	lifetime *core.Lifetime
}

// Scheduler runs tasks on a single goroutine against a SimClock
// Per tick: advance clock, fire timers, step due tasks in spawn order, run post-step hooks
type Scheduler struct {
	clock    *SimClock
	interval time.Duration

	tasks   []*taskSlot
	pending []*taskSlot // Spawned since the last merge
	timers  []simTimer
	hooks   []func(dt time.Duration)

	stepped uint64
}

// NewScheduler creates a scheduler stepping clock by interval per tick
func NewScheduler(clock *SimClock, interval time.Duration) *Scheduler {
	if interval <= 0 {
		interval = time.Millisecond
	}
	return &Scheduler{
		clock:    clock,
		interval: interval,
	}
}

// Clock returns the simulation clock
func (s *Scheduler) Clock() *SimClock {
	return s.clock
}

// Interval returns the tick length
func (s *Scheduler) Interval() time.Duration {
	return s.interval
}

// Now returns current simulation time
func (s *Scheduler) Now() time.Duration {
	return s.clock.Now()
}

// Spawn queues t, it is first stepped on the next tick
func (s *Scheduler) Spawn(t Task) {
	s.pending = append(s.pending, &taskSlot{task: t})
}

// AfterStep registers a hook run after all tasks stepped, e.g. the position integrator
func (s *Scheduler) AfterStep(fn func(dt time.Duration)) {
	s.hooks = append(s.hooks, fn)
}

// After returns a lifetime disposed once d of simulation time has elapsed
func (s *Scheduler) After(d time.Duration) *core.Lifetime {
	lt := core.NewLifetime()
	s.timers = append(s.timers, simTimer{deadline: s.clock.Now() + d, lifetime: lt})
	return lt
}

// Len returns number of live tasks
func (s *Scheduler) Len() int {
	return len(s.tasks) + len(s.pending)
}

// Stepped returns the total number of task steps executed
func (s *Scheduler) Stepped() uint64 {
	return s.stepped
}

// Tick runs one simulation step, returns false without effect while paused
func (s *Scheduler) Tick() bool {
	if !s.clock.Advance(s.interval) {
		return false
	}
	now := s.clock.Now()

	s.fireTimers(now)

	if len(s.pending) > 0 {
		s.tasks = append(s.tasks, s.pending...)
		s.pending = s.pending[:0]
	}

	live := s.tasks[:0]
	for _, slot := range s.tasks {
		if slot.wake > now {
			live = append(live, slot)
			continue
		}
		y := slot.task.Step(now)
		s.stepped++
		switch y.kind {
		case yieldDone:
			continue
		case yieldDelay:
			slot.wake = now + y.delay
		default:
			slot.wake = now
		}
		live = append(live, slot)
	}
	// Clear tail to release finished tasks
	for i := len(live); i < len(s.tasks); i++ {
		s.tasks[i] = nil
	}
	s.tasks = live

	for _, hook := range s.hooks {
		hook(s.interval)
	}
	return true
}

// RunUntilIdle ticks until no tasks remain or maxTicks is reached, returns ticks run
// Stops early if the clock is paused
func (s *Scheduler) RunUntilIdle(maxTicks int) int {
	n := 0
	for n < maxTicks && s.Len() > 0 {
		if !s.Tick() {
			break
		}
		n++
	}
	return n
}

func (s *Scheduler) fireTimers(now time.Duration) {
	if len(s.timers) == 0 {
		return
	}
	var due []*core.Lifetime
	keep := s.timers[:0]
	for _, t := range s.timers {
		switch {
		case t.lifetime.IsExpired():
		case t.deadline <= now:
			due = append(due, t.lifetime)
		default:
			keep = append(keep, t)
		}
	}
	s.timers = keep
	// Dispose after compaction, handlers may register new timers
	for _, lt := range due {
		lt.Dispose()
	}
}
