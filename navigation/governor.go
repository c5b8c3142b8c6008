package navigation

import "time"

// RateGovernor lets an action fire at most once per interval of simulation time
type RateGovernor struct {
	interval time.Duration
	last     time.Duration
	primed   bool
}

// NewRateGovernor creates a governor that fires immediately on first use
func NewRateGovernor(interval time.Duration) *RateGovernor {
	return &RateGovernor{interval: interval}
}

// ShouldFire returns true and records now if the interval has elapsed
func (g *RateGovernor) ShouldFire(now time.Duration) bool {
	if g.primed && now-g.last < g.interval {
		return false
	}
	g.last = now
	g.primed = true
	return true
}

// Reset allows the next ShouldFire to pass immediately
func (g *RateGovernor) Reset() {
	g.primed = false
}
