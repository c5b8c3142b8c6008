package engine

import (
	"sync"
	"sync/atomic"
	"time"
)

// SimClock provides pausable simulation time advanced in discrete ticks
// Time does not move while paused, so every delay expressed against it is pause-aware
type SimClock struct {
	mu sync.RWMutex

	now   time.Duration // Simulation time since start
	ticks uint64        // Number of successful advances

	isPaused       atomic.Bool
	pausedAdvances uint64 // Advance calls swallowed while paused
}

// NewSimClock creates a running clock at time zero
func NewSimClock() *SimClock {
	return &SimClock{}
}

// Now returns current simulation time (frozen while paused)
func (c *SimClock) Now() time.Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.now
}

// Ticks returns the number of ticks the clock has advanced
func (c *SimClock) Ticks() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.ticks
}

// Advance moves time forward by dt, returns false without effect while paused
func (c *SimClock) Advance(dt time.Duration) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.isPaused.Load() {
		c.pausedAdvances++
		return false
	}
	if dt > 0 {
		c.now += dt
	}
	c.ticks++
	return true
}

// Pause stops simulation time advancement
func (c *SimClock) Pause() {
	c.isPaused.Store(true)
}

// Resume continues simulation time advancement
func (c *SimClock) Resume() {
	c.isPaused.Store(false)
}

// Toggle flips pause state, returns the new state
func (c *SimClock) Toggle() bool {
	for {
		old := c.isPaused.Load()
		if c.isPaused.CompareAndSwap(old, !old) {
			return !old
		}
	}
}

// IsPaused returns current pause state
func (c *SimClock) IsPaused() bool {
	return c.isPaused.Load()
}

// PausedAdvances returns how many ticks were skipped due to pause
func (c *SimClock) PausedAdvances() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.pausedAdvances
}
