package engine

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/termnav/core"
	"github.com/lixenwraith/termnav/parameter"
)

// Driver pumps simulation ticks in real time at a fixed interval
// onTick runs on the driver goroutine, UIs typically forward it into their event loop
// Handles pause without busy-wait and corrects drift against wall-clock deadlines
type Driver struct {
	clock    *SimClock
	interval time.Duration
	onTick   func()

	nextTickDeadline time.Time
	mu               sync.Mutex

	tickCount atomic.Uint64

	stopChan chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
	running  atomic.Bool
}

// NewDriver creates a driver calling onTick every interval while clock is running
func NewDriver(clock *SimClock, interval time.Duration, onTick func()) *Driver {
	if interval <= 0 {
		interval = parameter.TickInterval
	}
	return &Driver{
		clock:    clock,
		interval: interval,
		onTick:   onTick,
		stopChan: make(chan struct{}),
	}
}

// Start begins the driver loop
func (d *Driver) Start() {
	if d.running.CompareAndSwap(false, true) {
		d.wg.Add(1)
		core.Go(d.loop)
	}
}

// Stop halts the driver loop and waits for it to exit
func (d *Driver) Stop() {
	d.stopOnce.Do(func() {
		if d.running.CompareAndSwap(true, false) {
			close(d.stopChan)
			d.wg.Wait()
		}
	})
}

// Ticks returns number of ticks delivered
func (d *Driver) Ticks() uint64 {
	return d.tickCount.Load()
}

func (d *Driver) loop() {
	defer d.wg.Done()

	d.mu.Lock()
	d.nextTickDeadline = time.Now().Add(d.interval)
	d.mu.Unlock()

	timer := time.NewTimer(0)
	if !timer.Stop() {
		select {
		case <-timer.C:
		default:
		}
	}
	defer timer.Stop()

	for {
		select {
		case <-d.stopChan:
			return
		default:
		}

		var sleepDuration time.Duration

		if d.clock.IsPaused() {
			// Poll slower while paused, realign deadline so resume does not burst
			sleepDuration = parameter.PausedPollInterval
			d.mu.Lock()
			d.nextTickDeadline = time.Now().Add(d.interval)
			d.mu.Unlock()
		} else {
			now := time.Now()

			d.mu.Lock()
			deadline := d.nextTickDeadline
			d.mu.Unlock()

			if !now.Before(deadline) {
				d.onTick()
				d.tickCount.Add(1)

				d.mu.Lock()
				d.nextTickDeadline = d.nextTickDeadline.Add(d.interval)
				// Drop missed ticks instead of catching up in a burst
				if now.Sub(d.nextTickDeadline) > d.interval*2 {
					d.nextTickDeadline = now.Add(d.interval)
				}
				deadline = d.nextTickDeadline
				d.mu.Unlock()

				sleepDuration = max(time.Until(deadline), 0)
			} else {
				sleepDuration = deadline.Sub(now)
			}
		}

		if sleepDuration > 0 {
			timer.Reset(sleepDuration)
			select {
			case <-timer.C:
			case <-d.stopChan:
				return
			}
		}
	}
}
