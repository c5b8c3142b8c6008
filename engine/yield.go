package engine

import "time"

type yieldKind uint8

const (
	yieldNext yieldKind = iota
	yieldDelay
	yieldDone
)

// Yield is a task's suspension request returned from Step
type Yield struct {
	kind  yieldKind
	delay time.Duration
}

// Next suspends until the following tick, after the integrator has run
func Next() Yield {
	return Yield{kind: yieldNext}
}

// Delay suspends for d of simulation time, non-positive d behaves like Next
func Delay(d time.Duration) Yield {
	if d <= 0 {
		return Next()
	}
	return Yield{kind: yieldDelay, delay: d}
}

// Done ends the task
func Done() Yield {
	return Yield{kind: yieldDone}
}

// IsDone reports whether the task finished
func (y Yield) IsDone() bool {
	return y.kind == yieldDone
}

// Duration returns the requested delay, 0 for Next and Done
func (y Yield) Duration() time.Duration {
	return y.delay
}

func (y Yield) String() string {
	switch y.kind {
	case yieldDelay:
		return "delay(" + y.delay.String() + ")"
	case yieldDone:
		return "done"
	default:
		return "next"
	}
}
