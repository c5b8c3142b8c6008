package navigation

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/lixenwraith/termnav/core"
	"github.com/lixenwraith/termnav/parameter"
)

// Clock is the pause-aware simulation time source
type Clock interface {
	Now() time.Duration
}

// Space is the spatial query collaborator: obstacle enumeration and ray prediction
type Space interface {
	Size() (width, height int)
	Obstacles(el *core.Element) []core.Rect
	PredictHit(from core.Rect, angle core.Angle, obstacles []core.Rect, maxDistance, precision float64) core.HitPrediction
}

// CellMark classifies a debug-highlighted grid cell
type CellMark uint8

const (
	MarkBlocked CellMark = iota
	MarkVisited
	MarkPath
)

// Highlighter receives per-cell debug marks from the planner, never alters results
type Highlighter interface {
	Highlight(x, y int, mark CellMark)
}

// Clearer is implemented by highlighters that drop earlier marks when a new plan starts
type Clearer interface {
	Clear()
}

// Sim is the explicit simulation context handed to every strategy
type Sim struct {
	Clock Clock
	Space Space
	Debug Highlighter // Optional
	Log   *log.Logger // Optional, discards when nil
	Frame time.Duration
}

// NewSim creates a context with a discarding logger
func NewSim(clock Clock, space Space, frame time.Duration) *Sim {
	if frame <= 0 {
		frame = parameter.TickInterval
	}
	return &Sim{
		Clock: clock,
		Space: space,
		Log:   log.New(io.Discard),
		Frame: frame,
	}
}

func (s *Sim) validate() error {
	if s == nil || s.Clock == nil || s.Space == nil {
		return errMissingSim
	}
	return nil
}

func (s *Sim) logger() *log.Logger {
	if s.Log == nil {
		s.Log = log.New(io.Discard)
	}
	return s.Log
}

func (s *Sim) frame() time.Duration {
	if s.Frame <= 0 {
		return parameter.TickInterval
	}
	return s.Frame
}
