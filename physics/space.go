package physics

import (
	"github.com/lixenwraith/termnav/core"
)

// Space is the collider registry of a world
// Static obstacles and moving agents are both elements, static ones keep zero speed
type Space struct {
	width, height int
	elements      []*core.Element
}

// NewSpace creates an empty world of width x height cells
func NewSpace(width, height int) *Space {
	return &Space{
		width:  max(width, 1),
		height: max(height, 1),
	}
}

// Size returns world dimensions in cells
func (s *Space) Size() (width, height int) {
	return s.width, s.height
}

// Add registers an element as a collider
func (s *Space) Add(el *core.Element) {
	s.elements = append(s.elements, el)
}

// Elements returns live elements in insertion order, dropping disposed ones
func (s *Space) Elements() []*core.Element {
	live := s.elements[:0]
	for _, el := range s.elements {
		if el.IsAlive() {
			live = append(live, el)
		}
	}
	for i := len(live); i < len(s.elements); i++ {
		s.elements[i] = nil
	}
	s.elements = live
	return s.elements
}

// Find returns the first live element with name, nil if none
func (s *Space) Find(name string) *core.Element {
	for _, el := range s.Elements() {
		if el.Name == name {
			return el
		}
	}
	return nil
}

// Obstacles returns bounds of every live collider that can block el
func (s *Space) Obstacles(el *core.Element) []core.Rect {
	elements := s.Elements()
	out := make([]core.Rect, 0, len(elements))
	for _, other := range elements {
		if other == el || !blocks(el, other) {
			continue
		}
		out = append(out, other.Bounds())
	}
	return out
}

// PredictHit sweeps from along angle within world bounds
func (s *Space) PredictHit(from core.Rect, angle core.Angle, obstacles []core.Rect, maxDistance, precision float64) core.HitPrediction {
	return PredictHit(from, angle, obstacles, maxDistance, precision, float64(s.width), float64(s.height))
}

// blocks reports whether other is solid for el, shared non-zero groups pass through
func blocks(el, other *core.Element) bool {
	if el == nil {
		return true
	}
	g := el.Velocity().Group
	return g == 0 || g != other.Velocity().Group
}
