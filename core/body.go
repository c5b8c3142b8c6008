package core

// CollisionBehavior selects how the integrator resolves a blocked move
type CollisionBehavior uint8

const (
	// CollisionStop cancels the whole move
	CollisionStop CollisionBehavior = iota
	// CollisionSlide keeps whichever axis of the move is free
	CollisionSlide
	// CollisionBounce cancels the move and reverses the heading
	CollisionBounce
)

// Velocity is the commanded motion of an element
// Only one movement strategy may drive a velocity at a time
type Velocity struct {
	angle     Angle
	Speed     float64 // Units per second, X units along the heading
	Collision CollisionBehavior
	Group     uint16 // Elements sharing a non-zero group never block each other

	owner *Element
}

// Angle returns the current heading
func (v *Velocity) Angle() Angle {
	return v.angle
}

// SetAngle sets the heading, normalizing into [0, 360)
func (v *Velocity) SetAngle(a Angle) {
	v.angle = NewAngle(float64(a))
}

// Stop zeroes the speed, heading is kept
func (v *Velocity) Stop() {
	v.Speed = 0
}

// Element returns the element owning this velocity
func (v *Velocity) Element() *Element {
	return v.owner
}

// Element is a positioned, sized body in the world
// Strategies read its position, the integrator writes it
type Element struct {
	ID   int
	Name string
	// MassPad grows bounds into the mass bounds used for clearance checks
	MassPad float64

	bounds   Rect
	velocity Velocity
	lifetime *Lifetime
}

// NewElement creates a live element at bounds
func NewElement(id int, bounds Rect) *Element {
	e := &Element{
		ID:       id,
		bounds:   bounds,
		lifetime: NewLifetime(),
	}
	e.velocity.owner = e
	return e
}

// Bounds returns the element's bounding rect
func (e *Element) Bounds() Rect {
	return e.bounds
}

// MassBounds returns bounds grown by MassPad
func (e *Element) MassBounds() Rect {
	if e.MassPad == 0 {
		return e.bounds
	}
	return e.bounds.Grow(e.MassPad)
}

// Center returns the center of the bounds
func (e *Element) Center() Point {
	return e.bounds.Center()
}

// MoveTo places the top-left corner at (x, y)
func (e *Element) MoveTo(x, y float64) {
	e.bounds.X = x
	e.bounds.Y = y
}

// MoveCenterTo places the center at p
func (e *Element) MoveCenterTo(p Point) {
	e.bounds = e.bounds.CenteredOn(p)
}

// MoveBy translates the element
func (e *Element) MoveBy(dx, dy float64) {
	e.bounds.X += dx
	e.bounds.Y += dy
}

// Velocity returns the element's velocity
func (e *Element) Velocity() *Velocity {
	return &e.velocity
}

// Lifetime returns the element's lifetime
func (e *Element) Lifetime() *Lifetime {
	return e.lifetime
}

// IsAlive reports whether the element has not been disposed
func (e *Element) IsAlive() bool {
	return !e.lifetime.IsExpired()
}

// Dispose ends the element's lifetime
func (e *Element) Dispose() {
	e.lifetime.Dispose()
}
