package core

import "math"

// Angle is a heading in degrees, always within [0, 360)
// 0 points along +X, 90 along +Y (down the screen)
// Construct with NewAngle, a raw conversion skips normalization
type Angle float64

// NewAngle normalizes deg into [0, 360)
func NewAngle(deg float64) Angle {
	if math.IsNaN(deg) || math.IsInf(deg, 0) {
		return 0
	}
	a := math.Mod(deg, 360)
	if a < 0 {
		a += 360
	}
	// Mod of tiny negatives can round up to exactly 360
	if a >= 360 {
		a = 0
	}
	return Angle(a)
}

// Value returns the angle in degrees
func (a Angle) Value() float64 {
	return float64(a)
}

// Add rotates the angle by deg, wrapping around
func (a Angle) Add(deg float64) Angle {
	return NewAngle(float64(a) + deg)
}

// Opposite returns the angle rotated by 180
func (a Angle) Opposite() Angle {
	return a.Add(180)
}

// Diff returns the smallest absolute difference to b, in [0, 180]
func (a Angle) Diff(b Angle) float64 {
	d := math.Abs(float64(a) - float64(b))
	if d > 180 {
		d = 360 - d
	}
	return d
}

// Near reports whether a and b are within tolerance degrees of each other
func (a Angle) Near(b Angle, tolerance float64) bool {
	return a.Diff(b) <= tolerance
}

// RoundTo snaps the angle to the nearest multiple of step
func (a Angle) RoundTo(step float64) Angle {
	if step <= 0 {
		return a
	}
	return NewAngle(math.Round(float64(a)/step) * step)
}

// Radians converts to radians
func (a Angle) Radians() float64 {
	return float64(a) * math.Pi / 180
}
