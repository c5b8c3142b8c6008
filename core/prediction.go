package core

// HitType classifies the result of a ray prediction
type HitType uint8

const (
	HitNone HitType = iota
	HitObstacle
	HitBoundary
)

func (h HitType) String() string {
	switch h {
	case HitObstacle:
		return "obstacle"
	case HitBoundary:
		return "boundary"
	default:
		return "none"
	}
}

// HitPrediction is the outcome of sweeping a rect along a heading
type HitPrediction struct {
	Type     HitType
	HitPoint Point // Center of the swept rect at the first blocked step
	LastGood Point // Center of the swept rect at the last free step
	Distance float64
	Obstacle Rect // Set when Type is HitObstacle
}
