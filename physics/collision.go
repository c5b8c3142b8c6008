package physics

import (
	"github.com/lixenwraith/termnav/core"
	"github.com/lixenwraith/termnav/parameter"
	"github.com/lixenwraith/termnav/vmath"
)

// PredictHit sweeps rect from along angle in precision steps up to maxDistance
// Obstacles already overlapping the starting rect are ignored so a pinned body can still see away from them
// worldW/worldH <= 0 disables boundary checks
func PredictHit(
	from core.Rect,
	angle core.Angle,
	obstacles []core.Rect,
	maxDistance, precision float64,
	worldW, worldH float64,
) core.HitPrediction {
	if precision <= 0 {
		precision = parameter.WanderProbePrecision
	}

	origin := from.Center()
	pred := core.HitPrediction{
		Type:     core.HitNone,
		HitPoint: origin,
		LastGood: origin,
	}
	if maxDistance <= 0 {
		return pred
	}

	active := make([]core.Rect, 0, len(obstacles))
	for _, o := range obstacles {
		if !from.Intersects(o) {
			active = append(active, o)
		}
	}

	bounded := worldW > 0 && worldH > 0

	for d := precision; ; d += precision {
		if d > maxDistance {
			d = maxDistance
		}
		dx, dy := vmath.RadialOffset(angle, d)
		probe := from.Offset(dx, dy)

		if bounded && !probe.Inside(worldW, worldH) {
			pred.Type = core.HitBoundary
			pred.HitPoint = probe.Center()
			return pred
		}
		for _, o := range active {
			if probe.Intersects(o) {
				pred.Type = core.HitObstacle
				pred.HitPoint = probe.Center()
				pred.Obstacle = o
				return pred
			}
		}

		pred.LastGood = probe.Center()
		pred.Distance = d
		if d >= maxDistance {
			break
		}
	}

	pred.HitPoint = pred.LastGood
	return pred
}
