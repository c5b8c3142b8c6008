package navigation

import (
	"math"

	"github.com/lixenwraith/termnav/core"
	"github.com/lixenwraith/termnav/parameter"
	"github.com/lixenwraith/termnav/vmath"
)

// SenseID names a sensor for weight lookup
type SenseID string

const (
	SenseVisibility     SenseID = "visibility"
	SenseCloserToTarget SenseID = "closer_to_target"
	SenseSimilarHeading SenseID = "similar_heading"
)

// ScoreComponent is one sensor's opinion of one candidate heading
type ScoreComponent struct {
	Value float64
	// NeedsToBeNormalized opts the value into min-max scaling across all candidates
	NeedsToBeNormalized bool
	// WeightBoostMultiplier scales the configured weight, 0 means 1
	WeightBoostMultiplier float64
}

func (c ScoreComponent) boost() float64 {
	if c.WeightBoostMultiplier == 0 {
		return 1
	}
	return c.WeightBoostMultiplier
}

// Sense scores candidate headings from local information only
type Sense interface {
	ID() SenseID
	Measure(ctx *SenseContext, angle core.Angle) ScoreComponent
}

// SenseContext is the per-decision snapshot shared by all sensors
type SenseContext struct {
	Sim       *Sim
	Element   *core.Element
	Bounds    core.Rect // Mass bounds at decision time
	Obstacles []core.Rect
	Target    core.Rect
	HasTarget bool
	LastGood  core.Angle
	History   []core.Angle // Oldest first
	Speed     float64
	Options   *WanderOptions
}

// VisibilitySense prefers headings with open space ahead
type VisibilitySense struct{}

func (VisibilitySense) ID() SenseID { return SenseVisibility }

func (VisibilitySense) Measure(ctx *SenseContext, angle core.Angle) ScoreComponent {
	vis := ctx.Options.Visibility
	pred := ctx.Sim.Space.PredictHit(ctx.Bounds, angle, ctx.Obstacles, vis, parameter.WanderProbePrecision)
	if pred.Type == core.HitNone {
		return ScoreComponent{Value: 1}
	}
	return ScoreComponent{Value: vmath.Clamp(pred.Distance/vis, 0, 1)}
}

// CloserToTargetSense prefers headings that shrink the distance to the curiosity point
type CloserToTargetSense struct{}

func (CloserToTargetSense) ID() SenseID { return SenseCloserToTarget }

func (CloserToTargetSense) Measure(ctx *SenseContext, angle core.Angle) ScoreComponent {
	if !ctx.HasTarget {
		return ScoreComponent{}
	}
	step := ctx.Speed * ctx.Sim.frame().Seconds()
	if step < parameter.WanderProbePrecision {
		step = parameter.WanderProbePrecision
	}

	from := ctx.Bounds.Center()
	goal := ctx.Target.Center()
	now := vmath.NormalizedDistance(from, goal)
	next := vmath.NormalizedDistance(vmath.Project(from, angle, step), goal)

	delta := now - next
	if delta < 0 {
		delta = -math.Sqrt(-delta)
	}
	return ScoreComponent{Value: delta, NeedsToBeNormalized: true}
}

// SimilarToCurrentDirectionSense damps jitter and breaks two-way oscillations
type SimilarToCurrentDirectionSense struct{}

func (SimilarToCurrentDirectionSense) ID() SenseID { return SenseSimilarHeading }

func (SimilarToCurrentDirectionSense) Measure(ctx *SenseContext, angle core.Angle) ScoreComponent {
	if continuesFlipFlop(ctx.History, angle) {
		return ScoreComponent{Value: -1, WeightBoostMultiplier: parameter.WanderFlipFlopBoost}
	}
	diff := angle.Diff(ctx.LastGood)
	return ScoreComponent{Value: math.Max(0, 1-diff/parameter.WanderSimilarityFalloff)}
}

// flipFlopTolerance is the angular slack when comparing committed headings
const flipFlopTolerance = 1.0

// isFlipFlopping reports whether the most recent headings alternate between two opposites
// Only the trailing run counts, older entries may be anything
func isFlipFlopping(history []core.Angle) bool {
	run := min(len(history), 1)
	for i := len(history) - 1; i > 0; i-- {
		if !history[i].Near(history[i-1].Opposite(), flipFlopTolerance) {
			break
		}
		run++
	}
	return run >= parameter.WanderFlipFlopMin
}

// continuesFlipFlop reports whether committing angle would extend the oscillation
func continuesFlipFlop(history []core.Angle, angle core.Angle) bool {
	if !isFlipFlopping(history) {
		return false
	}
	return angle.Near(history[len(history)-2], flipFlopTolerance)
}

// DefaultSenses returns the built-in sensor set
func DefaultSenses() []Sense {
	return []Sense{VisibilitySense{}, CloserToTargetSense{}, SimilarToCurrentDirectionSense{}}
}

// DefaultWeights returns the built-in sensor weights
func DefaultWeights() map[SenseID]float64 {
	return map[SenseID]float64{
		SenseVisibility:     parameter.WeightVisibility,
		SenseCloserToTarget: parameter.WeightCloserToTarget,
		SenseSimilarHeading: parameter.WeightSimilarHeading,
	}
}
