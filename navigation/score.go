package navigation

import "github.com/lixenwraith/termnav/core"

// WanderScore is the evaluation of one candidate heading
type WanderScore struct {
	Angle      core.Angle
	Components map[SenseID]ScoreComponent // Normalized values once scored
	FinalScore float64
}

// Component returns the named sensor's contribution
func (s WanderScore) Component(id SenseID) ScoreComponent {
	return s.Components[id]
}

// scoreCandidates measures every candidate with every sense and sums weighted values
func scoreCandidates(ctx *SenseContext, senses []Sense, weights map[SenseID]float64, candidates []core.Angle) []WanderScore {
	scores := make([]WanderScore, len(candidates))
	for i, a := range candidates {
		scores[i] = WanderScore{Angle: a, Components: make(map[SenseID]ScoreComponent, len(senses))}
		for _, s := range senses {
			scores[i].Components[s.ID()] = s.Measure(ctx, a)
		}
	}

	for _, s := range senses {
		normalize(scores, s.ID())
	}

	for i := range scores {
		total := 0.0
		for _, s := range senses {
			c := scores[i].Components[s.ID()]
			total += weights[s.ID()] * c.boost() * c.Value
		}
		scores[i].FinalScore = total
	}
	return scores
}

// normalize min-max scales opted-in values of one sensor into [0, 1]
// A flat range maps to 0
func normalize(scores []WanderScore, id SenseID) {
	first := true
	var lo, hi float64
	for _, sc := range scores {
		c := sc.Components[id]
		if !c.NeedsToBeNormalized {
			continue
		}
		if first || c.Value < lo {
			lo = c.Value
		}
		if first || c.Value > hi {
			hi = c.Value
		}
		first = false
	}
	if first {
		return
	}

	span := hi - lo
	for i := range scores {
		c := scores[i].Components[id]
		if !c.NeedsToBeNormalized {
			continue
		}
		if span == 0 {
			c.Value = 0
		} else {
			c.Value = (c.Value - lo) / span
		}
		scores[i].Components[id] = c
	}
}

// best returns the index of the highest score, earliest wins ties
func best(scores []WanderScore) int {
	idx := 0
	for i := 1; i < len(scores); i++ {
		if scores[i].FinalScore > scores[idx].FinalScore {
			idx = i
		}
	}
	return idx
}

// candidateAngles builds the fan: optimal first, then base ±k·precision up to 180
// base is optimal rounded to the precision grid, duplicates are dropped
func candidateAngles(optimal core.Angle, precision float64) []core.Angle {
	out := []core.Angle{optimal}
	add := func(a core.Angle) {
		for _, e := range out {
			if e.Near(a, 1e-6) {
				return
			}
		}
		out = append(out, a)
	}

	base := optimal.RoundTo(precision)
	for k := 0.0; k <= 180; k += precision {
		add(base.Add(k))
		add(base.Add(-k))
	}
	return out
}
