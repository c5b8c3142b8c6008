package parameter

import "time"

// Engine
const (
	// TickInterval is the default simulation step
	TickInterval = 50 * time.Millisecond

	// PausedPollInterval is how often the driver checks for resume while paused
	PausedPollInterval = 2 * TickInterval
)

// Wander - reactive steering
const (
	// WanderAnglePrecision is the degree step between candidate headings
	WanderAnglePrecision = 45.0

	// WanderVisibility is the sensor horizon in normalized units
	WanderVisibility = 8.0

	// WanderCloseEnough is the arrival radius for the curiosity point
	WanderCloseEnough = 1.0

	// WanderReactionTime is the pacing delay between decisions, 0 decides every tick
	WanderReactionTime time.Duration = 0

	// WanderProbePrecision is the sweep step used by ray prediction
	WanderProbePrecision = 0.5

	// WanderHistory is the number of committed headings kept for flip-flop detection
	WanderHistory = 6

	// WanderFlipFlopMin is the minimum history length before alternation counts as flip-flopping
	WanderFlipFlopMin = 4

	// WanderFlipFlopBoost escalates the direction sensor while escaping an oscillation
	WanderFlipFlopBoost = 10.0

	// WanderSimilarityFalloff is the angular distance where direction similarity reaches 0
	WanderSimilarityFalloff = 90.0

	// WanderNudgeDistance is how far an overlapping agent is pushed when stuck
	WanderNudgeDistance = 0.5
)

// Default sensor weights
const (
	WeightVisibility     = 1.0
	WeightCloserToTarget = 1.0
	WeightSimilarHeading = 0.5
)

// Navigate - path following
const (
	// NavCloseEnough is the destination arrival and waypoint pruning radius
	NavCloseEnough = 1.0

	// NavStuckThreshold is how long without progress before a forced replan
	NavStuckThreshold = 7 * time.Second

	// NavRefreshInterval throttles local waypoint refresh and replans
	NavRefreshInterval = 200 * time.Millisecond
)
