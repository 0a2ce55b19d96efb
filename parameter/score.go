package parameter

// Score Tracking
const (
	// StartingLives is the life count restored on every session reset
	StartingLives = 3

	// DefaultPointsPerHit is the score delta of a standard scoring target
	DefaultPointsPerHit = 1

	// DefaultHazardDamage is the life damage of a hazard hit
	DefaultHazardDamage = 1

	// DefaultLevelTarget is the countdown target when no level table is configured
	DefaultLevelTarget = 10
)
