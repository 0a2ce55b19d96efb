package parameter

import "time"

// Escalation
const (
	// SpawnInitialInterval is the escalation spacing before the advanced threshold
	SpawnInitialInterval = 10 * time.Second

	// SpawnAdvancedInterval is the escalation spacing once the threshold is reached
	SpawnAdvancedInterval = 30 * time.Second

	// SpawnAdvancedThreshold is the required count at which the interval slows down
	SpawnAdvancedThreshold = 5

	// SpawnMaxPerTick caps top-up spawns per tick, 0 fills the whole deficit at once
	SpawnMaxPerTick = 1
)

// Placement volume
const (
	// SpawnRadius is the disk radius around the scheduler anchor
	SpawnRadius = 10.0

	// SpawnMinHeight is the lower bound of the height band
	SpawnMinHeight = 1.0

	// SpawnMaxHeight is the upper bound of the height band
	SpawnMaxHeight = 5.0
)

// Kinds
const (
	KindTarget = "target"
	KindBomb   = "bomb"

	// SpawnWeightTarget and SpawnWeightBomb give a 20% hazard chance
	SpawnWeightTarget = 80
	SpawnWeightBomb   = 20
)

// Target
const (
	// TargetRadius is the contact radius used by the demo contact feed
	TargetRadius = 0.5
)
