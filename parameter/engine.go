package parameter

import "time"

// Simulation
const (
	// TickInterval is the fixed simulation step
	TickInterval = 16 * time.Millisecond

	// IntentQueueSize must be a power of two
	IntentQueueSize = 256

	// IntentBufferMask is used for ring indexing
	IntentBufferMask = IntentQueueSize - 1
)

// Logging
const (
	LogDir      = "logs"
	LogFileName = "rangefire.log"

	// LogMaxSize triggers rotation of the previous run's log
	LogMaxSize = 10 * 1024 * 1024
)
