package parameter

import "time"

// Loop Timing
const (
	// DrawInterval is the draw cadence: compose, reduce and present dirty regions
	DrawInterval = 10 * time.Millisecond

	// UpdateInterval is the simulation cadence: scene update and grid advance
	UpdateInterval = 100 * time.Millisecond

	// IdleSleep is the pause between loop iterations
	IdleSleep = 100 * time.Microsecond

	// EventQueueSize is the capacity of the terminal input channel
	EventQueueSize = 256
)

// Grid Statistics
const (
	// StatsRate publishes grid counters every N updates; 0 publishes every update
	StatsRate = 50
)
