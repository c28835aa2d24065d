package constants

import "time"

// UI Loop Timing
const (
	// FrameUpdateInterval is the fallback redraw interval (~30 FPS) while an animation runs
	FrameUpdateInterval = 33 * time.Millisecond

	// EventChannelSize is the buffered capacity between the input poller and the UI loop
	EventChannelSize = 256
)

// Logging
const (
	LogDir      = "logs"
	LogFileName = "prize-wheel.log"

	// MaxLogSize triggers rotation of the log file on startup (10MB)
	MaxLogSize = 10 * 1024 * 1024
)

// Persistence
const (
	// AppName names the per-user data directory and the config file prefix
	AppName = "prize-wheel"

	PoolStoreKey  = "pool"
	AudioStoreKey = "audio"

	// PoolStoreVersion is the current envelope version of the pool store
	PoolStoreVersion = 2
)
