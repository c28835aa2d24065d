package constants

import "time"

// Spin Timing
const (
	// SpinFirstTickDelay is the wait between start and the first highlight tick
	SpinFirstTickDelay = 50 * time.Millisecond

	// SpinMinDuration and SpinMaxDuration bound the randomly drawn spin length
	SpinMinDuration = 2500 * time.Millisecond
	SpinMaxDuration = 5000 * time.Millisecond

	// SpinTickBase is the tick delay at the start of a spin
	SpinTickBase = 60 * time.Millisecond

	// SpinTickSlowdown is added to the tick delay proportionally to spin progress
	SpinTickSlowdown = 160 * time.Millisecond
)

// Highlight Grouping
const (
	// SpinMaxGroup caps the number of simultaneously highlighted prizes
	SpinMaxGroup = 4

	// SpinGroupDivisor scales the group size with the number of available prizes
	SpinGroupDivisor = 3
)

// Winner Blink
const (
	// BlinkFlashes is the number of full on/off cycles after landing
	BlinkFlashes = 6

	// BlinkToggles is the total number of highlight toggles
	BlinkToggles = BlinkFlashes * 2

	BlinkInterval = 120 * time.Millisecond

	// SettleQuietDuration fades remaining voices before the win cue
	SettleQuietDuration = 50 * time.Millisecond

	// GoAgainDelay is the pause between acknowledging a result and restarting
	GoAgainDelay = 120 * time.Millisecond
)
