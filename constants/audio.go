package constants

import "time"

// Audio Output
const (
	// AudioSampleRate is the default speaker sample rate
	AudioSampleRate = 48000

	// AudioBufferDuration is the speaker buffer length
	AudioBufferDuration = 100 * time.Millisecond

	// MasterGainScale keeps the synthesized cues well below full scale
	MasterGainScale = 0.08

	DefaultAudioEnabled = true
	DefaultAudioVolume  = 0.6
)

// Tick Cue: soft click
const (
	TickFrequency = 900.0
	TickDuration  = 55 * time.Millisecond
	TickVolume    = 0.35
	TickAttack    = 3 * time.Millisecond
	TickRelease   = 30 * time.Millisecond
)

// Blink Cue: brief brighter blip
const (
	BlinkFrequency = 1200.0
	BlinkDuration  = 80 * time.Millisecond
	BlinkVolume    = 0.25
	BlinkAttack    = 4 * time.Millisecond
	BlinkRelease   = 50 * time.Millisecond
)

// Start Cue
const (
	StartFrequency = 660.0
	StartDuration  = 120 * time.Millisecond
	StartVolume    = 0.2
	StartAttack    = 5 * time.Millisecond
	StartRelease   = 60 * time.Millisecond
)

// Win Cue: single-voice glide arpeggio
const (
	WinGlideDuration = 420 * time.Millisecond
	WinTotalDuration = 800 * time.Millisecond
	WinAttack        = 40 * time.Millisecond
	WinPeakVolume    = 0.28
	WinHoldVolume    = 0.22
	WinHoldAt        = 220 * time.Millisecond
	WinTailConstant  = 120 * time.Millisecond
)

// WinGlideFrequencies are reached at the matching WinGlideOffsets from cue start
var (
	WinGlideFrequencies = [4]float64{880, 1108, 1320, 1760}
	WinGlideOffsets     = [4]time.Duration{0, 120 * time.Millisecond, 260 * time.Millisecond, 420 * time.Millisecond}
)
