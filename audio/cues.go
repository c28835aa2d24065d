// Package audio synthesizes the wheel's audio cues
package audio

import (
	"errors"
	"time"
)

// Cues is the fire-and-forget audio contract used by the wheel.
// All cue methods are no-ops while disabled or before output has been resumed.
type Cues interface {
	Tick()
	Blink()
	Start()
	Win()
	QuietAll(fade time.Duration)
	SetEnabled(enabled bool)
	SetVolume(volume float64)

	// Resume unlocks audio output; must succeed before the first cue is audible
	Resume() error
}

// Cue identifies a synthesized sound
type Cue int

const (
	CueTick Cue = iota
	CueBlink
	CueStart
	CueWin
	CueQuiet
)

func (c Cue) String() string {
	switch c {
	case CueTick:
		return "tick"
	case CueBlink:
		return "blink"
	case CueStart:
		return "start"
	case CueWin:
		return "win"
	case CueQuiet:
		return "quiet"
	default:
		return "unknown"
	}
}

// Sentinel errors
var (
	ErrNotInitialized = errors.New("audio output not initialized")
	ErrClosed         = errors.New("audio player closed")
)

// ClampVolume limits v to [0, 1]
func ClampVolume(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Nop discards every cue
type Nop struct{}

func (Nop) Tick()                  {}
func (Nop) Blink()                 {}
func (Nop) Start()                 {}
func (Nop) Win()                   {}
func (Nop) QuietAll(time.Duration) {}
func (Nop) SetEnabled(bool)        {}
func (Nop) SetVolume(float64)      {}
func (Nop) Resume() error          { return nil }
