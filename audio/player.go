package audio

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/prize-wheel/constants"
)

// PlayerConfig holds speaker parameters and the initial preferences
type PlayerConfig struct {
	SampleRate int
	Enabled    bool
	Volume     float64
}

// DefaultPlayerConfig returns the stock speaker setup
func DefaultPlayerConfig() PlayerConfig {
	return PlayerConfig{
		SampleRate: constants.AudioSampleRate,
		Enabled:    constants.DefaultAudioEnabled,
		Volume:     constants.DefaultAudioVolume,
	}
}

// Player renders cues through the system speaker via beep.
// Output stays silent until Resume succeeds; a failed Resume is reported once and later cues are dropped.
type Player struct {
	mu sync.Mutex

	rate    beep.SampleRate
	enabled bool
	volume  float64

	mixer  *beep.Mixer
	master *effects.Gain
	voices []*voice

	initialized bool
	failed      bool
	closed      bool
}

// NewPlayer creates a player; no audio device is touched until Resume
func NewPlayer(cfg PlayerConfig) *Player {
	if cfg.SampleRate <= 0 {
		cfg.SampleRate = constants.AudioSampleRate
	}
	mixer := &beep.Mixer{}
	p := &Player{
		rate:    beep.SampleRate(cfg.SampleRate),
		enabled: cfg.Enabled,
		volume:  ClampVolume(cfg.Volume),
		mixer:   mixer,
	}
	p.master = &effects.Gain{Streamer: mixer, Gain: p.masterGain() - 1}
	return p
}

// masterGain is the output scale; effects.Gain multiplies by (1 + Gain)
func (p *Player) masterGain() float64 {
	if !p.enabled {
		return 0
	}
	return constants.MasterGainScale * p.volume
}

// Resume initializes the speaker on first use
func (p *Player) Resume() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return ErrClosed
	}
	if p.initialized {
		return nil
	}
	if p.failed {
		return ErrNotInitialized
	}

	if err := speaker.Init(p.rate, p.rate.N(constants.AudioBufferDuration)); err != nil {
		p.failed = true
		return fmt.Errorf("%w: %v", ErrNotInitialized, err)
	}
	speaker.Play(p.master)
	p.initialized = true
	return nil
}

// Close stops all voices and releases the speaker
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return
	}
	p.closed = true

	if !p.initialized {
		return
	}
	speaker.Clear()
	speaker.Close()
	p.voices = nil
	p.initialized = false
}

// SetEnabled toggles output without dropping the device
func (p *Player) SetEnabled(enabled bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.enabled = enabled
	p.applyGain()
}

// SetVolume updates the user volume (clamped to 0..1)
func (p *Player) SetVolume(volume float64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.volume = ClampVolume(volume)
	p.applyGain()
}

// Enabled reports the current enabled flag
func (p *Player) Enabled() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.enabled
}

// Volume reports the current user volume
func (p *Player) Volume() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.volume
}

// applyGain must be called with p.mu held
func (p *Player) applyGain() {
	g := p.masterGain() - 1
	if !p.initialized {
		p.master.Gain = g
		return
	}
	speaker.Lock()
	p.master.Gain = g
	speaker.Unlock()
}

func (p *Player) Tick()  { p.play(CueTick) }
func (p *Player) Blink() { p.play(CueBlink) }
func (p *Player) Start() { p.play(CueStart) }
func (p *Player) Win()   { p.play(CueWin) }

// QuietAll fades every sounding voice to silence over d
func (p *Player) QuietAll(d time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.ready() {
		return
	}
	if d < 10*time.Millisecond {
		d = 10 * time.Millisecond
	}

	speaker.Lock()
	for _, v := range p.voices {
		v.fade(d)
	}
	speaker.Unlock()
}

// ready must be called with p.mu held
func (p *Player) ready() bool {
	return p.initialized && p.enabled && !p.closed
}

func (p *Player) play(cue Cue) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.ready() {
		return
	}

	v := newCue(p.rate, cue)
	if v == nil {
		log.Printf("audio: unknown cue %v", cue)
		return
	}

	speaker.Lock()
	p.voices = pruneVoices(p.voices)
	p.voices = append(p.voices, v)
	p.mixer.Add(v)
	speaker.Unlock()
}

// pruneVoices drops finished voices in place
func pruneVoices(voices []*voice) []*voice {
	live := voices[:0]
	for _, v := range voices {
		if !v.done {
			live = append(live, v)
		}
	}
	for i := len(live); i < len(voices); i++ {
		voices[i] = nil
	}
	return live
}
