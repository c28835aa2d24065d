package audio

import (
	"sync"
	"time"
)

// Recorder is a Cues implementation that records cue invocations instead of playing them
type Recorder struct {
	mu        sync.Mutex
	cues      []Cue
	enabled   bool
	volume    float64
	resumes   int
	ResumeErr error
}

// NewRecorder creates an enabled recorder at default volume
func NewRecorder() *Recorder {
	return &Recorder{enabled: true, volume: 1}
}

func (r *Recorder) record(c Cue) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.enabled {
		r.cues = append(r.cues, c)
	}
}

func (r *Recorder) Tick()                  { r.record(CueTick) }
func (r *Recorder) Blink()                 { r.record(CueBlink) }
func (r *Recorder) Start()                 { r.record(CueStart) }
func (r *Recorder) Win()                   { r.record(CueWin) }
func (r *Recorder) QuietAll(time.Duration) { r.record(CueQuiet) }

func (r *Recorder) SetEnabled(enabled bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.enabled = enabled
}

func (r *Recorder) SetVolume(volume float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.volume = ClampVolume(volume)
}

func (r *Recorder) Resume() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.resumes++
	return r.ResumeErr
}

// Cues returns a copy of the recorded sequence
func (r *Recorder) Cues() []Cue {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Cue(nil), r.cues...)
}

// Count returns how many times c was recorded
func (r *Recorder) Count(c Cue) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, got := range r.cues {
		if got == c {
			n++
		}
	}
	return n
}

// Enabled reports the last SetEnabled value
func (r *Recorder) Enabled() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.enabled
}

// Volume reports the last SetVolume value
func (r *Recorder) Volume() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.volume
}

// Resumes reports how many times Resume was called
func (r *Recorder) Resumes() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.resumes
}

// Reset clears the recorded cues
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cues = nil
}
