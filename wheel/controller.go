// Package wheel turns user commands into pool store, scheduler and audio operations
package wheel

import (
	"log"
	"sync"

	"github.com/lixenwraith/prize-wheel/audio"
	"github.com/lixenwraith/prize-wheel/constants"
	"github.com/lixenwraith/prize-wheel/pool"
	"github.com/lixenwraith/prize-wheel/spin"
	"github.com/lixenwraith/prize-wheel/store"
)

// Options wires a Controller; Clock, RNG and Cues are optional
type Options struct {
	Pool  *store.PoolStore
	Prefs *store.AudioStore
	Cues  audio.Cues
	Clock spin.Clock
	RNG   spin.RNG

	// Muted silences output for this run without touching the stored preferences
	Muted bool
}

// Controller is the single entry point for user commands
type Controller struct {
	mu sync.Mutex

	pool  *store.PoolStore
	prefs *store.AudioStore
	cues  audio.Cues
	clock spin.Clock
	sched *spin.Scheduler
	muted bool

	goAgain spin.Timer
	closed  bool
}

// New creates a controller and applies the stored audio preferences
func New(opts Options) *Controller {
	if opts.Cues == nil {
		opts.Cues = audio.Nop{}
	}
	if opts.Clock == nil {
		opts.Clock = spin.NewRealClock()
	}
	c := &Controller{
		pool:  opts.Pool,
		prefs: opts.Prefs,
		cues:  opts.Cues,
		clock: opts.Clock,
		muted: opts.Muted,
	}
	c.sched = spin.New(spin.Config{Clock: opts.Clock, RNG: opts.RNG, Cues: opts.Cues})
	c.applyPrefs(c.prefs.Prefs())
	return c
}

// Entries derives the current prize entries from the pool store
func (c *Controller) Entries() []pool.Entry {
	st := c.pool.State()
	return pool.Parse(st.RawInput, st.RemovedLabels)
}

// PoolState returns the stored raw pool text and removed labels
func (c *Controller) PoolState() store.PoolState {
	return c.pool.State()
}

// Snapshot returns the scheduler state
func (c *Controller) Snapshot() spin.Snapshot {
	return c.sched.Snapshot()
}

// Subscribe registers fn for scheduler snapshots; fn must not call back into the controller
func (c *Controller) Subscribe(fn spin.Listener) func() {
	return c.sched.Subscribe(fn)
}

// SubscribePool registers fn for pool changes
func (c *Controller) SubscribePool(fn func(store.PoolState)) func() {
	return c.pool.Subscribe(fn)
}

// AudioPrefs returns the stored audio preferences
func (c *Controller) AudioPrefs() store.AudioPrefs {
	return c.prefs.Prefs()
}

// Start unlocks audio and begins a spin over the available prizes.
// No-op unless idle with at least one available prize.
func (c *Controller) Start() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return false
	}
	return c.startLocked()
}

func (c *Controller) startLocked() bool {
	entries := c.Entries()
	if c.sched.Phase() != spin.PhaseIdle || pool.AvailableCount(entries) == 0 {
		return false
	}

	prefs := c.prefs.Prefs()
	c.applyPrefs(prefs)
	if prefs.Enabled && !c.muted {
		if err := c.cues.Resume(); err != nil {
			log.Printf("wheel: audio resume: %v", err)
		}
	}
	return c.sched.Start(entries)
}

// Acknowledge closes the result and commits the winner to the removed labels
func (c *Controller) Acknowledge() (spin.Result, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.acknowledgeLocked()
}

func (c *Controller) acknowledgeLocked() (spin.Result, bool) {
	res, ok := c.sched.Acknowledge()
	if !ok {
		return res, false
	}
	if res.Won {
		if err := c.pool.AddRemovedLabel(res.Entry.Label); err != nil {
			log.Printf("wheel: commit %q: %v", res.Entry.Label, err)
		}
		log.Printf("wheel: drew %q", res.Entry.Label)
	}
	return res, true
}

// GoAgain acknowledges the result and starts another spin shortly after, if anything is left
func (c *Controller) GoAgain() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return false
	}
	if _, ok := c.acknowledgeLocked(); !ok {
		return false
	}

	c.stopGoAgainLocked()
	var t spin.Timer
	t = c.clock.AfterFunc(constants.GoAgainDelay, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if c.closed || c.goAgain != t {
			return
		}
		c.goAgain = nil
		c.startLocked()
	})
	c.goAgain = t
	return true
}

// Reset restores every prize and clears any shown result. Rejected while a spin is running.
func (c *Controller) Reset() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed || !c.sched.Reset() {
		return false
	}
	c.stopGoAgainLocked()
	if err := c.pool.ClearRemoved(); err != nil {
		log.Printf("wheel: reset: %v", err)
	}
	return true
}

// ApplyCustomPool replaces the pool with the labels in text and clears removals.
// Text with no labels is ignored. Rejected while a spin is running.
func (c *Controller) ApplyCustomPool(text string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed || len(pool.Split(text)) == 0 {
		return false
	}
	if !c.sched.Reset() {
		return false
	}
	c.stopGoAgainLocked()
	if err := c.pool.SetRawInput(pool.Normalize(text)); err != nil {
		log.Printf("wheel: apply pool: %v", err)
	}
	return true
}

// ApplyAudioSettings stores and applies the audio preferences; volume is clamped to [0, 1]
func (c *Controller) ApplyAudioSettings(enabled bool, volume float64) store.AudioPrefs {
	prefs := store.AudioPrefs{Enabled: enabled, Volume: audio.ClampVolume(volume)}
	if err := c.prefs.Set(prefs); err != nil {
		log.Printf("wheel: save audio settings: %v", err)
	}
	c.applyPrefs(prefs)
	return prefs
}

func (c *Controller) applyPrefs(p store.AudioPrefs) {
	c.cues.SetVolume(p.Volume)
	c.cues.SetEnabled(p.Enabled && !c.muted)
}

func (c *Controller) stopGoAgainLocked() {
	if c.goAgain != nil {
		c.goAgain.Stop()
		c.goAgain = nil
	}
}

// Close cancels pending work and stops the scheduler; later commands are no-ops
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	c.stopGoAgainLocked()
	c.sched.Close()
}
