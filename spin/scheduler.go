// Package spin drives the prize wheel animation as a timer-advanced state machine:
// Idle, Spinning (decelerating highlight ticks), Landed (winner blink) and Settled (result shown).
package spin

import (
	"log"
	"math"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/lixenwraith/prize-wheel/constants"
	"github.com/lixenwraith/prize-wheel/pool"
)

// RNG abstracts random number generation for deterministic testing; *rand.Rand satisfies it
type RNG interface {
	// IntN returns a non-negative random int in [0, n)
	IntN(n int) int
	// Float64 returns a random float in [0, 1)
	Float64() float64
}

// stdRNG delegates to math/rand/v2 (auto-seeded)
type stdRNG struct{}

func (stdRNG) IntN(n int) int   { return rand.IntN(n) }
func (stdRNG) Float64() float64 { return rand.Float64() }

// Cues is the subset of the audio capability the scheduler triggers
type Cues interface {
	Tick()
	Blink()
	Start()
	Win()
	QuietAll(fade time.Duration)
}

type nopCues struct{}

func (nopCues) Tick()                  {}
func (nopCues) Blink()                 {}
func (nopCues) Start()                 {}
func (nopCues) Win()                   {}
func (nopCues) QuietAll(time.Duration) {}

// Config wires the scheduler's collaborators; nil fields fall back to real time, math/rand and silence
type Config struct {
	Clock Clock
	RNG   RNG
	Cues  Cues
}

// Listener receives a snapshot after every state change.
// Listeners run with the scheduler locked and must not call back into it.
type Listener func(Snapshot)

// Result is the outcome handed over when a settled spin is acknowledged
type Result struct {
	Entry pool.Entry
	Index int
	Won   bool
}

// session is the ephemeral state of one spin
type session struct {
	id        uint64
	entries   []pool.Entry
	available []int

	highlighted []int
	pending     []int

	startedAt time.Time
	total     time.Duration
	progress  float64

	winner  int
	toggles int
}

// Scheduler owns the spin state machine and at most one pending wake-up
type Scheduler struct {
	mu sync.Mutex

	clock Clock
	rng   RNG
	cues  Cues

	phase   Phase
	session *session
	lastID  uint64
	timer   Timer
	closed  bool

	listeners  []listenerSlot
	listenerID int
}

type listenerSlot struct {
	id int
	fn Listener
}

// New creates an idle scheduler
func New(cfg Config) *Scheduler {
	if cfg.Clock == nil {
		cfg.Clock = NewRealClock()
	}
	if cfg.RNG == nil {
		cfg.RNG = stdRNG{}
	}
	if cfg.Cues == nil {
		cfg.Cues = nopCues{}
	}
	return &Scheduler{
		clock: cfg.Clock,
		rng:   cfg.RNG,
		cues:  cfg.Cues,
		phase: PhaseIdle,
	}
}

// Subscribe registers fn for snapshots; the returned func removes it
func (s *Scheduler) Subscribe(fn Listener) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.listenerID++
	id := s.listenerID
	s.listeners = append(s.listeners, listenerSlot{id: id, fn: fn})

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, l := range s.listeners {
			if l.id == id {
				s.listeners = append(s.listeners[:i], s.listeners[i+1:]...)
				return
			}
		}
	}
}

// Phase returns the current phase
func (s *Scheduler) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

// Snapshot returns an immutable copy of the visible state
func (s *Scheduler) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Start begins a spin over entries.
// Returns false, changing nothing, unless idle with at least one available entry.
func (s *Scheduler) Start(entries []pool.Entry) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed || s.phase != PhaseIdle {
		return false
	}
	available := pool.AvailableIndices(entries)
	if len(available) == 0 {
		return false
	}

	s.lastID++
	spread := float64(constants.SpinMaxDuration - constants.SpinMinDuration)
	sess := &session{
		id:        s.lastID,
		entries:   append([]pool.Entry(nil), entries...),
		available: available,
		startedAt: s.clock.Now(),
		total:     constants.SpinMinDuration + time.Duration(s.rng.Float64()*spread),
		winner:    -1,
	}
	sess.pending = s.shuffle(available)

	s.session = sess
	s.setPhaseLocked(PhaseSpinning)
	s.cues.Start()
	log.Printf("spin: session %d started over %d available entries, duration %v", sess.id, len(available), sess.total)

	s.scheduleLocked(constants.SpinFirstTickDelay, s.tickLocked)
	s.notifyLocked()
	return true
}

// Acknowledge closes a settled result and returns to idle.
// Returns false unless settled; the result carries the winner, if any.
func (s *Scheduler) Acknowledge() (Result, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed || s.phase != PhaseSettled {
		return Result{}, false
	}

	res := Result{Index: -1}
	if sess := s.session; sess != nil && sess.winner >= 0 {
		res = Result{Entry: sess.entries[sess.winner], Index: sess.winner, Won: true}
	}

	s.discardLocked()
	s.notifyLocked()
	return res, true
}

// Reset discards any settled result without committing it.
// Rejected while spinning or landed.
func (s *Scheduler) Reset() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed || s.phase.Busy() {
		return false
	}
	s.discardLocked()
	s.notifyLocked()
	return true
}

// Close cancels the pending wake-up and discards all state; later calls are no-ops
func (s *Scheduler) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	s.stopTimerLocked()
	s.closed = true
	s.session = nil
	s.phase = PhaseIdle
	s.listeners = nil
}

// discardLocked clears the session and returns to idle
func (s *Scheduler) discardLocked() {
	s.stopTimerLocked()
	s.session = nil
	s.setPhaseLocked(PhaseIdle)
}

func (s *Scheduler) setPhaseLocked(to Phase) {
	if !CanTransition(s.phase, to) {
		log.Printf("spin: invalid transition %s -> %s", s.phase, to)
	}
	s.phase = to
}

func (s *Scheduler) stopTimerLocked() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

// scheduleLocked replaces the pending wake-up with step after d.
// The wake-up is dropped if the session changed or the scheduler closed in the meantime.
func (s *Scheduler) scheduleLocked(d time.Duration, step func()) {
	s.stopTimerLocked()

	id := s.session.id
	var t Timer
	t = s.clock.AfterFunc(d, func() {
		s.mu.Lock()
		defer s.mu.Unlock()

		if s.closed || s.session == nil || s.session.id != id || s.timer != t {
			return
		}
		s.timer = nil
		step()
		s.notifyLocked()
	})
	s.timer = t
}

// tickLocked advances one highlight step of the spinning phase
func (s *Scheduler) tickLocked() {
	sess := s.session
	elapsed := s.clock.Now().Sub(sess.startedAt)
	t := math.Min(1, float64(elapsed)/float64(sess.total))
	sess.progress = t

	sess.highlighted = s.nextGroup(sess, GroupSize(len(sess.available), t))
	if len(sess.highlighted) > 0 {
		s.cues.Tick()
	}

	if elapsed >= sess.total || len(sess.available) == 0 {
		s.landLocked()
		return
	}

	s.scheduleLocked(TickDelay(t), s.tickLocked)
}

// nextGroup dequeues size distinct indices from the pending-visit queue,
// refilling it with a fresh shuffle whenever it runs dry
func (s *Scheduler) nextGroup(sess *session, size int) []int {
	group := make([]int, 0, size)
	for len(group) < size {
		if len(sess.pending) == 0 {
			sess.pending = s.shuffle(sess.available)
			if len(sess.pending) == 0 {
				break
			}
		}
		next := sess.pending[0]
		sess.pending = sess.pending[1:]

		if containsIndex(group, next) {
			// Fresh cycle repeated an index already in this group; revisit it later in the cycle
			sess.pending = append(sess.pending, next)
			continue
		}
		group = append(group, next)
	}
	return group
}

// landLocked picks the winner uniformly among available entries and starts the blink sequence
func (s *Scheduler) landLocked() {
	sess := s.session
	sess.progress = 1

	if len(sess.available) == 0 {
		sess.highlighted = nil
		s.setPhaseLocked(PhaseSettled)
		log.Printf("spin: session %d settled with no winner", sess.id)
		return
	}

	sess.winner = sess.available[s.rng.IntN(len(sess.available))]
	sess.highlighted = []int{sess.winner}
	s.setPhaseLocked(PhaseLanded)
	log.Printf("spin: session %d landed on %s", sess.id, sess.entries[sess.winner].ID)

	s.scheduleLocked(constants.BlinkInterval, s.blinkLocked)
}

// blinkLocked toggles the winner highlight; the final toggle settles the session
func (s *Scheduler) blinkLocked() {
	sess := s.session
	if len(sess.highlighted) == 1 && sess.highlighted[0] == sess.winner {
		sess.highlighted = nil
	} else {
		sess.highlighted = []int{sess.winner}
	}
	s.cues.Blink()
	sess.toggles++

	if sess.toggles >= constants.BlinkToggles {
		s.cues.QuietAll(constants.SettleQuietDuration)
		sess.highlighted = []int{sess.winner}
		s.setPhaseLocked(PhaseSettled)
		s.cues.Win()
		return
	}

	s.scheduleLocked(constants.BlinkInterval, s.blinkLocked)
}

// shuffle returns a Fisher-Yates permutation of indices
func (s *Scheduler) shuffle(indices []int) []int {
	out := append([]int(nil), indices...)
	for i := len(out) - 1; i > 0; i-- {
		j := s.rng.IntN(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}

func (s *Scheduler) notifyLocked() {
	if len(s.listeners) == 0 {
		return
	}
	snap := s.snapshotLocked()
	for _, l := range s.listeners {
		l.fn(snap)
	}
}

func (s *Scheduler) snapshotLocked() Snapshot {
	snap := Snapshot{Phase: s.phase, Winner: -1}
	if sess := s.session; sess != nil {
		snap.Session = sess.id
		snap.Entries = sess.entries
		snap.Highlighted = append([]int(nil), sess.highlighted...)
		snap.Winner = sess.winner
		snap.Progress = sess.progress
		snap.Toggles = sess.toggles
	}
	return snap
}

// GroupSize is the number of prizes highlighted per tick at progress t in [0, 1].
// It shrinks from min(4, max(1, available/3)) towards 1 as the spin decelerates.
func GroupSize(available int, t float64) int {
	maxGroup := max(1, available/constants.SpinGroupDivisor)
	maxGroup = min(constants.SpinMaxGroup, maxGroup)
	return max(1, int(math.Round((1-t)*float64(maxGroup))))
}

// TickDelay is the wait before the next tick at progress t; ticks slow down towards the end
func TickDelay(t float64) time.Duration {
	return constants.SpinTickBase + time.Duration(t*float64(constants.SpinTickSlowdown))
}

func containsIndex(indices []int, idx int) bool {
	for _, i := range indices {
		if i == idx {
			return true
		}
	}
	return false
}
