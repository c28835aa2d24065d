package wheel

import (
	"errors"
	"math/rand/v2"
	"reflect"
	"slices"
	"testing"
	"time"

	"github.com/lixenwraith/prize-wheel/audio"
	"github.com/lixenwraith/prize-wheel/constants"
	"github.com/lixenwraith/prize-wheel/spin"
	"github.com/lixenwraith/prize-wheel/store"
)

var testEpoch = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

// fullSpin covers the longest spin, one slowest tick and the blink sequence
const fullSpin = 10 * time.Second

type fixture struct {
	clock   *spin.MockClock
	cues    *audio.Recorder
	backend *store.MemoryBackend
	pool    *store.PoolStore
	prefs   *store.AudioStore
	ctrl    *Controller
}

func newFixture(t *testing.T, raw string, opts ...func(*Options)) *fixture {
	t.Helper()
	f := &fixture{
		clock:   spin.NewMockClock(testEpoch),
		cues:    audio.NewRecorder(),
		backend: store.NewMemoryBackend(),
	}
	f.pool = store.OpenPool(f.backend, raw)
	f.prefs = store.OpenAudio(f.backend, store.DefaultAudioPrefs())

	o := Options{
		Pool:  f.pool,
		Prefs: f.prefs,
		Cues:  f.cues,
		Clock: f.clock,
		RNG:   rand.New(rand.NewPCG(7, 11)),
	}
	for _, fn := range opts {
		fn(&o)
	}
	f.ctrl = New(o)
	t.Cleanup(f.ctrl.Close)
	return f
}

func (f *fixture) draw(t *testing.T) spin.Result {
	t.Helper()
	if !f.ctrl.Start() {
		t.Fatalf("Start rejected (phase %s)", f.ctrl.Snapshot().Phase)
	}
	f.clock.Advance(fullSpin)
	if phase := f.ctrl.Snapshot().Phase; phase != spin.PhaseSettled {
		t.Fatalf("expected Settled after %v, got %s", fullSpin, phase)
	}
	res, ok := f.ctrl.Acknowledge()
	if !ok {
		t.Fatal("Acknowledge rejected")
	}
	return res
}

func TestController_DrawCommitsOnAcknowledge(t *testing.T) {
	f := newFixture(t, "Car")

	f.ctrl.Start()
	f.clock.Advance(fullSpin)

	if got := f.pool.State().RemovedLabels; len(got) != 0 {
		t.Errorf("removal committed before acknowledge: %v", got)
	}
	if w, ok := f.ctrl.Snapshot().WinnerEntry(); !ok || w.Label != "Car" {
		t.Errorf("winner = %+v, %v", w, ok)
	}

	res, ok := f.ctrl.Acknowledge()
	if !ok || !res.Won || res.Entry.Label != "Car" {
		t.Fatalf("Acknowledge = %+v, %v", res, ok)
	}
	if got := f.pool.State().RemovedLabels; !reflect.DeepEqual(got, []string{"Car"}) {
		t.Errorf("removed = %v, want [Car]", got)
	}
	if _, ok := f.ctrl.Acknowledge(); ok {
		t.Error("second acknowledge should be rejected")
	}
	if got := f.pool.State().RemovedLabels; len(got) != 1 {
		t.Errorf("removal appended more than once: %v", got)
	}
}

func TestController_DuplicateLabelsDrainPool(t *testing.T) {
	f := newFixture(t, "A#B#B")

	var drawn []string
	for i := 0; i < 3; i++ {
		drawn = append(drawn, f.draw(t).Entry.Label)
	}
	slices.Sort(drawn)
	if !reflect.DeepEqual(drawn, []string{"A", "B", "B"}) {
		t.Errorf("drawn = %v, want every occurrence exactly once", drawn)
	}

	removed := f.pool.State().RemovedLabels
	slices.Sort(removed)
	if !reflect.DeepEqual(removed, []string{"A", "B", "B"}) {
		t.Errorf("removed = %v", removed)
	}

	if f.ctrl.Start() {
		t.Error("Start on an exhausted pool should be a no-op")
	}
	for _, e := range f.ctrl.Entries() {
		if !e.Removed {
			t.Errorf("entry %s should be removed", e.ID)
		}
	}
}

func TestController_StartAppliesAudioPrefs(t *testing.T) {
	f := newFixture(t, "A#B")
	f.prefs.Set(store.AudioPrefs{Enabled: true, Volume: 0.4})

	f.ctrl.Start()
	if f.cues.Resumes() != 1 {
		t.Errorf("expected one Resume, got %d", f.cues.Resumes())
	}
	if !f.cues.Enabled() || f.cues.Volume() != 0.4 {
		t.Errorf("cues enabled=%v volume=%v", f.cues.Enabled(), f.cues.Volume())
	}
	if n := f.cues.Count(audio.CueStart); n != 1 {
		t.Errorf("start cues = %d", n)
	}
}

func TestController_DisabledAudioSkipsResume(t *testing.T) {
	f := newFixture(t, "A#B")
	f.ctrl.ApplyAudioSettings(false, 0.5)

	f.ctrl.Start()
	f.clock.Advance(fullSpin)

	if f.cues.Resumes() != 0 {
		t.Error("Resume should not be attempted while disabled")
	}
	if got := f.cues.Cues(); len(got) != 0 {
		t.Errorf("disabled audio produced cues: %v", got)
	}
}

func TestController_ResumeFailureIsNotFatal(t *testing.T) {
	f := newFixture(t, "A#B")
	f.cues.ResumeErr = audio.ErrNotInitialized

	if !f.ctrl.Start() {
		t.Error("audio failure must not prevent a spin")
	}
}

func TestController_Muted(t *testing.T) {
	f := newFixture(t, "A#B", func(o *Options) { o.Muted = true })

	f.ctrl.Start()
	if f.cues.Enabled() {
		t.Error("muted controller enabled the cues")
	}
	if f.cues.Resumes() != 0 {
		t.Error("muted controller resumed audio")
	}
	if !f.prefs.Prefs().Enabled {
		t.Error("mute must not change the stored preference")
	}
}

func TestController_Reset(t *testing.T) {
	f := newFixture(t, "A#B#C")
	f.draw(t)

	f.ctrl.Start()
	f.clock.Advance(200 * time.Millisecond)
	if f.ctrl.Reset() {
		t.Error("Reset while spinning should be rejected")
	}
	if len(f.pool.State().RemovedLabels) != 1 {
		t.Error("rejected reset cleared removals")
	}

	f.clock.Advance(fullSpin)
	if !f.ctrl.Reset() {
		t.Fatal("Reset while settled should succeed")
	}
	if phase := f.ctrl.Snapshot().Phase; phase != spin.PhaseIdle {
		t.Errorf("phase after reset = %s", phase)
	}
	if got := f.pool.State().RemovedLabels; len(got) != 0 {
		t.Errorf("reset should restore every prize, removed = %v", got)
	}

	// Idle reset is allowed too
	f.draw(t)
	if !f.ctrl.Reset() || len(f.pool.State().RemovedLabels) != 0 {
		t.Error("idle reset should clear removals")
	}
}

func TestController_ApplyCustomPool(t *testing.T) {
	f := newFixture(t, "Old")
	f.draw(t)

	if f.ctrl.ApplyCustomPool(" # \n ") {
		t.Error("text without labels should be ignored")
	}
	if st := f.pool.State(); st.RawInput != "Old" || len(st.RemovedLabels) != 1 {
		t.Errorf("ignored text changed the pool: %+v", st)
	}

	if !f.ctrl.ApplyCustomPool(" Car \n\nBike## Bike ") {
		t.Fatal("ApplyCustomPool rejected")
	}
	st := f.pool.State()
	if st.RawInput != "Car#Bike#Bike" || len(st.RemovedLabels) != 0 {
		t.Errorf("pool = %+v, want normalized text and no removals", st)
	}
	if n := len(f.ctrl.Entries()); n != 3 {
		t.Errorf("entries = %d, want 3", n)
	}

	f.ctrl.Start()
	if f.ctrl.ApplyCustomPool("X") {
		t.Error("ApplyCustomPool while spinning should be rejected")
	}

	f.clock.Advance(fullSpin)
	if !f.ctrl.ApplyCustomPool("X") {
		t.Fatal("ApplyCustomPool over a settled result should succeed")
	}
	if _, ok := f.ctrl.Acknowledge(); ok {
		t.Error("result should be discarded by a new pool")
	}
	if got := f.pool.State().RemovedLabels; len(got) != 0 {
		t.Errorf("discarded result was committed: %v", got)
	}
}

func TestController_GoAgain(t *testing.T) {
	f := newFixture(t, "A#B")

	if f.ctrl.GoAgain() {
		t.Error("GoAgain without a result should be rejected")
	}

	f.ctrl.Start()
	f.clock.Advance(fullSpin)
	if !f.ctrl.GoAgain() {
		t.Fatal("GoAgain rejected")
	}
	if len(f.pool.State().RemovedLabels) != 1 {
		t.Error("GoAgain must commit the result")
	}
	if phase := f.ctrl.Snapshot().Phase; phase != spin.PhaseIdle {
		t.Errorf("phase right after GoAgain = %s, want Idle", phase)
	}

	f.clock.Advance(constants.GoAgainDelay - time.Millisecond)
	if f.ctrl.Snapshot().Phase != spin.PhaseIdle {
		t.Error("restart happened before the delay")
	}
	f.clock.Advance(time.Millisecond)
	if phase := f.ctrl.Snapshot().Phase; phase != spin.PhaseSpinning {
		t.Fatalf("phase after delay = %s, want Spinning", phase)
	}

	// Last prize: GoAgain commits it and the restart finds nothing left
	f.clock.Advance(fullSpin)
	if !f.ctrl.GoAgain() {
		t.Fatal("second GoAgain rejected")
	}
	f.clock.Advance(time.Second)
	if phase := f.ctrl.Snapshot().Phase; phase != spin.PhaseIdle {
		t.Errorf("exhausted pool restarted: %s", phase)
	}
}

func TestController_GoAgainCancelledByReset(t *testing.T) {
	f := newFixture(t, "A#B#C")
	f.ctrl.Start()
	f.clock.Advance(fullSpin)
	f.ctrl.GoAgain()

	if !f.ctrl.Reset() {
		t.Fatal("idle reset rejected")
	}
	f.clock.Advance(time.Second)
	if phase := f.ctrl.Snapshot().Phase; phase != spin.PhaseIdle {
		t.Errorf("cancelled go-again still started a spin: %s", phase)
	}
}

func TestController_CloseStopsEverything(t *testing.T) {
	f := newFixture(t, "A#B#C")
	f.ctrl.Start()
	f.clock.Advance(fullSpin)
	f.ctrl.GoAgain()

	f.ctrl.Close()
	if n := f.clock.Pending(); n != 0 {
		t.Errorf("%d wake-ups pending after Close", n)
	}
	f.cues.Reset()
	f.clock.Advance(time.Second)
	if f.ctrl.Start() || f.ctrl.Reset() || f.ctrl.GoAgain() || f.ctrl.ApplyCustomPool("Z") {
		t.Error("commands after Close should be no-ops")
	}
	if got := f.cues.Cues(); len(got) != 0 {
		t.Errorf("cues after Close: %v", got)
	}
}

func TestController_ApplyAudioSettings(t *testing.T) {
	f := newFixture(t, "A")

	got := f.ctrl.ApplyAudioSettings(true, 3)
	if got.Volume != 1 || f.prefs.Prefs().Volume != 1 || f.cues.Volume() != 1 {
		t.Errorf("volume not clamped: %+v", got)
	}

	f.ctrl.ApplyAudioSettings(false, 0.2)
	if f.cues.Enabled() || f.ctrl.AudioPrefs().Enabled {
		t.Error("disable not applied")
	}
	if _, ok := f.backend.Get(constants.AudioStoreKey); !ok {
		t.Error("audio settings not persisted")
	}
}

func TestController_SaveFailureKeepsDrawing(t *testing.T) {
	f := newFixture(t, "A#B")
	f.backend.SaveErr = errors.New("read-only")

	res := f.draw(t)
	if got := f.pool.State().RemovedLabels; !reflect.DeepEqual(got, []string{res.Entry.Label}) {
		t.Errorf("in-memory removal lost on save failure: %v", got)
	}
}

func TestController_SubscribePool(t *testing.T) {
	f := newFixture(t, "A#B")
	var states []store.PoolState
	f.ctrl.SubscribePool(func(s store.PoolState) { states = append(states, s) })

	f.draw(t)
	if len(states) != 1 || len(states[0].RemovedLabels) != 1 {
		t.Errorf("pool notifications = %+v", states)
	}
}
