package spin

import (
	"sort"
	"sync"
	"time"
)

// MockClock provides a controllable time source for testing.
// Wake-ups fire synchronously from Advance, on the caller's goroutine, in deadline order.
type MockClock struct {
	mu          sync.Mutex
	currentTime time.Time
	seq         uint64
	pending     []*mockTimer
}

type mockTimer struct {
	clock    *MockClock
	deadline time.Time
	seq      uint64
	f        func()
	stopped  bool
	fired    bool
}

// NewMockClock creates a mock clock with the given start time
func NewMockClock(startTime time.Time) *MockClock {
	return &MockClock{currentTime: startTime}
}

// Now returns the current mocked time
func (m *MockClock) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.currentTime
}

// AfterFunc registers f to run once the mocked time reaches now+d
func (m *MockClock) AfterFunc(d time.Duration, f func()) Timer {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.seq++
	t := &mockTimer{
		clock:    m,
		deadline: m.currentTime.Add(d),
		seq:      m.seq,
		f:        f,
	}
	m.pending = append(m.pending, t)
	return t
}

func (t *mockTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()

	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	t.clock.removeLocked(t)
	return true
}

func (m *MockClock) removeLocked(t *mockTimer) {
	for i, p := range m.pending {
		if p == t {
			m.pending = append(m.pending[:i], m.pending[i+1:]...)
			return
		}
	}
}

// Advance moves time forward by d, firing every wake-up that comes due on the way.
// Wake-ups scheduled by fired callbacks also fire if they fall within the window.
func (m *MockClock) Advance(d time.Duration) {
	m.mu.Lock()
	target := m.currentTime.Add(d)
	m.mu.Unlock()

	for {
		m.mu.Lock()
		next := m.nextDueLocked(target)
		if next == nil {
			m.currentTime = target
			m.mu.Unlock()
			return
		}
		m.removeLocked(next)
		next.fired = true
		if next.deadline.After(m.currentTime) {
			m.currentTime = next.deadline
		}
		f := next.f
		m.mu.Unlock()

		f()
	}
}

// AdvanceToNext jumps to the earliest pending wake-up and fires it.
// Returns false when nothing is pending.
func (m *MockClock) AdvanceToNext() bool {
	m.mu.Lock()
	if len(m.pending) == 0 {
		m.mu.Unlock()
		return false
	}
	m.sortLocked()
	d := m.pending[0].deadline.Sub(m.currentTime)
	m.mu.Unlock()

	m.Advance(d)
	return true
}

// Pending returns the number of wake-ups not yet fired or stopped
func (m *MockClock) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.pending)
}

func (m *MockClock) nextDueLocked(target time.Time) *mockTimer {
	if len(m.pending) == 0 {
		return nil
	}
	m.sortLocked()
	if m.pending[0].deadline.After(target) {
		return nil
	}
	return m.pending[0]
}

func (m *MockClock) sortLocked() {
	sort.SliceStable(m.pending, func(i, j int) bool {
		a, b := m.pending[i], m.pending[j]
		if a.deadline.Equal(b.deadline) {
			return a.seq < b.seq
		}
		return a.deadline.Before(b.deadline)
	})
}
