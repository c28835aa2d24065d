package spin

import "github.com/lixenwraith/prize-wheel/pool"

// Snapshot is a point-in-time copy of the scheduler's visible state
type Snapshot struct {
	Session uint64 // 0 when idle
	Phase   Phase

	// Entries is the candidate set captured at start; shared, must not be mutated
	Entries []pool.Entry

	Highlighted []int
	Winner      int // -1 until landed
	Progress    float64
	Toggles     int
}

// Spinning reports whether the animation is running (the start control is disabled)
func (s Snapshot) Spinning() bool {
	return s.Phase.Busy()
}

// IsHighlighted reports whether entry index i is highlighted
func (s Snapshot) IsHighlighted(i int) bool {
	return containsIndex(s.Highlighted, i)
}

// WinnerEntry returns the landed entry, if any
func (s Snapshot) WinnerEntry() (pool.Entry, bool) {
	if s.Winner < 0 || s.Winner >= len(s.Entries) {
		return pool.Entry{}, false
	}
	return s.Entries[s.Winner], true
}

// ResultVisible reports whether the result should be shown to the user
func (s Snapshot) ResultVisible() bool {
	return s.Phase == PhaseSettled
}
