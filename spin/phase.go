package spin

// Phase is the scheduler's position in the spin lifecycle
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseSpinning
	PhaseLanded
	PhaseSettled
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "Idle"
	case PhaseSpinning:
		return "Spinning"
	case PhaseLanded:
		return "Landed"
	case PhaseSettled:
		return "Settled"
	default:
		return "Unknown"
	}
}

// validTransitions lists every legal phase change; Idle is reachable from Settled by
// acknowledgement and from Settled or Idle by reset
var validTransitions = map[Phase][]Phase{
	PhaseIdle:     {PhaseSpinning, PhaseIdle},
	PhaseSpinning: {PhaseSpinning, PhaseLanded, PhaseSettled},
	PhaseLanded:   {PhaseLanded, PhaseSettled},
	PhaseSettled:  {PhaseIdle},
}

// CanTransition checks if a phase transition is valid
func CanTransition(from, to Phase) bool {
	for _, p := range validTransitions[from] {
		if p == to {
			return true
		}
	}
	return false
}

// Busy reports whether a spin animation is in progress (start and reset are rejected)
func (p Phase) Busy() bool {
	return p == PhaseSpinning || p == PhaseLanded
}
