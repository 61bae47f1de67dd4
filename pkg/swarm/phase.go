package swarm

// Phase is the swarm's behavioral state.
type Phase uint8

const (
	// PhaseFree: particles drift with light damping and wrap at the edges.
	PhaseFree Phase = iota
	// PhaseGathering: particles are pulled toward the aim point.
	PhaseGathering
)

func (p Phase) String() string {
	switch p {
	case PhaseFree:
		return "FREE"
	case PhaseGathering:
		return "GATHERING"
	default:
		return "UNKNOWN"
	}
}

// Transition is the edge produced by one observation.
type Transition uint8

const (
	TransitionNone    Transition = iota
	TransitionGather             // FREE -> GATHERING
	TransitionRelease            // GATHERING -> FREE, fires the burst
)

func (t Transition) String() string {
	switch t {
	case TransitionGather:
		return "gather"
	case TransitionRelease:
		return "release"
	default:
		return "none"
	}
}

// PhaseMachine tracks the swarm phase and reports edges between frames.
// The zero value starts in PhaseFree.
type PhaseMachine struct {
	current  Phase
	previous Phase
}

// Observe feeds the eyes-closed signal for one frame and returns the edge,
// comparing against the phase of the previous observed frame.
func (m *PhaseMachine) Observe(eyesClosed bool) Transition {
	m.previous = m.current
	if eyesClosed {
		m.current = PhaseGathering
	} else {
		m.current = PhaseFree
	}

	switch {
	case m.previous == PhaseFree && m.current == PhaseGathering:
		return TransitionGather
	case m.previous == PhaseGathering && m.current == PhaseFree:
		return TransitionRelease
	default:
		return TransitionNone
	}
}

// Current returns the phase after the last observation.
func (m *PhaseMachine) Current() Phase {
	return m.current
}

// Previous returns the phase before the last observation.
func (m *PhaseMachine) Previous() Phase {
	return m.previous
}

// Gathering reports whether the swarm is currently gathering.
func (m *PhaseMachine) Gathering() bool {
	return m.current == PhaseGathering
}
