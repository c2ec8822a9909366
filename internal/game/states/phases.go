package states

import "fmt"

// GamePhase represents the current phase of a session
type GamePhase int

const (
	// PhaseInitializing - map generation, cursors at the bases
	PhaseInitializing GamePhase = iota

	// PhaseActive - ticks, production and moves are live
	PhaseActive

	// PhaseEnded - a Base fell; input and simulation are frozen
	PhaseEnded

	// PhaseReset - reset button observed, state being torn down
	PhaseReset
)

// String returns the string representation of a GamePhase
func (p GamePhase) String() string {
	switch p {
	case PhaseInitializing:
		return "Initializing"
	case PhaseActive:
		return "Active"
	case PhaseEnded:
		return "Ended"
	case PhaseReset:
		return "Reset"
	default:
		return fmt.Sprintf("Unknown(%d)", p)
	}
}

// IsTerminal returns true if only a reset can leave the phase
func (p GamePhase) IsTerminal() bool {
	return p == PhaseEnded
}

// CanReceiveActions returns true if moves and production apply in this phase
func (p GamePhase) CanReceiveActions() bool {
	return p == PhaseActive
}

// AllowedTransitions returns the valid phases this phase can transition to
func (p GamePhase) AllowedTransitions() []GamePhase {
	switch p {
	case PhaseInitializing:
		return []GamePhase{PhaseActive}
	case PhaseActive:
		return []GamePhase{PhaseEnded, PhaseReset}
	case PhaseEnded:
		return []GamePhase{PhaseReset}
	case PhaseReset:
		return []GamePhase{PhaseInitializing}
	default:
		return []GamePhase{}
	}
}

// CanTransitionTo checks if a transition from this phase to the target phase is allowed
func (p GamePhase) CanTransitionTo(target GamePhase) bool {
	for _, phase := range p.AllowedTransitions() {
		if phase == target {
			return true
		}
	}
	return false
}

// ParsePhase converts a string to a GamePhase
func ParsePhase(s string) GamePhase {
	switch s {
	case "Active":
		return PhaseActive
	case "Ended":
		return PhaseEnded
	case "Reset":
		return PhaseReset
	default:
		return PhaseInitializing
	}
}
