package game

// State is a treasure's lifecycle stage for one player. Stages only move
// forward: Undiscovered to Opened to Collected, and Collected is terminal.
type State int

const (
	Undiscovered State = iota
	Opened
	Collected
)

// String returns a human-readable name for the state.
func (s State) String() string {
	switch s {
	case Undiscovered:
		return "Undiscovered"
	case Opened:
		return "Opened"
	case Collected:
		return "Collected"
	default:
		return "Unknown"
	}
}
