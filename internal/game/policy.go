package game

import "fmt"

// CollectPolicy decides what stepping onto a treasure does.
type CollectPolicy int

const (
	// AutoCollect collects the moment the player stands on the tile.
	AutoCollect CollectPolicy = iota
	// ConfirmCollect opens the detail view on arrival; collecting waits
	// for an explicit confirmation.
	ConfirmCollect
)

// String returns the policy's config spelling.
func (p CollectPolicy) String() string {
	switch p {
	case AutoCollect:
		return "auto"
	case ConfirmCollect:
		return "confirm"
	default:
		return "unknown"
	}
}

// ParsePolicy resolves a config spelling to a policy.
func ParsePolicy(s string) (CollectPolicy, error) {
	switch s {
	case "auto", "":
		return AutoCollect, nil
	case "confirm":
		return ConfirmCollect, nil
	}
	return AutoCollect, fmt.Errorf("game: unknown collect policy %q (want auto or confirm)", s)
}
