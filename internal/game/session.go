package game

import "sort"

// SessionSnapshot is the durable shape of one player's progress: the score
// and which treasures they have opened or collected. Snapshots are full
// copies, so saving the latest one always leaves the store consistent no
// matter which earlier writes made it. Player position and zoom are view
// state and deliberately not part of it; every login starts at the spawn
// tile.
type SessionSnapshot struct {
	Score     int
	Collected []string // treasure ids, sorted
	Opened    []string // treasure ids opened but not collected, sorted
}

// Store persists session snapshots keyed by player identity. Implemented by
// the storage package; defined here so the engine does not depend on it.
type Store interface {
	// Load returns the saved snapshot, or (nil, nil) when the identity has
	// no saved progress yet.
	Load(identity string) (*SessionSnapshot, error)
	// Save replaces the identity's snapshot. Last write wins and repeating
	// a save is harmless.
	Save(identity string, snap SessionSnapshot) error
}

// snapshot builds a SessionSnapshot from live engine state.
func snapshot(score int, states map[string]State) SessionSnapshot {
	snap := SessionSnapshot{Score: score}
	for id, st := range states {
		switch st {
		case Collected:
			snap.Collected = append(snap.Collected, id)
		case Opened:
			snap.Opened = append(snap.Opened, id)
		}
	}
	sort.Strings(snap.Collected)
	sort.Strings(snap.Opened)
	return snap
}
