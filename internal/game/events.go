package game

import "github.com/hoomehr/perxplor/internal/treasure"

// EventKind tags an engine event.
type EventKind int

const (
	// EventOpened means a treasure's detail view should show.
	EventOpened EventKind = iota
	// EventCollected means a treasure was just collected and the score moved.
	EventCollected
)

// Event is something the platform should surface to the player. The engine
// queues events during a mutation and hands them back from the same call,
// in the order they happened.
type Event struct {
	Kind     EventKind
	Treasure treasure.Treasure
	State    State // treasure's state after the event
	Reward   int   // points granted, only for EventCollected
}
