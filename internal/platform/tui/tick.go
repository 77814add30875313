// Package tui provides the Bubble Tea front end for perxplor: it maps key
// and mouse events to engine intents, rasterizes engine frames with
// lipgloss, and serves sessions locally or over SSH.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg advances the animation clock while the zoom sits at the detail
// level. Gen ties the message to the tick run that scheduled it: widening
// the zoom bumps the generation, so a tick already in flight arrives stale
// and is dropped instead of rescheduling itself forever.
type TickMsg struct {
	Gen  int
	Time time.Time
}

// tickCmd schedules the next animation tick for a generation.
func tickCmd(gen, fps int) tea.Cmd {
	if fps <= 0 {
		fps = 12
	}
	interval := time.Second / time.Duration(fps)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{Gen: gen, Time: t}
	})
}
