package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hoomehr/perxplor/internal/core"
	"github.com/hoomehr/perxplor/internal/game"
	"github.com/hoomehr/perxplor/internal/treasure"
)

// Screen rows reserved around the map area.
const (
	hudHeight    = 1
	footerHeight = 1
)

var (
	hudStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#e0e0e0")).
			Background(lipgloss.Color("#1a1a2e")).
			Padding(0, 1)
	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#e9c46a"))
	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#e9c46a")).
			Padding(1, 2).
			Width(44)
	cardTitleStyle = lipgloss.NewStyle().Bold(true)
	cardDimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#7a7a7a"))
)

// rarityColors styles the rarity line on a treasure card.
var rarityColors = map[treasure.Rarity]lipgloss.Color{
	treasure.Common:    lipgloss.Color("#9e9e9e"),
	treasure.Uncommon:  lipgloss.Color("#52b788"),
	treasure.Rare:      lipgloss.Color("#4895ef"),
	treasure.Epic:      lipgloss.Color("#9d4edd"),
	treasure.Legendary: lipgloss.Color("#f77f00"),
}

// Model is the Bubble Tea model for one exploration session. The Update
// loop serializes every engine mutation: keys, clicks and animation ticks
// arrive as messages and are handled one at a time.
type Model struct {
	engine   *game.Engine
	screen   *core.Screen
	renderer *Renderer
	keys     KeyMap
	help     help.Model

	fps    int
	width  int
	height int

	clock   float64
	tickGen int  // current tick generation; stale ticks are dropped
	ticking bool // whether a tick is scheduled

	detail   *game.Event // open treasure card, nil when closed
	status   string
	quitting bool
}

// NewModel creates a session model around a running engine.
func NewModel(engine *game.Engine, fps, width, height int) Model {
	if fps <= 0 {
		fps = 12
	}
	m := Model{
		engine:   engine,
		screen:   core.NewScreen(core.Max(1, width), core.Max(1, height-hudHeight-footerHeight)),
		renderer: NewRenderer(),
		keys:     DefaultKeyMap(),
		help:     help.New(),
		fps:      fps,
		width:    width,
		height:   height,
	}
	// A session configured to start at the detail zoom animates from the
	// first frame.
	if engine.Zoom() == core.ZoomDetail {
		m.ticking = true
		m.tickGen = 1
	}
	return m
}

// Init starts the animation clock when the session begins at detail zoom
// and surfaces anything the login occupancy check already resolved.
func (m Model) Init() tea.Cmd {
	if m.ticking {
		return tickCmd(m.tickGen, m.fps)
	}
	return nil
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case TickMsg:
		return m.handleTick(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.screen.Resize(core.Max(1, msg.Width), core.Max(1, msg.Height-hudHeight-footerHeight))
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		m.engine.Close() //nolint:errcheck // flushes pending saves
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, m.keys.Dismiss):
		m.detail = nil
		return m, nil

	case key.Matches(msg, m.keys.ZoomIn):
		m.engine.ZoomIn()
		return m.syncTick()

	case key.Matches(msg, m.keys.ZoomOut):
		m.engine.ZoomOut()
		return m.syncTick()

	case key.Matches(msg, m.keys.Inspect):
		m.applyEvents(m.engine.Inspect())
		return m, nil

	case key.Matches(msg, m.keys.Collect):
		m.applyEvents(m.engine.Confirm())
		return m, nil
	}

	// Everything else is a movement candidate; the engine's input mapper
	// ignores keys that carry no movement.
	m.applyEvents(m.engine.MoveKey(msg.String()))
	return m, nil
}

// handleMouse steps the player toward the clicked tile and, close enough
// in, opens the treasure under it.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}

	l := m.layout()
	tile, ok := l.tileAt(msg.X, msg.Y-hudHeight)
	if !ok {
		return m, nil // outside the map area
	}

	// The engine's click contract is in abstract pixels; aim at the
	// center of the clicked tile.
	v := m.engine.Viewport()
	px := (tile.X-v.StartX)*v.TileSize + v.TileSize/2
	py := (tile.Y-v.StartY)*v.TileSize + v.TileSize/2
	m.applyEvents(m.engine.Click(px, py))
	return m, nil
}

// handleTick advances the animation clock. Ticks from an old generation or
// arriving after the zoom widened stop the run instead of rescheduling.
func (m Model) handleTick(msg TickMsg) (tea.Model, tea.Cmd) {
	if msg.Gen != m.tickGen {
		return m, nil
	}
	if m.engine.Zoom() != core.ZoomDetail {
		m.ticking = false
		return m, nil
	}
	m.clock += 1.0 / float64(m.fps)
	return m, tickCmd(m.tickGen, m.fps)
}

// syncTick starts or stops the animation clock after a zoom change.
func (m Model) syncTick() (tea.Model, tea.Cmd) {
	atDetail := m.engine.Zoom() == core.ZoomDetail
	if atDetail && !m.ticking {
		m.ticking = true
		m.tickGen++
		return m, tickCmd(m.tickGen, m.fps)
	}
	if !atDetail && m.ticking {
		// The in-flight tick sees the widened zoom and stops itself; the
		// generation bump keeps a late one from restarting the run.
		m.ticking = false
		m.tickGen++
	}
	return m, nil
}

// applyEvents folds engine events into the view: an opened treasure shows
// its card, a collected one flashes the reward in the status line.
func (m *Model) applyEvents(events []game.Event) {
	for _, ev := range events {
		switch ev.Kind {
		case game.EventOpened:
			m.detail = &ev
		case game.EventCollected:
			m.detail = nil
			m.status = fmt.Sprintf("+%d  %s collected", ev.Reward, ev.Treasure.Name)
		}
	}
}

// layout returns the current cell-to-tile mapping for the map area.
func (m Model) layout() layout {
	return newLayout(m.engine.Viewport(), m.width, m.height-hudHeight-footerHeight)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	hud := m.viewHUD()
	footer := m.viewFooter()

	mapH := core.Max(1, m.height-hudHeight-footerHeight)
	if m.detail != nil {
		card := m.viewCard(*m.detail)
		return hud + "\n" +
			lipgloss.Place(m.width, mapH, lipgloss.Center, lipgloss.Center, card) +
			"\n" + footer
	}

	frame := m.engine.Frame(m.clock)
	m.renderer.Draw(frame, m.screen, m.layout())
	return hud + "\n" + m.renderer.Screen(m.screen) + "\n" + footer
}

// viewHUD renders the one-line session header.
func (m Model) viewHUD() string {
	pos := m.engine.Pos()
	line := fmt.Sprintf("%s  score %d  ·  %s  ·  (%d, %d) %s  ·  %d/%d found",
		m.engine.Identity(),
		m.engine.Score(),
		m.engine.Zoom(),
		pos.X, pos.Y,
		m.engine.FamilyAt(pos),
		m.engine.CollectedCount(),
		m.engine.CatalogSize(),
	)
	return hudStyle.Width(m.width).Render(line)
}

// viewFooter renders the status line, or help when nothing just happened.
func (m Model) viewFooter() string {
	if m.status != "" && !m.help.ShowAll {
		s := m.status
		return statusStyle.Render(s)
	}
	return m.help.View(m.keys)
}

// viewCard renders a treasure's detail card.
func (m Model) viewCard(ev game.Event) string {
	tr := ev.Treasure
	rarityStyle := lipgloss.NewStyle().Bold(true)
	if c, ok := rarityColors[tr.Rarity]; ok {
		rarityStyle = rarityStyle.Foreground(c)
	}

	title := cardTitleStyle.Render(fmt.Sprintf("%s  %s", tr.Glyph, tr.Name))
	rarity := rarityStyle.Render(string(tr.Rarity)) +
		cardDimStyle.Render(fmt.Sprintf("  ·  %d points  ·  %s", tr.Rarity.Value(), tr.Biome))

	var hint string
	switch {
	case ev.State == game.Collected:
		hint = cardDimStyle.Render("in your collection  ·  esc close")
	case m.engine.Policy() == game.ConfirmCollect && m.engine.Pos() == tr.Pos():
		hint = cardDimStyle.Render("enter collect  ·  esc close")
	default:
		hint = cardDimStyle.Render("stand on it to collect  ·  esc close")
	}

	body := lipgloss.JoinVertical(lipgloss.Left, title, rarity, "", tr.Description, "", hint)
	return cardStyle.Render(body)
}

// Run starts a local terminal session around the engine and blocks until
// the player quits. The engine is closed (pending saves flushed) before
// Run returns.
func Run(engine *game.Engine, fps, width, height int) error {
	model := NewModel(engine, fps, width, height)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	_, err := p.Run()
	closeErr := engine.Close()
	if err != nil {
		return err
	}
	return closeErr
}
