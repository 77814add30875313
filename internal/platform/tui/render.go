package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/hoomehr/perxplor/internal/core"
)

// layout maps between map-area cells and viewport tiles. The cell grid and
// the tile grid rarely agree in size: at wide zooms many tiles collapse
// into one cell, at tight zooms one tile spreads over a block of cells.
// Both directions use the same proportional mapping so clicks land on the
// tile they appear to hit.
type layout struct {
	view core.Viewport
	w, h int // map area size in cells
}

func newLayout(v core.Viewport, w, h int) layout {
	return layout{view: v, w: core.Max(1, w), h: core.Max(1, h)}
}

// tileAt resolves a map-area cell to the tile drawn there.
// Cells outside the area report false.
func (l layout) tileAt(cx, cy int) (core.Coord, bool) {
	if cx < 0 || cx >= l.w || cy < 0 || cy >= l.h {
		return core.Coord{}, false
	}
	v := l.view
	tx := v.StartX + cx*v.Width()/l.w
	ty := v.StartY + cy*v.Height()/l.h
	return core.Coord{
		X: core.Clamp(tx, v.StartX, v.EndX-1),
		Y: core.Clamp(ty, v.StartY, v.EndY-1),
	}, true
}

// cellOf returns the map-area cell at the center of a tile's footprint.
// The tile is assumed to be inside the viewport.
func (l layout) cellOf(t core.Coord) (int, int) {
	v := l.view
	cx := ((t.X-v.StartX)*2 + 1) * l.w / (2 * v.Width())
	cy := ((t.Y-v.StartY)*2 + 1) * l.h / (2 * v.Height())
	return core.Clamp(cx, 0, l.w-1), core.Clamp(cy, 0, l.h-1)
}

// Renderer rasterizes engine frames into a cell buffer and styles the rows
// with lipgloss. Styles are cached per color pair; a frame reuses a handful
// of biome shades across hundreds of cells.
type Renderer struct {
	styles map[styleKey]lipgloss.Style
}

type styleKey struct {
	fg, bg core.Color
}

// NewRenderer creates a renderer with an empty style cache.
func NewRenderer() *Renderer {
	return &Renderer{styles: make(map[styleKey]lipgloss.Style)}
}

// Draw rasterizes one frame into the screen buffer: terrain backgrounds
// first, then treasure glyphs, then the player marker on top.
func (r *Renderer) Draw(f core.Frame, s *core.Screen, l layout) {
	s.Clear()
	v := f.Viewport

	for cy := 0; cy < l.h; cy++ {
		for cx := 0; cx < l.w; cx++ {
			tile, ok := l.tileAt(cx, cy)
			if !ok {
				continue
			}
			idx := (tile.Y-v.StartY)*v.Width() + (tile.X - v.StartX)
			if idx < 0 || idx >= len(f.Tiles) {
				continue
			}
			s.Set(cx, cy, core.Cell{Rune: ' ', Bg: f.Tiles[idx].Color})
		}
	}

	for _, g := range f.Glyphs {
		cx, cy := l.cellOf(g.Tile)
		s.SetRune(cx, cy, glyphRune(g.Glyph), glyphColor(g.State))
	}

	mx, my := l.cellOf(f.Marker.Tile)
	s.SetRune(mx, my, '@', core.ColorMarker)
}

// Screen converts the cell buffer to styled terminal rows.
func (r *Renderer) Screen(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height() * 2)
	for y := 0; y < s.Height(); y++ {
		if y > 0 {
			sb.WriteRune('\n')
		}
		for _, run := range s.RowRuns(y) {
			sb.WriteString(r.styleFor(run.Fg, run.Bg).Render(run.Text))
		}
	}
	return sb.String()
}

// styleFor returns the cached style for a color pair.
func (r *Renderer) styleFor(fg, bg core.Color) lipgloss.Style {
	k := styleKey{fg: fg, bg: bg}
	if st, ok := r.styles[k]; ok {
		return st
	}
	st := lipgloss.NewStyle()
	if fg != "" {
		st = st.Foreground(lipgloss.Color(string(fg)))
	}
	if bg != "" {
		st = st.Background(lipgloss.Color(string(bg)))
	}
	r.styles[k] = st
	return st
}

// glyphRune picks the rune a glyph op draws. Catalog glyphs are single
// characters; anything longer falls back to its first rune.
func glyphRune(glyph string) rune {
	for _, r := range glyph {
		return r
	}
	return '?'
}

func glyphColor(st core.GlyphState) core.Color {
	switch st {
	case core.GlyphOpened:
		return core.ColorGlyphOpen
	case core.GlyphCollected:
		return core.ColorGlyphDim
	default:
		return core.ColorGlyphIdle
	}
}
