package game

import "github.com/hoomehr/perxplor/internal/core"

// Frame composes the draw commands for the current view: every visible
// terrain tile, then treasure glyphs when the zoom warrants them, then the
// player marker. The clock feeds terrain shading; at levels wider than
// ZoomDetail it has no effect on the output.
func (e *Engine) Frame(clock float64) core.Frame {
	v := e.Viewport()
	frame := core.Frame{Viewport: v, Clock: clock}

	frame.Tiles = make([]core.TileOp, 0, v.Width()*v.Height())
	for y := v.StartY; y < v.EndY; y++ {
		for x := v.StartX; x < v.EndX; x++ {
			tile := core.Coord{X: x, Y: y}
			frame.Tiles = append(frame.Tiles, core.TileOp{
				Bounds: v.TileRect(tile),
				Tile:   tile,
				Color:  e.terrain.ColorOf(x, y, e.zoom, clock),
			})
		}
	}

	if e.zoom.AtLeast(e.glyphZoom) {
		for _, tr := range e.catalog.All() {
			pos := tr.Pos()
			if !v.Contains(pos) {
				continue
			}
			frame.Glyphs = append(frame.Glyphs, core.GlyphOp{
				Glyph: tr.Glyph,
				Tile:  pos,
				Px:    v.TileRect(pos),
				State: glyphState(e.states[tr.ID]),
			})
		}
	}

	frame.Marker = core.MarkerOp{Tile: e.pos, Px: v.TileRect(e.pos)}
	return frame
}

func glyphState(s State) core.GlyphState {
	switch s {
	case Opened:
		return core.GlyphOpened
	case Collected:
		return core.GlyphCollected
	default:
		return core.GlyphIdle
	}
}
