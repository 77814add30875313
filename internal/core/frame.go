package core

// GlyphState tells the renderer how a treasure glyph should read on screen.
type GlyphState int

const (
	GlyphIdle      GlyphState = iota // undiscovered, drawn normally
	GlyphOpened                      // detail viewed, highlighted
	GlyphCollected                   // already taken, dimmed
)

// String returns a human-readable name for the glyph state.
func (g GlyphState) String() string {
	switch g {
	case GlyphIdle:
		return "Idle"
	case GlyphOpened:
		return "Opened"
	case GlyphCollected:
		return "Collected"
	default:
		return "Unknown"
	}
}

// TileOp paints one terrain tile as a filled rectangle.
type TileOp struct {
	Bounds Rect  // pixel bounds inside the frame
	Tile   Coord // grid tile the rectangle shows
	Color  Color // fill color
}

// GlyphOp draws a treasure glyph on top of its tile.
type GlyphOp struct {
	Glyph string
	Tile  Coord
	Px    Rect // pixel bounds of the tile under the glyph
	State GlyphState
}

// MarkerOp draws the player marker.
type MarkerOp struct {
	Tile Coord
	Px   Rect
}

// Frame is one rendered world view as an ordered list of draw commands:
// tiles paint first, then glyphs, then the marker. Front ends rasterize the
// commands however their surface works; the engine never touches a
// presentation API.
type Frame struct {
	Viewport Viewport
	Tiles    []TileOp
	Glyphs   []GlyphOp
	Marker   MarkerOp
	Clock    float64 // animation clock the tiles were colored with
}
