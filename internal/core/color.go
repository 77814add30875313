package core

// Color is a hex color string like "#1b4f72". The engine and terrain
// generator speak hex so any front end can map colors onto its own surface.
type Color string

// Shared UI colors. Terrain colors come from the generator, not from here.
const (
	ColorMarker    Color = "#f4f1de" // player marker
	ColorGlyphIdle Color = "#e9c46a" // undiscovered treasure glyph
	ColorGlyphOpen Color = "#f77f00" // opened treasure glyph
	ColorGlyphDim  Color = "#7a7a7a" // collected treasure glyph
)
