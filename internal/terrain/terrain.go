// Package terrain colors the world grid procedurally. Two smooth noise
// fields (elevation and moisture) decide each tile's biome family, a third
// picks the shade inside the family's palette. Everything is a pure
// function of the world seed and the tile coordinate, so the same world
// renders identically on every visit and on every surface.
package terrain

import (
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/hoomehr/perxplor/internal/core"
)

// Field frequencies, in cycles per tile. Elevation and moisture move slowly
// so families form regions tens of tiles across; shade moves faster to give
// texture inside a region.
const (
	elevationFreq = 1.0 / 48
	moistureFreq  = 1.0 / 64
	shadeFreq     = 1.0 / 6
)

// Per-field seed salts keep the fields independent of each other.
const (
	elevationSalt = 0xa1c52bb1
	moistureSalt  = 0x3f68e2c7
	shadeSalt     = 0x94d0e1f3
	jitterSalt    = 0x1f123bb5
	glintSalt     = 0x774f0c39
)

// Water glint at the tightest zoom: how fast the shimmer runs and how far
// a shade moves toward the highlight.
const (
	glintRate  = 2.0
	glintDepth = 0.22
)

// Generator colors tiles for one world seed. Zero value is usable and
// renders the seed-zero world; construct with New to fold a full int64 seed.
type Generator struct {
	seed uint32
}

// New creates a generator for a world seed.
func New(seed int64) *Generator {
	return &Generator{seed: uint32(uint64(seed)) ^ uint32(uint64(seed)>>32)}
}

// FamilyAt returns the biome family of a tile. The family depends only on
// the world seed and the coordinate: no zoom level, no clock. Out-of-grid
// coordinates still classify, so callers never need to bounds-check first.
func (g *Generator) FamilyAt(x, y int) Family {
	e := fbm(g.seed^elevationSalt, float64(x)*elevationFreq, float64(y)*elevationFreq, 3)
	m := fbm(g.seed^moistureSalt, float64(x)*moistureFreq, float64(y)*moistureFreq, 3)
	return classify(e, m)
}

// ColorOf returns the tile's fill color at a zoom level. Pure and total:
// equal inputs always produce the same hex color, and any int coordinate
// resolves. The clock participates only at ZoomDetail, where water shades
// glint toward the highlight; it never feeds the family decision, so time
// passing cannot re-terraform the map.
func (g *Generator) ColorOf(x, y int, zoom core.ZoomLevel, clock float64) core.Color {
	f := g.FamilyAt(x, y)
	c := rampColor(f, g.shadeAt(x, y))
	if zoom == core.ZoomDetail && f == Water {
		c = g.glintAt(c, x, y, clock)
	}
	return core.Color(c.Clamped().Hex())
}

// shadeAt positions a tile on its family ramp: a smooth field for broad
// light and dark patches plus a small per-tile jitter against banding.
func (g *Generator) shadeAt(x, y int) float64 {
	t := smoothNoise(g.seed^shadeSalt, float64(x)*shadeFreq, float64(y)*shadeFreq)
	jitter := (hashUnit(g.seed^jitterSalt, x, y) - 0.5) * 0.08
	return core.ClampF(t+jitter, 0, 1)
}

// glintAt shimmers a water shade. Each tile runs on its own phase so the
// surface sparkles instead of pulsing in lockstep.
func (g *Generator) glintAt(c colorful.Color, x, y int, clock float64) colorful.Color {
	phase := hashUnit(g.seed^glintSalt, x, y) * 2 * math.Pi
	w := 0.5 + 0.5*math.Sin(clock*glintRate+phase)
	return c.BlendLab(glint, glintDepth*w)
}
