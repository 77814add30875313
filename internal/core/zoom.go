package core

// ZoomLevel selects how much of the grid the viewport shows.
// Levels are ordered widest to tightest; In moves toward ZoomDetail.
type ZoomLevel int

const (
	ZoomWorld  ZoomLevel = iota // whole grid at once
	ZoomRegion
	ZoomArea
	ZoomLocal  // treasures become inspectable here
	ZoomDetail // tightest; the only level with an animated clock
)

// BaseSurface is the abstract pixel width and height the viewport is laid
// out against. Front ends scale it to whatever surface they actually have.
const BaseSurface = 1000

// visibleTiles maps each zoom level to the tiles shown per axis.
var visibleTiles = [...]int{500, 250, 100, 50, 10}

// tileSizes maps each zoom level to the tile edge length in abstract pixels.
// The first four derive from BaseSurface/visible; ZoomDetail is boosted past
// the derived 100 so a single tile is a comfortable click target.
var tileSizes = [...]int{2, 4, 10, 20, 150}

// VisibleTiles returns the per-axis tile count at this level.
func (z ZoomLevel) VisibleTiles() int {
	return visibleTiles[z.normalize()]
}

// TileSize returns the tile edge length in abstract pixels at this level.
func (z ZoomLevel) TileSize() int {
	return tileSizes[z.normalize()]
}

// In returns the next tighter level. Already at ZoomDetail stays put.
func (z ZoomLevel) In() ZoomLevel {
	n := z.normalize()
	if n >= ZoomDetail {
		return ZoomDetail
	}
	return n + 1
}

// Out returns the next wider level. Already at ZoomWorld stays put.
func (z ZoomLevel) Out() ZoomLevel {
	n := z.normalize()
	if n <= ZoomWorld {
		return ZoomWorld
	}
	return n - 1
}

// AtLeast reports whether this level is at or tighter than other.
func (z ZoomLevel) AtLeast(other ZoomLevel) bool {
	return z.normalize() >= other.normalize()
}

// normalize folds out-of-range values onto the nearest valid level so table
// lookups are total.
func (z ZoomLevel) normalize() ZoomLevel {
	if z < ZoomWorld {
		return ZoomWorld
	}
	if z > ZoomDetail {
		return ZoomDetail
	}
	return z
}

// String returns a human-readable name for the level.
func (z ZoomLevel) String() string {
	switch z.normalize() {
	case ZoomWorld:
		return "World"
	case ZoomRegion:
		return "Region"
	case ZoomArea:
		return "Area"
	case ZoomLocal:
		return "Local"
	case ZoomDetail:
		return "Detail"
	default:
		return "Unknown"
	}
}
