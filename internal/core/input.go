package core

import "strings"

// KeyToDelta maps a pressed key to a movement intent. Arrow keys and WASD
// are recognized, letters case-insensitively. Keys that carry no movement
// return false.
func KeyToDelta(key string) (Delta, bool) {
	switch strings.ToLower(key) {
	case "up", "w":
		return Delta{DY: -1}, true
	case "down", "s":
		return Delta{DY: 1}, true
	case "left", "a":
		return Delta{DX: -1}, true
	case "right", "d":
		return Delta{DX: 1}, true
	}
	return Delta{}, false
}

// PixelToTile maps an abstract pixel position on the rendered viewport back
// to the grid tile under it: divide by the tile size, offset by the viewport
// origin, clamp onto the grid. Positions past the viewport edge resolve to
// its nearest tile rather than an error.
func PixelToTile(px, py int, v Viewport) Coord {
	if v.TileSize <= 0 {
		return ClampCoord(Coord{X: v.StartX, Y: v.StartY})
	}
	tx := Clamp(v.StartX+px/v.TileSize, v.StartX, v.EndX-1)
	ty := Clamp(v.StartY+py/v.TileSize, v.StartY, v.EndY-1)
	return ClampCoord(Coord{X: tx, Y: ty})
}

// StepToward returns the single unit step from the player toward a clicked
// target. When both axes still differ, horizontal resolves first so approach
// paths are stable. A zero delta means the player already stands there.
// Clicks never teleport; callers apply one step per interaction.
func StepToward(from, to Coord) Delta {
	if from.X != to.X {
		if to.X > from.X {
			return Delta{DX: 1}
		}
		return Delta{DX: -1}
	}
	if from.Y != to.Y {
		if to.Y > from.Y {
			return Delta{DY: 1}
		}
		return Delta{DY: -1}
	}
	return Delta{}
}
