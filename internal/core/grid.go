package core

// GridSize is the side length of the square world grid.
// Valid coordinates lie in [0, GridSize) on both axes.
const GridSize = 500

// Coord is a tile position on the world grid.
type Coord struct {
	X, Y int
}

// Delta is a unit movement intent on the grid.
type Delta struct {
	DX, DY int
}

// IsZero reports whether the delta carries no movement.
func (d Delta) IsZero() bool {
	return d.DX == 0 && d.DY == 0
}

// InBounds reports whether the coordinate lies on the grid.
func InBounds(c Coord) bool {
	return c.X >= 0 && c.X < GridSize && c.Y >= 0 && c.Y < GridSize
}

// ClampCoord restricts a coordinate to the grid bounds.
func ClampCoord(c Coord) Coord {
	return Coord{
		X: Clamp(c.X, 0, GridSize-1),
		Y: Clamp(c.Y, 0, GridSize-1),
	}
}

// ApplyMove returns the position after one movement step. Movement past a
// grid edge is absorbed: the result clamps to the grid, and pressing into
// an edge is not an error.
func ApplyMove(p Coord, d Delta) Coord {
	return ClampCoord(Coord{X: p.X + d.DX, Y: p.Y + d.DY})
}

// Spawn is where every session starts, the center of the grid.
func Spawn() Coord {
	return Coord{X: GridSize / 2, Y: GridSize / 2}
}
