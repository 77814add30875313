package core

// Viewport is the visible sub-rectangle of the grid for one frame, plus the
// tile size everything inside it draws at. Start is inclusive, End exclusive.
type Viewport struct {
	StartX, StartY int
	EndX, EndY     int
	TileSize       int
}

// ComputeViewport places a window of the level's visible tile count around
// the player. The window does not re-center at grid edges: near the low edge
// the start clamps to 0, near the high edge the end clamps to GridSize and
// the window falls short of the full count, so the player sits off-center
// there. Callers must not assume the player is centered.
func ComputeViewport(player Coord, zoom ZoomLevel) Viewport {
	visible := zoom.VisibleTiles()
	half := visible / 2
	startX := Max(0, player.X-half)
	startY := Max(0, player.Y-half)
	return Viewport{
		StartX:   startX,
		StartY:   startY,
		EndX:     Min(GridSize, startX+visible),
		EndY:     Min(GridSize, startY+visible),
		TileSize: zoom.TileSize(),
	}
}

// Contains reports whether the tile lies inside the viewport.
func (v Viewport) Contains(c Coord) bool {
	return c.X >= v.StartX && c.X < v.EndX && c.Y >= v.StartY && c.Y < v.EndY
}

// Width returns the viewport width in tiles.
func (v Viewport) Width() int {
	return v.EndX - v.StartX
}

// Height returns the viewport height in tiles.
func (v Viewport) Height() int {
	return v.EndY - v.StartY
}

// PxW returns the viewport width in abstract pixels.
func (v Viewport) PxW() int {
	return v.Width() * v.TileSize
}

// PxH returns the viewport height in abstract pixels.
func (v Viewport) PxH() int {
	return v.Height() * v.TileSize
}

// TileRect returns the pixel bounds of a tile inside the viewport.
// The tile is assumed to be within the viewport.
func (v Viewport) TileRect(c Coord) Rect {
	return Rect{
		X: (c.X - v.StartX) * v.TileSize,
		Y: (c.Y - v.StartY) * v.TileSize,
		W: v.TileSize,
		H: v.TileSize,
	}
}
