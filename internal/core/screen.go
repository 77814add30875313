package core

// Cell is one character cell of a rasterized frame: a rune plus foreground
// and background colors. Empty colors mean "leave the terminal default".
type Cell struct {
	Rune rune
	Fg   Color
	Bg   Color
}

// Screen is a 2D cell buffer frames rasterize into. It decouples the draw
// commands from the terminal: the engine side fills cells, the platform
// turns rows into styled output.
type Screen struct {
	width  int
	height int
	cells  [][]Cell
}

// NewScreen creates a screen buffer with the given dimensions.
func NewScreen(width, height int) *Screen {
	s := &Screen{
		width:  width,
		height: height,
	}
	s.allocate()
	s.Clear()
	return s
}

// allocate creates the underlying cell storage.
func (s *Screen) allocate() {
	s.cells = make([][]Cell, s.height)
	for y := range s.cells {
		s.cells[y] = make([]Cell, s.width)
	}
}

// Width returns the screen width in cells.
func (s *Screen) Width() int {
	return s.width
}

// Height returns the screen height in cells.
func (s *Screen) Height() int {
	return s.height
}

// Resize changes the screen dimensions, discarding content.
func (s *Screen) Resize(width, height int) {
	if width == s.width && height == s.height {
		return
	}
	s.width = width
	s.height = height
	s.allocate()
	s.Clear()
}

// Clear fills the entire screen with blank default-colored cells.
func (s *Screen) Clear() {
	blank := Cell{Rune: ' '}
	for y := range s.cells {
		for x := range s.cells[y] {
			s.cells[y][x] = blank
		}
	}
}

// FillBg paints the background color of every cell in a rectangle, leaving
// runes alone. Out-of-bounds portions are clipped.
func (s *Screen) FillBg(r Rect, bg Color) {
	for y := r.Y; y < r.Bottom(); y++ {
		for x := r.X; x < r.Right(); x++ {
			if x < 0 || x >= s.width || y < 0 || y >= s.height {
				continue
			}
			s.cells[y][x].Bg = bg
		}
	}
}

// Set places a cell at the given position.
// Out-of-bounds coordinates are silently ignored.
func (s *Screen) Set(x, y int, c Cell) {
	if x < 0 || x >= s.width || y < 0 || y >= s.height {
		return
	}
	s.cells[y][x] = c
}

// SetRune places a rune with a foreground color, keeping the cell's
// background.
func (s *Screen) SetRune(x, y int, r rune, fg Color) {
	if x < 0 || x >= s.width || y < 0 || y >= s.height {
		return
	}
	s.cells[y][x].Rune = r
	s.cells[y][x].Fg = fg
}

// Get returns the cell at the given position.
// Returns a blank cell for out-of-bounds coordinates.
func (s *Screen) Get(x, y int) Cell {
	if x < 0 || x >= s.width || y < 0 || y >= s.height {
		return Cell{Rune: ' '}
	}
	return s.cells[y][x]
}

// DrawText writes a string horizontally starting at (x, y) with a
// foreground color. Characters beyond the screen edge are clipped.
func (s *Screen) DrawText(x, y int, text string, fg Color) {
	for i, r := range []rune(text) {
		s.SetRune(x+i, y, r, fg)
	}
}

// Run is a horizontal stretch of cells sharing one style. Renderers style
// a run once instead of once per cell, which keeps terminal output small.
type Run struct {
	Text string
	Fg   Color
	Bg   Color
}

// RowRuns returns the row grouped into style runs, left to right.
// An out-of-bounds row returns nil.
func (s *Screen) RowRuns(y int) []Run {
	if y < 0 || y >= s.height {
		return nil
	}
	var runs []Run
	var cur Run
	var buf []rune
	for x := 0; x < s.width; x++ {
		c := s.cells[y][x]
		if x == 0 || c.Fg != cur.Fg || c.Bg != cur.Bg {
			if len(buf) > 0 {
				cur.Text = string(buf)
				runs = append(runs, cur)
			}
			cur = Run{Fg: c.Fg, Bg: c.Bg}
			buf = buf[:0]
		}
		buf = append(buf, c.Rune)
	}
	if len(buf) > 0 {
		cur.Text = string(buf)
		runs = append(runs, cur)
	}
	return runs
}
