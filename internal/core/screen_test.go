package core

import "testing"

func TestNewScreen(t *testing.T) {
	s := NewScreen(80, 24)

	if s.Width() != 80 {
		t.Errorf("Width() = %d, expected 80", s.Width())
	}
	if s.Height() != 24 {
		t.Errorf("Height() = %d, expected 24", s.Height())
	}

	// Check that it starts blank with default colors
	for y := 0; y < s.Height(); y++ {
		for x := 0; x < s.Width(); x++ {
			c := s.Get(x, y)
			if c.Rune != ' ' || c.Fg != "" || c.Bg != "" {
				t.Errorf("new screen should be blank, got %+v at (%d, %d)", c, x, y)
			}
		}
	}
}

func TestScreenSetGet(t *testing.T) {
	s := NewScreen(10, 10)

	s.Set(5, 5, Cell{Rune: 'X', Fg: "#ffffff", Bg: "#1b4f72"})
	c := s.Get(5, 5)
	if c.Rune != 'X' || c.Fg != "#ffffff" || c.Bg != "#1b4f72" {
		t.Errorf("Get(5, 5) = %+v, expected the cell that was set", c)
	}

	// Out of bounds should be silent
	s.Set(-1, 0, Cell{Rune: 'A'})  // Should not panic
	s.Set(100, 0, Cell{Rune: 'A'}) // Should not panic
	s.Set(0, -1, Cell{Rune: 'A'})  // Should not panic
	s.Set(0, 100, Cell{Rune: 'A'}) // Should not panic

	// Out of bounds get should return a blank cell
	if s.Get(-1, 0).Rune != ' ' {
		t.Error("out of bounds Get should return a blank cell")
	}
	if s.Get(100, 0).Rune != ' ' {
		t.Error("out of bounds Get should return a blank cell")
	}
}

func TestScreenFillBg(t *testing.T) {
	s := NewScreen(10, 10)

	s.FillBg(Rect{X: 2, Y: 2, W: 3, H: 2}, "#264653")

	if s.Get(2, 2).Bg != "#264653" {
		t.Error("FillBg should paint the rect's top-left cell")
	}
	if s.Get(4, 3).Bg != "#264653" {
		t.Error("FillBg should paint the rect's bottom-right cell")
	}
	if s.Get(5, 2).Bg != "" {
		t.Error("FillBg must not bleed past the rect")
	}
	if s.Get(2, 2).Rune != ' ' {
		t.Error("FillBg must leave runes alone")
	}

	// Partially off-screen rects clip instead of panicking
	s.FillBg(Rect{X: 8, Y: 8, W: 10, H: 10}, "#e9c46a")
	if s.Get(9, 9).Bg != "#e9c46a" {
		t.Error("clipped FillBg should still paint the on-screen part")
	}
}

func TestScreenSetRuneKeepsBackground(t *testing.T) {
	s := NewScreen(10, 10)

	s.FillBg(Rect{X: 0, Y: 0, W: 10, H: 10}, "#2a9d8f")
	s.SetRune(3, 3, '◆', "#e9c46a")

	c := s.Get(3, 3)
	if c.Rune != '◆' || c.Fg != "#e9c46a" {
		t.Errorf("SetRune result = %+v, expected the glyph with its color", c)
	}
	if c.Bg != "#2a9d8f" {
		t.Error("SetRune must keep the cell background")
	}
}

func TestScreenDrawText(t *testing.T) {
	s := NewScreen(10, 3)

	s.DrawText(7, 1, "abcdef", "#ffffff")

	if s.Get(7, 1).Rune != 'a' || s.Get(9, 1).Rune != 'c' {
		t.Error("DrawText should write on-screen characters")
	}
	// The rest clips silently
	if s.Get(0, 1).Rune != ' ' {
		t.Error("DrawText must not wrap")
	}
}

func TestScreenResize(t *testing.T) {
	s := NewScreen(10, 10)
	s.Set(5, 5, Cell{Rune: 'X'})

	s.Resize(20, 4)

	if s.Width() != 20 || s.Height() != 4 {
		t.Errorf("size after Resize = %dx%d, expected 20x4", s.Width(), s.Height())
	}
	if s.Get(5, 3).Rune != ' ' {
		t.Error("Resize should discard old content")
	}

	// Resizing to the same size is a no-op
	s.Set(1, 1, Cell{Rune: 'Y'})
	s.Resize(20, 4)
	if s.Get(1, 1).Rune != 'Y' {
		t.Error("same-size Resize must not clear the buffer")
	}
}

func TestScreenRowRuns(t *testing.T) {
	s := NewScreen(6, 1)

	s.FillBg(Rect{X: 0, Y: 0, W: 3, H: 1}, "#1b4f72")
	s.FillBg(Rect{X: 3, Y: 0, W: 3, H: 1}, "#2a9d8f")

	runs := s.RowRuns(0)
	if len(runs) != 2 {
		t.Fatalf("RowRuns produced %d runs, expected 2", len(runs))
	}
	if runs[0].Bg != "#1b4f72" || runs[0].Text != "   " {
		t.Errorf("first run = %+v, expected three cells of the first color", runs[0])
	}
	if runs[1].Bg != "#2a9d8f" || runs[1].Text != "   " {
		t.Errorf("second run = %+v, expected three cells of the second color", runs[1])
	}

	if s.RowRuns(-1) != nil || s.RowRuns(1) != nil {
		t.Error("out of bounds rows should return nil")
	}
}
