package core

import (
	"strings"
	"testing"
)

func TestNewScreen(t *testing.T) {
	s := NewScreen(80, 24)

	if s.Width() != 80 {
		t.Errorf("Width() = %d, expected 80", s.Width())
	}
	if s.Height() != 24 {
		t.Errorf("Height() = %d, expected 24", s.Height())
	}

	for y := 0; y < s.Height(); y++ {
		for x := 0; x < s.Width(); x++ {
			if s.Get(x, y) != ' ' {
				t.Fatalf("New screen should be filled with spaces, got %q at (%d, %d)", s.Get(x, y), x, y)
			}
		}
	}
}

func TestScreenSetColor(t *testing.T) {
	s := NewScreen(10, 10)

	s.SetColor(5, 5, 'X', ColorRed)
	cell := s.GetCell(5, 5)
	if cell.Rune != 'X' || cell.Color != ColorRed {
		t.Errorf("GetCell(5, 5) = %+v, expected X/red", cell)
	}

	// Set keeps the existing color
	s.Set(5, 5, 'Y')
	if cell := s.GetCell(5, 5); cell.Color != ColorRed {
		t.Errorf("Set() changed color to %v", cell.Color)
	}

	// Out of bounds should be silent
	s.Set(-1, 0, 'A')
	s.SetColor(100, 0, 'A', ColorBlue)
	if s.Get(-1, 0) != ' ' {
		t.Errorf("Get(-1, 0) = %q, expected space", s.Get(-1, 0))
	}
}

func TestScreenDrawText(t *testing.T) {
	s := NewScreen(12, 3)
	s.DrawText(1, 1, "héllo")

	if got := s.Row(1); !strings.HasPrefix(got, " héllo") {
		t.Errorf("Row(1) = %q, expected prefix %q", got, " héllo")
	}
}

func TestScreenDrawLine(t *testing.T) {
	s := NewScreen(10, 10)
	s.DrawLine(0, 0, 4, 4, '*', ColorDefault)

	for i := 0; i <= 4; i++ {
		if s.Get(i, i) != '*' {
			t.Errorf("Get(%d, %d) = %q, expected '*'", i, i, s.Get(i, i))
		}
	}
}

func TestScreenDrawBox(t *testing.T) {
	s := NewScreen(10, 5)
	s.DrawBox(NewRect(0, 0, 10, 5), ColorDefault)

	corners := []struct {
		x, y int
		r    rune
	}{
		{0, 0, '┌'},
		{9, 0, '┐'},
		{0, 4, '└'},
		{9, 4, '┘'},
	}
	for _, c := range corners {
		if got := s.Get(c.x, c.y); got != c.r {
			t.Errorf("Get(%d, %d) = %q, expected %q", c.x, c.y, got, c.r)
		}
	}
}

func TestScreenResize(t *testing.T) {
	s := NewScreen(10, 10)
	s.Set(2, 2, 'Z')
	s.Resize(20, 5)

	if s.Width() != 20 || s.Height() != 5 {
		t.Errorf("Resize() = %dx%d, expected 20x5", s.Width(), s.Height())
	}
	if s.Get(2, 2) != ' ' {
		t.Errorf("Resize() should clear content, got %q", s.Get(2, 2))
	}
}

func TestViewportRoundTrip(t *testing.T) {
	vp := NewViewport(V(960, 540), 80, 24, 1)

	for y := vp.Area.Y; y < vp.Area.Bottom(); y += 3 {
		for x := vp.Area.X; x < vp.Area.Right(); x += 7 {
			w := vp.ToWorld(x, y)
			cx, cy := vp.ToCell(w)
			if cx != x || cy != y {
				t.Errorf("ToCell(ToWorld(%d, %d)) = (%d, %d)", x, y, cx, cy)
			}
		}
	}
}

func TestViewportCorners(t *testing.T) {
	vp := NewViewport(V(960, 540), 80, 24, 1)

	x, y := vp.ToCell(V(0, 0))
	if x != 0 || y != 1 {
		t.Errorf("ToCell(origin) = (%d, %d), expected (0, 1)", x, y)
	}
	x, y = vp.ToCell(V(959.9, 539.9))
	if x != 79 || y != 23 {
		t.Errorf("ToCell(far corner) = (%d, %d), expected (79, 23)", x, y)
	}
}
