package core

import "math"

// Viewport maps a world of W x H units onto a block of terminal cells.
type Viewport struct {
	World Vec  // world size in units
	Area  Rect // target cells on the screen
}

// NewViewport fits the world into the screen, leaving hudRows rows at the top.
func NewViewport(world Vec, screenW, screenH, hudRows int) Viewport {
	rows := screenH - hudRows
	if rows < 1 {
		rows = 1
	}
	cols := screenW
	if cols < 1 {
		cols = 1
	}
	return Viewport{World: world, Area: NewRect(0, hudRows, cols, rows)}
}

// ToCell returns the cell containing world point p.
func (v Viewport) ToCell(p Vec) (int, int) {
	x := v.Area.X + int(math.Floor(p.X/v.World.X*float64(v.Area.W)))
	y := v.Area.Y + int(math.Floor(p.Y/v.World.Y*float64(v.Area.H)))
	return x, y
}

// ToWorld returns the world point at the centre of cell (x, y).
func (v Viewport) ToWorld(x, y int) Vec {
	return Vec{
		X: (float64(x-v.Area.X) + 0.5) / float64(v.Area.W) * v.World.X,
		Y: (float64(y-v.Area.Y) + 0.5) / float64(v.Area.H) * v.World.Y,
	}
}

// ScaleX converts a horizontal world length to cells.
func (v Viewport) ScaleX(l float64) float64 {
	return l / v.World.X * float64(v.Area.W)
}

// ScaleY converts a vertical world length to cells.
func (v Viewport) ScaleY(l float64) float64 {
	return l / v.World.Y * float64(v.Area.H)
}

// Contains reports whether cell (x, y) is inside the mapped area.
func (v Viewport) Contains(x, y int) bool {
	return v.Area.Contains(x, y)
}

// Circle outlines a world circle on dst.
func (v Viewport) Circle(dst *Screen, c Circle, r rune, col Color) {
	x, y := v.ToCell(c.C)
	dst.DrawCircle(x, y, v.ScaleX(c.R), v.ScaleY(c.R), r, col)
}

// Dot places a single rune at a world point.
func (v Viewport) Dot(dst *Screen, p Vec, r rune, col Color) {
	x, y := v.ToCell(p)
	if v.Contains(x, y) {
		dst.SetColor(x, y, r, col)
	}
}

// Line draws a world segment on dst.
func (v Viewport) Line(dst *Screen, s Segment, r rune, col Color) {
	x0, y0 := v.ToCell(s.A)
	x1, y1 := v.ToCell(s.B)
	dst.DrawLine(x0, y0, x1, y1, r, col)
}

// Fill paints a world box on dst.
func (v Viewport) Fill(dst *Screen, b Box, r rune, col Color) {
	x0, y0 := v.ToCell(b.Min())
	x1, y1 := v.ToCell(b.Max())
	if x1 == x0 {
		x1++
	}
	if y1 == y0 {
		y1++
	}
	dst.DrawRect(NewRect(x0, y0, x1-x0, y1-y0), r, col)
}
