package flappy

import (
	"github.com/vovakirdan/pocket-arcade/internal/config"
	"github.com/vovakirdan/pocket-arcade/internal/core"
)

// Pipe is a pair of columns with a gap for the bird to pass through.
type Pipe struct {
	X      float64 // centre of the column
	GapY   float64 // centre of the gap
	Gap    float64 // gap height
	Passed bool    // already scored
}

// Top returns the upper column.
func (p Pipe) Top(width float64) core.Box {
	h := p.GapY - p.Gap/2
	return core.Box{C: core.V(p.X, h/2), W: width, H: h}
}

// Bottom returns the lower column down to the floor at worldH.
func (p Pipe) Bottom(width, worldH float64) core.Box {
	y := p.GapY + p.Gap/2
	h := worldH - y
	return core.Box{C: core.V(p.X, y+h/2), W: width, H: h}
}

// Hits reports whether a circle touches either column.
func (p Pipe) Hits(c core.Circle, width, worldH float64) bool {
	return core.CircleHitsBox(c, p.Top(width)) || core.CircleHitsBox(c, p.Bottom(width, worldH))
}

// newPipe rolls a pipe just off the right edge. The gap centre keeps both
// columns at least EdgePadding tall.
func newPipe(rng core.RNG, cfg config.FlappyConfig, gap float64) Pipe {
	lo := gap/2 + cfg.Pipes.EdgePadding
	hi := cfg.World.H - gap/2 - cfg.Pipes.EdgePadding
	y := lo
	if hi > lo {
		y = rng.Range(lo, hi)
	}
	return Pipe{X: cfg.World.W + cfg.Pipes.Width, GapY: y, Gap: gap}
}

// scroll moves every pipe left, marks the ones the bird has cleared and drops
// those past the left edge. It returns the new slice and how many were passed.
func scroll(pipes []Pipe, dx, birdX, width float64) ([]Pipe, int) {
	out := make([]Pipe, 0, len(pipes))
	passed := 0
	for _, p := range pipes {
		p.X -= dx
		if !p.Passed && p.X+width/2 < birdX {
			p.Passed = true
			passed++
		}
		if p.X < -1.5*width {
			continue
		}
		out = append(out, p)
	}
	return out, passed
}
