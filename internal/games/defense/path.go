package defense

import (
	"math"

	"github.com/vovakirdan/pocket-arcade/internal/config"
	"github.com/vovakirdan/pocket-arcade/internal/core"
)

// generatePath builds the enemy route: alternating horizontal and vertical
// legs from the left margin, finishing at the right margin.
func generatePath(rng core.RNG, cfg config.DefenseConfig) []core.Vec {
	w, h := int(cfg.World.W), int(cfg.World.H)
	m := cfg.Path.Margin
	minSeg := cfg.Path.MinSegment

	x := m
	y := rng.Between(m, h-m)
	points := []core.Vec{core.V(float64(x), float64(y))}

	for i := 0; i < cfg.Path.Turns; i++ {
		if i%2 == 0 {
			remaining := cfg.Path.Turns - i
			maxX := w - m - remaining*cfg.Path.TurnRoom
			minX := x + minSeg
			if minX > maxX {
				minX = maxX
			}
			x = rng.Between(minX, maxX)
		} else {
			ny := rng.Between(m, h-m)
			if float64(core.Abs(ny-y)) < float64(minSeg)*0.6 {
				if ny >= y {
					ny = y + minSeg
				} else {
					ny = y - minSeg
				}
				ny = core.Clamp(ny, m, h-m)
			}
			y = ny
		}
		points = append(points, core.V(float64(x), float64(y)))
	}

	if x < w-m {
		points = append(points, core.V(float64(w-m), float64(y)))
	}
	return points
}

// segments returns consecutive pairs of path points.
func segments(path []core.Vec) []core.Segment {
	if len(path) < 2 {
		return nil
	}
	out := make([]core.Segment, 0, len(path)-1)
	for i := 1; i < len(path); i++ {
		out = append(out, core.Segment{A: path[i-1], B: path[i]})
	}
	return out
}

// snap rounds p to the nearest grid intersection.
func snap(p core.Vec, grid float64) core.Vec {
	return core.V(math.Round(p.X/grid)*grid, math.Round(p.Y/grid)*grid)
}

// buildable reports whether a tower fits at the snapped point p: inside the
// field by one grid cell, clear of other towers and clear of the path.
func buildable(p core.Vec, towers []tower, path []core.Segment, cfg config.DefenseConfig) bool {
	g := cfg.Grid
	if p.X < g || p.X > cfg.World.W-g || p.Y < g || p.Y > cfg.World.H-g {
		return false
	}
	for _, t := range towers {
		if t.pos.Dist2(p) < g*g*0.6 {
			return false
		}
	}
	clearance := cfg.Path.Width/2 + 4
	for _, s := range path {
		if core.PointSegmentDistance(p, s) <= clearance {
			return false
		}
	}
	return true
}
