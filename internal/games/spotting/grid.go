package spotting

import (
	"github.com/vovakirdan/pocket-arcade/internal/config"
	"github.com/vovakirdan/pocket-arcade/internal/core"
)

// shapeGlyphs maps shape names to the runes drawn for them.
var shapeGlyphs = map[string]string{
	"circle":   "●",
	"square":   "■",
	"triangle": "▲",
	"diamond":  "◆",
	"star":     "★",
	"hexagon":  "⬢",
}

// Glyph returns the text drawn for a symbol.
func Glyph(sym string) string {
	if g, ok := shapeGlyphs[sym]; ok {
		return g
	}
	return sym
}

// symbolPool lists every symbol a cell may hold.
func symbolPool(cfg config.SpottingConfig) []string {
	pool := make([]string, 0, len(cfg.Letters)+len(cfg.Digits)+len(cfg.Shapes))
	for _, r := range cfg.Letters {
		pool = append(pool, string(r))
	}
	for _, r := range cfg.Digits {
		pool = append(pool, string(r))
	}
	return append(pool, cfg.Shapes...)
}

// Grid is one round: a target symbol hidden once among distractors.
type Grid struct {
	Target string
	Index  int
	Cells  []string
}

// newGrid deals a grid of n cells. Only Cells[Index] equals Target.
func newGrid(rng core.RNG, pool []string, n int) Grid {
	t := rng.Intn(len(pool))
	g := Grid{
		Target: pool[t],
		Index:  rng.Intn(n),
		Cells:  make([]string, n),
	}
	for i := range g.Cells {
		if i == g.Index {
			g.Cells[i] = g.Target
			continue
		}
		k := rng.Intn(len(pool) - 1)
		if k >= t {
			k++
		}
		g.Cells[i] = pool[k]
	}
	return g
}

// layout places the grid cells in world space below a header band.
type layout struct {
	origin core.Vec
	cell   core.Vec
	cols   int
	rows   int
}

const headerH = 80

func newLayout(world core.Vec, cols, n int) layout {
	rows := (n + cols - 1) / cols
	return layout{
		origin: core.V(0, headerH),
		cell:   core.V(world.X/float64(cols), (world.Y-headerH)/float64(rows)),
		cols:   cols,
		rows:   rows,
	}
}

// at returns the cell index under p, or -1.
func (l layout) at(p core.Vec, n int) int {
	q := p.Sub(l.origin)
	if q.X < 0 || q.Y < 0 {
		return -1
	}
	col, row := int(q.X/l.cell.X), int(q.Y/l.cell.Y)
	if col >= l.cols || row >= l.rows {
		return -1
	}
	if i := row*l.cols + col; i < n {
		return i
	}
	return -1
}

// center returns the world centre of cell i.
func (l layout) center(i int) core.Vec {
	col, row := i%l.cols, i/l.cols
	return core.V(
		l.origin.X+(float64(col)+0.5)*l.cell.X,
		l.origin.Y+(float64(row)+0.5)*l.cell.Y,
	)
}
