// Package spotting implements a timed visual search: find the target symbol
// in a grid of distractors.
package spotting

import (
	"fmt"

	"github.com/vovakirdan/pocket-arcade/internal/config"
	"github.com/vovakirdan/pocket-arcade/internal/core"
	"github.com/vovakirdan/pocket-arcade/internal/registry"
	"github.com/vovakirdan/pocket-arcade/internal/session"
)

// Game implements the spotting game.
type Game struct {
	cfg    config.SpottingConfig
	pool   []string
	grid   Grid
	cursor int
	hits   int
	misses int
}

// New creates a spotting game with default tuning.
func New() *Game {
	g := &Game{}
	g.apply(config.DefaultSpottingConfig())
	return g
}

func (g *Game) apply(cfg config.SpottingConfig) {
	if cfg.Columns < 1 {
		cfg.Columns = 1
	}
	if cfg.Cells < 1 {
		cfg.Cells = cfg.Columns
	}
	g.cfg = cfg
	g.pool = symbolPool(cfg)
}

func (g *Game) ID() string           { return "spotting-game" }
func (g *Game) Title() string        { return "Spotting" }
func (g *Game) Description() string  { return "Find the target symbol, click it or select it with Space" }
func (g *Game) World() core.Vec      { return core.V(960, 520) }
func (g *Game) TimeLimitMs() float64 { return g.cfg.DurationMs }

// Configure loads tuning. Easy shrinks the grid to 4×4, hard widens it to 8×6.
func (g *Game) Configure(customPath string, preset config.DifficultyPreset) error {
	cfg, err := config.Load("spotting", customPath, config.DefaultSpottingConfig)
	if err != nil {
		return err
	}
	switch preset {
	case config.DifficultyEasy:
		cfg.Columns, cfg.Cells = 4, 16
	case config.DifficultyHard:
		cfg.Columns, cfg.Cells = 8, 48
	}
	if len(symbolPool(cfg)) < 2 {
		return fmt.Errorf("spotting: symbol pool needs at least two symbols")
	}
	g.apply(cfg)
	return nil
}

// OnStart deals the first grid.
func (g *Game) OnStart(env *session.Env) {
	g.hits, g.misses, g.cursor = 0, 0, 0
	g.grid = newGrid(env.RNG(), g.pool, g.cfg.Cells)
}

// Grid returns the current round.
func (g *Game) Grid() Grid { return g.grid }

// CellCenter returns the world position of cell i, for pointer input.
func (g *Game) CellCenter(i int) core.Vec {
	return newLayout(g.World(), g.cfg.Columns, g.cfg.Cells).center(i)
}

// OnTick moves the cursor and resolves picks.
func (g *Game) OnTick(env *session.Env, _ float64, in core.InputFrame) {
	cols, n := g.cfg.Columns, g.cfg.Cells
	switch {
	case in.Has(core.ActionLeft) && g.cursor%cols > 0:
		g.cursor--
	case in.Has(core.ActionRight) && g.cursor%cols < cols-1 && g.cursor+1 < n:
		g.cursor++
	case in.Has(core.ActionUp) && g.cursor-cols >= 0:
		g.cursor -= cols
	case in.Has(core.ActionDown) && g.cursor+cols < n:
		g.cursor += cols
	}

	pick := -1
	if in.Pressed {
		pick = newLayout(g.World(), cols, n).at(in.Pointer, n)
	} else if in.Has(core.ActionPrimary) {
		pick = g.cursor
	}
	if pick < 0 {
		return
	}

	if pick == g.grid.Index {
		g.hits++
		env.SetScore(float64(g.hits))
		g.grid = newGrid(env.RNG(), g.pool, n)
	} else {
		g.misses++
	}
	env.Emit(session.AccuracyEvent{Correct: g.hits, Total: g.hits + g.misses})
}

func (g *Game) OnDispose() {
	g.grid = Grid{}
}

// Extra reports hits, misses and accuracy.
func (g *Game) Extra() map[string]float64 {
	return map[string]float64{
		"hits":     float64(g.hits),
		"misses":   float64(g.misses),
		"accuracy": float64(session.Accuracy(g.hits, g.hits+g.misses)),
	}
}

// Render draws the target header and the grid.
func (g *Game) Render(dst *core.Screen, vp core.Viewport) {
	if len(g.grid.Cells) == 0 {
		return
	}
	_, hy := vp.ToCell(core.V(0, headerH/2))
	dst.DrawTextCentered(hy, "find: "+Glyph(g.grid.Target), core.ColorBrightYellow)

	l := newLayout(g.World(), g.cfg.Columns, g.cfg.Cells)
	for i, sym := range g.grid.Cells {
		x, y := vp.ToCell(l.center(i))
		col := core.ColorDefault
		if i == g.cursor {
			col = core.ColorBrightCyan
			dst.SetColor(x-1, y, '[', col)
			dst.SetColor(x+1, y, ']', col)
		}
		dst.DrawTextColor(x, y, Glyph(sym), col)
	}
}

func init() {
	registry.Register("spotting-game", func() session.Game { return New() })
}
