// Package typing implements a timed typing accuracy test over an endless
// stream of phrases.
package typing

import (
	"fmt"
	"unicode"

	"github.com/vovakirdan/pocket-arcade/internal/config"
	"github.com/vovakirdan/pocket-arcade/internal/core"
	"github.com/vovakirdan/pocket-arcade/internal/registry"
	"github.com/vovakirdan/pocket-arcade/internal/session"
)

// Game implements the typing test.
type Game struct {
	cfg     config.TypingConfig
	target  []rune
	typed   []rune
	correct int
}

// New creates a typing test with default tuning.
func New() *Game {
	return &Game{cfg: config.DefaultTypingConfig()}
}

func (g *Game) ID() string           { return "typing-accuracy" }
func (g *Game) Title() string        { return "Typing Accuracy" }
func (g *Game) Description() string  { return "Type the phrase, accuracy counts" }
func (g *Game) World() core.Vec      { return core.V(960, 520) }
func (g *Game) TimeLimitMs() float64 { return g.cfg.DurationMs }
func (g *Game) CapturesText() bool   { return true }

// Configure loads tuning. Presets have no effect on a typing test.
func (g *Game) Configure(customPath string, _ config.DifficultyPreset) error {
	cfg, err := config.Load("typing", customPath, config.DefaultTypingConfig)
	if err != nil {
		return err
	}
	if len(cfg.Phrases) == 0 {
		return fmt.Errorf("typing: no phrases configured")
	}
	g.cfg = cfg
	return nil
}

// OnStart picks the first phrase.
func (g *Game) OnStart(env *session.Env) {
	g.typed = g.typed[:0]
	g.correct = 0
	g.target = []rune(g.phrase(env.RNG()))
}

func (g *Game) phrase(rng core.RNG) string {
	return g.cfg.Phrases[rng.Intn(len(g.cfg.Phrases))]
}

// OnTick applies deletions, then typed characters.
func (g *Game) OnTick(env *session.Env, _ float64, in core.InputFrame) {
	if in.Backspace == 0 && len(in.Text) == 0 {
		return
	}

	n := len(g.typed) - in.Backspace
	if n < 0 {
		n = 0
	}
	g.typed = g.typed[:n]
	for _, r := range in.Text {
		if unicode.IsPrint(r) {
			g.typed = append(g.typed, r)
		}
	}

	for len(g.typed) >= len(g.target)-g.cfg.Lookahead {
		g.target = append(g.target, []rune(" "+g.phrase(env.RNG()))...)
	}

	g.correct = Correct(g.typed, g.target)
	env.SetScore(float64(g.correct))
	env.Emit(session.AccuracyEvent{Correct: g.correct, Total: len(g.typed)})
}

// Correct counts positions where typed matches target.
func Correct(typed, target []rune) int {
	n := min(len(typed), len(target))
	c := 0
	for i := 0; i < n; i++ {
		if typed[i] == target[i] {
			c++
		}
	}
	return c
}

func (g *Game) OnDispose() {
	g.target = nil
	g.typed = nil
}

// Extra reports the final counts.
func (g *Game) Extra() map[string]float64 {
	return map[string]float64{
		"correct":  float64(g.correct),
		"typed":    float64(len(g.typed)),
		"accuracy": float64(session.Accuracy(g.correct, len(g.typed))),
	}
}

// Render shows a window of the target with typed characters coloured by
// correctness.
func (g *Game) Render(dst *core.Screen, vp core.Viewport) {
	a := vp.Area
	w := a.W - 4
	if w < 8 {
		w = 8
	}
	start := 0
	if len(g.typed) > w/2 {
		start = len(g.typed) - w/2
	}
	y := a.Y + a.H/2
	x := a.X + 2

	for i := start; i < len(g.target) && i-start < w; i++ {
		r, col := g.target[i], core.ColorGray
		if i < len(g.typed) {
			col = core.ColorBrightGreen
			if g.typed[i] != r {
				col = core.ColorBrightRed
				if r == ' ' {
					r = '_'
				}
			}
		}
		dst.SetColor(x+i-start, y, r, col)
	}
	dst.SetColor(x+len(g.typed)-start, y+1, '^', core.ColorBrightYellow)
	dst.DrawTextCentered(y+3, fmt.Sprintf("%d correct of %d  (%d%%)",
		g.correct, len(g.typed), session.Accuracy(g.correct, len(g.typed))), core.ColorDefault)
}

func init() {
	registry.Register("typing-accuracy", func() session.Game { return New() })
}
