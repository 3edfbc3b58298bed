// Package flappy implements floppyball, a Flappy Bird-style game.
// The player flaps a ball through gaps in a stream of pipes that narrow
// as the run goes on.
package flappy

import (
	"github.com/vovakirdan/pocket-arcade/internal/config"
	"github.com/vovakirdan/pocket-arcade/internal/core"
	"github.com/vovakirdan/pocket-arcade/internal/difficulty"
	"github.com/vovakirdan/pocket-arcade/internal/registry"
	"github.com/vovakirdan/pocket-arcade/internal/session"
)

// Visual characters for rendering
const (
	BirdChar      = '●'
	PipeChar      = '█'
	PipeCapTop    = '▀'
	PipeCapBottom = '▄'
)

// Game implements the floppyball game logic.
type Game struct {
	cfg config.FlappyConfig
	gap difficulty.Curve
	st  state
}

type state struct {
	bird   core.Body
	pipes  []Pipe
	passed int
	dead   bool
}

// New creates a floppyball game with default tuning.
func New() *Game {
	g := &Game{}
	g.apply(config.DefaultFlappyConfig(), config.DifficultyNormal)
	return g
}

func (g *Game) apply(cfg config.FlappyConfig, preset config.DifficultyPreset) {
	difficulty.Close(g.gap)
	g.cfg = cfg
	g.gap = config.ApplyCurve(cfg.Gap.BuildOr(difficulty.Const(cfg.Pipes.MinGap)), preset)
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return "flappy"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Floppyball"
}

// Description returns a one-line hint.
func (g *Game) Description() string {
	return "Space or click to flap through the pipes"
}

// World returns the play field size.
func (g *Game) World() core.Vec {
	return core.V(g.cfg.World.W, g.cfg.World.H)
}

// Configure loads tuning and applies the difficulty preset to the gap curve.
func (g *Game) Configure(customPath string, preset config.DifficultyPreset) error {
	cfg, err := config.Load("flappy", customPath, config.DefaultFlappyConfig)
	if err != nil {
		return err
	}
	g.apply(cfg, preset)
	return nil
}

// OnStart resets the bird and schedules the pipe stream.
// The first pipe spawns immediately.
func (g *Game) OnStart(env *session.Env) {
	w := g.World()
	g.st = state{
		bird:  core.Body{Pos: core.V(w.X*g.cfg.Physics.BirdX, w.Y*0.5)},
		pipes: make([]Pipe, 0, 8),
	}
	g.spawn(env)
	env.Every(g.cfg.Pipes.SpawnMs, func() { g.spawn(env) })
}

// CurrentGap returns the gap height for a pipe spawned at elapsedMs.
func (g *Game) CurrentGap(elapsedMs float64) float64 {
	gap := g.gap.At(elapsedMs)
	if gap < g.cfg.Pipes.MinGap {
		gap = g.cfg.Pipes.MinGap
	}
	return gap
}

func (g *Game) spawn(env *session.Env) {
	p := newPipe(env.RNG(), g.cfg, g.CurrentGap(env.Elapsed()))
	g.st.pipes = append(g.st.pipes, p)
}

// OnTick advances the bird and pipes.
// The state is stored before Finish so OnFinish freezes the final bird.
func (g *Game) OnTick(env *session.Env, deltaMs float64, in core.InputFrame) {
	var reason session.Reason
	g.st, reason = g.st.step(env, g.cfg, deltaMs, in)
	if reason != session.ReasonNone {
		env.Finish(reason)
	}
}

// step returns the next state and, when the bird died, the finish reason.
func (s state) step(env *session.Env, cfg config.FlappyConfig, deltaMs float64, in core.InputFrame) (state, session.Reason) {
	dt := deltaMs / 1000

	if in.Has(core.ActionPrimary) || in.Pressed {
		s.bird.Vel.Y = cfg.Physics.Flap
	}
	s.bird.Vel.Y += cfg.Physics.Gravity * dt
	s.bird = s.bird.Integrate(dt)

	pipes, passed := scroll(s.pipes, cfg.Pipes.Speed*dt, s.bird.Pos.X, cfg.Pipes.Width)
	s.pipes = pipes
	if passed > 0 {
		s.passed += passed
		env.AddScore(float64(passed))
	}

	ball := core.Circle{C: s.bird.Pos, R: cfg.Physics.BirdRadius}
	for _, p := range s.pipes {
		if p.Hits(ball, cfg.Pipes.Width, cfg.World.H) {
			s.dead = true
			return s, session.ReasonCrash
		}
	}

	if y := s.bird.Pos.Y; y < -cfg.Physics.OutMargin || y > cfg.World.H+cfg.Physics.OutMargin {
		s.dead = true
		return s, session.ReasonBounds
	}
	return s, session.ReasonNone
}

// OnFinish freezes the bird where it crashed.
func (g *Game) OnFinish(session.Reason) {
	g.st.bird = g.st.bird.Stop()
}

// OnDispose releases the pipe slice and the gap curve.
func (g *Game) OnDispose() {
	g.st = state{}
	difficulty.Close(g.gap)
}

// Extra reports how many pipes were cleared.
func (g *Game) Extra() map[string]float64 {
	return map[string]float64{"pipes": float64(g.st.passed)}
}

// Render draws the pipes and the bird.
func (g *Game) Render(dst *core.Screen, vp core.Viewport) {
	w, h := g.cfg.Pipes.Width, g.cfg.World.H
	for _, p := range g.st.pipes {
		top, bottom := p.Top(w), p.Bottom(w, h)
		vp.Fill(dst, top, PipeChar, core.ColorGreen)
		vp.Fill(dst, bottom, PipeChar, core.ColorGreen)

		x0, _ := vp.ToCell(top.Min())
		x1, ty := vp.ToCell(top.Max())
		_, by := vp.ToCell(bottom.Min())
		for x := x0; x < x1 || x == x0; x++ {
			dst.SetColor(x, ty, PipeCapTop, core.ColorBrightGreen)
			dst.SetColor(x, by, PipeCapBottom, core.ColorBrightGreen)
		}
	}

	col := core.ColorBrightYellow
	if g.st.dead {
		col = core.ColorRed
	}
	vp.Dot(dst, g.st.bird.Pos, BirdChar, col)
}

// Register the game with the registry
func init() {
	registry.Register("flappy", func() session.Game {
		return New()
	})
}
