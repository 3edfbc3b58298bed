// Package golf implements hole-in-one: one drag-and-release shot to sink a
// ball into a cup, with the occasional block in the way.
package golf

import (
	"math"

	"github.com/vovakirdan/pocket-arcade/internal/config"
	"github.com/vovakirdan/pocket-arcade/internal/core"
	"github.com/vovakirdan/pocket-arcade/internal/registry"
	"github.com/vovakirdan/pocket-arcade/internal/session"
)

// aimStep is how far one arrow-key press moves the keyboard aim.
const aimStep = 16.0

// Game implements hole-in-one.
type Game struct {
	cfg config.GolfConfig
	st  state
}

type state struct {
	ball   core.Body
	cup    core.Circle
	blocks []core.Box

	dragging bool
	aim      core.Vec // ball minus drag point; the shot travels along it
	shot     bool
	shotAt   float64
	outcome  session.Reason
}

// New creates a hole-in-one game with default tuning.
func New() *Game {
	return &Game{cfg: config.DefaultGolfConfig()}
}

func (g *Game) ID() string          { return "golf" }
func (g *Game) Title() string       { return "Hole in One" }
func (g *Game) Description() string { return "Drag back from the ball and release to shoot" }

// World returns the play field size.
func (g *Game) World() core.Vec {
	return core.V(g.cfg.World.W, g.cfg.World.H)
}

// Configure loads tuning. Hard always places blocks; easy never does.
func (g *Game) Configure(customPath string, preset config.DifficultyPreset) error {
	cfg, err := config.Load("golf", customPath, config.DefaultGolfConfig)
	if err != nil {
		return err
	}
	switch preset {
	case config.DifficultyEasy:
		cfg.Blocks.ChancePct = 0
	case config.DifficultyHard:
		cfg.Blocks.ChancePct = 100
	}
	g.cfg = cfg
	return nil
}

// OnStart lays out a new hole.
func (g *Game) OnStart(env *session.Env) {
	g.st = layout(env.RNG(), g.cfg)
}

// layout places the ball, the cup and the optional blocks.
func layout(rng core.RNG, cfg config.GolfConfig) state {
	w, h := cfg.World.W, cfg.World.H
	s := state{}

	s.ball.Pos = core.V(
		float64(rng.Between(cfg.Ball.MinX, cfg.Ball.MaxX)),
		float64(rng.Between(cfg.Ball.Margin, int(h)-cfg.Ball.Margin)),
	)
	s.cup = core.Circle{
		C: core.V(
			float64(rng.Between(int(w*cfg.Cup.MinXFrac), int(w)-cfg.Cup.RightMargin)),
			float64(rng.Between(cfg.Cup.Margin, int(h)-cfg.Cup.Margin)),
		),
		R: cfg.Cup.Radius,
	}

	if !rng.Chance(cfg.Blocks.ChancePct) {
		return s
	}
	n := rng.Between(cfg.Blocks.Min, cfg.Blocks.Max)
	for i := 0; i < n; i++ {
		// Blocks that land on the cup are dropped rather than rerolled.
		b := core.Box{
			C: core.V(
				float64(rng.Between(int(w*cfg.Blocks.MinXFrac), int(w*cfg.Blocks.MaxXFrac))),
				float64(rng.Between(cfg.Blocks.Margin, int(h)-cfg.Blocks.Margin)),
			),
			W: cfg.Blocks.Width,
			H: cfg.Blocks.Height,
		}
		if b.C.Dist(s.cup.C) < cfg.Blocks.CupClearance {
			continue
		}
		s.blocks = append(s.blocks, b)
	}
	return s
}

// OnTick handles the shot gesture and rolls the ball.
func (g *Game) OnTick(env *session.Env, deltaMs float64, in core.InputFrame) {
	if !g.st.shot {
		g.st = g.st.aimShot(env, g.cfg, in)
		return
	}
	g.st = g.st.roll(env, g.cfg, deltaMs)
	if g.st.outcome != session.ReasonNone {
		env.Finish(g.st.outcome)
	}
}

// aimShot tracks the drag (mouse) or the arrow-key aim and launches the ball.
func (s state) aimShot(env *session.Env, cfg config.GolfConfig, in core.InputFrame) state {
	s.blocks = append([]core.Box(nil), s.blocks...)
	r := cfg.Ball.Radius

	if in.Pressed && in.Pointer.Dist2(s.ball.Pos) <= r*r*cfg.Shot.GrabFactor {
		s.dragging = true
	}
	if s.dragging {
		s.aim = s.ball.Pos.Sub(in.Pointer)
	}

	d := in.Direction()
	if d != (core.Vec{}) {
		s.aim = s.aim.Add(d.Scale(aimStep))
	}

	release := (s.dragging && in.Released) || in.Has(core.ActionPrimary)
	if !release {
		return s
	}
	s.dragging = false

	pull := core.V(
		core.ClampF(-s.aim.X, -cfg.Shot.MaxPull, cfg.Shot.MaxPull),
		core.ClampF(-s.aim.Y, -cfg.Shot.MaxPull, cfg.Shot.MaxPull),
	)
	if pull.Len() < cfg.Shot.MinPull {
		s.aim = core.Vec{}
		return s
	}

	s.ball.Vel = pull.Scale(-cfg.Shot.Power)
	s.shot = true
	s.shotAt = env.Elapsed()
	env.Emit(session.StrokesEvent{N: 1})
	return s
}

// Pull returns the clamped pull vector the next release would use.
func (g *Game) Pull() core.Vec {
	m := g.cfg.Shot.MaxPull
	return core.V(core.ClampF(-g.st.aim.X, -m, m), core.ClampF(-g.st.aim.Y, -m, m))
}

// roll moves the ball and decides the outcome. OnTick finishes the
// session once the stored state carries one.
func (s state) roll(env *session.Env, cfg config.GolfConfig, deltaMs float64) state {
	dt := deltaMs / 1000
	r := cfg.Ball.Radius
	w, h := cfg.World.W, cfg.World.H

	s.ball = s.ball.Integrate(dt).Damp(cfg.Physics.Damping, dt)
	s.ball = walls(s.ball, r, w, h, cfg.Physics.WallBounce)
	for _, b := range s.blocks {
		s.ball = bounceBox(s.ball, r, b, cfg.Physics.BlockBounce)
	}

	if core.CirclesOverlap(core.Circle{C: s.ball.Pos, R: r}, s.cup) {
		return s.end(env, session.ReasonWin)
	}

	m := cfg.Physics.OutMargin
	p := s.ball.Pos
	if p.X < -m || p.X > w+m || p.Y < -m || p.Y > h+m {
		return s.end(env, session.ReasonLose)
	}
	if env.Elapsed()-s.shotAt >= cfg.Physics.GraceMs && s.ball.Speed() <= cfg.Physics.RestSpeed {
		return s.end(env, session.ReasonLose)
	}
	return s
}

func (s state) end(env *session.Env, outcome session.Reason) state {
	s.outcome = outcome
	if outcome == session.ReasonWin {
		env.SetScore(1)
	}
	env.Emit(session.ResultEvent{Outcome: outcome})
	return s
}

// walls keeps the ball inside the field, bouncing with restitution k.
func walls(b core.Body, r, w, h, k float64) core.Body {
	if b.Pos.X < r {
		b.Pos.X = r
		b.Vel = core.Reflect(b.Vel, core.V(1, 0), k)
	} else if b.Pos.X > w-r {
		b.Pos.X = w - r
		b.Vel = core.Reflect(b.Vel, core.V(-1, 0), k)
	}
	if b.Pos.Y < r {
		b.Pos.Y = r
		b.Vel = core.Reflect(b.Vel, core.V(0, 1), k)
	} else if b.Pos.Y > h-r {
		b.Pos.Y = h - r
		b.Vel = core.Reflect(b.Vel, core.V(0, -1), k)
	}
	return b
}

// bounceBox pushes the ball out of a block along the axis of least
// penetration and reflects that velocity component.
func bounceBox(b core.Body, r float64, box core.Box, k float64) core.Body {
	if !core.CircleHitsBox(core.Circle{C: b.Pos, R: r}, box) {
		return b
	}
	dx := b.Pos.X - box.C.X
	dy := b.Pos.Y - box.C.Y
	ox := box.W/2 + r - math.Abs(dx)
	oy := box.H/2 + r - math.Abs(dy)

	if ox < oy {
		sign := math.Copysign(1, dx)
		b.Pos.X += sign * ox
		b.Vel = core.Reflect(b.Vel, core.V(sign, 0), k)
	} else {
		sign := math.Copysign(1, dy)
		b.Pos.Y += sign * oy
		b.Vel = core.Reflect(b.Vel, core.V(0, sign), k)
	}
	return b
}

// OnFinish stops the ball.
func (g *Game) OnFinish(session.Reason) {
	g.st.ball = g.st.ball.Stop()
}

// OnDispose drops run state.
func (g *Game) OnDispose() {
	g.st = state{}
}

// Extra reports the outcome of the hole.
func (g *Game) Extra() map[string]float64 {
	won := 0.0
	if g.st.outcome == session.ReasonWin {
		won = 1
	}
	strokes := 0.0
	if g.st.shot {
		strokes = 1
	}
	return map[string]float64{"strokes": strokes, "won": won}
}

// Render draws the cup, the blocks, the ball and the aim line.
func (g *Game) Render(dst *core.Screen, vp core.Viewport) {
	vp.Circle(dst, g.st.cup, '○', core.ColorGray)
	vp.Dot(dst, g.st.cup.C, '◎', core.ColorWhite)

	for _, b := range g.st.blocks {
		vp.Fill(dst, b, '▓', core.ColorOrange)
	}

	if !g.st.shot && g.st.aim != (core.Vec{}) {
		pull := g.Pull()
		vp.Line(dst, core.Segment{A: g.st.ball.Pos, B: g.st.ball.Pos.Sub(pull)}, '·', core.ColorYellow)
	}

	col := core.ColorBrightWhite
	switch g.st.outcome {
	case session.ReasonWin:
		col = core.ColorBrightGreen
	case session.ReasonLose:
		col = core.ColorRed
	}
	vp.Dot(dst, g.st.ball.Pos, '●', col)
}

func init() {
	registry.Register("golf", func() session.Game { return New() })
}
