// Package aim implements the aim trainer in two modes.
// Tracing keeps the pointer on a wandering orb for as long as possible;
// reaction clicks static orbs that respawn on every hit.
package aim

import (
	"fmt"
	"math"

	"github.com/vovakirdan/pocket-arcade/internal/config"
	"github.com/vovakirdan/pocket-arcade/internal/core"
	"github.com/vovakirdan/pocket-arcade/internal/registry"
	"github.com/vovakirdan/pocket-arcade/internal/session"
)

// Mode selects the aim variant.
type Mode int

const (
	ModeTracing  Mode = iota // follow the moving orb
	ModeReaction             // click static orbs
)

// firstTurnMs is the delay before the tracing orb changes direction the first time.
const firstTurnMs = 400

// Game implements both aim modes.
type Game struct {
	mode Mode
	cfg  config.AimConfig
	st   state
}

// state is the per-run simulation. It is replaced wholesale every tick.
type state struct {
	orb     core.Body
	radius  float64
	hits    int
	misses  int
	traceMs float64
	onOrb   bool
	over    bool
}

// New creates an aim game in the given mode with default tuning.
func New(mode Mode) *Game {
	return &Game{mode: mode, cfg: config.DefaultAimConfig()}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	if g.mode == ModeReaction {
		return "aim-reaction"
	}
	return "aim"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	if g.mode == ModeReaction {
		return "Aim Reaction"
	}
	return "Aim Trainer"
}

// Description returns a one-line hint.
func (g *Game) Description() string {
	if g.mode == ModeReaction {
		return "Click each orb as fast as you can"
	}
	return "Keep the pointer on the moving orb"
}

func (g *Game) World() core.Vec      { return core.V(g.cfg.World.W, g.cfg.World.H) }
func (g *Game) TimeLimitMs() float64 { return g.cfg.DurationMs }

// Configure loads tuning. Easy pins the orb to its slowest speed, hard
// raises the speed band.
func (g *Game) Configure(customPath string, preset config.DifficultyPreset) error {
	cfg, err := config.Load("aim", customPath, config.DefaultAimConfig)
	if err != nil {
		return err
	}
	if preset == config.DifficultyEasy {
		cfg.Orb.MaxSpeed = cfg.Orb.MinSpeed
	}
	if preset == config.DifficultyHard {
		cfg.Orb.MinSpeed, cfg.Orb.MaxSpeed = cfg.Orb.MaxSpeed, cfg.Orb.MaxSpeed*1.3
	}
	g.cfg = cfg
	return nil
}

// OnStart places the first orb.
func (g *Game) OnStart(env *session.Env) {
	rng := env.RNG()
	center := g.World().Scale(0.5)
	g.st = state{}

	if g.mode == ModeReaction {
		g.st = g.st.respawn(rng, g.cfg, g.World())
		return
	}

	g.st.radius = g.cfg.Orb.Radius
	g.st.orb = core.Body{Pos: center, Vel: g.heading(rng)}
	env.After(firstTurnMs, g.turn(env))
}

// turn re-rolls the orb heading and schedules the next turn.
func (g *Game) turn(env *session.Env) func() {
	return func() {
		rng := env.RNG()
		g.st.orb.Vel = g.heading(rng)
		next := rng.Between(g.cfg.Orb.MinTurnMs, g.cfg.Orb.MaxTurnMs)
		env.After(float64(next), g.turn(env))
	}
}

func (g *Game) heading(rng core.RNG) core.Vec {
	theta := rng.Range(0, 2*math.Pi)
	return core.FromAngle(theta, rng.Range(g.cfg.Orb.MinSpeed, g.cfg.Orb.MaxSpeed))
}

// OnTick advances the orb and scores the pointer.
func (g *Game) OnTick(env *session.Env, deltaMs float64, in core.InputFrame) {
	if g.mode == ModeReaction {
		g.st = g.st.click(env, g.cfg, g.World(), in)
		return
	}
	g.st = g.st.trace(env, g.World(), deltaMs, in)
}

// trace moves the orb, bounces it off the walls and accumulates time on target.
func (s state) trace(env *session.Env, world core.Vec, deltaMs float64, in core.InputFrame) state {
	s.orb = bounce(s.orb.Integrate(deltaMs/1000), s.radius, world)
	s.onOrb = core.PointInCircle(in.Pointer, core.Circle{C: s.orb.Pos, R: s.radius})
	if s.onOrb {
		s.traceMs += deltaMs
		env.SetScore(math.Floor(s.traceMs))
	}
	return s
}

// click scores presses inside the orb and respawns it.
func (s state) click(env *session.Env, cfg config.AimConfig, world core.Vec, in core.InputFrame) state {
	if !in.Pressed && !in.Has(core.ActionPrimary) {
		return s
	}
	if !core.PointInCircle(in.Pointer, core.Circle{C: s.orb.Pos, R: s.radius}) {
		s.misses++
		env.Emit(session.AccuracyEvent{Correct: s.hits, Total: s.hits + s.misses})
		return s
	}
	s.hits++
	env.SetScore(float64(s.hits))
	env.Emit(session.AccuracyEvent{Correct: s.hits, Total: s.hits + s.misses})
	return s.respawn(env.RNG(), cfg, world)
}

func (s state) respawn(rng core.RNG, cfg config.AimConfig, world core.Vec) state {
	r := float64(rng.Between(cfg.Reaction.MinRadius, cfg.Reaction.MaxRadius))
	pad := r + cfg.Reaction.Padding
	s.radius = r
	s.orb = core.Body{Pos: core.V(rng.Range(pad, world.X-pad), rng.Range(pad, world.Y-pad))}
	return s
}

// bounce reflects the orb off the world edges with full restitution.
func bounce(b core.Body, r float64, world core.Vec) core.Body {
	if b.Pos.X-r < 0 {
		b.Pos.X = r
		b.Vel = core.Reflect(b.Vel, core.V(1, 0), 1)
	} else if b.Pos.X+r > world.X {
		b.Pos.X = world.X - r
		b.Vel = core.Reflect(b.Vel, core.V(-1, 0), 1)
	}
	if b.Pos.Y-r < 0 {
		b.Pos.Y = r
		b.Vel = core.Reflect(b.Vel, core.V(0, 1), 1)
	} else if b.Pos.Y+r > world.Y {
		b.Pos.Y = world.Y - r
		b.Vel = core.Reflect(b.Vel, core.V(0, -1), 1)
	}
	return b
}

// OnFinish freezes the orb.
func (g *Game) OnFinish(session.Reason) {
	g.st.orb = g.st.orb.Stop()
	g.st.over = true
}

// OnDispose drops run state.
func (g *Game) OnDispose() {
	g.st = state{}
}

// Extra reports hit statistics.
func (g *Game) Extra() map[string]float64 {
	if g.mode == ModeReaction {
		return map[string]float64{
			"hits":     float64(g.st.hits),
			"misses":   float64(g.st.misses),
			"accuracy": float64(session.Accuracy(g.st.hits, g.st.hits+g.st.misses)),
		}
	}
	return map[string]float64{"trace_ms": math.Floor(g.st.traceMs)}
}

// Render draws the orb.
func (g *Game) Render(dst *core.Screen, vp core.Viewport) {
	col := core.ColorCyan
	if g.st.onOrb {
		col = core.ColorBrightGreen
	}
	if g.st.over {
		col = core.ColorGray
	}
	orb := core.Circle{C: g.st.orb.Pos, R: g.st.radius}
	vp.Circle(dst, orb, '●', col)
	vp.Dot(dst, orb.C, '+', col)

	if g.mode == ModeReaction {
		dst.DrawText(vp.Area.X+1, vp.Area.Bottom()-1,
			fmt.Sprintf("hits %d  misses %d", g.st.hits, g.st.misses))
	}
}

func init() {
	registry.Register("aim", func() session.Game { return New(ModeTracing) })
	registry.Register("aim-reaction", func() session.Game { return New(ModeReaction) })
}
