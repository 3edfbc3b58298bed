// Package drift implements vector drift: steer a small ship through falling
// circles and bars while picking up sparks.
package drift

import (
	"math"

	"github.com/vovakirdan/pocket-arcade/internal/config"
	"github.com/vovakirdan/pocket-arcade/internal/core"
	"github.com/vovakirdan/pocket-arcade/internal/difficulty"
	"github.com/vovakirdan/pocket-arcade/internal/registry"
	"github.com/vovakirdan/pocket-arcade/internal/session"
)

// nearMissRange is the extra distance that still counts as a close call.
const nearMissRange = 8.0

// obstacle is either a circle or a rotated bar centred on pos.
type obstacle struct {
	pos    core.Vec
	radius float64 // circles only
	line   bool
	length float64
	theta  float64
}

// distance returns how far p is from the obstacle's surface.
func (o obstacle) distance(p core.Vec) float64 {
	if o.line {
		return core.PointSegmentDistance(p, o.segment())
	}
	return p.Dist(o.pos) - o.radius
}

func (o obstacle) segment() core.Segment {
	return core.SegmentAt(o.pos, o.length, o.theta)
}

// Game implements vector drift.
type Game struct {
	cfg      config.DriftConfig
	interval difficulty.Curve
	scroll   difficulty.Curve
	st       state
}

type state struct {
	ship      core.Body
	obstacles []obstacle
	sparks    []core.Vec
	obstT     float64
	sparkT    float64
	collected int
	nearMiss  bool
	crashed   bool
}

// New creates a vector drift game with default tuning.
func New() *Game {
	g := &Game{}
	g.apply(config.DefaultDriftConfig(), config.DifficultyNormal)
	return g
}

func (g *Game) apply(cfg config.DriftConfig, preset config.DifficultyPreset) {
	difficulty.Close(g.interval)
	difficulty.Close(g.scroll)
	g.cfg = cfg
	g.interval = config.ApplyCurve(cfg.Obstacles.IntervalMs.BuildOr(difficulty.Hyperbolic{Base: 650, Rate: 0.06}), preset)
	g.scroll = config.ApplyCurve(cfg.Obstacles.Scroll.BuildOr(difficulty.Linear{Base: 160, PerMinute: 18}), preset)
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string { return "drift" }

// Title returns the display name for this game.
func (g *Game) Title() string { return "Vector Drift" }

// Description returns a one-line hint.
func (g *Game) Description() string { return "Steer with WASD or the mouse, dodge and collect" }

// World returns the play field size.
func (g *Game) World() core.Vec {
	return core.V(g.cfg.World.W, g.cfg.World.H)
}

// Configure loads tuning and applies the preset to the spawn and scroll curves.
func (g *Game) Configure(customPath string, preset config.DifficultyPreset) error {
	cfg, err := config.Load("drift", customPath, config.DefaultDriftConfig)
	if err != nil {
		return err
	}
	g.apply(cfg, preset)
	return nil
}

// OnStart places the ship near the bottom of the field.
func (g *Game) OnStart(env *session.Env) {
	g.st = state{ship: core.Body{Pos: core.V(g.cfg.World.W*0.5, g.cfg.World.H*0.7)}}
}

// OnTick advances the ship and the falling field.
func (g *Game) OnTick(env *session.Env, deltaMs float64, in core.InputFrame) {
	g.st = g.step(env, g.st, deltaMs, in)
	if g.st.crashed {
		env.Finish(session.ReasonCrash)
	}
}

// step returns the next field; a crash is left for OnTick to finish.
func (g *Game) step(env *session.Env, s state, deltaMs float64, in core.InputFrame) state {
	cfg := g.cfg
	now := env.Elapsed()
	dt := deltaMs / 1000
	rng := env.RNG()

	s.ship = steer(s.ship, cfg, now, dt, in)

	s.obstT += deltaMs
	if s.obstT >= g.interval.At(now) {
		s.obstT = 0
		s.obstacles = append(s.obstacles, spawnObstacle(rng, cfg))
	}
	s.sparkT += deltaMs
	if s.sparkT >= cfg.Collectibles.IntervalMs {
		s.sparkT = 0
		x := rng.Range(cfg.Obstacles.Margin, cfg.World.W-cfg.Obstacles.Margin)
		s.sparks = append(s.sparks, core.V(x, cfg.Collectibles.SpawnY))
	}

	fall := g.scroll.At(now) * dt
	r := cfg.Player.Radius

	obstacles := make([]obstacle, 0, len(s.obstacles))
	s.nearMiss = false
	for _, o := range s.obstacles {
		o.pos.Y += fall
		if o.pos.Y >= cfg.World.H+cfg.Obstacles.Despawn {
			continue
		}
		d := o.distance(s.ship.Pos)
		if d <= r {
			s.obstacles = append(obstacles, o)
			s.crashed = true
			return s
		}
		if d < r+nearMissRange {
			s.nearMiss = true
		}
		obstacles = append(obstacles, o)
	}
	s.obstacles = obstacles

	sparks := make([]core.Vec, 0, len(s.sparks))
	for _, p := range s.sparks {
		p.Y += fall
		if p.Y >= cfg.World.H+cfg.Collectibles.Despawn {
			continue
		}
		if p.Dist(s.ship.Pos) <= r+cfg.Collectibles.Radius {
			s.collected++
			env.AddScore(1)
			continue
		}
		sparks = append(sparks, p)
	}
	s.sparks = sparks
	return s
}

// steer applies input or damping, then wraps x and clamps y.
func steer(b core.Body, cfg config.DriftConfig, now, dt float64, in core.InputFrame) core.Body {
	speed := cfg.Player.Speed * (1 + now/60000*cfg.Player.SpeedGrowth)

	dir := in.Direction()
	if dir == (core.Vec{}) && in.PointerDown {
		if to := in.Pointer.Sub(b.Pos); to.Len() > cfg.Player.Radius {
			dir = to
		}
	}
	if dir != (core.Vec{}) {
		b.Vel = dir.Normalize().Scale(speed)
	} else {
		b = b.Damp(cfg.Player.Damping, dt)
	}

	b = b.Integrate(dt)
	b.Pos.X = core.Wrap(b.Pos.X, -cfg.Player.WrapMargin, cfg.World.W+cfg.Player.WrapMargin)
	b.Pos.Y = core.ClampF(b.Pos.Y, cfg.Player.Top, cfg.World.H-cfg.Player.BottomMargin)
	return b
}

// spawnObstacle drops a circle or a bar above the field.
func spawnObstacle(rng core.RNG, cfg config.DriftConfig) obstacle {
	o := obstacle{pos: core.V(rng.Range(cfg.Obstacles.Margin, cfg.World.W-cfg.Obstacles.Margin), cfg.Obstacles.SpawnY)}
	if rng.Chance(cfg.Obstacles.LinePct) {
		o.line = true
		o.length = rng.Range(cfg.Obstacles.MinLength, cfg.Obstacles.MaxLength)
		o.theta = rng.Range(0, math.Pi)
		return o
	}
	o.radius = rng.Range(cfg.Obstacles.MinRadius, cfg.Obstacles.MaxRadius)
	return o
}

// OnFinish stops the ship.
func (g *Game) OnFinish(session.Reason) {
	g.st.ship = g.st.ship.Stop()
}

// OnDispose drops the field.
func (g *Game) OnDispose() {
	g.st = state{}
	difficulty.Close(g.interval)
	difficulty.Close(g.scroll)
}

// Extra reports the pickups.
func (g *Game) Extra() map[string]float64 {
	return map[string]float64{"collected": float64(g.st.collected)}
}

// Render draws obstacles, sparks and the ship.
func (g *Game) Render(dst *core.Screen, vp core.Viewport) {
	for _, o := range g.st.obstacles {
		if o.line {
			vp.Line(dst, o.segment(), '━', core.ColorMagenta)
			continue
		}
		vp.Circle(dst, core.Circle{C: o.pos, R: o.radius}, '○', core.ColorMagenta)
	}
	for _, p := range g.st.sparks {
		vp.Dot(dst, p, '✦', core.ColorBrightYellow)
	}

	col := core.ColorBrightCyan
	switch {
	case g.st.crashed:
		col = core.ColorRed
	case g.st.nearMiss:
		col = core.ColorOrange
	}
	vp.Dot(dst, g.st.ship.Pos, '▲', col)
}

func init() {
	registry.Register("drift", func() session.Game { return New() })
}
