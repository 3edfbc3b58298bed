// Package zombie implements zombie onslaught: survive a growing horde that
// closes in from every edge, shooting toward the pointer.
package zombie

import (
	"github.com/vovakirdan/pocket-arcade/internal/config"
	"github.com/vovakirdan/pocket-arcade/internal/core"
	"github.com/vovakirdan/pocket-arcade/internal/difficulty"
	"github.com/vovakirdan/pocket-arcade/internal/registry"
	"github.com/vovakirdan/pocket-arcade/internal/session"
)

type shot struct {
	body core.Body
	life float64
}

// Game implements zombie onslaught.
type Game struct {
	cfg      config.ZombieConfig
	interval difficulty.Curve
	speed    difficulty.Curve
	st       state
}

type state struct {
	player    core.Body
	aim       core.Vec // last facing, used when firing without a pointer
	lives     int
	kills     int
	invulnMs  float64
	cooldown  float64
	lastSpawn float64
	lastSec   int
	zombies   *core.Pool[core.Body]
	shots     *core.Pool[shot]
}

// New creates a zombie onslaught game with default tuning.
func New() *Game {
	g := &Game{}
	g.apply(config.DefaultZombieConfig(), config.DifficultyNormal)
	return g
}

func (g *Game) apply(cfg config.ZombieConfig, preset config.DifficultyPreset) {
	difficulty.Close(g.interval)
	difficulty.Close(g.speed)
	g.cfg = cfg
	g.interval = config.ApplyCurve(cfg.Zombie.SpawnMs.BuildOr(difficulty.Ramp{From: 900, To: 350, WindowMs: 60000}), preset)
	g.speed = config.ApplyCurve(cfg.Zombie.Speed.BuildOr(difficulty.Ramp{From: 60, To: 210, WindowMs: 60000}), preset)
}

func (g *Game) ID() string          { return "zombie" }
func (g *Game) Title() string       { return "Zombie Onslaught" }
func (g *Game) Description() string { return "WASD to move, hold space or the mouse to fire" }

// World returns the play field size.
func (g *Game) World() core.Vec {
	return core.V(g.cfg.World.W, g.cfg.World.H)
}

// Configure loads tuning and applies the preset to the horde curves.
func (g *Game) Configure(customPath string, preset config.DifficultyPreset) error {
	cfg, err := config.Load("zombie", customPath, config.DefaultZombieConfig)
	if err != nil {
		return err
	}
	g.apply(cfg, preset)
	return nil
}

// OnStart places the survivor at the centre.
func (g *Game) OnStart(env *session.Env) {
	g.st = state{
		player:  core.Body{Pos: g.World().Scale(0.5)},
		aim:     core.V(1, 0),
		lives:   g.cfg.Player.Lives,
		zombies: core.NewPool[core.Body](64),
		shots:   core.NewPool[shot](64),
	}
	env.Emit(session.LivesEvent{N: g.st.lives})
	env.Emit(session.KillsEvent{N: 0})
}

// SpawnInterval returns the gap between zombies at elapsedMs.
func (g *Game) SpawnInterval(elapsedMs float64) float64 {
	return g.interval.At(elapsedMs)
}

// OnTick moves the survivor, fires, spawns and resolves hits.
func (g *Game) OnTick(env *session.Env, deltaMs float64, in core.InputFrame) {
	s := g.st
	s.zombies = s.zombies.Clone()
	s.shots = s.shots.Clone()

	now := env.Elapsed()
	s = s.move(g.cfg, deltaMs, in)
	s = s.fire(g.cfg, deltaMs, in)
	if now-s.lastSpawn >= g.interval.At(now) {
		s.lastSpawn = now
		s.zombies.Acquire(spawnAtEdge(env.RNG(), g.World(), g.cfg.Zombie.EdgeMargin))
	}
	s = s.chase(g.speed.At(now), deltaMs)
	s = s.resolve(env, g.cfg, deltaMs)

	if sec := int(now / 1000); sec != s.lastSec && s.lives > 0 {
		s.lastSec = sec
		env.Emit(session.TimeEvent{Seconds: float64(sec)})
	}
	g.st = s
	if s.lives <= 0 {
		env.Finish(session.ReasonLives)
	}
}

// move steers the survivor with the keys, or toward the held pointer.
func (s state) move(cfg config.ZombieConfig, deltaMs float64, in core.InputFrame) state {
	dir := in.Direction().Normalize()
	if in.PointerDown && dir == (core.Vec{}) {
		if to := in.Pointer.Sub(s.player.Pos); to.Len() > cfg.Player.Radius {
			dir = to.Normalize()
		}
	}
	s.player.Vel = dir.Scale(cfg.Player.Speed)
	s.player = s.player.Integrate(deltaMs / 1000)

	r := cfg.Player.Radius
	s.player.Pos.X = core.ClampF(s.player.Pos.X, r, cfg.World.W-r)
	s.player.Pos.Y = core.ClampF(s.player.Pos.Y, r, cfg.World.H-r)

	if in.PointerDown || in.Pressed {
		if to := in.Pointer.Sub(s.player.Pos); to != (core.Vec{}) {
			s.aim = to.Normalize()
		}
	} else if dir != (core.Vec{}) {
		s.aim = dir
	}
	return s
}

// fire spawns a bullet toward the aim once the cooldown allows.
func (s state) fire(cfg config.ZombieConfig, deltaMs float64, in core.InputFrame) state {
	s.cooldown -= deltaMs
	if s.cooldown > 0 {
		return s
	}
	if !in.PointerDown && !in.IsHeld(core.ActionPrimary) {
		return s
	}
	s.shots.Acquire(shot{
		body: core.Body{Pos: s.player.Pos, Vel: s.aim.Scale(cfg.Bullet.Speed)},
		life: cfg.Bullet.LifeMs,
	})
	s.cooldown = cfg.Bullet.CooldownMs
	return s
}

// spawnAtEdge places a zombie just outside a random edge.
func spawnAtEdge(rng core.RNG, world core.Vec, margin float64) core.Body {
	switch rng.Intn(4) {
	case 0:
		return core.Body{Pos: core.V(rng.Range(0, world.X), -margin)}
	case 1:
		return core.Body{Pos: core.V(world.X+margin, rng.Range(0, world.Y))}
	case 2:
		return core.Body{Pos: core.V(rng.Range(0, world.X), world.Y+margin)}
	default:
		return core.Body{Pos: core.V(-margin, rng.Range(0, world.Y))}
	}
}

// chase points every zombie at the survivor.
func (s state) chase(speed, deltaMs float64) state {
	dt := deltaMs / 1000
	s.zombies.Each(func(_ int, z *core.Body) {
		*z = z.Toward(s.player.Pos, speed).Integrate(dt)
	})
	return s
}

// resolve moves bullets and applies bullet and bite collisions. OnTick
// finishes the session once the lives run out.
func (s state) resolve(env *session.Env, cfg config.ZombieConfig, deltaMs float64) state {
	dt := deltaMs / 1000
	zr := cfg.Zombie.Radius

	var dead []int
	s.shots.Each(func(si int, b *shot) {
		b.body = b.body.Integrate(dt)
		b.life -= deltaMs
		if b.life <= 0 {
			dead = append(dead, si)
			return
		}
		hit := -1
		s.zombies.Each(func(zi int, z *core.Body) {
			if hit < 0 && core.CirclesOverlap(core.Circle{C: b.body.Pos, R: cfg.Bullet.Radius}, core.Circle{C: z.Pos, R: zr}) {
				hit = zi
			}
		})
		if hit >= 0 {
			s.zombies.Release(hit)
			dead = append(dead, si)
			s.kills++
			env.AddScore(1)
			env.Emit(session.KillsEvent{N: s.kills})
		}
	})
	for _, si := range dead {
		s.shots.Release(si)
	}

	if s.invulnMs > 0 {
		s.invulnMs -= deltaMs
		return s
	}
	me := core.Circle{C: s.player.Pos, R: cfg.Player.Radius}
	bitten := false
	s.zombies.Each(func(_ int, z *core.Body) {
		if core.CirclesOverlap(me, core.Circle{C: z.Pos, R: zr}) {
			bitten = true
		}
	})
	if !bitten {
		return s
	}

	s.lives--
	s.invulnMs = cfg.Player.InvulnMs
	env.Emit(session.LivesEvent{N: s.lives})
	return s
}

// Invulnerable reports whether the survivor is inside the post-hit window.
func (g *Game) Invulnerable() bool {
	return g.st.invulnMs > 0
}

// OnFinish clears bullets in flight.
func (g *Game) OnFinish(session.Reason) {
	if g.st.shots != nil {
		g.st.shots.Reset()
	}
	g.st.player = g.st.player.Stop()
}

// OnDispose releases the pools and the horde curves.
func (g *Game) OnDispose() {
	g.st = state{}
	difficulty.Close(g.interval)
	difficulty.Close(g.speed)
}

// Extra reports the kill count and the lives left.
func (g *Game) Extra() map[string]float64 {
	return map[string]float64{
		"kills":   float64(g.st.kills),
		"lives":   float64(g.st.lives),
		"seconds": float64(g.st.lastSec),
	}
}

// Render draws the horde, the bullets and the survivor.
func (g *Game) Render(dst *core.Screen, vp core.Viewport) {
	if g.st.zombies == nil {
		return
	}
	g.st.zombies.Each(func(_ int, z *core.Body) {
		vp.Dot(dst, z.Pos, 'Z', core.ColorGreen)
	})
	g.st.shots.Each(func(_ int, b *shot) {
		vp.Dot(dst, b.body.Pos, '•', core.ColorYellow)
	})

	col := core.ColorBrightWhite
	if g.st.invulnMs > 0 {
		col = core.ColorGray
	}
	vp.Dot(dst, g.st.player.Pos, '@', col)
}

func init() {
	registry.Register("zombie", func() session.Game { return New() })
}
