// Package defense implements circle defense, a tower defense on a generated
// path. Towers cost coins, kills pay coins, and every enemy that reaches the
// end of the path costs a life.
package defense

import (
	"fmt"

	"github.com/vovakirdan/pocket-arcade/internal/config"
	"github.com/vovakirdan/pocket-arcade/internal/core"
	"github.com/vovakirdan/pocket-arcade/internal/difficulty"
	"github.com/vovakirdan/pocket-arcade/internal/registry"
	"github.com/vovakirdan/pocket-arcade/internal/session"
)

type enemy struct {
	id    uint64
	body  core.Body
	hp    float64
	maxHP float64
	speed float64
	next  int // index of the path point being walked to
}

type tower struct {
	pos      core.Vec
	cooldown float64
}

type bullet struct {
	body     core.Body
	target   int
	targetID uint64
	life     float64
}

// Game implements circle defense.
type Game struct {
	cfg   config.DefenseConfig
	count difficulty.Step
	hp    difficulty.Step
	speed difficulty.Step
	st    state
}

type state struct {
	path    []core.Vec
	segs    []core.Segment
	towers  []tower
	enemies *core.Pool[enemy]
	bullets *core.Pool[bullet]
	cursor  core.Vec

	coins  int
	lives  int
	kills  int
	wave   int
	quota  int // enemies in the current wave
	spawn  int // enemies spawned so far in the current wave
	nextID uint64
	spawnT session.TimerID
}

// New creates a circle defense game with default tuning.
func New() *Game {
	g := &Game{}
	g.apply(config.DefaultDefenseConfig(), config.DifficultyNormal)
	return g
}

func (g *Game) apply(cfg config.DefenseConfig, preset config.DifficultyPreset) {
	g.cfg = cfg
	g.count = config.ApplyStep(cfg.Waves.Count.Step(), preset)
	g.hp = config.ApplyStep(cfg.Waves.HP.Step(), preset)
	g.speed = config.ApplyStep(cfg.Waves.Speed.Step(), preset)
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string { return "defense" }

// Title returns the display name for this game.
func (g *Game) Title() string { return "Circle Defense" }

// Description returns a one-line hint.
func (g *Game) Description() string {
	return fmt.Sprintf("Click or press space to build a tower (%d coins)", g.cfg.Economy.TowerCost)
}

// World returns the play field size.
func (g *Game) World() core.Vec {
	return core.V(g.cfg.World.W, g.cfg.World.H)
}

// Configure loads tuning and scales the wave tiers by the preset.
func (g *Game) Configure(customPath string, preset config.DifficultyPreset) error {
	cfg, err := config.Load("defense", customPath, config.DefaultDefenseConfig)
	if err != nil {
		return err
	}
	g.apply(cfg, preset)
	return nil
}

// OnStart generates a path and schedules the first wave.
func (g *Game) OnStart(env *session.Env) {
	path := generatePath(env.RNG(), g.cfg)
	g.st = state{
		path:    path,
		segs:    segments(path),
		enemies: core.NewPool[enemy](32),
		bullets: core.NewPool[bullet](64),
		cursor:  g.World().Scale(0.5),
		coins:   g.cfg.Economy.StartCoins,
		lives:   g.cfg.Economy.Lives,
	}
	env.Emit(session.CoinsEvent{N: g.st.coins})
	env.Emit(session.LivesEvent{N: g.st.lives})
	env.After(g.cfg.Waves.FirstMs, func() { g.startWave(env) })
}

// startWave bumps the wave counter and starts spawning its enemies.
func (g *Game) startWave(env *session.Env) {
	g.st.wave++
	g.st.quota = g.count.Int(g.st.wave)
	g.st.spawn = 0
	env.Emit(session.WaveEvent{N: g.st.wave})
	env.Logger().Debug("wave started", "wave", g.st.wave, "enemies", g.st.quota)

	g.st.spawnT = env.Every(g.cfg.Waves.SpawnMs, func() { g.spawnEnemy(env) })
}

// spawnEnemy releases the next enemy of the wave. Once the quota is out it
// waits for the pause and starts the next wave.
func (g *Game) spawnEnemy(env *session.Env) {
	if g.st.spawn >= g.st.quota {
		env.Cancel(g.st.spawnT)
		env.After(g.cfg.Waves.PauseMs, func() { g.startWave(env) })
		return
	}
	g.st.spawn++
	g.st.nextID++
	hp := g.hp.At(g.st.wave)
	g.st.enemies.Acquire(enemy{
		id:    g.st.nextID,
		body:  core.Body{Pos: g.st.path[0]},
		hp:    hp,
		maxHP: hp,
		speed: g.speed.At(g.st.wave),
		next:  1,
	})
}

// OnTick handles placement and advances enemies, towers and bullets.
func (g *Game) OnTick(env *session.Env, deltaMs float64, in core.InputFrame) {
	g.st = g.st.step(env, g.cfg, deltaMs, in)
	if g.st.lives <= 0 {
		env.Finish(session.ReasonLives)
	}
}

// step returns the next board. Towers hold fire once the last life is gone.
func (s state) step(env *session.Env, cfg config.DefenseConfig, deltaMs float64, in core.InputFrame) state {
	s.towers = append([]tower(nil), s.towers...)
	s.enemies = s.enemies.Clone()
	s.bullets = s.bullets.Clone()

	s = s.place(env, cfg, in)
	s = s.walk(env, cfg, deltaMs)
	if s.lives <= 0 {
		return s
	}
	s = s.fire(cfg, deltaMs)
	s = s.fly(env, cfg, deltaMs)
	return s
}

// place moves the build cursor and buys a tower on click or Primary.
func (s state) place(env *session.Env, cfg config.DefenseConfig, in core.InputFrame) state {
	d := in.Direction()
	for _, a := range []core.Action{core.ActionLeft, core.ActionRight, core.ActionUp, core.ActionDown} {
		if in.Has(a) {
			s.cursor = s.cursor.Add(d.Scale(cfg.Grid))
			break
		}
	}
	s.cursor = core.V(
		core.ClampF(s.cursor.X, 0, cfg.World.W),
		core.ClampF(s.cursor.Y, 0, cfg.World.H),
	)

	build := in.Has(core.ActionPrimary) || in.Has(core.ActionSecondary)
	if in.Pressed {
		s.cursor = in.Pointer
		build = true
	}
	if !build {
		return s
	}

	p := snap(s.cursor, cfg.Grid)
	if s.coins < cfg.Economy.TowerCost || !buildable(p, s.towers, s.segs, cfg) {
		return s
	}
	s.coins -= cfg.Economy.TowerCost
	s.towers = append(s.towers, tower{pos: p})
	env.Emit(session.CoinsEvent{N: s.coins})
	return s
}

// walk moves enemies along the path. Enemies past the last point cost a life.
func (s state) walk(env *session.Env, cfg config.DefenseConfig, deltaMs float64) state {
	dt := deltaMs / 1000
	var escaped []int

	s.enemies.Each(func(idx int, e *enemy) {
		target := s.path[e.next]
		if e.body.Pos.Dist(target) <= e.speed*dt {
			e.body.Pos = target
		} else {
			e.body = e.body.Toward(target, e.speed).Integrate(dt)
		}
		if e.body.Pos.Dist(target) <= cfg.Waves.ArriveWithin {
			e.next++
			if e.next >= len(s.path) {
				escaped = append(escaped, idx)
			}
		}
	})

	for _, idx := range escaped {
		s.enemies.Release(idx)
		s.lives--
	}
	if len(escaped) > 0 {
		s.lives = max(s.lives, 0)
		env.Emit(session.LivesEvent{N: s.lives})
	}
	return s
}

// fire cools towers down and shoots at the nearest enemy in range.
func (s state) fire(cfg config.DefenseConfig, deltaMs float64) state {
	if s.enemies.Len() == 0 {
		for i := range s.towers {
			s.towers[i].cooldown -= deltaMs
		}
		return s
	}

	var idxs []int
	var pts []core.Vec
	s.enemies.Each(func(idx int, e *enemy) {
		idxs = append(idxs, idx)
		pts = append(pts, e.body.Pos)
	})

	for i := range s.towers {
		t := &s.towers[i]
		t.cooldown -= deltaMs
		if t.cooldown > 0 {
			continue
		}
		n := core.Nearest(t.pos, pts, cfg.Tower.Range)
		if n < 0 {
			continue
		}
		target := s.enemies.Get(idxs[n])
		s.bullets.Acquire(bullet{
			body:     core.Body{Pos: t.pos},
			target:   idxs[n],
			targetID: target.id,
			life:     cfg.Bullet.LifeMs,
		})
		t.cooldown = cfg.Tower.FireMs
	}
	return s
}

// fly homes bullets on their targets and applies damage.
func (s state) fly(env *session.Env, cfg config.DefenseConfig, deltaMs float64) state {
	dt := deltaMs / 1000
	var spent []int

	s.bullets.Each(func(idx int, b *bullet) {
		b.life -= deltaMs
		target := s.enemies.Get(b.target)
		if b.life <= 0 || target == nil || target.id != b.targetID {
			spent = append(spent, idx)
			return
		}

		step := cfg.Bullet.Speed * dt
		dist := b.body.Pos.Dist(target.body.Pos)
		if dist > cfg.Bullet.HitRadius && dist > step {
			b.body = b.body.Toward(target.body.Pos, cfg.Bullet.Speed).Integrate(dt)
			return
		}

		spent = append(spent, idx)
		target.hp -= cfg.Bullet.Damage
		if target.hp <= 0 {
			s.enemies.Release(b.target)
			s.kills++
			s.coins += cfg.Economy.KillReward
			env.AddScore(1)
			env.Emit(session.CoinsEvent{N: s.coins})
			env.Emit(session.KillsEvent{N: s.kills})
		}
	})

	for _, idx := range spent {
		s.bullets.Release(idx)
	}
	return s
}

// CanBuild reports whether a tower could be placed at p right now.
func (g *Game) CanBuild(p core.Vec) bool {
	return g.st.coins >= g.cfg.Economy.TowerCost && buildable(snap(p, g.cfg.Grid), g.st.towers, g.st.segs, g.cfg)
}

// OnFinish stops enemies and drops bullets in flight.
func (g *Game) OnFinish(session.Reason) {
	if g.st.bullets != nil {
		g.st.bullets.Reset()
	}
	if g.st.enemies != nil {
		g.st.enemies.Each(func(_ int, e *enemy) { e.body = e.body.Stop() })
	}
}

// OnDispose releases all pools.
func (g *Game) OnDispose() {
	g.st = state{}
}

// Extra reports the final economy.
func (g *Game) Extra() map[string]float64 {
	return map[string]float64{
		"wave":   float64(g.st.wave),
		"kills":  float64(g.st.kills),
		"coins":  float64(g.st.coins),
		"lives":  float64(g.st.lives),
		"towers": float64(len(g.st.towers)),
	}
}

// Render draws the path, towers, enemies, bullets and the build cursor.
func (g *Game) Render(dst *core.Screen, vp core.Viewport) {
	for _, s := range g.st.segs {
		vp.Line(dst, s, '░', core.ColorGray)
	}

	for _, t := range g.st.towers {
		vp.Circle(dst, core.Circle{C: t.pos, R: g.cfg.Tower.Radius}, '○', core.ColorCyan)
		vp.Dot(dst, t.pos, 'T', core.ColorBrightCyan)
	}

	if g.st.enemies != nil {
		g.st.enemies.Each(func(_ int, e *enemy) {
			col := core.ColorRed
			if e.hp > e.maxHP/2 {
				col = core.ColorBrightRed
			}
			vp.Dot(dst, e.body.Pos, '●', col)
		})
	}
	if g.st.bullets != nil {
		g.st.bullets.Each(func(_ int, b *bullet) {
			vp.Dot(dst, b.body.Pos, '•', core.ColorYellow)
		})
	}

	cur := snap(g.st.cursor, g.cfg.Grid)
	col := core.ColorRed
	if g.CanBuild(cur) {
		col = core.ColorBrightGreen
	}
	vp.Dot(dst, cur, '+', col)
}

func init() {
	registry.Register("defense", func() session.Game { return New() })
}
