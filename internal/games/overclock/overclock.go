// Package overclock implements an idle clicker against an accelerating drain.
// Power is spent on upgrades, so the score tracks the peak power reached.
package overclock

import (
	"fmt"
	"math"

	"github.com/dustin/go-humanize"

	"github.com/vovakirdan/pocket-arcade/internal/config"
	"github.com/vovakirdan/pocket-arcade/internal/core"
	"github.com/vovakirdan/pocket-arcade/internal/difficulty"
	"github.com/vovakirdan/pocket-arcade/internal/registry"
	"github.com/vovakirdan/pocket-arcade/internal/session"
)

// Upgrade slots.
const (
	UpgradeClick = iota
	UpgradeGenerator
)

// diminish is the decay applied to each further upgrade gain.
const diminish = 0.88

// Game implements overclock.
type Game struct {
	cfg   config.OverclockConfig
	drain difficulty.Curve
	st    state
}

type state struct {
	power      float64
	peak       float64
	baseRate   float64
	clickPower float64
	bought     [2]int
	clicks     int
	lastSec    int
	lost       bool
}

// New creates an overclock game with default tuning.
func New() *Game {
	g := &Game{}
	g.apply(config.DefaultOverclockConfig(), config.DifficultyNormal)
	return g
}

func (g *Game) apply(cfg config.OverclockConfig, preset config.DifficultyPreset) {
	difficulty.Close(g.drain)
	for len(cfg.Upgrades) < 2 {
		cfg.Upgrades = append(cfg.Upgrades, config.DefaultOverclockConfig().Upgrades[len(cfg.Upgrades)])
	}
	g.cfg = cfg
	g.drain = config.ApplyCurve(cfg.Drain.BuildOr(difficulty.PowerLaw{Base: 2.4, Growth: 0.8, Exponent: 1.35}), preset)
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string { return "overclock" }

// Title returns the display name for this game.
func (g *Game) Title() string { return "Overclock" }

// Description returns a one-line hint.
func (g *Game) Description() string {
	return "Space to pump power, 1 and 2 to buy upgrades"
}

// World returns a nominal field; overclock draws a panel, not a scene.
func (g *Game) World() core.Vec { return core.V(960, 520) }

// Configure loads tuning and applies the preset to the drain curve.
func (g *Game) Configure(customPath string, preset config.DifficultyPreset) error {
	cfg, err := config.Load("overclock", customPath, config.DefaultOverclockConfig)
	if err != nil {
		return err
	}
	g.apply(cfg, preset)
	return nil
}

// OnStart resets the reactor.
func (g *Game) OnStart(env *session.Env) {
	g.st = state{
		power:      g.cfg.StartPower,
		peak:       g.cfg.StartPower,
		baseRate:   g.cfg.BaseRate,
		clickPower: g.cfg.ClickPower,
	}
	env.SetScore(math.Floor(g.st.peak))
	env.Emit(session.PowerEvent{Value: g.st.power})
}

// Cost returns the price of the next purchase in slot.
func (g *Game) Cost(slot int) float64 {
	u := g.cfg.Upgrades[slot]
	return math.Floor(u.BaseCost * math.Pow(u.Growth, float64(g.st.bought[slot])))
}

// Drain returns the drain rate per second at elapsedMs.
func (g *Game) Drain(elapsedMs float64) float64 {
	return g.drain.At(elapsedMs)
}

// OnTick applies clicks, purchases and the net power flow.
func (g *Game) OnTick(env *session.Env, deltaMs float64, in core.InputFrame) {
	s := g.st
	now := env.Elapsed()

	if in.Has(core.ActionPrimary) || in.Pressed {
		s.power += s.clickPower
		s.clicks++
	}
	if in.Has(core.ActionUpgrade1) {
		s = g.buy(s, UpgradeClick)
	}
	if in.Has(core.ActionUpgrade2) {
		s = g.buy(s, UpgradeGenerator)
	}

	s.power += (s.baseRate - g.drain.At(now)) * deltaMs / 1000
	if s.power > s.peak {
		s.peak = s.power
		env.SetScore(math.Floor(s.peak))
	}

	if sec := int(now / 1000); sec != s.lastSec {
		s.lastSec = sec
		env.Emit(session.TimeEvent{Seconds: float64(sec)})
	}

	if s.power <= 0 {
		s.power = 0
		s.lost = true
		g.st = s
		env.Emit(session.PowerEvent{Value: 0})
		env.Finish(session.ReasonPower)
		return
	}
	env.Emit(session.PowerEvent{Value: s.power})
	g.st = s
}

// buy pays for an upgrade from power when it can be afforded.
func (g *Game) buy(s state, slot int) state {
	u := g.cfg.Upgrades[slot]
	cost := math.Floor(u.BaseCost * math.Pow(u.Growth, float64(s.bought[slot])))
	if s.power < cost {
		return s
	}
	s.power -= cost
	s.bought[slot]++
	switch slot {
	case UpgradeClick:
		s.clickPower += math.Max(1, math.Floor(3*math.Pow(diminish, s.clickPower)))
	case UpgradeGenerator:
		s.baseRate += 0.6 * math.Pow(diminish, s.baseRate*0.2)
	}
	return s
}

// OnDispose resets the reactor.
func (g *Game) OnDispose() {
	g.st = state{}
	difficulty.Close(g.drain)
}

// Extra reports the end payload. Overclocks are always zero.
func (g *Game) Extra() map[string]float64 {
	lost := 0.0
	if g.st.lost {
		lost = 1
	}
	return map[string]float64{
		"finalPower": g.st.power,
		"overclocks": 0,
		"lost":       lost,
	}
}

// Render draws the power gauge and the upgrade panel.
func (g *Game) Render(dst *core.Screen, vp core.Viewport) {
	a := vp.Area
	y := a.Y + a.H/2 - 3

	dst.DrawTextCentered(y, "⚡ "+humanize.CommafWithDigits(g.st.power, 1)+" power", core.ColorBrightYellow)

	barW := a.W - 8
	if barW < 4 {
		barW = 4
	}
	fill := 0
	if g.st.peak > 0 {
		fill = int(float64(barW) * g.st.power / g.st.peak)
	}
	fill = core.Clamp(fill, 0, barW)
	x := a.X + (a.W-barW)/2
	dst.DrawHLine(x, y+1, fill, '█', core.ColorYellow)
	dst.DrawHLine(x+fill, y+1, barW-fill, '░', core.ColorGray)

	net := g.st.baseRate - g.drain.At(float64(g.st.lastSec)*1000)
	dst.DrawTextCentered(y+3, fmt.Sprintf("rate %+.2f/s  click +%s", net, humanize.Ftoa(g.st.clickPower)), core.ColorDefault)
	dst.DrawTextCentered(y+5, fmt.Sprintf("[1] %s: %s   [2] %s: %s",
		g.cfg.Upgrades[UpgradeClick].Name, humanize.Comma(int64(g.Cost(UpgradeClick))),
		g.cfg.Upgrades[UpgradeGenerator].Name, humanize.Comma(int64(g.Cost(UpgradeGenerator))),
	), core.ColorCyan)
}

func init() {
	registry.Register("overclock", func() session.Game { return New() })
}
