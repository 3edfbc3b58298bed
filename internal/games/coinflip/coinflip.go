// Package coinflip implements a streak game: keep flipping until tails.
package coinflip

import (
	"fmt"
	"math"

	"github.com/vovakirdan/pocket-arcade/internal/core"
	"github.com/vovakirdan/pocket-arcade/internal/registry"
	"github.com/vovakirdan/pocket-arcade/internal/session"
)

// Face is the side a coin landed on.
type Face int

const (
	FaceNone Face = iota
	FaceHeads
	FaceTails
)

func (f Face) String() string {
	switch f {
	case FaceHeads:
		return "HEADS"
	case FaceTails:
		return "TAILS"
	default:
		return "?"
	}
}

// spinMs is how long the coin art spins after a flip.
const spinMs = 300

// Game implements coin flip.
type Game struct {
	streak int
	flips  int
	last   Face
	spin   float64
}

// New creates a coin flip game.
func New() *Game {
	return &Game{}
}

func (g *Game) ID() string          { return "coin-flip" }
func (g *Game) Title() string       { return "Coin Flip" }
func (g *Game) Description() string { return "Space to flip, heads keeps the streak alive" }
func (g *Game) World() core.Vec     { return core.V(960, 520) }

// OnStart clears the streak.
func (g *Game) OnStart(*session.Env) {
	*g = Game{}
}

// OnTick flips once per press.
func (g *Game) OnTick(env *session.Env, deltaMs float64, in core.InputFrame) {
	g.spin = math.Max(0, g.spin-deltaMs)
	if !in.Has(core.ActionPrimary) && !in.Pressed {
		return
	}

	g.flips++
	g.spin = spinMs
	if env.RNG().Float64() < 0.5 {
		g.last = FaceHeads
		g.streak++
		env.SetScore(float64(g.streak))
		return
	}

	g.last = FaceTails
	env.Emit(session.ResultEvent{Outcome: session.ReasonTails})
	env.Finish(session.ReasonTails)
}

// Streak returns the current number of heads in a row.
func (g *Game) Streak() int { return g.streak }

func (g *Game) OnDispose() {
	*g = Game{}
}

// Extra reports the streak.
func (g *Game) Extra() map[string]float64 {
	return map[string]float64{
		"streak": float64(g.streak),
		"flips":  float64(g.flips),
	}
}

var spinFrames = []string{"(O)", "(|)", "( )", "(|)"}

// Render draws the coin and the last result.
func (g *Game) Render(dst *core.Screen, vp core.Viewport) {
	a := vp.Area
	y := a.Y + a.H/2 - 2

	coin := "(O)"
	col := core.ColorBrightYellow
	if g.spin > 0 {
		coin = spinFrames[int(g.spin/40)%len(spinFrames)]
		col = core.ColorYellow
	}
	dst.DrawTextCentered(y, coin, col)

	if g.spin == 0 && g.last != FaceNone {
		face := core.ColorBrightGreen
		if g.last == FaceTails {
			face = core.ColorBrightRed
		}
		dst.DrawTextCentered(y+2, g.last.String(), face)
	}
	dst.DrawTextCentered(y+4, fmt.Sprintf("streak %d", g.streak), core.ColorDefault)
}

func init() {
	registry.Register("coin-flip", func() session.Game { return New() })
}
