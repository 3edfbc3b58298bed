package session

import (
	"context"

	"github.com/vovakirdan/pocket-arcade/internal/core"
)

// Game is the capability interface every minigame implements.
// A game keeps all of its simulation state private and only touches the
// outside world through the Env it is handed.
type Game interface {
	// ID returns the unique identifier used in the registry and storage.
	ID() string
	// Title returns the display name.
	Title() string
	// World returns the size of the play field in world units.
	World() core.Vec

	// OnStart resets all game state for a fresh run.
	OnStart(env *Env)
	// OnTick advances the simulation by deltaMs milliseconds.
	OnTick(env *Env, deltaMs float64, in core.InputFrame)
	// OnDispose releases entity state when the session is torn down.
	OnDispose()

	// Render draws the current state into dst through the viewport.
	Render(dst *core.Screen, vp core.Viewport)
}

// Finisher is implemented by games that freeze entities when a session ends.
type Finisher interface {
	OnFinish(reason Reason)
}

// Reporter is implemented by games that attach extra fields to the result.
type Reporter interface {
	Extra() map[string]float64
}

// Timed is implemented by games that run on a countdown.
type Timed interface {
	TimeLimitMs() float64
}

// TextCapture is implemented by games that read typed text. Hosts route
// printable keys to InputFrame.Text instead of binding them to actions.
type TextCapture interface {
	CapturesText() bool
}

// Result is the payload submitted when a session finishes.
type Result struct {
	SessionID string
	GameID    string
	Score     float64
	Reason    Reason
	ElapsedMs float64
	Seed      int64
	Extra     map[string]float64
}

// ScoreSink receives finished sessions.
type ScoreSink interface {
	SubmitScore(ctx context.Context, r Result) error
}

// SinkFunc adapts a function to ScoreSink.
type SinkFunc func(ctx context.Context, r Result) error

// SubmitScore calls f.
func (f SinkFunc) SubmitScore(ctx context.Context, r Result) error {
	return f(ctx, r)
}
