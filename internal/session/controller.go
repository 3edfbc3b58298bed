package session

import (
	"context"
	"io"
	"math"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/pocket-arcade/internal/core"
)

// timeBucketMs is the granularity of countdown events.
const timeBucketMs = 100

// submitTimeout bounds how long a finished session waits on its ScoreSink.
const submitTimeout = 5 * time.Second

// Snapshot is a read-only view of a session.
type Snapshot struct {
	SessionID   string  `json:"session"`
	GameID      string  `json:"game"`
	Status      Status  `json:"status"`
	Reason      Reason  `json:"reason,omitempty"`
	ElapsedMs   float64 `json:"elapsed_ms"`
	RemainingMs float64 `json:"remaining_ms"`
	Score       float64 `json:"score"`
	Tick        uint64  `json:"tick"`
	Generation  uint64  `json:"gen"`
	Paused      bool    `json:"paused"`
}

// Option configures a Controller.
type Option func(*Controller)

// WithEmitter sets where events are sent.
func WithEmitter(e Emitter) Option {
	return func(c *Controller) { c.out = e }
}

// WithScoreSink sets the sink that receives finished sessions.
func WithScoreSink(s ScoreSink) Option {
	return func(c *Controller) { c.sink = s }
}

// WithLogger sets the session logger.
func WithLogger(l *log.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithSeed fixes the RNG seed used by Start.
func WithSeed(seed int64) Option {
	return func(c *Controller) { c.seed = seed }
}

// WithRNG replaces the RNG constructor.
func WithRNG(fn func(seed int64) core.RNG) Option {
	return func(c *Controller) {
		if fn != nil {
			c.newRNG = fn
		}
	}
}

// WithTimeLimit turns the session into a countdown of ms milliseconds.
// It overrides any limit declared by the game.
func WithTimeLimit(ms float64) Option {
	return func(c *Controller) { c.timeLimit = ms }
}

// Controller owns the lifecycle of one game.
// It is not safe for concurrent use; the host drives it from one goroutine.
type Controller struct {
	game   Game
	out    Emitter
	sink   ScoreSink
	logger *log.Logger
	newRNG func(seed int64) core.RNG

	seed      int64
	timeLimit float64

	id         string
	status     Status
	reason     Reason
	paused     bool
	disposed   bool
	elapsed    float64
	score      float64
	tick       uint64
	gen        uint64
	lastBucket int
	lastTime   float64
	rng        core.RNG
	timers     scheduler
	env        Env
}

// NewController wraps g in an idle session.
func NewController(g Game, opts ...Option) *Controller {
	c := &Controller{
		game:   g,
		logger: log.New(io.Discard),
		newRNG: core.NewRNG,
		seed:   time.Now().UnixNano(),
	}
	if t, ok := g.(Timed); ok {
		c.timeLimit = t.TimeLimitMs()
	}
	for _, opt := range opts {
		opt(c)
	}
	c.env = Env{c: c}
	return c
}

// Game returns the wrapped game.
func (c *Controller) Game() Game {
	return c.game
}

// Reseed sets the seed used by the next Start.
func (c *Controller) Reseed(seed int64) {
	c.seed = seed
}

// Start begins a fresh run. Calling it on a running session restarts it.
func (c *Controller) Start() {
	if c.disposed {
		c.logger.Warn("start on disposed session", "game", c.game.ID())
		return
	}

	c.gen++
	c.timers.clear()

	c.id = uuid.NewString()
	c.status = StatusRunning
	c.reason = ReasonNone
	c.paused = false
	c.elapsed = 0
	c.score = 0
	c.tick = 0
	c.lastBucket = -1
	c.lastTime = math.NaN()
	c.rng = c.newRNG(c.seed)

	c.emit(StatusEvent{Status: StatusRunning})
	c.emit(ScoreEvent{Value: 0})
	c.game.OnStart(&c.env)
	c.emitTime()

	c.logger.Debug("session started",
		"game", c.game.ID(),
		"session", c.id,
		"gen", c.gen,
		"seed", c.seed,
	)
}

// Restart is an alias for Start.
func (c *Controller) Restart() {
	c.Start()
}

// Tick advances a running session by deltaMs milliseconds.
// Ticks on idle, finished, paused or disposed sessions do nothing.
func (c *Controller) Tick(deltaMs float64, in core.InputFrame) {
	if c.status != StatusRunning || c.paused || c.disposed {
		return
	}
	if !core.Finite(deltaMs) || deltaMs < 0 {
		deltaMs = 0
	}

	c.tick++
	c.elapsed += deltaMs

	gen := c.gen
	c.timers.fire(c.elapsed, func() uint64 { return c.gen })
	if c.gen != gen || c.status != StatusRunning {
		return
	}

	c.game.OnTick(&c.env, deltaMs, in)
	if c.status != StatusRunning {
		return
	}

	if c.timeLimit > 0 {
		c.emitTime()
		if c.remaining() <= 0 {
			c.Finish(ReasonTimer)
		}
	}
}

// Finish ends a running session. Further calls are ignored.
func (c *Controller) Finish(reason Reason) {
	if c.status != StatusRunning || c.disposed {
		return
	}

	c.status = StatusFinished
	c.reason = reason
	c.paused = false
	c.gen++
	c.timers.clear()

	if reason == ReasonTimer && c.lastTime != 0 {
		c.emit(TimeEvent{Seconds: 0})
		c.lastTime = 0
	}
	if f, ok := c.game.(Finisher); ok {
		f.OnFinish(reason)
	}
	c.emit(StatusEvent{Status: StatusFinished, Reason: reason})

	c.logger.Debug("session finished",
		"game", c.game.ID(),
		"session", c.id,
		"reason", reason,
		"score", c.score,
		"elapsed_ms", c.elapsed,
	)
	c.submit()
}

// Pause freezes a running session.
func (c *Controller) Pause() {
	if c.status == StatusRunning {
		c.paused = true
	}
}

// Resume continues a paused session.
func (c *Controller) Resume() {
	c.paused = false
}

// TogglePause flips the paused state of a running session.
func (c *Controller) TogglePause() {
	if c.paused {
		c.Resume()
	} else {
		c.Pause()
	}
}

// Dispose tears the session down. Pending callbacks are cancelled before
// the game releases its entities, and the controller cannot be restarted.
func (c *Controller) Dispose() {
	if c.disposed {
		return
	}
	c.gen++
	c.timers.clear()
	c.disposed = true
	c.game.OnDispose()
	c.logger.Debug("session disposed", "game", c.game.ID(), "session", c.id)
}

// Snapshot returns the current session state.
func (c *Controller) Snapshot() Snapshot {
	return Snapshot{
		SessionID:   c.id,
		GameID:      c.game.ID(),
		Status:      c.status,
		Reason:      c.reason,
		ElapsedMs:   c.elapsed,
		RemainingMs: c.remaining(),
		Score:       c.score,
		Tick:        c.tick,
		Generation:  c.gen,
		Paused:      c.paused,
	}
}

// Status returns the lifecycle state.
func (c *Controller) Status() Status {
	return c.status
}

// Paused reports whether the session is paused.
func (c *Controller) Paused() bool {
	return c.paused
}

// PendingTimers returns the number of scheduled callbacks.
func (c *Controller) PendingTimers() int {
	return c.timers.len()
}

func (c *Controller) remaining() float64 {
	if c.timeLimit <= 0 {
		return 0
	}
	return math.Max(0, c.timeLimit-c.elapsed)
}

// emitTime sends the countdown once per bucket.
func (c *Controller) emitTime() {
	if c.timeLimit <= 0 {
		return
	}
	bucket := int(c.elapsed / timeBucketMs)
	if bucket == c.lastBucket {
		return
	}
	c.lastBucket = bucket
	secs := math.Ceil(c.remaining()/timeBucketMs) * timeBucketMs / 1000
	c.lastTime = secs
	c.emit(TimeEvent{Seconds: secs})
}

func (c *Controller) emit(ev Event) {
	if c.out == nil {
		return
	}
	c.out.Emit(Envelope{
		SessionID:  c.id,
		GameID:     c.game.ID(),
		Generation: c.gen,
		Tick:       c.tick,
		ElapsedMs:  c.elapsed,
		Event:      ev,
	})
}

func (c *Controller) submit() {
	if c.sink == nil {
		return
	}

	res := Result{
		SessionID: c.id,
		GameID:    c.game.ID(),
		Score:     c.score,
		Reason:    c.reason,
		ElapsedMs: c.elapsed,
		Seed:      c.seed,
	}
	if r, ok := c.game.(Reporter); ok {
		res.Extra = r.Extra()
	}

	ctx, cancel := context.WithTimeout(context.Background(), submitTimeout)
	defer cancel()
	if err := c.sink.SubmitScore(ctx, res); err != nil {
		c.logger.Warn("score submit failed", "game", res.GameID, "session", res.SessionID, "err", err)
	}
}
