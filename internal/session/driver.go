package session

import (
	"time"

	"github.com/vovakirdan/pocket-arcade/internal/core"
)

// DefaultMaxDelta caps a single frame so a stalled host cannot blow up
// the integration step.
const DefaultMaxDelta = 250.0

// Driver turns host frames into controller ticks.
type Driver struct {
	// MaxDelta is the largest delta in milliseconds passed to Tick.
	MaxDelta float64

	c    *Controller
	last time.Time
}

// NewDriver creates a driver for c.
func NewDriver(c *Controller) *Driver {
	return &Driver{MaxDelta: DefaultMaxDelta, c: c}
}

// Controller returns the driven controller.
func (d *Driver) Controller() *Controller {
	return d.c
}

// Start starts the session. The next frame has a zero delta.
func (d *Driver) Start() {
	d.c.Start()
	d.last = time.Time{}
}

// Frame ticks the session with the wall-clock time since the previous frame
// and returns the delta that was applied.
func (d *Driver) Frame(now time.Time, in core.InputFrame) float64 {
	delta := 0.0
	if !d.last.IsZero() {
		delta = float64(now.Sub(d.last)) / float64(time.Millisecond)
	}
	d.last = now
	return d.Step(delta, in)
}

// Step ticks the session with an explicit delta, clamped to [0, MaxDelta].
func (d *Driver) Step(deltaMs float64, in core.InputFrame) float64 {
	if !core.Finite(deltaMs) || deltaMs < 0 {
		deltaMs = 0
	}
	if d.MaxDelta > 0 && deltaMs > d.MaxDelta {
		deltaMs = d.MaxDelta
	}
	d.c.Tick(deltaMs, in)
	return deltaMs
}

// InputSource produces the input for a given tick of a headless run.
type InputSource func(tick int, snap Snapshot) core.InputFrame

// Run steps the session with a fixed delta until it finishes or limitMs of
// session time has passed, and returns the final snapshot. A paused
// session returns immediately.
func (d *Driver) Run(stepMs, limitMs float64, input InputSource) Snapshot {
	if stepMs <= 0 {
		stepMs = 1000.0 / 60
	}
	for i := 0; ; i++ {
		snap := d.c.Snapshot()
		if snap.Status != StatusRunning || snap.Paused || snap.ElapsedMs >= limitMs {
			return snap
		}
		in := core.NewInputFrame()
		if input != nil {
			in = input(i, snap)
		}
		d.Step(stepMs, in)
	}
}
