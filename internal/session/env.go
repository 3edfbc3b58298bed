package session

import (
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/pocket-arcade/internal/core"
)

// minInterval keeps repeating timers from spinning within a single tick.
const minInterval = 1.0

// Env is the facet of a running session exposed to its game.
type Env struct {
	c *Controller
}

// RNG returns the random source for this run.
func (e *Env) RNG() core.RNG {
	return e.c.rng
}

// Elapsed returns the session time in milliseconds.
func (e *Env) Elapsed() float64 {
	return e.c.elapsed
}

// Remaining returns the countdown left in milliseconds, or 0 for untimed sessions.
func (e *Env) Remaining() float64 {
	return e.c.remaining()
}

// World returns the size of the play field.
func (e *Env) World() core.Vec {
	return e.c.game.World()
}

// Running reports whether the session still accepts updates.
func (e *Env) Running() bool {
	return e.c.status == StatusRunning && !e.c.disposed
}

// Generation returns the current run generation.
func (e *Env) Generation() uint64 {
	return e.c.gen
}

// Emit sends an event to the session's emitter.
func (e *Env) Emit(ev Event) {
	if !e.Running() {
		return
	}
	e.c.emit(ev)
}

// Score returns the current score.
func (e *Env) Score() float64 {
	return e.c.score
}

// SetScore updates the score and emits it when it changes.
// The score never decreases within a run; lower values are ignored.
func (e *Env) SetScore(v float64) {
	if !e.Running() || !core.Finite(v) || v <= e.c.score {
		return
	}
	e.c.score = v
	e.c.emit(ScoreEvent{Value: v})
}

// AddScore adds d to the score.
func (e *Env) AddScore(d float64) {
	e.SetScore(e.c.score + d)
}

// Finish ends the session.
func (e *Env) Finish(reason Reason) {
	e.c.Finish(reason)
}

// After schedules fn once, ms milliseconds of session time from now.
func (e *Env) After(ms float64, fn func()) TimerID {
	return e.c.timers.add(e.c.elapsed+ms, 0, e.c.gen, fn)
}

// Every schedules fn repeatedly with the given interval.
func (e *Env) Every(ms float64, fn func()) TimerID {
	if ms < minInterval {
		ms = minInterval
	}
	return e.c.timers.add(e.c.elapsed+ms, ms, e.c.gen, fn)
}

// Cancel removes a scheduled callback. Unknown ids are ignored.
func (e *Env) Cancel(id TimerID) {
	e.c.timers.cancel(id)
}

// Guard wraps fn so it does nothing once the run that created it has ended.
func (e *Env) Guard(fn func()) func() {
	gen := e.c.gen
	return func() {
		if e.c.gen != gen || !e.Running() {
			return
		}
		fn()
	}
}

// Logger returns the session logger.
func (e *Env) Logger() *log.Logger {
	return e.c.logger
}
