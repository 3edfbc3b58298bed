// Package session runs one play-through of a game: it owns the
// idle/running/finished lifecycle, the clock, deferred callbacks and the
// outbound event stream. Games plug in through the Game capability interface
// and never see the host that drives them.
package session

import "fmt"

// Status is the lifecycle state of a session.
type Status int

const (
	StatusIdle Status = iota
	StatusRunning
	StatusFinished
)

// String returns the lowercase status name.
func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusRunning:
		return "running"
	case StatusFinished:
		return "finished"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// MarshalText encodes the status as its name.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Reason describes why a session finished.
type Reason string

const (
	ReasonNone   Reason = ""
	ReasonTimer  Reason = "timer"  // countdown expired
	ReasonLives  Reason = "lives"  // lives depleted
	ReasonPower  Reason = "power"  // resource depleted
	ReasonCrash  Reason = "crash"  // player hit an obstacle
	ReasonBounds Reason = "bounds" // player left the field
	ReasonTails  Reason = "tails"  // coin landed tails
	ReasonWin    Reason = "win"
	ReasonLose   Reason = "lose"
	ReasonQuit   Reason = "quit" // host ended the session
)
