package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/pocket-arcade/internal/core"
)

// HoldTTL is how long a key counts as held after its last press.
// Terminals report no key-up, so holds are kept alive by autorepeat.
const HoldTTL = 150 * time.Millisecond

// Control is a host-level command taken from a key press.
type Control int

const (
	ControlNone Control = iota
	ControlQuit
	ControlBack
	ControlPause
	ControlRestart
)

// KeyMapper translates Bubble Tea key messages to game actions.
type KeyMapper struct {
	// Text routes printable keys to typed text instead of actions.
	Text bool
}

// MapKey returns the game action and host control bound to a key.
func (km KeyMapper) MapKey(msg tea.KeyMsg) (core.Action, Control) {
	key := msg.String()

	switch key {
	case "ctrl+c":
		return core.ActionQuit, ControlQuit
	case "esc":
		return core.ActionBack, ControlBack
	case "up":
		return core.ActionUp, ControlNone
	case "down":
		return core.ActionDown, ControlNone
	case "left":
		return core.ActionLeft, ControlNone
	case "right":
		return core.ActionRight, ControlNone
	case "enter":
		return core.ActionConfirm, ControlNone
	}

	if km.Text {
		switch key {
		case "ctrl+p":
			return core.ActionPause, ControlPause
		case "ctrl+r":
			return core.ActionRestart, ControlRestart
		}
		return core.ActionNone, ControlNone
	}

	switch key {
	case "q":
		return core.ActionQuit, ControlQuit
	case "b":
		return core.ActionBack, ControlBack
	case "p":
		return core.ActionPause, ControlPause
	case "r":
		return core.ActionRestart, ControlRestart
	case "w":
		return core.ActionUp, ControlNone
	case "s":
		return core.ActionDown, ControlNone
	case "a":
		return core.ActionLeft, ControlNone
	case "d":
		return core.ActionRight, ControlNone
	case " ":
		return core.ActionPrimary, ControlNone
	case "x":
		return core.ActionSecondary, ControlNone
	case "1":
		return core.ActionUpgrade1, ControlNone
	case "2":
		return core.ActionUpgrade2, ControlNone
	}
	return core.ActionNone, ControlNone
}

// Input accumulates key and mouse messages between ticks.
type Input struct {
	keys  KeyMapper
	frame core.InputFrame
	held  map[core.Action]time.Time
}

// NewInput creates an input accumulator.
func NewInput(keys KeyMapper) *Input {
	return &Input{
		keys:  keys,
		frame: core.NewInputFrame(),
		held:  make(map[core.Action]time.Time),
	}
}

// Key records a key press and returns the host control it carries.
func (in *Input) Key(msg tea.KeyMsg, now time.Time) Control {
	if in.keys.Text {
		switch msg.Type {
		case tea.KeyRunes:
			if !msg.Alt {
				in.frame.Text = append(in.frame.Text, msg.Runes...)
				return ControlNone
			}
		case tea.KeySpace:
			in.frame.Text = append(in.frame.Text, ' ')
			return ControlNone
		case tea.KeyBackspace:
			in.frame.Backspace++
			return ControlNone
		}
	}

	action, ctl := in.keys.MapKey(msg)
	if ctl != ControlNone || action == core.ActionNone {
		return ctl
	}
	in.frame.Set(action)
	in.held[action] = now.Add(HoldTTL)
	return ControlNone
}

// Mouse records a mouse event, mapping the cell to world units.
func (in *Input) Mouse(msg tea.MouseMsg, vp core.Viewport) {
	in.frame.Pointer = vp.ToWorld(msg.X, msg.Y)
	if msg.Button != tea.MouseButtonLeft {
		return
	}
	switch msg.Action {
	case tea.MouseActionPress:
		in.frame.Pressed = true
		in.frame.PointerDown = true
	case tea.MouseActionRelease:
		in.frame.Released = true
		in.frame.PointerDown = false
	}
}

// Frame returns the input for one tick and clears the per-frame edges.
// Holds older than HoldTTL are dropped.
func (in *Input) Frame(now time.Time) core.InputFrame {
	f := in.frame.Clone()
	for a, until := range in.held {
		if now.After(until) {
			delete(in.held, a)
			continue
		}
		f.Hold(a)
	}
	in.frame.Clear()
	return f
}

// Reset drops all pending input.
func (in *Input) Reset() {
	in.frame = core.NewInputFrame()
	clear(in.held)
}
