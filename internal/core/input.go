package core

// Action represents a semantic game action, abstracted from physical key presses.
// This allows games to work with high-level intents rather than raw input.
type Action int

const (
	ActionNone      Action = iota
	ActionUp               // W, Up arrow - move up
	ActionDown             // S, Down arrow - move down
	ActionLeft             // A, Left arrow - move left
	ActionRight            // D, Right arrow - move right
	ActionPrimary          // Space - flap, fire, flip, click
	ActionSecondary        // X - alternate action (place tower at cursor)
	ActionConfirm          // Enter - confirm selection in menu
	ActionBack             // B, Escape - go back to menu
	ActionRestart          // R key - restart the session
	ActionQuit             // Q, Ctrl+C - exit game/session
	ActionPause            // P - pause/unpause
	ActionUpgrade1         // 1 - first upgrade slot
	ActionUpgrade2         // 2 - second upgrade slot
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionPrimary:
		return "Primary"
	case ActionSecondary:
		return "Secondary"
	case ActionConfirm:
		return "Confirm"
	case ActionBack:
		return "Back"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	case ActionPause:
		return "Pause"
	case ActionUpgrade1:
		return "Upgrade1"
	case ActionUpgrade2:
		return "Upgrade2"
	default:
		return "Unknown"
	}
}

// InputFrame is the input sampled at the start of one tick.
type InputFrame struct {
	// Actions holds edge-triggered actions fired this frame.
	Actions map[Action]bool
	// Held holds actions whose key is still considered down.
	Held map[Action]bool

	// Pointer is the cursor position in world units.
	Pointer     Vec
	PointerDown bool // button currently held
	Pressed     bool // button went down this frame
	Released    bool // button went up this frame

	// Text holds characters typed this frame, Backspace the number of deletions.
	Text      []rune
	Backspace int
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
		Held:    make(map[Action]bool),
	}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Hold marks an action as held.
func (f *InputFrame) Hold(a Action) {
	if f.Held == nil {
		f.Held = make(map[Action]bool)
	}
	f.Held[a] = true
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	return f.Actions[a]
}

// IsHeld returns true if the action was triggered this frame or is held.
func (f InputFrame) IsHeld(a Action) bool {
	return f.Held[a] || f.Actions[a]
}

// Direction returns the unnormalised movement vector from held direction keys.
func (f InputFrame) Direction() Vec {
	var d Vec
	if f.IsHeld(ActionLeft) {
		d.X--
	}
	if f.IsHeld(ActionRight) {
		d.X++
	}
	if f.IsHeld(ActionUp) {
		d.Y--
	}
	if f.IsHeld(ActionDown) {
		d.Y++
	}
	return d
}

// Clear resets the per-frame edges. Held keys and the pointer position persist.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
	f.Pressed = false
	f.Released = false
	f.Text = f.Text[:0]
	f.Backspace = 0
}

// Clone creates a deep copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	clone := NewInputFrame()
	for k, v := range f.Actions {
		clone.Actions[k] = v
	}
	for k, v := range f.Held {
		clone.Held[k] = v
	}
	clone.Pointer = f.Pointer
	clone.PointerDown = f.PointerDown
	clone.Pressed = f.Pressed
	clone.Released = f.Released
	clone.Text = append([]rune(nil), f.Text...)
	clone.Backspace = f.Backspace
	return clone
}
