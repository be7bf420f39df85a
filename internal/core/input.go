package core

// Action represents a semantic game action, abstracted from physical key presses.
// This allows games to work with high-level intents rather than raw input.
type Action int

const (
	ActionNone    Action = iota
	ActionUp             // W, Up arrow - menu navigation
	ActionDown           // S, Down arrow - menu navigation
	ActionJump           // Space, W, Up - jump
	ActionDash           // X, Shift+Down - airborne dash
	ActionConfirm        // Enter - confirm selection in menu
	ActionBack           // B, Escape - go back to menu
	ActionRestart        // R key - restart game after game over
	ActionQuit           // Q, Ctrl+C - exit game/session
	ActionPause          // P - pause/unpause game
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
	case ActionJump:
		return "Jump"
	case ActionDash:
		return "Dash"
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
	default:
		return "Unknown"
	}
}

// InputFrame represents the input state for a single player during one simulation tick.
// Discrete actions are edge-triggered; MoveAxis is the held horizontal direction.
type InputFrame struct {
	// Actions maps action types to whether they were triggered this frame.
	// Using a map allows checking multiple actions without order dependency.
	Actions map[Action]bool

	// MoveAxis is the normalised horizontal input in [-1, 1].
	MoveAxis float64
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// SetAxis stores the horizontal axis, clamped to [-1, 1].
// Non-finite values are treated as neutral.
func (f *InputFrame) SetAxis(v float64) {
	if !V(v, 0).Finite() {
		v = 0
	}
	f.MoveAxis = ClampF(v, -1, 1)
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// Clear resets all actions for the next frame. The axis is left untouched;
// the platform owns its hold/release behaviour.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	clone := NewInputFrame()
	for k, v := range f.Actions {
		clone.Actions[k] = v
	}
	clone.MoveAxis = f.MoveAxis
	return clone
}

// Snapshot is the normalised per-tick input the simulation consumes.
type Snapshot struct {
	MoveAxis    float64
	JumpPressed bool
	DashPressed bool
}

// Snapshot reduces the frame to the gameplay-relevant input.
func (f InputFrame) Snapshot() Snapshot {
	return Snapshot{
		MoveAxis:    ClampF(f.MoveAxis, -1, 1),
		JumpPressed: f.Has(ActionJump),
		DashPressed: f.Has(ActionDash),
	}
}
