package core

// Action represents a semantic input action, abstracted from physical key presses.
// Direction actions are translated to environment action indices by the caller.
type Action int

const (
	ActionNone    Action = iota
	ActionUp             // W, Up arrow
	ActionRight          // D, Right arrow
	ActionDown           // S, Down arrow
	ActionLeft           // A, Left arrow
	ActionPause          // P, Escape - pause/unpause
	ActionRestart        // R - start a new episode after game over
	ActionQuit           // Q, Ctrl+C - exit session
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionUp:
		return "Up"
	case ActionRight:
		return "Right"
	case ActionDown:
		return "Down"
	case ActionLeft:
		return "Left"
	case ActionPause:
		return "Pause"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// IsDirection reports whether the action steers the snake.
func (a Action) IsDirection() bool {
	return a >= ActionUp && a <= ActionLeft
}

// InputFrame represents the input state collected during one simulation tick.
type InputFrame struct {
	// Actions maps action types to whether they were triggered this frame.
	Actions map[Action]bool
	// Last is the most recent direction action, so that two presses within
	// one tick resolve to the later one.
	Last Action
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
	if a.IsDirection() {
		f.Last = a
	}
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// Direction returns the latest direction action of the frame, if any.
func (f InputFrame) Direction() (Action, bool) {
	if f.Last == ActionNone {
		return ActionNone, false
	}
	return f.Last, true
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
	f.Last = ActionNone
}
