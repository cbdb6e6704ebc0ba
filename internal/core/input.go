package core

// Action represents a semantic input, abstracted from physical key presses,
// mouse clicks or touches.
type Action int

const (
	ActionNone        Action = iota
	ActionStart              // Leave the title state
	ActionRestart            // Start a new run after game over
	ActionJump               // Space, Up, W, tap in the upper screen area
	ActionDuck               // Down, S, tap in the lower screen area
	ActionDuckRelease        // Duck key/touch released
	ActionConfirm            // Enter in menus
	ActionBack               // B, Escape - back to menu
	ActionQuit               // Q, Ctrl+C
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionStart:
		return "Start"
	case ActionRestart:
		return "Restart"
	case ActionJump:
		return "Jump"
	case ActionDuck:
		return "Duck"
	case ActionDuckRelease:
		return "DuckRelease"
	case ActionConfirm:
		return "Confirm"
	case ActionBack:
		return "Back"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// TouchDuckZone is the fraction of the viewport height, measured from the
// bottom, where a touch means duck instead of jump.
const TouchDuckZone = 0.4

// ClassifyTouch maps a touch or click at vertical position y inside a
// viewport of the given height to ActionDuck or ActionJump.
func ClassifyTouch(y, height float64) Action {
	if height <= 0 {
		return ActionJump
	}
	if y >= height*(1-TouchDuckZone) {
		return ActionDuck
	}
	return ActionJump
}

// InputFrame holds the actions triggered during one frame, in arrival order.
// Order matters for the runner: a duck release followed by a jump in the
// same frame must still jump.
type InputFrame struct {
	Actions []Action
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{Actions: make([]Action, 0, 4)}
}

// Set appends an action to this frame.
func (f *InputFrame) Set(a Action) {
	if a == ActionNone {
		return
	}
	f.Actions = append(f.Actions, a)
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	for _, got := range f.Actions {
		if got == a {
			return true
		}
	}
	return false
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	f.Actions = f.Actions[:0]
}
