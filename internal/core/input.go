package core

// Action represents a semantic game action, abstracted from physical key presses.
// This allows games to work with high-level intents rather than raw input.
type Action int

const (
	ActionNone        Action = iota
	ActionUp                 // W, Up arrow - move cursor up
	ActionDown               // S, Down arrow - move cursor down
	ActionLeft               // A, Left arrow - move cursor left
	ActionRight              // D, Right arrow - move cursor right
	ActionConfirm            // Enter, Space - place the held piece
	ActionBack               // B - go back to menu
	ActionRestart            // R key - restart game after game over
	ActionQuit               // Q, Ctrl+C - exit game/session
	ActionPause              // P, Escape - pause/unpause game
	ActionRotateCW           // X - rotate held piece clockwise
	ActionRotateCCW          // Z - rotate held piece counterclockwise
	ActionNextPiece          // Tab - select next hand slot
	ActionPrevPiece          // Shift+Tab - select previous hand slot
	ActionRefresh            // F - replace the whole hand
	ActionReveal             // V - toggle the reveal canvas panel
	ActionSelectSlot1        // 1..6 - select a hand slot directly
	ActionSelectSlot2
	ActionSelectSlot3
	ActionSelectSlot4
	ActionSelectSlot5
	ActionSelectSlot6
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
	case ActionRotateCW:
		return "RotateCW"
	case ActionRotateCCW:
		return "RotateCCW"
	case ActionNextPiece:
		return "NextPiece"
	case ActionPrevPiece:
		return "PrevPiece"
	case ActionRefresh:
		return "Refresh"
	case ActionReveal:
		return "Reveal"
	}
	if slot, ok := a.Slot(); ok {
		return "Slot" + string(rune('1'+slot))
	}
	return "Unknown"
}

// Slot returns the zero-based hand slot for the ActionSelectSlotN actions.
func (a Action) Slot() (int, bool) {
	if a >= ActionSelectSlot1 && a <= ActionSelectSlot6 {
		return int(a - ActionSelectSlot1), true
	}
	return 0, false
}

// InputFrame represents the input state for a single player during one simulation tick.
// It contains all actions that were triggered during this frame.
type InputFrame struct {
	// Actions maps action types to whether they were triggered this frame.
	// Using a map allows checking multiple actions without order dependency.
	Actions map[Action]bool

	// Pointer is the screen cell under the mouse, if any.
	Pointer    Point
	HasPointer bool
	// Click is set when the pointer was pressed this frame.
	Click bool
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

// SetPointer records the pointer position for this frame.
func (f *InputFrame) SetPointer(p Point, click bool) {
	f.Pointer = p
	f.HasPointer = true
	f.Click = f.Click || click
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
	f.HasPointer = false
	f.Click = false
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	clone := NewInputFrame()
	for k, v := range f.Actions {
		clone.Actions[k] = v
	}
	clone.Pointer = f.Pointer
	clone.HasPointer = f.HasPointer
	clone.Click = f.Click
	return clone
}
