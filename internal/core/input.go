package core

import "time"

// Action represents a semantic game action, abstracted from physical key presses.
// This allows games to work with high-level intents rather than raw input.
type Action int

const (
	ActionNone    Action = iota
	ActionUp             // W, Up arrow - move cursor up / raise value
	ActionDown           // S, Down arrow - move cursor down / lower value
	ActionLeft           // A, Left arrow - rotate counter-clockwise / previous option
	ActionRight          // D, Right arrow - rotate clockwise / next option
	ActionFire           // Space - fire, submit or flip a card
	ActionConfirm        // Enter - confirm selection
	ActionBack           // B, Escape - go back to menu
	ActionRestart        // R key - restart game after game over
	ActionQuit           // Q, Ctrl+C - exit game/session
	ActionPause          // P - pause/unpause game
	ActionChoice1        // 1 - first answer option
	ActionChoice2        // 2 - second answer option
	ActionChoice3        // 3 - third answer option
	ActionChoice4        // 4 - fourth answer option
	ActionTrue           // Y / right swipe - "true" / "valid"
	ActionFalse          // N / left swipe - "false" / "invalid"
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
	case ActionFire:
		return "Fire"
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
	case ActionChoice1, ActionChoice2, ActionChoice3, ActionChoice4:
		return "Choice"
	case ActionTrue:
		return "True"
	case ActionFalse:
		return "False"
	default:
		return "Unknown"
	}
}

// ChoiceActions lists the option keys in display order.
var ChoiceActions = [4]Action{ActionChoice1, ActionChoice2, ActionChoice3, ActionChoice4}

// Choice returns the zero-based index of the first option key pressed this
// frame, or -1 if none was.
func (f InputFrame) Choice() int {
	for i, a := range ChoiceActions {
		if f.Has(a) {
			return i
		}
	}
	return -1
}

// PointerKind tells what a pointer sample represents.
type PointerKind int

const (
	PointerPress PointerKind = iota
	PointerDrag
	PointerRelease
)

// PointerSample is one mouse event in screen cell coordinates.
type PointerSample struct {
	X, Y float64
	Kind PointerKind
	At   time.Time
}

// InputFrame represents the input state for a single player during one simulation tick.
// Events that arrive between ticks are buffered here and consumed together.
type InputFrame struct {
	// Actions maps action types to whether they were triggered this frame.
	// Using a map allows checking multiple actions without order dependency.
	Actions map[Action]bool

	// Pointer holds mouse samples received since the previous tick, oldest first.
	Pointer []PointerSample

	// Runes holds typed characters, used by games that accept numeric entry.
	Runes []rune

	// At is the wall-clock time of the tick that consumes this frame.
	At time.Time
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

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// AddPointer buffers a mouse sample.
func (f *InputFrame) AddPointer(p PointerSample) {
	f.Pointer = append(f.Pointer, p)
}

// AddRune buffers a typed character.
func (f *InputFrame) AddRune(r rune) {
	f.Runes = append(f.Runes, r)
}

// Clear resets all buffered input for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
	f.Pointer = f.Pointer[:0]
	f.Runes = f.Runes[:0]
	f.At = time.Time{}
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	clone := NewInputFrame()
	for k, v := range f.Actions {
		clone.Actions[k] = v
	}
	clone.Pointer = append([]PointerSample(nil), f.Pointer...)
	clone.Runes = append([]rune(nil), f.Runes...)
	clone.At = f.At
	return clone
}

// PlayerID identifies a seat in a game. Player1 is always the local human
// player; Player2 can be the CPU or a second player on the same keyboard.
type PlayerID int

const (
	Player1 PlayerID = iota + 1
	Player2
)

// MultiInputFrame contains input from all players for a single tick.
// Platform builds this from keyboard input (Player1) and the second key
// cluster (Player2). Games consume it without knowing the input source.
type MultiInputFrame struct {
	// ByPlayer maps player IDs to their input frames.
	ByPlayer map[PlayerID]InputFrame
}

// NewMultiInputFrame creates an empty multi-input frame.
func NewMultiInputFrame() MultiInputFrame {
	return MultiInputFrame{
		ByPlayer: make(map[PlayerID]InputFrame),
	}
}

// Player returns the input frame for a specific player.
// Returns an empty frame if player has no input.
func (m MultiInputFrame) Player(id PlayerID) InputFrame {
	if m.ByPlayer == nil {
		return NewInputFrame()
	}
	if frame, ok := m.ByPlayer[id]; ok {
		return frame
	}
	return NewInputFrame()
}

// SetPlayer sets the input frame for a specific player.
func (m *MultiInputFrame) SetPlayer(id PlayerID, frame InputFrame) {
	if m.ByPlayer == nil {
		m.ByPlayer = make(map[PlayerID]InputFrame)
	}
	m.ByPlayer[id] = frame
}

// Player1 returns the input frame for Player 1 (convenience method).
func (m MultiInputFrame) Player1() InputFrame {
	return m.Player(Player1)
}

// Player2 returns the input frame for Player 2 (convenience method).
func (m MultiInputFrame) Player2() InputFrame {
	return m.Player(Player2)
}

// Stamp sets the tick time on every player's frame.
func (m *MultiInputFrame) Stamp(at time.Time) {
	for id, frame := range m.ByPlayer {
		frame.At = at
		m.ByPlayer[id] = frame
	}
}

// Clear resets all player inputs for the next frame.
func (m *MultiInputFrame) Clear() {
	for id := range m.ByPlayer {
		frame := m.ByPlayer[id]
		frame.Clear()
		m.ByPlayer[id] = frame
	}
}

// Clone creates a deep copy of this multi-input frame.
func (m MultiInputFrame) Clone() MultiInputFrame {
	clone := NewMultiInputFrame()
	for id, frame := range m.ByPlayer {
		clone.ByPlayer[id] = frame.Clone()
	}
	return clone
}
