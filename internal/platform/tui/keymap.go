package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/math-arcade/internal/core"
	"github.com/vovakirdan/math-arcade/internal/multiplayer"
)

// KeyMapper translates Bubble Tea key messages to game actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct {
	// Mode decides whether the 7-0 cluster belongs to a second local player.
	Mode multiplayer.MatchMode
}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// player2Keys is the answer cluster of the second seat in local matches.
var player2Keys = map[string]core.Action{
	"7": core.ActionChoice1,
	"8": core.ActionChoice2,
	"9": core.ActionChoice3,
	"0": core.ActionChoice4,
}

// MapKey translates a key message to actions for Player1.
// Returns the action (may be ActionNone) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	key := msg.String()

	// Global quit keys
	switch key {
	case "ctrl+c", "q":
		return core.ActionQuit, true
	}

	// Game/menu actions
	switch key {
	case "w", "up":
		return core.ActionUp, false
	case "s", "down":
		return core.ActionDown, false
	case "a", "left":
		return core.ActionLeft, false
	case "d", "right":
		return core.ActionRight, false
	case " ":
		return core.ActionFire, false
	case "enter":
		return core.ActionConfirm, false
	case "b", "esc":
		return core.ActionBack, false
	case "p":
		return core.ActionPause, false
	case "r":
		return core.ActionRestart, false
	case "1":
		return core.ActionChoice1, false
	case "2":
		return core.ActionChoice2, false
	case "3":
		return core.ActionChoice3, false
	case "4":
		return core.ActionChoice4, false
	case "y":
		return core.ActionTrue, false
	case "n":
		return core.ActionFalse, false
	}

	return core.ActionNone, false
}

// typedRune returns the character a key contributes to numeric entry.
func typedRune(msg tea.KeyMsg) (rune, bool) {
	switch msg.Type {
	case tea.KeyBackspace, tea.KeyDelete:
		return '\b', true
	case tea.KeyRunes:
		if len(msg.Runes) != 1 {
			return 0, false
		}
		r := msg.Runes[0]
		if (r >= '0' && r <= '9') || r == '-' {
			return r, true
		}
	}
	return 0, false
}

// MapKeyToFrame updates an input frame based on a key message.
// Returns true if the key was a quit request.
func (km *KeyMapper) MapKeyToFrame(msg tea.KeyMsg, frame *core.InputFrame) bool {
	action, isQuit := km.MapKey(msg)
	if action != core.ActionNone {
		frame.Set(action)
	}
	if r, ok := typedRune(msg); ok {
		frame.AddRune(r)
	}
	return isQuit
}

// MapKeyToMultiFrame updates a multi-input frame based on a key message.
// In local two-player matches the 7-0 keys answer for Player2; every other
// key belongs to Player1. Returns true if the key was a quit request.
func (km *KeyMapper) MapKeyToMultiFrame(msg tea.KeyMsg, frame *core.MultiInputFrame) bool {
	if km.Mode == multiplayer.MatchModeLocal {
		if action, ok := player2Keys[msg.String()]; ok {
			p2 := frame.Player(multiplayer.Player2)
			p2.Set(action)
			frame.SetPlayer(multiplayer.Player2, p2)
			return false
		}
	}

	p1 := frame.Player(multiplayer.Player1)
	isQuit := km.MapKeyToFrame(msg, &p1)
	frame.SetPlayer(multiplayer.Player1, p1)
	return isQuit
}

// MapMouse converts a left-button mouse event to a pointer sample.
// Wheel and other buttons are ignored.
func (km *KeyMapper) MapMouse(msg tea.MouseMsg, at time.Time) (core.PointerSample, bool) {
	sample := core.PointerSample{X: float64(msg.X), Y: float64(msg.Y), At: at}

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return sample, false
		}
		sample.Kind = core.PointerPress
	case tea.MouseActionMotion:
		if msg.Button != tea.MouseButtonLeft {
			return sample, false
		}
		sample.Kind = core.PointerDrag
	case tea.MouseActionRelease:
		sample.Kind = core.PointerRelease
	default:
		return sample, false
	}
	return sample, true
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionLeft
	MenuActionRight
	MenuActionSelect
	MenuActionBack
	MenuActionQuit
	MenuActionScoreboard
	MenuActionProfile
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	key := msg.String()

	switch key {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k": // vim-style k for up
		return MenuActionUp
	case "s", "down", "j": // vim-style j for down
		return MenuActionDown
	case "a", "left", "h":
		return MenuActionLeft
	case "d", "right", "l":
		return MenuActionRight
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	case "tab":
		return MenuActionScoreboard
	case "p":
		return MenuActionProfile
	}

	return MenuActionNone
}
