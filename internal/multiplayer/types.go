// Package multiplayer provides types for games with more than one seat.
// Used for Player vs CPU and two players sharing one keyboard.
package multiplayer

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/vovakirdan/math-arcade/internal/core"
)

// PlayerID is an alias to core.PlayerID for convenience.
// Player1 is always the local human player, Player2 can be CPU or a second human.
type PlayerID = core.PlayerID

// Re-export player constants for convenience.
const (
	Player1 = core.Player1
	Player2 = core.Player2
)

// SessionID uniquely identifies a player's session (e.g., SSH connection).
type SessionID string

// NewSessionID creates a unique session id for a user.
func NewSessionID(user string) SessionID {
	if user == "" {
		user = "anonymous"
	}
	return SessionID(fmt.Sprintf("%s-%s", user, uuid.NewString()))
}

// MatchMode defines how a game match is configured.
type MatchMode int

const (
	// MatchModeSolo is a single-player game.
	MatchModeSolo MatchMode = iota

	// MatchModeVsCPU is player vs computer (Brain Tug).
	MatchModeVsCPU

	// MatchModeLocal is two players on one keyboard.
	MatchModeLocal
)

// String returns a human-readable name for the match mode.
func (m MatchMode) String() string {
	switch m {
	case MatchModeSolo:
		return "Solo"
	case MatchModeVsCPU:
		return "vs CPU"
	case MatchModeLocal:
		return "2 Players"
	default:
		return "Unknown"
	}
}

// ParseMatchMode maps a flag value to a mode.
func ParseMatchMode(s string) (MatchMode, error) {
	switch s {
	case "", "solo":
		return MatchModeSolo, nil
	case "cpu", "vs-cpu":
		return MatchModeVsCPU, nil
	case "local", "2p":
		return MatchModeLocal, nil
	default:
		return MatchModeSolo, fmt.Errorf("multiplayer: unknown mode %q", s)
	}
}

// HasOpponent reports whether a second seat is in play.
func (m MatchMode) HasOpponent() bool {
	return m == MatchModeVsCPU || m == MatchModeLocal
}
