// Package multiplayer runs two-player color battles between sessions.
// A Coordinator pairs sessions through lobby codes and each paired couple
// plays an OnlineMatch that owns the authoritative game.Battle.
package multiplayer

import "github.com/vovakirdan/pigmento/internal/core"

// PlayerID is an alias to core.PlayerID for convenience.
// Player1 is always the lobby host, Player2 the joiner.
type PlayerID = core.PlayerID

// Re-export player constants for convenience.
const (
	Player1 = core.Player1
	Player2 = core.Player2
)

// SessionID uniquely identifies a player's session (e.g., SSH connection).
type SessionID string

// MatchID uniquely identifies an online match.
type MatchID string

// MatchMode defines how a game is played.
type MatchMode int

const (
	// MatchModeSolo is one player guessing alone.
	MatchModeSolo MatchMode = iota

	// MatchModeLocal is two players sharing one terminal.
	MatchModeLocal

	// MatchModeOnlinePvP is two sessions paired through a lobby.
	MatchModeOnlinePvP
)

// String returns a human-readable name for the match mode.
func (m MatchMode) String() string {
	switch m {
	case MatchModeSolo:
		return "Solo"
	case MatchModeLocal:
		return "Local"
	case MatchModeOnlinePvP:
		return "Online PvP"
	default:
		return "Unknown"
	}
}
