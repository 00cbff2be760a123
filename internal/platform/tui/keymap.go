package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/pigmento/internal/core"
)

// KeyMapper translates Bubble Tea key messages to game actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct{}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// MapKey translates a key message to a single-player action.
// Returns the action (may be ActionNone) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	switch msg.String() {
	case "ctrl+c", "q":
		return core.ActionQuit, true
	case "w", "up", "k":
		return core.ActionPrevChan, false
	case "s", "down", "j":
		return core.ActionNextChan, false
	case "a", "left", "h", "-":
		return core.ActionDecrease, false
	case "d", "right", "l", "+", "=":
		return core.ActionIncrease, false
	case " ", "enter":
		return core.ActionSubmit, false
	case "r":
		return core.ActionNewGame, false
	case "c":
		return core.ActionShare, false
	case "y":
		return core.ActionConfirm, false
	case "n":
		return core.ActionDecline, false
	case "b", "esc":
		return core.ActionBack, false
	}
	return core.ActionNone, false
}

// MapBattleKey translates a key on a shared keyboard to a player action.
// Player 1 uses WASD and Space, Player 2 the arrows and Enter.
// Round controls belong to no player.
func (km *KeyMapper) MapBattleKey(msg tea.KeyMsg) (input core.Input, isQuit bool) {
	switch msg.String() {
	case "ctrl+c", "q":
		return core.Input{Action: core.ActionQuit}, true

	case "w":
		return core.Input{Player: core.Player1, Action: core.ActionPrevChan}, false
	case "s":
		return core.Input{Player: core.Player1, Action: core.ActionNextChan}, false
	case "a":
		return core.Input{Player: core.Player1, Action: core.ActionDecrease}, false
	case "d":
		return core.Input{Player: core.Player1, Action: core.ActionIncrease}, false
	case " ":
		return core.Input{Player: core.Player1, Action: core.ActionSubmit}, false

	case "up":
		return core.Input{Player: core.Player2, Action: core.ActionPrevChan}, false
	case "down":
		return core.Input{Player: core.Player2, Action: core.ActionNextChan}, false
	case "left":
		return core.Input{Player: core.Player2, Action: core.ActionDecrease}, false
	case "right":
		return core.Input{Player: core.Player2, Action: core.ActionIncrease}, false
	case "enter":
		return core.Input{Player: core.Player2, Action: core.ActionSubmit}, false

	case "r":
		return core.Input{Action: core.ActionNewGame}, false
	case "x":
		return core.Input{Action: core.ActionHardReset}, false
	case "b", "esc":
		return core.Input{Action: core.ActionBack}, false
	}
	return core.Input{}, false
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionStats
	MenuActionQuit
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch msg.String() {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k":
		return MenuActionUp
	case "s", "down", "j":
		return MenuActionDown
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	case "tab":
		return MenuActionStats
	}
	return MenuActionNone
}
