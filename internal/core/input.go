package core

// Action represents a semantic game action, abstracted from physical key presses.
type Action int

const (
	ActionNone     Action = iota
	ActionPrevChan        // W, Up - select previous channel
	ActionNextChan        // S, Down - select next channel
	ActionDecrease        // A, Left - lower the selected channel
	ActionIncrease        // D, Right - raise the selected channel
	ActionSubmit          // Space, Enter - submit guess
	ActionNewGame         // N - new game (solo) / next round (battle)
	ActionHardReset       // X - clear battle scores
	ActionShare           // C - build share message
	ActionConfirm         // Y - accept prompt
	ActionDecline         // N, Esc - reject prompt
	ActionBack            // B, Escape - go back to menu
	ActionQuit            // Q, Ctrl+C - exit game/session
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionPrevChan:
		return "PrevChan"
	case ActionNextChan:
		return "NextChan"
	case ActionDecrease:
		return "Decrease"
	case ActionIncrease:
		return "Increase"
	case ActionSubmit:
		return "Submit"
	case ActionNewGame:
		return "NewGame"
	case ActionHardReset:
		return "HardReset"
	case ActionShare:
		return "Share"
	case ActionConfirm:
		return "Confirm"
	case ActionDecline:
		return "Decline"
	case ActionBack:
		return "Back"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// Input is a single action attributed to a player.
// Local battle shares one keyboard, so every key press resolves to a player.
type Input struct {
	Player PlayerID
	Action Action
}
