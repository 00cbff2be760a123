package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/pigmento/internal/core"
	"github.com/vovakirdan/pigmento/internal/game"
	"github.com/vovakirdan/pigmento/internal/multiplayer"
)

// joinCodeLength is the length of lobby codes.
const joinCodeLength = 6

// OnlineState represents the current state of the online matchmaking flow.
type OnlineState int

const (
	OnlineStateChooseMode    OnlineState = iota // Choose Host or Join
	OnlineStateHostWaiting                      // Hosting, waiting for joiner
	OnlineStateJoinEnterCode                    // Entering join code
	OnlineStateJoinWaiting                      // Waiting to connect to host
	OnlineStateInMatch                          // Match has started
	OnlineStateMatchEnded                       // Lobby closed before a match
)

// waitForEvent returns a command that waits for the next coordinator event.
func waitForEvent(events <-chan multiplayer.SessionEvent) tea.Cmd {
	if events == nil {
		return nil
	}
	return func() tea.Msg {
		evt, ok := <-events
		if !ok {
			return nil
		}
		return evt
	}
}

// OnlineLobbyModel handles the online matchmaking flow.
// Coordinator events are delivered to Update by the owning session.
type OnlineLobbyModel struct {
	state       OnlineState
	width       int
	height      int
	sessionID   multiplayer.SessionID
	coordinator *multiplayer.Coordinator

	// Host state
	lobbyCode string

	// Join state
	joinCodeInput string
	joinError     string

	// Match state
	matchID     multiplayer.MatchID
	side        core.PlayerID
	opponentID  multiplayer.SessionID
	pointsToWin int

	backToMenu bool
	quitting   bool
}

// NewOnlineLobbyModel creates a new online lobby model.
func NewOnlineLobbyModel(
	sessionID multiplayer.SessionID,
	coordinator *multiplayer.Coordinator,
	width, height int,
) OnlineLobbyModel {
	return OnlineLobbyModel{
		state:       OnlineStateChooseMode,
		width:       width,
		height:      height,
		sessionID:   sessionID,
		coordinator: coordinator,
	}
}

// Init initializes the lobby model.
func (m OnlineLobbyModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m OnlineLobbyModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case multiplayer.LobbyCreatedEvent:
		m.lobbyCode = msg.Code
		m.state = OnlineStateHostWaiting
	case multiplayer.LobbyJoinedEvent:
		m.side = msg.Side
		m.opponentID = msg.OpponentID
	case multiplayer.LobbyErrorEvent:
		m.joinError = msg.Message
		switch m.state {
		case OnlineStateJoinWaiting:
			m.state = OnlineStateJoinEnterCode
		case OnlineStateHostWaiting:
			m.state = OnlineStateChooseMode
			m.lobbyCode = ""
		}
	case multiplayer.LobbyPlayerLeftEvent:
		// Host keeps waiting for another joiner
	case multiplayer.MatchStartedEvent:
		m.matchID = msg.MatchID
		m.side = msg.Side
		m.pointsToWin = msg.PointsToWin
		m.state = OnlineStateInMatch
	case multiplayer.MatchEndedEvent:
		m.joinError = msg.Reason.String()
		m.state = OnlineStateMatchEnded
	}
	return m, nil
}

func (m OnlineLobbyModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		m.quitting = true
		return m, tea.Quit
	}

	switch m.state {
	case OnlineStateChooseMode, OnlineStateMatchEnded:
		return m.handleChooseModeKey(msg)
	case OnlineStateHostWaiting:
		return m.handleHostWaitingKey(msg)
	case OnlineStateJoinEnterCode:
		return m.handleJoinCodeKey(msg)
	case OnlineStateJoinWaiting:
		return m.handleJoinWaitingKey(msg)
	}

	return m, nil
}

func (m OnlineLobbyModel) handleChooseModeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "h", "H", "1":
		m.joinError = ""
		m.coordinator.Send(multiplayer.CreateLobbyMsg{SessionID: m.sessionID})
	case "j", "J", "2":
		m.state = OnlineStateJoinEnterCode
		m.joinCodeInput = ""
		m.joinError = ""
	case "esc", "b":
		m.backToMenu = true
	case "q":
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

func (m OnlineLobbyModel) handleHostWaitingKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "b":
		m.coordinator.Send(multiplayer.CancelLobbyMsg{
			SessionID: m.sessionID,
			Code:      m.lobbyCode,
		})
		m.backToMenu = true
	case "q":
		m.coordinator.Send(multiplayer.CancelLobbyMsg{
			SessionID: m.sessionID,
			Code:      m.lobbyCode,
		})
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

func (m OnlineLobbyModel) handleJoinCodeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	switch key {
	case "esc":
		m.backToMenu = true
	case "enter":
		if m.joinCodeInput != "" {
			m.state = OnlineStateJoinWaiting
			m.joinError = ""
			m.coordinator.Send(multiplayer.JoinLobbyMsg{
				SessionID: m.sessionID,
				Code:      m.joinCodeInput,
			})
		}
	case "backspace":
		if m.joinCodeInput != "" {
			m.joinCodeInput = m.joinCodeInput[:len(m.joinCodeInput)-1]
		}
	default:
		if len(key) == 1 && len(m.joinCodeInput) < joinCodeLength {
			c := strings.ToUpper(key)
			if (c[0] >= 'A' && c[0] <= 'Z') || (c[0] >= '0' && c[0] <= '9') {
				m.joinCodeInput += c
			}
		}
	}
	return m, nil
}

func (m OnlineLobbyModel) handleJoinWaitingKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "b":
		m.coordinator.Send(multiplayer.LeaveLobbyMsg{
			SessionID: m.sessionID,
			Code:      m.joinCodeInput,
		})
		m.state = OnlineStateJoinEnterCode
	}
	return m, nil
}

// View renders the current state.
func (m OnlineLobbyModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.state {
	case OnlineStateHostWaiting:
		return m.viewHostWaiting()
	case OnlineStateJoinEnterCode:
		return m.viewJoinEnterCode()
	case OnlineStateJoinWaiting:
		return m.viewJoinWaiting()
	case OnlineStateInMatch:
		return m.viewMatchStarting()
	default:
		return m.viewChooseMode()
	}
}

func (m OnlineLobbyModel) viewChooseMode() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render("ONLINE BATTLE"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Race a friend to the same color.", m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("[H] Host a game", m.width))
	b.WriteString("\n")
	b.WriteString(centerText("[J] Join a game", m.width))
	b.WriteString("\n")

	if m.joinError != "" {
		b.WriteString("\n")
		b.WriteString(centerText(missStyle.Render(m.joinError), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(dimStyle.Render("Esc: Back  |  Q: Quit"), m.width))

	return b.String()
}

func (m OnlineLobbyModel) viewHostWaiting() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render("HOSTING GAME"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Share this code with your opponent:", m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(promptStyle.Render(m.lobbyCode), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Waiting for player to join...", m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(dimStyle.Render("Esc: Cancel  |  Q: Quit"), m.width))

	return b.String()
}

func (m OnlineLobbyModel) viewJoinEnterCode() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render("JOIN GAME"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Enter the game code:", m.width))
	b.WriteString("\n\n")

	codeDisplay := m.joinCodeInput
	if len(codeDisplay) < joinCodeLength {
		codeDisplay += "_"
		codeDisplay += strings.Repeat(" ", joinCodeLength-1-len(m.joinCodeInput))
	}
	b.WriteString(centerText(fmt.Sprintf("[ %s ]", codeDisplay), m.width))
	b.WriteString("\n")

	if m.joinError != "" {
		b.WriteString("\n")
		b.WriteString(centerText(missStyle.Render("Error: "+m.joinError), m.width))
	}

	b.WriteString("\n\n")
	b.WriteString(centerText(dimStyle.Render("Enter: Connect  |  Esc: Back"), m.width))

	return b.String()
}

func (m OnlineLobbyModel) viewJoinWaiting() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render("CONNECTING"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(fmt.Sprintf("Joining game: %s", m.joinCodeInput), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Please wait...", m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(dimStyle.Render("Esc: Cancel"), m.width))

	return b.String()
}

func (m OnlineLobbyModel) viewMatchStarting() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render("MATCH STARTING"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(fmt.Sprintf("You are: %s", m.side), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Get ready!", m.width))

	return b.String()
}

// State returns the current online state.
func (m OnlineLobbyModel) State() OnlineState {
	return m.state
}

// BackToMenu returns true if user wants to go back to menu.
func (m OnlineLobbyModel) BackToMenu() bool {
	return m.backToMenu
}

// IsQuitting returns true if user wants to quit entirely.
func (m OnlineLobbyModel) IsQuitting() bool {
	return m.quitting
}

// MatchID returns the match ID if a match was started.
func (m OnlineLobbyModel) MatchID() multiplayer.MatchID {
	return m.matchID
}

// Side returns which side (P1/P2) this session plays.
func (m OnlineLobbyModel) Side() core.PlayerID {
	return m.side
}

// LobbyCode returns the lobby code.
func (m OnlineLobbyModel) LobbyCode() string {
	return m.lobbyCode
}

// JoinCode returns the code typed so far.
func (m OnlineLobbyModel) JoinCode() string {
	return m.joinCodeInput
}

// ErrorText returns the last lobby error.
func (m OnlineLobbyModel) ErrorText() string {
	return m.joinError
}

// PointsToWin returns the match length announced at start.
func (m OnlineLobbyModel) PointsToWin() int {
	return m.pointsToWin
}

// OnlineBattleModel plays one online match. Guesses go to the coordinator
// and the screen follows the snapshots it broadcasts.
type OnlineBattleModel struct {
	coordinator *multiplayer.Coordinator
	sessionID   multiplayer.SessionID
	matchID     multiplayer.MatchID
	side        core.PlayerID
	pointsToWin int
	keyMapper   *KeyMapper

	sliders game.Sliders
	channel game.Channel
	snap    game.BattleSnapshot
	seq     uint64
	synced  bool // At least one snapshot applied
	ended   *multiplayer.MatchEndedEvent
	status  status

	width      int
	height     int
	quitting   bool
	backToMenu bool
}

// NewOnlineBattleModel creates the match screen for one side.
func NewOnlineBattleModel(
	sessionID multiplayer.SessionID,
	coordinator *multiplayer.Coordinator,
	matchID multiplayer.MatchID,
	side core.PlayerID,
	pointsToWin int,
	midpoint int,
	width, height int,
) OnlineBattleModel {
	return OnlineBattleModel{
		coordinator: coordinator,
		sessionID:   sessionID,
		matchID:     matchID,
		side:        side,
		pointsToWin: pointsToWin,
		keyMapper:   NewKeyMapper(),
		sliders:     game.NewSliders(midpoint),
		width:       width,
		height:      height,
	}
}

// Init initializes the match model.
func (m OnlineBattleModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m OnlineBattleModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case clearStatusMsg:
		m.status.clear(msg)
	case multiplayer.SnapshotEvent:
		m.applySnapshot(msg)
	case multiplayer.GuessRejectedEvent:
		if msg.MatchID == m.matchID {
			return m, m.status.set(msg.Reason)
		}
	case multiplayer.MatchEndedEvent:
		if msg.MatchID == m.matchID {
			ended := msg
			m.ended = &ended
		}
	}
	return m, nil
}

// applySnapshot keeps the newest snapshot of this match. A new round puts
// the local sliders back to where the engine starts them.
func (m *OnlineBattleModel) applySnapshot(evt multiplayer.SnapshotEvent) {
	if evt.MatchID != m.matchID || (m.synced && evt.Seq <= m.seq) {
		return
	}
	newRound := !m.synced || evt.Snapshot.Round != m.snap.Round
	m.snap = evt.Snapshot
	m.seq = evt.Seq
	m.synced = true
	if newRound {
		m.sliders = m.snap.Player(m.side).Sliders
		m.channel = game.Red
	}
}

func (m OnlineBattleModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action, quit := m.keyMapper.MapKey(msg)
	if quit {
		m.leave()
		m.quitting = true
		return m, tea.Quit
	}

	switch action {
	case core.ActionPrevChan:
		m.channel = m.channel.Prev()
	case core.ActionNextChan:
		m.channel = m.channel.Next()
	case core.ActionDecrease:
		m.sliders.Adjust(m.channel, -1)
	case core.ActionIncrease:
		m.sliders.Adjust(m.channel, 1)
	case core.ActionSubmit:
		if m.ended != nil || !m.synced {
			return m, nil
		}
		if !m.snap.State().InProgress() {
			return m, m.status.set("Round decided, next color coming...")
		}
		m.coordinator.Send(multiplayer.SubmitGuessMsg{
			SessionID: m.sessionID,
			MatchID:   m.matchID,
			Color:     m.sliders.Color(),
		})
	case core.ActionBack:
		m.leave()
		m.backToMenu = true
	}
	return m, nil
}

// leave tells the coordinator this side gave up, unless the match is over.
func (m *OnlineBattleModel) leave() {
	if m.ended != nil {
		return
	}
	m.coordinator.Send(multiplayer.LeaveMatchMsg{
		SessionID: m.sessionID,
		MatchID:   m.matchID,
	})
}

// View renders the match.
func (m OnlineBattleModel) View() string {
	if m.quitting {
		return ""
	}
	if !m.synced {
		return "\n" + centerText("Waiting for the first color...", m.width)
	}

	snap := m.snap
	you := snap.Player(m.side)
	you.Sliders = m.sliders
	opponent := snap.Player(m.side.Other())
	n := len(opponent.Guesses)
	if n > 0 {
		opponent.Sliders = game.Sliders(opponent.Guesses[n-1].Color.Levels())
	}
	if m.side == core.Player1 {
		snap.Player1, snap.Player2 = you, opponent
	} else {
		snap.Player1, snap.Player2 = opponent, you
	}

	var channels [2]game.Channel
	var focus, hidden [2]bool
	channels[m.side-1] = m.channel
	focus[m.side-1] = m.ended == nil
	hidden[m.side.Other()-1] = n == 0

	title := "ONLINE BATTLE"
	if m.pointsToWin > 0 {
		title = fmt.Sprintf("ONLINE BATTLE - first to %d", m.pointsToWin)
	}

	var b strings.Builder
	b.WriteString(renderBattle(snap, battleViewOptions{
		width:    m.width,
		title:    title,
		channels: channels,
		focus:    focus,
		hidden:   hidden,
		you:      m.side,
	}))

	if m.ended != nil {
		b.WriteString("\n")
		result := m.ended.Reason.String()
		switch m.ended.Winner {
		case m.side:
			result += hitStyle.Render("  You win!")
		case m.side.Other():
			result += missStyle.Render("  You lose")
		}
		b.WriteString(centerText(fmt.Sprintf("%s  (%d : %d)", result, m.ended.Score1, m.ended.Score2), m.width))
		b.WriteString("\n")
	} else if winner, decided := snap.State().Winner(); decided {
		b.WriteString("\n")
		if winner == m.side {
			b.WriteString(centerText(hitStyle.Render("You got it first!"), m.width))
		} else {
			b.WriteString(centerText(missStyle.Render("Your opponent got it first"), m.width))
		}
		b.WriteString("\n")
	}

	if m.status.text != "" {
		b.WriteString("\n")
		b.WriteString(centerText(m.status.text, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	controls := "W/S: Channel  |  A/D: Adjust  |  Space: Guess  |  Esc: Leave  |  Q: Quit"
	if m.ended != nil {
		controls = "Esc: Back to menu  |  Q: Quit"
	}
	b.WriteString(centerText(dimStyle.Render(controls), m.width))
	b.WriteString("\n")
	return b.String()
}

// Snapshot returns the latest snapshot applied.
func (m OnlineBattleModel) Snapshot() (game.BattleSnapshot, bool) {
	return m.snap, m.synced
}

// Sliders returns the local slider positions.
func (m OnlineBattleModel) Sliders() game.Sliders {
	return m.sliders
}

// Ended returns the match result once the match is over.
func (m OnlineBattleModel) Ended() (multiplayer.MatchEndedEvent, bool) {
	if m.ended == nil {
		return multiplayer.MatchEndedEvent{}, false
	}
	return *m.ended, true
}

// StatusText returns the transient status line.
func (m OnlineBattleModel) StatusText() string {
	return m.status.text
}

// IsQuitting returns true if user wants to quit entirely.
func (m OnlineBattleModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user wants to go back to menu.
func (m OnlineBattleModel) BackToMenu() bool {
	return m.backToMenu
}
