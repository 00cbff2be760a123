package tui

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/pigmento/internal/core"
	"github.com/vovakirdan/pigmento/internal/game"
	"github.com/vovakirdan/pigmento/internal/multiplayer"
	"github.com/vovakirdan/pigmento/internal/storage"
)

// BattleModel is two players sharing one keyboard.
type BattleModel struct {
	battle    *game.Battle
	store     *storage.Store
	settings  Settings
	keyMapper *KeyMapper
	feedback  *TerminalFeedback

	channels [2]game.Channel
	recorded bool // Current round already written to the store
	status   status

	width      int
	height     int
	standalone bool
	quitting   bool
	backToMenu bool
}

// NewBattleModel creates a local battle screen around battle.
func NewBattleModel(battle *game.Battle, store *storage.Store, settings Settings) BattleModel {
	fb := NewTerminalFeedback(settings.Bell)
	battle.SetFeedback(fb)

	return BattleModel{
		battle:    battle,
		store:     store,
		settings:  settings,
		keyMapper: NewKeyMapper(),
		feedback:  fb,
		width:     settings.Runtime.ScreenW,
		height:    settings.Runtime.ScreenH,
	}
}

// Init initializes the battle model.
func (m BattleModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m BattleModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case clearStatusMsg:
		m.status.clear(msg)
		return m, nil
	}
	return m, nil
}

func (m BattleModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	input, quit := m.keyMapper.MapBattleKey(msg)
	if quit {
		m.quitting = true
		return m, tea.Quit
	}

	switch input.Action {
	case core.ActionNewGame:
		m.recorded = false
		m.channels = [2]game.Channel{}
		if m.battle.Next() {
			return m, m.status.set(fmt.Sprintf("Round %d", m.battle.Round()))
		}
		return m, m.status.set("Round abandoned, scores cleared")
	case core.ActionHardReset:
		m.recorded = false
		m.channels = [2]game.Channel{}
		m.battle.HardReset()
		return m, m.status.set("Scores cleared")
	case core.ActionBack:
		m.backToMenu = true
		if m.standalone {
			return m, tea.Quit
		}
		return m, nil
	}

	if !input.Player.Valid() {
		return m, nil
	}
	idx := input.Player - 1

	switch input.Action {
	case core.ActionPrevChan:
		m.channels[idx] = m.channels[idx].Prev()
	case core.ActionNextChan:
		m.channels[idx] = m.channels[idx].Next()
	case core.ActionDecrease:
		//nolint:errcheck // Player is validated above
		m.battle.AdjustSlider(input.Player, m.channels[idx], -1)
	case core.ActionIncrease:
		//nolint:errcheck // Player is validated above
		m.battle.AdjustSlider(input.Player, m.channels[idx], 1)
	case core.ActionSubmit:
		return m.submit(input.Player)
	}
	return m, nil
}

func (m BattleModel) submit(id core.PlayerID) (tea.Model, tea.Cmd) {
	g, err := m.battle.SubmitSliders(id)
	switch {
	case errors.Is(err, game.ErrInvalidTransition):
		return m, m.status.set("Round is over. R: next round  |  X: reset scores")
	case err != nil:
		return m, m.status.set(err.Error())
	}
	if !g.Exact() {
		return m, nil
	}

	m.record()
	return m, m.status.set(fmt.Sprintf("%s wins round %d!", id, m.battle.Round()))
}

// record writes the decided round once.
func (m *BattleModel) record() {
	if m.recorded || m.store == nil {
		return
	}
	snap := m.battle.Snapshot()
	if snap.Winner == core.PlayerNone {
		return
	}
	//nolint:errcheck // Best-effort save
	m.store.SaveBattleRound(storage.BattleRoundFromSnapshot(multiplayer.MatchModeLocal.String(), snap))
	m.recorded = true
}

// View renders the battle screen.
func (m BattleModel) View() string {
	if m.quitting {
		return ""
	}
	snap := m.battle.Snapshot()

	var b strings.Builder
	b.WriteString(renderBattle(snap, battleViewOptions{
		width:    m.width,
		title:    "COLOR BATTLE",
		channels: m.channels,
		focus:    [2]bool{true, true},
	}))

	if m.status.text != "" {
		b.WriteString("\n")
		b.WriteString(centerText(m.status.text, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(dimStyle.Render("P1: WASD + Space  |  P2: Arrows + Enter"), m.width))
	b.WriteString("\n")
	b.WriteString(centerText(dimStyle.Render("R: Next round  |  X: Reset scores  |  Esc: Back  |  Q: Quit"), m.width))
	b.WriteString("\n")
	return b.String()
}

// battleViewOptions controls how a snapshot is drawn.
type battleViewOptions struct {
	width    int
	title    string
	channels [2]game.Channel
	focus    [2]bool // Which players' slider cursors are shown
	hidden   [2]bool // Which players' mixes are not known yet
	you      core.PlayerID
}

// renderBattle draws the shared target above both players' panels.
func renderBattle(snap game.BattleSnapshot, opts battleViewOptions) string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render(opts.title), opts.width))
	b.WriteString("\n")
	score := fmt.Sprintf("Round %d  |  P1 %d : %d P2", snap.Round, snap.Player1.Score, snap.Player2.Score)
	b.WriteString(centerText(score, opts.width))
	b.WriteString("\n\n")

	target := lipgloss.JoinVertical(lipgloss.Center,
		swatch(snap.Target, "", swatchWidth, swatchHeight),
		dimStyle.Render("Target"),
	)
	b.WriteString(centerBlock(target, opts.width))
	b.WriteString("\n\n")

	state := snap.State()
	p1 := playerPanel(snap.Player1, state, opts.channels[0], opts.focus[0], opts.you == core.Player1, opts.hidden[0])
	p2 := playerPanel(snap.Player2, state, opts.channels[1], opts.focus[1], opts.you == core.Player2, opts.hidden[1])
	b.WriteString(centerBlock(lipgloss.JoinHorizontal(lipgloss.Top, p1, "  ", p2), opts.width))
	b.WriteString("\n")

	return b.String()
}

func playerPanel(p game.Player, state game.RoundState, ch game.Channel, focused, you, hidden bool) string {
	var b strings.Builder

	name := p.ID.String()
	if you {
		name += " (you)"
	}
	b.WriteString(titleStyle.Render(fmt.Sprintf("%s  score %d", name, p.Score)))
	b.WriteString("\n\n")
	if hidden {
		b.WriteString(hiddenSwatch("?", swatchWidth, 3))
		b.WriteString("\n\n")
	} else {
		b.WriteString(swatch(p.Sliders.Color(), "#"+p.Sliders.Color().Hex(), swatchWidth, 3))
		b.WriteString("\n\n")
		b.WriteString(renderSliders(p.Sliders, ch, focused && state.InProgress()))
		b.WriteString("\n\n")
	}

	last := dimStyle.Render("no guesses")
	if n := len(p.Guesses); n > 0 {
		last = fmt.Sprintf("%s, last %s", guessesText(n), percentText(p.Guesses[n-1]))
	}
	b.WriteString(last)
	b.WriteString("\n\n")

	label := game.ButtonLabel(state, p.ID)
	switch label {
	case "Victory":
		label = hitStyle.Render("[ " + label + " ]")
	case "Defeat":
		label = missStyle.Render("[ " + label + " ]")
	default:
		label = promptStyle.Render(label)
	}
	b.WriteString(label)

	return panelStyle.Width(34).Render(b.String())
}

// Battle returns the underlying engine.
func (m BattleModel) Battle() *game.Battle {
	return m.battle
}

// StatusText returns the transient status line.
func (m BattleModel) StatusText() string {
	return m.status.text
}

// IsQuitting returns true if user requested to quit entirely.
func (m BattleModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m BattleModel) BackToMenu() bool {
	return m.backToMenu
}

// RunBattle starts a local two-player battle.
func RunBattle(store *storage.Store, settings Settings) error {
	view, err := newGameView("battle", store, settings)
	if err != nil {
		return err
	}
	model, ok := view.(BattleModel)
	if !ok {
		return fmt.Errorf("tui: unexpected view %T for battle", view)
	}
	model.standalone = true

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err = p.Run()
	return err
}
