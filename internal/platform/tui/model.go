package tui

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/pigmento/internal/color"
	"github.com/vovakirdan/pigmento/internal/config"
	"github.com/vovakirdan/pigmento/internal/core"
	"github.com/vovakirdan/pigmento/internal/game"
	"github.com/vovakirdan/pigmento/internal/registry"
	"github.com/vovakirdan/pigmento/internal/storage"
)

// Settings is what every screen needs to know about the configuration.
type Settings struct {
	Runtime       core.RuntimeConfig
	HistoryLimit  int
	ReviewEnabled bool
	Review        game.ReviewPolicy
	PointsToWin   int
	Bell          io.Writer // nil keeps the terminal silent
}

// SettingsFromConfig derives screen settings from a loaded config.
func SettingsFromConfig(cfg config.Config) Settings {
	rt := core.DefaultConfig()
	rt.Seed = cfg.Game.Seed
	rt.Midpoint = cfg.Game.Midpoint
	return Settings{
		Runtime:       rt,
		HistoryLimit:  cfg.Game.HistoryLimit,
		ReviewEnabled: cfg.Review.Enabled,
		Review: game.ReviewPolicy{
			Threshold: cfg.Review.Threshold,
			Cooldown:  cfg.Review.Cooldown(),
		},
		PointsToWin: cfg.Battle.PointsToWin,
	}
}

// OfferMsg hands the solo screen a target from a deep link.
type OfferMsg struct {
	Color color.Color
}

// gameView is a screen wrapping one registered mode.
type gameView interface {
	tea.Model
	IsQuitting() bool
	BackToMenu() bool
}

// newGameView creates the registered mode id and wraps it in its view.
func newGameView(id string, store *storage.Store, settings Settings) (gameView, error) {
	g, err := registry.Create(id, settings.Runtime)
	if err != nil {
		return nil, err
	}
	switch g := g.(type) {
	case *game.Session:
		return NewSoloModel(g, store, settings), nil
	case *game.Battle:
		return NewBattleModel(g, store, settings), nil
	}
	return nil, fmt.Errorf("tui: no view for mode %q", id)
}

// SoloModel is the Bubble Tea model for a solo game.
type SoloModel struct {
	session   *game.Session
	store     *storage.Store
	settings  Settings
	keyMapper *KeyMapper
	feedback  *TerminalFeedback
	review    *reviewBanner
	now       func() time.Time

	channel  game.Channel
	source   string
	recorded bool // Current game already written to the store
	share    string
	status   status
	initCmd  tea.Cmd

	width      int
	height     int
	standalone bool // Back quits the program instead of returning to a menu
	quitting   bool
	backToMenu bool
}

// NewSoloModel creates a solo screen around session.
func NewSoloModel(session *game.Session, store *storage.Store, settings Settings) SoloModel {
	if settings.HistoryLimit < 1 {
		settings.HistoryLimit = 8
	}
	fb := NewTerminalFeedback(settings.Bell)
	session.SetFeedback(fb)

	return SoloModel{
		session:   session,
		store:     store,
		settings:  settings,
		keyMapper: NewKeyMapper(),
		feedback:  fb,
		review:    &reviewBanner{},
		now:       time.Now,
		channel:   game.Red,
		source:    storage.SourceRandom,
		width:     settings.Runtime.ScreenW,
		height:    settings.Runtime.ScreenH,
	}
}

// WithOffer applies a deep-link target before the program starts.
func (m SoloModel) WithOffer(c color.Color) SoloModel {
	next, cmd := m.handleOffer(c)
	next.initCmd = cmd
	return next
}

// Init initializes the solo model.
func (m SoloModel) Init() tea.Cmd {
	return m.initCmd
}

// Update handles messages and updates the model state.
func (m SoloModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case OfferMsg:
		return m.handleOffer(msg.Color)

	case clearStatusMsg:
		m.status.clear(msg)
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m SoloModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action, quit := m.keyMapper.MapKey(msg)
	if quit {
		m.record()
		m.quitting = true
		return m, tea.Quit
	}

	if _, pending := m.session.Pending(); pending {
		switch action {
		case core.ActionConfirm:
			m.record()
			m.session.ConfirmPending()
			m.startGame(storage.SourceLink)
			return m, m.status.set("New color from link")
		case core.ActionDecline, core.ActionBack:
			m.session.DeclinePending()
			return m, m.status.set("Kept your current game")
		}
		return m, nil
	}

	switch action {
	case core.ActionPrevChan:
		m.channel = m.channel.Prev()
	case core.ActionNextChan:
		m.channel = m.channel.Next()
	case core.ActionDecrease:
		m.session.AdjustSlider(m.channel, -1)
	case core.ActionIncrease:
		m.session.AdjustSlider(m.channel, 1)
	case core.ActionSubmit:
		return m.submit()
	case core.ActionNewGame:
		m.record()
		m.session.Reset()
		m.startGame(storage.SourceRandom)
		return m, m.status.set("New color")
	case core.ActionShare:
		if !m.session.Won() {
			return m, m.status.set("Match the color first, then share it")
		}
		m.share = m.session.Share().Message()
	case core.ActionBack:
		m.record()
		m.backToMenu = true
		if m.standalone {
			return m, tea.Quit
		}
	}

	return m, nil
}

func (m SoloModel) submit() (tea.Model, tea.Cmd) {
	g, err := m.session.SubmitSliders()
	switch {
	case errors.Is(err, game.ErrInvalidTransition):
		return m, m.status.set("Already solved! Press R for a new color")
	case err != nil:
		return m, m.status.set(err.Error())
	}
	if !g.Exact() {
		return m, nil
	}

	m.record()
	m.maybeRequestReview()
	return m, m.status.set(fmt.Sprintf("You got it in %s!", guessesText(m.session.GuessCount())))
}

func (m SoloModel) handleOffer(c color.Color) (SoloModel, tea.Cmd) {
	if m.session.Won() {
		m.session.Offer(c)
		m.session.ConfirmPending()
		m.startGame(storage.SourceLink)
		return m, m.status.set("Guess the color from your link")
	}
	switch m.session.Offer(c) {
	case game.OfferAdopted:
		m.startGame(storage.SourceLink)
		return m, m.status.set("Guess the color from your link")
	default:
		return m, nil
	}
}

func (m *SoloModel) startGame(source string) {
	m.source = source
	m.recorded = false
	m.share = ""
	m.channel = game.Red
	m.review.shown = false
}

// record writes the current game once. Games without guesses are skipped.
func (m *SoloModel) record() {
	if m.recorded || m.store == nil || m.session.GuessCount() == 0 {
		return
	}
	//nolint:errcheck // Best-effort save, game continues regardless
	m.store.SaveSoloGame(storage.SoloGameFromSession(m.session, m.source))
	m.recorded = true
}

func (m *SoloModel) maybeRequestReview() {
	if !m.settings.ReviewEnabled || m.store == nil {
		return
	}
	last, err := m.store.LastReviewRequest()
	if err != nil {
		return
	}
	now := m.now()
	if !m.session.ReviewDue(m.settings.Review, last, now) {
		return
	}
	if err := m.store.SetLastReviewRequest(now); err != nil {
		return
	}
	var requester game.ReviewRequester = m.review
	requester.RequestReview()
}

// View renders the solo screen.
func (m SoloModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render("P I G M E N T O"), m.width))
	b.WriteString("\n\n")

	current := m.session.Sliders().Color()
	guessLabel := "#" + current.Hex()
	if kind, _ := m.feedback.Last(); kind == FeedbackSuccess && m.session.Won() {
		guessLabel = "MATCH!"
	}
	target := lipgloss.JoinVertical(lipgloss.Center,
		swatch(m.session.Target(), "", swatchWidth, swatchHeight),
		dimStyle.Render("Target"),
	)
	mix := lipgloss.JoinVertical(lipgloss.Center,
		swatch(current, guessLabel, swatchWidth, swatchHeight),
		dimStyle.Render("Your mix"),
	)
	b.WriteString(centerBlock(lipgloss.JoinHorizontal(lipgloss.Top, target, "    ", mix), m.width))
	b.WriteString("\n\n")

	b.WriteString(centerBlock(renderSliders(m.session.Sliders(), m.channel, !m.session.Won()), m.width))
	b.WriteString("\n\n")

	summary := fmt.Sprintf("Guesses: %d", m.session.GuessCount())
	if last, ok := m.session.Last(); ok {
		summary += "  |  Last: " + percentText(last)
	}
	b.WriteString(centerText(summary, m.width))
	b.WriteString("\n\n")

	b.WriteString(centerBlock(panelStyle.Render(renderHistory(m.session.Guesses(), m.settings.HistoryLimit)), m.width))
	b.WriteString("\n")

	if pending, ok := m.session.Pending(); ok {
		b.WriteString("\n")
		prompt := fmt.Sprintf("New color #%s: you are about to lose your current progress. Do you want to continue? [Y/N]", pending.Canonical())
		b.WriteString(centerBlock(promptStyle.Render(prompt), m.width))
		b.WriteString("\n")
	}
	if m.share != "" {
		b.WriteString("\n")
		b.WriteString(centerBlock(panelStyle.Render(m.share), m.width))
		b.WriteString("\n")
	}
	if m.review.shown {
		b.WriteString("\n")
		b.WriteString(centerText(hitStyle.Render(reviewText), m.width))
		b.WriteString("\n")
	}
	if m.status.text != "" {
		b.WriteString("\n")
		b.WriteString(centerText(m.status.text, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	controls := "W/S: Channel  |  A/D: Adjust  |  Space: Guess  |  R: New  |  C: Share  |  Esc: Back  |  Q: Quit"
	b.WriteString(centerText(dimStyle.Render(controls), m.width))
	b.WriteString("\n")

	return b.String()
}

// Session returns the underlying engine.
func (m SoloModel) Session() *game.Session {
	return m.session
}

// Channel returns the selected slider.
func (m SoloModel) Channel() game.Channel {
	return m.channel
}

// ShareText returns the prepared share message, if any.
func (m SoloModel) ShareText() string {
	return m.share
}

// StatusText returns the transient status line.
func (m SoloModel) StatusText() string {
	return m.status.text
}

// ReviewShown reports whether the review banner is visible.
func (m SoloModel) ReviewShown() bool {
	return m.review.shown
}

// IsQuitting returns true if user requested to quit entirely.
func (m SoloModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m SoloModel) BackToMenu() bool {
	return m.backToMenu
}

// RunSolo starts a solo game. A non-nil offer starts on that color.
func RunSolo(store *storage.Store, settings Settings, offer *color.Color) error {
	view, err := newGameView("solo", store, settings)
	if err != nil {
		return err
	}
	model, ok := view.(SoloModel)
	if !ok {
		return fmt.Errorf("tui: unexpected view %T for solo", view)
	}
	model.standalone = true
	if offer != nil {
		model = model.WithOffer(*offer)
	}

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err = p.Run()
	return err
}
