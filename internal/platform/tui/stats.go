package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/pigmento/internal/storage"
)

const maxStatsRows = 100

// statsTab selects which record set the stats screen shows.
type statsTab int

const (
	statsTabSolo statsTab = iota
	statsTabBattle
	statsTabOnline
	statsTabCount
)

func (t statsTab) String() string {
	switch t {
	case statsTabSolo:
		return "Solo"
	case statsTabBattle:
		return "Battle"
	case statsTabOnline:
		return "Online"
	default:
		return "?"
	}
}

// StatsKeyMap defines the key bindings for the stats screen.
type StatsKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	NextTab key.Binding
	PrevTab key.Binding
	Back    key.Binding
	Quit    key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k StatsKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextTab, k.PrevTab, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k StatsKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextTab, k.PrevTab},
		{k.Back, k.Quit},
	}
}

// DefaultStatsKeyMap returns default key bindings.
func DefaultStatsKeyMap() StatsKeyMap {
	return StatsKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		NextTab: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next tab"),
		),
		PrevTab: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "prev tab"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// StatsModel is the Bubble Tea model for the stats screen.
type StatsModel struct {
	store      *storage.Store
	tab        statsTab
	summary    string
	rows       []table.Row
	table      table.Model
	help       help.Model
	keys       StatsKeyMap
	width      int
	height     int
	quitting   bool
	goingBack  bool
	standalone bool // Back quits the program instead of returning to a menu
}

// NewStatsModel creates a new stats model.
func NewStatsModel(store *storage.Store, width, height int) StatsModel {
	h := help.New()
	h.ShowAll = false

	m := StatsModel{
		store:  store,
		keys:   DefaultStatsKeyMap(),
		help:   h,
		width:  width,
		height: height,
	}
	m.load()
	return m
}

// columns returns the table layout for the current tab.
func (m *StatsModel) columns() []table.Column {
	switch m.tab {
	case statsTabBattle:
		return []table.Column{
			{Title: "Mode", Width: 11},
			{Title: "Round", Width: 6},
			{Title: "Target", Width: 8},
			{Title: "Winner", Width: 7},
			{Title: "Score", Width: 7},
			{Title: "Date", Width: 14},
		}
	case statsTabOnline:
		return []table.Column{
			{Title: "Score", Width: 7},
			{Title: "Rounds", Width: 7},
			{Title: "Result", Width: 22},
			{Title: "Time", Width: 7},
			{Title: "Date", Width: 14},
		}
	default:
		return []table.Column{
			{Title: "Target", Width: 8},
			{Title: "Guesses", Width: 8},
			{Title: "Best", Width: 6},
			{Title: "Result", Width: 9},
			{Title: "From", Width: 7},
			{Title: "Date", Width: 14},
		}
	}
}

// createTable creates a new table with columns for the current tab.
func (m *StatsModel) createTable() table.Model {
	height := m.height - 10 // Header, tabs, summary and help
	if height < 3 {
		height = 3
	}
	t := table.New(
		table.WithColumns(m.columns()),
		table.WithRows(m.rows),
		table.WithFocused(true),
		table.WithHeight(height),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// load reads the current tab from the store and rebuilds the table.
func (m *StatsModel) load() {
	m.rows = nil
	m.summary = ""
	if m.store != nil {
		var err error
		switch m.tab {
		case statsTabSolo:
			err = m.loadSolo()
		case statsTabBattle:
			err = m.loadBattle()
		case statsTabOnline:
			err = m.loadOnline()
		}
		if err != nil {
			m.rows = nil
			m.summary = fmt.Sprintf("Could not load stats: %v", err)
		}
	}
	m.table = m.createTable()
	m.table.GotoTop()
}

const dateFormat = "Jan 02 15:04"

func (m *StatsModel) loadSolo() error {
	stats, err := m.store.SoloStats()
	if err != nil {
		return err
	}
	m.summary = fmt.Sprintf("Played %d  |  Won %d (%.0f%%)  |  Avg guesses %.1f  |  Best %d",
		stats.Played, stats.Won, stats.WinRate*100, stats.AvgGuesses, stats.BestGuesses)

	games, err := m.store.RecentSoloGames(maxStatsRows)
	if err != nil {
		return err
	}
	for _, g := range games {
		result := "gave up"
		if g.Won {
			result = "solved"
		}
		m.rows = append(m.rows, table.Row{
			"#" + g.Target,
			fmt.Sprintf("%d", g.Guesses),
			fmt.Sprintf("%.0f%%", g.BestSimilarity*100),
			result,
			g.Source,
			g.CreatedAt.Format(dateFormat),
		})
	}
	return nil
}

func (m *StatsModel) loadBattle() error {
	stats, err := m.store.BattleStats("")
	if err != nil {
		return err
	}
	m.summary = fmt.Sprintf("Rounds %d  |  P1 wins %d  |  P2 wins %d  |  Avg guesses %.1f",
		stats.Rounds, stats.Wins1, stats.Wins2, stats.AvgGuesses)

	rounds, err := m.store.RecentBattleRounds("", maxStatsRows)
	if err != nil {
		return err
	}
	for _, r := range rounds {
		m.rows = append(m.rows, table.Row{
			r.Mode,
			fmt.Sprintf("%d", r.Round),
			"#" + r.Target,
			fmt.Sprintf("P%d", r.Winner),
			fmt.Sprintf("%d:%d", r.Score1, r.Score2),
			r.CreatedAt.Format(dateFormat),
		})
	}
	return nil
}

func (m *StatsModel) loadOnline() error {
	stats, err := m.store.OnlineStats()
	if err != nil {
		return err
	}
	m.summary = fmt.Sprintf("Matches %d  |  Completed %d  |  Disconnects %d  |  Rounds %d",
		stats.Matches, stats.Completed, stats.Disconnects, stats.Rounds)

	matches, err := m.store.RecentOnlineMatches(maxStatsRows)
	if err != nil {
		return err
	}
	for _, r := range matches {
		m.rows = append(m.rows, table.Row{
			fmt.Sprintf("%d:%d", r.Score1, r.Score2),
			fmt.Sprintf("%d", r.Rounds),
			r.EndReason,
			fmt.Sprintf("%dm%02ds", r.Duration/60, r.Duration%60),
			r.CreatedAt.Format(dateFormat),
		})
	}
	return nil
}

// Init initializes the stats model.
func (m StatsModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the stats screen.
func (m StatsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			if m.standalone {
				return m, tea.Quit
			}
			return m, nil

		case key.Matches(msg, m.keys.NextTab):
			m.tab = (m.tab + 1) % statsTabCount
			m.load()
			return m, nil

		case key.Matches(msg, m.keys.PrevTab):
			m.tab = (m.tab + statsTabCount - 1) % statsTabCount
			m.load()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the stats screen.
func (m StatsModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render("STATS"), m.width))
	b.WriteString("\n\n")

	activeTabStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Padding(0, 1)
	tabs := make([]string, 0, statsTabCount)
	for t := range statsTabCount {
		if t == m.tab {
			tabs = append(tabs, activeTabStyle.Render(t.String()))
		} else {
			tabs = append(tabs, dimStyle.Render(" "+t.String()+" "))
		}
	}
	b.WriteString(centerText(strings.Join(tabs, " "), m.width))
	b.WriteString("\n\n")

	if m.summary != "" {
		b.WriteString(centerText(m.summary, m.width))
		b.WriteString("\n\n")
	}

	b.WriteString(centerBlock(panelStyle.Render(m.renderTableContent()), m.width))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// renderTableContent renders the table or empty message.
func (m StatsModel) renderTableContent() string {
	if len(m.rows) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4)
		return emptyStyle.Render("Nothing recorded yet.\nPlay a round to fill this page!")
	}
	return m.table.View()
}

// Rows returns the rows of the current tab.
func (m StatsModel) Rows() []table.Row {
	return m.rows
}

// Summary returns the summary line of the current tab.
func (m StatsModel) Summary() string {
	return m.summary
}

// IsGoingBack returns true if user wants to go back to menu.
func (m StatsModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m StatsModel) IsQuitting() bool {
	return m.quitting
}

// RunStats runs the stats screen.
// Returns true if user wants to go back to menu, false if quitting.
func RunStats(store *storage.Store, width, height int) (goBack bool, err error) {
	model := NewStatsModel(store, width, height)
	model.standalone = true

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(StatsModel)
	if !ok {
		return false, nil
	}

	return m.IsGoingBack(), nil
}
