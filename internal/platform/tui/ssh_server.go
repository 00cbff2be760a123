package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"
	"github.com/google/uuid"

	"github.com/vovakirdan/pigmento/internal/color"
	"github.com/vovakirdan/pigmento/internal/config"
	"github.com/vovakirdan/pigmento/internal/deeplink"
	"github.com/vovakirdan/pigmento/internal/multiplayer"
	"github.com/vovakirdan/pigmento/internal/storage"
)

// sessionEventBuffer is how many coordinator events a session can queue.
const sessionEventBuffer = 64

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23235").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.pigmento/host_key.
	HostKeyPath string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration

	// Coordinator configures online lobbies and matches.
	Coordinator multiplayer.CoordinatorConfig

	// Settings are handed to every session.
	Settings Settings
}

// SSHServerConfigFromConfig builds the server config from a loaded config.
func SSHServerConfigFromConfig(cfg config.Config) SSHServerConfig {
	coord := multiplayer.DefaultCoordinatorConfig()
	coord.LobbyTimeout = cfg.SSH.LobbyTimeout()
	coord.PointsToWin = cfg.Battle.PointsToWin
	coord.Midpoint = cfg.Game.Midpoint

	return SSHServerConfig{
		Address:     cfg.SSH.Address,
		HostKeyPath: cfg.SSH.HostKeyPath,
		IdleTimeout: cfg.SSH.IdleTimeout(),
		Coordinator: coord,
		Settings:    SettingsFromConfig(cfg),
	}
}

// SSHServer wraps a Wish SSH server for Pigmento.
type SSHServer struct {
	config      SSHServerConfig
	server      *ssh.Server
	store       *storage.Store
	sessions    *multiplayer.SessionRegistry
	coordinator *multiplayer.Coordinator
	logger      *log.Logger
}

// NewSSHServer creates a new SSH server with the given configuration.
// The store may be nil; the caller keeps ownership of it.
func NewSSHServer(cfg SSHServerConfig, store *storage.Store, logger *log.Logger) (*SSHServer, error) {
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "pigmento-ssh",
		})
	}

	sessions := multiplayer.NewSessionRegistry()
	coordinator := multiplayer.NewCoordinator(cfg.Coordinator, multiplayer.DefaultBattleFactory, sessions)
	coordinator.SetLogger(logger.WithPrefix("coordinator"))
	if store != nil {
		coordinator.SetResultSaver(store)
	}

	srv := &SSHServer{
		config:      cfg,
		store:       store,
		sessions:    sessions,
		coordinator: coordinator,
		logger:      logger,
	}

	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		home, homeErr := os.UserHomeDir()
		if homeErr != nil {
			return nil, fmt.Errorf("cannot get home directory: %w", homeErr)
		}
		hostKeyPath = filepath.Join(home, ".pigmento", "host_key")
	}

	hostKeyDir := filepath.Dir(hostKeyPath)
	if mkdirErr := os.MkdirAll(hostKeyDir, 0o700); mkdirErr != nil {
		return nil, fmt.Errorf("cannot create host key directory: %w", mkdirErr)
	}

	opts := []ssh.Option{
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.loggingMiddleware,
		),
	}

	server, err := wish.NewServer(opts...)
	if err != nil {
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// teaHandler creates a Bubble Tea program for each SSH session.
func (s *SSHServer) teaHandler(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sshSession.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sshSession.User())
		return nil, nil
	}

	settings := s.config.Settings
	settings.Runtime.ScreenW = pty.Window.Width
	settings.Runtime.ScreenH = pty.Window.Height
	settings.Runtime.Seed = time.Now().UnixNano()
	settings.Bell = sshSession

	sessionID := multiplayer.SessionID(fmt.Sprintf("%s-%s", sshSession.User(), uuid.NewString()[:8]))
	session := multiplayer.NewChannelSession(sessionID, sessionEventBuffer)
	s.sessions.Register(session)

	go func() {
		<-sshSession.Context().Done()
		s.coordinator.Send(multiplayer.SessionDisconnectedMsg{SessionID: sessionID})
		s.sessions.Unregister(sessionID)
		session.Close()
		if dropped := session.Dropped(); dropped > 0 {
			s.logger.Debug("session dropped events", "session", sessionID, "dropped", dropped)
		}
	}()

	model := NewSessionModel(s.store, settings, sessionID, s.coordinator, session.Events())

	offer, ok, err := OfferFromCommand(sshSession.Command())
	switch {
	case err != nil:
		s.logger.Warn("ignoring bad link", "user", sshSession.User(), "error", err)
	case ok:
		model = model.WithOffer(offer)
	}

	return model, []tea.ProgramOption{
		tea.WithAltScreen(),
	}
}

// OfferFromCommand reads a target from an SSH command line. Both a full
// link and "guess <payload>" are accepted. ok is false when no target
// was given.
func OfferFromCommand(args []string) (c color.Color, ok bool, err error) {
	switch {
	case len(args) == 0:
		return color.Color{}, false, nil
	case args[0] == "guess":
		if len(args) < 2 {
			return color.Color{}, false, fmt.Errorf("%w: missing payload", deeplink.ErrMalformedLink)
		}
		c, err = deeplink.Decode(args[1])
	default:
		c, err = deeplink.Parse(args[0])
	}
	if err != nil {
		return color.Color{}, false, err
	}
	return c, true, nil
}

// loggingMiddleware logs SSH session events.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		s.logger.Info("session started",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
		next(sshSession)
		s.logger.Info("session ended",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
	}
}

// ListenAndServe starts the SSH server and blocks until shutdown.
func (s *SSHServer) ListenAndServe() error {
	s.logger.Info("starting SSH server", "address", s.config.Address)
	s.coordinator.Start()

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(done)

	errCh := make(chan error, 1)
	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-done:
		s.logger.Info("shutting down...")
	case err := <-errCh:
		s.coordinator.Stop()
		return fmt.Errorf("ssh server: %w", err)
	}
	return s.Shutdown()
}

// Shutdown gracefully stops the server and every running match.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err := s.server.Shutdown(ctx)
	s.coordinator.Stop()
	return err
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}

// sessionScreen is the screen a session is on.
type sessionScreen int

const (
	screenMenu sessionScreen = iota
	screenGame
	screenStats
	screenLobby
	screenOnline
)

// SessionModel manages the full session flow: menu -> mode -> menu.
// It owns the coordinator event pump and routes events to the online screens.
type SessionModel struct {
	store       *storage.Store
	settings    Settings
	sessionID   multiplayer.SessionID
	coordinator *multiplayer.Coordinator
	events      <-chan multiplayer.SessionEvent

	screen   sessionScreen
	menu     MenuModel
	game     gameView
	stats    StatsModel
	lobby    OnlineLobbyModel
	online   OnlineBattleModel
	initCmd  tea.Cmd
	quitting bool
}

// NewSessionModel creates a new session model. Without a coordinator the
// online mode is hidden.
func NewSessionModel(
	store *storage.Store,
	settings Settings,
	sessionID multiplayer.SessionID,
	coordinator *multiplayer.Coordinator,
	events <-chan multiplayer.SessionEvent,
) SessionModel {
	m := SessionModel{
		store:       store,
		settings:    settings,
		sessionID:   sessionID,
		coordinator: coordinator,
		events:      events,
	}
	m.menu = m.newMenu()
	return m
}

func (m SessionModel) newMenu() MenuModel {
	return NewMenuModel(m.settings.Runtime.ScreenW, m.settings.Runtime.ScreenH, m.coordinator != nil)
}

// WithOffer starts the session on a solo game with the given target.
func (m SessionModel) WithOffer(c color.Color) SessionModel {
	view, err := newGameView("solo", m.store, m.settings)
	if err != nil {
		return m
	}
	solo, ok := view.(SoloModel)
	if !ok {
		return m
	}
	solo = solo.WithOffer(c)
	m.game = solo
	m.screen = screenGame
	m.initCmd = solo.Init()
	return m
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return tea.Batch(waitForEvent(m.events), m.initCmd)
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.settings.Runtime.ScreenW = wsm.Width
		m.settings.Runtime.ScreenH = wsm.Height
	}

	if evt, ok := msg.(multiplayer.SessionEvent); ok {
		next, cmd := m.routeEvent(evt)
		return next, tea.Batch(cmd, waitForEvent(m.events))
	}

	switch m.screen {
	case screenGame:
		return m.updateGame(msg)
	case screenStats:
		return m.updateStats(msg)
	case screenLobby:
		return m.updateLobby(msg)
	case screenOnline:
		return m.updateOnline(msg)
	default:
		return m.updateMenu(msg)
	}
}

// routeEvent hands a coordinator event to the online screen that is showing.
// Events arriving on other screens are stale and dropped.
func (m SessionModel) routeEvent(evt multiplayer.SessionEvent) (SessionModel, tea.Cmd) {
	switch m.screen {
	case screenLobby:
		return m.updateLobby(evt)
	case screenOnline:
		return m.updateOnline(evt)
	}
	return m, nil
}

func (m SessionModel) toMenu() (SessionModel, tea.Cmd) {
	m.screen = screenMenu
	m.game = nil
	m.menu = m.newMenu()
	return m, m.menu.Init()
}

// updateMenu handles updates when in menu mode.
func (m SessionModel) updateMenu(msg tea.Msg) (SessionModel, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	if m.menu.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.menu.WantsStats() {
		m.stats = NewStatsModel(m.store, m.settings.Runtime.ScreenW, m.settings.Runtime.ScreenH)
		m.screen = screenStats
		return m, m.stats.Init()
	}

	if selected := m.menu.Selected(); selected != nil {
		if selected.Mode == multiplayer.MatchModeOnlinePvP {
			if m.coordinator == nil {
				return m.toMenu()
			}
			m.lobby = NewOnlineLobbyModel(m.sessionID, m.coordinator, m.settings.Runtime.ScreenW, m.settings.Runtime.ScreenH)
			m.screen = screenLobby
			return m, m.lobby.Init()
		}

		view, err := newGameView(selected.GameID, m.store, m.settings)
		if err != nil {
			// Shouldn't happen since menu only shows registered modes
			return m.toMenu()
		}
		m.game = view
		m.screen = screenGame
		return m, view.Init()
	}

	return m, cmd
}

// updateGame handles updates when in a local mode.
func (m SessionModel) updateGame(msg tea.Msg) (SessionModel, tea.Cmd) {
	newModel, cmd := m.game.Update(msg)
	if view, ok := newModel.(gameView); ok {
		m.game = view
	}

	if m.game.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.game.BackToMenu() {
		return m.toMenu()
	}

	return m, cmd
}

func (m SessionModel) updateStats(msg tea.Msg) (SessionModel, tea.Cmd) {
	newModel, cmd := m.stats.Update(msg)
	if stats, ok := newModel.(StatsModel); ok {
		m.stats = stats
	}

	if m.stats.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.stats.IsGoingBack() {
		return m.toMenu()
	}

	return m, cmd
}

func (m SessionModel) updateLobby(msg tea.Msg) (SessionModel, tea.Cmd) {
	newModel, cmd := m.lobby.Update(msg)
	if lobby, ok := newModel.(OnlineLobbyModel); ok {
		m.lobby = lobby
	}

	if m.lobby.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.lobby.BackToMenu() {
		return m.toMenu()
	}
	if m.lobby.State() == OnlineStateInMatch {
		m.online = NewOnlineBattleModel(
			m.sessionID,
			m.coordinator,
			m.lobby.MatchID(),
			m.lobby.Side(),
			m.lobby.PointsToWin(),
			m.settings.Runtime.Midpoint,
			m.settings.Runtime.ScreenW,
			m.settings.Runtime.ScreenH,
		)
		m.screen = screenOnline
		return m, m.online.Init()
	}

	return m, cmd
}

func (m SessionModel) updateOnline(msg tea.Msg) (SessionModel, tea.Cmd) {
	newModel, cmd := m.online.Update(msg)
	if online, ok := newModel.(OnlineBattleModel); ok {
		m.online = online
	}

	if m.online.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.online.BackToMenu() {
		return m.toMenu()
	}

	return m, cmd
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.screen {
	case screenGame:
		return m.game.View()
	case screenStats:
		return m.stats.View()
	case screenLobby:
		return m.lobby.View()
	case screenOnline:
		return m.online.View()
	default:
		return m.menu.View()
	}
}
