package multiplayer

import (
	"crypto/rand"
	"encoding/base32"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/pigmento/internal/core"
	"github.com/vovakirdan/pigmento/internal/game"
)

// Lobby represents a waiting room for a match.
type Lobby struct {
	Code      string
	Host      SessionHandle
	Joiner    SessionHandle
	CreatedAt time.Time
}

// CoordinatorConfig holds configuration for the coordinator.
type CoordinatorConfig struct {
	LobbyTimeout  time.Duration // How long before an empty lobby expires
	CleanupPeriod time.Duration // How often to clean up expired lobbies
	PointsToWin   int           // Round wins that end a match; 0 = endless
	RoundPause    time.Duration // Delay between a decided round and the next target
	Midpoint      int           // Initial slider position for new battles
}

// DefaultCoordinatorConfig returns sensible defaults.
func DefaultCoordinatorConfig() CoordinatorConfig {
	return CoordinatorConfig{
		LobbyTimeout:  2 * time.Minute,
		CleanupPeriod: 30 * time.Second,
		PointsToWin:   0,
		RoundPause:    2 * time.Second,
		Midpoint:      game.DefaultMidpoint,
	}
}

// BattleFactory creates the battle a new match is played on.
type BattleFactory func(cfg core.RuntimeConfig) *game.Battle

// DefaultBattleFactory seeds a battle from cfg.
func DefaultBattleFactory(cfg core.RuntimeConfig) *game.Battle {
	return game.NewBattle(game.OptionsFromConfig(cfg))
}

// MatchResultSaver persists finished matches.
// The coordinator depends on this instead of the storage package.
type MatchResultSaver interface {
	SaveMatchResult(result MatchResultData) error
}

// MatchResultData contains match result data for persistence.
type MatchResultData struct {
	MatchID        string
	Player1Session string
	Player2Session string
	Score1         int
	Score2         int
	Rounds         int
	WinnerSession  string
	EndReason      string
	DurationSecs   int
}

// Coordinator manages lobbies and active matches.
type Coordinator struct {
	config        CoordinatorConfig
	battleFactory BattleFactory
	sessions      *SessionRegistry
	resultSaver   MatchResultSaver // Optional, can be nil
	logger        *log.Logger

	mu      sync.RWMutex
	lobbies map[string]*Lobby        // code -> lobby
	matches map[MatchID]*OnlineMatch // matchID -> match

	// Track which session is in which lobby/match
	sessionLobby map[SessionID]string  // sessionID -> lobby code
	sessionMatch map[SessionID]MatchID // sessionID -> matchID

	msgChan  chan CoordinatorMessage
	done     chan struct{}
	stopOnce sync.Once
	saves    sync.WaitGroup
}

// NewCoordinator creates a new coordinator. A nil factory uses DefaultBattleFactory.
func NewCoordinator(cfg CoordinatorConfig, factory BattleFactory, sessions *SessionRegistry) *Coordinator {
	if factory == nil {
		factory = DefaultBattleFactory
	}
	if cfg.CleanupPeriod <= 0 {
		cfg.CleanupPeriod = DefaultCoordinatorConfig().CleanupPeriod
	}
	return &Coordinator{
		config:        cfg,
		battleFactory: factory,
		sessions:      sessions,
		logger:        log.New(io.Discard),
		lobbies:       make(map[string]*Lobby),
		matches:       make(map[MatchID]*OnlineMatch),
		sessionLobby:  make(map[SessionID]string),
		sessionMatch:  make(map[SessionID]MatchID),
		msgChan:       make(chan CoordinatorMessage, 256),
		done:          make(chan struct{}),
	}
}

// SetResultSaver sets the optional match result saver.
func (c *Coordinator) SetResultSaver(saver MatchResultSaver) {
	c.resultSaver = saver
}

// SetLogger sets the logger used for lobby and match lifecycle events.
func (c *Coordinator) SetLogger(logger *log.Logger) {
	if logger != nil {
		c.logger = logger
	}
}

// Start begins the coordinator's background processing.
func (c *Coordinator) Start() {
	go c.processMessages()
	go c.cleanupLoop()
}

// Stop shuts down the coordinator and every running match, then waits for
// pending result saves.
func (c *Coordinator) Stop() {
	c.stopOnce.Do(func() {
		c.mu.Lock()
		close(c.done)
		for _, match := range c.matches {
			match.Stop()
		}
		c.mu.Unlock()
		c.saves.Wait()
	})
}

// Send sends a message to the coordinator for async processing.
func (c *Coordinator) Send(msg CoordinatorMessage) {
	select {
	case c.msgChan <- msg:
	case <-c.done:
	}
}

func (c *Coordinator) processMessages() {
	for {
		select {
		case msg := <-c.msgChan:
			c.handleMessage(msg)
		case <-c.done:
			return
		}
	}
}

func (c *Coordinator) handleMessage(msg CoordinatorMessage) {
	switch m := msg.(type) {
	case CreateLobbyMsg:
		c.handleCreateLobby(m)
	case JoinLobbyMsg:
		c.handleJoinLobby(m)
	case CancelLobbyMsg:
		c.handleCancelLobby(m)
	case LeaveLobbyMsg:
		c.handleLeaveLobby(m)
	case LeaveMatchMsg:
		c.handleLeaveMatch(m)
	case SubmitGuessMsg:
		c.handleSubmitGuess(m)
	case SessionDisconnectedMsg:
		c.handleSessionDisconnected(m)
	}
}

func (c *Coordinator) handleCreateLobby(msg CreateLobbyMsg) {
	session, ok := c.sessions.Get(msg.SessionID)
	if !ok {
		return
	}

	c.mu.Lock()
	if _, inLobby := c.sessionLobby[msg.SessionID]; inLobby {
		c.mu.Unlock()
		session.Send(LobbyErrorEvent{Message: "Already in a lobby"})
		return
	}
	if _, inMatch := c.sessionMatch[msg.SessionID]; inMatch {
		c.mu.Unlock()
		session.Send(LobbyErrorEvent{Message: "Already in a match"})
		return
	}

	code := c.generateUniqueCode()
	c.lobbies[code] = &Lobby{
		Code:      code,
		Host:      session,
		CreatedAt: time.Now(),
	}
	c.sessionLobby[msg.SessionID] = code
	c.mu.Unlock()

	c.logger.Info("lobby created", "code", code, "host", msg.SessionID)
	session.Send(LobbyCreatedEvent{Code: code})
}

func (c *Coordinator) handleJoinLobby(msg JoinLobbyMsg) {
	session, ok := c.sessions.Get(msg.SessionID)
	if !ok {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, inLobby := c.sessionLobby[msg.SessionID]; inLobby {
		session.Send(LobbyErrorEvent{Message: "Already in a lobby"})
		return
	}

	code := strings.ToUpper(strings.TrimSpace(msg.Code))
	lobby, exists := c.lobbies[code]
	if !exists {
		session.Send(LobbyErrorEvent{Message: "Lobby not found"})
		return
	}
	if lobby.Joiner != nil {
		session.Send(LobbyErrorEvent{Message: "Lobby is full"})
		return
	}
	if lobby.Host.ID() == msg.SessionID {
		session.Send(LobbyErrorEvent{Message: "Cannot join your own lobby"})
		return
	}

	lobby.Joiner = session
	c.sessionLobby[msg.SessionID] = code

	lobby.Host.Send(LobbyJoinedEvent{
		Code:       code,
		Side:       Player1,
		OpponentID: msg.SessionID,
	})
	session.Send(LobbyJoinedEvent{
		Code:       code,
		Side:       Player2,
		OpponentID: lobby.Host.ID(),
	})

	c.startMatch(lobby)
}

// startMatch must be called with c.mu held.
func (c *Coordinator) startMatch(lobby *Lobby) {
	matchID := MatchID("match-" + uuid.NewString())

	cfg := core.DefaultConfig()
	cfg.Seed = time.Now().UnixNano()
	cfg.Midpoint = c.config.Midpoint

	match := NewOnlineMatch(matchID, lobby.Code, c.battleFactory(cfg),
		lobby.Host, lobby.Joiner, c.config.PointsToWin, c.config.RoundPause)

	c.matches[matchID] = match
	hostID := lobby.Host.ID()
	joinerID := lobby.Joiner.ID()

	delete(c.sessionLobby, hostID)
	delete(c.sessionLobby, joinerID)
	c.sessionMatch[hostID] = matchID
	c.sessionMatch[joinerID] = matchID
	delete(c.lobbies, lobby.Code)

	lobby.Host.Send(MatchStartedEvent{
		MatchID:     matchID,
		Side:        Player1,
		Code:        lobby.Code,
		PointsToWin: c.config.PointsToWin,
	})
	lobby.Joiner.Send(MatchStartedEvent{
		MatchID:     matchID,
		Side:        Player2,
		Code:        lobby.Code,
		PointsToWin: c.config.PointsToWin,
	})

	c.logger.Info("match started", "match", matchID, "code", lobby.Code, "host", hostID, "joiner", joinerID)

	go match.Run(func(result MatchResult) {
		c.handleMatchEnded(matchID, result)
	})
}

func (c *Coordinator) handleMatchEnded(matchID MatchID, result MatchResult) {
	c.mu.Lock()
	defer c.mu.Unlock()

	match, exists := c.matches[matchID]
	if !exists {
		return
	}
	p1 := match.SessionFor(Player1)
	p2 := match.SessionFor(Player2)

	c.logger.Info("match ended",
		"match", matchID,
		"reason", result.Reason,
		"winner", result.Winner,
		"score", fmt.Sprintf("%d-%d", result.Score1, result.Score2),
		"rounds", result.Rounds,
	)

	if c.resultSaver != nil {
		winnerSession := ""
		if result.Winner.Valid() {
			winnerSession = string(match.SessionFor(result.Winner).ID())
		}
		data := MatchResultData{
			MatchID:        string(matchID),
			Player1Session: string(p1.ID()),
			Player2Session: string(p2.ID()),
			Score1:         result.Score1,
			Score2:         result.Score2,
			Rounds:         result.Rounds,
			WinnerSession:  winnerSession,
			EndReason:      result.Reason.String(),
			DurationSecs:   int(result.Duration / time.Second),
		}
		save := func() {
			if err := c.resultSaver.SaveMatchResult(data); err != nil {
				c.logger.Error("failed to save match result", "match", matchID, "error", err)
			}
		}
		select {
		case <-c.done:
			save()
		default:
			c.saves.Add(1)
			go func() {
				defer c.saves.Done()
				save()
			}()
		}
	}

	delete(c.sessionMatch, p1.ID())
	delete(c.sessionMatch, p2.ID())
	delete(c.matches, matchID)

	endEvent := MatchEndedEvent{
		MatchID: matchID,
		Reason:  result.Reason,
		Winner:  result.Winner,
		Score1:  result.Score1,
		Score2:  result.Score2,
	}
	p1.Send(endEvent)
	p2.Send(endEvent)
}

func (c *Coordinator) handleCancelLobby(msg CancelLobbyMsg) {
	c.mu.Lock()
	defer c.mu.Unlock()

	lobby, exists := c.lobbies[msg.Code]
	if !exists || lobby.Host.ID() != msg.SessionID {
		return
	}

	if lobby.Joiner != nil {
		lobby.Joiner.Send(MatchEndedEvent{Reason: MatchEndReasonHostLeft})
		delete(c.sessionLobby, lobby.Joiner.ID())
	}

	delete(c.lobbies, msg.Code)
	delete(c.sessionLobby, msg.SessionID)
	c.logger.Info("lobby cancelled", "code", msg.Code)
}

func (c *Coordinator) handleLeaveLobby(msg LeaveLobbyMsg) {
	c.mu.Lock()
	defer c.mu.Unlock()

	lobby, exists := c.lobbies[msg.Code]
	if !exists {
		return
	}

	if lobby.Joiner != nil && lobby.Joiner.ID() == msg.SessionID {
		lobby.Joiner = nil
		delete(c.sessionLobby, msg.SessionID)
		lobby.Host.Send(LobbyPlayerLeftEvent{Code: msg.Code})
		return
	}

	if lobby.Host.ID() == msg.SessionID {
		if lobby.Joiner != nil {
			lobby.Joiner.Send(MatchEndedEvent{Reason: MatchEndReasonHostLeft})
			delete(c.sessionLobby, lobby.Joiner.ID())
		}
		delete(c.lobbies, msg.Code)
		delete(c.sessionLobby, msg.SessionID)
	}
}

func (c *Coordinator) handleLeaveMatch(msg LeaveMatchMsg) {
	c.mu.RLock()
	match, exists := c.matches[msg.MatchID]
	c.mu.RUnlock()

	if exists {
		match.PlayerDisconnected(msg.SessionID)
	}
}

func (c *Coordinator) handleSubmitGuess(msg SubmitGuessMsg) {
	c.mu.RLock()
	match, exists := c.matches[msg.MatchID]
	c.mu.RUnlock()

	if exists {
		match.SubmitGuess(msg.SessionID, msg.Color)
	}
}

func (c *Coordinator) handleSessionDisconnected(msg SessionDisconnectedMsg) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if code, inLobby := c.sessionLobby[msg.SessionID]; inLobby {
		if lobby, exists := c.lobbies[code]; exists {
			if lobby.Host.ID() == msg.SessionID {
				if lobby.Joiner != nil {
					lobby.Joiner.Send(MatchEndedEvent{Reason: MatchEndReasonHostLeft})
					delete(c.sessionLobby, lobby.Joiner.ID())
				}
				delete(c.lobbies, code)
			} else if lobby.Joiner != nil && lobby.Joiner.ID() == msg.SessionID {
				lobby.Joiner = nil
				lobby.Host.Send(LobbyPlayerLeftEvent{Code: code})
			}
		}
		delete(c.sessionLobby, msg.SessionID)
	}

	if matchID, inMatch := c.sessionMatch[msg.SessionID]; inMatch {
		if match, exists := c.matches[matchID]; exists {
			match.PlayerDisconnected(msg.SessionID)
		}
	}
}

func (c *Coordinator) cleanupLoop() {
	ticker := time.NewTicker(c.config.CleanupPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.cleanupExpiredLobbies(time.Now())
		case <-c.done:
			return
		}
	}
}

func (c *Coordinator) cleanupExpiredLobbies(now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for code, lobby := range c.lobbies {
		// Only expire lobbies without joiners
		if lobby.Joiner == nil && now.Sub(lobby.CreatedAt) > c.config.LobbyTimeout {
			lobby.Host.Send(LobbyErrorEvent{Message: "Lobby expired"})
			delete(c.sessionLobby, lobby.Host.ID())
			delete(c.lobbies, code)
			c.logger.Debug("lobby expired", "code", code)
		}
	}
}

// generateUniqueCode must be called with c.mu held.
func (c *Coordinator) generateUniqueCode() string {
	for {
		code := generateJoinCode()
		if _, exists := c.lobbies[code]; !exists {
			return code
		}
	}
}

// generateJoinCode creates a 6-character uppercase code from the base32 alphabet.
func generateJoinCode() string {
	b := make([]byte, 4)
	if _, err := rand.Read(b); err != nil {
		return fmt.Sprintf("%06X", time.Now().UnixNano()&0xFFFFFF)
	}
	return base32.StdEncoding.EncodeToString(b)[:6]
}

// LobbyCount returns the number of open lobbies.
func (c *Coordinator) LobbyCount() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.lobbies)
}

// MatchCount returns the number of running matches.
func (c *Coordinator) MatchCount() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.matches)
}
