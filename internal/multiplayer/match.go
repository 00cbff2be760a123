package multiplayer

import (
	"errors"
	"sync"
	"time"

	"github.com/vovakirdan/pigmento/internal/color"
	"github.com/vovakirdan/pigmento/internal/game"
)

// MatchResult contains the outcome of a finished match.
type MatchResult struct {
	MatchID  MatchID
	Reason   MatchEndReason
	Winner   PlayerID
	Score1   int
	Score2   int
	Rounds   int
	Duration time.Duration
}

// OnlineMatch is an active battle between two sessions.
// Its Run loop is the only writer to the battle, so guesses are scored in the
// order they reach the match and exactly one player wins each round.
type OnlineMatch struct {
	id     MatchID
	code   string
	battle *game.Battle

	player1Session SessionHandle
	player2Session SessionHandle

	pointsToWin int
	roundPause  time.Duration

	guessChan      chan guessRequest
	disconnectChan chan SessionID
	done           chan struct{}
	doneOnce       sync.Once

	// Owned by the Run goroutine.
	seq       uint64
	startedAt time.Time
}

type guessRequest struct {
	player PlayerID
	color  color.Color
}

// NewOnlineMatch creates a match around battle.
// pointsToWin of 0 plays until someone leaves; roundPause is how long a
// decided round stays on screen before the next target appears.
func NewOnlineMatch(
	id MatchID,
	code string,
	battle *game.Battle,
	p1Session, p2Session SessionHandle,
	pointsToWin int,
	roundPause time.Duration,
) *OnlineMatch {
	return &OnlineMatch{
		id:             id,
		code:           code,
		battle:         battle,
		player1Session: p1Session,
		player2Session: p2Session,
		pointsToWin:    pointsToWin,
		roundPause:     roundPause,
		guessChan:      make(chan guessRequest, 64),
		disconnectChan: make(chan SessionID, 2),
		done:           make(chan struct{}),
	}
}

// ID returns the match identifier.
func (m *OnlineMatch) ID() MatchID {
	return m.id
}

// Code returns the join code used to create this match.
func (m *OnlineMatch) Code() string {
	return m.code
}

// Snapshot returns the current battle state.
func (m *OnlineMatch) Snapshot() game.BattleSnapshot {
	return m.battle.Snapshot()
}

// Side returns which player a session controls.
func (m *OnlineMatch) Side(sessionID SessionID) (PlayerID, bool) {
	switch sessionID {
	case m.player1Session.ID():
		return Player1, true
	case m.player2Session.ID():
		return Player2, true
	default:
		return 0, false
	}
}

// SessionFor returns the session playing side.
func (m *OnlineMatch) SessionFor(side PlayerID) SessionHandle {
	if side == Player2 {
		return m.player2Session
	}
	return m.player1Session
}

// SubmitGuess queues a guess from sessionID. Unknown sessions are ignored.
func (m *OnlineMatch) SubmitGuess(sessionID SessionID, c color.Color) {
	side, ok := m.Side(sessionID)
	if !ok {
		return
	}
	select {
	case m.guessChan <- guessRequest{player: side, color: c}:
	default:
		m.SessionFor(side).Send(GuessRejectedEvent{MatchID: m.id, Reason: "Too many guesses"})
	}
}

// PlayerDisconnected signals that a player has left.
func (m *OnlineMatch) PlayerDisconnected(sessionID SessionID) {
	select {
	case m.disconnectChan <- sessionID:
	default:
	}
}

// Run processes guesses until the match ends.
// The callback is called once with the result unless Stop ends the match first.
func (m *OnlineMatch) Run(onComplete func(MatchResult)) {
	defer m.Stop()

	m.startedAt = time.Now()
	go m.monitorSessions()

	var (
		pause     *time.Timer
		nextRound <-chan time.Time
	)
	stopPause := func() {
		if pause != nil {
			pause.Stop()
		}
	}

	m.broadcast()

	for {
		select {
		case req := <-m.guessChan:
			guess, err := m.battle.SubmitColor(req.player, req.color)
			if err != nil {
				m.SessionFor(req.player).Send(GuessRejectedEvent{MatchID: m.id, Reason: rejectReason(err)})
				continue
			}
			m.broadcast()
			if !guess.Exact() {
				continue
			}
			if m.finished() {
				m.complete(onComplete, MatchEndReasonCompleted, req.player)
				return
			}
			pause = time.NewTimer(m.roundPause)
			nextRound = pause.C

		case <-nextRound:
			nextRound = nil
			m.battle.SoftReset()
			m.broadcast()

		case sessionID := <-m.disconnectChan:
			stopPause()
			winner := Player1
			if sessionID == m.player1Session.ID() {
				winner = Player2
			}
			m.complete(onComplete, MatchEndReasonDisconnect, winner)
			return

		case <-m.done:
			stopPause()
			return
		}
	}
}

func rejectReason(err error) string {
	if errors.Is(err, game.ErrInvalidTransition) {
		return "Round already decided"
	}
	return err.Error()
}

func (m *OnlineMatch) finished() bool {
	if m.pointsToWin <= 0 {
		return false
	}
	snap := m.battle.Snapshot()
	return snap.Player1.Score >= m.pointsToWin || snap.Player2.Score >= m.pointsToWin
}

func (m *OnlineMatch) complete(onComplete func(MatchResult), reason MatchEndReason, winner PlayerID) {
	if onComplete == nil {
		return
	}
	snap := m.battle.Snapshot()
	onComplete(MatchResult{
		MatchID:  m.id,
		Reason:   reason,
		Winner:   winner,
		Score1:   snap.Player1.Score,
		Score2:   snap.Player2.Score,
		Rounds:   snap.Round,
		Duration: time.Since(m.startedAt),
	})
}

func (m *OnlineMatch) broadcast() {
	m.seq++
	evt := SnapshotEvent{
		MatchID:  m.id,
		Seq:      m.seq,
		Snapshot: m.battle.Snapshot(),
	}
	m.player1Session.Send(evt)
	m.player2Session.Send(evt)
}

func (m *OnlineMatch) monitorSessions() {
	select {
	case <-m.player1Session.Done():
		m.PlayerDisconnected(m.player1Session.ID())
	case <-m.player2Session.Done():
		m.PlayerDisconnected(m.player2Session.ID())
	case <-m.done:
	}
}

// Stop ends the match without calling the completion callback.
func (m *OnlineMatch) Stop() {
	m.doneOnce.Do(func() {
		close(m.done)
	})
}
