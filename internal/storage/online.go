package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/vovakirdan/pigmento/internal/multiplayer"
)

// OnlineMatchResult represents the outcome of an online battle.
type OnlineMatchResult struct {
	ID             int64     `json:"id"`
	MatchID        string    `json:"match_id"`
	Player1Session string    `json:"player1_session"`
	Player2Session string    `json:"player2_session"`
	Score1         int       `json:"score1"`
	Score2         int       `json:"score2"`
	Rounds         int       `json:"rounds"`
	WinnerSession  string    `json:"winner_session,omitempty"` // Empty if nobody won
	EndReason      string    `json:"end_reason"`
	Duration       int       `json:"duration_secs"`
	CreatedAt      time.Time `json:"created_at"`
}

const onlineMatchColumns = `id, match_id, player1_session, player2_session,
	score1, score2, rounds, winner_session, end_reason, duration_secs, created_at`

// SaveOnlineMatch records the result of an online match.
// Returns the ID of the inserted record.
func (s *Store) SaveOnlineMatch(result OnlineMatchResult) (int64, error) {
	res, err := s.db.Exec(
		`INSERT INTO online_matches
		 (match_id, player1_session, player2_session, score1, score2, rounds, winner_session, end_reason, duration_secs)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		result.MatchID,
		result.Player1Session,
		result.Player2Session,
		result.Score1,
		result.Score2,
		result.Rounds,
		sql.NullString{String: result.WinnerSession, Valid: result.WinnerSession != ""},
		result.EndReason,
		result.Duration,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save online match: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOnlineMatch(row rowScanner) (OnlineMatchResult, error) {
	var result OnlineMatchResult
	var createdAt any
	var winnerSession sql.NullString

	err := row.Scan(
		&result.ID,
		&result.MatchID,
		&result.Player1Session,
		&result.Player2Session,
		&result.Score1,
		&result.Score2,
		&result.Rounds,
		&winnerSession,
		&result.EndReason,
		&result.Duration,
		&createdAt,
	)
	if err != nil {
		return result, err
	}

	result.WinnerSession = winnerSession.String
	result.CreatedAt = parseTime(createdAt)
	return result, nil
}

// OnlineMatchByID retrieves an online match by its match ID.
// Returns nil without error when no such match exists.
func (s *Store) OnlineMatchByID(matchID string) (*OnlineMatchResult, error) {
	row := s.db.QueryRow(
		`SELECT `+onlineMatchColumns+` FROM online_matches WHERE match_id = ?`,
		matchID,
	)
	result, err := scanOnlineMatch(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query online match: %w", err)
	}
	return &result, nil
}

// RecentOnlineMatches retrieves the most recent online matches.
func (s *Store) RecentOnlineMatches(limit int) ([]OnlineMatchResult, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.queryOnlineMatches(
		`SELECT `+onlineMatchColumns+` FROM online_matches ORDER BY id DESC LIMIT ?`,
		limit,
	)
}

func (s *Store) queryOnlineMatches(query string, args ...any) ([]OnlineMatchResult, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query online matches: %w", err)
	}
	defer rows.Close()

	var results []OnlineMatchResult
	for rows.Next() {
		result, err := scanOnlineMatch(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		results = append(results, result)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return results, nil
}

// OnlineStats contains aggregated online match statistics.
type OnlineStats struct {
	Matches     int `json:"matches"`
	Completed   int `json:"completed"`
	Disconnects int `json:"disconnects"`
	Rounds      int `json:"rounds"`
}

// OnlineStats aggregates every recorded online match.
func (s *Store) OnlineStats() (*OnlineStats, error) {
	stats := &OnlineStats{}
	err := s.db.QueryRow(
		`SELECT COUNT(*),
		        COALESCE(SUM(CASE WHEN end_reason = ? THEN 1 ELSE 0 END), 0),
		        COALESCE(SUM(CASE WHEN end_reason = ? THEN 1 ELSE 0 END), 0),
		        COALESCE(SUM(rounds), 0)
		 FROM online_matches`,
		multiplayer.MatchEndReasonCompleted.String(),
		multiplayer.MatchEndReasonDisconnect.String(),
	).Scan(&stats.Matches, &stats.Completed, &stats.Disconnects, &stats.Rounds)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get online stats: %w", err)
	}
	return stats, nil
}

// SaveMatchResult implements multiplayer.MatchResultSaver.
func (s *Store) SaveMatchResult(data multiplayer.MatchResultData) error {
	_, err := s.SaveOnlineMatch(OnlineMatchResult{
		MatchID:        data.MatchID,
		Player1Session: data.Player1Session,
		Player2Session: data.Player2Session,
		Score1:         data.Score1,
		Score2:         data.Score2,
		Rounds:         data.Rounds,
		WinnerSession:  data.WinnerSession,
		EndReason:      data.EndReason,
		Duration:       data.DurationSecs,
	})
	return err
}

// Ensure Store implements MatchResultSaver
var _ multiplayer.MatchResultSaver = (*Store)(nil)
