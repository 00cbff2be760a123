package storage

import (
	"fmt"
	"time"

	"github.com/vovakirdan/pigmento/internal/game"
)

// Where a solo target came from.
const (
	SourceRandom = "random"
	SourceLink   = "link"
)

// SoloGameRecord is one finished or abandoned solo game.
type SoloGameRecord struct {
	ID             int64     `json:"id"`
	Target         string    `json:"target"`
	Guesses        int       `json:"guesses"`
	BestSimilarity float64   `json:"best_similarity"`
	Won            bool      `json:"won"`
	Source         string    `json:"source"`
	CreatedAt      time.Time `json:"created_at"`
}

// SoloGameFromSession builds a record from the current state of s.
func SoloGameFromSession(s *game.Session, source string) SoloGameRecord {
	rec := SoloGameRecord{
		Target:  s.Target().Canonical(),
		Guesses: s.GuessCount(),
		Won:     s.Won(),
		Source:  source,
	}
	for _, g := range s.Guesses() {
		rec.BestSimilarity = max(rec.BestSimilarity, g.Similarity)
	}
	return rec
}

// SaveSoloGame records a solo game.
// Returns the ID of the inserted record.
func (s *Store) SaveSoloGame(rec SoloGameRecord) (int64, error) {
	if rec.Source == "" {
		rec.Source = SourceRandom
	}
	result, err := s.db.Exec(
		`INSERT INTO solo_games (target, guesses, best_similarity, won, source)
		 VALUES (?, ?, ?, ?, ?)`,
		rec.Target, rec.Guesses, rec.BestSimilarity, rec.Won, rec.Source,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save solo game: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

// RecentSoloGames retrieves the most recent solo games, newest first.
func (s *Store) RecentSoloGames(limit int) ([]SoloGameRecord, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, target, guesses, best_similarity, won, source, created_at
		 FROM solo_games
		 ORDER BY id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query solo games: %w", err)
	}
	defer rows.Close()

	var records []SoloGameRecord
	for rows.Next() {
		var rec SoloGameRecord
		var createdAt any
		if err := rows.Scan(&rec.ID, &rec.Target, &rec.Guesses, &rec.BestSimilarity, &rec.Won, &rec.Source, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		rec.CreatedAt = parseTime(createdAt)
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return records, nil
}

// SoloStats contains aggregated solo statistics.
type SoloStats struct {
	Played      int       `json:"played"`
	Won         int       `json:"won"`
	WinRate     float64   `json:"win_rate"`
	AvgGuesses  float64   `json:"avg_guesses"`  // Over won games
	BestGuesses int       `json:"best_guesses"` // Fewest guesses in a won game; 0 if none
	LastPlayed  time.Time `json:"last_played"`
}

// SoloStats aggregates every recorded solo game.
func (s *Store) SoloStats() (*SoloStats, error) {
	stats := &SoloStats{}
	var lastPlayed any

	err := s.db.QueryRow(
		`SELECT COUNT(*),
		        COALESCE(SUM(won), 0),
		        COALESCE(AVG(CASE WHEN won = 1 THEN guesses END), 0),
		        COALESCE(MIN(CASE WHEN won = 1 THEN guesses END), 0),
		        MAX(created_at)
		 FROM solo_games`,
	).Scan(&stats.Played, &stats.Won, &stats.AvgGuesses, &stats.BestGuesses, &lastPlayed)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get solo stats: %w", err)
	}

	if stats.Played > 0 {
		stats.WinRate = float64(stats.Won) / float64(stats.Played)
	}
	stats.LastPlayed = parseTime(lastPlayed)
	return stats, nil
}

// BattleRoundRecord is one decided battle round.
type BattleRoundRecord struct {
	ID        int64     `json:"id"`
	Mode      string    `json:"mode"`
	Round     int       `json:"round"`
	Target    string    `json:"target"`
	Winner    int       `json:"winner"`
	Score1    int       `json:"score1"`
	Score2    int       `json:"score2"`
	Guesses1  int       `json:"guesses1"`
	Guesses2  int       `json:"guesses2"`
	CreatedAt time.Time `json:"created_at"`
}

// BattleRoundFromSnapshot builds a record from a battle snapshot.
func BattleRoundFromSnapshot(mode string, snap game.BattleSnapshot) BattleRoundRecord {
	return BattleRoundRecord{
		Mode:     mode,
		Round:    snap.Round,
		Target:   snap.Target.Canonical(),
		Winner:   int(snap.Winner),
		Score1:   snap.Player1.Score,
		Score2:   snap.Player2.Score,
		Guesses1: len(snap.Player1.Guesses),
		Guesses2: len(snap.Player2.Guesses),
	}
}

// SaveBattleRound records a battle round.
// Returns the ID of the inserted record.
func (s *Store) SaveBattleRound(rec BattleRoundRecord) (int64, error) {
	result, err := s.db.Exec(
		`INSERT INTO battle_rounds (mode, round, target, winner, score1, score2, guesses1, guesses2)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.Mode, rec.Round, rec.Target, rec.Winner, rec.Score1, rec.Score2, rec.Guesses1, rec.Guesses2,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save battle round: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

// RecentBattleRounds retrieves the most recent rounds of one mode, or of all
// modes when mode is empty, newest first.
func (s *Store) RecentBattleRounds(mode string, limit int) ([]BattleRoundRecord, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, mode, round, target, winner, score1, score2, guesses1, guesses2, created_at
		 FROM battle_rounds
		 WHERE ? = '' OR mode = ?
		 ORDER BY id DESC
		 LIMIT ?`,
		mode, mode, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query battle rounds: %w", err)
	}
	defer rows.Close()

	var records []BattleRoundRecord
	for rows.Next() {
		var rec BattleRoundRecord
		var createdAt any
		if err := rows.Scan(&rec.ID, &rec.Mode, &rec.Round, &rec.Target, &rec.Winner,
			&rec.Score1, &rec.Score2, &rec.Guesses1, &rec.Guesses2, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		rec.CreatedAt = parseTime(createdAt)
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return records, nil
}

// BattleStats contains aggregated battle statistics.
type BattleStats struct {
	Rounds     int     `json:"rounds"`
	Wins1      int     `json:"wins1"`
	Wins2      int     `json:"wins2"`
	AvgGuesses float64 `json:"avg_guesses"` // Combined guesses per round
}

// BattleStats aggregates rounds of one mode, or of all modes when mode is empty.
func (s *Store) BattleStats(mode string) (*BattleStats, error) {
	stats := &BattleStats{}
	err := s.db.QueryRow(
		`SELECT COUNT(*),
		        COALESCE(SUM(CASE WHEN winner = 1 THEN 1 ELSE 0 END), 0),
		        COALESCE(SUM(CASE WHEN winner = 2 THEN 1 ELSE 0 END), 0),
		        COALESCE(AVG(guesses1 + guesses2), 0)
		 FROM battle_rounds
		 WHERE ? = '' OR mode = ?`,
		mode, mode,
	).Scan(&stats.Rounds, &stats.Wins1, &stats.Wins2, &stats.AvgGuesses)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get battle stats: %w", err)
	}
	return stats, nil
}

// Stats is the combined summary of everything recorded.
type Stats struct {
	Solo   SoloStats   `json:"solo"`
	Battle BattleStats `json:"battle"`
	Online OnlineStats `json:"online"`
}

// AllStats aggregates solo, battle and online statistics.
func (s *Store) AllStats() (*Stats, error) {
	solo, err := s.SoloStats()
	if err != nil {
		return nil, err
	}
	battle, err := s.BattleStats("")
	if err != nil {
		return nil, err
	}
	online, err := s.OnlineStats()
	if err != nil {
		return nil, err
	}
	return &Stats{Solo: *solo, Battle: *battle, Online: *online}, nil
}
