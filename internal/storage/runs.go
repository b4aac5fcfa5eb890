package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Outcomes recorded for a finished run.
const (
	OutcomeGameOver  = "game_over"
	OutcomeVictory   = "victory"
	OutcomeAbandoned = "abandoned"
)

// RunRecord is one finished run on the scoreboard.
type RunRecord struct {
	ID              int64
	RunID           string
	GameID          string
	Score           int
	Level           int
	Outcome         string
	EnemiesDefeated int
	ItemsCollected  int
	CreatedAt       time.Time
}

// SaveRun records a finished run. A RunID is generated when empty.
// Returns the stored run id.
func (s *Store) SaveRun(r RunRecord) (string, error) {
	if r.RunID == "" {
		r.RunID = uuid.NewString()
	}
	if r.Outcome == "" {
		r.Outcome = OutcomeGameOver
	}
	_, err := s.db.Exec(
		`INSERT INTO runs (run_id, game_id, score, level, outcome, enemies_defeated, items_collected)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		r.RunID, r.GameID, r.Score, r.Level, r.Outcome, r.EnemiesDefeated, r.ItemsCollected,
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot save run: %w", err)
	}
	return r.RunID, nil
}

// TopRuns retrieves the best N runs for the given game, highest score first.
func (s *Store) TopRuns(gameID string, limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, run_id, game_id, score, level, outcome, enemies_defeated, items_collected, created_at
		 FROM runs
		 WHERE game_id = ?
		 ORDER BY score DESC, id ASC
		 LIMIT ?`,
		gameID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []RunRecord
	for rows.Next() {
		var r RunRecord
		var createdAt any
		if err := rows.Scan(&r.ID, &r.RunID, &r.GameID, &r.Score, &r.Level, &r.Outcome,
			&r.EnemiesDefeated, &r.ItemsCollected, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.CreatedAt = parseTime(createdAt)
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return runs, nil
}

// ClearRuns deletes the run history of a game. The high score key is kept.
func (s *Store) ClearRuns(gameID string) error {
	if _, err := s.db.Exec("DELETE FROM runs WHERE game_id = ?", gameID); err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}

// GameStats contains aggregated statistics for a game.
type GameStats struct {
	GameID     string
	RunsCount  int
	BestScore  int
	AvgScore   float64
	Victories  int
	LastPlayed time.Time
}

// Stats retrieves aggregated run statistics for a game.
func (s *Store) Stats(gameID string) (*GameStats, error) {
	stats := &GameStats{GameID: gameID}

	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(score), 0), COALESCE(AVG(score), 0),
		        COALESCE(SUM(CASE WHEN outcome = ? THEN 1 ELSE 0 END), 0)
		 FROM runs WHERE game_id = ?`,
		OutcomeVictory, gameID,
	).Scan(&stats.RunsCount, &stats.BestScore, &stats.AvgScore, &stats.Victories)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get game stats: %w", err)
	}

	var lastPlayed any
	err = s.db.QueryRow(
		`SELECT created_at FROM runs WHERE game_id = ? ORDER BY id DESC LIMIT 1`,
		gameID,
	).Scan(&lastPlayed)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("storage: cannot get last played: %w", err)
	}
	if err == nil {
		stats.LastPlayed = parseTime(lastPlayed)
	}

	return stats, nil
}
