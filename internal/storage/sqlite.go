// Package storage provides SQLite-based persistence for the stored game,
// the score history and the cross-game statistics.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/scoundrel/internal/config"
	"github.com/vovakirdan/scoundrel/internal/games/scoundrel"
)

// snapshotSlot is the single row holding the in-progress game.
const snapshotSlot = 1

// Store manages the SQLite database connection.
type Store struct {
	db     *sql.DB
	logger *log.Logger
}

// Ensure Store implements the engine's persistence contract.
var _ scoundrel.Gateway = (*Store)(nil)

// ScoreEntry represents a single finished game.
type ScoreEntry struct {
	ID         int64
	RunID      string
	Difficulty config.DifficultyPreset
	Score      int
	Won        bool
	CreatedAt  time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	dbPath = config.ExpandHome(dbPath)

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db, logger: log.New(io.Discard)}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// SetLogger sets the logger used to report discarded records.
func (s *Store) SetLogger(l *log.Logger) {
	if l != nil {
		s.logger = l
	}
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS scores (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL UNIQUE,
			difficulty TEXT NOT NULL,
			score INTEGER NOT NULL,
			won INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_scores_difficulty ON scores(difficulty);
		CREATE INDEX IF NOT EXISTS idx_scores_top ON scores(difficulty, score DESC);

		CREATE TABLE IF NOT EXISTS snapshots (
			slot INTEGER PRIMARY KEY,
			data TEXT NOT NULL,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS stats (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			games INTEGER NOT NULL DEFAULT 0,
			wins INTEGER NOT NULL DEFAULT 0,
			losses INTEGER NOT NULL DEFAULT 0,
			best_score INTEGER,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveSnapshot overwrites the stored game.
func (s *Store) SaveSnapshot(snap scoundrel.Snapshot) error {
	data, err := scoundrel.MarshalSnapshot(snap)
	if err != nil {
		return fmt.Errorf("storage: %w", err)
	}

	_, err = s.db.Exec(
		`INSERT INTO snapshots (slot, data, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(slot) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`,
		snapshotSlot, string(data),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save snapshot: %w", err)
	}
	return nil
}

// LoadSnapshot returns the stored game, or nil if there is none.
// A record that cannot be decoded is deleted and reported as absent.
func (s *Store) LoadSnapshot() (*scoundrel.Snapshot, error) {
	var data string
	err := s.db.QueryRow("SELECT data FROM snapshots WHERE slot = ?", snapshotSlot).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot load snapshot: %w", err)
	}

	snap, err := scoundrel.UnmarshalSnapshot([]byte(data))
	if err != nil {
		s.logger.Warn("discarding corrupt snapshot", "error", err)
		if clearErr := s.ClearSnapshot(); clearErr != nil {
			return nil, clearErr
		}
		return nil, nil
	}
	return &snap, nil
}

// ClearSnapshot removes the stored game.
func (s *Store) ClearSnapshot() error {
	if _, err := s.db.Exec("DELETE FROM snapshots WHERE slot = ?", snapshotSlot); err != nil {
		return fmt.Errorf("storage: cannot clear snapshot: %w", err)
	}
	return nil
}

// LoadStats returns the cross-game statistics. Zero stats are returned
// before the first game.
func (s *Store) LoadStats() (scoundrel.Stats, error) {
	var st scoundrel.Stats
	var best sql.NullInt64
	err := s.db.QueryRow(
		"SELECT games, wins, losses, best_score FROM stats WHERE id = 1",
	).Scan(&st.Games, &st.Wins, &st.Losses, &best)
	if errors.Is(err, sql.ErrNoRows) {
		return scoundrel.Stats{}, nil
	}
	if err != nil {
		return scoundrel.Stats{}, fmt.Errorf("storage: cannot load stats: %w", err)
	}

	if best.Valid {
		st.BestScore = int(best.Int64)
	}
	return st, nil
}

// SaveStats overwrites the cross-game statistics.
func (s *Store) SaveStats(st scoundrel.Stats) error {
	var best sql.NullInt64
	if st.Games > 0 {
		best = sql.NullInt64{Int64: int64(st.BestScore), Valid: true}
	}

	_, err := s.db.Exec(
		`INSERT INTO stats (id, games, wins, losses, best_score, updated_at)
		 VALUES (1, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(id) DO UPDATE SET
		   games = excluded.games,
		   wins = excluded.wins,
		   losses = excluded.losses,
		   best_score = excluded.best_score,
		   updated_at = excluded.updated_at`,
		st.Games, st.Wins, st.Losses, best,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save stats: %w", err)
	}
	return nil
}

// ResetStats deletes the cross-game statistics.
func (s *Store) ResetStats() error {
	if _, err := s.db.Exec("DELETE FROM stats"); err != nil {
		return fmt.Errorf("storage: cannot reset stats: %w", err)
	}
	return nil
}

// RecordRun appends a finished game to the score history.
func (s *Store) RecordRun(run scoundrel.Run) error {
	_, err := s.db.Exec(
		"INSERT INTO scores (run_id, difficulty, score, won) VALUES (?, ?, ?, ?)",
		run.ID, string(run.Difficulty), run.Score, run.Won,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot record run: %w", err)
	}
	return nil
}

// TopScores retrieves the top N scores for a difficulty, or across all
// difficulties when difficulty is empty. Results are ordered by score descending.
func (s *Store) TopScores(difficulty config.DifficultyPreset, limit int) ([]ScoreEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, run_id, difficulty, score, won, created_at
		 FROM scores
		 WHERE ? = '' OR difficulty = ?
		 ORDER BY score DESC, id ASC
		 LIMIT ?`,
		string(difficulty), string(difficulty), limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	defer rows.Close()

	var entries []ScoreEntry
	for rows.Next() {
		var e ScoreEntry
		var diff string
		var createdAt any
		if err := rows.Scan(&e.ID, &e.RunID, &diff, &e.Score, &e.Won, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.Difficulty = config.DifficultyPreset(diff)
		e.CreatedAt = parseTimestamp(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// HighScore returns the highest score for a difficulty.
// ok is false if no games were recorded.
func (s *Store) HighScore(difficulty config.DifficultyPreset) (score int, ok bool, err error) {
	var best sql.NullInt64
	err = s.db.QueryRow(
		"SELECT MAX(score) FROM scores WHERE difficulty = ?",
		string(difficulty),
	).Scan(&best)
	if err != nil {
		return 0, false, fmt.Errorf("storage: cannot query high score: %w", err)
	}

	if !best.Valid {
		return 0, false, nil
	}
	return int(best.Int64), true, nil
}

// ClearScores deletes the score history for a difficulty, or all of it
// when difficulty is empty.
func (s *Store) ClearScores(difficulty config.DifficultyPreset) error {
	_, err := s.db.Exec("DELETE FROM scores WHERE ? = '' OR difficulty = ?", string(difficulty), string(difficulty))
	if err != nil {
		return fmt.Errorf("storage: cannot clear scores: %w", err)
	}
	return nil
}

// DifficultyStats contains aggregated history for one difficulty.
type DifficultyStats struct {
	Difficulty config.DifficultyPreset
	Games      int
	Wins       int
	HighScore  int
	AvgScore   float64
	LastPlayed time.Time
}

// GetDifficultyStats aggregates the score history of one difficulty.
func (s *Store) GetDifficultyStats(difficulty config.DifficultyPreset) (*DifficultyStats, error) {
	stats := &DifficultyStats{Difficulty: difficulty}

	var lastPlayed any
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(SUM(won), 0), COALESCE(MAX(score), 0), COALESCE(AVG(score), 0), MAX(created_at)
		 FROM scores WHERE difficulty = ?`,
		string(difficulty),
	).Scan(&stats.Games, &stats.Wins, &stats.HighScore, &stats.AvgScore, &lastPlayed)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get difficulty stats: %w", err)
	}
	stats.LastPlayed = parseTimestamp(lastPlayed)

	return stats, nil
}

// parseTimestamp handles the driver returning either time.Time or text.
func parseTimestamp(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
		if parsed, err := time.Parse(time.RFC3339, t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
