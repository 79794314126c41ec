package scoundrel

import "github.com/vovakirdan/scoundrel/internal/config"

// Gateway persists the in-progress game and the cross-game statistics.
// storage.Store is the SQLite implementation.
type Gateway interface {
	// SaveSnapshot overwrites the stored game.
	SaveSnapshot(snap Snapshot) error
	// LoadSnapshot returns the stored game, or nil if there is none.
	// Corrupt records are discarded and reported as absent.
	LoadSnapshot() (*Snapshot, error)
	// ClearSnapshot removes the stored game.
	ClearSnapshot() error

	LoadStats() (Stats, error)
	SaveStats(stats Stats) error

	// RecordRun appends a finished game to the score history.
	RecordRun(run Run) error
}

// Run is a finished game as recorded in the score history.
type Run struct {
	ID         string
	Difficulty config.DifficultyPreset
	Score      int
	Won        bool
}
