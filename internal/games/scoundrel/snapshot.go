package scoundrel

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/scoundrel/internal/config"
)

// SnapshotVersion is bumped whenever the snapshot layout changes.
const SnapshotVersion = 1

// Snapshot is the persisted form of an in-progress game.
type Snapshot struct {
	Version    int                     `yaml:"version"`
	RunID      string                  `yaml:"run_id"`
	Difficulty config.DifficultyPreset `yaml:"difficulty"`
	Player     Player                  `yaml:"player"`
	Deck       []Card                  `yaml:"deck"`
	Room       []Card                  `yaml:"room"`
	Carry      *Card                   `yaml:"carry,omitempty"`
	CanRun     bool                    `yaml:"can_run"`
	PotionUsed bool                    `yaml:"potion_used"`
}

// Validate checks that the snapshot describes a reachable game state.
func (s Snapshot) Validate() error {
	if s.Version != SnapshotVersion {
		return fmt.Errorf("unsupported snapshot version %d", s.Version)
	}
	if s.Difficulty == "" {
		return errors.New("missing difficulty")
	}
	if p, err := config.ParsePreset(string(s.Difficulty)); err != nil || p != s.Difficulty {
		return fmt.Errorf("unknown difficulty %q", s.Difficulty)
	}
	p := s.Player
	if p.MaxHealth <= 0 {
		return fmt.Errorf("max health %d must be positive", p.MaxHealth)
	}
	if p.Health < 0 || p.Health > p.MaxHealth {
		return fmt.Errorf("health %d outside [0, %d]", p.Health, p.MaxHealth)
	}
	if w := p.Weapon; w != nil {
		if w.Power < config.MinStrength || w.Power > config.MaxStrength {
			return fmt.Errorf("weapon power %d out of range", w.Power)
		}
		if w.Bounded() && (w.LastSlain < config.MinStrength || w.LastSlain > config.MaxStrength) {
			return fmt.Errorf("weapon last slain %d out of range", w.LastSlain)
		}
	}
	if len(s.Room) > RoomSize {
		return fmt.Errorf("room holds %d cards", len(s.Room))
	}
	for _, c := range s.Deck {
		if err := c.validate(); err != nil {
			return fmt.Errorf("deck: %w", err)
		}
	}
	for _, c := range s.Room {
		if err := c.validate(); err != nil {
			return fmt.Errorf("room: %w", err)
		}
	}
	if s.Carry != nil {
		if len(s.Room) > 0 {
			return errors.New("carried card alongside a dealt room")
		}
		if err := s.Carry.validate(); err != nil {
			return fmt.Errorf("carry: %w", err)
		}
	}
	return nil
}

// Resumable reports whether the snapshot is worth resuming: the player is
// alive and more than three cards remain, counting a pending carry.
func (s Snapshot) Resumable() bool {
	left := len(s.Deck) + len(s.Room)
	if s.Carry != nil {
		left++
	}
	return s.Player.Health > 0 && left > 3
}

// MarshalSnapshot encodes a snapshot as YAML.
func MarshalSnapshot(s Snapshot) ([]byte, error) {
	data, err := yaml.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("scoundrel: cannot encode snapshot: %w", err)
	}
	return data, nil
}

// UnmarshalSnapshot decodes and validates a snapshot.
func UnmarshalSnapshot(data []byte) (Snapshot, error) {
	var s Snapshot
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Snapshot{}, fmt.Errorf("scoundrel: cannot decode snapshot: %w", err)
	}
	if err := s.Validate(); err != nil {
		return Snapshot{}, fmt.Errorf("scoundrel: invalid snapshot: %w", err)
	}
	return s, nil
}

// Snapshot captures the current game for persistence.
func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{
		Version:    SnapshotVersion,
		RunID:      s.runID,
		Difficulty: s.difficulty,
		Player:     s.player,
		Deck:       append([]Card(nil), s.dungeon.Deck...),
		Room:       append([]Card(nil), s.dungeon.Room...),
		CanRun:     s.dungeon.CanRun,
		PotionUsed: s.dungeon.PotionUsed,
	}
	if w := s.player.Weapon; w != nil {
		weapon := *w
		snap.Player.Weapon = &weapon
	}
	if c := s.dungeon.Carry; c != nil {
		carry := *c
		snap.Carry = &carry
	}
	return snap
}

// Restore replaces the session's game with a stored one.
func (s *Session) Restore(snap Snapshot) error {
	if err := snap.Validate(); err != nil {
		return fmt.Errorf("scoundrel: invalid snapshot: %w", err)
	}
	if !snap.Resumable() {
		return ErrNotResumable
	}

	player := snap.Player
	if w := snap.Player.Weapon; w != nil {
		weapon := *w
		player.Weapon = &weapon
	}

	s.runID = snap.RunID
	s.difficulty = snap.Difficulty
	s.player = player
	s.dungeon = Dungeon{
		Deck:       append(Deck(nil), snap.Deck...),
		Room:       append(Room(nil), snap.Room...),
		CanRun:     snap.CanRun,
		PotionUsed: snap.PotionUsed,
	}
	if snap.Carry != nil {
		carry := *snap.Carry
		s.dungeon.Carry = &carry
	}
	// A pending carry is consumed into the next room.
	if len(s.dungeon.Room) == 0 {
		s.dungeon.DrawRoom()
	}

	s.selected = -1
	s.phase = PhasePlaying
	s.outcome = OutcomeNone
	s.score = 0

	s.logger.Info("game resumed", "run", s.runID, "difficulty", s.difficulty, "health", s.player.Health, "deck", s.dungeon.Deck.Len())
	return nil
}
