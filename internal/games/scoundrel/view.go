package scoundrel

import "github.com/vovakirdan/scoundrel/internal/config"

// WeaponView summarizes the equipped weapon.
type WeaponView struct {
	Power     int
	LastSlain int
	Bounded   bool
}

// CardView is a room card with hints about what the player can do with it.
type CardView struct {
	Card     Card
	Index    int
	Selected bool
	// Armed is true for a monster the equipped weapon can be used on.
	Armed bool
	// Damage is what fighting the monster costs: with the weapon when Armed,
	// barehanded otherwise.
	Damage int
	// Heals is the health a potion would restore now (0 once a potion has
	// been used in this room).
	Heals int
}

// View is a read-only picture of the session for rendering.
type View struct {
	Phase      Phase
	Outcome    Outcome
	Difficulty config.DifficultyPreset
	Health     int
	MaxHealth  int
	Weapon     *WeaponView
	DeckSize   int
	Room       []CardView
	CanRun     bool
	PotionUsed bool
	Selected   int
	Score      int
	Stats      Stats
}

// View returns the current state of the session.
func (s *Session) View() View {
	v := View{
		Phase:      s.phase,
		Outcome:    s.outcome,
		Difficulty: s.difficulty,
		Health:     s.player.Health,
		MaxHealth:  s.player.MaxHealth,
		DeckSize:   s.dungeon.Deck.Len(),
		CanRun:     s.phase == PhasePlaying && s.dungeon.CanFlee(),
		PotionUsed: s.dungeon.PotionUsed,
		Selected:   s.selected,
		Score:      s.score,
		Stats:      s.stats,
	}
	if w := s.player.Weapon; w != nil {
		v.Weapon = &WeaponView{Power: w.Power, LastSlain: w.LastSlain, Bounded: w.Bounded()}
	}

	v.Room = make([]CardView, 0, len(s.dungeon.Room))
	for i, c := range s.dungeon.Room {
		cv := CardView{Card: c, Index: i, Selected: i == s.selected}
		switch c.Kind {
		case KindMonster:
			cv.Damage = c.Strength
			if w := s.player.Weapon; w != nil && w.CanSlay(c.Strength) {
				cv.Armed = true
				cv.Damage = max(0, c.Strength-w.Power)
			}
		case KindHealth:
			if !s.dungeon.PotionUsed {
				cv.Heals = min(c.Strength, s.player.MaxHealth-s.player.Health)
			}
		}
		v.Room = append(v.Room, cv)
	}
	return v
}
