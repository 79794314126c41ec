// Package config provides YAML-based game configuration loading and
// difficulty management for Scoundrel.
package config

// Card strengths are bounded by the physical deck (2 through ace = 14).
const (
	MinStrength = 2
	MaxStrength = 14
)

// ScoundrelConfig contains all configuration for the Scoundrel game.
type ScoundrelConfig struct {
	DefaultDifficulty DifficultyPreset          `yaml:"default_difficulty"`
	Difficulties      map[DifficultyPreset]Tier `yaml:"difficulties"`
}

// Tier is the rule set for a single difficulty preset.
type Tier struct {
	Name      DifficultyPreset `yaml:"-"`
	MaxHealth int              `yaml:"max_health"`
	Deck      DeckConfig       `yaml:"deck"`
}

// DeckConfig defines how many cards of each kind are dealt and their strengths.
type DeckConfig struct {
	Monsters Pile `yaml:"monsters"`
	Weapons  Pile `yaml:"weapons"`
	Potions  Pile `yaml:"potions"`
}

// Pile describes one kind of card: how many, and the inclusive strength range
// each card's strength is drawn uniformly from.
type Pile struct {
	Count int `yaml:"count"`
	Min   int `yaml:"min"`
	Max   int `yaml:"max"`
}

// Size returns the total number of cards the deck config produces.
func (d DeckConfig) Size() int {
	return d.Monsters.Count + d.Weapons.Count + d.Potions.Count
}
