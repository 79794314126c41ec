package config

import (
	_ "embed"
)

//go:embed defaults/scoundrel.yaml
var defaultScoundrelYAML []byte

// DefaultScoundrelConfig returns the built-in configuration. It mirrors
// defaults/scoundrel.yaml and is used if the embedded file cannot be parsed.
func DefaultScoundrelConfig() ScoundrelConfig {
	return ScoundrelConfig{
		DefaultDifficulty: DifficultyNormal,
		Difficulties: map[DifficultyPreset]Tier{
			DifficultyEasy: {
				MaxHealth: 20,
				Deck: DeckConfig{
					Monsters: Pile{Count: 22, Min: 2, Max: 12},
					Weapons:  Pile{Count: 10, Min: 2, Max: 10},
					Potions:  Pile{Count: 10, Min: 2, Max: 10},
				},
			},
			DifficultyNormal: {
				MaxHealth: 20,
				Deck: DeckConfig{
					Monsters: Pile{Count: 26, Min: 2, Max: 14},
					Weapons:  Pile{Count: 9, Min: 2, Max: 14},
					Potions:  Pile{Count: 9, Min: 2, Max: 14},
				},
			},
			DifficultyHard: {
				MaxHealth: 20,
				Deck: DeckConfig{
					Monsters: Pile{Count: 30, Min: 4, Max: 14},
					Weapons:  Pile{Count: 8, Min: 2, Max: 10},
					Potions:  Pile{Count: 8, Min: 2, Max: 8},
				},
			},
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultScoundrelYAML
}
