package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadScoundrel loads the Scoundrel configuration.
// Search order: customPath -> ~/.scoundrel/configs/scoundrel.yaml -> ./configs/scoundrel.yaml -> embedded default.
// Files are decoded over the defaults, so a file that only defines some tiers
// keeps the built-in rules for the others.
func LoadScoundrel(customPath string) (ScoundrelConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(ExpandHome(customPath))
		if err != nil {
			return ScoundrelConfig{}, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := parseScoundrel(data)
		if err != nil {
			return ScoundrelConfig{}, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("scoundrel.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := parseScoundrel(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile("configs/scoundrel.yaml"); err == nil {
		if cfg, err := parseScoundrel(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := parseScoundrel(defaultScoundrelYAML)
	if err != nil {
		return DefaultScoundrelConfig(), nil
	}
	return cfg, nil
}

func parseScoundrel(data []byte) (ScoundrelConfig, error) {
	cfg := DefaultScoundrelConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return ScoundrelConfig{}, err
	}
	if err := cfg.Validate(); err != nil {
		return ScoundrelConfig{}, err
	}
	return cfg, nil
}

// Validate checks every configured tier for playable values.
func (c ScoundrelConfig) Validate() error {
	if _, ok := c.Difficulties[c.DefaultDifficulty]; !ok {
		return fmt.Errorf("default_difficulty %q is not configured", c.DefaultDifficulty)
	}
	for name, t := range c.Difficulties {
		if err := t.Validate(); err != nil {
			return fmt.Errorf("difficulty %s: %w", name, err)
		}
	}
	return nil
}

// Validate checks a single tier.
func (t Tier) Validate() error {
	if t.MaxHealth <= 0 {
		return fmt.Errorf("max_health must be positive, got %d", t.MaxHealth)
	}
	piles := map[string]Pile{
		"monsters": t.Deck.Monsters,
		"weapons":  t.Deck.Weapons,
		"potions":  t.Deck.Potions,
	}
	for kind, p := range piles {
		if p.Count < 0 {
			return fmt.Errorf("%s: count must not be negative", kind)
		}
		if p.Count == 0 {
			continue
		}
		if p.Min < MinStrength || p.Max > MaxStrength || p.Min > p.Max {
			return fmt.Errorf("%s: range [%d, %d] must lie within [%d, %d]", kind, p.Min, p.Max, MinStrength, MaxStrength)
		}
	}
	if t.Deck.Size() == 0 {
		return fmt.Errorf("deck must contain at least one card")
	}
	return nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".scoundrel", "configs", filename)
}

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
