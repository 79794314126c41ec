package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Env holds settings read from the environment. They become the defaults of
// the matching command-line flags.
type Env struct {
	DBPath     string `env:"SCOUNDREL_DB" envDefault:"~/.scoundrel/scoundrel.db"`
	ConfigPath string `env:"SCOUNDREL_CONFIG"`
	Difficulty string `env:"SCOUNDREL_DIFFICULTY"`
	LogLevel   string `env:"SCOUNDREL_LOG_LEVEL" envDefault:"info"`
	LogFile    string `env:"SCOUNDREL_LOG_FILE" envDefault:"~/.scoundrel/scoundrel.log"`
	Seed       int64  `env:"SCOUNDREL_SEED"`
}

// LoadEnv parses Env from the process environment.
func LoadEnv() (Env, error) {
	var e Env
	if err := env.Parse(&e); err != nil {
		return Env{}, fmt.Errorf("parse env: %w", err)
	}
	return e, nil
}
