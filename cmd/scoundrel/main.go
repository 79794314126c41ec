// scoundrel is a single-player card dungeon crawl played in the terminal.
//
// Usage:
//
//	scoundrel                      - Start the menu (same as 'scoundrel menu')
//	scoundrel play [difficulty]    - Start a game directly
//	scoundrel list                 - List available variants
//	scoundrel scores [difficulty]  - Show high scores and stats
//
// Global flags:
//
//	--seed <value>        - Set RNG seed for reproducible deals
//	--db <path>           - Set database path (default: ~/.scoundrel/scoundrel.db)
//	--config <path>       - Use a custom difficulty config YAML
//	--difficulty <name>   - Difficulty preset: easy, normal, hard
//	--log-level <level>   - debug, info, warn, error
//	--log-file <path>     - Where to write the log (default: ~/.scoundrel/scoundrel.log)
//
// Every flag can also be set with the matching SCOUNDREL_* environment variable.
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/scoundrel/internal/config"
)

const defaultDBPath = "~/.scoundrel/scoundrel.db"

var (
	// Global flags
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLogLevel   string
	flagLogFile    string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "scoundrel",
	Short: "Scoundrel - a card dungeon crawl in your terminal",
	Long: `Scoundrel is a single-player dungeon crawl played with a deck of cards.

Each room deals four cards: monsters to fight, weapons to equip and potions
to drink. Clear the whole deck without dying to win.

Available commands:
  menu     - Interactive menu (default)
  play     - Start a game directly
  list     - Show the available difficulty variants
  scores   - View high scores and stats

Examples:
  scoundrel
  scoundrel play hard
  scoundrel play --resume
  scoundrel scores normal`,
	Run: runMenu,
}

func init() {
	env, err := config.LoadEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
	if env.DBPath == "" {
		env.DBPath = defaultDBPath
	}
	if env.LogLevel == "" {
		env.LogLevel = "info"
	}

	// Global persistent flags
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", env.Seed, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", env.DBPath, "Path to the game database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", env.ConfigPath, "Path to custom difficulty config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", env.Difficulty, "Difficulty preset: easy, normal, hard")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", env.LogLevel, "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", env.LogFile, "Path to the log file (empty disables logging)")

	// Add subcommands
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(scoresCmd)
}

// newLogger builds the file logger. The terminal belongs to the TUI, so
// nothing is ever logged to stderr.
func newLogger() (*log.Logger, func()) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v, using info\n", err)
		level = log.InfoLevel
	}

	var w io.Writer = io.Discard
	closer := func() {}
	if flagLogFile != "" {
		path := config.ExpandHome(flagLogFile)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err == nil {
			if f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644); err == nil {
				w = f
				closer = func() { _ = f.Close() }
			} else {
				fmt.Fprintf(os.Stderr, "Warning: could not open log file: %v\n", err)
			}
		}
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "scoundrel",
		Level:           level,
	})
	return logger, closer
}

// resolvePreset picks the difficulty from an explicit argument, then the
// --difficulty flag, then the config file default.
func resolvePreset(arg string) (config.DifficultyPreset, error) {
	if arg == "" {
		arg = flagDifficulty
	}
	if arg == "" {
		if cfg, err := config.LoadScoundrel(flagConfig); err == nil {
			arg = string(cfg.DefaultDifficulty)
		}
	}
	return config.ParsePreset(arg)
}
