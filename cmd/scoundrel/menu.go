package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/scoundrel/internal/config"
	"github.com/vovakirdan/scoundrel/internal/core"
	"github.com/vovakirdan/scoundrel/internal/games/scoundrel"
	"github.com/vovakirdan/scoundrel/internal/platform/tui"
	"github.com/vovakirdan/scoundrel/internal/registry"
	"github.com/vovakirdan/scoundrel/internal/storage"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with the interactive menu",
	Long: `Start in interactive menu mode.

The menu offers to continue a stored game, start a new one at any
difficulty, or browse the high scores. After a game you return here.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select
  Tab          - High scores
  Q            - Quit

Examples:
  scoundrel menu
  scoundrel menu --db ./scoundrel.db`,
	Run: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	logger, closeLog := newLogger()
	defer closeLog()

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open game database: %v\n", err)
		store = nil
	} else {
		store.SetLogger(logger)
	}
	defer closeStore(store)

	scoundrel.SetConfigPath(flagConfig)

	// The scoreboard opens on the preferred difficulty, then on the last one played.
	boardPreset, err := resolvePreset("")
	if err != nil {
		boardPreset = config.DifficultyNormal
	}

	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}

	cfg := core.RuntimeConfig{
		ScreenW: width,
		ScreenH: height,
		Seed:    flagSeed,
	}

	for {
		menuResult, err := tui.RunMenu(store, cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return
		}

		// Keep any size changes
		cfg = menuResult.Config

		if menuResult.Quit {
			return
		}

		if menuResult.WantsScoreboard {
			goBack, sbErr := tui.RunScoreboard(store, boardPreset, cfg.ScreenW, cfg.ScreenH)
			if sbErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", sbErr)
			}
			if goBack {
				continue
			}
			return
		}

		if menuResult.GameID == "" {
			return
		}

		scoundrel.SetResume(menuResult.Resume)
		if p, ok := scoundrel.PresetFor(menuResult.GameID); ok {
			boardPreset = p
		}

		game, err := registry.Create(menuResult.GameID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
			continue
		}

		goBack, err := tui.Run(game, store, logger, cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		}
		if !goBack {
			return
		}
	}
}
