package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/scoundrel/internal/core"
	"github.com/vovakirdan/scoundrel/internal/games/scoundrel"
	"github.com/vovakirdan/scoundrel/internal/platform/tui"
	"github.com/vovakirdan/scoundrel/internal/registry"
	"github.com/vovakirdan/scoundrel/internal/storage"
)

var flagResume bool

var playCmd = &cobra.Command{
	Use:   "play [difficulty]",
	Short: "Start a game",
	Long: `Start a game at the given difficulty (easy, normal or hard).

Controls:
  1-4          - Play a card (select a monster, equip a weapon, drink a potion)
  W/Enter      - Fight the selected monster with your weapon
  F/Space      - Fight the selected monster barehanded
  R            - Run from the room
  N            - New game (after the game ends)
  B/Esc        - Back
  Q/Ctrl+C     - Quit

Examples:
  scoundrel play
  scoundrel play hard
  scoundrel play --resume
  scoundrel play easy --seed 42
  scoundrel play --config ./my-scoundrel.yaml`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagResume, "resume", false, "Continue the stored game if there is one")
}

func runPlay(cmd *cobra.Command, args []string) {
	var arg string
	if len(args) > 0 {
		arg = args[0]
	}
	preset, err := resolvePreset(arg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fmt.Fprintln(os.Stderr, "Run 'scoundrel list' to see available variants.")
		os.Exit(1)
	}

	logger, closeLog := newLogger()
	defer closeLog()

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open game database: %v\n", err)
		// Continue without storage - game still works
		store = nil
	} else {
		store.SetLogger(logger)
	}

	gameID := scoundrel.IDFor(preset)
	scoundrel.SetConfigPath(flagConfig)
	scoundrel.SetResume(false)

	if flagResume {
		// A stored game keeps its own difficulty.
		if id, ok := resumableGameID(store); ok {
			gameID = id
			scoundrel.SetResume(true)
		} else {
			fmt.Fprintln(os.Stderr, "No saved game to resume, starting a new one.")
		}
	}

	game, err := registry.Create(gameID)
	if err != nil {
		closeStore(store)
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	cfg := core.RuntimeConfig{
		ScreenW: width,
		ScreenH: height,
		Seed:    flagSeed,
	}

	_, runErr := tui.Run(game, store, logger, cfg)

	// Close store before potential exit
	closeStore(store)

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}

// resumableGameID returns the variant of the stored game, if it can be resumed.
func resumableGameID(store *storage.Store) (string, bool) {
	if store == nil {
		return "", false
	}
	snap, err := store.LoadSnapshot()
	if err != nil || snap == nil || !snap.Resumable() {
		return "", false
	}
	id := scoundrel.IDFor(snap.Difficulty)
	return id, registry.Exists(id)
}

func closeStore(store *storage.Store) {
	if store != nil {
		_ = store.Close()
	}
}
