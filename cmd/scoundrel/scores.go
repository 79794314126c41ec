package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/vovakirdan/scoundrel/internal/config"
	"github.com/vovakirdan/scoundrel/internal/storage"
)

var (
	flagScoresLimit int
	flagScoresClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [difficulty]",
	Short: "Show high scores and stats",
	Long: `Display the best runs and overall statistics.

With a difficulty, only runs at that difficulty are listed.
--clear deletes the listed history; without a difficulty it also resets
the overall stats.

Examples:
  scoundrel scores
  scoundrel scores hard
  scoundrel scores --limit 25
  scoundrel scores easy --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of runs to show")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete the score history instead of showing it")
}

func runScores(cmd *cobra.Command, args []string) {
	var difficulty config.DifficultyPreset
	if len(args) > 0 {
		p, err := config.ParsePreset(args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		difficulty = p
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening game database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagScoresClear {
		clearScores(store, difficulty)
		return
	}

	scores, err := store.TopScores(difficulty, flagScoresLimit)
	if err != nil {
		store.Close()
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		os.Exit(1)
	}

	p := message.NewPrinter(language.English)

	title := "All difficulties"
	if difficulty != "" {
		title = difficulty.Title()
	}
	p.Printf("High Scores - %s\n", title)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Play 'scoundrel play' to set the first high score!")
		return
	}

	p.Printf("  %-4s  %-8s  %-8s  %-10s  %s\n", "Rank", "Score", "Result", "Difficulty", "Date")
	p.Printf("  %-4s  %-8s  %-8s  %-10s  %s\n", "----", "-----", "------", "----------", "----")

	for i, entry := range scores {
		result := "Fallen"
		if entry.Won {
			result = "Cleared"
		}
		p.Printf("  %-4d  %-8d  %-8s  %-10s  %s\n",
			i+1, entry.Score, result, entry.Difficulty.Title(), entry.CreatedAt.Format("2006-01-02 15:04"))
	}

	fmt.Println()
	if difficulty != "" {
		printDifficultySummary(p, store, difficulty)
		return
	}
	printOverallSummary(p, store)
}

func printDifficultySummary(p *message.Printer, store *storage.Store, difficulty config.DifficultyPreset) {
	ds, err := store.GetDifficultyStats(difficulty)
	if err != nil || ds.Games == 0 {
		return
	}
	p.Printf("Best: %d   Games: %d   Wins: %d (%.1f%%)   Average: %.1f\n",
		ds.HighScore, ds.Games, ds.Wins, percent(ds.Wins, ds.Games), ds.AvgScore)
	if !ds.LastPlayed.IsZero() {
		p.Printf("Last played: %s\n", ds.LastPlayed.Format("2006-01-02 15:04"))
	}
}

func printOverallSummary(p *message.Printer, store *storage.Store) {
	st, err := store.LoadStats()
	if err != nil || st.Games == 0 {
		return
	}
	p.Printf("Best: %d   Games: %d   Wins: %d   Losses: %d   Win rate: %.1f%%\n",
		st.BestScore, st.Games, st.Wins, st.Losses, percent(st.Wins, st.Games))
}

func clearScores(store *storage.Store, difficulty config.DifficultyPreset) {
	if err := store.ClearScores(difficulty); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if difficulty == "" {
		if err := store.ResetStats(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Cleared all runs and stats.")
		return
	}
	fmt.Printf("Cleared %s runs.\n", difficulty.Title())
}

func percent(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(part) * 100 / float64(total)
}
