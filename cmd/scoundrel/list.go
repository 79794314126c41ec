package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/scoundrel/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the available difficulty variants",
	Long:  `Shows every registered variant of the game, easiest first.`,
	Run:   runList,
}

func runList(cmd *cobra.Command, args []string) {
	games := registry.List()

	if len(games) == 0 {
		fmt.Println("No variants available.")
		return
	}

	fmt.Println("Available variants:")
	fmt.Println()

	maxIDLen := 2 // "ID" header
	for _, g := range games {
		if len(g.ID) > maxIDLen {
			maxIDLen = len(g.ID)
		}
	}

	fmt.Printf("  %-*s  %s\n", maxIDLen, "ID", "Title")
	fmt.Printf("  %-*s  %s\n", maxIDLen, "--", "-----")

	for _, g := range games {
		fmt.Printf("  %-*s  %s\n", maxIDLen, g.ID, g.Title)
	}

	fmt.Println()
	fmt.Println("Run 'scoundrel play <difficulty>' to play.")
}
