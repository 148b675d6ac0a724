package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/meteorblast/internal/registry"
	"github.com/vovakirdan/meteorblast/internal/storage"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available modes",
	Long:  `Shows a list of all registered game modes with games played and best score.`,
	Run:   runList,
}

func runList(_ *cobra.Command, _ []string) {
	games := registry.List()

	if len(games) == 0 {
		fmt.Println("No modes available.")
		return
	}

	// Stats are optional; the list still prints without a database.
	var stats map[string]*storage.GameStats
	if store, err := storage.Open(flagDBPath); err == nil {
		stats, _ = store.GetAllGamesStats()
		store.Close()
	}

	fmt.Println("Available modes:")
	fmt.Println()

	// Calculate column widths
	maxIDLen, maxTitleLen := 2, 5 // "ID", "Title" headers
	for _, g := range games {
		maxIDLen = max(maxIDLen, len(g.ID))
		maxTitleLen = max(maxTitleLen, len(g.Title))
	}

	fmt.Printf("  %-*s  %-*s  %6s  %8s  %5s\n", maxIDLen, "ID", maxTitleLen, "Title", "Played", "Best", "Lines")
	fmt.Printf("  %-*s  %-*s  %6s  %8s  %5s\n", maxIDLen, "--", maxTitleLen, "-----", "------", "----", "-----")

	for _, g := range games {
		played, best, lines := 0, 0, int64(0)
		if s := stats[g.ID]; s != nil {
			played, best, lines = s.GamesCount, s.HighScore, s.TotalLines
		}
		fmt.Printf("  %-*s  %-*s  %6d  %8d  %5d\n", maxIDLen, g.ID, maxTitleLen, g.Title, played, best, lines)
	}

	fmt.Println()
	fmt.Println("Run 'meteorblast play <id>' to play a mode.")
}
