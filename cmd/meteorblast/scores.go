package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/meteorblast/internal/games/blockblast"
	"github.com/vovakirdan/meteorblast/internal/registry"
	"github.com/vovakirdan/meteorblast/internal/storage"
)

var (
	flagClearScores bool
	flagRecent      bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [mode]",
	Short: "Show high scores for a mode",
	Long: `Display the top 10 runs for the specified mode (default: blockblast),
with lines cleared, level reached and play time.

Examples:
  meteorblast scores
  meteorblast scores blockblast_zen
  meteorblast scores --recent
  meteorblast scores --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagClearScores, "clear", false, "Delete all scores for the mode")
	scoresCmd.Flags().BoolVar(&flagRecent, "recent", false, "Show the latest runs instead of the best")
}

func runScores(_ *cobra.Command, args []string) error {
	gameID := blockblast.GameID
	if len(args) == 1 {
		gameID = args[0]
	}

	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown mode %q (run 'meteorblast list' to see available modes)", gameID)
	}

	game, err := registry.Create(gameID)
	if err != nil {
		return fmt.Errorf("cannot create game: %w", err)
	}
	title := game.Title()

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("cannot open scores database: %w", err)
	}
	defer store.Close()

	if flagClearScores {
		if err := store.ClearScores(gameID); err != nil {
			return err
		}
		fmt.Printf("Cleared scores for %s.\n", title)
		return nil
	}

	heading := "High Scores"
	load := store.TopRuns
	if flagRecent {
		heading = "Recent Runs"
		load = store.RecentRuns
	}
	runs, err := load(gameID, 10)
	if err != nil {
		return err
	}

	fmt.Printf("%s - %s\n", heading, title)
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'meteorblast play %s' to set the first high score!\n", gameID)
		return nil
	}

	fmt.Printf("  %-4s  %-8s  %-5s  %-5s  %-6s  %s\n", "#", "Score", "Lines", "Level", "Time", "Date")
	fmt.Printf("  %-4s  %-8s  %-5s  %-5s  %-6s  %s\n", "----", "-----", "-----", "-----", "----", "----")

	for i, r := range runs {
		lines, level, played := "-", "-", "-"
		if r.ID != 0 {
			lines = fmt.Sprint(r.Lines)
			level = fmt.Sprint(r.Level)
			played = r.Duration.Round(time.Second).String()
		}
		fmt.Printf("  %-4d  %-8d  %-5s  %-5s  %-6s  %s\n",
			i+1, r.Score, lines, level, played, r.CreatedAt.Format("2006-01-02 15:04"))
	}

	stats, err := store.GetGameStats(gameID)
	if err == nil && stats.GamesCount > 0 {
		fmt.Println()
		fmt.Printf("Games: %d  Best: %d  Average: %.0f  Lines: %d  Best level: %d\n",
			stats.GamesCount, stats.HighScore, stats.AvgScore, stats.TotalLines, stats.BestLevel)
	}
	return nil
}
