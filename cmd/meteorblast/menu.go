package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/meteorblast/internal/core"
	"github.com/vovakirdan/meteorblast/internal/games/blockblast"
	"github.com/vovakirdan/meteorblast/internal/platform/tui"
	"github.com/vovakirdan/meteorblast/internal/registry"
	"github.com/vovakirdan/meteorblast/internal/storage"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with a mode picker menu",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select a mode.
Classic mode asks for a difficulty unless --difficulty is given.
After a game ends, you return to the menu to play again.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select mode
  Tab          - High scores
  Q            - Quit

Examples:
  meteorblast menu
  meteorblast menu --fps 30
  meteorblast menu --db ./scores.db`,
	RunE: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
	logger, closeLog, err := newGameLogger()
	if err != nil {
		return err
	}
	defer closeLog()
	blockblast.SetLogger(logger)

	// Open score storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database", "err", err)
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	// Get terminal size
	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	// Menu loop
	for {
		menuResult, err := tui.RunMenu(store, cfg)
		if err != nil {
			return err
		}

		// Update config with any size changes
		cfg = menuResult.Config

		if menuResult.Quit {
			return nil
		}

		if menuResult.WantsScoreboard {
			goBack, sbErr := tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH)
			if sbErr != nil {
				return sbErr
			}
			if goBack {
				continue // Back to menu
			}
			return nil // User quit from scoreboard
		}

		gameID := menuResult.GameID
		if gameID == "" {
			return nil
		}

		game, err := registry.Create(gameID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
			continue
		}

		if gameID == blockblast.GameID && flagDifficulty == "" {
			preset, ok, selErr := tui.RunDifficultySelector(cfg, blockblast.GetDifficulty())
			if selErr != nil {
				return selErr
			}
			if !ok {
				continue
			}
			if bb, isBlockBlast := game.(*blockblast.Game); isBlockBlast {
				bb.SetDifficulty(preset)
			}
		}

		// A fixed --seed replays the same deal every time
		if flagSeed == 0 {
			cfg.Seed = time.Now().UnixNano()
		}

		if err := tui.Run(game, store, cfg, logger); err != nil {
			logger.Error("game exited with error", "game", gameID, "err", err)
		}

		// Loop back to menu
	}
}
