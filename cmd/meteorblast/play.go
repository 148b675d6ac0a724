package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/meteorblast/internal/core"
	"github.com/vovakirdan/meteorblast/internal/games/blockblast"
	"github.com/vovakirdan/meteorblast/internal/platform/tui"
	"github.com/vovakirdan/meteorblast/internal/registry"
	"github.com/vovakirdan/meteorblast/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play [mode]",
	Short: "Play a mode",
	Long: `Start playing the specified mode (default: blockblast).

Controls:
  Arrows/WASD   - Move the cursor
  Mouse         - Hover to preview, click to place
  Enter/Space   - Place the held piece
  Tab/1-6       - Pick a piece from the hand
  Z/X           - Rotate counterclockwise/clockwise
  F             - Refresh the hand
  V             - Reveal a picture block (costs points)
  P/Esc         - Pause
  R             - Restart (after game over)
  Ctrl+S        - Save a screenshot
  Ctrl+Y        - Copy the screen to the clipboard
  Q/Ctrl+C      - Quit

Difficulty options (classic mode):
  easy   - 15% of the board starts as meteorites
  normal - 25%
  hard   - 35%
  fixed  - 25%, and cleared lines stay clear

Without --difficulty the classic mode asks before starting.

Examples:
  meteorblast play
  meteorblast play blockblast_zen
  meteorblast play --difficulty hard
  meteorblast play --config ./my-board.yaml --seed 42`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func runPlay(_ *cobra.Command, args []string) error {
	gameID := blockblast.GameID
	if len(args) == 1 {
		gameID = args[0]
	}

	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown mode %q (run 'meteorblast list' to see available modes)", gameID)
	}

	// Get terminal size early for the difficulty selector
	width, height := 80, 24 // Defaults
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

	game, err := registry.Create(gameID)
	if err != nil {
		return fmt.Errorf("cannot create game: %w", err)
	}

	if gameID == blockblast.GameID && flagDifficulty == "" {
		preset, ok, selErr := tui.RunDifficultySelector(cfg, blockblast.GetDifficulty())
		if selErr != nil {
			return selErr
		}
		if !ok {
			return nil
		}
		if bb, isBlockBlast := game.(*blockblast.Game); isBlockBlast {
			bb.SetDifficulty(preset)
		}
	}

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
		// Continue without storage - game still works
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	if err := tui.Run(game, store, cfg, logger); err != nil {
		return fmt.Errorf("error running game: %w", err)
	}
	return nil
}
