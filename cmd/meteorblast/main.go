// meteorblast is a block-placement puzzle for the terminal: drop pieces onto
// a meteor-strewn board, clear rows and columns, uncover the hidden picture.
//
// Usage:
//
//	meteorblast list              - List available modes
//	meteorblast play [mode]       - Play a mode (default: blockblast)
//	meteorblast menu              - Start menu to pick modes interactively
//	meteorblast serve             - Start SSH server for remote play
//	meteorblast scores [mode]     - Show high scores
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible gameplay
//	--db <path>           - Set database path (default: ~/.arcade/scores.db)
//	--config <path>       - Custom game config YAML
//	--difficulty <preset> - easy, normal, hard, fixed or custom
//	--log-file <path>     - Write the game log to a file
//
// BLOCKBLAST_DB, BLOCKBLAST_CONFIG, BLOCKBLAST_DIFFICULTY, BLOCKBLAST_FPS and
// BLOCKBLAST_LOG (also read from a .env file) replace the defaults of the
// matching flags.
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/meteorblast/internal/config"
	"github.com/vovakirdan/meteorblast/internal/games/blockblast"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLogFile    string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "meteorblast",
	Short: "Meteor Blast - a block puzzle in your terminal",
	Long: `Meteor Blast is a block-placement puzzle: place pieces on the board,
fill rows or columns to clear them, and work around the meteorites that
fall back after every clear.

Available commands:
  list     - Show all available modes
  play     - Play a mode directly
  menu     - Interactive mode picker menu
  serve    - Start SSH server for remote play
  scores   - View high scores

Examples:
  meteorblast play
  meteorblast play blockblast_zen
  meteorblast menu --difficulty hard
  meteorblast serve --ssh :2222
  meteorblast scores`,
	SilenceUsage:      true,
	PersistentPreRunE: applyEnvironment,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.arcade/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed, custom")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write the game log to this file")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
}

// applyEnvironment fills flags the user did not set from the environment,
// then pushes the game settings into the blockblast package.
func applyEnvironment(cmd *cobra.Command, _ []string) error {
	env := config.LoadEnv()
	flags := cmd.Flags()

	if !flags.Changed("db") && env.DBPath != "" {
		flagDBPath = env.DBPath
	}
	if !flags.Changed("config") && env.ConfigPath != "" {
		flagConfig = env.ConfigPath
	}
	if !flags.Changed("difficulty") && env.Difficulty != "" {
		flagDifficulty = env.Difficulty
	}
	if !flags.Changed("fps") && env.FPS > 0 {
		flagFPS = env.FPS
	}
	if !flags.Changed("log-file") && env.LogFile != "" {
		flagLogFile = env.LogFile
	}

	if flagFPS <= 0 {
		return fmt.Errorf("invalid --fps %d: must be positive", flagFPS)
	}

	var preset config.DifficultyPreset
	if flagDifficulty != "" {
		p, ok := config.ParsePreset(flagDifficulty)
		if !ok {
			return fmt.Errorf("invalid difficulty %q: expected easy, normal, hard, fixed or custom", flagDifficulty)
		}
		preset = p
	}

	blockblast.SetConfigPath(flagConfig)
	blockblast.SetDifficulty(preset)
	return nil
}

// newGameLogger returns the logger for local play. Without --log-file only
// warnings and errors are written, to stderr.
func newGameLogger() (*log.Logger, func(), error) {
	if flagLogFile == "" {
		logger := log.NewWithOptions(os.Stderr, log.Options{
			Level:  log.WarnLevel,
			Prefix: "meteorblast",
		})
		return logger, func() {}, nil
	}

	f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot open log file: %w", err)
	}
	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Level:           log.DebugLevel,
		Prefix:          "meteorblast",
	})
	return logger, func() { _ = f.Close() }, nil
}
