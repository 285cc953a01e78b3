// shaperun is a terminal corridor shooter: switch between cube, pyramid and
// sphere to pass matching portals while shooting or dodging obstacles.
//
// Usage:
//
//	shaperun play [mission|endless]  - Play a mode directly
//	shaperun menu                    - Pick a mode interactively
//	shaperun serve                   - Start SSH server for remote play
//	shaperun feed                    - Stream simulations to websocket renderers
//	shaperun scores [mode]           - Show run history
//	shaperun list                    - List modes
//	shaperun config export|show      - Inspect or export the configuration
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible runs
//	--db <path>           - Set database path (default: ~/.shaperun/runs.db)
//	--config <path>       - Load a YAML or TOML runner config
//	--difficulty <preset> - easy, normal or hard
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/shaperun/internal/config"
	"github.com/vovakirdan/shaperun/internal/games/shaperun"
	"github.com/vovakirdan/shaperun/internal/storage"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLogLevel   string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "shaperun",
	Short: "Shape Runner - a corridor shooter for your terminal",
	Long: `Shape Runner sends you down a winding corridor. Switch between cube,
pyramid and sphere to pass matching portals, shoot breakable blocks and dodge
the rest.

Available commands:
  play     - Play a mode directly
  menu     - Interactive mode picker
  serve    - Start SSH server for remote play
  feed     - Stream simulations to websocket renderers
  scores   - View run history
  list     - Show all modes
  config   - Show or export the runner configuration

Examples:
  shaperun play
  shaperun play endless --difficulty hard
  shaperun menu
  shaperun serve --ssh :2222
  shaperun scores shaperun_endless`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		if flagDifficulty != "" && config.ParsePreset(flagDifficulty) == "" {
			return fmt.Errorf("unknown difficulty %q (use easy, normal or hard)", flagDifficulty)
		}
		if flagFPS <= 0 {
			return fmt.Errorf("--fps must be positive, got %d", flagFPS)
		}
		shaperun.SetConfigPath(flagConfig)
		shaperun.SetDifficultyPreset(flagDifficulty)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", storage.DefaultPath, "Path to run history database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to runner config (.yaml or .toml)")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level for servers: debug, info, warn, error")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(feedCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(configCmd)
}

// newLogger creates the stderr logger used by the server commands.
func newLogger(prefix string) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	level, err := log.ParseLevel(strings.ToLower(flagLogLevel))
	if err != nil {
		logger.Warn("unknown log level, using info", "level", flagLogLevel)
		level = log.InfoLevel
	}
	logger.SetLevel(level)
	return logger
}

// openStore opens the run history, warning and continuing without it on failure.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open run history: %v\n", err)
		return nil
	}
	return store
}
