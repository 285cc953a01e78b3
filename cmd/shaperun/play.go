package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/shaperun/internal/core"
	"github.com/vovakirdan/shaperun/internal/games/shaperun"
	"github.com/vovakirdan/shaperun/internal/platform/tui"
	"github.com/vovakirdan/shaperun/internal/registry"
)

var (
	flagEndless bool
	flagQuick   bool
)

var playCmd = &cobra.Command{
	Use:   "play [mission|endless]",
	Short: "Play a mode",
	Long: `Start a run. Missions open a setup screen where curve, density,
speed and distance can be tuned before starting.

Controls:
  Arrows/WASD  - Steer (left/right) and climb/dive (up/down)
  Space        - Fire (rate depends on the current shape)
  1/2/3        - Cube, pyramid, sphere
  Enter        - Start the run from the setup screen
  P            - Pause
  R            - Restart (after the run ends)
  B/Esc        - Leave (when paused or finished)
  Q/Ctrl+C     - Quit

Shapes:
  cube     - slow, heavy shots, long cooldown
  pyramid  - balanced
  sphere   - fast, light shots, short cooldown

Examples:
  shaperun play
  shaperun play endless
  shaperun play --difficulty hard --quick
  shaperun play --config ./my-runner.toml --seed 42`,
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{"mission", "endless"},
	RunE:      runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagEndless, "endless", false, "Play endless mode")
	playCmd.Flags().BoolVar(&flagQuick, "quick", false, "Skip the setup screen")
}

// modeID resolves the optional mode argument to a game ID.
func modeID(args []string) (string, error) {
	if flagEndless {
		return shaperun.EndlessID, nil
	}
	if len(args) == 0 {
		return shaperun.MissionID, nil
	}
	switch args[0] {
	case "mission", shaperun.MissionID:
		return shaperun.MissionID, nil
	case "endless", shaperun.EndlessID:
		return shaperun.EndlessID, nil
	}
	return "", fmt.Errorf("unknown mode %q (run 'shaperun list')", args[0])
}

func runPlay(_ *cobra.Command, args []string) error {
	gameID, err := modeID(args)
	if err != nil {
		return err
	}
	shaperun.SetQuickStart(flagQuick)

	game, err := registry.Create(gameID)
	if err != nil {
		return err
	}

	store := openStore()
	if store != nil {
		defer store.Close()
	}

	if err := tui.Run(game, store, runtimeConfig()); err != nil {
		return fmt.Errorf("error running game: %w", err)
	}
	return nil
}

// runtimeConfig sizes the screen from the terminal.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width, height = w, h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}
