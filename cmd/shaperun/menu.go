package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/shaperun/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick a mode interactively",
	Long: `Start Shape Runner with the mode picker.

After a run you return to the menu. Tab opens the run history.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select mode
  Tab          - Scores
  Q            - Quit

Examples:
  shaperun menu
  shaperun menu --fps 30
  shaperun menu --db ./runs.db`,
	RunE: func(_ *cobra.Command, _ []string) error {
		store := openStore()
		if store != nil {
			defer store.Close()
		}
		return tui.RunSession(store, runtimeConfig())
	},
}
