package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/shaperun/internal/registry"
	"github.com/vovakirdan/shaperun/internal/storage"
)

var (
	flagRecent bool
	flagClear  bool
	flagLimit  int
)

var scoresCmd = &cobra.Command{
	Use:   "scores [mode]",
	Short: "Show run history",
	Long: `Display the best runs for a mode, or a summary of every mode.

Examples:
  shaperun scores
  shaperun scores shaperun
  shaperun scores shaperun_endless --limit 20
  shaperun scores --recent
  shaperun scores shaperun --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagRecent, "recent", false, "Show the most recent runs of every mode")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete the run history of the mode")
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of runs to show")
}

func runScores(_ *cobra.Command, args []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	switch {
	case flagRecent:
		runs, err := store.RecentRuns(flagLimit)
		if err != nil {
			return err
		}
		fmt.Println("Recent runs")
		fmt.Println()
		printRuns(runs, true)
		return nil

	case len(args) == 0:
		return printSummary(store)
	}

	mode := args[0]
	if !registry.Exists(mode) {
		return fmt.Errorf("unknown mode %q (run 'shaperun list')", mode)
	}

	if flagClear {
		if err := store.ClearRuns(mode); err != nil {
			return err
		}
		fmt.Printf("Cleared run history for %s.\n", mode)
		return nil
	}

	game, err := registry.Create(mode)
	if err != nil {
		return err
	}
	runs, err := store.TopRuns(mode, flagLimit)
	if err != nil {
		return err
	}

	fmt.Printf("Best runs - %s\n", game.Title())
	fmt.Println()
	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'shaperun play %s' to set the first record!\n", mode)
		return nil
	}
	printRuns(runs, false)

	if high, err := store.HighScore(mode); err == nil {
		fmt.Println()
		fmt.Printf("Best: %d\n", high)
	}
	return nil
}

func printRuns(runs []storage.Run, withMode bool) {
	if withMode {
		fmt.Printf("  %-4s  %-18s  %-7s  %-7s  %-9s  %s\n", "Rank", "Mode", "Score", "Dist", "Result", "Date")
	} else {
		fmt.Printf("  %-4s  %-7s  %-7s  %-9s  %-6s  %s\n", "Rank", "Score", "Dist", "Result", "Origin", "Date")
	}
	for i, r := range runs {
		date := r.CreatedAt.Format("2006-01-02 15:04")
		if withMode {
			fmt.Printf("  %-4d  %-18s  %-7d  %-7.0f  %-9s  %s\n", i+1, r.Mode, r.Score, r.Distance, r.Outcome, date)
		} else {
			fmt.Printf("  %-4d  %-7d  %-7.0f  %-9s  %-6s  %s\n", i+1, r.Score, r.Distance, r.Outcome, r.Origin, date)
		}
	}
}

func printSummary(store *storage.Store) error {
	stats, err := store.AllStats()
	if err != nil {
		return err
	}

	fmt.Println("Run history")
	fmt.Println()
	fmt.Printf("  %-18s  %-5s  %-9s  %-7s  %-9s  %s\n", "Mode", "Runs", "Victories", "Best", "Best dist", "Last played")
	for _, g := range registry.List() {
		st, ok := stats[g.ID]
		if !ok {
			fmt.Printf("  %-18s  %-5d\n", g.ID, 0)
			continue
		}
		fmt.Printf("  %-18s  %-5d  %-9d  %-7d  %-9.0f  %s\n",
			g.ID, st.Runs, st.Victories, st.HighScore, st.BestDistance, st.LastPlayed.Format("2006-01-02 15:04"))
	}
	return nil
}
