package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/shaperun/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all modes",
	Run: func(_ *cobra.Command, _ []string) {
		games := registry.List()

		maxIDLen := 2 // "ID" header
		for _, g := range games {
			maxIDLen = max(maxIDLen, len(g.ID))
		}

		fmt.Println("Available modes:")
		fmt.Println()
		fmt.Printf("  %-*s  %s\n", maxIDLen, "ID", "Title")
		fmt.Printf("  %-*s  %s\n", maxIDLen, "--", "-----")
		for _, g := range games {
			fmt.Printf("  %-*s  %s\n", maxIDLen, g.ID, g.Title)
			if g.Description != "" {
				fmt.Printf("  %-*s  %s\n", maxIDLen, "", g.Description)
			}
		}
		fmt.Println()
		fmt.Println("Run 'shaperun play <id>' to play a mode.")
	},
}
