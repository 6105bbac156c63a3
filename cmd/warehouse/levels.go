package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/undermask/warehouse/internal/levels"
)

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List all available levels",
	Run: func(_ *cobra.Command, _ []string) {
		all := levels.All()

		fmt.Println("Available levels:")
		fmt.Println()

		maxIDLen := 0
		for _, src := range all {
			if len(src.ID) > maxIDLen {
				maxIDLen = len(src.ID)
			}
		}

		fmt.Printf("  %-*s  %s\n", maxIDLen, "ID", "Title")
		fmt.Printf("  %-*s  %s\n", maxIDLen, "--", "-----")

		for _, src := range all {
			fmt.Printf("  %-*s  %s\n", maxIDLen, src.ID, src.Title)
		}

		fmt.Println()
		fmt.Println("Run 'warehouse play <id>' to play a level.")
	},
}
