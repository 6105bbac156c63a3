package main

import (
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/undermask/warehouse/internal/levels"
	"github.com/undermask/warehouse/internal/storage"
)

var flagScoresClear bool

var scoresCmd = &cobra.Command{
	Use:   "scores [level]",
	Short: "Show recorded solves",
	Long: `Display the best solves for a level, or a summary across all levels
when no level is given.

Examples:
  warehouse scores
  warehouse scores push_tutorial
  warehouse scores push_tutorial --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete recorded solves for the given level")
}

func runScores(_ *cobra.Command, args []string) {
	if len(args) == 0 {
		if flagScoresClear {
			fmt.Fprintln(os.Stderr, "Error: --clear needs a level ID.")
			os.Exit(1)
		}
		runScoresSummary()
		return
	}

	levelID := args[0]
	if !levels.Exists(levelID) {
		fmt.Fprintf(os.Stderr, "Error: unknown level %q\n", levelID)
		fmt.Fprintln(os.Stderr, "Run 'warehouse levels' to see available levels.")
		os.Exit(1)
	}

	src, err := levels.Get(levelID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening solve database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagScoresClear {
		if err := store.ClearSolves(levelID); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing solves: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Cleared solves for %s.\n", levelID)
		return
	}

	solves, err := store.TopSolves(levelID, 10)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving solves: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Best Solves - %s\n", src.Title)
	fmt.Println()

	if len(solves) == 0 {
		fmt.Println("No solves recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'warehouse play %s' to set the first time!\n", levelID)
		return
	}

	fmt.Printf("  %-4s  %-8s  %-6s  %-6s  %-6s  %s\n", "Rank", "Time", "Ticks", "Pushes", "Breaks", "Date")
	fmt.Printf("  %-4s  %-8s  %-6s  %-6s  %-6s  %s\n", "----", "----", "-----", "------", "------", "----")

	for i, entry := range solves {
		dateStr := entry.CreatedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-8s  %-6d  %-6d  %-6d  %s\n",
			i+1, fmtDuration(entry.Duration), entry.Ticks, entry.Pushes, entry.Breaks, dateStr)
	}

	stats, err := store.Stats(levelID)
	if err == nil && stats.SolveCount > 0 {
		fmt.Println()
		fmt.Printf("Solved %d times. Best %s, average %s.\n",
			stats.SolveCount, fmtDuration(stats.BestDuration), fmtDuration(stats.AvgDuration))
	}
}

// runScoresSummary prints per-level aggregates for every level with at
// least one solve.
func runScoresSummary() {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening solve database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	all, err := store.AllStats()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving stats: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Solve summary")
	fmt.Println()

	if len(all) == 0 {
		fmt.Println("No solves recorded yet.")
		fmt.Println()
		fmt.Println("Play 'warehouse play' to start the campaign!")
		return
	}

	ids := make([]string, 0, len(all))
	maxIDLen := len("Level")
	for id := range all {
		ids = append(ids, id)
		if len(id) > maxIDLen {
			maxIDLen = len(id)
		}
	}
	sort.Strings(ids)

	fmt.Printf("  %-*s  %-6s  %-8s  %-8s  %s\n", maxIDLen, "Level", "Solves", "Best", "Average", "Last solved")
	fmt.Printf("  %-*s  %-6s  %-8s  %-8s  %s\n", maxIDLen, "-----", "------", "----", "-------", "-----------")

	for _, id := range ids {
		st := all[id]
		fmt.Printf("  %-*s  %-6d  %-8s  %-8s  %s\n",
			maxIDLen, id, st.SolveCount,
			fmtDuration(st.BestDuration), fmtDuration(st.AvgDuration),
			st.LastSolved.Format("2006-01-02 15:04"))
	}
}

func fmtDuration(d time.Duration) string {
	return fmt.Sprintf("%.1fs", d.Seconds())
}
