package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/HIMANSHU895060/ai-algorithm-discovery-agent/pkg/benchmark"
	"github.com/HIMANSHU895060/ai-algorithm-discovery-agent/pkg/store"
)

var statsLimit int

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Summarize learning progress and benchmark results",
	Long: `Aggregates the recent discoveries, learning events and benchmark
measurements in the local database into per-category and per-algorithm
summaries.

Examples:
  algoctl stats
  algoctl stats --limit 500`,
	RunE: runStats,
}

func init() {
	statsCmd.Flags().IntVar(&statsLimit, "limit", 200, "Maximum number of rows to aggregate per table")
}

func runStats(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	db, err := store.New(cfg.Storage.Path)
	if err != nil {
		return err
	}
	defer db.Close()

	discoveries, err := db.RecentDiscoveries(ctx, statsLimit)
	if err != nil {
		return err
	}
	events, err := db.RecentLearningEvents(ctx, statsLimit)
	if err != nil {
		return err
	}

	byCategory := map[string]int{}
	byAlgorithm := map[string]int{}
	for _, record := range discoveries {
		byCategory[record.Category]++
		byAlgorithm[record.SelectedAlgorithm]++
	}

	fmt.Printf("Discoveries:     %d\n", len(discoveries))
	fmt.Printf("Learning events: %d\n", len(events))

	if len(byCategory) > 0 {
		fmt.Println("\nBy category:")
		for _, category := range sortedKeys(byCategory) {
			fmt.Printf("  %-20s %d\n", category, byCategory[category])
		}
	}

	if len(byAlgorithm) > 0 {
		fmt.Println("\nBy algorithm:")
		for _, algorithm := range sortedKeys(byAlgorithm) {
			fmt.Printf("  %-20s %d discoveries", algorithm, byAlgorithm[algorithm])

			results, err := db.PerformanceByAlgorithm(ctx, algorithm, statsLimit)
			if err != nil {
				return err
			}
			if stats := benchmark.Summarize(results); stats.Successes > 0 {
				fmt.Printf(" | %d runs, mean %s (%.0f%% success)",
					stats.Runs, stats.Mean, stats.SuccessRate*100)
			}
			fmt.Println()
		}
	}
	return nil
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
