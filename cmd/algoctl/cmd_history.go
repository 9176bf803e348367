package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/HIMANSHU895060/ai-algorithm-discovery-agent/pkg/agent"
	"github.com/HIMANSHU895060/ai-algorithm-discovery-agent/pkg/store"
)

var (
	historyLimit    int
	historyCategory string
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent discoveries",
	Long: `Lists recent discoveries from the local database, newest first.

Examples:
  algoctl history
  algoctl history --limit 25
  algoctl history --category sorting`,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", 10, "Maximum number of entries")
	historyCmd.Flags().StringVar(&historyCategory, "category", "", "Filter by problem category")
}

func runHistory(cmd *cobra.Command, args []string) error {
	db, err := store.New(cfg.Storage.Path)
	if err != nil {
		return err
	}
	defer db.Close()

	var records []agent.DiscoveryRecord
	if historyCategory != "" {
		records, err = db.DiscoveriesByCategory(cmd.Context(), historyCategory, historyLimit)
	} else {
		records, err = db.RecentDiscoveries(cmd.Context(), historyLimit)
	}
	if err != nil {
		return err
	}

	if len(records) == 0 {
		fmt.Println("No discoveries yet. Run 'algoctl discover' first.")
		return nil
	}

	for i, record := range records {
		fmt.Printf("%d. %s | input size %d\n", i+1, record.Category, record.InputSize)
		fmt.Printf("   %s (%s time, %s space) score %.4f\n",
			record.SelectedAlgorithm, record.TimeComplexity, record.SpaceComplexity, record.QualityScore)
		fmt.Printf("   %s\n", record.CreatedAt.Format("2006-01-02 15:04:05"))
	}
	return nil
}
