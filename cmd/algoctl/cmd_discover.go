package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/HIMANSHU895060/ai-algorithm-discovery-agent/pkg/agent"
	"github.com/HIMANSHU895060/ai-algorithm-discovery-agent/pkg/policy"
	"github.com/HIMANSHU895060/ai-algorithm-discovery-agent/pkg/store"
)

var (
	discoverCategory  string
	discoverInputSize int
)

var discoverCmd = &cobra.Command{
	Use:   "discover",
	Short: "Pick an algorithm for a problem category",
	Long: `Selects an algorithm for the given problem category and input size
and records the discovery in the local database.

Examples:
  algoctl discover --category sorting --input-size 1000
  algoctl discover --category searching`,
	RunE: runDiscover,
}

func init() {
	discoverCmd.Flags().StringVar(&discoverCategory, "category", "", "Problem category (required)")
	discoverCmd.Flags().IntVar(&discoverInputSize, "input-size", 1000, "Problem input size")
	_ = discoverCmd.MarkFlagRequired("category")
}

func runDiscover(cmd *cobra.Command, args []string) error {
	db, err := store.New(cfg.Storage.Path)
	if err != nil {
		return err
	}
	defer db.Close()

	discoveryAgent, err := agent.New(&agent.Config{
		Policy: &policy.Config{
			LearningRate:   cfg.Learning.LearningRate,
			DiscountFactor: cfg.Learning.DiscountFactor,
			Epsilon:        cfg.Learning.Epsilon,
			Seed:           cfg.Learning.Seed,
		},
		Sink: db,
	})
	if err != nil {
		return err
	}

	record, err := discoveryAgent.Discover(cmd.Context(), discoverCategory, discoverInputSize)
	if err != nil {
		return err
	}

	fmt.Printf("Algorithm:        %s\n", record.SelectedAlgorithm)
	fmt.Printf("Time complexity:  %s\n", record.TimeComplexity)
	fmt.Printf("Space complexity: %s\n", record.SpaceComplexity)
	fmt.Printf("Quality score:    %.4f\n", record.QualityScore)
	fmt.Printf("Record ID:        %s\n", record.ID)
	return nil
}
