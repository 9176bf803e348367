package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/HIMANSHU895060/ai-algorithm-discovery-agent/pkg/agent"
	"github.com/HIMANSHU895060/ai-algorithm-discovery-agent/pkg/benchmark"
	"github.com/HIMANSHU895060/ai-algorithm-discovery-agent/pkg/catalog"
	"github.com/HIMANSHU895060/ai-algorithm-discovery-agent/pkg/policy"
	"github.com/HIMANSHU895060/ai-algorithm-discovery-agent/pkg/store"
)

var (
	benchCategory   string
	benchAlgorithm  string
	benchInputSize  int
	benchIterations int
	benchBaseline   time.Duration
)

var benchmarkCmd = &cobra.Command{
	Use:   "benchmark",
	Short: "Benchmark an algorithm and feed the reward back to the agent",
	Long: `Runs a workload sized to the algorithm's complexity class, stores the
measurement, converts it into a quality score and reports that score back to
the selection policy as a reward.

Examples:
  algoctl benchmark --category sorting --algorithm quicksort --input-size 5000
  algoctl benchmark --category searching --algorithm binary_search --iterations 20`,
	RunE: runBenchmark,
}

func init() {
	benchmarkCmd.Flags().StringVar(&benchCategory, "category", "", "Problem category (required)")
	benchmarkCmd.Flags().StringVar(&benchAlgorithm, "algorithm", "", "Algorithm to benchmark (required)")
	benchmarkCmd.Flags().IntVar(&benchInputSize, "input-size", 1000, "Problem input size")
	benchmarkCmd.Flags().IntVar(&benchIterations, "iterations", 10, "Iterations to average over")
	benchmarkCmd.Flags().DurationVar(&benchBaseline, "baseline", 10*time.Millisecond,
		"Execution time that maps to a quality score of 0.5")
	_ = benchmarkCmd.MarkFlagRequired("category")
	_ = benchmarkCmd.MarkFlagRequired("algorithm")
}

func runBenchmark(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

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

	complexity := catalog.Default().ComplexityOf(benchCategory, benchAlgorithm)
	runner, err := benchmark.NewRunner(benchAlgorithm, benchmark.Workload(complexity.Time, benchInputSize))
	if err != nil {
		return err
	}

	result := runner.Run(ctx, benchInputSize, benchIterations)
	if err := db.SavePerformance(ctx, result); err != nil {
		return err
	}

	score := benchmark.QualityScore(result, benchBaseline)
	if err := discoveryAgent.ObserveReward(ctx, benchCategory, benchInputSize, benchAlgorithm, score); err != nil {
		return err
	}

	fmt.Printf("Algorithm:      %s (%s)\n", benchAlgorithm, complexity.Time)
	fmt.Printf("Execution time: %s over %d iterations\n", result.ExecutionTime, result.Iterations)
	fmt.Printf("Alloc bytes:    %d\n", result.AllocBytes)
	fmt.Printf("Quality score:  %.4f\n", score)
	if !result.Success {
		fmt.Printf("Error:          %s\n", result.ErrorMessage)
	}

	history, err := db.PerformanceByAlgorithm(ctx, benchAlgorithm, 50)
	if err != nil {
		return err
	}
	stats := benchmark.Summarize(history)
	fmt.Printf("\nRecorded runs:  %d (%.0f%% success)\n", stats.Runs, stats.SuccessRate*100)
	if stats.Successes > 0 {
		fmt.Printf("Mean/min/max:   %s / %s / %s\n", stats.Mean, stats.Min, stats.Max)
	}
	return nil
}
