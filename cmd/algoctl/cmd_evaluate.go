package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/HIMANSHU895060/ai-algorithm-discovery-agent/pkg/complexity"
	"github.com/HIMANSHU895060/ai-algorithm-discovery-agent/pkg/errors"
)

var evaluateFile string

var evaluateCmd = &cobra.Command{
	Use:   "evaluate",
	Short: "Predict the complexity class of algorithm source",
	Long: `Reads algorithm source from a file and predicts its Big-O time and
space complexity from code patterns.

Examples:
  algoctl evaluate --file quicksort.py`,
	RunE: runEvaluate,
}

func init() {
	evaluateCmd.Flags().StringVar(&evaluateFile, "file", "", "Source file to analyze (required)")
	_ = evaluateCmd.MarkFlagRequired("file")
}

func runEvaluate(cmd *cobra.Command, args []string) error {
	code, err := os.ReadFile(evaluateFile)
	if err != nil {
		return errors.WithFields(
			errors.Wrap(err, errors.ResourceNotFound, "failed to read source file"),
			errors.Fields{"path": evaluateFile},
		)
	}

	analysis := complexity.NewPredictor().Analyze(string(code))

	fmt.Printf("Time complexity:  %s (confidence %d%%)\n",
		analysis.TimeComplexity.Predicted, analysis.TimeComplexity.Confidence)
	fmt.Printf("Space complexity: %s (confidence %d%%)\n",
		analysis.SpaceComplexity.Predicted, analysis.SpaceComplexity.Confidence)
	fmt.Printf("Nested loops:     %d\n", analysis.NestedLoops)
	fmt.Printf("Recursion depth:  %d\n", analysis.RecursionDepth)

	if len(analysis.PatternsFound) > 0 {
		patterns := append([]string(nil), analysis.PatternsFound...)
		sort.Strings(patterns)
		fmt.Println("Patterns found:")
		for _, p := range patterns {
			fmt.Printf("  - %s\n", p)
		}
	}
	return nil
}
