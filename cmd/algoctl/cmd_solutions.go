package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/HIMANSHU895060/ai-algorithm-discovery-agent/pkg/store"
)

var (
	saveSolutionCategory string
	saveSolutionFile     string
	saveSolutionLanguage string
	saveSolutionNotes    string

	solutionsCategory string
	solutionsLimit    int
)

var saveSolutionCmd = &cobra.Command{
	Use:   "save-solution",
	Short: "Store a solution snippet under a problem category",
	Long: `Reads a source file and stores it as a reusable solution for the
given problem category.

Examples:
  algoctl save-solution --category sorting --file quicksort.go
  algoctl save-solution --category searching --file bsearch.py --language python --notes "iterative variant"`,
	RunE: runSaveSolution,
}

var solutionsCmd = &cobra.Command{
	Use:   "solutions",
	Short: "List stored solutions for a problem category",
	RunE:  runSolutions,
}

func init() {
	saveSolutionCmd.Flags().StringVar(&saveSolutionCategory, "category", "", "Problem category (required)")
	saveSolutionCmd.Flags().StringVar(&saveSolutionFile, "file", "", "Path to the solution source (required)")
	saveSolutionCmd.Flags().StringVar(&saveSolutionLanguage, "language", "go", "Source language of the solution")
	saveSolutionCmd.Flags().StringVar(&saveSolutionNotes, "notes", "", "Free-form notes stored with the solution")
	_ = saveSolutionCmd.MarkFlagRequired("category")
	_ = saveSolutionCmd.MarkFlagRequired("file")

	solutionsCmd.Flags().StringVar(&solutionsCategory, "category", "", "Problem category (required)")
	solutionsCmd.Flags().IntVar(&solutionsLimit, "limit", 10, "Maximum number of solutions to list")
	_ = solutionsCmd.MarkFlagRequired("category")
}

func runSaveSolution(cmd *cobra.Command, args []string) error {
	code, err := os.ReadFile(saveSolutionFile)
	if err != nil {
		return fmt.Errorf("reading solution file: %w", err)
	}

	db, err := store.New(cfg.Storage.Path)
	if err != nil {
		return err
	}
	defer db.Close()

	id, err := db.SaveSolution(cmd.Context(), store.Solution{
		Category: saveSolutionCategory,
		Code:     string(code),
		Language: saveSolutionLanguage,
		Notes:    saveSolutionNotes,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Saved solution %d under category %q\n", id, saveSolutionCategory)
	return nil
}

func runSolutions(cmd *cobra.Command, args []string) error {
	db, err := store.New(cfg.Storage.Path)
	if err != nil {
		return err
	}
	defer db.Close()

	solutions, err := db.SolutionsByCategory(cmd.Context(), solutionsCategory, solutionsLimit)
	if err != nil {
		return err
	}
	if len(solutions) == 0 {
		fmt.Printf("No solutions stored for category %q\n", solutionsCategory)
		return nil
	}

	for _, solution := range solutions {
		fmt.Printf("#%d [%s] %s (%d bytes)\n",
			solution.ID, solution.Language, solution.CreatedAt.Format("2006-01-02 15:04"), len(solution.Code))
		if solution.Notes != "" {
			fmt.Printf("    %s\n", solution.Notes)
		}
	}
	return nil
}
