package main

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/HIMANSHU895060/ai-algorithm-discovery-agent/pkg/agent"
	"github.com/HIMANSHU895060/ai-algorithm-discovery-agent/pkg/errors"
	"github.com/HIMANSHU895060/ai-algorithm-discovery-agent/pkg/genetic"
	"github.com/HIMANSHU895060/ai-algorithm-discovery-agent/pkg/store"
)

var (
	optimizeAlgorithm   string
	optimizeParams      []string
	optimizeTargets     []string
	optimizeStd         float64
	optimizeMin         float64
	optimizeMax         float64
	optimizePopulation  int
	optimizeGenerations int
)

var optimizeCmd = &cobra.Command{
	Use:   "optimize",
	Short: "Tune algorithm parameters with the evolutionary optimizer",
	Long: `Evolves parameter values toward the supplied targets and saves the
result to the local database. Parameters and targets are name=value pairs.

Examples:
  algoctl optimize --algorithm quicksort \
    --param pivot_ratio=0.1 --target pivot_ratio=0.5
  algoctl optimize --algorithm knapsack \
    --param weight=1 --param bias=0 --target weight=3 --target bias=-1 \
    --generations 200`,
	RunE: runOptimize,
}

func init() {
	optimizeCmd.Flags().StringVar(&optimizeAlgorithm, "algorithm", "", "Algorithm name (required)")
	optimizeCmd.Flags().StringArrayVar(&optimizeParams, "param", nil, "Initial parameter as name=value (repeatable)")
	optimizeCmd.Flags().StringArrayVar(&optimizeTargets, "target", nil, "Target value as name=value (repeatable)")
	optimizeCmd.Flags().Float64Var(&optimizeStd, "std", 1.0, "Mutation standard deviation")
	optimizeCmd.Flags().Float64Var(&optimizeMin, "min", -1e6, "Lower clamp for mutated values")
	optimizeCmd.Flags().Float64Var(&optimizeMax, "max", 1e6, "Upper clamp for mutated values")
	optimizeCmd.Flags().IntVar(&optimizePopulation, "population", 0, "Population size (overrides config)")
	optimizeCmd.Flags().IntVar(&optimizeGenerations, "generations", 0, "Generation count (overrides config)")
	_ = optimizeCmd.MarkFlagRequired("algorithm")
	_ = optimizeCmd.MarkFlagRequired("param")
	_ = optimizeCmd.MarkFlagRequired("target")
}

// parsePairs converts repeated name=value flags into a map.
func parsePairs(pairs []string) (map[string]float64, error) {
	parsed := make(map[string]float64, len(pairs))
	for _, pair := range pairs {
		name, raw, found := strings.Cut(pair, "=")
		if !found || name == "" {
			return nil, errors.WithFields(
				errors.New(errors.InvalidInput, "expected name=value"),
				errors.Fields{"argument": pair},
			)
		}
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, errors.WithFields(
				errors.Wrap(err, errors.InvalidInput, "value is not a number"),
				errors.Fields{"argument": pair},
			)
		}
		parsed[name] = value
	}
	return parsed, nil
}

func runOptimize(cmd *cobra.Command, args []string) error {
	params, err := parsePairs(optimizeParams)
	if err != nil {
		return err
	}
	targets, err := parsePairs(optimizeTargets)
	if err != nil {
		return err
	}
	for name := range targets {
		if _, ok := params[name]; !ok {
			return errors.WithFields(
				errors.New(errors.InvalidInput, "target refers to unknown parameter"),
				errors.Fields{"parameter": name},
			)
		}
	}

	evo := cfg.Evolution
	geneticCfg := &genetic.Config{
		PopulationSize:   evo.PopulationSize,
		Generations:      evo.Generations,
		MutationRate:     evo.MutationRate,
		CrossoverRate:    evo.CrossoverRate,
		TournamentSize:   evo.TournamentSize,
		ConcurrencyLevel: evo.ConcurrencyLevel,
		Seed:             evo.Seed,
	}
	if optimizePopulation > 0 {
		geneticCfg.PopulationSize = optimizePopulation
	}
	if optimizeGenerations > 0 {
		geneticCfg.Generations = optimizeGenerations
	}

	mutation := make(genetic.MutationConfig, len(params))
	for name := range params {
		mutation[name] = genetic.MutationParams{Std: optimizeStd, Min: optimizeMin, Max: optimizeMax}
	}

	optimizer, err := agent.NewParameterOptimizer(optimizeAlgorithm, params, geneticCfg)
	if err != nil {
		return err
	}

	fitness := func(candidate map[string]float64) (float64, error) {
		total := 0.0
		for name, target := range targets {
			diff := candidate[name] - target
			total += diff * diff
		}
		return -total, nil
	}

	result, err := optimizer.Optimize(cmd.Context(), fitness, mutation)
	if err != nil {
		return err
	}

	db, err := store.New(cfg.Storage.Path)
	if err != nil {
		return err
	}
	defer db.Close()
	if err := db.SaveOptimization(cmd.Context(), *result); err != nil {
		return err
	}

	fmt.Printf("Algorithm:    %s\n", result.Algorithm)
	fmt.Printf("Best fitness: %.6f\n", result.BestFitness)
	names := make([]string, 0, len(result.BestParams))
	for name := range result.BestParams {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("  %s = %.6f\n", name, result.BestParams[name])
	}
	fmt.Printf("Run ID:       %s\n", result.ID)
	return nil
}
