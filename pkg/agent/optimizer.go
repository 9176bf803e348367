package agent

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/HIMANSHU895060/ai-algorithm-discovery-agent/pkg/errors"
	"github.com/HIMANSHU895060/ai-algorithm-discovery-agent/pkg/genetic"
)

// OptimizationResult is produced once per optimization run and immutable
// after return.
type OptimizationResult struct {
	ID                 string             `json:"id"`
	Algorithm          string             `json:"algorithm"`
	BestParams         map[string]float64 `json:"best_params"`
	BestFitness        float64            `json:"best_fitness"`
	BestFitnessHistory []float64          `json:"best_fitness_history"`
	AvgFitnessHistory  []float64          `json:"avg_fitness_history"`
	CreatedAt          time.Time          `json:"created_at"`
}

// ParameterOptimizer tunes one algorithm's parameters with the evolutionary
// optimizer, starting from an initial parameter template.
type ParameterOptimizer struct {
	algorithm string
	template  map[string]float64
	optimizer *genetic.Optimizer
}

// NewParameterOptimizer builds the optimization façade for an algorithm.
func NewParameterOptimizer(algorithm string, initialParams map[string]float64, config *genetic.Config) (*ParameterOptimizer, error) {
	if algorithm == "" {
		return nil, errors.New(errors.InvalidInput, "algorithm name must not be empty")
	}
	if len(initialParams) == 0 {
		return nil, errors.WithFields(
			errors.New(errors.NoTemplates, "initial parameter template must not be empty"),
			errors.Fields{"algorithm": algorithm},
		)
	}

	optimizer, err := genetic.New(config)
	if err != nil {
		return nil, err
	}

	template := make(map[string]float64, len(initialParams))
	for k, v := range initialParams {
		template[k] = v
	}

	return &ParameterOptimizer{
		algorithm: algorithm,
		template:  template,
		optimizer: optimizer,
	}, nil
}

// Optimize runs the evolution and packages the best genome with the
// per-generation fitness history. Fitness errors propagate unchanged.
func (po *ParameterOptimizer) Optimize(ctx context.Context, fitnessFn genetic.FitnessFunc, mutation genetic.MutationConfig) (*OptimizationResult, error) {
	result, err := po.optimizer.Evolve(ctx, []map[string]float64{po.template}, fitnessFn, mutation)
	if err != nil {
		return nil, errors.WithFields(err, errors.Fields{"algorithm": po.algorithm})
	}

	best := make([]float64, len(result.History))
	avg := make([]float64, len(result.History))
	for i, stats := range result.History {
		best[i] = stats.BestFitness
		avg[i] = stats.MeanFitness
	}

	return &OptimizationResult{
		ID:                 uuid.New().String(),
		Algorithm:          po.algorithm,
		BestParams:         result.Best.Genes,
		BestFitness:        result.Best.Fitness,
		BestFitnessHistory: best,
		AvgFitnessHistory:  avg,
		CreatedAt:          time.Now(),
	}, nil
}
