package agent

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HIMANSHU895060/ai-algorithm-discovery-agent/pkg/errors"
	"github.com/HIMANSHU895060/ai-algorithm-discovery-agent/pkg/genetic"
)

func TestNewParameterOptimizerValidation(t *testing.T) {
	_, err := NewParameterOptimizer("", map[string]float64{"x": 0}, nil)
	require.Error(t, err)
	assert.Equal(t, errors.InvalidInput, errors.CodeOf(err))

	_, err = NewParameterOptimizer("quicksort", nil, nil)
	require.Error(t, err)
	assert.Equal(t, errors.NoTemplates, errors.CodeOf(err))
}

func TestOptimizeEndToEnd(t *testing.T) {
	po, err := NewParameterOptimizer("quicksort", map[string]float64{"x": 0.0}, &genetic.Config{
		PopulationSize: 30,
		Generations:    50,
		MutationRate:   0.1,
		CrossoverRate:  0.8,
		TournamentSize: 3,
		Seed:           42,
	})
	require.NoError(t, err)

	fitness := func(genes map[string]float64) (float64, error) {
		d := genes["x"] - 5
		return -(d * d), nil
	}
	mutation := genetic.MutationConfig{"x": {Std: 1.0, Min: -50, Max: 50}}

	result, err := po.Optimize(context.Background(), fitness, mutation)
	require.NoError(t, err)

	assert.Equal(t, "quicksort", result.Algorithm)
	assert.NotEmpty(t, result.ID)
	assert.InDelta(t, 5.0, result.BestParams["x"], 0.5)
	assert.InDelta(t, 0.0, result.BestFitness, 0.25)
	assert.Len(t, result.BestFitnessHistory, 50)
	assert.Len(t, result.AvgFitnessHistory, 50)

	// Elitism keeps recorded best fitness monotone.
	for i := 1; i < len(result.BestFitnessHistory); i++ {
		assert.GreaterOrEqual(t, result.BestFitnessHistory[i], result.BestFitnessHistory[i-1])
	}
}

func TestOptimizePropagatesFitnessFailure(t *testing.T) {
	po, err := NewParameterOptimizer("heapsort", map[string]float64{"x": 0.0}, &genetic.Config{
		PopulationSize: 10,
		Generations:    5,
		Seed:           1,
	})
	require.NoError(t, err)

	failing := func(genes map[string]float64) (float64, error) {
		return 0, errors.New(errors.Unknown, "measurement rig offline")
	}

	_, err = po.Optimize(context.Background(), failing, nil)
	require.Error(t, err)
	assert.Equal(t, errors.EvaluationFailed, errors.CodeOf(err))
}

func TestTemplateIsCopied(t *testing.T) {
	initial := map[string]float64{"x": 0.0}
	po, err := NewParameterOptimizer("mergesort", initial, &genetic.Config{
		PopulationSize: 5,
		Generations:    2,
		Seed:           1,
	})
	require.NoError(t, err)

	initial["x"] = 1000.0

	fitness := func(genes map[string]float64) (float64, error) {
		assert.Equal(t, 0.0, genes["x"], "optimizer must own a copy of the template")
		return 0, nil
	}

	_, err = po.Optimize(context.Background(), fitness, nil)
	require.NoError(t, err)
}
