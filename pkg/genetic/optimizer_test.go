package genetic

import (
	"context"
	"math"
	"sync/atomic"
	"testing"

	"github.com/HIMANSHU895060/ai-algorithm-discovery-agent/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// parabola peaks at x=5 with fitness 0.
func parabola(genes map[string]float64) (float64, error) {
	d := genes["x"] - 5
	return -(d * d), nil
}

var xBounds = MutationConfig{
	"x": {Std: 1.0, Min: -50, Max: 50},
}

func TestNewMergesDefaults(t *testing.T) {
	o, err := New(&Config{Seed: 1})
	require.NoError(t, err)
	assert.Equal(t, 50, o.config.PopulationSize)
	assert.Equal(t, 100, o.config.Generations)
	assert.Equal(t, 3, o.config.TournamentSize)
	assert.Equal(t, 4, o.config.ConcurrencyLevel)

	o, err = New(nil)
	require.NoError(t, err)
	assert.Equal(t, 50, o.config.PopulationSize)
}

func TestNewRejectsBadRates(t *testing.T) {
	_, err := New(&Config{MutationRate: 1.5})
	require.Error(t, err)
	assert.Equal(t, errors.InvalidInput, errors.CodeOf(err))

	_, err = New(&Config{CrossoverRate: -0.2})
	require.Error(t, err)
	assert.Equal(t, errors.InvalidInput, errors.CodeOf(err))

	_, err = New(&Config{PopulationSize: -5})
	require.Error(t, err)
	assert.Equal(t, errors.InvalidInput, errors.CodeOf(err))
}

func TestEvolveEmptyTemplates(t *testing.T) {
	o, err := New(&Config{Seed: 1})
	require.NoError(t, err)

	_, err = o.Evolve(context.Background(), nil, parabola, xBounds)
	require.Error(t, err)
	assert.Equal(t, errors.NoTemplates, errors.CodeOf(err))
}

func TestEvolveHistoryInvariants(t *testing.T) {
	o, err := New(&Config{
		PopulationSize: 20,
		Generations:    30,
		MutationRate:   0.1,
		CrossoverRate:  0.8,
		TournamentSize: 3,
		Seed:           42,
	})
	require.NoError(t, err)

	templates := []map[string]float64{{"x": 0.0}}
	result, err := o.Evolve(context.Background(), templates, parabola, xBounds)
	require.NoError(t, err)
	require.Len(t, result.History, 30)

	// Elitism: best fitness never decreases across generations.
	for i := 1; i < len(result.History); i++ {
		assert.GreaterOrEqual(t, result.History[i].BestFitness, result.History[i-1].BestFitness,
			"best fitness regressed at generation %d", i)
	}

	// The returned best must be at least as good as every recorded best.
	last := result.History[len(result.History)-1]
	assert.GreaterOrEqual(t, result.Best.Fitness, last.BestFitness)
	assert.True(t, result.Best.Evaluated())
}

func TestEvolvePopulationSizeStaysFixed(t *testing.T) {
	const size = 17
	o, err := New(&Config{
		PopulationSize: size,
		Generations:    10,
		MutationRate:   0.5,
		CrossoverRate:  0.8,
		Seed:           7,
	})
	require.NoError(t, err)

	var evaluations atomic.Int64
	counting := func(genes map[string]float64) (float64, error) {
		evaluations.Add(1)
		return parabola(genes)
	}

	result, err := o.Evolve(context.Background(), []map[string]float64{{"x": 0.0}}, counting, xBounds)
	require.NoError(t, err)
	require.Len(t, result.History, 10)

	// N initial evaluations plus N-1 offspring per generation (the elite
	// carries its fitness over).
	assert.Equal(t, int64(size+10*(size-1)), evaluations.Load())
}

func TestMutationClampInvariant(t *testing.T) {
	o, err := New(&Config{
		PopulationSize: 30,
		Generations:    40,
		MutationRate:   1.0, // mutate every child
		CrossoverRate:  0.8,
		Seed:           3,
	})
	require.NoError(t, err)

	bounds := MutationConfig{"x": {Std: 10.0, Min: -2, Max: 2}}
	inspect := func(genes map[string]float64) (float64, error) {
		assert.GreaterOrEqual(t, genes["x"], -2.0)
		assert.LessOrEqual(t, genes["x"], 2.0)
		return genes["x"], nil
	}

	_, err = o.Evolve(context.Background(), []map[string]float64{{"x": 0.0}}, inspect, bounds)
	require.NoError(t, err)
}

func TestUnconfiguredParametersUntouched(t *testing.T) {
	o, err := New(&Config{
		PopulationSize: 10,
		Generations:    20,
		MutationRate:   1.0,
		CrossoverRate:  0.8,
		Seed:           5,
	})
	require.NoError(t, err)

	templates := []map[string]float64{{"x": 0.0, "pinned": 3.14}}
	fitness := func(genes map[string]float64) (float64, error) {
		assert.Equal(t, 3.14, genes["pinned"], "parameter without bounds must never change")
		return parabola(genes)
	}

	_, err = o.Evolve(context.Background(), templates, fitness, xBounds)
	require.NoError(t, err)
}

func TestEvolveConvergesOnParabola(t *testing.T) {
	o, err := New(&Config{
		PopulationSize: 30,
		Generations:    50,
		MutationRate:   0.1,
		CrossoverRate:  0.8,
		TournamentSize: 3,
		Seed:           42,
	})
	require.NoError(t, err)

	result, err := o.Evolve(context.Background(), []map[string]float64{{"x": 0.0}}, parabola, xBounds)
	require.NoError(t, err)

	assert.InDelta(t, 5.0, result.Best.Genes["x"], 0.5)
	assert.InDelta(t, 0.0, result.Best.Fitness, 0.25)
}

func TestFitnessErrorsPropagate(t *testing.T) {
	o, err := New(&Config{
		PopulationSize: 10,
		Generations:    5,
		Seed:           1,
	})
	require.NoError(t, err)

	var calls atomic.Int64
	failing := func(genes map[string]float64) (float64, error) {
		if calls.Add(1) > 15 {
			return 0, errors.New(errors.Unknown, "objective service unavailable")
		}
		return parabola(genes)
	}

	_, err = o.Evolve(context.Background(), []map[string]float64{{"x": 0.0}}, failing, xBounds)
	require.Error(t, err)
	assert.Equal(t, errors.EvaluationFailed, errors.CodeOf(err))
}

func TestEvolveRespectsCancellation(t *testing.T) {
	o, err := New(&Config{
		PopulationSize: 10,
		Generations:    1000,
		Seed:           1,
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	var calls atomic.Int64
	fitness := func(genes map[string]float64) (float64, error) {
		if calls.Add(1) == 50 {
			cancel()
		}
		return parabola(genes)
	}

	_, err = o.Evolve(ctx, []map[string]float64{{"x": 0.0}}, fitness, xBounds)
	require.Error(t, err)
	assert.Equal(t, errors.Canceled, errors.CodeOf(err))
}

func TestDeterministicReplayWithSeed(t *testing.T) {
	run := func() *Result {
		o, err := New(&Config{
			PopulationSize: 15,
			Generations:    20,
			MutationRate:   0.2,
			CrossoverRate:  0.8,
			Seed:           99,
		})
		require.NoError(t, err)
		// ConcurrencyLevel 1 removes evaluation-order effects entirely;
		// with a pure fitness function results match regardless.
		result, err := o.Evolve(context.Background(), []map[string]float64{{"x": 0.0}}, parabola, xBounds)
		require.NoError(t, err)
		return result
	}

	first := run()
	second := run()

	assert.Equal(t, first.Best.Genes, second.Best.Genes)
	assert.Equal(t, first.History, second.History)
}

func TestCrossoverOnlySharedKeys(t *testing.T) {
	o, err := New(&Config{Seed: 11})
	require.NoError(t, err)

	p1 := NewGenome(map[string]float64{"x": 1, "only_p1": 7})
	p2 := NewGenome(map[string]float64{"x": 2, "only_p2": 8})

	child := o.crossover(p1, p2)

	assert.Contains(t, []float64{1.0, 2.0}, child.Genes["x"])
	assert.NotContains(t, child.Genes, "only_p1")
	assert.NotContains(t, child.Genes, "only_p2")
	assert.True(t, math.IsNaN(child.Fitness))
}
