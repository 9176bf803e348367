package genetic

import (
	"math/rand"
	"testing"

	"github.com/HIMANSHU895060/ai-algorithm-discovery-agent/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGenomeDeepCopiesTemplate(t *testing.T) {
	template := map[string]float64{"x": 1.0, "y": 2.0}
	g := NewGenome(template)

	template["x"] = 99.0

	assert.Equal(t, 1.0, g.Genes["x"])
	assert.False(t, g.Evaluated(), "fresh genome must have no fitness")
}

func TestCloneNeverAliases(t *testing.T) {
	parent := NewGenome(map[string]float64{"x": 1.0})
	parent.Fitness = 0.5

	child := parent.Clone()
	child.Genes["x"] = -1.0

	assert.Equal(t, 1.0, parent.Genes["x"], "mutating a clone must not touch the parent")
	assert.Equal(t, 0.5, child.Fitness)
}

func TestNewPopulation(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	templates := []map[string]float64{
		{"x": 0.0},
		{"x": 10.0},
	}

	population, err := NewPopulation(rng, templates, 40)
	require.NoError(t, err)
	assert.Len(t, population, 40)

	for _, g := range population {
		assert.False(t, g.Evaluated())
		assert.Contains(t, []float64{0.0, 10.0}, g.Genes["x"])
	}
}

func TestNewPopulationEmptyTemplates(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	_, err := NewPopulation(rng, nil, 10)
	require.Error(t, err)
	assert.Equal(t, errors.NoTemplates, errors.CodeOf(err))
}

func TestNewPopulationInvalidSize(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	templates := []map[string]float64{{"x": 0.0}}

	_, err := NewPopulation(rng, templates, 0)
	require.Error(t, err)
	assert.Equal(t, errors.InvalidInput, errors.CodeOf(err))

	_, err = NewPopulation(rng, templates, -3)
	require.Error(t, err)
	assert.Equal(t, errors.InvalidInput, errors.CodeOf(err))
}

func TestPopulationBestAndMean(t *testing.T) {
	a := NewGenome(map[string]float64{"x": 1})
	a.Fitness = 0.2
	b := NewGenome(map[string]float64{"x": 2})
	b.Fitness = 0.8
	c := NewGenome(map[string]float64{"x": 3})
	c.Fitness = -0.4

	population := Population{a, b, c}

	assert.Same(t, b, population.Best())
	assert.InDelta(t, 0.2, population.MeanFitness(), 1e-9)

	var empty Population
	assert.Nil(t, empty.Best())
	assert.Zero(t, empty.MeanFitness())
}
