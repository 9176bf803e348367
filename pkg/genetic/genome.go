// Package genetic implements the population-based evolutionary optimizer
// used to tune algorithm parameters against an externally supplied fitness
// function.
package genetic

import (
	"math"
	"math/rand"

	"github.com/HIMANSHU895060/ai-algorithm-discovery-agent/pkg/errors"
)

// FitnessFunc scores a parameter mapping. It is supplied by the caller and
// assumed pure; a returned error aborts the optimization run.
type FitnessFunc func(genes map[string]float64) (float64, error)

// MutationParams configures Gaussian perturbation for one parameter.
type MutationParams struct {
	Std float64 `json:"std"`
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// MutationConfig maps parameter names to their mutation bounds. Parameters
// without an entry are never mutated.
type MutationConfig map[string]MutationParams

// Genome is a named set of tunable parameters with a fitness scalar. The
// fitness is NaN until the genome has been evaluated.
type Genome struct {
	Genes   map[string]float64 `json:"genes"`
	Fitness float64            `json:"fitness"`
}

// NewGenome builds a genome by deep-copying the given parameter mapping.
func NewGenome(genes map[string]float64) *Genome {
	copied := make(map[string]float64, len(genes))
	for k, v := range genes {
		copied[k] = v
	}
	return &Genome{Genes: copied, Fitness: math.NaN()}
}

// Clone returns a deep copy. Survivors and crossover parents are always
// cloned so a child never aliases a parent's parameter mapping.
func (g *Genome) Clone() *Genome {
	copied := make(map[string]float64, len(g.Genes))
	for k, v := range g.Genes {
		copied[k] = v
	}
	return &Genome{Genes: copied, Fitness: g.Fitness}
}

// Evaluated reports whether the genome has a recorded fitness.
func (g *Genome) Evaluated() bool {
	return !math.IsNaN(g.Fitness)
}

// Population is a fixed-size ordered collection of genomes. Order carries no
// semantic meaning.
type Population []*Genome

// NewPopulation builds size genomes by sampling templates with replacement,
// deep-copying each sampled template.
func NewPopulation(rng *rand.Rand, templates []map[string]float64, size int) (Population, error) {
	if len(templates) == 0 {
		return nil, errors.New(errors.NoTemplates, "cannot initialize population: no gene templates")
	}
	if size <= 0 {
		return nil, errors.WithFields(
			errors.New(errors.InvalidInput, "population size must be positive"),
			errors.Fields{"size": size},
		)
	}

	population := make(Population, size)
	for i := range population {
		population[i] = NewGenome(templates[rng.Intn(len(templates))])
	}
	return population, nil
}

// Best returns the fittest genome, or nil for an empty population.
func (p Population) Best() *Genome {
	if len(p) == 0 {
		return nil
	}
	best := p[0]
	for _, g := range p[1:] {
		if g.Fitness > best.Fitness {
			best = g
		}
	}
	return best
}

// MeanFitness returns the average fitness across the population.
func (p Population) MeanFitness() float64 {
	if len(p) == 0 {
		return 0
	}
	sum := 0.0
	for _, g := range p {
		sum += g.Fitness
	}
	return sum / float64(len(p))
}
