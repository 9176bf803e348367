package genetic

import (
	"context"
	"math/rand"
	"sort"
	"time"

	"github.com/sourcegraph/conc/pool"

	"github.com/HIMANSHU895060/ai-algorithm-discovery-agent/pkg/errors"
	"github.com/HIMANSHU895060/ai-algorithm-discovery-agent/pkg/logging"
)

// Config contains configuration options for the evolutionary optimizer.
type Config struct {
	PopulationSize   int     `json:"population_size"`   // Default: 50
	Generations      int     `json:"generations"`       // Default: 100
	MutationRate     float64 `json:"mutation_rate"`     // Default: 0.1
	CrossoverRate    float64 `json:"crossover_rate"`    // Default: 0.8
	TournamentSize   int     `json:"tournament_size"`   // Default: 3
	ConcurrencyLevel int     `json:"concurrency_level"` // Default: 4
	Seed             int64   `json:"seed"`              // Default: time-based
}

// DefaultConfig returns the default configuration for the optimizer.
func DefaultConfig() *Config {
	return &Config{
		PopulationSize:   50,
		Generations:      100,
		MutationRate:     0.1,
		CrossoverRate:    0.8,
		TournamentSize:   3,
		ConcurrencyLevel: 4,
	}
}

// GenerationStats is one history entry recorded per generation.
type GenerationStats struct {
	Generation  int     `json:"generation"`
	BestFitness float64 `json:"best_fitness"`
	MeanFitness float64 `json:"mean_fitness"`
}

// Result is produced once per optimization run and immutable after return.
type Result struct {
	Best    *Genome           `json:"best"`
	History []GenerationStats `json:"history"`
}

// Optimizer drives generations of fitness evaluation, tournament selection,
// uniform crossover, Gaussian mutation and single-genome elitism.
type Optimizer struct {
	config *Config
	rng    *rand.Rand
}

// New creates an optimizer from config, merging zero-valued fields with
// defaults.
func New(config *Config) (*Optimizer, error) {
	if config == nil {
		config = DefaultConfig()
	}

	defaults := DefaultConfig()
	if config.PopulationSize == 0 {
		config.PopulationSize = defaults.PopulationSize
	}
	if config.Generations == 0 {
		config.Generations = defaults.Generations
	}
	if config.TournamentSize <= 0 {
		config.TournamentSize = defaults.TournamentSize
	}
	if config.ConcurrencyLevel <= 0 {
		config.ConcurrencyLevel = defaults.ConcurrencyLevel
	}

	if config.PopulationSize < 0 {
		return nil, errors.WithFields(
			errors.New(errors.InvalidInput, "population size must be positive"),
			errors.Fields{"population_size": config.PopulationSize},
		)
	}
	if config.Generations < 0 {
		return nil, errors.WithFields(
			errors.New(errors.InvalidInput, "generation count must be positive"),
			errors.Fields{"generations": config.Generations},
		)
	}
	if config.MutationRate < 0 || config.MutationRate > 1 {
		return nil, errors.WithFields(
			errors.New(errors.InvalidInput, "mutation rate must be in [0, 1]"),
			errors.Fields{"mutation_rate": config.MutationRate},
		)
	}
	if config.CrossoverRate < 0 || config.CrossoverRate > 1 {
		return nil, errors.WithFields(
			errors.New(errors.InvalidInput, "crossover rate must be in [0, 1]"),
			errors.Fields{"crossover_rate": config.CrossoverRate},
		)
	}

	seed := config.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	return &Optimizer{
		config: config,
		rng:    rand.New(rand.NewSource(seed)),
	}, nil
}

// Evolve runs the full generation loop and returns the fittest genome of the
// final population along with the per-generation fitness history.
//
// Reproduction is sequential (it consumes the optimizer's random stream);
// fitness evaluation of each generation's offspring runs concurrently, and a
// generation only begins once the previous one is fully evaluated. Fitness
// errors abandon the run and propagate to the caller.
func (o *Optimizer) Evolve(ctx context.Context, templates []map[string]float64, fitnessFn FitnessFunc, mutation MutationConfig) (*Result, error) {
	logger := logging.GetLogger()

	population, err := NewPopulation(o.rng, templates, o.config.PopulationSize)
	if err != nil {
		return nil, err
	}

	if err := o.evaluate(ctx, population, fitnessFn); err != nil {
		return nil, err
	}

	history := make([]GenerationStats, 0, o.config.Generations)

	for generation := 0; generation < o.config.Generations; generation++ {
		if err := errors.CheckContext(ctx, "evolution"); err != nil {
			return nil, err
		}

		history = append(history, GenerationStats{
			Generation:  generation,
			BestFitness: population.Best().Fitness,
			MeanFitness: population.MeanFitness(),
		})

		// Elitism: the single best genome survives verbatim, which keeps
		// best-fitness-so-far non-decreasing across generations.
		next := make(Population, 0, o.config.PopulationSize)
		next = append(next, population.Best().Clone())

		offspring := make(Population, 0, o.config.PopulationSize-1)
		for len(next)+len(offspring) < o.config.PopulationSize {
			var child *Genome
			if o.rng.Float64() < o.config.CrossoverRate {
				parent1 := o.tournament(population)
				parent2 := o.tournament(population)
				child = o.crossover(parent1, parent2)
			} else {
				child = o.tournament(population).Clone()
			}
			o.mutate(child, mutation)
			offspring = append(offspring, child)
		}

		if err := o.evaluate(ctx, offspring, fitnessFn); err != nil {
			return nil, errors.WithFields(err, errors.Fields{"generation": generation})
		}

		population = append(next, offspring...)[:o.config.PopulationSize]

		if (generation+1)%10 == 0 {
			logger.Debug(ctx, "generation %d complete: best=%.4f mean=%.4f",
				generation+1, population.Best().Fitness, population.MeanFitness())
		}
	}

	best := population.Best().Clone()
	logger.Info(ctx, "evolution finished: generations=%d, best_fitness=%.4f",
		o.config.Generations, best.Fitness)

	return &Result{Best: best, History: history}, nil
}

// evaluate scores every genome concurrently. Each goroutine writes only its
// own genome; the first fitness error cancels the run.
func (o *Optimizer) evaluate(ctx context.Context, genomes Population, fitnessFn FitnessFunc) error {
	p := pool.New().WithErrors().WithFirstError().WithMaxGoroutines(o.config.ConcurrencyLevel)

	for _, genome := range genomes {
		genome := genome
		p.Go(func() error {
			if err := errors.CheckContext(ctx, "fitness evaluation"); err != nil {
				return err
			}
			fitness, err := fitnessFn(genome.Genes)
			if err != nil {
				return errors.Wrap(err, errors.EvaluationFailed, "fitness evaluation failed")
			}
			genome.Fitness = fitness
			return nil
		})
	}

	return p.Wait()
}

// tournament samples TournamentSize genomes uniformly and keeps the fittest.
func (o *Optimizer) tournament(population Population) *Genome {
	best := population[o.rng.Intn(len(population))]
	for i := 1; i < o.config.TournamentSize; i++ {
		contender := population[o.rng.Intn(len(population))]
		if contender.Fitness > best.Fitness {
			best = contender
		}
	}
	return best
}

// crossover produces a child by, for each parameter present in both parents,
// taking the value from one of them uniformly at random. No blending.
func (o *Optimizer) crossover(parent1, parent2 *Genome) *Genome {
	keys := make([]string, 0, len(parent1.Genes))
	for key := range parent1.Genes {
		if _, ok := parent2.Genes[key]; ok {
			keys = append(keys, key)
		}
	}
	// Sorted iteration keeps seeded runs replayable.
	sort.Strings(keys)

	genes := make(map[string]float64, len(keys))
	for _, key := range keys {
		if o.rng.Float64() < 0.5 {
			genes[key] = parent1.Genes[key]
		} else {
			genes[key] = parent2.Genes[key]
		}
	}
	return NewGenome(genes)
}

// mutate perturbs the genome in place: with probability MutationRate each
// configured parameter gains Gaussian noise of the configured deviation,
// clamped to [Min, Max]. Unconfigured parameters are left untouched.
func (o *Optimizer) mutate(genome *Genome, mutation MutationConfig) {
	if o.rng.Float64() >= o.config.MutationRate {
		return
	}

	keys := make([]string, 0, len(genome.Genes))
	for key := range genome.Genes {
		if _, ok := mutation[key]; ok {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)

	for _, key := range keys {
		params := mutation[key]
		value := genome.Genes[key] + o.rng.NormFloat64()*params.Std
		if value < params.Min {
			value = params.Min
		}
		if value > params.Max {
			value = params.Max
		}
		genome.Genes[key] = value
	}
}
