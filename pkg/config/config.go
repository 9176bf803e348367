// Package config defines the configuration surface of the discovery agent
// and loads it from YAML with struct-tag validation.
package config

import (
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/HIMANSHU895060/ai-algorithm-discovery-agent/pkg/errors"
)

// Config is the root configuration.
type Config struct {
	// Learning configures the Q-learning policy.
	Learning LearningConfig `yaml:"learning" validate:"required"`

	// Evolution configures the evolutionary optimizer.
	Evolution EvolutionConfig `yaml:"evolution" validate:"required"`

	// Storage configures the local SQLite store.
	Storage StorageConfig `yaml:"storage,omitempty"`

	// Server configures the HTTP API.
	Server ServerConfig `yaml:"server,omitempty"`

	// Logging configures log output.
	Logging LoggingConfig `yaml:"logging,omitempty"`
}

// LearningConfig holds the policy parameters.
type LearningConfig struct {
	LearningRate   float64 `yaml:"learning_rate" validate:"min=0,max=1"`
	DiscountFactor float64 `yaml:"discount_factor" validate:"min=0,max=1"`
	Epsilon        float64 `yaml:"epsilon" validate:"min=0,max=1"`
	Seed           int64   `yaml:"seed,omitempty"`
}

// EvolutionConfig holds the optimizer parameters.
type EvolutionConfig struct {
	PopulationSize   int                      `yaml:"population_size" validate:"min=1"`
	Generations      int                      `yaml:"generations" validate:"min=1"`
	MutationRate     float64                  `yaml:"mutation_rate" validate:"min=0,max=1"`
	CrossoverRate    float64                  `yaml:"crossover_rate" validate:"min=0,max=1"`
	TournamentSize   int                      `yaml:"tournament_size" validate:"min=1"`
	ConcurrencyLevel int                      `yaml:"concurrency_level" validate:"min=1"`
	Seed             int64                    `yaml:"seed,omitempty"`
	MutationBounds   map[string]MutationBound `yaml:"mutation_bounds,omitempty" validate:"dive"`
}

// MutationBound configures Gaussian mutation for one parameter.
type MutationBound struct {
	Std float64 `yaml:"std" validate:"min=0"`
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max" validate:"gtefield=Min"`
}

// StorageConfig locates the SQLite database.
type StorageConfig struct {
	Path string `yaml:"path,omitempty"`
}

// ServerConfig holds the HTTP listen address.
type ServerConfig struct {
	Addr string `yaml:"addr,omitempty"`
}

// LoggingConfig selects the log level.
type LoggingConfig struct {
	Level string `yaml:"level,omitempty" validate:"omitempty,oneof=DEBUG INFO WARN ERROR FATAL"`
}

// Default returns the configuration with all documented defaults applied.
func Default() *Config {
	return &Config{
		Learning: LearningConfig{
			LearningRate:   0.1,
			DiscountFactor: 0.95,
			Epsilon:        0.1,
		},
		Evolution: EvolutionConfig{
			PopulationSize:   50,
			Generations:      100,
			MutationRate:     0.1,
			CrossoverRate:    0.8,
			TournamentSize:   3,
			ConcurrencyLevel: 4,
		},
		Storage: StorageConfig{
			Path: "discovery.db",
		},
		Server: ServerConfig{
			Addr: ":8080",
		},
		Logging: LoggingConfig{
			Level: "INFO",
		},
	}
}

// Load reads a YAML file over the defaults and validates the result.
func Load(path string) (*Config, error) {
	config := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WithFields(
			errors.Wrap(err, errors.ResourceNotFound, "failed to read config file"),
			errors.Fields{"path": path},
		)
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, errors.WithFields(
			errors.Wrap(err, errors.InvalidInput, "failed to parse config file"),
			errors.Fields{"path": path},
		)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate checks the configuration against its struct tags.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		if errs, ok := err.(validator.ValidationErrors); ok && len(errs) > 0 {
			first := errs[0]
			return errors.WithFields(
				errors.New(errors.ValidationFailed, "invalid configuration"),
				errors.Fields{"field": first.Namespace(), "constraint": first.Tag()},
			)
		}
		return errors.Wrap(err, errors.ValidationFailed, "invalid configuration")
	}
	return nil
}
