package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HIMANSHU895060/ai-algorithm-discovery-agent/pkg/errors"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, 0.1, cfg.Learning.LearningRate)
	assert.Equal(t, 0.95, cfg.Learning.DiscountFactor)
	assert.Equal(t, 0.1, cfg.Learning.Epsilon)
	assert.Equal(t, 50, cfg.Evolution.PopulationSize)
	assert.Equal(t, 100, cfg.Evolution.Generations)
	assert.Equal(t, 0.1, cfg.Evolution.MutationRate)
	assert.Equal(t, 0.8, cfg.Evolution.CrossoverRate)
	assert.Equal(t, 3, cfg.Evolution.TournamentSize)
	assert.Equal(t, ":8080", cfg.Server.Addr)

	require.NoError(t, cfg.Validate())
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfigFile(t, `
learning:
  epsilon: 0.25
evolution:
  population_size: 20
  generations: 10
  mutation_bounds:
    batch_size:
      std: 2.0
      min: 1.0
      max: 128.0
server:
  addr: ":9090"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	// Explicit values win, untouched fields keep defaults.
	assert.Equal(t, 0.25, cfg.Learning.Epsilon)
	assert.Equal(t, 0.1, cfg.Learning.LearningRate)
	assert.Equal(t, 20, cfg.Evolution.PopulationSize)
	assert.Equal(t, 10, cfg.Evolution.Generations)
	assert.Equal(t, 0.8, cfg.Evolution.CrossoverRate)
	assert.Equal(t, ":9090", cfg.Server.Addr)

	bound, ok := cfg.Evolution.MutationBounds["batch_size"]
	require.True(t, ok)
	assert.Equal(t, 2.0, bound.Std)
	assert.Equal(t, 1.0, bound.Min)
	assert.Equal(t, 128.0, bound.Max)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Equal(t, errors.ResourceNotFound, errors.CodeOf(err))
}

func TestLoadMalformedYAML(t *testing.T) {
	path := writeConfigFile(t, "learning: [not a mapping")

	_, err := Load(path)
	require.Error(t, err)
	assert.Equal(t, errors.InvalidInput, errors.CodeOf(err))
}

func TestValidateRejectsOutOfRange(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"epsilon above one", func(c *Config) { c.Learning.Epsilon = 1.5 }},
		{"negative learning rate", func(c *Config) { c.Learning.LearningRate = -0.1 }},
		{"zero population", func(c *Config) { c.Evolution.PopulationSize = 0 }},
		{"mutation rate above one", func(c *Config) { c.Evolution.MutationRate = 2.0 }},
		{"inverted mutation bound", func(c *Config) {
			c.Evolution.MutationBounds = map[string]MutationBound{
				"x": {Std: 1.0, Min: 10.0, Max: 0.0},
			}
		}},
		{"unknown log level", func(c *Config) { c.Logging.Level = "LOUD" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			err := cfg.Validate()
			require.Error(t, err)
			assert.Equal(t, errors.ValidationFailed, errors.CodeOf(err))
		})
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	path := writeConfigFile(t, `
learning:
  epsilon: 3.0
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Equal(t, errors.ValidationFailed, errors.CodeOf(err))
}
