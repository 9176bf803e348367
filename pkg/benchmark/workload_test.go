package benchmark

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkloadStepsScaleWithClass(t *testing.T) {
	n := 1024

	constant := stepsFor("O(1)", n)
	logarithmic := stepsFor("O(log n)", n)
	linear := stepsFor("O(n)", n)
	linearithmic := stepsFor("O(n log n)", n)
	quadratic := stepsFor("O(n^2)", n)

	assert.Equal(t, 1, constant)
	assert.Less(t, logarithmic, linear)
	assert.Less(t, linear, linearithmic)
	assert.Less(t, linearithmic, quadratic)
}

func TestWorkloadUnknownClassFallsBackToLinear(t *testing.T) {
	assert.Equal(t, stepsFor("O(n)", 500), stepsFor("Unknown", 500))
	assert.Equal(t, stepsFor("O(n)", 500), stepsFor("O(V+E)", 500))
}

func TestWorkloadRunsUnderRunner(t *testing.T) {
	runner, err := NewRunner("binary_search", Workload("O(log n)", 4096))
	require.NoError(t, err)

	result := runner.Run(context.Background(), 4096, 3)

	assert.True(t, result.Success)
	assert.Equal(t, "binary_search", result.AlgorithmName)
	assert.Equal(t, 4096, result.InputSize)
}

func TestWorkloadClampsInputSize(t *testing.T) {
	fn := Workload("O(n^2)", 0)
	require.NoError(t, fn())
}
