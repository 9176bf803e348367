package store

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HIMANSHU895060/ai-algorithm-discovery-agent/pkg/agent"
)

func seedSnapshotStore(t *testing.T, s *SQLiteStore) {
	t.Helper()
	ctx := context.Background()
	base := time.Now().Truncate(time.Second)

	require.NoError(t, s.SaveDiscovery(ctx, agent.DiscoveryRecord{
		ID: "d1", Category: "sorting", InputSize: 100, SelectedAlgorithm: "quicksort",
		TimeComplexity: "O(n log n)", SpaceComplexity: "O(log n)", QualityScore: 0.8, CreatedAt: base,
	}))
	require.NoError(t, s.SaveLearningEvent(ctx, agent.LearningEvent{
		State: "sorting_100", Action: "quicksort", Reward: 0.8, CreatedAt: base,
	}))
	_, err := s.SaveSolution(ctx, Solution{
		Category: "sorting", Code: "func quicksort(a []int) {}", Language: "go", CreatedAt: base,
	})
	require.NoError(t, err)
	require.NoError(t, s.SaveOptimization(ctx, agent.OptimizationResult{
		ID: "opt-1", Algorithm: "quicksort",
		BestParams:         map[string]float64{"pivot_threshold": 12},
		BestFitness:        -0.5,
		BestFitnessHistory: []float64{-2, -0.5},
		AvgFitnessHistory:  []float64{-4, -1},
		CreatedAt:          base,
	}))
}

func TestExportImportRoundTrip(t *testing.T) {
	src := newTestStore(t)
	seedSnapshotStore(t, src)
	ctx := context.Background()

	var buf bytes.Buffer
	require.NoError(t, src.Export(ctx, &buf))
	assert.Contains(t, buf.String(), "exported_at")

	dst := newTestStore(t)
	stats, err := dst.Import(ctx, bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)

	assert.Equal(t, 1, stats.Discoveries)
	assert.Equal(t, 1, stats.LearningEvents)
	assert.Equal(t, 1, stats.Solutions)
	assert.Equal(t, 1, stats.Optimizations)
	assert.Zero(t, stats.Skipped)
	assert.Equal(t, 4, stats.Total())

	discoveries, err := dst.RecentDiscoveries(ctx, 10)
	require.NoError(t, err)
	require.Len(t, discoveries, 1)
	assert.Equal(t, "d1", discoveries[0].ID)

	solutions, err := dst.RecentSolutions(ctx, 10)
	require.NoError(t, err)
	require.Len(t, solutions, 1)
	assert.Equal(t, "go", solutions[0].Language)

	optimizations, err := dst.RecentOptimizations(ctx, 10)
	require.NoError(t, err)
	require.Len(t, optimizations, 1)
	assert.Equal(t, map[string]float64{"pivot_threshold": 12}, optimizations[0].BestParams)
}

func TestImportSkipsDuplicateRows(t *testing.T) {
	src := newTestStore(t)
	seedSnapshotStore(t, src)
	ctx := context.Background()

	var buf bytes.Buffer
	require.NoError(t, src.Export(ctx, &buf))

	// Importing into the source store collides on the primary-keyed tables
	// but appends to the auto-increment ones.
	stats, err := src.Import(ctx, bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)

	assert.Zero(t, stats.Discoveries)
	assert.Zero(t, stats.Optimizations)
	assert.Equal(t, 2, stats.Skipped)
	assert.Equal(t, 1, stats.LearningEvents)
	assert.Equal(t, 1, stats.Solutions)
}

func TestImportRejectsMalformedJSON(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Import(context.Background(), strings.NewReader("{not json"))
	require.Error(t, err)
}

func TestRecentSolutionsSpansCategories(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	base := time.Now().Truncate(time.Second)
	_, err := s.SaveSolution(ctx, Solution{Category: "sorting", Code: "a", CreatedAt: base})
	require.NoError(t, err)
	_, err = s.SaveSolution(ctx, Solution{Category: "graph", Code: "b", CreatedAt: base.Add(time.Second)})
	require.NoError(t, err)

	solutions, err := s.RecentSolutions(ctx, 10)
	require.NoError(t, err)
	require.Len(t, solutions, 2)
	assert.Equal(t, "graph", solutions[0].Category)
	assert.Equal(t, "sorting", solutions[1].Category)
}
