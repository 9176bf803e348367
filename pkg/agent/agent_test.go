package agent

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HIMANSHU895060/ai-algorithm-discovery-agent/pkg/catalog"
	"github.com/HIMANSHU895060/ai-algorithm-discovery-agent/pkg/errors"
	"github.com/HIMANSHU895060/ai-algorithm-discovery-agent/pkg/policy"
)

type mockSink struct {
	mu         sync.Mutex
	discovered []DiscoveryRecord
	events     []LearningEvent
	saved      chan struct{}
}

func newMockSink() *mockSink {
	return &mockSink{saved: make(chan struct{}, 64)}
}

func (m *mockSink) SaveDiscovery(ctx context.Context, record DiscoveryRecord) error {
	m.mu.Lock()
	m.discovered = append(m.discovered, record)
	m.mu.Unlock()
	m.saved <- struct{}{}
	return nil
}

func (m *mockSink) SaveLearningEvent(ctx context.Context, event LearningEvent) error {
	m.mu.Lock()
	m.events = append(m.events, event)
	m.mu.Unlock()
	m.saved <- struct{}{}
	return nil
}

func (m *mockSink) waitForSave(t *testing.T) {
	t.Helper()
	select {
	case <-m.saved:
	case <-time.After(2 * time.Second):
		t.Fatal("sink was never called")
	}
}

func newTestAgent(t *testing.T, sink Sink) *Agent {
	t.Helper()
	a, err := New(&Config{
		Policy: &policy.Config{
			LearningRate:   0.1,
			DiscountFactor: 0.95,
			Epsilon:        0.1,
			Seed:           42,
		},
		Sink: sink,
	})
	require.NoError(t, err)
	return a
}

func TestDiscoverReturnsCatalogEntry(t *testing.T) {
	a := newTestAgent(t, nil)
	cat := catalog.Default()

	record, err := a.Discover(context.Background(), "sorting", 100)
	require.NoError(t, err)

	sorting := cat.AlgorithmsFor("sorting")
	assert.Contains(t, sorting, record.SelectedAlgorithm)

	complexity := cat.ComplexityOf("sorting", record.SelectedAlgorithm)
	assert.Equal(t, complexity.Time, record.TimeComplexity)
	assert.Equal(t, complexity.Space, record.SpaceComplexity)

	assert.Equal(t, "sorting", record.Category)
	assert.Equal(t, 100, record.InputSize)
	assert.NotEmpty(t, record.ID)
	assert.False(t, record.CreatedAt.IsZero())
	assert.Zero(t, record.QualityScore, "fresh coordinator has no measured quality yet")

	assert.Equal(t, 1, a.Visits("sorting", 100))
	assert.Len(t, a.History(0), 1)
}

func TestDiscoverUnknownCategory(t *testing.T) {
	a := newTestAgent(t, nil)

	_, err := a.Discover(context.Background(), "unknown_domain", 10)
	require.Error(t, err)
	assert.Equal(t, errors.UnknownCategory, errors.CodeOf(err))

	assert.Empty(t, a.History(0), "a failed discovery must append nothing to history")
	assert.Zero(t, a.Visits("unknown_domain", 10))
}

func TestDiscoverCategoryWithNoAlgorithms(t *testing.T) {
	// A configured category with zero algorithms is distinct from an
	// unknown category.
	empty := catalog.New(map[string][]catalog.AlgorithmInfo{"misconfigured": {}})
	a, err := New(&Config{Catalog: empty, Policy: &policy.Config{LearningRate: 0.1, DiscountFactor: 0.95, Epsilon: 0.1, Seed: 1}})
	require.NoError(t, err)

	_, err = a.Discover(context.Background(), "misconfigured", 5)
	require.Error(t, err)
	assert.Equal(t, errors.NoLegalActions, errors.CodeOf(err))
}

func TestObserveRewardShapesSelection(t *testing.T) {
	a, err := New(&Config{
		Policy: &policy.Config{
			LearningRate:   0.1,
			DiscountFactor: 0.95,
			Epsilon:        0, // pure exploitation
			Seed:           42,
		},
	})
	require.NoError(t, err)
	ctx := context.Background()

	for i := 0; i < 50; i++ {
		require.NoError(t, a.ObserveReward(ctx, "searching", 1000, "binary_search", 1.0))
	}

	best, err := a.BestAlgorithm("searching", 1000)
	require.NoError(t, err)
	assert.Equal(t, "binary_search", best)

	for i := 0; i < 20; i++ {
		record, err := a.Discover(ctx, "searching", 1000)
		require.NoError(t, err)
		assert.Equal(t, "binary_search", record.SelectedAlgorithm)
		assert.Greater(t, record.QualityScore, 0.0, "quality comes from accumulated feedback")
	}
}

func TestObserveRewardUnknownCategory(t *testing.T) {
	a := newTestAgent(t, nil)

	err := a.ObserveReward(context.Background(), "nope", 1, "quicksort", 1.0)
	require.Error(t, err)
	assert.Equal(t, errors.UnknownCategory, errors.CodeOf(err))
}

// TestObserveRewardRejectsUnknownAlgorithm guards against typo'd feedback
// creating phantom actions that BestAlgorithm could later prefer.
func TestObserveRewardRejectsUnknownAlgorithm(t *testing.T) {
	a := newTestAgent(t, nil)

	err := a.ObserveReward(context.Background(), "sorting", 100, "quicksrot", 1.0)
	require.Error(t, err)
	assert.Equal(t, errors.InvalidInput, errors.CodeOf(err))

	// The typo must not have seeded any value for the state.
	_, err = a.BestAlgorithm("sorting", 100)
	require.Error(t, err)
	assert.Equal(t, errors.NoData, errors.CodeOf(err))
}

func TestBestAlgorithmNoData(t *testing.T) {
	a := newTestAgent(t, nil)

	_, err := a.BestAlgorithm("sorting", 123)
	require.Error(t, err)
	assert.Equal(t, errors.NoData, errors.CodeOf(err))
}

func TestHistoryLimit(t *testing.T) {
	a := newTestAgent(t, nil)
	ctx := context.Background()

	for i := 0; i < 15; i++ {
		_, err := a.Discover(ctx, "graph", i)
		require.NoError(t, err)
	}

	recent := a.History(10)
	assert.Len(t, recent, 10)
	assert.Equal(t, 5, recent[0].InputSize, "History returns the most recent records")
	assert.Equal(t, 14, recent[len(recent)-1].InputSize)

	assert.Len(t, a.History(0), 15)
	assert.Len(t, a.History(100), 15)
}

func TestSinkReceivesRecords(t *testing.T) {
	sink := newMockSink()
	a := newTestAgent(t, sink)
	ctx := context.Background()

	record, err := a.Discover(ctx, "dp", 64)
	require.NoError(t, err)
	sink.waitForSave(t)

	sink.mu.Lock()
	require.Len(t, sink.discovered, 1)
	assert.Equal(t, record.ID, sink.discovered[0].ID)
	sink.mu.Unlock()

	require.NoError(t, a.ObserveReward(ctx, "dp", 64, record.SelectedAlgorithm, 0.9))
	sink.waitForSave(t)

	sink.mu.Lock()
	require.Len(t, sink.events, 1)
	assert.Equal(t, "dp_64", sink.events[0].State)
	assert.Equal(t, 0.9, sink.events[0].Reward)
	sink.mu.Unlock()
}

func TestReset(t *testing.T) {
	a := newTestAgent(t, nil)
	ctx := context.Background()

	_, err := a.Discover(ctx, "sorting", 100)
	require.NoError(t, err)
	require.NoError(t, a.ObserveReward(ctx, "sorting", 100, "quicksort", 1.0))

	a.Reset()

	assert.Empty(t, a.History(0))
	assert.Zero(t, a.Visits("sorting", 100))
	_, err = a.BestAlgorithm("sorting", 100)
	assert.Equal(t, errors.NoData, errors.CodeOf(err))
}
