package store

import (
	"context"
	"encoding/json"
	"io"
	"time"

	"github.com/HIMANSHU895060/ai-algorithm-discovery-agent/pkg/agent"
	"github.com/HIMANSHU895060/ai-algorithm-discovery-agent/pkg/errors"
	"github.com/HIMANSHU895060/ai-algorithm-discovery-agent/pkg/logging"
)

// Snapshot is the JSON interchange format for moving a store's contents
// between databases.
type Snapshot struct {
	ExportedAt     time.Time                  `json:"exported_at"`
	Discoveries    []agent.DiscoveryRecord    `json:"discoveries"`
	LearningEvents []agent.LearningEvent      `json:"learning_events"`
	Solutions      []Solution                 `json:"solutions"`
	Optimizations  []agent.OptimizationResult `json:"optimizations"`
}

// ImportStats counts how an imported snapshot was applied. Rows that fail
// to insert (duplicate primary keys, for instance) are skipped rather than
// aborting the import.
type ImportStats struct {
	Discoveries    int `json:"discoveries"`
	LearningEvents int `json:"learning_events"`
	Solutions      int `json:"solutions"`
	Optimizations  int `json:"optimizations"`
	Skipped        int `json:"skipped"`
}

// Total counts every row that was applied.
func (s ImportStats) Total() int {
	return s.Discoveries + s.LearningEvents + s.Solutions + s.Optimizations
}

// allRows tells SQLite to return every row. LIMIT -1 disables the limit.
const allRows = -1

// Export writes the full store contents to w as indented JSON.
func (s *SQLiteStore) Export(ctx context.Context, w io.Writer) error {
	discoveries, err := s.RecentDiscoveries(ctx, allRows)
	if err != nil {
		return err
	}
	events, err := s.RecentLearningEvents(ctx, allRows)
	if err != nil {
		return err
	}
	solutions, err := s.RecentSolutions(ctx, allRows)
	if err != nil {
		return err
	}
	optimizations, err := s.RecentOptimizations(ctx, allRows)
	if err != nil {
		return err
	}

	snapshot := Snapshot{
		ExportedAt:     time.Now(),
		Discoveries:    discoveries,
		LearningEvents: events,
		Solutions:      solutions,
		Optimizations:  optimizations,
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(snapshot); err != nil {
		return errors.Wrap(err, errors.StorageFailed, "failed to encode snapshot")
	}
	return nil
}

// Import reads a snapshot from r and replays it into the store. Row ids are
// reassigned for auto-increment tables; rows that fail to insert are logged
// and counted as skipped.
func (s *SQLiteStore) Import(ctx context.Context, r io.Reader) (ImportStats, error) {
	var snapshot Snapshot
	if err := json.NewDecoder(r).Decode(&snapshot); err != nil {
		return ImportStats{}, errors.Wrap(err, errors.InvalidInput, "failed to decode snapshot")
	}

	logger := logging.GetLogger()
	var stats ImportStats

	for _, record := range snapshot.Discoveries {
		if err := s.SaveDiscovery(ctx, record); err != nil {
			logger.Warn(ctx, "skipping discovery %s: %v", record.ID, err)
			stats.Skipped++
			continue
		}
		stats.Discoveries++
	}
	for _, event := range snapshot.LearningEvents {
		if err := s.SaveLearningEvent(ctx, event); err != nil {
			logger.Warn(ctx, "skipping learning event for state %s: %v", event.State, err)
			stats.Skipped++
			continue
		}
		stats.LearningEvents++
	}
	for _, solution := range snapshot.Solutions {
		solution.ID = 0
		if _, err := s.SaveSolution(ctx, solution); err != nil {
			logger.Warn(ctx, "skipping solution for category %s: %v", solution.Category, err)
			stats.Skipped++
			continue
		}
		stats.Solutions++
	}
	for _, run := range snapshot.Optimizations {
		if err := s.SaveOptimization(ctx, run); err != nil {
			logger.Warn(ctx, "skipping optimization %s: %v", run.ID, err)
			stats.Skipped++
			continue
		}
		stats.Optimizations++
	}
	return stats, nil
}
