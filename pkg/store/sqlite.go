// Package store persists discoveries, benchmark results, solutions and
// learning history in a local SQLite database.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/HIMANSHU895060/ai-algorithm-discovery-agent/pkg/agent"
	"github.com/HIMANSHU895060/ai-algorithm-discovery-agent/pkg/benchmark"
	"github.com/HIMANSHU895060/ai-algorithm-discovery-agent/pkg/errors"
	"github.com/HIMANSHU895060/ai-algorithm-discovery-agent/pkg/logging"
)

// Solution is a user-submitted reference implementation kept for later
// retrieval.
type Solution struct {
	ID        int64     `json:"id"`
	Category  string    `json:"category"`
	Code      string    `json:"code"`
	Language  string    `json:"language"`
	Notes     string    `json:"notes"`
	CreatedAt time.Time `json:"created_at"`
}

// SQLiteStore is the durable sink behind the discovery agent. The agent
// never blocks on it; callers own transaction boundaries per method.
type SQLiteStore struct {
	db   *sql.DB
	mu   sync.RWMutex
	path string

	initialized sync.Once
}

// New opens (or creates) the database at path. Use ":memory:" for an
// in-memory store.
func New(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, errors.WithFields(
			errors.Wrap(err, errors.StorageFailed, "failed to open SQLite database"),
			errors.Fields{"path": path},
		)
	}

	store := &SQLiteStore{
		db:   db,
		path: path,
	}
	if err := store.ensureInitialized(); err != nil {
		return nil, err
	}
	return store, nil
}

func (s *SQLiteStore) ensureInitialized() error {
	var initErr error
	s.initialized.Do(func() {
		// Enable WAL mode for better concurrency
		if _, err := s.db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
			initErr = errors.Wrap(err, errors.StorageFailed, "failed to enable WAL mode")
			return
		}

		query := `
        CREATE TABLE IF NOT EXISTS discoveries (
            id TEXT PRIMARY KEY,
            category TEXT NOT NULL,
            input_size INTEGER NOT NULL,
            algorithm TEXT NOT NULL,
            time_complexity TEXT,
            space_complexity TEXT,
            quality_score REAL,
            created_at DATETIME NOT NULL
        );
        CREATE INDEX IF NOT EXISTS idx_discoveries_created_at ON discoveries(created_at);
        CREATE INDEX IF NOT EXISTS idx_discoveries_category ON discoveries(category);

        CREATE TABLE IF NOT EXISTS performance (
            id INTEGER PRIMARY KEY AUTOINCREMENT,
            algorithm TEXT NOT NULL,
            input_size INTEGER NOT NULL,
            execution_time_ns INTEGER NOT NULL,
            alloc_bytes INTEGER NOT NULL,
            success INTEGER NOT NULL,
            error_message TEXT,
            created_at DATETIME NOT NULL
        );
        CREATE INDEX IF NOT EXISTS idx_performance_algorithm ON performance(algorithm);

        CREATE TABLE IF NOT EXISTS solutions (
            id INTEGER PRIMARY KEY AUTOINCREMENT,
            category TEXT NOT NULL,
            solution_code TEXT NOT NULL,
            language TEXT,
            notes TEXT,
            created_at DATETIME NOT NULL
        );

        CREATE TABLE IF NOT EXISTS learning_history (
            id INTEGER PRIMARY KEY AUTOINCREMENT,
            state TEXT NOT NULL,
            action TEXT NOT NULL,
            reward REAL NOT NULL,
            created_at DATETIME NOT NULL
        );

        CREATE TABLE IF NOT EXISTS optimizations (
            id TEXT PRIMARY KEY,
            algorithm TEXT NOT NULL,
            best_params TEXT NOT NULL,
            best_fitness REAL NOT NULL,
            best_history TEXT,
            avg_history TEXT,
            created_at DATETIME NOT NULL
        );
        `

		if _, err := s.db.Exec(query); err != nil {
			initErr = errors.Wrap(err, errors.StorageFailed, "failed to initialize database schema")
			return
		}
	})
	return initErr
}

// SaveDiscovery implements agent.Sink.
func (s *SQLiteStore) SaveDiscovery(ctx context.Context, record agent.DiscoveryRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
    INSERT INTO discoveries
        (id, category, input_size, algorithm, time_complexity, space_complexity, quality_score, created_at)
    VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		record.ID, record.Category, record.InputSize, record.SelectedAlgorithm,
		record.TimeComplexity, record.SpaceComplexity, record.QualityScore, record.CreatedAt)
	if err != nil {
		return errors.WithFields(
			errors.Wrap(err, errors.StorageFailed, "failed to save discovery"),
			errors.Fields{"id": record.ID},
		)
	}
	return nil
}

// RecentDiscoveries returns up to limit records, newest first.
func (s *SQLiteStore) RecentDiscoveries(ctx context.Context, limit int) ([]agent.DiscoveryRecord, error) {
	return s.queryDiscoveries(ctx, `
    SELECT id, category, input_size, algorithm, time_complexity, space_complexity, quality_score, created_at
    FROM discoveries ORDER BY created_at DESC LIMIT ?`, limit)
}

// DiscoveriesByCategory filters records for one category, newest first.
func (s *SQLiteStore) DiscoveriesByCategory(ctx context.Context, category string, limit int) ([]agent.DiscoveryRecord, error) {
	return s.queryDiscoveries(ctx, `
    SELECT id, category, input_size, algorithm, time_complexity, space_complexity, quality_score, created_at
    FROM discoveries WHERE category = ? ORDER BY created_at DESC LIMIT ?`, category, limit)
}

func (s *SQLiteStore) queryDiscoveries(ctx context.Context, query string, args ...interface{}) ([]agent.DiscoveryRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, errors.StorageFailed, "failed to query discoveries")
	}
	defer rows.Close()

	records := make([]agent.DiscoveryRecord, 0)
	for rows.Next() {
		var r agent.DiscoveryRecord
		if err := rows.Scan(&r.ID, &r.Category, &r.InputSize, &r.SelectedAlgorithm,
			&r.TimeComplexity, &r.SpaceComplexity, &r.QualityScore, &r.CreatedAt); err != nil {
			return nil, errors.Wrap(err, errors.StorageFailed, "failed to scan discovery row")
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// SaveLearningEvent implements agent.Sink.
func (s *SQLiteStore) SaveLearningEvent(ctx context.Context, event agent.LearningEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
    INSERT INTO learning_history (state, action, reward, created_at) VALUES (?, ?, ?, ?)`,
		event.State, event.Action, event.Reward, event.CreatedAt)
	if err != nil {
		return errors.Wrap(err, errors.StorageFailed, "failed to save learning event")
	}
	return nil
}

// RecentLearningEvents returns up to limit events, newest first.
func (s *SQLiteStore) RecentLearningEvents(ctx context.Context, limit int) ([]agent.LearningEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
    SELECT state, action, reward, created_at FROM learning_history
    ORDER BY created_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, errors.Wrap(err, errors.StorageFailed, "failed to query learning history")
	}
	defer rows.Close()

	events := make([]agent.LearningEvent, 0)
	for rows.Next() {
		var e agent.LearningEvent
		if err := rows.Scan(&e.State, &e.Action, &e.Reward, &e.CreatedAt); err != nil {
			return nil, errors.Wrap(err, errors.StorageFailed, "failed to scan learning event row")
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

// SavePerformance records one benchmark result.
func (s *SQLiteStore) SavePerformance(ctx context.Context, result benchmark.Result) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
    INSERT INTO performance (algorithm, input_size, execution_time_ns, alloc_bytes, success, error_message, created_at)
    VALUES (?, ?, ?, ?, ?, ?, ?)`,
		result.AlgorithmName, result.InputSize, result.ExecutionTime.Nanoseconds(),
		result.AllocBytes, result.Success, result.ErrorMessage, result.Timestamp)
	if err != nil {
		return errors.Wrap(err, errors.StorageFailed, "failed to save performance result")
	}
	return nil
}

// PerformanceByAlgorithm returns recorded results for one algorithm,
// newest first.
func (s *SQLiteStore) PerformanceByAlgorithm(ctx context.Context, algorithm string, limit int) ([]benchmark.Result, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
    SELECT algorithm, input_size, execution_time_ns, alloc_bytes, success, error_message, created_at
    FROM performance WHERE algorithm = ? ORDER BY created_at DESC, id DESC LIMIT ?`, algorithm, limit)
	if err != nil {
		return nil, errors.Wrap(err, errors.StorageFailed, "failed to query performance results")
	}
	defer rows.Close()

	results := make([]benchmark.Result, 0)
	for rows.Next() {
		var r benchmark.Result
		var ns int64
		if err := rows.Scan(&r.AlgorithmName, &r.InputSize, &ns, &r.AllocBytes,
			&r.Success, &r.ErrorMessage, &r.Timestamp); err != nil {
			return nil, errors.Wrap(err, errors.StorageFailed, "failed to scan performance row")
		}
		r.ExecutionTime = time.Duration(ns)
		results = append(results, r)
	}
	return results, rows.Err()
}

// SaveSolution stores a user-submitted solution and returns its row id.
func (s *SQLiteStore) SaveSolution(ctx context.Context, solution Solution) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if solution.CreatedAt.IsZero() {
		solution.CreatedAt = time.Now()
	}
	res, err := s.db.ExecContext(ctx, `
    INSERT INTO solutions (category, solution_code, language, notes, created_at)
    VALUES (?, ?, ?, ?, ?)`,
		solution.Category, solution.Code, solution.Language, solution.Notes, solution.CreatedAt)
	if err != nil {
		return 0, errors.Wrap(err, errors.StorageFailed, "failed to save solution")
	}
	return res.LastInsertId()
}

// SolutionsByCategory returns stored solutions for a category, newest first.
func (s *SQLiteStore) SolutionsByCategory(ctx context.Context, category string, limit int) ([]Solution, error) {
	return s.querySolutions(ctx, `
    SELECT id, category, solution_code, language, notes, created_at
    FROM solutions WHERE category = ? ORDER BY created_at DESC, id DESC LIMIT ?`, category, limit)
}

// RecentSolutions returns stored solutions across all categories, newest
// first.
func (s *SQLiteStore) RecentSolutions(ctx context.Context, limit int) ([]Solution, error) {
	return s.querySolutions(ctx, `
    SELECT id, category, solution_code, language, notes, created_at
    FROM solutions ORDER BY created_at DESC, id DESC LIMIT ?`, limit)
}

func (s *SQLiteStore) querySolutions(ctx context.Context, query string, args ...interface{}) ([]Solution, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, errors.StorageFailed, "failed to query solutions")
	}
	defer rows.Close()

	solutions := make([]Solution, 0)
	for rows.Next() {
		var sol Solution
		if err := rows.Scan(&sol.ID, &sol.Category, &sol.Code, &sol.Language, &sol.Notes, &sol.CreatedAt); err != nil {
			return nil, errors.Wrap(err, errors.StorageFailed, "failed to scan solution row")
		}
		solutions = append(solutions, sol)
	}
	return solutions, rows.Err()
}

// SaveOptimization stores a completed optimization run. Parameter maps and
// histories are serialized as JSON.
func (s *SQLiteStore) SaveOptimization(ctx context.Context, result agent.OptimizationResult) error {
	params, err := json.Marshal(result.BestParams)
	if err != nil {
		return errors.Wrap(err, errors.InvalidInput, "failed to marshal best params")
	}
	bestHistory, err := json.Marshal(result.BestFitnessHistory)
	if err != nil {
		return errors.Wrap(err, errors.InvalidInput, "failed to marshal best-fitness history")
	}
	avgHistory, err := json.Marshal(result.AvgFitnessHistory)
	if err != nil {
		return errors.Wrap(err, errors.InvalidInput, "failed to marshal avg-fitness history")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, err = s.db.ExecContext(ctx, `
    INSERT INTO optimizations (id, algorithm, best_params, best_fitness, best_history, avg_history, created_at)
    VALUES (?, ?, ?, ?, ?, ?, ?)`,
		result.ID, result.Algorithm, string(params), result.BestFitness,
		string(bestHistory), string(avgHistory), result.CreatedAt)
	if err != nil {
		return errors.WithFields(
			errors.Wrap(err, errors.StorageFailed, "failed to save optimization result"),
			errors.Fields{"id": result.ID},
		)
	}
	return nil
}

// RecentOptimizations returns stored optimization runs, newest first.
func (s *SQLiteStore) RecentOptimizations(ctx context.Context, limit int) ([]agent.OptimizationResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
    SELECT id, algorithm, best_params, best_fitness, best_history, avg_history, created_at
    FROM optimizations ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, errors.Wrap(err, errors.StorageFailed, "failed to query optimizations")
	}
	defer rows.Close()

	results := make([]agent.OptimizationResult, 0)
	for rows.Next() {
		var r agent.OptimizationResult
		var params, bestHistory, avgHistory string
		if err := rows.Scan(&r.ID, &r.Algorithm, &params, &r.BestFitness,
			&bestHistory, &avgHistory, &r.CreatedAt); err != nil {
			return nil, errors.Wrap(err, errors.StorageFailed, "failed to scan optimization row")
		}
		if err := json.Unmarshal([]byte(params), &r.BestParams); err != nil {
			return nil, errors.Wrap(err, errors.StorageFailed, "corrupt best_params column")
		}
		if err := json.Unmarshal([]byte(bestHistory), &r.BestFitnessHistory); err != nil {
			return nil, errors.Wrap(err, errors.StorageFailed, "corrupt best_history column")
		}
		if err := json.Unmarshal([]byte(avgHistory), &r.AvgFitnessHistory); err != nil {
			return nil, errors.Wrap(err, errors.StorageFailed, "corrupt avg_history column")
		}
		results = append(results, r)
	}
	return results, rows.Err()
}

// Close releases the underlying database handle.
func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.db.Close(); err != nil {
		logging.GetLogger().Error(context.Background(), "failed to close store at %s: %v", s.path, err)
		return errors.Wrap(err, errors.StorageFailed, "failed to close database")
	}
	return nil
}
