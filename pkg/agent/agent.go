// Package agent ties the algorithm catalog, the learning policy and the
// evolutionary optimizer together behind the discovery and parameter
// optimization façades.
package agent

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/HIMANSHU895060/ai-algorithm-discovery-agent/pkg/catalog"
	"github.com/HIMANSHU895060/ai-algorithm-discovery-agent/pkg/errors"
	"github.com/HIMANSHU895060/ai-algorithm-discovery-agent/pkg/logging"
	"github.com/HIMANSHU895060/ai-algorithm-discovery-agent/pkg/policy"
)

// DiscoveryRecord is an immutable fact describing one algorithm selection.
// The quality score is the policy's current value estimate for the chosen
// action, so it reflects accumulated measured feedback rather than an
// unconditioned draw; it is zero on a fresh, unlearned coordinator.
type DiscoveryRecord struct {
	ID                string    `json:"id"`
	Category          string    `json:"category"`
	InputSize         int       `json:"input_size"`
	SelectedAlgorithm string    `json:"selected_algorithm"`
	TimeComplexity    string    `json:"time_complexity"`
	SpaceComplexity   string    `json:"space_complexity"`
	QualityScore      float64   `json:"quality_score"`
	CreatedAt         time.Time `json:"created_at"`
}

// LearningEvent captures one reward observation fed back into the policy.
type LearningEvent struct {
	State     string    `json:"state"`
	Action    string    `json:"action"`
	Reward    float64   `json:"reward"`
	CreatedAt time.Time `json:"created_at"`
}

// Sink receives records for durable storage. The agent never blocks on it:
// persistence happens on a separate goroutine and failures are only logged.
type Sink interface {
	SaveDiscovery(ctx context.Context, record DiscoveryRecord) error
	SaveLearningEvent(ctx context.Context, event LearningEvent) error
}

// Config assembles an Agent.
type Config struct {
	Policy  *policy.Config
	Catalog *catalog.Catalog // nil means catalog.Default()
	Sink    Sink             // optional
}

// Agent is the discovery coordinator: it picks an algorithm for a problem
// and keeps an append-only history of past choices.
type Agent struct {
	mu      sync.Mutex
	policy  *policy.QPolicy
	catalog *catalog.Catalog
	sink    Sink
	history []DiscoveryRecord
}

// New creates an agent from config. A nil config uses all defaults.
func New(config *Config) (*Agent, error) {
	if config == nil {
		config = &Config{}
	}

	p, err := policy.New(config.Policy)
	if err != nil {
		return nil, err
	}

	cat := config.Catalog
	if cat == nil {
		cat = catalog.Default()
	}

	return &Agent{
		policy:  p,
		catalog: cat,
		sink:    config.Sink,
	}, nil
}

// stateKey discretizes a problem into the lookup key used by the policy.
func stateKey(category string, inputSize int) string {
	return fmt.Sprintf("%s_%d", category, inputSize)
}

// Discover selects an algorithm for the given problem category and input
// size, records the choice in history and hands it to the persistence sink.
// An unconfigured category yields an UnknownCategory error; a configured
// category with zero algorithms yields NoLegalActions.
func (a *Agent) Discover(ctx context.Context, category string, inputSize int) (*DiscoveryRecord, error) {
	logger := logging.GetLogger()

	if !a.catalog.HasCategory(category) {
		return nil, errors.WithFields(
			errors.New(errors.UnknownCategory, "unknown problem category"),
			errors.Fields{"category": category},
		)
	}

	state := stateKey(category, inputSize)
	legal := a.catalog.AlgorithmsFor(category)

	selected, err := a.policy.SelectAction(state, legal)
	if err != nil {
		return nil, errors.WithFields(err, errors.Fields{"category": category})
	}

	complexity := a.catalog.ComplexityOf(category, selected)
	record := DiscoveryRecord{
		ID:                uuid.New().String(),
		Category:          category,
		InputSize:         inputSize,
		SelectedAlgorithm: selected,
		TimeComplexity:    complexity.Time,
		SpaceComplexity:   complexity.Space,
		QualityScore:      a.policy.Value(state, selected),
		CreatedAt:         time.Now(),
	}

	a.mu.Lock()
	a.history = append(a.history, record)
	a.mu.Unlock()

	logger.Info(ctx, "discovered algorithm: category=%s, input_size=%d, algorithm=%s",
		category, inputSize, selected)

	if a.sink != nil {
		go func() {
			if err := a.sink.SaveDiscovery(context.WithoutCancel(ctx), record); err != nil {
				logger.Error(ctx, "failed to persist discovery %s: %v", record.ID, err)
			}
		}()
	}

	return &record, nil
}

// ObserveReward feeds a measured quality signal for a past selection back
// into the policy. The next state is the same discretized problem, with the
// category's catalog entries as its legal actions.
func (a *Agent) ObserveReward(ctx context.Context, category string, inputSize int, algorithm string, reward float64) error {
	if !a.catalog.HasCategory(category) {
		return errors.WithFields(
			errors.New(errors.UnknownCategory, "unknown problem category"),
			errors.Fields{"category": category},
		)
	}

	state := stateKey(category, inputSize)
	legal := a.catalog.AlgorithmsFor(category)

	// Only catalog entries may receive value; otherwise a typo'd algorithm
	// name would create a phantom action the policy could later prefer.
	known := false
	for _, candidate := range legal {
		if candidate == algorithm {
			known = true
			break
		}
	}
	if !known {
		return errors.WithFields(
			errors.New(errors.InvalidInput, "algorithm is not in the catalog for this category"),
			errors.Fields{"category": category, "algorithm": algorithm},
		)
	}

	a.policy.Update(state, algorithm, reward, state, legal)

	if a.sink != nil {
		event := LearningEvent{
			State:     state,
			Action:    algorithm,
			Reward:    reward,
			CreatedAt: time.Now(),
		}
		go func() {
			if err := a.sink.SaveLearningEvent(context.WithoutCancel(ctx), event); err != nil {
				logging.GetLogger().Error(ctx, "failed to persist learning event: %v", err)
			}
		}()
	}

	return nil
}

// BestAlgorithm returns the highest-valued algorithm learned for a problem,
// or a NoData error when the state has never received feedback.
func (a *Agent) BestAlgorithm(category string, inputSize int) (string, error) {
	state := stateKey(category, inputSize)
	best, ok := a.policy.BestAction(state)
	if !ok {
		return "", errors.WithFields(
			errors.New(errors.NoData, "no learned values for state"),
			errors.Fields{"state": state},
		)
	}
	return best, nil
}

// History returns the most recent discovery records, newest last. A
// non-positive limit returns the full history.
func (a *Agent) History(limit int) []DiscoveryRecord {
	a.mu.Lock()
	defer a.mu.Unlock()

	start := 0
	if limit > 0 && len(a.history) > limit {
		start = len(a.history) - limit
	}
	out := make([]DiscoveryRecord, len(a.history)-start)
	copy(out, a.history[start:])
	return out
}

// Visits reports how many selections have been made for a problem.
func (a *Agent) Visits(category string, inputSize int) int {
	return a.policy.Visits(stateKey(category, inputSize))
}

// Reset discards all learned values, visit counts and history, returning
// the coordinator to its initial unlearned state.
func (a *Agent) Reset() {
	a.mu.Lock()
	a.history = nil
	a.mu.Unlock()
	a.policy.Reset()
}
