// Package policy implements the value store and epsilon-greedy action
// selection used for algorithm discovery. Values follow the one-step
// bootstrapped temporal-difference update rule.
package policy

import (
	"math/rand"
	"sort"
	"sync"
	"time"

	"github.com/HIMANSHU895060/ai-algorithm-discovery-agent/pkg/errors"
)

// Config contains configuration options for the Q-learning policy.
type Config struct {
	LearningRate   float64 `json:"learning_rate"`   // Default: 0.1
	DiscountFactor float64 `json:"discount_factor"` // Default: 0.95
	Epsilon        float64 `json:"epsilon"`         // Default: 0.1
	Seed           int64   `json:"seed"`            // Default: time-based
}

// DefaultConfig returns the default configuration for the policy.
func DefaultConfig() *Config {
	return &Config{
		LearningRate:   0.1,
		DiscountFactor: 0.95,
		Epsilon:        0.1,
	}
}

// stateAction is the composite key for one value estimate. An explicit key
// struct keeps the table flat instead of nesting maps per state.
type stateAction struct {
	state  string
	action string
}

// QPolicy holds per-(state,action) value estimates and per-state visit
// counters. All reads and writes are serialized so the read-modify-write
// update rule stays atomic when discovery requests share one policy.
type QPolicy struct {
	mu             sync.Mutex
	learningRate   float64
	discountFactor float64
	epsilon        float64
	rng            *rand.Rand

	values map[stateAction]float64
	visits map[string]int
}

// New creates a policy from config. Nil config uses defaults; rate, discount
// and epsilon must all lie in [0, 1].
func New(config *Config) (*QPolicy, error) {
	if config == nil {
		config = DefaultConfig()
	}

	if config.LearningRate < 0 || config.LearningRate > 1 {
		return nil, errors.WithFields(
			errors.New(errors.InvalidInput, "learning rate must be in [0, 1]"),
			errors.Fields{"learning_rate": config.LearningRate},
		)
	}
	if config.DiscountFactor < 0 || config.DiscountFactor > 1 {
		return nil, errors.WithFields(
			errors.New(errors.InvalidInput, "discount factor must be in [0, 1]"),
			errors.Fields{"discount_factor": config.DiscountFactor},
		)
	}
	if config.Epsilon < 0 || config.Epsilon > 1 {
		return nil, errors.WithFields(
			errors.New(errors.InvalidInput, "epsilon must be in [0, 1]"),
			errors.Fields{"epsilon": config.Epsilon},
		)
	}

	seed := config.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	return &QPolicy{
		learningRate:   config.LearningRate,
		discountFactor: config.DiscountFactor,
		epsilon:        config.Epsilon,
		rng:            rand.New(rand.NewSource(seed)),
		values:         make(map[stateAction]float64),
		visits:         make(map[string]int),
	}, nil
}

// SelectAction chooses an action for state using epsilon-greedy selection.
// With probability epsilon it explores uniformly among legal actions;
// otherwise it exploits, breaking value ties by uniform random choice among
// the maximizers so catalog order introduces no systematic bias. Every call
// increments the visit counter for state.
func (p *QPolicy) SelectAction(state string, legal []string) (string, error) {
	if len(legal) == 0 {
		return "", errors.WithFields(
			errors.New(errors.NoLegalActions, "no legal actions for state"),
			errors.Fields{"state": state},
		)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	p.visits[state]++

	if p.rng.Float64() < p.epsilon {
		return legal[p.rng.Intn(len(legal))], nil
	}

	maxQ := p.values[stateAction{state, legal[0]}]
	for _, action := range legal[1:] {
		if q := p.values[stateAction{state, action}]; q > maxQ {
			maxQ = q
		}
	}

	best := make([]string, 0, len(legal))
	for _, action := range legal {
		if p.values[stateAction{state, action}] == maxQ {
			best = append(best, action)
		}
	}

	return best[p.rng.Intn(len(best))], nil
}

// Update applies the one-step bootstrapped update:
//
//	q += alpha * (reward + gamma*max_a' Q(next, a') - q)
//
// The max over next actions is zero when nextLegal is empty (terminal state).
// This is the sole mutator of stored values and is safe for never-seen
// (state, action) pairs, which start at zero.
func (p *QPolicy) Update(state, action string, reward float64, nextState string, nextLegal []string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	maxNextQ := 0.0
	for i, next := range nextLegal {
		q := p.values[stateAction{nextState, next}]
		if i == 0 || q > maxNextQ {
			maxNextQ = q
		}
	}

	key := stateAction{state, action}
	current := p.values[key]
	p.values[key] = current + p.learningRate*(reward+p.discountFactor*maxNextQ-current)
}

// BestAction returns the action with the maximum current value estimate for
// state. The second return value is false when the state has never been
// updated with any action.
func (p *QPolicy) BestAction(state string) (string, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	actions := make([]string, 0)
	for key := range p.values {
		if key.state == state {
			actions = append(actions, key.action)
		}
	}
	if len(actions) == 0 {
		return "", false
	}
	sort.Strings(actions)

	best := actions[0]
	bestQ := p.values[stateAction{state, best}]
	for _, action := range actions[1:] {
		if q := p.values[stateAction{state, action}]; q > bestQ {
			best = action
			bestQ = q
		}
	}
	return best, true
}

// Value returns the current estimate for a (state, action) pair. Unseen
// pairs report zero.
func (p *QPolicy) Value(state, action string) float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.values[stateAction{state, action}]
}

// Visits returns how many selection events have touched state.
func (p *QPolicy) Visits(state string) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.visits[state]
}

// Reset discards all value estimates and visit counters.
func (p *QPolicy) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.values = make(map[stateAction]float64)
	p.visits = make(map[string]int)
}
