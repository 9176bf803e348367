// Package discovery is an AI agent that learns which algorithm to apply to a
// problem and tunes its parameters, combining Q-learning for algorithm
// selection with an evolutionary optimizer for parameter search.
//
// Key components:
//
//   - Catalog: the algorithm knowledge base mapping problem categories
//     (sorting, searching, dynamic programming, graph) to candidate
//     algorithms and their time/space complexity.
//
//   - Policy: a tabular Q-learning policy with epsilon-greedy selection.
//     Rewards observed for past choices shift future selections toward the
//     algorithms that measured best.
//
//   - Genetic: a generational evolutionary optimizer with tournament
//     selection, uniform crossover, Gaussian mutation and elitism. Fitness
//     evaluation runs concurrently; reproduction is deterministic under a
//     fixed seed.
//
//   - Agent: the coordinator façade. Discover picks an algorithm for a
//     problem, ObserveReward feeds measured quality back into the policy,
//     and ParameterOptimizer tunes a chosen algorithm's parameters.
//
//   - Complexity: a pattern-based Big-O classifier for algorithm source
//     text, with side-by-side ranking of alternatives.
//
//   - Benchmark: a harness measuring wall-clock time and allocations of
//     candidate implementations, producing normalized quality scores
//     suitable as policy rewards.
//
//   - Store: SQLite persistence for discoveries, learning events, measured
//     performance, saved solutions and optimization runs.
//
// The internal/server package exposes the agent over HTTP and cmd/algoctl
// provides the command line interface.
//
// Simple usage:
//
//	a, err := agent.New(nil)
//	if err != nil {
//		log.Fatal(err)
//	}
//	record, err := a.Discover(ctx, "sorting", 1000)
//	if err != nil {
//		log.Fatal(err)
//	}
//	// ... measure the chosen algorithm, then feed the result back:
//	err = a.ObserveReward(ctx, "sorting", 1000, record.SelectedAlgorithm, score)
package discovery
