// Package benchmark measures wall-clock time and heap allocation of
// caller-supplied callables, producing quality signals suitable for feeding
// back into the discovery policy.
package benchmark

import (
	"context"
	"fmt"
	"math"
	"runtime"
	"time"

	"github.com/HIMANSHU895060/ai-algorithm-discovery-agent/pkg/errors"
	"github.com/HIMANSHU895060/ai-algorithm-discovery-agent/pkg/logging"
)

// Func is a measured callable. Implementations should perform one complete
// run of the algorithm under test.
type Func func() error

// Result stores the metrics of one benchmark invocation. A failed run is
// reported as a failure; it is never counted as a pass.
type Result struct {
	AlgorithmName string        `json:"algorithm_name"`
	InputSize     int           `json:"input_size"`
	ExecutionTime time.Duration `json:"execution_time"`
	AllocBytes    uint64        `json:"alloc_bytes"`
	Iterations    int           `json:"iterations"`
	Success       bool          `json:"success"`
	ErrorMessage  string        `json:"error_message,omitempty"`
	Timestamp     time.Time     `json:"timestamp"`
}

// Stats aggregates a series of results.
type Stats struct {
	Runs        int           `json:"runs"`
	Successes   int           `json:"successes"`
	SuccessRate float64       `json:"success_rate"`
	Mean        time.Duration `json:"mean"`
	Min         time.Duration `json:"min"`
	Max         time.Duration `json:"max"`
	StdDev      time.Duration `json:"std_dev"`
}

// Runner benchmarks a single named algorithm.
type Runner struct {
	name string
	fn   Func
}

// NewRunner wraps a callable for measurement.
func NewRunner(name string, fn Func) (*Runner, error) {
	if fn == nil {
		return nil, errors.New(errors.InvalidInput, "benchmark callable must not be nil")
	}
	return &Runner{name: name, fn: fn}, nil
}

// Run executes the callable the requested number of iterations and averages
// the measurements. A panic or error in any iteration aborts the run and is
// reported in the result.
func (r *Runner) Run(ctx context.Context, inputSize, iterations int) Result {
	logger := logging.GetLogger()
	if iterations <= 0 {
		iterations = 1
	}

	result := Result{
		AlgorithmName: r.name,
		InputSize:     inputSize,
		Iterations:    iterations,
		Timestamp:     time.Now(),
	}

	var before, after runtime.MemStats
	runtime.ReadMemStats(&before)

	var total time.Duration
	for i := 0; i < iterations; i++ {
		if err := errors.CheckContext(ctx, "benchmark"); err != nil {
			result.ErrorMessage = err.Error()
			return result
		}

		start := time.Now()
		err := r.invoke()
		total += time.Since(start)

		if err != nil {
			result.ErrorMessage = err.Error()
			logger.Warn(ctx, "benchmark %s failed on iteration %d: %v", r.name, i, err)
			return result
		}
	}

	runtime.ReadMemStats(&after)

	result.ExecutionTime = total / time.Duration(iterations)
	result.AllocBytes = (after.TotalAlloc - before.TotalAlloc) / uint64(iterations)
	result.Success = true
	return result
}

// invoke shields the measurement loop from panics in the callable.
func (r *Runner) invoke() (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = errors.WithFields(
				errors.New(errors.EvaluationFailed, "benchmark callable panicked"),
				errors.Fields{"panic": fmt.Sprintf("%v", rec)},
			)
		}
	}()
	return r.fn()
}

// Summarize aggregates results. Timing statistics only cover successful
// runs; failures count toward the success rate denominator.
func Summarize(results []Result) Stats {
	stats := Stats{Runs: len(results)}
	if len(results) == 0 {
		return stats
	}

	durations := make([]float64, 0, len(results))
	for _, result := range results {
		if !result.Success {
			continue
		}
		stats.Successes++
		durations = append(durations, float64(result.ExecutionTime))
	}
	stats.SuccessRate = float64(stats.Successes) / float64(stats.Runs)

	if len(durations) == 0 {
		return stats
	}

	sum, minD, maxD := 0.0, durations[0], durations[0]
	for _, d := range durations {
		sum += d
		if d < minD {
			minD = d
		}
		if d > maxD {
			maxD = d
		}
	}
	mean := sum / float64(len(durations))

	variance := 0.0
	for _, d := range durations {
		variance += (d - mean) * (d - mean)
	}
	variance /= float64(len(durations))

	stats.Mean = time.Duration(mean)
	stats.Min = time.Duration(minD)
	stats.Max = time.Duration(maxD)
	stats.StdDev = time.Duration(math.Sqrt(variance))
	return stats
}

// QualityScore converts a result into a reward in [0, 1] for the policy:
// zero for failures, and a score that decays toward zero as the execution
// time grows past the baseline.
func QualityScore(result Result, baseline time.Duration) float64 {
	if !result.Success {
		return 0
	}
	if baseline <= 0 {
		baseline = time.Millisecond
	}
	return 1 / (1 + float64(result.ExecutionTime)/float64(baseline))
}
