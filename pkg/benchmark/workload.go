package benchmark

import "math/rand"

// workSink receives every workload checksum so the compiler cannot discard
// the loops being timed.
var workSink uint64

// Workload builds a callable whose running time scales with the given
// asymptotic time class at the given input size. It is a stand-in for
// executing real algorithm code: the measurement and reward pipeline behave
// exactly as they would for a genuine implementation, while the work itself
// is a deterministic arithmetic loop.
//
// Recognized classes are O(1), O(log n), O(n), O(n log n) and O(n^2); any
// other class, including the catalog's Unknown sentinel, falls back to
// linear work.
func Workload(timeClass string, inputSize int) Func {
	if inputSize < 1 {
		inputSize = 1
	}
	steps := stepsFor(timeClass, inputSize)
	return func() error {
		rng := rand.New(rand.NewSource(int64(inputSize)))
		var sum uint64
		for i := 0; i < steps; i++ {
			sum += uint64(rng.Int63() & 0xff)
		}
		workSink += sum
		return nil
	}
}

func stepsFor(timeClass string, n int) int {
	switch timeClass {
	case "O(1)":
		return 1
	case "O(log n)", "O(logn)":
		return log2(n)
	case "O(n log n)", "O(nlogn)":
		return n * log2(n)
	case "O(n^2)", "O(n²)":
		return n * n
	default:
		return n
	}
}

func log2(n int) int {
	steps := 1
	for n > 1 {
		n >>= 1
		steps++
	}
	return steps
}
