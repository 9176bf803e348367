// Package complexity predicts Big-O complexity classes from source text
// using pattern matching, and ranks algorithms by predicted efficiency.
package complexity

import (
	"regexp"
	"sort"
	"strings"
)

// Big-O complexity classes, cheapest first.
const (
	Constant     = "O(1)"
	Logarithmic  = "O(log n)"
	Linear       = "O(n)"
	Linearithmic = "O(n log n)"
	Quadratic    = "O(n^2)"
	Cubic        = "O(n^3)"
	Exponential  = "O(2^n)"
	Factorial    = "O(n!)"
)

// classRank orders classes for comparison; lower is cheaper.
var classRank = map[string]int{
	Constant:     1,
	Logarithmic:  2,
	Linear:       3,
	Linearithmic: 4,
	Quadratic:    5,
	Cubic:        6,
	Exponential:  7,
	Factorial:    8,
}

var classByName = map[string]string{
	"constant":     Constant,
	"logarithmic":  Logarithmic,
	"linear":       Linear,
	"linearithmic": Linearithmic,
	"quadratic":    Quadratic,
	"cubic":        Cubic,
	"exponential":  Exponential,
	"factorial":    Factorial,
}

// Prediction is the classifier's verdict for one complexity dimension.
type Prediction struct {
	Predicted      string         `json:"predicted"`
	Confidence     int            `json:"confidence"`
	PatternMatches map[string]int `json:"pattern_matches"`
}

// Analysis bundles everything learned from one piece of code.
type Analysis struct {
	TimeComplexity  Prediction `json:"time_complexity"`
	SpaceComplexity Prediction `json:"space_complexity"`
	PatternsFound   []string   `json:"patterns_found"`
	NestedLoops     int        `json:"nested_loops"`
	RecursionDepth  int        `json:"recursion_depth"`
}

// Comparison ranks multiple analyzed algorithms by predicted time class.
type Comparison struct {
	RankedAlgorithms []string            `json:"ranked_algorithms"`
	AnalysisDetails  map[string]Analysis `json:"analysis_details"`
	MostEfficient    string              `json:"most_efficient"`
}

// Predictor matches complexity-indicating patterns against source text.
type Predictor struct {
	classPatterns map[string][]*regexp.Regexp
	featureNames  []string
	features      map[string]*regexp.Regexp
	loopLine      *regexp.Regexp
	funcDef       *regexp.Regexp
}

// NewPredictor compiles the built-in pattern tables.
func NewPredictor() *Predictor {
	compile := func(patterns ...string) []*regexp.Regexp {
		compiled := make([]*regexp.Regexp, len(patterns))
		for i, p := range patterns {
			compiled[i] = regexp.MustCompile(p)
		}
		return compiled
	}

	p := &Predictor{
		classPatterns: map[string][]*regexp.Regexp{
			"constant":     compile(`return\s+\d+`, `x\s*=\s*\d+`, `print\(`),
			"logarithmic":  compile(`while.*//\s*2`, `/\s*2\b`, `log`, `binary.?search`),
			"linear":       compile(`for\s+\w+\s+in\s+range\s*\(\s*n\s*\)`, `for\s+\w+\s+in\s+\w+`, `for\s+\w+\s*:?=\s*0\s*;`, `while\s+\w+\s*<\s*len`),
			"linearithmic": compile(`sorted\(`, `sort\.`, `merge.?sort`, `heap.?sort`, `quick.?sort`),
			"quadratic":    compile(`for.*for.*range\s*\(\s*n`, `nested.*loop`, `bubble.?sort`, `insertion.?sort`),
			"cubic":        compile(`for.*for.*for.*range\s*\(\s*n`, `triple.*nested`),
			"exponential":  compile(`fibonacci\s*\(`, `2\s*\*\*\s*n`, `recursive.*without.*memo`),
			"factorial":    compile(`permutation`, `n\s*!`),
		},
		featureNames: []string{
			"binary_search", "sorting", "dynamic_programming", "greedy",
			"recursion", "iteration", "hash",
		},
		features: map[string]*regexp.Regexp{
			"binary_search":       regexp.MustCompile(`binary.?search|log|divide.*conquer`),
			"sorting":             regexp.MustCompile(`sort|quicksort|mergesort|heapsort`),
			"dynamic_programming": regexp.MustCompile(`dp\[|memo|dynamic|bottom.?up`),
			"greedy":              regexp.MustCompile(`greedy|max|min`),
			"recursion":           regexp.MustCompile(`def\s.*\(.*\):|func\s.*\(.*\)`),
			"iteration":           regexp.MustCompile(`for|while`),
			"hash":                regexp.MustCompile(`dict|hash|set|map`),
		},
		loopLine: regexp.MustCompile(`^(for|while)\b`),
		funcDef:  regexp.MustCompile(`(?:def|func)\s+(\w+)\s*\(`),
	}
	return p
}

// Analyze predicts time and space complexity for the given code.
func (p *Predictor) Analyze(code string) Analysis {
	lowered := strings.ToLower(code)
	return Analysis{
		TimeComplexity:  p.predict(lowered),
		SpaceComplexity: p.predict(lowered),
		PatternsFound:   p.findFeatures(lowered),
		NestedLoops:     p.countNestedLoops(code),
		RecursionDepth:  p.estimateRecursionDepth(code),
	}
}

// predict weighs pattern hits per class and selects the most evidenced one.
// Code with no hits at all defaults to linear.
func (p *Predictor) predict(code string) Prediction {
	matches := make(map[string]int)
	total := 0
	for class, patterns := range p.classPatterns {
		count := 0
		for _, pattern := range patterns {
			count += len(pattern.FindAllString(code, -1))
		}
		if count > 0 {
			matches[class] = count
			total += count
		}
	}

	predicted := Linear
	if len(matches) > 0 {
		bestClass, bestCount := "", -1
		classes := make([]string, 0, len(matches))
		for class := range matches {
			classes = append(classes, class)
		}
		sort.Strings(classes)
		for _, class := range classes {
			if matches[class] > bestCount {
				bestClass, bestCount = class, matches[class]
			}
		}
		predicted = classByName[bestClass]
	}

	confidence := (total + 1) * 15
	if confidence > 100 {
		confidence = 100
	}

	return Prediction{
		Predicted:      predicted,
		Confidence:     confidence,
		PatternMatches: matches,
	}
}

func (p *Predictor) findFeatures(code string) []string {
	found := make([]string, 0)
	for _, name := range p.featureNames {
		if p.features[name].MatchString(code) {
			found = append(found, name)
		}
	}
	return found
}

// countNestedLoops tracks loop nesting by indentation: a loop indented
// deeper than the previous loop line nests inside it.
func (p *Predictor) countNestedLoops(code string) int {
	maxDepth := 0
	indents := make([]int, 0) // indentation stack of open loops

	for _, line := range strings.Split(code, "\n") {
		trimmed := strings.TrimLeft(line, " \t")
		if !p.loopLine.MatchString(trimmed) {
			continue
		}
		indent := len(line) - len(trimmed)
		for len(indents) > 0 && indents[len(indents)-1] >= indent {
			indents = indents[:len(indents)-1]
		}
		indents = append(indents, indent)
		if len(indents) > maxDepth {
			maxDepth = len(indents)
		}
	}
	return maxDepth
}

// estimateRecursionDepth counts self-calls of the first defined function,
// capped at 10.
func (p *Predictor) estimateRecursionDepth(code string) int {
	match := p.funcDef.FindStringSubmatch(code)
	if match == nil {
		return 0
	}

	name := match[1]
	calls := len(regexp.MustCompile(regexp.QuoteMeta(name)+`\s*\(`).FindAllString(code, -1)) - 1
	if calls < 0 {
		calls = 0
	}
	if calls > 10 {
		calls = 10
	}
	return calls
}

// Compare analyzes each named algorithm and ranks them cheapest first by
// predicted time complexity.
func (p *Predictor) Compare(algorithms map[string]string) Comparison {
	details := make(map[string]Analysis, len(algorithms))
	names := make([]string, 0, len(algorithms))
	for name, code := range algorithms {
		details[name] = p.Analyze(code)
		names = append(names, name)
	}

	sort.Slice(names, func(i, j int) bool {
		ri := rankOf(details[names[i]].TimeComplexity.Predicted)
		rj := rankOf(details[names[j]].TimeComplexity.Predicted)
		if ri != rj {
			return ri < rj
		}
		return names[i] < names[j]
	})

	comparison := Comparison{
		RankedAlgorithms: names,
		AnalysisDetails:  details,
	}
	if len(names) > 0 {
		comparison.MostEfficient = names[0]
	}
	return comparison
}

func rankOf(class string) int {
	if rank, ok := classRank[class]; ok {
		return rank
	}
	return classRank[Quadratic]
}
