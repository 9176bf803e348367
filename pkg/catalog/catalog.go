// Package catalog holds the static registry of candidate algorithms per
// problem category along with their known asymptotic complexity classes.
package catalog

import "sort"

// UnknownClass is the sentinel returned when a complexity class is not
// recorded for a (category, algorithm) pair.
const UnknownClass = "Unknown"

// Complexity describes the asymptotic time and space class of an algorithm.
type Complexity struct {
	Time  string `json:"time"`
	Space string `json:"space"`
}

// AlgorithmInfo is a single catalog entry: an algorithm name and its
// complexity classes.
type AlgorithmInfo struct {
	Name       string     `json:"name"`
	Complexity Complexity `json:"complexity"`
}

// Catalog maps a problem category to its ordered candidate algorithms.
// The catalog is pure configuration data: it has no mutable state and all
// lookups are side-effect free.
type Catalog struct {
	categories map[string][]AlgorithmInfo
}

// New builds a catalog from an injected table. The slice order per category
// is preserved and defines the legal-action ordering exposed to callers.
func New(table map[string][]AlgorithmInfo) *Catalog {
	categories := make(map[string][]AlgorithmInfo, len(table))
	for category, entries := range table {
		copied := make([]AlgorithmInfo, len(entries))
		copy(copied, entries)
		categories[category] = copied
	}
	return &Catalog{categories: categories}
}

// Default returns the built-in catalog covering sorting, searching, dynamic
// programming and graph problems.
func Default() *Catalog {
	return New(map[string][]AlgorithmInfo{
		"sorting": {
			{Name: "quicksort", Complexity: Complexity{Time: "O(n log n)", Space: "O(log n)"}},
			{Name: "mergesort", Complexity: Complexity{Time: "O(n log n)", Space: "O(n)"}},
			{Name: "heapsort", Complexity: Complexity{Time: "O(n log n)", Space: "O(1)"}},
			{Name: "bubblesort", Complexity: Complexity{Time: "O(n^2)", Space: "O(1)"}},
			{Name: "insertion_sort", Complexity: Complexity{Time: "O(n^2)", Space: "O(1)"}},
		},
		"searching": {
			{Name: "binary_search", Complexity: Complexity{Time: "O(log n)", Space: "O(1)"}},
			{Name: "linear_search", Complexity: Complexity{Time: "O(n)", Space: "O(1)"}},
			{Name: "hash_search", Complexity: Complexity{Time: "O(1)", Space: "O(n)"}},
		},
		"dp": {
			{Name: "fibonacci", Complexity: Complexity{Time: "O(n)", Space: "O(n)"}},
			{Name: "knapsack", Complexity: Complexity{Time: "O(nW)", Space: "O(nW)"}},
			{Name: "lcs", Complexity: Complexity{Time: "O(mn)", Space: "O(mn)"}},
		},
		"graph": {
			{Name: "dfs", Complexity: Complexity{Time: "O(V+E)", Space: "O(V)"}},
			{Name: "bfs", Complexity: Complexity{Time: "O(V+E)", Space: "O(V)"}},
			{Name: "dijkstra", Complexity: Complexity{Time: "O((V+E)logV)", Space: "O(V)"}},
		},
	})
}

// AlgorithmsFor returns the ordered algorithm names configured for a
// category. An empty slice means the category is unknown; that is a
// caller-visible condition, not a failure.
func (c *Catalog) AlgorithmsFor(category string) []string {
	entries, ok := c.categories[category]
	if !ok {
		return nil
	}
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name
	}
	return names
}

// ComplexityOf returns the complexity classes of an algorithm within a
// category. Missing entries yield the UnknownClass sentinel, never a failure.
func (c *Catalog) ComplexityOf(category, algorithm string) Complexity {
	for _, e := range c.categories[category] {
		if e.Name == algorithm {
			return e.Complexity
		}
	}
	return Complexity{Time: UnknownClass, Space: UnknownClass}
}

// HasCategory reports whether a category is configured.
func (c *Catalog) HasCategory(category string) bool {
	_, ok := c.categories[category]
	return ok
}

// Categories returns all configured category names in sorted order.
func (c *Catalog) Categories() []string {
	names := make([]string, 0, len(c.categories))
	for name := range c.categories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
