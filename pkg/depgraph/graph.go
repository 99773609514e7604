// Package depgraph assembles the file-level dependency graph of a repository.
package depgraph

import (
	"cmp"
	"slices"
	"time"
)

// SourceFile is a scanned path, slash-separated and relative to the root,
// with the language detected for it. Language is empty for unknown files.
type SourceFile struct {
	Path     string
	Language string
}

// Node is one scanned file with its external dependencies.
type Node struct {
	Path       string
	Language   string
	Stdlib     []string
	ThirdParty []string
}

// Edge is a dependency from one scanned file to another.
type Edge struct {
	Source string
	Target string
}

// Summary is the repository-wide union of external dependencies.
type Summary struct {
	Stdlib     []string
	ThirdParty []string
}

// ScanError records a file that could not be read.
type ScanError struct {
	File    string
	Message string
}

// Error implements error.
func (e ScanError) Error() string {
	return "error scanning " + e.File + ": " + e.Message
}

// ReferenceCounts tallies what happened to every extracted reference.
type ReferenceCounts struct {
	Edges      int
	Stdlib     int
	ThirdParty int
	Discarded  int
}

// Total returns the number of references seen.
func (c ReferenceCounts) Total() int {
	return c.Edges + c.Stdlib + c.ThirdParty + c.Discarded
}

func (c *ReferenceCounts) add(other ReferenceCounts) {
	c.Edges += other.Edges
	c.Stdlib += other.Stdlib
	c.ThirdParty += other.ThirdParty
	c.Discarded += other.Discarded
}

// Stats describes one Build run.
type Stats struct {
	Files      int
	Scanned    int
	Skipped    int
	Errors     int
	References ReferenceCounts
	Duration   time.Duration
}

// Graph is the assembled dependency graph. Nodes are ordered by path, edges
// by (source, target), and every string list is sorted.
type Graph struct {
	Nodes   []Node
	Edges   []Edge
	Summary Summary
	Errors  []ScanError
	Stats   Stats
}

// Failed reports whether any file could not be scanned.
func (g *Graph) Failed() bool {
	return len(g.Errors) > 0
}

// Dependents returns the number of incoming edges per target path.
func (g *Graph) Dependents() map[string]int {
	counts := make(map[string]int)
	for _, e := range g.Edges {
		counts[e.Target]++
	}

	return counts
}

// Dependencies returns the number of outgoing edges per source path.
func (g *Graph) Dependencies() map[string]int {
	counts := make(map[string]int)
	for _, e := range g.Edges {
		counts[e.Source]++
	}

	return counts
}

// PathCount is a path with an associated count.
type PathCount struct {
	Path  string
	Count int
}

// Top returns the n largest counts, ties broken by path.
func Top(counts map[string]int, n int) []PathCount {
	out := make([]PathCount, 0, len(counts))
	for p, c := range counts {
		out = append(out, PathCount{Path: p, Count: c})
	}

	slices.SortFunc(out, func(a, b PathCount) int {
		if a.Count != b.Count {
			return cmp.Compare(b.Count, a.Count)
		}

		return cmp.Compare(a.Path, b.Path)
	})

	if len(out) > n {
		out = out[:n]
	}

	return out
}

// Cycles returns the strongly connected components with more than one file.
// Each component is sorted and components are ordered by their first path.
func (g *Graph) Cycles() [][]string {
	adj := make(map[string][]string, len(g.Nodes))
	for _, e := range g.Edges {
		adj[e.Source] = append(adj[e.Source], e.Target)
	}

	t := tarjan{
		adj:     adj,
		index:   make(map[string]int, len(g.Nodes)),
		low:     make(map[string]int, len(g.Nodes)),
		onStack: make(map[string]bool, len(g.Nodes)),
	}

	for _, n := range g.Nodes {
		if _, seen := t.index[n.Path]; !seen {
			t.connect(n.Path)
		}
	}

	slices.SortFunc(t.components, func(a, b []string) int { return cmp.Compare(a[0], b[0]) })

	return t.components
}

type tarjan struct {
	adj        map[string][]string
	index      map[string]int
	low        map[string]int
	onStack    map[string]bool
	stack      []string
	next       int
	components [][]string
}

func (t *tarjan) connect(v string) {
	t.index[v] = t.next
	t.low[v] = t.next
	t.next++
	t.stack = append(t.stack, v)
	t.onStack[v] = true

	for _, w := range t.adj[v] {
		if _, seen := t.index[w]; !seen {
			t.connect(w)
			t.low[v] = min(t.low[v], t.low[w])
		} else if t.onStack[w] {
			t.low[v] = min(t.low[v], t.index[w])
		}
	}

	if t.low[v] != t.index[v] {
		return
	}

	var component []string

	for {
		top := t.stack[len(t.stack)-1]
		t.stack = t.stack[:len(t.stack)-1]
		t.onStack[top] = false
		component = append(component, top)

		if top == v {
			break
		}
	}

	if len(component) > 1 {
		slices.Sort(component)
		t.components = append(t.components, component)
	}
}
