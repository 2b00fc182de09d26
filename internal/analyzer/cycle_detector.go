package analyzer

import (
	"sort"
	"strings"

	"tsshift/domain"
)

// DetectCycles finds import cycles by depth-first search with an explicit
// recursion stack. When an import target is already on the stack, the path
// slice from that target through the current node plus the closing edge is
// recorded as one cycle. Cycles are deduplicated by exact sequence only:
// rotations of the same cycle ([A,B,C,A] vs [B,C,A,B]) stay distinct
// entries. O(V+E) per component.
func DetectCycles(graph *domain.ImportGraph) [][]string {
	if graph == nil || graph.NodeCount() == 0 {
		return nil
	}

	// Sorted start order keeps detection deterministic across runs
	nodes := make([]string, 0, graph.NodeCount())
	for file := range graph.Nodes {
		nodes = append(nodes, file)
	}
	sort.Strings(nodes)

	var cycles [][]string
	visited := make(map[string]bool)
	onStack := make(map[string]bool)
	seen := make(map[string]bool)

	var visit func(file string, path []string)
	visit = func(file string, path []string) {
		visited[file] = true
		onStack[file] = true
		path = append(path, file)

		for _, target := range graph.Nodes[file].Imports {
			if onStack[target] {
				start := -1
				for i, p := range path {
					if p == target {
						start = i
						break
					}
				}
				if start >= 0 {
					cycle := make([]string, 0, len(path)-start+1)
					cycle = append(cycle, path[start:]...)
					cycle = append(cycle, target)

					key := strings.Join(cycle, "\x00")
					if !seen[key] {
						seen[key] = true
						cycles = append(cycles, cycle)
					}
				}
			} else if !visited[target] {
				visit(target, path)
			}
		}

		onStack[file] = false
	}

	for _, file := range nodes {
		if !visited[file] {
			visit(file, nil)
		}
	}

	return cycles
}
