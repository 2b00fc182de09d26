package domain

import "context"

// ImportStatement represents a single local import extracted from a source file.
// Statements are ephemeral: they are produced per file during a scan and
// discarded once the graph is built.
type ImportStatement struct {
	// Source is the raw module specifier as written (e.g., './utils', '@/lib/date')
	Source string `json:"source"`

	// ImportedNames are the named bindings imported from the module
	ImportedNames []string `json:"imported_names,omitempty"`

	// IsTypeOnly indicates a TypeScript `import type` statement
	IsTypeOnly bool `json:"is_type_only,omitempty"`
}

// ImportGraphNode is a single file in the import graph
type ImportGraphNode struct {
	// File is the path relative to the scan root
	File string `json:"file"`

	// Imports are resolved file paths this file imports
	Imports []string `json:"imports"`

	// ImportedBy are resolved file paths that import this file.
	// Always derived from Imports, never populated independently.
	ImportedBy []string `json:"imported_by"`
}

// ImportGraph is the bidirectional import graph of a scanned directory
type ImportGraph struct {
	// Nodes maps relative file path to its node
	Nodes map[string]*ImportGraphNode `json:"nodes"`

	// Circular holds distinct import cycles. Cycles are deduplicated by exact
	// sequence only; rotations of the same cycle are kept as distinct entries.
	Circular [][]string `json:"circular"`

	// Partial is true when at least one local specifier could not be resolved
	// to a file on disk. The graph is still usable, just incomplete.
	Partial bool `json:"partial,omitempty"`

	// Unresolved lists the local specifiers that could not be resolved,
	// formatted as "file: specifier".
	Unresolved []string `json:"unresolved,omitempty"`
}

// NewImportGraph creates an empty ImportGraph
func NewImportGraph() *ImportGraph {
	return &ImportGraph{
		Nodes: make(map[string]*ImportGraphNode),
	}
}

// Node returns the node for a relative file path, creating it lazily
func (g *ImportGraph) Node(file string) *ImportGraphNode {
	node, ok := g.Nodes[file]
	if !ok {
		node = &ImportGraphNode{File: file}
		g.Nodes[file] = node
	}
	return node
}

// AddImport records that `from` imports `to`, keeping both directions in sync
func (g *ImportGraph) AddImport(from, to string) {
	fromNode := g.Node(from)
	toNode := g.Node(to)

	for _, existing := range fromNode.Imports {
		if existing == to {
			return
		}
	}
	fromNode.Imports = append(fromNode.Imports, to)
	toNode.ImportedBy = append(toNode.ImportedBy, from)
}

// ImporterCount returns the number of distinct files importing `file`
func (g *ImportGraph) ImporterCount(file string) int {
	node, ok := g.Nodes[file]
	if !ok {
		return 0
	}
	return len(node.ImportedBy)
}

// NodeCount returns the number of nodes in the graph
func (g *ImportGraph) NodeCount() int {
	return len(g.Nodes)
}

// EdgeCount returns the total number of import edges
func (g *ImportGraph) EdgeCount() int {
	count := 0
	for _, node := range g.Nodes {
		count += len(node.Imports)
	}
	return count
}

// ImportGraphRequest represents a request to build an import graph
type ImportGraphRequest struct {
	// Dir is the directory to scan recursively
	Dir string `json:"dir"`

	// NamePatterns filters scanned files by filename glob. Empty matches all.
	NamePatterns []string `json:"name_patterns,omitempty"`

	// ExcludePatterns are directory/file name patterns to skip
	ExcludePatterns []string `json:"exclude_patterns,omitempty"`

	// OutputFormat specifies the output format for rendering
	OutputFormat OutputFormat `json:"output_format,omitempty"`

	// OutputPath is the path to save output (empty = stdout)
	OutputPath string `json:"output_path,omitempty"`

	// ShowProgress enables interactive progress display
	ShowProgress bool `json:"show_progress,omitempty"`
}

// ImportGraphResponse represents the result of an import graph build
type ImportGraphResponse struct {
	// Graph is the built import graph
	Graph *ImportGraph `json:"graph"`

	// FilesScanned is the number of source files scanned
	FilesScanned int `json:"files_scanned"`

	// Warnings contains non-fatal problems from the scan
	Warnings []string `json:"warnings,omitempty"`

	// GeneratedAt is when the graph was built
	GeneratedAt string `json:"generated_at"`

	// Version is the tool version
	Version string `json:"version"`
}

// ImportGraphService defines the core business logic for import graph building
type ImportGraphService interface {
	// Build scans a directory and constructs the bidirectional import graph
	Build(ctx context.Context, req ImportGraphRequest) (*ImportGraphResponse, error)
}
