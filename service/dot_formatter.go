package service

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"tsshift/domain"
	"tsshift/internal/version"
)

// DOTFormatterConfig configures the DOT formatter behavior
type DOTFormatterConfig struct {
	// HighlightCycles draws circular import edges bold and red
	HighlightCycles bool

	// RankDir is the layout direction: TB, LR, BT, RL
	RankDir string
}

// DefaultDOTFormatterConfig returns a DOTFormatterConfig with sensible defaults
func DefaultDOTFormatterConfig() *DOTFormatterConfig {
	return &DOTFormatterConfig{
		HighlightCycles: true,
		RankDir:         "LR",
	}
}

// DOTFormatter renders import graphs as DOT for Graphviz
type DOTFormatter struct {
	config *DOTFormatterConfig
}

// NewDOTFormatter creates a new DOT formatter with the given configuration
func NewDOTFormatter(config *DOTFormatterConfig) *DOTFormatter {
	if config == nil {
		config = DefaultDOTFormatterConfig()
	}
	return &DOTFormatter{config: config}
}

// validRankDirs contains the valid Graphviz rank directions
var validRankDirs = map[string]bool{
	"TB": true,
	"LR": true,
	"BT": true,
	"RL": true,
}

// WriteImportGraph writes an import graph as DOT to the writer
func (f *DOTFormatter) WriteImportGraph(graph *domain.ImportGraph, writer io.Writer) error {
	if graph == nil {
		return fmt.Errorf("nil graph")
	}
	if !validRankDirs[f.config.RankDir] {
		return fmt.Errorf("invalid rank direction %q: must be one of TB, LR, BT, RL", f.config.RankDir)
	}

	fmt.Fprintf(writer, "/* tsshift import graph - Generated: %s */\n", time.Now().Format(time.RFC3339))
	fmt.Fprintf(writer, "/* Version: %s */\n", version.GetVersion())
	fmt.Fprintln(writer, "digraph imports {")
	fmt.Fprintf(writer, "    rankdir=%s;\n", f.config.RankDir)
	fmt.Fprintln(writer, "    node [shape=box, style=filled, fillcolor=\"#EEF5FF\", fontname=\"Helvetica\"];")
	fmt.Fprintln(writer, "    edge [fontname=\"Helvetica\", fontsize=10];")
	fmt.Fprintln(writer)

	// Edges inside a cycle get highlighted; membership is per directed pair
	cycleEdges := make(map[[2]string]bool)
	if f.config.HighlightCycles {
		for _, cycle := range graph.Circular {
			for i := 0; i+1 < len(cycle); i++ {
				cycleEdges[[2]string{cycle[i], cycle[i+1]}] = true
			}
		}
	}

	files := make([]string, 0, len(graph.Nodes))
	for file := range graph.Nodes {
		files = append(files, file)
	}
	sort.Strings(files)

	fmt.Fprintln(writer, "    // Modules")
	for _, file := range files {
		fmt.Fprintf(writer, "    %s [label=\"%s\"];\n", escapeDOTID(file), escapeDOTLabel(file))
	}
	fmt.Fprintln(writer)

	fmt.Fprintln(writer, "    // Imports")
	for _, file := range files {
		imports := append([]string(nil), graph.Nodes[file].Imports...)
		sort.Strings(imports)
		for _, target := range imports {
			fmt.Fprintf(writer, "    %s -> %s", escapeDOTID(file), escapeDOTID(target))
			if cycleEdges[[2]string{file, target}] {
				fmt.Fprint(writer, " [penwidth=2, color=\"#DC143C\"]")
			}
			fmt.Fprintln(writer, ";")
		}
	}

	fmt.Fprintln(writer, "}")
	return nil
}

// escapeDOTID escapes a string for use as a DOT node ID
func escapeDOTID(id string) string {
	replacer := strings.NewReplacer(
		"/", "__",
		".", "_",
		"-", "_",
		"@", "_at_",
		" ", "_",
		":", "_",
	)
	escaped := replacer.Replace(id)
	if len(escaped) > 0 && !isValidDOTIDStart(escaped[0]) {
		escaped = "_" + escaped
	}
	return escaped
}

// escapeDOTLabel escapes a string for use as a DOT label.
// Note: backslash must be replaced first to avoid double-escaping.
func escapeDOTLabel(label string) string {
	replacer := strings.NewReplacer(
		"\\", "\\\\",
		"\"", "\\\"",
		"\n", "\\n",
		"\r", "",
		"\t", "\\t",
	)
	return replacer.Replace(label)
}

// isValidDOTIDStart checks if a character can start a DOT ID
func isValidDOTIDStart(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '_'
}
