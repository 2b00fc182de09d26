package service

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"

	"tsshift/domain"
)

// OutputFormatterImpl renders graph, plan and execution responses in the
// supported output formats
type OutputFormatterImpl struct{}

// NewOutputFormatter creates a new output formatter
func NewOutputFormatter() *OutputFormatterImpl {
	return &OutputFormatterImpl{}
}

// WriteJSON writes data as indented JSON to the writer
func WriteJSON(writer io.Writer, data interface{}) error {
	encoder := json.NewEncoder(writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

// WriteYAML writes data as YAML to the writer
func WriteYAML(writer io.Writer, data interface{}) error {
	encoder := yaml.NewEncoder(writer)
	encoder.SetIndent(2)
	if err := encoder.Encode(data); err != nil {
		return err
	}
	return encoder.Close()
}

// WriteGraph writes the import graph response in the specified format
func (f *OutputFormatterImpl) WriteGraph(response *domain.ImportGraphResponse, format domain.OutputFormat, writer io.Writer) error {
	switch format {
	case domain.OutputFormatJSON:
		return WriteJSON(writer, response)
	case domain.OutputFormatYAML:
		return WriteYAML(writer, response)
	case domain.OutputFormatText:
		return f.writeGraphText(response, writer)
	case domain.OutputFormatDOT:
		return NewDOTFormatter(nil).WriteImportGraph(response.Graph, writer)
	default:
		return domain.NewUnsupportedFormatError(string(format))
	}
}

// WritePlan writes the migration plan response in the specified format
func (f *OutputFormatterImpl) WritePlan(response *domain.PlanResponse, format domain.OutputFormat, writer io.Writer) error {
	switch format {
	case domain.OutputFormatJSON:
		return WriteJSON(writer, response)
	case domain.OutputFormatYAML:
		return WriteYAML(writer, response)
	case domain.OutputFormatText:
		return NewPreviewRenderer().RenderPlan(response, writer)
	default:
		return domain.NewUnsupportedFormatError(string(format))
	}
}

// WriteExecution writes the execution response in the specified format
func (f *OutputFormatterImpl) WriteExecution(response *domain.ExecuteResponse, format domain.OutputFormat, writer io.Writer) error {
	switch format {
	case domain.OutputFormatJSON:
		return WriteJSON(writer, response)
	case domain.OutputFormatYAML:
		return WriteYAML(writer, response)
	case domain.OutputFormatText:
		return f.writeExecutionText(response, writer)
	default:
		return domain.NewUnsupportedFormatError(string(format))
	}
}

// writeGraphText writes the import graph as plain text
func (f *OutputFormatterImpl) writeGraphText(response *domain.ImportGraphResponse, writer io.Writer) error {
	fmt.Fprintf(writer, "\n=== Import Graph ===\n\n")
	fmt.Fprintf(writer, "Generated: %s\n", response.GeneratedAt)
	fmt.Fprintf(writer, "Version: %s\n\n", response.Version)

	graph := response.Graph
	fmt.Fprintf(writer, "Summary:\n")
	fmt.Fprintf(writer, "  Files scanned: %d\n", response.FilesScanned)
	fmt.Fprintf(writer, "  Nodes: %d\n", graph.NodeCount())
	fmt.Fprintf(writer, "  Edges: %d\n", graph.EdgeCount())
	fmt.Fprintf(writer, "  Circular chains: %d\n", len(graph.Circular))
	if graph.Partial {
		fmt.Fprintf(writer, "  Partial: %d specifiers could not be resolved\n", len(graph.Unresolved))
	}
	fmt.Fprintf(writer, "\n")

	if len(graph.Circular) > 0 {
		fmt.Fprintf(writer, "Circular imports:\n")
		for _, cycle := range graph.Circular {
			fmt.Fprintf(writer, "  %s\n", joinCycle(cycle))
		}
		fmt.Fprintf(writer, "\n")
	}

	// Most-imported files first; ties broken by path for stable output
	files := make([]string, 0, len(graph.Nodes))
	for file := range graph.Nodes {
		files = append(files, file)
	}
	sort.Slice(files, func(i, j int) bool {
		ci, cj := graph.ImporterCount(files[i]), graph.ImporterCount(files[j])
		if ci != cj {
			return ci > cj
		}
		return files[i] < files[j]
	})

	fmt.Fprintf(writer, "Files by importer count:\n")
	for _, file := range files {
		fmt.Fprintf(writer, "  %s (imported by %d)\n", file, graph.ImporterCount(file))
	}

	if len(response.Warnings) > 0 {
		fmt.Fprintf(writer, "\nWarnings:\n")
		for _, w := range response.Warnings {
			fmt.Fprintf(writer, "  - %s\n", w)
		}
	}
	return nil
}

// writeExecutionText writes the execution results as plain text
func (f *OutputFormatterImpl) writeExecutionText(response *domain.ExecuteResponse, writer io.Writer) error {
	fmt.Fprintf(writer, "\n=== Migration Results ===\n\n")
	for _, result := range response.Results {
		status := "ok"
		if !result.Success {
			status = "FAILED"
		}
		fmt.Fprintf(writer, "  [%s] %s\n", status, result.Message)
		for _, w := range result.Warnings {
			fmt.Fprintf(writer, "        warning: %s\n", w)
		}
	}
	fmt.Fprintf(writer, "\nSucceeded: %d, Failed: %d, Warnings: %d\n",
		response.Succeeded, response.Failed, response.Warnings)
	return nil
}

func joinCycle(cycle []string) string {
	out := ""
	for i, file := range cycle {
		if i > 0 {
			out += " -> "
		}
		out += file
	}
	return out
}

// WriteToPath writes with the formatter to a file path, or to fallback when
// the path is empty
func WriteToPath(path string, fallback io.Writer, write func(io.Writer) error) error {
	if path == "" {
		return write(fallback)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return domain.NewOutputError("failed to create output directory", err)
		}
	}
	file, err := os.Create(path)
	if err != nil {
		return domain.NewOutputError("failed to create output file", err)
	}
	defer file.Close()
	return write(file)
}
