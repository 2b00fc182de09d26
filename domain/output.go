package domain

// OutputFormat represents the supported output formats
type OutputFormat string

const (
	OutputFormatText OutputFormat = "text"
	OutputFormatJSON OutputFormat = "json"
	OutputFormatYAML OutputFormat = "yaml"

	// OutputFormatDOT renders Graphviz output; import graphs only
	OutputFormatDOT OutputFormat = "dot"
)

// ProgressManager coordinates progress display for long-running phases
type ProgressManager interface {
	// StartTask creates a new progress task with a description and total count
	StartTask(description string, total int) TaskProgress

	// IsInteractive returns true if progress is actually displayed
	IsInteractive() bool

	// Close cleans up all tasks
	Close()
}

// TaskProgress tracks progress of a single task
type TaskProgress interface {
	// Increment adds n to the current progress
	Increment(n int)

	// Complete marks the task as finished
	Complete()
}
