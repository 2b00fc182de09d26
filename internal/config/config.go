// Package config loads tsshift tool configuration.
// Note: this is the tool's own configuration; the target project's
// tsconfig is handled by internal/resolver.
package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"tsshift/internal/resolver"
)

// Default planning thresholds
const (
	// DefaultMinSimilarity only auto-plans identical duplicates.
	// Callers opt into near-duplicates explicitly.
	DefaultMinSimilarity = 1.0

	// DefaultMaxPreviewUpdates is how many import updates the plan preview
	// lists before eliding the rest
	DefaultMaxPreviewUpdates = 10
)

// Config represents the main configuration structure
type Config struct {
	// Scan holds import graph scan configuration
	Scan ScanConfig `json:"scan" mapstructure:"scan" yaml:"scan"`

	// Plan holds migration planning configuration
	Plan PlanConfig `json:"plan" mapstructure:"plan" yaml:"plan"`

	// Execute holds migration execution configuration
	Execute ExecuteConfig `json:"execute" mapstructure:"execute" yaml:"execute"`

	// Output holds output formatting configuration
	Output OutputConfig `json:"output" mapstructure:"output" yaml:"output"`
}

// ScanConfig holds configuration for the import graph scan
type ScanConfig struct {
	// NamePatterns filters scanned files by filename glob (empty = all)
	NamePatterns []string `json:"namePatterns" mapstructure:"name_patterns" yaml:"name_patterns"`

	// ExcludePatterns are directory/file name patterns to skip
	ExcludePatterns []string `json:"excludePatterns" mapstructure:"exclude_patterns" yaml:"exclude_patterns"`

	// RespectGitignore skips files ignored by the project's .gitignore
	RespectGitignore bool `json:"respectGitignore" mapstructure:"respect_gitignore" yaml:"respect_gitignore"`

	// MaxConcurrency bounds parallel file reads (0 = number of CPUs)
	MaxConcurrency int `json:"maxConcurrency" mapstructure:"max_concurrency" yaml:"max_concurrency"`
}

// PlanConfig holds configuration for migration planning
type PlanConfig struct {
	// MinSimilarity filters duplicate groups below this score
	MinSimilarity float64 `json:"minSimilarity" mapstructure:"min_similarity" yaml:"min_similarity"`

	// OnlyIdentical restricts planning to similarity == 1.0 groups
	OnlyIdentical bool `json:"onlyIdentical" mapstructure:"only_identical" yaml:"only_identical"`
}

// ExecuteConfig holds configuration for migration execution
type ExecuteConfig struct {
	// Backup writes a .bak copy before modifying each file
	Backup bool `json:"backup" mapstructure:"backup" yaml:"backup"`

	// LibraryRoot confines mutations to this subtree (relative to the
	// project root; empty = the project root itself)
	LibraryRoot string `json:"libraryRoot" mapstructure:"library_root" yaml:"library_root"`
}

// OutputConfig holds configuration for output formatting
type OutputConfig struct {
	// Format specifies the output format: text, json, yaml
	Format string `json:"format" mapstructure:"format" yaml:"format"`

	// ShowProgress enables interactive progress bars
	ShowProgress bool `json:"showProgress" mapstructure:"show_progress" yaml:"show_progress"`
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Scan: ScanConfig{
			ExcludePatterns:  []string{"node_modules", "dist", "build"},
			RespectGitignore: true,
		},
		Plan: PlanConfig{
			MinSimilarity: DefaultMinSimilarity,
		},
		Execute: ExecuteConfig{
			Backup: true,
		},
		Output: OutputConfig{
			Format:       "text",
			ShowProgress: true,
		},
	}
}

// Validate checks configuration invariants
func (c *Config) Validate() error {
	if c.Plan.MinSimilarity < 0 || c.Plan.MinSimilarity > 1 {
		return fmt.Errorf("plan.min_similarity must be within [0,1], got %v", c.Plan.MinSimilarity)
	}
	if c.Scan.MaxConcurrency < 0 {
		return fmt.Errorf("scan.max_concurrency must be >= 0, got %d", c.Scan.MaxConcurrency)
	}
	switch c.Output.Format {
	case "", "text", "json", "yaml":
	default:
		return fmt.Errorf("output.format must be text, json, or yaml, got %q", c.Output.Format)
	}
	return nil
}

// configFileCandidates lists config file names in order of preference
var configFileCandidates = []string{
	"tsshift.config.json",
	".tsshiftrc.json",
	"tsshift.yaml",
	"tsshift.yml",
	".tsshift.yaml",
	".tsshift.yml",
}

// LoadConfig loads configuration from an explicit path, or discovers one
// when path is empty. A missing config yields defaults, not an error.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		path = FindConfigFile("")
	}
	if path == "" {
		return DefaultConfig(), nil
	}

	// Fresh viper instance per load to avoid shared state
	v := viper.New()

	cfg := DefaultConfig()
	if filepath.Ext(path) == ".json" {
		// Generated JSON configs carry comments; strip them before parsing
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		v.SetConfigType("json")
		if err := v.ReadConfig(bytes.NewReader(resolver.StripJSONComments(data))); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	} else {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// FindConfigFile searches startDir (or the working directory) and its
// parents for a config file, nearest first
func FindConfigFile(startDir string) string {
	dir := startDir
	if dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return ""
		}
		dir = cwd
	}

	for {
		for _, candidate := range configFileCandidates {
			path := filepath.Join(dir, candidate)
			if _, err := os.Stat(path); err == nil {
				return path
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}
