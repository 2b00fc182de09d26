package config

import "fmt"

// ProjectType represents the type of TypeScript project being refactored
type ProjectType string

const (
	ProjectTypeGeneric  ProjectType = "generic"
	ProjectTypeReact    ProjectType = "react"
	ProjectTypeNode     ProjectType = "node"
	ProjectTypeMonorepo ProjectType = "monorepo"
)

// Strictness represents how conservative planning should be
type Strictness string

const (
	StrictnessRelaxed  Strictness = "relaxed"
	StrictnessStandard Strictness = "standard"
	StrictnessStrict   Strictness = "strict"
)

// strictnessMinSimilarity maps strictness to the planning similarity floor
func strictnessMinSimilarity(s Strictness) float64 {
	switch s {
	case StrictnessRelaxed:
		return 0.9
	case StrictnessStrict:
		return 1.0
	default:
		return DefaultMinSimilarity
	}
}

// projectExcludes returns extra exclude patterns per project type
func projectExcludes(p ProjectType) string {
	switch p {
	case ProjectTypeReact:
		return `"node_modules", "dist", "build", ".next", "coverage"`
	case ProjectTypeNode:
		return `"node_modules", "dist", "build", "coverage"`
	case ProjectTypeMonorepo:
		return `"node_modules", "dist", "build", ".turbo", "coverage"`
	default:
		return `"node_modules", "dist", "build"`
	}
}

// GetFullConfigTemplate returns a documented config file tuned to a project
// type and strictness level
func GetFullConfigTemplate(projectType ProjectType, strictness Strictness) string {
	return fmt.Sprintf(`{
  // tsshift configuration (project type: %s, strictness: %s)

  "scan": {
    // Filename globs to include; empty means every .ts/.tsx source file
    "name_patterns": [],

    // Directory names skipped during the scan
    "exclude_patterns": [%s],

    // Skip files the project's .gitignore ignores
    "respect_gitignore": true,

    // Parallel file reads during extraction; 0 uses all CPUs
    "max_concurrency": 0
  },

  "plan": {
    // Duplicate groups below this similarity are never auto-planned.
    // 1.0 restricts planning to byte-identical duplicates.
    "min_similarity": %.2f,

    // Hard switch: ignore min_similarity and plan identical groups only
    "only_identical": false
  },

  "execute": {
    // Write a .bak copy next to each file before modifying it
    "backup": true,

    // Subtree migrations are confined to, relative to the project root.
    // Empty confines them to the project root itself.
    "library_root": ""
  },

  "output": {
    // text, json, or yaml
    "format": "text",
    "show_progress": true
  }
}
`, projectType, strictness, projectExcludes(projectType), strictnessMinSimilarity(strictness))
}

// GetMinimalConfigTemplate returns a config with essential options only
func GetMinimalConfigTemplate() string {
	return `{
  "plan": {
    "min_similarity": 1.0
  },
  "execute": {
    "backup": true
  }
}
`
}
