package analyzer

import (
	"sort"
	"strings"

	"tsshift/domain"
)

// NewCandidate derives a CanonicalCandidate from a duplicate location and
// the importer count observed in the import graph
func NewCandidate(loc domain.DuplicateLocation, importerCount int) domain.CanonicalCandidate {
	return domain.CanonicalCandidate{
		File:          loc.File,
		Name:          loc.Name,
		Line:          loc.Line,
		Exported:      loc.Exported,
		ImporterCount: importerCount,
		IsTypeFile:    IsTypeFile(loc.File),
		HasJSDoc:      loc.HasJSDoc,
		PathDepth:     pathDepth(loc.File),
	}
}

// IsTypeFile reports whether a path matches the dedicated-types-file
// heuristic: types.ts, *.types.ts, anything under a types/ directory, or a
// core/types path
func IsTypeFile(file string) bool {
	normalized := strings.ToLower(strings.ReplaceAll(file, "\\", "/"))
	base := normalized
	if idx := strings.LastIndex(normalized, "/"); idx >= 0 {
		base = normalized[idx+1:]
	}

	if base == "types.ts" || strings.HasSuffix(base, ".types.ts") {
		return true
	}
	if strings.Contains(normalized, "/types/") || strings.HasPrefix(normalized, "types/") {
		return true
	}
	return strings.Contains(normalized, "/core/types") || strings.HasPrefix(normalized, "core/types")
}

func pathDepth(file string) int {
	normalized := strings.ReplaceAll(file, "\\", "/")
	return len(strings.Split(normalized, "/"))
}

// SelectCanonical picks exactly one location to keep from a duplicate
// group's candidates, or nil for an empty group. Single-member groups
// return that member trivially.
//
// Candidates are ranked by a fixed lexicographic priority, each criterion
// only breaking ties left by the previous one:
//  1. exported over non-exported
//  2. dedicated types file over a regular file
//  3. higher importer count
//  4. presence of a doc comment
//  5. shorter path depth
//
// Full ties resolve by lexicographic file path so selection never depends
// on the order locations were discovered upstream.
func SelectCanonical(candidates []domain.CanonicalCandidate) *domain.CanonicalCandidate {
	if len(candidates) == 0 {
		return nil
	}
	if len(candidates) == 1 {
		return &candidates[0]
	}

	ranked := make([]domain.CanonicalCandidate, len(candidates))
	copy(ranked, candidates)

	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if a.Exported != b.Exported {
			return a.Exported
		}
		if a.IsTypeFile != b.IsTypeFile {
			return a.IsTypeFile
		}
		if a.ImporterCount != b.ImporterCount {
			return a.ImporterCount > b.ImporterCount
		}
		if a.HasJSDoc != b.HasJSDoc {
			return a.HasJSDoc
		}
		if a.PathDepth != b.PathDepth {
			return a.PathDepth < b.PathDepth
		}
		return a.File < b.File
	})

	return &ranked[0]
}
