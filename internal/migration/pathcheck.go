package migration

import (
	"path/filepath"
	"strings"

	"tsshift/domain"
)

// validatePath resolves a project-relative path and rejects anything that
// escapes the library root. This runs before any filesystem call, so a
// malformed path from upstream (e.g. "../../etc/passwd") can never reach
// the disk. Both roots are made absolute first: the prefix check would
// otherwise misfire for relative roots like the CLI default ".".
func validatePath(projectRoot, libraryRoot, relPath string) (string, error) {
	if relPath == "" {
		return "", domain.NewInvalidInputError("empty path", nil)
	}

	rootAbs, err := filepath.Abs(projectRoot)
	if err != nil {
		return "", domain.NewInvalidInputError("cannot resolve project root: "+projectRoot, err)
	}
	libAbs, err := filepath.Abs(libraryRoot)
	if err != nil {
		return "", domain.NewInvalidInputError("cannot resolve library root: "+libraryRoot, err)
	}

	abs := filepath.Clean(filepath.Join(rootAbs, relPath))
	if abs != libAbs && !strings.HasPrefix(abs, libAbs+string(filepath.Separator)) {
		return "", domain.NewPathTraversalError(relPath)
	}
	return abs, nil
}

// EscapesProject reports whether a detector-supplied path climbs out of the
// project root. Used by the planner to drop hostile locations before it
// touches the graph or the filesystem.
func EscapesProject(relPath string) bool {
	cleaned := filepath.ToSlash(filepath.Clean(relPath))
	return cleaned == ".." || strings.HasPrefix(cleaned, "../") || filepath.IsAbs(relPath)
}
