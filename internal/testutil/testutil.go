// Package testutil provides helper functions for testing tsshift components
package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// WriteProject materializes a TypeScript project fixture under a temp
// directory. Keys are project-relative file paths, values the file contents.
// Returns the project root.
func WriteProject(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for path, content := range files {
		WriteFile(t, root, path, content)
	}
	return root
}

// WriteFile writes one file inside a project root, creating parent
// directories as needed
func WriteFile(t *testing.T, root, path, content string) string {
	t.Helper()
	full := filepath.Join(root, filepath.FromSlash(path))
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		t.Fatalf("Failed to create directory for %s: %v", path, err)
	}
	if err := os.WriteFile(full, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write %s: %v", path, err)
	}
	return full
}

// ReadFile reads a project-relative file, failing the test on error
func ReadFile(t *testing.T, root, path string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(path)))
	if err != nil {
		t.Fatalf("Failed to read %s: %v", path, err)
	}
	return string(data)
}

// FileExists reports whether a project-relative path exists as a regular file
func FileExists(t *testing.T, root, path string) bool {
	t.Helper()
	info, err := os.Stat(filepath.Join(root, filepath.FromSlash(path)))
	if err != nil {
		return false
	}
	return !info.IsDir()
}
