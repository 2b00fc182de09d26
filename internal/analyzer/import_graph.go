package analyzer

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"github.com/gobwas/glob"
	"golang.org/x/sync/errgroup"

	"tsshift/domain"
	"tsshift/internal/resolver"
)

// resolutionSuffixes are probed in this fixed order when resolving a local
// specifier to a file on disk
var resolutionSuffixes = []string{"", ".ts", ".tsx", ".js", ".jsx", "/index.ts", "/index.tsx"}

// skippedDirs are never descended into during a scan
var skippedDirs = map[string]bool{
	"node_modules": true,
	"dist":         true,
	"build":        true,
	".git":         true,
	"__tests__":    true,
}

// ImportGraphBuilderConfig configures the ImportGraphBuilder
type ImportGraphBuilderConfig struct {
	// ProjectRoot anchors alias resolution. Defaults to the scan dir.
	ProjectRoot string

	// NamePatterns filters scanned files by filename glob. Empty matches all.
	NamePatterns []string

	// MaxConcurrency bounds parallel file reads during extraction.
	// Defaults to runtime.NumCPU().
	MaxConcurrency int

	// Ignorer, when set, filters out files it matches (e.g. a compiled
	// .gitignore)
	Ignorer IgnoreMatcher
}

// IgnoreMatcher reports whether a path should be skipped during a scan.
// Satisfied by go-gitignore's compiled ignore files.
type IgnoreMatcher interface {
	MatchesPath(f string) bool
}

// ImportGraphBuilder scans a directory and builds the bidirectional import
// graph. Only local imports (relative or alias-prefixed) become edges;
// third-party specifiers are irrelevant to refactor safety and dropped.
type ImportGraphBuilder struct {
	config   ImportGraphBuilderConfig
	resolver *resolver.PathResolver
}

// NewImportGraphBuilder creates a builder using the given path resolver
func NewImportGraphBuilder(config ImportGraphBuilderConfig, pathResolver *resolver.PathResolver) *ImportGraphBuilder {
	if config.MaxConcurrency <= 0 {
		config.MaxConcurrency = runtime.NumCPU()
	}
	return &ImportGraphBuilder{config: config, resolver: pathResolver}
}

// fileImports pairs a scanned file with its extracted import statements
type fileImports struct {
	file    string
	imports []domain.ImportStatement
}

// Build scans dir recursively and constructs the import graph. File reading
// and extraction run in parallel; results are merged before graph assembly
// so cycle detection always sees the complete node map.
func (b *ImportGraphBuilder) Build(ctx context.Context, dir string, progress domain.TaskProgress) (*domain.ImportGraph, error) {
	files, err := b.CollectSourceFiles(dir)
	if err != nil {
		return nil, err
	}
	return b.BuildFromFiles(ctx, dir, files, progress)
}

// BuildFromFiles builds the graph over an already-collected file list
func (b *ImportGraphBuilder) BuildFromFiles(ctx context.Context, dir string, files []string, progress domain.TaskProgress) (*domain.ImportGraph, error) {
	results := make([]fileImports, len(files))
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(b.config.MaxConcurrency)

	for i, file := range files {
		i, file := i, file
		g.Go(func() error {
			select {
			case <-gCtx.Done():
				return gCtx.Err()
			default:
			}

			content, readErr := os.ReadFile(filepath.Join(dir, file))
			if readErr != nil {
				// Unreadable files just contribute no edges
				return nil
			}
			results[i] = fileImports{file: file, imports: ExtractImports(string(content))}
			if progress != nil {
				progress.Increment(1)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	graph := domain.NewImportGraph()
	for _, fi := range results {
		if fi.file == "" {
			continue
		}
		// Every scanned file gets a node even when it imports nothing
		graph.Node(fi.file)

		for _, imp := range fi.imports {
			if !b.isLocalSpecifier(imp.Source) {
				continue
			}
			resolved, ok := b.resolveSpecifier(dir, fi.file, imp.Source)
			if !ok {
				graph.Partial = true
				graph.Unresolved = append(graph.Unresolved, fi.file+": "+imp.Source)
				continue
			}
			graph.AddImport(fi.file, resolved)
		}
	}

	graph.Circular = DetectCycles(graph)
	return graph, nil
}

// CollectSourceFiles walks dir and returns TypeScript/TSX source files
// (relative paths), excluding tests and skipped directories
func (b *ImportGraphBuilder) CollectSourceFiles(dir string) ([]string, error) {
	patterns := make([]glob.Glob, 0, len(b.config.NamePatterns))
	for _, p := range b.config.NamePatterns {
		compiled, err := glob.Compile(p)
		if err != nil {
			return nil, domain.NewInvalidInputError("invalid name pattern: "+p, err)
		}
		patterns = append(patterns, compiled)
	}

	var files []string
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			if skippedDirs[info.Name()] {
				return filepath.SkipDir
			}
			return nil
		}
		if !isSourceFile(info.Name()) {
			return nil
		}
		if len(patterns) > 0 && !matchesAny(patterns, info.Name()) {
			return nil
		}
		rel, relErr := filepath.Rel(dir, path)
		if relErr != nil {
			return nil
		}
		rel = filepath.ToSlash(rel)
		if b.config.Ignorer != nil && b.config.Ignorer.MatchesPath(rel) {
			return nil
		}
		files = append(files, rel)
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(files)
	return files, nil
}

// isSourceFile accepts .ts/.tsx files that are neither tests nor declarations
func isSourceFile(name string) bool {
	if !strings.HasSuffix(name, ".ts") && !strings.HasSuffix(name, ".tsx") {
		return false
	}
	if strings.HasSuffix(name, ".d.ts") {
		return false
	}
	if strings.Contains(name, ".test.") || strings.Contains(name, ".spec.") {
		return false
	}
	return true
}

func matchesAny(patterns []glob.Glob, name string) bool {
	for _, p := range patterns {
		if p.Match(name) {
			return true
		}
	}
	return false
}

// isLocalSpecifier reports whether a specifier refers to a project file:
// relative paths and known alias prefixes qualify
func (b *ImportGraphBuilder) isLocalSpecifier(spec string) bool {
	if strings.HasPrefix(spec, ".") {
		return true
	}
	return b.resolver != nil && b.resolver.IsAlias(spec)
}

// resolveSpecifier resolves a local specifier to a scan-root-relative file
// path by alias substitution or relative join, then suffix probing. The
// first existing regular file wins; unresolvable specifiers are reported
// via the ok flag and otherwise dropped (best-effort graph, not a compiler).
func (b *ImportGraphBuilder) resolveSpecifier(scanRoot, fromFile, spec string) (string, bool) {
	var candidate string

	if strings.HasPrefix(spec, ".") {
		candidate = filepath.Join(scanRoot, filepath.Dir(fromFile), spec)
	} else {
		target, ok := b.resolver.ResolveAlias(spec)
		if !ok {
			return "", false
		}
		root := b.config.ProjectRoot
		if root == "" {
			root = scanRoot
		}
		candidate = filepath.Join(root, target)
	}

	for _, suffix := range resolutionSuffixes {
		probe := candidate + suffix
		info, err := os.Stat(probe)
		if err != nil || info.IsDir() {
			continue
		}
		rel, relErr := filepath.Rel(scanRoot, probe)
		if relErr != nil {
			return "", false
		}
		return filepath.ToSlash(rel), true
	}
	return "", false
}
