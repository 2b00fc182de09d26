// Package resolver maps TypeScript path aliases to project-relative paths
// and back, based on the project's tsconfig.
package resolver

import (
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

// sourceDirProbes are the conventional source roots checked, in order, when
// the config does not name a usable baseUrl
var sourceDirProbes = []string{"src", "lib", "source", "app"}

// PathResolver resolves path aliases for one project root.
// Immutable after construction.
type PathResolver struct {
	projectRoot string
	baseURL     string
	sourceDir   string

	// aliases maps alias prefix (without the /* suffix) to a target
	// directory relative to projectRoot
	aliases map[string]string

	// prefixesByLen caches alias prefixes sorted longest-first for
	// longest-prefix matching
	prefixesByLen []string
}

// New creates a PathResolver for a project root. It reads the nearest
// tsconfig, following the extends chain; a missing or malformed config
// yields a default resolver (baseUrl ".", no aliases) rather than an error.
func New(projectRoot string) *PathResolver {
	r := &PathResolver{
		projectRoot: projectRoot,
		baseURL:     ".",
		aliases:     make(map[string]string),
	}

	cfg, err := loadTSConfig(filepath.Join(projectRoot, "tsconfig.json"))
	if err == nil {
		r.applyConfig(cfg)
	}

	r.sourceDir = r.findSourceDir()

	r.prefixesByLen = make([]string, 0, len(r.aliases))
	for prefix := range r.aliases {
		r.prefixesByLen = append(r.prefixesByLen, prefix)
	}
	sort.Slice(r.prefixesByLen, func(i, j int) bool {
		if len(r.prefixesByLen[i]) != len(r.prefixesByLen[j]) {
			return len(r.prefixesByLen[i]) > len(r.prefixesByLen[j])
		}
		return r.prefixesByLen[i] < r.prefixesByLen[j]
	})

	return r
}

// applyConfig derives baseUrl and the alias table from a parsed config
func (r *PathResolver) applyConfig(cfg *tsConfig) {
	if cfg.CompilerOptions.BaseURL != "" {
		r.baseURL = filepath.ToSlash(filepath.Clean(cfg.CompilerOptions.BaseURL))
	}

	for pattern, targets := range cfg.CompilerOptions.Paths {
		if len(targets) == 0 {
			continue
		}
		prefix := strings.TrimSuffix(pattern, "/*")
		target := strings.TrimSuffix(targets[0], "/*")
		target = path.Join(r.baseURL, target)
		r.aliases[prefix] = target
	}
}

// ProjectRoot returns the root the resolver was created for
func (r *PathResolver) ProjectRoot() string {
	return r.projectRoot
}

// BaseURL returns the configured baseUrl (default ".")
func (r *PathResolver) BaseURL() string {
	return r.baseURL
}

// SourceDir returns the detected source directory relative to the project
// root ("." when detection fell back to the root itself)
func (r *PathResolver) SourceDir() string {
	return r.sourceDir
}

// Aliases returns a copy of the alias table (prefix -> target directory
// relative to the project root)
func (r *PathResolver) Aliases() map[string]string {
	out := make(map[string]string, len(r.aliases))
	for k, v := range r.aliases {
		out[k] = v
	}
	return out
}

// ResolveAlias resolves an aliased specifier to a project-relative path.
// Exact matches win over prefix matches; prefix matches take the longest
// alias first. Returns false when no alias applies.
func (r *PathResolver) ResolveAlias(spec string) (string, bool) {
	if target, ok := r.aliases[spec]; ok {
		return target, true
	}
	for _, prefix := range r.prefixesByLen {
		if strings.HasPrefix(spec, prefix+"/") {
			rest := spec[len(prefix)+1:]
			return path.Join(r.aliases[prefix], rest), true
		}
	}
	return "", false
}

// ToAlias converts a project-relative path back to its aliased form.
// Matching is done on normalized, slash-separated prefixes, longest target
// first. Returns false when no alias covers the path.
func (r *PathResolver) ToAlias(relativePath string) (string, bool) {
	normalized := filepath.ToSlash(relativePath)

	type entry struct {
		prefix string
		target string
	}
	entries := make([]entry, 0, len(r.aliases))
	for prefix, target := range r.aliases {
		entries = append(entries, entry{prefix, target})
	}
	sort.Slice(entries, func(i, j int) bool {
		if len(entries[i].target) != len(entries[j].target) {
			return len(entries[i].target) > len(entries[j].target)
		}
		return entries[i].target < entries[j].target
	})

	for _, e := range entries {
		if normalized == e.target {
			return e.prefix, true
		}
		if strings.HasPrefix(normalized, e.target+"/") {
			return e.prefix + "/" + normalized[len(e.target)+1:], true
		}
	}
	return "", false
}

// IsAlias reports whether a specifier equals or is prefixed by a known alias
func (r *PathResolver) IsAlias(spec string) bool {
	if _, ok := r.aliases[spec]; ok {
		return true
	}
	for _, prefix := range r.prefixesByLen {
		if strings.HasPrefix(spec, prefix+"/") {
			return true
		}
	}
	return false
}

// findSourceDir prefers an explicit non-"." baseUrl that exists on disk,
// then probes conventional directories, then falls back to the root
func (r *PathResolver) findSourceDir() string {
	if r.baseURL != "." && r.baseURL != "" {
		if dirExists(filepath.Join(r.projectRoot, r.baseURL)) {
			return r.baseURL
		}
	}
	for _, probe := range sourceDirProbes {
		if dirExists(filepath.Join(r.projectRoot, probe)) {
			return probe
		}
	}
	return "."
}

func dirExists(p string) bool {
	info, err := os.Stat(p)
	return err == nil && info.IsDir()
}

// Cache holds one resolver per project root so repeated lookups during a
// run are cheap and consistent. Owned by the caller (typically a session);
// there is no process-global cache.
type Cache struct {
	mu        sync.Mutex
	resolvers map[string]*PathResolver
}

// NewCache creates an empty resolver cache
func NewCache() *Cache {
	return &Cache{resolvers: make(map[string]*PathResolver)}
}

// Get returns the cached resolver for a root, creating it on first use
func (c *Cache) Get(projectRoot string) *PathResolver {
	c.mu.Lock()
	defer c.mu.Unlock()

	if r, ok := c.resolvers[projectRoot]; ok {
		return r
	}
	r := New(projectRoot)
	c.resolvers[projectRoot] = r
	return r
}
