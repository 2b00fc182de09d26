package migration

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"tsshift/internal/resolver"
)

// Import rewriting works over statement text, never an AST, so unrelated
// code keeps its exact formatting. Matching is restricted to from '...'
// clauses (plus bare side-effect imports); old and new specifiers are
// treated as opaque data and never interpolated into a pattern.
var (
	fromClauseRe = regexp.MustCompile(`(from\s*)(['"])([^'"]+)(['"])`)
	bareImportRe = regexp.MustCompile(`(?m)(^[ \t]*import\s*)(['"])([^'"]+)(['"])`)

	// importStatementRe captures whole import statements so symbol renames
	// stay confined to the import clause
	importStatementRe = regexp.MustCompile(`(?m)^[ \t]*(?:import|export)\s+[^'"]+?\s*from\s*['"][^'"]+['"]`)
)

// Rewriter rewrites import statements across a project
type Rewriter struct {
	projectRoot string
	resolver    *resolver.PathResolver
}

// NewRewriter creates a rewriter anchored at a project root. The resolver
// is used to keep aliased imports aliased after a rewrite; it may be nil.
func NewRewriter(projectRoot string, pathResolver *resolver.PathResolver) *Rewriter {
	return &Rewriter{projectRoot: projectRoot, resolver: pathResolver}
}

// UpdateImports rewrites every import in importerFile that points at
// oldSource so it points at newSource instead. Paths are project-relative
// source file paths. Returns whether the file changed.
func (r *Rewriter) UpdateImports(importerFile, oldSource, newSource string) (bool, error) {
	absPath := filepath.Join(r.projectRoot, importerFile)
	data, err := os.ReadFile(absPath)
	if err != nil {
		return false, err
	}

	updated := r.RewriteSource(string(data), importerFile, oldSource, newSource)
	if updated == string(data) {
		return false, nil
	}

	if err := os.WriteFile(absPath, []byte(updated), 0644); err != nil {
		return false, err
	}
	return true, nil
}

// RewriteSource returns content with every specifier referencing oldSource
// replaced by a specifier for newSource. Matching is anchored on the old
// module's basename inside the quoted specifier.
func (r *Rewriter) RewriteSource(content, importerFile, oldSource, newSource string) string {
	oldBase := moduleBasename(oldSource)

	replace := func(match string, re *regexp.Regexp) string {
		parts := re.FindStringSubmatch(match)
		spec := parts[3]
		if moduleBasename(spec) != oldBase {
			return match
		}
		return parts[1] + parts[2] + r.newSpecifier(importerFile, spec, newSource) + parts[4]
	}

	content = fromClauseRe.ReplaceAllStringFunc(content, func(m string) string {
		return replace(m, fromClauseRe)
	})
	content = bareImportRe.ReplaceAllStringFunc(content, func(m string) string {
		return replace(m, bareImportRe)
	})
	return content
}

// newSpecifier computes the replacement specifier for an importer: aliased
// when the old specifier was aliased and an alias covers the new location,
// relative otherwise
func (r *Rewriter) newSpecifier(importerFile, oldSpec, newSource string) string {
	withoutExt := trimSourceExt(newSource)

	if r.resolver != nil && r.resolver.IsAlias(oldSpec) {
		if aliased, ok := r.resolver.ToAlias(withoutExt); ok {
			return aliased
		}
	}

	rel, err := filepath.Rel(filepath.Dir(importerFile), withoutExt)
	if err != nil {
		return oldSpec
	}
	rel = filepath.ToSlash(rel)
	if !strings.HasPrefix(rel, ".") {
		rel = "./" + rel
	}
	return rel
}

// RenameImportedSymbol renames a symbol inside import statements whose
// specifier matches moduleBase. Code outside import statements is left
// untouched; the old name is escaped, never interpolated raw.
func RenameImportedSymbol(content, oldName, newName, moduleBase string) string {
	nameRe := regexp.MustCompile(`\b` + regexp.QuoteMeta(oldName) + `\b`)

	return importStatementRe.ReplaceAllStringFunc(content, func(stmt string) string {
		specMatch := fromClauseRe.FindStringSubmatch(stmt)
		if specMatch == nil || moduleBasename(specMatch[3]) != moduleBase {
			return stmt
		}
		return nameRe.ReplaceAllLiteralString(stmt, newName)
	})
}

// RewriteRelativeImports adjusts a moved file's own relative imports for
// its new directory depth. oldDir and newDir are absolute directories.
func RewriteRelativeImports(content, oldDir, newDir string) string {
	rewrite := func(match string, re *regexp.Regexp) string {
		parts := re.FindStringSubmatch(match)
		spec := parts[3]
		if !strings.HasPrefix(spec, ".") {
			return match
		}

		resolved := filepath.Join(oldDir, spec)
		rel, err := filepath.Rel(newDir, resolved)
		if err != nil {
			return match
		}
		rel = filepath.ToSlash(rel)
		if !strings.HasPrefix(rel, ".") {
			rel = "./" + rel
		}
		return parts[1] + parts[2] + rel + parts[4]
	}

	content = fromClauseRe.ReplaceAllStringFunc(content, func(m string) string {
		return rewrite(m, fromClauseRe)
	})
	content = bareImportRe.ReplaceAllStringFunc(content, func(m string) string {
		return rewrite(m, bareImportRe)
	})
	return content
}

// moduleBasename returns the final path segment of a specifier or file
// path with any source extension removed
func moduleBasename(spec string) string {
	base := spec
	if idx := strings.LastIndexAny(base, "/\\"); idx >= 0 {
		base = base[idx+1:]
	}
	return trimSourceExt(base)
}

func trimSourceExt(p string) string {
	for _, ext := range []string{".tsx", ".ts", ".jsx", ".js"} {
		if strings.HasSuffix(p, ext) {
			return strings.TrimSuffix(p, ext)
		}
	}
	return p
}
