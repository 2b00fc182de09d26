package analyzer

import (
	"regexp"
	"strings"

	"tsshift/domain"
)

// Import statements are matched as text patterns anchored to statement
// syntax; nothing here parses TypeScript. Character classes deliberately
// exclude quotes so a named-import list may span lines.
var (
	// import/export ... from '...'
	importFromRe = regexp.MustCompile(`(?m)^[ \t]*(import|export)\s+([^'"]+?)\s*from\s*['"]([^'"]+)['"]`)

	// side-effect imports: import './setup'
	sideEffectRe = regexp.MustCompile(`(?m)^[ \t]*import\s*['"]([^'"]+)['"]`)
)

// ExtractImports pulls every import statement out of a file's content.
// Third-party specifiers are kept here; the graph builder decides which
// are local.
func ExtractImports(content string) []domain.ImportStatement {
	var imports []domain.ImportStatement

	for _, m := range importFromRe.FindAllStringSubmatch(content, -1) {
		clause := strings.TrimSpace(m[2])
		isTypeOnly := false
		if strings.HasPrefix(clause, "type ") || strings.HasPrefix(clause, "type{") {
			isTypeOnly = true
			clause = strings.TrimSpace(strings.TrimPrefix(clause, "type"))
		}

		imports = append(imports, domain.ImportStatement{
			Source:        m[3],
			ImportedNames: parseImportClause(clause),
			IsTypeOnly:    isTypeOnly,
		})
	}

	for _, m := range sideEffectRe.FindAllStringSubmatch(content, -1) {
		imports = append(imports, domain.ImportStatement{Source: m[1]})
	}

	return imports
}

// parseImportClause extracts the imported names from the clause between
// `import`/`export` and `from`. Names are the module-side names, not local
// aliases, so consumers can match symbols against the exporting file.
func parseImportClause(clause string) []string {
	var names []string

	// Namespace import: * as ns
	if strings.HasPrefix(clause, "*") {
		return []string{"*"}
	}

	braceStart := strings.Index(clause, "{")
	braceEnd := strings.LastIndex(clause, "}")

	// Default import before any brace: `foo` or `foo, { bar }`
	head := clause
	if braceStart >= 0 {
		head = clause[:braceStart]
	}
	head = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(head), ","))
	if head != "" && head != "*" {
		names = append(names, head)
	}

	if braceStart >= 0 && braceEnd > braceStart {
		for _, part := range strings.Split(clause[braceStart+1:braceEnd], ",") {
			name := strings.TrimSpace(part)
			if name == "" {
				continue
			}
			name = strings.TrimSpace(strings.TrimPrefix(name, "type "))
			// `orig as alias` exports the module-side name `orig`
			if idx := strings.Index(name, " as "); idx >= 0 {
				name = strings.TrimSpace(name[:idx])
			}
			if name != "" {
				names = append(names, name)
			}
		}
	}

	return names
}

// ImportsSymbolFrom reports whether content imports the given symbol from a
// module whose specifier resolves to the given basename. The basename match
// keeps the check anchored to the specific source file rather than any
// same-named symbol elsewhere.
func ImportsSymbolFrom(content, symbol, moduleBasename string) bool {
	for _, imp := range ExtractImports(content) {
		if specifierBasename(imp.Source) != moduleBasename {
			continue
		}
		for _, name := range imp.ImportedNames {
			if name == symbol || name == "*" {
				return true
			}
		}
	}
	return false
}

// specifierBasename returns the last path segment of a specifier with any
// extension removed
func specifierBasename(spec string) string {
	base := spec
	if idx := strings.LastIndex(base, "/"); idx >= 0 {
		base = base[idx+1:]
	}
	if idx := strings.LastIndex(base, "."); idx > 0 {
		base = base[:idx]
	}
	return base
}
