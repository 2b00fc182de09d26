package migration

import (
	"regexp"
	"strings"
)

// RemoveDeclaration deletes the named type/interface/function/const
// declaration from content, returning the new content and whether anything
// was removed. The declaration is located by an anchored statement pattern
// and delimited by brace counting (or the terminating semicolon for
// `type X = ...` aliases); nothing outside the block is touched.
//
// When keepJSDoc is false, a doc comment immediately above the declaration
// is removed with it.
func RemoveDeclaration(content, name string, keepJSDoc bool) (string, bool) {
	declRe := regexp.MustCompile(
		`(?m)^[ \t]*(?:export\s+)?(?:declare\s+)?(interface|type|enum|class|function|const|let)\s+` +
			regexp.QuoteMeta(name) + `\b`)

	loc := declRe.FindStringIndex(content)
	if loc == nil {
		return content, false
	}

	kindMatch := declRe.FindStringSubmatch(content[loc[0]:loc[1]])
	kind := kindMatch[1]

	end := declarationEnd(content, loc[1], kind)
	start := loc[0]
	if !keepJSDoc {
		start = includeLeadingJSDoc(content, start)
	}

	// Swallow one trailing newline so no blank line is left behind
	if end < len(content) && content[end] == '\n' {
		end++
	}

	return content[:start] + content[end:], true
}

// declarationEnd finds the end offset of a declaration body starting the
// scan just after the declaration name
func declarationEnd(content string, from int, kind string) int {
	switch kind {
	case "type", "const", "let":
		// Statement form: ends at the first top-level semicolon. A balanced
		// group closing does not end the statement on its own (arrow-function
		// initializers continue after their parameter list); without a
		// semicolon the statement ends at a line break that neither side
		// marks as a continuation (multiline unions, chained expressions).
		depth := 0
		for i := from; i < len(content); i++ {
			switch content[i] {
			case '{', '(', '[':
				depth++
			case '}', ')', ']':
				depth--
			case ';':
				if depth == 0 {
					return i + 1
				}
			case '\n':
				if depth == 0 && statementEnds(content, from, i) {
					return i
				}
			}
		}
		return len(content)

	default:
		// Block form: interface/enum/class/function end at the matching brace
		depth := 0
		opened := false
		for i := from; i < len(content); i++ {
			switch content[i] {
			case '{':
				depth++
				opened = true
			case '}':
				depth--
				if opened && depth == 0 {
					return i + 1
				}
			}
		}
		return len(content)
	}
}

// includeLeadingJSDoc extends start backwards over a /** ... */ block (and
// the whitespace between it and the declaration) when one directly
// precedes the declaration
func includeLeadingJSDoc(content string, start int) int {
	i := start
	for i > 0 && (content[i-1] == ' ' || content[i-1] == '\t' || content[i-1] == '\n' || content[i-1] == '\r') {
		i--
	}
	if i < 2 || content[i-2] != '*' || content[i-1] != '/' {
		return start
	}
	open := strings.LastIndex(content[:i], "/**")
	if open < 0 {
		return start
	}
	// Only pull the comment in when nothing but whitespace separates it
	// from the declaration
	between := content[open:i]
	if !strings.HasSuffix(strings.TrimSpace(between), "*/") {
		return start
	}
	// Keep the line start before the comment
	lineStart := strings.LastIndex(content[:open], "\n") + 1
	if strings.TrimSpace(content[lineStart:open]) == "" {
		return lineStart
	}
	return open
}

// isContinuation reports whether a character marks a statement as spanning
// the adjacent line break, whether it ends one line or starts the next
func isContinuation(c byte) bool {
	switch c {
	case '=', '|', '&', ',', '+', '-', '*', '/', '?', ':', '.', '<', '>':
		return true
	}
	return false
}

// statementEnds reports whether a semicolon-less statement ends at the line
// break at lineEnd: the text so far must be non-empty and neither end with a
// continuation character nor be followed by one
func statementEnds(content string, from, lineEnd int) bool {
	text := strings.TrimSpace(content[from:lineEnd])
	if text == "" {
		return false
	}
	if isContinuation(text[len(text)-1]) {
		return false
	}
	next := nextNonSpace(content, lineEnd+1)
	if next < len(content) && isContinuation(content[next]) {
		return false
	}
	return true
}

func nextNonSpace(content string, from int) int {
	for i := from; i < len(content); i++ {
		c := content[i]
		if c != ' ' && c != '\t' && c != '\r' && c != '\n' {
			return i
		}
	}
	return len(content)
}
