package nolint

import (
	"strings"

	"github.com/typelint/typelint/internal/syntax"
)

const nolintPrefix = "# nolint"

// scope is a line range a nolint comment suppresses, optionally restricted to
// named rules. An empty rule set suppresses everything.
type scope struct {
	startLine int
	endLine   int
	rules     map[string]struct{}
}

// Manager answers whether a diagnostic at a given line is suppressed by a
// nolint comment in the file it came from.
type Manager struct {
	scopes []scope
}

// Parse collects the nolint directives of one parsed module. An inline
// `# nolint` suppresses its own line; a standalone one suppresses the next
// line; a standalone one appearing before any statement suppresses the whole
// file. Rules are named after the directive's colon: `# nolint: never-union`.
func Parse(module *syntax.Module, locator *syntax.Locator) *Manager {
	m := &Manager{}

	firstStmtLine := 0
	if len(module.Body) > 0 {
		firstStmtLine, _ = locator.LineCol(module.Body[0].Range().Start)
	}

	for _, comment := range module.Comments {
		text := strings.TrimRight(comment.Text, " \t")
		if !strings.HasPrefix(text, nolintPrefix) {
			continue
		}
		rules, ok := parseRules(text[len(nolintPrefix):])
		if !ok {
			// e.g. "# nolinting", not a directive
			continue
		}

		s := scope{rules: rules}
		switch {
		case comment.Own && (firstStmtLine == 0 || comment.Line < firstStmtLine):
			s.startLine = 1
			s.endLine = locator.LineCount()
		case comment.Own:
			s.startLine = comment.Line + 1
			s.endLine = comment.Line + 1
		default:
			s.startLine = comment.Line
			s.endLine = comment.Line
		}
		m.scopes = append(m.scopes, s)
	}
	return m
}

// parseRules splits the text after the `# nolint` prefix into rule names.
// ok is false when the prefix is followed by more identifier characters,
// meaning the comment only happens to start with the directive text.
func parseRules(rest string) (map[string]struct{}, bool) {
	rules := make(map[string]struct{})
	if rest == "" {
		return rules, true
	}
	if rest[0] != ':' && rest[0] != ' ' && rest[0] != '\t' {
		return nil, false
	}
	colon := strings.IndexByte(rest, ':')
	if colon == -1 {
		return rules, true
	}
	for _, name := range strings.Split(rest[colon+1:], ",") {
		name = strings.TrimSpace(name)
		if name != "" {
			rules[name] = struct{}{}
		}
	}
	return rules, true
}

// IsNolint reports whether the named rule is suppressed at the given line.
func (m *Manager) IsNolint(line int, ruleName string) bool {
	for _, s := range m.scopes {
		if line < s.startLine || line > s.endLine {
			continue
		}
		if len(s.rules) == 0 {
			return true
		}
		if _, ok := s.rules[ruleName]; ok {
			return true
		}
	}
	return false
}
