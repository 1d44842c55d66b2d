package semantic

import "github.com/typelint/typelint/internal/syntax"

// The standard typing symbols are re-exported under more than one canonical
// entry point; recognition is a stateless lookup against this fixed table,
// not a cache.
var typingModules = []string{"typing", "typing_extensions"}

// IsTypingQualifiedName reports whether qn is `<typing module>.<member>` for
// any of the equivalent typing entry points.
func IsTypingQualifiedName(qn QualifiedName, member string) bool {
	segments := qn.Segments()
	if len(segments) != 2 || segments[1] != member {
		return false
	}
	for _, mod := range typingModules {
		if segments[0] == mod {
			return true
		}
	}
	return false
}

// MatchTypingExpr resolves expr and reports whether it denotes the given
// typing-module member. Unresolvable expressions simply do not match.
func (m *Model) MatchTypingExpr(expr syntax.Expr, member string) bool {
	qn, ok := m.ResolveQualifiedName(expr)
	if !ok {
		return false
	}
	return IsTypingQualifiedName(qn, member)
}
