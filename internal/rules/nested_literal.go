package rules

import (
	"strings"

	"github.com/typelint/typelint/internal/checker"
	"github.com/typelint/typelint/internal/syntax"
	tt "github.com/typelint/typelint/internal/types"
)

// NestedLiteral flags a `Literal[...]` nested directly inside another
// `Literal[...]`, e.g. `Literal[Literal[1, 2], 3]`, which flattens to
// `Literal[1, 2, 3]`. The flattening may reorder how type checkers display
// the members, so the fix is offered at sometimes-level, not safe.
func NestedLiteral(c *checker.Checker, node syntax.Node) {
	sub, ok := node.(*syntax.Subscript)
	if !ok || !c.Semantic().MatchTypingExpr(sub.Value, "Literal") {
		return
	}
	if !hasEnclosingLiteral(c) {
		return
	}

	var inner []string
	if tuple, ok := sub.Index.(*syntax.Tuple); ok && !tuple.Parenthesized {
		for _, elt := range tuple.Elts {
			inner = append(inner, c.Slice(elt.Range()))
		}
	} else {
		inner = append(inner, c.Slice(sub.Index.Range()))
	}

	c.Report(tt.Diagnostic{
		Range:   sub.Rng,
		Message: "`Literal[...]` nested inside another `Literal[...]`",
		Note:    "nested literals flatten to a single Literal",
		Fix: tt.SometimesFix(
			"Flatten into the enclosing Literal",
			tt.Replacement(sub.Rng, strings.Join(inner, ", ")),
		),
	})
}

// hasEnclosingLiteral walks expression ancestors upward, allowing the tuple
// that carries subscript elements, and stops at the first ancestor that
// breaks the nesting: only an unbroken tuple/subscript chain ending in a
// typing Literal subscript counts.
func hasEnclosingLiteral(c *checker.Checker) bool {
	for _, anc := range c.Semantic().ExpressionAncestors() {
		switch a := anc.(type) {
		case *syntax.Tuple:
			continue
		case *syntax.Subscript:
			return c.Semantic().MatchTypingExpr(a.Value, "Literal")
		default:
			return false
		}
	}
	return false
}
