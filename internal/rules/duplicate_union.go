package rules

import (
	"fmt"
	"strings"

	"github.com/typelint/typelint/internal/checker"
	"github.com/typelint/typelint/internal/syntax"
	tt "github.com/typelint/typelint/internal/types"
)

// DuplicateUnionMember flags members that appear more than once in a union,
// e.g. `int | int` or `Union[str, str]`. The fix rebuilds the union without
// the repeated member.
func DuplicateUnionMember(c *checker.Checker, node syntax.Node) {
	switch expr := node.(type) {
	case *syntax.BinOp:
		if expr.Op != syntax.OpBitOr {
			return
		}
		// only the outermost `|` of a chain reports, so a chain with one
		// duplicate yields one diagnostic instead of one per nesting level
		if parent := c.Semantic().ExpressionAncestors(); len(parent) > 0 && isBitOr(parent[0]) {
			return
		}
		members := unionMembers(expr)
		reportDuplicates(c, expr, members, func(rest []syntax.Expr) string {
			parts := make([]string, len(rest))
			for i, m := range rest {
				parts[i] = c.Slice(m.Range())
			}
			return strings.Join(parts, " | ")
		})

	case *syntax.Subscript:
		if !c.Semantic().MatchTypingExpr(expr.Value, "Union") {
			return
		}
		tuple, ok := expr.Index.(*syntax.Tuple)
		if !ok {
			return
		}
		reportDuplicates(c, expr, tuple.Elts, func(rest []syntax.Expr) string {
			if len(rest) == 1 {
				return c.Slice(rest[0].Range())
			}
			return c.Generator().Expr(&syntax.Subscript{
				Value: expr.Value,
				Index: &syntax.Tuple{Elts: rest},
			})
		})
	}
}

// reportDuplicates emits one diagnostic per repeated occurrence (the first
// occurrence of each member is kept). rebuild renders the whole union from
// the surviving members.
func reportDuplicates(c *checker.Checker, whole syntax.Expr, members []syntax.Expr, rebuild func([]syntax.Expr) string) {
	seen := make(map[string]bool, len(members))
	duplicated := make(map[int]bool)
	for i, member := range members {
		key := c.Generator().Expr(member)
		if seen[key] {
			duplicated[i] = true
		}
		seen[key] = true
	}
	if len(duplicated) == 0 {
		return
	}

	var rest []syntax.Expr
	for i, member := range members {
		if !duplicated[i] {
			rest = append(rest, member)
		}
	}
	for i, member := range members {
		if !duplicated[i] {
			continue
		}
		c.Report(tt.Diagnostic{
			Range:   member.Range(),
			Message: fmt.Sprintf("duplicate union member `%s`", c.Slice(member.Range())),
			Fix: tt.SafeFix(
				"Remove duplicate member",
				tt.Replacement(whole.Range(), rebuild(rest)),
			),
		})
	}
}
