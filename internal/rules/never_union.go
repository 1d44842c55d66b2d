package rules

import (
	"fmt"

	"github.com/typelint/typelint/internal/checker"
	"github.com/typelint/typelint/internal/semantic"
	"github.com/typelint/typelint/internal/syntax"
	tt "github.com/typelint/typelint/internal/types"
)

// NeverUnion flags typing.NoReturn and typing.Never inside union types.
// `Never | T` is equivalent to `T`, so the marker is redundant. Fires on both
// the `X | Y` form and the `Union[X, Y]` subscript form.
func NeverUnion(c *checker.Checker, node syntax.Node) {
	switch expr := node.(type) {
	case *syntax.BinOp:
		if expr.Op != syntax.OpBitOr {
			return
		}
		if marker, ok := neverLike(c, expr.Left); ok {
			d := tt.Diagnostic{
				Range:   expr.Left.Range(),
				Message: fmt.Sprintf("`%s | T` is equivalent to `T`", marker),
			}
			// Flattening next to a bare None would produce `None | None`,
			// which raises at runtime in this syntax form. The safety of the
			// fix is judged per occurrence from the sibling context.
			if !inUnionWithBareNone(c, node) {
				d.Fix = tt.SafeFix(
					fmt.Sprintf("Remove `%s`", marker),
					tt.Replacement(expr.Rng, c.Slice(expr.Right.Range())),
				)
			}
			c.Report(d)
		}
		if marker, ok := neverLike(c, expr.Right); ok {
			d := tt.Diagnostic{
				Range:   expr.Right.Range(),
				Message: fmt.Sprintf("`%s | T` is equivalent to `T`", marker),
			}
			if !inUnionWithBareNone(c, node) {
				d.Fix = tt.SafeFix(
					fmt.Sprintf("Remove `%s`", marker),
					tt.Replacement(expr.Rng, c.Slice(expr.Left.Range())),
				)
			}
			c.Report(d)
		}

	case *syntax.Subscript:
		if !c.Semantic().MatchTypingExpr(expr.Value, "Union") {
			return
		}
		tuple, ok := expr.Index.(*syntax.Tuple)
		if !ok {
			return
		}
		for i, elt := range tuple.Elts {
			marker, ok := neverLike(c, elt)
			if !ok {
				continue
			}
			rest := make([]syntax.Expr, 0, len(tuple.Elts)-1)
			for j, other := range tuple.Elts {
				if j != i {
					rest = append(rest, other)
				}
			}
			// Union[Never] has no collapse target; not a redundancy finding.
			if len(rest) == 0 {
				return
			}

			var replacement string
			if len(rest) == 1 {
				replacement = c.Slice(rest[0].Range())
			} else {
				replacement = c.Generator().Expr(&syntax.Subscript{
					Value: expr.Value,
					Index: &syntax.Tuple{Elts: rest},
				})
			}
			c.Report(tt.Diagnostic{
				Range:   elt.Range(),
				Message: fmt.Sprintf("`Union[%s, T]` is equivalent to `T`", marker),
				Fix: tt.SafeFix(
					fmt.Sprintf("Remove `%s`", marker),
					tt.Replacement(expr.Rng, replacement),
				),
			})
		}
	}
}

// neverLike reports whether the expression resolves to typing.NoReturn or
// typing.Never, returning the marker's display name.
func neverLike(c *checker.Checker, expr syntax.Expr) (string, bool) {
	qn, ok := c.Semantic().ResolveQualifiedName(expr)
	if !ok {
		return "", false
	}
	for _, marker := range []string{"NoReturn", "Never"} {
		if semantic.IsTypingQualifiedName(qn, marker) {
			return marker, true
		}
	}
	return "", false
}

// inUnionWithBareNone reports whether the whole `|` union the node belongs to
// (including the node itself) contains a bare None literal. The subscripted
// `Union[...]` form is exempt: `Union[None, None]` is valid.
func inUnionWithBareNone(c *checker.Checker, node syntax.Node) bool {
	union := enclosingUnion(c, node)
	if union == nil {
		return false
	}
	for _, member := range unionMembers(union) {
		if member.Kind() == syntax.KindNone {
			return true
		}
	}
	return false
}
