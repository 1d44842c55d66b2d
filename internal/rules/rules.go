package rules

import (
	"github.com/typelint/typelint/internal/checker"
	"github.com/typelint/typelint/internal/syntax"
)

// Rule names, also used in config files and nolint comments.
const (
	NeverUnionRule           = "never-union"
	DuplicateUnionMemberRule = "duplicate-union-member"
	NestedLiteralRule        = "nested-literal"
	DeprecatedAliasRule      = "deprecated-alias"
)

// DefaultRegistry returns the dispatch table with every built-in rule
// registered for the node kinds it inspects.
func DefaultRegistry() *checker.Registry {
	reg := checker.NewRegistry()
	reg.Register(NeverUnionRule,
		[]syntax.NodeKind{syntax.KindBinOp, syntax.KindSubscript}, NeverUnion)
	reg.Register(DuplicateUnionMemberRule,
		[]syntax.NodeKind{syntax.KindBinOp, syntax.KindSubscript}, DuplicateUnionMember)
	reg.Register(NestedLiteralRule,
		[]syntax.NodeKind{syntax.KindSubscript}, NestedLiteral)
	reg.Register(DeprecatedAliasRule,
		[]syntax.NodeKind{syntax.KindName, syntax.KindAttribute}, DeprecatedAlias)
	return reg
}

// unionMembers flattens a chain of `|` operations into its member
// expressions in source order. A non-union expression is its own single
// member.
func unionMembers(expr syntax.Expr) []syntax.Expr {
	if bin, ok := expr.(*syntax.BinOp); ok && bin.Op == syntax.OpBitOr {
		return append(unionMembers(bin.Left), unionMembers(bin.Right)...)
	}
	return []syntax.Expr{expr}
}

// isBitOr reports whether the node is a `|` binary operation.
func isBitOr(n syntax.Node) bool {
	bin, ok := n.(*syntax.BinOp)
	return ok && bin.Op == syntax.OpBitOr
}

// enclosingUnion returns the outermost `|` union the current node belongs
// to, walking expression ancestors while they remain `|` operations and
// stopping at the first ancestor that breaks the chain. Returns the node
// itself when it is a union with no union parent, or nil when the node is
// not part of one.
func enclosingUnion(c *checker.Checker, node syntax.Node) syntax.Expr {
	var union syntax.Expr
	if isBitOr(node) {
		union = node.(syntax.Expr)
	}
	for _, anc := range c.Semantic().ExpressionAncestors() {
		if !isBitOr(anc) {
			break
		}
		union = anc
	}
	return union
}
