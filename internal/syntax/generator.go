package syntax

import (
	"fmt"
	"strings"
)

// Generator serializes a freshly constructed expression back into source
// text. It is used when a replacement must be built from pieces that did not
// exist verbatim in the source, e.g. a union rebuilt without one element.
// Nodes lifted from the parsed tree keep their structure but not their
// original spacing; use Locator.Slice when verbatim text is wanted.
type Generator struct{}

func NewGenerator() *Generator { return &Generator{} }

// Expr renders an expression to canonical source text.
func (g *Generator) Expr(e Expr) string {
	var sb strings.Builder
	g.expr(&sb, e, 0)
	return sb.String()
}

// binary precedence used to decide when parentheses are required
var opPrecedence = map[Operator]int{
	OpBitOr:    1,
	OpBitXor:   2,
	OpBitAnd:   3,
	OpAdd:      4,
	OpSub:      4,
	OpMult:     5,
	OpDiv:      5,
	OpFloorDiv: 5,
	OpMod:      5,
	OpPow:      6,
}

func (g *Generator) expr(sb *strings.Builder, e Expr, parentPrec int) {
	switch e := e.(type) {
	case *Name:
		sb.WriteString(e.ID)
	case *Attribute:
		g.expr(sb, e.Value, 7)
		sb.WriteByte('.')
		sb.WriteString(e.Attr)
	case *Subscript:
		g.expr(sb, e.Value, 7)
		sb.WriteByte('[')
		if tuple, ok := e.Index.(*Tuple); ok && !tuple.Parenthesized {
			g.exprList(sb, tuple.Elts)
		} else {
			g.expr(sb, e.Index, 0)
		}
		sb.WriteByte(']')
	case *BinOp:
		prec := opPrecedence[e.Op]
		if prec < parentPrec {
			sb.WriteByte('(')
		}
		g.expr(sb, e.Left, prec)
		fmt.Fprintf(sb, " %s ", e.Op)
		g.expr(sb, e.Right, prec+1)
		if prec < parentPrec {
			sb.WriteByte(')')
		}
	case *UnaryOp:
		sb.WriteString(e.Op)
		if e.Op == "not" {
			sb.WriteByte(' ')
		}
		g.expr(sb, e.Operand, 7)
	case *Compare:
		g.expr(sb, e.Left, 1)
		for i, op := range e.Ops {
			fmt.Fprintf(sb, " %s ", op)
			g.expr(sb, e.Rest[i], 1)
		}
	case *BoolOp:
		for i, v := range e.Values {
			if i > 0 {
				fmt.Fprintf(sb, " %s ", e.Op)
			}
			g.expr(sb, v, 1)
		}
	case *Call:
		g.expr(sb, e.Func, 7)
		sb.WriteByte('(')
		g.exprList(sb, e.Args)
		for i, kw := range e.Keywords {
			if i > 0 || len(e.Args) > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(kw.Name)
			sb.WriteByte('=')
			g.expr(sb, kw.Value, 0)
		}
		sb.WriteByte(')')
	case *Tuple:
		if e.Parenthesized {
			sb.WriteByte('(')
		}
		g.exprList(sb, e.Elts)
		if len(e.Elts) == 1 {
			sb.WriteByte(',')
		}
		if e.Parenthesized {
			sb.WriteByte(')')
		}
	case *List:
		sb.WriteByte('[')
		g.exprList(sb, e.Elts)
		sb.WriteByte(']')
	case *Starred:
		sb.WriteByte('*')
		g.expr(sb, e.Value, 7)
	case *Lambda:
		sb.WriteString("lambda")
		if len(e.Params) > 0 {
			sb.WriteByte(' ')
			for i, p := range e.Params {
				if i > 0 {
					sb.WriteString(", ")
				}
				sb.WriteString(strings.Repeat("*", p.Star))
				sb.WriteString(p.Name)
				if p.Default != nil {
					sb.WriteByte('=')
					g.expr(sb, p.Default, 0)
				}
			}
		}
		sb.WriteString(": ")
		g.expr(sb, e.Body, 0)
	case *ListComp:
		sb.WriteByte('[')
		g.expr(sb, e.Elt, 0)
		for _, c := range e.Clauses {
			sb.WriteString(" for ")
			g.expr(sb, c.Target, 0)
			sb.WriteString(" in ")
			g.expr(sb, c.Iter, 1)
			for _, cond := range c.Ifs {
				sb.WriteString(" if ")
				g.expr(sb, cond, 1)
			}
		}
		sb.WriteByte(']')
	case *String:
		sb.WriteString(e.Raw)
	case *Number:
		sb.WriteString(e.Raw)
	case *None:
		sb.WriteString("None")
	case *Bool:
		if e.Value {
			sb.WriteString("True")
		} else {
			sb.WriteString("False")
		}
	case *EllipsisLit:
		sb.WriteString("...")
	}
}

func (g *Generator) exprList(sb *strings.Builder, elts []Expr) {
	for i, e := range elts {
		if i > 0 {
			sb.WriteString(", ")
		}
		g.expr(sb, e, 0)
	}
}
