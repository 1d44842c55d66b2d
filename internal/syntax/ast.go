package syntax

// NodeKind tags every syntax node with its concrete kind. Rule dispatch is
// keyed on it.
type NodeKind int

const (
	KindModule NodeKind = iota
	KindImport
	KindImportFrom
	KindAssign
	KindAnnAssign
	KindFunctionDef
	KindClassDef
	KindReturn
	KindPass
	KindIf
	KindExprStmt

	KindName
	KindAttribute
	KindSubscript
	KindBinOp
	KindUnaryOp
	KindCompare
	KindBoolOp
	KindCall
	KindTuple
	KindList
	KindStarred
	KindLambda
	KindListComp
	KindString
	KindNumber
	KindNone
	KindBool
	KindEllipsis
)

var kindNames = map[NodeKind]string{
	KindModule:      "Module",
	KindImport:      "Import",
	KindImportFrom:  "ImportFrom",
	KindAssign:      "Assign",
	KindAnnAssign:   "AnnAssign",
	KindFunctionDef: "FunctionDef",
	KindClassDef:    "ClassDef",
	KindReturn:      "Return",
	KindPass:        "Pass",
	KindIf:          "If",
	KindExprStmt:    "ExprStmt",
	KindName:        "Name",
	KindAttribute:   "Attribute",
	KindSubscript:   "Subscript",
	KindBinOp:       "BinOp",
	KindUnaryOp:     "UnaryOp",
	KindCompare:     "Compare",
	KindBoolOp:      "BoolOp",
	KindCall:        "Call",
	KindTuple:       "Tuple",
	KindList:        "List",
	KindStarred:     "Starred",
	KindLambda:      "Lambda",
	KindListComp:    "ListComp",
	KindString:      "String",
	KindNumber:      "Number",
	KindNone:        "None",
	KindBool:        "Bool",
	KindEllipsis:    "Ellipsis",
}

func (k NodeKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// Node is an immutable node of the parsed tree. Nodes are never mutated after
// parse; the module node owns the tree for the file's lifetime.
type Node interface {
	Kind() NodeKind
	Range() TextRange
}

// Stmt is a statement node.
type Stmt interface {
	Node
	stmtNode()
}

// Expr is an expression node.
type Expr interface {
	Node
	exprNode()
}

type Operator int

const (
	OpBitOr Operator = iota
	OpBitAnd
	OpBitXor
	OpAdd
	OpSub
	OpMult
	OpDiv
	OpFloorDiv
	OpMod
	OpPow
)

var opText = map[Operator]string{
	OpBitOr:    "|",
	OpBitAnd:   "&",
	OpBitXor:   "^",
	OpAdd:      "+",
	OpSub:      "-",
	OpMult:     "*",
	OpDiv:      "/",
	OpFloorDiv: "//",
	OpMod:      "%",
	OpPow:      "**",
}

func (op Operator) String() string { return opText[op] }

// ---------------------------------------------------------------------------
// statements

// Module is the tree root for one file.
type Module struct {
	Body     []Stmt
	Comments []Comment
	Rng      TextRange
}

func (n *Module) Kind() NodeKind   { return KindModule }
func (n *Module) Range() TextRange { return n.Rng }

// ImportAlias is one `a.b.c as d` clause of an import statement.
type ImportAlias struct {
	Path   []string // dotted path segments
	AsName string   // empty when no alias
	Rng    TextRange
}

// BoundName is the name the alias introduces into the scope.
func (a ImportAlias) BoundName() string {
	if a.AsName != "" {
		return a.AsName
	}
	return a.Path[0]
}

// Import is `import a.b as c, d`.
type Import struct {
	Names []ImportAlias
	Rng   TextRange
}

func (n *Import) Kind() NodeKind   { return KindImport }
func (n *Import) Range() TextRange { return n.Rng }
func (n *Import) stmtNode()        {}

// ImportFrom is `from a.b import c as d, e`.
type ImportFrom struct {
	Module []string // empty for `from . import x`
	Level  int      // number of leading dots
	Names  []ImportAlias
	Rng    TextRange
}

func (n *ImportFrom) Kind() NodeKind   { return KindImportFrom }
func (n *ImportFrom) Range() TextRange { return n.Rng }
func (n *ImportFrom) stmtNode()        {}

// Assign is `a = b = value`.
type Assign struct {
	Targets []Expr
	Value   Expr
	Rng     TextRange
}

func (n *Assign) Kind() NodeKind   { return KindAssign }
func (n *Assign) Range() TextRange { return n.Rng }
func (n *Assign) stmtNode()        {}

// AnnAssign is `target: annotation` with an optional `= value`.
type AnnAssign struct {
	Target     Expr
	Annotation Expr
	Value      Expr // may be nil
	Rng        TextRange
}

func (n *AnnAssign) Kind() NodeKind   { return KindAnnAssign }
func (n *AnnAssign) Range() TextRange { return n.Rng }
func (n *AnnAssign) stmtNode()        {}

// Param is a function or lambda parameter.
type Param struct {
	Name       string
	Annotation Expr // may be nil
	Default    Expr // may be nil
	Star       int  // 0 plain, 1 *args, 2 **kwargs
	Rng        TextRange
}

// FunctionDef is `def name(params) -> returns:` with a body suite.
type FunctionDef struct {
	Name       string
	NameRng    TextRange
	Params     []Param
	Returns    Expr // may be nil
	Body       []Stmt
	Decorators []Expr
	Rng        TextRange
}

func (n *FunctionDef) Kind() NodeKind   { return KindFunctionDef }
func (n *FunctionDef) Range() TextRange { return n.Rng }
func (n *FunctionDef) stmtNode()        {}

// ClassDef is `class name(bases):` with a body suite.
type ClassDef struct {
	Name       string
	NameRng    TextRange
	Bases      []Expr
	Body       []Stmt
	Decorators []Expr
	Rng        TextRange
}

func (n *ClassDef) Kind() NodeKind   { return KindClassDef }
func (n *ClassDef) Range() TextRange { return n.Rng }
func (n *ClassDef) stmtNode()        {}

// Return is `return value`.
type Return struct {
	Value Expr // may be nil
	Rng   TextRange
}

func (n *Return) Kind() NodeKind   { return KindReturn }
func (n *Return) Range() TextRange { return n.Rng }
func (n *Return) stmtNode()        {}

// Pass is the `pass` statement.
type Pass struct {
	Rng TextRange
}

func (n *Pass) Kind() NodeKind   { return KindPass }
func (n *Pass) Range() TextRange { return n.Rng }
func (n *Pass) stmtNode()        {}

// If is an `if`/`elif`/`else` chain; elif is represented as a nested If in
// Else.
type If struct {
	Cond Expr
	Body []Stmt
	Else []Stmt
	Rng  TextRange
}

func (n *If) Kind() NodeKind   { return KindIf }
func (n *If) Range() TextRange { return n.Rng }
func (n *If) stmtNode()        {}

// ExprStmt is a bare expression statement.
type ExprStmt struct {
	Value Expr
	Rng   TextRange
}

func (n *ExprStmt) Kind() NodeKind   { return KindExprStmt }
func (n *ExprStmt) Range() TextRange { return n.Rng }
func (n *ExprStmt) stmtNode()        {}

// ---------------------------------------------------------------------------
// expressions

// Name is an identifier reference.
type Name struct {
	ID  string
	Rng TextRange
}

func (n *Name) Kind() NodeKind   { return KindName }
func (n *Name) Range() TextRange { return n.Rng }
func (n *Name) exprNode()        {}

// Attribute is `value.attr`.
type Attribute struct {
	Value Expr
	Attr  string
	Rng   TextRange
}

func (n *Attribute) Kind() NodeKind   { return KindAttribute }
func (n *Attribute) Range() TextRange { return n.Rng }
func (n *Attribute) exprNode()        {}

// Subscript is `value[index]`.
type Subscript struct {
	Value Expr
	Index Expr
	Rng   TextRange
}

func (n *Subscript) Kind() NodeKind   { return KindSubscript }
func (n *Subscript) Range() TextRange { return n.Rng }
func (n *Subscript) exprNode()        {}

// BinOp is a binary operation. Parentheses produce no node; a parenthesized
// operand keeps its own range without the parens.
type BinOp struct {
	Op    Operator
	Left  Expr
	Right Expr
	Rng   TextRange
}

func (n *BinOp) Kind() NodeKind   { return KindBinOp }
func (n *BinOp) Range() TextRange { return n.Rng }
func (n *BinOp) exprNode()        {}

// UnaryOp is `-x`, `+x`, `~x` or `not x`.
type UnaryOp struct {
	Op      string
	Operand Expr
	Rng     TextRange
}

func (n *UnaryOp) Kind() NodeKind   { return KindUnaryOp }
func (n *UnaryOp) Range() TextRange { return n.Rng }
func (n *UnaryOp) exprNode()        {}

// Compare is a comparison chain, kept flat: `a < b == c`.
type Compare struct {
	Left  Expr
	Ops   []string
	Rest  []Expr
	Rng   TextRange
}

func (n *Compare) Kind() NodeKind   { return KindCompare }
func (n *Compare) Range() TextRange { return n.Rng }
func (n *Compare) exprNode()        {}

// BoolOp is `a and b` / `a or b`, kept flat over its values.
type BoolOp struct {
	Op     string
	Values []Expr
	Rng    TextRange
}

func (n *BoolOp) Kind() NodeKind   { return KindBoolOp }
func (n *BoolOp) Range() TextRange { return n.Rng }
func (n *BoolOp) exprNode()        {}

// Keyword is a `name=value` call argument.
type Keyword struct {
	Name  string
	Value Expr
}

// Call is `func(args, name=value)`.
type Call struct {
	Func     Expr
	Args     []Expr
	Keywords []Keyword
	Rng      TextRange
}

func (n *Call) Kind() NodeKind   { return KindCall }
func (n *Call) Range() TextRange { return n.Rng }
func (n *Call) exprNode()        {}

// Tuple is a comma-separated expression list, parenthesized or not. The
// elements of `Union[a, b]` arrive as an unparenthesized tuple index.
type Tuple struct {
	Elts          []Expr
	Parenthesized bool
	Rng           TextRange
}

func (n *Tuple) Kind() NodeKind   { return KindTuple }
func (n *Tuple) Range() TextRange { return n.Rng }
func (n *Tuple) exprNode()        {}

// List is `[a, b, c]`.
type List struct {
	Elts []Expr
	Rng  TextRange
}

func (n *List) Kind() NodeKind   { return KindList }
func (n *List) Range() TextRange { return n.Rng }
func (n *List) exprNode()        {}

// Starred is `*value`.
type Starred struct {
	Value Expr
	Rng   TextRange
}

func (n *Starred) Kind() NodeKind   { return KindStarred }
func (n *Starred) Range() TextRange { return n.Rng }
func (n *Starred) exprNode()        {}

// Lambda is `lambda params: body`.
type Lambda struct {
	Params []Param
	Body   Expr
	Rng    TextRange
}

func (n *Lambda) Kind() NodeKind   { return KindLambda }
func (n *Lambda) Range() TextRange { return n.Rng }
func (n *Lambda) exprNode()        {}

// CompClause is one `for target in iter if cond` clause of a comprehension.
type CompClause struct {
	Target Expr
	Iter   Expr
	Ifs    []Expr
}

// ListComp is `[elt for target in iter if cond]`.
type ListComp struct {
	Elt     Expr
	Clauses []CompClause
	Rng     TextRange
}

func (n *ListComp) Kind() NodeKind   { return KindListComp }
func (n *ListComp) Range() TextRange { return n.Rng }
func (n *ListComp) exprNode()        {}

// String is a string literal; Raw keeps the source spelling with quotes and
// prefixes.
type String struct {
	Raw string
	Rng TextRange
}

func (n *String) Kind() NodeKind   { return KindString }
func (n *String) Range() TextRange { return n.Rng }
func (n *String) exprNode()        {}

// Number is a numeric literal, kept as its source spelling.
type Number struct {
	Raw string
	Rng TextRange
}

func (n *Number) Kind() NodeKind   { return KindNumber }
func (n *Number) Range() TextRange { return n.Rng }
func (n *Number) exprNode()        {}

// None is the `None` literal.
type None struct {
	Rng TextRange
}

func (n *None) Kind() NodeKind   { return KindNone }
func (n *None) Range() TextRange { return n.Rng }
func (n *None) exprNode()        {}

// Bool is `True` or `False`.
type Bool struct {
	Value bool
	Rng   TextRange
}

func (n *Bool) Kind() NodeKind   { return KindBool }
func (n *Bool) Range() TextRange { return n.Rng }
func (n *Bool) exprNode()        {}

// EllipsisLit is the `...` literal.
type EllipsisLit struct {
	Rng TextRange
}

func (n *EllipsisLit) Kind() NodeKind   { return KindEllipsis }
func (n *EllipsisLit) Range() TextRange { return n.Rng }
func (n *EllipsisLit) exprNode()        {}

// ---------------------------------------------------------------------------

// Children returns a node's direct children in source order. The traversal
// engine walks the tree through this single accessor.
func Children(n Node) []Node {
	var out []Node
	addE := func(e Expr) {
		if e != nil {
			out = append(out, e)
		}
	}
	addS := func(stmts []Stmt) {
		for _, s := range stmts {
			out = append(out, s)
		}
	}

	switch n := n.(type) {
	case *Module:
		addS(n.Body)
	case *Assign:
		for _, t := range n.Targets {
			addE(t)
		}
		addE(n.Value)
	case *AnnAssign:
		addE(n.Target)
		addE(n.Annotation)
		addE(n.Value)
	case *FunctionDef:
		for _, d := range n.Decorators {
			addE(d)
		}
		for _, p := range n.Params {
			addE(p.Annotation)
			addE(p.Default)
		}
		addE(n.Returns)
		addS(n.Body)
	case *ClassDef:
		for _, d := range n.Decorators {
			addE(d)
		}
		for _, b := range n.Bases {
			addE(b)
		}
		addS(n.Body)
	case *Return:
		addE(n.Value)
	case *If:
		addE(n.Cond)
		addS(n.Body)
		addS(n.Else)
	case *ExprStmt:
		addE(n.Value)
	case *Attribute:
		addE(n.Value)
	case *Subscript:
		addE(n.Value)
		addE(n.Index)
	case *BinOp:
		addE(n.Left)
		addE(n.Right)
	case *UnaryOp:
		addE(n.Operand)
	case *Compare:
		addE(n.Left)
		for _, e := range n.Rest {
			addE(e)
		}
	case *BoolOp:
		for _, e := range n.Values {
			addE(e)
		}
	case *Call:
		addE(n.Func)
		for _, a := range n.Args {
			addE(a)
		}
		for _, kw := range n.Keywords {
			addE(kw.Value)
		}
	case *Tuple:
		for _, e := range n.Elts {
			addE(e)
		}
	case *List:
		for _, e := range n.Elts {
			addE(e)
		}
	case *Starred:
		addE(n.Value)
	case *Lambda:
		for _, p := range n.Params {
			addE(p.Default)
		}
		addE(n.Body)
	case *ListComp:
		for _, c := range n.Clauses {
			addE(c.Iter)
			addE(c.Target)
			for _, cond := range c.Ifs {
				addE(cond)
			}
		}
		addE(n.Elt)
	case *Import, *ImportFrom, *Pass, *Name, *String, *Number, *None, *Bool, *EllipsisLit:
		// leaves
	}
	return out
}

// IsExpr reports whether the node is an expression.
func IsExpr(n Node) bool {
	_, ok := n.(Expr)
	return ok
}
