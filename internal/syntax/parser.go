package syntax

import "fmt"

// Parse builds the syntax tree for one file. A returned error is fatal for
// that file only; no partial tree is produced.
func Parse(src []byte) (*Module, error) {
	tokens, comments, err := Tokenize(src)
	if err != nil {
		return nil, err
	}
	p := &parser{tokens: tokens}
	mod, err := p.parseModule()
	if err != nil {
		return nil, err
	}
	mod.Comments = comments
	mod.Rng = NewRange(0, len(src))
	return mod, nil
}

type parser struct {
	tokens []Token
	pos    int
}

func (p *parser) peek() Token { return p.tokens[p.pos] }

func (p *parser) at(kind TokenKind) bool { return p.peek().Kind == kind }

func (p *parser) atKeyword(word string) bool { return p.peek().IsKeyword(word) }

func (p *parser) next() Token {
	tok := p.tokens[p.pos]
	if tok.Kind != TokenEOF {
		p.pos++
	}
	return tok
}

func (p *parser) accept(kind TokenKind) (Token, bool) {
	if p.at(kind) {
		return p.next(), true
	}
	return Token{}, false
}

func (p *parser) expect(kind TokenKind) (Token, error) {
	if tok, ok := p.accept(kind); ok {
		return tok, nil
	}
	return Token{}, p.errorf("expected %s, found %s", kind, p.describe(p.peek()))
}

func (p *parser) expectKeyword(word string) (Token, error) {
	if p.atKeyword(word) {
		return p.next(), nil
	}
	return Token{}, p.errorf("expected %q, found %s", word, p.describe(p.peek()))
}

func (p *parser) describe(tok Token) string {
	if tok.Text == "" {
		return tok.Kind.String()
	}
	return fmt.Sprintf("%q", tok.Text)
}

func (p *parser) errorf(format string, args ...any) error {
	tok := p.peek()
	return &SyntaxError{Msg: fmt.Sprintf(format, args...), Line: tok.Line, Col: tok.Col}
}

// ---------------------------------------------------------------------------
// statements

func (p *parser) parseModule() (*Module, error) {
	mod := &Module{}
	for !p.at(TokenEOF) {
		stmts, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		mod.Body = append(mod.Body, stmts...)
	}
	return mod, nil
}

// parseStatement parses one logical line (which may hold several simple
// statements separated by ';') or one compound statement.
func (p *parser) parseStatement() ([]Stmt, error) {
	switch {
	case p.atKeyword("def"), p.atKeyword("class"), p.at(TokenAt):
		stmt, err := p.parseDecorated()
		if err != nil {
			return nil, err
		}
		return []Stmt{stmt}, nil
	case p.atKeyword("if"):
		stmt, err := p.parseIf()
		if err != nil {
			return nil, err
		}
		return []Stmt{stmt}, nil
	default:
		return p.parseSimpleLine()
	}
}

func (p *parser) parseSimpleLine() ([]Stmt, error) {
	var stmts []Stmt
	for {
		stmt, err := p.parseSmallStatement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
		if _, ok := p.accept(TokenSemi); !ok {
			break
		}
		if p.at(TokenNewline) {
			break // trailing semicolon
		}
	}
	if _, err := p.expect(TokenNewline); err != nil {
		return nil, err
	}
	return stmts, nil
}

func (p *parser) parseSmallStatement() (Stmt, error) {
	switch {
	case p.atKeyword("pass"):
		tok := p.next()
		return &Pass{Rng: tok.Range}, nil
	case p.atKeyword("return"):
		return p.parseReturn()
	case p.atKeyword("import"):
		return p.parseImport()
	case p.atKeyword("from"):
		return p.parseImportFrom()
	default:
		return p.parseExprLike()
	}
}

func (p *parser) parseReturn() (Stmt, error) {
	tok := p.next()
	ret := &Return{Rng: tok.Range}
	if !p.at(TokenNewline) && !p.at(TokenSemi) {
		value, err := p.parseTestList()
		if err != nil {
			return nil, err
		}
		ret.Value = value
		ret.Rng.End = value.Range().End
	}
	return ret, nil
}

func (p *parser) parseImport() (Stmt, error) {
	tok := p.next()
	imp := &Import{Rng: tok.Range}
	for {
		alias, err := p.parseDottedAlias()
		if err != nil {
			return nil, err
		}
		imp.Names = append(imp.Names, alias)
		imp.Rng.End = alias.Rng.End
		if _, ok := p.accept(TokenComma); !ok {
			break
		}
	}
	return imp, nil
}

func (p *parser) parseImportFrom() (Stmt, error) {
	tok := p.next()
	imp := &ImportFrom{Rng: tok.Range}

	for p.at(TokenDot) || p.at(TokenEllipsis) {
		dots := p.next()
		if dots.Kind == TokenEllipsis {
			imp.Level += 3
		} else {
			imp.Level++
		}
	}
	if p.at(TokenName) {
		module, _, err := p.parseDottedName()
		if err != nil {
			return nil, err
		}
		imp.Module = module
	}
	if _, err := p.expectKeyword("import"); err != nil {
		return nil, err
	}

	if star, ok := p.accept(TokenStar); ok {
		imp.Names = append(imp.Names, ImportAlias{Path: []string{"*"}, Rng: star.Range})
		imp.Rng.End = star.Range.End
		return imp, nil
	}

	parenthesized := false
	if _, ok := p.accept(TokenLParen); ok {
		parenthesized = true
	}
	for {
		nameTok, err := p.expect(TokenName)
		if err != nil {
			return nil, err
		}
		alias := ImportAlias{Path: []string{nameTok.Text}, Rng: nameTok.Range}
		if p.atKeyword("as") {
			p.next()
			asTok, err := p.expect(TokenName)
			if err != nil {
				return nil, err
			}
			alias.AsName = asTok.Text
			alias.Rng.End = asTok.Range.End
		}
		imp.Names = append(imp.Names, alias)
		imp.Rng.End = alias.Rng.End
		if _, ok := p.accept(TokenComma); !ok {
			break
		}
		if parenthesized && p.at(TokenRParen) {
			break
		}
	}
	if parenthesized {
		if tok, err := p.expect(TokenRParen); err == nil {
			imp.Rng.End = tok.Range.End
		} else {
			return nil, err
		}
	}
	return imp, nil
}

func (p *parser) parseDottedAlias() (ImportAlias, error) {
	path, rng, err := p.parseDottedName()
	if err != nil {
		return ImportAlias{}, err
	}
	alias := ImportAlias{Path: path, Rng: rng}
	if p.atKeyword("as") {
		p.next()
		asTok, err := p.expect(TokenName)
		if err != nil {
			return ImportAlias{}, err
		}
		alias.AsName = asTok.Text
		alias.Rng.End = asTok.Range.End
	}
	return alias, nil
}

func (p *parser) parseDottedName() ([]string, TextRange, error) {
	first, err := p.expect(TokenName)
	if err != nil {
		return nil, TextRange{}, err
	}
	path := []string{first.Text}
	rng := first.Range
	for p.at(TokenDot) {
		p.next()
		seg, err := p.expect(TokenName)
		if err != nil {
			return nil, TextRange{}, err
		}
		path = append(path, seg.Text)
		rng.End = seg.Range.End
	}
	return path, rng, nil
}

// parseExprLike parses an expression statement, an assignment chain, or an
// annotated assignment.
func (p *parser) parseExprLike() (Stmt, error) {
	first, err := p.parseTestList()
	if err != nil {
		return nil, err
	}

	if _, ok := p.accept(TokenColon); ok {
		annotation, err := p.parseTest()
		if err != nil {
			return nil, err
		}
		stmt := &AnnAssign{
			Target:     first,
			Annotation: annotation,
			Rng:        NewRange(first.Range().Start, annotation.Range().End),
		}
		if _, ok := p.accept(TokenAssign); ok {
			value, err := p.parseTestList()
			if err != nil {
				return nil, err
			}
			stmt.Value = value
			stmt.Rng.End = value.Range().End
		}
		return stmt, nil
	}

	if p.at(TokenAssign) {
		targets := []Expr{first}
		var value Expr = first
		for {
			if _, ok := p.accept(TokenAssign); !ok {
				break
			}
			next, err := p.parseTestList()
			if err != nil {
				return nil, err
			}
			targets = append(targets, next)
			value = next
		}
		targets = targets[:len(targets)-1]
		return &Assign{
			Targets: targets,
			Value:   value,
			Rng:     NewRange(first.Range().Start, value.Range().End),
		}, nil
	}

	return &ExprStmt{Value: first, Rng: first.Range()}, nil
}

func (p *parser) parseDecorated() (Stmt, error) {
	var decorators []Expr
	start := p.peek().Range.Start
	for p.at(TokenAt) {
		p.next()
		dec, err := p.parseTest()
		if err != nil {
			return nil, err
		}
		decorators = append(decorators, dec)
		if _, err := p.expect(TokenNewline); err != nil {
			return nil, err
		}
	}
	switch {
	case p.atKeyword("def"):
		return p.parseFunctionDef(decorators, start)
	case p.atKeyword("class"):
		return p.parseClassDef(decorators, start)
	default:
		return nil, p.errorf("expected 'def' or 'class' after decorators")
	}
}

func (p *parser) parseFunctionDef(decorators []Expr, start int) (Stmt, error) {
	defTok, _ := p.expectKeyword("def")
	if len(decorators) == 0 {
		start = defTok.Range.Start
	}
	nameTok, err := p.expect(TokenName)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokenLParen); err != nil {
		return nil, err
	}
	params, err := p.parseParams(TokenRParen, true)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokenRParen); err != nil {
		return nil, err
	}

	fn := &FunctionDef{
		Name:       nameTok.Text,
		NameRng:    nameTok.Range,
		Params:     params,
		Decorators: decorators,
	}
	if _, ok := p.accept(TokenArrow); ok {
		returns, err := p.parseTest()
		if err != nil {
			return nil, err
		}
		fn.Returns = returns
	}
	body, end, err := p.parseSuite()
	if err != nil {
		return nil, err
	}
	fn.Body = body
	fn.Rng = NewRange(start, end)
	return fn, nil
}

func (p *parser) parseClassDef(decorators []Expr, start int) (Stmt, error) {
	classTok, _ := p.expectKeyword("class")
	if len(decorators) == 0 {
		start = classTok.Range.Start
	}
	nameTok, err := p.expect(TokenName)
	if err != nil {
		return nil, err
	}
	cls := &ClassDef{
		Name:       nameTok.Text,
		NameRng:    nameTok.Range,
		Decorators: decorators,
	}
	if _, ok := p.accept(TokenLParen); ok {
		for !p.at(TokenRParen) {
			base, err := p.parseTest()
			if err != nil {
				return nil, err
			}
			// keyword bases (metaclass=...) are parsed and dropped
			if _, ok := p.accept(TokenAssign); ok {
				if _, err := p.parseTest(); err != nil {
					return nil, err
				}
			} else {
				cls.Bases = append(cls.Bases, base)
			}
			if _, ok := p.accept(TokenComma); !ok {
				break
			}
		}
		if _, err := p.expect(TokenRParen); err != nil {
			return nil, err
		}
	}
	body, end, err := p.parseSuite()
	if err != nil {
		return nil, err
	}
	cls.Body = body
	cls.Rng = NewRange(start, end)
	return cls, nil
}

func (p *parser) parseIf() (Stmt, error) {
	ifTok := p.next() // 'if' or 'elif'
	cond, err := p.parseTest()
	if err != nil {
		return nil, err
	}
	body, end, err := p.parseSuite()
	if err != nil {
		return nil, err
	}
	stmt := &If{Cond: cond, Body: body, Rng: NewRange(ifTok.Range.Start, end)}

	switch {
	case p.atKeyword("elif"):
		nested, err := p.parseIf()
		if err != nil {
			return nil, err
		}
		stmt.Else = []Stmt{nested}
		stmt.Rng.End = nested.Range().End
	case p.atKeyword("else"):
		p.next()
		elseBody, elseEnd, err := p.parseSuite()
		if err != nil {
			return nil, err
		}
		stmt.Else = elseBody
		stmt.Rng.End = elseEnd
	}
	return stmt, nil
}

// parseSuite parses `: NEWLINE INDENT stmt+ DEDENT` or a same-line simple
// statement list. Returns the byte offset just past the suite.
func (p *parser) parseSuite() ([]Stmt, int, error) {
	if _, err := p.expect(TokenColon); err != nil {
		return nil, 0, err
	}
	if _, ok := p.accept(TokenNewline); !ok {
		stmts, err := p.parseSimpleLine()
		if err != nil {
			return nil, 0, err
		}
		return stmts, stmts[len(stmts)-1].Range().End, nil
	}
	if _, err := p.expect(TokenIndent); err != nil {
		return nil, 0, err
	}
	var body []Stmt
	for !p.at(TokenDedent) && !p.at(TokenEOF) {
		stmts, err := p.parseStatement()
		if err != nil {
			return nil, 0, err
		}
		body = append(body, stmts...)
	}
	if _, err := p.expect(TokenDedent); err != nil {
		return nil, 0, err
	}
	if len(body) == 0 {
		return nil, 0, p.errorf("expected an indented block")
	}
	return body, body[len(body)-1].Range().End, nil
}

func (p *parser) parseParams(closer TokenKind, allowAnnotations bool) ([]Param, error) {
	var params []Param
	for !p.at(closer) {
		star := 0
		startTok := p.peek()
		if _, ok := p.accept(TokenStar); ok {
			star = 1
			if p.at(TokenComma) || p.at(closer) {
				// bare '*' separator
				p.accept(TokenComma)
				continue
			}
		} else if _, ok := p.accept(TokenDoubleStar); ok {
			star = 2
		} else if _, ok := p.accept(TokenSlash); ok {
			// positional-only marker
			p.accept(TokenComma)
			continue
		}
		nameTok, err := p.expect(TokenName)
		if err != nil {
			return nil, err
		}
		param := Param{Name: nameTok.Text, Star: star, Rng: NewRange(startTok.Range.Start, nameTok.Range.End)}
		if allowAnnotations {
			if _, ok := p.accept(TokenColon); ok {
				annotation, err := p.parseTest()
				if err != nil {
					return nil, err
				}
				param.Annotation = annotation
				param.Rng.End = annotation.Range().End
			}
		}
		if _, ok := p.accept(TokenAssign); ok {
			def, err := p.parseTest()
			if err != nil {
				return nil, err
			}
			param.Default = def
			param.Rng.End = def.Range().End
		}
		params = append(params, param)
		if _, ok := p.accept(TokenComma); !ok {
			break
		}
	}
	return params, nil
}

// ---------------------------------------------------------------------------
// expressions

// parseTestList parses `test (',' test)*`; two or more elements form an
// unparenthesized tuple.
func (p *parser) parseTestList() (Expr, error) {
	first, err := p.parseTest()
	if err != nil {
		return nil, err
	}
	if !p.at(TokenComma) {
		return first, nil
	}
	elts := []Expr{first}
	rng := first.Range()
	for {
		if _, ok := p.accept(TokenComma); !ok {
			break
		}
		if p.atTestListEnd() {
			break // trailing comma
		}
		elt, err := p.parseTest()
		if err != nil {
			return nil, err
		}
		elts = append(elts, elt)
		rng.End = elt.Range().End
	}
	return &Tuple{Elts: elts, Rng: rng}, nil
}

func (p *parser) atTestListEnd() bool {
	switch p.peek().Kind {
	case TokenNewline, TokenSemi, TokenAssign, TokenRParen, TokenRBracket, TokenRBrace, TokenColon, TokenEOF:
		return true
	}
	return false
}

func (p *parser) parseTest() (Expr, error) {
	if p.atKeyword("lambda") {
		return p.parseLambda()
	}
	return p.parseOr()
}

func (p *parser) parseLambda() (Expr, error) {
	tok := p.next()
	params, err := p.parseParams(TokenColon, false)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokenColon); err != nil {
		return nil, err
	}
	body, err := p.parseTest()
	if err != nil {
		return nil, err
	}
	return &Lambda{Params: params, Body: body, Rng: NewRange(tok.Range.Start, body.Range().End)}, nil
}

func (p *parser) parseOr() (Expr, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	if !p.atKeyword("or") {
		return left, nil
	}
	values := []Expr{left}
	for p.atKeyword("or") {
		p.next()
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		values = append(values, right)
	}
	return &BoolOp{Op: "or", Values: values, Rng: spanOf(values)}, nil
}

func (p *parser) parseAnd() (Expr, error) {
	left, err := p.parseNot()
	if err != nil {
		return nil, err
	}
	if !p.atKeyword("and") {
		return left, nil
	}
	values := []Expr{left}
	for p.atKeyword("and") {
		p.next()
		right, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		values = append(values, right)
	}
	return &BoolOp{Op: "and", Values: values, Rng: spanOf(values)}, nil
}

func (p *parser) parseNot() (Expr, error) {
	if p.atKeyword("not") {
		tok := p.next()
		operand, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		return &UnaryOp{Op: "not", Operand: operand, Rng: NewRange(tok.Range.Start, operand.Range().End)}, nil
	}
	return p.parseComparison()
}

func (p *parser) parseComparison() (Expr, error) {
	left, err := p.parseBitOr()
	if err != nil {
		return nil, err
	}
	var ops []string
	var rest []Expr
	for {
		op, ok := p.comparisonOp()
		if !ok {
			break
		}
		right, err := p.parseBitOr()
		if err != nil {
			return nil, err
		}
		ops = append(ops, op)
		rest = append(rest, right)
	}
	if len(ops) == 0 {
		return left, nil
	}
	return &Compare{
		Left: left,
		Ops:  ops,
		Rest: rest,
		Rng:  NewRange(left.Range().Start, rest[len(rest)-1].Range().End),
	}, nil
}

func (p *parser) comparisonOp() (string, bool) {
	switch {
	case p.at(TokenLess), p.at(TokenGreater), p.at(TokenLessEq), p.at(TokenGreaterEq), p.at(TokenEqEq), p.at(TokenNotEq):
		return p.next().Text, true
	case p.atKeyword("in"):
		p.next()
		return "in", true
	case p.atKeyword("is"):
		p.next()
		if p.atKeyword("not") {
			p.next()
			return "is not", true
		}
		return "is", true
	case p.atKeyword("not"):
		// 'not in'
		p.next()
		if p.atKeyword("in") {
			p.next()
			return "not in", true
		}
		return "not", true
	}
	return "", false
}

func (p *parser) parseBitOr() (Expr, error) {
	return p.parseBinary(0)
}

// binary operator precedence, lowest first
var binaryLevels = []map[TokenKind]Operator{
	{TokenPipe: OpBitOr},
	{TokenCaret: OpBitXor},
	{TokenAmp: OpBitAnd},
	{TokenPlus: OpAdd, TokenMinus: OpSub},
	{TokenStar: OpMult, TokenSlash: OpDiv, TokenDoubleSlash: OpFloorDiv, TokenPercent: OpMod},
}

func (p *parser) parseBinary(level int) (Expr, error) {
	if level >= len(binaryLevels) {
		return p.parseUnary()
	}
	left, err := p.parseBinary(level + 1)
	if err != nil {
		return nil, err
	}
	for {
		op, ok := binaryLevels[level][p.peek().Kind]
		if !ok {
			return left, nil
		}
		p.next()
		right, err := p.parseBinary(level + 1)
		if err != nil {
			return nil, err
		}
		left = &BinOp{
			Op:    op,
			Left:  left,
			Right: right,
			Rng:   NewRange(left.Range().Start, right.Range().End),
		}
	}
}

func (p *parser) parseUnary() (Expr, error) {
	switch p.peek().Kind {
	case TokenMinus, TokenPlus, TokenTilde:
		tok := p.next()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &UnaryOp{Op: tok.Text, Operand: operand, Rng: NewRange(tok.Range.Start, operand.Range().End)}, nil
	}
	return p.parsePower()
}

func (p *parser) parsePower() (Expr, error) {
	base, err := p.parsePostfix()
	if err != nil {
		return nil, err
	}
	if _, ok := p.accept(TokenDoubleStar); ok {
		exp, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &BinOp{Op: OpPow, Left: base, Right: exp, Rng: NewRange(base.Range().Start, exp.Range().End)}, nil
	}
	return base, nil
}

func (p *parser) parsePostfix() (Expr, error) {
	expr, err := p.parseAtom()
	if err != nil {
		return nil, err
	}
	for {
		switch p.peek().Kind {
		case TokenDot:
			p.next()
			attr, err := p.expect(TokenName)
			if err != nil {
				return nil, err
			}
			expr = &Attribute{Value: expr, Attr: attr.Text, Rng: NewRange(expr.Range().Start, attr.Range.End)}
		case TokenLBracket:
			p.next()
			index, err := p.parseTestList()
			if err != nil {
				return nil, err
			}
			closeTok, err := p.expect(TokenRBracket)
			if err != nil {
				return nil, err
			}
			expr = &Subscript{Value: expr, Index: index, Rng: NewRange(expr.Range().Start, closeTok.Range.End)}
		case TokenLParen:
			call, err := p.parseCall(expr)
			if err != nil {
				return nil, err
			}
			expr = call
		default:
			return expr, nil
		}
	}
}

func (p *parser) parseCall(fn Expr) (Expr, error) {
	p.next() // '('
	call := &Call{Func: fn}
	for !p.at(TokenRParen) {
		if _, ok := p.accept(TokenStar); ok {
			arg, err := p.parseTest()
			if err != nil {
				return nil, err
			}
			call.Args = append(call.Args, &Starred{Value: arg, Rng: arg.Range()})
		} else {
			arg, err := p.parseTest()
			if err != nil {
				return nil, err
			}
			if name, ok := arg.(*Name); ok && p.at(TokenAssign) {
				p.next()
				value, err := p.parseTest()
				if err != nil {
					return nil, err
				}
				call.Keywords = append(call.Keywords, Keyword{Name: name.ID, Value: value})
			} else {
				call.Args = append(call.Args, arg)
			}
		}
		if _, ok := p.accept(TokenComma); !ok {
			break
		}
	}
	closeTok, err := p.expect(TokenRParen)
	if err != nil {
		return nil, err
	}
	call.Rng = NewRange(fn.Range().Start, closeTok.Range.End)
	return call, nil
}

func (p *parser) parseAtom() (Expr, error) {
	tok := p.peek()
	switch tok.Kind {
	case TokenName:
		p.next()
		return &Name{ID: tok.Text, Rng: tok.Range}, nil
	case TokenNumber:
		p.next()
		return &Number{Raw: tok.Text, Rng: tok.Range}, nil
	case TokenString:
		p.next()
		raw := tok.Text
		rng := tok.Range
		// adjacent string literals concatenate
		for p.at(TokenString) {
			cont := p.next()
			raw += " " + cont.Text
			rng.End = cont.Range.End
		}
		return &String{Raw: raw, Rng: rng}, nil
	case TokenEllipsis:
		p.next()
		return &EllipsisLit{Rng: tok.Range}, nil
	case TokenKeyword:
		switch tok.Text {
		case "None":
			p.next()
			return &None{Rng: tok.Range}, nil
		case "True":
			p.next()
			return &Bool{Value: true, Rng: tok.Range}, nil
		case "False":
			p.next()
			return &Bool{Value: false, Rng: tok.Range}, nil
		case "lambda":
			return p.parseLambda()
		}
		return nil, p.errorf("unexpected keyword %q", tok.Text)
	case TokenLParen:
		return p.parseParenthesized()
	case TokenLBracket:
		return p.parseListOrComp()
	case TokenStar:
		p.next()
		value, err := p.parsePostfix()
		if err != nil {
			return nil, err
		}
		return &Starred{Value: value, Rng: NewRange(tok.Range.Start, value.Range().End)}, nil
	}
	return nil, p.errorf("unexpected token %s", p.describe(tok))
}

// parseParenthesized handles grouping, parenthesized tuples, and the empty
// tuple. A grouped single expression produces no extra node: its range stays
// inside the parens.
func (p *parser) parseParenthesized() (Expr, error) {
	open := p.next()
	if closeTok, ok := p.accept(TokenRParen); ok {
		return &Tuple{Parenthesized: true, Rng: NewRange(open.Range.Start, closeTok.Range.End)}, nil
	}
	first, err := p.parseTest()
	if err != nil {
		return nil, err
	}
	if p.at(TokenRParen) {
		p.next()
		return first, nil
	}
	elts := []Expr{first}
	for {
		if _, ok := p.accept(TokenComma); !ok {
			break
		}
		if p.at(TokenRParen) {
			break
		}
		elt, err := p.parseTest()
		if err != nil {
			return nil, err
		}
		elts = append(elts, elt)
	}
	closeTok, err := p.expect(TokenRParen)
	if err != nil {
		return nil, err
	}
	return &Tuple{Elts: elts, Parenthesized: true, Rng: NewRange(open.Range.Start, closeTok.Range.End)}, nil
}

func (p *parser) parseListOrComp() (Expr, error) {
	open := p.next()
	if closeTok, ok := p.accept(TokenRBracket); ok {
		return &List{Rng: NewRange(open.Range.Start, closeTok.Range.End)}, nil
	}
	first, err := p.parseTest()
	if err != nil {
		return nil, err
	}
	if p.atKeyword("for") {
		clauses, err := p.parseCompClauses()
		if err != nil {
			return nil, err
		}
		closeTok, err := p.expect(TokenRBracket)
		if err != nil {
			return nil, err
		}
		return &ListComp{Elt: first, Clauses: clauses, Rng: NewRange(open.Range.Start, closeTok.Range.End)}, nil
	}
	elts := []Expr{first}
	for {
		if _, ok := p.accept(TokenComma); !ok {
			break
		}
		if p.at(TokenRBracket) {
			break
		}
		elt, err := p.parseTest()
		if err != nil {
			return nil, err
		}
		elts = append(elts, elt)
	}
	closeTok, err := p.expect(TokenRBracket)
	if err != nil {
		return nil, err
	}
	return &List{Elts: elts, Rng: NewRange(open.Range.Start, closeTok.Range.End)}, nil
}

func (p *parser) parseCompClauses() ([]CompClause, error) {
	var clauses []CompClause
	for p.atKeyword("for") {
		p.next()
		target, err := p.parseTargetList()
		if err != nil {
			return nil, err
		}
		if _, err := p.expectKeyword("in"); err != nil {
			return nil, err
		}
		iter, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		clause := CompClause{Target: target, Iter: iter}
		for p.atKeyword("if") {
			p.next()
			cond, err := p.parseOr()
			if err != nil {
				return nil, err
			}
			clause.Ifs = append(clause.Ifs, cond)
		}
		clauses = append(clauses, clause)
	}
	return clauses, nil
}

func (p *parser) parseTargetList() (Expr, error) {
	first, err := p.parsePostfix()
	if err != nil {
		return nil, err
	}
	if !p.at(TokenComma) {
		return first, nil
	}
	elts := []Expr{first}
	rng := first.Range()
	for {
		if _, ok := p.accept(TokenComma); !ok {
			break
		}
		if p.atKeyword("in") {
			break
		}
		elt, err := p.parsePostfix()
		if err != nil {
			return nil, err
		}
		elts = append(elts, elt)
		rng.End = elt.Range().End
	}
	return &Tuple{Elts: elts, Rng: rng}, nil
}

func spanOf(values []Expr) TextRange {
	return NewRange(values[0].Range().Start, values[len(values)-1].Range().End)
}
