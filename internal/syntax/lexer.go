package syntax

import (
	"fmt"
	"strings"
)

const tabSize = 8

// SyntaxError is a lexing or parsing failure. It is fatal for the file it
// occurred in and carries the 1-based position of the offending token.
type SyntaxError struct {
	Msg  string
	Line int
	Col  int
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Line, e.Col, e.Msg)
}

// Comment is a '#' comment collected during lexing. Comments never appear in
// the token stream; the suppression layer reads them from the module node.
type Comment struct {
	Text  string // includes the leading '#'
	Range TextRange
	Line  int  // 1-based
	Own   bool // true when only whitespace precedes the comment on its line
}

type lexer struct {
	src      []byte
	pos      int
	line     int
	col      int
	indents  []int
	depth    int // open (, [, { nesting; newlines are joined inside
	tokens   []Token
	comments []Comment
}

// Tokenize splits src into a token stream. Indentation is resolved into
// INDENT/DEDENT tokens; comments are returned separately.
func Tokenize(src []byte) ([]Token, []Comment, error) {
	lx := &lexer{src: src, line: 1, col: 1, indents: []int{0}}
	if err := lx.run(); err != nil {
		return nil, nil, err
	}
	return lx.tokens, lx.comments, nil
}

func (lx *lexer) errorf(format string, args ...any) error {
	return &SyntaxError{Msg: fmt.Sprintf(format, args...), Line: lx.line, Col: lx.col}
}

func (lx *lexer) run() error {
	atLineStart := true
	for {
		if atLineStart && lx.depth == 0 {
			proceed, err := lx.lexIndentation()
			if err != nil {
				return err
			}
			if !proceed {
				break // EOF reached while skipping blank lines
			}
			atLineStart = false
		}

		if lx.pos >= len(lx.src) {
			break
		}

		ch := lx.src[lx.pos]
		switch {
		case ch == '\n':
			lx.advance(1)
			if lx.depth == 0 {
				lx.emitAt(TokenNewline, "", lx.pos-1, lx.pos)
				atLineStart = true
			}
		case ch == ' ' || ch == '\t' || ch == '\r':
			lx.advance(1)
		case ch == '\\' && lx.pos+1 < len(lx.src) && lx.src[lx.pos+1] == '\n':
			lx.advance(2) // explicit line joining
		case ch == '#':
			lx.lexComment()
		case isNameStart(ch):
			if err := lx.lexNameOrString(); err != nil {
				return err
			}
		case isDigit(ch) || (ch == '.' && lx.pos+1 < len(lx.src) && isDigit(lx.src[lx.pos+1])):
			lx.lexNumber()
		case ch == '\'' || ch == '"':
			if err := lx.lexString(lx.pos); err != nil {
				return err
			}
		default:
			if err := lx.lexOperator(); err != nil {
				return err
			}
		}
	}

	// Close the last logical line and drain the indent stack.
	if n := len(lx.tokens); n > 0 && lx.tokens[n-1].Kind != TokenNewline {
		lx.emitAt(TokenNewline, "", lx.pos, lx.pos)
	}
	for len(lx.indents) > 1 {
		lx.indents = lx.indents[:len(lx.indents)-1]
		lx.emitAt(TokenDedent, "", lx.pos, lx.pos)
	}
	lx.emitAt(TokenEOF, "", lx.pos, lx.pos)
	return nil
}

// lexIndentation measures the leading whitespace of a line, skipping blank and
// comment-only lines entirely. Returns false at EOF.
func (lx *lexer) lexIndentation() (bool, error) {
	for {
		if lx.pos >= len(lx.src) {
			return false, nil
		}
		width := 0
		for lx.pos < len(lx.src) {
			switch lx.src[lx.pos] {
			case ' ':
				width++
				lx.advance(1)
			case '\t':
				width += tabSize - width%tabSize
				lx.advance(1)
			default:
				goto measured
			}
		}
	measured:
		if lx.pos >= len(lx.src) {
			return false, nil
		}
		switch lx.src[lx.pos] {
		case '\n':
			lx.advance(1)
			continue
		case '\r':
			lx.advance(1)
			continue
		case '#':
			lx.lexComment()
			continue
		}

		cur := lx.indents[len(lx.indents)-1]
		switch {
		case width > cur:
			lx.indents = append(lx.indents, width)
			lx.emitAt(TokenIndent, "", lx.pos, lx.pos)
		case width < cur:
			for len(lx.indents) > 1 && lx.indents[len(lx.indents)-1] > width {
				lx.indents = lx.indents[:len(lx.indents)-1]
				lx.emitAt(TokenDedent, "", lx.pos, lx.pos)
			}
			if lx.indents[len(lx.indents)-1] != width {
				return false, lx.errorf("unindent does not match any outer indentation level")
			}
		}
		return true, nil
	}
}

func (lx *lexer) lexComment() {
	start := lx.pos
	line := lx.line
	col := lx.col
	for lx.pos < len(lx.src) && lx.src[lx.pos] != '\n' {
		lx.advance(1)
	}
	text := string(lx.src[start:lx.pos])
	own := true
	for i := start - 1; i >= 0; i-- {
		c := lx.src[i]
		if c == '\n' {
			break
		}
		if c != ' ' && c != '\t' && c != '\r' {
			own = false
			break
		}
	}
	_ = col
	lx.comments = append(lx.comments, Comment{
		Text:  text,
		Range: NewRange(start, lx.pos),
		Line:  line,
		Own:   own,
	})
}

// lexNameOrString handles identifiers, keywords, and string-prefix forms such
// as r"..." or b'...'.
func (lx *lexer) lexNameOrString() error {
	start := lx.pos
	for lx.pos < len(lx.src) && isNameChar(lx.src[lx.pos]) {
		lx.advance(1)
	}
	text := string(lx.src[start:lx.pos])

	// A short run of prefix letters immediately followed by a quote is a
	// string literal, not a name.
	if len(text) <= 2 && lx.pos < len(lx.src) &&
		(lx.src[lx.pos] == '\'' || lx.src[lx.pos] == '"') &&
		isStringPrefix(text) {
		return lx.lexString(start)
	}

	kind := TokenName
	if keywords[text] {
		kind = TokenKeyword
	}
	lx.emitAt(kind, text, start, lx.pos)
	return nil
}

func isStringPrefix(s string) bool {
	for _, r := range strings.ToLower(s) {
		switch r {
		case 'r', 'b', 'f', 'u':
		default:
			return false
		}
	}
	return true
}

// lexString consumes a string literal starting at start (the prefix letters,
// if any, have already been consumed).
func (lx *lexer) lexString(start int) error {
	quote := lx.src[lx.pos]
	triple := false
	if lx.pos+2 < len(lx.src) && lx.src[lx.pos+1] == quote && lx.src[lx.pos+2] == quote {
		triple = true
		lx.advance(3)
	} else {
		lx.advance(1)
	}

	for lx.pos < len(lx.src) {
		ch := lx.src[lx.pos]
		if ch == '\\' && lx.pos+1 < len(lx.src) {
			lx.advance(2)
			continue
		}
		if ch == quote {
			if !triple {
				lx.advance(1)
				lx.emitAt(TokenString, string(lx.src[start:lx.pos]), start, lx.pos)
				return nil
			}
			if lx.pos+2 < len(lx.src) && lx.src[lx.pos+1] == quote && lx.src[lx.pos+2] == quote {
				lx.advance(3)
				lx.emitAt(TokenString, string(lx.src[start:lx.pos]), start, lx.pos)
				return nil
			}
			lx.advance(1)
			continue
		}
		if ch == '\n' && !triple {
			return lx.errorf("unterminated string literal")
		}
		lx.advance(1)
	}
	return lx.errorf("unterminated string literal")
}

func (lx *lexer) lexNumber() {
	start := lx.pos
	prev := byte(0)
	for lx.pos < len(lx.src) {
		ch := lx.src[lx.pos]
		ok := isDigit(ch) || isNameChar(ch) || ch == '.' ||
			((ch == '+' || ch == '-') && (prev == 'e' || prev == 'E'))
		if !ok {
			break
		}
		prev = ch
		lx.advance(1)
	}
	lx.emitAt(TokenNumber, string(lx.src[start:lx.pos]), start, lx.pos)
}

func (lx *lexer) lexOperator() error {
	start := lx.pos
	rest := lx.src[lx.pos:]

	two := func(a, b byte) bool {
		return len(rest) >= 2 && rest[0] == a && rest[1] == b
	}

	var kind TokenKind
	size := 1
	switch {
	case len(rest) >= 3 && rest[0] == '.' && rest[1] == '.' && rest[2] == '.':
		kind, size = TokenEllipsis, 3
	case two('-', '>'):
		kind, size = TokenArrow, 2
	case two('*', '*'):
		kind, size = TokenDoubleStar, 2
	case two('/', '/'):
		kind, size = TokenDoubleSlash, 2
	case two('=', '='):
		kind, size = TokenEqEq, 2
	case two('!', '='):
		kind, size = TokenNotEq, 2
	case two('<', '='):
		kind, size = TokenLessEq, 2
	case two('>', '='):
		kind, size = TokenGreaterEq, 2
	default:
		switch rest[0] {
		case '(':
			kind = TokenLParen
			lx.depth++
		case ')':
			kind = TokenRParen
			lx.depth--
		case '[':
			kind = TokenLBracket
			lx.depth++
		case ']':
			kind = TokenRBracket
			lx.depth--
		case '{':
			kind = TokenLBrace
			lx.depth++
		case '}':
			kind = TokenRBrace
			lx.depth--
		case ',':
			kind = TokenComma
		case ':':
			kind = TokenColon
		case ';':
			kind = TokenSemi
		case '.':
			kind = TokenDot
		case '=':
			kind = TokenAssign
		case '@':
			kind = TokenAt
		case '|':
			kind = TokenPipe
		case '&':
			kind = TokenAmp
		case '^':
			kind = TokenCaret
		case '+':
			kind = TokenPlus
		case '-':
			kind = TokenMinus
		case '*':
			kind = TokenStar
		case '/':
			kind = TokenSlash
		case '%':
			kind = TokenPercent
		case '~':
			kind = TokenTilde
		case '<':
			kind = TokenLess
		case '>':
			kind = TokenGreater
		default:
			return lx.errorf("unexpected character %q", rest[0])
		}
	}
	lx.advance(size)
	lx.emitAt(kind, string(lx.src[start:lx.pos]), start, lx.pos)
	return nil
}

func (lx *lexer) emitAt(kind TokenKind, text string, start, end int) {
	col := lx.col - (lx.pos - start)
	if col < 1 {
		col = 1
	}
	lx.tokens = append(lx.tokens, Token{
		Kind:  kind,
		Text:  text,
		Range: NewRange(start, end),
		Line:  lx.line,
		Col:   col,
	})
}

func (lx *lexer) advance(n int) {
	for i := 0; i < n && lx.pos < len(lx.src); i++ {
		if lx.src[lx.pos] == '\n' {
			lx.line++
			lx.col = 1
		} else {
			lx.col++
		}
		lx.pos++
	}
}

func isNameStart(ch byte) bool {
	return ch == '_' || ('a' <= ch && ch <= 'z') || ('A' <= ch && ch <= 'Z') || ch >= 0x80
}

func isNameChar(ch byte) bool {
	return isNameStart(ch) || isDigit(ch)
}

func isDigit(ch byte) bool { return '0' <= ch && ch <= '9' }
