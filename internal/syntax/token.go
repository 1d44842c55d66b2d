package syntax

import "fmt"

// TextRange is a half-open [Start, End) byte offset pair into the source buffer.
type TextRange struct {
	Start int
	End   int
}

func NewRange(start, end int) TextRange {
	return TextRange{Start: start, End: end}
}

func (r TextRange) Len() int { return r.End - r.Start }

func (r TextRange) IsEmpty() bool { return r.Start == r.End }

// Intersects reports whether two ranges share at least one byte.
// Ranges that merely touch do not intersect, except that an empty range
// strictly inside a non-empty one does.
func (r TextRange) Intersects(other TextRange) bool {
	if r.Start < other.End && other.Start < r.End {
		return true
	}
	if r.IsEmpty() && other.Start < r.Start && r.Start < other.End {
		return true
	}
	if other.IsEmpty() && r.Start < other.Start && other.Start < r.End {
		return true
	}
	return false
}

func (r TextRange) Contains(offset int) bool {
	return r.Start <= offset && offset < r.End
}

func (r TextRange) String() string {
	return fmt.Sprintf("[%d, %d)", r.Start, r.End)
}

type TokenKind int

const (
	TokenEOF TokenKind = iota
	TokenNewline
	TokenIndent
	TokenDedent
	TokenName
	TokenKeyword
	TokenNumber
	TokenString

	TokenLParen
	TokenRParen
	TokenLBracket
	TokenRBracket
	TokenLBrace
	TokenRBrace
	TokenComma
	TokenColon
	TokenSemi
	TokenDot
	TokenEllipsis
	TokenAssign
	TokenArrow
	TokenAt

	TokenPipe
	TokenAmp
	TokenCaret
	TokenPlus
	TokenMinus
	TokenStar
	TokenDoubleStar
	TokenSlash
	TokenDoubleSlash
	TokenPercent
	TokenTilde
	TokenLess
	TokenGreater
	TokenLessEq
	TokenGreaterEq
	TokenEqEq
	TokenNotEq
)

var tokenNames = map[TokenKind]string{
	TokenEOF:         "EOF",
	TokenNewline:     "NEWLINE",
	TokenIndent:      "INDENT",
	TokenDedent:      "DEDENT",
	TokenName:        "NAME",
	TokenKeyword:     "KEYWORD",
	TokenNumber:      "NUMBER",
	TokenString:      "STRING",
	TokenLParen:      "(",
	TokenRParen:      ")",
	TokenLBracket:    "[",
	TokenRBracket:    "]",
	TokenLBrace:      "{",
	TokenRBrace:      "}",
	TokenComma:       ",",
	TokenColon:       ":",
	TokenSemi:        ";",
	TokenDot:         ".",
	TokenEllipsis:    "...",
	TokenAssign:      "=",
	TokenArrow:       "->",
	TokenAt:          "@",
	TokenPipe:        "|",
	TokenAmp:         "&",
	TokenCaret:       "^",
	TokenPlus:        "+",
	TokenMinus:       "-",
	TokenStar:        "*",
	TokenDoubleStar:  "**",
	TokenSlash:       "/",
	TokenDoubleSlash: "//",
	TokenPercent:     "%",
	TokenTilde:       "~",
	TokenLess:        "<",
	TokenGreater:     ">",
	TokenLessEq:      "<=",
	TokenGreaterEq:   ">=",
	TokenEqEq:        "==",
	TokenNotEq:       "!=",
}

func (k TokenKind) String() string {
	if name, ok := tokenNames[k]; ok {
		return name
	}
	return fmt.Sprintf("TokenKind(%d)", int(k))
}

// Token is a single lexical element with its source range.
type Token struct {
	Kind  TokenKind
	Text  string
	Range TextRange
	Line  int // 1-based
	Col   int // 1-based
}

func (t Token) Is(kind TokenKind) bool { return t.Kind == kind }

// IsKeyword reports whether the token is the given keyword.
func (t Token) IsKeyword(word string) bool {
	return t.Kind == TokenKeyword && t.Text == word
}

var keywords = map[string]bool{
	"False": true, "None": true, "True": true,
	"and": true, "as": true, "assert": true, "async": true, "await": true,
	"break": true, "class": true, "continue": true, "def": true, "del": true,
	"elif": true, "else": true, "except": true, "finally": true, "for": true,
	"from": true, "global": true, "if": true, "import": true, "in": true,
	"is": true, "lambda": true, "nonlocal": true, "not": true, "or": true,
	"pass": true, "raise": true, "return": true, "try": true, "while": true,
	"with": true, "yield": true,
}
