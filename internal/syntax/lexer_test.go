package syntax

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func kinds(tokens []Token) []TokenKind {
	out := make([]TokenKind, len(tokens))
	for i, tok := range tokens {
		out[i] = tok.Kind
	}
	return out
}

func TestTokenizeSimpleAssignment(t *testing.T) {
	t.Parallel()

	tokens, comments, err := Tokenize([]byte("x = 1\n"))
	require.NoError(t, err)
	assert.Empty(t, comments)

	assert.Equal(t, []TokenKind{
		TokenName, TokenAssign, TokenNumber, TokenNewline, TokenEOF,
	}, kinds(tokens))
	assert.Equal(t, "x", tokens[0].Text)
	assert.Equal(t, 1, tokens[0].Line)
	assert.Equal(t, 1, tokens[0].Col)
}

func TestTokenizeIndentation(t *testing.T) {
	t.Parallel()

	src := "def f():\n    pass\n"
	tokens, _, err := Tokenize([]byte(src))
	require.NoError(t, err)

	assert.Equal(t, []TokenKind{
		TokenKeyword, TokenName, TokenLParen, TokenRParen, TokenColon, TokenNewline,
		TokenIndent, TokenKeyword, TokenNewline, TokenDedent, TokenEOF,
	}, kinds(tokens))
}

func TestTokenizeNestedIndentation(t *testing.T) {
	t.Parallel()

	src := "if a:\n    if b:\n        pass\npass\n"
	tokens, _, err := Tokenize([]byte(src))
	require.NoError(t, err)

	var indents, dedents int
	for _, tok := range tokens {
		switch tok.Kind {
		case TokenIndent:
			indents++
		case TokenDedent:
			dedents++
		}
	}
	assert.Equal(t, 2, indents)
	assert.Equal(t, 2, dedents)
}

func TestTokenizeDedentAtEOF(t *testing.T) {
	t.Parallel()

	// missing trailing newline still closes every open block
	tokens, _, err := Tokenize([]byte("def f():\n    pass"))
	require.NoError(t, err)

	last := tokens[len(tokens)-1]
	assert.Equal(t, TokenEOF, last.Kind)
	assert.Equal(t, TokenDedent, tokens[len(tokens)-2].Kind)
}

func TestTokenizeImplicitLineJoining(t *testing.T) {
	t.Parallel()

	// newlines inside brackets do not produce NEWLINE/INDENT tokens
	src := "x = Union[\n    int,\n    str,\n]\n"
	tokens, _, err := Tokenize([]byte(src))
	require.NoError(t, err)

	for _, tok := range tokens[:len(tokens)-2] {
		assert.NotEqual(t, TokenIndent, tok.Kind)
		assert.NotEqual(t, TokenDedent, tok.Kind)
	}
	// exactly one logical line
	newlines := 0
	for _, tok := range tokens {
		if tok.Kind == TokenNewline {
			newlines++
		}
	}
	assert.Equal(t, 1, newlines)
}

func TestTokenizeComments(t *testing.T) {
	t.Parallel()

	src := "# leading\nx = 1  # trailing\n"
	tokens, comments, err := Tokenize([]byte(src))
	require.NoError(t, err)
	require.Len(t, comments, 2)

	assert.Equal(t, "# leading", comments[0].Text)
	assert.True(t, comments[0].Own)
	assert.Equal(t, 1, comments[0].Line)

	assert.Equal(t, "# trailing", comments[1].Text)
	assert.False(t, comments[1].Own)
	assert.Equal(t, 2, comments[1].Line)

	// comments never surface as tokens
	for _, tok := range tokens {
		assert.NotContains(t, tok.Text, "#")
	}
}

func TestTokenizeStrings(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
	}{
		{"single quoted", `x = 'a'` + "\n"},
		{"double quoted", `x = "a"` + "\n"},
		{"escaped quote", `x = "a\"b"` + "\n"},
		{"raw prefix", `x = r"\d+"` + "\n"},
		{"triple quoted", "x = \"\"\"a\nb\"\"\"\n"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tokens, _, err := Tokenize([]byte(tc.src))
			require.NoError(t, err)
			assert.Equal(t, TokenString, tokens[2].Kind)
		})
	}
}

func TestTokenizeOperators(t *testing.T) {
	t.Parallel()

	tokens, _, err := Tokenize([]byte("a | b -> c ...\n"))
	require.NoError(t, err)

	assert.Equal(t, []TokenKind{
		TokenName, TokenPipe, TokenName, TokenArrow, TokenName, TokenEllipsis,
		TokenNewline, TokenEOF,
	}, kinds(tokens))
}

func TestTokenizeBadIndentation(t *testing.T) {
	t.Parallel()

	// dedent to a level that was never opened
	_, _, err := Tokenize([]byte("if a:\n        pass\n    pass\n"))
	require.Error(t, err)

	var syntaxErr *SyntaxError
	assert.ErrorAs(t, err, &syntaxErr)
}

func TestTokenizeUnterminatedString(t *testing.T) {
	t.Parallel()

	_, _, err := Tokenize([]byte("x = 'oops\n"))
	assert.Error(t, err)
}

func TestTokenRanges(t *testing.T) {
	t.Parallel()

	src := []byte("abc = xyz\n")
	tokens, _, err := Tokenize(src)
	require.NoError(t, err)

	for _, tok := range tokens {
		if tok.Kind == TokenName {
			assert.Equal(t, tok.Text, string(src[tok.Range.Start:tok.Range.End]))
		}
	}
}
