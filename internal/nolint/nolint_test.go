package nolint

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/typelint/typelint/internal/syntax"
)

func parse(t *testing.T, src string) *Manager {
	t.Helper()
	module, err := syntax.Parse([]byte(src))
	require.NoError(t, err)
	return Parse(module, syntax.NewLocator([]byte(src)))
}

func TestInlineNolint(t *testing.T) {
	t.Parallel()

	m := parse(t, "x: int\ny: str  # nolint\nz: bytes\n")

	assert.False(t, m.IsNolint(1, "never-union"))
	assert.True(t, m.IsNolint(2, "never-union"))
	assert.True(t, m.IsNolint(2, "duplicate-union-member"), "bare directive suppresses every rule")
	assert.False(t, m.IsNolint(3, "never-union"))
}

func TestInlineNolintWithRules(t *testing.T) {
	t.Parallel()

	m := parse(t, "x: int  # nolint: never-union, nested-literal\n")

	assert.True(t, m.IsNolint(1, "never-union"))
	assert.True(t, m.IsNolint(1, "nested-literal"))
	assert.False(t, m.IsNolint(1, "duplicate-union-member"))
}

func TestStandaloneNolintCoversNextLine(t *testing.T) {
	t.Parallel()

	src := "x: int\n# nolint: never-union\ny: str\nz: bytes\n"
	m := parse(t, src)

	assert.False(t, m.IsNolint(1, "never-union"))
	assert.False(t, m.IsNolint(2, "never-union"), "the directive line itself has no code")
	assert.True(t, m.IsNolint(3, "never-union"))
	assert.False(t, m.IsNolint(4, "never-union"))
}

func TestFileLevelNolint(t *testing.T) {
	t.Parallel()

	// a standalone directive before the first statement covers the file
	src := "# nolint\nx: int\ny: str\n"
	m := parse(t, src)

	assert.True(t, m.IsNolint(1, "never-union"))
	assert.True(t, m.IsNolint(2, "never-union"))
	assert.True(t, m.IsNolint(3, "never-union"))
}

func TestFileLevelNolintWithRules(t *testing.T) {
	t.Parallel()

	src := "# nolint: never-union\nx: int\ny: str\n"
	m := parse(t, src)

	assert.True(t, m.IsNolint(2, "never-union"))
	assert.False(t, m.IsNolint(2, "duplicate-union-member"))
}

func TestFileLevelNolintInEmptyFile(t *testing.T) {
	t.Parallel()

	m := parse(t, "# nolint\n")
	assert.True(t, m.IsNolint(1, "never-union"))
}

func TestNolintAfterFirstStatementIsNotFileLevel(t *testing.T) {
	t.Parallel()

	src := "x: int\n# nolint\ny: str\nz: bytes\n"
	m := parse(t, src)

	assert.False(t, m.IsNolint(1, "never-union"))
	assert.True(t, m.IsNolint(3, "never-union"))
	assert.False(t, m.IsNolint(4, "never-union"))
}

func TestNonDirectiveComments(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
	}{
		{"prefix of a longer word", "x: int  # nolinting is not a word\n"},
		{"unrelated comment", "x: int  # regular comment\n"},
		{"mentions nolint later", "x: int  # see nolint docs\n"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m := parse(t, tc.src)
			assert.False(t, m.IsNolint(1, "never-union"))
		})
	}
}

func TestNolintRuleListWhitespace(t *testing.T) {
	t.Parallel()

	m := parse(t, "x: int  # nolint:  never-union ,duplicate-union-member \n")

	assert.True(t, m.IsNolint(1, "never-union"))
	assert.True(t, m.IsNolint(1, "duplicate-union-member"))
	assert.False(t, m.IsNolint(1, "nested-literal"))
}

func TestNolintTrailingWhitespace(t *testing.T) {
	t.Parallel()

	m := parse(t, "x: int  # nolint   \n")
	assert.True(t, m.IsNolint(1, "never-union"))
}
