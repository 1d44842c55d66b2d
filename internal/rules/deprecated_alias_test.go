package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tt "github.com/typelint/typelint/internal/types"
)

func TestDeprecatedAlias(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		src     string
		fixed   string
		message string
	}{
		{
			name:    "imported Text",
			src:     "from typing import Text\nx: Text\n",
			fixed:   "from typing import Text\nx: str\n",
			message: "`typing.Text` is deprecated, use `str`",
		},
		{
			name:    "attribute form",
			src:     "import typing\nx: typing.Text\n",
			fixed:   "import typing\nx: str\n",
			message: "`typing.Text` is deprecated, use `str`",
		},
		{
			name:    "ByteString",
			src:     "from typing import ByteString\nx: ByteString\n",
			fixed:   "from typing import ByteString\nx: bytes\n",
			message: "`typing.ByteString` is deprecated, use `bytes`",
		},
		{
			name:    "aliased import",
			src:     "from typing import Text as Txt\nx: Txt\n",
			fixed:   "from typing import Text as Txt\nx: str\n",
			message: "`typing.Text` is deprecated, use `str`",
		},
		{
			name:    "typing_extensions",
			src:     "from typing_extensions import Text\nx: Text\n",
			fixed:   "from typing_extensions import Text\nx: str\n",
			message: "`typing.Text` is deprecated, use `str`",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			diagnostics := byRule(lint(t, tc.src), DeprecatedAliasRule)
			require.Len(t, diagnostics, 1)

			d := diagnostics[0]
			assert.Equal(t, tc.message, d.Message)
			require.NotNil(t, d.Fix)
			assert.Equal(t, tt.ApplicabilitySafe, d.Fix.Applicability)
			assert.Equal(t, tc.fixed, applyFix(t, tc.src, d))
		})
	}
}

func TestDeprecatedAliasIgnored(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
	}{
		{"unimported", "x: Text\n"},
		{"wrong module", "from mypkg import Text\nx: Text\n"},
		{"shadowed", "from typing import Text\nText = str\nx: Text\n"},
		{"current members", "from typing import Never, Union\nx: Union[Never, int]\n"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Empty(t, byRule(lint(t, tc.src), DeprecatedAliasRule))
		})
	}
}

func TestDeprecatedAliasInUnion(t *testing.T) {
	t.Parallel()

	src := "from typing import Text\nx: Text | None\n"
	diagnostics := byRule(lint(t, src), DeprecatedAliasRule)
	require.Len(t, diagnostics, 1)
	assert.Equal(t, "from typing import Text\nx: str | None\n", applyFix(t, src, diagnostics[0]))
}
