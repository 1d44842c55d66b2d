package internal

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tt "github.com/typelint/typelint/internal/types"
)

func TestNewEngine(t *testing.T) {
	t.Parallel()

	engine, err := NewEngine(".", nil)
	require.NoError(t, err)
	require.NotNil(t, engine)
	assert.NotNil(t, engine.registry)
}

func TestRunSource(t *testing.T) {
	t.Parallel()

	engine, err := NewEngine(".", nil)
	require.NoError(t, err)

	src := []byte("from typing import Never\nx: Never | int\n")
	diagnostics, err := engine.RunSource(src)
	require.NoError(t, err)
	require.Len(t, diagnostics, 1)
	assert.Equal(t, "never-union", diagnostics[0].Rule)
	assert.Equal(t, tt.SeverityError, diagnostics[0].Severity)
}

func TestRunSourceParseError(t *testing.T) {
	t.Parallel()

	engine, err := NewEngine(".", nil)
	require.NoError(t, err)

	_, err = engine.RunSource([]byte("x: (int\n"))
	assert.Error(t, err)
}

func TestRunSourceNolintSuppression(t *testing.T) {
	t.Parallel()

	engine, err := NewEngine(".", nil)
	require.NoError(t, err)

	t.Run("inline", func(t *testing.T) {
		src := []byte("from typing import Never\nx: Never | int  # nolint\n")
		diagnostics, err := engine.RunSource(src)
		require.NoError(t, err)
		assert.Empty(t, diagnostics)
	})

	t.Run("rule-specific", func(t *testing.T) {
		src := []byte("from typing import Never\nx: Never | int  # nolint: duplicate-union-member\n")
		diagnostics, err := engine.RunSource(src)
		require.NoError(t, err)
		assert.Len(t, diagnostics, 1, "a different rule's directive does not suppress")
	})

	t.Run("file level", func(t *testing.T) {
		src := []byte("# nolint\nfrom typing import Never\nx: Never | int\n")
		diagnostics, err := engine.RunSource(src)
		require.NoError(t, err)
		assert.Empty(t, diagnostics)
	})
}

func TestIgnoreRule(t *testing.T) {
	t.Parallel()

	engine, err := NewEngine(".", nil)
	require.NoError(t, err)
	engine.IgnoreRule("never-union")

	src := []byte("from typing import Never\nx: Never | int\n")
	diagnostics, err := engine.RunSource(src)
	require.NoError(t, err)
	assert.Empty(t, diagnostics)
}

func TestConfigRules(t *testing.T) {
	t.Parallel()

	t.Run("severity override", func(t *testing.T) {
		engine, err := NewEngine(".", map[string]tt.ConfigRule{
			"never-union": {Severity: tt.SeverityWarning},
		})
		require.NoError(t, err)

		diagnostics, err := engine.RunSource([]byte("from typing import Never\nx: Never | int\n"))
		require.NoError(t, err)
		require.Len(t, diagnostics, 1)
		assert.Equal(t, tt.SeverityWarning, diagnostics[0].Severity)
	})

	t.Run("rule configured off", func(t *testing.T) {
		engine, err := NewEngine(".", map[string]tt.ConfigRule{
			"never-union": {Severity: tt.SeverityOff},
		})
		require.NoError(t, err)

		diagnostics, err := engine.RunSource([]byte("from typing import Never\nx: Never | int\n"))
		require.NoError(t, err)
		assert.Empty(t, diagnostics)
	})

	t.Run("unknown rule name is skipped", func(t *testing.T) {
		engine, err := NewEngine(".", map[string]tt.ConfigRule{
			"no-such-rule": {Severity: tt.SeverityWarning},
		})
		require.NoError(t, err)

		diagnostics, err := engine.RunSource([]byte("from typing import Never\nx: Never | int\n"))
		require.NoError(t, err)
		assert.Len(t, diagnostics, 1)
	})
}

func TestIgnorePath(t *testing.T) {
	t.Parallel()

	engine, err := NewEngine(".", nil)
	require.NoError(t, err)
	engine.IgnorePath("vendor")
	engine.IgnorePath("build/generated")

	assert.True(t, engine.IsPathIgnored("vendor"))
	assert.True(t, engine.IsPathIgnored("vendor/pkg/mod.py"))
	assert.True(t, engine.IsPathIgnored("build/generated/api.py"))
	assert.False(t, engine.IsPathIgnored("vendored/file.py"), "prefix must stop at a path boundary")
	assert.False(t, engine.IsPathIgnored("src/app.py"))
}

func TestRun(t *testing.T) {
	t.Parallel()

	tempDir := t.TempDir()
	path := filepath.Join(tempDir, "sample.py")
	src := "from typing import NoReturn, Union\nx: Union[NoReturn, int, str]\n"
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))

	engine, err := NewEngine(tempDir, nil)
	require.NoError(t, err)

	diagnostics, err := engine.Run(path)
	require.NoError(t, err)
	require.Len(t, diagnostics, 1)
	assert.Equal(t, "never-union", diagnostics[0].Rule)
	assert.Equal(t, path, diagnostics[0].Filename)
}

func TestRunMissingFile(t *testing.T) {
	t.Parallel()

	engine, err := NewEngine(".", nil)
	require.NoError(t, err)

	_, err = engine.Run(filepath.Join(t.TempDir(), "missing.py"))
	assert.Error(t, err)
}

func TestRunWithCache(t *testing.T) {
	t.Parallel()

	tempDir := t.TempDir()
	path := filepath.Join(tempDir, "sample.py")
	src := "from typing import Never\nx: Never | int\n"
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))

	cache, err := NewCache(filepath.Join(tempDir, ".cache"))
	require.NoError(t, err)

	engine, err := NewEngine(tempDir, nil)
	require.NoError(t, err)
	engine.SetCache(cache)

	first, err := engine.Run(path)
	require.NoError(t, err)
	require.Len(t, first, 1)

	// the result is now cached and the second run serves it
	cached, ok := cache.Get(path)
	require.True(t, ok)
	assert.Equal(t, first, cached)

	second, err := engine.Run(path)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
