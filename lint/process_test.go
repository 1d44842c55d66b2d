package lint

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProcessPathContextCancellation(t *testing.T) {
	t.Parallel()

	tempDir := t.TempDir()
	for i := 0; i < 10; i++ {
		filename := filepath.Join(tempDir, fmt.Sprintf("mod%d.py", i))
		content := fmt.Sprintf("from typing import Never\nx%d: Never | int\n", i)
		require.NoError(t, os.WriteFile(filename, []byte(content), 0o644))
	}

	engine, err := New(tempDir, "")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	_, err = ProcessPath(ctx, nil, engine, tempDir, ProcessFile)

	// either every file finished before the cancel landed, or the run
	// reports the cancellation
	if err != nil {
		assert.ErrorIs(t, err, context.Canceled)
	}
}

func TestProcessPathCollectsAllFiles(t *testing.T) {
	t.Parallel()

	tempDir := t.TempDir()
	for i := 0; i < 5; i++ {
		filename := filepath.Join(tempDir, fmt.Sprintf("mod%d.py", i))
		content := fmt.Sprintf("from typing import NoReturn\ny%d: NoReturn | str\n", i)
		require.NoError(t, os.WriteFile(filename, []byte(content), 0o644))
	}

	engine, err := New(tempDir, "")
	require.NoError(t, err)

	diagnostics, err := ProcessPath(context.Background(), nil, engine, tempDir, ProcessFile)
	require.NoError(t, err)

	fileMap := make(map[string]bool)
	for _, d := range diagnostics {
		fileMap[d.Filename] = true
	}
	assert.Len(t, fileMap, 5, "every file contributes its diagnostic")
}

func TestProcessPathPropagatesParseErrors(t *testing.T) {
	t.Parallel()

	tempDir := t.TempDir()
	valid := filepath.Join(tempDir, "valid.py")
	require.NoError(t, os.WriteFile(valid, []byte("x: int\n"), 0o644))
	invalid := filepath.Join(tempDir, "invalid.py")
	require.NoError(t, os.WriteFile(invalid, []byte("x: (int\n"), 0o644))

	engine, err := New(tempDir, "")
	require.NoError(t, err)

	_, err = ProcessPath(context.Background(), nil, engine, tempDir, ProcessFile)
	assert.Error(t, err, "an unparseable file fails the run")
}

func TestProcessPathSingleFile(t *testing.T) {
	t.Parallel()

	tempDir := t.TempDir()
	path := filepath.Join(tempDir, "single.py")
	src := "from typing import Never\nx: Never | int\n"
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))

	engine, err := New(tempDir, "")
	require.NoError(t, err)

	diagnostics, err := ProcessPath(context.Background(), nil, engine, path, ProcessFile)
	require.NoError(t, err)
	require.Len(t, diagnostics, 1)
	assert.Equal(t, "never-union", diagnostics[0].Rule)
}

func TestProcessPathSingleFileParseError(t *testing.T) {
	t.Parallel()

	tempDir := t.TempDir()
	path := filepath.Join(tempDir, "broken.py")
	require.NoError(t, os.WriteFile(path, []byte("def f(\n"), 0o644))

	engine, err := New(tempDir, "")
	require.NoError(t, err)

	_, err = ProcessPath(context.Background(), nil, engine, path, ProcessFile)
	assert.Error(t, err)
}

func TestProcessPathMissing(t *testing.T) {
	t.Parallel()

	engine, err := New(".", "")
	require.NoError(t, err)

	_, err = ProcessPath(context.Background(), nil, engine, filepath.Join(t.TempDir(), "gone"), ProcessFile)
	assert.Error(t, err)
}
