package lint

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	tt "github.com/typelint/typelint/internal/types"
)

type mockLintEngine struct {
	mock.Mock
}

func (m *mockLintEngine) Run(filePath string) ([]tt.Diagnostic, error) {
	args := m.Called(filePath)
	return args.Get(0).([]tt.Diagnostic), args.Error(1)
}

func (m *mockLintEngine) RunSource(source []byte) ([]tt.Diagnostic, error) {
	args := m.Called(source)
	return args.Get(0).([]tt.Diagnostic), args.Error(1)
}

func (m *mockLintEngine) IgnoreRule(rule string) {
	m.Called(rule)
}

func (m *mockLintEngine) IgnorePath(path string) {
	m.Called(path)
}

func setupMockEngine(expected []tt.Diagnostic, filePath string) *mockLintEngine {
	mockEngine := new(mockLintEngine)
	mockEngine.On("Run", filePath).Return(expected, nil)
	return mockEngine
}

func setupSourceMockEngine(expected []tt.Diagnostic, content []byte) *mockLintEngine {
	mockEngine := new(mockLintEngine)
	mockEngine.On("RunSource", content).Return(expected, nil)
	return mockEngine
}

func TestProcessFile(t *testing.T) {
	t.Parallel()
	expected := []tt.Diagnostic{
		{
			Rule:     "never-union",
			Filename: "test.py",
			Start:    tt.Position{Line: 1, Column: 4, Offset: 3},
			End:      tt.Position{Line: 1, Column: 9, Offset: 8},
			Message:  "`Never | T` is equivalent to `T`",
		},
	}
	mockEngine := setupMockEngine(expected, "test.py")

	diagnostics, err := ProcessFile(mockEngine, "test.py")

	assert.NoError(t, err)
	assert.Equal(t, expected, diagnostics)
	mockEngine.AssertExpectations(t)
}

func TestProcessSource(t *testing.T) {
	t.Parallel()
	expected := []tt.Diagnostic{
		{
			Rule:    "duplicate-union-member",
			Start:   tt.Position{Line: 1, Column: 4, Offset: 3},
			End:     tt.Position{Line: 1, Column: 7, Offset: 6},
			Message: "duplicate union member `int`",
		},
	}
	mockEngine := setupSourceMockEngine(expected, []byte("x: int | int\n"))

	diagnostics, err := ProcessSource(mockEngine, []byte("x: int | int\n"))

	assert.NoError(t, err)
	assert.Equal(t, expected, diagnostics)
	mockEngine.AssertExpectations(t)
}

func TestProcessPath(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	tempDir := t.TempDir()
	paths := createTempFiles(t, tempDir, "test1.py", "test2.py")

	expected := []tt.Diagnostic{
		{
			Rule:     "never-union",
			Filename: paths[0],
			Message:  "issue 1",
		},
		{
			Rule:     "nested-literal",
			Filename: paths[1],
			Message:  "issue 2",
		},
	}

	mockEngine := new(mockLintEngine)
	mockEngine.On("Run", paths[0]).Return([]tt.Diagnostic{expected[0]}, nil)
	mockEngine.On("Run", paths[1]).Return([]tt.Diagnostic{expected[1]}, nil)

	diagnostics, err := ProcessPath(ctx, nil, mockEngine, tempDir, ProcessFile)

	assert.NoError(t, err)
	assert.Len(t, diagnostics, 2)
	assert.Contains(t, diagnostics, expected[0])
	assert.Contains(t, diagnostics, expected[1])
	mockEngine.AssertExpectations(t)
}

func TestProcessPathSkipsOtherExtensions(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	tempDir := t.TempDir()
	paths := createTempFiles(t, tempDir, "keep.py", "keep.pyi", "skip.txt", "skip.go")

	mockEngine := new(mockLintEngine)
	mockEngine.On("Run", paths[0]).Return([]tt.Diagnostic{}, nil)
	mockEngine.On("Run", paths[1]).Return([]tt.Diagnostic{}, nil)

	_, err := ProcessPath(ctx, nil, mockEngine, tempDir, ProcessFile)

	assert.NoError(t, err)
	mockEngine.AssertExpectations(t)
	mockEngine.AssertNotCalled(t, "Run", paths[2])
	mockEngine.AssertNotCalled(t, "Run", paths[3])
}

func TestProcessFiles(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	tempDir := t.TempDir()
	paths := createTempFiles(t, tempDir, "test1.py", "test2.py")

	expected := []tt.Diagnostic{
		{Rule: "never-union", Filename: paths[0], Message: "issue 1"},
		{Rule: "never-union", Filename: paths[1], Message: "issue 2"},
	}

	mockEngine := new(mockLintEngine)
	mockEngine.On("Run", paths[0]).Return([]tt.Diagnostic{expected[0]}, nil)
	mockEngine.On("Run", paths[1]).Return([]tt.Diagnostic{expected[1]}, nil)

	diagnostics, err := ProcessFiles(ctx, nil, mockEngine, paths, ProcessFile)

	assert.NoError(t, err)
	assert.Len(t, diagnostics, 2)
	assert.Contains(t, diagnostics, expected[0])
	assert.Contains(t, diagnostics, expected[1])
	mockEngine.AssertExpectations(t)
}

func TestProcessSources(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	expected := []tt.Diagnostic{
		{Rule: "never-union", Message: "issue 1"},
		{Rule: "duplicate-union-member", Message: "issue 2"},
	}

	mockEngine := new(mockLintEngine)
	mockEngine.On("RunSource", []byte("x: int\n")).Return([]tt.Diagnostic{expected[0]}, nil)
	mockEngine.On("RunSource", []byte("y: str\n")).Return([]tt.Diagnostic{expected[1]}, nil)

	diagnostics, err := ProcessSources(ctx, nil, mockEngine,
		[][]byte{[]byte("x: int\n"), []byte("y: str\n")}, ProcessSource)

	assert.NoError(t, err)
	assert.Len(t, diagnostics, 2)
	assert.Contains(t, diagnostics, expected[0])
	assert.Contains(t, diagnostics, expected[1])
	mockEngine.AssertExpectations(t)
}

func TestHasDesiredExtension(t *testing.T) {
	t.Parallel()
	assert.True(t, hasDesiredExtension("test.py"))
	assert.True(t, hasDesiredExtension("stubs.pyi"))
	assert.False(t, hasDesiredExtension("test.txt"))
	assert.False(t, hasDesiredExtension("test.go"))
	assert.False(t, hasDesiredExtension("test"))
}

func TestParseConfigurationFile(t *testing.T) {
	t.Parallel()

	t.Run("full config", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), ".typelint.yaml")
		content := `name: typelint
rules:
  never-union:
    severity: warning
  nested-literal:
    severity: off
`
		assert.NoError(t, os.WriteFile(path, []byte(content), 0o644))

		config, err := parseConfigurationFile(path)
		assert.NoError(t, err)
		assert.Equal(t, "typelint", config.Name)
		assert.Equal(t, tt.SeverityWarning, config.Rules["never-union"].Severity)
		assert.Equal(t, tt.SeverityOff, config.Rules["nested-literal"].Severity)
	})

	t.Run("empty path", func(t *testing.T) {
		config, err := parseConfigurationFile("")
		assert.NoError(t, err)
		assert.Empty(t, config.Rules)
	})

	t.Run("missing file", func(t *testing.T) {
		config, err := parseConfigurationFile(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.NoError(t, err)
		assert.Empty(t, config.Rules)
	})

	t.Run("bad severity", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), ".typelint.yaml")
		content := "rules:\n  never-union:\n    severity: loud\n"
		assert.NoError(t, os.WriteFile(path, []byte(content), 0o644))

		_, err := parseConfigurationFile(path)
		assert.Error(t, err)
	})
}

func createTempFiles(t *testing.T, dir string, fileNames ...string) []string {
	t.Helper()
	paths := make([]string, 0, len(fileNames))
	for _, fileName := range fileNames {
		filePath := filepath.Join(dir, fileName)
		_, err := os.Create(filePath)
		assert.NoError(t, err)
		paths = append(paths, filePath)
	}
	return paths
}
