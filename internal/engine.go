package internal

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/typelint/typelint/internal/checker"
	"github.com/typelint/typelint/internal/nolint"
	"github.com/typelint/typelint/internal/rules"
	"github.com/typelint/typelint/internal/syntax"
	"github.com/typelint/typelint/internal/trie"
	tt "github.com/typelint/typelint/internal/types"
)

// Engine manages the linting process.
type Engine struct {
	rootDir      string
	registry     *checker.Registry
	ignoredRules map[string]bool
	ignoredPaths *trie.Trie
	severity     map[string]tt.Severity
	cache        *Cache
	logger       *zap.Logger

	watcher    *fsnotify.Watcher
	watchDirs  []string
	isWatching bool
}

// NewEngine creates a new lint engine with the default rule set, applying the
// per-rule configuration on top.
func NewEngine(rootDir string, cfgRules map[string]tt.ConfigRule) (*Engine, error) {
	engine := &Engine{
		rootDir:      rootDir,
		registry:     rules.DefaultRegistry(),
		ignoredPaths: trie.New(),
		logger:       zap.NewNop(),
	}
	engine.applyRules(cfgRules)
	return engine, nil
}

// applyRules folds the config into the engine: severity overrides stick, and
// a rule configured off is ignored entirely. Unknown rule names are skipped.
func (e *Engine) applyRules(cfgRules map[string]tt.ConfigRule) {
	known := make(map[string]bool)
	for _, name := range e.registry.RuleNames() {
		known[name] = true
	}

	for name, rule := range cfgRules {
		if !known[name] {
			continue
		}
		if rule.Severity == tt.SeverityOff {
			e.IgnoreRule(name)
			continue
		}
		if e.severity == nil {
			e.severity = make(map[string]tt.Severity)
		}
		e.severity[name] = rule.Severity
	}
}

func (e *Engine) SetLogger(logger *zap.Logger) {
	if logger != nil {
		e.logger = logger
	}
}

// SetCache attaches a result cache; Run consults it before analyzing and
// stores fresh results after.
func (e *Engine) SetCache(cache *Cache) {
	e.cache = cache
}

func (e *Engine) IgnoreRule(rule string) {
	if e.ignoredRules == nil {
		e.ignoredRules = make(map[string]bool)
	}
	e.ignoredRules[rule] = true
}

func (e *Engine) IgnorePath(path string) {
	e.ignoredPaths.Insert(pathSegments(path))
}

// IsPathIgnored reports whether the path falls under any ignored path. The
// match is segment-wise, so ignoring `vendor` covers `vendor/pkg/mod.py` but
// never `vendored/file.py`.
func (e *Engine) IsPathIgnored(path string) bool {
	return e.ignoredPaths.MatchesPrefix(pathSegments(path))
}

func pathSegments(path string) []string {
	return strings.Split(filepath.Clean(path), string(filepath.Separator))
}

// Run applies all lint rules to the given file and returns the diagnostics.
func (e *Engine) Run(filename string) ([]tt.Diagnostic, error) {
	if e.cache != nil {
		if diagnostics, ok := e.cache.Get(filename); ok {
			return diagnostics, nil
		}
	}

	source, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("error reading file: %w", err)
	}

	diagnostics, err := e.runSource(filename, source)
	if err != nil {
		return nil, err
	}

	if e.cache != nil {
		if err := e.cache.Set(filename, diagnostics); err != nil {
			e.logger.Warn("failed to update lint cache", zap.String("file", filename), zap.Error(err))
		}
	}
	return diagnostics, nil
}

// RunSource applies all lint rules to the given source and returns the
// diagnostics.
func (e *Engine) RunSource(source []byte) ([]tt.Diagnostic, error) {
	return e.runSource("", source)
}

func (e *Engine) runSource(filename string, source []byte) ([]tt.Diagnostic, error) {
	module, err := syntax.Parse(source)
	if err != nil {
		return nil, fmt.Errorf("error parsing file: %w", err)
	}

	diagnostics := checker.Check(filename, source, module, e.registry, checker.Options{
		Disabled: e.ignoredRules,
		Severity: e.severity,
	})

	mgr := nolint.Parse(module, syntax.NewLocator(source))
	return filterNolintDiagnostics(diagnostics, mgr), nil
}

// filterNolintDiagnostics drops diagnostics suppressed by nolint comments.
func filterNolintDiagnostics(diagnostics []tt.Diagnostic, mgr *nolint.Manager) []tt.Diagnostic {
	filtered := make([]tt.Diagnostic, 0, len(diagnostics))
	for _, d := range diagnostics {
		if !mgr.IsNolint(d.Start.Line, d.Rule) {
			filtered = append(filtered, d)
		}
	}
	return filtered
}
