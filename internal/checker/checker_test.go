package checker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/typelint/typelint/internal/semantic"
	"github.com/typelint/typelint/internal/syntax"
	tt "github.com/typelint/typelint/internal/types"
)

func check(t *testing.T, src string, registry *Registry, opts Options) []tt.Diagnostic {
	t.Helper()
	module, err := syntax.Parse([]byte(src))
	require.NoError(t, err)
	return Check("test.py", []byte(src), module, registry, opts)
}

func TestDispatchByNodeKind(t *testing.T) {
	t.Parallel()

	var names, binops int
	registry := NewRegistry()
	registry.Register("count-names", []syntax.NodeKind{syntax.KindName}, func(c *Checker, node syntax.Node) {
		names++
	})
	registry.Register("count-binops", []syntax.NodeKind{syntax.KindBinOp}, func(c *Checker, node syntax.Node) {
		binops++
	})

	check(t, "x = a | b\n", registry, Options{})
	assert.Equal(t, 3, names, "x, a and b")
	assert.Equal(t, 1, binops)
}

func TestReportFillsBookkeeping(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	registry.Register("flag-none", []syntax.NodeKind{syntax.KindNone}, func(c *Checker, node syntax.Node) {
		c.Report(tt.Diagnostic{Range: node.Range(), Message: "found None"})
	})

	diagnostics := check(t, "x = None\n", registry, Options{})
	require.Len(t, diagnostics, 1)

	d := diagnostics[0]
	assert.Equal(t, "flag-none", d.Rule)
	assert.Equal(t, "test.py", d.Filename)
	assert.Equal(t, 1, d.Start.Line)
	assert.Equal(t, 5, d.Start.Column)
	assert.Equal(t, 4, d.Range.Start)
	assert.Equal(t, 8, d.Range.End)
}

func TestDisabledRuleSkipped(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	registry.Register("flag-none", []syntax.NodeKind{syntax.KindNone}, func(c *Checker, node syntax.Node) {
		c.Report(tt.Diagnostic{Range: node.Range(), Message: "found None"})
	})

	diagnostics := check(t, "x = None\n", registry, Options{
		Disabled: map[string]bool{"flag-none": true},
	})
	assert.Empty(t, diagnostics)
}

func TestSeverityOverride(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	registry.Register("flag-none", []syntax.NodeKind{syntax.KindNone}, func(c *Checker, node syntax.Node) {
		c.Report(tt.Diagnostic{Range: node.Range(), Message: "found None"})
	})

	diagnostics := check(t, "x = None\n", registry, Options{
		Severity: map[string]tt.Severity{"flag-none": tt.SeverityWarning},
	})
	require.Len(t, diagnostics, 1)
	assert.Equal(t, tt.SeverityWarning, diagnostics[0].Severity)
}

func TestImportBindings(t *testing.T) {
	t.Parallel()

	type seen struct {
		origin []string
		kind   semantic.BindingKind
	}
	found := make(map[string]seen)

	registry := NewRegistry()
	registry.Register("sample", []syntax.NodeKind{syntax.KindPass}, func(c *Checker, node syntax.Node) {
		for _, name := range []string{"typing", "t", "Never", "N", "os"} {
			if b, ok := c.Semantic().LookupBinding(name); ok {
				found[name] = seen{origin: b.Origin, kind: b.Kind}
			}
		}
	})

	src := `import typing
import typing as t
import os.path
from typing import Never
from typing import Never as N
pass
`
	check(t, src, registry, Options{})

	require.Contains(t, found, "typing")
	assert.Equal(t, []string{"typing"}, found["typing"].origin)

	require.Contains(t, found, "t")
	assert.Equal(t, []string{"typing"}, found["t"].origin)

	// `import os.path` binds `os`, not `os.path`
	require.Contains(t, found, "os")
	assert.Equal(t, []string{"os"}, found["os"].origin)

	require.Contains(t, found, "Never")
	assert.Equal(t, []string{"typing", "Never"}, found["Never"].origin)
	assert.Equal(t, semantic.BindingFromImport, found["Never"].kind)

	require.Contains(t, found, "N")
	assert.Equal(t, []string{"typing", "Never"}, found["N"].origin)
}

func TestAnnotationsWalkInEnclosingScope(t *testing.T) {
	t.Parallel()

	var resolved bool
	registry := NewRegistry()
	registry.Register("resolve", []syntax.NodeKind{syntax.KindName}, func(c *Checker, node syntax.Node) {
		name := node.(*syntax.Name)
		if name.ID != "Never" {
			return
		}
		if c.Semantic().MatchTypingExpr(name, "Never") {
			resolved = true
		}
	})

	src := `from typing import Never
def f() -> Never:
    pass
`
	check(t, src, registry, Options{})
	assert.True(t, resolved, "return annotation resolves against the module scope")
}

func TestFunctionScopeShadowing(t *testing.T) {
	t.Parallel()

	kinds := make(map[int]semantic.BindingKind)
	registry := NewRegistry()
	registry.Register("sample", []syntax.NodeKind{syntax.KindPass}, func(c *Checker, node syntax.Node) {
		if b, ok := c.Semantic().LookupBinding("Never"); ok {
			kinds[node.Range().Start] = b.Kind
		}
	})

	src := `from typing import Never
def f(Never):
    pass
pass
`
	check(t, src, registry, Options{})
	require.Len(t, kinds, 2)

	var sawParam, sawImport bool
	for _, kind := range kinds {
		switch kind {
		case semantic.BindingParameter:
			sawParam = true
		case semantic.BindingFromImport:
			sawImport = true
		}
	}
	assert.True(t, sawParam, "inside f the parameter shadows the import")
	assert.True(t, sawImport, "at module level the import is visible")
}

func TestClassScopeSkippedInLookup(t *testing.T) {
	t.Parallel()

	var inMethod, inBody *semantic.Binding
	registry := NewRegistry()
	registry.Register("sample", []syntax.NodeKind{syntax.KindPass}, func(c *Checker, node syntax.Node) {
		b, _ := c.Semantic().LookupBinding("attr")
		if c.Semantic().CurrentScope().Kind() == semantic.ScopeFunction {
			inMethod = b
		} else {
			inBody = b
		}
	})

	src := `class C:
    attr = 1
    pass
    def m(self):
        pass
`
	check(t, src, registry, Options{})
	assert.NotNil(t, inBody, "class body sees its own bindings")
	assert.Nil(t, inMethod, "methods do not see class-body bindings")
}

func TestAncestorStackDuringWalk(t *testing.T) {
	t.Parallel()

	chains := make(map[string][]syntax.NodeKind)
	registry := NewRegistry()
	registry.Register("capture", []syntax.NodeKind{syntax.KindName}, func(c *Checker, node syntax.Node) {
		var kinds []syntax.NodeKind
		for _, anc := range c.Semantic().Ancestors() {
			kinds = append(kinds, anc.Kind())
		}
		chains[node.(*syntax.Name).ID] = kinds
	})

	check(t, "x = a | b\n", registry, Options{})

	assert.Equal(t, []syntax.NodeKind{
		syntax.KindAssign, syntax.KindModule,
	}, chains["x"])
	for _, id := range []string{"a", "b"} {
		assert.Equal(t, []syntax.NodeKind{
			syntax.KindBinOp, syntax.KindAssign, syntax.KindModule,
		}, chains[id])
	}
}

func TestLambdaAndComprehensionScopes(t *testing.T) {
	t.Parallel()

	scopes := make(map[string]semantic.ScopeKind)
	registry := NewRegistry()
	registry.Register("capture", []syntax.NodeKind{syntax.KindName}, func(c *Checker, node syntax.Node) {
		scopes[node.(*syntax.Name).ID] = c.Semantic().CurrentScope().Kind()
	})

	check(t, "f = lambda v: v\n", registry, Options{})
	assert.Equal(t, semantic.ScopeLambda, scopes["v"])

	check(t, "xs = [y for y in items]\n", registry, Options{})
	assert.Equal(t, semantic.ScopeComprehension, scopes["y"])
	assert.Equal(t, semantic.ScopeComprehension, scopes["items"])
}
