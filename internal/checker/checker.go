package checker

import (
	"github.com/typelint/typelint/internal/semantic"
	"github.com/typelint/typelint/internal/syntax"
	tt "github.com/typelint/typelint/internal/types"
)

// RuleFunc is the only interface individual rules use: read semantic state
// through the checker handle and push zero or more diagnostics. Rules must
// not mutate the tree or semantic state; a rule that cannot determine
// applicability returns without emitting.
type RuleFunc func(c *Checker, node syntax.Node)

type registeredRule struct {
	name string
	fn   RuleFunc
}

// Registry is a static dispatch table mapping node kinds to the rules
// interested in them.
type Registry struct {
	byKind map[syntax.NodeKind][]registeredRule
	names  []string
}

func NewRegistry() *Registry {
	return &Registry{byKind: make(map[syntax.NodeKind][]registeredRule)}
}

// Register attaches a rule to every node kind it wants to see.
func (r *Registry) Register(name string, kinds []syntax.NodeKind, fn RuleFunc) {
	for _, kind := range kinds {
		r.byKind[kind] = append(r.byKind[kind], registeredRule{name: name, fn: fn})
	}
	r.names = append(r.names, name)
}

// RuleNames returns every registered rule name in registration order.
func (r *Registry) RuleNames() []string {
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}

// Options selects which rules run and at which severity they report.
type Options struct {
	// Disabled rules are skipped during dispatch. Nil disables nothing.
	Disabled map[string]bool
	// Severity overrides the default (error) per rule name.
	Severity map[string]tt.Severity
}

// Checker drives a single depth-first walk of one file's tree, maintaining
// the ancestor and scope stacks in strict LIFO order and dispatching every
// registered rule applicable to each node kind.
type Checker struct {
	filename    string
	locator     *syntax.Locator
	generator   *syntax.Generator
	model       *semantic.Model
	registry    *Registry
	opts        Options
	currentRule string
	diagnostics []tt.Diagnostic
}

// Check walks the tree once and returns the accumulated diagnostics.
// Traversal never fails on a well-formed tree: one rule's inapplicability
// never suppresses other rules' results.
func Check(filename string, src []byte, module *syntax.Module, registry *Registry, opts Options) []tt.Diagnostic {
	c := &Checker{
		filename:  filename,
		locator:   syntax.NewLocator(src),
		generator: syntax.NewGenerator(),
		model:     semantic.NewModel(),
		registry:  registry,
		opts:      opts,
	}
	c.walk(module)
	return c.diagnostics
}

// Locator gives rules verbatim access to the original source buffer.
func (c *Checker) Locator() *syntax.Locator { return c.locator }

// Generator serializes freshly constructed nodes back into source text.
func (c *Checker) Generator() *syntax.Generator { return c.generator }

// Semantic exposes the read-only semantic model for the current node.
func (c *Checker) Semantic() *semantic.Model { return c.model }

// Slice returns the verbatim source text for a range.
func (c *Checker) Slice(rng syntax.TextRange) string { return c.locator.Slice(rng) }

// Report records a diagnostic for the rule currently being dispatched,
// filling in location bookkeeping.
func (c *Checker) Report(d tt.Diagnostic) {
	if d.Rule == "" {
		d.Rule = c.currentRule
	}
	if sev, ok := c.opts.Severity[d.Rule]; ok {
		d.Severity = sev
	}
	d.Filename = c.filename
	d.Start = c.position(d.Range.Start)
	d.End = c.position(d.Range.End)
	c.diagnostics = append(c.diagnostics, d)
}

func (c *Checker) position(offset int) tt.Position {
	line, col := c.locator.LineCol(offset)
	return tt.Position{Line: line, Column: col, Offset: offset}
}

// walk descends into node. Enter: push ancestor, open a scope if the node
// introduces one, record the bindings the node creates, dispatch rules.
// Leave: pop scope and ancestor in strict LIFO order, which is what keeps
// Ancestors() accurate for every rule invocation.
func (c *Checker) walk(node syntax.Node) {
	c.model.PushAncestor(node)
	defer c.model.PopAncestor()

	switch n := node.(type) {
	case *syntax.FunctionDef:
		c.bindDefinition(n.Name, semantic.BindingFunction, n.NameRng)
		c.dispatch(node)
		// decorators, parameter annotations, defaults, and the return
		// annotation evaluate in the enclosing scope
		for _, dec := range n.Decorators {
			c.walk(dec)
		}
		for _, p := range n.Params {
			if p.Annotation != nil {
				c.walk(p.Annotation)
			}
			if p.Default != nil {
				c.walk(p.Default)
			}
		}
		if n.Returns != nil {
			c.walk(n.Returns)
		}
		c.model.PushScope(semantic.ScopeFunction)
		c.bindParams(n.Params)
		for _, stmt := range n.Body {
			c.walk(stmt)
		}
		c.model.PopScope()
		return

	case *syntax.ClassDef:
		c.bindDefinition(n.Name, semantic.BindingClass, n.NameRng)
		c.dispatch(node)
		for _, dec := range n.Decorators {
			c.walk(dec)
		}
		for _, base := range n.Bases {
			c.walk(base)
		}
		c.model.PushScope(semantic.ScopeClass)
		for _, stmt := range n.Body {
			c.walk(stmt)
		}
		c.model.PopScope()
		return

	case *syntax.Lambda:
		c.dispatch(node)
		for _, p := range n.Params {
			if p.Default != nil {
				c.walk(p.Default)
			}
		}
		c.model.PushScope(semantic.ScopeLambda)
		c.bindParams(n.Params)
		c.walk(n.Body)
		c.model.PopScope()
		return

	case *syntax.ListComp:
		c.dispatch(node)
		c.model.PushScope(semantic.ScopeComprehension)
		for _, clause := range n.Clauses {
			c.walk(clause.Iter)
			c.bindTargets(clause.Target, semantic.BindingComprehensionVar)
			c.walk(clause.Target)
			for _, cond := range clause.Ifs {
				c.walk(cond)
			}
		}
		c.walk(n.Elt)
		c.model.PopScope()
		return

	case *syntax.Import:
		for _, alias := range n.Names {
			c.bindImport(alias)
		}
	case *syntax.ImportFrom:
		for _, alias := range n.Names {
			c.bindFromImport(n, alias)
		}
	case *syntax.Assign:
		for _, target := range n.Targets {
			c.bindTargets(target, semantic.BindingAssignment)
		}
	case *syntax.AnnAssign:
		c.bindTargets(n.Target, semantic.BindingAnnotation)
	}

	c.dispatch(node)
	for _, child := range syntax.Children(node) {
		c.walk(child)
	}
}

// dispatch invokes every enabled rule registered for the node's kind.
func (c *Checker) dispatch(node syntax.Node) {
	for _, rule := range c.registry.byKind[node.Kind()] {
		if c.opts.Disabled[rule.name] {
			continue
		}
		c.currentRule = rule.name
		rule.fn(c, node)
	}
	c.currentRule = ""
}

func (c *Checker) bindDefinition(name string, kind semantic.BindingKind, rng syntax.TextRange) {
	c.model.CurrentScope().Bind(&semantic.Binding{Name: name, Kind: kind, Range: rng})
}

func (c *Checker) bindParams(params []syntax.Param) {
	for _, p := range params {
		c.model.CurrentScope().Bind(&semantic.Binding{
			Name:  p.Name,
			Kind:  semantic.BindingParameter,
			Range: p.Rng,
		})
	}
}

func (c *Checker) bindImport(alias syntax.ImportAlias) {
	origin := alias.Path
	if alias.AsName == "" {
		// `import a.b` binds only `a`, referring to module `a`
		origin = alias.Path[:1]
	}
	c.model.CurrentScope().Bind(&semantic.Binding{
		Name:   alias.BoundName(),
		Kind:   semantic.BindingImport,
		Origin: origin,
		Range:  alias.Rng,
	})
}

func (c *Checker) bindFromImport(stmt *syntax.ImportFrom, alias syntax.ImportAlias) {
	if alias.Path[0] == "*" {
		return // star imports bind nothing resolvable
	}
	origin := make([]string, 0, len(stmt.Module)+1)
	origin = append(origin, stmt.Module...)
	origin = append(origin, alias.Path[0])
	bound := alias.AsName
	if bound == "" {
		bound = alias.Path[0]
	}
	c.model.CurrentScope().Bind(&semantic.Binding{
		Name:   bound,
		Kind:   semantic.BindingFromImport,
		Origin: origin,
		Range:  alias.Rng,
	})
}

// bindTargets records assignment targets, descending through tuple and list
// destructuring.
func (c *Checker) bindTargets(target syntax.Expr, kind semantic.BindingKind) {
	switch t := target.(type) {
	case *syntax.Name:
		c.model.CurrentScope().Bind(&semantic.Binding{Name: t.ID, Kind: kind, Range: t.Rng})
	case *syntax.Tuple:
		for _, elt := range t.Elts {
			c.bindTargets(elt, kind)
		}
	case *syntax.List:
		for _, elt := range t.Elts {
			c.bindTargets(elt, kind)
		}
	case *syntax.Starred:
		c.bindTargets(t.Value, kind)
	}
	// attribute and subscript targets bind nothing in the local scope
}
