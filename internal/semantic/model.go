package semantic

import "github.com/typelint/typelint/internal/syntax"

// Model is the per-file semantic state rules query mid-walk: the live scope
// stack and the live ancestor stack. Both stacks are pushed and popped
// exclusively by the traversal engine; rules only read. They always mirror
// the traversal's current descent exactly.
type Model struct {
	scopes    []*Scope
	ancestors []syntax.Node
}

// NewModel creates a model with the module scope already open.
func NewModel() *Model {
	return &Model{scopes: []*Scope{NewScope(ScopeModule, nil)}}
}

// ---------------------------------------------------------------------------
// stack discipline (traversal engine only)

// PushScope opens a new scope as a child of the current one.
func (m *Model) PushScope(kind ScopeKind) *Scope {
	scope := NewScope(kind, m.CurrentScope())
	m.scopes = append(m.scopes, scope)
	return scope
}

// PopScope closes the innermost scope. The module scope is never popped.
func (m *Model) PopScope() {
	if len(m.scopes) > 1 {
		m.scopes = m.scopes[:len(m.scopes)-1]
	}
}

// PushAncestor records descent into node.
func (m *Model) PushAncestor(node syntax.Node) {
	m.ancestors = append(m.ancestors, node)
}

// PopAncestor records ascent out of the current node.
func (m *Model) PopAncestor() {
	if len(m.ancestors) > 0 {
		m.ancestors = m.ancestors[:len(m.ancestors)-1]
	}
}

// ---------------------------------------------------------------------------
// read-only queries (rules)

// CurrentScope returns the innermost active scope.
func (m *Model) CurrentScope() *Scope {
	return m.scopes[len(m.scopes)-1]
}

// ModuleScope returns the file's outermost scope.
func (m *Model) ModuleScope() *Scope {
	return m.scopes[0]
}

// CurrentNode returns the node currently under analysis.
func (m *Model) CurrentNode() syntax.Node {
	if len(m.ancestors) == 0 {
		return nil
	}
	return m.ancestors[len(m.ancestors)-1]
}

// Ancestors returns a snapshot of the current node's syntactic ancestors from
// innermost to outermost, excluding the node itself. The snapshot reflects
// only the current traversal position and is not retained across steps.
func (m *Model) Ancestors() []syntax.Node {
	if len(m.ancestors) < 2 {
		return nil
	}
	out := make([]syntax.Node, 0, len(m.ancestors)-1)
	for i := len(m.ancestors) - 2; i >= 0; i-- {
		out = append(out, m.ancestors[i])
	}
	return out
}

// ExpressionAncestors returns the current node's expression ancestors,
// innermost first, stopping at the first ancestor that is not an expression
// (the statement boundary). Intervening parenthesization produces no node
// and therefore never breaks the chain.
func (m *Model) ExpressionAncestors() []syntax.Expr {
	var out []syntax.Expr
	for _, anc := range m.Ancestors() {
		expr, ok := anc.(syntax.Expr)
		if !ok {
			break
		}
		out = append(out, expr)
	}
	return out
}

// AncestorsWhile walks ancestors innermost-first while pred holds, returning
// the last ancestor that satisfied it. The walk stops at the first ancestor
// that breaks the condition, not at the first non-matching element globally.
func (m *Model) AncestorsWhile(pred func(syntax.Node) bool) syntax.Node {
	var last syntax.Node
	for _, anc := range m.Ancestors() {
		if !pred(anc) {
			break
		}
		last = anc
	}
	return last
}

// LookupBinding resolves name against the active scope chain, innermost
// first. Class scopes other than the innermost are skipped: names bound in a
// class body are not visible to code nested inside it.
func (m *Model) LookupBinding(name string) (*Binding, bool) {
	for i := len(m.scopes) - 1; i >= 0; i-- {
		scope := m.scopes[i]
		if scope.Kind() == ScopeClass && i != len(m.scopes)-1 {
			continue
		}
		if b, ok := scope.Get(name); ok {
			return b, true
		}
	}
	return nil, false
}

// IsBoundAtModuleScope reports whether name is bound in the module scope.
func (m *Model) IsBoundAtModuleScope(name string) bool {
	_, ok := m.ModuleScope().Get(name)
	return ok
}

// IsShadowed reports whether the binding visible for name replaced an earlier
// binding in the same scope.
func (m *Model) IsShadowed(name string) bool {
	b, ok := m.LookupBinding(name)
	return ok && b.Shadows != nil
}

// ResolveQualifiedName determines the canonical path an expression denotes,
// if it can be statically determined from bindings visible in the current
// scope chain. Identifier and attribute chains are supported; anything whose
// root binding is not an import resolves to nothing.
func (m *Model) ResolveQualifiedName(expr syntax.Expr) (QualifiedName, bool) {
	root, tail, ok := unrollAttributeChain(expr)
	if !ok {
		return QualifiedName{}, false
	}
	binding, ok := m.LookupBinding(root.ID)
	if !ok || !binding.IsImport() {
		return QualifiedName{}, false
	}
	return NewQualifiedName(binding.Origin...).Append(tail...), true
}

// unrollAttributeChain walks `a.b.c` outward to its root identifier,
// returning the root and the remaining attribute segments in order.
func unrollAttributeChain(expr syntax.Expr) (*syntax.Name, []string, bool) {
	var tail []string
	for {
		switch e := expr.(type) {
		case *syntax.Name:
			return e, tail, true
		case *syntax.Attribute:
			tail = append([]string{e.Attr}, tail...)
			expr = e.Value
		default:
			return nil, nil, false
		}
	}
}
