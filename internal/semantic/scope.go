package semantic

import "github.com/typelint/typelint/internal/syntax"

// BindingKind records how a name was introduced into its scope.
type BindingKind int

const (
	BindingImport BindingKind = iota
	BindingFromImport
	BindingAssignment
	BindingAnnotation
	BindingParameter
	BindingFunction
	BindingClass
	BindingComprehensionVar
)

func (k BindingKind) String() string {
	switch k {
	case BindingImport:
		return "import"
	case BindingFromImport:
		return "from-import"
	case BindingAssignment:
		return "assignment"
	case BindingAnnotation:
		return "annotation"
	case BindingParameter:
		return "parameter"
	case BindingFunction:
		return "function"
	case BindingClass:
		return "class"
	case BindingComprehensionVar:
		return "comprehension-var"
	}
	return "unknown"
}

// Binding is one name bound in a scope. For import bindings, Origin holds the
// canonical dotted path the name refers to; for everything else it is nil.
type Binding struct {
	Name   string
	Kind   BindingKind
	Origin []string
	Range  syntax.TextRange
	// Shadows is the binding this one replaced in the same scope, if any.
	Shadows *Binding
}

// IsImport reports whether the binding came from an import statement.
func (b *Binding) IsImport() bool {
	return b.Kind == BindingImport || b.Kind == BindingFromImport
}

// ScopeKind is the lexical region kind a scope covers.
type ScopeKind int

const (
	ScopeModule ScopeKind = iota
	ScopeFunction
	ScopeClass
	ScopeLambda
	ScopeComprehension
)

func (k ScopeKind) String() string {
	switch k {
	case ScopeModule:
		return "module"
	case ScopeFunction:
		return "function"
	case ScopeClass:
		return "class"
	case ScopeLambda:
		return "lambda"
	case ScopeComprehension:
		return "comprehension"
	}
	return "unknown"
}

// Scope is a lexical region with a binding table and a parent. Scopes form a
// tree rooted at the module scope; each scope is owned by its parent.
type Scope struct {
	kind     ScopeKind
	bindings map[string]*Binding
	parent   *Scope
}

func NewScope(kind ScopeKind, parent *Scope) *Scope {
	return &Scope{
		kind:     kind,
		bindings: make(map[string]*Binding),
		parent:   parent,
	}
}

func (s *Scope) Kind() ScopeKind { return s.kind }

func (s *Scope) Parent() *Scope { return s.parent }

// Bind introduces or rebinds a name in this scope. A rebinding remembers what
// it shadowed so rules can ask about ambiguity.
func (s *Scope) Bind(b *Binding) {
	if prev, ok := s.bindings[b.Name]; ok {
		b.Shadows = prev
	}
	s.bindings[b.Name] = b
}

// Get returns the binding for name in this scope only.
func (s *Scope) Get(name string) (*Binding, bool) {
	b, ok := s.bindings[name]
	return b, ok
}

// Names returns the number of names bound in this scope.
func (s *Scope) Names() int { return len(s.bindings) }
