// Package symtab implements the symbol table built by the Symbol Table
// Build Pass and consulted by DeclDefMatch and DefUse.
package symtab

import "github.com/jaclang-dev/jacc/internal/ast"

// Kind classifies what a Symbol names.
type Kind int

const (
	KindVariable Kind = iota
	KindFunction
	KindArchObject
	KindArchNode
	KindArchEdge
	KindArchWalker
	KindAbility
	KindImportAlias
)

func (k Kind) String() string {
	switch k {
	case KindFunction:
		return "function"
	case KindArchObject:
		return "object"
	case KindArchNode:
		return "node"
	case KindArchEdge:
		return "edge"
	case KindArchWalker:
		return "walker"
	case KindAbility:
		return "ability"
	case KindImportAlias:
		return "import-alias"
	default:
		return "variable"
	}
}

// Access mirrors ast.Access; duplicated here so symtab has no import-time
// dependency surprises when Symbol outlives the declaring node's subtree.
type Access = ast.Access

// Symbol is one name binding: an identifier bound to a declaring node and,
// once DeclDefMatch has run, an optional separate definition node.
type Symbol struct {
	Name     string
	Kind     Kind
	Type     string // opaque type annotation string at this stage
	Decl     ast.Node
	Def      ast.Node // nil until DeclDefMatch links it
	Access   Access
}

// Table is one lexical scope: a flat identifier→Symbol map plus a
// lookup-only link to the enclosing scope. Tables form a tree mirroring the
// lexical-scope tree.
type Table struct {
	symbols map[string]*Symbol
	parent  *Table
	children []*Table
	owner   ast.Node // the scope-creating node this table annotates
}

// New creates the root (module) scope.
func New(owner ast.Node) *Table {
	return &Table{symbols: make(map[string]*Symbol), owner: owner}
}

// NewChild creates a scope nested inside parent, owned by owner.
func (t *Table) NewChild(owner ast.Node) *Table {
	child := &Table{symbols: make(map[string]*Symbol), parent: t, owner: owner}
	t.children = append(t.children, child)
	return child
}

func (t *Table) Parent() *Table  { return t.parent }
func (t *Table) Owner() ast.Node { return t.owner }

// Define inserts sym under its own Name in this scope. It does not check
// for a prior binding; callers that must diagnose redeclaration should
// check DeclaredHere first (see passes/symtable). Names are kept exactly as
// written — unlike go-dws's Pascal-derived case-insensitive symbol table,
// the target language is case-sensitive, so `Foo` and `foo` are distinct
// identifiers here.
func (t *Table) Define(sym *Symbol) {
	t.symbols[sym.Name] = sym
}

// DeclaredHere reports whether name is already bound in this scope only
// (not any parent).
func (t *Table) DeclaredHere(name string) (*Symbol, bool) {
	s, ok := t.symbols[name]
	return s, ok
}

// Lookup walks this scope and its parents outward until a binding for name
// is found, or returns (nil, false) at the module boundary.
func (t *Table) Lookup(name string) (*Symbol, bool) {
	if s, ok := t.symbols[name]; ok {
		return s, true
	}
	if t.parent != nil {
		return t.parent.Lookup(name)
	}
	return nil, false
}

// All returns every symbol visible from this scope (current scope entries
// override same-named outer ones), used by tooling that wants a flat view.
func (t *Table) All() map[string]*Symbol {
	out := make(map[string]*Symbol)
	if t.parent != nil {
		for k, v := range t.parent.All() {
			out[k] = v
		}
	}
	for k, v := range t.symbols {
		out[k] = v
	}
	return out
}
