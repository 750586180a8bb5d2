// Package symtable implements the Symbol Table Build Pass:
// constructs the scope tree and binds every declaring construct into the
// scope active when it is visited.
//
// Grounded on go-dws's internal/semantic.SymbolTable (map + outer
// parent, Resolve walks outward) and internal/semantic/passes.PassContext's
// ScopeKind-tagged scope stack, generalized from DWScript's
// Global/Function/Block scopes to Jac's Module/Architype-or-Ability/
// CodeBlock scope-creating nodes.
package symtable

import (
	"github.com/jaclang-dev/jacc/internal/ast"
	"github.com/jaclang-dev/jacc/internal/diag"
	"github.com/jaclang-dev/jacc/internal/pass"
	"github.com/jaclang-dev/jacc/internal/symtab"
)

// Pass builds the scope tree and inserts every declaring symbol.
type Pass struct{}

// New creates the Symbol Table Build pass.
func New() *Pass { return &Pass{} }

func (p *Pass) Name() string { return "Symbol Table Build" }

// Run constructs scopes over the scope-creating node set and
// inserts every declaring construct's Symbol into the scope active at the
// point it is visited.
func (p *Pass) Run(module *ast.Module, ctx *pass.Context) error {
	root := symtab.New(module)
	ctx.Info.SetScope(module, root)

	w := &walker{ctx: ctx, scope: root}
	pass.Walk(module, w.enter, w.exit)
	return nil
}

type walker struct {
	ctx   *pass.Context
	scope *symtab.Table
}

// scopeCreating reports whether n pushes a new lexical scope on entry.
// ArchBlock is deliberately absent: it is a syntactic brace grouping around
// an architype's members, not a distinct binding scope — a has-var must
// land in the same scope as its owning architype's own name, not one layer
// further in, or every method referencing an instance field would need a
// scope chain that walks through a level nothing outside this pass knows
// about.
func scopeCreating(n ast.Node) bool {
	switch n.Kind() {
	case ast.KModule, ast.KArchitype, ast.KAbility, ast.KCodeBlock:
		return true
	default:
		return false
	}
}

func (w *walker) enter(n ast.Node) {
	if scopeCreating(n) && n.Kind() != ast.KModule {
		child := w.scope.NewChild(n)
		w.ctx.Info.SetScope(n, child)
		w.scope = child
	}

	switch node := n.(type) {
	case *ast.GlobalVars:
		for _, name := range node.Names {
			w.define(name, name.Value, symtab.KindVariable, n, node.Access)
		}
	case *ast.HasVar:
		w.define(node.Name, node.Name.Value, symtab.KindVariable, n, ast.AccessPublic)
	case *ast.ParamVar:
		w.define(node.Name, node.Name.Value, symtab.KindVariable, n, ast.AccessPublic)
	case *ast.Architype:
		kind := symtab.KindArchObject
		switch node.ArchKind {
		case ast.ArchNode:
			kind = symtab.KindArchNode
		case ast.ArchEdge:
			kind = symtab.KindArchEdge
		case ast.ArchWalker:
			kind = symtab.KindArchWalker
		}
		w.defineInParent(node.Name, node.Name.Value, kind, n, node.Access)
	case *ast.Ability:
		w.defineInParent(node.Name, node.Name.Value, symtab.KindAbility, n, node.Access)
	case *ast.Import:
		for _, item := range node.Items {
			alias := item.Alias
			if alias == "" {
				alias = item.Name
			}
			w.defineInParent(item, alias, symtab.KindImportAlias, n, ast.AccessPublic)
		}
	}
}

func (w *walker) exit(n ast.Node) {
	if scopeCreating(n) && n.Kind() != ast.KModule {
		if parent := w.scope.Parent(); parent != nil {
			w.scope = parent
		}
	}
}

// define inserts a symbol into the currently active scope, diagnosing a
// redeclaration if one is already bound there.
func (w *walker) define(declNode ast.Node, name string, kind symtab.Kind, node ast.Node, access ast.Access) {
	w.insertInto(w.scope, declNode, name, kind, node, access)
}

// defineInParent inserts into the scope active *before* node pushed its own
// child scope (if any) — Architype/Ability/Import names belong to the
// enclosing scope, not the scope they themselves introduce.
func (w *walker) defineInParent(declNode ast.Node, name string, kind symtab.Kind, node ast.Node, access ast.Access) {
	target := w.scope
	if scopeCreating(node) && node.Kind() != ast.KModule && target.Owner() == node {
		if target.Parent() != nil {
			target = target.Parent()
		}
	}
	w.insertInto(target, declNode, name, kind, node, access)
}

func (w *walker) insertInto(scope *symtab.Table, declNode ast.Node, name string, kind symtab.Kind, node ast.Node, access ast.Access) {
	if existing, ok := scope.DeclaredHere(name); ok {
		w.ctx.Report(diag.NewRedeclaration(declNode, name, declNode.Span().Start, existing.Decl.Span().Start))
		return
	}
	sym := &symtab.Symbol{Name: name, Kind: kind, Decl: declNode, Access: access}
	scope.Define(sym)
	w.ctx.Info.SetSymbol(declNode, sym)
}
