// Package defuse implements the DefUse Pass: resolves every
// name reference against the scope tree built by the Symbol Table pass,
// attaching exactly one of a resolved Symbol or an unresolved-name
// diagnostic to each reference node, never neither and never both.
//
// Grounded on go-dws's type_resolution_pass.go (walks expressions,
// resolves identifiers against SymbolTable.Resolve, reports on miss),
// generalized to Jac's richer reference-node vocabulary:
// plain Name uses, the `:g:` global-bypass form, and the kind-qualified
// :node:/:edge:/:walker:/:func:/:obj:/:can: references.
package defuse

import (
	"github.com/jaclang-dev/jacc/internal/ast"
	"github.com/jaclang-dev/jacc/internal/diag"
	"github.com/jaclang-dev/jacc/internal/pass"
	"github.com/jaclang-dev/jacc/internal/symtab"
)

// Pass resolves every reference node against the scope tree.
type Pass struct{}

// New creates the DefUse pass.
func New() *Pass { return &Pass{} }

func (p *Pass) Name() string { return "DefUse" }

// Run resolves every reference reachable from module. The Symbol Table
// pass must have already run: Run reads module's scope tree through
// ctx.Info.ScopeOf rather than building one.
func (p *Pass) Run(module *ast.Module, ctx *pass.Context) error {
	root, ok := ctx.Info.ScopeOf(module)
	if !ok {
		return nil // nothing to resolve against; Symbol Table pass didn't run
	}

	w := &walker{ctx: ctx, scope: root}
	pass.Walk(module, w.enter, w.exit)
	return nil
}

type walker struct {
	ctx   *pass.Context
	scope *symtab.Table
}

// scopeCreating must name exactly the node kinds the Symbol Table pass
// pushed a scope for (see symtable.scopeCreating) — ArchBlock is excluded
// for the same reason.
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
		if child, ok := w.ctx.Info.ScopeOf(n); ok {
			w.scope = child
		}
	}

	switch node := n.(type) {
	case *ast.Name:
		w.resolveName(node)
	case *ast.GlobalRef:
		w.resolveIn(rootScope(w.scope), node, nameOf(node.Name))
	case *ast.NodeRef:
		w.resolveIn(w.scope, node, nameOf(node.Name))
	case *ast.EdgeRef:
		w.resolveIn(w.scope, node, nameOf(node.Name))
	case *ast.WalkerRef:
		w.resolveIn(w.scope, node, nameOf(node.Name))
	case *ast.FuncRef:
		w.resolveIn(w.scope, node, nameOf(node.Name))
	case *ast.ObjectRef:
		w.resolveIn(w.scope, node, nameOf(node.Name))
	case *ast.AbilityRef:
		w.resolveIn(w.scope, node, nameOf(node.Name))
	}
}

func (w *walker) exit(n ast.Node) {
	if scopeCreating(n) && n.Kind() != ast.KModule {
		if _, ok := w.ctx.Info.ScopeOf(n); ok {
			if w.scope.Parent() != nil {
				w.scope = w.scope.Parent()
			}
		}
	}
}

func nameOf(n *ast.Name) string {
	if n == nil {
		return ""
	}
	return n.Value
}

// resolveName handles a bare Name node. Declaring occurrences already carry
// a Symbol from the Symbol Table pass and are skipped; a Name wrapped by a
// kind-qualified reference or used as an AtomTrailer attribute is resolved
// by its parent instead, not here.
func (w *walker) resolveName(n *ast.Name) {
	if _, declared := w.ctx.Info.Symbol(n); declared {
		return
	}
	if skipAsChild(n) {
		return
	}
	w.resolveIn(w.scope, n, n.Value)
}

// skipAsChild reports whether n is a Name nested inside a node that
// resolves it as a unit rather than as an independent use.
func skipAsChild(n *ast.Name) bool {
	switch parent := n.Parent().(type) {
	case *ast.GlobalRef, *ast.NodeRef, *ast.EdgeRef, *ast.WalkerRef,
		*ast.FuncRef, *ast.ObjectRef, *ast.AbilityRef:
		return true
	case *ast.AtomTrailer:
		return parent.Attr == n
	}
	return false
}

func rootScope(t *symtab.Table) *symtab.Table {
	for t.Parent() != nil {
		t = t.Parent()
	}
	return t
}

// resolveIn looks up name starting at scope and attaches the result to ref:
// a Symbol on success, an unresolved-name diagnostic on failure — never
// both.
func (w *walker) resolveIn(scope *symtab.Table, ref ast.Node, name string) {
	if name == "" {
		return
	}
	if sym, ok := scope.Lookup(name); ok {
		w.ctx.Info.SetSymbol(ref, sym)
		return
	}
	w.ctx.Report(diag.NewUnresolvedName(ref, name, ref.Span().Start))
}
