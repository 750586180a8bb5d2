// Package subnodetable implements the SubNodeTable pass:
// for every node N, index N's transitive descendants by kind so later
// passes can query a subtree in O(1) instead of re-walking it.
package subnodetable

import (
	"github.com/jaclang-dev/jacc/internal/ast"
	"github.com/jaclang-dev/jacc/internal/pass"
)

// Pass populates sema.Info.SubNodes for every node in the tree.
type Pass struct{}

// New creates the SubNodeTable pass.
func New() *Pass { return &Pass{} }

func (p *Pass) Name() string { return "SubNodeTable" }

// Run walks module once, bottom-up, building each node's table from its
// direct children's already-built tables plus the children themselves —
// one post-order traversal does the whole module.
func (p *Pass) Run(module *ast.Module, ctx *pass.Context) error {
	build(module, ctx)
	return nil
}

// build returns n's own kind->descendants table after populating it (and
// every descendant's) into ctx.Info.
func build(n ast.Node, ctx *pass.Context) map[ast.Kind][]ast.Node {
	tab := make(map[ast.Kind][]ast.Node)
	for _, c := range n.Children() {
		if c == nil {
			continue
		}
		tab[c.Kind()] = append(tab[c.Kind()], c)
		childTab := build(c, ctx)
		for k, nodes := range childTab {
			tab[k] = append(tab[k], nodes...)
		}
	}
	ctx.Info.SetSubNodeTable(n, tab)
	return tab
}
