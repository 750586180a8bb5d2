package subnodetable

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jaclang-dev/jacc/internal/ast"
	"github.com/jaclang-dev/jacc/internal/parser"
	"github.com/jaclang-dev/jacc/internal/pass"
)

// A module's own table indexes every descendant transitively, not just its
// direct children.
func TestModuleTableIndexesTransitiveDescendants(t *testing.T) {
	mod, errs := parser.Parse("t.jac", "t", `object Foo { has x: int = 5; }`)
	if len(errs) > 0 {
		t.Fatalf("parse errors: %v", errs)
	}
	ctx := pass.NewContext("t.jac")
	assert.NoError(t, New().Run(mod, ctx))

	archs := ctx.Info.SubNodesOf(mod, ast.KArchitype)
	assert.Len(t, archs, 1)

	hasVars := ctx.Info.SubNodesOf(mod, ast.KHasVar)
	assert.Len(t, hasVars, 1, "the has-var lives two levels below the module but must still appear in its table")
}

// A node with no descendants of a given kind reports no nodes (a nil
// slice, matching SubNodesOf's documented fallback).
func TestLeafNodeHasNoSubNodesOfUnrelatedKind(t *testing.T) {
	mod, errs := parser.Parse("t.jac", "t", `object Foo {}`)
	if len(errs) > 0 {
		t.Fatalf("parse errors: %v", errs)
	}
	ctx := pass.NewContext("t.jac")
	assert.NoError(t, New().Run(mod, ctx))

	var arch *ast.Architype
	for _, item := range mod.Elems.Items {
		if a, ok := item.(*ast.Architype); ok {
			arch = a
		}
	}
	assert.NotNil(t, arch)
	assert.Empty(t, ctx.Info.SubNodesOf(arch, ast.KHasVar))
}

// A node's own table is built from its children's already-built tables, so
// an architype's table must already contain its own has-var before the
// module's table is finished accumulating from the architype.
func TestChildTableIsSubsetOfParentTable(t *testing.T) {
	mod, errs := parser.Parse("t.jac", "t", `object Foo { has x: int = 5; }`)
	if len(errs) > 0 {
		t.Fatalf("parse errors: %v", errs)
	}
	ctx := pass.NewContext("t.jac")
	assert.NoError(t, New().Run(mod, ctx))

	var arch *ast.Architype
	for _, item := range mod.Elems.Items {
		if a, ok := item.(*ast.Architype); ok {
			arch = a
		}
	}
	archHasVars := ctx.Info.SubNodesOf(arch, ast.KHasVar)
	modHasVars := ctx.Info.SubNodesOf(mod, ast.KHasVar)
	assert.Equal(t, archHasVars, modHasVars)
}
