package symtable

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jaclang-dev/jacc/internal/ast"
	"github.com/jaclang-dev/jacc/internal/pass"
	"github.com/jaclang-dev/jacc/internal/parser"
)

func parseModule(t *testing.T, src string) *ast.Module {
	t.Helper()
	mod, errs := parser.Parse("t.jac", "t", src)
	if len(errs) > 0 {
		t.Fatalf("parse errors: %v", errs)
	}
	return mod
}

func TestArchitypeNameBindsInEnclosingScope(t *testing.T) {
	mod := parseModule(t, `object Foo {}`)
	ctx := pass.NewContext("t.jac")
	p := New()
	assert.NoError(t, p.Run(mod, ctx))

	root, ok := ctx.Info.ScopeOf(mod)
	assert.True(t, ok)
	_, found := root.Lookup("Foo")
	assert.True(t, found, "architype name must bind in the module scope, not its own body scope")
}

func TestHasVarBindsInArchitypeScope(t *testing.T) {
	mod := parseModule(t, `object Foo { has x: int = 5; }`)
	ctx := pass.NewContext("t.jac")
	p := New()
	assert.NoError(t, p.Run(mod, ctx))

	var arch *ast.Architype
	for _, item := range mod.Elems.Items {
		if a, ok := item.(*ast.Architype); ok {
			arch = a
		}
	}
	assert.NotNil(t, arch)
	archScope, ok := ctx.Info.ScopeOf(arch)
	assert.True(t, ok)
	_, found := archScope.Lookup("x")
	assert.True(t, found)
}

// Two sibling abilities must receive sibling scopes sharing the same
// parent, not one nested inside the other — a regression test for the
// walker's enter/exit scope-stack discipline.
func TestSiblingAbilitiesGetSiblingScopes(t *testing.T) {
	mod := parseModule(t, `
object Foo {
    can a(x: int) { }
    can b(y: int) { }
}
`)
	ctx := pass.NewContext("t.jac")
	p := New()
	assert.NoError(t, p.Run(mod, ctx))

	var abilities []*ast.Ability
	var arch *ast.Architype
	for _, item := range mod.Elems.Items {
		if a, ok := item.(*ast.Architype); ok {
			arch = a
		}
	}
	for _, m := range arch.Body.Members {
		if ab, ok := m.(*ast.Ability); ok {
			abilities = append(abilities, ab)
		}
	}
	assert.Len(t, abilities, 2)

	scopeA, ok := ctx.Info.ScopeOf(abilities[0])
	assert.True(t, ok)
	scopeB, ok := ctx.Info.ScopeOf(abilities[1])
	assert.True(t, ok)

	assert.NotSame(t, scopeA, scopeB)
	assert.Same(t, scopeA.Parent(), scopeB.Parent(), "siblings must pop back to the same enclosing scope")
}

func TestRedeclarationInSameScopeReportsDiagnostic(t *testing.T) {
	mod := parseModule(t, `
global x = 1;
global x = 2;
`)
	ctx := pass.NewContext("t.jac")
	p := New()
	assert.NoError(t, p.Run(mod, ctx))
	assert.Len(t, ctx.Errors, 1)
	assert.Contains(t, ctx.Errors[0].Message, "already declared")
}
