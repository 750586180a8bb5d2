package decldefmatch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jaclang-dev/jacc/internal/ast"
	"github.com/jaclang-dev/jacc/internal/parser"
	"github.com/jaclang-dev/jacc/internal/pass"
	"github.com/jaclang-dev/jacc/internal/passes/symtable"
)

func run(t *testing.T, src string) *pass.Context {
	t.Helper()
	mod, errs := parser.Parse("t.jac", "t", src)
	if len(errs) > 0 {
		t.Fatalf("parse errors: %v", errs)
	}
	ctx := pass.NewContext("t.jac")
	p := New(nil)
	if err := p.Run(mod, ctx); err != nil {
		t.Fatalf("decldefmatch: %v", err)
	}
	return ctx
}

// Decl without def: a forward declaration with no matching out-of-line
// definition anywhere yields exactly one warning keyed to the declaration.
func TestDeclWithoutDefinitionWarns(t *testing.T) {
	ctx := run(t, `can greet() -> str;`)

	assert.Empty(t, ctx.Errors)
	assert.Len(t, ctx.Warnings, 1)
	assert.Contains(t, ctx.Warnings[0].Message, "declaration without definition")
	assert.Contains(t, ctx.Warnings[0].Message, "greet")
}

func TestMatchedDeclAndDefLinkEachOther(t *testing.T) {
	mod, errs := parser.Parse("t.jac", "t", `
object Foo {
    can greet() -> str;
}
:can:Foo.greet { return "hi"; }
`)
	if len(errs) > 0 {
		t.Fatalf("parse errors: %v", errs)
	}
	ctx := pass.NewContext("t.jac")
	p := New(nil)
	if err := p.Run(mod, ctx); err != nil {
		t.Fatalf("decldefmatch: %v", err)
	}
	assert.Empty(t, ctx.Errors)
	assert.Empty(t, ctx.Warnings)

	var decl *ast.Ability
	var spec *ast.AbilitySpec
	for _, item := range mod.Elems.Items {
		if arch, ok := item.(*ast.Architype); ok {
			for _, m := range arch.Body.Members {
				if a, ok := m.(*ast.Ability); ok {
					decl = a
				}
			}
		}
		if s, ok := item.(*ast.AbilitySpec); ok {
			spec = s
		}
	}
	assert.NotNil(t, decl)
	assert.NotNil(t, spec)
	assert.Same(t, spec, decl.DefLink)
	assert.Same(t, decl, spec.DeclLink)
}

// Matching a declaration to its definition must also merge their symbols
// (spec §4.5 step 2), not just cross-link the AST nodes — a reference that
// resolves to the declaration's Symbol should be able to reach the body
// through Symbol.Def.
func TestMatchedDeclAndDefMergeSymbol(t *testing.T) {
	mod, errs := parser.Parse("t.jac", "t", `
object Foo {
    can greet() -> str;
}
:can:Foo.greet { return "hi"; }
`)
	require.Empty(t, errs)

	ctx := pass.NewContext("t.jac")
	require.NoError(t, symtable.New().Run(mod, ctx))
	require.NoError(t, New(nil).Run(mod, ctx))

	var decl *ast.Ability
	var spec *ast.AbilitySpec
	for _, item := range mod.Elems.Items {
		if arch, ok := item.(*ast.Architype); ok {
			for _, m := range arch.Body.Members {
				if a, ok := m.(*ast.Ability); ok {
					decl = a
				}
			}
		}
		if s, ok := item.(*ast.AbilitySpec); ok {
			spec = s
		}
	}
	require.NotNil(t, decl)
	require.NotNil(t, spec)

	sym, ok := ctx.Info.Symbol(decl.Name)
	require.True(t, ok, "Symbol Table pass must have bound greet's declaring node")
	assert.Same(t, spec, sym.Def, "matching decl/def must populate Symbol.Def")
}

func TestDefinitionWithoutDeclarationErrors(t *testing.T) {
	ctx := run(t, `:can:Foo.greet { return "hi"; }`)

	assert.Len(t, ctx.Errors, 1)
	assert.Contains(t, ctx.Errors[0].Message, "definition without declaration")
}
