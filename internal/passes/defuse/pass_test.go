package defuse

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jaclang-dev/jacc/internal/ast"
	"github.com/jaclang-dev/jacc/internal/parser"
	"github.com/jaclang-dev/jacc/internal/pass"
	"github.com/jaclang-dev/jacc/internal/passes/symtable"
)

func runThroughDefUse(t *testing.T, src string) (*ast.Module, *pass.Context) {
	t.Helper()
	mod, errs := parser.Parse("t.jac", "t", src)
	if len(errs) > 0 {
		t.Fatalf("parse errors: %v", errs)
	}
	ctx := pass.NewContext("t.jac")
	if err := symtable.New().Run(mod, ctx); err != nil {
		t.Fatalf("symtable pass: %v", err)
	}
	if err := New().Run(mod, ctx); err != nil {
		t.Fatalf("defuse pass: %v", err)
	}
	return mod, ctx
}

// Unresolved name: a reference with no enclosing binding yields exactly one
// diagnostic naming it, and never also resolves to a symbol.
func TestUnresolvedNameReportsExactlyOneDiagnostic(t *testing.T) {
	mod, ctx := runThroughDefUse(t, `with entry { bar; }`)

	assert.Len(t, ctx.Errors, 1)
	assert.Contains(t, ctx.Errors[0].Message, "unresolved name 'bar'")

	var ref *ast.Name
	pass.Walk(mod, func(n ast.Node) {
		if nm, ok := n.(*ast.Name); ok && nm.Value == "bar" {
			ref = nm
		}
	}, nil)
	assert.NotNil(t, ref)
	_, hasSymbol := ctx.Info.Symbol(ref)
	assert.False(t, hasSymbol, "an unresolved reference must never also carry a symbol")
}

func TestResolvedNameCarriesSymbolAndNoDiagnostic(t *testing.T) {
	mod, ctx := runThroughDefUse(t, `
global xs = 1;
with entry { xs; }
`)
	assert.Empty(t, ctx.Errors)

	// The second `xs` in document order is the reference inside `with entry`.
	var refs []*ast.Name
	pass.Walk(mod, func(n ast.Node) {
		if nm, ok := n.(*ast.Name); ok && nm.Value == "xs" {
			refs = append(refs, nm)
		}
	}, nil)
	if assert.Len(t, refs, 2) {
		_, hasSymbol := ctx.Info.Symbol(refs[1])
		assert.True(t, hasSymbol, "a resolved reference must carry its symbol")
	}
}

// Every reference ends up with a symbol xor a diagnostic, never both and
// never neither — checked across every Name in a small mixed module.
func TestEveryReferenceHasExactlyOneOutcome(t *testing.T) {
	mod, ctx := runThroughDefUse(t, `
global known = 1;
with entry {
    known;
    unknown;
}
`)
	var names []*ast.Name
	pass.Walk(mod, func(n ast.Node) {
		if nm, ok := n.(*ast.Name); ok {
			names = append(names, nm)
		}
	}, nil)

	errByPos := map[string]bool{}
	for _, e := range ctx.Errors {
		errByPos[e.Pos.String()] = true
	}

	for _, nm := range names {
		_, hasSym := ctx.Info.Symbol(nm)
		hasErr := errByPos[nm.Span().Start.String()]
		assert.True(t, hasSym != hasErr,
			"name %q: expected exactly one of {symbol, diagnostic}, got symbol=%v diagnostic=%v", nm.Value, hasSym, hasErr)
	}
}
