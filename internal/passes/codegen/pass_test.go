package codegen

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jaclang-dev/jacc/internal/parser"
	"github.com/jaclang-dev/jacc/internal/pass"
	"github.com/jaclang-dev/jacc/internal/runtime"
)

func generate(t *testing.T, src string) string {
	t.Helper()
	mod, errs := parser.Parse("t.jac", "t", src)
	if len(errs) > 0 {
		t.Fatalf("parse errors: %v", errs)
	}
	ctx := pass.NewContext("t.jac")
	p := New(runtime.NewStub())
	if err := p.Run(mod, ctx); err != nil {
		t.Fatalf("codegen: %v", err)
	}
	return ctx.Info.Code(mod)
}

// Minimal object: an empty architype lowers to a bare Python class with no
// trailing parenthesis when it declares no base.
func TestMinimalObjectLowersToClass(t *testing.T) {
	code := generate(t, `object Foo {}`)
	assert.Contains(t, code, "class Foo:")
	assert.NotContains(t, code, "class Foo()")
}

// Has initializer: a has-var with a default value lowers to an
// assignment inside the synthesized initializer.
func TestHasInitializerLowersToSelfAssignment(t *testing.T) {
	code := generate(t, `object Foo { has x: int = 5; }`)
	assert.Contains(t, code, "self.x: int = 5")
}

// For-in: an in-for statement lowers to a Python for loop with its body
// indented one level under the header.
func TestForInLowersToForLoop(t *testing.T) {
	code := generate(t, `
global xs = 1;
with entry {
    for v in xs {
        print(v);
    }
}
`)
	assert.Contains(t, code, "for v in xs:")
	assert.Contains(t, code, "    print(v)")
}

// Import with items: a target-language import with aliased items lowers to
// one Python `from ... import ...` line, aliases preserved.
func TestImportWithItemsLowersToFromImport(t *testing.T) {
	code := generate(t, `import:py from math, {pi, sin as s};`)
	assert.Contains(t, code, "from math import pi, sin as s")
}

func TestImportPlainModuleLowersToImport(t *testing.T) {
	code := generate(t, `import:py math;`)
	assert.Contains(t, code, "import math")
}

func TestImportAliasedModuleLowersToImportAs(t *testing.T) {
	code := generate(t, `import:py math as m;`)
	assert.Contains(t, code, "import math as m")
}

// The elvis operator is routed through the runtime hook surface rather than
// emitted as a literal (non-Python) `?:` token.
func TestElvisOperatorRoutesThroughHook(t *testing.T) {
	code := generate(t, `
global x = 1;
with entry {
    x ?: 2;
}
`)
	assert.NotContains(t, code, "?:")
	assert.Contains(t, code, runtime.NewStub().Elvis("x", "2"))
}

func TestArchitypeWithBaseKeepsParens(t *testing.T) {
	code := generate(t, `object Bar: Base {}`)
	assert.Contains(t, code, "class Bar(Base):")
}
