package symtab

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTableLookupFindsOwnScope(t *testing.T) {
	root := New(nil)
	sym := &Symbol{Name: "x", Kind: KindVariable}
	root.Define(sym)

	got, ok := root.Lookup("x")
	assert.True(t, ok)
	assert.Same(t, sym, got)
}

// The target language is case-sensitive, unlike go-dws's Pascal-derived
// symbol table: `Walker` and `walker` must be distinct bindings.
func TestTableLookupIsCaseSensitive(t *testing.T) {
	root := New(nil)
	root.Define(&Symbol{Name: "Walker", Kind: KindArchWalker})

	_, ok := root.Lookup("walker")
	assert.False(t, ok, "case must not be folded when resolving identifiers")

	got, ok := root.Lookup("Walker")
	assert.True(t, ok)
	assert.Equal(t, "Walker", got.Name)
}

func TestTableDefineKeepsDistinctCaseVariantsSeparate(t *testing.T) {
	root := New(nil)
	root.Define(&Symbol{Name: "Foo", Kind: KindVariable})
	root.Define(&Symbol{Name: "foo", Kind: KindVariable})

	_, ok := root.DeclaredHere("Foo")
	assert.True(t, ok)
	_, ok = root.DeclaredHere("foo")
	assert.True(t, ok, "Foo and foo must occupy separate slots, not collide")
}

func TestTableLookupWalksOuterScopes(t *testing.T) {
	root := New(nil)
	root.Define(&Symbol{Name: "outer", Kind: KindVariable})
	child := root.NewChild(nil)

	got, ok := child.Lookup("outer")
	assert.True(t, ok)
	assert.Equal(t, "outer", got.Name)
}

func TestTableLookupMissesAtModuleBoundary(t *testing.T) {
	root := New(nil)
	child := root.NewChild(nil)

	_, ok := child.Lookup("nope")
	assert.False(t, ok)
}

func TestInnerScopeShadowsOuter(t *testing.T) {
	root := New(nil)
	root.Define(&Symbol{Name: "x", Kind: KindVariable, Type: "outer"})
	child := root.NewChild(nil)
	child.Define(&Symbol{Name: "x", Kind: KindVariable, Type: "inner"})

	got, ok := child.Lookup("x")
	assert.True(t, ok)
	assert.Equal(t, "inner", got.Type)

	// the outer scope's own binding is untouched by the shadow
	outerGot, ok := root.Lookup("x")
	assert.True(t, ok)
	assert.Equal(t, "outer", outerGot.Type)
}

func TestDeclaredHereDoesNotSeeParentBindings(t *testing.T) {
	root := New(nil)
	root.Define(&Symbol{Name: "x", Kind: KindVariable})
	child := root.NewChild(nil)

	_, ok := child.DeclaredHere("x")
	assert.False(t, ok, "DeclaredHere must not walk to the parent scope")
}
