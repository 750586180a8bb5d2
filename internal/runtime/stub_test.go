package runtime

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// Every hook call text is namespaced under ModuleAlias, matching the
// `import jac_runtime as _jac` convention the generated Python relies on.
func TestStubCallsAreNamespacedUnderModuleAlias(t *testing.T) {
	s := NewStub()
	assert.Equal(t, `_jac.elvis(a, b)`, s.Elvis("a", "b"))
	assert.Equal(t, `_jac.get_root()`, s.GetRoot())
	assert.Equal(t, `_jac.disengage(w)`, s.Disengage("w"))
}

// MakeArchetype quotes its ArchKind argument as a Python string literal and
// renders the onEntry/onExit lists as Python list literals.
func TestStubMakeArchetypeQuotesKindAndListsHandlers(t *testing.T) {
	s := NewStub()
	got := s.MakeArchetype(KindWalker, []string{"on_start"}, nil)
	assert.Equal(t, `_jac.make_architype("walker", [on_start], [])`, got)
}

// EdgeRef quotes its Dir argument the same way MakeArchetype quotes
// ArchKind, since both render a Go-typed string constant as Python text.
func TestStubEdgeRefQuotesDirection(t *testing.T) {
	s := NewStub()
	got := s.EdgeRef("n", DirOut, "Edge")
	assert.Equal(t, `_jac.edge_ref(n, "out", Edge)`, got)
}

// Stub implements the Hooks interface (a compile-time assertion), and
// Names() enumerates all twelve hooks.
func TestStubSatisfiesHooksInterface(t *testing.T) {
	var _ Hooks = NewStub()
	assert.Len(t, Names(), 12)
}
