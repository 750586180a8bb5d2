package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jaclang-dev/jacc/internal/ast"
)

func TestGetMissesOnUnregisteredPath(t *testing.T) {
	r := New()
	_, ok := r.Get("/nowhere.jac")
	assert.False(t, ok)
}

func TestRegisterThenGetRoundTrips(t *testing.T) {
	r := New()
	m := &ast.Module{Path: "/a.jac"}
	assert.NoError(t, r.Register("/a.jac", m))

	got, ok := r.Get("/a.jac")
	assert.True(t, ok)
	assert.Same(t, m, got)
}

// Registering the same path twice is a programmer error, matching the
// Import pass's invariant of always checking Get before parsing.
func TestRegisterTwiceErrors(t *testing.T) {
	r := New()
	m := &ast.Module{Path: "/a.jac"}
	assert.NoError(t, r.Register("/a.jac", m))
	assert.Error(t, r.Register("/a.jac", m))
}

// TryEnter marks a path in-progress exactly once; re-entering before Leave
// reports the cycle to the caller instead of silently succeeding.
func TestTryEnterDetectsReentry(t *testing.T) {
	r := New()
	assert.True(t, r.TryEnter("/a.jac"))
	assert.False(t, r.TryEnter("/a.jac"), "re-entering an in-progress path must be reported as a cycle")

	r.Leave("/a.jac")
	assert.True(t, r.TryEnter("/a.jac"), "once left, the same path may be entered again")
}

func TestInvalidateForcesReparse(t *testing.T) {
	r := New()
	m := &ast.Module{Path: "/a.jac"}
	assert.NoError(t, r.Register("/a.jac", m))

	r.Invalidate("/a.jac")
	_, ok := r.Get("/a.jac")
	assert.False(t, ok)
}
