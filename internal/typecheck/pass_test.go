package typecheck

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jaclang-dev/jacc/internal/ast"
	"github.com/jaclang-dev/jacc/internal/diag"
	"github.com/jaclang-dev/jacc/internal/pass"
)

type stubChecker struct {
	messages []Message
	serious  bool
}

func (c *stubChecker) Check(filename string, batch []string) ([]Message, bool) {
	return c.messages, c.serious
}

func TestNilCheckerDefaultsToNoOp(t *testing.T) {
	p := New(nil)
	_, ok := p.Checker.(*NoOp)
	assert.True(t, ok)
}

func TestNoOpReportsNothing(t *testing.T) {
	mod := &ast.Module{Path: "t.jac"}
	ctx := pass.NewContext("t.jac")
	assert.NoError(t, New(nil).Run(mod, ctx))
	assert.Empty(t, ctx.Errors)
	assert.Empty(t, ctx.Warnings)
}

// A non-serious batch of messages files as warnings, keyed to the line and
// column the checker reported rather than any AST node.
func TestNonSeriousMessagesFileAsWarnings(t *testing.T) {
	mod := &ast.Module{Path: "t.jac"}
	ctx := pass.NewContext("t.jac")
	checker := &stubChecker{messages: []Message{{ID: "x1", Text: "unused import", Line: 3, Column: 1}}}

	assert.NoError(t, New(checker).Run(mod, ctx))
	assert.Empty(t, ctx.Errors)
	assert.Len(t, ctx.Warnings, 1)
	assert.Equal(t, diag.SeverityWarning, ctx.Warnings[0].Severity)
	assert.Equal(t, 3, ctx.Warnings[0].Pos.Line)
}

// A serious batch files as errors instead, which in turn halts a
// pass.Manager schedule running this pass.
func TestSeriousMessagesFileAsErrors(t *testing.T) {
	mod := &ast.Module{Path: "t.jac"}
	ctx := pass.NewContext("t.jac")
	checker := &stubChecker{messages: []Message{{ID: "x2", Text: "undefined name", Line: 1, Column: 5}}, serious: true}

	assert.NoError(t, New(checker).Run(mod, ctx))
	assert.Len(t, ctx.Errors, 1)
	assert.True(t, ctx.HasCriticalErrors())
}
