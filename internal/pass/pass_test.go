package pass

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jaclang-dev/jacc/internal/ast"
	"github.com/jaclang-dev/jacc/internal/diag"
	"github.com/jaclang-dev/jacc/internal/token"
)

// recordingPass reports a single diagnostic of the given severity/kind (or
// returns a fatal error) and records whether it ran, so a test can assert on
// how far a schedule got.
type recordingPass struct {
	name string
	diag *diag.Diagnostic
	fail error
	ran  *bool
}

func (p *recordingPass) Name() string { return p.name }

func (p *recordingPass) Run(_ *ast.Module, ctx *Context) error {
	*p.ran = true
	if p.diag != nil {
		ctx.Report(p.diag)
	}
	return p.fail
}

func pos() token.Position { return token.Position{File: "t.jac", Line: 1, Column: 1} }

// An ordinary user-error diagnostic (unresolved name) must not stop the
// schedule — spec.md §7(b): "user error … non-aborting". This is a
// regression test for the bug where HasCriticalErrors == HasErrors made any
// error-severity diagnostic halt the pipeline before PyAST Gen ran.
func TestOrdinaryUserErrorDoesNotHaltSchedule(t *testing.T) {
	var ran1, ran2 bool
	m := NewManager(
		&recordingPass{name: "first", diag: diag.NewUnresolvedName(nil, "bar", pos()), ran: &ran1},
		&recordingPass{name: "second", ran: &ran2},
	)
	ctx := NewContext("t.jac")
	require.NoError(t, m.RunAll(&ast.Module{}, ctx))

	assert.True(t, ran1)
	assert.True(t, ran2, "a non-fatal user error must not prevent later passes from running")
	assert.True(t, ctx.HasErrors())
	assert.False(t, ctx.HasCriticalErrors())
}

// An import failure also does not halt by default.
func TestImportFailureDoesNotHaltByDefault(t *testing.T) {
	var ran1, ran2 bool
	m := NewManager(
		&recordingPass{name: "first", diag: diag.NewImportMissing(nil, "util", pos()), ran: &ran1},
		&recordingPass{name: "second", ran: &ran2},
	)
	ctx := NewContext("t.jac")
	require.NoError(t, m.RunAll(&ast.Module{}, ctx))

	assert.True(t, ran2, "import failure must be non-aborting unless StrictImport is set")
	assert.False(t, ctx.HasCriticalErrors())
}

// With StrictImport set, the same import failure becomes critical and halts
// the schedule before the next pass runs.
func TestImportFailureHaltsUnderStrictImport(t *testing.T) {
	var ran1, ran2 bool
	m := NewManager(
		&recordingPass{name: "first", diag: diag.NewImportAmbiguous(nil, "util", pos(), nil), ran: &ran1},
		&recordingPass{name: "second", ran: &ran2},
	)
	ctx := NewContext("t.jac")
	ctx.StrictImport = true
	require.NoError(t, m.RunAll(&ast.Module{}, ctx))

	assert.True(t, ran1)
	assert.False(t, ran2, "StrictImport must make an import diagnostic critical")
	assert.True(t, ctx.HasCriticalErrors())
}

// A fatal-internal diagnostic halts the schedule regardless of StrictImport.
func TestInternalDiagnosticAlwaysHalts(t *testing.T) {
	var ran1, ran2 bool
	m := NewManager(
		&recordingPass{name: "first", diag: diag.NewInternal(pos(), "broken invariant"), ran: &ran1},
		&recordingPass{name: "second", ran: &ran2},
	)
	ctx := NewContext("t.jac")
	require.NoError(t, m.RunAll(&ast.Module{}, ctx))

	assert.False(t, ran2)
	assert.True(t, ctx.HasCriticalErrors())
}

// A pass returning a non-nil Go error (the other half of the fatal-internal
// channel) also stops the schedule immediately.
func TestPassReturningErrorHaltsSchedule(t *testing.T) {
	var ran1, ran2 bool
	m := NewManager(
		&recordingPass{name: "first", fail: errors.New("broken"), ran: &ran1},
		&recordingPass{name: "second", ran: &ran2},
	)
	ctx := NewContext("t.jac")
	err := m.RunAll(&ast.Module{}, ctx)

	assert.Error(t, err)
	assert.False(t, ran2)
}
