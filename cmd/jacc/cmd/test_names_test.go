package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jaclang-dev/jacc/internal/parser"
)

func writeJacFile(t *testing.T, dir, name, src string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))
	return path
}

func TestTestNamesCollectsEveryRegisteredTestBlock(t *testing.T) {
	mod, errs := parser.Parse("t.jac", "t", `
test alpha {}
test beta {}
object Foo {}
`)
	if len(errs) > 0 {
		t.Fatalf("parse errors: %v", errs)
	}
	assert.Equal(t, []string{"alpha", "beta"}, testNames(mod))
}

func TestTestNamesEmptyModuleYieldsNil(t *testing.T) {
	mod, errs := parser.Parse("t.jac", "t", `object Foo {}`)
	if len(errs) > 0 {
		t.Fatalf("parse errors: %v", errs)
	}
	assert.Empty(t, testNames(mod))
}

func TestRunASTToolRejectsUnknownTool(t *testing.T) {
	dir := t.TempDir()
	path := writeJacFile(t, dir, "main.jac", `object Foo {}`)

	err := runASTTool(nil, []string{"bogus", path})
	assert.ErrorContains(t, err, "unknown ast_tool")
}

func TestRunASTToolSymbolsSucceeds(t *testing.T) {
	dir := t.TempDir()
	path := writeJacFile(t, dir, "main.jac", `object Foo { has x: int = 5; }`)

	err := runASTTool(nil, []string{"symbols", path})
	assert.NoError(t, err)
}
