package importpass

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jaclang-dev/jacc/internal/ast"
	"github.com/jaclang-dev/jacc/internal/parser"
	"github.com/jaclang-dev/jacc/internal/pass"
	"github.com/jaclang-dev/jacc/internal/registry"
)

func load(path string) (*ast.Module, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	mod, errs := parser.Parse(path, filepath.Base(path), string(src))
	if len(errs) > 0 {
		return nil, errors.New(errs[0])
	}
	return mod, nil
}

// A resolved import records the canonical absolute path it found, so later
// passes (DeclDefMatch) can key a registry lookup on it directly rather
// than on the raw dotted path as written in source.
func TestResolveRecordsCanonicalPath(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "util.jac"), []byte(`can helper() -> int;`), 0o644))
	mainPath := filepath.Join(dir, "main.jac")
	require.NoError(t, os.WriteFile(mainPath, []byte(`import:jac from util, {helper};`), 0o644))

	mod, err := load(mainPath)
	require.NoError(t, err)

	reg := registry.New()
	p := New(reg, []string{dir}, load)
	ctx := pass.NewContext(mainPath)
	require.NoError(t, p.Run(mod, ctx))
	assert.False(t, ctx.HasErrors())

	var imp *ast.Import
	for _, item := range mod.Elems.Items {
		if i, ok := item.(*ast.Import); ok {
			imp = i
		}
	}
	require.NotNil(t, imp)
	assert.Equal(t, filepath.Join(dir, "util.jac"), imp.Canonical)

	_, ok := reg.Get(imp.Canonical)
	assert.True(t, ok, "the resolved canonical path must be the exact key the module was registered under")
}

func TestUnresolvableImportReportsMissing(t *testing.T) {
	dir := t.TempDir()
	mainPath := filepath.Join(dir, "main.jac")
	require.NoError(t, os.WriteFile(mainPath, []byte(`import:jac from nowhere, {thing};`), 0o644))

	mod, err := load(mainPath)
	require.NoError(t, err)

	reg := registry.New()
	p := New(reg, []string{dir}, load)
	ctx := pass.NewContext(mainPath)
	require.NoError(t, p.Run(mod, ctx))

	require.Len(t, ctx.Errors, 1)
	assert.Contains(t, ctx.Errors[0].Message, "cannot find module")
}

// A target-language (non-Jac) import is left entirely unresolved: no
// candidates are searched, no Canonical is recorded, no diagnostic filed.
func TestTargetLanguageImportIsPassedThrough(t *testing.T) {
	dir := t.TempDir()
	mainPath := filepath.Join(dir, "main.jac")
	require.NoError(t, os.WriteFile(mainPath, []byte(`import:py math;`), 0o644))

	mod, err := load(mainPath)
	require.NoError(t, err)

	reg := registry.New()
	p := New(reg, []string{dir}, load)
	ctx := pass.NewContext(mainPath)
	require.NoError(t, p.Run(mod, ctx))

	assert.Empty(t, ctx.Errors)
	var imp *ast.Import
	for _, item := range mod.Elems.Items {
		if i, ok := item.(*ast.Import); ok {
			imp = i
		}
	}
	require.NotNil(t, imp)
	assert.Empty(t, imp.Canonical)
}
