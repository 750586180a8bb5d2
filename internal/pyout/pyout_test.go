package pyout

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jaclang-dev/jacc/internal/ast"
	"github.com/jaclang-dev/jacc/internal/pass"
)

func TestTargetPathRewritesExtensionUnderGenDir(t *testing.T) {
	got := TargetPath("/proj/main.jac")
	assert.Equal(t, filepath.Join("/proj", GenDirName, "main.py"), got)
}

func TestWriteCreatesGenDirAndFile(t *testing.T) {
	dir := t.TempDir()
	mod := &ast.Module{Path: filepath.Join(dir, "main.jac")}
	ctx := pass.NewContext(mod.Path)
	ctx.Info.SetCode(mod, "class Foo:\n    pass\n")

	out, err := Write(mod, ctx)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, GenDirName, "main.py"), out)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "class Foo:\n    pass\n", string(data))
}

// Clean removes both the generated-Python directory and a leftover
// bytecode cache directory, recursively, without touching source files.
func TestCleanRemovesGenDirAndBytecodeCache(t *testing.T) {
	dir := t.TempDir()
	genDir := filepath.Join(dir, GenDirName)
	cacheDir := filepath.Join(dir, "sub", "__pycache__")
	require.NoError(t, os.MkdirAll(genDir, 0o755))
	require.NoError(t, os.MkdirAll(cacheDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "main.jac"), []byte("object Foo {}"), 0o644))

	require.NoError(t, Clean(dir))

	_, err := os.Stat(genDir)
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(cacheDir)
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(filepath.Join(dir, "main.jac"))
	assert.NoError(t, err, "source files outside a generated-artifact directory must survive Clean")
}
