// Package pyout implements the optional PyOut Pass: serializes the generated Python text to disk under a `__jac_gen__`
// directory colocated with the source file.
package pyout

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/jaclang-dev/jacc/internal/ast"
	"github.com/jaclang-dev/jacc/internal/pass"
)

// GenDirName is the generated-artifact directory name.
const GenDirName = "__jac_gen__"

// Pass writes module's generated Python text under GenDirName, colocated
// with the source file.
type Pass struct{}

// New creates the PyOut pass.
func New() *Pass { return &Pass{} }

func (p *Pass) Name() string { return "PyOut" }

func (p *Pass) Run(module *ast.Module, ctx *pass.Context) error {
	_, err := Write(module, ctx)
	return err
}

// Write renders module's generated code to its target file path and
// returns that path, creating the __jac_gen__ directory if needed.
func Write(module *ast.Module, ctx *pass.Context) (string, error) {
	outPath := TargetPath(module.Path)
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return "", err
	}
	code := ctx.Info.Code(module)
	if err := os.WriteFile(outPath, []byte(code), 0o644); err != nil {
		return "", err
	}
	return outPath, nil
}

// TargetPath returns the __jac_gen__-relative .py path for a .jac source
// file, preserving its base name.
func TargetPath(sourcePath string) string {
	dir := filepath.Dir(sourcePath)
	base := filepath.Base(sourcePath)
	base = strings.TrimSuffix(base, filepath.Ext(base)) + ".py"
	return filepath.Join(dir, GenDirName, base)
}

// Clean removes the __jac_gen__ directory and, if present, the target
// language's own bytecode cache directory, recursively from root.
func Clean(root string) error {
	var toRemove []string
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() && (d.Name() == GenDirName || d.Name() == "__pycache__") {
			toRemove = append(toRemove, path)
		}
		return nil
	})
	if err != nil {
		return err
	}
	for _, dir := range toRemove {
		if err := os.RemoveAll(dir); err != nil {
			return err
		}
	}
	return nil
}
