// Package compiler wires the lexer, parser, module registry, and pass
// schedules into the single entry point the CLI commands call.
//
// Grounded on go-dws's cmd/dwscript/cmd/run.go: lex, parse, check
// p.Errors(), then run semantic analysis and report diagnostics — this
// package is the library-side equivalent of that function, reusable by every
// subcommand instead of living inline in `run`.
package compiler

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/jaclang-dev/jacc/internal/ast"
	"github.com/jaclang-dev/jacc/internal/diag"
	"github.com/jaclang-dev/jacc/internal/errors"
	"github.com/jaclang-dev/jacc/internal/parser"
	"github.com/jaclang-dev/jacc/internal/pass"
	"github.com/jaclang-dev/jacc/internal/pyout"
	"github.com/jaclang-dev/jacc/internal/registry"
	"github.com/jaclang-dev/jacc/internal/runtime"
	"github.com/jaclang-dev/jacc/internal/schedule"
	"github.com/jaclang-dev/jacc/internal/typecheck"
)

// Compiler is the process-wide compilation context: one Registry, guarded
// by its own mutex, shared by every module a single `jacc` invocation
// touches so repeated imports of the same file resolve to one cached AST.
type Compiler struct {
	mu          sync.Mutex
	Registry    *registry.Registry
	SearchRoots []string
	Hooks       runtime.Hooks
	Checker     typecheck.Checker

	// StrictImport makes an import failure abort the schedule instead of
	// leaving the rest of the module's Python generated around the gap; see
	// pass.Context.StrictImport. Off by default, matching New's zero value.
	StrictImport bool
}

// New creates a Compiler with a fresh Registry and the given search roots
// a nil/empty roots list defaults to the current
// directory.
func New(searchRoots []string) *Compiler {
	return &Compiler{
		Registry:    registry.New(),
		SearchRoots: searchRoots,
		Hooks:       runtime.NewStub(),
		Checker:     typecheck.NewNoOp(),
	}
}

// Result is the outcome of compiling one source file.
type Result struct {
	Module   *ast.Module
	Context  *pass.Context
	Code     string // the module's own generated Python, for convenience
}

func (c *Compiler) load(path string) (*ast.Module, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	src, err := os.ReadFile(abs)
	if err != nil {
		return nil, err
	}
	name := filepath.Base(abs)
	mod, parseErrs := parser.Parse(abs, name, string(src))
	if len(parseErrs) > 0 {
		return nil, fmt.Errorf("%s: %d parse error(s): %s", abs, len(parseErrs), parseErrs[0])
	}
	return mod, nil
}

func (c *Compiler) opts() schedule.Options {
	return schedule.Options{
		Registry:    c.Registry,
		SearchRoots: c.SearchRoots,
		Loader:      c.load,
		Hooks:       c.Hooks,
		Checker:     c.Checker,
	}
}

// CompileToPy runs the SubNodeTable through PyAST Gen schedule over path,
// without invoking the (optional) TypeCheck pass — used by `ast_tool` and any
// command that only needs generated Python.
func (c *Compiler) CompileToPy(path string) (*Result, error) {
	return c.run(path, schedule.ToGenPy(c.opts()))
}

// CompileChecked runs the full schedule including TypeCheck — used by `run`,
// `enter`, and `test`.
func (c *Compiler) CompileChecked(path string) (*Result, error) {
	return c.run(path, schedule.ToTypeChecked(c.opts()))
}

func (c *Compiler) run(path string, manager *pass.Manager) (*Result, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	mod, ok := c.Registry.Get(abs)
	if !ok {
		mod, err = c.load(abs)
		if err != nil {
			return nil, err
		}
		if err := c.Registry.Register(abs, mod); err != nil {
			return nil, err
		}
	}

	ctx := pass.NewContext(abs)
	ctx.StrictImport = c.StrictImport
	if err := manager.RunAll(mod, ctx); err != nil {
		return nil, err
	}

	return &Result{Module: mod, Context: ctx, Code: ctx.Info.Code(mod)}, nil
}

// WriteGenPy runs CompileChecked and serializes the result under
// __jac_gen__, returning the written path.
func (c *Compiler) WriteGenPy(path string) (string, *Result, error) {
	res, err := c.CompileChecked(path)
	if err != nil {
		return "", nil, err
	}
	out, err := pyout.Write(res.Module, res.Context)
	if err != nil {
		return "", res, err
	}
	return out, res, nil
}

// Rendered formats res's diagnostics for terminal display, reading the
// module's own source text for the caret-annotated context.
func Rendered(res *Result, color bool) string {
	if res == nil {
		return ""
	}
	var all []*diag.Diagnostic
	all = append(all, res.Context.Errors...)
	all = append(all, res.Context.Warnings...)
	if len(all) == 0 {
		return ""
	}
	src, _ := os.ReadFile(res.Module.Path)
	return errors.FormatErrors(errors.FromDiagnostics(all, string(src)), color)
}
