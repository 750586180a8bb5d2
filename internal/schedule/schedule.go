// Package schedule builds the two concrete pass orderings this compiler
// exposes: one ending at PyAST Gen, one continuing through the (optional)
// TypeCheck pass.
//
// Grounded on jaclang/jac/passes/main/schedules.py, which defines exactly
// these two schedules in the reference Python implementation.
package schedule

import (
	"github.com/jaclang-dev/jacc/internal/passes/codegen"
	"github.com/jaclang-dev/jacc/internal/passes/decldefmatch"
	"github.com/jaclang-dev/jacc/internal/passes/defuse"
	"github.com/jaclang-dev/jacc/internal/passes/importpass"
	"github.com/jaclang-dev/jacc/internal/passes/subnodetable"
	"github.com/jaclang-dev/jacc/internal/passes/symtable"
	"github.com/jaclang-dev/jacc/internal/pass"
	"github.com/jaclang-dev/jacc/internal/registry"
	"github.com/jaclang-dev/jacc/internal/runtime"
	"github.com/jaclang-dev/jacc/internal/typecheck"
)

// Options configures schedule construction. Registry and Loader are required; the rest
// fall back to sensible bootstrap defaults (current directory as the sole
// search root, the stub runtime hook emitter, the no-op type checker).
type Options struct {
	Registry    *registry.Registry
	SearchRoots []string
	Loader      importpass.Loader
	Hooks       runtime.Hooks
	Checker     typecheck.Checker
}

func (o Options) searchRoots() []string {
	if len(o.SearchRoots) == 0 {
		return []string{"."}
	}
	return o.SearchRoots
}

// ToGenPy builds the schedule used by tooling commands that need the
// generated Python but never execute it (`ast_tool`): SubNodeTable, Import,
// Symbol Table Build, DeclDefMatch, DefUse, PyAST Gen.
func ToGenPy(opts Options) *pass.Manager {
	imp := importpass.New(opts.Registry, opts.searchRoots(), opts.Loader)
	ddm := decldefmatch.New(opts.Registry.Get)
	return pass.NewManager(
		subnodetable.New(),
		imp,
		symtable.New(),
		ddm,
		defuse.New(),
		codegen.New(opts.Hooks),
	)
}

// ToTypeChecked builds the schedule used by `run`/`test`/`enter`: ToGenPy's
// schedule followed by the optional TypeCheck pass.
func ToTypeChecked(opts Options) *pass.Manager {
	m := ToGenPy(opts)
	m.Add(typecheck.New(opts.Checker))
	return m
}
