// Package importpass implements the Import Pass: resolves
// every Import node's module path to a canonical file, parses and registers
// that file on first use, and detects import cycles.
//
// Grounded on go-dws's internal/units.UnitRegistry (searchPaths walked
// in order, a loading set guarding re-entrant unit resolution), generalized
// so that re-entering an in-progress module is not an error here, where
// go-dws's unit loader treats it as one.
package importpass

import (
	"os"
	"path/filepath"

	"github.com/jaclang-dev/jacc/internal/ast"
	"github.com/jaclang-dev/jacc/internal/diag"
	"github.com/jaclang-dev/jacc/internal/pass"
	"github.com/jaclang-dev/jacc/internal/passes/subnodetable"
	"github.com/jaclang-dev/jacc/internal/registry"
	"github.com/jaclang-dev/jacc/internal/token"
)

// Loader parses the file at path into a Module. The Import pass depends on
// this rather than a concrete parser package so it never needs to know how
// source text becomes an AST.
type Loader func(path string) (*ast.Module, error)

// Pass resolves Import nodes against a Registry and a Loader.
type Pass struct {
	Registry    *registry.Registry
	SearchRoots []string
	Load        Loader
}

// New creates the Import pass. searchRoots are tried in order after
// resolution relative to the importing file's own directory.
func New(reg *registry.Registry, searchRoots []string, load Loader) *Pass {
	return &Pass{Registry: reg, SearchRoots: searchRoots, Load: load}
}

func (p *Pass) Name() string { return "Import" }

// Run resolves every Import node reachable from module.
func (p *Pass) Run(module *ast.Module, ctx *pass.Context) error {
	imports := ctx.Info.SubNodesOf(module, ast.KImport)
	if imports == nil {
		pass.Walk(module, func(n ast.Node) {
			if n.Kind() == ast.KImport {
				imports = append(imports, n)
			}
		}, nil)
	}

	dir := filepath.Dir(module.Path)
	for _, n := range imports {
		imp, ok := n.(*ast.Import)
		if !ok || imp.Lang != ast.LangJac {
			continue // pass-through target-language imports need no resolution
		}
		p.resolve(imp, dir, ctx)
	}
	return nil
}

// resolve finds the canonical file for imp.Path, parses/registers it on
// first use, and validates any explicitly imported items are public.
func (p *Pass) resolve(imp *ast.Import, fromDir string, ctx *pass.Context) {
	candidates := p.candidates(imp.Path, fromDir)

	switch len(candidates) {
	case 0:
		ctx.Report(diag.NewImportMissing(imp, imp.Path, imp.Span().Start))
		return
	case 1:
		// unambiguous, fall through
	default:
		ctx.Report(diag.NewImportAmbiguous(imp, imp.Path, imp.Span().Start, candidates))
		return
	}

	canonical := candidates[0]
	imp.Canonical = canonical
	imported := p.load(canonical, ctx)
	if imported == nil {
		return // cycle re-entry with nothing registered yet; not an error
	}

	for _, item := range imp.Items {
		if access, found := topLevelAccess(imported, item.Name); found && access != ast.AccessPublic {
			ctx.Report(diag.NewImportNotPublic(item, item.Name, item.Span().Start))
		}
	}
}

// candidates returns every existing file matching path: first relative to
// fromDir, then relative to each search root, each with a ".jac" suffix
// appended if path doesn't already carry one.
func (p *Pass) candidates(path, fromDir string) []string {
	rel := withExt(path)
	var found []string

	if c := filepath.Join(fromDir, rel); exists(c) {
		found = append(found, c)
		return found // relative resolution wins outright over any search root
	}

	for _, root := range p.SearchRoots {
		if c := filepath.Join(root, rel); exists(c) {
			found = append(found, c)
		}
	}
	return found
}

func withExt(path string) string {
	if filepath.Ext(path) == ".jac" {
		return path
	}
	return path + ".jac"
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// load returns the registered (or newly parsed) module at canonical, or nil
// if canonical is already being resolved further up the import chain.
func (p *Pass) load(canonical string, ctx *pass.Context) *ast.Module {
	if m, ok := p.Registry.Get(canonical); ok {
		return m
	}
	if !p.Registry.TryEnter(canonical) {
		// Import cycle: whatever is registered for canonical right now
		// (possibly nothing yet) is what the caller gets.
		m, _ := p.Registry.Get(canonical)
		return m
	}
	defer p.Registry.Leave(canonical)

	imported, err := p.Load(canonical)
	if err != nil {
		ctx.Report(diag.NewImportMissing(nil, canonical, token.Position{File: ctx.SourceFile}))
		return nil
	}
	if err := p.Registry.Register(canonical, imported); err != nil {
		return imported
	}

	// Recursively run the SubNodeTable+Import prefix on the freshly parsed
	// module so its own imports are resolved before callers inspect it.
	sub := pass.NewManager(subnodetable.New(), p)
	subCtx := pass.NewContext(canonical)
	_ = sub.RunAll(imported, subCtx)

	return imported
}

// topLevelAccess reports the Access of the top-level declaration named name
// in mod, at the AST level — this runs before the Symbol Table pass has
// visited the imported module, so it cannot consult a symtab.Table yet.
func topLevelAccess(mod *ast.Module, name string) (ast.Access, bool) {
	if mod.Elems == nil {
		return ast.AccessPublic, false
	}
	for _, item := range mod.Elems.Items {
		switch node := item.(type) {
		case *ast.Architype:
			if node.Name != nil && node.Name.Value == name {
				return node.Access, true
			}
		case *ast.Ability:
			if node.Name != nil && node.Name.Value == name {
				return node.Access, true
			}
		case *ast.GlobalVars:
			for _, n := range node.Names {
				if n.Value == name {
					return node.Access, true
				}
			}
		}
	}
	return ast.AccessPublic, false
}
