// Package decldefmatch implements the DeclDefMatch Pass:
// pairs a forward Ability declaration with its out-of-line AbilitySpec
// definition, wherever in the current module or its transitive imports that
// definition lives, and diagnoses unmatched declarations/definitions and
// ambiguous matches.
//
// Grounded on go-dws's declaration_pass.go + contract_pass.go split
// (forward interface vs. out-of-line body, matched by qualified name),
// generalized to Jac's single Ability/AbilitySpec node pair.
package decldefmatch

import (
	"github.com/jaclang-dev/jacc/internal/ast"
	"github.com/jaclang-dev/jacc/internal/diag"
	"github.com/jaclang-dev/jacc/internal/pass"
	"github.com/jaclang-dev/jacc/internal/token"
)

// Pass cross-links Ability declarations with AbilitySpec definitions.
type Pass struct {
	// Imported supplies every transitively imported module's Elements, since
	// a definition may live in a different file than its declaration. Each
	// Import node's Canonical path (filled in by the Import pass) is looked
	// up through this; a nil Imported restricts matching to the current
	// module only.
	Imported func(path string) (*ast.Module, bool)
}

// New creates the DeclDefMatch pass.
func New(imported func(path string) (*ast.Module, bool)) *Pass {
	return &Pass{Imported: imported}
}

func (p *Pass) Name() string { return "DeclDefMatch" }

// qualifiedKey identifies an Ability/AbilitySpec pair: archName.abilityName,
// or just abilityName for a free function-style ability.
func qualifiedKey(arch, name string) string {
	if arch == "" {
		return name
	}
	return arch + "." + name
}

// Run collects every declaration and definition visible to module (its own
// plus those of modules reachable through its Import nodes), matches them by
// qualified name, and reports any mismatch between them.
func (p *Pass) Run(module *ast.Module, ctx *pass.Context) error {
	decls := make(map[string][]*ast.Ability)
	defs := make(map[string][]*ast.AbilitySpec)

	collect(module, decls, defs)
	// Follow Import nodes breadth-first so transitively imported modules are
	// searched too; seen keeps an import cycle from being collected twice.
	seen := map[*ast.Module]bool{module: true}
	queue := []*ast.Module{module}
	for len(queue) > 0 {
		m := queue[0]
		queue = queue[1:]
		for _, imp := range collectImports(m) {
			if p.Imported == nil || imp.Canonical == "" {
				continue
			}
			if im, ok := p.Imported(imp.Canonical); ok && !seen[im] {
				seen[im] = true
				collect(im, decls, defs)
				queue = append(queue, im)
			}
		}
	}

	for key, declList := range decls {
		defList := defs[key]
		switch len(defList) {
		case 0:
			for _, d := range declList {
				ctx.Report(diag.NewDeclWithoutDef(d, key, d.Span().Start))
			}
		case 1:
			for _, d := range declList {
				d.DefLink = defList[0]
				defList[0].DeclLink = d
				// The Symbol Table pass keys a declaring Ability's symbol by
				// its Name node (see symtable.walker.enter), not the Ability
				// node itself — follow the same key here.
				if d.Name != nil {
					if sym, ok := ctx.Info.Symbol(d.Name); ok {
						sym.Def = defList[0]
					}
				}
			}
		default:
			locs := make([]token.Position, len(defList))
			for i, def := range defList {
				locs[i] = def.Span().Start
			}
			for _, d := range declList {
				ctx.Report(diag.NewAmbiguousDef(d, key, d.Span().Start, locs))
			}
		}
	}

	for key, defList := range defs {
		if len(decls[key]) == 0 {
			for _, def := range defList {
				ctx.Report(diag.NewDefWithoutDecl(def, key, def.Span().Start))
			}
		}
	}
	return nil
}

// collect appends every Ability forward declaration (Body == nil) and every
// AbilitySpec found under module into decls/defs, keyed by qualified name.
func collect(module *ast.Module, decls map[string][]*ast.Ability, defs map[string][]*ast.AbilitySpec) {
	if module == nil || module.Elems == nil {
		return
	}
	for _, item := range module.Elems.Items {
		switch node := item.(type) {
		case *ast.Architype:
			if node.Body == nil {
				continue
			}
			archName := ""
			if node.Name != nil {
				archName = node.Name.Value
			}
			for _, member := range node.Body.Members {
				collectMember(member, archName, decls, defs)
			}
		case *ast.Ability:
			if node.Body == nil {
				name := ""
				if node.Name != nil {
					name = node.Name.Value
				}
				key := qualifiedKey("", name)
				decls[key] = append(decls[key], node)
			}
		case *ast.AbilitySpec:
			collectSpec(node, decls, defs)
		}
	}
}

func collectMember(member ast.Node, archName string, decls map[string][]*ast.Ability, defs map[string][]*ast.AbilitySpec) {
	switch node := member.(type) {
	case *ast.Ability:
		if node.Body == nil {
			name := ""
			if node.Name != nil {
				name = node.Name.Value
			}
			key := qualifiedKey(archName, name)
			decls[key] = append(decls[key], node)
		}
	case *ast.AbilitySpec:
		collectSpec(node, decls, defs)
	}
}

func collectSpec(node *ast.AbilitySpec, decls map[string][]*ast.Ability, defs map[string][]*ast.AbilitySpec) {
	archName, name := "", ""
	if node.ArchName != nil {
		archName = node.ArchName.Value
	}
	if node.Name != nil {
		name = node.Name.Value
	}
	key := qualifiedKey(archName, name)
	defs[key] = append(defs[key], node)
}

// collectImports returns every Import node directly in module's top level.
func collectImports(module *ast.Module) []*ast.Import {
	var out []*ast.Import
	if module.Elems == nil {
		return out
	}
	for _, item := range module.Elems.Items {
		if imp, ok := item.(*ast.Import); ok {
			out = append(out, imp)
		}
	}
	return out
}
