// Package pass defines the multi-pass framework every compiler stage
// plugs into: a Pass walks a Module, annotates it through a
// shared Context, and reports diagnostics into that Context's sink rather
// than throwing across the traversal boundary.
package pass

import (
	"github.com/jaclang-dev/jacc/internal/ast"
	"github.com/jaclang-dev/jacc/internal/diag"
	"github.com/jaclang-dev/jacc/internal/sema"
)

// Pass is one full traversal of the AST that mutates Context/Info state.
// Grounded on go-dws's semantic.Pass: Name for logging, Run mutates in
// place and reports fatal errors only through its return value.
type Pass interface {
	// Name identifies the pass for logging and for schedule diagnostics.
	Name() string

	// Run executes this pass over module, reading and writing ctx. It
	// returns a non-nil error only for a fatal internal invariant
	// violation; malformed user input is a
	// normal diagnostic recorded in ctx, not a returned error.
	Run(module *ast.Module, ctx *Context) error
}

// Context is the shared state threaded through one schedule's passes: the
// analytical side-tables (Info) plus the diagnostic sink every pass
// appends to.
type Context struct {
	Info *sema.Info

	Warnings []*diag.Diagnostic
	Errors   []*diag.Diagnostic

	// SourceFile is the path of the module currently being processed, used
	// to attribute diagnostics that don't otherwise carry a node.
	SourceFile string

	// StrictImport makes import failures (missing module, ambiguous
	// resolution, non-public import) critical, per spec.md §7(d): "import
	// failure … non-aborting unless the caller requested strict mode."
	// False by default, matching every existing NewContext call site.
	StrictImport bool
}

// NewContext creates a Context with a fresh Info.
func NewContext(sourceFile string) *Context {
	return &Context{Info: sema.New(), SourceFile: sourceFile}
}

// Report files d into the matching severity sink.
func (c *Context) Report(d *diag.Diagnostic) {
	switch d.Severity {
	case diag.SeverityError:
		c.Errors = append(c.Errors, d)
	default:
		c.Warnings = append(c.Warnings, d)
	}
}

// HasErrors reports whether any error-severity diagnostic has been filed.
// This is what CLI commands and tests consult to decide "did compilation
// succeed" — it is deliberately broader than HasCriticalErrors, which only
// gates whether the *schedule* keeps running.
func (c *Context) HasErrors() bool { return len(c.Errors) > 0 }

// HasCriticalErrors reports whether the schedule must stop before its next
// pass. Per spec.md §7's error taxonomy, only a fatal-internal diagnostic
// (diag.KindInternal) is critical on its own: ordinary user errors
// (unresolved names, redeclarations, unmatched decl/def) are "non-aborting"
// and import failures are "non-aborting unless the caller requested strict
// mode" (StrictImport). Everything else accumulates in Errors/Warnings for
// the caller to inspect via HasErrors, but never halts PyAST Gen — a module
// with one unresolved name still gets its Python generated for every other
// name that did resolve, per §4.1's "keep partial meta for IDE-style
// partial results."
func (c *Context) HasCriticalErrors() bool {
	for _, e := range c.Errors {
		if e.Kind == diag.KindInternal {
			return true
		}
		if c.StrictImport && isImportKind(e.Kind) {
			return true
		}
	}
	return false
}

func isImportKind(k diag.Kind) bool {
	switch k {
	case diag.KindImportMissing, diag.KindImportAmbiguous, diag.KindImportNotPublic:
		return true
	default:
		return false
	}
}

// MarkIncomplete attaches a "feature not implemented" warning to node and
// records it in Info.Incomplete, the ergonomic equivalent of the source
// language's "incomplete handler" decorator.
func MarkIncomplete(ctx *Context, node ast.Node, feature string) {
	ctx.Info.MarkIncomplete(node)
	ctx.Report(diag.NewFeatureUnsupported(node, feature, node.Span().Start))
}

// Manager coordinates the execution of an ordered list of passes,
// grounded on go-dws's semantic.PassManager.
type Manager struct {
	passes []Pass
}

// NewManager creates a Manager running passes in the given order.
func NewManager(passes ...Pass) *Manager {
	return &Manager{passes: passes}
}

// Add appends a pass to run after all previously added passes.
func (m *Manager) Add(p Pass) { m.passes = append(m.passes, p) }

// Passes returns the registered passes in schedule order.
func (m *Manager) Passes() []Pass { return m.passes }

// RunAll executes every pass in order. It stops the schedule (without
// discarding meta already attached) on the first fatal internal error or
// the first pass that leaves a critical diagnostic in ctx.
func (m *Manager) RunAll(module *ast.Module, ctx *Context) error {
	for _, p := range m.passes {
		if err := p.Run(module, ctx); err != nil {
			return err
		}
		if ctx.HasCriticalErrors() {
			break
		}
	}
	return nil
}

// Walk visits n and every descendant in pre-order, calling enter before
// recursing into children and exit after. Either callback may be nil.
// This is the traversal harness every pass builds its enter_<Kind>/
// exit_<Kind> dispatch on top of.
func Walk(n ast.Node, enter, exit func(ast.Node)) {
	if n == nil {
		return
	}
	if enter != nil {
		enter(n)
	}
	for _, c := range n.Children() {
		Walk(c, enter, exit)
	}
	if exit != nil {
		exit(n)
	}
}
