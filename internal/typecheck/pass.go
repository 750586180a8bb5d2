package typecheck

import (
	"github.com/jaclang-dev/jacc/internal/ast"
	"github.com/jaclang-dev/jacc/internal/diag"
	"github.com/jaclang-dev/jacc/internal/pass"
	"github.com/jaclang-dev/jacc/internal/token"
)

// Pass is the optional TypeCheck pass: it hands the
// generated Python text to a Checker and files back any Message as a
// diagnostic, keyed to the module itself (the checker only reports
// line/column, not an AST node).
type Pass struct {
	Checker Checker
}

// New creates the TypeCheck pass. A nil checker defaults to NewNoOp().
func New(checker Checker) *Pass {
	if checker == nil {
		checker = NewNoOp()
	}
	return &Pass{Checker: checker}
}

func (p *Pass) Name() string { return "TypeCheck" }

func (p *Pass) Run(module *ast.Module, ctx *pass.Context) error {
	code := ctx.Info.Code(module)
	messages, serious := p.Checker.Check(module.Path, []string{code})
	for _, m := range messages {
		sev := diag.SeverityWarning
		if serious {
			sev = diag.SeverityError
		}
		ctx.Report(&diag.Diagnostic{
			ID:       m.ID,
			Severity: sev,
			Kind:     diag.KindInternal,
			Message:  m.Text,
			Pos:      token.Position{File: module.Path, Line: m.Line, Column: m.Column},
		})
	}
	return nil
}
