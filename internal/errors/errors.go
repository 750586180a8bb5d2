// Package errors formats diag.Diagnostic values with source context for
// interactive (terminal) use: "filename:line:col: severity: message"
// followed by a caret-annotated source excerpt.
//
// Grounded on go-dws's internal/errors.CompilerError: Format/
// FormatWithContext building a caret-annotated source excerpt via
// strings.Builder, FormatErrors batching multiple errors, FromStringErrors
// adapting loosely-structured legacy messages. Adapted here from go-dws's
// single concrete error type to wrap diag.Diagnostic, and from
// lexer.Position to token.Position.
package errors

import (
	"fmt"
	"strings"

	"github.com/jaclang-dev/jacc/internal/diag"
)

// Rendered pairs a Diagnostic with the source text it should be shown
// against, since diag.Diagnostic itself carries only a position, not the
// file contents.
type Rendered struct {
	D      *diag.Diagnostic
	Source string
}

// Format renders one diagnostic as "filename:line:col: severity: message"
// followed by a source excerpt with a caret under the offending column.
func (r Rendered) Format(color bool) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s: %s: %s\n", r.D.Pos, r.D.Severity, r.D.Message))

	line := sourceLine(r.Source, r.D.Pos.Line)
	if line == "" {
		return strings.TrimRight(sb.String(), "\n")
	}
	lineNumStr := fmt.Sprintf("%4d | ", r.D.Pos.Line)
	sb.WriteString(lineNumStr)
	sb.WriteString(line)
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat(" ", len(lineNumStr)+r.D.Pos.Column-1))
	if color {
		sb.WriteString("\033[1;31m")
	}
	sb.WriteString("^")
	if color {
		sb.WriteString("\033[0m")
	}
	return sb.String()
}

func sourceLine(source string, lineNum int) string {
	if source == "" || lineNum < 1 {
		return ""
	}
	lines := strings.Split(source, "\n")
	if lineNum > len(lines) {
		return ""
	}
	return lines[lineNum-1]
}

// FormatErrors renders a batch of diagnostics against their respective
// source text, matching go-dws's FormatErrors batching convention.
func FormatErrors(rendered []Rendered, color bool) string {
	if len(rendered) == 0 {
		return ""
	}
	if len(rendered) == 1 {
		return rendered[0].Format(color)
	}
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("compilation reported %d diagnostic(s):\n\n", len(rendered)))
	for i, r := range rendered {
		sb.WriteString(fmt.Sprintf("[%d of %d]\n", i+1, len(rendered)))
		sb.WriteString(r.Format(color))
		if i < len(rendered)-1 {
			sb.WriteString("\n\n")
		}
	}
	return sb.String()
}

// FromDiagnostics pairs every diagnostic in ds with source, the one file
// most Context.Errors/Warnings entries share in a single-module compile.
func FromDiagnostics(ds []*diag.Diagnostic, source string) []Rendered {
	out := make([]Rendered, len(ds))
	for i, d := range ds {
		out[i] = Rendered{D: d, Source: source}
	}
	return out
}
