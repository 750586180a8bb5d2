// Package typecheck defines the external TypeCheck pass boundary. A real type
// checker's internals are out of scope; this package specifies
// only the callback shape a checker is invoked through, plus a no-op
// default.
//
// Grounded on jaclang/compiler/passes/main/tests/test_type_check_pass.py
// and jaclang/plugin/feature.py: the type checker is invoked
// out-of-process-shaped, batching messages per file and reporting a
// severity flag alongside them.
package typecheck

import "github.com/jaclang-dev/jacc/internal/diag"

// Message is one type-diagnostic reported by an external checker. It
// carries the same uuid-tagged ID shape as diag.Diagnostic (DOMAIN STACK:
// google/uuid) so the two can be correlated by downstream tooling.
type Message struct {
	ID       string
	Severity diag.Severity
	Text     string
	Line     int
	Column   int
}

// Checker is the interface a real external type checker implements; the
// TypeCheck pass calls it once per compiled file.
type Checker interface {
	// Check runs the type checker against filename given its batch of
	// source text (the TypeCheck pass passes the module's whole generated
	// Python as one element), returning the messages it produced and
	// whether any of them is serious enough to be treated as an error.
	Check(filename string, batch []string) ([]Message, bool)
}

// NoOp is the bundled default Checker: it always reports zero diagnostics.
// A full external type checker is the stand-in this replaces.
type NoOp struct{}

// NewNoOp creates the default, always-clean Checker.
func NewNoOp() *NoOp { return &NoOp{} }

func (c *NoOp) Check(filename string, batch []string) ([]Message, bool) {
	return nil, false
}
