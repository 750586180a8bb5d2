// Package diag defines the structured diagnostics passes attach to AST
// nodes. Diagnostics travel with the AST (collected on pass.Context), never across
// a Go error return, except for the fatal-internal-error case a pass
// reports by returning a non-nil error (see pass.Pass).
package diag

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/jaclang-dev/jacc/internal/ast"
	"github.com/jaclang-dev/jacc/internal/token"
)

// Severity classifies a Diagnostic's taxonomy.
type Severity int

const (
	SeverityWarning Severity = iota
	SeverityError
	SeverityHint
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityHint:
		return "hint"
	default:
		return "warning"
	}
}

// Kind names the family of a Diagnostic, for programmatic consumers that
// want to filter or group without string-matching Message.
type Kind string

const (
	KindRedeclaration      Kind = "redeclaration"
	KindUnresolvedName     Kind = "unresolved_name"
	KindDeclWithoutDef     Kind = "decl_without_def"
	KindDefWithoutDecl     Kind = "def_without_decl"
	KindAmbiguousDef       Kind = "ambiguous_def"
	KindImportMissing      Kind = "import_missing"
	KindImportAmbiguous    Kind = "import_ambiguous"
	KindImportNotPublic    Kind = "import_not_public"
	KindFeatureUnsupported Kind = "feature_unsupported"
	KindSkipUnsupported    Kind = "skip_unsupported"
	KindEventUnsupported   Kind = "event_ability_unsupported"
	KindInternal           Kind = "internal"
)

// Diagnostic is one message attached to a node at a source position.
type Diagnostic struct {
	ID       string
	Severity Severity
	Kind     Kind
	Message  string
	Pos      token.Position
	Node     ast.Node // nearest node the diagnostic is keyed to; may be nil
}

func newID() string { return uuid.NewString() }

func new_(sev Severity, kind Kind, node ast.Node, pos token.Position, format string, args ...interface{}) *Diagnostic {
	return &Diagnostic{
		ID:       newID(),
		Severity: sev,
		Kind:     kind,
		Message:  fmt.Sprintf(format, args...),
		Pos:      pos,
		Node:     node,
	}
}

func (d *Diagnostic) String() string {
	return fmt.Sprintf("%s: %s: %s", d.Pos, d.Severity, d.Message)
}

// NewRedeclaration reports a duplicate identifier in one scope, carrying
// both the original and the conflicting position.
func NewRedeclaration(node ast.Node, name string, pos, firstPos token.Position) *Diagnostic {
	return new_(SeverityError, KindRedeclaration, node, pos,
		"'%s' is already declared at %s", name, firstPos)
}

// NewUnresolvedName reports a name reference that no enclosing scope binds.
func NewUnresolvedName(node ast.Node, name string, pos token.Position) *Diagnostic {
	return new_(SeverityError, KindUnresolvedName, node, pos,
		"unresolved name '%s'", name)
}

// NewDeclWithoutDef reports a forward declaration with no matching
// definition.
func NewDeclWithoutDef(node ast.Node, name string, pos token.Position) *Diagnostic {
	return new_(SeverityWarning, KindDeclWithoutDef, node, pos,
		"declaration without definition: '%s'", name)
}

// NewDefWithoutDecl reports a definition with no prior declaration.
func NewDefWithoutDecl(node ast.Node, name string, pos token.Position) *Diagnostic {
	return new_(SeverityError, KindDefWithoutDecl, node, pos,
		"definition without declaration: '%s'", name)
}

// NewAmbiguousDef reports more than one definition matching one declaration.
func NewAmbiguousDef(node ast.Node, name string, pos token.Position, locs []token.Position) *Diagnostic {
	return new_(SeverityError, KindAmbiguousDef, node, pos,
		"multiple definitions for '%s': %v", name, locs)
}

// NewImportMissing reports a module path that resolved against no search
// root.
func NewImportMissing(node ast.Node, path string, pos token.Position) *Diagnostic {
	return new_(SeverityError, KindImportMissing, node, pos,
		"cannot find module '%s'", path)
}

// NewImportAmbiguous reports a module path matching more than one search
// root.
func NewImportAmbiguous(node ast.Node, path string, pos token.Position, roots []string) *Diagnostic {
	return new_(SeverityError, KindImportAmbiguous, node, pos,
		"module '%s' is ambiguous across search roots %v", path, roots)
}

// NewImportNotPublic reports an attempt to import a non-public symbol.
func NewImportNotPublic(node ast.Node, name string, pos token.Position) *Diagnostic {
	return new_(SeverityError, KindImportNotPublic, node, pos,
		"'%s' is not public and cannot be imported", name)
}

// NewFeatureUnsupported reports a recognized construct the code generator
// cannot lower at this stage.
func NewFeatureUnsupported(node ast.Node, feature string, pos token.Position) *Diagnostic {
	return new_(SeverityWarning, KindFeatureUnsupported, node, pos,
		"feature not implemented: %s", feature)
}

// NewSkipUnsupported reports the `skip` control statement, which has no
// target-language equivalent and emits nothing.
func NewSkipUnsupported(node ast.Node, pos token.Position) *Diagnostic {
	return new_(SeverityWarning, KindSkipUnsupported, node, pos,
		"'skip' has no equivalent in the target language; nothing emitted")
}

// NewEventUnsupported reports an event-driven ability, which this bootstrap
// code generator cannot lower.
func NewEventUnsupported(node ast.Node, name string, pos token.Position) *Diagnostic {
	return new_(SeverityError, KindEventUnsupported, node, pos,
		"event-driven ability '%s' cannot be lowered by this code generator", name)
}

// NewInternal reports a fatal internal invariant violation.
func NewInternal(pos token.Position, format string, args ...interface{}) *Diagnostic {
	return new_(SeverityError, KindInternal, nil, pos, format, args...)
}
