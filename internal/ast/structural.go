package ast

import "github.com/jaclang-dev/jacc/internal/token"

// Module is the root node of every compilation unit.
type Module struct {
	Base
	Name  string
	Path  string // canonical filesystem path, used as the module registry key
	Elems *Elements
	Doc   string
}

func NewModule(span token.Span, name, path string) *Module {
	return &Module{Base: NewBase(span), Name: name, Path: path}
}

func (m *Module) Kind() Kind       { return KModule }
func (m *Module) Children() []Node { return nonNil(m.Elems) }

// Elements holds the ordered top-level declarations of a Module.
type Elements struct {
	Base
	Items []Node // GlobalVars, Test, ModuleCode, Import, Architype, Ability, AbilitySpec
}

func (e *Elements) Kind() Kind { return KElements }
func (e *Elements) Children() []Node {
	return e.Items
}

// CodeBlock is the scope-creating body of an if/loop/try branch that follows
// the target language's own block-scoping rules.
type CodeBlock struct {
	Base
	Statements []Statement
}

func (c *CodeBlock) Kind() Kind { return KCodeBlock }
func (c *CodeBlock) Children() []Node {
	out := make([]Node, len(c.Statements))
	for i, s := range c.Statements {
		out[i] = s
	}
	return out
}
func (c *CodeBlock) statementNode() {}

// ArchBlock is the scope-creating body of an Architype (has-vars, abilities,
// nested constants).
type ArchBlock struct {
	Base
	Members []Node // ArchHas, Ability, AbilitySpec
}

func (a *ArchBlock) Kind() Kind       { return KArchBlock }
func (a *ArchBlock) Children() []Node { return a.Members }
