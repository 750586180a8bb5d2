// Package ast defines the Abstract Syntax Tree node types for Jac.
//
// Every node knows its source span and its parent (a lookup-only back
// reference owned by the tree, never by the child, to avoid cyclic
// ownership of AST parent links). Derived analytical data attached by passes
// (sub-node index, resolved symbol, scope, generated code, completion flag)
// lives off-node in sema.Info, not in a per-node bag; see sema.Info for the
// rationale. Diagnostics are collected on pass.Context.
package ast

import (
	"reflect"

	"github.com/jaclang-dev/jacc/internal/token"
)

// Kind tags every concrete node type. The set is closed and exhaustive;
// passes dispatch on it with a type switch rather than reflection.
type Kind int

const (
	KModule Kind = iota
	KElements
	KCodeBlock
	KArchBlock

	KGlobalVars
	KTest
	KModuleCode
	KImport
	KImportItem
	KArchitype
	KAbility
	KAbilitySpec
	KArchHas
	KHasVar
	KParamVar

	KIf
	KWhile
	KIterFor
	KInFor
	KDictFor
	KTry
	KExcept
	KRaise
	KAssert
	KReturn
	KYield
	KCtrl
	KDelete
	KVisit
	KRevisit
	KDisengage
	KSync
	KReport
	KIgnore
	KExprStmt

	KBinary
	KUnary
	KIfElseExpr
	KSpawn
	KUnpack
	KMultiString
	KList
	KDict
	KComprehension
	KAtomTrailer
	KFuncCall
	KIndexSlice
	KAssignment
	KTypeSpec

	KGlobalRef
	KHereRef
	KVisitorRef
	KNodeRef
	KEdgeRef
	KWalkerRef
	KFuncRef
	KObjectRef
	KAbilityRef

	KName
	KKeyword
	KLiteral
)

//go:generate stringer -type=Kind

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "Unknown"
}

var kindNames = map[Kind]string{
	KModule: "Module", KElements: "Elements", KCodeBlock: "CodeBlock", KArchBlock: "ArchBlock",
	KGlobalVars: "GlobalVars", KTest: "Test", KModuleCode: "ModuleCode", KImport: "Import",
	KImportItem: "ImportItem", KArchitype: "Architype", KAbility: "Ability", KAbilitySpec: "AbilitySpec",
	KArchHas: "ArchHas", KHasVar: "HasVar", KParamVar: "ParamVar",
	KIf: "If", KWhile: "While", KIterFor: "IterFor", KInFor: "InFor", KDictFor: "DictFor",
	KTry: "Try", KExcept: "Except", KRaise: "Raise", KAssert: "Assert", KReturn: "Return",
	KYield: "Yield", KCtrl: "Ctrl", KDelete: "Delete", KVisit: "Visit", KRevisit: "Revisit",
	KDisengage: "Disengage", KSync: "Sync", KReport: "Report", KIgnore: "Ignore", KExprStmt: "ExprStmt",
	KBinary: "Binary", KUnary: "Unary", KIfElseExpr: "IfElse", KSpawn: "Spawn", KUnpack: "Unpack",
	KMultiString: "MultiString", KList: "List", KDict: "Dict", KComprehension: "Comprehension",
	KAtomTrailer: "AtomTrailer", KFuncCall: "FuncCall", KIndexSlice: "IndexSlice",
	KAssignment: "Assignment", KTypeSpec: "TypeSpec",
	KGlobalRef: "GlobalRef", KHereRef: "HereRef", KVisitorRef: "VisitorRef", KNodeRef: "NodeRef",
	KEdgeRef: "EdgeRef", KWalkerRef: "WalkerRef", KFuncRef: "FuncRef", KObjectRef: "ObjectRef",
	KAbilityRef: "AbilityRef",
	KName:       "Name", KKeyword: "Keyword", KLiteral: "Literal",
}

// Node is the interface implemented by every AST node variant.
type Node interface {
	Kind() Kind
	Span() token.Span
	Parent() Node
	SetParent(Node)
	Children() []Node
}

// Expression is any node that produces a value.
type Expression interface {
	Node
	expressionNode()
}

// Statement is any node that performs an action but doesn't produce a value.
type Statement interface {
	Node
	statementNode()
}

// Base implements the Span/Parent/SetParent half of Node; every concrete
// node embeds it so only Kind() and Children() need to be written per type.
type Base struct {
	span   token.Span
	parent Node
}

// NewBase constructs a Base with the given span. Parent is attached later by
// the tree builder (AttachParent), never by the node's own constructor.
func NewBase(span token.Span) Base { return Base{span: span} }

func (b *Base) Span() token.Span  { return b.span }
func (b *Base) Parent() Node      { return b.parent }
func (b *Base) SetParent(p Node)  { b.parent = p }

// AttachParent walks children (one level) and sets their parent to n,
// recursing into n's own children. Call once after a subtree is fully built.
func AttachParent(n Node) {
	if n == nil {
		return
	}
	for _, c := range n.Children() {
		if c == nil {
			continue
		}
		c.SetParent(n)
		AttachParent(c)
	}
}

func nonNil(nodes ...Node) []Node {
	out := make([]Node, 0, len(nodes))
	for _, n := range nodes {
		if n == nil {
			continue
		}
		// An absent optional child arrives as a nil pointer wrapped in a
		// non-nil interface (e.g. a nil *CodeBlock); skip it as well.
		if v := reflect.ValueOf(n); v.Kind() == reflect.Ptr && v.IsNil() {
			continue
		}
		out = append(out, n)
	}
	return out
}

func flatten(groups ...[]Node) []Node {
	var out []Node
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}
