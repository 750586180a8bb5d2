package ast

// GlobalRef is the `:g:name` form referring directly to a global variable,
// bypassing any shadowing local of the same name.
type GlobalRef struct {
	Base
	Name *Name
}

func (r *GlobalRef) Kind() Kind       { return KGlobalRef }
func (r *GlobalRef) Children() []Node { return nonNil(r.Name) }
func (r *GlobalRef) expressionNode()  {}

// HereRef is the `here` keyword: the node a walker ability is executing on.
type HereRef struct{ Base }

func (r *HereRef) Kind() Kind       { return KHereRef }
func (r *HereRef) Children() []Node { return nil }
func (r *HereRef) expressionNode()  {}

// VisitorRef is the `visitor` keyword: the walker instance itself, as seen
// from inside a node/edge ability.
type VisitorRef struct{ Base }

func (r *VisitorRef) Kind() Kind       { return KVisitorRef }
func (r *VisitorRef) Children() []Node { return nil }
func (r *VisitorRef) expressionNode()  {}

// NodeRef, EdgeRef, WalkerRef, FuncRef, ObjectRef, AbilityRef are
// kind-qualified name references (`:node:Foo`, `:walker:Bar`, …) used to
// refer to an architype or ability by its declared kind rather than as a
// plain identifier — disambiguates same-named symbols of different kinds.
type NodeRef struct {
	Base
	Name *Name
}

func (r *NodeRef) Kind() Kind       { return KNodeRef }
func (r *NodeRef) Children() []Node { return nonNil(r.Name) }
func (r *NodeRef) expressionNode()  {}

type EdgeRef struct {
	Base
	Name *Name
	Dir  string // "in", "out", "any"
}

func (r *EdgeRef) Kind() Kind       { return KEdgeRef }
func (r *EdgeRef) Children() []Node { return nonNil(r.Name) }
func (r *EdgeRef) expressionNode()  {}

type WalkerRef struct {
	Base
	Name *Name
}

func (r *WalkerRef) Kind() Kind       { return KWalkerRef }
func (r *WalkerRef) Children() []Node { return nonNil(r.Name) }
func (r *WalkerRef) expressionNode()  {}

type FuncRef struct {
	Base
	Name *Name
}

func (r *FuncRef) Kind() Kind       { return KFuncRef }
func (r *FuncRef) Children() []Node { return nonNil(r.Name) }
func (r *FuncRef) expressionNode()  {}

type ObjectRef struct {
	Base
	Name *Name
}

func (r *ObjectRef) Kind() Kind       { return KObjectRef }
func (r *ObjectRef) Children() []Node { return nonNil(r.Name) }
func (r *ObjectRef) expressionNode()  {}

type AbilityRef struct {
	Base
	Name *Name
}

func (r *AbilityRef) Kind() Kind       { return KAbilityRef }
func (r *AbilityRef) Children() []Node { return nonNil(r.Name) }
func (r *AbilityRef) expressionNode()  {}
