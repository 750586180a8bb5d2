package runtime

import (
	"fmt"
	"strings"
)

// Stub is the default Hooks implementation: every method renders a call
// into the generated Python's `_jac.<hook>(...)` namespace rather than
// executing anything itself.
type Stub struct{}

// NewStub creates the default runtime hook emitter.
func NewStub() *Stub { return &Stub{} }

func call(name string, args ...string) string {
	return fmt.Sprintf("%s.%s(%s)", ModuleAlias, name, strings.Join(args, ", "))
}

func (s *Stub) MakeArchetype(kind ArchKind, onEntry, onExit []string) string {
	return call(hookMakeArchetype, fmt.Sprintf("%q", kind), listLit(onEntry), listLit(onExit))
}

func (s *Stub) Elvis(a, b string) string { return call(hookElvis, a, b) }

func (s *Stub) Report(expr string) string { return call(hookReport, expr) }

func (s *Stub) Ignore(walker, expr string) string { return call(hookIgnore, walker, expr) }

func (s *Stub) VisitNode(walker, target string) string { return call(hookVisitNode, walker, target) }

func (s *Stub) Disengage(walker string) string { return call(hookDisengage, walker) }

func (s *Stub) EdgeRef(node string, dir Dir, filterType string) string {
	return call(hookEdgeRef, node, fmt.Sprintf("%q", dir), filterType)
}

func (s *Stub) Connect(left, right, edgeSpec string) string {
	return call(hookConnect, left, right, edgeSpec)
}

func (s *Stub) Disconnect(a, b, op string) string { return call(hookDisconnect, a, b, op) }

func (s *Stub) AssignCompr(target string, attrs, values []string) string {
	return call(hookAssignCompr, target, fmt.Sprintf("(%s, %s)", listLit(attrs), listLit(values)))
}

func (s *Stub) GetRoot() string { return call(hookGetRoot) }

func (s *Stub) BuildEdge(dir Dir, typ, assign string) string {
	return call(hookBuildEdge, fmt.Sprintf("%q", dir), typ, assign)
}

func listLit(items []string) string {
	return "[" + strings.Join(items, ", ") + "]"
}
