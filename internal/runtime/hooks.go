// Package runtime models the operation set a compiled Jac program expects
// from its support library at execution time. The code
// generator calls these methods only to obtain the Python call text it
// emits; the operations themselves run in a target-language library when
// the generated program executes. The interface is the single source of
// truth for which hook names exist and what they're named, so the
// generator and the default stub implementation can't drift apart.
//
// Grounded on the reference Python implementation's plug-in manager: its
// runtime-resolved hook specs become a Go interface implemented by a
// default type (Stub); each compiler.Compiler carries its own Hooks value,
// which a caller may replace.
package runtime

// Dir is the direction qualifier data-spatial edge operations take.
type Dir string

const (
	DirIn  Dir = "in"
	DirOut Dir = "out"
	DirAny Dir = "any"
)

// ArchKind is the kind qualifier make_architype's first argument takes.
type ArchKind string

const (
	KindObject ArchKind = "object"
	KindNode   ArchKind = "node"
	KindEdge   ArchKind = "edge"
	KindWalker ArchKind = "walker"
)

// Hooks is the exact operation set the generated program expects at
// runtime. The code generator calls
// these only for the call text it emits into Python; that text, at the
// generated program's own runtime, invokes an equivalent library written in
// the target language.
// This interface exists so Go-side tooling (golden tests, the default
// stub emitter) has one typed place enumerating the hook surface.
type Hooks interface {
	MakeArchetype(kind ArchKind, onEntry, onExit []string) string
	Elvis(a, b string) string
	Report(expr string) string
	Ignore(walker, expr string) string
	VisitNode(walker, target string) string
	Disengage(walker string) string
	EdgeRef(node string, dir Dir, filterType string) string
	Connect(left, right, edgeSpec string) string
	Disconnect(a, b, op string) string
	AssignCompr(target string, attrs, values []string) string
	GetRoot() string
	BuildEdge(dir Dir, typ, assign string) string
}

// These constants name every hook the default Stub implementation emits, as the
// attribute it calls on the generated program's runtime module import.
const (
	hookMakeArchetype = "make_architype"
	hookElvis         = "elvis"
	hookReport        = "report"
	hookIgnore        = "ignore"
	hookVisitNode     = "visit_node"
	hookDisengage     = "disengage"
	hookEdgeRef       = "edge_ref"
	hookConnect       = "connect"
	hookDisconnect    = "disconnect"
	hookAssignCompr   = "assign_compr"
	hookGetRoot       = "get_root"
	hookBuildEdge     = "build_edge"
)

// ModuleAlias qualifies every Stub hook call (`_jac.<hook>(...)`). The code
// generator emits only these calls, not an `import` that binds the name.
const ModuleAlias = "_jac"

// Names returns every hook name in its declared order, used by
// tooling that needs to enumerate the surface without instantiating Stub.
func Names() []string {
	return []string{
		hookMakeArchetype, hookElvis, hookReport, hookIgnore, hookVisitNode,
		hookDisengage, hookEdgeRef, hookConnect, hookDisconnect,
		hookAssignCompr, hookGetRoot, hookBuildEdge,
	}
}
