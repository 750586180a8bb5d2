// Package codegen implements the PyAST Gen Pass: lowers the
// resolved AST to Python source text, writing each node's fragment into
// sema.Info.PyCode so a parent's fragment is exactly the concatenation of
// its children's in document order.
//
// Grounded structurally on go-dws's AST String() emission style
// (bytes.Buffer accumulation, explicit reindent for nested blocks),
// generalized from debug-printing to code generation and from one
// generic emitter to a lowering table keyed by ast.Kind.
package codegen

import (
	"fmt"
	"strings"

	"github.com/jaclang-dev/jacc/internal/ast"
	"github.com/jaclang-dev/jacc/internal/diag"
	"github.com/jaclang-dev/jacc/internal/pass"
	"github.com/jaclang-dev/jacc/internal/runtime"
)

// Pass lowers module's AST into Python source text.
type Pass struct {
	Hooks runtime.Hooks
}

// New creates the PyAST Gen pass. A nil hooks defaults to runtime.NewStub().
func New(hooks runtime.Hooks) *Pass {
	if hooks == nil {
		hooks = runtime.NewStub()
	}
	return &Pass{Hooks: hooks}
}

func (p *Pass) Name() string { return "PyAST Gen" }

// Run lowers every node reachable from module, bottom-up.
func (p *Pass) Run(module *ast.Module, ctx *pass.Context) error {
	g := &generator{ctx: ctx, hooks: p.Hooks}
	g.genModule(module)
	return nil
}

// generator holds the single mutable indent level every lowering rule
// shares, plus the diagnostic sink and hook emitter it consults.
type generator struct {
	ctx    *pass.Context
	hooks  runtime.Hooks
	indent int
}

func indentStr(level int) string { return strings.Repeat(" ", 4*level) }

// emitLine renders one line at level+delta, reindenting any embedded
// newlines to the same level.
func (g *generator) emitLine(s string, delta int) string {
	level := g.indent + delta
	reindented := strings.ReplaceAll(s, "\n", "\n"+indentStr(level))
	return indentStr(level) + reindented + "\n"
}

func (g *generator) set(n ast.Node, code string) {
	g.ctx.Info.SetCode(n, code)
}

// genModule lowers the module doc-string line (if any) followed by its
// body's concatenated code.
func (g *generator) genModule(m *ast.Module) {
	var b strings.Builder
	if m.Doc != "" {
		b.WriteString(g.emitLine(fmt.Sprintf("%q", m.Doc), 0))
	}
	if m.Elems != nil {
		for _, item := range m.Elems.Items {
			b.WriteString(g.genTopLevel(item))
		}
	}
	g.set(m, b.String())
}

func (g *generator) genTopLevel(n ast.Node) string {
	switch node := n.(type) {
	case *ast.GlobalVars:
		return g.genGlobalVars(node)
	case *ast.Import:
		return g.genImport(node)
	case *ast.Architype:
		return g.genArchitype(node)
	case *ast.Ability:
		return g.genAbility(node)
	case *ast.AbilitySpec:
		return g.genAbilitySpec(node)
	case *ast.Test:
		return g.genTest(node)
	case *ast.ModuleCode:
		return g.genModuleCode(node)
	default:
		return ""
	}
}

func (g *generator) genGlobalVars(n *ast.GlobalVars) string {
	names := make([]string, len(n.Names))
	for i, nm := range n.Names {
		names[i] = nm.Value
	}
	typ := ""
	if n.Type != nil {
		typ = ": " + g.genTypeSpec(n.Type)
	}
	lhs := strings.Join(names, ", ")
	if len(n.Values) == 0 {
		code := g.emitLine(lhs+typ, 0)
		g.set(n, code)
		return code
	}
	vals := make([]string, len(n.Values))
	for i, v := range n.Values {
		vals[i] = g.genExpr(v)
	}
	code := g.emitLine(fmt.Sprintf("%s%s = %s", lhs, typ, strings.Join(vals, ", ")), 0)
	g.set(n, code)
	return code
}

func (g *generator) genImport(n *ast.Import) string {
	if n.Lang != ast.LangPy {
		// Source-language import; its target lives elsewhere in the
		// generated output, not inline (already pulled through resolution).
		g.set(n, "")
		return ""
	}
	var code string
	switch {
	case len(n.Items) > 0:
		items := make([]string, len(n.Items))
		for i, it := range n.Items {
			if it.Alias != "" {
				items[i] = fmt.Sprintf("%s as %s", it.Name, it.Alias)
			} else {
				items[i] = it.Name
			}
		}
		code = g.emitLine(fmt.Sprintf("from %s import %s", n.Path, strings.Join(items, ", ")), 0)
	case n.Alias != "":
		code = g.emitLine(fmt.Sprintf("import %s as %s", n.Path, n.Alias), 0)
	default:
		code = g.emitLine(fmt.Sprintf("import %s", n.Path), 0)
	}
	g.set(n, code)
	return code
}

func (g *generator) genArchitype(n *ast.Architype) string {
	if n.Access != ast.AccessPublic {
		g.ctx.Report(diag.NewFeatureUnsupported(n, "access specifier", n.Span().Start))
	}
	bases := make([]string, len(n.Bases))
	for i, b := range n.Bases {
		bases[i] = b.Value
	}
	header := n.Name.Value
	if len(bases) > 0 {
		header += "(" + strings.Join(bases, ", ") + ")"
	}
	var b strings.Builder
	b.WriteString(g.emitLine("class "+header+":", 0))

	g.indent++
	bodyEmpty := true
	if n.Body != nil {
		for _, member := range n.Body.Members {
			code := g.genArchMember(member, n)
			if strings.TrimSpace(code) != "" {
				bodyEmpty = false
			}
			b.WriteString(code)
		}
	}
	g.indent--

	if bodyEmpty {
		b.WriteString(g.emitLine("pass", 1))
	}

	code := b.String()
	g.set(n, code)
	return code
}

func (g *generator) genArchMember(member ast.Node, owner *ast.Architype) string {
	switch node := member.(type) {
	case *ast.ArchHas:
		return g.genArchHas(node)
	case *ast.Ability:
		return g.genAbility(node)
	case *ast.AbilitySpec:
		return g.genAbilitySpec(node)
	default:
		return ""
	}
}

// genArchHas lowers a `has` block into the synthesized initializer: a
// `def has_<id>:` header followed by one `self.name: T = value` (or
// `= None`) assignment per variable.
func (g *generator) genArchHas(n *ast.ArchHas) string {
	if n.Access != ast.AccessPublic {
		g.ctx.Report(diag.NewFeatureUnsupported(n, "access specifier", n.Span().Start))
	}
	id := fmt.Sprintf("%d", n.Span().Start.Line)
	var b strings.Builder
	b.WriteString(g.emitLine(fmt.Sprintf("def has_%s(self):", id), 0))
	g.indent++
	if len(n.Vars) == 0 {
		b.WriteString(g.emitLine("pass", 1))
	}
	for _, v := range n.Vars {
		b.WriteString(g.genHasVarInit(v))
	}
	g.indent--
	code := b.String()
	g.set(n, code)
	return code
}

func (g *generator) genHasVarInit(v *ast.HasVar) string {
	typ := ""
	if v.Type != nil {
		typ = ": " + g.genTypeSpec(v.Type)
	}
	value := "None"
	if v.Value != nil {
		value = g.genExpr(v.Value)
	}
	code := g.emitLine(fmt.Sprintf("self.%s%s = %s", v.Name.Value, typ, value), 1)
	g.set(v, code)
	return code
}

func (g *generator) genAbility(n *ast.Ability) string {
	if n.Event != ast.EventNone {
		g.ctx.Report(diag.NewEventUnsupported(n, n.Name.Value, n.Span().Start))
		g.ctx.Info.MarkIncomplete(n)
		g.set(n, "")
		return ""
	}
	if n.Access != ast.AccessPublic {
		g.ctx.Report(diag.NewFeatureUnsupported(n, "access specifier", n.Span().Start))
	}

	body := n.Body
	if body == nil && n.DefLink != nil {
		body = n.DefLink.Body
	}
	if body == nil {
		// Forward declaration with no definition anywhere (already reported
		// by DeclDefMatch); nothing to emit for this node.
		g.set(n, "")
		return ""
	}

	sig := g.genFuncSignature(n.Params, n.ReturnType)
	var b strings.Builder
	b.WriteString(g.emitLine(fmt.Sprintf("def %s%s:", n.Name.Value, sig), 0))
	g.indent++
	b.WriteString(g.genCodeBlockBody(body))
	g.indent--
	code := b.String()
	g.set(n, code)
	return code
}

// genAbilitySpec lowers an out-of-line `:can:name { ... }` definition. When
// it is already linked to a forward declaration, the declaration's own
// lowering already emitted the merged def; emitting it again here would
// duplicate the body, so this returns "".
func (g *generator) genAbilitySpec(n *ast.AbilitySpec) string {
	if n.DeclLink != nil {
		g.set(n, "")
		return ""
	}
	name := ""
	if n.Name != nil {
		name = n.Name.Value
	}
	var b strings.Builder
	b.WriteString(g.emitLine(fmt.Sprintf("def %s(self):", name), 0))
	g.indent++
	b.WriteString(g.genCodeBlockBody(n.Body))
	g.indent--
	code := b.String()
	g.set(n, code)
	return code
}

func (g *generator) genFuncSignature(params []*ast.ParamVar, ret *ast.TypeSpec) string {
	parts := make([]string, 0, len(params)+1)
	parts = append(parts, "self")
	for _, p := range params {
		typ := ""
		if p.Type != nil {
			typ = ": " + g.genTypeSpec(p.Type)
		}
		if p.Default != nil {
			parts = append(parts, fmt.Sprintf("%s%s = %s", p.Name.Value, typ, g.genExpr(p.Default)))
		} else {
			parts = append(parts, p.Name.Value+typ)
		}
	}
	sig := "(" + strings.Join(parts, ", ") + ")"
	if ret != nil {
		sig += " -> " + g.genTypeSpec(ret)
	}
	return sig
}

func (g *generator) genTest(n *ast.Test) string {
	var b strings.Builder
	b.WriteString(g.emitLine(fmt.Sprintf("def test_%s():", n.Name), 0))
	g.indent++
	b.WriteString(g.genCodeBlockBody(n.Body))
	g.indent--
	code := b.String()
	g.set(n, code)
	return code
}

func (g *generator) genModuleCode(n *ast.ModuleCode) string {
	code := g.genCodeBlockBody(n.Body)
	g.set(n, code)
	return code
}

// genTypeSpec lowers the possibly-nested TypeSpec: atomic
// name, List[T], or Dict[K, V].
func (g *generator) genTypeSpec(t *ast.TypeSpec) string {
	switch strings.ToLower(t.Name) {
	case "list":
		inner := ""
		if len(t.Args) > 0 {
			inner = g.genTypeSpec(t.Args[0])
		}
		code := "List[" + inner + "]"
		g.set(t, code)
		return code
	case "dict":
		k, v := "", ""
		if len(t.Args) > 0 {
			k = g.genTypeSpec(t.Args[0])
		}
		if len(t.Args) > 1 {
			v = g.genTypeSpec(t.Args[1])
		}
		code := "Dict[" + k + ", " + v + "]"
		g.set(t, code)
		return code
	default:
		g.set(t, t.Name)
		return t.Name
	}
}

// genCodeBlockBody lowers a CodeBlock's statements, falling back to `pass`
// when the block is empty (Python requires a non-empty suite).
func (g *generator) genCodeBlockBody(b *ast.CodeBlock) string {
	if b == nil || len(b.Statements) == 0 {
		return g.emitLine("pass", 1)
	}
	var out strings.Builder
	for _, s := range b.Statements {
		out.WriteString(g.genStmt(s))
	}
	code := out.String()
	if b != nil {
		g.set(b, code)
	}
	return code
}

func (g *generator) genStmt(s ast.Statement) string {
	switch n := s.(type) {
	case *ast.If:
		return g.genIf(n)
	case *ast.While:
		return g.genWhile(n)
	case *ast.IterFor:
		return g.genIterFor(n)
	case *ast.InFor:
		return g.genInFor(n)
	case *ast.DictFor:
		return g.genDictFor(n)
	case *ast.Try:
		return g.genTry(n)
	case *ast.Raise:
		return g.genRaise(n)
	case *ast.Assert:
		return g.genAssert(n)
	case *ast.Return:
		return g.genReturnOrYield(n, "return", n.Expr)
	case *ast.Yield:
		return g.genReturnOrYield(n, "yield", n.Expr)
	case *ast.Delete:
		return g.genOneLine(n, "del "+g.genExpr(n.Target))
	case *ast.Ctrl:
		return g.genCtrl(n)
	case *ast.Visit:
		return g.genVisit(n)
	case *ast.Revisit:
		return g.genRevisit(n)
	case *ast.Disengage:
		return g.genOneLine(n, g.hooks.Disengage("self"))
	case *ast.Sync:
		return g.genOneLine(n, g.genExpr(n.Target))
	case *ast.Report:
		return g.genOneLine(n, g.hooks.Report(g.genExpr(n.Expr)))
	case *ast.Ignore:
		return g.genOneLine(n, g.hooks.Ignore("self", g.genExpr(n.Target)))
	case *ast.ExprStmt:
		return g.genOneLine(n, g.genExpr(n.Expr))
	case *ast.GlobalVars:
		return g.genGlobalVars(n)
	case *ast.Assignment:
		return g.genOneLine(n, g.genExpr(n.Target)+" "+n.Operator+" "+g.genExpr(n.Value))
	default:
		pass.MarkIncomplete(g.ctx, s, s.Kind().String())
		return ""
	}
}

func (g *generator) genOneLine(n ast.Node, line string) string {
	code := g.emitLine(line, 0)
	g.set(n, code)
	return code
}

func (g *generator) genIf(n *ast.If) string {
	var b strings.Builder
	b.WriteString(g.emitLine("if "+g.genExpr(n.Cond)+":", 0))
	g.indent++
	b.WriteString(g.genCodeBlockBody(n.Body))
	g.indent--
	for _, ei := range n.ElseIfs {
		b.WriteString(g.emitLine("elif "+g.genExpr(ei.Cond)+":", 0))
		g.indent++
		b.WriteString(g.genCodeBlockBody(ei.Body))
		g.indent--
	}
	if n.Else != nil {
		b.WriteString(g.emitLine("else:", 0))
		g.indent++
		b.WriteString(g.genCodeBlockBody(n.Else))
		g.indent--
	}
	code := b.String()
	g.set(n, code)
	return code
}

func (g *generator) genWhile(n *ast.While) string {
	var b strings.Builder
	b.WriteString(g.emitLine("while "+g.genExpr(n.Cond)+":", 0))
	g.indent++
	b.WriteString(g.genCodeBlockBody(n.Body))
	g.indent--
	code := b.String()
	g.set(n, code)
	return code
}

// genIterFor lowers the counted `for init to cond by step {}` form into the
// init statement followed by a while loop with the step appended to the
// body.
func (g *generator) genIterFor(n *ast.IterFor) string {
	var b strings.Builder
	if n.Init != nil {
		b.WriteString(g.genStmt(n.Init))
	}
	cond := "True"
	if n.Cond != nil {
		cond = g.genExpr(n.Cond)
	}
	b.WriteString(g.emitLine("while "+cond+":", 0))
	g.indent++
	b.WriteString(g.genCodeBlockBody(n.Body))
	if n.CountBy != nil {
		b.WriteString(g.genStmt(n.CountBy))
	}
	g.indent--
	code := b.String()
	g.set(n, code)
	return code
}

func (g *generator) genInFor(n *ast.InFor) string {
	var b strings.Builder
	b.WriteString(g.emitLine(fmt.Sprintf("for %s in %s:", n.Var.Value, g.genExpr(n.Collection)), 0))
	g.indent++
	b.WriteString(g.genCodeBlockBody(n.Body))
	g.indent--
	code := b.String()
	g.set(n, code)
	return code
}

func (g *generator) genDictFor(n *ast.DictFor) string {
	var b strings.Builder
	header := fmt.Sprintf("for %s, %s in %s.items():", n.Key.Value, n.Value.Value, g.genExpr(n.Collection))
	b.WriteString(g.emitLine(header, 0))
	g.indent++
	b.WriteString(g.genCodeBlockBody(n.Body))
	g.indent--
	code := b.String()
	g.set(n, code)
	return code
}

func (g *generator) genTry(n *ast.Try) string {
	var b strings.Builder
	b.WriteString(g.emitLine("try:", 0))
	g.indent++
	b.WriteString(g.genCodeBlockBody(n.Body))
	g.indent--
	for _, h := range n.Handlers {
		header := "except"
		if h.Type != nil {
			header += " " + h.Type.Value
			if h.As != nil {
				header += " as " + h.As.Value
			}
		}
		b.WriteString(g.emitLine(header+":", 0))
		g.indent++
		b.WriteString(g.genCodeBlockBody(h.Body))
		g.indent--
	}
	if n.Finally != nil {
		b.WriteString(g.emitLine("finally:", 0))
		g.indent++
		b.WriteString(g.genCodeBlockBody(n.Finally))
		g.indent--
	}
	code := b.String()
	g.set(n, code)
	return code
}

func (g *generator) genRaise(n *ast.Raise) string {
	line := "raise"
	if n.Expr != nil {
		line += " " + g.genExpr(n.Expr)
	}
	return g.genOneLine(n, line)
}

func (g *generator) genAssert(n *ast.Assert) string {
	line := "assert " + g.genExpr(n.Cond)
	if n.Msg != nil {
		line += ", " + g.genExpr(n.Msg)
	}
	return g.genOneLine(n, line)
}

func (g *generator) genReturnOrYield(n ast.Node, kw string, expr ast.Expression) string {
	line := kw
	if expr != nil {
		line += " " + g.genExpr(expr)
	}
	return g.genOneLine(n, line)
}

func (g *generator) genCtrl(n *ast.Ctrl) string {
	switch n.CKind {
	case ast.CtrlBreak:
		return g.genOneLine(n, "break")
	case ast.CtrlContinue:
		return g.genOneLine(n, "continue")
	default:
		g.ctx.Report(diag.NewSkipUnsupported(n, n.Span().Start))
		g.ctx.Info.MarkIncomplete(n)
		g.set(n, "")
		return ""
	}
}

func (g *generator) genVisit(n *ast.Visit) string {
	line := g.hooks.VisitNode("self", g.genExpr(n.Target))
	if n.Else == nil {
		return g.genOneLine(n, line)
	}
	var b strings.Builder
	b.WriteString(g.emitLine("if not "+line+":", 0))
	g.indent++
	b.WriteString(g.genCodeBlockBody(n.Else))
	g.indent--
	code := b.String()
	g.set(n, code)
	return code
}

func (g *generator) genRevisit(n *ast.Revisit) string {
	target := "self"
	if n.Target != nil {
		target = g.genExpr(n.Target)
	}
	return g.genOneLine(n, g.hooks.VisitNode("self", target))
}

// genExpr lowers an expression to Python text. Expression fragments are
// recorded in sema.Info too, but unlike statements/declarations callers
// consume the returned string directly rather than re-reading Info, since
// expressions commonly need to be embedded inline by their parent.
func (g *generator) genExpr(e ast.Expression) string {
	if e == nil {
		return ""
	}
	var code string
	switch n := e.(type) {
	case *ast.Name:
		code = n.Value
	case *ast.Literal:
		code = n.Raw
	case *ast.Binary:
		if n.Operator == "?:" {
			code = g.hooks.Elvis(g.genExpr(n.Left), g.genExpr(n.Right))
		} else {
			code = g.genExpr(n.Left) + " " + pyOperator(n.Operator) + " " + g.genExpr(n.Right)
		}
	case *ast.Unary:
		code = pyOperator(n.Operator) + g.genExpr(n.Operand)
	case *ast.IfElseExpr:
		code = g.genExpr(n.Then) + " if " + g.genExpr(n.Cond) + " else " + g.genExpr(n.Else)
	case *ast.Spawn:
		code = g.genExpr(n.Type) + "(" + g.genExprList(n.Args) + ")"
	case *ast.Unpack:
		prefix := "*"
		if n.Double {
			prefix = "**"
		}
		code = prefix + g.genExpr(n.Expr)
	case *ast.MultiString:
		parts := make([]string, len(n.Parts))
		for i, p := range n.Parts {
			parts[i] = g.genExpr(p)
		}
		code = strings.Join(parts, " ")
	case *ast.List:
		code = "[" + g.genExprList(n.Items) + "]"
	case *ast.Dict:
		entries := make([]string, len(n.Entries))
		for i, en := range n.Entries {
			entries[i] = g.genExpr(en.Key) + ": " + g.genExpr(en.Value)
		}
		code = "{" + strings.Join(entries, ", ") + "}"
	case *ast.Comprehension:
		code = g.genComprehension(n)
	case *ast.AtomTrailer:
		if n.Attr != nil {
			code = g.genExpr(n.Target) + "." + n.Attr.Value
		} else {
			code = g.genExpr(n.Target)
		}
	case *ast.FuncCall:
		code = g.genExpr(n.Target) + "(" + g.genArgs(n.Args) + ")"
	case *ast.IndexSlice:
		code = g.genIndexSlice(n)
	case *ast.Assignment:
		code = g.genExpr(n.Target) + " " + n.Operator + " " + g.genExpr(n.Value)
	case *ast.GlobalRef:
		code = n.Name.Value
	case *ast.HereRef:
		code = "here"
	case *ast.VisitorRef:
		code = "self"
	case *ast.NodeRef, *ast.EdgeRef, *ast.WalkerRef, *ast.FuncRef, *ast.ObjectRef, *ast.AbilityRef:
		code = g.genKindRef(n)
	case *ast.TypeSpec:
		code = g.genTypeSpec(n)
	default:
		pass.MarkIncomplete(g.ctx, e, e.Kind().String())
		return ""
	}
	g.set(e, code)
	return code
}

func (g *generator) genKindRef(e ast.Expression) string {
	switch n := e.(type) {
	case *ast.NodeRef:
		return n.Name.Value
	case *ast.EdgeRef:
		return g.hooks.EdgeRef("self", runtime.Dir(n.Dir), n.Name.Value)
	case *ast.WalkerRef:
		return n.Name.Value
	case *ast.FuncRef:
		return n.Name.Value
	case *ast.ObjectRef:
		return n.Name.Value
	case *ast.AbilityRef:
		return n.Name.Value
	default:
		return ""
	}
}

func (g *generator) genExprList(items []ast.Expression) string {
	parts := make([]string, len(items))
	for i, it := range items {
		parts[i] = g.genExpr(it)
	}
	return strings.Join(parts, ", ")
}

func (g *generator) genArgs(args []ast.Arg) string {
	parts := make([]string, len(args))
	for i, a := range args {
		if a.Name != "" {
			parts[i] = a.Name + "=" + g.genExpr(a.Value)
		} else {
			parts[i] = g.genExpr(a.Value)
		}
	}
	return strings.Join(parts, ", ")
}

func (g *generator) genIndexSlice(n *ast.IndexSlice) string {
	target := g.genExpr(n.Target)
	if !n.IsSlice {
		return target + "[" + g.genExpr(n.Index) + "]"
	}
	start, stop, step := g.genExpr(n.Start), g.genExpr(n.Stop), g.genExpr(n.Step)
	idx := start + ":" + stop
	if step != "" {
		idx += ":" + step
	}
	return target + "[" + idx + "]"
}

func (g *generator) genComprehension(n *ast.Comprehension) string {
	clause := fmt.Sprintf("for %s in %s", n.Var.Value, g.genExpr(n.Collection))
	if n.Cond != nil {
		clause += " if " + g.genExpr(n.Cond)
	}
	if n.ResultKey != nil {
		return "{" + g.genExpr(n.ResultKey) + ": " + g.genExpr(n.Result) + " " + clause + "}"
	}
	return "[" + g.genExpr(n.Result) + " " + clause + "]"
}

// pyOperator maps a handful of source-language operator spellings that
// differ from Python's onto their Python equivalent; anything else passes
// through unchanged.
func pyOperator(op string) string {
	switch op {
	case "&&":
		return "and"
	case "||":
		return "or"
	case "!":
		return "not "
	default:
		return op
	}
}
