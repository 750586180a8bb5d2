// Package parser implements a hand-written recursive-descent parser over
// the token stream produced by internal/lexer, building the internal/ast
// tree the rest of the pipeline operates on.
//
// The multi-pass pipeline downstream treats the lexer/parser as given —
// this is a compact front end sufficient to exercise the SubNodeTable
// through PyAST Gen passes, not the focus of this repo.
package parser

import (
	"fmt"

	"github.com/jaclang-dev/jacc/internal/ast"
	"github.com/jaclang-dev/jacc/internal/lexer"
	"github.com/jaclang-dev/jacc/internal/token"
)

// Parser consumes a Lexer's token stream one token of lookahead at a time.
type Parser struct {
	l      *lexer.Lexer
	file   string
	cur    token.Token
	peek   token.Token
	Errors []string
}

// New creates a Parser reading from l.
func New(file string, l *lexer.Lexer) *Parser {
	p := &Parser{l: l, file: file}
	p.next()
	p.next()
	return p
}

// Parse parses a complete module named name.
func Parse(file, name, source string) (*ast.Module, []string) {
	p := New(file, lexer.New(file, source))
	mod := p.ParseModule(name)
	return mod, p.Errors
}

func (p *Parser) next() {
	p.cur = p.peek
	p.peek = p.l.NextToken()
}

func (p *Parser) errorf(format string, args ...interface{}) {
	p.Errors = append(p.Errors, fmt.Sprintf("%s: %s", p.cur.Pos, fmt.Sprintf(format, args...)))
}

func (p *Parser) at(t token.Type) bool  { return p.cur.Type == t }
func (p *Parser) peekAt(t token.Type) bool { return p.peek.Type == t }

func (p *Parser) expect(t token.Type) token.Token {
	tok := p.cur
	if !p.at(t) {
		p.errorf("expected token %v, got %q", t, p.cur.Literal)
	} else {
		p.next()
	}
	return tok
}

func (p *Parser) span(start token.Position) token.Span {
	return token.Span{Start: start, End: p.cur.Pos}
}

// ParseModule parses the whole token stream as one Module.
func (p *Parser) ParseModule(name string) *ast.Module {
	start := p.cur.Pos
	elems := &ast.Elements{Base: ast.NewBase(p.span(start))}

	for !p.at(token.EOF) {
		if item := p.parseTopLevel(); item != nil {
			elems.Items = append(elems.Items, item)
		} else {
			p.next() // avoid an infinite loop on an unrecognized token
		}
	}
	elems.Base = ast.NewBase(p.span(start))

	mod := ast.NewModule(p.span(start), name, p.file)
	mod.Elems = elems
	ast.AttachParent(mod)
	return mod
}

func (p *Parser) parseTopLevel() ast.Node {
	switch p.cur.Type {
	case token.IMPORT, token.INCLUDE:
		return p.parseImport()
	case token.GLOBAL, token.LET:
		return p.parseGlobalVars()
	case token.TEST:
		return p.parseTest()
	case token.WITH:
		return p.parseModuleCode()
	case token.OBJECT, token.NODE, token.EDGE, token.WALKER, token.ABSTRACT:
		return p.parseArchitype()
	case token.CAN, token.DEF:
		return p.parseAbility()
	case token.COLON:
		return p.parseAbilitySpec()
	case token.PRIV, token.PROT, token.PUB:
		return p.parseAccessPrefixed()
	default:
		p.errorf("unexpected top-level token %q", p.cur.Literal)
		return nil
	}
}

func (p *Parser) parseAccessPrefixed() ast.Node {
	access := p.parseAccess()
	switch p.cur.Type {
	case token.OBJECT, token.NODE, token.EDGE, token.WALKER, token.ABSTRACT:
		a := p.parseArchitype()
		if arch, ok := a.(*ast.Architype); ok {
			arch.Access = access
		}
		return a
	case token.CAN, token.DEF:
		a := p.parseAbility()
		if ab, ok := a.(*ast.Ability); ok {
			ab.Access = access
		}
		return a
	default:
		p.errorf("expected a declaration after access specifier")
		return nil
	}
}

func (p *Parser) parseAccess() ast.Access {
	switch p.cur.Type {
	case token.PRIV:
		p.next()
		return ast.AccessPrivate
	case token.PROT:
		p.next()
		return ast.AccessProtected
	case token.PUB:
		p.next()
		return ast.AccessPublic
	default:
		return ast.AccessPublic
	}
}

// parseImport handles both `import:py from math, {pi, sin as s};` and
// `import:py math;` / `import:py math as m;` forms.
func (p *Parser) parseImport() ast.Node {
	start := p.cur.Pos
	lang := ast.LangJac
	absorb := p.at(token.INCLUDE)
	p.next()
	if p.at(token.COLON) {
		p.next()
		if p.cur.Literal == "py" {
			lang = ast.LangPy
		}
		p.next()
	}

	imp := &ast.Import{Lang: lang, Absorb: absorb}

	if p.at(token.FROM) {
		p.next()
		imp.Path = p.parseDottedPath()
		p.expect(token.COMMA)
		p.expect(token.LBRACE)
		for !p.at(token.RBRACE) && !p.at(token.EOF) {
			imp.Items = append(imp.Items, p.parseImportItem())
			if p.at(token.COMMA) {
				p.next()
			}
		}
		p.expect(token.RBRACE)
	} else {
		imp.Path = p.parseDottedPath()
		if p.at(token.AS) {
			p.next()
			imp.Alias = p.expect(token.IDENT).Literal
		}
	}
	if p.at(token.SEMI) {
		p.next()
	}
	imp.Base = ast.NewBase(p.span(start))
	return imp
}

func (p *Parser) parseImportItem() *ast.ImportItem {
	start := p.cur.Pos
	name := p.expect(token.IDENT).Literal
	item := &ast.ImportItem{Name: name}
	if p.at(token.AS) {
		p.next()
		item.Alias = p.expect(token.IDENT).Literal
	}
	item.Base = ast.NewBase(p.span(start))
	return item
}

func (p *Parser) parseDottedPath() string {
	path := p.expect(token.IDENT).Literal
	for p.at(token.DOT) {
		p.next()
		path += "." + p.expect(token.IDENT).Literal
	}
	return path
}

func (p *Parser) parseGlobalVars() ast.Node {
	start := p.cur.Pos
	p.next() // `global` or `let`
	gv := &ast.GlobalVars{}
	for {
		gv.Names = append(gv.Names, ast.NewName(p.expect(token.IDENT)))
		if p.at(token.COMMA) {
			p.next()
			continue
		}
		break
	}
	if p.at(token.COLON) {
		p.next()
		gv.Type = p.parseTypeSpec()
	}
	if p.at(token.ASSIGN) {
		p.next()
		for {
			gv.Values = append(gv.Values, p.parseExpr())
			if p.at(token.COMMA) {
				p.next()
				continue
			}
			break
		}
	}
	if p.at(token.SEMI) {
		p.next()
	}
	gv.Base = ast.NewBase(p.span(start))
	return gv
}

func (p *Parser) parseTypeSpec() *ast.TypeSpec {
	start := p.cur.Pos
	name := p.expect(token.IDENT).Literal
	ts := &ast.TypeSpec{Name: name}
	if p.at(token.LBRACKET) {
		p.next()
		ts.Args = append(ts.Args, p.parseTypeSpec())
		for p.at(token.COMMA) {
			p.next()
			ts.Args = append(ts.Args, p.parseTypeSpec())
		}
		p.expect(token.RBRACKET)
	}
	ts.Base = ast.NewBase(p.span(start))
	return ts
}

func (p *Parser) parseTest() ast.Node {
	start := p.cur.Pos
	p.next() // `test`
	name := ""
	if p.at(token.IDENT) {
		name = p.cur.Literal
		p.next()
	}
	body := p.parseCodeBlock()
	return &ast.Test{Base: ast.NewBase(p.span(start)), Name: name, Body: body}
}

func (p *Parser) parseModuleCode() ast.Node {
	start := p.cur.Pos
	p.next() // `with`
	if p.at(token.ENTRY) || p.at(token.EXIT) {
		p.next()
	}
	body := p.parseCodeBlock()
	return &ast.ModuleCode{Base: ast.NewBase(p.span(start)), Body: body}
}

func (p *Parser) parseArchitype() ast.Node {
	start := p.cur.Pos
	isAbstract := false
	if p.at(token.ABSTRACT) {
		isAbstract = true
		p.next()
	}
	kind := ast.ArchObject
	switch p.cur.Type {
	case token.NODE:
		kind = ast.ArchNode
	case token.EDGE:
		kind = ast.ArchEdge
	case token.WALKER:
		kind = ast.ArchWalker
	}
	p.next()
	name := ast.NewName(p.expect(token.IDENT))

	arch := &ast.Architype{ArchKind: kind, Name: name, IsAbstract: isAbstract}
	if p.at(token.COLON) {
		p.next()
		arch.Bases = append(arch.Bases, ast.NewName(p.expect(token.IDENT)))
		for p.at(token.COMMA) {
			p.next()
			arch.Bases = append(arch.Bases, ast.NewName(p.expect(token.IDENT)))
		}
	}

	if p.at(token.SEMI) {
		p.next()
		arch.Base = ast.NewBase(p.span(start))
		return arch
	}

	arch.Body = p.parseArchBlock()
	arch.Base = ast.NewBase(p.span(start))
	return arch
}

func (p *Parser) parseArchBlock() *ast.ArchBlock {
	start := p.cur.Pos
	block := &ast.ArchBlock{}
	p.expect(token.LBRACE)
	for !p.at(token.RBRACE) && !p.at(token.EOF) {
		access := p.parseAccess()
		switch p.cur.Type {
		case token.HAS, token.STATIC:
			block.Members = append(block.Members, p.parseArchHas(access))
		case token.CAN, token.DEF:
			ab := p.parseAbility()
			if a, ok := ab.(*ast.Ability); ok {
				a.Access = access
			}
			block.Members = append(block.Members, ab)
		case token.COLON:
			block.Members = append(block.Members, p.parseAbilitySpec())
		default:
			p.errorf("unexpected token in architype body: %q", p.cur.Literal)
			p.next()
		}
	}
	p.expect(token.RBRACE)
	block.Base = ast.NewBase(p.span(start))
	return block
}

func (p *Parser) parseArchHas(access ast.Access) *ast.ArchHas {
	start := p.cur.Pos
	static := false
	if p.at(token.STATIC) {
		static = true
		p.next()
	}
	p.expect(token.HAS)
	has := &ast.ArchHas{Static: static, Access: access}
	for {
		has.Vars = append(has.Vars, p.parseHasVar())
		if p.at(token.COMMA) {
			p.next()
			continue
		}
		break
	}
	if p.at(token.SEMI) {
		p.next()
	}
	has.Base = ast.NewBase(p.span(start))
	return has
}

func (p *Parser) parseHasVar() *ast.HasVar {
	start := p.cur.Pos
	name := ast.NewName(p.expect(token.IDENT))
	hv := &ast.HasVar{Name: name}
	if p.at(token.COLON) {
		p.next()
		hv.Type = p.parseTypeSpec()
	}
	if p.at(token.ASSIGN) {
		p.next()
		hv.Value = p.parseExpr()
	}
	hv.Base = ast.NewBase(p.span(start))
	return hv
}

// parseAbility parses `can name(params) -> Type { ... }`, a forward
// declaration `can name(params) -> Type;`, or `can ClassName.name(...) {}`
// (a class-method-style ability).
func (p *Parser) parseAbility() ast.Node {
	start := p.cur.Pos
	p.next() // `can` or `def`
	name := ast.NewName(p.expect(token.IDENT))
	ab := &ast.Ability{Name: name}

	if p.at(token.DOT) {
		p.next()
		ab.ClassName = name
		ab.Name = ast.NewName(p.expect(token.IDENT))
	}

	ab.Params = p.parseParams()
	if p.at(token.ARROW) {
		p.next()
		ab.ReturnType = p.parseTypeSpec()
	}
	if p.at(token.WITH) {
		p.next()
		switch p.cur.Type {
		case token.ENTRY:
			ab.Event = ast.EventEntry
			p.next()
		case token.EXIT:
			ab.Event = ast.EventExit
			p.next()
		}
	}

	if p.at(token.SEMI) {
		p.next()
		ab.Base = ast.NewBase(p.span(start))
		return ab
	}

	ab.Body = p.parseCodeBlock()
	ab.Base = ast.NewBase(p.span(start))
	return ab
}

// parseAbilitySpec parses the out-of-line `:can:Arch.name { ... }` form.
func (p *Parser) parseAbilitySpec() *ast.AbilitySpec {
	start := p.cur.Pos
	p.expect(token.COLON)
	p.next() // `can`/`def` keyword spelled out between colons
	p.expect(token.COLON)
	archName := ast.NewName(p.expect(token.IDENT))
	p.expect(token.DOT)
	name := ast.NewName(p.expect(token.IDENT))
	body := p.parseCodeBlock()
	return &ast.AbilitySpec{Base: ast.NewBase(p.span(start)), ArchName: archName, Name: name, Body: body}
}

func (p *Parser) parseParams() []*ast.ParamVar {
	p.expect(token.LPAREN)
	var params []*ast.ParamVar
	for !p.at(token.RPAREN) && !p.at(token.EOF) {
		params = append(params, p.parseParamVar())
		if p.at(token.COMMA) {
			p.next()
		}
	}
	p.expect(token.RPAREN)
	return params
}

func (p *Parser) parseParamVar() *ast.ParamVar {
	start := p.cur.Pos
	name := ast.NewName(p.expect(token.IDENT))
	pv := &ast.ParamVar{Name: name}
	if p.at(token.COLON) {
		p.next()
		pv.Type = p.parseTypeSpec()
	}
	if p.at(token.ASSIGN) {
		p.next()
		pv.Default = p.parseExpr()
	}
	pv.Base = ast.NewBase(p.span(start))
	return pv
}

// --- Statements -------------------------------------------------------

func (p *Parser) parseCodeBlock() *ast.CodeBlock {
	start := p.cur.Pos
	p.expect(token.LBRACE)
	block := &ast.CodeBlock{}
	for !p.at(token.RBRACE) && !p.at(token.EOF) {
		block.Statements = append(block.Statements, p.parseStatement())
	}
	p.expect(token.RBRACE)
	block.Base = ast.NewBase(p.span(start))
	return block
}

func (p *Parser) parseStatement() ast.Statement {
	switch p.cur.Type {
	case token.IF:
		return p.parseIf()
	case token.WHILE:
		return p.parseWhile()
	case token.FOR:
		return p.parseFor()
	case token.TRY:
		return p.parseTry()
	case token.RAISE:
		return p.parseRaise()
	case token.ASSERT:
		return p.parseAssert()
	case token.RETURN:
		return p.parseReturn()
	case token.YIELD:
		return p.parseYield()
	case token.DELETE:
		return p.parseDelete()
	case token.BREAK:
		return p.parseCtrl(ast.CtrlBreak)
	case token.CONTINUE:
		return p.parseCtrl(ast.CtrlContinue)
	case token.SKIP:
		return p.parseCtrl(ast.CtrlSkip)
	case token.VISIT:
		return p.parseVisit()
	case token.REVISIT:
		return p.parseRevisit()
	case token.DISENGAGE:
		return p.parseDisengage()
	case token.SYNC:
		return p.parseSync()
	case token.REPORT:
		return p.parseReport()
	case token.IGNORE:
		return p.parseIgnore()
	case token.GLOBAL, token.LET:
		return p.parseGlobalVars().(ast.Statement)
	default:
		return p.parseExprStatement()
	}
}

func (p *Parser) parseIf() ast.Statement {
	start := p.cur.Pos
	p.next()
	cond := p.parseExpr()
	body := p.parseCodeBlock()
	stmt := &ast.If{Cond: cond, Body: body}
	for p.at(token.ELIF) {
		p.next()
		c := p.parseExpr()
		b := p.parseCodeBlock()
		stmt.ElseIfs = append(stmt.ElseIfs, ast.ElseIf{Cond: c, Body: b})
	}
	if p.at(token.ELSE) {
		p.next()
		stmt.Else = p.parseCodeBlock()
	}
	stmt.Base = ast.NewBase(p.span(start))
	return stmt
}

func (p *Parser) parseWhile() ast.Statement {
	start := p.cur.Pos
	p.next()
	cond := p.parseExpr()
	body := p.parseCodeBlock()
	return &ast.While{Base: ast.NewBase(p.span(start)), Cond: cond, Body: body}
}

// parseFor handles all three `for` forms: InFor (`for x in xs`), DictFor
// (`for k, v in xs`), and IterFor (`for init to cond by step`).
func (p *Parser) parseFor() ast.Statement {
	start := p.cur.Pos
	p.next()

	if p.at(token.IDENT) && p.peekAt(token.COMMA) {
		key := ast.NewName(p.cur)
		p.next()
		p.next() // comma
		value := ast.NewName(p.expect(token.IDENT))
		p.expect(token.IN)
		coll := p.parseExpr()
		body := p.parseCodeBlock()
		return &ast.DictFor{Base: ast.NewBase(p.span(start)), Key: key, Value: value, Collection: coll, Body: body}
	}

	if p.at(token.IDENT) && p.peekAt(token.IN) {
		v := ast.NewName(p.cur)
		p.next()
		p.next() // in
		coll := p.parseExpr()
		body := p.parseCodeBlock()
		return &ast.InFor{Base: ast.NewBase(p.span(start)), Var: v, Collection: coll, Body: body}
	}

	var init ast.Statement
	if !p.at(token.SEMI) {
		init = p.parseExprStatement()
	} else {
		p.next()
	}
	if p.at(token.TO) {
		p.next()
	}
	var cond ast.Expression
	if !p.at(token.TO) && !p.at(token.SEMI) {
		cond = p.parseExpr()
	}
	var countBy ast.Statement
	if p.at(token.BY) {
		p.next()
		countBy = p.parseExprStatement()
	}
	body := p.parseCodeBlock()
	return &ast.IterFor{Base: ast.NewBase(p.span(start)), Init: init, Cond: cond, CountBy: countBy, Body: body}
}

func (p *Parser) parseTry() ast.Statement {
	start := p.cur.Pos
	p.next()
	body := p.parseCodeBlock()
	stmt := &ast.Try{Body: body}
	for p.at(token.EXCEPT) {
		hStart := p.cur.Pos
		p.next()
		h := &ast.Except{}
		if p.at(token.IDENT) {
			h.Type = ast.NewName(p.cur)
			p.next()
			if p.at(token.AS) {
				p.next()
				h.As = ast.NewName(p.expect(token.IDENT))
			}
		}
		h.Body = p.parseCodeBlock()
		h.Base = ast.NewBase(p.span(hStart))
		stmt.Handlers = append(stmt.Handlers, h)
	}
	if p.at(token.FINALLY) {
		p.next()
		stmt.Finally = p.parseCodeBlock()
	}
	stmt.Base = ast.NewBase(p.span(start))
	return stmt
}

func (p *Parser) parseRaise() ast.Statement {
	start := p.cur.Pos
	p.next()
	var expr ast.Expression
	if !p.at(token.SEMI) {
		expr = p.parseExpr()
	}
	p.consumeSemi()
	return &ast.Raise{Base: ast.NewBase(p.span(start)), Expr: expr}
}

func (p *Parser) parseAssert() ast.Statement {
	start := p.cur.Pos
	p.next()
	cond := p.parseExpr()
	var msg ast.Expression
	if p.at(token.COMMA) {
		p.next()
		msg = p.parseExpr()
	}
	p.consumeSemi()
	return &ast.Assert{Base: ast.NewBase(p.span(start)), Cond: cond, Msg: msg}
}

func (p *Parser) parseReturn() ast.Statement {
	start := p.cur.Pos
	p.next()
	var expr ast.Expression
	if !p.at(token.SEMI) && !p.at(token.RBRACE) {
		expr = p.parseExpr()
	}
	p.consumeSemi()
	return &ast.Return{Base: ast.NewBase(p.span(start)), Expr: expr}
}

func (p *Parser) parseYield() ast.Statement {
	start := p.cur.Pos
	p.next()
	var expr ast.Expression
	if !p.at(token.SEMI) && !p.at(token.RBRACE) {
		expr = p.parseExpr()
	}
	p.consumeSemi()
	return &ast.Yield{Base: ast.NewBase(p.span(start)), Expr: expr}
}

func (p *Parser) parseDelete() ast.Statement {
	start := p.cur.Pos
	p.next()
	target := p.parseExpr()
	p.consumeSemi()
	return &ast.Delete{Base: ast.NewBase(p.span(start)), Target: target}
}

func (p *Parser) parseCtrl(kind ast.CtrlKind) ast.Statement {
	start := p.cur.Pos
	p.next()
	p.consumeSemi()
	return &ast.Ctrl{Base: ast.NewBase(p.span(start)), CKind: kind}
}

func (p *Parser) parseVisit() ast.Statement {
	start := p.cur.Pos
	p.next()
	target := p.parseExpr()
	var els *ast.CodeBlock
	if p.at(token.ELSE) {
		p.next()
		els = p.parseCodeBlock()
	} else {
		p.consumeSemi()
	}
	return &ast.Visit{Base: ast.NewBase(p.span(start)), Target: target, Else: els}
}

func (p *Parser) parseRevisit() ast.Statement {
	start := p.cur.Pos
	p.next()
	var target ast.Expression
	if !p.at(token.SEMI) {
		target = p.parseExpr()
	}
	p.consumeSemi()
	return &ast.Revisit{Base: ast.NewBase(p.span(start)), Target: target}
}

func (p *Parser) parseDisengage() ast.Statement {
	start := p.cur.Pos
	p.next()
	p.consumeSemi()
	return &ast.Disengage{Base: ast.NewBase(p.span(start))}
}

func (p *Parser) parseSync() ast.Statement {
	start := p.cur.Pos
	p.next()
	target := p.parseExpr()
	p.consumeSemi()
	return &ast.Sync{Base: ast.NewBase(p.span(start)), Target: target}
}

func (p *Parser) parseReport() ast.Statement {
	start := p.cur.Pos
	p.next()
	expr := p.parseExpr()
	p.consumeSemi()
	return &ast.Report{Base: ast.NewBase(p.span(start)), Expr: expr}
}

func (p *Parser) parseIgnore() ast.Statement {
	start := p.cur.Pos
	p.next()
	target := p.parseExpr()
	p.consumeSemi()
	return &ast.Ignore{Base: ast.NewBase(p.span(start)), Target: target}
}

func (p *Parser) parseExprStatement() ast.Statement {
	start := p.cur.Pos
	expr := p.parseExpr()
	if isAssignOp(p.cur.Type) {
		op := p.cur.Literal
		p.next()
		value := p.parseExpr()
		p.consumeSemi()
		return &ast.Assignment{Base: ast.NewBase(p.span(start)), Target: expr, Operator: op, Value: value}
	}
	p.consumeSemi()
	return &ast.ExprStmt{Base: ast.NewBase(p.span(start)), Expr: expr}
}

func isAssignOp(t token.Type) bool { return t == token.ASSIGN }

func (p *Parser) consumeSemi() {
	if p.at(token.SEMI) {
		p.next()
	}
}

// --- Expressions -------------------------------------------------------
//
// Simple precedence-climbing parser: or < and < equality < relational <
// additive < multiplicative < unary < postfix < atom.

func (p *Parser) parseExpr() ast.Expression {
	return p.parseTernary()
}

func (p *Parser) parseTernary() ast.Expression {
	start := p.cur.Pos
	then := p.parseOr()
	if p.at(token.IF) {
		p.next()
		cond := p.parseOr()
		p.expect(token.ELSE)
		els := p.parseTernary()
		return &ast.IfElseExpr{Base: ast.NewBase(p.span(start)), Then: then, Cond: cond, Else: els}
	}
	if p.at(token.ELVIS) {
		p.next()
		rhs := p.parseTernary()
		return &ast.Binary{Base: ast.NewBase(p.span(start)), Left: then, Operator: "?:", Right: rhs}
	}
	return then
}

func (p *Parser) parseOr() ast.Expression {
	left := p.parseAnd()
	for p.at(token.OR) {
		start := left.Span().Start
		p.next()
		right := p.parseAnd()
		left = &ast.Binary{Base: ast.NewBase(p.span(start)), Left: left, Operator: "or", Right: right}
	}
	return left
}

func (p *Parser) parseAnd() ast.Expression {
	left := p.parseEquality()
	for p.at(token.AND) {
		start := left.Span().Start
		p.next()
		right := p.parseEquality()
		left = &ast.Binary{Base: ast.NewBase(p.span(start)), Left: left, Operator: "and", Right: right}
	}
	return left
}

func (p *Parser) parseEquality() ast.Expression {
	left := p.parseRelational()
	for p.at(token.EQ) || p.at(token.NEQ) {
		op := p.cur.Literal
		start := left.Span().Start
		p.next()
		right := p.parseRelational()
		left = &ast.Binary{Base: ast.NewBase(p.span(start)), Left: left, Operator: op, Right: right}
	}
	return left
}

func (p *Parser) parseRelational() ast.Expression {
	left := p.parseAdditive()
	for p.at(token.LT) || p.at(token.GT) || p.at(token.LE) || p.at(token.GE) {
		op := p.cur.Literal
		start := left.Span().Start
		p.next()
		right := p.parseAdditive()
		left = &ast.Binary{Base: ast.NewBase(p.span(start)), Left: left, Operator: op, Right: right}
	}
	return left
}

func (p *Parser) parseAdditive() ast.Expression {
	left := p.parseMultiplicative()
	for p.at(token.PLUS) || p.at(token.MINUS) {
		op := p.cur.Literal
		start := left.Span().Start
		p.next()
		right := p.parseMultiplicative()
		left = &ast.Binary{Base: ast.NewBase(p.span(start)), Left: left, Operator: op, Right: right}
	}
	return left
}

func (p *Parser) parseMultiplicative() ast.Expression {
	left := p.parseUnary()
	for p.at(token.STAR) || p.at(token.SLASH) || p.at(token.PERCENT) {
		op := p.cur.Literal
		start := left.Span().Start
		p.next()
		right := p.parseUnary()
		left = &ast.Binary{Base: ast.NewBase(p.span(start)), Left: left, Operator: op, Right: right}
	}
	return left
}

func (p *Parser) parseUnary() ast.Expression {
	if p.at(token.NOT) || p.at(token.MINUS) {
		start := p.cur.Pos
		op := p.cur.Literal
		p.next()
		operand := p.parseUnary()
		return &ast.Unary{Base: ast.NewBase(p.span(start)), Operator: op, Operand: operand}
	}
	if p.at(token.STAR) {
		start := p.cur.Pos
		p.next()
		return &ast.Unpack{Base: ast.NewBase(p.span(start)), Expr: p.parseUnary()}
	}
	if p.at(token.SPAWN) {
		return p.parseSpawn()
	}
	return p.parsePostfix()
}

func (p *Parser) parseSpawn() ast.Expression {
	start := p.cur.Pos
	p.next()
	typ := p.parsePostfix()
	var args []ast.Expression
	if p.at(token.LPAREN) {
		p.next()
		for !p.at(token.RPAREN) && !p.at(token.EOF) {
			args = append(args, p.parseExpr())
			if p.at(token.COMMA) {
				p.next()
			}
		}
		p.expect(token.RPAREN)
	}
	return &ast.Spawn{Base: ast.NewBase(p.span(start)), Type: typ, Args: args}
}

func (p *Parser) parsePostfix() ast.Expression {
	expr := p.parseAtom()
	for {
		switch p.cur.Type {
		case token.DOT:
			start := expr.Span().Start
			p.next()
			attr := ast.NewName(p.expect(token.IDENT))
			expr = &ast.AtomTrailer{Base: ast.NewBase(p.span(start)), Target: expr, Attr: attr}
		case token.LPAREN:
			start := expr.Span().Start
			p.next()
			var args []ast.Arg
			for !p.at(token.RPAREN) && !p.at(token.EOF) {
				args = append(args, p.parseArg())
				if p.at(token.COMMA) {
					p.next()
				}
			}
			p.expect(token.RPAREN)
			expr = &ast.FuncCall{Base: ast.NewBase(p.span(start)), Target: expr, Args: args}
		case token.LBRACKET:
			start := expr.Span().Start
			p.next()
			expr = p.parseIndexOrSlice(expr, start)
		default:
			return expr
		}
	}
}

func (p *Parser) parseArg() ast.Arg {
	if p.at(token.IDENT) && p.peekAt(token.ASSIGN) {
		name := p.cur.Literal
		p.next()
		p.next()
		return ast.Arg{Name: name, Value: p.parseExpr()}
	}
	return ast.Arg{Value: p.parseExpr()}
}

func (p *Parser) parseIndexOrSlice(target ast.Expression, start token.Position) ast.Expression {
	var idx, from, to, step ast.Expression
	isSlice := false
	if !p.at(token.COLON) {
		idx = p.parseExpr()
	}
	if p.at(token.COLON) {
		isSlice = true
		from = idx
		idx = nil
		p.next()
		if !p.at(token.COLON) && !p.at(token.RBRACKET) {
			to = p.parseExpr()
		}
		if p.at(token.COLON) {
			p.next()
			if !p.at(token.RBRACKET) {
				step = p.parseExpr()
			}
		}
	}
	p.expect(token.RBRACKET)
	return &ast.IndexSlice{
		Base: ast.NewBase(p.span(start)), Target: target, Index: idx,
		Start: from, Stop: to, Step: step, IsSlice: isSlice,
	}
}

func (p *Parser) parseAtom() ast.Expression {
	start := p.cur.Pos
	switch p.cur.Type {
	case token.INT:
		tok := p.cur
		p.next()
		return ast.NewLiteral(ast.LitInt, tok)
	case token.FLOAT:
		tok := p.cur
		p.next()
		return ast.NewLiteral(ast.LitFloat, tok)
	case token.STRING:
		tok := p.cur
		p.next()
		lit := ast.NewLiteral(ast.LitString, tok)
		if p.at(token.STRING) {
			parts := []ast.Expression{lit}
			for p.at(token.STRING) {
				t := p.cur
				p.next()
				parts = append(parts, ast.NewLiteral(ast.LitString, t))
			}
			return &ast.MultiString{Base: ast.NewBase(p.span(start)), Parts: parts}
		}
		return lit
	case token.TRUE, token.FALSE:
		tok := p.cur
		p.next()
		return ast.NewLiteral(ast.LitBool, tok)
	case token.NONE:
		tok := p.cur
		p.next()
		return ast.NewLiteral(ast.LitNone, tok)
	case token.LPAREN:
		p.next()
		expr := p.parseExpr()
		p.expect(token.RPAREN)
		return expr
	case token.LBRACKET:
		return p.parseListOrComprehension(start)
	case token.LBRACE:
		return p.parseDictOrComprehension(start)
	case token.IDENT:
		tok := p.cur
		p.next()
		return ast.NewName(tok)
	case token.COLON:
		return p.parseKindRef(start)
	default:
		tok := p.cur
		p.errorf("unexpected token in expression: %q", p.cur.Literal)
		p.next()
		return ast.NewName(tok)
	}
}

// parseKindRef parses the `:g:name`, `:node:Foo`, `:edge:Foo`,
// `:walker:Foo`, `:func:foo`, `:obj:Foo`, `:can:foo` reference forms.
func (p *Parser) parseKindRef(start token.Position) ast.Expression {
	p.expect(token.COLON)
	qualifier := p.cur.Literal
	p.next()
	p.expect(token.COLON)
	name := ast.NewName(p.expect(token.IDENT))
	base := ast.NewBase(p.span(start))

	switch qualifier {
	case "g":
		return &ast.GlobalRef{Base: base, Name: name}
	case "node":
		return &ast.NodeRef{Base: base, Name: name}
	case "edge":
		return &ast.EdgeRef{Base: base, Name: name, Dir: "any"}
	case "walker":
		return &ast.WalkerRef{Base: base, Name: name}
	case "func":
		return &ast.FuncRef{Base: base, Name: name}
	case "obj":
		return &ast.ObjectRef{Base: base, Name: name}
	case "can":
		return &ast.AbilityRef{Base: base, Name: name}
	default:
		return &ast.ObjectRef{Base: base, Name: name}
	}
}

func (p *Parser) parseListOrComprehension(start token.Position) ast.Expression {
	p.expect(token.LBRACKET)
	if p.at(token.RBRACKET) {
		p.next()
		return &ast.List{Base: ast.NewBase(p.span(start))}
	}
	first := p.parseExpr()
	if p.at(token.FOR) {
		return p.finishComprehension(start, first, nil)
	}
	items := []ast.Expression{first}
	for p.at(token.COMMA) {
		p.next()
		if p.at(token.RBRACKET) {
			break
		}
		items = append(items, p.parseExpr())
	}
	p.expect(token.RBRACKET)
	return &ast.List{Base: ast.NewBase(p.span(start)), Items: items}
}

func (p *Parser) parseDictOrComprehension(start token.Position) ast.Expression {
	p.expect(token.LBRACE)
	if p.at(token.RBRACE) {
		p.next()
		return &ast.Dict{Base: ast.NewBase(p.span(start))}
	}
	key := p.parseExpr()
	p.expect(token.COLON)
	value := p.parseExpr()
	if p.at(token.FOR) {
		return p.finishComprehension(start, value, key)
	}
	entries := []ast.DictEntry{{Key: key, Value: value}}
	for p.at(token.COMMA) {
		p.next()
		if p.at(token.RBRACE) {
			break
		}
		k := p.parseExpr()
		p.expect(token.COLON)
		v := p.parseExpr()
		entries = append(entries, ast.DictEntry{Key: k, Value: v})
	}
	p.expect(token.RBRACE)
	return &ast.Dict{Base: ast.NewBase(p.span(start)), Entries: entries}
}

func (p *Parser) finishComprehension(start token.Position, result, resultKey ast.Expression) ast.Expression {
	p.expect(token.FOR)
	v := ast.NewName(p.expect(token.IDENT))
	p.expect(token.IN)
	coll := p.parseOr()
	var cond ast.Expression
	if p.at(token.IF) {
		p.next()
		cond = p.parseExpr()
	}
	closing := token.RBRACKET
	if resultKey != nil {
		closing = token.RBRACE
	}
	p.expect(closing)
	return &ast.Comprehension{
		Base: ast.NewBase(p.span(start)), Result: result, ResultKey: resultKey,
		Var: v, Collection: coll, Cond: cond,
	}
}
