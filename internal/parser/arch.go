package parser

import (
	"fmt"

	"cdl/internal/ast"
	"cdl/internal/diag"
	"cdl/internal/token"
)

// arch := name? 'arch' '{' archstmt* '}'
func (p *Parser) parseArch() (ast.ItemID, bool) {
	start := p.peek()
	arch := ast.Arch{}
	switch start.Kind {
	case token.Ident, token.KwImplementation, token.KwVerification:
		p.advance()
		arch.Name = start.Value
		arch.NameSpan = start.Span
	}
	if _, ok := p.expect(token.KwArch, diag.SynUnexpectedToken, "expected 'arch'"); !ok {
		return ast.NoItemID, false
	}
	if _, ok := p.expect(token.LBrace, diag.SynUnexpectedToken, "expected '{' after 'arch'"); !ok {
		return ast.NoItemID, false
	}
	for !p.at(token.RBrace) {
		stmt, ok := p.parseArchStmt()
		if !ok {
			return ast.NoItemID, false
		}
		arch.Stmts = append(arch.Stmts, stmt)
	}
	closeTok := p.advance()
	return p.b.Items.NewArch(start.Span.Cover(closeTok.Span), arch), true
}

// parseArchStmt dispatches on the leading token.
func (p *Parser) parseArchStmt() (ast.StmtID, bool) {
	tok := p.peek()
	switch tok.Kind {
	case token.KwSignal:
		return p.parseDeclStmt(ast.DeclSignal)
	case token.KwVariable:
		return p.parseDeclStmt(ast.DeclVariable)
	case token.KwConst:
		return p.parseDeclStmt(ast.DeclConst)
	case token.KwProcess:
		return p.parsePlaceholder(ast.PlaceholderProcess)
	case token.KwGenerate:
		return p.parsePlaceholder(ast.PlaceholderGenerate)
	case token.KwConnect:
		return p.parsePlaceholder(ast.PlaceholderConnect)
	case token.Ident:
		return p.parseAssignOrInstance()
	}
	return ast.NoStmtID, p.failUnexpected(diag.SynUnexpectedToken, "expected signal, instance or assignment")
}

// signal|variable TYPE ID width? ';'   |   const TYPE ID width? '=' constant ';'
func (p *Parser) parseDeclStmt(kind ast.DeclKind) (ast.StmtID, bool) {
	kw := p.advance()
	decl, _, ok := p.parseTypedName(kind)
	if !ok {
		return ast.NoStmtID, false
	}
	if kind == ast.DeclConst {
		if _, ok = p.expect(token.Assign, diag.SynUnexpectedToken, "expected '=' in const declaration"); !ok {
			return ast.NoStmtID, false
		}
		if decl.Value, ok = p.parseConstant(); !ok {
			return ast.NoStmtID, false
		}
	}
	decl.Span = kw.Span.Cover(p.lastSpan)
	if _, ok = p.expect(token.Semicolon, diag.SynUnexpectedToken, "expected ';' after declaration"); !ok {
		return ast.NoStmtID, false
	}
	return p.b.Stmts.NewDecl(decl.Span, p.b.Decls.New(decl)), true
}

// A leading identifier is either `lhs <= expr ;` or `Type name = new Type(...) ;`.
func (p *Parser) parseAssignOrInstance() (ast.StmtID, bool) {
	lhs, ok := p.parseIdentifier()
	if !ok {
		return ast.NoStmtID, false
	}
	switch p.peek().Kind {
	case token.SigAssign:
		p.advance()
		rhs, ok := p.parseExpr()
		if !ok {
			return ast.NoStmtID, false
		}
		semi, ok := p.expect(token.Semicolon, diag.SynUnexpectedToken, "expected ';' after assignment")
		if !ok {
			return ast.NoStmtID, false
		}
		sp := p.span(lhs).Cover(semi.Span)
		assign := p.b.Exprs.NewBinary(p.span(lhs).Cover(p.span(rhs)), ast.ExprBinarySigAssign, lhs, rhs)
		return p.b.Stmts.NewAssign(sp, assign), true
	case token.Ident:
		typeIdent, isIdent := p.b.Exprs.Ident(lhs)
		if !isIdent {
			return ast.NoStmtID, p.fail(diag.SyntaxError, diag.SynUnexpectedToken, p.span(lhs),
				"instance type must be a plain identifier")
		}
		return p.parseInstance(typeIdent.Name, lhs)
	}
	return ast.NoStmtID, p.failUnexpected(diag.SynUnexpectedToken, "expected '<=' or instance name")
}

// instantiation := Type name '=' 'new' Type '(' genericlist? ')' ';'
func (p *Parser) parseInstance(typeName string, typeExpr ast.ExprID) (ast.StmtID, bool) {
	nameTok := p.advance()
	if !p.declare(nameTok.Value, nameTok.Span) {
		return ast.NoStmtID, false
	}
	if _, ok := p.expect(token.Assign, diag.SynUnexpectedToken, "expected '=' after instance name"); !ok {
		return ast.NoStmtID, false
	}
	if _, ok := p.expect(token.KwNew, diag.SynUnexpectedToken, "expected 'new'"); !ok {
		return ast.NoStmtID, false
	}
	ctor, ok := p.expect(token.Ident, diag.SynUnexpectedToken, "expected component type after 'new'")
	if !ok {
		return ast.NoStmtID, false
	}
	if ctor.Value != typeName {
		return ast.NoStmtID, p.fail(diag.SyntaxError, diag.SynInstanceTypeMismatch, ctor.Span,
			fmt.Sprintf("instance %s is declared as %s but constructed as %s", nameTok.Value, typeName, ctor.Value))
	}
	if _, ok = p.expect(token.LParen, diag.SynUnexpectedToken, "expected '(' after component type"); !ok {
		return ast.NoStmtID, false
	}
	generics := ast.NoExprID
	if !p.at(token.RParen) {
		if generics, ok = p.parseGenericList(); !ok {
			return ast.NoStmtID, false
		}
	}
	if _, ok = p.expect(token.RParen, diag.SynUnexpectedToken, "expected ')' after generic list"); !ok {
		return ast.NoStmtID, false
	}
	semi, ok := p.expect(token.Semicolon, diag.SynUnexpectedToken, "expected ';' after instantiation")
	if !ok {
		return ast.NoStmtID, false
	}
	return p.b.Stmts.NewInstance(p.span(typeExpr).Cover(semi.Span), ast.InstanceStmt{
		Name:     nameTok.Value,
		NameSpan: nameTok.Span,
		Type:     typeName,
		TypeSpan: p.span(typeExpr),
		Generics: generics,
	}), true
}

// genericlist := ID '=' constant (',' genericlist)?
func (p *Parser) parseGenericList() (ast.ExprID, bool) {
	nameTok, ok := p.expect(token.Ident, diag.SynUnexpectedToken, "expected generic name")
	if !ok {
		return ast.NoExprID, false
	}
	if _, ok = p.expect(token.Assign, diag.SynUnexpectedToken, "expected '=' after generic name"); !ok {
		return ast.NoExprID, false
	}
	value, ok := p.parseConstant()
	if !ok {
		return ast.NoExprID, false
	}
	name := p.b.Exprs.NewIdent(nameTok.Span, nameTok.Value)
	assign := p.b.Exprs.NewBinary(nameTok.Span.Cover(p.span(value)), ast.ExprBinaryGenericAssign, name, value)
	if !p.at(token.Comma) {
		return assign, true
	}
	p.advance()
	rest, ok := p.parseGenericList()
	if !ok {
		return ast.NoExprID, false
	}
	return p.b.Exprs.NewBinary(p.span(assign).Cover(p.span(rest)), ast.ExprBinaryList, assign, rest), true
}

// constant := INT | VEC | BOOL | ID
// An identifier passes an enclosing generic through unchanged.
func (p *Parser) parseConstant() (ast.ExprID, bool) {
	tok := p.peek()
	if kind, ok := constKind(tok.Kind); ok {
		p.advance()
		return p.b.Exprs.NewConst(tok.Span, kind, tok.Value), true
	}
	if tok.Kind == token.Ident {
		p.advance()
		return p.b.Exprs.NewIdent(tok.Span, tok.Value), true
	}
	return ast.NoExprID, p.failUnexpected(diag.SynExpectConstant, "expected constant")
}

// process|generate|connect header? '{' balanced '}'
// The block is kept as text; nothing downstream interprets it yet.
func (p *Parser) parsePlaceholder(kind ast.PlaceholderKind) (ast.StmtID, bool) {
	kw := p.advance()
	for !p.at(token.LBrace) {
		if p.at(token.EOF) || p.at(token.Invalid) || p.at(token.RBrace) || p.at(token.Semicolon) {
			return ast.NoStmtID, p.failUnexpected(diag.SynUnexpectedToken,
				fmt.Sprintf("expected '{' to open %s block", kind))
		}
		p.advance()
	}
	open := p.advance()
	depth := 1
	for depth > 0 {
		switch p.peek().Kind {
		case token.EOF, token.Invalid:
			return ast.NoStmtID, p.fail(diag.SyntaxError, diag.SynUnclosedBlock, open.Span,
				fmt.Sprintf("unclosed %s block", kind))
		case token.LBrace:
			depth++
		case token.RBrace:
			depth--
		}
		p.advance()
	}
	sp := kw.Span.Cover(p.lastSpan)
	ph := ast.PlaceholderStmt{Kind: kind}
	if p.opts.KeepPlaceholderText {
		content := p.lx.File().Content
		ph.Body = string(content[open.Span.End:p.lastSpan.Start])
	}
	return p.b.Stmts.NewPlaceholder(sp, ph), true
}
