package parser

import (
	"fmt"
	"strconv"

	"cdl/internal/ast"
	"cdl/internal/diag"
	"cdl/internal/source"
	"cdl/internal/token"
)

// component := 'component' ID '{' (decl | portblock | arch)* '}'
func (p *Parser) parseComponent() (ast.ComponentID, bool) {
	kw, ok := p.expect(token.KwComponent, diag.SynExpectComponent, "expected 'component'")
	if !ok {
		return ast.NoComponentID, false
	}
	nameTok, ok := p.expect(token.Ident, diag.SynUnexpectedToken, "expected component name")
	if !ok {
		return ast.NoComponentID, false
	}
	if _, ok = p.expect(token.LBrace, diag.SynUnexpectedToken, "expected '{' after component name"); !ok {
		return ast.NoComponentID, false
	}
	comp := p.b.NewComponent(nameTok.Value, nameTok.Span, kw.Span)

	var seenPorts, seenArch bool
	for !p.at(token.RBrace) {
		tok := p.peek()
		var item ast.ItemID
		switch {
		case tok.IsType():
			item, ok = p.parseGeneric()
		case tok.Kind == token.KwPort:
			if seenPorts {
				return ast.NoComponentID, p.fail(diag.SyntaxError, diag.SynDuplicatePortBlock, tok.Span,
					fmt.Sprintf("component %s already has a port block", nameTok.Value))
			}
			seenPorts = true
			item, ok = p.parsePortBlock()
		case tok.Kind == token.KwArch || tok.Kind == token.Ident ||
			tok.Kind == token.KwImplementation || tok.Kind == token.KwVerification:
			if seenArch {
				return ast.NoComponentID, p.fail(diag.SyntaxError, diag.SynDuplicateArch, tok.Span,
					fmt.Sprintf("component %s already has an architecture", nameTok.Value))
			}
			seenArch = true
			item, ok = p.parseArch()
		default:
			return ast.NoComponentID, p.failUnexpected(diag.SynUnexpectedToken,
				"expected generic declaration, 'port' or 'arch'")
		}
		if !ok {
			return ast.NoComponentID, false
		}
		p.b.PushItem(comp, item)
	}
	closeTok := p.advance()
	c := p.b.Component(comp)
	c.Span = kw.Span.Cover(closeTok.Span)
	return comp, true
}

// generic := TYPE ID width? ';'
func (p *Parser) parseGeneric() (ast.ItemID, bool) {
	decl, sp, ok := p.parseTypedName(ast.DeclGeneric)
	if !ok {
		return ast.NoItemID, false
	}
	if _, ok = p.expect(token.Semicolon, diag.SynUnexpectedToken, "expected ';' after generic"); !ok {
		return ast.NoItemID, false
	}
	return p.b.Items.NewGeneric(sp.Cover(p.lastSpan), p.b.Decls.New(decl)), true
}

// portblock := 'port' '{' (DIR TYPE ID width? ';')* '}'
func (p *Parser) parsePortBlock() (ast.ItemID, bool) {
	kw := p.advance()
	if _, ok := p.expect(token.LBrace, diag.SynUnexpectedToken, "expected '{' after 'port'"); !ok {
		return ast.NoItemID, false
	}
	var ports []ast.DeclID
	for !p.at(token.RBrace) {
		dirTok := p.peek()
		if !dirTok.IsDirection() {
			return ast.NoItemID, p.failUnexpected(diag.SynUnexpectedToken, "expected 'input' or 'output'")
		}
		p.advance()
		decl, _, ok := p.parseTypedName(ast.DeclPort)
		if !ok {
			return ast.NoItemID, false
		}
		decl.Dir = ast.PortIn
		if dirTok.Kind == token.KwOutput {
			decl.Dir = ast.PortOut
		}
		decl.Span = dirTok.Span.Cover(decl.Span)
		if _, ok = p.expect(token.Semicolon, diag.SynUnexpectedToken, "expected ';' after port"); !ok {
			return ast.NoItemID, false
		}
		ports = append(ports, p.b.Decls.New(decl))
	}
	closeTok := p.advance()
	return p.b.Items.NewPortList(kw.Span.Cover(closeTok.Span), ports), true
}

// parseTypedName parses `TYPE ID ('[' (INT | ID) ']')?`, registers the name
// and, for vec, records its width.
func (p *Parser) parseTypedName(kind ast.DeclKind) (ast.Decl, source.Span, bool) {
	typeTok := p.peek()
	typ, ok := typeKind(typeTok.Kind)
	if !ok {
		return ast.Decl{}, source.Span{}, p.failUnexpected(diag.SynExpectType, "expected int, uint, vec or bool")
	}
	p.advance()
	nameTok, ok := p.expect(token.Ident, diag.SynUnexpectedToken, "expected identifier after type")
	if !ok {
		return ast.Decl{}, source.Span{}, false
	}
	if !p.declare(nameTok.Value, nameTok.Span) {
		return ast.Decl{}, source.Span{}, false
	}
	decl := ast.Decl{
		Kind:     kind,
		Name:     nameTok.Value,
		NameSpan: nameTok.Span,
		Type:     typ,
	}
	if p.at(token.LBracket) {
		if decl.Width, ok = p.parseWidth(); !ok {
			return ast.Decl{}, source.Span{}, false
		}
	}
	decl.Span = typeTok.Span.Cover(p.lastSpan)
	if typ == ast.TypeVec {
		p.widths.Declare(decl.Name, decl.Width)
	}
	return decl, typeTok.Span, true
}

// width := '[' (INT | ID) ']'
func (p *Parser) parseWidth() (ast.Width, bool) {
	p.advance() // '['
	tok := p.peek()
	var w ast.Width
	switch tok.Kind {
	case token.IntLit, token.HexIntLit, token.BinIntLit:
		base := 10
		switch tok.Kind {
		case token.HexIntLit:
			base = 16
		case token.BinIntLit:
			base = 2
		}
		n, err := strconv.ParseUint(tok.Value, base, 32)
		if err != nil || n == 0 {
			return w, p.fail(diag.SyntaxError, diag.SynExpectConstant, tok.Span,
				fmt.Sprintf("width %s must be a positive 32-bit integer", tok.Text))
		}
		w = ast.Width{Kind: ast.WidthLiteral, Value: uint32(n)}
	case token.Ident:
		w = ast.Width{Kind: ast.WidthGeneric, Name: tok.Value}
	default:
		return w, p.failUnexpected(diag.SynExpectConstant, "expected width")
	}
	p.advance()
	_, ok := p.expect(token.RBracket, diag.SynUnexpectedToken, "expected ']' after width")
	return w, ok
}
