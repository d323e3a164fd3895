package parser

import (
	"cdl/internal/ast"
	"cdl/internal/diag"
	"cdl/internal/lexer"
	"cdl/internal/source"
	"cdl/internal/token"
)

// parseExpr - главная точка входа: expression := ternary
func (p *Parser) parseExpr() (ast.ExprID, bool) {
	return p.parseTernary()
}

// ternary := boolexpr ('?' expression ':' expression)?
// Обе ветки являются полными expression, поэтому вложенность правоассоциативна.
func (p *Parser) parseTernary() (ast.ExprID, bool) {
	cond, ok := p.parseBoolExpr()
	if !ok || !p.at(token.Question) {
		return cond, ok
	}
	p.advance()
	then, ok := p.parseExpr()
	if !ok {
		return ast.NoExprID, false
	}
	if _, ok = p.expect(token.Colon, diag.SynUnexpectedToken, "expected ':' in ternary expression"); !ok {
		return ast.NoExprID, false
	}
	els, ok := p.parseExpr()
	if !ok {
		return ast.NoExprID, false
	}
	sp := p.span(cond).Cover(p.span(els))
	return p.b.Exprs.NewTernary(sp, cond, then, els), true
}

// boolexpr := boolfactor (('&' | '|' | '^') boolfactor)*
func (p *Parser) parseBoolExpr() (ast.ExprID, bool) {
	return p.parseLeftAssoc(p.parseBoolFactor, boolCombineOp)
}

// boolfactor := ('!' | 'not')? relation
func (p *Parser) parseBoolFactor() (ast.ExprID, bool) {
	var op ast.ExprUnaryOp
	switch p.peek().Kind {
	case token.Bang:
		op = ast.ExprUnaryBang
	case token.KwNot:
		op = ast.ExprUnaryNot
	default:
		return p.parseRelation()
	}
	opTok := p.advance()
	operand, ok := p.parseRelation()
	if !ok {
		return ast.NoExprID, false
	}
	return p.b.Exprs.NewUnary(opTok.Span.Cover(p.span(operand)), op, operand), true
}

// relation := ('true' | 'false') | sum (relop sum)?
// `<=` внутри relation означает сравнение, поэтому лексер переключается в ScopeRelational.
// Внутри индекса scope остаётся ScopeIndex, чтобы ':' оставался разделителем диапазона.
func (p *Parser) parseRelation() (ast.ExprID, bool) {
	if p.lx.Scope() != lexer.ScopeIndex {
		defer p.enterScope(lexer.ScopeRelational)()
	}
	if tok := p.peek(); tok.Kind == token.KwTrue || tok.Kind == token.KwFalse {
		p.advance()
		return p.b.Exprs.NewConst(tok.Span, ast.ConstBool, tok.Value), true
	}
	left, ok := p.parseSum()
	if !ok {
		return ast.NoExprID, false
	}
	op, isRel := relationOp(p.peek().Kind)
	if !isRel {
		return left, true
	}
	p.advance()
	right, ok := p.parseSum()
	if !ok {
		return ast.NoExprID, false
	}
	return p.b.Exprs.NewBinary(p.span(left).Cover(p.span(right)), op, left, right), true
}

// sum := product (('+' | '-' | 'or' | 'nor') product)*
func (p *Parser) parseSum() (ast.ExprID, bool) {
	return p.parseLeftAssoc(p.parseProduct, additiveOp)
}

// product := factor (('*' | '/' | '%' | 'and' | 'nand' | 'xor' | 'xnor') factor)*
func (p *Parser) parseProduct() (ast.ExprID, bool) {
	return p.parseLeftAssoc(p.parseFactor, multiplicativeOp)
}

// factor := ('-' | 'not')? power
func (p *Parser) parseFactor() (ast.ExprID, bool) {
	var op ast.ExprUnaryOp
	switch p.peek().Kind {
	case token.Minus:
		op = ast.ExprUnaryNeg
	case token.KwNot:
		op = ast.ExprUnaryNot
	default:
		return p.parsePower()
	}
	opTok := p.advance()
	operand, ok := p.parsePower()
	if !ok {
		return ast.NoExprID, false
	}
	return p.b.Exprs.NewUnary(opTok.Span.Cover(p.span(operand)), op, operand), true
}

// power := atom ('**' atom)*
func (p *Parser) parsePower() (ast.ExprID, bool) {
	return p.parseLeftAssoc(p.parseAtom, func(k token.Kind) (ast.ExprBinaryOp, bool) {
		return ast.ExprBinaryPow, k == token.StarStar
	})
}

// parseLeftAssoc implements `next (op next)*` for one precedence level.
func (p *Parser) parseLeftAssoc(next func() (ast.ExprID, bool), opOf func(token.Kind) (ast.ExprBinaryOp, bool)) (ast.ExprID, bool) {
	left, ok := next()
	if !ok {
		return ast.NoExprID, false
	}
	for {
		op, isOp := opOf(p.peek().Kind)
		if !isOp {
			return left, true
		}
		p.advance()
		right, ok := next()
		if !ok {
			return ast.NoExprID, false
		}
		left = p.b.Exprs.NewBinary(p.span(left).Cover(p.span(right)), op, left, right)
	}
}

// atom := constant | '(' expression ')' | identifier
func (p *Parser) parseAtom() (ast.ExprID, bool) {
	tok := p.peek()
	if kind, ok := constKind(tok.Kind); ok {
		p.advance()
		return p.b.Exprs.NewConst(tok.Span, kind, tok.Value), true
	}
	switch tok.Kind {
	case token.LParen:
		// внутри скобок ':' снова обычное двоеточие, даже в индексе
		defer p.enterScope(lexer.ScopeGeneral)()
		p.advance()
		inner, ok := p.parseExpr()
		if !ok {
			return ast.NoExprID, false
		}
		closeTok, ok := p.expect(token.RParen, diag.SynUnexpectedToken, "expected ')'")
		if !ok {
			return ast.NoExprID, false
		}
		return p.b.Exprs.NewUnary(tok.Span.Cover(closeTok.Span), ast.ExprUnaryParen, inner), true
	case token.Ident:
		return p.parseIdentifier()
	}
	return ast.NoExprID, p.failUnexpected(diag.SynExpectExpression, "expected expression")
}

// identifier := ID ('.' ID)* ('[' expression (':' expression)? ']')?
func (p *Parser) parseIdentifier() (ast.ExprID, bool) {
	target, ok := p.parsePath()
	if !ok || !p.at(token.LBracket) {
		return target, ok
	}
	return p.parseSplice(target)
}

// parsePath builds `a.b.c` as a . (b . c).
func (p *Parser) parsePath() (ast.ExprID, bool) {
	nameTok, ok := p.expect(token.Ident, diag.SynUnexpectedToken, "expected identifier")
	if !ok {
		return ast.NoExprID, false
	}
	left := p.b.Exprs.NewIdent(nameTok.Span, nameTok.Value)
	if !p.at(token.Dot) {
		return left, true
	}
	p.advance()
	right, ok := p.parsePath()
	if !ok {
		return ast.NoExprID, false
	}
	return p.b.Exprs.NewBinary(nameTok.Span.Cover(p.span(right)), ast.ExprBinaryMember, left, right), true
}

// parseSplice parses `[high]` or `[high:low]` after a vec identifier.
// The identifier must have been declared as vec before this point.
func (p *Parser) parseSplice(target ast.ExprID) (ast.ExprID, bool) {
	name := p.b.Exprs.PathString(target)
	if _, isVec := p.widths.Lookup(name); !isVec {
		return ast.NoExprID, p.fail(diag.TypeError, diag.SemaNotAVector, p.span(target),
			name+" is not a declared vec and cannot be spliced")
	}

	restore := p.enterScope(lexer.ScopeIndex)
	p.advance() // '['
	high, ok := p.parseExpr()
	if !ok {
		restore()
		return ast.NoExprID, false
	}
	low := high
	if p.at(token.RangeSep) {
		p.advance()
		if low, ok = p.parseExpr(); !ok {
			restore()
			return ast.NoExprID, false
		}
	}
	restore()
	closeTok, ok := p.expect(token.RBracket, diag.SynUnexpectedToken, "expected ']' after splice")
	if !ok {
		return ast.NoExprID, false
	}
	return p.b.Exprs.NewSplice(p.span(target).Cover(closeTok.Span), target, high, low), true
}

func (p *Parser) span(id ast.ExprID) source.Span {
	return p.b.Exprs.Get(id).Span
}
