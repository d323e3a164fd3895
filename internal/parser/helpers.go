package parser

import (
	"fmt"

	"cdl/internal/diag"
	"cdl/internal/lexer"
	"cdl/internal/source"
	"cdl/internal/token"
)

// peek возвращает текущий токен. Invalid означает лексическую ошибку, она фиксируется как есть.
func (p *Parser) peek() token.Token {
	tok := p.lx.Peek()
	if tok.Kind == token.Invalid && p.err == nil {
		if lexErr := p.lx.Err(); lexErr != nil {
			p.err = lexErr
		}
	}
	return tok
}

func (p *Parser) at(k token.Kind) bool {
	return p.peek().Kind == k
}

// advance съедает следующий токен и обновляет lastSpan
func (p *Parser) advance() token.Token {
	tok := p.lx.Next()
	if tok.Kind != token.EOF && tok.Kind != token.Invalid {
		p.lastSpan = tok.Span
	}
	return tok
}

// expect is the only consuming primitive besides advance: mismatch is a SyntaxError.
func (p *Parser) expect(k token.Kind, code diag.Code, msg string) (token.Token, bool) {
	if p.at(k) {
		return p.advance(), true
	}
	p.failUnexpected(code, msg)
	return token.Token{Kind: token.Invalid}, false
}

// failUnexpected reports a SyntaxError at the current token.
func (p *Parser) failUnexpected(code diag.Code, msg string) bool {
	tok := p.peek()
	found := describe(tok)
	return p.fail(diag.SyntaxError, code, p.diagSpan(tok), fmt.Sprintf("%s, found %s", msg, found))
}

// fail records the first error and reports it. It always returns false so
// callers can `return ast.NoExprID, p.fail(...)`.
func (p *Parser) fail(kind diag.ErrorKind, code diag.Code, sp source.Span, msg string) bool {
	if p.err != nil {
		return false
	}
	p.err = diag.Fail(p.opts.Reporter, &diag.Error{Kind: kind, Code: code, Span: sp, Message: msg})
	return false
}

// diagSpan: для EOF используем позицию сразу после последнего токена.
func (p *Parser) diagSpan(tok token.Token) source.Span {
	if tok.Kind == token.EOF && p.lastSpan.End > 0 {
		return source.Span{File: p.lastSpan.File, Start: p.lastSpan.End, End: p.lastSpan.End}
	}
	return tok.Span
}

// enterScope switches the lexer scope and returns the matching restore.
// Use as `defer p.enterScope(s)()` so every exit path restores.
func (p *Parser) enterScope(s lexer.Scope) func() {
	prev := p.lx.SetScope(s)
	return func() { p.lx.SetScope(prev) }
}

// declare registers a component-level name; redeclaration is a NameError.
func (p *Parser) declare(name string, sp source.Span) bool {
	if prev, dup := p.names[name]; dup {
		p.fail(diag.NameError, diag.SemaDuplicateDecl, sp,
			fmt.Sprintf("%s is already declared at offset %d", name, prev.Start))
		return false
	}
	p.names[name] = sp
	return true
}

func describe(tok token.Token) string {
	switch tok.Kind {
	case token.EOF:
		return "end of input"
	case token.Ident:
		return fmt.Sprintf("identifier %q", tok.Text)
	case token.Invalid:
		return "invalid token"
	}
	if tok.Text != "" {
		return fmt.Sprintf("%q", tok.Text)
	}
	return tok.Kind.String()
}
