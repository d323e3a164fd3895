package lexer

import (
	"fmt"

	"cdl/internal/diag"
	"cdl/internal/token"
)

// Жадность: сначала 2-символьные, затем 1-символьные.
// `<=` и `:` зависят от текущего scope.
func (lx *Lexer) scanOperatorOrPunct() token.Token {
	start := lx.cursor.Mark()
	emit := func(k token.Kind) token.Token {
		sp := lx.cursor.SpanFrom(start)
		text := lx.text(sp)
		return token.Token{Kind: k, Span: sp, Text: text, Value: text}
	}

	switch {
	case lx.try2('*', '*'):
		return emit(token.StarStar)
	case lx.try2('=', '='):
		return emit(token.EqEq)
	case lx.try2('!', '='):
		return emit(token.BangEq)
	case lx.try2('>', '='):
		return emit(token.GtEq)
	case lx.try2('<', '='):
		if lx.scope == ScopeRelational {
			return emit(token.LtEq)
		}
		return emit(token.SigAssign)
	}

	ch := lx.cursor.Bump()
	switch ch {
	case '+':
		return emit(token.Plus)
	case '-':
		return emit(token.Minus)
	case '*':
		return emit(token.Star)
	case '/':
		return emit(token.Slash)
	case '%':
		return emit(token.Percent)
	case '?':
		return emit(token.Question)
	case ':':
		if lx.scope == ScopeIndex {
			return emit(token.RangeSep)
		}
		return emit(token.Colon)
	case '&':
		return emit(token.Amp)
	case '|':
		return emit(token.Pipe)
	case '^':
		return emit(token.Caret)
	case '!':
		return emit(token.Bang)
	case '<':
		return emit(token.Lt)
	case '>':
		return emit(token.Gt)
	case '=':
		return emit(token.Assign)
	case '(':
		return emit(token.LParen)
	case ')':
		return emit(token.RParen)
	case '{':
		return emit(token.LBrace)
	case '}':
		return emit(token.RBrace)
	case '[':
		return emit(token.LBracket)
	case ']':
		return emit(token.RBracket)
	case ',':
		return emit(token.Comma)
	case '.':
		return emit(token.Dot)
	case ';':
		return emit(token.Semicolon)
	default:
		// неизвестный символ: съедаем всю руну, чтобы span не резал UTF-8
		for !lx.cursor.EOF() && lx.cursor.Peek()&0xC0 == 0x80 {
			lx.cursor.Bump()
		}
		sp := lx.cursor.SpanFrom(start)
		text := lx.text(sp)
		lx.fail(diag.LexUnknownChar, sp, fmt.Sprintf("unknown character %q", text))
		return token.Token{Kind: token.Invalid, Span: sp, Text: text}
	}
}

func (lx *Lexer) try2(a, b byte) bool {
	b0, b1, ok := lx.cursor.Peek2()
	if ok && b0 == a && b1 == b {
		lx.cursor.Bump()
		lx.cursor.Bump()
		return true
	}
	return false
}
