package lexer

import (
	"cdl/internal/diag"
	"cdl/internal/token"
)

// collectLeadingTrivia собирает подряд идущие trivia перед значимым токеном.
//   - пробелы, табы и '\r' коалесцируются в один TriviaSpace
//   - подряд идущие '\n' коалесцируются в один TriviaNewline
//   - //... до \n -> TriviaLineComment
//   - /* ... */ -> TriviaBlockComment (без вложенности; незакрытый даёт LexError)
func (lx *Lexer) collectLeadingTrivia() {
	lx.hold = lx.hold[:0]
	for !lx.cursor.EOF() {
		start := lx.cursor.Mark()
		switch b := lx.cursor.Peek(); {
		case b == ' ' || b == '\t' || b == '\r' || b == '\f' || b == '\v':
			for isSpace(lx.cursor.Peek()) {
				lx.cursor.Bump()
			}
			lx.keep(token.TriviaSpace, start)
		case b == '\n':
			for lx.cursor.Peek() == '\n' {
				lx.cursor.Bump()
			}
			lx.keep(token.TriviaNewline, start)
		case b == '/' && lx.scanComment():
		default:
			return
		}
	}
}

func (lx *Lexer) keep(kind token.TriviaKind, start Mark) {
	if !lx.opts.KeepTrivia {
		return
	}
	sp := lx.cursor.SpanFrom(start)
	lx.hold = append(lx.hold, token.Trivia{Kind: kind, Span: sp, Text: lx.text(sp)})
}

// scanComment consumes `//...` or `/*...*/`; a lone '/' is left for the operator scanner.
func (lx *Lexer) scanComment() bool {
	start := lx.cursor.Mark()
	_, b1, ok := lx.cursor.Peek2()
	if !ok {
		return false
	}
	switch b1 {
	case '/':
		for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
			lx.cursor.Bump()
		}
		lx.keep(token.TriviaLineComment, start)
		return true
	case '*':
		lx.cursor.Bump()
		lx.cursor.Bump()
		for {
			if lx.cursor.EOF() {
				lx.fail(diag.LexUnterminatedBlockComment, lx.cursor.SpanFrom(start), "unterminated block comment")
				lx.keep(token.TriviaBlockComment, start)
				return true
			}
			if lx.try2('*', '/') {
				break
			}
			lx.cursor.Bump()
		}
		lx.keep(token.TriviaBlockComment, start)
		return true
	}
	return false
}
