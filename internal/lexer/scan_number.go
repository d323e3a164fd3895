package lexer

import (
	"cdl/internal/diag"
	"cdl/internal/token"
)

// scanNumber: 123, 0x1F, 0b0101. Value holds the digits without the prefix.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()
	kind := token.IntLit
	digits := isDec

	if b0, b1, ok := lx.cursor.Peek2(); ok && b0 == '0' {
		switch b1 {
		case 'x':
			kind, digits = token.HexIntLit, isHex
		case 'b':
			kind, digits = token.BinIntLit, isBin
		}
	}
	if kind != token.IntLit {
		lx.cursor.Bump()
		lx.cursor.Bump()
	}
	valStart := lx.cursor.Off
	for digits(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	valEnd := lx.cursor.Off
	// "0b2" or "12ab": a literal glued to garbage
	for isIdentContinueByte(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	sp := lx.cursor.SpanFrom(start)
	if valEnd == valStart || valEnd != sp.End {
		lx.fail(diag.LexBadNumber, sp, "malformed integer literal "+lx.text(sp))
		return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
	}
	return token.Token{
		Kind:  kind,
		Span:  sp,
		Text:  lx.text(sp),
		Value: string(lx.file.Content[valStart:valEnd]),
	}
}

// vectorAfterX reports whether the cursor sits on `x"`.
func (lx *Lexer) vectorAfterX() bool {
	b0, b1, ok := lx.cursor.Peek2()
	return ok && b0 == 'x' && b1 == '"'
}

// scanVector: "0101" (binary digits) or x"1F" (hex digits).
func (lx *Lexer) scanVector() token.Token {
	start := lx.cursor.Mark()
	kind, digits := token.BinVecLit, isBin
	if lx.cursor.Eat('x') {
		kind, digits = token.HexVecLit, isHex
	}
	lx.cursor.Bump() // '"'
	valStart := lx.cursor.Off
	for !lx.cursor.EOF() && lx.cursor.Peek() != '"' && lx.cursor.Peek() != '\n' {
		if !digits(lx.cursor.Peek()) {
			bad := lx.cursor.Mark()
			lx.cursor.Bump()
			lx.fail(diag.LexBadVectorDigit, lx.cursor.SpanFrom(bad), "invalid digit in vector literal")
			sp := lx.cursor.SpanFrom(start)
			return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
		}
		lx.cursor.Bump()
	}
	valEnd := lx.cursor.Off
	if !lx.cursor.Eat('"') {
		sp := lx.cursor.SpanFrom(start)
		lx.fail(diag.LexUnterminatedVector, sp, "unterminated vector literal")
		return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
	}
	sp := lx.cursor.SpanFrom(start)
	return token.Token{
		Kind:  kind,
		Span:  sp,
		Text:  lx.text(sp),
		Value: string(lx.file.Content[valStart:valEnd]),
	}
}
