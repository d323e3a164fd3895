package lexer

import (
	"cdl/internal/diag"
	"cdl/internal/source"
	"cdl/internal/token"
)

type Lexer struct {
	file   *source.File
	cursor Cursor
	opts   Options
	scope  Scope
	look   *token.Token // 1 элементный буфер
	// lookFrom is the offset before the buffered token's trivia,
	// so the token can be re-lexed after a scope change.
	lookFrom Mark
	hold     []token.Trivia
	err      *diag.Error
}

// New creates a lexer over the whole file in ScopeGeneral.
func New(file *source.File, opts Options) *Lexer {
	return &Lexer{
		file:   file,
		cursor: NewCursor(file),
		opts:   opts,
	}
}

// NewRange creates a lexer restricted to [start, end) of file.
func NewRange(file *source.File, start, end uint32, opts Options) *Lexer {
	return &Lexer{
		file:   file,
		cursor: NewRangeCursor(file, start, end),
		opts:   opts,
	}
}

// Next returns the next significant token. After EOF it keeps returning EOF.
// On a lexical error it returns an Invalid token, Err becomes non-nil and
// every later call returns Invalid as well.
func (lx *Lexer) Next() token.Token {
	if lx.look != nil {
		tok := *lx.look
		lx.look = nil
		return tok
	}

	lx.collectLeadingTrivia()

	// ошибка липкая: после неё поток состоит из Invalid
	if lx.err != nil {
		return token.Token{Kind: token.Invalid, Span: lx.err.Span}
	}
	if lx.cursor.EOF() {
		return token.Token{Kind: token.EOF, Span: lx.EmptySpan()}
	}

	ch := lx.cursor.Peek()
	var tok token.Token
	switch {
	case ch == 'x' && lx.vectorAfterX():
		tok = lx.scanVector()
	case isIdentStartByte(ch):
		tok = lx.scanIdentOrKeyword()
	case isDec(ch):
		tok = lx.scanNumber()
	case ch == '"':
		tok = lx.scanVector()
	default:
		tok = lx.scanOperatorOrPunct()
	}

	if lx.opts.KeepTrivia {
		tok.Leading = lx.hold
	}
	lx.hold = nil
	return tok
}

// Peek returns the next token without consuming it.
func (lx *Lexer) Peek() token.Token {
	if lx.look != nil {
		return *lx.look
	}
	from := lx.cursor.Mark()
	t := lx.Next()
	lx.look = &t
	lx.lookFrom = from
	return t
}

// Scope returns the active scope.
func (lx *Lexer) Scope() Scope {
	return lx.scope
}

// SetScope switches the scope and returns the previous one.
// A buffered token whose kind depends on scope is dropped and lexed again.
func (lx *Lexer) SetScope(s Scope) Scope {
	prev := lx.scope
	lx.scope = s
	if prev != s && lx.look != nil && scopeSensitive(lx.look.Kind) {
		lx.cursor.Reset(lx.lookFrom)
		lx.look = nil
	}
	return prev
}

// Err returns the first lexical error, or nil.
func (lx *Lexer) Err() *diag.Error {
	return lx.err
}

// EmptySpan returns a zero-length span at the current offset.
func (lx *Lexer) EmptySpan() source.Span {
	return source.Span{File: lx.file.ID, Start: lx.cursor.Off, End: lx.cursor.Off}
}

// File returns the file being lexed.
func (lx *Lexer) File() *source.File {
	return lx.file
}

func scopeSensitive(k token.Kind) bool {
	switch k {
	case token.LtEq, token.SigAssign, token.Colon, token.RangeSep:
		return true
	}
	return false
}

func (lx *Lexer) text(sp source.Span) string {
	return string(lx.file.Content[sp.Start:sp.End])
}
