package lexer

import (
	"cdl/internal/diag"
	"cdl/internal/source"
)

// Scope selects how the two context-sensitive lexemes are classified.
// The parser owns the scope; the lexer never changes it on its own.
type Scope uint8

const (
	// ScopeGeneral: `<=` is signal assignment, `:` is the ternary separator.
	ScopeGeneral Scope = iota
	// ScopeRelational: `<=` is less-or-equal.
	ScopeRelational
	// ScopeIndex: `:` separates the bounds of a splice.
	ScopeIndex
)

func (s Scope) String() string {
	switch s {
	case ScopeRelational:
		return "relational"
	case ScopeIndex:
		return "index"
	default:
		return "general"
	}
}

type Options struct {
	Reporter diag.Reporter // может быть nil
	// KeepTrivia attaches comments and whitespace to Token.Leading.
	KeepTrivia bool
}

// fail records the first fatal error and reports it. Later errors are dropped:
// the caller stops at the first Invalid token anyway.
func (lx *Lexer) fail(code diag.Code, sp source.Span, msg string) {
	if lx.err != nil {
		return
	}
	lx.err = diag.Fail(lx.opts.Reporter, &diag.Error{
		Kind:    diag.LexError,
		Code:    code,
		Span:    sp,
		Message: msg,
	})
}
