package token

import "cdl/internal/source"

// Token represents a single source token with its location and trivia.
type Token struct {
	Kind    Kind
	Span    source.Span
	Text    string
	Value   string
	Leading []Trivia
}

// IsLiteral reports whether the token is an integer, vector or boolean constant.
func (t Token) IsLiteral() bool {
	switch t.Kind {
	case IntLit, HexIntLit, BinIntLit, BinVecLit, HexVecLit, KwTrue, KwFalse:
		return true
	default:
		return false
	}
}

// IsType reports whether the token names a declaration type.
func (t Token) IsType() bool {
	switch t.Kind {
	case KwInt, KwUint, KwVec, KwBool:
		return true
	default:
		return false
	}
}

// IsDirection reports whether the token is a port direction.
func (t Token) IsDirection() bool {
	return t.Kind == KwInput || t.Kind == KwOutput
}

// IsKeyword reports whether the token is a reserved word.
func (t Token) IsKeyword() bool {
	return t.Kind >= KwComponent && t.Kind <= KwVerification
}

// IsIdent reports whether the token is an identifier.
func (t Token) IsIdent() bool { return t.Kind == Ident }
