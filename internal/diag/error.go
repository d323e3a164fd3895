package diag

import (
	"errors"
	"fmt"

	"cdl/internal/source"
)

// ErrorKind classifies a fatal compilation error.
type ErrorKind uint8

const (
	// LexError: a character matches no tokenization rule.
	LexError ErrorKind = iota + 1
	// SyntaxError: the current token does not satisfy the grammar.
	SyntaxError
	// TypeError: splice of an identifier that is not a declared vector.
	TypeError
	// NameError: duplicate or unknown component, declaration or instance.
	NameError
	// PortError: reference to a port a subcomponent does not declare.
	PortError
	// CircularReferenceError: components instantiate each other.
	CircularReferenceError
	// GenericError: the top-level component declares generics.
	GenericError
)

func (k ErrorKind) String() string {
	switch k {
	case LexError:
		return "LexError"
	case SyntaxError:
		return "SyntaxError"
	case TypeError:
		return "TypeError"
	case NameError:
		return "NameError"
	case PortError:
		return "PortError"
	case CircularReferenceError:
		return "CircularReferenceError"
	case GenericError:
		return "GenericError"
	}
	return "Error"
}

// Error is the fatal error value every phase returns.
type Error struct {
	Kind    ErrorKind
	Code    Code
	Span    source.Span
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Diagnostic converts e into an error-severity diagnostic.
func (e *Error) Diagnostic() Diagnostic {
	return NewError(e.Code, e.Span, e.Message)
}

// Errorf builds an *Error with a formatted message.
func Errorf(kind ErrorKind, code Code, span source.Span, format string, args ...any) *Error {
	return &Error{Kind: kind, Code: code, Span: span, Message: fmt.Sprintf(format, args...)}
}

// KindOf extracts the ErrorKind from err, looking through wrapping.
func KindOf(err error) (ErrorKind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}

// Fail reports e through r (if non-nil) and returns it.
func Fail(r Reporter, e *Error) *Error {
	if r != nil {
		r.Report(e.Code, SevError, e.Span, e.Message, nil)
	}
	return e
}
