package ast

import (
	"strconv"

	"cdl/internal/source"
)

type DeclKind uint8

const (
	DeclGeneric DeclKind = iota + 1
	DeclSignal
	DeclVariable
	DeclConst
	DeclPort
)

func (k DeclKind) String() string {
	switch k {
	case DeclGeneric:
		return "Generic"
	case DeclSignal:
		return "Signal"
	case DeclVariable:
		return "Variable"
	case DeclConst:
		return "Const"
	case DeclPort:
		return "Port"
	}
	return "Decl(?)"
}

// TypeKind is one of the four CDL value types.
type TypeKind uint8

const (
	TypeInt TypeKind = iota + 1
	TypeUint
	TypeVec
	TypeBool
)

func (t TypeKind) String() string {
	switch t {
	case TypeInt:
		return "int"
	case TypeUint:
		return "uint"
	case TypeVec:
		return "vec"
	case TypeBool:
		return "bool"
	}
	return "?"
}

type PortDir uint8

const (
	PortNone PortDir = iota
	PortIn
	PortOut
)

func (d PortDir) String() string {
	switch d {
	case PortIn:
		return "input"
	case PortOut:
		return "output"
	}
	return ""
}

type WidthKind uint8

const (
	// WidthScalar: no width written, one bit.
	WidthScalar WidthKind = iota
	// WidthLiteral: `[8]`.
	WidthLiteral
	// WidthGeneric: `[W]`, resolved only by the target tool.
	WidthGeneric
)

// Width is the declared size of a vec.
type Width struct {
	Kind  WidthKind
	Value uint32 // WidthLiteral
	Name  string // WidthGeneric
}

// Bits returns the literal width; scalar counts as 1 and generic as 0 (unknown).
func (w Width) Bits() uint32 {
	switch w.Kind {
	case WidthLiteral:
		return w.Value
	case WidthScalar:
		return 1
	}
	return 0
}

func (w Width) String() string {
	switch w.Kind {
	case WidthLiteral:
		return strconv.FormatUint(uint64(w.Value), 10)
	case WidthGeneric:
		return w.Name
	}
	return ""
}

// Decl is shared by generics, signals, variables, constants and ports.
type Decl struct {
	Kind     DeclKind
	Span     source.Span
	Name     string
	NameSpan source.Span
	Type     TypeKind
	Width    Width
	Dir      PortDir // DeclPort only
	Value    ExprID  // DeclConst only
}

type Decls struct {
	Arena *Arena[Decl]
}

func NewDecls(capHint uint) *Decls {
	return &Decls{Arena: NewArena[Decl](capHint)}
}

func (d *Decls) New(decl Decl) DeclID {
	return DeclID(d.Arena.Allocate(decl))
}

func (d *Decls) Get(id DeclID) *Decl {
	return d.Arena.Get(uint32(id))
}
