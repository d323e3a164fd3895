package ast

import (
	"strings"

	"cdl/internal/source"
)

// Exprs manages allocation of expressions.
type Exprs struct {
	Arena     *Arena[Expr]
	Idents    *Arena[ExprIdentData]
	Consts    *Arena[ExprConstData]
	Binaries  *Arena[ExprBinaryData]
	Unaries   *Arena[ExprUnaryData]
	Ternaries *Arena[ExprTernaryData]
	Splices   *Arena[ExprSpliceData]
}

// NewExprs creates per-kind arenas; capHint 0 means 1<<8.
func NewExprs(capHint uint) *Exprs {
	if capHint == 0 {
		capHint = 1 << 8
	}
	small := capHint/4 + 1
	return &Exprs{
		Arena:     NewArena[Expr](capHint),
		Idents:    NewArena[ExprIdentData](capHint),
		Consts:    NewArena[ExprConstData](capHint),
		Binaries:  NewArena[ExprBinaryData](capHint),
		Unaries:   NewArena[ExprUnaryData](small),
		Ternaries: NewArena[ExprTernaryData](small),
		Splices:   NewArena[ExprSpliceData](small),
	}
}

func (e *Exprs) new(kind ExprKind, span source.Span, payload uint32) ExprID {
	return ExprID(e.Arena.Allocate(Expr{
		Kind:    kind,
		Span:    span,
		Payload: PayloadID(payload),
	}))
}

// Get returns the expression header, or nil for NoExprID.
func (e *Exprs) Get(id ExprID) *Expr {
	return e.Arena.Get(uint32(id))
}

func (e *Exprs) NewIdent(span source.Span, name string) ExprID {
	return e.new(ExprIdent, span, e.Idents.Allocate(ExprIdentData{Name: name}))
}

func (e *Exprs) Ident(id ExprID) (*ExprIdentData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprIdent {
		return nil, false
	}
	return e.Idents.Get(uint32(expr.Payload)), true
}

func (e *Exprs) NewConst(span source.Span, kind ConstKind, value string) ExprID {
	return e.new(ExprConst, span, e.Consts.Allocate(ExprConstData{Kind: kind, Value: value}))
}

func (e *Exprs) Const(id ExprID) (*ExprConstData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprConst {
		return nil, false
	}
	return e.Consts.Get(uint32(expr.Payload)), true
}

func (e *Exprs) NewBinary(span source.Span, op ExprBinaryOp, left, right ExprID) ExprID {
	return e.new(ExprBinary, span, e.Binaries.Allocate(ExprBinaryData{Op: op, Left: left, Right: right}))
}

func (e *Exprs) Binary(id ExprID) (*ExprBinaryData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprBinary {
		return nil, false
	}
	return e.Binaries.Get(uint32(expr.Payload)), true
}

func (e *Exprs) NewUnary(span source.Span, op ExprUnaryOp, operand ExprID) ExprID {
	return e.new(ExprUnary, span, e.Unaries.Allocate(ExprUnaryData{Op: op, Operand: operand}))
}

func (e *Exprs) Unary(id ExprID) (*ExprUnaryData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprUnary {
		return nil, false
	}
	return e.Unaries.Get(uint32(expr.Payload)), true
}

func (e *Exprs) NewTernary(span source.Span, cond, then, els ExprID) ExprID {
	return e.new(ExprTernary, span, e.Ternaries.Allocate(ExprTernaryData{Cond: cond, Then: then, Else: els}))
}

func (e *Exprs) Ternary(id ExprID) (*ExprTernaryData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprTernary {
		return nil, false
	}
	return e.Ternaries.Get(uint32(expr.Payload)), true
}

func (e *Exprs) NewSplice(span source.Span, target, high, low ExprID) ExprID {
	return e.new(ExprSplice, span, e.Splices.Allocate(ExprSpliceData{Target: target, High: high, Low: low}))
}

func (e *Exprs) Splice(id ExprID) (*ExprSpliceData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprSplice {
		return nil, false
	}
	return e.Splices.Get(uint32(expr.Payload)), true
}

// Path returns the segments of a dotted identifier chain (`a.b.c` -> a, b, c).
// ok is false when id is not an identifier or a chain of them.
func (e *Exprs) Path(id ExprID) (segs []string, ok bool) {
	for {
		if ident, isIdent := e.Ident(id); isIdent {
			return append(segs, ident.Name), true
		}
		bin, isBin := e.Binary(id)
		if !isBin || bin.Op != ExprBinaryMember {
			return nil, false
		}
		left, isIdent := e.Ident(bin.Left)
		if !isIdent {
			return nil, false
		}
		segs = append(segs, left.Name)
		id = bin.Right
	}
}

// PathString joins Path with dots; "" if id is not a path.
func (e *Exprs) PathString(id ExprID) string {
	segs, ok := e.Path(id)
	if !ok {
		return ""
	}
	return strings.Join(segs, ".")
}

// ListItems flattens a right-nested `,` chain into its elements.
func (e *Exprs) ListItems(id ExprID) []ExprID {
	var out []ExprID
	for id.IsValid() {
		bin, ok := e.Binary(id)
		if !ok || bin.Op != ExprBinaryList {
			out = append(out, id)
			break
		}
		out = append(out, bin.Left)
		id = bin.Right
	}
	return out
}
