package ast

import "fmt"

// ExprVisitor is implemented by passes that handle every expression variant.
type ExprVisitor[T any] interface {
	VisitIdent(id ExprID, data *ExprIdentData) T
	VisitConst(id ExprID, data *ExprConstData) T
	VisitBinary(id ExprID, data *ExprBinaryData) T
	VisitUnary(id ExprID, data *ExprUnaryData) T
	VisitTernary(id ExprID, data *ExprTernaryData) T
	VisitSplice(id ExprID, data *ExprSpliceData) T
}

// VisitExpr dispatches id to the matching method of v.
func VisitExpr[T any](e *Exprs, id ExprID, v ExprVisitor[T]) T {
	expr := e.Get(id)
	if expr == nil {
		panic(fmt.Sprintf("ast: visit of invalid expression %d", id))
	}
	switch expr.Kind {
	case ExprIdent:
		return v.VisitIdent(id, e.Idents.Get(uint32(expr.Payload)))
	case ExprConst:
		return v.VisitConst(id, e.Consts.Get(uint32(expr.Payload)))
	case ExprBinary:
		return v.VisitBinary(id, e.Binaries.Get(uint32(expr.Payload)))
	case ExprUnary:
		return v.VisitUnary(id, e.Unaries.Get(uint32(expr.Payload)))
	case ExprTernary:
		return v.VisitTernary(id, e.Ternaries.Get(uint32(expr.Payload)))
	case ExprSplice:
		return v.VisitSplice(id, e.Splices.Get(uint32(expr.Payload)))
	}
	panic(fmt.Sprintf("ast: unknown expression kind %d", expr.Kind))
}
