package ast

import "cdl/internal/source"

// ExprKind enumerates the closed set of expression variants.
type ExprKind uint8

const (
	// ExprIdent is a plain identifier.
	ExprIdent ExprKind = iota + 1
	// ExprConst is an integer, vector or boolean constant.
	ExprConst
	// ExprBinary covers arithmetic, relational, boolean, member access,
	// generic assignment, list and signal assignment.
	ExprBinary
	// ExprUnary covers minus, not and parentheses.
	ExprUnary
	// ExprTernary is `cond ? then : else`.
	ExprTernary
	// ExprSplice is a bit range or single bit of a vector identifier.
	ExprSplice
)

func (k ExprKind) String() string {
	switch k {
	case ExprIdent:
		return "Identifier"
	case ExprConst:
		return "Constant"
	case ExprBinary:
		return "BinaryOp"
	case ExprUnary:
		return "UnaryOp"
	case ExprTernary:
		return "TernaryOp"
	case ExprSplice:
		return "Splice"
	}
	return "Expr(?)"
}

// Expr is the arena header of every expression.
type Expr struct {
	Kind    ExprKind
	Span    source.Span
	Payload PayloadID
}

// ExprBinaryOp enumerates binary operators.
type ExprBinaryOp uint8

const (
	// Арифметические
	ExprBinaryAdd ExprBinaryOp = iota + 1
	ExprBinarySub
	ExprBinaryMul
	ExprBinaryDiv
	ExprBinaryMod
	ExprBinaryPow

	// Побитовые словами: and/or/nand/nor/xor/xnor
	ExprBinaryAnd
	ExprBinaryOr
	ExprBinaryNand
	ExprBinaryNor
	ExprBinaryXor
	ExprBinaryXnor

	// Булевы символами: & | ^
	ExprBinaryBoolAnd
	ExprBinaryBoolOr
	ExprBinaryBoolXor

	// Сравнения
	ExprBinaryLt
	ExprBinaryGt
	ExprBinaryLtEq
	ExprBinaryGtEq
	ExprBinaryEq
	ExprBinaryNotEq

	// ExprBinaryMember is dotted access `a.b`.
	ExprBinaryMember
	// ExprBinaryGenericAssign is `name = value` inside a generic list.
	ExprBinaryGenericAssign
	// ExprBinaryList chains generic assignments with `,`.
	ExprBinaryList
	// ExprBinarySigAssign is `lhs <= rhs`.
	ExprBinarySigAssign
)

var binaryOpText = [...]string{
	ExprBinaryAdd: "+", ExprBinarySub: "-", ExprBinaryMul: "*", ExprBinaryDiv: "/",
	ExprBinaryMod: "%", ExprBinaryPow: "**",
	ExprBinaryAnd: "and", ExprBinaryOr: "or", ExprBinaryNand: "nand", ExprBinaryNor: "nor",
	ExprBinaryXor: "xor", ExprBinaryXnor: "xnor",
	ExprBinaryBoolAnd: "&", ExprBinaryBoolOr: "|", ExprBinaryBoolXor: "^",
	ExprBinaryLt: "<", ExprBinaryGt: ">", ExprBinaryLtEq: "<=", ExprBinaryGtEq: ">=",
	ExprBinaryEq: "==", ExprBinaryNotEq: "!=",
	ExprBinaryMember: ".", ExprBinaryGenericAssign: "=", ExprBinaryList: ",",
	ExprBinarySigAssign: "<=",
}

// String returns the CDL spelling of the operator.
func (op ExprBinaryOp) String() string {
	if int(op) < len(binaryOpText) && binaryOpText[op] != "" {
		return binaryOpText[op]
	}
	return "?"
}

// ExprUnaryOp enumerates unary operators.
type ExprUnaryOp uint8

const (
	ExprUnaryNeg  ExprUnaryOp = iota + 1 // -x
	ExprUnaryNot                         // not x
	ExprUnaryBang                        // !x
	// ExprUnaryParen is the parenthesization sentinel.
	ExprUnaryParen
)

func (op ExprUnaryOp) String() string {
	switch op {
	case ExprUnaryNeg:
		return "-"
	case ExprUnaryNot:
		return "not"
	case ExprUnaryBang:
		return "!"
	case ExprUnaryParen:
		return "()"
	}
	return "?"
}

// ConstKind is the lexical form a constant was written in.
type ConstKind uint8

const (
	ConstInt ConstKind = iota + 1
	ConstHexInt
	ConstBinInt
	ConstBinVec
	ConstHexVec
	ConstBool
)

type ExprIdentData struct {
	Name string
}

// ExprConstData keeps the literal digits exactly as written (no prefix, no quotes).
type ExprConstData struct {
	Kind  ConstKind
	Value string
}

type ExprBinaryData struct {
	Op    ExprBinaryOp
	Left  ExprID
	Right ExprID
}

type ExprUnaryData struct {
	Op      ExprUnaryOp
	Operand ExprID
}

type ExprTernaryData struct {
	Cond ExprID
	Then ExprID
	Else ExprID
}

// ExprSpliceData selects bits High..Low of Target. A single index sets High == Low.
type ExprSpliceData struct {
	Target ExprID
	High   ExprID
	Low    ExprID
}
