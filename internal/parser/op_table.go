package parser

import (
	"cdl/internal/ast"
	"cdl/internal/token"
)

// Каждый уровень грамматики знает только свои операторы.

// boolean combination: & | ^
func boolCombineOp(k token.Kind) (ast.ExprBinaryOp, bool) {
	switch k {
	case token.Amp:
		return ast.ExprBinaryBoolAnd, true
	case token.Pipe:
		return ast.ExprBinaryBoolOr, true
	case token.Caret:
		return ast.ExprBinaryBoolXor, true
	}
	return 0, false
}

// relation: < > <= >= == !=
func relationOp(k token.Kind) (ast.ExprBinaryOp, bool) {
	switch k {
	case token.Lt:
		return ast.ExprBinaryLt, true
	case token.Gt:
		return ast.ExprBinaryGt, true
	case token.LtEq:
		return ast.ExprBinaryLtEq, true
	case token.GtEq:
		return ast.ExprBinaryGtEq, true
	case token.EqEq:
		return ast.ExprBinaryEq, true
	case token.BangEq:
		return ast.ExprBinaryNotEq, true
	}
	return 0, false
}

// additive: + - or nor
func additiveOp(k token.Kind) (ast.ExprBinaryOp, bool) {
	switch k {
	case token.Plus:
		return ast.ExprBinaryAdd, true
	case token.Minus:
		return ast.ExprBinarySub, true
	case token.KwOr:
		return ast.ExprBinaryOr, true
	case token.KwNor:
		return ast.ExprBinaryNor, true
	}
	return 0, false
}

// multiplicative: * / % and nand xor xnor
func multiplicativeOp(k token.Kind) (ast.ExprBinaryOp, bool) {
	switch k {
	case token.Star:
		return ast.ExprBinaryMul, true
	case token.Slash:
		return ast.ExprBinaryDiv, true
	case token.Percent:
		return ast.ExprBinaryMod, true
	case token.KwAnd:
		return ast.ExprBinaryAnd, true
	case token.KwNand:
		return ast.ExprBinaryNand, true
	case token.KwXor:
		return ast.ExprBinaryXor, true
	case token.KwXnor:
		return ast.ExprBinaryXnor, true
	}
	return 0, false
}

func constKind(k token.Kind) (ast.ConstKind, bool) {
	switch k {
	case token.IntLit:
		return ast.ConstInt, true
	case token.HexIntLit:
		return ast.ConstHexInt, true
	case token.BinIntLit:
		return ast.ConstBinInt, true
	case token.BinVecLit:
		return ast.ConstBinVec, true
	case token.HexVecLit:
		return ast.ConstHexVec, true
	case token.KwTrue, token.KwFalse:
		return ast.ConstBool, true
	}
	return 0, false
}

func typeKind(k token.Kind) (ast.TypeKind, bool) {
	switch k {
	case token.KwInt:
		return ast.TypeInt, true
	case token.KwUint:
		return ast.TypeUint, true
	case token.KwVec:
		return ast.TypeVec, true
	case token.KwBool:
		return ast.TypeBool, true
	}
	return 0, false
}
