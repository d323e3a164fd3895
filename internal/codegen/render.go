package codegen

import (
	"cdl/internal/ast"
)

// vhdlBinaryOp maps CDL operators onto VHDL spelling.
var vhdlBinaryOp = map[ast.ExprBinaryOp]string{
	ast.ExprBinaryAdd: "+", ast.ExprBinarySub: "-", ast.ExprBinaryMul: "*", ast.ExprBinaryDiv: "/",
	ast.ExprBinaryMod: "mod", ast.ExprBinaryPow: "**",
	ast.ExprBinaryAnd: "and", ast.ExprBinaryOr: "or", ast.ExprBinaryNand: "nand", ast.ExprBinaryNor: "nor",
	ast.ExprBinaryXor: "xor", ast.ExprBinaryXnor: "xnor",
	ast.ExprBinaryBoolAnd: "and", ast.ExprBinaryBoolOr: "or", ast.ExprBinaryBoolXor: "xor",
	ast.ExprBinaryLt: "<", ast.ExprBinaryGt: ">", ast.ExprBinaryLtEq: "<=", ast.ExprBinaryGtEq: ">=",
	ast.ExprBinaryEq: "=", ast.ExprBinaryNotEq: "/=",
	ast.ExprBinaryGenericAssign: "=>", ast.ExprBinarySigAssign: "<=",
}

// renderer turns an expression tree into VHDL text.
type renderer struct {
	e *ast.Exprs
}

func (r renderer) render(id ast.ExprID) string {
	return ast.VisitExpr[string](r.e, id, r)
}

func (r renderer) VisitIdent(_ ast.ExprID, d *ast.ExprIdentData) string {
	return d.Name
}

func (r renderer) VisitConst(_ ast.ExprID, d *ast.ExprConstData) string {
	return vhdlConst(d)
}

func (r renderer) VisitBinary(_ ast.ExprID, d *ast.ExprBinaryData) string {
	switch d.Op {
	case ast.ExprBinaryMember:
		return r.render(d.Left) + "." + r.render(d.Right)
	case ast.ExprBinaryList:
		return r.render(d.Left) + ", " + r.render(d.Right)
	}
	op, ok := vhdlBinaryOp[d.Op]
	if !ok {
		op = d.Op.String()
	}
	return r.render(d.Left) + " " + op + " " + r.render(d.Right)
}

func (r renderer) VisitUnary(_ ast.ExprID, d *ast.ExprUnaryData) string {
	switch d.Op {
	case ast.ExprUnaryParen:
		return "(" + r.render(d.Operand) + ")"
	case ast.ExprUnaryBang, ast.ExprUnaryNot:
		return "not " + r.render(d.Operand)
	}
	return d.Op.String() + " " + r.render(d.Operand)
}

func (r renderer) VisitTernary(_ ast.ExprID, d *ast.ExprTernaryData) string {
	return "(" + r.render(d.Then) + ") when (" + r.render(d.Cond) + ") else (" + r.render(d.Else) + ")"
}

func (r renderer) VisitSplice(_ ast.ExprID, d *ast.ExprSpliceData) string {
	high, low := r.render(d.High), r.render(d.Low)
	// foo[1:1] тоже один бит
	if low == high {
		return r.render(d.Target) + "(" + high + ")"
	}
	return r.render(d.Target) + "(" + high + " downto " + low + ")"
}

// vhdlConst renders a literal; prefixed integers use VHDL based notation.
func vhdlConst(c *ast.ExprConstData) string {
	switch c.Kind {
	case ast.ConstHexInt:
		return "16#" + c.Value + "#"
	case ast.ConstBinInt:
		return "2#" + c.Value + "#"
	}
	return ast.ConstText(c)
}
