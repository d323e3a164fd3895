package ast

import "strings"

// ConstText returns the literal as it would be written in CDL source.
func ConstText(c *ExprConstData) string {
	switch c.Kind {
	case ConstHexInt:
		return "0x" + c.Value
	case ConstBinInt:
		return "0b" + c.Value
	case ConstBinVec:
		return `"` + c.Value + `"`
	case ConstHexVec:
		return `x"` + c.Value + `"`
	}
	return c.Value
}

// SExpr renders id as a fully parenthesized prefix form, e.g. (+ 2 (* 3 4)).
// Used by the tree dump and by tests to check associativity.
func (e *Exprs) SExpr(id ExprID) string {
	return VisitExpr[string](e, id, sexprPrinter{e: e})
}

type sexprPrinter struct{ e *Exprs }

func (p sexprPrinter) VisitIdent(_ ExprID, d *ExprIdentData) string { return d.Name }

func (p sexprPrinter) VisitConst(_ ExprID, d *ExprConstData) string { return ConstText(d) }

func (p sexprPrinter) VisitBinary(_ ExprID, d *ExprBinaryData) string {
	if d.Op == ExprBinaryMember {
		return p.e.SExpr(d.Left) + "." + p.e.SExpr(d.Right)
	}
	return "(" + d.Op.String() + " " + p.e.SExpr(d.Left) + " " + p.e.SExpr(d.Right) + ")"
}

func (p sexprPrinter) VisitUnary(_ ExprID, d *ExprUnaryData) string {
	if d.Op == ExprUnaryParen {
		return "(paren " + p.e.SExpr(d.Operand) + ")"
	}
	return "(" + d.Op.String() + " " + p.e.SExpr(d.Operand) + ")"
}

func (p sexprPrinter) VisitTernary(_ ExprID, d *ExprTernaryData) string {
	return "(? " + p.e.SExpr(d.Cond) + " " + p.e.SExpr(d.Then) + " " + p.e.SExpr(d.Else) + ")"
}

func (p sexprPrinter) VisitSplice(_ ExprID, d *ExprSpliceData) string {
	var sb strings.Builder
	sb.WriteString("(splice ")
	sb.WriteString(p.e.SExpr(d.Target))
	sb.WriteByte(' ')
	sb.WriteString(p.e.SExpr(d.High))
	if d.Low != d.High {
		sb.WriteByte(' ')
		sb.WriteString(p.e.SExpr(d.Low))
	}
	sb.WriteByte(')')
	return sb.String()
}
