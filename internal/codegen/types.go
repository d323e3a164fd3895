package codegen

import (
	"fmt"
	"strconv"

	"cdl/internal/ast"
)

// vhdlType maps a CDL type and width onto a VHDL subtype indication.
// A vec without a width is a single std_logic bit.
func vhdlType(typ ast.TypeKind, w ast.Width) string {
	switch typ {
	case ast.TypeInt:
		return "integer"
	case ast.TypeUint:
		return "natural"
	case ast.TypeBool:
		return "boolean"
	case ast.TypeVec:
		if w.Kind == ast.WidthScalar {
			return "std_logic"
		}
		return "unsigned(" + widthRange(w) + ")"
	}
	return "std_logic"
}

// widthRange: 8 -> "7 downto 0", W -> "W - 1 downto 0".
func widthRange(w ast.Width) string {
	if w.Kind == ast.WidthGeneric {
		return w.Name + " - 1 downto 0"
	}
	return fmt.Sprintf("%d downto 0", int64(w.Value)-1)
}

// substituteWidth resolves a generic width of a subcomponent port against the
// generic values an instance supplies. ok is false when the generic is unbound
// or bound to something that is not an integer or an enclosing generic.
func substituteWidth(w ast.Width, exprs *ast.Exprs, bindings map[string]ast.ExprID) (ast.Width, bool) {
	if w.Kind != ast.WidthGeneric {
		return w, true
	}
	val, bound := bindings[w.Name]
	if !bound {
		return w, false
	}
	if ident, ok := exprs.Ident(val); ok {
		return ast.Width{Kind: ast.WidthGeneric, Name: ident.Name}, true
	}
	c, ok := exprs.Const(val)
	if !ok {
		return w, false
	}
	base := 0
	switch c.Kind {
	case ast.ConstInt:
		base = 10
	case ast.ConstHexInt:
		base = 16
	case ast.ConstBinInt:
		base = 2
	default:
		return w, false
	}
	n, err := strconv.ParseUint(c.Value, base, 32)
	if err != nil || n == 0 {
		return w, false
	}
	return ast.Width{Kind: ast.WidthLiteral, Value: uint32(n)}, true
}
