package parser

import (
	"testing"

	"cdl/internal/ast"
	"cdl/internal/diag"
	"cdl/internal/lexer"
)

func TestExpressionShape(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"product_binds_tighter", "2 + 3 * 4", "(+ 2 (* 3 4))"},
		{"sum_left_assoc", "a - b - c", "(- (- a b) c)"},
		{"power_left_assoc", "a ** b ** c", "(** (** a b) c)"},
		{"word_ops", "a and b or c", "(or (and a b) c)"},
		{"relation_under_bool", "a < b & c", "(& (< a b) c)"},
		{"bang_covers_relation", "!a == b", "(! (== a b))"},
		{"negate_factor", "-a * b", "(* (- a) b)"},
		{"not_covers_relation", "not a + b", "(not (+ a b))"},
		{"paren", "(a + b) * c", "(* (paren (+ a b)) c)"},
		{"ternary", "c ? a : b", "(? c a b)"},
		{"ternary_right_nested", "c ? a : d ? x : y", "(? c a (? d x y))"},
		{"ternary_in_then", "c ? d ? x : y : b", "(? c (? d x y) b)"},
		{"less_equal_is_relation", "a <= b", "(<= a b)"},
		{"dotted_path", "inst.q + 1", "(+ inst.q 1)"},
		{"deep_path", "a.b.c", "a.b.c"},
		{"vectors", `x"1F" ^ "0101"`, `(^ x"1F" "0101")`},
		{"prefixed_ints", "0x1F + 0b101", "(+ 0x1F 0b101)"},
		{"bool_literal", "true", "true"},
		{"splice_range", "foo[3:1]", "(splice foo 3 1)"},
		{"splice_bit", "foo[2]", "(splice foo 2)"},
		{"splice_expr_index", "foo[n - 1:0]", "(splice foo (- n 1) 0)"},
		{"splice_relation_inside", "foo[a < b]", "(splice foo (< a b))"},
		{"paren_ternary_in_index", "foo[(c ? 1 : 0)]", "(splice foo (paren (? c 1 0)))"},
		{"paren_range_in_index", "foo[(n + 1):0]", "(splice foo (paren (+ n 1)) 0)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, id, err := parseExprString(tt.input, "foo")
			if err != nil {
				t.Fatalf("parse %q: %v", tt.input, err)
			}
			if got := b.Exprs.SExpr(id); got != tt.want {
				t.Errorf("parse %q = %s, want %s", tt.input, got, tt.want)
			}
		})
	}
}

func TestExpressionErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		kind  diag.ErrorKind
		code  diag.Code
	}{
		{"splice_undeclared", "bar[0]", diag.TypeError, diag.SemaNotAVector},
		{"splice_path", "inst.foo[0]", diag.TypeError, diag.SemaNotAVector},
		{"ternary_missing_colon", "c ? a b", diag.SyntaxError, diag.SynUnexpectedToken},
		{"ternary_in_index", "foo[c ? 1 : 0]", diag.SyntaxError, diag.SynUnexpectedToken},
		{"dangling_operator", "a +", diag.SyntaxError, diag.SynExpectExpression},
		{"unclosed_paren", "(a + b", diag.SyntaxError, diag.SynUnexpectedToken},
		{"trailing_tokens", "a b", diag.SyntaxError, diag.SynUnexpectedToken},
		{"unknown_char", "a $ b", diag.LexError, diag.LexUnknownChar},
		{"bad_vector", `"012"`, diag.LexError, diag.LexBadVectorDigit},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := parseExprString(tt.input, "foo")
			requireError(t, err, tt.kind, tt.code)
		})
	}
}

func TestScopeRestoredAfterFailure(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"relation", "a < )"},
		{"relation_eof", "a <"},
		{"splice_open_range", "foo[1:"},
		{"splice_unclosed", "foo[1"},
		{"splice_bad_high", "foo[)]"},
		{"paren_in_index", "foo[(1"},
		{"ternary_in_relation", "c ? a < : b"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			widths := ast.NewWidths()
			widths.Declare("foo", ast.Width{Kind: ast.WidthLiteral, Value: 4})
			lx := newTestLexer(tt.input)
			if _, _, err := ParseExpr(lx, widths, Options{}); err == nil {
				t.Fatalf("parse %q: expected error", tt.input)
			}
			if got := lx.Scope(); got != lexer.ScopeGeneral {
				t.Errorf("scope after %q = %s, want %s", tt.input, got, lexer.ScopeGeneral)
			}
		})
	}
}

func TestSpliceSharesIndexForSingleBit(t *testing.T) {
	b, id, err := parseExprString("foo[5]", "foo")
	if err != nil {
		t.Fatal(err)
	}
	sp, ok := b.Exprs.Splice(id)
	if !ok {
		t.Fatalf("expected splice, got %s", b.Exprs.Get(id).Kind)
	}
	if sp.High != sp.Low {
		t.Errorf("single-bit splice should reuse the index expression")
	}
}

func TestParenSpanCoversParens(t *testing.T) {
	b, id, err := parseExprString("(a)")
	if err != nil {
		t.Fatal(err)
	}
	sp := b.Exprs.Get(id).Span
	if sp.Start != 0 || sp.End != 3 {
		t.Errorf("paren span = %d..%d, want 0..3", sp.Start, sp.End)
	}
	un, ok := b.Exprs.Unary(id)
	if !ok || un.Op != ast.ExprUnaryParen {
		t.Fatalf("expected paren unary")
	}
}
