package parser

import (
	"errors"
	"testing"

	"cdl/internal/ast"
	"cdl/internal/diag"
	"cdl/internal/lexer"
	"cdl/internal/source"
)

func newTestLexer(input string) *lexer.Lexer {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("test.cdl", []byte(input)))
	return lexer.New(file, lexer.Options{})
}

// parseExprString parses a bare expression; vecs are declared 8 bits wide.
func parseExprString(input string, vecs ...string) (*ast.Builder, ast.ExprID, error) {
	widths := ast.NewWidths()
	for _, v := range vecs {
		widths.Declare(v, ast.Width{Kind: ast.WidthLiteral, Value: 8})
	}
	return ParseExpr(newTestLexer(input), widths, Options{})
}

func parseUnit(t *testing.T, input string) *ast.Unit {
	t.Helper()
	unit, err := ParseComponent(newTestLexer(input), Options{KeepPlaceholderText: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return unit
}

func parseUnitErr(input string) error {
	_, err := ParseComponent(newTestLexer(input), Options{})
	return err
}

func requireError(t *testing.T, err error, kind diag.ErrorKind, code diag.Code) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %s, got nil", kind)
	}
	var de *diag.Error
	if !errors.As(err, &de) {
		t.Fatalf("expected *diag.Error, got %T: %v", err, err)
	}
	if de.Kind != kind || de.Code != code {
		t.Fatalf("expected %s/%s, got %s/%s: %s", kind, code.ID(), de.Kind, de.Code.ID(), de.Message)
	}
}

// archStmts returns the statements of the unit's architecture.
func archStmts(t *testing.T, u *ast.Unit) []ast.StmtID {
	t.Helper()
	arch, ok := u.Tree.Arch(u.Root)
	if !ok {
		t.Fatalf("component %s has no arch", u.Name)
	}
	return arch.Stmts
}
