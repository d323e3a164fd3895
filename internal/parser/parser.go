package parser

import (
	"cdl/internal/ast"
	"cdl/internal/diag"
	"cdl/internal/lexer"
	"cdl/internal/source"
	"cdl/internal/token"
)

type Options struct {
	Reporter diag.Reporter
	// KeepPlaceholderText stores the raw text of process/generate/connect bodies.
	KeepPlaceholderText bool
}

// Parser хранит состояние парсера на один компонент.
type Parser struct {
	lx       *lexer.Lexer
	b        *ast.Builder
	widths   *ast.Widths
	names    map[string]source.Span // объявленные имена компонента
	opts     Options
	lastSpan source.Span
	err      *diag.Error
}

func newParser(lx *lexer.Lexer, opts Options) *Parser {
	return &Parser{
		lx:       lx,
		b:        ast.NewBuilder(ast.Hints{}),
		widths:   ast.NewWidths(),
		names:    make(map[string]source.Span),
		opts:     opts,
		lastSpan: lx.EmptySpan(),
	}
}

// ParseComponent parses exactly one `component` block from lx.
// It fails on the first error; no partial unit is returned.
func ParseComponent(lx *lexer.Lexer, opts Options) (*ast.Unit, error) {
	p := newParser(lx, opts)
	comp, ok := p.parseComponent()
	if !ok {
		return nil, p.error()
	}
	return &ast.Unit{
		Name:   p.b.Component(comp).Name,
		File:   lx.File().ID,
		Tree:   p.b,
		Root:   comp,
		Widths: p.widths,
	}, nil
}

// ParseComponents parses every component of file until EOF and collects
// them into a registry. The first error aborts the whole file.
func ParseComponents(fs *source.FileSet, file source.FileID, opts Options) (*ast.Registry, error) {
	lx := lexer.New(fs.Get(file), lexer.Options{Reporter: opts.Reporter})
	reg := ast.NewRegistry()
	for {
		tok := lx.Peek()
		if tok.Kind == token.EOF {
			return reg, nil
		}
		unit, err := ParseComponent(lx, opts)
		if err != nil {
			return nil, err
		}
		if !reg.Add(unit) {
			return nil, diag.Fail(opts.Reporter, diag.Errorf(diag.NameError, diag.SemaDuplicateComponent,
				unit.Component().NameSpan, "component %s is declared more than once", unit.Name))
		}
	}
}

// ParseExpr parses a single expression that must span the rest of lx.
// widths supplies the vec declarations splices are checked against.
func ParseExpr(lx *lexer.Lexer, widths *ast.Widths, opts Options) (*ast.Builder, ast.ExprID, error) {
	p := newParser(lx, opts)
	if widths != nil {
		p.widths = widths
	}
	id, ok := p.parseExpr()
	if ok {
		_, ok = p.expect(token.EOF, diag.SynUnexpectedToken, "expected end of expression")
	}
	if !ok {
		return nil, ast.NoExprID, p.error()
	}
	return p.b, id, nil
}

func (p *Parser) error() error {
	if p.err == nil {
		// не должно случаться: каждый путь с false проходит через fail
		return diag.Errorf(diag.SyntaxError, diag.SynUnexpectedToken, p.lastSpan, "parse failed")
	}
	return p.err
}
