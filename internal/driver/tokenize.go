package driver

import (
	"cdl/internal/diag"
	"cdl/internal/lexer"
	"cdl/internal/source"
	"cdl/internal/token"
)

type TokenizeResult struct {
	FileSet *source.FileSet
	File    *source.File
	Tokens  []token.Token
	Bag     *diag.Bag
}

// Tokenize lexes path in one fixed scope. The stream ends with EOF, or with
// the Invalid token of the first lexical error.
func Tokenize(path string, scope lexer.Scope, keepTrivia bool, maxDiagnostics int) (*TokenizeResult, error) {
	// Создаём FileSet и загружаем файл
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, err
	}
	file := fs.Get(fileID)

	bag := diag.NewBag(maxDiagnostics)
	lx := lexer.New(file, lexer.Options{
		Reporter:   diag.BagReporter{Bag: bag},
		KeepTrivia: keepTrivia,
	})
	lx.SetScope(scope)

	var tokens []token.Token
	for {
		tok := lx.Next()
		tokens = append(tokens, tok)
		if tok.Kind == token.EOF || tok.Kind == token.Invalid {
			break
		}
	}

	return &TokenizeResult{
		FileSet: fs,
		File:    file,
		Tokens:  tokens,
		Bag:     bag,
	}, nil
}
