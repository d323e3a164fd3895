package driver

import (
	"cdl/internal/ast"
	"cdl/internal/diag"
	"cdl/internal/parser"
	"cdl/internal/source"
)

type ParseResult struct {
	FileSet  *source.FileSet
	File     *source.File
	Registry *ast.Registry
	Bag      *diag.Bag
	// Err is the first fatal error; Registry is nil when it is set.
	Err error
}

// Parse parses every component of one file sequentially and stops at the
// first error, the way a single-file compile does.
func Parse(filePath string, keepPlaceholderText bool, maxDiagnostics int) (*ParseResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(filePath)
	if err != nil {
		return nil, err
	}
	bag := diag.NewBag(maxDiagnostics)
	reg, perr := parser.ParseComponents(fs, fileID, parser.Options{
		Reporter:            diag.BagReporter{Bag: bag},
		KeepPlaceholderText: keepPlaceholderText,
	})
	return &ParseResult{
		FileSet:  fs,
		File:     fs.Get(fileID),
		Registry: reg,
		Bag:      bag,
		Err:      perr,
	}, nil
}
