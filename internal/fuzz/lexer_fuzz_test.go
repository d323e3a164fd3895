package fuzztests

import (
	"testing"

	"cdl/internal/diag"
	"cdl/internal/lexer"
	"cdl/internal/source"
	"cdl/internal/token"
)

const maxFuzzInput = 1 << 16 // 64 KiB

func FuzzLexerTokens(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampSeed(input)

		fs := source.NewFileSet()
		file := fs.Get(fs.AddVirtual("fuzz.cdl", input))

		bag := diag.NewBag(64)
		for _, scope := range []lexer.Scope{lexer.ScopeGeneral, lexer.ScopeRelational, lexer.ScopeIndex} {
			lx := lexer.New(file, lexer.Options{Reporter: diag.BagReporter{Bag: bag}})
			lx.SetScope(scope)
			prevEnd := uint32(0)
			for steps := 0; ; steps++ {
				if steps > len(input)+1 {
					t.Fatalf("lexer did not reach EOF after %d tokens", steps)
				}
				tok := lx.Next()
				if tok.Kind == token.EOF || tok.Kind == token.Invalid {
					break
				}
				if tok.Span.Start < prevEnd || tok.Span.End > uint32(len(input)) {
					t.Fatalf("token %s span %s out of order", tok.Kind, tok.Span)
				}
				prevEnd = tok.Span.End
			}
			if lx.Err() != nil && !bag.HasErrors() {
				t.Fatal("lex error was not reported")
			}
		}
	})
}
