package fuzztests

import (
	"errors"
	"testing"
	"time"

	"cdl/internal/codegen"
	"cdl/internal/diag"
	"cdl/internal/parser"
	"cdl/internal/sema"
	"cdl/internal/source"
	"cdl/internal/testkit"
)

// parseTimeout is the maximum time allowed for one input.
// Longer means the parser is looping.
const parseTimeout = 5 * time.Second

func FuzzParseComponents(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampSeed(input)

		done := make(chan struct{})
		go func() {
			defer close(done)
			fs := source.NewFileSet()
			id := fs.AddVirtual("fuzz.cdl", input)
			reg, err := parser.ParseComponents(fs, id, parser.Options{Reporter: diag.NopReporter{}})
			if err != nil {
				var de *diag.Error
				if !errors.As(err, &de) {
					t.Errorf("parse error is not *diag.Error: %v", err)
				}
				return
			}
			if reg == nil {
				t.Error("nil registry without error")
				return
			}
			for _, name := range reg.Names() {
				u, _ := reg.Get(name)
				if err := testkit.CheckSpanInvariants(u, fs.Get(id)); err != nil {
					t.Errorf("span invariants: %v", err)
				}
			}
		}()

		select {
		case <-done:
		case <-time.After(parseTimeout):
			t.Fatalf("parser hang detected on %q", truncateForLog(input, 200))
		}
	})
}

// FuzzEmitVHDL pushes every input that parses through sema and codegen.
func FuzzEmitVHDL(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		fs := source.NewFileSet()
		id := fs.AddVirtual("fuzz.cdl", clampSeed(input))
		reg, err := parser.ParseComponents(fs, id, parser.Options{})
		if err != nil {
			return
		}
		res, _ := sema.Check(reg, sema.Options{})
		gen := codegen.New(reg, codegen.Options{})
		for _, name := range res.Order() {
			u, _ := reg.Get(name)
			if _, err := gen.Emit(u); err != nil {
				if _, ok := diag.KindOf(err); !ok {
					t.Fatalf("emit %s: untyped error %v", name, err)
				}
			}
		}
	})
}

// truncateForLog truncates input for logging purposes
func truncateForLog(input []byte, maxLen int) []byte {
	if len(input) <= maxLen {
		return input
	}
	return append(input[:maxLen:maxLen], []byte("...")...)
}
