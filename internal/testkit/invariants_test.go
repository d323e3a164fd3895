package testkit

import (
	"testing"

	"cdl/internal/parser"
	"cdl/internal/source"
)

func TestCheckSpanInvariants(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("half.cdl", []byte(`component HalfAdder {
	port { input vec A; input vec B; output vec S; output vec C; }
	arch {
		XorGate XOR = new XorGate();
		XOR.A <= A;
		S <= XOR.Y;
		C <= A and B;
		process { }
	}
}

component Empty { }
`))
	reg, err := parser.ParseComponents(fs, id, parser.Options{})
	if err != nil {
		t.Fatal(err)
	}
	for _, name := range reg.Names() {
		u, _ := reg.Get(name)
		if err := CheckSpanInvariants(u, fs.Get(id)); err != nil {
			t.Errorf("%s: %v", name, err)
		}
	}
}

func TestCheckSpanInvariantsNil(t *testing.T) {
	if err := CheckSpanInvariants(nil, nil); err == nil {
		t.Error("expected error for nil input")
	}
}
