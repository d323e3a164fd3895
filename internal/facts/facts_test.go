package facts

import (
	"encoding/json"
	"strings"
	"testing"

	"cdl/internal/parser"
	"cdl/internal/sema"
	"cdl/internal/source"
)

const design = `
component Reg {
	uint W;
	port { input vec d[W]; output vec q[W]; input vec en; }
	arch { signal vec s[W]; const uint Z = 0; q <= en ? d : s; }
}
component Top {
	port { input vec a[8]; output vec y[8]; }
	arch {
		Reg r = new Reg(W = 8);
		r.d <= a;
		r.en <= 1;
		y <= r.q;
	}
}
component Bare { }
`

func extract(t *testing.T, src string) Tables {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("design.cdl", []byte(src))
	reg, err := parser.ParseComponents(fs, id, parser.Options{})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	res, err := sema.Check(reg, sema.Options{})
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	return Extract(fs, reg, res)
}

func TestExtract(t *testing.T) {
	tb := extract(t, design)
	if len(tb.Components) != 3 {
		t.Fatalf("components = %+v", tb.Components)
	}
	order := map[string]int{}
	for _, c := range tb.Components {
		order[c.Name] = c.Order
		if c.File != "design.cdl" || c.Line == 0 {
			t.Errorf("location of %s: %s:%d", c.Name, c.File, c.Line)
		}
	}
	if order["Reg"] > order["Top"] {
		t.Errorf("Reg must be ordered before Top: %v", order)
	}
	if len(tb.Generics) != 1 || tb.Generics[0].Name != "W" || tb.Generics[0].Type != "uint" {
		t.Errorf("generics = %+v", tb.Generics)
	}
	var dWidth string
	for _, p := range tb.Ports {
		if p.Component == "Reg" && p.Name == "d" {
			dWidth = p.Width
		}
	}
	if dWidth != "W" {
		t.Errorf("width of Reg.d = %q", dWidth)
	}
	if len(tb.Signals) != 2 || tb.Signals[1].Kind != "const" {
		t.Errorf("signals = %+v", tb.Signals)
	}
	if len(tb.Instances) != 1 || tb.Instances[0].Target != "Reg" || tb.Instances[0].Generics["W"] != "8" {
		t.Errorf("instances = %+v", tb.Instances)
	}
	if len(tb.Dependencies) != 1 || tb.Dependencies[0] != (DependencyRow{From: "Top", To: "Reg"}) {
		t.Errorf("dependencies = %+v", tb.Dependencies)
	}
}

func TestValidatorAcceptsExtractedFacts(t *testing.T) {
	v, err := NewValidator()
	if err != nil {
		t.Fatalf("new validator: %v", err)
	}
	if err := v.Validate(extract(t, design)); err != nil {
		t.Fatalf("valid facts rejected: %v", err)
	}
	if err := v.Validate(extract(t, "")); err != nil {
		t.Fatalf("empty design rejected: %v", err)
	}
}

func TestValidatorRejects(t *testing.T) {
	v, err := NewValidator()
	if err != nil {
		t.Fatal(err)
	}
	valid := extract(t, design)

	tests := []struct {
		name   string
		mutate func(*Tables)
	}{
		{"bad direction", func(tb *Tables) { tb.Ports[0].Direction = "inout" }},
		{"bad type", func(tb *Tables) { tb.Generics[0].Type = "float" }},
		{"bad ident", func(tb *Tables) { tb.Components[0].Name = "9lives" }},
		{"zero width", func(tb *Tables) { tb.Ports[0].Width = "0" }},
		{"negative line", func(tb *Tables) { tb.Instances[0].Line = -1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, _ := json.Marshal(valid)
			var tb Tables
			if err := json.Unmarshal(data, &tb); err != nil {
				t.Fatal(err)
			}
			tt.mutate(&tb)
			if err := v.Validate(tb); err == nil {
				t.Fatal("expected schema violation")
			}
		})
	}
}

func TestProblemsListsUnknownField(t *testing.T) {
	v, err := NewValidator()
	if err != nil {
		t.Fatal(err)
	}
	raw := []byte(`{"components":[],"generics":[],"ports":[],"signals":[],"instances":[],"dependencies":[],"extra":1}`)
	problems := v.Problems(raw)
	if len(problems) == 0 {
		t.Fatal("unknown top-level field accepted")
	}
	if !strings.Contains(strings.Join(problems, "\n"), "extra") {
		t.Errorf("problems do not name the field: %v", problems)
	}
	if p := v.Problems([]byte(`{"components":[],"generics":[],"ports":[],"signals":[],"instances":[],"dependencies":[]}`)); p != nil {
		t.Errorf("valid input produced %v", p)
	}
}
