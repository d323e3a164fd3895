package parser

import (
	"strings"
	"testing"

	"cdl/internal/ast"
	"cdl/internal/diag"
	"cdl/internal/source"
)

const halfAdderSrc = `
component HalfAdder {
    port {
        input vec A;
        input vec B;
        output vec S;
    }
    arch {
        S <= A ^ B;
    }
}
`

func TestParseHalfAdder(t *testing.T) {
	u := parseUnit(t, halfAdderSrc)
	if u.Name != "HalfAdder" {
		t.Fatalf("name = %q", u.Name)
	}
	ports := u.Tree.Ports(u.Root)
	if len(ports) != 3 {
		t.Fatalf("got %d ports, want 3", len(ports))
	}
	wantDirs := []ast.PortDir{ast.PortIn, ast.PortIn, ast.PortOut}
	for i, id := range ports {
		d := u.Tree.Decls.Get(id)
		if d.Dir != wantDirs[i] || d.Type != ast.TypeVec || d.Width.Kind != ast.WidthScalar {
			t.Errorf("port %d: %+v", i, d)
		}
	}
	arch, _ := u.Tree.Arch(u.Root)
	if arch.Name != ast.DefaultArchName {
		t.Errorf("arch name = %q, want default", arch.Name)
	}
	stmts := archStmts(t, u)
	if len(stmts) != 1 {
		t.Fatalf("got %d statements", len(stmts))
	}
	assign, ok := u.Tree.Stmts.Assign(stmts[0])
	if !ok {
		t.Fatalf("expected assignment")
	}
	if got := u.Tree.Exprs.SExpr(assign); got != "(<= S (^ A B))" {
		t.Errorf("assignment = %s", got)
	}
	bin, _ := u.Tree.Exprs.Binary(assign)
	if bin.Op != ast.ExprBinarySigAssign {
		t.Errorf("assignment op = %v, want signal assignment", bin.Op)
	}
}

func TestGenericsAndWidths(t *testing.T) {
	u := parseUnit(t, `component Reg {
		int W;
		bool EN;
		port {
			input vec d[W];
			output vec q[8];
			input bool clk;
		}
		rtl arch {
			signal vec tmp[0x10];
			const uint K = 3;
			q <= d[W - 1:0] + tmp[3];
		}
	}`)
	gens := u.Tree.Generics(u.Root)
	if len(gens) != 2 || u.Tree.Decls.Get(gens[0]).Name != "W" || u.Tree.Decls.Get(gens[1]).Type != ast.TypeBool {
		t.Fatalf("unexpected generics")
	}
	d, ok := u.Tree.Port(u.Root, "d")
	if !ok || d.Width.Kind != ast.WidthGeneric || d.Width.Name != "W" {
		t.Errorf("d width = %+v", d.Width)
	}
	q, _ := u.Tree.Port(u.Root, "q")
	if q.Width.Kind != ast.WidthLiteral || q.Width.Value != 8 {
		t.Errorf("q width = %+v", q.Width)
	}
	for name, want := range map[string]string{"d": "W", "q": "8", "tmp": "16"} {
		w, ok := u.Widths.Lookup(name)
		if !ok || w.String() != want {
			t.Errorf("width of %s = %v (%v), want %s", name, w, ok, want)
		}
	}
	if _, ok := u.Widths.Lookup("clk"); ok {
		t.Errorf("bool port must not be registered as vec")
	}
	arch, _ := u.Tree.Arch(u.Root)
	if arch.Name != "rtl" {
		t.Errorf("arch name = %q", arch.Name)
	}
	stmts := arch.Stmts
	declID, ok := u.Tree.Stmts.Decl(stmts[1])
	if !ok {
		t.Fatalf("expected const declaration")
	}
	k := u.Tree.Decls.Get(declID)
	if k.Kind != ast.DeclConst || u.Tree.Exprs.SExpr(k.Value) != "3" {
		t.Errorf("const = %+v", k)
	}
}

func TestNamedArchKeywords(t *testing.T) {
	for _, name := range []string{"implementation", "verification"} {
		u := parseUnit(t, "component C { "+name+" arch { } }")
		arch, ok := u.Tree.Arch(u.Root)
		if !ok || arch.Name != name {
			t.Errorf("arch name = %v, want %s", arch, name)
		}
	}
}

func TestInstantiation(t *testing.T) {
	u := parseUnit(t, `component Top {
		port { output vec o; }
		arch {
			Adder add = new Adder(W = 8, INIT = x"F", EN = true);
			Inv inv = new Inv();
			o <= add.S;
		}
	}`)
	stmts := archStmts(t, u)
	inst, ok := u.Tree.Stmts.Instance(stmts[0])
	if !ok {
		t.Fatalf("expected instance")
	}
	if inst.Name != "add" || inst.Type != "Adder" {
		t.Errorf("instance = %+v", inst)
	}
	items := u.Tree.Exprs.ListItems(inst.Generics)
	want := []string{"(= W 8)", `(= INIT x"F")`, "(= EN true)"}
	if len(items) != len(want) {
		t.Fatalf("got %d generic bindings", len(items))
	}
	for i, it := range items {
		if got := u.Tree.Exprs.SExpr(it); got != want[i] {
			t.Errorf("binding %d = %s, want %s", i, got, want[i])
		}
	}
	inv, _ := u.Tree.Stmts.Instance(stmts[1])
	if inv.Generics.IsValid() {
		t.Errorf("empty generic list should be NoExprID")
	}
	assign, _ := u.Tree.Stmts.Assign(stmts[2])
	if got := u.Tree.Exprs.SExpr(assign); got != "(<= o add.S)" {
		t.Errorf("assignment = %s", got)
	}
}

func TestRelationalScopeInsideAssignment(t *testing.T) {
	u := parseUnit(t, `component C { port { output int cat; } arch {
		cat <= (5 <= 3) ? fox : banana;
	} }`)
	assign, _ := u.Tree.Stmts.Assign(archStmts(t, u)[0])
	if got := u.Tree.Exprs.SExpr(assign); got != "(<= cat (? (paren (<= 5 3)) fox banana))" {
		t.Errorf("assignment = %s", got)
	}
	bin, _ := u.Tree.Exprs.Binary(assign)
	tern, ok := u.Tree.Exprs.Ternary(bin.Right)
	if !ok {
		t.Fatalf("rhs is not a ternary")
	}
	paren, _ := u.Tree.Exprs.Unary(tern.Cond)
	cmp, _ := u.Tree.Exprs.Binary(paren.Operand)
	if cmp.Op != ast.ExprBinaryLtEq {
		t.Errorf("inner <= parsed as %v, want comparison", cmp.Op)
	}
}

func TestSpliceOnAssignmentTarget(t *testing.T) {
	u := parseUnit(t, `component C { port { output vec o[4]; input vec i[4]; } arch {
		o[3:1] <= i[2:0];
		o[0] <= i[3] <= i[2];
	} }`)
	stmts := archStmts(t, u)
	a0, _ := u.Tree.Stmts.Assign(stmts[0])
	if got := u.Tree.Exprs.SExpr(a0); got != "(<= (splice o 3 1) (splice i 2 0))" {
		t.Errorf("assignment 0 = %s", got)
	}
	a1, _ := u.Tree.Stmts.Assign(stmts[1])
	bin, _ := u.Tree.Exprs.Binary(a1)
	rhs, _ := u.Tree.Exprs.Binary(bin.Right)
	if rhs.Op != ast.ExprBinaryLtEq {
		t.Errorf("rhs <= should be a comparison, got %v", rhs.Op)
	}
}

func TestPlaceholderBlocks(t *testing.T) {
	u := parseUnit(t, `component C { arch {
		process (clk) { if (a) { b <= c; } }
		generate { }
		connect { x <= y; }
	} }`)
	stmts := archStmts(t, u)
	wantKinds := []ast.PlaceholderKind{ast.PlaceholderProcess, ast.PlaceholderGenerate, ast.PlaceholderConnect}
	for i, id := range stmts {
		ph, ok := u.Tree.Stmts.Placeholder(id)
		if !ok || ph.Kind != wantKinds[i] {
			t.Fatalf("statement %d is not a %s placeholder", i, wantKinds[i])
		}
	}
	ph, _ := u.Tree.Stmts.Placeholder(stmts[0])
	if got := strings.TrimSpace(ph.Body); got != "if (a) { b <= c; }" {
		t.Errorf("process body = %q", got)
	}
}

func TestComponentErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		kind  diag.ErrorKind
		code  diag.Code
	}{
		{"missing_keyword", "module C { }", diag.SyntaxError, diag.SynExpectComponent},
		{"two_port_blocks", "component C { port { } port { } }", diag.SyntaxError, diag.SynDuplicatePortBlock},
		{"two_archs", "component C { arch { } rtl arch { } }", diag.SyntaxError, diag.SynDuplicateArch},
		{"bad_item", "component C { signal int a; }", diag.SyntaxError, diag.SynUnexpectedToken},
		{"missing_direction", "component C { port { vec a; } }", diag.SyntaxError, diag.SynUnexpectedToken},
		{"missing_type", "component C { port { input a; } }", diag.SyntaxError, diag.SynExpectType},
		{"zero_width", "component C { port { input vec a[0]; } }", diag.SyntaxError, diag.SynExpectConstant},
		{"duplicate_signal", "component C { arch { signal int a; signal bool a; } }", diag.NameError, diag.SemaDuplicateDecl},
		{"signal_shadows_port", "component C { port { input int a; } arch { signal int a; } }", diag.NameError, diag.SemaDuplicateDecl},
		{"instance_shadows_generic", "component C { int N; arch { Sub N = new Sub(); } }", diag.NameError, diag.SemaDuplicateDecl},
		{"type_mismatch", "component C { arch { Adder a = new Subber(); } }", diag.SyntaxError, diag.SynInstanceTypeMismatch},
		{"missing_new", "component C { arch { Adder a = Adder(); } }", diag.SyntaxError, diag.SynUnexpectedToken},
		{"generic_value_expr", "component C { arch { Adder a = new Adder(W = 1 + 2); } }", diag.SyntaxError, diag.SynUnexpectedToken},
		{"path_instance_type", "component C { arch { a.b c = new X(); } }", diag.SyntaxError, diag.SynUnexpectedToken},
		{"splice_scalar", "component C { port { input int a; output vec o; } arch { o <= a[0]; } }", diag.TypeError, diag.SemaNotAVector},
		{"splice_before_decl", "component C { arch { s <= t[0]; signal vec t[4]; } }", diag.TypeError, diag.SemaNotAVector},
		{"missing_semicolon", "component C { arch { a <= b } }", diag.SyntaxError, diag.SynUnexpectedToken},
		{"unclosed_process", "component C { arch { process { a <= b; ", diag.SyntaxError, diag.SynUnclosedBlock},
		{"unclosed_component", "component C { port { }", diag.SyntaxError, diag.SynUnexpectedToken},
		{"lex_error", "component C { arch { a <= b @ c; } }", diag.LexError, diag.LexUnknownChar},
		{"unterminated_comment", "component C { /* open", diag.LexError, diag.LexUnterminatedBlockComment},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			requireError(t, parseUnitErr(tt.input), tt.kind, tt.code)
		})
	}
}

func TestFirstErrorIsReported(t *testing.T) {
	bag := diag.NewBag(0)
	_, err := ParseComponent(newTestLexer("component C { arch { a <= ; b <= ; } }"), Options{Reporter: diag.BagReporter{Bag: bag}})
	if err == nil {
		t.Fatal("expected error")
	}
	if bag.Len() != 1 {
		t.Fatalf("got %d diagnostics, want exactly one", bag.Len())
	}
	if bag.Items()[0].Code != diag.SynExpectExpression {
		t.Errorf("code = %s", bag.Items()[0].Code.ID())
	}
}

func TestParseComponentsRegistry(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("two.cdl", []byte(halfAdderSrc+`
component FullAdder {
	port { input vec A; input vec B; input vec Cin; output vec S; output vec Cout; }
	arch {
		HalfAdder h1 = new HalfAdder();
		HalfAdder h2 = new HalfAdder();
		h1.A <= A;
		S <= h2.S;
	}
}`))
	reg, err := ParseComponents(fs, id, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if got := strings.Join(reg.Names(), ","); got != "HalfAdder,FullAdder" {
		t.Errorf("names = %s", got)
	}

	dup := fs.AddVirtual("dup.cdl", []byte(halfAdderSrc+halfAdderSrc))
	_, err = ParseComponents(fs, dup, Options{})
	requireError(t, err, diag.NameError, diag.SemaDuplicateComponent)
}

func TestParseComponentsEmptyFile(t *testing.T) {
	fs := source.NewFileSet()
	reg, err := ParseComponents(fs, fs.AddVirtual("empty.cdl", []byte("// nothing\n")), Options{})
	if err != nil || reg.Len() != 0 {
		t.Fatalf("reg=%v err=%v", reg, err)
	}
}
