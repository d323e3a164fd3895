package driver

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"testing"

	"cdl/internal/diag"
	"cdl/internal/lexer"
	"cdl/internal/observ"
	"cdl/internal/source"
	"cdl/internal/token"
)

func testdata(parts ...string) string {
	return filepath.Join(append([]string{"..", "..", "testdata"}, parts...)...)
}

func writeSource(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func outputNames(outs []Output) []string {
	names := make([]string, len(outs))
	for i, o := range outs {
		names[i] = o.Name
	}
	return names
}

func TestSplitComponents(t *testing.T) {
	src := "// lead\ncomponent A { arch { process { component } } }\n\ncomponent B { }\ncomponent"
	fs := source.NewFileSet()
	f := fs.Get(fs.AddVirtual("s.cdl", []byte(src)))
	chunks := SplitComponents(f)
	if len(chunks) != 3 {
		t.Fatalf("got %d chunks: %+v", len(chunks), chunks)
	}
	if chunks[0].Start != 0 || chunks[0].Name != "A" {
		t.Errorf("first chunk %+v", chunks[0])
	}
	if got := string(f.Content[chunks[1].Start:chunks[1].End]); got != "component B { }\n" {
		t.Errorf("second chunk = %q", got)
	}
	if chunks[2].Name != "" || chunks[2].Label() != "s.cdl#2" {
		t.Errorf("nameless chunk label = %q", chunks[2].Label())
	}
	if chunks[2].End != uint32(len(src)) {
		t.Errorf("last chunk must run to EOF")
	}
}

func TestSplitLeadingGarbageAndEmpty(t *testing.T) {
	fs := source.NewFileSet()
	f := fs.Get(fs.AddVirtual("g.cdl", []byte("junk component A { }")))
	chunks := SplitComponents(f)
	if len(chunks) != 2 || chunks[0].Start != 0 || chunks[1].Name != "A" {
		t.Fatalf("chunks = %+v", chunks)
	}
	empty := fs.Get(fs.AddVirtual("e.cdl", []byte("  /* nothing */\n")))
	if n := len(SplitComponents(empty)); n != 0 {
		t.Fatalf("comment-only file produced %d chunks", n)
	}
}

func TestSplitResumesAfterLexError(t *testing.T) {
	src := "component Bad { port { input vec a; output vec b; } arch { b <= a @ a; } }\n" +
		"component Good { port { input vec a; output vec b; } arch { b <= a; } }\n"
	fs := source.NewFileSet()
	f := fs.Get(fs.AddVirtual("l.cdl", []byte(src)))
	chunks := SplitComponents(f)
	if len(chunks) != 2 {
		t.Fatalf("got %d chunks: %+v", len(chunks), chunks)
	}
	if chunks[0].Name != "Bad" || chunks[1].Name != "Good" {
		t.Errorf("names = %q, %q", chunks[0].Name, chunks[1].Name)
	}
	if got := string(f.Content[chunks[1].Start:chunks[1].End]); !strings.HasPrefix(got, "component Good") {
		t.Errorf("second chunk = %q", got)
	}

	only := fs.Get(fs.AddVirtual("at.cdl", []byte("@")))
	if n := len(SplitComponents(only)); n != 1 {
		t.Errorf("garbage-only file produced %d chunks", n)
	}
}

func TestListSources(t *testing.T) {
	files, err := ListSources([]string{testdata("adders"), testdata("adders", "gates.cdl")})
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 2 {
		t.Fatalf("files = %v", files)
	}
	if !slices.IsSorted(files) {
		t.Errorf("not sorted: %v", files)
	}
	if _, err := ListSources([]string{testdata("missing")}); err == nil {
		t.Error("expected error for missing path")
	}
}

func TestBuildAdders(t *testing.T) {
	files, err := ListSources([]string{testdata("adders")})
	if err != nil {
		t.Fatal(err)
	}
	var (
		mu     sync.Mutex
		events []Event
	)
	timer := observ.NewTimer()
	a, outs, err := Build(context.Background(), files, Options{
		Jobs:  4,
		Top:   "FullAdder",
		Timer: timer,
		Observer: func(ev Event) {
			mu.Lock()
			events = append(events, ev)
			mu.Unlock()
		},
	})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if a.Bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %+v", a.Bag.Items())
	}
	names := outputNames(outs)
	if len(names) != 5 {
		t.Fatalf("outputs = %v", names)
	}
	pos := func(n string) int { return slices.Index(names, n) }
	if pos("XorGate") > pos("HalfAdder") || pos("HalfAdder") > pos("FullAdder") || pos("OrGate") > pos("FullAdder") {
		t.Errorf("dependencies must come first: %v", names)
	}
	for _, o := range outs {
		if !strings.Contains(o.VHDL, "entity "+o.Name+" is") {
			t.Errorf("%s: missing entity", o.Name)
		}
		if o.Cached {
			t.Errorf("%s: cached without a cache", o.Name)
		}
	}
	full := outs[pos("FullAdder")].VHDL
	for _, want := range []string{"h1 : HalfAdder", "signal h1_S", "h2_A <= h1_S;", "Cout <= carry_S;"} {
		if !strings.Contains(full, want) {
			t.Errorf("FullAdder lacks %q:\n%s", want, full)
		}
	}

	phases := timer.Report().Phases
	var got []string
	for _, p := range phases {
		got = append(got, p.Name)
	}
	if !slices.Equal(got, []string{"load", "parse", "check", "emit"}) {
		t.Errorf("phases = %v", got)
	}

	var emitted int
	for _, ev := range events {
		if ev.Phase == PhaseEmit && ev.Done && ev.Err == nil {
			emitted++
		}
	}
	if emitted != 5 {
		t.Errorf("observer saw %d emitted components", emitted)
	}
}

func TestBuildIsolatesFailures(t *testing.T) {
	dir := t.TempDir()
	writeSource(t, dir, "ok.cdl", `
component Leaf { port { input vec a; output vec b; } arch { b <= a; } }
component User { port { input vec a; output vec b; } arch { Leaf l = new Leaf(); l.a <= a; b <= l.b; } }
`)
	writeSource(t, dir, "bad.cdl", `
component Broken { port { input vec a output vec b; } }
component Client { port { output vec b; } arch { Broken x = new Broken(); b <= x.b; } }
component Typo { port { output vec b; } arch { Leaf l = new Leaf(); b <= l.nope; } }
`)
	files, err := ListSources([]string{dir})
	if err != nil {
		t.Fatal(err)
	}
	a, outs, err := Build(context.Background(), files, Options{Jobs: 2})
	if err == nil {
		t.Fatal("expected joined error")
	}
	if got := outputNames(outs); !slices.Equal(got, []string{"Leaf", "User"}) {
		t.Errorf("healthy outputs = %v", got)
	}
	if k, _ := diag.KindOf(a.Err("Broken")); k != diag.SyntaxError {
		t.Errorf("Broken: %v", a.Err("Broken"))
	}
	if k, _ := diag.KindOf(a.Err("Client")); k != diag.NameError {
		t.Errorf("Client: %v", a.Err("Client"))
	}
	if k, _ := diag.KindOf(a.Err("Typo")); k != diag.PortError {
		t.Errorf("Typo: %v", a.Err("Typo"))
	}
	if !a.Bag.HasErrors() {
		t.Error("errors were not reported into the bag")
	}
}

func TestBuildDuplicateAcrossFiles(t *testing.T) {
	dir := t.TempDir()
	writeSource(t, dir, "a.cdl", "component Dup { }")
	writeSource(t, dir, "b.cdl", "component Dup { }")
	files, _ := ListSources([]string{dir})
	a, outs, err := Build(context.Background(), files, Options{})
	if k, _ := diag.KindOf(err); k != diag.NameError {
		t.Fatalf("err = %v", err)
	}
	if len(outs) != 1 || outs[0].Source != filepath.Join(dir, "a.cdl") {
		t.Errorf("first declaration must win: %+v", outs)
	}
	if len(a.Failed()) != 1 {
		t.Errorf("failed = %v", a.Failed())
	}
}

func TestBuildLexErrorKeepsLaterComponents(t *testing.T) {
	dir := t.TempDir()
	writeSource(t, dir, "mixed.cdl", `
component Bad { port { input vec a; output vec b; } arch { b <= a @ a; } }
component Good { port { input vec a; output vec b; } arch { b <= a; } }
`)
	a, outs, err := Build(context.Background(), []string{dir}, Options{})
	if err == nil {
		t.Fatal("expected error for Bad")
	}
	if got := outputNames(outs); !slices.Equal(got, []string{"Good"}) {
		t.Errorf("outputs = %v", got)
	}
	if a.Err("Bad") == nil {
		t.Error("Bad must fail")
	}
}

func TestAnalyzeWalksDirectories(t *testing.T) {
	dir := t.TempDir()
	writeSource(t, dir, "leaf.cdl", "component Leaf { port { input vec a; output vec b; } arch { b <= a; } }")
	if err := os.Mkdir(filepath.Join(dir, "sub"), 0o700); err != nil {
		t.Fatal(err)
	}
	writeSource(t, filepath.Join(dir, "sub"), "user.cdl", "component User { port { output vec b; } arch { Leaf l = new Leaf(); b <= l.b; } }")
	writeSource(t, dir, "notes.txt", "not a source")

	a, err := Analyze(context.Background(), []string{dir}, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if got := a.Sema.Order(); !slices.Equal(got, []string{"Leaf", "User"}) {
		t.Errorf("order = %v", got)
	}

	a, err = Analyze(context.Background(), []string{filepath.Join(dir, "gone"), dir}, Options{})
	if err == nil {
		t.Fatal("expected error for missing root")
	}
	if len(a.Sema.Order()) != 2 {
		t.Errorf("sources under the other root were dropped: %v", a.Sema.Order())
	}
	items := a.Bag.Items()
	if len(items) != 1 || items[0].Code != diag.IOLoadFileError {
		t.Errorf("diagnostics = %+v", items)
	}
}

func TestBuildCycleAndTop(t *testing.T) {
	files, _ := ListSources([]string{testdata("errors", "cycle.cdl")})
	a, outs, err := Build(context.Background(), files, Options{Top: "Nope"})
	if len(outs) != 0 {
		t.Errorf("cyclic components emitted: %v", outputNames(outs))
	}
	if k, _ := diag.KindOf(a.Err("Ping")); k != diag.CircularReferenceError {
		t.Errorf("Ping: %v", a.Err("Ping"))
	}
	if !strings.Contains(err.Error(), "Nope") {
		t.Errorf("top error missing from %v", err)
	}
}

func TestTrailingTokensInChunk(t *testing.T) {
	dir := t.TempDir()
	writeSource(t, dir, "t.cdl", "component A { } ;")
	files, _ := ListSources([]string{dir})
	a, _, err := Build(context.Background(), files, Options{})
	if err == nil {
		t.Fatal("expected error for trailing ';'")
	}
	if k, _ := diag.KindOf(a.Err("A")); k != diag.SyntaxError {
		t.Errorf("A: %v", a.Err("A"))
	}
}

func TestCacheRoundTrip(t *testing.T) {
	cache, err := OpenDiskCacheAt(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	files, _ := ListSources([]string{testdata("adders")})
	opts := Options{Cache: cache}

	_, first, err := Build(context.Background(), files, opts)
	if err != nil {
		t.Fatal(err)
	}
	_, second, err := Build(context.Background(), files, opts)
	if err != nil {
		t.Fatal(err)
	}
	if len(first) != len(second) {
		t.Fatalf("output count changed: %d vs %d", len(first), len(second))
	}
	for i := range second {
		if !second[i].Cached {
			t.Errorf("%s not served from cache", second[i].Name)
		}
		if second[i].VHDL != first[i].VHDL || second[i].Key != first[i].Key {
			t.Errorf("%s: cached output differs", second[i].Name)
		}
	}

	// другой отступ меняет ключ
	_, third, _ := Build(context.Background(), files, Options{Cache: cache, IndentWidth: 2})
	for _, o := range third {
		if o.Cached {
			t.Errorf("%s: indent change must miss the cache", o.Name)
		}
	}

	if err := cache.DropAll(); err != nil {
		t.Fatal(err)
	}
	if _, ok, _ := cache.Get(first[0].Key); ok {
		t.Error("entry survived DropAll")
	}
}

func TestUnitHashFollowsDependencies(t *testing.T) {
	dir := t.TempDir()
	leaf := writeSource(t, dir, "leaf.cdl", "component Leaf { port { input vec a; output vec b; } arch { b <= a; } }")
	writeSource(t, dir, "user.cdl", "component User { port { output vec b; } arch { Leaf l = new Leaf(); b <= l.b; } }")
	files, _ := ListSources([]string{dir})

	a, err := Analyze(context.Background(), files, Options{})
	if err != nil {
		t.Fatal(err)
	}
	before := a.ComputeUnitHashes(4)

	writeSource(t, dir, filepath.Base(leaf), "component Leaf { port { input vec a; output vec b; } arch { b <= not a; } }")
	a, err = Analyze(context.Background(), files, Options{})
	if err != nil {
		t.Fatal(err)
	}
	after := a.ComputeUnitHashes(4)
	if before["Leaf"] == after["Leaf"] || before["User"] == after["User"] {
		t.Error("a change in Leaf must change the keys of Leaf and User")
	}
}

func TestTokenize(t *testing.T) {
	dir := t.TempDir()
	path := writeSource(t, dir, "x.cdl", "a /* c */ <= b;")
	res, err := Tokenize(path, lexer.ScopeRelational, true, 10)
	if err != nil {
		t.Fatal(err)
	}
	kinds := make([]token.Kind, len(res.Tokens))
	for i, tok := range res.Tokens {
		kinds[i] = tok.Kind
	}
	want := []token.Kind{token.Ident, token.LtEq, token.Ident, token.Semicolon, token.EOF}
	if !slices.Equal(kinds, want) {
		t.Errorf("kinds = %v", kinds)
	}
	if len(res.Tokens[1].Leading) == 0 {
		t.Error("comment was not kept as trivia")
	}

	bad := writeSource(t, dir, "bad.cdl", "a $ b")
	res, err = Tokenize(bad, lexer.ScopeGeneral, false, 10)
	if err != nil {
		t.Fatal(err)
	}
	if last := res.Tokens[len(res.Tokens)-1]; last.Kind != token.Invalid || !res.Bag.HasErrors() {
		t.Errorf("lex error not surfaced: %v", last.Kind)
	}
}

func TestParseSingleFile(t *testing.T) {
	res, err := Parse(testdata("regs", "regs.cdl"), false, 0)
	if err != nil {
		t.Fatal(err)
	}
	if res.Err != nil {
		t.Fatal(res.Err)
	}
	if got := res.Registry.Names(); !slices.Equal(got, []string{"Reg", "Counter8"}) {
		t.Errorf("names = %v", got)
	}
	res, _ = Parse(testdata("errors", "syntax.cdl"), false, 0)
	if res.Err == nil || res.Registry != nil {
		t.Errorf("syntax error not reported")
	}
}

func TestAppendTimingDiagnostic(t *testing.T) {
	bag := diag.NewBag(1)
	bag.Add(diag.NewError(diag.SynUnexpectedToken, source.Span{}, "full"))
	tm := observ.NewTimer()
	tm.End(tm.Begin("parse"), "")
	AppendTimingDiagnostic(bag, "", tm.Report())
	items := bag.Items()
	if len(items) != 2 || items[1].Code != diag.ObsTimings {
		t.Fatalf("items = %+v", items)
	}
	if !strings.Contains(items[1].Notes[0].Msg, `"kind":"pipeline"`) {
		t.Errorf("payload = %s", items[1].Notes[0].Msg)
	}
}
