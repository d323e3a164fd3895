package trace

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
)

func TestLevelFiltersScopes(t *testing.T) {
	tests := []struct {
		level Level
		scope Scope
		want  bool
	}{
		{LevelOff, ScopeDriver, false},
		{LevelPhase, ScopeDriver, true},
		{LevelPhase, ScopePhase, true},
		{LevelPhase, ScopeComponent, false},
		{LevelComponent, ScopeComponent, true},
		{LevelComponent, ScopeDetail, false},
		{LevelDebug, ScopeDetail, true},
	}
	for _, tt := range tests {
		if got := tt.level.ShouldEmit(tt.scope); got != tt.want {
			t.Errorf("%s.ShouldEmit(%s) = %v, want %v", tt.level, tt.scope, got, tt.want)
		}
	}
}

func TestParseLevel(t *testing.T) {
	for _, s := range []string{"off", "phase", "component", "debug"} {
		l, err := ParseLevel(s)
		if err != nil {
			t.Fatalf("ParseLevel(%q): %v", s, err)
		}
		if l.String() != s {
			t.Errorf("round trip %q -> %q", s, l)
		}
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Error("expected error for unknown level")
	}
}

func TestStreamTextNesting(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelComponent, FormatText)

	phase := Begin(tr, ScopePhase, "emit", 0)
	comp := Begin(tr, ScopeComponent, "emit:HalfAdder", phase.ID())
	comp.WithExtra("lines", "42").End("")
	Begin(tr, ScopeDetail, "filtered", comp.ID()).End("")
	phase.End("1 unit")

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d lines:\n%s", len(lines), buf.String())
	}
	if !strings.Contains(lines[0], "  → emit") {
		t.Errorf("begin line: %q", lines[0])
	}
	if !strings.Contains(lines[2], "    ← emit:HalfAdder") || !strings.HasSuffix(lines[2], "{lines=42}") {
		t.Errorf("component end line: %q", lines[2])
	}
	if !strings.HasSuffix(lines[3], "(1 unit)") {
		t.Errorf("phase end line: %q", lines[3])
	}
}

func TestStreamNDJSON(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelPhase, FormatNDJSON)
	Begin(tr, ScopeDriver, "build", 0).End("ok")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("want 2 events, got %d", len(lines))
	}
	var ev map[string]any
	if err := json.Unmarshal([]byte(lines[1]), &ev); err != nil {
		t.Fatalf("bad json: %v", err)
	}
	if ev["kind"] != "end" || ev["scope"] != "driver" || ev["detail"] != "ok" {
		t.Errorf("unexpected event %v", ev)
	}
}

func TestNopSpan(t *testing.T) {
	s := Begin(Nop, ScopeDriver, "x", 0)
	if s.ID() != 0 || s.End("") != 0 {
		t.Error("nop span must be inert")
	}
	var nilSpan *Span
	nilSpan.WithExtra("k", "v").End("")
}

func TestContext(t *testing.T) {
	if FromContext(context.Background()) != Nop {
		t.Error("empty context must give Nop")
	}
	tr := NewStreamTracer(&bytes.Buffer{}, LevelPhase, FormatText)
	ctx := WithTracer(context.Background(), tr)
	if FromContext(ctx) != Tracer(tr) {
		t.Error("tracer not stored")
	}
	s := Begin(tr, ScopePhase, "p", 0)
	ctx = WithSpan(ctx, s)
	if ParentSpan(ctx) != s.ID() {
		t.Error("span id not stored")
	}
}

func TestNewOff(t *testing.T) {
	tr, err := New(Config{Level: LevelOff})
	if err != nil || tr != Nop {
		t.Fatalf("New(off) = %v, %v", tr, err)
	}
}
