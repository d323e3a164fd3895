package project

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeManifest(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, ManifestName)
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadFileDefaults(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, "[project]\nname = \"adders\"\n")
	m, err := LoadFile(filepath.Join(dir, ManifestName))
	if err != nil {
		t.Fatal(err)
	}
	cfg := m.Config
	if cfg.Project.Name != "adders" || cfg.Project.Out != "build/vhdl" || !cfg.Build.Cache || cfg.Build.Indent != 4 {
		t.Errorf("defaults not applied: %+v", cfg)
	}
	if got := m.SourcePaths(); len(got) != 1 || got[0] != filepath.Join(dir, "src") {
		t.Errorf("sources = %v", got)
	}
	if m.OutDir() != filepath.Join(dir, "build", "vhdl") {
		t.Errorf("out = %s", m.OutDir())
	}
}

func TestLoadFileErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"no project", "[build]\njobs = 1\n", "missing [project]"},
		{"no name", "[project]\nout = \"x\"\n", "missing [project].name"},
		{"blank name", "[project]\nname = \"  \"\n", "missing [project].name"},
		{"unknown key", "[project]\nname = \"a\"\nsauce = 1\n", "unknown key project.sauce"},
		{"empty sources", "[project]\nname = \"a\"\nsources = []\n", "sources is empty"},
		{"negative jobs", "[project]\nname = \"a\"\n[build]\njobs = -1\n", "jobs must not be negative"},
		{"bad indent", "[project]\nname = \"a\"\n[build]\nindent = 0\n", "indent must be"},
		{"bad toml", "[project\n", "failed to parse TOML"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			_, err := LoadFile(writeManifest(t, dir, tt.body))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("err = %v, want %q", err, tt.want)
			}
		})
	}
}

func TestLoadWalksUp(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, root, "[project]\nname = \"up\"\ntop = \"FullAdder\"\n")
	deep := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(deep, 0o755); err != nil {
		t.Fatal(err)
	}
	m, ok, err := Load(deep)
	if err != nil || !ok {
		t.Fatalf("Load = %v, %v", ok, err)
	}
	if m.Config.Project.Top != "FullAdder" {
		t.Errorf("top = %q", m.Config.Project.Top)
	}

	_, ok, err = Load(t.TempDir())
	if err != nil || ok {
		t.Fatalf("expected no manifest, got ok=%v err=%v", ok, err)
	}
}

func TestInit(t *testing.T) {
	dir := t.TempDir()
	path, err := Init(dir, "demo")
	if err != nil {
		t.Fatal(err)
	}
	m, err := LoadFile(path)
	if err != nil {
		t.Fatalf("generated manifest does not load: %v", err)
	}
	if m.Config.Project.Name != "demo" {
		t.Errorf("name = %q", m.Config.Project.Name)
	}
	if _, err := os.Stat(filepath.Join(dir, "src", "top.cdl")); err != nil {
		t.Errorf("example source missing: %v", err)
	}
	if _, err := Init(dir, "demo"); err != ErrManifestExists {
		t.Errorf("second Init err = %v", err)
	}
}
