package main

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
)

func newTestBuildCmd(t *testing.T, flags ...string) *cobra.Command {
	t.Helper()
	root := &cobra.Command{Use: "cdlc"}
	root.PersistentFlags().Int("jobs", 0, "")
	root.PersistentFlags().String("color", "auto", "")
	cmd := &cobra.Command{Use: "build", RunE: func(*cobra.Command, []string) error { return nil }}
	cmd.Flags().String("ui", "auto", "")
	cmd.Flags().String("out", "", "")
	cmd.Flags().String("top", "", "")
	cmd.Flags().Bool("no-cache", false, "")
	root.AddCommand(cmd)
	if err := root.ParseFlags(nil); err != nil {
		t.Fatal(err)
	}
	if err := cmd.ParseFlags(flags); err != nil {
		t.Fatal(err)
	}
	return cmd
}

func TestResolveFromManifestDirectory(t *testing.T) {
	dir := filepath.Join("..", "..", "testdata", "adders")
	s, err := resolveBuildSettings(newTestBuildCmd(t), []string{dir}, t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if s.manifest == nil || s.name != "adders" {
		t.Fatalf("manifest not loaded: %+v", s)
	}
	if s.top != "FullAdder" || s.jobs != 2 || s.cache {
		t.Errorf("settings = %+v", s)
	}
	if filepath.Base(s.outDir) != "vhdl" {
		t.Errorf("out = %q", s.outDir)
	}
}

func TestResolveFlagsOverrideManifest(t *testing.T) {
	dir := filepath.Join("..", "..", "testdata", "adders")
	cmd := newTestBuildCmd(t, "--top", "HalfAdder", "--out", "gen", "--jobs", "7")
	s, err := resolveBuildSettings(cmd, []string{dir}, t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if s.top != "HalfAdder" || s.outDir != "gen" || s.jobs != 7 {
		t.Errorf("settings = %+v", s)
	}
}

func TestResolvePlainPaths(t *testing.T) {
	wd := t.TempDir()
	src := filepath.Join(wd, "a.cdl")
	if err := os.WriteFile(src, []byte("component A { }\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	s, err := resolveBuildSettings(newTestBuildCmd(t, "--no-cache"), []string{src}, wd)
	if err != nil {
		t.Fatal(err)
	}
	if s.manifest != nil || len(s.paths) != 1 || s.outDir != wd || s.cache {
		t.Errorf("settings = %+v", s)
	}
}

func TestResolveWithoutSources(t *testing.T) {
	_, err := resolveBuildSettings(newTestBuildCmd(t), nil, t.TempDir())
	if !errors.Is(err, errNoSources) {
		t.Errorf("err = %v, want errNoSources", err)
	}
}

func TestParseSwitch(t *testing.T) {
	tests := []struct {
		in      string
		want    switchMode
		wantErr bool
	}{
		{"", switchAuto, false},
		{"AUTO", switchAuto, false},
		{" on ", switchOn, false},
		{"off", switchOff, false},
		{"maybe", switchAuto, true},
	}
	for _, tt := range tests {
		got, err := parseSwitch("ui", tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("parseSwitch(%q) = %s, %v", tt.in, got, err)
		}
	}
	if !switchOn.enabled(os.Stdout) || switchOff.enabled(os.Stdout) {
		t.Error("explicit modes must win over TTY detection")
	}
}

func TestReadSwitchSharedByColorAndUI(t *testing.T) {
	cmd := newTestBuildCmd(t, "--ui", "off", "--color", "ON")
	ui, err := readSwitch(cmd, "ui")
	if err != nil || ui != switchOff {
		t.Errorf("ui = %s, %v", ui, err)
	}
	color, err := useColor(cmd, os.Stderr)
	if err != nil || !color {
		t.Errorf("color = %v, %v", color, err)
	}

	bad := newTestBuildCmd(t, "--color", "sometimes")
	if _, err := useColor(bad, os.Stderr); err == nil || !strings.Contains(err.Error(), "--color") {
		t.Errorf("err = %v", err)
	}
	if _, err := readSwitch(bad, "nope"); err == nil {
		t.Error("undefined flag must fail")
	}
}

func TestParseScope(t *testing.T) {
	for _, name := range []string{"general", "relational", "index"} {
		scope, err := parseScope(name)
		if err != nil || scope.String() != name {
			t.Errorf("parseScope(%q) = %v, %v", name, scope, err)
		}
	}
	if _, err := parseScope("bogus"); err == nil {
		t.Error("expected error for unknown scope")
	}
}
