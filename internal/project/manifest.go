package project

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// Manifest is a loaded cdl.toml.
type Manifest struct {
	Path   string // абсолютный путь к cdl.toml
	Root   string
	Config Config
}

type Config struct {
	Project ProjectConfig `toml:"project"`
	Build   BuildConfig   `toml:"build"`
}

type ProjectConfig struct {
	Name    string   `toml:"name"`
	Sources []string `toml:"sources"`
	Out     string   `toml:"out"`
	Top     string   `toml:"top"`
}

type BuildConfig struct {
	Jobs   int  `toml:"jobs"`
	Cache  bool `toml:"cache"`
	Indent int  `toml:"indent"`
}

// DefaultConfig is what `cdlc init` writes and what absent keys fall back to.
func DefaultConfig(name string) Config {
	return Config{
		Project: ProjectConfig{Name: name, Sources: []string{"src"}, Out: "build/vhdl"},
		Build:   BuildConfig{Cache: true, Indent: 4},
	}
}

// Load finds cdl.toml at or above startDir. ok is false when there is none.
func Load(startDir string) (*Manifest, bool, error) {
	path, ok, err := FindManifest(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	m, err := LoadFile(path)
	return m, true, err
}

// LoadFile decodes path and validates required keys.
func LoadFile(path string) (*Manifest, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig("")
	meta, err := toml.DecodeFile(abs, &cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if !meta.IsDefined("project") {
		return nil, fmt.Errorf("%s: missing [project]", path)
	}
	if !meta.IsDefined("project", "name") || strings.TrimSpace(cfg.Project.Name) == "" {
		return nil, fmt.Errorf("%s: missing [project].name", path)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("%s: unknown key %s", path, undecoded[0])
	}
	if len(cfg.Project.Sources) == 0 {
		return nil, fmt.Errorf("%s: [project].sources is empty", path)
	}
	if cfg.Build.Jobs < 0 {
		return nil, fmt.Errorf("%s: [build].jobs must not be negative", path)
	}
	if cfg.Build.Indent < 1 || cfg.Build.Indent > 16 {
		return nil, fmt.Errorf("%s: [build].indent must be between 1 and 16", path)
	}
	return &Manifest{Path: abs, Root: filepath.Dir(abs), Config: cfg}, nil
}

// SourcePaths resolves [project].sources against the manifest directory.
func (m *Manifest) SourcePaths() []string {
	out := make([]string, 0, len(m.Config.Project.Sources))
	for _, s := range m.Config.Project.Sources {
		out = append(out, m.resolve(s))
	}
	return out
}

// OutDir resolves [project].out against the manifest directory.
func (m *Manifest) OutDir() string {
	return m.resolve(m.Config.Project.Out)
}

func (m *Manifest) resolve(p string) string {
	p = filepath.FromSlash(p)
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(m.Root, p)
}

// ErrManifestExists is returned by Init when cdl.toml is already there.
var ErrManifestExists = errors.New("cdl.toml already exists")

// Init writes a starter cdl.toml and an example source into dir.
func Init(dir, name string) (string, error) {
	if name == "" {
		name = filepath.Base(dir)
	}
	path := filepath.Join(dir, ManifestName)
	if _, err := os.Stat(path); err == nil {
		return "", ErrManifestExists
	}
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(DefaultConfig(name)); err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Join(dir, "src"), 0o755); err != nil {
		return "", err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o600); err != nil {
		return "", err
	}
	example := filepath.Join(dir, "src", "top.cdl")
	if _, err := os.Stat(example); errors.Is(err, os.ErrNotExist) {
		if err := os.WriteFile(example, []byte(exampleSource), 0o600); err != nil {
			return "", err
		}
	}
	return path, nil
}

const exampleSource = `component Top {
    port {
        input vec a;
        input vec b;
        output vec y;
    }
    arch {
        y <= a and b;
    }
}
`
