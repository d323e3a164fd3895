package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"cdl/internal/project"
)

// buildSettings is the manifest merged with command-line overrides.
type buildSettings struct {
	manifest *project.Manifest // nil without cdl.toml
	name     string
	paths    []string
	outDir   string
	top      string
	jobs     int
	cache    bool
	indent   int
}

var errNoSources = errors.New("no sources: pass .cdl files or directories, or run inside a project with cdl.toml")

// resolveBuildSettings picks the manifest and merges flags over it.
// Without args the manifest is searched from wd upward. A single directory
// argument that holds cdl.toml is treated as a project root.
func resolveBuildSettings(cmd *cobra.Command, args []string, wd string) (buildSettings, error) {
	s := buildSettings{cache: true, indent: 4, outDir: wd}

	var m *project.Manifest
	switch {
	case len(args) == 0:
		loaded, ok, err := project.Load(wd)
		if err != nil {
			return s, err
		}
		if !ok {
			return s, errNoSources
		}
		m = loaded
	case len(args) == 1:
		if st, err := os.Stat(args[0]); err == nil && st.IsDir() {
			candidate := filepath.Join(args[0], project.ManifestName)
			if _, err := os.Stat(candidate); err == nil {
				if m, err = project.LoadFile(candidate); err != nil {
					return s, err
				}
			}
		}
	}

	if m != nil {
		s.manifest = m
		s.name = m.Config.Project.Name
		s.paths = m.SourcePaths()
		s.outDir = m.OutDir()
		s.top = m.Config.Project.Top
		s.jobs = m.Config.Build.Jobs
		s.cache = m.Config.Build.Cache
		s.indent = m.Config.Build.Indent
	} else {
		s.paths = args
		s.name = filepath.Base(wd)
	}

	flags := cmd.Flags()
	if flags.Changed("out") {
		out, err := flags.GetString("out")
		if err != nil {
			return s, fmt.Errorf("failed to get out flag: %w", err)
		}
		s.outDir = out
	}
	if flags.Changed("top") {
		top, err := flags.GetString("top")
		if err != nil {
			return s, fmt.Errorf("failed to get top flag: %w", err)
		}
		s.top = top
	}
	if flags.Changed("no-cache") {
		noCache, err := flags.GetBool("no-cache")
		if err != nil {
			return s, fmt.Errorf("failed to get no-cache flag: %w", err)
		}
		s.cache = !noCache
	}
	if cmd.Root().PersistentFlags().Changed("jobs") {
		jobs, err := cmd.Root().PersistentFlags().GetInt("jobs")
		if err != nil {
			return s, fmt.Errorf("failed to get jobs flag: %w", err)
		}
		s.jobs = jobs
	}
	if len(s.paths) == 0 {
		return s, errNoSources
	}
	return s, nil
}
