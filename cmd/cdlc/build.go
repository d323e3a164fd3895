package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"cdl/internal/buildpipeline"
	"cdl/internal/driver"
)

var buildCmd = &cobra.Command{
	Use:   "build [flags] [paths...]",
	Short: "Compile CDL sources to VHDL",
	Long: `Build compiles every component found in the given .cdl files or
directories into <Component>.vhd files. Without arguments the sources and
output directory come from cdl.toml. A component that fails only takes its
users down with it; the rest is still written.`,
	RunE: runBuild,
}

func init() {
	buildCmd.Flags().String("out", "", "output directory for .vhd files")
	buildCmd.Flags().String("top", "", "top-level component to check")
	buildCmd.Flags().Bool("no-cache", false, "do not read or write the disk cache")
	buildCmd.Flags().Bool("stdout", false, "print VHDL to stdout instead of writing files")
	buildCmd.Flags().String("ui", "auto", "progress UI (auto|on|off)")
	buildCmd.Flags().Bool("keep-placeholders", false, "keep the text of process/generate/connect bodies")
}

func runBuild(cmd *cobra.Command, args []string) error {
	wd, err := os.Getwd()
	if err != nil {
		return err
	}
	settings, err := resolveBuildSettings(cmd, args, wd)
	if err != nil {
		return err
	}
	toStdout, err := cmd.Flags().GetBool("stdout")
	if err != nil {
		return fmt.Errorf("failed to get stdout flag: %w", err)
	}
	uiMode, err := readSwitch(cmd, "ui")
	if err != nil {
		return err
	}
	keep, err := cmd.Flags().GetBool("keep-placeholders")
	if err != nil {
		return fmt.Errorf("failed to get keep-placeholders flag: %w", err)
	}
	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return fmt.Errorf("failed to get quiet flag: %w", err)
	}
	showTimings, err := cmd.Root().PersistentFlags().GetBool("timings")
	if err != nil {
		return fmt.Errorf("failed to get timings flag: %w", err)
	}
	maxDiag, err := maxDiagnostics(cmd)
	if err != nil {
		return err
	}

	opts := driver.Options{
		Jobs:                settings.jobs,
		MaxDiagnostics:      maxDiag,
		Top:                 settings.top,
		KeepPlaceholderText: keep,
		IndentWidth:         settings.indent,
	}
	if settings.cache {
		cache, cacheErr := driver.OpenDiskCache("cdl")
		if cacheErr != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: disk cache disabled: %v\n", cacheErr)
		} else {
			opts.Cache = cache
		}
	}

	req := buildpipeline.Request{Paths: settings.paths, Options: opts}
	if !toStdout {
		req.OutDir = settings.outDir
	}

	var res buildpipeline.Result
	var buildErr error
	if !toStdout && !quiet && uiMode.enabled(os.Stdout) {
		res, buildErr = runBuildWithUI(cmd.Context(), "build "+settings.name, req)
	} else {
		res, buildErr = buildpipeline.Build(cmd.Context(), req)
	}

	if res.Analysis != nil {
		if err := printDiagnostics(cmd, res.Analysis.Bag, res.Analysis.FileSet); err != nil {
			return err
		}
	}
	if toStdout {
		for i, out := range res.Outputs {
			if i > 0 {
				fmt.Fprintln(cmd.OutOrStdout())
			}
			fmt.Fprint(cmd.OutOrStdout(), out.VHDL)
		}
	}
	if showTimings {
		if err := printStageTimings(cmd.ErrOrStderr(), res.Timings); err != nil {
			return err
		}
	}
	if !quiet && !toStdout {
		cached := 0
		for _, out := range res.Outputs {
			if out.Cached {
				cached++
			}
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "wrote %d files to %s (%d cached)\n", len(res.Written), settings.outDir, cached)
	}

	if buildErr != nil {
		if res.Analysis != nil {
			if failed := res.Analysis.Failed(); len(failed) > 0 {
				return fmt.Errorf("build failed: %s", strings.Join(failed, ", "))
			}
		}
		return fmt.Errorf("build failed: %w", buildErr)
	}
	return nil
}
