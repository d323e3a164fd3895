package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"cdl/internal/driver"
	"cdl/internal/facts"
	"cdl/internal/observ"
)

var factsCmd = &cobra.Command{
	Use:   "facts [flags] [paths...]",
	Short: "Print component interface facts as JSON",
	Long: `Facts parses and checks the sources and prints one JSON document with the
components, generics, ports, signals, instances and dependency edges that
survived analysis. The document is validated against an embedded CUE schema
before it is printed.`,
	RunE: runFacts,
}

func init() {
	factsCmd.Flags().String("top", "", "top-level component to check")
	factsCmd.Flags().Bool("allow-errors", false, "print facts even when some components failed")
}

func runFacts(cmd *cobra.Command, args []string) error {
	wd, err := os.Getwd()
	if err != nil {
		return err
	}
	settings, err := resolveBuildSettings(cmd, args, wd)
	if err != nil {
		return err
	}
	allowErrors, err := cmd.Flags().GetBool("allow-errors")
	if err != nil {
		return fmt.Errorf("failed to get allow-errors flag: %w", err)
	}
	showTimings, err := cmd.Root().PersistentFlags().GetBool("timings")
	if err != nil {
		return fmt.Errorf("failed to get timings flag: %w", err)
	}
	maxDiag, err := maxDiagnostics(cmd)
	if err != nil {
		return err
	}

	timer := observ.NewTimer()
	a, analyzeErr := driver.Analyze(cmd.Context(), settings.paths, driver.Options{
		Jobs:           settings.jobs,
		MaxDiagnostics: maxDiag,
		Top:            settings.top,
		Timer:          timer,
	})
	if a == nil || a.Sema == nil {
		if a != nil {
			_ = printDiagnostics(cmd, a.Bag, a.FileSet)
		}
		return fmt.Errorf("analysis failed: %w", analyzeErr)
	}

	phase := timer.Begin("facts")
	tables := facts.Extract(a.FileSet, a.Registry, a.Sema)
	validator, err := facts.NewValidator()
	if err != nil {
		return err
	}
	if err := validator.Validate(tables); err != nil {
		return fmt.Errorf("internal error: %w", err)
	}
	timer.End(phase, fmt.Sprintf("%d components", len(tables.Components)))

	if showTimings {
		driver.AppendTimingDiagnostic(a.Bag, "facts", timer.Report())
	}
	if err := printDiagnostics(cmd, a.Bag, a.FileSet); err != nil {
		return err
	}
	if analyzeErr != nil && !allowErrors {
		return fmt.Errorf("analysis failed: %w", analyzeErr)
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(tables)
}
