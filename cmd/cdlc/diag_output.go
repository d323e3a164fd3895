package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"cdl/internal/diag"
	"cdl/internal/diagfmt"
	"cdl/internal/source"
)

func useColor(cmd *cobra.Command, f *os.File) (bool, error) {
	mode, err := readSwitch(cmd, "color")
	if err != nil {
		return false, err
	}
	return mode.enabled(f), nil
}

func maxDiagnostics(cmd *cobra.Command) (int, error) {
	n, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return 0, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	return n, nil
}

// printDiagnostics writes bag to stderr in the pretty format.
func printDiagnostics(cmd *cobra.Command, bag *diag.Bag, fs *source.FileSet) error {
	if bag == nil || bag.Len() == 0 {
		return nil
	}
	color, err := useColor(cmd, os.Stderr)
	if err != nil {
		return err
	}
	bag.Sort()
	diagfmt.Pretty(cmd.ErrOrStderr(), bag, fs, diagfmt.PrettyOpts{
		Color:     color,
		Context:   2,
		ShowNotes: true,
	})
	return nil
}
