package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"cdl/internal/diagfmt"
	"cdl/internal/driver"
)

var parseCmd = &cobra.Command{
	Use:   "parse [flags] file.cdl",
	Short: "Parse a CDL source file and print its syntax tree",
	Long: `Parse analyzes every component of a CDL source file and prints the
resulting trees. Parsing stops at the first error.`,
	Args: cobra.ExactArgs(1),
	RunE: runParse,
}

func init() {
	parseCmd.Flags().String("format", "tree", "output format (tree|json)")
	parseCmd.Flags().Bool("keep-placeholders", false, "keep the text of process/generate/connect bodies")
}

func runParse(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	keep, err := cmd.Flags().GetBool("keep-placeholders")
	if err != nil {
		return fmt.Errorf("failed to get keep-placeholders flag: %w", err)
	}
	maxDiag, err := maxDiagnostics(cmd)
	if err != nil {
		return err
	}

	result, err := driver.Parse(args[0], keep, maxDiag)
	if err != nil {
		return fmt.Errorf("parsing failed: %w", err)
	}
	if err := printDiagnostics(cmd, result.Bag, result.FileSet); err != nil {
		return err
	}
	if result.Err != nil {
		return fmt.Errorf("parsing failed: %w", result.Err)
	}

	out := cmd.OutOrStdout()
	switch format {
	case "tree", "pretty":
		return diagfmt.FormatASTPretty(out, result.Registry, result.FileSet)
	case "json":
		return diagfmt.FormatASTJSON(out, result.Registry)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}
