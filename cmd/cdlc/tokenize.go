package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"cdl/internal/diagfmt"
	"cdl/internal/driver"
	"cdl/internal/lexer"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [flags] file.cdl",
	Short: "Tokenize a CDL source file",
	Long: `Tokenize breaks down a CDL source file into its constituent tokens.
The whole file is lexed in one scope, chosen with --scope.`,
	Args: cobra.ExactArgs(1),
	RunE: runTokenize,
}

func init() {
	tokenizeCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	tokenizeCmd.Flags().String("scope", "general", "lexer scope (general|relational|index)")
	tokenizeCmd.Flags().Bool("trivia", false, "attach comments and whitespace to tokens")
}

func parseScope(s string) (lexer.Scope, error) {
	switch s {
	case "general", "":
		return lexer.ScopeGeneral, nil
	case "relational":
		return lexer.ScopeRelational, nil
	case "index":
		return lexer.ScopeIndex, nil
	}
	return lexer.ScopeGeneral, fmt.Errorf("unknown scope %q (expected general|relational|index)", s)
}

func runTokenize(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	scopeStr, err := cmd.Flags().GetString("scope")
	if err != nil {
		return fmt.Errorf("failed to get scope flag: %w", err)
	}
	scope, err := parseScope(scopeStr)
	if err != nil {
		return err
	}
	trivia, err := cmd.Flags().GetBool("trivia")
	if err != nil {
		return fmt.Errorf("failed to get trivia flag: %w", err)
	}
	maxDiag, err := maxDiagnostics(cmd)
	if err != nil {
		return err
	}

	result, err := driver.Tokenize(args[0], scope, trivia, maxDiag)
	if err != nil {
		return fmt.Errorf("tokenization failed: %w", err)
	}
	if err := printDiagnostics(cmd, result.Bag, result.FileSet); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch format {
	case "pretty":
		err = diagfmt.FormatTokensPretty(out, result.Tokens, result.FileSet)
	case "json":
		err = diagfmt.FormatTokensJSON(out, result.Tokens)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
	if err != nil {
		return err
	}
	if result.Bag.HasErrors() {
		return fmt.Errorf("tokenization failed with errors")
	}
	return nil
}
