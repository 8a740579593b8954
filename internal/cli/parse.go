package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/horn/internal/lexer"
	"github.com/roach88/horn/internal/parser"
	"github.com/roach88/horn/internal/term"
)

// ParseOptions holds flags for the parse command.
type ParseOptions struct {
	*RootOptions
}

// ParseResult is the payload printed by the parse command.
type ParseResult struct {
	Kind string   `json:"kind"` // "declaration" or "query"
	Term string   `json:"term"` // canonical form
	Vars []string `json:"vars,omitempty"`
}

// NewParseCommand creates the parse command.
func NewParseCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ParseOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "parse <input>",
		Short: "Parse one top-level item and print its canonical form",
		Long: `Parse a single declaration or query and print its canonical form.

The canonical form round-trips: feeding it back to parse yields a
structurally equal term.

Exit codes:
  0 - Input parsed
  1 - Lexical or syntax error

Examples:
  horn parse 'likes(alice, pizza)'
  horn parse 'foo(bar, ?X)?'
  horn parse '?Who?' --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(opts, args[0], cmd)
		},
	}

	return cmd
}

func runParse(opts *ParseOptions, input string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	item, err := parser.ParseTopLevel(normalizeInput(input))
	if err != nil {
		_ = formatter.Error(inputErrorCode(err), err.Error(), nil)
		return WrapExitError(ExitInputError, "invalid input", err)
	}

	result := describeItem(item)
	if opts.Format == "json" {
		return formatter.Success(result)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", result.Kind, result.Term)
	if len(result.Vars) > 0 && opts.Verbose {
		fmt.Fprintf(cmd.OutOrStdout(), "free variables: %v\n", result.Vars)
	}
	return nil
}

func describeItem(item parser.Item) ParseResult {
	switch it := item.(type) {
	case parser.Query:
		return ParseResult{Kind: "query", Term: term.String(it.Term), Vars: term.Vars(it.Term)}
	case parser.Declaration:
		return ParseResult{Kind: "declaration", Term: term.String(it.Term), Vars: term.Vars(it.Term)}
	}
	return ParseResult{}
}

// inputErrorCode maps lex and parse errors to CLI error codes.
func inputErrorCode(err error) string {
	var lexErr *lexer.Error
	if errors.As(err, &lexErr) {
		return ErrCodeLex
	}
	var parseErr *parser.Error
	if errors.As(err, &parseErr) {
		return ErrCodeParse
	}
	return ErrCodeGeneric
}
