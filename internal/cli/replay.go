package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/horn/internal/parser"
	"github.com/roach88/horn/internal/store"
	"github.com/roach88/horn/internal/term"
)

// ReplayOptions holds flags for the replay command.
type ReplayOptions struct {
	*RootOptions
	Database string
	Check    bool
}

// ReplayResult holds the journal replay report.
type ReplayResult struct {
	Declarations []string `json:"declarations"`
	Total        int      `json:"total"`
	// Canonical is true when every journal entry re-parses to a
	// declaration whose canonical form equals the stored text.
	Canonical bool `json:"canonical"`
}

// NewReplayCommand creates the replay command.
func NewReplayCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ReplayOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "replay",
		Short: "Print the declarations journal in order",
		Long: `Print the declarations journal in insertion order.

With --check, every entry is re-parsed and compared against its own
canonical form, verifying that the journal reloads deterministically.

Exit codes:
  0 - Journal printed (and, with --check, verified)
  1 - Verification failed (an entry does not round-trip)
  2 - Command error (database not found, etc.)

Examples:
  horn replay --db ./horn.db
  horn replay --db ./horn.db --check --format json`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReplay(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite journal (required)")
	_ = cmd.MarkFlagRequired("db")
	cmd.Flags().BoolVar(&opts.Check, "check", false, "verify every entry round-trips through the parser")

	return cmd
}

func runReplay(opts *ReplayOptions, cmd *cobra.Command) error {
	ctx := context.Background()

	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	st, err := store.Open(opts.Database)
	if err != nil {
		_ = formatter.Error(ErrCodeDatabase, err.Error(), nil)
		return WrapExitError(ExitCommandError, "failed to open journal", err)
	}
	defer st.Close()

	decls, err := st.LoadAll(ctx)
	if err != nil {
		_ = formatter.Error(ErrCodeDatabase, err.Error(), nil)
		return WrapExitError(ExitCommandError, "failed to read journal", err)
	}

	result := ReplayResult{Declarations: decls, Total: len(decls), Canonical: true}
	if opts.Check {
		if err := checkCanonical(decls); err != nil {
			result.Canonical = false
			if opts.Format == "json" {
				_ = formatter.Success(result)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "journal check failed: %v\n", err)
			}
			return WrapExitError(ExitInputError, "journal verification failed", err)
		}
	}

	if opts.Format == "json" {
		return formatter.Success(result)
	}
	for _, d := range decls {
		fmt.Fprintln(cmd.OutOrStdout(), d)
	}
	formatter.VerboseLog("%d declarations", result.Total)
	return nil
}

// checkCanonical verifies each journal entry parses as a declaration
// and equals its own canonical printing.
func checkCanonical(decls []string) error {
	for i, text := range decls {
		item, err := parser.ParseTopLevel(text)
		if err != nil {
			return fmt.Errorf("entry %d: %w", i+1, err)
		}
		decl, ok := item.(parser.Declaration)
		if !ok {
			return fmt.Errorf("entry %d: %q is not a declaration", i+1, text)
		}
		if canonical := term.String(decl.Term); canonical != text {
			return fmt.Errorf("entry %d: stored %q, canonical %q", i+1, text, canonical)
		}
	}
	return nil
}
