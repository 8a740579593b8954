package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/horn/internal/engine"
	"github.com/roach88/horn/internal/parser"
	"github.com/roach88/horn/internal/session"
	"github.com/roach88/horn/internal/store"
	"github.com/roach88/horn/internal/term"
)

// SolveOptions holds flags for the solve command.
type SolveOptions struct {
	*RootOptions
	FactsFile string
	Database  string
	Max       int
}

// SolveResult is the JSON payload for one solve run.
type SolveResult struct {
	Query   string              `json:"query"`
	Vars    []string            `json:"vars"`
	Answers []map[string]string `json:"answers"`
	// Truncated is true when --max stopped the enumeration before the
	// search was exhausted.
	Truncated bool `json:"truncated"`
}

// NewSolveCommand creates the solve command.
func NewSolveCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SolveOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "solve <query>",
		Short: "Run one query against a knowledge base",
		Long: `Run one query against facts loaded from a file and/or a journal.

The query must end with '?'. Answers print one per line in free-variable
order; a ground query prints yes or no.

Exit codes:
  0 - Query ran (even with zero answers: logical failure is not an error)
  1 - Lexical or syntax error in the query or facts
  2 - Command error (facts file or database unreadable)

Examples:
  horn solve 'likes(?Who, pizza)?' --facts kb.txt
  horn solve 'foo?' --db ./horn.db --max 10`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSolve(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.FactsFile, "facts", "", "path to facts file (one declaration per line)")
	cmd.Flags().StringVar(&opts.Database, "db", "", "path to declarations journal")
	cmd.Flags().IntVar(&opts.Max, "max", 0, "maximum answers to print (0 = unbounded)")

	return cmd
}

func runSolve(opts *SolveOptions, input string, cmd *cobra.Command) error {
	cfg, err := LoadConfig(opts.ConfigPath)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load config", err)
	}
	if !cmd.Flags().Changed("max") && cfg.MaxAnswers > 0 {
		opts.Max = cfg.MaxAnswers
	}
	if !cmd.Flags().Changed("db") && opts.Database == "" {
		opts.Database = cfg.Database
	}

	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}
	logger := opts.Logger(cmd.ErrOrStderr())

	eng := engine.NewMemory(engine.WithLogger(logger))
	if err := loadKnowledgeBase(eng, opts.FactsFile, opts.Database, formatter); err != nil {
		return err
	}

	item, err := parser.ParseTopLevel(normalizeInput(input))
	if err != nil {
		_ = formatter.Error(inputErrorCode(err), err.Error(), nil)
		return WrapExitError(ExitInputError, "invalid query", err)
	}
	q, ok := item.(parser.Query)
	if !ok {
		msg := "not a query: terminate it with '?'"
		_ = formatter.Error(ErrCodeNotAQuery, msg, nil)
		return NewExitError(ExitInputError, msg)
	}

	s, err := session.Open(q, eng, session.WithLogger(logger))
	if err != nil {
		_ = formatter.Error(ErrCodeEngine, err.Error(), nil)
		return WrapExitError(ExitInputError, "engine rejected query", err)
	}
	defer s.Close()

	result := collectAnswers(s, opts.Max)
	result.Query = term.String(q.Term)

	if opts.Format == "json" {
		return formatter.Success(result)
	}
	printAnswers(cmd.OutOrStdout(), s.Vars(), result)
	return nil
}

// loadKnowledgeBase declares facts from an optional facts file and an
// optional journal, file first.
func loadKnowledgeBase(eng engine.Engine, factsFile, database string, formatter *OutputFormatter) error {
	if factsFile != "" {
		lines, err := LoadFactsFile(factsFile)
		if err != nil {
			_ = formatter.Error(ErrCodeNotFound, err.Error(), nil)
			return WrapExitError(ExitCommandError, "failed to load facts", err)
		}
		n, err := DeclareAll(eng, lines)
		if err != nil {
			_ = formatter.Error(ErrCodeParse, err.Error(), nil)
			return WrapExitError(ExitInputError, "invalid facts file", err)
		}
		formatter.VerboseLog("loaded %d facts from %s", n, factsFile)
	}

	if database != "" {
		st, err := store.Open(database)
		if err != nil {
			_ = formatter.Error(ErrCodeDatabase, err.Error(), nil)
			return WrapExitError(ExitCommandError, "failed to open journal", err)
		}
		defer st.Close()

		lines, err := st.LoadAll(context.Background())
		if err != nil {
			_ = formatter.Error(ErrCodeDatabase, err.Error(), nil)
			return WrapExitError(ExitCommandError, "failed to read journal", err)
		}
		n, err := DeclareAll(eng, lines)
		if err != nil {
			_ = formatter.Error(ErrCodeParse, err.Error(), nil)
			return WrapExitError(ExitCommandError, "corrupt journal entry", err)
		}
		formatter.VerboseLog("loaded %d facts from journal %s", n, database)
	}
	return nil
}

// collectAnswers pulls up to max answers from the session (all of them
// when max is 0).
func collectAnswers(s *session.Session, max int) SolveResult {
	result := SolveResult{Vars: s.Vars(), Answers: []map[string]string{}}
	for max == 0 || len(result.Answers) < max {
		b, ok := s.Next()
		if !ok {
			return result
		}
		result.Answers = append(result.Answers, renderBinding(b))
	}
	// One more probe decides whether --max truncated the sequence.
	if _, ok := s.Next(); ok {
		result.Truncated = true
	}
	return result
}

// renderBinding converts a binding to canonical text per variable.
func renderBinding(b engine.Binding) map[string]string {
	out := make(map[string]string, len(b))
	for name, t := range b {
		out[name] = term.String(t)
	}
	return out
}

// printAnswers writes the text form: one answer per line in
// free-variable order, or yes/no for a ground query.
func printAnswers(w io.Writer, vars []string, result SolveResult) {
	if len(vars) == 0 {
		if len(result.Answers) > 0 {
			fmt.Fprintln(w, "yes")
		} else {
			fmt.Fprintln(w, "no")
		}
		return
	}

	if len(result.Answers) == 0 {
		fmt.Fprintln(w, "no")
		return
	}
	for _, answer := range result.Answers {
		fmt.Fprintln(w, formatAnswer(vars, answer))
	}
	if result.Truncated {
		fmt.Fprintln(w, "...")
	}
}

// formatAnswer renders one answer as "X = a, Y = b" in variable order.
// Sessions bind exactly the query's free variables, so vars covers the
// whole answer.
func formatAnswer(vars []string, answer map[string]string) string {
	parts := make([]string, 0, len(vars))
	for _, name := range vars {
		if val, ok := answer[name]; ok {
			parts = append(parts, fmt.Sprintf("%s = %s", name, val))
		}
	}
	return strings.Join(parts, ", ")
}
