package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/horn/internal/engine"
	"github.com/roach88/horn/internal/parser"
	"github.com/roach88/horn/internal/session"
	"github.com/roach88/horn/internal/store"
	"github.com/roach88/horn/internal/term"
)

// ReplOptions holds flags for the repl command.
type ReplOptions struct {
	*RootOptions
	FactsFile string
	Database  string
	Max       int
}

// NewReplCommand creates the repl command.
func NewReplCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ReplOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Interactive read-eval-print loop",
		Long: `Start an interactive session against an in-memory engine.

Each line is one top-level item. A bare term declares a fact; a term
ending in '?' runs a query. With --db, declarations are journaled and
the journal is reloaded on startup, so the knowledge base survives
across sessions.

Lexical and syntax errors reprompt; they never end the session. End the
session with end-of-input (Ctrl-D).

Examples:
  horn repl
  horn repl --db ./horn.db --max 20`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRepl(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.FactsFile, "facts", "", "path to facts file loaded at startup")
	cmd.Flags().StringVar(&opts.Database, "db", "", "path to declarations journal")
	cmd.Flags().IntVar(&opts.Max, "max", 0, "maximum answers per query (0 = unbounded)")

	return cmd
}

// repl bundles the loop's collaborators so handlers stay small.
type repl struct {
	eng     *engine.Memory
	journal *store.Store // nil without --db
	out     io.Writer
	opts    *ReplOptions
	logger  *slog.Logger
}

func runRepl(opts *ReplOptions, cmd *cobra.Command) error {
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

	r := &repl{
		eng:    engine.NewMemory(engine.WithLogger(logger)),
		out:    cmd.OutOrStdout(),
		opts:   opts,
		logger: logger,
	}

	if err := loadKnowledgeBase(r.eng, opts.FactsFile, "", formatter); err != nil {
		return err
	}

	if opts.Database != "" {
		st, err := store.Open(opts.Database)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to open journal", err)
		}
		defer st.Close()
		r.journal = st

		lines, err := st.LoadAll(context.Background())
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to read journal", err)
		}
		n, err := DeclareAll(r.eng, lines)
		if err != nil {
			return WrapExitError(ExitCommandError, "corrupt journal entry", err)
		}
		formatter.VerboseLog("restored %d facts from %s", n, opts.Database)
	}

	prompt := cfg.Prompt
	sc := bufio.NewScanner(cmd.InOrStdin())
	for {
		fmt.Fprint(r.out, prompt)
		if !sc.Scan() {
			break
		}
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		r.handleLine(normalizeInput(line))
	}
	if err := sc.Err(); err != nil {
		return WrapExitError(ExitCommandError, "read input", err)
	}
	fmt.Fprintln(r.out)
	return nil
}

// handleLine processes one input line. Errors print and reprompt; the
// loop never dies on bad input.
func (r *repl) handleLine(line string) {
	item, err := parser.ParseTopLevel(line)
	if err != nil {
		fmt.Fprintf(r.out, "error: %v\n", err)
		return
	}

	switch it := item.(type) {
	case parser.Declaration:
		r.declare(it)
	case parser.Query:
		r.query(it)
	}
}

func (r *repl) declare(d parser.Declaration) {
	if err := r.eng.Declare(d.Term); err != nil {
		fmt.Fprintf(r.out, "error: %v\n", err)
		return
	}
	if r.journal != nil {
		if err := r.journal.Append(context.Background(), term.String(d.Term)); err != nil {
			fmt.Fprintf(r.out, "error: fact declared but not journaled: %v\n", err)
			return
		}
	}
	fmt.Fprintln(r.out, "ok")
}

func (r *repl) query(q parser.Query) {
	s, err := session.Open(q, r.eng, session.WithLogger(r.logger))
	if err != nil {
		fmt.Fprintf(r.out, "error: %v\n", err)
		return
	}
	defer s.Close()

	result := collectAnswers(s, r.opts.Max)
	printAnswers(r.out, s.Vars(), result)
}
