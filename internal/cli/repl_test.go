package cli

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execRepl(t *testing.T, input string, args ...string) string {
	t.Helper()
	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewReplCommand(rootOpts)
	cmd.SetIn(strings.NewReader(input))
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)

	require.NoError(t, cmd.Execute())
	return buf.String()
}

func TestReplDeclareThenQuery(t *testing.T) {
	out := execRepl(t, "likes(alice, pizza)\nlikes(?Who, pizza)?\n")

	assert.Contains(t, out, "ok")
	assert.Contains(t, out, "Who = alice")
}

func TestReplGroundQueryYesNo(t *testing.T) {
	out := execRepl(t, "foo\nfoo?\nbar?\n")

	assert.Contains(t, out, "yes")
	assert.Contains(t, out, "no")
}

func TestReplErrorReprompts(t *testing.T) {
	// A syntax error must not end the session; the following line still
	// runs.
	out := execRepl(t, "foo()\nfoo\nfoo?\n")

	assert.Contains(t, out, "error:")
	assert.Contains(t, out, "yes")
}

func TestReplSkipsBlankLines(t *testing.T) {
	out := execRepl(t, "\n   \nfoo\n")
	assert.Contains(t, out, "ok")
	assert.NotContains(t, out, "error")
}

func TestReplJournalPersistsAcrossSessions(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "horn.db")

	// First session declares a fact.
	out := execRepl(t, "likes(alice, pizza)\n", "--db", dbPath)
	assert.Contains(t, out, "ok")

	// Second session sees it without re-declaring.
	out = execRepl(t, "likes(?Who, pizza)?\n", "--db", dbPath)
	assert.Contains(t, out, "Who = alice")
}

func TestReplPromptFromConfig(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "horn.yaml")
	writeConfig(t, cfgPath, "prompt: \"?- \"\n")

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text", ConfigPath: cfgPath}
	cmd := NewReplCommand(rootOpts)
	cmd.SetIn(strings.NewReader("foo\n"))
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(nil)

	require.NoError(t, cmd.Execute())
	assert.Contains(t, buf.String(), "?- ")
}

func TestReplMaxAnswersPerQuery(t *testing.T) {
	out := execRepl(t, "n(one)\nn(two)\nn(three)\nn(?X)?\n", "--max", "1")

	assert.Contains(t, out, "X = one")
	assert.NotContains(t, out, "X = two")
	assert.Contains(t, out, "...")
}
