package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFactsFile(t *testing.T, lines string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "facts.txt")
	require.NoError(t, os.WriteFile(path, []byte(lines), 0o644))
	return path
}

func execSolve(t *testing.T, format string, args ...string) (string, error) {
	t.Helper()
	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: format}
	cmd := NewSolveCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return buf.String(), err
}

func TestSolveVariableQuery(t *testing.T) {
	facts := writeFactsFile(t, "likes(alice, pizza)\nlikes(bob, sushi)\nlikes(carol, pizza)\n")

	out, err := execSolve(t, "text", "likes(?Who, pizza)?", "--facts", facts)
	require.NoError(t, err)
	assert.Equal(t, "Who = alice\nWho = carol\n", out)
}

func TestSolveGroundQueryYes(t *testing.T) {
	facts := writeFactsFile(t, "foo\n")

	out, err := execSolve(t, "text", "foo?", "--facts", facts)
	require.NoError(t, err)
	assert.Equal(t, "yes\n", out)
}

func TestSolveGroundQueryNo(t *testing.T) {
	facts := writeFactsFile(t, "foo\n")

	out, err := execSolve(t, "text", "bar?", "--facts", facts)
	require.NoError(t, err, "logical failure is not a command error")
	assert.Equal(t, "no\n", out)
}

func TestSolveNoAnswersWithVariables(t *testing.T) {
	facts := writeFactsFile(t, "likes(alice, pizza)\n")

	out, err := execSolve(t, "text", "hates(?Who, pizza)?", "--facts", facts)
	require.NoError(t, err)
	assert.Equal(t, "no\n", out)
}

func TestSolveMaxTruncates(t *testing.T) {
	facts := writeFactsFile(t, "n(one)\nn(two)\nn(three)\n")

	out, err := execSolve(t, "text", "n(?X)?", "--facts", facts, "--max", "2")
	require.NoError(t, err)
	assert.Equal(t, "X = one\nX = two\n...\n", out)
}

func TestSolveRejectsDeclaration(t *testing.T) {
	out, err := execSolve(t, "text", "foo")
	require.Error(t, err)
	assert.Equal(t, ExitInputError, GetExitCode(err))
	assert.Contains(t, out, ErrCodeNotAQuery)
}

func TestSolveBadQuerySyntax(t *testing.T) {
	_, err := execSolve(t, "text", "foo(?")
	require.Error(t, err)
	assert.Equal(t, ExitInputError, GetExitCode(err))
}

func TestSolveMissingFactsFile(t *testing.T) {
	_, err := execSolve(t, "text", "foo?", "--facts", filepath.Join(t.TempDir(), "missing.txt"))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestSolveInvalidFactsFile(t *testing.T) {
	facts := writeFactsFile(t, "likes(alice, pizza)\nthis is not a fact!\n")

	_, err := execSolve(t, "text", "likes(?W, pizza)?", "--facts", facts)
	require.Error(t, err)
	assert.Equal(t, ExitInputError, GetExitCode(err))
}

func TestSolveFactsFileRejectsQueries(t *testing.T) {
	facts := writeFactsFile(t, "likes(alice, pizza)?\n")

	_, err := execSolve(t, "text", "likes(?W, pizza)?", "--facts", facts)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a declaration")
}

func TestSolveJSONOutput(t *testing.T) {
	facts := writeFactsFile(t, "likes(alice, pizza)\n")

	out, err := execSolve(t, "json", "likes(?Who, ?What)?", "--facts", facts)
	require.NoError(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)

	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "likes(?Who, ?What)", data["query"])
	assert.Equal(t, []interface{}{"Who", "What"}, data["vars"])

	answers, ok := data["answers"].([]interface{})
	require.True(t, ok)
	require.Len(t, answers, 1)
	answer, ok := answers[0].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "alice", answer["Who"])
	assert.Equal(t, "pizza", answer["What"])
}

func TestSolveConfigMaxAnswers(t *testing.T) {
	facts := writeFactsFile(t, "n(one)\nn(two)\nn(three)\n")
	cfgPath := filepath.Join(t.TempDir(), "horn.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("max_answers: 1\n"), 0o644))

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text", ConfigPath: cfgPath}
	cmd := NewSolveCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"n(?X)?", "--facts", facts})

	require.NoError(t, cmd.Execute())
	assert.Equal(t, "X = one\n...\n", buf.String())
}
