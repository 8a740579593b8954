package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execParse(t *testing.T, args ...string) (string, error) {
	t.Helper()
	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewParseCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetErr(buf)

	// Pull format/verbose out of args the way the root command would.
	var rest []string
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--format":
			i++
			rootOpts.Format = args[i]
		case "--verbose":
			rootOpts.Verbose = true
		default:
			rest = append(rest, args[i])
		}
	}
	cmd.SetArgs(rest)

	err := cmd.Execute()
	return buf.String(), err
}

func TestParseDeclaration(t *testing.T) {
	out, err := execParse(t, "likes(alice, pizza)")
	require.NoError(t, err)
	assert.Equal(t, "declaration: likes(alice, pizza)\n", out)
}

func TestParseQuery(t *testing.T) {
	out, err := execParse(t, "foo(bar,?X)?")
	require.NoError(t, err)
	assert.Equal(t, "query: foo(bar, ?X)\n", out)
}

func TestParseJSONOutput(t *testing.T) {
	out, err := execParse(t, "foo(bar, ?X)?", "--format", "json")
	require.NoError(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)

	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "query", data["kind"])
	assert.Equal(t, "foo(bar, ?X)", data["term"])
	assert.Equal(t, []interface{}{"X"}, data["vars"])
}

func TestParseLexError(t *testing.T) {
	out, err := execParse(t, "foo.")
	require.Error(t, err)
	assert.Equal(t, ExitInputError, GetExitCode(err))
	assert.Contains(t, out, ErrCodeLex)
}

func TestParseSyntaxError(t *testing.T) {
	out, err := execParse(t, "foo()")
	require.Error(t, err)
	assert.Equal(t, ExitInputError, GetExitCode(err))
	assert.Contains(t, out, ErrCodeParse)
	assert.Contains(t, out, "empty argument list")
}

// TestParseGolden runs a corpus of inputs through the parse command and
// compares the combined text output against a golden file.
func TestParseGolden(t *testing.T) {
	corpus := []string{
		"foo",
		"?Who",
		"likes(alice, pizza)",
		"foo(bar,?X)?",
		"?Who?",
		"edge(node(a),node(b))",
		"path(?From,step(?From,?To),_weight)?",
	}

	var report bytes.Buffer
	for _, input := range corpus {
		out, err := execParse(t, input)
		require.NoError(t, err, "input %q", input)
		fmt.Fprintf(&report, "input: %s\n%s\n", input, out)
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "parse_corpus", report.Bytes())
}
