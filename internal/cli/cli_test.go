package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"digital.vasic.corespec/pkg/config"
	"digital.vasic.corespec/pkg/report"
)

const passingDecl = `version: "1"
name: String
groups:
  - describe: casecmp
    children:
      - it: ignores case
        call: string.casecmp
        receiver: aBc
        args: [abc]
        expect: [{type: equals, value: 0}]
      - it: handles encodings
        pending: true
`

const failingDecl = `version: "1"
name: Broken
groups:
  - describe: casecmp
    children:
      - it: expects the wrong answer
        call: string.casecmp
        receiver: abc
        args: [abc]
        expect: [{type: equals, value: 5}]
`

const invalidDecl = `version: "1"
groups:
  - describe: casecmp
    children:
      - it: has nothing to call
`

func writeDecl(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// execute runs the root command with args and returns stdout,
// stderr and the command error.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}
	cmd := NewRootCommand()
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.SetArgs(append(args,
		"--env", filepath.Join(t.TempDir(), "missing.env"),
	))
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestGetExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},
		{"failure", NewExitError(ExitFailure, "failed"), ExitFailure},
		{"wrapped", WrapExitError(ExitCommandError, "load", errors.New("boom")), ExitCommandError},
		{"plain error", errors.New("unknown flag"), ExitCommandError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GetExitCode(tt.err))
		})
	}
}

func TestExitError_Message(t *testing.T) {
	err := WrapExitError(ExitCommandError, "load config", errors.New("bad yaml"))
	assert.Equal(t, "load config: bad yaml", err.Error())
	assert.EqualError(t, errors.Unwrap(err), "bad yaml")
	assert.Equal(t, "run failed", NewExitError(ExitFailure, "run failed").Error())
}

func TestRun_Passing(t *testing.T) {
	file := writeDecl(t, t.TempDir(), "string.yaml", passingDecl)

	out, _, err := execute(t, "run", file)
	require.NoError(t, err)

	assert.Contains(t, out, "String\n  casecmp\n    ignores case\n")
	assert.Contains(t, out, "handles encodings (PENDING)")
	assert.Contains(t, out, "2 examples, 0 failures, 0 errors, 1 pending")
}

func TestRun_FailingExitsWithFailure(t *testing.T) {
	dir := t.TempDir()
	writeDecl(t, dir, "a_string.yaml", passingDecl)
	writeDecl(t, dir, "b_broken.yaml", failingDecl)

	out, _, err := execute(t, "run", dir)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, err.Error(), "1 failure")
	assert.Contains(t, out, "expects the wrong answer (FAILED - 1)")
	assert.Contains(t, out, "Failures:")
}

func TestRun_JSONFormat(t *testing.T) {
	file := writeDecl(t, t.TempDir(), "string.yaml", passingDecl)

	out, _, err := execute(t, "run", "--format", "json", file)
	require.NoError(t, err)

	var rec report.Record
	require.NoError(t, json.Unmarshal([]byte(out), &rec))
	assert.Equal(t, 1, rec.Passed)
	assert.Equal(t, 1, rec.Skipped)
	assert.Empty(t, rec.Failures)
}

func TestRun_JSONEnvelope(t *testing.T) {
	file := writeDecl(t, t.TempDir(), "string.yaml", passingDecl)

	out, _, err := execute(t, "run", "--format", "json", "--envelope", file)
	require.NoError(t, err)

	var env report.Envelope
	require.NoError(t, json.Unmarshal([]byte(out), &env))
	assert.NotEmpty(t, env.RunID)
	require.NotNil(t, env.GeneratedAt)
	assert.Equal(t, 1, env.Result.Passed)
}

func TestRun_Filter(t *testing.T) {
	dir := t.TempDir()
	writeDecl(t, dir, "a_string.yaml", passingDecl)
	writeDecl(t, dir, "b_broken.yaml", failingDecl)

	out, _, err := execute(t, "run", "--filter", "^String", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "3 examples, 0 failures, 0 errors, 2 pending")
}

func TestRun_CommandErrors(t *testing.T) {
	file := writeDecl(t, t.TempDir(), "string.yaml", passingDecl)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"nothing to run", []string{"run"}, "no declarations"},
		{"missing path", []string{"run", "/nonexistent/decl.yaml"}, "declaration path"},
		{"unknown format", []string{"run", "--format", "pdf", file}, "invalid configuration"},
		{"bad concurrency", []string{"run", "--concurrency", "0", file}, "invalid configuration"},
		{"capture in parallel", []string{"run", "--capture", "-j", "2", file}, "invalid configuration"},
		{"bad filter", []string{"run", "--filter", "(", file}, "invalid filter pattern"},
		{"unknown suite", []string{"run", "--suite", "nope"}, `suite "nope" not found`},
		{"watch without paths", []string{"run", "--watch", "--builtin"}, "--watch requires"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := execute(t, tt.args...)
			require.Error(t, err)
			assert.Equal(t, ExitCommandError, GetExitCode(err))
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestRun_InvalidDeclarationIsCommandError(t *testing.T) {
	file := writeDecl(t, t.TempDir(), "invalid.yaml", invalidDecl)

	_, _, err := execute(t, "run", file)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "call is required")
}

func TestRun_HistoryRecordsAndCompares(t *testing.T) {
	dir := t.TempDir()
	file := writeDecl(t, dir, "string.yaml", passingDecl)
	db := filepath.Join(dir, "history.db")
	jsonl := filepath.Join(dir, "history.jsonl")

	_, errOut, err := execute(t, "run", "--history", db, "--history-jsonl", jsonl, file)
	require.NoError(t, err)
	assert.NotContains(t, errOut, "identical")

	_, errOut, err = execute(t, "run", "--history", db, "--history-jsonl", jsonl, file)
	require.NoError(t, err)
	assert.Contains(t, errOut, "Result identical to previous run")

	data, err := os.ReadFile(jsonl)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)
	var entry report.HistoricalEntry
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "passed", entry.Status)
	assert.Equal(t, filepath.Clean(file), entry.Suite)

	out, _, err := execute(t, "history", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "FINGERPRINT")
	assert.Equal(t, 3, strings.Count(out, "\n"))
	assert.Contains(t, out, "2 examples, 0 failures, 0 errors, 1 pending")
}

func TestRun_HistoryReportsRegressions(t *testing.T) {
	dir := t.TempDir()
	file := writeDecl(t, dir, "decl.yaml", passingDecl)
	db := filepath.Join(dir, "history.db")

	_, _, err := execute(t, "run", "--history", db, file)
	require.NoError(t, err)

	broken := strings.Replace(passingDecl, "value: 0", "value: 7", 1)
	require.NoError(t, os.WriteFile(file, []byte(broken), 0644))

	_, errOut, err := execute(t, "run", "--history", db, file)
	require.Error(t, err)
	assert.Contains(t, errOut, "Regression: String casecmp ignores case")
}

func TestRun_ReportDir(t *testing.T) {
	dir := t.TempDir()
	file := writeDecl(t, dir, "string.yaml", passingDecl)
	reports := filepath.Join(dir, "reports")

	_, _, err := execute(t, "run", "--report-dir", reports, file)
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(reports, "latest_report.json"))
	assert.FileExists(t, filepath.Join(reports, "latest_report.md"))
}

func TestRun_LogsDir(t *testing.T) {
	dir := t.TempDir()
	file := writeDecl(t, dir, "string.yaml", passingDecl)
	logs := filepath.Join(dir, "logs")

	_, _, err := execute(t, "run", "--logs-dir", logs, file)
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(logs, "run.log"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "run_completed")

	cases, err := os.ReadFile(filepath.Join(logs, "cases.log"))
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(string(cases), "\n"))
}

func TestRun_VerboseLogsToStderr(t *testing.T) {
	file := writeDecl(t, t.TempDir(), "string.yaml", passingDecl)

	out, errOut, err := execute(t, "run", "-v", file)
	require.NoError(t, err)
	assert.Contains(t, errOut, "case_started")
	assert.NotContains(t, out, "case_started")
}

func TestList(t *testing.T) {
	file := writeDecl(t, t.TempDir(), "string.yaml", passingDecl)

	out, _, err := execute(t, "list", file)
	require.NoError(t, err)
	assert.Equal(t,
		"String\n  casecmp\n    ignores case\n    handles encodings (PENDING)\n"+
			"\n2 groups, 2 cases\n",
		out,
	)
}

func TestList_BuiltinSuite(t *testing.T) {
	out, _, err := execute(t, "list", "--suite", "array")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "Array\n"))
}

func TestValidate(t *testing.T) {
	dir := t.TempDir()
	valid := writeDecl(t, dir, "string.yaml", passingDecl)

	out, _, err := execute(t, "validate", valid)
	require.NoError(t, err)
	assert.Contains(t, out, "✓ 1 declaration file(s) valid")
}

func TestValidate_ReportsProblems(t *testing.T) {
	dir := t.TempDir()
	writeDecl(t, dir, "a_string.yaml", passingDecl)
	invalid := writeDecl(t, dir, "b_invalid.yaml", invalidDecl)

	out, _, err := execute(t, "validate", dir)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, err.Error(), "1 problem(s) in 1 of 2 file(s)")
	assert.Contains(t, out, invalid+": ")
	assert.Contains(t, out, "call is required")
}

func TestValidate_CommandErrors(t *testing.T) {
	_, _, err := execute(t, "validate", "/nonexistent/dir")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))

	_, _, err = execute(t, "validate", t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no declaration files found")
}

func TestHistory_CommandErrors(t *testing.T) {
	_, _, err := execute(t, "history")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "no history database")

	_, _, err = execute(t, "history", "--db", filepath.Join(t.TempDir(), "none.db"))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestSuiteLabel(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.Config
		want string
	}{
		{"paths", config.Config{Paths: []string{"specs/", "x.yaml"}}, "specs,x.yaml"},
		{"builtin", config.Config{Builtin: true}, "builtin"},
		{"suites win over builtin", config.Config{Builtin: true, Suites: []string{"hash", "string"}}, "hash,string"},
		{"mixed", config.Config{Suites: []string{"hash"}, Paths: []string{"a.yaml"}}, "hash,a.yaml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, suiteLabel(&tt.cfg))
		})
	}
}
