package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"unidiff/internal/util"
)

type result struct {
	code   int
	stdout string
	stderr string
}

func runCLI(t *testing.T, stdin string, args ...string) result {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	var stdout, stderr bytes.Buffer
	code := run(args, strings.NewReader(stdin), &stdout, &stderr)
	return result{code: code, stdout: stdout.String(), stderr: stderr.String()}
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func pair(t *testing.T, from, to string) (string, string) {
	t.Helper()
	dir := t.TempDir()
	return writeFile(t, dir, "from.txt", from), writeFile(t, dir, "to.txt", to)
}

const wantPatch = "--- a/f\n+++ b/f\n@@ -1,3 +1,3 @@\n a\n-b\n+B\n c\n"

func TestDifferentFilesExitOne(t *testing.T) {
	from, to := pair(t, "a\nb\nc\n", "a\nB\nc\n")

	res := runCLI(t, "", "--label", "a/f", "--label", "b/f", from, to)

	assert.Equal(t, 1, res.code)
	assert.Equal(t, wantPatch, res.stdout)
	assert.Empty(t, res.stderr)
}

func TestIdenticalFilesExitZero(t *testing.T) {
	from, to := pair(t, "same\n", "same\n")

	res := runCLI(t, "", from, to)

	assert.Equal(t, 0, res.code)
	assert.Empty(t, res.stdout)
}

func TestDefaultHeaderCarriesNamesAndDates(t *testing.T) {
	from, to := pair(t, "a\n", "b\n")

	res := runCLI(t, "", from, to)

	require.Equal(t, 1, res.code)
	lines := strings.Split(res.stdout, "\n")
	assert.True(t, strings.HasPrefix(lines[0], "--- "+from+"\t"), lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "+++ "+to+"\t"), lines[1])
}

func TestSingleLabelKeepsToName(t *testing.T) {
	from, to := pair(t, "a\n", "b\n")

	res := runCLI(t, "", "--label", "old", from, to)

	require.Equal(t, 1, res.code)
	lines := strings.Split(res.stdout, "\n")
	assert.Equal(t, "--- old", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "+++ "+to), lines[1])
}

func TestTooManyLabels(t *testing.T) {
	from, to := pair(t, "a\n", "b\n")

	res := runCLI(t, "", "--label", "1", "--label", "2", "--label", "3", from, to)

	assert.Equal(t, 2, res.code)
	assert.Contains(t, res.stderr, "--label given 3 times")
}

func TestReadsStandardInput(t *testing.T) {
	_, to := pair(t, "", "a\nB\nc\n")

	res := runCLI(t, "a\nb\nc\n", "--label", "a/f", "--label", "b/f", "-", to)

	assert.Equal(t, 1, res.code)
	assert.Equal(t, wantPatch, res.stdout)
}

func TestBothStandardInputIsTrouble(t *testing.T) {
	res := runCLI(t, "x\n", "-", "-")

	assert.Equal(t, 2, res.code)
	assert.Contains(t, res.stderr, "only one input")
}

func TestMissingFileIsTrouble(t *testing.T) {
	from, _ := pair(t, "a\n", "")

	res := runCLI(t, "", from, filepath.Join(t.TempDir(), "missing"))

	assert.Equal(t, 2, res.code)
	assert.True(t, strings.HasPrefix(res.stderr, "unidiff: "), res.stderr)
}

func TestWrongArgumentCount(t *testing.T) {
	res := runCLI(t, "", "only-one")

	assert.Equal(t, 2, res.code)
}

func TestContextFlag(t *testing.T) {
	from, to := pair(t, "a\nb\nc\n", "a\nB\nc\n")

	res := runCLI(t, "", "-U", "0", "--label", "a/f", "--label", "b/f", from, to)

	assert.Equal(t, 1, res.code)
	assert.Equal(t, "--- a/f\n+++ b/f\n@@ -2 +2 @@\n-b\n+B\n", res.stdout)
}

func TestNegativeContextIsTrouble(t *testing.T) {
	from, to := pair(t, "a\n", "b\n")

	res := runCLI(t, "", "--unified=-1", from, to)

	assert.Equal(t, 2, res.code)
	assert.Contains(t, res.stderr, "context_lines must not be negative")
}

func TestConfigFileAndFlagOverride(t *testing.T) {
	from, to := pair(t, "a\nb\nc\n", "a\nB\nc\n")
	cfg := writeFile(t, t.TempDir(), "config.json", `{"context_lines":0}`)

	res := runCLI(t, "", "--config", cfg, "--label", "a/f", "--label", "b/f", from, to)
	assert.Equal(t, "--- a/f\n+++ b/f\n@@ -2 +2 @@\n-b\n+B\n", res.stdout)

	res = runCLI(t, "", "--config", cfg, "-U", "3", "--label", "a/f", "--label", "b/f", from, to)
	assert.Equal(t, wantPatch, res.stdout)
}

func TestInvalidConfigIsTrouble(t *testing.T) {
	from, to := pair(t, "a\n", "b\n")
	cfg := writeFile(t, t.TempDir(), "config.json", `{"color":"purple"}`)

	res := runCLI(t, "", "--config", cfg, from, to)

	assert.Equal(t, 2, res.code)
}

func TestNoNewlineMarkerFlag(t *testing.T) {
	from, to := pair(t, "a\nb", "a\nc")

	res := runCLI(t, "", "--no-newline-marker=false", "--label", "x", "--label", "y", from, to)

	assert.Equal(t, 1, res.code)
	assert.Equal(t, "--- x\n+++ y\n@@ -1,2 +1,2 @@\n a\n-b\n+c\n", res.stdout)
}

func TestColorAlways(t *testing.T) {
	from, to := pair(t, "a\nb\nc\n", "a\nB\nc\n")

	res := runCLI(t, "", "--color", "always", "--label", "a/f", "--label", "b/f", from, to)

	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stdout, "\x1b[")
	assert.Equal(t, wantPatch, ansi.Strip(res.stdout))
}

func TestColorAutoIsPlainWhenNotATerminal(t *testing.T) {
	from, to := pair(t, "a\nb\nc\n", "a\nB\nc\n")

	res := runCLI(t, "", "--label", "a/f", "--label", "b/f", from, to)

	assert.NotContains(t, res.stdout, "\x1b[")
}

func TestSplitOutput(t *testing.T) {
	from, to := pair(t, "a\nb\nc\n", "a\nB\nc\n")

	res := runCLI(t, "", "--split", "--width", "60", from, to)

	assert.Equal(t, 1, res.code)
	var changed string
	for _, l := range strings.Split(res.stdout, "\n") {
		if strings.Contains(l, " b") && strings.Contains(l, " B") {
			changed = l
		}
	}
	require.NotEmpty(t, changed, res.stdout)
	assert.Contains(t, changed, splitDivider)
	for _, l := range strings.Split(strings.TrimSuffix(res.stdout, "\n"), "\n") {
		assert.LessOrEqual(t, ansi.StringWidth(l), 60)
	}
}

func TestMemoryLimitDoesNotChangeOutput(t *testing.T) {
	from, to := pair(t, "a\nb\nc\nd\ne\n", "b\nX\nd\ne\nf\n")

	table := runCLI(t, "", "--label", "x", "--label", "y", from, to)
	linear := runCLI(t, "", "--memory-limit", "1", "--label", "x", "--label", "y", from, to)

	assert.Equal(t, 1, table.code)
	assert.Equal(t, table.stdout, linear.stdout)
}

func TestVerify(t *testing.T) {
	if !util.Available("patch") && !util.Available("git") {
		t.Skip("neither patch nor git installed")
	}
	from, to := pair(t, "a\nb\nc\n", "a\nB\nc")

	res := runCLI(t, "", "--verify", from, to)

	assert.Equal(t, 1, res.code, res.stderr)
}

func TestGitLabels(t *testing.T) {
	if !util.Available("git") {
		t.Skip("git not installed")
	}
	dir := t.TempDir()
	_, err := util.Run(t.Context(), util.Cmd{Dir: dir, Name: "git", Args: []string{"init", "-q"}})
	require.NoError(t, err)
	from := writeFile(t, dir, "old.txt", "a\n")
	to := writeFile(t, dir, "new.txt", "b\n")

	res := runCLI(t, "", "--git", from, to)

	require.Equal(t, 1, res.code, res.stderr)
	assert.True(t, strings.HasPrefix(res.stdout, "--- a/old.txt\n+++ b/new.txt\n"), res.stdout)
}
