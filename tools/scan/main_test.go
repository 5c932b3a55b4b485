package main

import (
	"bytes"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/macshonle/go-wiktscan"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Cleanup(func() {
		scanCmd.Flags().VisitAll(func(f *pflag.Flag) { f.Changed = false })
		configPath = ""
	})
	var stderr bytes.Buffer
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return stderr.String(), err
}

func TestScanCommand(t *testing.T) {
	out := filepath.Join(t.TempDir(), "senses.jsonl")
	report, err := runCLI(t, "scan", "../../testdata/pages.xml.bz2", out,
		"--strategy", "channel", "--workers", "2", "--log-level", "error")
	require.NoError(t, err)

	b, err := os.ReadFile(out)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(b)), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], `"id":"happiness"`)
	assert.Contains(t, lines[2], `"id":"cats"`)

	assert.Contains(t, report, "Strategy: channel")
	assert.Contains(t, report, "Words written: 2")
}

func TestScanCommandMultistream(t *testing.T) {
	out := filepath.Join(t.TempDir(), "senses.jsonl")
	report, err := runCLI(t, "scan", "../../testdata/pages-multistream.xml.bz2", out,
		"--index", "../../testdata/pages-multistream-index.txt.bz2",
		"--limit", "1", "--quiet", "--log-level", "error")
	require.NoError(t, err)
	assert.Empty(t, report)

	b, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(string(b), "\n"))
}

func TestScanCommandErrors(t *testing.T) {
	dir := t.TempDir()
	_, err := runCLI(t, "scan", filepath.Join(dir, "missing.xml"), filepath.Join(dir, "out.jsonl"),
		"--log-level", "error")
	assert.ErrorContains(t, err, "opening input")

	_, err = runCLI(t, "scan", "../../testdata/pages.xml", filepath.Join(dir, "out.jsonl"),
		"--strategy", "quantum")
	assert.Error(t, err)

	_, err = runCLI(t, "scan", "../../testdata/pages.xml")
	assert.Error(t, err)
}

func TestProgressFor(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	assert.Nil(t, progressFor(&Config{Quiet: true}, log))
	assert.NotNil(t, progressFor(&Config{}, log))
}

func TestScanInputs(t *testing.T) {
	inputs := []string{"../../testdata/pages.xml", "../../testdata/pages.xml.bz2"}
	quiet := slog.New(slog.NewTextHandler(io.Discard, nil))

	var out bytes.Buffer
	stats, err := scanInputs(t.Context(), inputs, "", &out, wiktscan.Config{Logger: quiet})
	require.NoError(t, err)
	assert.EqualValues(t, 10, stats.PagesProcessed)
	assert.EqualValues(t, 4, stats.WordsWritten)
	assert.EqualValues(t, 6, stats.SensesWritten)
	assert.EqualValues(t, 2, stats.Redirects)
	assert.False(t, stats.LimitReached)
	assert.Equal(t, 6, strings.Count(out.String(), "\n"))

	// The limit spans inputs: the second one stops after one sense.
	out.Reset()
	stats, err = scanInputs(t.Context(), inputs, "", &out, wiktscan.Config{Logger: quiet, Limit: 4})
	require.NoError(t, err)
	assert.True(t, stats.LimitReached)
	assert.EqualValues(t, 4, stats.SensesWritten)
	assert.Equal(t, 4, strings.Count(out.String(), "\n"))

	// So does the page limit.
	out.Reset()
	stats, err = scanInputs(t.Context(), inputs, "", &out, wiktscan.Config{Logger: quiet, PageLimit: 7})
	require.NoError(t, err)
	assert.EqualValues(t, 7, stats.PagesProcessed)
}

func TestScanCommandManyInputs(t *testing.T) {
	out := filepath.Join(t.TempDir(), "senses.jsonl")
	report, err := runCLI(t, "scan", "../../testdata/pages.xml", "../../testdata/pages.xml.bz2", out,
		"--log-level", "error")
	require.NoError(t, err)
	assert.Contains(t, report, "Words written: 4")

	_, err = runCLI(t, "scan", "../../testdata/pages.xml", "../../testdata/pages.xml.bz2", out,
		"--index", "../../testdata/pages-multistream-index.txt", "--log-level", "error")
	assert.ErrorContains(t, err, "single input")
}
