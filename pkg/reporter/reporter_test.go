package reporter_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/triviafmt/pkg/fix"
	"github.com/yaklabco/triviafmt/pkg/format"
	"github.com/yaklabco/triviafmt/pkg/reporter"
	"github.com/yaklabco/triviafmt/pkg/runner"
	"github.com/yaklabco/triviafmt/pkg/syntax"
)

// sampleResult has one file needing formatting, one clean file, one skipped
// file and one failure.
func sampleResult() *runner.Result {
	original := []byte("int  x;\n")
	formatted := []byte("int x;\n")

	return &runner.Result{
		Files: []runner.FileOutcome{
			{Path: "a.c", Result: &format.Result{
				Path:      "a.c",
				Dialect:   syntax.DialectC,
				Changed:   true,
				Formatted: formatted,
				Edits:     []fix.TextEdit{{StartOffset: 3, EndOffset: 5, NewText: " "}},
				Diff:      fix.GenerateDiff("a.c", original, formatted),
			}},
			{Path: "b.bas", Result: &format.Result{Path: "b.bas", Dialect: syntax.DialectBasic}},
			{Path: "c.c", Result: &format.Result{Path: "c.c", Skipped: true, SkipReason: format.SkipBinary}},
			{Path: "d.c", Error: errors.New("permission denied")},
		},
		Stats: runner.Stats{
			FilesDiscovered: 4,
			FilesProcessed:  3,
			FilesSkipped:    1,
			FilesErrored:    1,
			FilesChanged:    1,
			Edits:           1,
		},
	}
}

func newReporter(t *testing.T, buf *bytes.Buffer, f reporter.Format, mutate ...func(*reporter.Options)) reporter.Reporter {
	t.Helper()

	opts := reporter.Options{Writer: buf, Format: f, Color: "never", ShowSummary: true}
	for _, m := range mutate {
		m(&opts)
	}
	rep, err := reporter.New(opts)
	require.NoError(t, err)
	return rep
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    reporter.Format
		wantErr bool
	}{
		{name: "empty defaults to text", input: "", want: reporter.FormatText},
		{name: "text", input: "text", want: reporter.FormatText},
		{name: "json", input: "json", want: reporter.FormatJSON},
		{name: "diff", input: "diff", want: reporter.FormatDiff},
		{name: "summary", input: "summary", want: reporter.FormatSummary},
		{name: "unknown format", input: "sarif", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := reporter.ParseFormat(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.True(t, got.IsValid())
		})
	}

	assert.False(t, reporter.Format("").IsValid())
}

func TestNew(t *testing.T) {
	for _, f := range []reporter.Format{reporter.FormatText, reporter.FormatJSON, reporter.FormatDiff, reporter.FormatSummary, ""} {
		rep, err := reporter.New(reporter.Options{Writer: &bytes.Buffer{}, Format: f})
		require.NoError(t, err, "format %q", f)
		assert.NotNil(t, rep)
	}

	_, err := reporter.New(reporter.Options{Format: "xml"})
	require.Error(t, err)
}

func TestDefaultOptions(t *testing.T) {
	opts := reporter.DefaultOptions()

	assert.NotNil(t, opts.Writer)
	assert.NotNil(t, opts.ErrorWriter)
	assert.Equal(t, reporter.FormatText, opts.Format)
	assert.Equal(t, "auto", opts.Color)
	assert.True(t, opts.ShowSummary)
	assert.False(t, opts.Verbose)
}

func TestTextReporter_NilResult(t *testing.T) {
	var buf bytes.Buffer
	count, err := newReporter(t, &buf, reporter.FormatText).Report(context.Background(), nil)

	require.NoError(t, err)
	assert.Equal(t, 0, count)
	assert.Contains(t, buf.String(), "No files to format.")
}

func TestTextReporter(t *testing.T) {
	var buf bytes.Buffer
	count, err := newReporter(t, &buf, reporter.FormatText).Report(context.Background(), sampleResult())

	require.NoError(t, err)
	assert.Equal(t, 1, count)

	out := buf.String()
	assert.Contains(t, out, "a.c: needs formatting (1 edit)")
	assert.Contains(t, out, "d.c: error: permission denied")
	assert.NotContains(t, out, "b.bas", "clean files are listed only when verbose")
	assert.Contains(t, out, "1 file needs formatting")
}

func TestTextReporter_Verbose(t *testing.T) {
	var buf bytes.Buffer
	rep := newReporter(t, &buf, reporter.FormatText, func(o *reporter.Options) {
		o.Verbose = true
		o.ShowSummary = false
	})

	_, err := rep.Report(context.Background(), sampleResult())
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "b.bas: ok")
	assert.Contains(t, out, "c.c: skipped: binary file")
	assert.NotContains(t, out, "checked")
}

func TestTextReporter_Written(t *testing.T) {
	result := sampleResult()
	result.Files[0].Result.Written = true
	result.Files[0].Result.BackupCreated = true

	var buf bytes.Buffer
	count, err := newReporter(t, &buf, reporter.FormatText).Report(context.Background(), result)

	require.NoError(t, err)
	assert.Equal(t, 0, count, "written files are no longer pending")
	assert.Contains(t, buf.String(), "a.c: formatted (backup created)")
}

func TestTextReporter_WorkingDir(t *testing.T) {
	result := &runner.Result{Files: []runner.FileOutcome{
		{Path: "/work/src/a.c", Result: &format.Result{Changed: true}},
	}}

	var buf bytes.Buffer
	rep := newReporter(t, &buf, reporter.FormatText, func(o *reporter.Options) { o.WorkingDir = "/work" })
	_, err := rep.Report(context.Background(), result)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(buf.String(), "src/a.c: "), buf.String())
}

func TestJSONReporter(t *testing.T) {
	var buf bytes.Buffer
	count, err := newReporter(t, &buf, reporter.FormatJSON).Report(context.Background(), sampleResult())
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	var out reporter.JSONOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))

	assert.Equal(t, "1.0.0", out.Version)
	require.Len(t, out.Files, 4)

	changed := out.Files[0]
	assert.Equal(t, "c", changed.Dialect)
	assert.True(t, changed.Changed)
	require.Len(t, changed.Edits, 1)
	assert.Equal(t, reporter.JSONEdit{StartOffset: 3, EndOffset: 5, NewText: " "}, changed.Edits[0])

	assert.Equal(t, "basic", out.Files[1].Dialect)
	assert.True(t, out.Files[2].Skipped)
	assert.Equal(t, format.SkipBinary, out.Files[2].SkipReason)
	assert.Equal(t, "permission denied", out.Files[3].Error)

	assert.Equal(t, 4, out.Summary.FilesDiscovered)
	assert.Equal(t, 1, out.Summary.FilesChanged)
	assert.Equal(t, 1, out.Summary.FilesErrored)
}

func TestJSONReporter_NilResult(t *testing.T) {
	var buf bytes.Buffer
	_, err := newReporter(t, &buf, reporter.FormatJSON).Report(context.Background(), nil)
	require.NoError(t, err)

	var out reporter.JSONOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	assert.NotNil(t, out.Files)
	assert.Empty(t, out.Files)
}

func TestJSONReporter_Compact(t *testing.T) {
	var buf bytes.Buffer
	rep := newReporter(t, &buf, reporter.FormatJSON, func(o *reporter.Options) { o.Compact = true })

	_, err := rep.Report(context.Background(), sampleResult())
	require.NoError(t, err)

	assert.Equal(t, 1, strings.Count(buf.String(), "\n"), "compact output is a single line")
}

func TestDiffReporter(t *testing.T) {
	var buf bytes.Buffer
	count, err := newReporter(t, &buf, reporter.FormatDiff).Report(context.Background(), sampleResult())
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	out := buf.String()
	assert.Contains(t, out, "diff --git a/a.c b/a.c")
	assert.Contains(t, out, "--- a/a.c\n+++ b/a.c\n")
	assert.Contains(t, out, "@@ -1,1 +1,1 @@")
	assert.Contains(t, out, "-int  x;\n+int x;\n")
	assert.Contains(t, out, "d.c: error: permission denied")
	assert.Contains(t, out, "1 file changed, 1 insertion(+), 1 deletion(-)")
}

func TestDiffReporter_NoDiffs(t *testing.T) {
	result := &runner.Result{Files: []runner.FileOutcome{
		{Path: "b.bas", Result: &format.Result{Path: "b.bas"}},
	}}

	var buf bytes.Buffer
	count, err := newReporter(t, &buf, reporter.FormatDiff).Report(context.Background(), result)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
	assert.Empty(t, buf.String())
}

func TestSummaryReporter(t *testing.T) {
	result := sampleResult()
	result.Files = append(result.Files, runner.FileOutcome{
		Path:   "README.md",
		Result: &format.Result{Path: "README.md", Markdown: true, Changed: true},
	})

	var buf bytes.Buffer
	count, err := newReporter(t, &buf, reporter.FormatSummary).Report(context.Background(), result)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	out := buf.String()
	assert.Contains(t, out, "Dialect")
	assert.Contains(t, out, "markdown")
	assert.Contains(t, out, "basic")
	assert.Contains(t, out, "Skip reason")
	assert.Contains(t, out, format.SkipBinary)
	assert.Contains(t, out, "Formatting failed")
}

func TestSummaryReporter_NilResult(t *testing.T) {
	var buf bytes.Buffer
	count, err := newReporter(t, &buf, reporter.FormatSummary).Report(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
	assert.Contains(t, buf.String(), "Formatting clean")
	assert.NotContains(t, buf.String(), "Dialect")
}
