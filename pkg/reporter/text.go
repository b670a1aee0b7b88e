package reporter

import (
	"bufio"
	"context"
	"fmt"

	"github.com/yaklabco/triviafmt/internal/ui/pretty"
	"github.com/yaklabco/triviafmt/pkg/runner"
)

// TextReporter writes one styled line per file of interest.
type TextReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewTextReporter creates a new text reporter.
func NewTextReporter(opts Options) *TextReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &TextReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *TextReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil || len(result.Files) == 0 {
		if r.opts.ShowSummary {
			fmt.Fprintln(r.bw, r.styles.Success.Render("No files to format."))
		}
		return 0, nil
	}

	for _, file := range result.Files {
		r.writeFile(file)
	}

	for _, err := range result.Errors {
		fmt.Fprintln(r.bw, r.styles.Error.Render("error: "+err.Error()))
	}

	if r.opts.ShowSummary {
		fmt.Fprint(r.bw, r.styles.FormatSummaryOneLine(result.Stats))
	}

	return pending(result), nil
}

func (r *TextReporter) writeFile(file runner.FileOutcome) {
	path := r.styles.FilePath.Render(r.opts.displayPath(file.Path))

	if file.Error != nil {
		fmt.Fprintf(r.bw, "%s: %s\n", path, r.styles.Error.Render(fmt.Sprintf("error: %v", file.Error)))
		return
	}

	res := file.Result
	if res == nil {
		return
	}

	switch {
	case res.Changed:
		status := r.styles.Status
		if res.Written {
			status = r.styles.Success
		}
		edits := len(res.Edits)
		word := "edits"
		if edits == 1 {
			word = "edit"
		}
		fmt.Fprintf(r.bw, "%s: %s %s\n", path, status.Render(res.Summary()),
			r.styles.Count.Render(fmt.Sprintf("(%d %s)", edits, word)))
	case r.opts.Verbose:
		fmt.Fprintf(r.bw, "%s: %s\n", path, r.styles.Dim.Render(res.Summary()))
	}
}
