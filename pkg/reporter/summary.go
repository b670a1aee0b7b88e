package reporter

import (
	"bufio"
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/yaklabco/triviafmt/internal/ui/pretty"
	"github.com/yaklabco/triviafmt/pkg/runner"
)

// Table layout for the breakdown tables.
const (
	tableWidth    = 60
	labelColWidth = 40
	numColWidth   = 8
)

const markdownLabel = "markdown"

// padRight pads s to width. It must be applied before styling.
func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

// padLeft pads s to width on the left. It must be applied before styling.
func padLeft(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return strings.Repeat(" ", width-len(s)) + s
}

// SummaryReporter writes aggregate tables instead of per-file output.
type SummaryReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewSummaryReporter creates a new summary reporter.
func NewSummaryReporter(opts Options) *SummaryReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &SummaryReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// breakdownRow counts files under one label.
type breakdownRow struct {
	label   string
	files   int
	changed int
}

// Report implements Reporter.
func (r *SummaryReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil {
		result = &runner.Result{}
	}

	dialects, skips := breakdown(result)

	if len(dialects) > 0 {
		r.writeTable("Dialect", "Changed", dialects)
	}
	if len(skips) > 0 {
		r.writeTable("Skip reason", "", skips)
	}

	fmt.Fprint(r.bw, r.styles.FormatSummary(result.Stats))

	return pending(result), nil
}

// breakdown groups formatted files by dialect and skipped files by reason.
// Rows are ordered by file count, then label.
func breakdown(result *runner.Result) ([]breakdownRow, []breakdownRow) {
	byDialect := make(map[string]*breakdownRow)
	bySkip := make(map[string]*breakdownRow)

	add := func(rows map[string]*breakdownRow, label string, changed bool) {
		row, ok := rows[label]
		if !ok {
			row = &breakdownRow{label: label}
			rows[label] = row
		}
		row.files++
		if changed {
			row.changed++
		}
	}

	for _, file := range result.Files {
		res := file.Result
		if file.Error != nil || res == nil {
			continue
		}
		switch {
		case res.Skipped:
			add(bySkip, res.SkipReason, false)
		case res.Markdown:
			add(byDialect, markdownLabel, res.Changed)
		default:
			add(byDialect, res.Dialect.String(), res.Changed)
		}
	}

	return sortedRows(byDialect), sortedRows(bySkip)
}

func sortedRows(rows map[string]*breakdownRow) []breakdownRow {
	out := make([]breakdownRow, 0, len(rows))
	for _, row := range rows {
		out = append(out, *row)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].files != out[j].files {
			return out[i].files > out[j].files
		}
		return out[i].label < out[j].label
	})
	return out
}

// writeTable writes a label/count table. An empty changedHeader omits the
// changed column.
func (r *SummaryReporter) writeTable(labelHeader, changedHeader string, rows []breakdownRow) {
	header := padRight(labelHeader, labelColWidth) + padLeft("Files", numColWidth)
	if changedHeader != "" {
		header += padLeft(changedHeader, numColWidth)
	}
	fmt.Fprintln(r.bw, r.styles.Bold.Render(header))
	fmt.Fprintln(r.bw, r.styles.Dim.Render(strings.Repeat("-", tableWidth)))

	for _, row := range rows {
		line := padRight(row.label, labelColWidth) + padLeft(strconv.Itoa(row.files), numColWidth)
		fmt.Fprint(r.bw, line)
		if changedHeader != "" {
			changed := padLeft(strconv.Itoa(row.changed), numColWidth)
			if row.changed > 0 {
				changed = r.styles.Warning.Render(changed)
			}
			fmt.Fprint(r.bw, changed)
		}
		fmt.Fprintln(r.bw)
	}
	fmt.Fprintln(r.bw)
}
