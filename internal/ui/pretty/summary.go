package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yaklabco/triviafmt/pkg/runner"
)

const (
	summaryDividerWidth = 40
	wordFile            = "file"
	wordFiles           = "files"
)

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

// FormatSummaryOneLine formats run statistics as a single line.
// Example: "3 files need formatting (12 edits), 10 files checked, 1 skipped".
func (s *Styles) FormatSummaryOneLine(stats runner.Stats) string {
	checked := s.Dim.Render(fmt.Sprintf("%d %s checked",
		stats.FilesProcessed, plural(stats.FilesProcessed, wordFile, wordFiles)))

	var parts []string
	switch {
	case stats.FilesWritten > 0:
		parts = append(parts, s.Success.Render(fmt.Sprintf("%d %s formatted",
			stats.FilesWritten, plural(stats.FilesWritten, wordFile, wordFiles))))
	case stats.FilesChanged > 0:
		msg := fmt.Sprintf("%d %s formatting", stats.FilesChanged,
			plural(stats.FilesChanged, "file needs", "files need"))
		parts = append(parts, s.Warning.Render(msg)+
			s.Dim.Render(fmt.Sprintf(" (%d %s)", stats.Edits, plural(stats.Edits, "edit", "edits"))))
	default:
		parts = append(parts, s.Success.Render("All files formatted"))
	}

	parts = append(parts, checked)

	if stats.FilesSkipped > 0 {
		parts = append(parts, s.Dim.Render(fmt.Sprintf("%d skipped", stats.FilesSkipped)))
	}
	if stats.FilesErrored > 0 {
		parts = append(parts, s.Error.Render(fmt.Sprintf("%d failed", stats.FilesErrored)))
	}

	return strings.Join(parts, ", ") + "\n"
}

// FormatSummary formats run statistics as a summary block.
func (s *Styles) FormatSummary(stats runner.Stats) string {
	var builder strings.Builder

	row := func(label string, style func(...string) string, value int) {
		builder.WriteString(fmt.Sprintf("  %-19s", label+":") + style(strconv.Itoa(value)) + "\n")
	}

	builder.WriteString("\n")
	builder.WriteString(s.SummaryTitle.Render("Summary"))
	builder.WriteString("\n")
	builder.WriteString(strings.Repeat("-", summaryDividerWidth))
	builder.WriteString("\n")

	row("Files discovered", s.SummaryValue.Render, stats.FilesDiscovered)
	row("Files checked", s.SummaryValue.Render, stats.FilesProcessed)
	if stats.FilesSkipped > 0 {
		row("Files skipped", s.Dim.Render, stats.FilesSkipped)
	}
	if stats.FilesChanged > 0 {
		row("Needs formatting", s.Warning.Render, stats.FilesChanged)
		row("Edits", s.SummaryValue.Render, stats.Edits)
	}
	if stats.FilesWritten > 0 {
		row("Files written", s.Success.Render, stats.FilesWritten)
	}
	if stats.BackupsCreated > 0 {
		row("Backups created", s.SummaryValue.Render, stats.BackupsCreated)
	}
	if stats.FilesErrored > 0 {
		row("Files failed", s.Error.Render, stats.FilesErrored)
	}

	builder.WriteString("\n")

	switch {
	case stats.FilesErrored > 0:
		builder.WriteString(s.Failure.Render("Formatting failed"))
	case stats.FilesChanged > stats.FilesWritten:
		builder.WriteString(s.Warning.Render("Formatting needed"))
	default:
		builder.WriteString(s.Success.Render("Formatting clean"))
	}
	builder.WriteString("\n")

	return builder.String()
}
