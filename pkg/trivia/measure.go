package trivia

import (
	"strings"

	"github.com/yaklabco/triviafmt/pkg/position"
	"github.com/yaklabco/triviafmt/pkg/textutil"
)

// measure returns how far text moves a cursor starting at initialColumn.
func measure(initialColumn int, text string, tabSize int) position.Delta {
	if !textutil.ContainsLineBreak(text) {
		return position.Delta{
			Spaces:         textutil.Width(text, tabSize, initialColumn),
			WhitespaceOnly: textutil.IsBlank(text),
		}
	}

	last := textutil.LastLine(text)
	return position.Delta{
		Lines:          textutil.LineBreakCount(text),
		Spaces:         textutil.Width(last, tabSize, 0),
		WhitespaceOnly: textutil.IsBlank(last),
	}
}

// reindent shifts the indentation of every line after the first by delta
// columns. Blank lines are left alone.
func reindent(text string, delta int, opts textutil.Options) string {
	if delta == 0 {
		return text
	}

	lines := textutil.SplitLines(text)
	var builder strings.Builder
	builder.Grow(len(text) + len(lines)*max(delta, 0))
	builder.WriteString(lines[0])

	for _, line := range lines[1:] {
		body := textutil.TrimLineBreak(line)
		first := textutil.FirstNonWhitespace(body)
		if first < 0 {
			builder.WriteString(line)
			continue
		}
		width := textutil.Width(body[:first], opts.TabSize, 0)
		builder.WriteString(textutil.Indentation(max(0, width+delta), opts))
		builder.WriteString(line[first:])
	}

	return builder.String()
}
