package trivia

import (
	"slices"

	"github.com/yaklabco/triviafmt/pkg/position"
	"github.com/yaklabco/triviafmt/pkg/syntax"
	"github.com/yaklabco/triviafmt/pkg/textutil"
)

// FormatToTrivia returns the formatted trivia for the gap. When the gap
// cannot be formatted the original trailing and leading trivia are returned
// unchanged.
func (f *Formatter) FormatToTrivia() []syntax.Trivia {
	f.succeeded = true

	out := make([]syntax.Trivia, 0, NewList(f.gap.Token1, f.gap.Token2).Len()+f.gap.LineBreaks)
	lc := walk(f, materializer[syntax.Trivia]{
		format:           f.formatNode,
		appendWhitespace: f.appendWhitespaceNodes,
	}, &out)

	out = f.addExtraLineNodes(lc.Line, out)

	if !f.succeeded {
		return NewList(f.gap.Token1, f.gap.Token2).Items()
	}
	return out
}

func (f *Formatter) formatNode(lc position.LineColumn, item syntax.Trivia, out *[]syntax.Trivia) position.Delta {
	text, ok := f.formatItem(lc, item)
	if !ok {
		f.succeeded = false
	}
	item.Text = text
	*out = append(*out, item)
	return measure(lc.Column, text, f.tabSize())
}

func (f *Formatter) appendWhitespaceNodes(run whitespaceRun, out *[]syntax.Trivia) {
	if run.keep {
		*out = append(*out, run.original...)
		return
	}

	if !run.delta.ForceUpdate && syntax.Render(run.original) == f.whitespaceText(run) {
		*out = append(*out, run.original...)
		return
	}

	for range run.delta.Lines {
		*out = append(*out, syntax.EndOfLine(f.gap.Options.Newline))
	}
	if run.delta.Spaces <= 0 {
		return
	}
	if run.delta.Lines > 0 || run.lineColumn.Column == 0 {
		*out = append(*out, syntax.Whitespace(textutil.Indentation(run.delta.Spaces, f.gap.Options)))
		return
	}
	*out = append(*out, syntax.Whitespace(textutil.Spaces(run.delta.Spaces)))
}

// addExtraLineNodes inserts the line breaks still missing to reach the
// requested count.
func (f *Formatter) addExtraLineNodes(lines int, out []syntax.Trivia) []syntax.Trivia {
	if lines >= f.gap.LineBreaks {
		return out
	}

	extra := make([]syntax.Trivia, 0, f.gap.LineBreaks-lines)
	for range f.gap.LineBreaks - lines {
		extra = append(extra, syntax.EndOfLine(f.gap.Options.Newline))
	}
	return slices.Insert(out, f.insertionIndex(out), extra...)
}

func (f *Formatter) insertionIndex(out []syntax.Trivia) int {
	if f.firstLineBlank || len(out) == 0 {
		return 0
	}
	for i := len(out) - 1; i >= 0; i-- {
		if out[i].IsEndOfLine() {
			return i + 1
		}
	}
	for i := len(out) - 1; i >= 0; i-- {
		if textutil.ContainsLineBreak(out[i].Text) {
			return i + 1
		}
	}
	return 0
}
