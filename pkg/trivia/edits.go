package trivia

import (
	"slices"
	"strings"

	"github.com/yaklabco/triviafmt/pkg/fix"
	"github.com/yaklabco/triviafmt/pkg/position"
	"github.com/yaklabco/triviafmt/pkg/syntax"
	"github.com/yaklabco/triviafmt/pkg/textutil"
)

// anchor is a place in the formatted gap where missing line breaks can go:
// an offset of the original text, or an offset into the new text of an edit.
type anchor struct {
	edit   int
	offset int
}

var noAnchor = anchor{edit: -2}

func (a anchor) ok() bool {
	return a.edit >= -1
}

// FormatToEdits returns the edits that turn the original gap into its
// formatted form, ordered by position. Ranges whose text is already right get
// no edit. When the gap cannot be formatted no edits are returned.
func (f *Formatter) FormatToEdits() []fix.TextEdit {
	f.succeeded = true
	f.afterLineBreak, f.afterMultiLine = noAnchor, noAnchor

	var out []fix.TextEdit
	lc := walk(f, materializer[fix.TextEdit]{
		format:           f.formatEdit,
		appendWhitespace: f.appendWhitespaceEdit,
	}, &out)

	out = f.addExtraLineEdits(lc.Line, out)

	if !f.succeeded {
		return nil
	}
	return out
}

func (f *Formatter) formatEdit(lc position.LineColumn, item syntax.Trivia, out *[]fix.TextEdit) position.Delta {
	text, ok := f.formatItem(lc, item)
	if !ok {
		f.succeeded = false
	}
	if text != item.Text {
		*out = append(*out, fix.TextEdit{
			StartOffset: item.Span.Start,
			EndOffset:   item.Span.End,
			NewText:     text,
		})
	}
	if textutil.ContainsLineBreak(text) {
		f.afterMultiLine = anchor{edit: -1, offset: item.Span.End}
	}
	return measure(lc.Column, text, f.tabSize())
}

func (f *Formatter) appendWhitespaceEdit(run whitespaceRun, out *[]fix.TextEdit) {
	if !run.keep {
		text := f.whitespaceText(run)
		if text != f.originalText(run.span) {
			*out = append(*out, fix.TextEdit{
				StartOffset: run.span.Start,
				EndOffset:   run.span.End,
				NewText:     text,
			})
			if run.delta.Lines > 0 {
				f.afterLineBreak = anchor{edit: len(*out) - 1, offset: run.delta.Lines * len(f.gap.Options.Newline)}
			}
			return
		}
	}

	for _, item := range run.original {
		if item.IsEndOfLine() {
			f.afterLineBreak = anchor{edit: -1, offset: item.Span.End}
		}
	}
}

// addExtraLineEdits adds the line breaks still missing to reach the
// requested count. They go where node output would put them: after the last
// line break, else after the last item spanning lines, else at the start.
func (f *Formatter) addExtraLineEdits(lines int, edits []fix.TextEdit) []fix.TextEdit {
	if lines >= f.gap.LineBreaks {
		return edits
	}

	text := strings.Repeat(f.gap.Options.Newline, f.gap.LineBreaks-lines)

	at := anchor{edit: -1, offset: f.start}
	switch {
	case f.firstLineBlank || f.renderedLen(edits) == 0:
	case f.afterLineBreak.ok():
		at = f.afterLineBreak
	case f.afterMultiLine.ok():
		at = f.afterMultiLine
	}

	if at.edit >= 0 {
		edit := &edits[at.edit]
		edit.NewText = edit.NewText[:at.offset] + text + edit.NewText[at.offset:]
		return edits
	}

	offset := at.offset
	for i := range edits {
		edit := &edits[i]
		if !edit.Touches(offset) || !(edit.IsInsertion() || edit.IsWhitespaceOnly()) {
			continue
		}
		if offset == edit.EndOffset && offset != edit.StartOffset {
			edit.NewText += text
		} else {
			edit.NewText = text + edit.NewText
		}
		return edits
	}

	idx := slices.IndexFunc(edits, func(e fix.TextEdit) bool { return e.StartOffset >= offset })
	if idx < 0 {
		idx = len(edits)
	}
	return slices.Insert(edits, idx, fix.TextEdit{StartOffset: offset, EndOffset: offset, NewText: text})
}

// renderedLen returns the length of the gap text once edits are applied.
func (f *Formatter) renderedLen(edits []fix.TextEdit) int {
	n := len(f.gap.Original)
	for _, edit := range edits {
		n += len(edit.NewText) - edit.Len()
	}
	return n
}
