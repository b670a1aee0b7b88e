package trivia

import (
	"fmt"

	"github.com/yaklabco/triviafmt/pkg/position"
	"github.com/yaklabco/triviafmt/pkg/rules"
	"github.com/yaklabco/triviafmt/pkg/syntax"
	"github.com/yaklabco/triviafmt/pkg/textutil"
)

// Formatter formats the trivia of a single gap.
type Formatter struct {
	host Host
	gap  Gap

	start int
	end   int

	initial        position.LineColumn
	indentation    int
	firstLineBlank bool

	succeeded bool

	// Where text-edit output last broke a line.
	afterLineBreak anchor
	afterMultiLine anchor
}

// New prepares a formatter for gap.
//
// New panics when host is nil, when both boundary tokens are absent, or when
// the requested line breaks or spaces are negative.
func New(host Host, gap Gap) *Formatter {
	switch {
	case host == nil:
		panic("trivia: nil host")
	case gap.Token1.IsZero() && gap.Token2.IsZero():
		panic("trivia: both boundary tokens are absent")
	case gap.LineBreaks < 0:
		panic(fmt.Sprintf("trivia: negative line breaks %d", gap.LineBreaks))
	case gap.Spaces < 0:
		panic(fmt.Sprintf("trivia: negative spaces %d", gap.Spaces))
	}

	gap.Options = gap.Options.Normalize()

	f := &Formatter{
		host:        host,
		gap:         gap,
		start:       gap.StartPosition(),
		end:         gap.EndPosition(),
		indentation: -1,
		succeeded:   true,
	}
	f.initial = f.initialLineColumn()
	if gap.LineBreaks > 0 {
		f.indentation = f.lastLineIndentation()
	}
	f.firstLineBlank = f.isFirstLineBlank()

	return f
}

// Gap returns the gap being formatted.
func (f *Formatter) Gap() Gap {
	return f.gap
}

// InitialLineColumn returns the cursor at the end of Token1.
func (f *Formatter) InitialLineColumn() position.LineColumn {
	return f.initial
}

// Succeeded reports whether the last format call produced formatted output
// rather than falling back to the original trivia.
func (f *Formatter) Succeeded() bool {
	return f.succeeded
}

func (f *Formatter) tabSize() int {
	return f.gap.Options.TabSize
}

// initialLineColumn measures where Token1 ends on its line.
func (f *Formatter) initialLineColumn() position.LineColumn {
	token := f.gap.Token1
	if token.IsZero() {
		return position.LineColumn{WhitespaceOnly: true}
	}

	last := textutil.LastLine(token.Text)
	if last != token.Text {
		return position.LineColumn{Column: textutil.Width(last, f.tabSize(), 0)}
	}

	column := f.host.Column(token.Span.Start)
	return position.LineColumn{Column: column + textutil.Width(token.Text, f.tabSize(), column)}
}

// lastLineIndentation returns the column content on the last line of the
// original gap must start at so that Token2 lands on the requested column.
func (f *Formatter) lastLineIndentation() int {
	last := textutil.LastLine(f.gap.Original)
	initialColumn := 0
	if last == f.gap.Original {
		initialColumn = f.initial.Column
	}

	index := textutil.FirstNonWhitespace(last)
	if index < 0 {
		return f.gap.Spaces
	}

	contentColumn := textutil.ConvertTabToSpace(last, f.tabSize(), initialColumn, index)
	tokenColumn := textutil.ConvertTabToSpace(last, f.tabSize(), initialColumn, len(last))

	return f.gap.Spaces - (tokenColumn - contentColumn)
}

func (f *Formatter) isFirstLineBlank() bool {
	if trailing := f.gap.Token1.Trailing; len(trailing) > 0 && trailing[0].Elastic {
		return true
	}
	return textutil.IsBlank(textutil.FirstLine(f.gap.Original))
}

// whitespaceRun is the resolved whitespace between two content items.
type whitespaceRun struct {
	// lineColumn is the cursor where the whitespace begins.
	lineColumn position.LineColumn
	delta      position.Delta
	span       syntax.Span

	// original holds the whitespace items the run replaces.
	original []syntax.Trivia

	// keep leaves the original whitespace untouched.
	keep bool
}

// materializer turns walk decisions into output elements of type T.
type materializer[T any] struct {
	format           func(lc position.LineColumn, item syntax.Trivia, out *[]T) position.Delta
	appendWhitespace func(run whitespaceRun, out *[]T)
}

// walk formats the gap and returns the cursor at Token2.
func walk[T any](f *Formatter, m materializer[T], out *[]T) position.LineColumn {
	lc := f.initial
	existing := position.Empty()
	var (
		previous           syntax.Trivia
		previousWhitespace syntax.Trivia
		pending            []syntax.Trivia
		implicitLineBreak  bool
		continuationColumn = -1
	)

	for _, item := range NewList(f.gap.Token1, f.gap.Token2).All() {
		if item.IsZero() || (item.Text == "" && !item.Elastic) {
			continue
		}

		if item.IsWhitespaceOrEndOfLine() {
			existing = existing.With(f.whitespaceDelta(lc, previous, previousWhitespace, existing, item))
			if item.IsEndOfLine() {
				implicitLineBreak = false
				continuationColumn = -1
			}
			previousWhitespace = item
			pending = append(pending, item)
			continue
		}

		previousWhitespace = syntax.Trivia{}

		if existing.Lines == 0 && f.host.IsLineContinuationThenComment(previous, item) {
			continuationColumn = lc.Column
		}

		lc = formatPair(f, m, lc, previous, existing, pending, item, implicitLineBreak, out)

		if continuationColumn >= 0 {
			if lc.Column > continuationColumn {
				lc.Column = continuationColumn
			}
			continuationColumn = -1
		}

		implicitLineBreak = implicitLineBreak || f.host.ContainsImplicitLineBreak(item)
		existing = position.Empty()
		pending = nil
		previous = item
	}

	return formatPair(f, m, lc, previous, existing, pending, syntax.Trivia{}, implicitLineBreak, out)
}

// formatPair formats trivia1 and the whitespace between it and trivia2, and
// returns the cursor where trivia2 begins.
func formatPair[T any](
	f *Formatter,
	m materializer[T],
	before position.LineColumn,
	trivia1 syntax.Trivia,
	existing position.Delta,
	pending []syntax.Trivia,
	trivia2 syntax.Trivia,
	implicitLineBreak bool,
	out *[]T,
) position.LineColumn {
	after := before
	if !trivia1.IsZero() {
		after = before.With(m.format(before, trivia1, out))
	}

	rule := f.overallRule(trivia1, existing, implicitLineBreak, trivia2)
	delta, keep := f.apply(before, trivia1, after, existing, trivia2, rule)

	m.appendWhitespace(whitespaceRun{
		lineColumn: after,
		delta:      delta,
		span:       f.textSpan(trivia1, trivia2),
		original:   pending,
		keep:       keep,
	}, out)

	return after.With(delta)
}

// whitespaceDelta measures one whitespace or line break item.
func (f *Formatter) whitespaceDelta(
	lc position.LineColumn,
	previous, previousWhitespace syntax.Trivia,
	existing position.Delta,
	item syntax.Trivia,
) position.Delta {
	if item.Elastic {
		if previousWhitespace.Elastic || previousWhitespace.IsEndOfLine() {
			return position.Empty()
		}

		afterPrevious := f.lineColumnAfter(lc, previous)
		brokenAlready := existing.Lines > 0 || afterPrevious.AtLineStart()
		if brokenAlready && existing.WhitespaceOnly {
			return position.Empty()
		}

		return position.Delta{Lines: 1, WhitespaceOnly: true, ForceUpdate: true}
	}

	if item.IsEndOfLine() {
		return position.Delta{Lines: 1, WhitespaceOnly: true}
	}

	column := f.lineColumnAfter(lc, previous).With(existing).Column
	return position.Delta{
		Spaces:         textutil.Width(item.Text, f.tabSize(), column),
		WhitespaceOnly: true,
	}
}

func (f *Formatter) lineColumnAfter(lc position.LineColumn, item syntax.Trivia) position.LineColumn {
	if item.IsZero() {
		return lc
	}
	return lc.With(measure(lc.Column, item.Text, f.tabSize()))
}

// overallRule refines the host's rule with token-level operations declared
// at the edges of the gap or of structured trivia.
func (f *Formatter) overallRule(trivia1 syntax.Trivia, existing position.Delta, implicitLineBreak bool, trivia2 syntax.Trivia) rules.LineColumnRule {
	defaultRule := f.host.RuleBetween(f.gap, trivia1, existing, implicitLineBreak, trivia2)

	token1, token2 := f.edgeTokens(trivia1, trivia2)
	if token1.IsZero() || token2.IsZero() {
		return defaultRule
	}

	lineOp, hasLineOp := f.host.LineOperation(token1, token2)
	if existing.Lines != 0 && !hasLineOp {
		return defaultRule
	}

	if hasLineOp {
		switch lineOp.Kind {
		case rules.PreserveLines:
			if existing.Lines != 0 {
				return defaultRule.WithLines(lineOp.Lines, rules.LinePreserve)
			}
		case rules.ForceLines:
			return defaultRule.WithLines(lineOp.Lines, rules.LineForce)
		case rules.ForceLinesIfOnSingleLine:
			if f.host.TokensOnSameLine(token1, token2) {
				return defaultRule.WithLines(lineOp.Lines, rules.LineForce)
			}
		}
	}

	spaceOp, ok := f.host.SpaceOperation(token1, token2)
	if !ok || spaceOp.IsConventionalSingleSpace() {
		return defaultRule
	}

	return defaultRule.WithSpaces(spaceOp.Spaces)
}

// edgeTokens returns the tokens governing the sub-gap between trivia1 and
// trivia2: the boundary tokens at the gap edges, or the edge tokens of
// structured trivia when nothing but whitespace separates them from the
// sub-gap.
func (f *Formatter) edgeTokens(trivia1, trivia2 syntax.Trivia) (syntax.Token, syntax.Token) {
	var token1, token2 syntax.Token

	switch {
	case trivia1.IsZero():
		token1 = f.gap.Token1
	case trivia1.HasStructure():
		if last, ok := trivia1.Structure.LastToken(); ok && syntax.OnlyWhitespace(last.Trailing) {
			token1 = last
		}
	}

	switch {
	case trivia2.IsZero():
		token2 = f.gap.Token2
	case trivia2.HasStructure():
		if first, ok := trivia2.Structure.FirstToken(); ok && syntax.OnlyWhitespace(first.Leading) {
			token2 = first
		}
	}

	return token1, token2
}

// apply computes the whitespace delta a rule asks for. The second result is
// true when the original whitespace must be kept verbatim.
func (f *Formatter) apply(
	before position.LineColumn,
	trivia1 syntax.Trivia,
	after position.LineColumn,
	existing position.Delta,
	trivia2 syntax.Trivia,
	rule rules.LineColumnRule,
) (position.Delta, bool) {
	// Whitespace next to a missing token belongs to error recovery.
	if (f.gap.Token1.Missing && trivia1.IsZero()) || (trivia2.IsZero() && f.gap.Token2.Missing) {
		return existing, true
	}

	return position.Delta{
		Lines:          ruleLines(rule, after, existing),
		Spaces:         f.ruleSpaces(before, after, existing, trivia2, rule),
		WhitespaceOnly: true,
		ForceUpdate:    existing.ForceUpdate,
	}, false
}

func ruleLines(rule rules.LineColumnRule, after position.LineColumn, existing position.Delta) int {
	trailing := 0
	if after.AtLineStart() {
		trailing = 1
	}

	lines := max(0, rule.Lines-trailing)
	if rule.LineOp == rules.LinePreserve {
		return max(lines, existing.Lines)
	}
	return lines
}

func (f *Formatter) ruleSpaces(
	before, after position.LineColumn,
	existing position.Delta,
	trivia2 syntax.Trivia,
	rule rules.LineColumnRule,
) int {
	if rule.Lines > 0 || after.With(existing).WhitespaceOnly {
		switch rule.IndentOp {
		case rules.IndentAbsolute:
			return max(0, rule.Indentation)
		case rules.IndentDefault:
			pos := f.end
			if !trivia2.IsZero() {
				pos = trivia2.Span.Start
			}
			return max(0, f.host.BaseIndentation(pos))
		case rules.IndentGiven:
			if trivia2.IsZero() {
				return f.gap.Spaces
			}
			return max(0, f.indentation)
		case rules.IndentFollow:
			return max(0, before.Column)
		default:
			return existing.Spaces
		}
	}

	if rule.SpaceOp == rules.SpaceForce {
		return max(rule.Spaces, 0)
	}
	return max(rule.Spaces, existing.Spaces)
}

// textSpan returns the source range of the whitespace between two items.
func (f *Formatter) textSpan(trivia1, trivia2 syntax.Trivia) syntax.Span {
	span := syntax.Span{Start: f.start, End: f.end}
	if !trivia1.IsZero() {
		span.Start = trivia1.Span.End
	}
	if !trivia2.IsZero() {
		span.End = trivia2.Span.Start
	}
	return span
}

// originalText returns the original text of a span inside the gap.
func (f *Formatter) originalText(span syntax.Span) string {
	lo := min(max(span.Start-f.start, 0), len(f.gap.Original))
	hi := min(max(span.End-f.start, lo), len(f.gap.Original))
	return f.gap.Original[lo:hi]
}

// formatItem renders one content item at lc. The second result is false for
// items that cannot be formatted.
func (f *Formatter) formatItem(lc position.LineColumn, item syntax.Trivia) (string, bool) {
	switch {
	case item.Kind == syntax.TriviaSkipped:
		return item.Text, false
	case item.IsMultiLineComment(), item.Kind == syntax.TriviaDocComment && textutil.ContainsLineBreak(item.Text):
		return reindent(item.Text, lc.Column-f.host.Column(item.Span.Start), f.gap.Options), true
	default:
		return item.Text, true
	}
}

// whitespaceText renders a resolved run.
func (f *Formatter) whitespaceText(run whitespaceRun) string {
	opts := f.gap.Options
	text := ""
	for range run.delta.Lines {
		text += opts.Newline
	}
	if run.delta.Spaces <= 0 {
		return text
	}
	if run.delta.Lines > 0 || run.lineColumn.Column == 0 {
		return text + textutil.Indentation(run.delta.Spaces, opts)
	}
	return text + textutil.Spaces(run.delta.Spaces)
}
