package policy

import (
	"github.com/yaklabco/triviafmt/pkg/position"
	"github.com/yaklabco/triviafmt/pkg/rules"
	"github.com/yaklabco/triviafmt/pkg/syntax"
	"github.com/yaklabco/triviafmt/pkg/textutil"
	"github.com/yaklabco/triviafmt/pkg/trivia"
)

// RuleBetween decides the whitespace between two trivia items of a gap.
func (p *Policy) RuleBetween(
	gap trivia.Gap,
	trivia1 syntax.Trivia,
	existing position.Delta,
	implicitLineBreak bool,
	trivia2 syntax.Trivia,
) rules.LineColumnRule {
	return p.capBlankLines(p.ruleBetween(gap, trivia1, existing, implicitLineBreak, trivia2), existing)
}

func (p *Policy) ruleBetween(
	gap trivia.Gap,
	trivia1 syntax.Trivia,
	existing position.Delta,
	implicitLineBreak bool,
	trivia2 syntax.Trivia,
) rules.LineColumnRule {
	// Start of file: nothing goes before the first item.
	if gap.Token1.IsZero() && trivia1.IsZero() {
		return rules.PreserveLinesWithAbsoluteIndentation(0, 0)
	}

	// End of file: keep at most one line break after the last item.
	if gap.Token2.Kind == syntax.TokenEndOfFile && trivia2.IsZero() {
		rule := rules.PreserveLinesWithAbsoluteIndentation(0, 0)
		if existing.Lines > 1 {
			rule = rule.WithLines(1, rules.LineForce)
		}
		return rule
	}

	if trivia1.IsZero() && trivia2.IsZero() {
		if gap.LineBreaks > 0 {
			return rules.PreserveLinesWithGivenIndentation(gap.LineBreaks).
				WithLines(gap.LineBreaks, rules.LineForce)
		}
		return rules.ForceSpaces(gap.Spaces)
	}

	if trivia2.IsZero() {
		_, insertNewLine := p.LineOperation(gap.Token1, gap.Token2)
		switch {
		case trivia1.IsMultiLineComment():
			lines := 0
			if insertNewLine {
				lines = 1
			}
			return rules.PreserveLinesWithGivenIndentation(lines)
		case insertNewLine:
			return rules.PreserveLinesWithDefaultIndentation(1)
		case implicitLineBreak:
			return rules.PreserveLinesWithDefaultIndentation(0)
		case existing.Lines > 0 && existing.Spaces != gap.Spaces:
			return rules.PreserveWithGivenSpaces(gap.Spaces)
		}
		return rules.Preserve()
	}

	switch trivia2.Kind {
	case syntax.TriviaDirective:
		lines := 1
		if trivia1.IsZero() && gap.Token1.IsZero() {
			lines = 0
		}
		if isRegionDirective(trivia2) {
			return rules.PreserveLinesWithDefaultIndentation(lines)
		}
		return rules.PreserveLinesWithAbsoluteIndentation(lines, 0)

	case syntax.TriviaLineComment, syntax.TriviaBlockComment, syntax.TriviaDocComment:
		newGroup := !trivia1.IsComment() || existing.Lines > 1
		if newGroup {
			_, ok := p.LineOperation(gap.Token1, gap.Token2)
			switch {
			case !ok:
				return rules.PreserveLinesWithDefaultIndentation(0)
			case trivia1.IsZero():
				// The line break goes after the comment, which stays
				// where it is relative to Token1.
				return rules.PreserveSpacesOrUseDefaultIndentation(1)
			}
			return p.commentIndentation(gap, trivia2)
		}
		if existing.Lines == 0 {
			return p.commentIndentation(gap, trivia2)
		}
		return rules.PreserveLinesWithFollowingPrecedingIndentation()
	}

	return rules.Preserve()
}

// commentIndentation keeps a comment that starts on Token2's line aligned
// with Token2. Comments on earlier lines get the default indentation.
func (p *Policy) commentIndentation(gap trivia.Gap, comment syntax.Trivia) rules.LineColumnRule {
	if p.sharesLine(comment, gap.Token2) {
		return rules.PreserveLinesWithGivenIndentation(0)
	}
	return rules.PreserveLinesWithDefaultIndentation(0)
}

// sharesLine reports whether no line break separates the start of item from
// tok in the source.
func (p *Policy) sharesLine(item syntax.Trivia, tok syntax.Token) bool {
	start, end := item.Span.Start, tok.Span.Start
	if tok.IsZero() || start < 0 || end > len(p.tree.Text) || start > end {
		return true
	}
	return !textutil.ContainsLineBreak(p.tree.Text[start:end])
}

// capBlankLines limits preserved line breaks to MaxBlankLines blank lines.
func (p *Policy) capBlankLines(rule rules.LineColumnRule, existing position.Delta) rules.LineColumnRule {
	if p.settings.MaxBlankLines < 0 {
		return rule
	}

	limit := p.settings.MaxBlankLines + 1
	if rule.LineOp == rules.LinePreserve && existing.Lines > limit && rule.Lines <= limit {
		return rule.WithLines(limit, rules.LineForce)
	}
	return rule
}
