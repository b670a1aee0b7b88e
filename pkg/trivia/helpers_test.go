package trivia_test

import (
	"strings"

	"github.com/yaklabco/triviafmt/pkg/position"
	"github.com/yaklabco/triviafmt/pkg/rules"
	"github.com/yaklabco/triviafmt/pkg/syntax"
	"github.com/yaklabco/triviafmt/pkg/textutil"
	"github.com/yaklabco/triviafmt/pkg/trivia"
)

type ruleFunc func(gap trivia.Gap, t1 syntax.Trivia, existing position.Delta, implicit bool, t2 syntax.Trivia) rules.LineColumnRule

// testHost is a configurable trivia.Host over a single source string.
type testHost struct {
	source       string
	rule         ruleFunc
	base         int
	lineOps      map[[2]string]rules.LineOperation
	spaceOps     map[[2]string]rules.SpaceOperation
	sameLine     bool
	continuation bool
}

func (h *testHost) RuleBetween(gap trivia.Gap, t1 syntax.Trivia, existing position.Delta, implicit bool, t2 syntax.Trivia) rules.LineColumnRule {
	if h.rule == nil {
		return rules.Preserve()
	}
	return h.rule(gap, t1, existing, implicit, t2)
}

func (h *testHost) LineOperation(t1, t2 syntax.Token) (rules.LineOperation, bool) {
	op, ok := h.lineOps[[2]string{t1.Text, t2.Text}]
	return op, ok
}

func (h *testHost) SpaceOperation(t1, t2 syntax.Token) (rules.SpaceOperation, bool) {
	op, ok := h.spaceOps[[2]string{t1.Text, t2.Text}]
	return op, ok
}

func (h *testHost) BaseIndentation(int) int { return h.base }

func (h *testHost) TokensOnSameLine(syntax.Token, syntax.Token) bool { return h.sameLine }

func (h *testHost) Column(offset int) int {
	offset = min(offset, len(h.source))
	lineStart := strings.LastIndexByte(h.source[:offset], '\n') + 1
	return textutil.Width(h.source[lineStart:offset], 4, 0)
}

func (h *testHost) ContainsImplicitLineBreak(item syntax.Trivia) bool {
	return item.Kind == syntax.TriviaDirective || item.Kind == syntax.TriviaDocComment
}

func (h *testHost) IsLineContinuationThenComment(t1, t2 syntax.Trivia) bool {
	return h.continuation && t1.Kind == syntax.TriviaLineContinuation && t2.Kind == syntax.TriviaLineComment
}

func constRule(rule rules.LineColumnRule) ruleFunc {
	return func(trivia.Gap, syntax.Trivia, position.Delta, bool, syntax.Trivia) rules.LineColumnRule {
		return rule
	}
}

// fixture describes a gap by its texts; build assigns contiguous spans.
type fixture struct {
	token1, token2     string
	missing1, missing2 bool
	trailing, leading  []syntax.Trivia
	lineBreaks, spaces int
	options            textutil.Options
}

func (fx fixture) build() (trivia.Gap, string) {
	var src strings.Builder
	pos := 0

	makeToken := func(text string, missing bool) syntax.Token {
		if text == "" && !missing {
			return syntax.Token{}
		}
		tok := syntax.Token{
			Kind:    syntax.TokenIdentifier,
			Text:    text,
			Span:    syntax.Span{Start: pos, End: pos + len(text)},
			Missing: missing,
		}
		src.WriteString(text)
		pos += len(text)
		return tok
	}
	place := func(items []syntax.Trivia) []syntax.Trivia {
		out := make([]syntax.Trivia, len(items))
		for i, item := range items {
			if item.Elastic {
				item.Span = syntax.Span{Start: pos, End: pos}
			} else {
				item.Span = syntax.Span{Start: pos, End: pos + len(item.Text)}
				src.WriteString(item.Text)
				pos += len(item.Text)
			}
			out[i] = item
		}
		return out
	}

	token1 := makeToken(fx.token1, fx.missing1)
	gapStart := pos
	token1.Trailing = place(fx.trailing)
	leading := place(fx.leading)
	gapEnd := pos
	token2 := makeToken(fx.token2, fx.missing2)
	token2.Leading = leading

	opts := fx.options
	if opts == (textutil.Options{}) {
		opts = textutil.DefaultOptions()
	}

	source := src.String()
	return trivia.Gap{
		Token1:     token1,
		Token2:     token2,
		Original:   source[gapStart:gapEnd],
		LineBreaks: fx.lineBreaks,
		Spaces:     fx.spaces,
		Options:    opts,
	}, source
}

func ws(text string) syntax.Trivia { return syntax.Trivia{Kind: syntax.TriviaWhitespace, Text: text} }

func eol() syntax.Trivia { return syntax.Trivia{Kind: syntax.TriviaEndOfLine, Text: "\n"} }

func lineComment(text string) syntax.Trivia {
	return syntax.Trivia{Kind: syntax.TriviaLineComment, Text: text}
}

func blockComment(text string) syntax.Trivia {
	return syntax.Trivia{Kind: syntax.TriviaBlockComment, Text: text}
}

func skipped(text string) syntax.Trivia {
	return syntax.Trivia{Kind: syntax.TriviaSkipped, Text: text}
}

func continuation() syntax.Trivia {
	return syntax.Trivia{Kind: syntax.TriviaLineContinuation, Text: "_"}
}

// directive builds "#name arg\n" as structured trivia.
func directive(name, arg string) syntax.Trivia {
	return syntax.Trivia{
		Kind: syntax.TriviaDirective,
		Text: "#" + name + " " + arg + "\n",
		Structure: &syntax.Structure{Tokens: []syntax.Token{
			{Kind: syntax.TokenHash, Text: "#"},
			{Kind: syntax.TokenDirectiveName, Text: name, Trailing: []syntax.Trivia{ws(" ")}},
			{Kind: syntax.TokenDirectiveText, Text: arg, Trailing: []syntax.Trivia{eol()}},
		}},
	}
}

// render applies the formatter output to the gap source text.
func renderEdits(gap trivia.Gap, source string, f *trivia.Formatter) string {
	edits := f.FormatToEdits()
	start := gap.StartPosition()
	end := gap.EndPosition()

	var out strings.Builder
	cursor := start
	for _, e := range edits {
		out.WriteString(source[cursor:e.StartOffset])
		out.WriteString(e.NewText)
		cursor = e.EndOffset
	}
	out.WriteString(source[cursor:end])
	return out.String()
}
