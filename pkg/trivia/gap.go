// Package trivia reformats the whitespace between two adjacent tokens.
//
// A Formatter handles exactly one gap: the trailing trivia of one token and
// the leading trivia of the next. It walks the gap, keeps comments and other
// content trivia, and decides from caller-supplied rules how many line breaks
// and how much indentation or spacing belongs between them. The result is
// either a replacement trivia sequence (FormatToTrivia) or a minimal set of
// text edits (FormatToEdits).
//
// The formatter holds no policy of its own. Everything language specific is
// supplied through the Host interface.
package trivia

import (
	"github.com/yaklabco/triviafmt/pkg/position"
	"github.com/yaklabco/triviafmt/pkg/rules"
	"github.com/yaklabco/triviafmt/pkg/syntax"
	"github.com/yaklabco/triviafmt/pkg/textutil"
)

// Gap is the input for formatting the trivia between two tokens.
type Gap struct {
	// Token1 is the token before the gap. It may be absent at the start of a
	// file.
	Token1 syntax.Token

	// Token2 is the token after the gap. It may be absent at the end of a
	// file.
	Token2 syntax.Token

	// Original is the source text between the end of Token1 and the start
	// of Token2.
	Original string

	// LineBreaks is the minimum number of line breaks the gap must contain.
	LineBreaks int

	// Spaces is the requested column of Token2 when it starts a line, or the
	// requested spacing before it otherwise.
	Spaces int

	Options textutil.Options
}

// StartPosition returns the source offset where the gap begins.
func (g Gap) StartPosition() int {
	if !g.Token1.IsZero() {
		return g.Token1.Span.End
	}
	return g.Token2.FullSpan().Start
}

// EndPosition returns the source offset where the gap ends.
func (g Gap) EndPosition() int {
	if !g.Token2.IsZero() {
		return g.Token2.Span.Start
	}
	return g.Token1.FullSpan().End
}

// Rules supplies formatting policy.
type Rules interface {
	// RuleBetween returns the rule for the whitespace between trivia1 and
	// trivia2. Either may be absent, meaning the gap edge.
	RuleBetween(gap Gap, trivia1 syntax.Trivia, existing position.Delta, implicitLineBreak bool, trivia2 syntax.Trivia) rules.LineColumnRule

	// LineOperation returns the declared line break requirement between two
	// tokens, if any.
	LineOperation(token1, token2 syntax.Token) (rules.LineOperation, bool)

	// SpaceOperation returns the declared spacing requirement between two
	// tokens, if any.
	SpaceOperation(token1, token2 syntax.Token) (rules.SpaceOperation, bool)
}

// Layout answers questions about the original document.
type Layout interface {
	// BaseIndentation returns the indentation of a line starting at position.
	BaseIndentation(position int) int

	// TokensOnSameLine reports whether both tokens start on one line in the
	// original text.
	TokensOnSameLine(token1, token2 syntax.Token) bool

	// Column returns the tab-expanded column of a source offset.
	Column(offset int) int
}

// Language supplies lexical facts the formatter cannot derive from trivia
// kinds alone.
type Language interface {
	// ContainsImplicitLineBreak reports whether item ends with a line break
	// of its own, as directives and documentation comments do.
	ContainsImplicitLineBreak(item syntax.Trivia) bool

	// IsLineContinuationThenComment reports whether trivia1 is a line
	// continuation directly followed by the comment trivia2.
	IsLineContinuationThenComment(trivia1, trivia2 syntax.Trivia) bool
}

// Host is everything the formatter consumes from its caller.
type Host interface {
	Rules
	Layout
	Language
}
