// Package policy is the default formatting policy for lexed source trees. It
// implements every hook the trivia formatter consumes: the rule between two
// trivia items, token-level line and space operations, base indentation and
// the dialect's lexical facts.
package policy

import (
	"sort"
	"strings"

	"github.com/yaklabco/triviafmt/pkg/syntax"
	"github.com/yaklabco/triviafmt/pkg/textutil"
	"github.com/yaklabco/triviafmt/pkg/trivia"
)

// Settings are the formatting choices exposed through configuration.
type Settings struct {
	// MaxBlankLines caps consecutive blank lines. Negative disables the cap.
	MaxBlankLines int

	// SpaceAfterComma puts one space after commas on a line.
	SpaceAfterComma bool

	// SpaceAroundOperators puts one space around binary operators.
	SpaceAroundOperators bool
}

// DefaultSettings returns the settings used when nothing is configured.
func DefaultSettings() Settings {
	return Settings{
		MaxBlankLines:        1,
		SpaceAfterComma:      true,
		SpaceAroundOperators: true,
	}
}

// Policy answers formatter questions about one tree.
type Policy struct {
	tree     *syntax.Tree
	opts     textutil.Options
	settings Settings

	// levels holds the indentation level of each token in tree.Tokens.
	levels []int
	// pairs maps each matched bracket index to its partner.
	pairs map[int]int
}

var _ trivia.Host = (*Policy)(nil)

// New builds a policy for tree.
func New(tree *syntax.Tree, opts textutil.Options, settings Settings) *Policy {
	p := &Policy{
		tree:     tree,
		opts:     opts.Normalize(),
		settings: settings,
	}
	if tree.Dialect == syntax.DialectBasic {
		p.levels = basicLevels(tree)
	} else {
		p.levels, p.pairs = bracketLevels(tree.Tokens)
	}
	return p
}

// Options returns the normalized text options.
func (p *Policy) Options() textutil.Options {
	return p.opts
}

// Settings returns the formatting settings.
func (p *Policy) Settings() Settings {
	return p.settings
}

// Column returns the tab-expanded column of a source offset.
func (p *Policy) Column(offset int) int {
	return p.tree.Column(offset, p.opts.TabSize)
}

// TokensOnSameLine reports whether both tokens start on one line.
func (p *Policy) TokensOnSameLine(token1, token2 syntax.Token) bool {
	return p.tree.LineOf(token1.Span.Start) == p.tree.LineOf(token2.Span.Start)
}

// BaseIndentation returns the indentation of the first token at or after
// position. Trivia before a closing bracket is indented as the block's body.
func (p *Policy) BaseIndentation(position int) int {
	idx := p.tokenAt(position)
	if idx < 0 {
		return 0
	}

	level := p.levels[idx]
	tok := p.tree.Tokens[idx]
	if position < tok.Span.Start && tok.Kind.IsCloseBracket() && !tok.Missing {
		level++
	}
	return level * p.opts.IndentSize
}

// TokenIndentation returns the indentation for tok when it starts a line
// after prev. In C, a line that continues a statement keeps its original
// column when that is deeper than the base indentation.
func (p *Policy) TokenIndentation(prev, tok syntax.Token) int {
	base := p.BaseIndentation(tok.Span.Start)
	if p.tree.Dialect == syntax.DialectBasic || prev.IsZero() || endsStatement(prev) ||
		tok.Kind == syntax.TokenCloseBrace || tok.Kind == syntax.TokenEndOfFile {
		return base
	}
	return max(base, p.Column(tok.Span.Start))
}

func endsStatement(tok syntax.Token) bool {
	switch tok.Kind {
	case syntax.TokenSemicolon, syntax.TokenOpenBrace, syntax.TokenCloseBrace:
		return true
	}
	return false
}

// tokenAt returns the index of the first token starting at or after
// position, or -1.
func (p *Policy) tokenAt(position int) int {
	tokens := p.tree.Tokens
	idx := sort.Search(len(tokens), func(i int) bool {
		return tokens[i].Span.Start >= position
	})
	if idx >= len(tokens) {
		return -1
	}
	return idx
}

// indexOf returns the index of tok in the tree, or -1 for tokens that are
// not part of it, such as tokens inside structured trivia.
func (p *Policy) indexOf(tok syntax.Token) int {
	if tok.IsZero() {
		return -1
	}
	idx := p.tokenAt(tok.Span.Start)
	for ; idx >= 0 && idx < len(p.tree.Tokens); idx++ {
		candidate := p.tree.Tokens[idx]
		if candidate.Span.Start != tok.Span.Start {
			return -1
		}
		if candidate.Kind == tok.Kind && candidate.Span == tok.Span {
			return idx
		}
	}
	return -1
}

// previous returns the token before tok in the tree.
func (p *Policy) previous(tok syntax.Token) (syntax.Token, bool) {
	idx := p.indexOf(tok)
	if idx <= 0 {
		return syntax.Token{}, false
	}
	return p.tree.Tokens[idx-1], true
}

// ContainsImplicitLineBreak reports items that end their own line.
func (p *Policy) ContainsImplicitLineBreak(item syntax.Trivia) bool {
	switch item.Kind {
	case syntax.TriviaDocComment, syntax.TriviaDirective:
		return true
	}
	return false
}

// IsLineContinuationThenComment matches " _ ' comment" in Basic.
func (p *Policy) IsLineContinuationThenComment(trivia1, trivia2 syntax.Trivia) bool {
	return p.tree.Dialect == syntax.DialectBasic &&
		trivia1.Kind == syntax.TriviaLineContinuation &&
		trivia2.Kind == syntax.TriviaLineComment
}

// isRegionDirective matches #region/#endregion, their #pragma forms and
// Basic's #Region/#End Region.
func isRegionDirective(item syntax.Trivia) bool {
	if item.Kind != syntax.TriviaDirective || !item.HasStructure() {
		return false
	}

	var name, text string
	for _, tok := range item.Structure.Tokens {
		switch tok.Kind {
		case syntax.TokenDirectiveName:
			name = strings.ToLower(tok.Text)
		case syntax.TokenDirectiveText:
			text = strings.ToLower(tok.Text)
		}
	}

	switch name {
	case "region", "endregion":
		return true
	case "pragma":
		return strings.HasPrefix(text, "region") || strings.HasPrefix(text, "endregion")
	case "end":
		return strings.HasPrefix(text, "region")
	}
	return false
}
