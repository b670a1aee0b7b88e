package format

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/yaklabco/triviafmt/pkg/syntax"
	"github.com/yaklabco/triviafmt/pkg/syntax/lexer"
	"github.com/yaklabco/triviafmt/pkg/trivia"
)

// Rewrite formats every gap in node mode and returns the tokens carrying the
// replacement trivia. Formatted trivia up to and including the first line
// break stays trailing trivia of the earlier token; the rest becomes leading
// trivia of the later one. Spans of the returned tokens refer to the
// original text.
func (d *Document) Rewrite(ctx context.Context) ([]syntax.Token, error) {
	gaps := d.Gaps()
	results := make([][]syntax.Trivia, len(gaps))

	group, gctx := errgroup.WithContext(ctx)
	group.SetLimit(d.opts.jobs())

	for i, gap := range gaps {
		if err := gctx.Err(); err != nil {
			break
		}
		group.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = trivia.New(d.Policy, gap).FormatToTrivia()
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, fmt.Errorf("format gaps: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("format gaps: %w", err)
	}

	tokens := make([]syntax.Token, len(d.Tree.Tokens))
	copy(tokens, d.Tree.Tokens)

	tokens[0].Leading = results[0]
	for i := 1; i < len(tokens); i++ {
		trailing, leading := splitAtLineBreak(results[i])
		tokens[i-1].Trailing = trailing
		tokens[i].Leading = leading
	}

	return tokens, nil
}

// splitAtLineBreak splits gap trivia after its first end of line.
func splitAtLineBreak(items []syntax.Trivia) ([]syntax.Trivia, []syntax.Trivia) {
	for i, item := range items {
		if item.IsEndOfLine() {
			return items[:i+1], items[i+1:]
		}
	}
	return items, nil
}

// Tree formats text in node mode and returns the tree of the result.
func Tree(ctx context.Context, text string, opts Options) (*syntax.Tree, error) {
	doc := NewDocument(text, opts)

	tokens, err := doc.Rewrite(ctx)
	if err != nil {
		return nil, err
	}

	var b strings.Builder
	b.Grow(len(text))
	for _, tok := range tokens {
		b.WriteString(tok.FullText())
	}

	return lexer.Lex(opts.Dialect, b.String()), nil
}
