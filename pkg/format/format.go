// Package format formats whole documents. It lexes the source, asks the
// default policy how every gap between adjacent tokens should look and runs
// the trivia formatter over each gap, collecting one edit list per document.
package format

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/yaklabco/triviafmt/internal/logging"
	"github.com/yaklabco/triviafmt/pkg/fix"
	"github.com/yaklabco/triviafmt/pkg/policy"
	"github.com/yaklabco/triviafmt/pkg/rules"
	"github.com/yaklabco/triviafmt/pkg/syntax"
	"github.com/yaklabco/triviafmt/pkg/syntax/lexer"
	"github.com/yaklabco/triviafmt/pkg/textutil"
	"github.com/yaklabco/triviafmt/pkg/trivia"
)

// Options control how one document is formatted.
type Options struct {
	// Dialect selects the lexer.
	Dialect syntax.Dialect

	// Text holds tab, indent and newline settings.
	Text textutil.Options

	// Settings are the policy choices.
	Settings policy.Settings

	// Jobs bounds how many gaps are formatted at once. Zero or less uses
	// GOMAXPROCS.
	Jobs int
}

// DefaultOptions returns the options used when nothing is configured.
func DefaultOptions(dialect syntax.Dialect) Options {
	return Options{
		Dialect:  dialect,
		Text:     textutil.DefaultOptions(),
		Settings: policy.DefaultSettings(),
	}
}

func (o Options) jobs() int {
	if o.Jobs > 0 {
		return o.Jobs
	}
	return runtime.GOMAXPROCS(0)
}

// Document is a lexed source text ready to be formatted.
type Document struct {
	Text   string
	Tree   *syntax.Tree
	Policy *policy.Policy

	opts Options
}

// NewDocument lexes text and builds its policy.
func NewDocument(text string, opts Options) *Document {
	opts.Text = opts.Text.Normalize()
	tree := lexer.Lex(opts.Dialect, text)
	return &Document{
		Text:   text,
		Tree:   tree,
		Policy: policy.New(tree, opts.Text, opts.Settings),
		opts:   opts,
	}
}

// Gaps returns the start-of-file gap followed by the gap between every pair
// of adjacent tokens, in document order.
func (d *Document) Gaps() []trivia.Gap {
	tokens := d.Tree.Tokens
	gaps := make([]trivia.Gap, 0, len(tokens))

	gaps = append(gaps, trivia.Gap{
		Token2:   tokens[0],
		Original: d.Text[:tokens[0].Span.Start],
		Options:  d.opts.Text,
	})
	for i := 1; i < len(tokens); i++ {
		gaps = append(gaps, d.gapBetween(tokens[i-1], tokens[i]))
	}

	return gaps
}

// gapBetween computes the requested line breaks and spaces between two
// adjacent tokens.
func (d *Document) gapBetween(token1, token2 syntax.Token) trivia.Gap {
	gap := trivia.Gap{
		Token1:   token1,
		Token2:   token2,
		Original: d.Text[token1.Span.End:token2.Span.Start],
		Options:  d.opts.Text,
	}

	gap.LineBreaks = d.lineBreaks(gap)
	if gap.LineBreaks > 0 {
		gap.Spaces = d.Policy.TokenIndentation(token1, token2)
		return gap
	}
	gap.Spaces = d.spaces(gap)
	return gap
}

func (d *Document) lineBreaks(gap trivia.Gap) int {
	lines := textutil.LineBreakCount(gap.Original)
	if limit := d.opts.Settings.MaxBlankLines; limit >= 0 {
		lines = min(lines, limit+1)
	}
	if gap.Token2.Kind == syntax.TokenEndOfFile {
		return min(lines, 1)
	}

	op, ok := d.Policy.LineOperation(gap.Token1, gap.Token2)
	if !ok {
		return lines
	}
	switch op.Kind {
	case rules.ForceLines:
		return op.Lines
	case rules.ForceLinesIfOnSingleLine:
		if d.Policy.TokensOnSameLine(gap.Token1, gap.Token2) {
			return op.Lines
		}
	case rules.PreserveLines:
		if lines > 0 {
			return max(lines, op.Lines)
		}
	}
	return lines
}

func (d *Document) spaces(gap trivia.Gap) int {
	if gap.Token2.Kind == syntax.TokenEndOfFile {
		return 0
	}

	op, ok := d.Policy.SpaceOperation(gap.Token1, gap.Token2)
	if !ok {
		if gap.Original == "" {
			return 0
		}
		return 1
	}
	if op.Kind == rules.PreserveSpaces && textutil.IsBlank(gap.Original) {
		return max(op.Spaces, textutil.Width(gap.Original, d.opts.Text.TabSize, d.Policy.Column(gap.Token1.Span.End)))
	}
	return op.Spaces
}

// Edits formats every gap and returns the merged, sorted edits for the
// document. Gaps run in parallel; cancellation is observed between gaps.
func (d *Document) Edits(ctx context.Context) ([]fix.TextEdit, error) {
	gaps := d.Gaps()
	results := make([][]fix.TextEdit, len(gaps))
	logger := logging.FromContext(ctx)

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

			formatter := trivia.New(d.Policy, gap)
			results[i] = formatter.FormatToEdits()
			if !formatter.Succeeded() {
				logger.Debug("gap left unformatted", "offset", gap.StartPosition(), "dialect", d.opts.Dialect)
			}
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, fmt.Errorf("format gaps: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("format gaps: %w", err)
	}

	// Neighbouring gaps meet at one offset only around zero-width
	// missing tokens; the builder folds those insertions together.
	builder := fix.NewBuilder()
	for _, gapEdits := range results {
		builder.Add(gapEdits...)
	}

	prepared, err := fix.PrepareEdits(builder.Edits(), len(d.Text))
	if err != nil {
		return nil, fmt.Errorf("prepare edits: %w", err)
	}
	return prepared, nil
}

// Text formats text and returns the result with the edits that produced it.
func Text(ctx context.Context, text string, opts Options) (string, []fix.TextEdit, error) {
	doc := NewDocument(text, opts)
	edits, err := doc.Edits(ctx)
	if err != nil {
		return "", nil, err
	}
	return string(fix.ApplyEdits([]byte(text), edits)), edits, nil
}
