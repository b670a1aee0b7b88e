// Package markdown locates fenced code blocks in Markdown documents so their
// contents can be formatted in place.
package markdown

import (
	"context"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"

	"github.com/yaklabco/triviafmt/pkg/fix"
)

// CodeBlock is a fenced code block whose content is one contiguous byte
// range of the document.
type CodeBlock struct {
	// Info is the full info string after the opening fence.
	Info string

	// Language is the first word of the info string, if any.
	Language string

	// Start and End delimit the block content in the document. The range
	// excludes both fence lines.
	Start int
	End   int
}

// Content returns the block content.
func (b CodeBlock) Content(src []byte) []byte {
	return src[b.Start:b.End]
}

// FormatFunc formats the content of one block and returns edits relative to
// the start of that content. Returning no edits leaves the block unchanged.
type FormatFunc func(ctx context.Context, block CodeBlock, content []byte) ([]fix.TextEdit, error)

//nolint:ireturn // goldmark.Markdown is an external interface type
func newGoldmark() goldmark.Markdown {
	return goldmark.New(goldmark.WithExtensions(extension.GFM))
}

// CodeBlocks returns the fenced code blocks of src in document order.
// Blocks nested in containers that strip a prefix from every line, such as
// block quotes and indented list items, are not contiguous and are left out.
func CodeBlocks(src []byte) []CodeBlock {
	reader := text.NewReader(src)
	doc := newGoldmark().Parser().Parse(reader, parser.WithContext(parser.NewContext()))

	var blocks []CodeBlock
	_ = ast.Walk(doc, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		fenced, ok := node.(*ast.FencedCodeBlock)
		if !ok {
			return ast.WalkContinue, nil
		}
		if block, ok := codeBlock(fenced, src); ok {
			blocks = append(blocks, block)
		}
		return ast.WalkSkipChildren, nil
	})

	return blocks
}

func codeBlock(fenced *ast.FencedCodeBlock, src []byte) (CodeBlock, bool) {
	lines := fenced.Lines()
	if lines.Len() == 0 {
		return CodeBlock{}, false
	}

	block := CodeBlock{
		Start: lines.At(0).Start,
		End:   lines.At(lines.Len() - 1).Stop,
	}
	for i := range lines.Len() {
		seg := lines.At(i)
		if seg.Padding > 0 {
			return CodeBlock{}, false
		}
		if i > 0 && lines.At(i-1).Stop != seg.Start {
			return CodeBlock{}, false
		}
	}

	if fenced.Info != nil {
		block.Info = string(fenced.Info.Segment.Value(src))
	}
	block.Language = string(fenced.Language(src))

	return block, true
}

// FormatCodeBlocks runs fn over every code block of src and returns the
// combined edits with offsets in src.
func FormatCodeBlocks(ctx context.Context, src []byte, fn FormatFunc) ([]fix.TextEdit, error) {
	var edits []fix.TextEdit

	for _, block := range CodeBlocks(src) {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("format code blocks: %w", err)
		}

		blockEdits, err := fn(ctx, block, block.Content(src))
		if err != nil {
			return nil, fmt.Errorf("code block at offset %d: %w", block.Start, err)
		}
		for _, edit := range blockEdits {
			edits = append(edits, edit.Shift(block.Start))
		}
	}

	return edits, nil
}
