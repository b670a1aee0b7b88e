package markdown_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/triviafmt/pkg/fix"
	"github.com/yaklabco/triviafmt/pkg/markdown"
)

const doc = "# Title\n" +
	"\n" +
	"```c\n" +
	"int x;\n" +
	"int  y;\n" +
	"```\n" +
	"\n" +
	"Text.\n" +
	"\n" +
	"~~~\n" +
	"plain\n" +
	"~~~\n" +
	"\n" +
	"> ```c\n" +
	"> int z;\n" +
	"> int w;\n" +
	"> ```\n"

func TestCodeBlocks(t *testing.T) {
	t.Parallel()

	src := []byte(doc)
	blocks := markdown.CodeBlocks(src)
	require.Len(t, blocks, 2)

	assert.Equal(t, "c", blocks[0].Language)
	assert.Equal(t, "c", blocks[0].Info)
	assert.Equal(t, "int x;\nint  y;\n", string(blocks[0].Content(src)))

	assert.Empty(t, blocks[1].Language)
	assert.Equal(t, "plain\n", string(blocks[1].Content(src)))
}

func TestCodeBlocksSkipsEmptyBlocks(t *testing.T) {
	t.Parallel()

	blocks := markdown.CodeBlocks([]byte("```c\n```\n"))
	assert.Empty(t, blocks)
}

func TestCodeBlocksInfoString(t *testing.T) {
	t.Parallel()

	src := []byte("```vb title=\"x\"\nDim x\n```\n")
	blocks := markdown.CodeBlocks(src)
	require.Len(t, blocks, 1)
	assert.Equal(t, "vb", blocks[0].Language)
	assert.Equal(t, `vb title="x"`, blocks[0].Info)
}

func TestFormatCodeBlocks(t *testing.T) {
	t.Parallel()

	src := []byte(doc)
	edits, err := markdown.FormatCodeBlocks(context.Background(), src,
		func(_ context.Context, block markdown.CodeBlock, content []byte) ([]fix.TextEdit, error) {
			if block.Language != "c" {
				return nil, nil
			}
			idx := strings.Index(string(content), "  ")
			return []fix.TextEdit{{StartOffset: idx, EndOffset: idx + 2, NewText: " "}}, nil
		})
	require.NoError(t, err)
	require.Len(t, edits, 1)

	out := fix.ApplyEdits(src, edits)
	assert.Contains(t, string(out), "```c\nint x;\nint y;\n```\n")
	assert.Contains(t, string(out), "> int z;\n")
}

func TestFormatCodeBlocksError(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	_, err := markdown.FormatCodeBlocks(context.Background(), []byte(doc),
		func(context.Context, markdown.CodeBlock, []byte) ([]fix.TextEdit, error) {
			return nil, boom
		})
	require.ErrorIs(t, err, boom)
}

func TestFormatCodeBlocksCancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := markdown.FormatCodeBlocks(ctx, []byte(doc),
		func(context.Context, markdown.CodeBlock, []byte) ([]fix.TextEdit, error) {
			return nil, nil
		})
	require.ErrorIs(t, err, context.Canceled)
}
