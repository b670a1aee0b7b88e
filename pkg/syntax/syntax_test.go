package syntax_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/triviafmt/pkg/syntax"
)

func TestBuildLines(t *testing.T) {
	t.Parallel()

	lines := syntax.BuildLines("ab\r\ncd\nef")
	require.Len(t, lines, 3)
	assert.Equal(t, syntax.LineInfo{StartOffset: 0, NewlineStart: 2, EndOffset: 4}, lines[0])
	assert.Equal(t, syntax.LineInfo{StartOffset: 4, NewlineStart: 6, EndOffset: 7}, lines[1])
	assert.Equal(t, syntax.LineInfo{StartOffset: 7, NewlineStart: 9, EndOffset: 9}, lines[2])

	assert.Len(t, syntax.BuildLines(""), 1)
	assert.Len(t, syntax.BuildLines("x\n"), 2)
}

func TestTreeLineAndColumn(t *testing.T) {
	t.Parallel()

	tree := syntax.NewTree(syntax.DialectC, "a\n\tb  c\nd", nil)

	tests := []struct {
		offset     int
		line, col  int
		lineString string
	}{
		{0, 0, 0, "a"},
		{2, 1, 0, "\tb  c"},
		{3, 1, 4, "\tb  c"},
		{6, 1, 7, "\tb  c"},
		{8, 2, 0, "d"},
		{9, 2, 1, "d"},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.line, tree.LineOf(tc.offset), "line of %d", tc.offset)
		assert.Equal(t, tc.col, tree.Column(tc.offset, 4), "column of %d", tc.offset)
		assert.Equal(t, tc.lineString, tree.LineText(tc.line))
	}
}

func TestStructureEdges(t *testing.T) {
	t.Parallel()

	var empty *syntax.Structure
	_, ok := empty.FirstToken()
	assert.False(t, ok)

	s := &syntax.Structure{Tokens: []syntax.Token{
		{Kind: syntax.TokenHash, Text: "#"},
		{Kind: syntax.TokenDirectiveName, Text: "region"},
	}}
	first, ok := s.FirstToken()
	require.True(t, ok)
	assert.Equal(t, "#", first.Text)

	last, ok := s.LastToken()
	require.True(t, ok)
	assert.Equal(t, "region", last.Text)
}

func TestTokenFullSpanAndText(t *testing.T) {
	t.Parallel()

	tok := syntax.Token{
		Kind:     syntax.TokenIdentifier,
		Text:     "x",
		Span:     syntax.Span{Start: 2, End: 3},
		Leading:  []syntax.Trivia{{Kind: syntax.TriviaWhitespace, Text: "  ", Span: syntax.Span{Start: 0, End: 2}}},
		Trailing: []syntax.Trivia{{Kind: syntax.TriviaEndOfLine, Text: "\n", Span: syntax.Span{Start: 3, End: 4}}},
	}

	assert.Equal(t, syntax.Span{Start: 0, End: 4}, tok.FullSpan())
	assert.Equal(t, "  x\n", tok.FullText())
	assert.False(t, tok.IsZero())
	assert.True(t, syntax.Token{}.IsZero())
}

func TestTriviaPredicates(t *testing.T) {
	t.Parallel()

	block := syntax.Trivia{Kind: syntax.TriviaBlockComment, Text: "/* a\n b */"}
	assert.True(t, block.IsMultiLineComment())
	assert.True(t, block.IsComment())
	assert.False(t, block.IsWhitespaceOrEndOfLine())

	assert.True(t, syntax.ElasticNewline().IsEndOfLine())
	assert.True(t, syntax.ElasticMarker().Elastic)
	assert.True(t, syntax.Trivia{}.IsZero())

	list := []syntax.Trivia{syntax.Whitespace("  "), syntax.EndOfLine("\n")}
	assert.True(t, syntax.OnlyWhitespace(list))
	assert.Equal(t, "  \n", syntax.Render(list))
}

func TestParseDialect(t *testing.T) {
	t.Parallel()

	d, err := syntax.ParseDialect("VB")
	require.NoError(t, err)
	assert.Equal(t, syntax.DialectBasic, d)

	_, err = syntax.ParseDialect("cobol")
	assert.Error(t, err)
}
