package syntax

import (
	"fmt"
	"sort"
	"strings"

	"github.com/yaklabco/triviafmt/pkg/textutil"
)

// Dialect selects the lexical conventions of a source file.
type Dialect uint8

const (
	DialectUnknown Dialect = iota
	// DialectC covers brace languages with // and /* */ comments.
	DialectC
	// DialectBasic covers line-oriented languages with ' comments and
	// " _" line continuations.
	DialectBasic
)

func (d Dialect) String() string {
	switch d {
	case DialectC:
		return "c"
	case DialectBasic:
		return "basic"
	default:
		return "unknown"
	}
}

// ParseDialect parses a dialect name.
func ParseDialect(name string) (Dialect, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "c":
		return DialectC, nil
	case "basic", "vb":
		return DialectBasic, nil
	default:
		return DialectUnknown, fmt.Errorf("unknown dialect %q", name)
	}
}

// Tree is a lexed source file. The last token is always TokenEndOfFile.
type Tree struct {
	Dialect Dialect
	Text    string
	Tokens  []Token
	Lines   []LineInfo
}

// NewTree builds a tree and its line index.
func NewTree(dialect Dialect, text string, tokens []Token) *Tree {
	return &Tree{
		Dialect: dialect,
		Text:    text,
		Tokens:  tokens,
		Lines:   BuildLines(text),
	}
}

// Render reproduces the source text from the tokens and their trivia.
func (t *Tree) Render() string {
	var builder strings.Builder
	builder.Grow(len(t.Text))
	for _, tok := range t.Tokens {
		builder.WriteString(tok.FullText())
	}
	return builder.String()
}

// LineInfo describes one line of the source text.
type LineInfo struct {
	// StartOffset is the offset of the first byte of the line.
	StartOffset int

	// NewlineStart is the offset of the line break, or the end of the text.
	NewlineStart int

	// EndOffset is the offset just past the line break.
	EndOffset int
}

// BuildLines indexes the lines of text. LF and CRLF are recognized.
func BuildLines(text string) []LineInfo {
	lines := make([]LineInfo, 0, strings.Count(text, "\n")+1)
	lineStart := 0

	for idx := 0; idx < len(text); idx++ {
		if text[idx] != '\n' {
			continue
		}
		newlineStart := idx
		if idx > 0 && text[idx-1] == '\r' {
			newlineStart = idx - 1
		}
		lines = append(lines, LineInfo{
			StartOffset:  lineStart,
			NewlineStart: newlineStart,
			EndOffset:    idx + 1,
		})
		lineStart = idx + 1
	}

	return append(lines, LineInfo{
		StartOffset:  lineStart,
		NewlineStart: len(text),
		EndOffset:    len(text),
	})
}

// LineOf returns the 0-based line containing offset.
func (t *Tree) LineOf(offset int) int {
	if offset <= 0 || len(t.Lines) == 0 {
		return 0
	}
	idx := sort.Search(len(t.Lines), func(i int) bool {
		return t.Lines[i].EndOffset > offset
	})
	if idx >= len(t.Lines) {
		idx = len(t.Lines) - 1
	}
	return idx
}

// LineText returns the text of a 0-based line without its line break.
func (t *Tree) LineText(line int) string {
	if line < 0 || line >= len(t.Lines) {
		return ""
	}
	info := t.Lines[line]
	return t.Text[info.StartOffset:info.NewlineStart]
}

// Column returns the tab-expanded column of offset on its line.
func (t *Tree) Column(offset, tabSize int) int {
	line := t.LineOf(offset)
	if len(t.Lines) == 0 {
		return 0
	}
	start := t.Lines[line].StartOffset
	if offset < start {
		return 0
	}
	return textutil.Width(t.Text[start:min(offset, len(t.Text))], tabSize, 0)
}
