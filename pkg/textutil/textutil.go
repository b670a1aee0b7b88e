// Package textutil provides the text measurement helpers used by the trivia
// formatter: tab-aware column conversion, indentation strings and line helpers.
package textutil

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
)

// Options are the text options that influence whitespace rendering.
type Options struct {
	// TabSize is the width of a tab stop.
	TabSize int `yaml:"tab_size"`

	// IndentSize is the number of columns per indentation level.
	IndentSize int `yaml:"indent_size"`

	// UseTabs renders indentation with tabs where possible.
	UseTabs bool `yaml:"use_tabs"`

	// Newline is the line break sequence written for new lines.
	Newline string `yaml:"newline"`
}

// DefaultOptions returns four-column indentation with spaces and LF line breaks.
func DefaultOptions() Options {
	return Options{
		TabSize:    4,
		IndentSize: 4,
		UseTabs:    false,
		Newline:    "\n",
	}
}

// Normalize fills in zero values with defaults.
func (o Options) Normalize() Options {
	def := DefaultOptions()
	if o.TabSize <= 0 {
		o.TabSize = def.TabSize
	}
	if o.IndentSize <= 0 {
		o.IndentSize = def.IndentSize
	}
	if o.Newline == "" {
		o.Newline = def.Newline
	}
	return o
}

// spaceRun backs Spaces for short runs.
const spaceRun = "                    "

// Spaces returns a string of n spaces. Runs shorter than 20 are slices of a
// constant and do not allocate.
func Spaces(n int) string {
	if n <= 0 {
		return ""
	}
	if n < len(spaceRun) {
		return spaceRun[:n]
	}
	return strings.Repeat(" ", n)
}

// Indentation renders an indentation of the given width.
// With tabs enabled, whole tab stops are written as tabs and the remainder
// as spaces.
func Indentation(width int, opts Options) string {
	if width <= 0 {
		return ""
	}
	if !opts.UseTabs || opts.TabSize <= 0 {
		return Spaces(width)
	}
	return strings.Repeat("\t", width/opts.TabSize) + Spaces(width%opts.TabSize)
}

// ConvertTabToSpace returns how many columns the first end bytes of text
// advance when they start at initialColumn. Tabs advance to the next tab stop;
// other runes advance by their display width.
func ConvertTabToSpace(text string, tabSize, initialColumn, end int) int {
	if end > len(text) {
		end = len(text)
	}

	column := initialColumn
	for i := 0; i < end; {
		r, size := utf8.DecodeRuneInString(text[i:])
		i += size

		switch {
		case r == '\t':
			if tabSize > 0 {
				column += tabSize - column%tabSize
			}
		case r < utf8.RuneSelf:
			column++
		default:
			column += runewidth.RuneWidth(r)
		}
	}

	return column - initialColumn
}

// Width returns the number of columns text occupies when it starts at
// initialColumn.
func Width(text string, tabSize, initialColumn int) int {
	return ConvertTabToSpace(text, tabSize, initialColumn, len(text))
}

// IsLineBreak reports whether r is a line break character.
func IsLineBreak(r rune) bool {
	switch r {
	case '\n', '\r', '\u0085', '\u2028', '\u2029':
		return true
	}
	return false
}

// IsWhitespace reports whether r is whitespace other than a line break.
func IsWhitespace(r rune) bool {
	return !IsLineBreak(r) && unicode.IsSpace(r)
}

// IsBlank reports whether text contains only whitespace and line breaks.
func IsBlank(text string) bool {
	for _, r := range text {
		if !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}

// ContainsLineBreak reports whether text contains any line break.
func ContainsLineBreak(text string) bool {
	return strings.ContainsAny(text, "\r\n")
}

// LineBreakCount counts the line breaks in text. CRLF counts once.
func LineBreakCount(text string) int {
	count := 0
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '\r':
			count++
			if i+1 < len(text) && text[i+1] == '\n' {
				i++
			}
		case '\n':
			count++
		}
	}
	return count
}

// LastLine returns the text after the last line break, or text itself when
// it has none.
func LastLine(text string) string {
	idx := strings.LastIndexAny(text, "\r\n")
	if idx < 0 {
		return text
	}
	return text[idx+1:]
}

// FirstLine returns the text before the first line break.
func FirstLine(text string) string {
	idx := strings.IndexAny(text, "\r\n")
	if idx < 0 {
		return text
	}
	return text[:idx]
}

// FirstNonWhitespace returns the byte index of the first non-whitespace rune
// in text, or -1.
func FirstNonWhitespace(text string) int {
	return strings.IndexFunc(text, func(r rune) bool { return !unicode.IsSpace(r) })
}

// SplitLines splits text after each line break, keeping the breaks.
func SplitLines(text string) []string {
	var lines []string
	start := 0
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '\r':
			if i+1 < len(text) && text[i+1] == '\n' {
				i++
			}
			lines = append(lines, text[start:i+1])
			start = i + 1
		case '\n':
			lines = append(lines, text[start:i+1])
			start = i + 1
		}
	}
	if start < len(text) || len(lines) == 0 {
		lines = append(lines, text[start:])
	}
	return lines
}

// TrimLineBreak removes a single trailing line break sequence.
func TrimLineBreak(line string) string {
	line = strings.TrimSuffix(line, "\n")
	return strings.TrimSuffix(line, "\r")
}
