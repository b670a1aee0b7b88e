package lexer

import (
	"strings"
	"unicode/utf8"
)

// cursor is a byte position in the source text.
type cursor struct {
	text string
	off  int
}

func (c *cursor) eof() bool {
	return c.off >= len(c.text)
}

// peek returns the current byte, or 0 at the end.
func (c *cursor) peek() byte {
	return c.peekAt(0)
}

// peekAt returns the byte n positions ahead, or 0 past the end.
func (c *cursor) peekAt(n int) byte {
	if c.off+n >= len(c.text) || c.off+n < 0 {
		return 0
	}
	return c.text[c.off+n]
}

// peekRune decodes the rune at the cursor.
func (c *cursor) peekRune() (rune, int) {
	if c.eof() {
		return utf8.RuneError, 0
	}
	return utf8.DecodeRuneInString(c.text[c.off:])
}

func (c *cursor) bump() {
	if !c.eof() {
		c.off++
	}
}

func (c *cursor) hasPrefix(prefix string) bool {
	return strings.HasPrefix(c.text[c.off:], prefix)
}

// hasPrefixFold reports a case-insensitive ASCII prefix match.
func (c *cursor) hasPrefixFold(prefix string) bool {
	if len(c.text)-c.off < len(prefix) {
		return false
	}
	return strings.EqualFold(c.text[c.off:c.off+len(prefix)], prefix)
}

func (c *cursor) skipWhile(fn func(byte) bool) {
	for !c.eof() && fn(c.text[c.off]) {
		c.off++
	}
}

// skipToLineBreak advances to the next line break or the end of the text.
func (c *cursor) skipToLineBreak() {
	for !c.eof() && c.lineBreakLen() == 0 {
		c.off++
	}
}

// lineBreakLen returns the length of the line break at the cursor, or 0.
func (c *cursor) lineBreakLen() int {
	switch c.peek() {
	case '\n':
		return 1
	case '\r':
		if c.peekAt(1) == '\n' {
			return 2
		}
		return 1
	}
	return 0
}

// atLineStart reports whether only blanks precede the cursor on its line.
func (c *cursor) atLineStart() bool {
	for i := c.off - 1; i >= 0; i-- {
		switch c.text[i] {
		case '\n', '\r':
			return true
		case ' ', '\t', '\v', '\f':
			continue
		default:
			return false
		}
	}
	return true
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\v' || b == '\f'
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

func isIdentByte(b byte) bool {
	return b == '_' || isDigit(b) || (b|0x20 >= 'a' && b|0x20 <= 'z')
}
