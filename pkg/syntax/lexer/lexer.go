// Package lexer splits source text into tokens carrying their trivia.
//
// Trailing trivia runs from the end of a token up to and including the first
// line break. Everything else before a token is its leading trivia, and the
// end-of-file token carries whatever follows the last token. Lexing never
// fails: bytes that cannot start a token become skipped trivia, and brackets
// left open at the end of the file are closed with missing tokens.
package lexer

import (
	"unicode"

	"github.com/yaklabco/triviafmt/pkg/syntax"
)

// Lexer produces tokens one at a time.
type Lexer struct {
	rules    *rules
	cur      cursor
	brackets []syntax.TokenKind

	tail      []syntax.Trivia
	tailStart int
	atEnd     bool
	finished  bool
}

// New returns a lexer for text. Unknown dialects lex as C.
func New(dialect syntax.Dialect, text string) *Lexer {
	return &Lexer{
		rules: rulesFor(dialect),
		cur:   cursor{text: text},
	}
}

// Lex tokenizes text into a tree. Rendering the tree reproduces text exactly.
func Lex(dialect syntax.Dialect, text string) *syntax.Tree {
	lx := New(dialect, text)

	tokens := make([]syntax.Token, 0, len(text)/4+1)
	for {
		tok := lx.Next()
		tokens = append(tokens, tok)
		if tok.Kind == syntax.TokenEndOfFile {
			break
		}
	}

	return syntax.NewTree(dialect, text, tokens)
}

// Next returns the next token. After the end of the file it keeps returning
// an empty end-of-file token.
func (lx *Lexer) Next() syntax.Token {
	end := len(lx.cur.text)
	if lx.finished {
		return syntax.Token{Kind: syntax.TokenEndOfFile, Span: syntax.Span{Start: end, End: end}}
	}

	if !lx.atEnd {
		start := lx.cur.off
		leading := lx.leadingTrivia()
		if !lx.cur.eof() {
			tok := lx.scanToken()
			tok.Leading = leading
			tok.Trailing = lx.trailingTrivia()
			return tok
		}
		lx.atEnd = true
		lx.tail = leading
		lx.tailStart = start
	}

	if n := len(lx.brackets); n > 0 {
		open := lx.brackets[n-1]
		lx.brackets = lx.brackets[:n-1]
		return syntax.Token{
			Kind:    closerOf(open),
			Span:    syntax.Span{Start: lx.tailStart, End: lx.tailStart},
			Missing: true,
		}
	}

	lx.finished = true
	return syntax.Token{
		Kind:    syntax.TokenEndOfFile,
		Span:    syntax.Span{Start: end, End: end},
		Leading: lx.tail,
	}
}

func (lx *Lexer) scanToken() syntax.Token {
	start := lx.cur.off
	b := lx.cur.peek()

	var kind syntax.TokenKind
	switch {
	case lx.isIdentStart():
		lx.scanIdent()
		kind = syntax.TokenIdentifier
		if lx.rules.isKeyword(lx.cur.text[start:lx.cur.off]) {
			kind = syntax.TokenKeyword
		}
	case isDigit(b), b == '.' && isDigit(lx.cur.peekAt(1)), lx.isRadixPrefix():
		lx.scanNumber()
		kind = syntax.TokenNumber
	case b == '"', b == '\'' && lx.rules.charLiterals:
		lx.scanString(b)
		kind = syntax.TokenString
	default:
		kind = lx.scanOperator()
	}

	lx.trackBracket(kind)

	return syntax.Token{
		Kind: kind,
		Text: lx.cur.text[start:lx.cur.off],
		Span: syntax.Span{Start: start, End: lx.cur.off},
	}
}

func (lx *Lexer) trackBracket(kind syntax.TokenKind) {
	switch {
	case kind.IsOpenBracket():
		lx.brackets = append(lx.brackets, kind)
	case kind.IsCloseBracket():
		if n := len(lx.brackets); n > 0 && closerOf(lx.brackets[n-1]) == kind {
			lx.brackets = lx.brackets[:n-1]
		}
	}
}

func (lx *Lexer) isIdentStart() bool {
	b := lx.cur.peek()
	if b < 0x80 {
		return b == '_' || (b|0x20 >= 'a' && b|0x20 <= 'z')
	}
	r, _ := lx.cur.peekRune()
	return unicode.IsLetter(r)
}

func (lx *Lexer) scanIdent() {
	for !lx.cur.eof() {
		b := lx.cur.peek()
		if b < 0x80 {
			if !isIdentByte(b) {
				return
			}
			lx.cur.bump()
			continue
		}
		r, size := lx.cur.peekRune()
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return
		}
		lx.cur.off += size
	}
}

// isRadixPrefix matches Basic's &H, &O and &B literals.
func (lx *Lexer) isRadixPrefix() bool {
	if !lx.rules.radixLiterals || lx.cur.peek() != '&' {
		return false
	}
	switch lx.cur.peekAt(1) | 0x20 {
	case 'h', 'o', 'b':
		return isIdentByte(lx.cur.peekAt(2))
	}
	return false
}

func (lx *Lexer) scanNumber() {
	if lx.cur.peek() == '&' {
		lx.cur.off += 2
	}
	for !lx.cur.eof() {
		b := lx.cur.peek()
		switch {
		case isIdentByte(b), b == '.':
			lx.cur.bump()
			if (b|0x20 == 'e' || b|0x20 == 'p') && (lx.cur.peek() == '+' || lx.cur.peek() == '-') {
				lx.cur.bump()
			}
		default:
			return
		}
	}
}

// scanString consumes a quoted literal. C strings use backslash escapes and
// Basic strings double the quote. Unterminated literals end at the line.
func (lx *Lexer) scanString(quote byte) {
	lx.cur.bump()
	for !lx.cur.eof() && lx.cur.lineBreakLen() == 0 {
		b := lx.cur.peek()
		switch {
		case b == '\\' && lx.rules.backslashEscapes:
			lx.cur.bump()
			if lx.cur.lineBreakLen() == 0 {
				lx.cur.bump()
			}
		case b == quote:
			lx.cur.bump()
			if lx.rules.doubledQuotes && lx.cur.peek() == quote {
				lx.cur.bump()
				continue
			}
			return
		default:
			lx.cur.bump()
		}
	}
}

func (lx *Lexer) scanOperator() syntax.TokenKind {
	for _, op := range lx.rules.operators {
		if lx.cur.hasPrefix(op) {
			lx.cur.off += len(op)
			return punctuationKind(op)
		}
	}
	// Not reached: leading trivia absorbs bytes that cannot start a token.
	lx.cur.bump()
	return syntax.TokenOperator
}

// canStartToken reports whether the cursor is at the start of a token.
func (lx *Lexer) canStartToken() bool {
	b := lx.cur.peek()
	switch {
	case lx.isIdentStart(), isDigit(b), b == '"':
		return true
	case b == '\'':
		return lx.rules.charLiterals
	default:
		return b < 0x80 && lx.rules.startsOperator(b)
	}
}
