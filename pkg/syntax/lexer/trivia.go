package lexer

import (
	"strings"

	"github.com/yaklabco/triviafmt/pkg/syntax"
)

// trailingTrivia collects trivia after a token through the first line break.
func (lx *Lexer) trailingTrivia() []syntax.Trivia {
	var out []syntax.Trivia
	for !lx.cur.eof() {
		start := lx.cur.off

		if isSpace(lx.cur.peek()) {
			lx.cur.skipWhile(isSpace)
			out = append(out, lx.trivia(syntax.TriviaWhitespace, start))
			continue
		}
		if n := lx.cur.lineBreakLen(); n > 0 {
			lx.cur.off += n
			return append(out, lx.trivia(syntax.TriviaEndOfLine, start))
		}
		if kind, ok := lx.scanComment(); ok {
			out = append(out, lx.trivia(kind, start))
			continue
		}
		if lx.scanContinuation() {
			out = append(out, lx.trivia(syntax.TriviaLineContinuation, start))
			continue
		}
		break
	}
	return out
}

// leadingTrivia collects trivia before the next token.
func (lx *Lexer) leadingTrivia() []syntax.Trivia {
	var out []syntax.Trivia
	for !lx.cur.eof() {
		start := lx.cur.off

		if isSpace(lx.cur.peek()) {
			lx.cur.skipWhile(isSpace)
			out = append(out, lx.trivia(syntax.TriviaWhitespace, start))
			continue
		}
		if n := lx.cur.lineBreakLen(); n > 0 {
			lx.cur.off += n
			out = append(out, lx.trivia(syntax.TriviaEndOfLine, start))
			continue
		}
		if lx.cur.atLineStart() {
			if lx.atDocComment() {
				out = append(out, lx.scanDocComment())
				continue
			}
			if lx.atDirective() {
				out = append(out, lx.scanDirective())
				continue
			}
		}
		if kind, ok := lx.scanComment(); ok {
			out = append(out, lx.trivia(kind, start))
			continue
		}
		if lx.scanContinuation() {
			out = append(out, lx.trivia(syntax.TriviaLineContinuation, start))
			continue
		}
		if !lx.canStartToken() {
			out = append(out, lx.scanSkipped())
			continue
		}
		break
	}
	return out
}

func (lx *Lexer) trivia(kind syntax.TriviaKind, start int) syntax.Trivia {
	return syntax.Trivia{
		Kind: kind,
		Span: syntax.Span{Start: start, End: lx.cur.off},
		Text: lx.cur.text[start:lx.cur.off],
	}
}

// scanComment consumes a line or block comment at the cursor.
func (lx *Lexer) scanComment() (syntax.TriviaKind, bool) {
	r := lx.rules
	switch {
	case lx.cur.hasPrefix(r.lineComment), r.remComments && lx.atRem():
		lx.cur.skipToLineBreak()
		return syntax.TriviaLineComment, true
	case r.blockComments && lx.cur.hasPrefix("/*"):
		lx.cur.off += 2
		if idx := strings.Index(lx.cur.text[lx.cur.off:], "*/"); idx >= 0 {
			lx.cur.off += idx + 2
		} else {
			lx.cur.off = len(lx.cur.text)
		}
		return syntax.TriviaBlockComment, true
	}
	return syntax.TriviaNone, false
}

// atRem matches a REM comment keyword.
func (lx *Lexer) atRem() bool {
	return lx.cur.hasPrefixFold("rem") && !isIdentByte(lx.cur.peekAt(3)) && lx.cur.peekAt(3) < 0x80
}

// scanContinuation consumes a " _" line continuation: an underscore after a
// blank, followed only by blanks, a comment or the end of the line.
func (lx *Lexer) scanContinuation() bool {
	if !lx.rules.continuations || lx.cur.peek() != '_' {
		return false
	}
	if lx.cur.off > 0 && !isSpace(lx.cur.text[lx.cur.off-1]) {
		return false
	}

	save := lx.cur.off
	lx.cur.bump()
	lx.cur.skipWhile(isSpace)
	ok := lx.cur.eof() || lx.cur.lineBreakLen() > 0 || lx.cur.hasPrefix(lx.rules.lineComment)
	lx.cur.off = save
	if !ok {
		return false
	}

	lx.cur.bump()
	return true
}

func (lx *Lexer) atDocComment() bool {
	marker := lx.rules.docComment
	return lx.cur.hasPrefix(marker) && !lx.cur.hasPrefix(marker+marker[:1])
}

// scanDocComment consumes consecutive documentation comment lines, including
// the line break of each, as one structured item.
func (lx *Lexer) scanDocComment() syntax.Trivia {
	marker := lx.rules.docComment
	start := lx.cur.off

	var (
		tokens  []syntax.Token
		leading []syntax.Trivia
	)
	for {
		exteriorStart := lx.cur.off
		lx.cur.off += len(marker)
		tokens = append(tokens, syntax.Token{
			Kind:    syntax.TokenDocExterior,
			Text:    marker,
			Span:    syntax.Span{Start: exteriorStart, End: lx.cur.off},
			Leading: leading,
		})

		textStart := lx.cur.off
		lx.cur.skipToLineBreak()
		if lx.cur.off > textStart {
			tokens = append(tokens, syntax.Token{
				Kind: syntax.TokenDocText,
				Text: lx.cur.text[textStart:lx.cur.off],
				Span: syntax.Span{Start: textStart, End: lx.cur.off},
			})
		}

		n := lx.cur.lineBreakLen()
		if n == 0 {
			break
		}
		eolStart := lx.cur.off
		lx.cur.off += n
		last := &tokens[len(tokens)-1]
		last.Trailing = append(last.Trailing, lx.trivia(syntax.TriviaEndOfLine, eolStart))

		save := lx.cur.off
		lx.cur.skipWhile(isSpace)
		if !lx.atDocComment() {
			lx.cur.off = save
			break
		}
		leading = nil
		if lx.cur.off > save {
			leading = []syntax.Trivia{lx.trivia(syntax.TriviaWhitespace, save)}
		}
	}

	item := lx.trivia(syntax.TriviaDocComment, start)
	item.Structure = &syntax.Structure{Tokens: tokens}
	return item
}

func (lx *Lexer) atDirective() bool {
	if lx.cur.peek() != '#' {
		return false
	}
	if lx.rules.continuations {
		b := lx.cur.peekAt(1)
		return b|0x20 >= 'a' && b|0x20 <= 'z'
	}
	return true
}

// scanDirective consumes a preprocessor line, including its line break, as
// one structured item: the hash, the directive name and the remaining text.
func (lx *Lexer) scanDirective() syntax.Trivia {
	start := lx.cur.off
	lx.cur.bump()
	tokens := []syntax.Token{{
		Kind: syntax.TokenHash,
		Text: "#",
		Span: syntax.Span{Start: start, End: lx.cur.off},
	}}
	addTrailing := func(item syntax.Trivia) {
		last := &tokens[len(tokens)-1]
		last.Trailing = append(last.Trailing, item)
	}

	var gap []syntax.Trivia
	if wsStart := lx.cur.off; isSpace(lx.cur.peek()) {
		lx.cur.skipWhile(isSpace)
		gap = append(gap, lx.trivia(syntax.TriviaWhitespace, wsStart))
	}

	if nameStart := lx.cur.off; lx.isIdentStart() {
		lx.scanIdent()
		tokens = append(tokens, syntax.Token{
			Kind:    syntax.TokenDirectiveName,
			Text:    lx.cur.text[nameStart:lx.cur.off],
			Span:    syntax.Span{Start: nameStart, End: lx.cur.off},
			Leading: gap,
		})
	} else {
		for _, item := range gap {
			addTrailing(item)
		}
	}

	if wsStart := lx.cur.off; isSpace(lx.cur.peek()) {
		lx.cur.skipWhile(isSpace)
		addTrailing(lx.trivia(syntax.TriviaWhitespace, wsStart))
	}

	textStart := lx.cur.off
	lx.skipDirectiveBody()
	textEnd := textStart + len(strings.TrimRight(lx.cur.text[textStart:lx.cur.off], " \t\v\f"))
	if textEnd > textStart {
		tokens = append(tokens, syntax.Token{
			Kind: syntax.TokenDirectiveText,
			Text: lx.cur.text[textStart:textEnd],
			Span: syntax.Span{Start: textStart, End: textEnd},
		})
	}
	if lx.cur.off > textEnd {
		addTrailing(syntax.Trivia{
			Kind: syntax.TriviaWhitespace,
			Span: syntax.Span{Start: textEnd, End: lx.cur.off},
			Text: lx.cur.text[textEnd:lx.cur.off],
		})
	}

	if n := lx.cur.lineBreakLen(); n > 0 {
		eolStart := lx.cur.off
		lx.cur.off += n
		addTrailing(lx.trivia(syntax.TriviaEndOfLine, eolStart))
	}

	item := lx.trivia(syntax.TriviaDirective, start)
	item.Structure = &syntax.Structure{Tokens: tokens}
	return item
}

// skipDirectiveBody advances to the line break ending the directive. In C a
// backslash before the line break continues the directive.
func (lx *Lexer) skipDirectiveBody() {
	for {
		lx.cur.skipToLineBreak()
		if lx.cur.eof() || !lx.rules.backslashEscapes || lx.cur.text[lx.cur.off-1] != '\\' {
			return
		}
		lx.cur.off += lx.cur.lineBreakLen()
	}
}

// scanSkipped consumes a run of bytes that cannot start a token.
func (lx *Lexer) scanSkipped() syntax.Trivia {
	start := lx.cur.off
	for {
		_, size := lx.cur.peekRune()
		lx.cur.off += max(size, 1)
		if lx.cur.eof() || isSpace(lx.cur.peek()) || lx.cur.lineBreakLen() > 0 ||
			lx.canStartToken() || lx.atCommentStart() {
			break
		}
	}

	item := lx.trivia(syntax.TriviaSkipped, start)
	item.Structure = &syntax.Structure{Tokens: []syntax.Token{{
		Kind: syntax.TokenSkipped,
		Text: item.Text,
		Span: item.Span,
	}}}
	return item
}

func (lx *Lexer) atCommentStart() bool {
	return lx.cur.hasPrefix(lx.rules.lineComment) ||
		(lx.rules.blockComments && lx.cur.hasPrefix("/*"))
}
