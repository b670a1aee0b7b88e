package syntax

import "strings"

// TokenKind classifies a token.
type TokenKind uint8

const (
	// TokenNone marks the absent token.
	TokenNone TokenKind = iota
	TokenEndOfFile
	TokenIdentifier
	TokenKeyword
	TokenNumber
	TokenString
	TokenOpenBrace
	TokenCloseBrace
	TokenOpenParen
	TokenCloseParen
	TokenOpenBracket
	TokenCloseBracket
	TokenComma
	TokenSemicolon
	TokenColon
	TokenDot
	TokenOperator

	// Tokens that only appear inside structured trivia.
	TokenHash
	TokenDirectiveName
	TokenDirectiveText
	TokenDocExterior
	TokenDocText
	TokenSkipped
)

var tokenKindNames = [...]string{
	TokenNone:          "None",
	TokenEndOfFile:     "EndOfFile",
	TokenIdentifier:    "Identifier",
	TokenKeyword:       "Keyword",
	TokenNumber:        "Number",
	TokenString:        "String",
	TokenOpenBrace:     "OpenBrace",
	TokenCloseBrace:    "CloseBrace",
	TokenOpenParen:     "OpenParen",
	TokenCloseParen:    "CloseParen",
	TokenOpenBracket:   "OpenBracket",
	TokenCloseBracket:  "CloseBracket",
	TokenComma:         "Comma",
	TokenSemicolon:     "Semicolon",
	TokenColon:         "Colon",
	TokenDot:           "Dot",
	TokenOperator:      "Operator",
	TokenHash:          "Hash",
	TokenDirectiveName: "DirectiveName",
	TokenDirectiveText: "DirectiveText",
	TokenDocExterior:   "DocExterior",
	TokenDocText:       "DocText",
	TokenSkipped:       "Skipped",
}

func (k TokenKind) String() string {
	if int(k) < len(tokenKindNames) {
		return tokenKindNames[k]
	}
	return "Unknown"
}

// IsOpenBracket reports whether k opens a bracketed group.
func (k TokenKind) IsOpenBracket() bool {
	return k == TokenOpenBrace || k == TokenOpenParen || k == TokenOpenBracket
}

// IsCloseBracket reports whether k closes a bracketed group.
func (k TokenKind) IsCloseBracket() bool {
	return k == TokenCloseBrace || k == TokenCloseParen || k == TokenCloseBracket
}

// Token is a lexical unit. The zero value is the absent token.
type Token struct {
	Kind TokenKind
	Text string
	Span Span

	// Missing marks a zero-width token synthesized by error recovery.
	Missing bool

	Leading  []Trivia
	Trailing []Trivia
}

// IsZero reports whether t is the absent token.
func (t Token) IsZero() bool {
	return t.Kind == TokenNone
}

// FullSpan returns the span of the token including its trivia.
func (t Token) FullSpan() Span {
	full := t.Span
	if len(t.Leading) > 0 {
		full.Start = t.Leading[0].Span.Start
	}
	if len(t.Trailing) > 0 {
		full.End = t.Trailing[len(t.Trailing)-1].Span.End
	}
	return full
}

// Is reports whether t has the given kind and, case-insensitively, text.
func (t Token) Is(kind TokenKind, text string) bool {
	return t.Kind == kind && strings.EqualFold(t.Text, text)
}

// FullText returns the token text with its trivia.
func (t Token) FullText() string {
	return Render(t.Leading) + t.Text + Render(t.Trailing)
}
