package syntax

import "github.com/yaklabco/triviafmt/pkg/textutil"

// TriviaKind classifies a trivia item.
type TriviaKind uint8

const (
	// TriviaNone marks the absent trivia item.
	TriviaNone TriviaKind = iota
	TriviaWhitespace
	TriviaEndOfLine
	TriviaLineComment
	TriviaBlockComment
	TriviaLineContinuation
	// TriviaDocComment is structured: its tokens are the comment exteriors
	// and text runs. It includes the line break that ends it.
	TriviaDocComment
	// TriviaDirective is structured and includes the line break that ends it.
	TriviaDirective
	// TriviaSkipped holds text the lexer could not turn into tokens.
	TriviaSkipped
)

var triviaKindNames = [...]string{
	TriviaNone:             "None",
	TriviaWhitespace:       "Whitespace",
	TriviaEndOfLine:        "EndOfLine",
	TriviaLineComment:      "LineComment",
	TriviaBlockComment:     "BlockComment",
	TriviaLineContinuation: "LineContinuation",
	TriviaDocComment:       "DocComment",
	TriviaDirective:        "Directive",
	TriviaSkipped:          "Skipped",
}

func (k TriviaKind) String() string {
	if int(k) < len(triviaKindNames) {
		return triviaKindNames[k]
	}
	return "Unknown"
}

// Trivia is a non-grammar item attached to a token.
// The zero value is the absent item.
type Trivia struct {
	Kind TriviaKind
	Span Span
	Text string

	// Elastic marks synthetic whitespace inserted by a transformation that
	// carries no formatting intent of its own.
	Elastic bool

	// Structure holds the nested tokens of structured trivia.
	Structure *Structure
}

// IsZero reports whether t is the absent item.
func (t Trivia) IsZero() bool {
	return t.Kind == TriviaNone
}

// IsWhitespaceOrEndOfLine reports whether t is layout rather than content.
func (t Trivia) IsWhitespaceOrEndOfLine() bool {
	return t.Kind == TriviaWhitespace || t.Kind == TriviaEndOfLine
}

// IsEndOfLine reports whether t is a line break.
func (t Trivia) IsEndOfLine() bool {
	return t.Kind == TriviaEndOfLine
}

// IsComment reports whether t is a line or block comment.
func (t Trivia) IsComment() bool {
	return t.Kind == TriviaLineComment || t.Kind == TriviaBlockComment
}

// IsCommentOrDoc reports whether t is a regular or documentation comment.
func (t Trivia) IsCommentOrDoc() bool {
	return t.IsComment() || t.Kind == TriviaDocComment
}

// IsMultiLineComment reports whether t is a block comment spanning lines.
func (t Trivia) IsMultiLineComment() bool {
	return t.Kind == TriviaBlockComment && textutil.ContainsLineBreak(t.Text)
}

// HasStructure reports whether t carries nested tokens.
func (t Trivia) HasStructure() bool {
	return t.Structure != nil
}

// Width returns the width of the item's text in bytes.
func (t Trivia) Width() int {
	return len(t.Text)
}

// ElasticSpace returns an elastic single space.
func ElasticSpace() Trivia {
	return Trivia{Kind: TriviaWhitespace, Text: " ", Elastic: true}
}

// ElasticNewline returns an elastic line break.
func ElasticNewline() Trivia {
	return Trivia{Kind: TriviaEndOfLine, Text: "\n", Elastic: true}
}

// ElasticMarker returns a zero-width elastic marker.
func ElasticMarker() Trivia {
	return Trivia{Kind: TriviaWhitespace, Elastic: true}
}

// Whitespace returns a synthetic whitespace item.
func Whitespace(text string) Trivia {
	return Trivia{Kind: TriviaWhitespace, Text: text}
}

// EndOfLine returns a synthetic line break item.
func EndOfLine(newline string) Trivia {
	return Trivia{Kind: TriviaEndOfLine, Text: newline}
}

// Structure is the nested token sequence of a structured trivia item.
type Structure struct {
	Tokens []Token
}

// FirstToken returns the first token of the structure, if any.
func (s *Structure) FirstToken() (Token, bool) {
	if s == nil || len(s.Tokens) == 0 {
		return Token{}, false
	}
	return s.Tokens[0], true
}

// LastToken returns the last token of the structure, if any.
func (s *Structure) LastToken() (Token, bool) {
	if s == nil || len(s.Tokens) == 0 {
		return Token{}, false
	}
	return s.Tokens[len(s.Tokens)-1], true
}

// OnlyWhitespace reports whether every item in list is whitespace or a line
// break.
func OnlyWhitespace(list []Trivia) bool {
	for _, t := range list {
		if !t.IsWhitespaceOrEndOfLine() {
			return false
		}
	}
	return true
}

// Render concatenates the text of list.
func Render(list []Trivia) string {
	n := 0
	for _, t := range list {
		n += len(t.Text)
	}
	buf := make([]byte, 0, n)
	for _, t := range list {
		buf = append(buf, t.Text...)
	}
	return string(buf)
}
