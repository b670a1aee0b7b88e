// Package syntax defines the read-only token and trivia graph consumed by the
// trivia formatter.
//
// A source file is a flat sequence of tokens. Every token owns the trivia
// (whitespace, line breaks, comments, directives, skipped text) around it:
// trailing trivia runs up to and including the first line break after the
// token, and everything else before the next token is its leading trivia.
package syntax

import "fmt"

// Span is a half-open byte range [Start, End) in the source text.
type Span struct {
	Start int
	End   int
}

// Len returns the span width in bytes.
func (s Span) Len() int {
	return s.End - s.Start
}

// IsEmpty reports whether the span has no width.
func (s Span) IsEmpty() bool {
	return s.Start == s.End
}

// Contains reports whether pos lies inside the span.
func (s Span) Contains(pos int) bool {
	return pos >= s.Start && pos < s.End
}

// Cover returns the smallest span containing both s and other.
func (s Span) Cover(other Span) Span {
	return Span{Start: min(s.Start, other.Start), End: max(s.End, other.End)}
}

func (s Span) String() string {
	return fmt.Sprintf("[%d,%d)", s.Start, s.End)
}
