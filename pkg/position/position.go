// Package position tracks line and column positions inside a single trivia gap.
//
// A LineColumn is an absolute position relative to the start of the gap, and a
// Delta is a relative offset that can be composed with other deltas or applied
// to a LineColumn. Both are plain values; every operation returns a new value.
package position

import "fmt"

// LineColumn is a position relative to the start of a gap.
type LineColumn struct {
	// Line is the number of line breaks seen since the start of the gap.
	Line int

	// Column is the tab-expanded column on the current line.
	Column int

	// WhitespaceOnly reports whether everything seen since the last line
	// break is whitespace.
	WhitespaceOnly bool
}

// With advances the position by delta.
// A delta without line breaks moves the column; otherwise the line advances
// and the column is reset to the delta's spaces.
func (lc LineColumn) With(delta Delta) LineColumn {
	if delta.Lines <= 0 {
		return LineColumn{
			Line:           lc.Line,
			Column:         lc.Column + delta.Spaces,
			WhitespaceOnly: lc.WhitespaceOnly && delta.WhitespaceOnly,
		}
	}

	return LineColumn{
		Line:           lc.Line + delta.Lines,
		Column:         delta.Spaces,
		WhitespaceOnly: delta.WhitespaceOnly,
	}
}

// AtLineStart reports whether the position sits at column 0 of a line other
// than the first one in the gap.
func (lc LineColumn) AtLineStart() bool {
	return lc.Line > 0 && lc.Column == 0
}

func (lc LineColumn) String() string {
	return fmt.Sprintf("%d:%d", lc.Line, lc.Column)
}

// Delta is a relative line/column offset.
type Delta struct {
	// Lines is the number of line breaks.
	Lines int

	// Spaces is the column offset. After a line break it is the column on
	// the new line; otherwise it accumulates.
	Spaces int

	// WhitespaceOnly reports whether the text the delta was measured from
	// contained only whitespace on its last line.
	WhitespaceOnly bool

	// ForceUpdate requests that the whitespace be materialized even when the
	// computed result looks unchanged.
	ForceUpdate bool
}

// Empty returns the identity delta: no lines, no spaces, whitespace only.
func Empty() Delta {
	return Delta{WhitespaceOnly: true}
}

// With composes d followed by other.
//
// ForceUpdate is sticky. Composing a line break onto a delta that already
// carries spaces also forces an update, since those trailing spaces are
// dropped by the break.
func (d Delta) With(other Delta) Delta {
	if other.Lines <= 0 {
		return Delta{
			Lines:          d.Lines,
			Spaces:         d.Spaces + other.Spaces,
			WhitespaceOnly: d.WhitespaceOnly && other.WhitespaceOnly,
			ForceUpdate:    d.ForceUpdate || other.ForceUpdate,
		}
	}

	return Delta{
		Lines:          d.Lines + other.Lines,
		Spaces:         other.Spaces,
		WhitespaceOnly: other.WhitespaceOnly,
		ForceUpdate:    d.ForceUpdate || other.ForceUpdate || d.Spaces > 0,
	}
}

// IsZero reports whether the delta moves the position at all.
func (d Delta) IsZero() bool {
	return d.Lines == 0 && d.Spaces == 0
}

func (d Delta) String() string {
	return fmt.Sprintf("+%dL+%dC", d.Lines, d.Spaces)
}
