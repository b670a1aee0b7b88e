// Package rules defines the declarative formatting targets applied by the
// trivia formatter: LineColumnRule for the gap between two trivia items and
// the token-level line and space operations that can override it.
package rules

import "fmt"

// SpaceOp selects how spaces on a single line are resolved.
type SpaceOp uint8

const (
	// SpacePreserve keeps existing spaces when they exceed the requested count.
	SpacePreserve SpaceOp = iota
	// SpaceForce uses exactly the requested count.
	SpaceForce
)

// LineOp selects how line breaks are resolved.
type LineOp uint8

const (
	// LinePreserve keeps existing line breaks when they exceed the requested count.
	LinePreserve LineOp = iota
	// LineForce uses exactly the requested count.
	LineForce
)

// IndentOp selects where the indentation of an item starting a line comes from.
type IndentOp uint8

const (
	// IndentAbsolute uses the rule's Indentation.
	IndentAbsolute IndentOp = iota
	// IndentDefault asks the host for the base indentation at the position.
	IndentDefault
	// IndentGiven uses the gap's requested spaces at the end of the gap, and
	// the indentation observed on the last line of the gap elsewhere.
	IndentGiven
	// IndentFollow aligns with the column of the preceding item.
	IndentFollow
	// IndentPreserve keeps the existing indentation.
	IndentPreserve
)

func (op IndentOp) String() string {
	switch op {
	case IndentAbsolute:
		return "absolute"
	case IndentDefault:
		return "default"
	case IndentGiven:
		return "given"
	case IndentFollow:
		return "follow"
	case IndentPreserve:
		return "preserve"
	default:
		return fmt.Sprintf("IndentOp(%d)", uint8(op))
	}
}

// LineColumnRule describes what the whitespace between two trivia items
// should be. Rules are values; the With methods return modified copies.
type LineColumnRule struct {
	SpaceOp  SpaceOp
	LineOp   LineOp
	IndentOp IndentOp

	// Lines is the requested number of line breaks. Negative values request
	// none.
	Lines int

	// Spaces is the requested spacing when the next item stays on the line.
	Spaces int

	// Indentation is the column used by IndentAbsolute.
	Indentation int
}

// Preserve keeps existing lines, spaces and indentation.
func Preserve() LineColumnRule {
	return LineColumnRule{
		SpaceOp:  SpacePreserve,
		LineOp:   LinePreserve,
		IndentOp: IndentPreserve,
	}
}

// PreserveWithGivenSpaces keeps existing lines and spacing, but indents to
// spaces when the next item starts a line.
func PreserveWithGivenSpaces(spaces int) LineColumnRule {
	return LineColumnRule{
		SpaceOp:     SpacePreserve,
		LineOp:      LinePreserve,
		IndentOp:    IndentAbsolute,
		Lines:       0,
		Spaces:      0,
		Indentation: spaces,
	}
}

// PreserveLinesWithDefaultIndentation requests at least lines line breaks and
// the host's base indentation.
func PreserveLinesWithDefaultIndentation(lines int) LineColumnRule {
	return LineColumnRule{
		SpaceOp:     SpacePreserve,
		LineOp:      LinePreserve,
		IndentOp:    IndentDefault,
		Lines:       lines,
		Spaces:      0,
		Indentation: -1,
	}
}

// PreserveLinesWithGivenIndentation requests at least lines line breaks and
// the given indentation.
func PreserveLinesWithGivenIndentation(lines int) LineColumnRule {
	return LineColumnRule{
		SpaceOp:     SpacePreserve,
		LineOp:      LinePreserve,
		IndentOp:    IndentGiven,
		Lines:       lines,
		Spaces:      0,
		Indentation: -1,
	}
}

// PreserveLinesWithAbsoluteIndentation requests at least lines line breaks
// and a fixed indentation.
func PreserveLinesWithAbsoluteIndentation(lines, indentation int) LineColumnRule {
	return LineColumnRule{
		SpaceOp:     SpacePreserve,
		LineOp:      LinePreserve,
		IndentOp:    IndentAbsolute,
		Lines:       lines,
		Spaces:      0,
		Indentation: indentation,
	}
}

// PreserveLinesWithFollowingPrecedingIndentation keeps existing lines and
// aligns with the preceding item.
func PreserveLinesWithFollowingPrecedingIndentation() LineColumnRule {
	return LineColumnRule{
		SpaceOp:     SpacePreserve,
		LineOp:      LinePreserve,
		IndentOp:    IndentFollow,
		Lines:       -1,
		Spaces:      -1,
		Indentation: -1,
	}
}

// ForceSpaces requests exactly spaces spaces and no line breaks.
func ForceSpaces(spaces int) LineColumnRule {
	return LineColumnRule{
		SpaceOp:     SpaceForce,
		LineOp:      LineForce,
		IndentOp:    IndentPreserve,
		Lines:       0,
		Spaces:      spaces,
		Indentation: 0,
	}
}

// PreserveSpacesOrUseDefaultIndentation keeps at least spaces spaces on one
// line and uses the base indentation after a line break.
func PreserveSpacesOrUseDefaultIndentation(spaces int) LineColumnRule {
	return LineColumnRule{
		SpaceOp:     SpacePreserve,
		LineOp:      LinePreserve,
		IndentOp:    IndentDefault,
		Lines:       -1,
		Spaces:      spaces,
		Indentation: -1,
	}
}

// ForceSpacesOrUseDefaultIndentation uses exactly spaces spaces on one line
// and the base indentation after a line break.
func ForceSpacesOrUseDefaultIndentation(spaces int) LineColumnRule {
	return LineColumnRule{
		SpaceOp:     SpaceForce,
		LineOp:      LinePreserve,
		IndentOp:    IndentDefault,
		Lines:       -1,
		Spaces:      spaces,
		Indentation: -1,
	}
}

// WithLines returns a copy of r requesting lines line breaks under op.
func (r LineColumnRule) WithLines(lines int, op LineOp) LineColumnRule {
	r.Lines = lines
	r.LineOp = op
	return r
}

// WithSpaces returns a copy of r requesting spaces spaces.
func (r LineColumnRule) WithSpaces(spaces int) LineColumnRule {
	r.Spaces = spaces
	return r
}

// WithSpaceOp returns a copy of r with a different space operation.
func (r LineColumnRule) WithSpaceOp(op SpaceOp) LineColumnRule {
	r.SpaceOp = op
	return r
}

// WithIndentation returns a copy of r using indentation under op.
func (r LineColumnRule) WithIndentation(indentation int, op IndentOp) LineColumnRule {
	r.Indentation = indentation
	r.IndentOp = op
	return r
}
