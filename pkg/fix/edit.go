// Package fix provides the text edit type produced by the trivia formatter
// and the logic to validate, merge and apply edits to a document.
package fix

import (
	"fmt"

	"github.com/yaklabco/triviafmt/pkg/textutil"
)

// TextEdit replaces the bytes [StartOffset, EndOffset) with NewText.
type TextEdit struct {
	// StartOffset is the byte index where the edit begins (inclusive).
	StartOffset int

	// EndOffset is the byte index where the edit ends (exclusive).
	EndOffset int

	// NewText is the replacement text.
	NewText string
}

// Len returns the number of replaced bytes.
func (e TextEdit) Len() int {
	return e.EndOffset - e.StartOffset
}

// IsInsertion reports whether the edit replaces nothing.
func (e TextEdit) IsInsertion() bool {
	return e.StartOffset == e.EndOffset
}

// IsWhitespaceOnly reports whether the replacement text is blank.
func (e TextEdit) IsWhitespaceOnly() bool {
	return textutil.IsBlank(e.NewText)
}

// Touches reports whether offset lies inside the edit or on one of its ends.
func (e TextEdit) Touches(offset int) bool {
	return offset >= e.StartOffset && offset <= e.EndOffset
}

// Shift returns the edit moved by delta bytes.
func (e TextEdit) Shift(delta int) TextEdit {
	e.StartOffset += delta
	e.EndOffset += delta
	return e
}

func (e TextEdit) String() string {
	return fmt.Sprintf("[%d:%d]%q", e.StartOffset, e.EndOffset, e.NewText)
}

// IsNoOp reports whether applying the edit to content changes nothing.
func (e TextEdit) IsNoOp(content []byte) bool {
	if e.StartOffset < 0 || e.EndOffset > len(content) || e.EndOffset < e.StartOffset {
		return false
	}
	return string(content[e.StartOffset:e.EndOffset]) == e.NewText
}

// Builder accumulates edits for one document. Edits are expected in
// ascending order; an edit starting where the previous one ends is merged
// into it, as is an insertion at the offset of a previous insertion.
type Builder struct {
	edits []TextEdit
}

// NewBuilder creates an empty Builder.
func NewBuilder() *Builder {
	return &Builder{edits: make([]TextEdit, 0)}
}

// Replace adds an edit that replaces bytes [start, end) with newText.
func (b *Builder) Replace(start, end int, newText string) {
	if n := len(b.edits); n > 0 {
		last := &b.edits[n-1]
		if last.EndOffset == start && (start != end || last.IsInsertion()) {
			last.EndOffset = end
			last.NewText += newText
			return
		}
	}
	b.edits = append(b.edits, TextEdit{StartOffset: start, EndOffset: end, NewText: newText})
}

// Add appends edits in order.
func (b *Builder) Add(edits ...TextEdit) {
	for _, e := range edits {
		b.Replace(e.StartOffset, e.EndOffset, e.NewText)
	}
}

// Edits returns a copy of the accumulated edits.
func (b *Builder) Edits() []TextEdit {
	out := make([]TextEdit, len(b.edits))
	copy(out, b.edits)
	return out
}
