package trivia

import (
	"iter"
	"slices"

	"github.com/yaklabco/triviafmt/pkg/syntax"
)

// List is the trivia of one gap: the trailing trivia of the first token
// followed by the leading trivia of the second. It does not copy either.
type List struct {
	trailing []syntax.Trivia
	leading  []syntax.Trivia
}

// NewList returns the gap view between token1 and token2.
func NewList(token1, token2 syntax.Token) List {
	return List{trailing: token1.Trailing, leading: token2.Leading}
}

// Len returns the number of items.
func (l List) Len() int {
	return len(l.trailing) + len(l.leading)
}

// At returns item i. It panics when i is out of range.
func (l List) At(i int) syntax.Trivia {
	if i < len(l.trailing) {
		return l.trailing[i]
	}
	return l.leading[i-len(l.trailing)]
}

// All iterates the items in order.
func (l List) All() iter.Seq2[int, syntax.Trivia] {
	return func(yield func(int, syntax.Trivia) bool) {
		for i, t := range l.trailing {
			if !yield(i, t) {
				return
			}
		}
		for i, t := range l.leading {
			if !yield(len(l.trailing)+i, t) {
				return
			}
		}
	}
}

// Items returns a copy of the items as one slice.
func (l List) Items() []syntax.Trivia {
	return slices.Concat(l.trailing, l.leading)
}
