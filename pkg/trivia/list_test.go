package trivia_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/triviafmt/pkg/syntax"
	"github.com/yaklabco/triviafmt/pkg/trivia"
)

func TestList(t *testing.T) {
	t.Parallel()

	token1 := syntax.Token{Kind: syntax.TokenIdentifier, Text: "a", Trailing: []syntax.Trivia{ws(" "), lineComment("// c")}}
	token2 := syntax.Token{Kind: syntax.TokenIdentifier, Text: "b", Leading: []syntax.Trivia{eol()}}

	list := trivia.NewList(token1, token2)
	assert.Equal(t, 3, list.Len())
	assert.Equal(t, " ", list.At(0).Text)
	assert.Equal(t, "// c", list.At(1).Text)
	assert.Equal(t, "\n", list.At(2).Text)
	assert.Panics(t, func() { list.At(3) })

	var indexes []int
	var texts []string
	for i, item := range list.All() {
		indexes = append(indexes, i)
		texts = append(texts, item.Text)
	}
	assert.Equal(t, []int{0, 1, 2}, indexes)
	assert.Equal(t, []string{" ", "// c", "\n"}, texts)

	items := list.Items()
	items[0].Text = "changed"
	assert.Equal(t, " ", token1.Trailing[0].Text)
}

func TestListStopsEarly(t *testing.T) {
	t.Parallel()

	token1 := syntax.Token{Kind: syntax.TokenIdentifier, Trailing: []syntax.Trivia{ws(" "), ws("  ")}}
	token2 := syntax.Token{Kind: syntax.TokenIdentifier, Leading: []syntax.Trivia{eol()}}

	count := 0
	for range trivia.NewList(token1, token2).All() {
		count++
		if count == 2 {
			break
		}
	}
	assert.Equal(t, 2, count)
}

func TestEmptyList(t *testing.T) {
	t.Parallel()

	list := trivia.NewList(syntax.Token{}, syntax.Token{})
	assert.Zero(t, list.Len())
	assert.Empty(t, list.Items())
}
