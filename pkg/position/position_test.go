package position_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/triviafmt/pkg/position"
)

func TestLineColumnWith(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		start position.LineColumn
		delta position.Delta
		want  position.LineColumn
	}{
		{
			name:  "same line adds spaces",
			start: position.LineColumn{Line: 0, Column: 3, WhitespaceOnly: true},
			delta: position.Delta{Spaces: 2, WhitespaceOnly: true},
			want:  position.LineColumn{Line: 0, Column: 5, WhitespaceOnly: true},
		},
		{
			name:  "same line content clears whitespace only",
			start: position.LineColumn{Line: 1, Column: 4, WhitespaceOnly: true},
			delta: position.Delta{Spaces: 5, WhitespaceOnly: false},
			want:  position.LineColumn{Line: 1, Column: 9, WhitespaceOnly: false},
		},
		{
			name:  "line break resets column",
			start: position.LineColumn{Line: 0, Column: 12, WhitespaceOnly: false},
			delta: position.Delta{Lines: 2, Spaces: 4, WhitespaceOnly: true},
			want:  position.LineColumn{Line: 2, Column: 4, WhitespaceOnly: true},
		},
		{
			name:  "negative lines treated as same line",
			start: position.LineColumn{Line: 1, Column: 1, WhitespaceOnly: true},
			delta: position.Delta{Lines: -1, Spaces: 1, WhitespaceOnly: true},
			want:  position.LineColumn{Line: 1, Column: 2, WhitespaceOnly: true},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, tc.start.With(tc.delta))
		})
	}
}

func TestDeltaWith(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		a, b position.Delta
		want position.Delta
	}{
		{
			name: "spaces accumulate on one line",
			a:    position.Delta{Spaces: 2, WhitespaceOnly: true},
			b:    position.Delta{Spaces: 3, WhitespaceOnly: true},
			want: position.Delta{Spaces: 5, WhitespaceOnly: true},
		},
		{
			name: "line break replaces spaces",
			a:    position.Delta{Lines: 1, Spaces: 0, WhitespaceOnly: true},
			b:    position.Delta{Lines: 1, Spaces: 4, WhitespaceOnly: true},
			want: position.Delta{Lines: 2, Spaces: 4, WhitespaceOnly: true},
		},
		{
			name: "trailing spaces before break force update",
			a:    position.Delta{Spaces: 3, WhitespaceOnly: true},
			b:    position.Delta{Lines: 1, WhitespaceOnly: true},
			want: position.Delta{Lines: 1, WhitespaceOnly: true, ForceUpdate: true},
		},
		{
			name: "force update is sticky",
			a:    position.Delta{Lines: 1, WhitespaceOnly: true, ForceUpdate: true},
			b:    position.Delta{Spaces: 2, WhitespaceOnly: true},
			want: position.Delta{Lines: 1, Spaces: 2, WhitespaceOnly: true, ForceUpdate: true},
		},
		{
			name: "whitespace only is anded on one line",
			a:    position.Delta{Spaces: 1, WhitespaceOnly: true},
			b:    position.Delta{Spaces: 1, WhitespaceOnly: false},
			want: position.Delta{Spaces: 2, WhitespaceOnly: false},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, tc.a.With(tc.b))
		})
	}
}

func TestEmptyIsIdentity(t *testing.T) {
	t.Parallel()

	d := position.Delta{Lines: 1, Spaces: 7, WhitespaceOnly: true}
	assert.Equal(t, d, position.Empty().With(d))
	assert.Equal(t, d, d.With(position.Empty()))
	assert.True(t, position.Empty().IsZero())

	lc := position.LineColumn{Line: 2, Column: 3, WhitespaceOnly: true}
	assert.Equal(t, lc, lc.With(position.Empty()))
}

func TestAtLineStart(t *testing.T) {
	t.Parallel()

	assert.False(t, position.LineColumn{}.AtLineStart())
	assert.True(t, position.LineColumn{Line: 1}.AtLineStart())
	assert.False(t, position.LineColumn{Line: 1, Column: 2}.AtLineStart())
}
