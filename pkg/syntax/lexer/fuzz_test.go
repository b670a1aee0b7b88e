package lexer

import (
	"testing"

	"github.com/yaklabco/triviafmt/pkg/syntax"
)

// FuzzLex fuzzes both dialects with random input.
func FuzzLex(f *testing.F) {
	seeds := []string{
		"",
		"a",
		"int x = 1;",
		"{\n\t// c\n}\n",
		"/* open",
		"#define X \\\n 1\n",
		"/// a\n  /// b\n",
		"\"unterminated\n",
		"a\r\nb\rc",
		"@$`",
		"Sub A() ' c\nEnd Sub\n",
		"x = 1 _\n  + 2\n",
		"REM a\n#If X\n#End If\n",
		"f((([",
	}
	for _, seed := range seeds {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, text string) {
		for _, dialect := range []syntax.Dialect{syntax.DialectC, syntax.DialectBasic} {
			tree := Lex(dialect, text)

			if got := tree.Render(); got != text {
				t.Fatalf("%s: render mismatch: got %q, want %q", dialect, got, text)
			}

			pos := 0
			for _, tok := range tree.Tokens {
				full := tok.FullSpan()
				if full.Start != pos {
					t.Fatalf("%s: token %q starts at %d, want %d", dialect, tok.Text, full.Start, pos)
				}
				pos = full.End
			}
			if pos != len(text) {
				t.Fatalf("%s: tokens end at %d, want %d", dialect, pos, len(text))
			}
		}
	})
}
