package lexer

import (
	"strings"

	"github.com/yaklabco/triviafmt/pkg/syntax"
)

// rules holds the lexical tables of one dialect.
type rules struct {
	keywords      map[string]struct{}
	foldKeywords  bool
	operators     []string // longest first
	lineComment   string
	docComment    string
	blockComments bool
	charLiterals  bool
	continuations bool
	remComments   bool

	backslashEscapes bool
	doubledQuotes    bool
	radixLiterals    bool
}

func (r *rules) isKeyword(text string) bool {
	if r.foldKeywords {
		text = strings.ToLower(text)
	}
	_, ok := r.keywords[text]
	return ok
}

func (r *rules) startsOperator(b byte) bool {
	for _, op := range r.operators {
		if op[0] == b {
			return true
		}
	}
	return false
}

func keywordSet(words string) map[string]struct{} {
	fields := strings.Fields(words)
	set := make(map[string]struct{}, len(fields))
	for _, w := range fields {
		set[w] = struct{}{}
	}
	return set
}

var cRules = &rules{
	keywords: keywordSet(`auto bool break case char const continue default do double else enum
		extern false float for goto if inline int long register return short signed sizeof
		static struct switch true typedef union unsigned void volatile while`),
	operators: []string{
		"<<=", ">>=", "...",
		"->", "++", "--", "<<", ">>", "<=", ">=", "==", "!=", "&&", "||",
		"+=", "-=", "*=", "/=", "%=", "&=", "|=", "^=", "::", "##",
		"{", "}", "(", ")", "[", "]", ",", ";", ":", ".",
		"+", "-", "*", "/", "%", "=", "<", ">", "!", "~", "&", "|", "^", "?", "#",
	},
	lineComment:   "//",
	docComment:    "///",
	blockComments: true,
	charLiterals:  true,

	backslashEscapes: true,
}

var basicRules = &rules{
	keywords: keywordSet(`addhandler alias and andalso as boolean byref byte byval call case
		catch class const continue date dim do double each else elseif end enum erase error
		event exit false finally for friend function get global goto handles if implements
		imports in inherits integer interface is let lib like long loop me mod module
		mustinherit namespace new next not nothing of on operator option optional or orelse
		overloads overridable overrides private property protected public raiseevent readonly
		redim resume return select set shadows shared short single static step stop string
		structure sub then throw to true try typeof until using when while with withevents xor`),
	foldKeywords: true,
	operators: []string{
		"<<=", ">>=",
		"<>", "<=", ">=", ":=", "+=", "-=", "*=", "/=", "\\=", "^=", "&=", "<<", ">>",
		"{", "}", "(", ")", "[", "]", ",", ";", ":", ".",
		"+", "-", "*", "/", "\\", "^", "&", "=", "<", ">", "?", "!",
	},
	lineComment:   "'",
	docComment:    "'''",
	continuations: true,
	remComments:   true,

	doubledQuotes: true,
	radixLiterals: true,
}

func rulesFor(dialect syntax.Dialect) *rules {
	if dialect == syntax.DialectBasic {
		return basicRules
	}
	return cRules
}

// punctuationKind maps single-character punctuation to its token kind.
func punctuationKind(text string) syntax.TokenKind {
	switch text {
	case "{":
		return syntax.TokenOpenBrace
	case "}":
		return syntax.TokenCloseBrace
	case "(":
		return syntax.TokenOpenParen
	case ")":
		return syntax.TokenCloseParen
	case "[":
		return syntax.TokenOpenBracket
	case "]":
		return syntax.TokenCloseBracket
	case ",":
		return syntax.TokenComma
	case ";":
		return syntax.TokenSemicolon
	case ":":
		return syntax.TokenColon
	case ".":
		return syntax.TokenDot
	default:
		return syntax.TokenOperator
	}
}

// closerOf returns the closing kind for an opening bracket kind.
func closerOf(open syntax.TokenKind) syntax.TokenKind {
	switch open {
	case syntax.TokenOpenBrace:
		return syntax.TokenCloseBrace
	case syntax.TokenOpenParen:
		return syntax.TokenCloseParen
	case syntax.TokenOpenBracket:
		return syntax.TokenCloseBracket
	default:
		return syntax.TokenNone
	}
}
