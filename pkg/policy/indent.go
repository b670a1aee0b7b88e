package policy

import (
	"strings"

	"github.com/yaklabco/triviafmt/pkg/syntax"
)

// bracketLevels assigns each token its bracket depth. A closing bracket sits
// at the depth of its opener.
func bracketLevels(tokens []syntax.Token) ([]int, map[int]int) {
	levels := make([]int, len(tokens))
	pairs := make(map[int]int)

	var stack []int
	for i, tok := range tokens {
		switch {
		case tok.Kind.IsOpenBracket():
			levels[i] = len(stack)
			stack = append(stack, i)
		case tok.Kind.IsCloseBracket():
			if n := len(stack); n > 0 {
				open := stack[n-1]
				stack = stack[:n-1]
				pairs[open] = i
				pairs[i] = open
			}
			levels[i] = len(stack)
		default:
			levels[i] = len(stack)
		}
	}

	return levels, pairs
}

// isBlockBrace reports whether the brace at idx opens or closes a statement
// block rather than an initializer list.
func (p *Policy) isBlockBrace(idx int) bool {
	if idx < 0 || idx >= len(p.tree.Tokens) {
		return false
	}

	tok := p.tree.Tokens[idx]
	switch tok.Kind {
	case syntax.TokenOpenBrace:
	case syntax.TokenCloseBrace:
		open, ok := p.pairs[idx]
		if !ok {
			return false
		}
		idx = open
	default:
		return false
	}

	if idx == 0 {
		return true
	}
	prev := p.tree.Tokens[idx-1]
	switch prev.Kind {
	case syntax.TokenOperator, syntax.TokenComma, syntax.TokenOpenParen,
		syntax.TokenOpenBracket, syntax.TokenOpenBrace:
		return false
	case syntax.TokenKeyword:
		return prev.Text != "return"
	}
	return true
}

// parenDepth returns how many parentheses enclose the token at idx.
func (p *Policy) parenDepth(idx int) int {
	depth := 0
	for i := idx - 1; i >= 0; i-- {
		tok := p.tree.Tokens[i]
		switch tok.Kind {
		case syntax.TokenCloseParen:
			if open, ok := p.pairs[i]; ok {
				i = open
			}
		case syntax.TokenOpenParen:
			depth++
		case syntax.TokenOpenBrace, syntax.TokenCloseBrace:
			if depth == 0 {
				return 0
			}
			return depth
		}
	}
	return depth
}

// basic keyword classes, lower case.
var (
	basicModifiers = keywordSet(`public private protected friend shared overrides overridable
		mustinherit notinheritable notoverridable partial static readonly shadows overloads
		default widening narrowing async iterator writeonly`)
	basicOpeners   = keywordSet(`sub function class module namespace structure enum interface
		property with try while do for using synclock get set operator`)
	basicMiddles   = keywordSet(`else elseif case catch finally`)
	basicClosers   = keywordSet(`next loop wend`)
	basicAccessors = keywordSet(`get set`)
)

func keywordSet(words string) map[string]struct{} {
	fields := strings.Fields(words)
	set := make(map[string]struct{}, len(fields))
	for _, w := range fields {
		set[w] = struct{}{}
	}
	return set
}

func has(set map[string]struct{}, word string) bool {
	_, ok := set[strings.ToLower(word)]
	return ok
}

// basicBlock is an open Basic block and the levels it added.
type basicBlock struct {
	keyword string
	weight  int
}

// basicLine is one physical line of Basic tokens.
type basicLine struct {
	first, last  int // token index range, inclusive
	continuation bool
}

// basicLevels assigns indentation levels from Basic block keywords. Tokens on
// a continued line sit one level deeper than their statement.
func basicLevels(tree *syntax.Tree) []int {
	tokens := tree.Tokens
	levels := make([]int, len(tokens))
	lines := basicLines(tree)

	var (
		stack []basicBlock
		level int
	)

	for n, line := range lines {
		if line.continuation {
			statement := n - 1
			for statement > 0 && lines[statement].continuation {
				statement--
			}
			indent := levels[lines[statement].first] + 1
			for i := line.first; i <= line.last; i++ {
				levels[i] = indent
			}
			continue
		}

		head := line.first
		for head < line.last && has(basicModifiers, tokens[head].Text) {
			head++
		}
		keyword := strings.ToLower(tokens[head].Text)
		if tokens[head].Kind != syntax.TokenKeyword && tokens[head].Kind != syntax.TokenIdentifier {
			keyword = ""
		}

		lineEnd := statementEnd(lines, n)
		indent := level
		opens := 0

		switch {
		case keyword == "end" && head < lineEnd && tokens[head+1].Kind == syntax.TokenKeyword,
			has(basicClosers, keyword):
			if k := len(stack); k > 0 {
				level -= stack[k-1].weight
				stack = stack[:k-1]
			}
			level = max(0, level)
			indent = level
		case has(basicMiddles, keyword):
			indent = max(0, level-1)
		case keyword == "select":
			opens = 2
		case keyword == "if":
			if tokens[lineEnd].Is(syntax.TokenKeyword, "then") {
				opens = 1
			}
		case has(basicOpeners, keyword):
			if isBasicBlockOpener(tree, lines, n, head, stack) {
				opens = 1
			}
		}

		for i := line.first; i <= line.last; i++ {
			levels[i] = indent
		}
		if opens > 0 {
			stack = append(stack, basicBlock{keyword: keyword, weight: opens})
			level += opens
		}
	}

	return levels
}

// isBasicBlockOpener filters declarations that have no body: members of an
// interface, MustOverride and Declare members, and auto-implemented
// properties.
func isBasicBlockOpener(tree *syntax.Tree, lines []basicLine, n, head int, stack []basicBlock) bool {
	tokens := tree.Tokens
	keyword := strings.ToLower(tokens[head].Text)

	for i := lines[n].first; i < head; i++ {
		if strings.EqualFold(tokens[i].Text, "mustoverride") {
			return false
		}
	}
	if k := len(stack); k > 0 && stack[k-1].keyword == "interface" {
		switch keyword {
		case "sub", "function", "property", "operator":
			return false
		}
	}
	if keyword == "property" {
		next := nextStatement(lines, n)
		if next < 0 {
			return false
		}
		accessor := lines[next].first
		for accessor < lines[next].last && has(basicModifiers, tokens[accessor].Text) {
			accessor++
		}
		return has(basicAccessors, tokens[accessor].Text)
	}
	return true
}

func nextStatement(lines []basicLine, n int) int {
	for i := n + 1; i < len(lines); i++ {
		if !lines[i].continuation {
			return i
		}
	}
	return -1
}

// statementEnd returns the last token index of the statement starting on
// line n.
func statementEnd(lines []basicLine, n int) int {
	end := lines[n].last
	for i := n + 1; i < len(lines) && lines[i].continuation; i++ {
		end = lines[i].last
	}
	return end
}

// basicLines groups tokens by the physical line they start on. The end of
// file token gets a line of its own.
func basicLines(tree *syntax.Tree) []basicLine {
	tokens := tree.Tokens
	var lines []basicLine

	for i, tok := range tokens {
		line := tree.LineOf(tok.Span.Start)
		if n := len(lines); n > 0 && tok.Kind != syntax.TokenEndOfFile &&
			tree.LineOf(tokens[lines[n-1].first].Span.Start) == line {
			lines[n-1].last = i
			continue
		}

		current := basicLine{first: i, last: i}
		if n := len(lines); n > 0 && tok.Kind != syntax.TokenEndOfFile {
			current.continuation = continuesLine(tokens[lines[n-1].last])
		}
		lines = append(lines, current)
	}

	return lines
}

// continuesLine reports whether the statement ending with tok goes on past
// the line break, either explicitly with " _" or implicitly after an
// operator, a comma or an opening bracket.
func continuesLine(tok syntax.Token) bool {
	for _, item := range tok.Trailing {
		if item.Kind == syntax.TriviaLineContinuation {
			return true
		}
	}

	switch tok.Kind {
	case syntax.TokenComma, syntax.TokenOpenParen, syntax.TokenOpenBrace, syntax.TokenOperator:
		return true
	}
	return false
}
