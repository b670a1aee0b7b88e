package policy

import (
	"github.com/yaklabco/triviafmt/pkg/rules"
	"github.com/yaklabco/triviafmt/pkg/syntax"
)

// LineOperation returns the line break requirement between two adjacent
// tokens. Basic statements are line based and declare none.
func (p *Policy) LineOperation(token1, token2 syntax.Token) (rules.LineOperation, bool) {
	if token1.IsZero() || token2.IsZero() {
		return rules.LineOperation{}, false
	}
	if p.tree.Dialect == syntax.DialectBasic || token2.Kind == syntax.TokenEndOfFile {
		return rules.LineOperation{}, false
	}

	idx1, idx2 := p.indexOf(token1), p.indexOf(token2)
	if idx1 < 0 || idx2 != idx1+1 {
		return rules.LineOperation{}, false
	}

	if token1.Kind == syntax.TokenOpenBrace && p.isBlockBrace(idx1) {
		if closer, ok := p.pairs[idx1]; ok && closer == idx2 {
			return rules.LineOperation{}, false
		}
		return rules.LineOperation{Kind: rules.ForceLines, Lines: 1}, true
	}

	if token2.Kind == syntax.TokenCloseBrace && !token2.Missing && p.isBlockBrace(idx2) {
		if open, ok := p.pairs[idx2]; ok && open == idx1 {
			return rules.LineOperation{}, false
		}
		return rules.LineOperation{Kind: rules.ForceLines, Lines: 1}, true
	}

	if token1.Kind == syntax.TokenSemicolon && p.insideBlock(idx1) && p.parenDepth(idx1) == 0 {
		return rules.LineOperation{Kind: rules.ForceLinesIfOnSingleLine, Lines: 1}, true
	}

	return rules.LineOperation{}, false
}

// insideBlock reports whether the token at idx sits in a statement block.
func (p *Policy) insideBlock(idx int) bool {
	for i := idx - 1; i >= 0; i-- {
		tok := p.tree.Tokens[i]
		switch tok.Kind {
		case syntax.TokenCloseBrace:
			open, ok := p.pairs[i]
			if !ok {
				return false
			}
			i = open
		case syntax.TokenOpenBrace:
			return p.isBlockBrace(i)
		}
	}
	return false
}

// SpaceOperation returns the spacing requirement between two adjacent
// tokens on one line.
func (p *Policy) SpaceOperation(token1, token2 syntax.Token) (rules.SpaceOperation, bool) {
	if token1.IsZero() || token2.IsZero() || token2.Kind == syntax.TokenEndOfFile {
		return rules.SpaceOperation{}, false
	}

	switch token2.Kind {
	case syntax.TokenComma, syntax.TokenSemicolon, syntax.TokenCloseParen, syntax.TokenCloseBracket:
		return rules.SpaceOperation{Kind: rules.ForceSpacesOperation, Spaces: 0}, true
	}

	switch token1.Kind {
	case syntax.TokenOpenParen, syntax.TokenOpenBracket:
		return rules.SpaceOperation{Kind: rules.ForceSpacesOperation, Spaces: 0}, true
	case syntax.TokenComma:
		if p.settings.SpaceAfterComma {
			return rules.SpaceOperation{Kind: rules.DefaultSpacesIfOnSingleLine, Spaces: 1}, true
		}
	}

	if p.settings.SpaceAroundOperators {
		if token2.Kind == syntax.TokenOperator && p.isBinary(token2) {
			return rules.SpaceOperation{Kind: rules.ForceSpacesOperation, Spaces: 1}, true
		}
		if token1.Kind == syntax.TokenOperator && p.isBinary(token1) {
			return rules.SpaceOperation{Kind: rules.ForceSpacesOperation, Spaces: 1}, true
		}
	}

	return rules.SpaceOperation{}, false
}

// assignmentOrComparison operators are binary wherever they appear.
var assignmentOrComparison = map[string]struct{}{
	"=": {}, "==": {}, "!=": {}, "<>": {}, "<=": {}, ">=": {},
	"+=": {}, "-=": {}, "*=": {}, "/=": {}, "%=": {}, "&=": {}, "|=": {}, "^=": {},
	"<<=": {}, ">>=": {}, `\=`: {}, ":=": {}, "&&": {}, "||": {}, "?": {},
}

// neverSpaced operators never get a spacing operation. Angle brackets are
// among them since they also delimit type arguments.
var neverSpaced = map[string]struct{}{
	"->": {}, "++": {}, "--": {}, "::": {}, "...": {}, "!": {}, "~": {}, "#": {}, "##": {},
	"<": {}, ">": {},
}

// isBinary reports whether the operator token is used as a binary operator.
func (p *Policy) isBinary(op syntax.Token) bool {
	if _, ok := neverSpaced[op.Text]; ok {
		return false
	}
	if _, ok := assignmentOrComparison[op.Text]; ok {
		return true
	}

	prev, ok := p.previous(op)
	if !ok {
		return false
	}
	switch prev.Kind {
	case syntax.TokenIdentifier, syntax.TokenNumber, syntax.TokenString,
		syntax.TokenCloseParen, syntax.TokenCloseBracket:
		return true
	}
	return false
}
