package mpd

import (
	"strings"

	"github.com/cmars/mpdfrontd/internal/mpdcore"
)

// ParseFilter parses the MPD 0.21 filter-expression grammar:
//
//	expr    := '(' inner ')'
//	inner   := '!' expr
//	         | expr ('AND' expr)*
//	         | tag op quoted
//	         | ('base'|'modified-since') quoted
//	tag     := [A-Za-z_-]+
//	op      := '==' | '!=' | '=~' | '!~' | 'contains' | '!contains'
//	quoted  := single- or double-quoted string with '\' escapes
//
// Negation is legal only on a single comparison clause; negating an AND
// raises Arg. Any input left over after the top-level expression raises
// Arg. The result is a flat conjunction of comparison clauses.
func ParseFilter(command, input string) ([]mpdcore.FilterExpr, error) {
	p := &filterParser{command: command, s: input}
	p.skipSpace()
	clauses, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if p.pos != len(p.s) {
		return nil, ArgError(command, "incorrect arguments")
	}
	return clauses, nil
}

type filterParser struct {
	command string
	s       string
	pos     int
}

func (p *filterParser) fail() error {
	return ArgError(p.command, "incorrect arguments")
}

func (p *filterParser) skipSpace() {
	for p.pos < len(p.s) && (p.s[p.pos] == ' ' || p.s[p.pos] == '\t') {
		p.pos++
	}
}

func (p *filterParser) peek() byte {
	if p.pos >= len(p.s) {
		return 0
	}
	return p.s[p.pos]
}

// parseExpr parses one '(' inner ')' and any following ('AND' expr)* chain.
func (p *filterParser) parseExpr() ([]mpdcore.FilterExpr, error) {
	clauses, err := p.parseParenExpr()
	if err != nil {
		return nil, err
	}
	for {
		save := p.pos
		p.skipSpace()
		if !p.consumeKeyword("AND") {
			p.pos = save
			break
		}
		p.skipSpace()
		more, err := p.parseParenExpr()
		if err != nil {
			return nil, err
		}
		clauses = append(clauses, more...)
	}
	return clauses, nil
}

func (p *filterParser) parseParenExpr() ([]mpdcore.FilterExpr, error) {
	if p.peek() != '(' {
		return nil, p.fail()
	}
	p.pos++
	p.skipSpace()

	if p.peek() == '!' {
		p.pos++
		p.skipSpace()
		inner, err := p.parseParenExpr()
		if err != nil {
			return nil, err
		}
		if len(inner) != 1 {
			return nil, p.fail()
		}
		inner[0].Negated = !inner[0].Negated
		p.skipSpace()
		if p.peek() != ')' {
			return nil, p.fail()
		}
		p.pos++
		return inner, nil
	}

	if p.peek() == '(' {
		clauses, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		p.skipSpace()
		if p.peek() != ')' {
			return nil, p.fail()
		}
		p.pos++
		return clauses, nil
	}

	clause, err := p.parseComparison()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if p.peek() != ')' {
		return nil, p.fail()
	}
	p.pos++
	return []mpdcore.FilterExpr{clause}, nil
}

func (p *filterParser) consumeKeyword(kw string) bool {
	if p.pos+len(kw) > len(p.s) {
		return false
	}
	if !strings.EqualFold(p.s[p.pos:p.pos+len(kw)], kw) {
		return false
	}
	p.pos += len(kw)
	return true
}

func (p *filterParser) parseComparison() (mpdcore.FilterExpr, error) {
	if p.consumeKeyword("base") {
		p.skipSpace()
		val, err := p.parseQuoted()
		if err != nil {
			return mpdcore.FilterExpr{}, err
		}
		return mpdcore.FilterExpr{Op: mpdcore.FilterBase, Value: val}, nil
	}
	if p.consumeKeyword("modified-since") {
		p.skipSpace()
		val, err := p.parseQuoted()
		if err != nil {
			return mpdcore.FilterExpr{}, err
		}
		return mpdcore.FilterExpr{Op: mpdcore.FilterModifiedSince, Value: val}, nil
	}

	tag, err := p.parseTag()
	if err != nil {
		return mpdcore.FilterExpr{}, err
	}
	p.skipSpace()
	op, err := p.parseOp()
	if err != nil {
		return mpdcore.FilterExpr{}, err
	}
	p.skipSpace()
	val, err := p.parseQuoted()
	if err != nil {
		return mpdcore.FilterExpr{}, err
	}
	return mpdcore.FilterExpr{Tag: tag, Op: op, Value: val}, nil
}

func (p *filterParser) parseTag() (string, error) {
	start := p.pos
	for p.pos < len(p.s) && isTagChar(p.s[p.pos]) {
		p.pos++
	}
	if p.pos == start {
		return "", p.fail()
	}
	return p.s[start:p.pos], nil
}

func isTagChar(b byte) bool {
	return (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z') || b == '_' || b == '-'
}

func (p *filterParser) parseOp() (mpdcore.FilterOp, error) {
	switch {
	case p.consumeKeyword("=="):
		return mpdcore.FilterEquals, nil
	case p.consumeKeyword("!="):
		return mpdcore.FilterNotEquals, nil
	case p.consumeKeyword("=~"):
		return mpdcore.FilterMatches, nil
	case p.consumeKeyword("!~"):
		return mpdcore.FilterNotMatches, nil
	case p.consumeKeyword("!contains"):
		return mpdcore.FilterNotContains, nil
	case p.consumeKeyword("contains"):
		return mpdcore.FilterContains, nil
	default:
		return 0, p.fail()
	}
}

func (p *filterParser) parseQuoted() (string, error) {
	if p.pos >= len(p.s) {
		return "", p.fail()
	}
	quote := p.s[p.pos]
	if quote != '\'' && quote != '"' {
		return "", p.fail()
	}
	p.pos++
	var b strings.Builder
	for p.pos < len(p.s) {
		c := p.s[p.pos]
		switch c {
		case quote:
			p.pos++
			return b.String(), nil
		case '\\':
			if p.pos+1 >= len(p.s) {
				return "", p.fail()
			}
			b.WriteByte(p.s[p.pos+1])
			p.pos += 2
		default:
			b.WriteByte(c)
			p.pos++
		}
	}
	return "", p.fail()
}
