// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package host

import (
	"errors"
	"strconv"
)

var (
	errExprParse      = errors.New("expression syntax error")
	errDivideByZero   = errors.New("division by zero")
	errUnbalancedExpr = errors.New("unbalanced parentheses")
)

type resolver interface {
	resolveIdentifier(s string) (int64, error)
}

// A binaryOp is an infix operator. Higher precedence binds tighter.
type binaryOp struct {
	symbol     string
	precedence int
	eval       func(a, b int64) (int64, error)
}

// Two-character operators precede their one-character prefixes.
var binaryOps = []binaryOp{
	{"<<", 4, func(a, b int64) (int64, error) { return a << uint(b&63), nil }},
	{">>", 4, func(a, b int64) (int64, error) { return a >> uint(b&63), nil }},
	{"|", 1, func(a, b int64) (int64, error) { return a | b, nil }},
	{"^", 2, func(a, b int64) (int64, error) { return a ^ b, nil }},
	{"&", 3, func(a, b int64) (int64, error) { return a & b, nil }},
	{"+", 5, func(a, b int64) (int64, error) { return a + b, nil }},
	{"-", 5, func(a, b int64) (int64, error) { return a - b, nil }},
	{"*", 6, func(a, b int64) (int64, error) { return a * b, nil }},
	{"/", 6, func(a, b int64) (int64, error) {
		if b == 0 {
			return 0, errDivideByZero
		}
		return a / b, nil
	}},
	{"%", 6, func(a, b int64) (int64, error) {
		if b == 0 {
			return 0, errDivideByZero
		}
		return a % b, nil
	}},
}

// An exprParser evaluates integer expressions by recursive descent.
//
// Numbers may be written as decimal, $hex, 0xhex, %binary, 0bbinary or
// 'c'. Identifiers, including '.', are looked up through a resolver. In hex
// mode, bare numbers and identifiers made only of hex digits are read as
// hexadecimal.
type exprParser struct {
	hexMode bool
	r       resolver
	t       tstring
}

func newExprParser() *exprParser {
	return &exprParser{}
}

// Parse evaluates an expression.
func (p *exprParser) Parse(expr string, r resolver) (int64, error) {
	p.r, p.t = r, tstring(expr)
	defer func() { p.r, p.t = nil, "" }()

	v, err := p.parseBinary(1)
	if err != nil {
		return 0, err
	}
	if p.t = p.t.consumeWhitespace(); len(p.t) != 0 {
		if p.t[0] == ')' {
			return 0, errUnbalancedExpr
		}
		return 0, errExprParse
	}
	return v, nil
}

func (p *exprParser) peekOp() *binaryOp {
	for i := range binaryOps {
		op := &binaryOps[i]
		if len(p.t) >= len(op.symbol) && string(p.t[:len(op.symbol)]) == op.symbol {
			return op
		}
	}
	return nil
}

// parseBinary parses a chain of operators whose precedence is at least
// minPrec. All binary operators are left associative.
func (p *exprParser) parseBinary(minPrec int) (int64, error) {
	lhs, err := p.parseUnary()
	if err != nil {
		return 0, err
	}

	for {
		p.t = p.t.consumeWhitespace()
		op := p.peekOp()
		if op == nil || op.precedence < minPrec {
			return lhs, nil
		}
		p.t = p.t.consume(len(op.symbol))

		rhs, err := p.parseBinary(op.precedence + 1)
		if err != nil {
			return 0, err
		}
		if lhs, err = op.eval(lhs, rhs); err != nil {
			return 0, err
		}
	}
}

func (p *exprParser) parseUnary() (int64, error) {
	p.t = p.t.consumeWhitespace()
	if len(p.t) == 0 {
		return 0, errExprParse
	}

	switch p.t[0] {
	case '-', '+', '~':
		c := p.t[0]
		p.t = p.t.consume(1)
		v, err := p.parseUnary()
		if err != nil {
			return 0, err
		}
		switch c {
		case '-':
			return -v, nil
		case '~':
			return ^v, nil
		}
		return v, nil
	}
	return p.parsePrimary()
}

func (p *exprParser) parsePrimary() (int64, error) {
	c := p.t[0]
	switch {
	case c == '(':
		p.t = p.t.consume(1)
		v, err := p.parseBinary(1)
		if err != nil {
			return 0, err
		}
		if p.t = p.t.consumeWhitespace(); len(p.t) == 0 || p.t[0] != ')' {
			return 0, errUnbalancedExpr
		}
		p.t = p.t.consume(1)
		return v, nil

	case c == '$':
		return p.parseNumber(p.t.consume(1), 16, hexadecimal)

	case c == '%':
		return p.parseNumber(p.t.consume(1), 2, binary)

	case c == '\'':
		if len(p.t) < 3 || p.t[2] != '\'' {
			return 0, errExprParse
		}
		v := int64(p.t[1])
		p.t = p.t.consume(3)
		return v, nil

	case c == '0' && len(p.t) > 2 && (p.t[1] == 'x' || p.t[1] == 'X'):
		return p.parseNumber(p.t.consume(2), 16, hexadecimal)

	case c == '0' && len(p.t) > 2 && (p.t[1] == 'b' || p.t[1] == 'B') && binary(p.t[2]):
		return p.parseNumber(p.t.consume(2), 2, binary)

	case decimal(c):
		if p.hexMode {
			return p.parseNumber(p.t, 16, hexadecimal)
		}
		return p.parseNumber(p.t, 10, decimal)

	case identifier(c):
		id, remain := p.t.consumeWhile(identifier)
		if p.hexMode && id.scanWhile(hexadecimal) == len(id) {
			return p.parseNumber(p.t, 16, hexadecimal)
		}
		p.t = remain
		if p.r == nil {
			return 0, errExprParse
		}
		return p.r.resolveIdentifier(string(id))
	}

	return 0, errExprParse
}

func (p *exprParser) parseNumber(t tstring, base int, fn func(c byte) bool) (int64, error) {
	num, remain := t.consumeWhile(fn)
	if num == "" {
		return 0, errExprParse
	}
	v, err := strconv.ParseUint(string(num), base, 64)
	if err != nil {
		return 0, errExprParse
	}
	p.t = remain
	return int64(v), nil
}

//
// tstring
//

type tstring string

func (t tstring) consume(n int) tstring {
	return t[n:]
}

func (t tstring) consumeWhitespace() tstring {
	return t.consume(t.scanWhile(whitespace))
}

func (t tstring) scanWhile(fn func(c byte) bool) int {
	i := 0
	for ; i < len(t) && fn(t[i]); i++ {
	}
	return i
}

func (t tstring) consumeWhile(fn func(c byte) bool) (consumed, remain tstring) {
	i := t.scanWhile(fn)
	return t[:i], t[i:]
}

func whitespace(c byte) bool {
	return c == ' ' || c == '\t'
}

func decimal(c byte) bool {
	return c >= '0' && c <= '9'
}

func hexadecimal(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'A' && c <= 'F') || (c >= 'a' && c <= 'f')
}

func binary(c byte) bool {
	return c == '0' || c == '1'
}

func identifier(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') || c == '_' || c == '.'
}
