// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package host

import (
	"errors"
	"fmt"
	"testing"
)

type fakeResolver map[string]int64

func (r fakeResolver) resolveIdentifier(s string) (int64, error) {
	if v, ok := r[s]; ok {
		return v, nil
	}
	return 0, fmt.Errorf("identifier '%s' not found", s)
}

var testIdentifiers = fakeResolver{
	"d0": 41,
	"pc": 0x200100,
	".":  0x200100,
}

func TestExprValues(t *testing.T) {
	tests := []struct {
		expr string
		exp  int64
	}{
		{"1+2*3", 7},
		{"(1+2)*3", 9},
		{"1<<2+1", 8},
		{"$100 >> 4", 0x10},
		{"10 - 4 - 3", 3},
		{"100 / 10 / 5", 2},
		{"10 % 3", 1},
		{"$ff & $0f | $100", 0x10f},
		{"6 ^ 3", 5},
		{"%101", 5},
		{"0b11", 3},
		{"0x1F", 31},
		{"'A'", 65},
		{"-$10", -16},
		{"~0", -1},
		{"+7", 7},
		{" ( 2 + 3 ) * ( 4 - 1 ) ", 15},
		{"d0 + 1", 42},
		{". + 4", 0x200104},
	}

	p := newExprParser()
	for _, test := range tests {
		v, err := p.Parse(test.expr, testIdentifiers)
		if err != nil {
			t.Errorf("%q: unexpected error: %v", test.expr, err)
			continue
		}
		if v != test.exp {
			t.Errorf("%q: exp %d, got %d", test.expr, test.exp, v)
		}
	}
}

func TestExprHexMode(t *testing.T) {
	tests := []struct {
		expr string
		exp  int64
	}{
		{"10", 0x10},
		{"ff", 0xff},
		{"ff + 1", 0x100},
		{"%11", 3},
		{"pc", 0x200100},
		{"d0", 0xd0},
	}

	p := newExprParser()
	p.hexMode = true
	for _, test := range tests {
		v, err := p.Parse(test.expr, testIdentifiers)
		if err != nil {
			t.Errorf("%q: unexpected error: %v", test.expr, err)
			continue
		}
		if v != test.exp {
			t.Errorf("%q: exp $%X, got $%X", test.expr, test.exp, v)
		}
	}
}

func TestExprErrors(t *testing.T) {
	tests := []struct {
		expr string
		exp  error
	}{
		{"", errExprParse},
		{"1+", errExprParse},
		{"1 2", errExprParse},
		{"$", errExprParse},
		{"'A", errExprParse},
		{"(1+2", errUnbalancedExpr},
		{"1+2)", errUnbalancedExpr},
		{"1/0", errDivideByZero},
		{"5 % (2-2)", errDivideByZero},
	}

	p := newExprParser()
	for _, test := range tests {
		_, err := p.Parse(test.expr, testIdentifiers)
		if !errors.Is(err, test.exp) {
			t.Errorf("%q: exp error %v, got %v", test.expr, test.exp, err)
		}
	}

	if _, err := p.Parse("foo", testIdentifiers); err == nil {
		t.Error("unknown identifier: expected an error")
	}
}
