// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cpu_test

import (
	"errors"
	"testing"

	"github.com/beevik/go68k/cpu"
)

const (
	c = cpu.CarryBit
	v = cpu.OverflowBit
	z = cpu.ZeroBit
	n = cpu.NegativeBit
	x = cpu.ExtendBit
)

func expectResult(t *testing.T, name string, res, expRes uint32, sr, expSR uint16) {
	t.Helper()
	if res != expRes {
		t.Errorf("%s result incorrect. exp: $%08X, got: $%08X", name, expRes, res)
	}
	if sr != expSR {
		t.Errorf("%s flags incorrect. exp: $%02X, got: $%02X", name, expSR, sr)
	}
}

func TestAdd(t *testing.T) {
	tests := []struct {
		sz       cpu.Size
		src, dst uint32
		res      uint32
		sr       uint16
	}{
		{cpu.Byte, 0x01, 0xff, 0x00, z | c | x},
		{cpu.Byte, 0x7f, 0x01, 0x80, n | v},
		{cpu.Word, 0x8000, 0x8000, 0x0000, z | v | c | x},
		{cpu.Long, 0x00000001, 0x00000002, 0x00000003, 0},
		{cpu.Long, 0xffffffff, 0x00000001, 0x00000000, z | c | x},
	}

	for _, tc := range tests {
		res, sr := cpu.Add(tc.sz, tc.src, tc.dst, 0)
		expectResult(t, "ADD"+tc.sz.String(), res, tc.res, sr, tc.sr)
	}
}

func TestSub(t *testing.T) {
	res, sr := cpu.Sub(cpu.Long, 0x12345678, 0x12345678, 0)
	expectResult(t, "SUB.L", res, 0, sr, z)

	res, sr = cpu.Sub(cpu.Long, 0x7fffffff, 0xff000000, 0)
	expectResult(t, "SUB.L", res, 0x7f000001, sr, v)

	res, sr = cpu.Sub(cpu.Byte, 0x01, 0x00, 0)
	expectResult(t, "SUB.B", res, 0xff, sr, n|c|x)
}

func TestCmpPreservesExtend(t *testing.T) {
	sr := cpu.Cmp(cpu.Byte, 0x10, 0x05, x)
	if sr != x|n|c {
		t.Errorf("CMP flags incorrect. exp: $%02X, got: $%02X", x|n|c, sr)
	}

	sr = cpu.Cmp(cpu.Word, 0x1234, 0x1234, c)
	if sr != z {
		t.Errorf("CMP flags incorrect. exp: $%02X, got: $%02X", z, sr)
	}
}

func TestAddxStickyZero(t *testing.T) {
	// A zero result leaves Z as it was.
	res, sr := cpu.Addx(cpu.Long, 0, 0, 0)
	expectResult(t, "ADDX.L", res, 0, sr, 0)

	res, sr = cpu.Addx(cpu.Long, 0, 0, z)
	expectResult(t, "ADDX.L", res, 0, sr, z)

	res, sr = cpu.Addx(cpu.Byte, 0xff, 0x00, z|x)
	expectResult(t, "ADDX.B", res, 0, sr, z|c|x)

	res, sr = cpu.Subx(cpu.Word, 0x0001, 0x0003, z|x)
	expectResult(t, "SUBX.W", res, 1, sr, 0)
}

func TestNeg(t *testing.T) {
	res, sr := cpu.Neg(cpu.Byte, 0x01, 0)
	expectResult(t, "NEG.B", res, 0xff, sr, n|c|x)

	res, sr = cpu.Neg(cpu.Byte, 0x80, 0)
	expectResult(t, "NEG.B", res, 0x80, sr, n|v|c|x)

	res, sr = cpu.Neg(cpu.Word, 0, 0)
	expectResult(t, "NEG.W", res, 0, sr, z)
}

func TestMultiply(t *testing.T) {
	res, sr := cpu.Mulu(0xffff, 0xffff, c|v)
	expectResult(t, "MULU", res, 0xfffe0001, sr, n)

	res, sr = cpu.Muls(0xffff, 0x0002, 0)
	expectResult(t, "MULS", res, 0xfffffffe, sr, n)

	res, sr = cpu.Muls(0x1234, 0, 0)
	expectResult(t, "MULS", res, 0, sr, z)
}

func TestDivide(t *testing.T) {
	res, sr, err := cpu.Divu(3, 10, 0)
	if err != nil {
		t.Fatalf("DIVU returned error: %v", err)
	}
	expectResult(t, "DIVU", res, 0x00010003, sr, 0)

	// Overflow leaves the destination unchanged.
	res, sr, err = cpu.Divu(0x10, 0x12345678, z|c)
	if err != nil {
		t.Fatalf("DIVU returned error: %v", err)
	}
	expectResult(t, "DIVU", res, 0x12345678, sr, v)

	res, sr, err = cpu.Divs(2, 0xfffffff9, 0)
	if err != nil {
		t.Fatalf("DIVS returned error: %v", err)
	}
	expectResult(t, "DIVS", res, 0xfffffffd, sr, n)

	res, sr, err = cpu.Divs(1, 0x00008000, 0)
	if err != nil {
		t.Fatalf("DIVS returned error: %v", err)
	}
	expectResult(t, "DIVS", res, 0x00008000, sr, v)

	_, sr, err = cpu.Divu(0, 1234, c)
	if !errors.Is(err, cpu.ErrDivideByZero) {
		t.Errorf("DIVU by zero: exp error %v, got %v", cpu.ErrDivideByZero, err)
	}
	if sr&c != 0 {
		t.Error("DIVU by zero left carry set")
	}
}

func TestBCD(t *testing.T) {
	res, sr := cpu.Abcd(0x45, 0x38, 0)
	if res != 0x83 || sr&c != 0 {
		t.Errorf("ABCD incorrect. exp: $83 no carry, got: $%02X sr $%02X", res, sr)
	}

	res, sr = cpu.Abcd(0x99, 0x01, z)
	if res != 0x00 || sr&(c|x|z) != c|x|z {
		t.Errorf("ABCD incorrect. exp: $00 with carry, got: $%02X sr $%02X", res, sr)
	}

	res, sr = cpu.Sbcd(0x01, 0x10, 0)
	if res != 0x09 || sr&c != 0 {
		t.Errorf("SBCD incorrect. exp: $09 no carry, got: $%02X sr $%02X", res, sr)
	}

	res, sr = cpu.Nbcd(0x00, z)
	expectResult(t, "NBCD", res, 0x00, sr, z)

	res, sr = cpu.Nbcd(0x01, 0)
	expectResult(t, "NBCD", res, 0x99, sr, n|c|x)

	res, sr = cpu.Nbcd(0x01, x)
	expectResult(t, "NBCD", res, 0x98, sr, n|c|x)
}

func TestShifts(t *testing.T) {
	res, sr := cpu.Asl(cpu.Byte, 0x40, 1, 0)
	expectResult(t, "ASL.B", res, 0x80, sr, n|v)

	res, sr = cpu.Asr(cpu.Byte, 0x81, 1, 0)
	expectResult(t, "ASR.B", res, 0xc0, sr, n|c|x)

	res, sr = cpu.Lsr(cpu.Word, 0x0001, 1, 0)
	expectResult(t, "LSR.W", res, 0, sr, z|c|x)

	res, sr = cpu.Lsl(cpu.Long, 1, 32, 0)
	expectResult(t, "LSL.L", res, 0, sr, z|c|x)

	res, sr = cpu.Ror(cpu.Long, 1, 1, 0)
	expectResult(t, "ROR.L", res, 0x80000000, sr, n|c)

	res, sr = cpu.Rol(cpu.Byte, 0x81, 1, x)
	expectResult(t, "ROL.B", res, 0x03, sr, x|c)

	// A zero count clears C and leaves X alone.
	res, sr = cpu.Lsl(cpu.Word, 0x1234, 0, x|c)
	expectResult(t, "LSL.W", res, 0x1234, sr, x)
}

func TestRotateExtend(t *testing.T) {
	res, sr := cpu.Roxl(cpu.Byte, 0x80, 1, 0)
	expectResult(t, "ROXL.B", res, 0x00, sr, z|c|x)

	res, sr = cpu.Roxl(cpu.Byte, res, 1, sr)
	expectResult(t, "ROXL.B", res, 0x01, sr, 0)

	res, sr = cpu.Roxl(cpu.Long, 0x80000000, 1, 0)
	expectResult(t, "ROXL.L", res, 0, sr, z|c|x)

	res, sr = cpu.Roxl(cpu.Long, res, 1, sr)
	expectResult(t, "ROXL.L", res, 1, sr, 0)

	// A zero count copies X into C.
	res, sr = cpu.Roxl(cpu.Byte, 0x42, 0, x)
	expectResult(t, "ROXL.B", res, 0x42, sr, x|c)

	res, sr = cpu.Roxr(cpu.Word, 0x0001, 1, x)
	expectResult(t, "ROXR.W", res, 0x8000, sr, n|c|x)
}
