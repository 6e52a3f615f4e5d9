// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package disasm_test

import (
	"strings"
	"testing"

	"github.com/beevik/go68k/cpu"
	"github.com/beevik/go68k/disasm"
)

const origin = 0x1000

func TestDisassemble(t *testing.T) {
	tests := []struct {
		code []uint16
		line string
	}{
		{[]uint16{0x7005}, "MOVEQ #5,D0"},
		{[]uint16{0x70ff}, "MOVEQ #-1,D0"},
		{[]uint16{0x3080}, "MOVE.W D0,(A0)"},
		{[]uint16{0x2039, 0x0020, 0x0000}, "MOVE.L $200000,D0"},
		{[]uint16{0x4e75}, "RTS"},
		{[]uint16{0x60fe}, "BRA.S $001000"},
		{[]uint16{0x6100, 0x0010}, "BSR.W $001012"},
		{[]uint16{0x51c8, 0xfffe}, "DBF D0,$001000"},
		{[]uint16{0x48e7, 0xc080}, "MOVEM.L D0-D1/A0,-(A7)"},
		{[]uint16{0x4cdf, 0x0103}, "MOVEM.L (A7)+,D0-D1/A0"},
		{[]uint16{0x0640, 0x1234}, "ADDI.W #$1234,D0"},
		{[]uint16{0x0c80, 0x0000, 0x0010}, "CMPI.L #$10,D0"},
		{[]uint16{0x5e41}, "ADDQ.W #7,D1"},
		{[]uint16{0x5041}, "ADDQ.W #8,D1"},
		{[]uint16{0x41f9, 0x0020, 0x0000}, "LEA $200000,A0"},
		{[]uint16{0x3029, 0xfff0}, "MOVE.W -$10(A1),D0"},
		{[]uint16{0x3030, 0x1004}, "MOVE.W $4(A0,D1.W),D0"},
		{[]uint16{0x303a, 0x0010}, "MOVE.W $001012(PC),D0"},
		{[]uint16{0xe348}, "LSL.W #1,D0"},
		{[]uint16{0xe2a8}, "LSR.L D1,D0"},
		{[]uint16{0xc141}, "EXG D0,D1"},
		{[]uint16{0x4e56, 0xfff8}, "LINK A6,#-8"},
		{[]uint16{0x4e40}, "TRAP #0"},
		{[]uint16{0x4e72, 0x2700}, "STOP #$2700"},
		{[]uint16{0x46fc, 0x2000}, "MOVE #$2000,SR"},
		{[]uint16{0x007c, 0x0700}, "ORI #$0700,SR"},
		{[]uint16{0x0800, 0x0003}, "BTST.L #3,D0"},
		{[]uint16{0xc300}, "ABCD D0,D1"},
		{[]uint16{0x4e60}, "MOVE A0,USP"},
		{[]uint16{0x4afc}, "ILLEGAL"},
		{[]uint16{0xa000}, "LINEA $A000"},
		{[]uint16{0x4e7a}, "DC.W $4E7A"},
	}

	for _, tc := range tests {
		mem := cpu.NewFlatMemory()
		mem.StoreWords(origin, tc.code...)

		line, next := disasm.Disassemble(mem, origin)
		if line != tc.line {
			t.Errorf("Disassemble incorrect. exp: %q, got: %q", tc.line, line)
		}
		if exp := uint32(origin + 2*len(tc.code)); next != exp {
			t.Errorf("%s: next incorrect. exp: $%06X, got: $%06X", tc.line, exp, next)
		}
	}
}

func TestDisassembleIgnoresIntrospectionSideEffects(t *testing.T) {
	mem := cpu.NewFlatMemory()
	mem.StoreWords(origin, 0x3080)
	c := cpu.NewCPU(mem)
	c.Reset(0x8000, origin)
	before := c.Reg

	disasm.Disassemble(mem, origin)
	if c.Reg != before {
		t.Error("disassembly changed the registers")
	}
}

func TestGetRegisterString(t *testing.T) {
	var r cpu.Registers
	r.Init()
	r.D[0] = 0x12345678
	r.A[7] = 0x4000
	r.PC = 0x200100
	r.SR |= cpu.ZeroBit | cpu.CarryBit

	s := disasm.GetRegisterString(&r)
	for _, want := range []string{
		"D0=12345678",
		"A7=00004000",
		"PC=200100",
		"SR=2705",
		"SSP=00004000",
		"S I=7 --Z-C",
	} {
		if !strings.Contains(s, want) {
			t.Errorf("register string missing %q:\n%s", want, s)
		}
	}
	if n := strings.Count(s, "\n"); n != 4 {
		t.Errorf("register string has %d newlines, expected 4", n)
	}
}
